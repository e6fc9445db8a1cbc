// category.go

package main

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type categoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (r categoryRequest) validate() error {
	if err := validateFullName(r.Name); err != nil {
		return err
	}
	return validateDescription(r.Description)
}

func (s *server) createCategory(c *gin.Context) {
	adminID := c.GetString(ctxAdminID)
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, 400, "Invalid JSON")
		return
	}
	if err := req.validate(); err != nil {
		respondError(c, 400, err.Error())
		return
	}

	exists, err := getCategoryByFilter(s.db, map[string]any{"name": req.Name})
	if err != nil {
		s.internalError(c, "Error while creating category", err, "admin_id", adminID)
		return
	}
	if exists != nil {
		respondError(c, 400, "Category already exists")
		return
	}

	category := Category{
		CategoryID:  uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		CreatedBy:   adminID,
		UpdatedBy:   &adminID,
	}
	if err := s.db.Create(&category).Error; err != nil {
		s.internalError(c, "Error while creating category", err, "admin_id", adminID)
		return
	}
	respondOK(c, "Category Created Successfully", gin.H{"category": category})
}

func (s *server) updateCategoryByID(c *gin.Context) {
	adminID := c.GetString(ctxAdminID)
	categoryID := c.Param("category_id")
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, 400, "Invalid JSON")
		return
	}
	if err := validateUUID("Category ID", categoryID); err != nil {
		respondError(c, 400, "Category ID is invalid")
		return
	}
	if err := req.validate(); err != nil {
		respondError(c, 400, err.Error())
		return
	}

	category, err := getCategoryByFilter(s.db, map[string]any{"category_id": categoryID})
	if err != nil {
		s.internalError(c, "Error while updating category", err, "admin_id", adminID)
		return
	}
	if category == nil {
		respondError(c, 400, "Category not found")
		return
	}

	nameExists, err := getCategoryByFilter(s.db, map[string]any{"name": req.Name})
	if err != nil {
		s.internalError(c, "Error while updating category", err, "admin_id", adminID)
		return
	}
	if nameExists != nil && nameExists.CategoryID != categoryID {
		respondError(c, 400, "Category name already exists")
		return
	}

	if err := updateCategory(s.db, categoryID, map[string]any{
		"name":        req.Name,
		"description": req.Description,
		"updated_by":  adminID,
	}); err != nil {
		s.internalError(c, "Error while updating category", err, "admin_id", adminID)
		return
	}
	updated, err := getCategoryByFilter(s.db, map[string]any{"category_id": categoryID})
	if err != nil || updated == nil {
		s.internalError(c, "Error while updating category", err, "admin_id", adminID)
		return
	}
	respondOK(c, "Category Updated Successfully", gin.H{"category": updated})
}

func (s *server) getCategory(c *gin.Context) {
	categoryID := c.Param("category_id")
	if err := validateUUID("Category ID", categoryID); err != nil {
		respondError(c, 400, "Category ID is invalid")
		return
	}
	category, err := getCategoryByFilter(s.db, map[string]any{"category_id": categoryID})
	if err != nil {
		s.internalError(c, "Error while fetching category", err)
		return
	}
	if category == nil {
		respondError(c, 400, "Category not found")
		return
	}
	respondOK(c, "Category Found", category)
}

func (s *server) listAllCategories(c *gin.Context) {
	limit, skip := pageParams(c)
	categories, err := listCategories(s.db, limit, skip)
	if err != nil {
		s.internalError(c, "Error while fetching all categories", err)
		return
	}
	var total int64
	if len(categories) > 0 {
		if total, err = countCategories(s.db); err != nil {
			s.internalError(c, "Error while fetching all categories", err)
			return
		}
	}
	setTotalCount(c, total)
	respondOK(c, "Categories Fetched Successfully", categories)
}

// Hard delete, refused while products still reference the category. The
// restrict FK would reject such a delete anyway; checking first turns that
// into a readable conflict instead of a raw store error.
func (s *server) deleteCategory(c *gin.Context) {
	adminID := c.GetString(ctxAdminID)
	categoryID := c.Param("category_id")
	if err := validateUUID("Category ID", categoryID); err != nil {
		respondError(c, 400, "Category ID is invalid")
		return
	}
	category, err := getCategoryByFilter(s.db, map[string]any{"category_id": categoryID})
	if err != nil {
		s.internalError(c, "Error while deleting category", err, "admin_id", adminID)
		return
	}
	if category == nil {
		respondError(c, 400, "Category not found")
		return
	}

	inUse, err := countProducts(s.db, categoryID, false)
	if err != nil {
		s.internalError(c, "Error while deleting category", err, "admin_id", adminID)
		return
	}
	if inUse > 0 {
		respondError(c, 409, "Category has products and cannot be deleted")
		return
	}

	if err := hardDeleteCategory(s.db, categoryID); err != nil {
		s.internalError(c, "Error while deleting category", err, "admin_id", adminID)
		return
	}
	respondOK(c, "Category Deleted successfully", nil)
}
