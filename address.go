// address.go

package main

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type addressRequest struct {
	CustomerName    string `json:"customer_name"`
	PhoneNumber     string `json:"phone_number"`
	AddressNickname string `json:"address_nickname"`
	AddressLine     string `json:"address_line"`
	City            string `json:"city"`
	State           string `json:"state"`
	Pincode         string `json:"pincode"`
	Instructions    string `json:"instructions"`
}

func (r addressRequest) validate() error {
	if err := validateFullName(r.CustomerName); err != nil {
		return err
	}
	if err := validatePhone(r.PhoneNumber); err != nil {
		return err
	}
	if err := validateFullName(r.AddressNickname); err != nil {
		return err
	}
	if err := validateAddressLine(r.AddressLine); err != nil {
		return err
	}
	if err := validateFullName(r.City); err != nil {
		return err
	}
	if err := validateFullName(r.State); err != nil {
		return err
	}
	if err := validatePincode(r.Pincode); err != nil {
		return err
	}
	if r.Instructions != "" {
		return validateDescription(r.Instructions)
	}
	return nil
}

func (s *server) createAddress(c *gin.Context) {
	userID := c.GetString(ctxUserID)
	var req addressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, 400, "Invalid JSON")
		return
	}
	if err := req.validate(); err != nil {
		respondError(c, 400, err.Error())
		return
	}

	address := Address{
		AddressID:       uuid.NewString(),
		UserID:          userID,
		CustomerName:    req.CustomerName,
		PhoneNumber:     req.PhoneNumber,
		AddressNickname: req.AddressNickname,
		AddressLine:     req.AddressLine,
		City:            req.City,
		State:           req.State,
		Pincode:         req.Pincode,
		Instructions:    req.Instructions,
	}
	if err := s.db.Create(&address).Error; err != nil {
		s.internalError(c, "Error while creating address", err, "user_id", userID)
		return
	}
	respond(c, 201, true, "Address Created Successfully", address)
}

func (s *server) listUserAddresses(c *gin.Context) {
	userID := c.GetString(ctxUserID)
	limit, skip := pageParams(c)

	addresses, err := listAddresses(s.db, userID, limit, skip)
	if err != nil {
		s.internalError(c, "Error while fetching addresses", err, "user_id", userID)
		return
	}
	var total int64
	if len(addresses) > 0 {
		if total, err = countAddresses(s.db, userID); err != nil {
			s.internalError(c, "Error while fetching addresses", err, "user_id", userID)
			return
		}
	}
	setTotalCount(c, total)
	respondOK(c, "Addresses Fetched Successfully", addresses)
}

func (s *server) getAddress(c *gin.Context) {
	userID := c.GetString(ctxUserID)
	addressID := c.Param("address_id")
	if err := validateUUID("Address ID", addressID); err != nil {
		respondError(c, 400, "Address ID is invalid")
		return
	}
	address, err := getAddressByFilter(s.db, map[string]any{
		"address_id": addressID, "user_id": userID, "is_deleted": false,
	})
	if err != nil {
		s.internalError(c, "Error while fetching address", err, "user_id", userID)
		return
	}
	if address == nil {
		respondError(c, 400, "Address not found")
		return
	}
	respondOK(c, "Address Found", address)
}

func (s *server) updateUserAddress(c *gin.Context) {
	userID := c.GetString(ctxUserID)
	addressID := c.Param("address_id")
	var req addressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, 400, "Invalid JSON")
		return
	}
	if err := validateUUID("Address ID", addressID); err != nil {
		respondError(c, 400, "Address ID is invalid")
		return
	}
	if err := req.validate(); err != nil {
		respondError(c, 400, err.Error())
		return
	}

	address, err := getAddressByFilter(s.db, map[string]any{
		"address_id": addressID, "user_id": userID, "is_deleted": false,
	})
	if err != nil {
		s.internalError(c, "Error while updating address", err, "user_id", userID)
		return
	}
	if address == nil {
		respondError(c, 400, "Address not found")
		return
	}

	if err := updateAddress(s.db, addressID, map[string]any{
		"customer_name":    req.CustomerName,
		"phone_number":     req.PhoneNumber,
		"address_nickname": req.AddressNickname,
		"address_line":     req.AddressLine,
		"city":             req.City,
		"state":            req.State,
		"pincode":          req.Pincode,
		"instructions":     req.Instructions,
	}); err != nil {
		s.internalError(c, "Error while updating address", err, "user_id", userID)
		return
	}
	updated, err := getAddressByFilter(s.db, map[string]any{"address_id": addressID})
	if err != nil || updated == nil {
		s.internalError(c, "Error while updating address", err, "user_id", userID)
		return
	}
	respondOK(c, "Address Updated Successfully", updated)
}

// Soft delete: orders keep their denormalized copy, so history is unaffected.
func (s *server) deleteUserAddress(c *gin.Context) {
	userID := c.GetString(ctxUserID)
	addressID := c.Param("address_id")
	if err := validateUUID("Address ID", addressID); err != nil {
		respondError(c, 400, "Address ID is invalid")
		return
	}
	address, err := getAddressByFilter(s.db, map[string]any{
		"address_id": addressID, "user_id": userID, "is_deleted": false,
	})
	if err != nil {
		s.internalError(c, "Error while deleting address", err, "user_id", userID)
		return
	}
	if address == nil {
		respondError(c, 400, "Address not found")
		return
	}
	if err := updateAddress(s.db, addressID, map[string]any{"is_deleted": true}); err != nil {
		s.internalError(c, "Error while deleting address", err, "user_id", userID)
		return
	}
	respondOK(c, "Address Deleted successfully", nil)
}
