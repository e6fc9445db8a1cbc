// admin.go

package main

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ----- Admin auth -----

type signinRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type updatePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
	CnfPassword string `json:"cnf_password"`
}

func (r updatePasswordRequest) validate() error {
	if err := validatePassword(r.OldPassword); err != nil {
		return err
	}
	if err := validatePassword(r.NewPassword); err != nil {
		return err
	}
	if r.CnfPassword != r.NewPassword {
		return badRequest("cnf_password must match new_password")
	}
	return nil
}

func (s *server) adminSignin(c *gin.Context) {
	var req signinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, 400, "Invalid JSON")
		return
	}
	if err := validateEmail(req.Email); err != nil {
		s.log.Debug("validation error while admin signin", "err", err, "requestId", requestID(c))
		respondError(c, 400, err.Error())
		return
	}
	if err := validatePassword(req.Password); err != nil {
		respondError(c, 400, err.Error())
		return
	}

	admin, err := getAdminByFilter(s.db, map[string]any{"email": normalizeEmail(req.Email), "is_deleted": false})
	if err != nil {
		s.internalError(c, "Error while admin sign in", err)
		return
	}
	if admin == nil || !passwordMatches(admin.Password, req.Password) {
		respondError(c, 400, "Email or password is Invalid")
		return
	}

	token, err := s.issueAdminToken(admin.AdminID, admin.Email, admin.Username)
	if err != nil {
		s.internalError(c, "Error while admin sign in", err)
		return
	}

	now := time.Now()
	if err := updateAdmin(s.db, admin.AdminID, map[string]any{
		"last_login_ip":        c.ClientIP(),
		"last_login_timestamp": now,
	}); err != nil {
		s.internalError(c, "Error while admin sign in", err)
		return
	}

	c.Header("token", token)
	respondOK(c, "Successfully Signed in!", gin.H{
		"admin_id": admin.AdminID,
		"email":    admin.Email,
		"username": admin.Username,
	})
}

// Sign-out is stateless: there is no revocation list, the client just drops
// the token.
func (s *server) adminSignout(c *gin.Context) {
	respondOK(c, "Logged out successfully.", nil)
}

func (s *server) adminUpdatePassword(c *gin.Context) {
	admin := currentAdmin(c)
	if admin == nil {
		respondError(c, 400, "Admin not found")
		return
	}
	var req updatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, 400, "Invalid JSON")
		return
	}
	if err := req.validate(); err != nil {
		s.log.Debug("update password validation failed", "err", err, "admin_id", admin.AdminID, "requestId", requestID(c))
		respondError(c, 400, err.Error())
		return
	}
	if !passwordMatches(admin.Password, req.OldPassword) {
		respondError(c, 400, "Invalid Password")
		return
	}
	if req.OldPassword == req.NewPassword {
		respondError(c, 400, "Old Password cannot be New password")
		return
	}

	hashed, err := hashPassword(req.NewPassword)
	if err != nil {
		s.internalError(c, "Error while updating admin password", err, "admin_id", admin.AdminID)
		return
	}
	now := time.Now()
	if err := updateAdmin(s.db, admin.AdminID, map[string]any{
		"password":            hashed,
		"password_changed_at": now,
		"updated_by":          admin.AdminID,
	}); err != nil {
		s.internalError(c, "Error while updating admin password", err, "admin_id", admin.AdminID)
		return
	}

	token, err := s.issueAdminToken(admin.AdminID, admin.Email, admin.Username)
	if err != nil {
		s.internalError(c, "Error while updating admin password", err, "admin_id", admin.AdminID)
		return
	}
	c.Header("token", token)
	respondOK(c, "Password Updated successfully", gin.H{
		"admin_id": admin.AdminID,
		"email":    admin.Email,
		"username": admin.Username,
	})
}

func (s *server) adminProfile(c *gin.Context) {
	admin := currentAdmin(c)
	if admin == nil {
		respondError(c, 400, "Admin not found")
		return
	}
	out := *admin
	out.Password = ""
	respondOK(c, "Profile Info.", out)
}

// ----- Admin user management -----

type createAdminRequest struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	CnfPassword string `json:"cnf_password"`
}

func (s *server) createAdminUser(c *gin.Context) {
	createdBy := c.GetString(ctxAdminID)
	var req createAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, 400, "Invalid JSON")
		return
	}
	if err := validateUsername(req.Username); err != nil {
		respondError(c, 400, err.Error())
		return
	}
	if err := validateEmail(req.Email); err != nil {
		respondError(c, 400, err.Error())
		return
	}
	if err := validatePassword(req.Password); err != nil {
		respondError(c, 400, err.Error())
		return
	}
	if req.CnfPassword != req.Password {
		respondError(c, 400, "cnf_password must match password")
		return
	}

	usernameExists, err := getAdminByFilter(s.db, map[string]any{"username": req.Username})
	if err != nil {
		s.internalError(c, "Error while creating admin user", err)
		return
	}
	if usernameExists != nil {
		respondError(c, 400, "Username already exists!")
		return
	}
	emailExists, err := getAdminByFilter(s.db, map[string]any{"email": normalizeEmail(req.Email)})
	if err != nil {
		s.internalError(c, "Error while creating admin user", err)
		return
	}
	if emailExists != nil {
		respondError(c, 400, "Email already exists!")
		return
	}

	hashed, err := hashPassword(req.Password)
	if err != nil {
		s.internalError(c, "Error while creating admin user", err)
		return
	}
	admin := Admin{
		AdminID:   uuid.NewString(),
		Username:  req.Username,
		Password:  hashed,
		Email:     normalizeEmail(req.Email),
		CreatedBy: &createdBy,
		UpdatedBy: &createdBy,
	}
	if err := s.db.Create(&admin).Error; err != nil {
		s.internalError(c, "Error while creating admin user", err)
		return
	}
	admin.Password = ""
	respond(c, 201, true, "User created successfully.", admin)
}

func (s *server) listAdminUsers(c *gin.Context) {
	limit, skip := pageParams(c)
	admins, err := listAdmins(s.db, limit, skip)
	if err != nil {
		s.internalError(c, "Error while fetching all admin users", err)
		return
	}
	var total int64
	if len(admins) > 0 {
		if total, err = countAdmins(s.db); err != nil {
			s.internalError(c, "Error while fetching all admin users", err)
			return
		}
	}
	for i := range admins {
		admins[i].Password = ""
	}
	setTotalCount(c, total)
	respondOK(c, "Users Fetched Successfully", admins)
}

func (s *server) getAdminUser(c *gin.Context) {
	adminID := c.Param("admin_id")
	if err := validateUUID("Admin User ID", adminID); err != nil {
		respondError(c, 400, "Admin User ID is invalid")
		return
	}
	admin, err := getAdminByFilter(s.db, map[string]any{"admin_id": adminID})
	if err != nil {
		s.internalError(c, "Error while fetching admin user", err)
		return
	}
	if admin == nil {
		respondError(c, 400, "Admin User not found")
		return
	}
	admin.Password = ""
	respondOK(c, "Admin User Found", gin.H{"user": admin})
}

type updateAdminRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

func (s *server) updateAdminUser(c *gin.Context) {
	updatedBy := c.GetString(ctxAdminID)
	adminID := c.Param("admin_id")
	var req updateAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, 400, "Invalid JSON")
		return
	}
	if err := validateUUID("Admin User ID", adminID); err != nil {
		respondError(c, 400, "Admin User ID is invalid")
		return
	}
	if err := validateUsername(req.Username); err != nil {
		respondError(c, 400, err.Error())
		return
	}
	if err := validateEmail(req.Email); err != nil {
		respondError(c, 400, err.Error())
		return
	}

	admin, err := getAdminByFilter(s.db, map[string]any{"admin_id": adminID})
	if err != nil {
		s.internalError(c, "Error while updating admin user", err)
		return
	}
	if admin == nil {
		respondError(c, 400, "Admin User not found")
		return
	}

	// Uniqueness re-checked excluding the record itself.
	usernameExists, err := getAdminByFilter(s.db, map[string]any{"username": req.Username})
	if err != nil {
		s.internalError(c, "Error while updating admin user", err)
		return
	}
	if usernameExists != nil && usernameExists.AdminID != adminID {
		respondError(c, 400, "Username already exists!")
		return
	}
	emailExists, err := getAdminByFilter(s.db, map[string]any{"email": normalizeEmail(req.Email)})
	if err != nil {
		s.internalError(c, "Error while updating admin user", err)
		return
	}
	if emailExists != nil && emailExists.AdminID != adminID {
		respondError(c, 400, "Email already exists!")
		return
	}

	if err := updateAdmin(s.db, adminID, map[string]any{
		"username":   req.Username,
		"email":      normalizeEmail(req.Email),
		"updated_by": updatedBy,
	}); err != nil {
		s.internalError(c, "Error while updating admin user", err)
		return
	}
	updated, err := getAdminByFilter(s.db, map[string]any{"admin_id": adminID})
	if err != nil || updated == nil {
		s.internalError(c, "Error while updating admin user", err)
		return
	}
	updated.Password = ""
	respondOK(c, "Admin User Updated Successfully", gin.H{"user": updated})
}

type switchStatusRequest struct {
	IsDeleted *bool `json:"is_deleted"`
}

// switchAdminStatus soft-disables or re-enables an admin. An admin can never
// switch their own status.
func (s *server) switchAdminStatus(c *gin.Context) {
	updatedBy := c.GetString(ctxAdminID)
	adminID := c.Param("admin_id")
	var req switchStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.IsDeleted == nil {
		respondError(c, 400, "Admin User ID is invalid")
		return
	}
	if err := validateUUID("Admin User ID", adminID); err != nil {
		respondError(c, 400, "Admin User ID is invalid")
		return
	}
	isDeleted := *req.IsDeleted
	operation := "enabled"
	if isDeleted {
		operation = "disabled"
	}

	if updatedBy == adminID {
		respondError(c, 400, "Cannot switch self status")
		return
	}

	admin, err := getAdminByFilter(s.db, map[string]any{"admin_id": adminID})
	if err != nil {
		s.internalError(c, "Error while deleting admin user", err)
		return
	}
	if admin == nil {
		respondError(c, 400, "Admin User not found")
		return
	}
	if admin.IsDeleted == isDeleted {
		respondOK(c, "Admin User was already "+operation, nil)
		return
	}
	if err := updateAdmin(s.db, adminID, map[string]any{
		"is_deleted": isDeleted,
		"updated_by": updatedBy,
	}); err != nil {
		s.internalError(c, "Error while deleting admin user", err)
		return
	}
	respondOK(c, "Admin User "+operation+" successfully", nil)
}
