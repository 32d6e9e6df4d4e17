// File: internal/provider/handler.go
package provider

import (
	"errors"
	"strconv"

	"iserviceseeker_backend/internal/common"
	"iserviceseeker_backend/internal/filestorage"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Handler struct holds dependencies for provider handlers.
type Handler struct {
	service Service
	files   *filestorage.FileStorageService
	logger  *zap.Logger
}

// NewHandler creates a new provider handler.
func NewHandler(service Service, files *filestorage.FileStorageService, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		files:   files,
		logger:  logger,
	}
}

// RegisterRoutes sets up the routes for provider operations.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMW gin.HandlerFunc) {
	group := router.Group("/providers")
	{
		group.GET("/search", h.searchProfiles)
		group.GET("/:id", h.getProfile)

		authed := group.Group("")
		authed.Use(authMW)
		{
			authed.POST("", h.completeProfile)
			authed.GET("/mine", h.getMyProfiles)
			authed.PUT("/:id", h.updateProfile)
			authed.GET("/:id/role", h.getMyRole)
			authed.POST("/:id/members", h.addMember)
			authed.DELETE("/:id/members/me", h.removeSelf)
			authed.DELETE("/:id/members/:userId", h.removeMember)
			authed.POST("/:id/license-document", h.uploadLicenseDocument)
		}
	}
}

func (h *Handler) completeProfile(c *gin.Context) {
	userID := common.GetUserIDFromContext(c)
	if userID == "" {
		common.RespondWithError(c, common.ErrInternalServer.WithDetails("User identifier missing."))
		return
	}

	var req CompleteProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Complete provider profile: Invalid request body", zap.Error(err))
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(ve)))
			return
		}
		common.RespondWithError(c, common.ErrBadRequest.WithDetails(err.Error()))
		return
	}

	profile, err := h.service.CompleteProfile(c.Request.Context(), userID, req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondCreated(c, "Provider profile completed successfully.", ToProfileResponse(profile))
}

func (h *Handler) getProfile(c *gin.Context) {
	profileID, err := parseProfileID(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid provider profile ID format."))
		return
	}
	profile, err := h.service.GetProfileByID(c.Request.Context(), profileID)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Provider profile retrieved successfully.", ToProfileResponse(profile))
}

func (h *Handler) getMyProfiles(c *gin.Context) {
	userID := common.GetUserIDFromContext(c)
	profiles, err := h.service.GetProfilesForUser(c.Request.Context(), userID)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	responses := make([]ProfileResponse, len(profiles))
	for i, p := range profiles {
		responses[i] = ToProfileResponse(&p)
	}
	common.RespondOK(c, "Provider profiles retrieved successfully.", responses)
}

func (h *Handler) searchProfiles(c *gin.Context) {
	query := c.Query("q")
	page, pageSize := common.GetPaginationParams(c)

	profiles, pagination, err := h.service.SearchProfiles(c.Request.Context(), query, page, pageSize)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	responses := make([]ProfileResponse, len(profiles))
	for i, p := range profiles {
		responses[i] = ToProfileResponse(&p)
	}
	common.RespondPaginated(c, "Provider profiles retrieved successfully.", responses, pagination)
}

func (h *Handler) updateProfile(c *gin.Context) {
	userID := common.GetUserIDFromContext(c)
	profileID, err := parseProfileID(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid provider profile ID format."))
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Update provider profile: Invalid request body", zap.Error(err), zap.Uint("profileID", profileID))
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(ve)))
			return
		}
		common.RespondWithError(c, common.ErrBadRequest.WithDetails(err.Error()))
		return
	}

	profile, err := h.service.UpdateProfile(c.Request.Context(), userID, profileID, req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Provider profile updated successfully.", ToProfileResponse(profile))
}

func (h *Handler) getMyRole(c *gin.Context) {
	userID := common.GetUserIDFromContext(c)
	profileID, err := parseProfileID(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid provider profile ID format."))
		return
	}
	role, err := h.service.GetUserRole(c.Request.Context(), userID, profileID)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Membership role retrieved successfully.", gin.H{"role": role})
}

func (h *Handler) addMember(c *gin.Context) {
	actorID := common.GetUserIDFromContext(c)
	profileID, err := parseProfileID(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid provider profile ID format."))
		return
	}

	allowed, err := h.service.CanManageProfile(c.Request.Context(), actorID, profileID)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	if !allowed {
		common.RespondWithError(c, common.ErrForbidden.WithDetails("You do not have permission to manage this provider profile."))
		return
	}

	var req AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Add provider member: Invalid request body", zap.Error(err), zap.Uint("profileID", profileID))
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(ve)))
			return
		}
		common.RespondWithError(c, common.ErrBadRequest.WithDetails(err.Error()))
		return
	}

	role := req.Role
	if role == "" {
		role = RoleMember
	}
	canManageProfile, canManageBookings, canViewReports := DerivePermissions(role)
	if req.CanManageProfile != nil {
		canManageProfile = *req.CanManageProfile
	}
	if req.CanManageBookings != nil {
		canManageBookings = *req.CanManageBookings
	}
	if req.CanViewReports != nil {
		canViewReports = *req.CanViewReports
	}

	membership, err := h.service.AddUserToProvider(c.Request.Context(), req.UserID, profileID, role, canManageProfile, canManageBookings, canViewReports)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondCreated(c, "Member added to provider profile.", ToMembershipResponse(membership))
}

func (h *Handler) removeSelf(c *gin.Context) {
	userID := common.GetUserIDFromContext(c)
	profileID, err := parseProfileID(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid provider profile ID format."))
		return
	}
	if err := h.service.RemoveUserFromProvider(c.Request.Context(), userID, profileID); err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondNoContent(c)
}

func (h *Handler) removeMember(c *gin.Context) {
	actorID := common.GetUserIDFromContext(c)
	profileID, err := parseProfileID(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid provider profile ID format."))
		return
	}
	targetUserID := c.Param("userId")

	if targetUserID != actorID {
		allowed, err := h.service.CanManageProfile(c.Request.Context(), actorID, profileID)
		if err != nil {
			common.RespondWithError(c, err)
			return
		}
		if !allowed {
			common.RespondWithError(c, common.ErrForbidden.WithDetails("You do not have permission to manage this provider profile."))
			return
		}
	}

	if err := h.service.RemoveUserFromProvider(c.Request.Context(), targetUserID, profileID); err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondNoContent(c)
}

func (h *Handler) uploadLicenseDocument(c *gin.Context) {
	actorID := common.GetUserIDFromContext(c)
	profileID, err := parseProfileID(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid provider profile ID format."))
		return
	}

	fileHeader, err := c.FormFile("document")
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("A 'document' file is required."))
		return
	}

	relativePath, err := h.files.SaveUploadedFile(fileHeader, "licenses")
	if err != nil {
		h.logger.Error("Failed to store license document", zap.Error(err), zap.Uint("profileID", profileID))
		common.RespondWithError(c, common.ErrInternalServer.WithDetails("Could not store the uploaded document."))
		return
	}

	profile, err := h.service.AttachLicenseDocument(c.Request.Context(), actorID, profileID, relativePath)
	if err != nil {
		// The upload is orphaned if the gate rejects it; clean up.
		if delErr := h.files.DeleteFile(relativePath); delErr != nil {
			h.logger.Warn("Failed to remove orphaned license document", zap.Error(delErr), zap.String("path", relativePath))
		}
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "License document attached successfully.", ToProfileResponse(profile))
}

func parseProfileID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
