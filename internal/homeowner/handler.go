// File: internal/homeowner/handler.go
package homeowner

import (
	"errors"

	"iserviceseeker_backend/internal/common"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Handler struct holds dependencies for homeowner profile handlers.
type Handler struct {
	service Service
	logger  *zap.Logger
}

// NewHandler creates a new homeowner handler.
func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes sets up the routes for homeowner profile operations.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMW gin.HandlerFunc) {
	group := router.Group("/profiles/homeowner")
	group.Use(authMW)
	{
		group.POST("", h.completeProfile)
		group.GET("/me", h.getMyProfile)
		group.PUT("/me", h.updateMyProfile)
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
		h.logger.Warn("Complete homeowner profile: Invalid request body", zap.Error(err))
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
	common.RespondCreated(c, "Homeowner profile completed successfully.", ToProfileResponse(profile))
}

func (h *Handler) getMyProfile(c *gin.Context) {
	userID := common.GetUserIDFromContext(c)
	if userID == "" {
		common.RespondWithError(c, common.ErrInternalServer.WithDetails("User identifier missing."))
		return
	}
	profile, err := h.service.GetByUserID(c.Request.Context(), userID)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Homeowner profile retrieved successfully.", ToProfileResponse(profile))
}

func (h *Handler) updateMyProfile(c *gin.Context) {
	userID := common.GetUserIDFromContext(c)
	if userID == "" {
		common.RespondWithError(c, common.ErrInternalServer.WithDetails("User identifier missing."))
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Update homeowner profile: Invalid request body", zap.Error(err))
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(ve)))
			return
		}
		common.RespondWithError(c, common.ErrBadRequest.WithDetails(err.Error()))
		return
	}

	profile, err := h.service.UpdateProfile(c.Request.Context(), userID, req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Homeowner profile updated successfully.", ToProfileResponse(profile))
}
