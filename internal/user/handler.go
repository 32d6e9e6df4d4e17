// File: internal/user/handler.go
package user

import (
	"errors"

	"iserviceseeker_backend/internal/common"
	"iserviceseeker_backend/internal/shared"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Handler struct holds dependencies for user handlers.
type Handler struct {
	service *ServiceImplementation
	logger  *zap.Logger
}

// NewHandler creates a new user handler.
func NewHandler(service *ServiceImplementation, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes sets up the routes for user operations. Every route requires
// authentication; the user row itself is provisioned by the auth middleware
// on the first verified request.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMW gin.HandlerFunc) {
	userGroup := router.Group("/users")
	userGroup.Use(authMW)
	{
		userGroup.GET("/me", h.getMe)
		userGroup.GET("/me/full", h.getMeWithProfile)
		userGroup.PUT("/me", h.updateMe)
		userGroup.GET("/:id", h.getUserByID)
	}
}

func (h *Handler) getMe(c *gin.Context) {
	userID := common.GetUserIDFromContext(c)
	if userID == "" {
		h.logger.Error("User ID not found in context for /me", zap.String("path", c.Request.URL.Path))
		common.RespondWithError(c, common.ErrInternalServer.WithDetails("User identifier missing."))
		return
	}
	usr, err := h.service.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "User profile retrieved successfully.", shared.ToUserResponse(usr))
}

func (h *Handler) getMeWithProfile(c *gin.Context) {
	userID := common.GetUserIDFromContext(c)
	if userID == "" {
		common.RespondWithError(c, common.ErrInternalServer.WithDetails("User identifier missing."))
		return
	}
	resp, err := h.service.GetUserWithProfile(c.Request.Context(), userID)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "User profile retrieved successfully.", resp)
}

func (h *Handler) updateMe(c *gin.Context) {
	userID := common.GetUserIDFromContext(c)
	if userID == "" {
		common.RespondWithError(c, common.ErrInternalServer.WithDetails("User identifier missing."))
		return
	}

	var req UpdateUserNamesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Update user: Invalid request body", zap.Error(err))
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(ve)))
			return
		}
		common.RespondWithError(c, common.ErrBadRequest.WithDetails(err.Error()))
		return
	}

	usr, err := h.service.UpdateUserNames(c.Request.Context(), userID, req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "User updated successfully.", shared.ToUserResponse(usr))
}

func (h *Handler) getUserByID(c *gin.Context) {
	targetUserID := c.Param("id")
	requestingUserID := common.GetUserIDFromContext(c)
	requestingUserRole := common.GetUserRoleFromContext(c)

	if requestingUserRole != shared.RoleAdmin && requestingUserID != targetUserID {
		h.logger.Warn("User attempting to fetch another user's profile without admin rights",
			zap.String("requestingUserID", requestingUserID),
			zap.String("targetUserID", targetUserID))
		common.RespondWithError(c, common.ErrForbidden.WithDetails("You are not authorized to view this profile."))
		return
	}

	usr, err := h.service.GetUserByID(c.Request.Context(), targetUserID)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "User retrieved successfully.", shared.ToUserResponse(usr))
}
