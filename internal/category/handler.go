// File: internal/category/handler.go
package category

import (
	"errors"
	"strconv"

	"iserviceseeker_backend/internal/common"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Handler struct holds dependencies for category handlers.
type Handler struct {
	service Service
	logger  *zap.Logger
}

// NewHandler creates a new category handler.
func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes sets up the routes for category operations.
// It takes auth and admin middleware functions as parameters.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMW gin.HandlerFunc, adminRoleMW gin.HandlerFunc) {
	categoryGroup := router.Group("/categories")
	{
		categoryGroup.GET("", h.getActiveCategories)
		categoryGroup.GET("/:idOrSlug", h.getCategory)

		adminCategoryGroup := categoryGroup.Group("/admin")
		adminCategoryGroup.Use(authMW)
		adminCategoryGroup.Use(adminRoleMW)
		{
			adminCategoryGroup.POST("", h.adminCreateCategory)
			adminCategoryGroup.PUT("/:id", h.adminUpdateCategory)
			adminCategoryGroup.DELETE("/:id", h.adminDeleteCategory)
		}
	}
}

func (h *Handler) getActiveCategories(c *gin.Context) {
	categories, err := h.service.GetActiveCategories(c.Request.Context())
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	categoryResponses := make([]CategoryResponse, len(categories))
	for i, cat := range categories {
		categoryResponses[i] = ToCategoryResponse(&cat)
	}
	common.RespondOK(c, "Service categories retrieved successfully.", categoryResponses)
}

func (h *Handler) getCategory(c *gin.Context) {
	catModel, err := h.service.GetCategoryByIDOrSlug(c.Request.Context(), c.Param("idOrSlug"))
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Service category retrieved successfully.", ToCategoryResponse(catModel))
}

func (h *Handler) adminCreateCategory(c *gin.Context) {
	var req AdminCreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Admin create category: Invalid request body", zap.Error(err))
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(ve)))
			return
		}
		common.RespondWithError(c, common.ErrBadRequest.WithDetails(err.Error()))
		return
	}
	catModel, err := h.service.AdminCreateCategory(c.Request.Context(), req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondCreated(c, "Service category created successfully.", ToCategoryResponse(catModel))
}

func (h *Handler) adminUpdateCategory(c *gin.Context) {
	categoryID, err := parseCategoryID(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid category ID format."))
		return
	}
	var req AdminCreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Admin update category: Invalid request body", zap.Error(err), zap.Uint("categoryID", categoryID))
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(ve)))
			return
		}
		common.RespondWithError(c, common.ErrBadRequest.WithDetails(err.Error()))
		return
	}
	catModel, err := h.service.AdminUpdateCategory(c.Request.Context(), categoryID, req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Service category updated successfully.", ToCategoryResponse(catModel))
}

func (h *Handler) adminDeleteCategory(c *gin.Context) {
	categoryID, err := parseCategoryID(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid category ID format."))
		return
	}
	if err := h.service.AdminDeleteCategory(c.Request.Context(), categoryID); err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondNoContent(c)
}

func parseCategoryID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
