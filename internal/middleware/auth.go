// File: internal/middleware/auth.go
package middleware

import (
	"iserviceseeker_backend/internal/common"
	"iserviceseeker_backend/internal/firebase"
	"iserviceseeker_backend/internal/shared"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthMiddleware verifies the bearer Firebase ID token, provisions the local
// user row on first sight and stores the user's identity in the context.
func AuthMiddleware(fbService *firebase.FirebaseService, userService shared.Service, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := common.GetTokenFromContext(c)
		if tokenString == "" {
			logger.Debug("Authorization header missing or malformed")
			common.RespondWithError(c, common.ErrUnauthorized.WithDetails("Authorization header format must be 'Bearer <token>'."))
			return
		}

		firebaseToken, err := fbService.VerifyIDToken(c.Request.Context(), tokenString)
		if err != nil {
			logger.Warn("Firebase ID token verification failed", zap.Error(err))
			common.RespondWithError(c, common.ErrUnauthorized.WithDetails("Invalid or expired token."))
			return
		}

		user, wasCreated, err := userService.GetOrCreateUserFromFirebaseClaims(c.Request.Context(), firebaseToken)
		if err != nil {
			logger.Error("Failed to provision user from token claims", zap.Error(err), zap.String("uid", firebaseToken.UID))
			common.RespondWithError(c, err)
			return
		}
		if wasCreated {
			logger.Info("Provisioned new user from first authenticated request", zap.String("userID", user.ID))
		}

		c.Set(common.UserIDKey, user.ID)
		if user.Email != nil {
			c.Set(common.UserEmailKey, *user.Email)
		}
		c.Set(common.UserRoleKey, user.Role)

		logger.Debug("User authenticated successfully",
			zap.String("userID", user.ID),
			zap.String("role", user.Role),
		)

		c.Next()
	}
}

// RoleAuthMiddleware checks that the authenticated user has one of the
// required roles. It must run after AuthMiddleware.
func RoleAuthMiddleware(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole := common.GetUserRoleFromContext(c)
		if userRole == "" {
			common.RespondWithError(c, common.ErrForbidden.WithDetails("User role not found in context."))
			return
		}

		isAllowed := false
		for _, role := range allowedRoles {
			if userRole == role {
				isAllowed = true
				break
			}
		}

		if !isAllowed {
			common.RespondWithError(c, common.ErrForbidden.WithDetails("You do not have sufficient permissions for this resource."))
			return
		}
		c.Next()
	}
}
