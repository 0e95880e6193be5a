package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"custody/internal/app/config"
	"custody/internal/app/ds"
	"custody/internal/app/role"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
	"github.com/sirupsen/logrus"
)

// Context keys set by WithAuthCheck.
const (
	KeyUserID   = "userID"
	KeyUserRole = "userRole"
	KeyLogin    = "login"
)

// Blacklist reports revoked tokens. *redis.Client implements it.
type Blacklist interface {
	IsJWTBlacklisted(ctx context.Context, jwtStr string) (bool, error)
}

type AuthMiddleware struct {
	Blacklist Blacklist
	Config    *config.Config
}

// NewAuthMiddleware accepts a nil blacklist when Redis is disabled; revocation is then not checked.
func NewAuthMiddleware(blacklist Blacklist, cfg *config.Config) *AuthMiddleware {
	return &AuthMiddleware{
		Blacklist: blacklist,
		Config:    cfg,
	}
}

// WithAuthCheck requires a valid bearer token and, when roles are given, one of them.
func (am *AuthMiddleware) WithAuthCheck(assignedRoles ...role.Role) gin.HandlerFunc {
	return gin.HandlerFunc(func(gCtx *gin.Context) {
		jwtStr := BearerToken(gCtx.GetHeader("Authorization"))
		if jwtStr == "" {
			gCtx.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		if am.Blacklist != nil {
			revoked, err := am.Blacklist.IsJWTBlacklisted(gCtx.Request.Context(), jwtStr)
			if err != nil {
				logrus.WithError(err).Error("token blacklist unavailable")
				gCtx.AbortWithStatus(http.StatusServiceUnavailable)
				return
			}
			if revoked {
				gCtx.AbortWithStatus(http.StatusUnauthorized)
				return
			}
		}

		claims, err := am.ParseClaims(jwtStr)
		if err != nil {
			gCtx.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		if len(assignedRoles) > 0 && !hasRequiredRole(claims.Role, assignedRoles) {
			gCtx.AbortWithStatus(http.StatusForbidden)
			return
		}

		gCtx.Set(KeyUserID, claims.UserID)
		gCtx.Set(KeyUserRole, claims.Role)
		gCtx.Set(KeyLogin, claims.Login)

		gCtx.Next()
	})
}

// ParseClaims validates the signature and expiry of a token.
func (am *AuthMiddleware) ParseClaims(jwtStr string) (*ds.JWTClaims, error) {
	token, err := jwt.ParseWithClaims(jwtStr, &ds.JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != am.Config.JWT.SigningMethod {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(am.Config.JWT.Token), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*ds.JWTClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

// BearerToken strips an optional "Bearer " prefix.
func BearerToken(header string) string {
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}

func hasRequiredRole(userRole role.Role, requiredRoles []role.Role) bool {
	for _, requiredRole := range requiredRoles {
		if userRole == requiredRole {
			return true
		}
	}
	return false
}
