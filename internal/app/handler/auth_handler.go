package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"custody/internal/app/apperr"
	"custody/internal/app/config"
	"custody/internal/app/ds"
	"custody/internal/app/dto"
	"custody/internal/app/middleware"
	"custody/internal/app/repository"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

const tokenIssuer = "custody-terms"

// TokenRevoker puts a token on the blacklist until it expires. *redis.Client implements it.
type TokenRevoker interface {
	WriteJWTToBlacklist(ctx context.Context, jwtStr string, jwtTTL time.Duration) error
}

type AuthHandler struct {
	Repository *repository.Repository
	Revoker    TokenRevoker
	Auth       *middleware.AuthMiddleware
	Config     *config.Config
}

// NewAuthHandler accepts a nil revoker when Redis is disabled; logout then answers 503.
func NewAuthHandler(r *repository.Repository, revoker TokenRevoker, auth *middleware.AuthMiddleware, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		Repository: r,
		Revoker:    revoker,
		Auth:       auth,
		Config:     cfg,
	}
}

// LoginUser checks the bcrypt hash and issues a signed token.
// @Summary Login
// @Description Authenticates a user and returns a JWT
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/auth/login [post]
func (h *AuthHandler) LoginUser(ctx *gin.Context) {
	var request dto.LoginRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		errorResponse(ctx, http.StatusBadRequest, "Dados inválidos: "+err.Error())
		return
	}

	user, err := h.Repository.GetUserByLogin(ctx.Request.Context(), request.Login)
	if err != nil && !errors.Is(err, apperr.ErrNotFound) {
		fail(ctx, err)
		return
	}
	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(request.Password)) != nil {
		errorResponse(ctx, http.StatusUnauthorized, "Login ou senha inválidos")
		return
	}

	now := time.Now()
	token := jwt.NewWithClaims(h.Config.JWT.SigningMethod, ds.JWTClaims{
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: now.Add(h.Config.JWT.ExpiresIn).Unix(),
			IssuedAt:  now.Unix(),
			Issuer:    tokenIssuer,
		},
		UserID: user.ID,
		Login:  user.Login,
		Role:   user.Role,
	})

	accessToken, err := token.SignedString([]byte(h.Config.JWT.Token))
	if err != nil {
		fail(ctx, err)
		return
	}

	middleware.Logger(ctx).WithFields(logrus.Fields{"user": user.ID}).Info("user logged in")
	ctx.JSON(http.StatusOK, dto.LoginResponse{
		UserID:    user.ID,
		Login:     user.Login,
		Role:      user.Role.String(),
		Token:     accessToken,
		TokenType: "Bearer",
		ExpiresIn: int(h.Config.JWT.ExpiresIn.Seconds()),
	})
}

// LogoutUser blacklists the caller's token for the rest of its lifetime.
// @Summary Logout
// @Description Revokes the current token
// @Tags Authentication
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.SuccessResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /api/auth/logout [post]
func (h *AuthHandler) LogoutUser(ctx *gin.Context) {
	if h.Revoker == nil {
		errorResponse(ctx, http.StatusServiceUnavailable, "Revogação de sessão indisponível")
		return
	}

	tokenString := middleware.BearerToken(ctx.GetHeader("Authorization"))
	claims, err := h.Auth.ParseClaims(tokenString)
	if err != nil {
		errorResponse(ctx, http.StatusUnauthorized, "Token inválido")
		return
	}

	ttl := time.Until(time.Unix(claims.ExpiresAt, 0))
	if ttl > 0 {
		if err := h.Revoker.WriteJWTToBlacklist(ctx.Request.Context(), tokenString, ttl); err != nil {
			middleware.Logger(ctx).WithError(err).Error("token revocation failed")
			errorResponse(ctx, http.StatusServiceUnavailable, "Revogação de sessão indisponível")
			return
		}
	}

	successResponse(ctx, http.StatusOK, "Sessão encerrada", nil)
}

// GetUserProfile
// @Summary Current user
// @Description Returns the authenticated user and the identity fields on file
// @Tags Authentication
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.UserResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/auth/profile [get]
func (h *AuthHandler) GetUserProfile(ctx *gin.Context) {
	actor, ok := mustActor(ctx)
	if !ok {
		return
	}

	user, err := h.Repository.GetUserByID(ctx.Request.Context(), actor.UserID)
	if err != nil {
		fail(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, toUserResponse(user))
}
