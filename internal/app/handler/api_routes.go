package handler

import (
	"custody/internal/app/middleware"
	"custody/internal/app/role"

	"github.com/gin-gonic/gin"
)

// RegisterAPIRoutes registers every REST route with its role requirements.
func (h *APIHandler) RegisterAPIRoutes(router *gin.Engine, authMiddleware *middleware.AuthMiddleware) {
	api := router.Group("/api")

	anyone := authMiddleware.WithAuthCheck(role.Employee, role.Admin)
	admin := authMiddleware.WithAuthCheck(role.Admin)

	// ============ Auth ============
	auth := api.Group("/auth")
	{
		auth.POST("/login", h.AuthHandler.LoginUser)
		auth.POST("/logout", anyone, h.AuthHandler.LogoutUser)
		auth.GET("/profile", anyone, h.AuthHandler.GetUserProfile)
		auth.PUT("/profile", anyone, h.UpdateUserProfile)
	}

	// ============ Users (admin) ============
	users := api.Group("/users", admin)
	{
		users.GET("", h.GetUsers)
		users.POST("", h.CreateUser)
		users.GET("/:id", h.GetUser)
		users.PUT("/:id", h.UpdateUser)
	}

	// ============ Equipment (admin) ============
	equipment := api.Group("/equipment", admin)
	{
		equipment.GET("", h.GetEquipment)
		equipment.POST("", h.CreateEquipment)
		equipment.GET("/:id", h.GetEquipmentByID)
		equipment.PUT("/:id", h.UpdateEquipment)
	}

	// ============ Templates (admin) ============
	templates := api.Group("/templates", admin)
	{
		templates.GET("", h.GetTemplates)
		templates.POST("", h.CreateTemplate)
		templates.GET("/:id", h.GetTemplate)
		templates.PUT("/:id", h.UpdateTemplate)
		templates.POST("/:id/file", h.UploadTemplateFile)
	}

	// ============ Terms ============
	terms := api.Group("/terms")
	{
		// signer or admin; ownership is checked by the service
		terms.GET("", anyone, h.GetTerms)
		terms.GET("/:uuid", anyone, h.GetTerm)
		terms.GET("/:uuid/sign", anyone, h.GetSigningForm)
		terms.POST("/:uuid/sign", anyone, h.SignTerm)
		terms.PUT("/:uuid/decline", anyone, h.DeclineTerm)
		terms.GET("/:uuid/download", anyone, h.DownloadTerm)
		terms.GET("/:uuid/preview", anyone, h.PreviewTerm)

		terms.POST("", admin, h.CreateTerm)
		terms.PUT("/:uuid", admin, h.UpdateTerm)
		terms.PUT("/:uuid/send", admin, h.SendTerm)
		terms.PUT("/:uuid/cancel", admin, h.CancelTerm)
		terms.PUT("/:uuid/notes", admin, h.AddTermNote)
		terms.PUT("/:uuid/items/:equipment_id/return", admin, h.ReturnEquipment)
		terms.POST("/:uuid/render", admin, h.RenderTerm)
		terms.GET("/:uuid/verify", admin, h.VerifyTerm)
	}

	router.GET("/ping", h.Ping)
}

// Ping
// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /ping [get]
func (h *APIHandler) Ping(ctx *gin.Context) {
	ctx.JSON(200, gin.H{"message": "pong"})
}
