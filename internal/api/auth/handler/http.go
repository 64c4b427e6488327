package authHandler

import (
	authService "LulaiPlatform/internal/api/auth/service"
	"LulaiPlatform/internal/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type AuthHandler struct {
	log         *logrus.Logger
	validator   *validator.Validate
	middleware  middleware.Middleware
	authService authService.IAuthService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	as authService.IAuthService,
) *AuthHandler {
	return &AuthHandler{
		log:         log,
		validator:   validate,
		middleware:  middleware,
		authService: as,
	}
}

func (h *AuthHandler) Start(srv fiber.Router) {
	auth := srv.Group("/auth")

	auth.Post("/register", h.Register)
	auth.Post("/login", h.Login)
	auth.Post("/verify-email", h.VerifyEmail)
	auth.Post("/resend-otp", h.ResendOTP)
	auth.Post("/forgot-password", h.RequestPasswordReset)
	auth.Post("/reset-password", h.ResetPassword)

	auth.Get("/google", h.GoogleLogin)
	auth.Get("/google/callback", h.GoogleCallback)

	auth.Get("/profile", h.middleware.NewTokenMiddleware, h.GetProfile)
	auth.Put("/profile", h.middleware.NewTokenMiddleware, h.UpdateProfile)
	auth.Post("/profile/photo", h.middleware.NewTokenMiddleware, h.UploadProfilePhoto)
	auth.Delete("/profile", h.middleware.NewTokenMiddleware, h.DeleteAccount)

	admin := srv.Group("/admin/auth")
	admin.Post("/login", h.AdminLogin)
	admin.Post("/invite", h.middleware.NewAdminTokenMiddleware, h.InviteAdmin)
	admin.Post("/complete-setup", h.CompleteAdminSetup)
}
