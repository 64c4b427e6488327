package authService

import (
	"LulaiPlatform/internal/api/auth"
	authRepository "LulaiPlatform/internal/api/auth/repository"
	"LulaiPlatform/pkg/bcrypt"
	"LulaiPlatform/pkg/google"
	"LulaiPlatform/pkg/redis"
	"LulaiPlatform/pkg/s3"
	"LulaiPlatform/pkg/smtp"
	"LulaiPlatform/pkg/utils"
	"context"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type IAuthService interface {
	Register(ctx context.Context, req auth.RegisterRequest) error
	Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error)
	VerifyEmail(ctx context.Context, req auth.VerifyEmailRequest) error
	ResendOTP(ctx context.Context, req auth.ResendOTPRequest) error

	GoogleLoginURL(state string) string
	GoogleCallback(c *fiber.Ctx, code string) (auth.TokenResponse, error)

	RequestPasswordReset(ctx context.Context, req auth.RequestPasswordResetRequest) error
	ResetPassword(ctx context.Context, req auth.ResetPasswordRequest) error

	GetProfile(ctx context.Context, userID string) (auth.ProfileResponse, error)
	UpdateProfile(ctx context.Context, userID string, req auth.UpdateProfileRequest) error
	UploadProfilePhoto(ctx context.Context, userID string, photo *multipart.FileHeader) (string, error)
	DeleteAccount(ctx context.Context, userID string) error

	SeedRootAdmin(ctx context.Context) error
	AdminLogin(ctx context.Context, req auth.AdminLoginRequest) (auth.TokenResponse, error)
	InviteAdmin(ctx context.Context, req auth.AdminInviteRequest) error
	CompleteAdminSetup(ctx context.Context, req auth.AdminCompleteSetupRequest) error
}

type authServiceImpl struct {
	log            *logrus.Logger
	authRepo       authRepository.Repository
	bcryptUtils    bcrypt.IBcrypt
	utils          utils.IUtils
	redisServer    redis.IRedis
	smtpMailer     smtp.ItfSmtp
	s3Client       s3.ItfS3
	googleProvider google.ItfGoogle
}

func New(
	log *logrus.Logger,
	authRepo authRepository.Repository,
	bcryptUtils bcrypt.IBcrypt,
	utils utils.IUtils,
	redisServer redis.IRedis,
	smtpMailer smtp.ItfSmtp,
	s3Client s3.ItfS3,
	googleProvider google.ItfGoogle,
) IAuthService {
	return &authServiceImpl{
		log:            log,
		authRepo:       authRepo,
		bcryptUtils:    bcryptUtils,
		utils:          utils,
		redisServer:    redisServer,
		smtpMailer:     smtpMailer,
		s3Client:       s3Client,
		googleProvider: googleProvider,
	}
}
