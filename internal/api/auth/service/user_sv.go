package authService

import (
	"LulaiPlatform/internal/api/auth"
	"LulaiPlatform/internal/entity"
	contextPkg "LulaiPlatform/pkg/context"
	jwtPkg "LulaiPlatform/pkg/jwt"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

const (
	otpTTL          = 10 * time.Minute
	userTokenExpiry = 24 * time.Hour
)

func (s *authServiceImpl) Register(ctx context.Context, req auth.RegisterRequest) error {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.authRepo.NewClient(true)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return err
	}
	defer repo.Rollback()

	hashedPassword, err := s.bcryptUtils.HashPassword(req.Password)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to hash password")
		return err
	}

	userID, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		return err
	}

	now := time.Now()
	user := entity.User{
		ID:          userID,
		Email:       req.Email,
		Name:        req.Name,
		Password:    hashedPassword,
		CompanyName: req.CompanyName,
		IsVerified:  false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := repo.Users.CreateUser(ctx, user); err != nil {
		return err
	}

	if err := repo.Commit(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to commit transaction")
		return err
	}

	return s.sendVerificationOTP(ctx, req.Email)
}

func (s *authServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.authRepo.NewClient(false)
	if err != nil {
		return auth.TokenResponse{}, err
	}

	user, err := repo.Users.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidEmailOrPassword
		}
		return auth.TokenResponse{}, err
	}

	if err := s.bcryptUtils.ComparePassword(user.Password, req.Password); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"email":      req.Email,
		}).Warn("Password mismatch on login")
		return auth.TokenResponse{}, auth.ErrInvalidEmailOrPassword
	}

	if !user.IsVerified {
		return auth.TokenResponse{}, auth.ErrUserNotVerified
	}

	return s.issueUserToken(user)
}

func (s *authServiceImpl) VerifyEmail(ctx context.Context, req auth.VerifyEmailRequest) error {
	requestID := contextPkg.GetRequestID(ctx)

	stored, err := s.redisServer.GetOTP(ctx, "verify:"+req.Email)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("OTP lookup failed")
		return auth.ErrInvalidOTP
	}

	if stored == "" || stored != req.OTP {
		return auth.ErrInvalidOTP
	}

	repo, err := s.authRepo.NewClient(false)
	if err != nil {
		return err
	}

	if err := repo.Users.MarkVerified(ctx, req.Email); err != nil {
		return err
	}

	if err := s.redisServer.DeleteOTP(ctx, "verify:"+req.Email); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Failed to delete used OTP")
	}

	return nil
}

func (s *authServiceImpl) ResendOTP(ctx context.Context, req auth.ResendOTPRequest) error {
	repo, err := s.authRepo.NewClient(false)
	if err != nil {
		return err
	}

	user, err := repo.Users.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return err
	}

	if user.IsVerified {
		return nil
	}

	return s.sendVerificationOTP(ctx, req.Email)
}

func (s *authServiceImpl) sendVerificationOTP(ctx context.Context, email string) error {
	requestID := contextPkg.GetRequestID(ctx)

	code, err := s.utils.NewOTPCode()
	if err != nil {
		return err
	}

	if err := s.redisServer.SetOTP(ctx, "verify:"+email, code, otpTTL); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to store OTP")
		return err
	}

	if err := s.smtpMailer.SendOTP(email, code); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to send OTP email")
		return err
	}

	return nil
}

func (s *authServiceImpl) issueUserToken(user entity.User) (auth.TokenResponse, error) {
	token, expiresAt, err := jwtPkg.Sign(map[string]interface{}{
		"id":    user.ID,
		"email": user.Email,
		"name":  user.Name,
	}, jwtPkg.UserTokenSecretEnv, userTokenExpiry)
	if err != nil {
		return auth.TokenResponse{}, err
	}

	return auth.TokenResponse{
		AccessToken: token,
		ExpiresAt:   expiresAt,
	}, nil
}
