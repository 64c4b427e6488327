package authService

import (
	"LulaiPlatform/internal/api/auth"
	contextPkg "LulaiPlatform/pkg/context"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

func (s *authServiceImpl) RequestPasswordReset(ctx context.Context, req auth.RequestPasswordResetRequest) error {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.authRepo.NewClient(false)
	if err != nil {
		return err
	}

	// Reply identically whether the account exists or not.
	if _, err := repo.Users.GetUserByEmail(ctx, req.Email); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"email":      req.Email,
		}).Warn("Password reset requested for unknown email")
		return nil
	}

	code, err := s.utils.NewOTPCode()
	if err != nil {
		return err
	}

	if err := s.redisServer.SetOTP(ctx, "reset:"+req.Email, code, otpTTL); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to store reset OTP")
		return err
	}

	if err := s.smtpMailer.SendOTP(req.Email, code); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to send reset OTP email")
		return err
	}

	return nil
}

func (s *authServiceImpl) ResetPassword(ctx context.Context, req auth.ResetPasswordRequest) error {
	requestID := contextPkg.GetRequestID(ctx)

	stored, err := s.redisServer.GetOTP(ctx, "reset:"+req.Email)
	if err != nil || stored == "" || stored != req.OTP {
		return auth.ErrInvalidOTP
	}

	repo, err := s.authRepo.NewClient(false)
	if err != nil {
		return err
	}

	user, err := repo.Users.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return err
	}

	hashedPassword, err := s.bcryptUtils.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}

	if err := repo.Users.UpdatePassword(ctx, user.ID, hashedPassword); err != nil {
		return err
	}

	if err := s.redisServer.DeleteOTP(ctx, "reset:"+req.Email); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Failed to delete used reset OTP")
	}

	return nil
}
