package authService

import (
	"LulaiPlatform/internal/api/auth"
	"LulaiPlatform/internal/entity"
	contextPkg "LulaiPlatform/pkg/context"
	jwtPkg "LulaiPlatform/pkg/jwt"
	"database/sql"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

const adminTokenExpiry = 12 * time.Hour

// SeedRootAdmin creates the first admin account from ADMIN_SEED_EMAIL and
// ADMIN_SEED_PASSWORD. Invites need an authenticated admin, so an empty
// admins table would otherwise be a dead end. Does nothing once any admin
// row exists or when the seed credentials are not configured.
func (s *authServiceImpl) SeedRootAdmin(ctx context.Context) error {
	email := os.Getenv("ADMIN_SEED_EMAIL")
	password := os.Getenv("ADMIN_SEED_PASSWORD")
	if email == "" || password == "" {
		return nil
	}

	repo, err := s.authRepo.NewClient(true)
	if err != nil {
		return err
	}
	defer repo.Rollback()

	count, err := repo.Admins.CountAdmins(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	adminID, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		return err
	}

	hashedPassword, err := s.bcryptUtils.HashPassword(password)
	if err != nil {
		return err
	}

	name := os.Getenv("ADMIN_SEED_NAME")
	if name == "" {
		name = "Root Admin"
	}

	now := time.Now()
	admin := entity.Admin{
		ID:        adminID,
		Email:     email,
		Name:      name,
		Password:  sql.NullString{String: hashedPassword, Valid: true},
		Role:      "superadmin",
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := repo.Admins.CreateAdmin(ctx, admin); err != nil {
		return err
	}

	if err := repo.Commit(); err != nil {
		s.log.WithFields(logrus.Fields{
			"error": err.Error(),
		}).Error("Failed to commit transaction")
		return err
	}

	s.log.WithFields(logrus.Fields{
		"email": email,
	}).Info("Seeded root admin account")

	return nil
}

func (s *authServiceImpl) AdminLogin(ctx context.Context, req auth.AdminLoginRequest) (auth.TokenResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.authRepo.NewClient(false)
	if err != nil {
		return auth.TokenResponse{}, err
	}

	admin, err := repo.Admins.GetAdminByEmail(ctx, req.Email)
	if err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidEmailOrPassword
	}

	if !admin.IsActive || !admin.Password.Valid {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"email":      req.Email,
		}).Warn("Login attempt on inactive admin account")
		return auth.TokenResponse{}, auth.ErrInvalidEmailOrPassword
	}

	if err := s.bcryptUtils.ComparePassword(admin.Password.String, req.Password); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidEmailOrPassword
	}

	token, expiresAt, err := jwtPkg.Sign(map[string]interface{}{
		"id":    admin.ID,
		"email": admin.Email,
		"name":  admin.Name,
		"role":  admin.Role,
	}, jwtPkg.AdminTokenSecretEnv, adminTokenExpiry)
	if err != nil {
		return auth.TokenResponse{}, err
	}

	return auth.TokenResponse{
		AccessToken: token,
		ExpiresAt:   expiresAt,
	}, nil
}

func (s *authServiceImpl) InviteAdmin(ctx context.Context, req auth.AdminInviteRequest) error {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.authRepo.NewClient(true)
	if err != nil {
		return err
	}
	defer repo.Rollback()

	adminID, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		return err
	}

	inviteToken, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		return err
	}

	now := time.Now()
	admin := entity.Admin{
		ID:          adminID,
		Email:       req.Email,
		Name:        req.Name,
		Role:        req.Role,
		InviteToken: sql.NullString{String: inviteToken, Valid: true},
		IsActive:    false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := repo.Admins.CreateAdmin(ctx, admin); err != nil {
		return err
	}

	if err := repo.Commit(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to commit transaction")
		return err
	}

	setupURL := fmt.Sprintf("%s/admin/setup?token=%s", os.Getenv("DASHBOARD_BASE_URL"), inviteToken)
	if err := s.smtpMailer.SendAdminInvite(req.Email, setupURL); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to send admin invite email")
		return err
	}

	return nil
}

func (s *authServiceImpl) CompleteAdminSetup(ctx context.Context, req auth.AdminCompleteSetupRequest) error {
	repo, err := s.authRepo.NewClient(false)
	if err != nil {
		return err
	}

	admin, err := repo.Admins.GetAdminByInviteToken(ctx, req.Token)
	if err != nil {
		return err
	}

	if admin.IsActive {
		return auth.ErrAdminAlreadyActive
	}

	hashedPassword, err := s.bcryptUtils.HashPassword(req.Password)
	if err != nil {
		return err
	}

	return repo.Admins.ActivateAdmin(ctx, admin.ID, hashedPassword)
}
