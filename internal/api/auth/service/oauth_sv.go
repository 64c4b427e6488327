package authService

import (
	"LulaiPlatform/internal/api/auth"
	"LulaiPlatform/internal/entity"
	"encoding/json"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type googleUserInfo struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

func (s *authServiceImpl) GoogleLoginURL(state string) string {
	return s.googleProvider.GetConfig().AuthCodeURL(state)
}

// GoogleCallback signs the user in with their Google account, creating
// a verified account on first login.
func (s *authServiceImpl) GoogleCallback(c *fiber.Ctx, code string) (auth.TokenResponse, error) {
	payload, err := s.googleProvider.GetUserExchangeToken(c, code)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"error": err.Error(),
		}).Error("Google token exchange failed")
		return auth.TokenResponse{}, auth.ErrOAuthExchangeFailed
	}

	var info googleUserInfo
	if err := json.Unmarshal(payload, &info); err != nil {
		return auth.TokenResponse{}, auth.ErrOAuthExchangeFailed
	}

	if info.Email == "" {
		return auth.TokenResponse{}, auth.ErrOAuthExchangeFailed
	}

	ctx := c.Context()

	repo, err := s.authRepo.NewClient(false)
	if err != nil {
		return auth.TokenResponse{}, err
	}

	user, err := repo.Users.GetUserByEmail(ctx, info.Email)
	if err != nil {
		if !errors.Is(err, auth.ErrUserNotFound) {
			return auth.TokenResponse{}, err
		}

		userID, err := s.utils.NewULIDFromTimestamp(time.Now())
		if err != nil {
			return auth.TokenResponse{}, err
		}

		now := time.Now()
		user = entity.User{
			ID:              userID,
			Email:           info.Email,
			Name:            info.Name,
			ProfilePhotoURL: info.Picture,
			IsVerified:      true,
			CreatedAt:       now,
			UpdatedAt:       now,
		}

		if err := repo.Users.CreateUser(ctx, user); err != nil {
			return auth.TokenResponse{}, err
		}
	}

	return s.issueUserToken(user)
}
