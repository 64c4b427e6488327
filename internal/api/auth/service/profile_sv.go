package authService

import (
	"LulaiPlatform/internal/api/auth"
	"LulaiPlatform/internal/entity"
	contextPkg "LulaiPlatform/pkg/context"
	"mime/multipart"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

func (s *authServiceImpl) GetProfile(ctx context.Context, userID string) (auth.ProfileResponse, error) {
	repo, err := s.authRepo.NewClient(false)
	if err != nil {
		return auth.ProfileResponse{}, err
	}

	user, err := repo.Users.GetUserByID(ctx, userID)
	if err != nil {
		return auth.ProfileResponse{}, err
	}

	return auth.ProfileResponse{
		ID:              user.ID,
		Name:            user.Name,
		Email:           user.Email,
		CompanyName:     user.CompanyName,
		ProfilePhotoURL: user.ProfilePhotoURL,
		IsVerified:      user.IsVerified,
		CreatedAt:       user.CreatedAt,
	}, nil
}

func (s *authServiceImpl) UpdateProfile(ctx context.Context, userID string, req auth.UpdateProfileRequest) error {
	repo, err := s.authRepo.NewClient(false)
	if err != nil {
		return err
	}

	return repo.Users.UpdateUser(ctx, entity.User{
		ID:          userID,
		Name:        req.Name,
		CompanyName: req.CompanyName,
	})
}

func (s *authServiceImpl) UploadProfilePhoto(ctx context.Context, userID string, photo *multipart.FileHeader) (string, error) {
	requestID := contextPkg.GetRequestID(ctx)

	if err := s.utils.ValidateImageFile(photo); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Invalid profile photo")
		return "", auth.ErrInvalidFileType
	}

	photoURL, err := s.s3Client.UploadFile(photo)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to upload profile photo")
		return "", auth.ErrFailedToUpload
	}

	repo, err := s.authRepo.NewClient(false)
	if err != nil {
		return "", err
	}

	if err := repo.Users.UpdateProfilePhoto(ctx, userID, photoURL); err != nil {
		return "", err
	}

	return photoURL, nil
}

func (s *authServiceImpl) DeleteAccount(ctx context.Context, userID string) error {
	repo, err := s.authRepo.NewClient(false)
	if err != nil {
		return err
	}

	return repo.Users.DeleteUser(ctx, userID)
}
