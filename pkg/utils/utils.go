package utils

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"math/big"
	"mime/multipart"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

type IUtils interface {
	NewULIDFromTimestamp(t time.Time) (string, error)
	NewWidgetAPIKey() (string, error)
	NewOTPCode() (string, error)
	ValidateImageFile(file *multipart.FileHeader) error
	ValidateAudioFile(file *multipart.FileHeader) error
	ConvertFileToBase64(file multipart.File) (string, error)
}

type utils struct {
	maxImageSize int64
	maxAudioSize int64
}

func New() IUtils {
	return &utils{
		maxImageSize: 5 * 1024 * 1024,
		maxAudioSize: 10 * 1024 * 1024,
	}
}

func (u *utils) NewULIDFromTimestamp(t time.Time) (string, error) {
	ms := ulid.Timestamp(t)
	entropy := ulid.Monotonic(rand.Reader, 0)

	id, err := ulid.New(ms, entropy)
	if err != nil {
		return "", err
	}

	return id.String(), nil
}

// NewWidgetAPIKey mints the key a deployed widget authenticates with. The
// lul_ prefix makes leaked keys greppable in merchant codebases.
func (u *utils) NewWidgetAPIKey() (string, error) {
	id, err := u.NewULIDFromTimestamp(time.Now())
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("lul_%s", strings.ToLower(id)), nil
}

func (u *utils) NewOTPCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(100000))
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%05d", n.Int64()), nil
}

func (u *utils) ValidateImageFile(file *multipart.FileHeader) error {
	if file == nil {
		return errors.New("no file uploaded")
	}

	if file.Size > u.maxImageSize {
		return errors.New("file size exceeds limit")
	}

	contentType := file.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return errors.New("uploaded file is not an image")
	}

	return nil
}

func (u *utils) ValidateAudioFile(file *multipart.FileHeader) error {
	if file == nil {
		return errors.New("no file uploaded")
	}

	if file.Size > u.maxAudioSize {
		return errors.New("file size exceeds limit")
	}

	contentType := file.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "audio/") && contentType != "video/webm" {
		return errors.New("uploaded file is not audio")
	}

	return nil
}

func (u *utils) ConvertFileToBase64(file multipart.File) (string, error) {
	fileBytes, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}

	return base64.StdEncoding.EncodeToString(fileBytes), nil
}
