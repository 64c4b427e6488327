package authService

import (
	"LulaiPlatform/internal/api/auth"
	authRepository "LulaiPlatform/internal/api/auth/repository"
	"LulaiPlatform/internal/entity"
	redisPkg "LulaiPlatform/pkg/redis"
	"LulaiPlatform/pkg/utils"
	"context"
	"fmt"
	"mime/multipart"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
)

type stubAuthData struct {
	admins    map[string]entity.Admin
	committed int
}

func (d *stubAuthData) CreateUser(ctx context.Context, user entity.User) error { return nil }
func (d *stubAuthData) GetUserByID(ctx context.Context, id string) (entity.User, error) {
	return entity.User{}, auth.ErrUserNotFound
}
func (d *stubAuthData) GetUserByEmail(ctx context.Context, email string) (entity.User, error) {
	return entity.User{}, auth.ErrUserNotFound
}
func (d *stubAuthData) UpdateUser(ctx context.Context, user entity.User) error { return nil }
func (d *stubAuthData) UpdatePassword(ctx context.Context, id string, hashedPassword string) error {
	return nil
}
func (d *stubAuthData) MarkVerified(ctx context.Context, email string) error { return nil }
func (d *stubAuthData) UpdateProfilePhoto(ctx context.Context, id string, photoURL string) error {
	return nil
}
func (d *stubAuthData) DeleteUser(ctx context.Context, id string) error { return nil }

func (d *stubAuthData) CountAdmins(ctx context.Context) (int, error) {
	return len(d.admins), nil
}

func (d *stubAuthData) CreateAdmin(ctx context.Context, admin entity.Admin) error {
	if _, ok := d.admins[admin.Email]; ok {
		return auth.ErrEmailAlreadyExists
	}
	d.admins[admin.Email] = admin
	return nil
}

func (d *stubAuthData) GetAdminByEmail(ctx context.Context, email string) (entity.Admin, error) {
	admin, ok := d.admins[email]
	if !ok {
		return entity.Admin{}, auth.ErrAdminNotFound
	}
	return admin, nil
}

func (d *stubAuthData) GetAdminByInviteToken(ctx context.Context, token string) (entity.Admin, error) {
	for _, admin := range d.admins {
		if admin.InviteToken.Valid && admin.InviteToken.String == token {
			return admin, nil
		}
	}
	return entity.Admin{}, auth.ErrInvalidInviteToken
}

func (d *stubAuthData) ActivateAdmin(ctx context.Context, id string, hashedPassword string) error {
	for email, admin := range d.admins {
		if admin.ID == id {
			admin.Password.String = hashedPassword
			admin.Password.Valid = true
			admin.IsActive = true
			d.admins[email] = admin
			return nil
		}
	}
	return auth.ErrAdminNotFound
}

type stubAuthRepo struct {
	data *stubAuthData
}

func (r *stubAuthRepo) NewClient(tx bool) (authRepository.Client, error) {
	return authRepository.Client{
		Users:  r.data,
		Admins: r.data,
		Commit: func() error {
			r.data.committed++
			return nil
		},
		Rollback: func() error { return nil },
	}, nil
}

type stubBcrypt struct{}

func (b *stubBcrypt) HashPassword(password string) (string, error) {
	return "hashed:" + password, nil
}

func (b *stubBcrypt) ComparePassword(hashPassword string, password string) error {
	if hashPassword != "hashed:"+password {
		return fmt.Errorf("password mismatch")
	}
	return nil
}

type stubAuthCache struct{}

func (c *stubAuthCache) SetOTP(ctx context.Context, key string, code string, expiration time.Duration) error {
	return nil
}
func (c *stubAuthCache) GetOTP(ctx context.Context, key string) (string, error) { return "", nil }
func (c *stubAuthCache) DeleteOTP(ctx context.Context, key string) error        { return nil }
func (c *stubAuthCache) SetChatbotRules(ctx context.Context, chatbotID string, rules []redisPkg.CachedRule) error {
	return nil
}
func (c *stubAuthCache) GetChatbotRules(ctx context.Context, chatbotID string) ([]redisPkg.CachedRule, error) {
	return nil, nil
}
func (c *stubAuthCache) InvalidateChatbotRules(ctx context.Context, chatbotID string) error {
	return nil
}

type stubAuthMailer struct{}

func (m *stubAuthMailer) SendOTP(userEmail string, otp string) error               { return nil }
func (m *stubAuthMailer) SendAdminInvite(adminEmail string, setupURL string) error { return nil }
func (m *stubAuthMailer) SendOrderReceipt(customerEmail string, orderID string, total float64) error {
	return nil
}

type stubAuthUploader struct{}

func (u *stubAuthUploader) UploadFile(file *multipart.FileHeader) (string, error) { return "", nil }
func (u *stubAuthUploader) UploadBytes(data []byte, fileName string, contentType string) (string, error) {
	return "", nil
}
func (u *stubAuthUploader) PresignUrl(fileName string) (string, error) { return "", nil }
func (u *stubAuthUploader) DeleteFile(fileName string) error           { return nil }

type stubAuthGoogle struct{}

func (g *stubAuthGoogle) GetUserExchangeToken(c *fiber.Ctx, code string) ([]byte, error) {
	return nil, nil
}
func (g *stubAuthGoogle) GetConfig() *oauth2.Config { return &oauth2.Config{} }

type adminFixture struct {
	data    *stubAuthData
	service IAuthService
}

func newAdminFixture() *adminFixture {
	data := &stubAuthData{admins: make(map[string]entity.Admin)}
	service := New(
		logrus.New(),
		&stubAuthRepo{data: data},
		&stubBcrypt{},
		utils.New(),
		&stubAuthCache{},
		&stubAuthMailer{},
		&stubAuthUploader{},
		&stubAuthGoogle{},
	)
	return &adminFixture{data: data, service: service}
}

func TestSeedRootAdminCreatesActiveAccount(t *testing.T) {
	t.Setenv("ADMIN_SEED_EMAIL", "root@lulai.io")
	t.Setenv("ADMIN_SEED_PASSWORD", "initial-secret")
	t.Setenv("ADMIN_SEED_NAME", "Platform Root")
	t.Setenv("JWT_ADMIN_TOKEN_SECRET", "test-admin-secret")

	f := newAdminFixture()

	if err := f.service.SeedRootAdmin(context.Background()); err != nil {
		t.Fatalf("SeedRootAdmin() error = %v", err)
	}

	admin, ok := f.data.admins["root@lulai.io"]
	if !ok {
		t.Fatal("seed admin was not created")
	}
	if !admin.IsActive {
		t.Error("seed admin should be active")
	}
	if !admin.Password.Valid || admin.Password.String != "hashed:initial-secret" {
		t.Errorf("seed admin password = %q, want hashed seed password", admin.Password.String)
	}
	if admin.Name != "Platform Root" {
		t.Errorf("seed admin name = %q, want %q", admin.Name, "Platform Root")
	}
	if f.data.committed != 1 {
		t.Errorf("committed = %d, want 1", f.data.committed)
	}

	resp, err := f.service.AdminLogin(context.Background(), auth.AdminLoginRequest{
		Email:    "root@lulai.io",
		Password: "initial-secret",
	})
	if err != nil {
		t.Fatalf("AdminLogin() with seed credentials error = %v", err)
	}
	if resp.AccessToken == "" {
		t.Error("AdminLogin() returned empty access token")
	}
}

func TestSeedRootAdminSkipsWhenAdminsExist(t *testing.T) {
	t.Setenv("ADMIN_SEED_EMAIL", "root@lulai.io")
	t.Setenv("ADMIN_SEED_PASSWORD", "initial-secret")

	f := newAdminFixture()
	f.data.admins["existing@lulai.io"] = entity.Admin{
		ID:       "admin-1",
		Email:    "existing@lulai.io",
		IsActive: true,
	}

	if err := f.service.SeedRootAdmin(context.Background()); err != nil {
		t.Fatalf("SeedRootAdmin() error = %v", err)
	}

	if len(f.data.admins) != 1 {
		t.Errorf("admins count = %d, want 1 (seed must not run alongside existing admins)", len(f.data.admins))
	}
	if f.data.committed != 0 {
		t.Errorf("committed = %d, want 0", f.data.committed)
	}
}

func TestSeedRootAdminSkipsWithoutCredentials(t *testing.T) {
	t.Setenv("ADMIN_SEED_EMAIL", "")
	t.Setenv("ADMIN_SEED_PASSWORD", "")

	f := newAdminFixture()

	if err := f.service.SeedRootAdmin(context.Background()); err != nil {
		t.Fatalf("SeedRootAdmin() error = %v", err)
	}

	if len(f.data.admins) != 0 {
		t.Errorf("admins count = %d, want 0", len(f.data.admins))
	}
}
