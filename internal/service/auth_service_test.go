package service

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/linkcard-next/internal/config"
	"github.com/linkcard-next/internal/models"
	"github.com/linkcard-next/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

func setupAuthServiceTest(t *testing.T) (*AuthService, repository.AdminRepository) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Admin{}); err != nil {
		t.Fatalf("migrate admin model failed: %v", err)
	}
	cfg := &config.Config{}
	cfg.JWT.SecretKey = "test-secret-key-0123456789-abcdef"
	cfg.JWT.ExpireHours = 8
	adminRepo := repository.NewAdminRepository(db)
	return NewAuthService(cfg, adminRepo), adminRepo
}

func createTestAdmin(t *testing.T, svc *AuthService, repo repository.AdminRepository, email, password string) *models.Admin {
	t.Helper()
	hash, err := svc.HashPassword(password)
	if err != nil {
		t.Fatalf("hash password failed: %v", err)
	}
	admin := &models.Admin{
		Email:        email,
		PasswordHash: hash,
		Role:         "admin",
	}
	if err := repo.Create(admin); err != nil {
		t.Fatalf("create admin failed: %v", err)
	}
	return admin
}

func TestLoginSuccess(t *testing.T) {
	svc, repo := setupAuthServiceTest(t)
	createTestAdmin(t, svc, repo, "ops@linkcard.local", "secret-pass")

	admin, token, expiresAt, err := svc.Login("ops@linkcard.local", "secret-pass")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if admin == nil || admin.Email != "ops@linkcard.local" {
		t.Fatalf("unexpected admin: %+v", admin)
	}
	if token == "" {
		t.Fatalf("token should not be empty")
	}
	if expiresAt.Before(time.Now().Add(7 * time.Hour)) {
		t.Fatalf("token expiry too short: %v", expiresAt)
	}

	claims, err := svc.ParseJWT(token)
	if err != nil {
		t.Fatalf("parse token failed: %v", err)
	}
	if claims.AdminID != admin.ID || claims.Email != admin.Email {
		t.Fatalf("claims mismatch: %+v", claims)
	}
}

func TestLoginNormalizesEmail(t *testing.T) {
	svc, repo := setupAuthServiceTest(t)
	createTestAdmin(t, svc, repo, "ops@linkcard.local", "secret-pass")

	if _, _, _, err := svc.Login("  OPS@LinkCard.Local ", "secret-pass"); err != nil {
		t.Fatalf("login with denormalized email failed: %v", err)
	}
}

func TestLoginSameErrorForUnknownEmailAndBadPassword(t *testing.T) {
	svc, repo := setupAuthServiceTest(t)
	createTestAdmin(t, svc, repo, "ops@linkcard.local", "secret-pass")

	_, _, _, unknownErr := svc.Login("nobody@linkcard.local", "secret-pass")
	_, _, _, badPassErr := svc.Login("ops@linkcard.local", "wrong-pass")

	if !errors.Is(unknownErr, ErrInvalidCredentials) {
		t.Fatalf("unknown email want ErrInvalidCredentials got %v", unknownErr)
	}
	if !errors.Is(badPassErr, ErrInvalidCredentials) {
		t.Fatalf("bad password want ErrInvalidCredentials got %v", badPassErr)
	}
}

func TestParseJWTRejectsTamperedToken(t *testing.T) {
	svc, repo := setupAuthServiceTest(t)
	admin := createTestAdmin(t, svc, repo, "ops@linkcard.local", "secret-pass")

	token, _, err := svc.GenerateJWT(admin)
	if err != nil {
		t.Fatalf("generate token failed: %v", err)
	}

	tampered := token[:len(token)-2] + "xx"
	if _, err := svc.ParseJWT(tampered); err == nil {
		t.Fatalf("tampered token should be rejected")
	}
}

func TestParseJWTRejectsExpiredToken(t *testing.T) {
	svc, _ := setupAuthServiceTest(t)

	claims := JWTClaims{
		AdminID: 1,
		Email:   "ops@linkcard.local",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("test-secret-key-0123456789-abcdef"))
	if err != nil {
		t.Fatalf("sign expired token failed: %v", err)
	}

	if _, err := svc.ParseJWT(signed); err == nil {
		t.Fatalf("expired token should be rejected")
	}
}

func TestChangePassword(t *testing.T) {
	svc, repo := setupAuthServiceTest(t)
	admin := createTestAdmin(t, svc, repo, "ops@linkcard.local", "secret-pass")

	if err := svc.ChangePassword(admin.ID, "wrong-old", "NewSecret123"); !errors.Is(err, ErrInvalidPassword) {
		t.Fatalf("wrong old password want ErrInvalidPassword got %v", err)
	}

	if err := svc.ChangePassword(admin.ID, "secret-pass", "NewSecret123"); err != nil {
		t.Fatalf("change password failed: %v", err)
	}

	if _, _, _, err := svc.Login("ops@linkcard.local", "NewSecret123"); err != nil {
		t.Fatalf("login with new password failed: %v", err)
	}
	if _, _, _, err := svc.Login("ops@linkcard.local", "secret-pass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("old password should be invalid, got %v", err)
	}

	if err := svc.ChangePassword(999, "any", "NewSecret123"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing admin want ErrNotFound got %v", err)
	}
}
