package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/eventhub/eventhub-go/internal/crypto"
	"github.com/eventhub/eventhub-go/internal/model"
)

func newTestAuthService() (*AuthService, *memUserStore) {
	users := newMemUserStore()
	return NewAuthService(users, "test-secret", time.Hour), users
}

func signupRequest() model.SignupRequest {
	return model.SignupRequest{
		Firstname:       "Ada",
		Lastname:        "Lovelace",
		Email:           "a@x.com",
		Password:        "pw1",
		ConfirmPassword: "pw1",
	}
}

func TestSignupMissingField(t *testing.T) {
	svc, _ := newTestAuthService()

	req := signupRequest()
	req.Email = ""
	if _, err := svc.Signup(context.Background(), req); !errors.Is(err, ErrFieldsRequired) {
		t.Errorf("expected ErrFieldsRequired, got %v", err)
	}
}

func TestSignupPasswordMismatch(t *testing.T) {
	svc, _ := newTestAuthService()

	req := signupRequest()
	req.ConfirmPassword = "pw2"
	if _, err := svc.Signup(context.Background(), req); !errors.Is(err, ErrPasswordMismatch) {
		t.Errorf("expected ErrPasswordMismatch, got %v", err)
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	svc, _ := newTestAuthService()

	if _, err := svc.Signup(context.Background(), signupRequest()); err != nil {
		t.Fatalf("first signup failed: %v", err)
	}
	if _, err := svc.Signup(context.Background(), signupRequest()); !errors.Is(err, ErrEmailTaken) {
		t.Errorf("expected ErrEmailTaken, got %v", err)
	}
}

func TestSignupNeverStoresPlaintext(t *testing.T) {
	svc, users := newTestAuthService()

	profile, err := svc.Signup(context.Background(), signupRequest())
	if err != nil {
		t.Fatalf("Signup() unexpected error: %v", err)
	}

	stored, err := users.GetByID(context.Background(), profile.ID)
	if err != nil {
		t.Fatalf("stored user not found: %v", err)
	}
	if stored.PasswordHash == "pw1" {
		t.Error("stored credential equals the plaintext password")
	}
	if stored.PasswordHash == "" {
		t.Error("stored credential is empty")
	}
}

func TestLoginRoundTripsUserID(t *testing.T) {
	svc, _ := newTestAuthService()

	profile, err := svc.Signup(context.Background(), signupRequest())
	if err != nil {
		t.Fatalf("Signup() unexpected error: %v", err)
	}

	resp, err := svc.Login(context.Background(), model.LoginRequest{Email: "a@x.com", Password: "pw1"})
	if err != nil {
		t.Fatalf("Login() unexpected error: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("Login() returned empty token")
	}

	claims, err := crypto.ValidateToken(resp.Token, "test-secret")
	if err != nil {
		t.Fatalf("ValidateToken() unexpected error: %v", err)
	}
	if claims.UserID != profile.ID {
		t.Errorf("token user id = %d, want %d", claims.UserID, profile.ID)
	}
	if claims.Email != "a@x.com" {
		t.Errorf("token email = %q, want a@x.com", claims.Email)
	}
}

func TestLoginUniformInvalidCredentials(t *testing.T) {
	svc, _ := newTestAuthService()

	if _, err := svc.Signup(context.Background(), signupRequest()); err != nil {
		t.Fatalf("Signup() unexpected error: %v", err)
	}

	_, wrongPassword := svc.Login(context.Background(), model.LoginRequest{Email: "a@x.com", Password: "wrong"})
	_, unknownEmail := svc.Login(context.Background(), model.LoginRequest{Email: "nobody@x.com", Password: "pw1"})

	if !errors.Is(wrongPassword, ErrInvalidCredentials) {
		t.Errorf("wrong password error = %v, want ErrInvalidCredentials", wrongPassword)
	}
	if !errors.Is(unknownEmail, ErrInvalidCredentials) {
		t.Errorf("unknown email error = %v, want ErrInvalidCredentials", unknownEmail)
	}
	if wrongPassword.Error() != unknownEmail.Error() {
		t.Error("wrong password and unknown email produce distinguishable errors")
	}
}

func TestLoginMissingFields(t *testing.T) {
	svc, _ := newTestAuthService()

	if _, err := svc.Login(context.Background(), model.LoginRequest{Email: "a@x.com"}); !errors.Is(err, ErrCredentialsRequired) {
		t.Errorf("expected ErrCredentialsRequired, got %v", err)
	}
}
