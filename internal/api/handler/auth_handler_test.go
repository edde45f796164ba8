package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/sirpyerre/coffee-catalog/internal/api/i18n"
	"github.com/sirpyerre/coffee-catalog/internal/core/domain"
)

func TestAuthHandler_SignUp_Success(t *testing.T) {
	stub := &stubAuthService{
		signUpFn: func(_ context.Context, email, password, nickname string) (string, *domain.User, error) {
			if email != "a@example.com" || password != "secret1" || nickname != "ana" {
				t.Fatalf("unexpected args: %s %s %s", email, password, nickname)
			}
			return "tok", &domain.User{ID: "u-1", Email: email, PasswordHash: "hash"}, nil
		},
	}
	c, rec := jsonRequest(http.MethodPost, "/auth/signup", `{"email":"a@example.com","password":"secret1","nickname":"ana"}`, nil)

	if err := NewAuthHandler(stub).SignUp(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["success"] != true || resp["token"] != "tok" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	user, ok := resp["user"].(map[string]any)
	if !ok || user["email"] != "a@example.com" {
		t.Fatalf("expected user in response: %+v", resp)
	}
	if _, leaked := user["PasswordHash"]; leaked {
		t.Fatalf("password hash must not be rendered")
	}
}

func TestAuthHandler_SignUp_MissingFields(t *testing.T) {
	stub := &stubAuthService{
		signUpFn: func(context.Context, string, string, string) (string, *domain.User, error) {
			t.Fatal("service must not be called")
			return "", nil, nil
		},
	}
	c, _ := jsonRequest(http.MethodPost, "/auth/signup", `{"email":""}`, nil)

	err := NewAuthHandler(stub).SignUp(c)
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	fields := map[string]bool{}
	for _, v := range ve.Violations {
		fields[v.Field] = true
	}
	if !fields["email"] || !fields["password"] {
		t.Fatalf("expected email and password violations, got %+v", ve.Violations)
	}
}

func TestAuthHandler_SignUp_UserExists(t *testing.T) {
	stub := &stubAuthService{
		signUpFn: func(context.Context, string, string, string) (string, *domain.User, error) {
			return "", nil, domain.ErrUserExists
		},
	}
	c, _ := jsonRequest(http.MethodPost, "/auth/signup", `{"email":"a@example.com","password":"secret1"}`, nil)

	if err := NewAuthHandler(stub).SignUp(c); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthHandler_Login_BadJSON(t *testing.T) {
	c, _ := jsonRequest(http.MethodPost, "/auth/login", `{"email":`, nil)

	err := NewAuthHandler(&stubAuthService{}).Login(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest || he.Message != i18n.InvalidPayload {
		t.Fatalf("expected a 400 bind error, got %v", err)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(_ context.Context, email, password string) (string, *domain.User, error) {
			return "jwt", &domain.User{ID: "u-1", Email: email}, nil
		},
	}
	c, rec := jsonRequest(http.MethodPost, "/auth/login", `{"email":"a@example.com","password":"secret1"}`, nil)

	if err := NewAuthHandler(stub).Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp authResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if !resp.Success || resp.Token != "jwt" || resp.User.ID != "u-1" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestAuthHandler_Me(t *testing.T) {
	stub := &stubAuthService{admins: map[string]bool{adminID.Email: true}}

	for _, tt := range []struct {
		id      *domain.Identity
		isAdmin bool
	}{
		{adminID, true},
		{userID, false},
	} {
		c, rec := newContext(http.MethodGet, "/v1/me", nil, "", tt.id)
		if err := NewAuthHandler(stub).Me(c); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		var resp meResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("invalid json: %v", err)
		}
		if resp.User == nil || resp.User.ID != tt.id.ID || resp.IsAdmin != tt.isAdmin {
			t.Fatalf("%s: unexpected payload %+v", tt.id.Email, resp)
		}
	}
}
