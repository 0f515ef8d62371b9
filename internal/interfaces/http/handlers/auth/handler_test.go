package auth

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	userdto "github.com/opsdesk/opsdesk/internal/application/user/dto"
	"github.com/opsdesk/opsdesk/internal/application/user/usecases"
	"github.com/opsdesk/opsdesk/internal/interfaces/http/handlers/testutil"
	"github.com/opsdesk/opsdesk/internal/shared/errors"
)

// =====================================================================
// Mock use cases
// =====================================================================

type mockRegisterUC struct {
	result *usecases.RegisterUserResult
	err    error
}

func (m *mockRegisterUC) Execute(_ context.Context, _ usecases.RegisterUserCommand) (*usecases.RegisterUserResult, error) {
	return m.result, m.err
}

type mockLoginUC struct {
	result *usecases.LoginUserResult
	err    error
}

func (m *mockLoginUC) Execute(_ context.Context, _ usecases.LoginUserCommand) (*usecases.LoginUserResult, error) {
	return m.result, m.err
}

type mockRefreshUC struct {
	result *usecases.RefreshTokenResult
	err    error
}

func (m *mockRefreshUC) Execute(_ context.Context, _ usecases.RefreshTokenCommand) (*usecases.RefreshTokenResult, error) {
	return m.result, m.err
}

func sampleUserDTO() *userdto.UserDTO {
	now := time.Now().UTC()
	return &userdto.UserDTO{
		ID:        1,
		Email:     "jordan@example.com",
		Name:      "Jordan",
		Role:      "requester",
		Status:    "active",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func sampleTokenPair() *userdto.TokenPairDTO {
	return &userdto.TokenPairDTO{
		AccessToken:  "access-token",
		RefreshToken: "refresh-token",
		ExpiresAt:    time.Now().UTC().Add(15 * time.Minute),
	}
}

// =====================================================================
// TestAuthHandler_Register
// =====================================================================

func TestAuthHandler_Register_Success(t *testing.T) {
	mockUC := &mockRegisterUC{
		result: &usecases.RegisterUserResult{User: sampleUserDTO()},
	}
	handler := NewAuthHandler(mockUC, nil, nil)

	reqBody := RegisterRequest{
		Email:    "jordan@example.com",
		Name:     "Jordan",
		Password: "correct horse battery",
	}
	c, w := testutil.NewTestContext(http.MethodPost, "/auth/register", reqBody)

	handler.Register(c)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp testutil.APIResponse
	err := testutil.ParseResponse(w, &resp)
	require.NoError(t, err)
	assert.True(t, resp.Success)
}

func TestAuthHandler_Register_BindError(t *testing.T) {
	handler := NewAuthHandler(&mockRegisterUC{}, nil, nil)

	// Password below the binding minimum
	reqBody := map[string]string{
		"email":    "jordan@example.com",
		"name":     "Jordan",
		"password": "short",
	}
	c, w := testutil.NewTestContext(http.MethodPost, "/auth/register", reqBody)

	handler.Register(c)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp testutil.APIResponse
	err := testutil.ParseResponse(w, &resp)
	require.NoError(t, err)
	assert.False(t, resp.Success)
}

func TestAuthHandler_Register_DuplicateEmail(t *testing.T) {
	mockUC := &mockRegisterUC{
		err: errors.NewConflictError("email is already registered"),
	}
	handler := NewAuthHandler(mockUC, nil, nil)

	reqBody := RegisterRequest{
		Email:    "jordan@example.com",
		Name:     "Jordan",
		Password: "correct horse battery",
	}
	c, w := testutil.NewTestContext(http.MethodPost, "/auth/register", reqBody)

	handler.Register(c)

	assert.Equal(t, http.StatusConflict, w.Code)
}

// =====================================================================
// TestAuthHandler_Login
// =====================================================================

func TestAuthHandler_Login_Success(t *testing.T) {
	mockUC := &mockLoginUC{
		result: &usecases.LoginUserResult{
			User:   sampleUserDTO(),
			Tokens: sampleTokenPair(),
		},
	}
	handler := NewAuthHandler(nil, mockUC, nil)

	reqBody := LoginRequest{
		Email:    "jordan@example.com",
		Password: "correct horse battery",
	}
	c, w := testutil.NewTestContext(http.MethodPost, "/auth/login", reqBody)

	handler.Login(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp testutil.APIResponse
	err := testutil.ParseResponse(w, &resp)
	require.NoError(t, err)
	assert.True(t, resp.Success)
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	mockUC := &mockLoginUC{
		err: errors.NewUnauthorizedError("invalid email or password"),
	}
	handler := NewAuthHandler(nil, mockUC, nil)

	reqBody := LoginRequest{
		Email:    "jordan@example.com",
		Password: "wrong password",
	}
	c, w := testutil.NewTestContext(http.MethodPost, "/auth/login", reqBody)

	handler.Login(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var resp testutil.APIResponse
	err := testutil.ParseResponse(w, &resp)
	require.NoError(t, err)
	assert.False(t, resp.Success)
}

func TestAuthHandler_Login_BindError(t *testing.T) {
	handler := NewAuthHandler(nil, &mockLoginUC{}, nil)

	// Missing password
	reqBody := map[string]string{"email": "jordan@example.com"}
	c, w := testutil.NewTestContext(http.MethodPost, "/auth/login", reqBody)

	handler.Login(c)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

// =====================================================================
// TestAuthHandler_Refresh
// =====================================================================

func TestAuthHandler_Refresh_Success(t *testing.T) {
	mockUC := &mockRefreshUC{
		result: &usecases.RefreshTokenResult{Tokens: sampleTokenPair()},
	}
	handler := NewAuthHandler(nil, nil, mockUC)

	reqBody := RefreshRequest{RefreshToken: "refresh-token"}
	c, w := testutil.NewTestContext(http.MethodPost, "/auth/refresh", reqBody)

	handler.Refresh(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthHandler_Refresh_InvalidToken(t *testing.T) {
	mockUC := &mockRefreshUC{
		err: errors.NewUnauthorizedError("invalid refresh token"),
	}
	handler := NewAuthHandler(nil, nil, mockUC)

	reqBody := RefreshRequest{RefreshToken: "expired-token"}
	c, w := testutil.NewTestContext(http.MethodPost, "/auth/refresh", reqBody)

	handler.Refresh(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
