package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"conectar_backend/internal/common"
	"conectar_backend/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, req RegisterRequest) (*user.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*LoginResponse), args.Error(1)
}

func (m *MockAuthService) GoogleAuth(ctx context.Context, req GoogleAuthRequest) (*GoogleLoginResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*GoogleLoginResponse), args.Error(1)
}

func newAuthRouter(svc Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	common.RegisterJSONFieldNames()
	r := gin.New()
	NewHandler(svc, zap.NewNop()).RegisterRoutes(r)
	return r
}

func doJSON(r http.Handler, path string, body interface{}) *httptest.ResponseRecorder {
	b, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandler_RegisterOmitsPassword(t *testing.T) {
	svc := new(MockAuthService)
	hash := "$2a$10$hash"
	u := &user.User{Name: "Ana", Email: "ana@x.com", Password: &hash, Role: common.RoleUser}
	u.ID = uuid.New()
	svc.On("Register", mock.Anything, RegisterRequest{Name: "Ana", Email: "ana@x.com", Password: "secret1"}).Return(u, nil)

	w := doJSON(newAuthRouter(svc), "/auth/register", gin.H{"name": "Ana", "email": "ana@x.com", "password": "secret1"})
	require.Equal(t, http.StatusCreated, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, u.ID.String(), body["id"])
	assert.NotContains(t, body, "password")
}

func TestHandler_RegisterValidation(t *testing.T) {
	svc := new(MockAuthService)
	r := newAuthRouter(svc)

	w := doJSON(r, "/auth/register", gin.H{"name": "Ana", "email": "not-an-email", "password": "123"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var apiErr common.APIError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &apiErr))
	assert.Equal(t, "VALIDATION_ERROR", apiErr.Code)
	details, ok := apiErr.Details.(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, details, "email")
	assert.Contains(t, details, "password")

	w = doJSON(r, "/auth/register", gin.H{"name": "Ana", "email": "a@x.com", "password": "secret1", "role": "root"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
}

func TestHandler_RegisterDuplicate(t *testing.T) {
	svc := new(MockAuthService)
	svc.On("Register", mock.Anything, mock.Anything).Return(nil, common.ErrEmailAlreadyExists)

	w := doJSON(newAuthRouter(svc), "/auth/register", gin.H{"name": "Ana", "email": "ana@x.com", "password": "secret1"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Este email já está cadastrado no sistema.")
}

func TestHandler_Login(t *testing.T) {
	svc := new(MockAuthService)
	id := uuid.New()
	svc.On("Login", mock.Anything, LoginRequest{Email: "ana@x.com", Password: "secret1"}).
		Return(&LoginResponse{AccessToken: "tok", User: AuthUser{ID: id, Name: "Ana", Email: "ana@x.com", Role: common.RoleAdmin}}, nil)
	svc.On("Login", mock.Anything, LoginRequest{Email: "ana@x.com", Password: "bad"}).
		Return(nil, common.ErrInvalidCredentials)
	r := newAuthRouter(svc)

	w := doJSON(r, "/auth/login", gin.H{"email": "ana@x.com", "password": "secret1"})
	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "tok", body["access_token"])
	usr := body["user"].(map[string]interface{})
	assert.Equal(t, id.String(), usr["id"])
	assert.NotContains(t, usr, "isGoogleUser")

	w = doJSON(r, "/auth/login", gin.H{"email": "ana@x.com", "password": "bad"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHandler_GoogleRequiresFields(t *testing.T) {
	svc := new(MockAuthService)
	w := doJSON(newAuthRouter(svc), "/auth/google", gin.H{"email": "a@x.com", "name": "A"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "GoogleAuth", mock.Anything, mock.Anything)
}

func TestHandler_Google(t *testing.T) {
	svc := new(MockAuthService)
	svc.On("GoogleAuth", mock.Anything, mock.MatchedBy(func(req GoogleAuthRequest) bool {
		return req.GoogleID == "g-1" && req.IDToken == "tok" && req.PhotoURL != nil && *req.PhotoURL == "avatar-42"
	})).Return(&GoogleLoginResponse{
		AccessToken: "jwt",
		User: GoogleAuthUser{
			AuthUser:     AuthUser{ID: uuid.New(), Name: "A", Email: "a@x.com", Role: common.RoleUser},
			IsGoogleUser: true,
		},
	}, nil)

	w := doJSON(newAuthRouter(svc), "/auth/google", gin.H{
		"idToken": "tok", "email": "a@x.com", "name": "A", "googleId": "g-1", "photoURL": "avatar-42",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var body struct {
		User map[string]interface{} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, true, body.User["isGoogleUser"])
	assert.Equal(t, "a@x.com", body.User["email"])
	assert.Contains(t, body.User, "photoURL")
	assert.Nil(t, body.User["photoURL"])
}
