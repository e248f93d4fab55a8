package common

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIError_WithDetailsCopies(t *testing.T) {
	detailed := ErrNotFound.WithDetails("User not found.")

	assert.Nil(t, ErrNotFound.Details)
	assert.Equal(t, "User not found.", detailed.Details)
	assert.Equal(t, http.StatusNotFound, detailed.StatusCode)
	assert.True(t, errors.Is(detailed, ErrNotFound))
	assert.True(t, errors.Is(fmt.Errorf("wrapped: %w", detailed), ErrNotFound))
	assert.False(t, errors.Is(detailed, ErrConflict))
	assert.False(t, errors.Is(ErrInvalidCredentials, ErrUnauthorized))
}

func TestIsAPIError(t *testing.T) {
	apiErr, ok := IsAPIError(fmt.Errorf("ctx: %w", ErrForbidden))
	require.True(t, ok)
	assert.Equal(t, "FORBIDDEN", apiErr.Code)

	_, ok = IsAPIError(errors.New("plain"))
	assert.False(t, ok)
}

type signupPayload struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"omitempty,oneof=admin user"`
}

func TestNewBindingAPIError_UsesJSONFieldNames(t *testing.T) {
	RegisterJSONFieldNames()

	err := binding.Validator.ValidateStruct(&signupPayload{Email: "nope", Role: "root"})
	require.Error(t, err)

	apiErr := NewBindingAPIError(err)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "VALIDATION_ERROR", apiErr.Code)

	details, ok := apiErr.Details.(map[string]string)
	require.True(t, ok)
	assert.Contains(t, details, "email")
	assert.Contains(t, details, "password")
	assert.Contains(t, details["role"], "admin user")
}

func TestNewBindingAPIError_MalformedBody(t *testing.T) {
	apiErr := NewBindingAPIError(errors.New("unexpected EOF"))
	assert.Equal(t, "BAD_REQUEST", apiErr.Code)
	assert.Equal(t, "unexpected EOF", apiErr.Details)
}

func TestRespondWithError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("api error keeps its status", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		RespondWithError(c, ErrCNPJAlreadyExists)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.JSONEq(t, `{"code":"CNPJ_ALREADY_EXISTS","message":"CNPJ já cadastrado."}`, w.Body.String())
		assert.True(t, c.IsAborted())
	})

	t.Run("unknown error hides cause outside debug mode", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		RespondWithError(c, errors.New("disk on fire"))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "disk on fire")
	})
}
