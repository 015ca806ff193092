package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	router, _ := newTestServer(t)

	registerUser(t, router, "shopper@example.com")

	w := doJSON(t, router, http.MethodPost, "/v1/auth/login", "", gin.H{
		"email":    "shopper@example.com",
		"password": "s3cret-password",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var payload struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	require.NotEmpty(t, payload.Token)

	// The issued token opens the protected surface.
	w = doJSON(t, router, http.MethodGet, "/v1/customers/me", payload.Token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	router, _ := newTestServer(t)

	registerUser(t, router, "shopper@example.com")

	w := doJSON(t, router, http.MethodPost, "/v1/auth/login", "", gin.H{
		"email":    "shopper@example.com",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, router, http.MethodPost, "/v1/auth/login", "", gin.H{
		"email":    "nobody@example.com",
		"password": "whatever-it-is",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	router, _ := newTestServer(t)

	registerUser(t, router, "shopper@example.com")

	w := doJSON(t, router, http.MethodPost, "/v1/auth/register", "", gin.H{
		"email":     "shopper@example.com",
		"password":  "s3cret-password",
		"firstName": "Other",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "already")
}
