package handlers_test

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/azadehm/bazaar-golang/internal/auth"
	"github.com/azadehm/bazaar-golang/internal/handlers"
	"github.com/azadehm/bazaar-golang/internal/models"
	"github.com/azadehm/bazaar-golang/internal/routes"
	"github.com/azadehm/bazaar-golang/internal/store"
)

var testSecret = []byte("test-secret")

// newTestServer wires the real router against an in-memory sqlite
// database, so requests exercise the same middleware, handlers and
// store code as production.
func newTestServer(t *testing.T) (*gin.Engine, *store.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	db.SetMaxOpenConns(1)

	_, err = db.Exec("PRAGMA foreign_keys=ON")
	require.NoError(t, err)

	schema, err := os.ReadFile("../store/testdata/schema.sql")
	require.NoError(t, err)
	for _, stmt := range strings.Split(string(schema), ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		_, err := db.Exec(stmt)
		require.NoError(t, err)
	}

	s := store.New(db)
	router := routes.SetupRouter(&handlers.Handlers{Store: s, JWTSecret: testSecret})
	return router, s
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]json.RawMessage {
	t.Helper()
	out := map[string]json.RawMessage{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

// registerUser creates a user through the public endpoint and returns
// its id together with a valid token.
func registerUser(t *testing.T, router *gin.Engine, email string) (int64, string) {
	t.Helper()
	w := doJSON(t, router, http.MethodPost, "/v1/auth/register", "", gin.H{
		"email":     email,
		"password":  "s3cret-password",
		"firstName": "Test",
		"lastName":  "Shopper",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var payload struct {
		User models.User `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))

	token, err := auth.GenerateToken(payload.User.ID, testSecret)
	require.NoError(t, err)
	return payload.User.ID, token
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}

// makeStaff flips the staff flag directly; there is deliberately no
// endpoint for it.
func makeStaff(t *testing.T, s *store.Store, userID int64) {
	t.Helper()
	_, err := s.DB().Exec("UPDATE users SET is_staff = 1 WHERE id = ?", userID)
	require.NoError(t, err)
}
