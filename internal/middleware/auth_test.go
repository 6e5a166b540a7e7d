package middleware

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "middleware-secret"

func sign(t *testing.T, key string, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(key))
	require.NoError(t, err)
	return s
}

func validClaims() jwt.MapClaims {
	return jwt.MapClaims{
		"user_id":   "u-1",
		"worker_id": "kevin",
		"email":     "kevin@example.com",
		"role":      "worker",
		"exp":       time.Now().Add(time.Hour).Unix(),
	}
}

func serve(t *testing.T, h http.Handler, header string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func echoClaims() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := GetUserFromContext(r)
		if !ok {
			w.WriteHeader(http.StatusTeapot)
			return
		}
		json.NewEncoder(w).Encode(claims)
	})
}

func TestAuth(t *testing.T) {
	logger := log.New(io.Discard)
	h := Auth(secret, logger)(echoClaims())

	rec := serve(t, h, "Bearer "+sign(t, secret, validClaims()))
	require.Equal(t, http.StatusOK, rec.Code)
	var got UserClaims
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, UserClaims{UserID: "u-1", WorkerID: "kevin", Email: "kevin@example.com", Role: "worker"}, got)

	expired := validClaims()
	expired["exp"] = time.Now().Add(-time.Minute).Unix()
	missingRole := validClaims()
	delete(missingRole, "role")

	cases := map[string]string{
		"no header":     "",
		"not bearer":    "Basic abc",
		"empty token":   "Bearer ",
		"garbage":       "Bearer not-a-jwt",
		"wrong secret":  "Bearer " + sign(t, "other", validClaims()),
		"expired":       "Bearer " + sign(t, secret, expired),
		"missing claim": "Bearer " + sign(t, secret, missingRole),
	}
	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			rec := serve(t, h, header)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Contains(t, rec.Body.String(), `"success":false`)
		})
	}
}

func TestAuth_NoSecretConfigured(t *testing.T) {
	h := Auth("", log.New(io.Discard))(echoClaims())
	rec := serve(t, h, "Bearer "+sign(t, secret, validClaims()))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestRequireRole(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNoContent) })
	h := RequireRole("admin")(ok)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req = req.WithContext(WithUser(req.Context(), UserClaims{UserID: "u-1", Role: "worker"}))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	req = req.WithContext(WithUser(req.Context(), UserClaims{UserID: "u-2", Role: "admin"}))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
