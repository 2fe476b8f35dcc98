package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"gitlab.com/gradeview-2025.net/internal/handlers"
)

const testSecret = "test-secret"

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testSecret))
	assert.NoError(t, err)
	return signed
}

func TestJWTMiddlewareInjectsActor(t *testing.T) {
	actorID := uuid.MustParse("018f0000-0000-7000-8000-0000000000cc")
	m := &handlers.MiddlewareProvider{SecretOption: testSecret}

	var gotActor uuid.UUID
	var gotOK bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotActor, gotOK = handlers.ActorID(r.Context())
	})

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer "+signedToken(t, jwt.MapClaims{
		"uid": actorID.String(),
		"exp": time.Now().Add(time.Hour).Unix(),
	}))
	rec := httptest.NewRecorder()

	m.JWTMiddleware(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, gotOK)
	assert.Equal(t, actorID, gotActor)
}

func TestJWTMiddlewareMissingHeader(t *testing.T) {
	m := &handlers.MiddlewareProvider{SecretOption: testSecret}
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	})

	req := httptest.NewRequest("GET", "/", nil)
	rec := httptest.NewRecorder()

	m.JWTMiddleware(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTMiddlewareBadSignature(t *testing.T) {
	m := &handlers.MiddlewareProvider{SecretOption: "another-secret"}
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	})

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer "+signedToken(t, jwt.MapClaims{
		"uid": uuid.NewString(),
		"exp": time.Now().Add(time.Hour).Unix(),
	}))
	rec := httptest.NewRecorder()

	m.JWTMiddleware(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTMiddlewareMissingUIDClaim(t *testing.T) {
	m := &handlers.MiddlewareProvider{SecretOption: testSecret}
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	})

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer "+signedToken(t, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	}))
	rec := httptest.NewRecorder()

	m.JWTMiddleware(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
