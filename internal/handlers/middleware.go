package handlers

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type ctxKey string

const actorIDKey ctxKey = "actorID"

type MiddlewareProvider struct {
	SecretOption string
}

func New() *MiddlewareProvider {
	return &MiddlewareProvider{
		SecretOption: os.Getenv("JWT_SECRET"),
	}
}

func (m *MiddlewareProvider) secret() []byte {
	return []byte(m.SecretOption)
}

// JWTMiddleware validates the bearer token and stashes the actor's user id
// in the request context; the submission list needs it for the "mine" filter.
func (m *MiddlewareProvider) JWTMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			http.Error(w, "Authorization header missing", http.StatusUnauthorized)
			return
		}

		// Extract token from "Bearer <token>"
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return m.secret(), nil
		})

		if err != nil || !token.Valid {
			http.Error(w, "Invalid token", http.StatusUnauthorized)
			return
		}

		actorID, err := actorFromClaims(token.Claims)
		if err != nil {
			http.Error(w, "Invalid token", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithActorID(r.Context(), actorID)))
	})
}

func actorFromClaims(claims jwt.Claims) (uuid.UUID, error) {
	mapClaims, ok := claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, fmt.Errorf("unexpected claims type")
	}
	uid, ok := mapClaims["uid"].(string)
	if !ok {
		return uuid.Nil, fmt.Errorf("uid claim missing")
	}
	return uuid.Parse(uid)
}

// WithActorID returns a context carrying the authenticated user's id.
func WithActorID(ctx context.Context, actorID uuid.UUID) context.Context {
	return context.WithValue(ctx, actorIDKey, actorID)
}

// ActorID extracts the authenticated user's id from the request context.
func ActorID(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(actorIDKey).(uuid.UUID)
	return id, ok
}
