package middleware

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/orgpulse/orgpulse/pkg/audit"
	"github.com/orgpulse/orgpulse/pkg/model"
	"github.com/orgpulse/orgpulse/pkg/rbac"
)

var bearerRegex = regexp.MustCompile(`^Bearer (\S+)$`)

type contextKey string

const identityKey contextKey = "identity"

// Identity is the authenticated caller attached to the request context
type Identity struct {
	UserID    string
	CompanyID string
	Role      rbac.Role
	Name      string
	Email     string
}

// sessionClaims is the JWT payload for a session token
type sessionClaims struct {
	CompanyID string `json:"company,omitempty"`
	Role      string `json:"role"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	jwt.RegisteredClaims
}

// SessionAuthenticator validates session tokens and attaches the
// caller's Identity to the request context
type SessionAuthenticator struct {
	key []byte
	ttl time.Duration
}

// NewSessionAuthenticator creates a new session authenticator
func NewSessionAuthenticator(key []byte, ttl time.Duration) *SessionAuthenticator {
	return &SessionAuthenticator{key: key, ttl: ttl}
}

// IssueToken mints a signed session token for a user
func (a *SessionAuthenticator) IssueToken(user *model.User) (string, error) {
	now := time.Now()
	claims := sessionClaims{
		Role:  user.Role,
		Name:  user.Name,
		Email: user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.ttl)),
		},
	}
	if user.CompanyID != nil {
		claims.CompanyID = *user.CompanyID
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.key)
}

// ParseToken validates a session token and returns the caller's identity
func (a *SessionAuthenticator) ParseToken(tokenStr string) (*Identity, error) {
	var claims sessionClaims
	token, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return a.key, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	if !rbac.Valid(claims.Role) {
		return nil, fmt.Errorf("unknown role: %s", claims.Role)
	}

	return &Identity{
		UserID:    claims.Subject,
		CompanyID: claims.CompanyID,
		Role:      rbac.Role(claims.Role),
		Name:      claims.Name,
		Email:     claims.Email,
	}, nil
}

// Middleware returns an HTTP middleware that requires a valid session token
func (a *SessionAuthenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")

		if len(authHeader) == 0 {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte("Authorization missing"))
			return
		}

		tokenMatches := bearerRegex.FindStringSubmatch(authHeader)
		if len(tokenMatches) != 2 {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte("Malformed authorization header"))
			return
		}

		identity, err := a.ParseToken(tokenMatches[1])
		if err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte("Invalid or expired token"))
			return
		}

		ctx := context.WithValue(r.Context(), identityKey, identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// IdentityFromContext retrieves the authenticated caller, if any
func IdentityFromContext(ctx context.Context) (*Identity, bool) {
	identity, ok := ctx.Value(identityKey).(*Identity)
	return identity, ok
}

// WithIdentity attaches an identity to a context. Used by tests.
func WithIdentity(ctx context.Context, identity *Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// RequirePermission wraps a handler with an RBAC permission check
func RequirePermission(permission rbac.Permission, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := IdentityFromContext(r.Context())
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte("Authorization missing"))
			return
		}

		if !rbac.Can(identity.Role, permission) {
			audit.Log(audit.CheckEvent{
				ActorID:    identity.UserID,
				ClientIP:   r.RemoteAddr,
				Permission: string(permission),
				Resource:   r.URL.Path,
				Allowed:    false,
			})
			w.WriteHeader(http.StatusForbidden)
			w.Write([]byte("Forbidden"))
			return
		}

		next.ServeHTTP(w, r)
	})
}
