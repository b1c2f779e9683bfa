package middleware

import (
	"errors"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// HTTPError carries a status code and message for auth failures
type HTTPError struct {
	StatusCode int
	Message    string
}

const sessionDuration = 24 * time.Hour

// SessionClaims are the JWT claims for a wallet session
type SessionClaims struct {
	Address string `json:"address"`
	jwt.RegisteredClaims
}

func signingKey() []byte {
	if key := os.Getenv("JWT_SIGNING_KEY"); key != "" {
		return []byte(key)
	}
	// dev fallback, overridden in any real deployment
	return []byte("stakecast-dev-signing-key")
}

// CreateSessionToken issues a signed session token for an address
func CreateSessionToken(address string) (string, error) {
	claims := SessionClaims{
		Address: address,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(sessionDuration)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(signingKey())
}

// ValidateSession validates the bearer token on a request and returns
// the session address. Tokens are sent as "Bearer <token>" in the
// Authorization header.
func ValidateSession(r *http.Request) (string, *HTTPError) {
	authHeader := r.Header.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return "", &HTTPError{
			StatusCode: http.StatusUnauthorized,
			Message:    "Session token required. Use 'Bearer <token>' in Authorization header",
		}
	}
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")

	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return signingKey(), nil
	})
	if err != nil || !token.Valid {
		return "", &HTTPError{
			StatusCode: http.StatusUnauthorized,
			Message:    "Invalid or expired session token",
		}
	}
	return claims.Address, nil
}

// ValidateSessionFor checks that the session belongs to the given
// address. Used on money-moving endpoints so one wallet cannot stake or
// claim for another.
func ValidateSessionFor(r *http.Request, address string) *HTTPError {
	sessionAddress, httpErr := ValidateSession(r)
	if httpErr != nil {
		return httpErr
	}
	if !strings.EqualFold(sessionAddress, address) {
		return &HTTPError{
			StatusCode: http.StatusForbidden,
			Message:    "Session does not match user address",
		}
	}
	return nil
}
