package middleware

import (
	"net/http"
	"os"

	"golang.org/x/crypto/bcrypt"
)

// ValidateAdminKey checks the X-Admin-Key header against the bcrypt
// hash in ADMIN_KEY_HASH. Resolve and delete are admin-only.
func ValidateAdminKey(r *http.Request) *HTTPError {
	hash := os.Getenv("ADMIN_KEY_HASH")
	if hash == "" {
		return &HTTPError{
			StatusCode: http.StatusForbidden,
			Message:    "Admin operations are disabled (no ADMIN_KEY_HASH set)",
		}
	}

	key := r.Header.Get("X-Admin-Key")
	if key == "" {
		return &HTTPError{
			StatusCode: http.StatusUnauthorized,
			Message:    "Admin key required. Use X-Admin-Key header",
		}
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(key)); err != nil {
		return &HTTPError{
			StatusCode: http.StatusForbidden,
			Message:    "Invalid admin key",
		}
	}
	return nil
}
