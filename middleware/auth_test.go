package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRoundTrip(t *testing.T) {
	token, err := CreateSessionToken("0xalice")
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer "+token)

	address, httpErr := ValidateSession(r)
	require.Nil(t, httpErr)
	assert.Equal(t, "0xalice", address)
}

func TestValidateSessionMissingHeader(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	_, httpErr := ValidateSession(r)
	require.NotNil(t, httpErr)
	assert.Equal(t, http.StatusUnauthorized, httpErr.StatusCode)
}

func TestValidateSessionGarbageToken(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer not.a.token")
	_, httpErr := ValidateSession(r)
	require.NotNil(t, httpErr)
	assert.Equal(t, http.StatusUnauthorized, httpErr.StatusCode)
}

func TestValidateSessionForWrongAddress(t *testing.T) {
	token, err := CreateSessionToken("0xalice")
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodPost, "/", nil)
	r.Header.Set("Authorization", "Bearer "+token)

	httpErr := ValidateSessionFor(r, "0xbob")
	require.NotNil(t, httpErr)
	assert.Equal(t, http.StatusForbidden, httpErr.StatusCode)

	assert.Nil(t, ValidateSessionFor(r, "0xAlice")) // address match is case-insensitive
}

func TestAddressRateLimiter(t *testing.T) {
	limiter := NewAddressRateLimiter(0.001, 2)

	require.Nil(t, limiter.Allow("0xalice"))
	require.Nil(t, limiter.Allow("0xalice"))

	httpErr := limiter.Allow("0xalice")
	require.NotNil(t, httpErr)
	assert.Equal(t, http.StatusTooManyRequests, httpErr.StatusCode)

	// Separate addresses get separate buckets
	assert.Nil(t, limiter.Allow("0xbob"))
}
