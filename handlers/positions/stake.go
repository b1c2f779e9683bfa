package positions

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"

	"stakecast/middleware"
	"stakecast/models"
	"stakecast/storage"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

// authRequired reports whether money-moving endpoints demand a session
// token. Off by default so the demo client can talk to the API with
// just an address.
func authRequired() bool {
	return os.Getenv("REQUIRE_AUTH") == "true"
}

// StakeHandler handles POST /api/positions
func StakeHandler(store *storage.Storage, limiter *middleware.AddressRateLimiter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req models.StakeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		if err := validate.Struct(req); err != nil {
			http.Error(w, "Invalid stake request: "+err.Error(), http.StatusBadRequest)
			return
		}

		if authRequired() {
			if httpErr := middleware.ValidateSessionFor(r, req.UserAddress); httpErr != nil {
				http.Error(w, httpErr.Message, httpErr.StatusCode)
				return
			}
		}

		if httpErr := limiter.Allow(req.UserAddress); httpErr != nil {
			http.Error(w, httpErr.Message, httpErr.StatusCode)
			return
		}

		amount, err := decimal.NewFromString(req.Amount)
		if err != nil {
			http.Error(w, "Invalid amount", http.StatusBadRequest)
			return
		}

		position, err := store.CreatePosition(req.MarketID, req.OptionID, req.UserAddress, amount)
		if err != nil {
			writeStorageError(w, err)
			return
		}

		user, err := store.GetUser(req.UserAddress)
		if err != nil {
			http.Error(w, "Failed to fetch user", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(models.StakeResponse{
			Success:    true,
			Position:   position.ToPublic(),
			NewBalance: user.Balance.StringFixed(6),
		})
	}
}

// writeStorageError maps settlement-engine rejections to HTTP statuses
func writeStorageError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, storage.ErrMarketNotFound),
		errors.Is(err, storage.ErrOptionNotFound),
		errors.Is(err, storage.ErrUserNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, storage.ErrInsufficientBalance):
		http.Error(w, err.Error(), http.StatusPaymentRequired)
	case errors.Is(err, storage.ErrMarketClosed),
		errors.Is(err, storage.ErrMarketResolved),
		errors.Is(err, storage.ErrMarketNotResolved),
		errors.Is(err, storage.ErrNoUnclaimedPositions),
		errors.Is(err, storage.ErrInvalidAmount):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, "Database error", http.StatusInternalServerError)
	}
}
