package positions

import (
	"encoding/json"
	"net/http"

	"stakecast/middleware"
	"stakecast/models"
	"stakecast/storage"
)

// ClaimHandler handles POST /api/claim
func ClaimHandler(store *storage.Storage, limiter *middleware.AddressRateLimiter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req models.ClaimRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		if err := validate.Struct(req); err != nil {
			http.Error(w, "Invalid claim request: "+err.Error(), http.StatusBadRequest)
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

		payout, err := store.ClaimPayout(req.MarketID, req.UserAddress)
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
		json.NewEncoder(w).Encode(models.ClaimResponse{
			Success:    true,
			Payout:     payout,
			NewBalance: user.Balance.StringFixed(6),
		})
	}
}
