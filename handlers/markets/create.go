package markets

import (
	"encoding/json"
	"net/http"
	"time"

	"stakecast/models"
	"stakecast/security"
	"stakecast/storage"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// CreateMarketHandler handles POST /api/markets
func CreateMarketHandler(store *storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req models.CreateMarketRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
			return
		}

		if err := validate.Struct(req); err != nil {
			http.Error(w, "Invalid market data: "+err.Error(), http.StatusBadRequest)
			return
		}

		if !req.CloseTime.After(time.Now()) {
			http.Error(w, "Close time must be in the future", http.StatusBadRequest)
			return
		}

		securityService := security.NewSecurityService()
		sanitized, err := securityService.ValidateAndSanitizeMarketInput(security.MarketInput{
			Question:    req.Question,
			Description: req.Description,
			Category:    req.Category,
		})
		if err != nil {
			http.Error(w, "Invalid market data: "+err.Error(), http.StatusBadRequest)
			return
		}
		req.Question = sanitized.Question
		req.Description = sanitized.Description
		req.Category = sanitized.Category

		req.Options = securityService.SanitizeOptionLabels(req.Options)
		if len(req.Options) < 2 {
			http.Error(w, "Market needs at least 2 options", http.StatusBadRequest)
			return
		}

		market, err := store.CreateMarket(req)
		if err != nil {
			http.Error(w, "Error creating market: "+err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(market)
	}
}
