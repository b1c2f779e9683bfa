package adminhandlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"stakecast/middleware"
	"stakecast/models"
	"stakecast/storage"

	"github.com/gorilla/mux"
)

// ResolveMarketHandler handles POST /api/markets/{id}/resolve
func ResolveMarketHandler(store *storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		if httpErr := middleware.ValidateAdminKey(r); httpErr != nil {
			http.Error(w, httpErr.Message, httpErr.StatusCode)
			return
		}

		marketID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
		if err != nil {
			http.Error(w, "Invalid market ID", http.StatusBadRequest)
			return
		}

		var req models.ResolveMarketRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if req.WinningOptionID <= 0 {
			http.Error(w, "Winning option ID is required", http.StatusBadRequest)
			return
		}

		market, err := store.ResolveMarket(marketID, req.WinningOptionID)
		if err != nil {
			switch {
			case errors.Is(err, storage.ErrMarketNotFound):
				http.Error(w, "Market not found", http.StatusNotFound)
			case errors.Is(err, storage.ErrOptionNotFound):
				http.Error(w, "Option does not belong to this market", http.StatusBadRequest)
			case errors.Is(err, storage.ErrMarketResolved):
				http.Error(w, "Market is already resolved", http.StatusConflict)
			default:
				http.Error(w, "Failed to resolve market", http.StatusInternalServerError)
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"market":  market,
		})
	}
}

// DeleteMarketHandler handles DELETE /api/markets/{id}
func DeleteMarketHandler(store *storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		if httpErr := middleware.ValidateAdminKey(r); httpErr != nil {
			http.Error(w, httpErr.Message, httpErr.StatusCode)
			return
		}

		marketID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
		if err != nil {
			http.Error(w, "Invalid market ID", http.StatusBadRequest)
			return
		}

		if err := store.DeleteMarket(marketID); err != nil {
			if errors.Is(err, storage.ErrMarketNotFound) {
				http.Error(w, "Market not found", http.StatusNotFound)
				return
			}
			http.Error(w, "Failed to delete market", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"deleted": marketID,
		})
	}
}
