package markets

import (
	"encoding/json"
	"net/http"

	"stakecast/storage"
)

// ListMarketsHandler handles GET /api/markets
func ListMarketsHandler(store *storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		all, err := store.GetMarkets()
		if err != nil {
			http.Error(w, "Failed to fetch markets", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(all)
	}
}
