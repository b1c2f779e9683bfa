package positions

import (
	"encoding/json"
	"net/http"

	"stakecast/models"
	"stakecast/storage"
)

// ListPositionsHandler handles GET /api/positions?userAddress=
// Positions on resolved markets are reconciled before being returned.
func ListPositionsHandler(store *storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		address := r.URL.Query().Get("userAddress")
		if address == "" {
			http.Error(w, "userAddress query parameter is required", http.StatusBadRequest)
			return
		}

		positions, err := store.GetUserPositions(address)
		if err != nil {
			http.Error(w, "Failed to fetch positions", http.StatusInternalServerError)
			return
		}

		public := make([]models.PositionPublic, 0, len(positions))
		for i := range positions {
			public = append(public, positions[i].ToPublic())
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(public)
	}
}
