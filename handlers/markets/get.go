package markets

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"stakecast/storage"

	"github.com/gorilla/mux"
	"github.com/yuin/goldmark"
)

// GetMarketHandler handles GET /api/markets/{id}
func GetMarketHandler(store *storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		vars := mux.Vars(r)
		id, err := strconv.ParseInt(vars["id"], 10, 64)
		if err != nil {
			http.Error(w, "Invalid market ID", http.StatusBadRequest)
			return
		}

		market, err := store.GetMarket(id)
		if err != nil {
			if errors.Is(err, storage.ErrMarketNotFound) {
				http.Error(w, "Market not found", http.StatusNotFound)
				return
			}
			http.Error(w, "Failed to fetch market", http.StatusInternalServerError)
			return
		}

		// Descriptions are written in markdown; ship the rendered HTML
		// alongside the raw text so clients don't each need a renderer.
		if market.Description != "" {
			var buf bytes.Buffer
			if err := goldmark.Convert([]byte(market.Description), &buf); err == nil {
				market.DescriptionHTML = buf.String()
			}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(market)
	}
}
