package users

import (
	"encoding/json"
	"errors"
	"net/http"

	"stakecast/middleware"
	"stakecast/models"
	"stakecast/storage"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
)

var validate = validator.New()

// LoginHandler handles POST /api/auth/login. There are no passwords;
// presenting an address opens (and lazily provisions) that wallet and
// returns a session token for it.
func LoginHandler(store *storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req models.LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		if err := validate.Struct(req); err != nil {
			http.Error(w, "Invalid address: "+err.Error(), http.StatusBadRequest)
			return
		}

		user, err := store.GetOrCreateUser(req.Address)
		if err != nil {
			http.Error(w, "Failed to load user", http.StatusInternalServerError)
			return
		}

		token, err := middleware.CreateSessionToken(user.Address)
		if err != nil {
			http.Error(w, "Failed to create session", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(models.LoginResponse{
			Token: token,
			User:  user.ToPublic(),
		})
	}
}

// GetUserHandler handles GET /api/users/{address}
func GetUserHandler(store *storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		address := mux.Vars(r)["address"]
		user, err := store.GetUser(address)
		if err != nil {
			if errors.Is(err, storage.ErrUserNotFound) {
				http.Error(w, "User not found", http.StatusNotFound)
				return
			}
			http.Error(w, "Failed to fetch user", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(user.ToPublic())
	}
}
