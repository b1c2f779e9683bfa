package main

import (
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"stakecast/db"
	adminhandlers "stakecast/handlers/admin"
	"stakecast/handlers/markets"
	"stakecast/handlers/positions"
	"stakecast/handlers/users"
	"stakecast/middleware"
	"stakecast/migration"
	_ "stakecast/migration/migrations"
	"stakecast/seed"
	"stakecast/setup"
	"stakecast/storage"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

func main() {
	seedFlag := flag.Bool("seed", false, "populate the database with demo data and exit")
	flag.Parse()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if err := godotenv.Load(); err != nil {
		log.Info("no .env file found, using environment as-is")
	}

	cfg, err := setup.LoadEconomicsConfig()
	if err != nil {
		log.WithError(err).Fatal("failed to load economics config")
	}

	conn, err := db.Connect(log)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}

	if err := migration.Run(conn, log); err != nil {
		log.WithError(err).Fatal("failed to run migrations")
	}

	store := storage.New(conn, cfg, log)

	if *seedFlag {
		if err := seed.Run(store, log); err != nil {
			log.WithError(err).Fatal("seeding failed")
		}
		log.Info("seeding complete")
		return
	}

	// One token per second with a small burst, per address, on the
	// money-moving endpoints
	limiter := middleware.NewAddressRateLimiter(rate.Limit(1), 5)

	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods(http.MethodGet)

	api.HandleFunc("/auth/login", users.LoginHandler(store)).Methods(http.MethodPost)
	api.HandleFunc("/users/{address}", users.GetUserHandler(store)).Methods(http.MethodGet)

	api.HandleFunc("/markets", markets.ListMarketsHandler(store)).Methods(http.MethodGet)
	api.HandleFunc("/markets", markets.CreateMarketHandler(store)).Methods(http.MethodPost)
	api.HandleFunc("/markets/{id}", markets.GetMarketHandler(store)).Methods(http.MethodGet)
	api.HandleFunc("/markets/{id}", adminhandlers.DeleteMarketHandler(store)).Methods(http.MethodDelete)
	api.HandleFunc("/markets/{id}/resolve", adminhandlers.ResolveMarketHandler(store)).Methods(http.MethodPost)

	api.HandleFunc("/positions", positions.StakeHandler(store, limiter)).Methods(http.MethodPost)
	api.HandleFunc("/positions", positions.ListPositionsHandler(store)).Methods(http.MethodGet)
	api.HandleFunc("/claim", positions.ClaimHandler(store, limiter)).Methods(http.MethodPost)

	handler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type", "X-Admin-Key"},
	}).Handler(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan
		log.Info("shutting down")
		os.Exit(0)
	}()

	log.WithField("port", port).Info("stakecast listening")
	if err := http.ListenAndServe(":"+port, handler); err != nil {
		log.WithError(err).Fatal("server failed")
	}
}
