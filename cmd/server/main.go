package main

import (
	"context"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/pickleconnect/backend/internal/config"
	"github.com/pickleconnect/backend/internal/handlers"
	appMiddleware "github.com/pickleconnect/backend/internal/middleware"
	"github.com/pickleconnect/backend/internal/services"
	"github.com/pickleconnect/backend/internal/storage"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	// Document store: Mongo when configured, JSON files otherwise.
	var (
		players     services.PlayerStore
		connections services.ConnectionStore
	)
	if cfg.UseMongo() {
		playerSvc, err := services.NewMongoPlayerService(ctx, cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			log.Fatalf("Failed to connect to MongoDB (players): %v", err)
		}
		defer playerSvc.Close(ctx)

		connSvc, err := services.NewMongoConnectionService(ctx, cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			log.Fatalf("Failed to connect to MongoDB (connections): %v", err)
		}
		defer connSvc.Close(ctx)

		players = playerSvc
		connections = connSvc
	} else {
		playerStore, err := storage.NewJSONStore(cfg.DataDir, "players.json")
		if err != nil {
			log.Fatalf("Failed to open player store: %v", err)
		}
		connStore, err := storage.NewJSONStore(cfg.DataDir, "connections.json")
		if err != nil {
			log.Fatalf("Failed to open connection store: %v", err)
		}

		playerSvc, err := services.NewPlayerService(playerStore)
		if err != nil {
			log.Fatalf("Failed to load players: %v", err)
		}
		connSvc, err := services.NewConnectionService(connStore)
		if err != nil {
			log.Fatalf("Failed to load connections: %v", err)
		}

		players = playerSvc
		connections = connSvc
	}

	connectService := services.NewConnectService(players, connections)
	qrService := services.NewQRService()

	profileHandler := handlers.NewProfileHandler(connectService, cfg.PublicBaseURL)
	connectionHandler := handlers.NewConnectionHandler(connectService)
	playerHandler := handlers.NewPlayerHandler(connectService, qrService, cfg.PublicBaseURL)

	// Identity provider: Firebase ID tokens in production, locally issued
	// JWTs in dev/test.
	var authMiddleware func(http.Handler) http.Handler
	var authHandler *handlers.AuthHandler
	if cfg.AuthMode == config.AuthModeLocal {
		userStore, err := storage.NewJSONStore(cfg.DataDir, "users.json")
		if err != nil {
			log.Fatalf("Failed to open user store: %v", err)
		}
		userService, err := services.NewUserService(userStore)
		if err != nil {
			log.Fatalf("Failed to load users: %v", err)
		}
		authHandler = handlers.NewAuthHandler(userService, cfg.JWTSecret, cfg.JWTExpiration)
		authMiddleware = appMiddleware.JWTAuth(cfg.JWTSecret)
	} else {
		authClient, err := appMiddleware.NewFirebaseAuthClient(ctx, appMiddleware.FirebaseAuthConfig{
			ProjectID:       cfg.FirebaseProjectID,
			CredentialsJSON: cfg.FirebaseCredentialsJSON,
		})
		if err != nil {
			log.Printf("Warning: failed to initialize Firebase Auth client: %v", err)
		}
		authMiddleware = appMiddleware.FirebaseAuth(authClient)
	}

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	r.Route("/api", func(r chi.Router) {
		if authHandler != nil {
			r.Post("/auth/register", authHandler.Register)
			r.Post("/auth/login", authHandler.Login)
		}

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)

			r.Get("/profile", profileHandler.GetProfile)
			r.Put("/profile", profileHandler.UpsertProfile)

			r.Get("/connections", connectionHandler.ListConnections)
			r.Post("/connections", connectionHandler.Connect)
		})
	})

	// Public share-link surface; no auth so NFC/QR scans resolve directly.
	r.Route("/player/{playerId}", func(r chi.Router) {
		r.Get("/", playerHandler.GetPlayer)
		r.Get("/qr", playerHandler.GetPlayerQR)
	})

	log.Printf("Pickle Connect API server starting on %s", cfg.ServerAddress)
	if err := http.ListenAndServe(cfg.ServerAddress, r); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
