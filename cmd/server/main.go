package main

import (
	"net/http"
	"time"

	"photoshare-api/internal/config"
	"photoshare-api/internal/database"
	"photoshare-api/internal/handlers"
	"photoshare-api/internal/media"
	"photoshare-api/internal/repository"
	"photoshare-api/internal/services"
	"photoshare-api/internal/utils"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	logLevel, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Initialize database
	db, err := database.NewDatabase(cfg, logger)
	if err != nil {
		logger.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Initialize JWT utility
	jwtUtil := utils.NewJWTUtil(cfg.JWTSecret, cfg.JWTExpiration)

	// Initialize media relay
	relay, err := media.New(cfg)
	if err != nil {
		logger.Fatalf("Failed to initialize media relay: %v", err)
	}

	// Initialize layers
	repo := repository.New(db.DB)
	userService := services.NewUserService(repo, jwtUtil, logger)
	photoService := services.NewPhotoService(repo, logger)
	commentService := services.NewCommentService(repo, logger)

	// Create router
	router := mux.NewRouter()

	// Health check endpoint
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}).Methods("GET")

	// Credential endpoints share one limiter
	authLimiter := rate.NewLimiter(rate.Every(time.Second), 10)
	router.HandleFunc("/signup", handlers.RateLimitMiddleware(authLimiter)(handlers.Signup(userService))).Methods("POST")
	router.HandleFunc("/login", handlers.RateLimitMiddleware(authLimiter)(handlers.Login(userService))).Methods("POST")

	// Authenticated routes
	apiRouter := router.PathPrefix("/").Subrouter()
	apiRouter.Use(handlers.JWTMiddleware(jwtUtil))
	{
		apiRouter.HandleFunc("/me", handlers.Me(userService)).Methods("GET")
		apiRouter.HandleFunc("/upload", handlers.UploadPhoto(photoService, relay)).Methods("POST")
		apiRouter.HandleFunc("/photos", handlers.ListPhotos(photoService)).Methods("GET")
		apiRouter.HandleFunc("/photos/{id}", handlers.GetPhoto(photoService)).Methods("GET")
		apiRouter.HandleFunc("/photos/{id}/comment", handlers.AddComment(commentService)).Methods("POST")
		apiRouter.HandleFunc("/photos/{photoId}/comment/{commentId}", handlers.DeleteComment(commentService)).Methods("DELETE")
		apiRouter.HandleFunc("/photos/{id}/description", handlers.UpdateDescription(photoService)).Methods("PUT")
		apiRouter.HandleFunc("/photos/{id}/like", handlers.ToggleLike(photoService)).Methods("POST")
		apiRouter.HandleFunc("/photos/{id}", handlers.DeletePhoto(photoService)).Methods("DELETE")
	}

	// CORS configuration
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	})

	// Start server
	logger.Infof("Server running on port %s", cfg.AppPort)
	logger.Fatal(http.ListenAndServe(":"+cfg.AppPort, corsHandler.Handler(router)))
}
