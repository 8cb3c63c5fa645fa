package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/campuspool/ridepool/docs"
	"github.com/campuspool/ridepool/internal/config"
	"github.com/campuspool/ridepool/internal/database"
	"github.com/campuspool/ridepool/internal/expense"
	expensesplit "github.com/campuspool/ridepool/internal/expense/split"
	"github.com/campuspool/ridepool/internal/notification"
	"github.com/campuspool/ridepool/internal/ride"
	"github.com/campuspool/ridepool/internal/settlement"
	"github.com/campuspool/ridepool/internal/user"
	"github.com/campuspool/ridepool/pkg/logger"
	mw "github.com/campuspool/ridepool/pkg/middleware"
)

// @title RidePool API
// @version 1.0
// @description Campus ride-pooling with shared-expense settlement
// @host localhost:8080
// @BasePath /api/v1
func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		logger.Get().Info("No .env file found, using environment variables")
	}

	cfg := config.Load()
	log := logger.Get()
	defer logger.Sync()

	db, err := database.NewPostgresConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatalw("Failed to connect to database", "error", err)
	}
	defer db.Close()

	log.Info("Connected to database successfully")

	// Split strategy factory, shared by expense creation and balance
	// computation
	splitFactory := expensesplit.NewFactory()

	// User feature
	userRepo := user.NewRepository(db)
	userService := user.NewService(userRepo)
	userHandler := user.NewHandler(userService)

	// Notification feature
	notificationRepo := notification.NewRepository(db)
	notificationService := notification.NewService(notificationRepo)
	notificationHandler := notification.NewHandler(notificationService)

	// Ride feature
	rideRepo := ride.NewRepository(db)
	rideService := ride.NewService(rideRepo, notificationService)
	rideHandler := ride.NewHandler(rideService)

	// Expense feature (split factory injected)
	expenseRepo := expense.NewRepository(db)
	expenseService := expense.NewService(expenseRepo, rideService, splitFactory, notificationService)
	expenseHandler := expense.NewHandler(expenseService)

	// Settlement feature
	settlementRepo := settlement.NewRepository(db)
	settlementService := settlement.NewService(settlementRepo, rideService, expenseService, notificationService)
	settlementHandler := settlement.NewHandler(settlementService)

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(mw.RequireUser)

		r.Mount("/users", userHandler.Routes())
		r.Mount("/rides", rideHandler.Routes())
		r.Mount("/expenses", expenseHandler.Routes())
		r.Mount("/settlements", settlementHandler.Routes())
		r.Mount("/notifications", notificationHandler.Routes())
	})

	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	log.Infow("Server starting", "port", port, "environment", cfg.Environment)
	if err := http.ListenAndServe(":"+port, r); err != nil {
		log.Fatalw("Server failed to start", "error", err)
	}
}
