package main

import (
	"context"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "splitledger/docs"
	"splitledger/internal/activity"
	"splitledger/internal/auth"
	"splitledger/internal/balance"
	"splitledger/internal/config"
	"splitledger/internal/database"
	"splitledger/internal/expense"
	"splitledger/internal/group"
	"splitledger/internal/user"
	"splitledger/pkg/logging"
	mw "splitledger/pkg/middleware"
)

// @title           Split Ledger API
// @version         1.0
// @description     Shared-expense ledger with exact equal splits, derived balances, and minimal settlement plans.
// @BasePath        /api/v1
func main() {
	// Load .env if present; a missing file just means the real environment
	// is used as-is.
	_ = godotenv.Load()

	cfg := config.Load()
	logger := logging.Setup(cfg.LogLevel)

	ctx := context.Background()

	db, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.RunMigrations(db); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}
	logger.Info("database ready", "url", cfg.DatabaseURL)

	tokens := auth.NewManager(cfg.JWTSecret, cfg.JWTTTL)

	// Activity feed; the broker is optional, events still land in the
	// database without one.
	var publisher activity.EventPublisher
	if cfg.AMQPURL != "" {
		p, err := activity.NewPublisher(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("failed to connect to broker", "error", err)
			os.Exit(1)
		}
		defer p.Close()
		publisher = p
		logger.Info("activity events will be published", "exchange", cfg.AMQPExchange)
	}
	activityRepo := activity.NewRepository(db)
	activityService := activity.NewService(activityRepo, publisher, logger)
	activityHandler := activity.NewHandler(activityService)

	// User feature
	userRepo := user.NewRepository(db)
	userService := user.NewService(userRepo, tokens)
	userHandler := user.NewHandler(userService)

	// Group feature
	groupRepo := group.NewRepository(db)
	groupService := group.NewService(groupRepo, userService)
	groupHandler := group.NewHandler(groupService)

	// Expense feature
	expenseRepo := expense.NewRepository(db)
	expenseService := expense.NewService(expenseRepo, groupService, activityService)
	expenseHandler := expense.NewHandler(expenseService)

	// Balance feature, derived entirely from groups and expenses
	balanceService := balance.NewService(groupService, expenseRepo)
	balanceHandler := balance.NewHandler(balanceService)

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(mw.Metrics)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	requireAuth := mw.RequireAuth(tokens)

	r.Route("/api/v1", func(r chi.Router) {
		// Registration and login are the only unauthenticated endpoints.
		r.Mount("/users", userHandler.Routes(requireAuth))

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Mount("/groups", groupHandler.Routes())
			r.Mount("/expenses", expenseHandler.Routes())
			r.Mount("/balances", balanceHandler.Routes())
			r.Mount("/activity", activityHandler.Routes())
		})
	})

	logger.Info("server starting", "port", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}
}
