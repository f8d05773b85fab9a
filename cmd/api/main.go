package main

import (
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/juliettemtl/boutique-backend/internal/modules/auth"
	"github.com/juliettemtl/boutique-backend/internal/modules/catalog"
	"github.com/juliettemtl/boutique-backend/internal/modules/customer"
	"github.com/juliettemtl/boutique-backend/internal/modules/dashboard"
	"github.com/juliettemtl/boutique-backend/internal/modules/expense"
	"github.com/juliettemtl/boutique-backend/internal/modules/export"
	"github.com/juliettemtl/boutique-backend/internal/modules/giftcard"
	"github.com/juliettemtl/boutique-backend/internal/modules/order"
	"github.com/juliettemtl/boutique-backend/internal/modules/user"
	"github.com/juliettemtl/boutique-backend/internal/platform/database"
)

func main() {
	_ = godotenv.Load()

	logger, err := newLogger()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		logger.Fatal("DATABASE_URL is required")
	}
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		logger.Fatal("JWT_SECRET is required")
	}

	db, err := database.Open(dsn)
	if err != nil {
		logger.Fatal("connect database", zap.Error(err))
	}
	defer db.Close()

	userRepo := user.NewPostgresRepository(db)
	authService := auth.NewService(userRepo, []byte(secret))
	authHandler := auth.NewHandler(authService)

	catalogService := catalog.NewService(catalog.NewPostgresRepository(db))
	customerService := customer.NewService(customer.NewPostgresRepository(db))
	orderService := order.NewService(order.NewPostgresRepository(db), logger)
	giftcardService := giftcard.NewService(giftcard.NewPostgresRepository(db), logger)
	expenseService := expense.NewService(expense.NewPostgresRepository(db), logger)
	dashboardService := dashboard.NewService(dashboard.NewPostgresRepository(db))
	exportService := export.NewService(export.NewPostgresRepository(db), logger)

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})
	authHandler.RegisterRoutes(r)

	r.Group(func(r chi.Router) {
		r.Use(auth.Middleware([]byte(secret)))
		catalog.NewHandler(catalogService).RegisterRoutes(r)
		customer.NewHandler(customerService).RegisterRoutes(r)
		order.NewHandler(orderService).RegisterRoutes(r)
		giftcard.NewHandler(giftcardService).RegisterRoutes(r)
		expense.NewHandler(expenseService).RegisterRoutes(r)
		dashboard.NewHandler(dashboardService).RegisterRoutes(r)
		export.NewHandler(exportService, logger).RegisterRoutes(r)
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	logger.Info("server listening", zap.String("port", port))
	if err := http.ListenAndServe(":"+port, r); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func newLogger() (*zap.Logger, error) {
	if os.Getenv("APP_ENV") == "development" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
