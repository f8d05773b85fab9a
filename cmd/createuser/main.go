package main

import (
	"context"
	"flag"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/juliettemtl/boutique-backend/internal/modules/user"
	"github.com/juliettemtl/boutique-backend/internal/platform/database"
)

// There is no self-service registration; staff accounts are created
// from the command line by whoever operates the server.
func main() {
	_ = godotenv.Load()

	name := flag.String("name", "", "display name")
	email := flag.String("email", "", "login email")
	password := flag.String("password", "", "password")
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	if *name == "" || *email == "" || *password == "" {
		logger.Fatal("usage: createuser -name NAME -email EMAIL -password PASSWORD")
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		logger.Fatal("DATABASE_URL is required")
	}
	db, err := database.Open(dsn)
	if err != nil {
		logger.Fatal("connect database", zap.Error(err))
	}
	defer db.Close()

	service := user.NewService(user.NewPostgresRepository(db))
	u, err := service.RegisterUser(context.Background(), *name, *email, *password)
	if err != nil {
		logger.Fatal("create user", zap.Error(err))
	}
	logger.Info("user created", zap.String("id", u.ID.String()), zap.String("email", u.Email))
}
