package main

import (
	"flag"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/juliettemtl/boutique-backend/internal/platform/database"
)

func main() {
	_ = godotenv.Load()

	schemaPath := flag.String("schema", "migrations/schema.sql", "path to the schema file")
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		logger.Fatal("DATABASE_URL is required")
	}

	db, err := database.Open(dsn)
	if err != nil {
		logger.Fatal("connect database", zap.Error(err))
	}
	defer db.Close()

	schema, err := os.ReadFile(*schemaPath)
	if err != nil {
		logger.Fatal("read schema", zap.String("path", *schemaPath), zap.Error(err))
	}
	if _, err := db.Exec(string(schema)); err != nil {
		logger.Fatal("apply schema", zap.Error(err))
	}

	logger.Info("schema applied", zap.String("path", *schemaPath))
}
