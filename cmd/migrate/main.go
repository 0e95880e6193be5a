package main

import (
	"context"

	"custody/internal/app/dsn"
	"custody/internal/app/repository"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	_ = godotenv.Load()

	dsnStr := dsn.FromEnv()
	if dsnStr == "" {
		logrus.Fatal("DSN string is empty. Check your .env file")
	}

	repo, err := repository.New(dsnStr)
	if err != nil {
		logrus.Fatalf("Failed to connect to database: %v", err)
	}
	logrus.Info("Connected to database successfully")

	if err := repository.RunMigrations(context.Background(), repo.DB()); err != nil {
		logrus.Fatalf("Failed to migrate database: %v", err)
	}

	logrus.Info("Database migration completed successfully")
}
