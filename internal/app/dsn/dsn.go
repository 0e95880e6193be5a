package dsn

import (
	"fmt"
	"os"
)

// FromEnv builds the Postgres DSN from DB_* variables. It returns "" when DB_HOST is unset.
func FromEnv() string {
	host, ok := os.LookupEnv("DB_HOST")
	if !ok || host == "" {
		return ""
	}
	port, ok := os.LookupEnv("DB_PORT")
	if !ok || port == "" {
		port = "5432"
	}
	user := os.Getenv("DB_USER")
	pass := os.Getenv("DB_PASS")
	dbname := os.Getenv("DB_NAME")

	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable TimeZone=UTC",
		host, port, user, pass, dbname)
}
