package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"

	"dulceria_pos_backend/internal/database"
	"dulceria_pos_backend/pkg/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: .env file not found, loading configs from system environment only: %v", err)
	}

	var migrationsDir string
	flag.StringVar(&migrationsDir, "dir", "./sql", "directory with migration files")
	flag.Parse()

	err := database.InitDB(
		utils.Getenv("DB_HOST", "localhost"),
		utils.Getenv("DB_PORT", "5432"),
		utils.Getenv("DB_USER", "dulceria_user"),
		utils.Getenv("DB_PASSWORD", "dulceria_password"),
		utils.Getenv("DB_NAME", "dulceria_pos_db"),
		utils.Getenv("DB_SSLMODE", "disable"),
	)
	if err != nil {
		log.Fatalf("goose: failed to connect to DB: %v\n", err)
	}
	db := database.GetDB()
	defer func() {
		if err := db.Close(); err != nil {
			log.Fatalf("goose: failed to close DB: %v\n", err)
		}
	}()

	arguments := flag.Args()
	if len(arguments) == 0 {
		arguments = []string{"up"}
	}

	command := arguments[0]
	var args []string
	if len(arguments) > 1 {
		args = arguments[1:]
	}

	if err := goose.Run(command, db, migrationsDir, args...); err != nil {
		log.Fatalf("goose %v: %v", command, err)
	}

	fmt.Printf("goose %s success\n", command)
}
