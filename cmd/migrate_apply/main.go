package main

import (
	"context"
	"flag"
	"log"
	"os"

	"community_cards/internal/db"
	"community_cards/internal/migrations"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}

	cmd := flag.String("cmd", "status", "migration command: up, down or status")
	flag.Parse()

	ctx := context.Background()
	pool, err := db.Connect(ctx, dsn)
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()

	sqlDB := db.SQL(pool)
	defer sqlDB.Close()

	switch *cmd {
	case "up":
		err = migrations.Up(ctx, sqlDB)
	case "down":
		err = migrations.Down(ctx, sqlDB)
	case "status":
		err = migrations.Status(ctx, sqlDB)
	default:
		log.Fatalf("unknown command %q", *cmd)
	}
	if err != nil {
		log.Fatalf("migrate %s: %v", *cmd, err)
	}
}
