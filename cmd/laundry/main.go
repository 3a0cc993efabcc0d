package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"laundry-pos/internal/config"
	"laundry-pos/internal/db"
	"laundry-pos/internal/logger"
)

func main() {
	os.Exit(realMain())
}

func realMain() int {
	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := db.InitDB(cfg)
	defer database.Close()

	ctx := context.Background()
	if err := db.Migrate(ctx, database, db.MigrateUp); err != nil {
		log.Printf("❌ migration failed: %v", err)
		return 1
	}

	if err := newApp(cfg, database, os.Stdout).run(ctx, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}
	return 0
}
