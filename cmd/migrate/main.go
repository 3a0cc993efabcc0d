package main

import (
	"context"
	"flag"
	"log"

	"laundry-pos/internal/config"
	"laundry-pos/internal/db"
	"laundry-pos/internal/logger"
)

func main() {
	mode := flag.String("mode", db.MigrateUp, "migration mode: up or down")
	flag.Parse()

	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	if err := run(context.Background(), cfg, *mode); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, cfg *config.Config, mode string) error {
	database, err := db.NewDatabase(cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	ctx, done := logger.StartOperation(ctx, "migrate."+mode)
	err = db.Migrate(ctx, database, mode)
	done(err)
	return err
}
