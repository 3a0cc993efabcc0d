package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	AppEnv   string
	DBDriver string
	DBPath   string

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string

	BackupDir        string
	ShopName         string
	StrictStatusFlow bool
}

func LoadConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:           os.Getenv("APP_ENV"),
		DBDriver:         getEnv("DB_DRIVER", DriverSQLite),
		DBPath:           getEnv("DB_PATH", "laundry.db"),
		DBHost:           os.Getenv("DB_HOST"),
		DBUser:           os.Getenv("DB_USER"),
		DBPassword:       os.Getenv("DB_PASSWORD"),
		DBName:           os.Getenv("DB_NAME"),
		DBPort:           getEnv("DB_PORT", "5432"),
		BackupDir:        getEnv("BACKUP_DIR", "."),
		ShopName:         getEnv("SHOP_NAME", "Laundry"),
		StrictStatusFlow: getBool("STRICT_STATUS_FLOW", false),
	}

	if cfg.DBDriver == DriverPostgres && cfg.DBHost == "" {
		log.Fatal("DB_DRIVER=postgres requires DB_HOST")
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
