package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port      string
	StoreType string
	DataFile  string

	PostgresURL string
	MongoURL    string
	MongoDBName string

	BcryptCost int

	R2Bucket          string
	R2AccountID       string
	R2PublicURL       string
	R2AccessKeyID     string
	R2SecretAccessKey string
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg := &Config{
		Port:        os.Getenv("PORT"),
		StoreType:   os.Getenv("STORE_TYPE"),
		DataFile:    os.Getenv("DATA_FILE"),
		PostgresURL: os.Getenv("POSTGRES_URL"),
		MongoURL:    os.Getenv("MONGO_URL"),
		MongoDBName: os.Getenv("MONGO_DB_NAME"),

		R2Bucket:          os.Getenv("R2_BUCKET"),
		R2AccountID:       os.Getenv("R2_ACCOUNT_ID"),
		R2PublicURL:       os.Getenv("R2_PUBLIC_URL"),
		R2AccessKeyID:     os.Getenv("R2_ACCESS_KEY_ID"),
		R2SecretAccessKey: os.Getenv("R2_SECRET_ACCESS_KEY"),
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.StoreType == "" {
		cfg.StoreType = "file"
	}
	if cfg.DataFile == "" {
		cfg.DataFile = "data/users.json"
	}
	if cfg.MongoDBName == "" {
		cfg.MongoDBName = "accounts"
	}
	if v := os.Getenv("BCRYPT_COST"); v != "" {
		cost, err := strconv.Atoi(v)
		if err != nil {
			log.Printf("ignoring invalid BCRYPT_COST %q", v)
		} else {
			cfg.BcryptCost = cost
		}
	}
	return cfg
}
