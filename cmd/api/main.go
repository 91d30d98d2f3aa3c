package main

import (
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	httpapi "github.com/homematch-ph/listing-recommender/internal/http"
	"github.com/homematch-ph/listing-recommender/internal/recommend"
	"github.com/homematch-ph/listing-recommender/internal/storage"
)

type Config struct {
	Address      string
	DBPath       string
	ListingsPath string
	ConfigPath   string
}

func main() {
	cfg := loadConfig()

	engineCfg, err := recommend.LoadConfigFromFile(cfg.ConfigPath)
	if err != nil {
		log.Printf("use default engine config (reason: %v)", err)
	}
	if err := engineCfg.Validate(); err != nil {
		log.Fatalf("engine config invalid: %v", err)
	}
	engine := recommend.NewEngine(engineCfg)

	store, err := storage.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatalf("open sqlite: %v", err)
	}
	defer store.Close()

	if err := store.EnsureSchema(); err != nil {
		log.Fatalf("ensure schema: %v", err)
	}

	if n, err := store.CountListings(); err != nil {
		log.Fatalf("count listings: %v", err)
	} else if n == 0 {
		seed, err := storage.LoadListingsFromFile(cfg.ListingsPath)
		if err != nil {
			log.Printf("start with empty inventory (reason: %v)", err)
		} else if err := store.UpsertMany(seed); err != nil {
			log.Fatalf("seed listings: %v", err)
		} else {
			log.Printf("seeded %d listings from %s", len(seed), cfg.ListingsPath)
		}
	}

	srv := httpapi.NewServer(engine, &httpapi.SQLiteListingsRepo{Store: store})

	log.Printf("API listening on %s", cfg.Address)
	if err := http.ListenAndServe(cfg.Address, srv.Routes()); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func loadConfig() Config {
	_ = godotenv.Load()

	return Config{
		Address:      getEnv("API_ADDRESS", ":8080"),
		DBPath:       getEnv("DB_PATH", "data/listings.db"),
		ListingsPath: getEnv("LISTINGS_PATH", "data/listings.json"),
		ConfigPath:   getEnv("CONFIG_PATH", "configs/engine.json"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
