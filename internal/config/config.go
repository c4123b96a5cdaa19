package config

import (
	"os"
	"runtime"
	"strconv"
	"time"
)

type Config struct {
	Debug        bool          `json:"debug"`
	LogLevel     string        `json:"logLevel"`
	HTTPAddr     string        `json:"httpAddr"`
	DBPath       string        `json:"dbPath"`
	BenchWorkers int           `json:"benchWorkers"`
	Strategy     string        `json:"strategy"`
	SessionTTL   time.Duration `json:"sessionTTL"`
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getenvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func defaultWorkers() int {
	if n := runtime.NumCPU() - 2; n > 0 {
		return n
	}
	return 1
}

func Load() Config {
	cfg := Config{
		Debug:        getenvBool("GRIDMERGE_DEBUG", false),
		LogLevel:     getenv("LOG_LEVEL", "info"),
		HTTPAddr:     getenv("HTTP_ADDR", ":8080"),
		DBPath:       getenv("DB_PATH", "data/results.db"),
		BenchWorkers: getenvInt("BENCH_WORKERS", defaultWorkers()),
		Strategy:     getenv("STRATEGY", "greedy"),
		SessionTTL:   time.Duration(getenvInt("SESSION_TTL_MIN", 60)) * time.Minute,
	}
	if cfg.BenchWorkers < 1 {
		cfg.BenchWorkers = 1
	}
	return cfg
}
