package config

import (
	"errors"
	"flag"
	"fmt"
	"net"
	"os"
	"regexp"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr        string
	Storage     string
	FilePath    string
	SQLitePath  string
	RedisURL    string
	TokenSecret string
	TokenTTL    time.Duration
	Debug       bool

	AdminEmail    string
	AdminPassword string
}

var storageDrivers = map[string]bool{
	"memory": true,
	"file":   true,
	"redis":  true,
	"sqlite": true,
}

func ParseFlags() (cfg Config, err error) {
	// .env is optional; explicit flags win over environment values
	godotenv.Load()

	var host string
	flag.StringVar(&host, "host", "0.0.0.0", "listen host name (default 0.0.0.0)")
	var port uint
	flag.UintVar(&port, "port", 80, "listen port number (default 80)")
	flag.StringVar(&cfg.Storage, "storage", envOr("STORAGE", "file"), "storage driver: memory|file|redis|sqlite")
	flag.StringVar(&cfg.FilePath, "file-path", envOr("FILE_PATH", "feedback.json"), "path to JSON data file (file driver)")
	flag.StringVar(&cfg.SQLitePath, "sqlite-path", envOr("SQLITE_PATH", "feedback.sqlite"), "path to SQLite3 DB file (sqlite driver)")
	flag.StringVar(&cfg.RedisURL, "redis-url", envOr("REDIS_URL", ""), "Redis connection URL (redis driver)")
	flag.StringVar(&cfg.TokenSecret, "token-secret", os.Getenv("TOKEN_SECRET"), "secret key for token encryption and decryption")
	var ttl uint
	flag.UintVar(&ttl, "token-ttl", 1800, "token TTL in seconds (default 1800)")
	flag.StringVar(&cfg.AdminEmail, "admin-email", envOr("ADMIN_EMAIL", "admin@fgservices.com.br"), "administrator login email")
	flag.StringVar(&cfg.AdminPassword, "admin-password", os.Getenv("ADMIN_PASSWORD"), "administrator login password")
	flag.BoolVar(&cfg.Debug, "debug", false, "log at DEBUG level")
	flag.Parse()

	cfg.Addr = net.JoinHostPort(host, strconv.Itoa(int(port)))
	cfg.TokenTTL = time.Duration(ttl) * time.Second

	if !storageDrivers[cfg.Storage] {
		err = fmt.Errorf("unknown storage driver %q", cfg.Storage)
		return
	}
	if cfg.Storage == "redis" && cfg.RedisURL == "" {
		err = errors.New("missing parameter -redis-url")
		return
	}
	if cfg.TokenSecret == "" {
		err = errors.New("missing parameter -token-secret")
		return
	}
	if cfg.AdminPassword == "" {
		err = errors.New("missing parameter -admin-password")
	}

	return
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func (cfg Config) Url() (url string) {
	url = cfg.Addr
	url = regexp.MustCompile(`^0.0.0.0`).ReplaceAllString(url, "localhost")
	url = "http://" + url
	return
}
