// file: internals/configs/config.go
package configs

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config is the typed view of the environment.
type Config struct {
	Port        string
	DBUser      string
	DBPassword  string
	DBHost      string
	DBPort      string
	DBName      string
	DBSSLMode   string
	DBURL       string
	RedisURL    string
	Timezone    string
	LogLevel    string
	CorsOrigins []string
	SweepAt     string
	SeedFile    string
}

var (
	App Config
	v   = viper.New()
)

func init() {
	v.SetDefault("PORT", "3000")
	v.SetDefault("DB_SSLMODE", "require")
	v.SetDefault("APP_TIMEZONE", "Europe/Rome")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("CORS_ORIGINS", "http://localhost:5173,http://localhost:3000")
	v.SetDefault("SWEEP_AT", "02:00")
	v.SetDefault("SEED_FILE", "internals/seeds/labs/catalog.yaml")
	v.AutomaticEnv()
}

// =======================
// ENV LOADER
// =======================
func LoadEnv() Config {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("⚠️ No .env file found, using system ENV")
		} else {
			log.Println("✅ .env file loaded")
		}
	} else {
		log.Println("🚀 Running in Railway, using system ENV")
	}

	App = Config{
		Port:        v.GetString("PORT"),
		DBUser:      v.GetString("DB_USER"),
		DBPassword:  v.GetString("DB_PASSWORD"),
		DBHost:      v.GetString("DB_HOST"),
		DBPort:      v.GetString("DB_PORT"),
		DBName:      v.GetString("DB_NAME"),
		DBSSLMode:   v.GetString("DB_SSLMODE"),
		DBURL:       v.GetString("DATABASE_URL"),
		RedisURL:    v.GetString("REDIS_URL"),
		Timezone:    v.GetString("APP_TIMEZONE"),
		LogLevel:    v.GetString("LOG_LEVEL"),
		CorsOrigins: splitList(v.GetString("CORS_ORIGINS")),
		SweepAt:     v.GetString("SWEEP_AT"),
		SeedFile:    v.GetString("SEED_FILE"),
	}

	SetupLogger(App.LogLevel)

	if App.DBURL == "" && App.DBHost == "" {
		log.Println("❌ DB_HOST / DATABASE_URL not set!")
	}
	return App
}

func GetEnv(key string, defaultValue ...string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	if len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return ""
}

// DSN prefers DATABASE_URL; otherwise builds one with a statement_timeout.
func (c Config) DSN() string {
	if c.DBURL != "" {
		return c.DBURL
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=easypeasy&options=-c statement_timeout=3000",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode,
	)
}

func SetupLogger(level string) {
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.DateTime,
	})
	lvl, err := log.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		lvl = log.InfoLevel
	}
	log.SetLevel(lvl)
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
