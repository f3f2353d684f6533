package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	QueueByVacTime  = "vac_time"
	QueueByPriority = "priority"
)

type Config struct {
	Port          string
	MongoURI      string
	MongoDatabase string
	JWTSecret     string
	CORSOrigins   []string
	GinMode       string
	SeedFile      string

	RedisAddr     string
	RedisPassword string
	EventsChannel string

	// FutureEmptyBody makes GET /by_date answer future, never-stored dates with an empty body
	// instead of "no date included".
	FutureEmptyBody bool
	QueueBucket     string
	Location        *time.Location
	DBTimeout       time.Duration

	RateLimitRPS   float64
	RateLimitBurst int
}

func Load() Config {
	cfg := Config{
		Port:            getenv("API_PORT", "8080"),
		MongoURI:        os.Getenv("MONGO_URI"),
		MongoDatabase:   getenv("MONGO_DATABASE", "people"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		CORSOrigins:     splitList(getenv("CORS_ORIGINS", "*")),
		GinMode:         os.Getenv("GIN_MODE"),
		SeedFile:        os.Getenv("PEOPLE_SEED_FILE"),
		RedisAddr:       os.Getenv("REDIS_ADDR"),
		RedisPassword:   os.Getenv("REDIS_PASSWORD"),
		EventsChannel:   getenv("PEOPLE_EVENTS_CHANNEL", "people-events"),
		FutureEmptyBody: getenvBool("PEOPLE_FUTURE_EMPTY_BODY", true),
		QueueBucket:     getenv("PEOPLE_QUEUE_BUCKET", QueueByVacTime),
		DBTimeout:       getenvDuration("PEOPLE_DB_TIMEOUT", 5*time.Second),
		RateLimitRPS:    getenvFloat("RATE_LIMIT_RPS", 0),
		RateLimitBurst:  getenvInt("RATE_LIMIT_BURST", 10),
	}

	if cfg.QueueBucket != QueueByVacTime && cfg.QueueBucket != QueueByPriority {
		log.Printf("PEOPLE_QUEUE_BUCKET=%q is not supported, using %q", cfg.QueueBucket, QueueByVacTime)
		cfg.QueueBucket = QueueByVacTime
	}

	tz := getenv("PEOPLE_TIMEZONE", "Asia/Bangkok")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.Printf("PEOPLE_TIMEZONE=%q: %v, falling back to UTC", tz, err)
		loc = time.UTC
	}
	cfg.Location = loc

	return cfg
}

func getenv(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func getenvInt(k string, def int) int {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		log.Printf("%s=%q is not an integer, using %d", k, v, def)
	}
	return def
}

func getenvFloat(k string, def float64) float64 {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
		log.Printf("%s=%q is not a number, using %v", k, v, def)
	}
	return def
}

func getenvBool(k string, def bool) bool {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
		log.Printf("%s=%q is not a boolean, using %v", k, v, def)
	}
	return def
}

func getenvDuration(k string, def time.Duration) time.Duration {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
		log.Printf("%s=%q is not a duration, using %s", k, v, def)
	}
	return def
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
