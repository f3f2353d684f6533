package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/harentsoaR/people-api/internal/config"
	"github.com/harentsoaR/people-api/internal/handlers"
	"github.com/harentsoaR/people-api/internal/middleware"
	"github.com/harentsoaR/people-api/internal/services"
	"github.com/harentsoaR/people-api/internal/store"
)

// stores bundles what the handlers need from the persistence layer.
type stores interface {
	store.DayStore
	store.UserStore
	store.Seeder
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables.")
	}
	cfg := config.Load()
	log.Printf("API_PORT: %s", cfg.Port)
	log.Printf("MONGO_DATABASE: %s", cfg.MongoDatabase)
	log.Printf("PEOPLE_TIMEZONE: %s, queue bucket: %s, future empty body: %v", cfg.Location, cfg.QueueBucket, cfg.FutureEmptyBody)
	if cfg.JWTSecret != "" {
		log.Println("JWT_SECRET is SET.")
	} else {
		log.Println("JWT_SECRET is NOT SET. Staff login and /people/reserve will refuse every request.")
	}
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	// --- Storage ---
	var st stores
	if cfg.MongoURI != "" {
		client, ms := connectMongo(cfg)
		defer client.Disconnect(context.Background())
		st = ms
		log.Println("Successfully connected to MongoDB!")
	} else {
		st = store.NewMemoryStore()
		log.Println("MONGO_URI not set, keeping day records in memory.")
	}

	if cfg.SeedFile != "" {
		n, err := store.LoadSeedFile(context.Background(), st, cfg.SeedFile)
		if err != nil {
			log.Fatalf("seed: %v", err)
		}
		log.Printf("Seeded %d day record(s) from %s", n, cfg.SeedFile)
	}

	// --- Events ---
	var pub services.Publisher
	if cfg.RedisAddr != "" {
		rp := services.NewRedisPublisher(cfg.RedisAddr, cfg.RedisPassword)
		defer rp.Close()
		pub = rp
		log.Printf("Publishing events to redis %s channel %q", cfg.RedisAddr, cfg.EventsChannel)
	}
	events := services.NewEventService(pub, cfg.EventsChannel)

	// --- Services and handlers ---
	people := services.NewPeopleService(st, events, services.PeopleOptions{
		Location:        cfg.Location,
		FutureEmptyBody: cfg.FutureEmptyBody,
		QueueBucket:     cfg.QueueBucket,
	})
	h := handlers.NewHandler(people, st, []byte(cfg.JWTSecret), cfg.DBTimeout)

	routerOpts := handlers.RouterOptions{CORSOrigins: cfg.CORSOrigins}
	if cfg.RateLimitRPS > 0 {
		routerOpts.RateLimiter = middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	}
	r := handlers.NewRouter(h, routerOpts)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadTimeout:       7 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
	}

	go func() {
		log.Printf("Starting server on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("ListenAndServe error: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Println("Shutdown signal received; shutting down gracefully...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Graceful shutdown failed: %v", err)
	}
	events.Wait()
	log.Println("Server stopped cleanly")
}

func connectMongo(cfg config.Config) (*mongo.Client, *store.MongoStore) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		log.Fatalf("Failed to reach MongoDB: %v", err)
	}

	ms := store.NewMongoStore(client.Database(cfg.MongoDatabase))
	if err := ms.EnsureIndexes(ctx); err != nil {
		log.Fatalf("ensure indexes: %v", err)
	}
	return client, ms
}
