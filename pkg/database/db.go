package database

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type Config struct {
	URI      string
	Database string
}

func DefaultConfig() Config {
	// Docker Compose / env override
	uri := os.Getenv("ANIMESCHED_MONGO_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	name := os.Getenv("ANIMESCHED_DB")
	if name == "" {
		name = "anime_db"
	}

	return Config{URI: uri, Database: name}
}

func Open(ctx context.Context, cfg Config) (*mongo.Database, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	return client.Database(cfg.Database), nil
}

func MustOpen(ctx context.Context, cfg Config) *mongo.Database {
	db, err := Open(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to open mongo: %v", err)
	}
	return db
}

func Close(db *mongo.Database) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.Client().Disconnect(ctx); err != nil {
		log.Printf("mongo disconnect error: %v", err)
	}
}
