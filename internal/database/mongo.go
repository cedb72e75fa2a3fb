package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	appconfig "github.com/GTDGit/showcase_api/internal/config"
)

// ConnectMongo opens a MongoDB client and returns the configured database.
// Like Connect it retries while the server starts up.
func ConnectMongo(cfg *appconfig.MongoConfig) (*mongo.Client, *mongo.Database, error) {
	if cfg == nil {
		return nil, nil, errors.New("nil mongo config")
	}

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetMaxPoolSize(25).
		SetMinPoolSize(5).
		SetMaxConnIdleTime(5 * time.Minute)

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		client, err := mongo.Connect(ctx, opts)
		if err == nil {
			err = client.Ping(ctx, readpref.Primary())
			if err == nil {
				cancel()
				return client, client.Database(cfg.Database), nil
			}
			_ = client.Disconnect(context.Background())
		}
		cancel()
		lastErr = err
		sleepWithBackoff(attempt, baseDelay)
	}

	return nil, nil, fmt.Errorf("failed to connect to mongo after %d attempts: %w", maxAttempts, lastErr)
}
