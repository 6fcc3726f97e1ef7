package db

import (
	"context"
	"errors"
	"time"

	"github.com/quiz-me/apiserver/config"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// ErrFailedToConnect is returned when the store is unreachable after all
// connection attempts.
var ErrFailedToConnect = errors.New("failed to connect to mongo")

// Open connects to MongoDB and returns the application database. Transient
// startup failures are retried per the configured attempt count; the core
// itself never retries store operations.
func Open(ctx context.Context, cfg config.MongoConfig) (*mongo.Database, error) {
	attempts := cfg.RetryAttempts
	if attempts < 1 {
		attempts = 1
	}

	for i := 0; i < attempts; i++ {
		client, err := mongo.Connect(
			options.Client().
				ApplyURI(cfg.URI).
				SetConnectTimeout(cfg.ConnectTimeout).
				SetMaxPoolSize(cfg.MaxPoolSize).
				SetMinPoolSize(cfg.MinPoolSize).
				SetMaxConnIdleTime(cfg.MaxConnIdleTime),
		)
		if err == nil {
			if err := client.Ping(ctx, nil); err == nil {
				return client.Database(cfg.Database), nil
			}
			_ = client.Disconnect(ctx)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(cfg.RetryInterval):
		}
	}

	return nil, ErrFailedToConnect
}

// Healthcheck returns a probe function that pings the underlying client.
func Healthcheck(database *mongo.Database) func(context.Context) error {
	return func(ctx context.Context) error {
		return database.Client().Ping(ctx, nil)
	}
}
