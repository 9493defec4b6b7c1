package database

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// MongoDB owns the document-store client used by DB_DRIVER=mongo.
type MongoDB struct {
	Client         *mongo.Client
	URI            string
	DatabaseName   string
	ConnectTimeout time.Duration
}

func NewMongoDB(uri, databaseName string, connectTimeout time.Duration) *MongoDB {
	return &MongoDB{
		URI:            uri,
		DatabaseName:   databaseName,
		ConnectTimeout: connectTimeout,
	}
}

// Connect opens the client and pings the primary; mongo.Connect alone does not dial.
func (m *MongoDB) Connect(ctx context.Context) error {
	log.Info().Str("component", "mongo").Str("database", m.DatabaseName).Msg("Connecting to MongoDB")

	connectCtx, cancel := context.WithTimeout(ctx, m.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(m.URI))
	if err != nil {
		return fmt.Errorf("mongo connect failed: %w", err)
	}

	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return fmt.Errorf("mongo ping failed: %w", err)
	}

	m.Client = client
	log.Info().Str("component", "mongo").Msg("MongoDB connection established")
	return nil
}

// Collection returns a handle to name in the configured database.
func (m *MongoDB) Collection(name string) *mongo.Collection {
	return m.Client.Database(m.DatabaseName).Collection(name)
}

func (m *MongoDB) Close(ctx context.Context) error {
	if m.Client == nil {
		return nil
	}

	log.Info().Str("component", "mongo").Msg("Disconnecting MongoDB client")
	err := m.Client.Disconnect(ctx)
	m.Client = nil
	return err
}
