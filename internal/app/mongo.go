package app

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/adanyl0v/go-planner/internal/config"
)

const (
	tasksCollection    = "tasks"
	meetingsCollection = "meetings"
)

var globalMongoClient *mongo.Client

// MustConnectMongo connects the shared mongo client once at startup.
// There is no lazy first-use path: by the time any handler runs the
// client either exists or the process never came up.
func MustConnectMongo() {
	cfg := config.Global().Mongo

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to connect to mongo")
		panic(err)
	}
	globalMongoClient = client

	pingCtx, pingCancel := context.WithTimeout(context.Background(), cfg.PingTimeout)
	defer pingCancel()

	err = globalMongoClient.Ping(pingCtx, readpref.Primary())
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to ping mongo")
		panic(err)
	}
	globalLogger.Info().
		Str("database", cfg.Database).
		Msg("connected to mongo")
}

func DisconnectMongo() {
	err := globalMongoClient.Disconnect(context.Background())
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to disconnect from mongo")
		return
	}
	globalLogger.Info().Msg("disconnected from mongo")
}

func mongoCollection(name string) *mongo.Collection {
	cfg := config.Global().Mongo
	return globalMongoClient.Database(cfg.Database).Collection(name)
}
