// Package mongo contains the concrete implementation of the persistence layer
// using the official MongoDB driver.
package mongo

import (
	"context"
	"log/slog"

	"taskman/config"
	"taskman/internal/domain/lifecycle"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/fx"
)

const (
	usersCollection = "users"
	tasksCollection = "tasks"
)

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// New creates the MongoDB database handle and ties the client connection to
// the process lifecycle. The unique email index is ensured on startup so the
// store, not the application, enforces email uniqueness.
func New(params Params) (*mongo.Database, error) {
	client, err := mongo.Connect(context.Background(), options.Client().ApplyURI(params.Config.Mongo.URI))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create MongoDB client")
	}

	db := client.Database(params.Config.Mongo.Database)

	params.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			if err := client.Ping(ctx, nil); err != nil {
				return errors.Wrap(err, "failed to ping MongoDB")
			}
			if err := ensureIndexes(ctx, db); err != nil {
				return err
			}

			params.Logger.Info("Connected to MongoDB",
				slog.String("database", params.Config.Mongo.Database))

			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			ctx, cancel := context.WithTimeout(stopCtx, lifecycle.DefaultTimeout)
			defer cancel()

			return errors.Wrap(client.Disconnect(ctx), "failed to disconnect from MongoDB")
		},
	})

	return db, nil
}

func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(usersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return errors.Wrap(err, "failed to create unique email index")
	}

	_, err = db.Collection(tasksCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "owner", Value: 1}},
	})
	if err != nil {
		return errors.Wrap(err, "failed to create task owner index")
	}

	return nil
}
