package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"
)

// DefaultMongoDatabase is used when neither configuration nor the URI names a database.
const DefaultMongoDatabase = "attendance"

// ConnectMongo dials MongoDB, verifies the connection and returns the database
// selected by MongoDatabaseName.
func ConnectMongo(ctx context.Context, uri, name string) (*mongo.Client, *mongo.Database, error) {
	if uri == "" {
		return nil, nil, fmt.Errorf("mongo uri must not be empty")
	}

	name, err := MongoDatabaseName(uri, name)
	if err != nil {
		return nil, nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("unable to reach mongo: %w", err)
	}

	return client, client.Database(name), nil
}

// MongoDatabaseName returns name when set, otherwise the database in the URI path,
// otherwise DefaultMongoDatabase. mongodb+srv URIs are resolved through DNS.
func MongoDatabaseName(uri, name string) (string, error) {
	if name != "" {
		return name, nil
	}

	cs, err := connstring.ParseAndValidate(uri)
	if err != nil {
		return "", fmt.Errorf("invalid mongo uri: %w", err)
	}
	if cs.Database != "" {
		return cs.Database, nil
	}
	return DefaultMongoDatabase, nil
}
