// Package mongo backs the user directory with MongoDB. Connections are
// verified with a ping up front so a bad URI fails the boot, not the first
// login.
package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Conn is the live handle to the directory database. It owns the underlying
// client, so shutdown goes through Close rather than a loose client value.
type Conn struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect dials uri, pings the server and selects the directory database.
// timeout bounds the dial plus the ping.
func Connect(ctx context.Context, uri, database string, timeout time.Duration) (*Conn, error) {
	dialCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(dialCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(dialCtx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	return &Conn{client: client, db: client.Database(database)}, nil
}

// Database returns the selected directory database.
func (c *Conn) Database() *mongo.Database {
	return c.db
}

// Close disconnects the underlying client.
func (c *Conn) Close(ctx context.Context) error {
	return c.client.Disconnect(ctx)
}
