package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	defaultTimeout = 10 * time.Second
	indexTimeout   = 30 * time.Second

	collectionProjects = "projects"
	collectionPosts    = "blog_posts"
)

// Config captures the settings required to establish a MongoDB connection.
type Config struct {
	URI      string
	Database string
	AppName  string
	Timeout  time.Duration
}

// Connect establishes a MongoDB client, verifies connectivity with a ping, and
// returns both the client and the selected database. A default timeout is
// applied when none is provided.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetServerSelectionTimeout(timeout)
	if cfg.AppName != "" {
		opts.SetAppName(cfg.AppName)
	}

	client, err := mongo.Connect(connectCtx, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	return client, client.Database(cfg.Database), nil
}

// EnsureIndexes creates the sort index on projects and the unique slug index
// on blog posts. It is idempotent.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	_, err := db.Collection(collectionProjects).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "order", Value: 1}, {Key: "created_at", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("projects index: %w", err)
	}

	_, err = db.Collection(collectionPosts).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "slug", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("slug_unique"),
		},
		{Keys: bson.D{{Key: "published", Value: 1}, {Key: "created_at", Value: -1}}},
	})
	if err != nil {
		return fmt.Errorf("blog_posts indexes: %w", err)
	}
	return nil
}

// Pinger reports database liveness for the readiness check.
type Pinger struct {
	client *mongo.Client
}

func NewPinger(client *mongo.Client) *Pinger {
	return &Pinger{client: client}
}

func (p *Pinger) Ping(ctx context.Context) error {
	return p.client.Ping(ctx, nil)
}

// now returns the current time at the precision BSON dates keep.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
