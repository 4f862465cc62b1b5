package mongo

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const defaultTimeout = 10 * time.Second

var errProviderClosed = errors.New("mongo provider closed")

// Config captures the minimal settings required to establish a MongoDB connection.
type Config struct {
	URI      string
	Database string
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

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	db := client.Database(cfg.Database)
	return client, db, nil
}

// Provider owns the process-wide client. The first caller connects; callers
// arriving meanwhile wait on the mutex and reuse the result. A failed connect
// leaves the provider empty so the next call retries.
type Provider struct {
	cfg     Config
	connect func(context.Context, Config) (*mongo.Client, *mongo.Database, error)

	mu     sync.Mutex
	client *mongo.Client
	db     *mongo.Database
	closed bool
}

func NewProvider(cfg Config) *Provider {
	return &Provider{cfg: cfg, connect: Connect}
}

// Database returns the connected database, dialing on first use.
func (p *Provider) Database(ctx context.Context) (*mongo.Database, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil, errProviderClosed
	}
	if p.db != nil {
		return p.db, nil
	}

	client, db, err := p.connect(ctx, p.cfg)
	if err != nil {
		return nil, err
	}
	p.client, p.db = client, db
	return db, nil
}

// Collection is a shorthand for Database(ctx).Collection(name).
func (p *Provider) Collection(ctx context.Context, name string) (*mongo.Collection, error) {
	db, err := p.Database(ctx)
	if err != nil {
		return nil, err
	}
	return db.Collection(name), nil
}

// Ping checks the primary is reachable, connecting first if needed.
func (p *Provider) Ping(ctx context.Context) error {
	db, err := p.Database(ctx)
	if err != nil {
		return err
	}
	return db.Client().Ping(ctx, readpref.Primary())
}

// Close disconnects the client. Later calls to Database fail.
func (p *Provider) Close(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.closed = true
	if p.client == nil {
		return nil
	}
	err := p.client.Disconnect(ctx)
	p.client, p.db = nil, nil
	return err
}
