package database

import (
	"context"
	"sync"
	"time"

	"inkpress/logger"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/sync/singleflight"
)

// PostsCollection is the single collection the site persists.
const PostsCollection = "blogs"

var ErrMissingURI = errors.New("MONGODB_URI is not defined")

// Dialer opens and verifies a client for uri.
type Dialer func(ctx context.Context, uri string) (*mongo.Client, error)

func dialMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().
		ApplyURI(uri).
		SetServerSelectionTimeout(10*time.Second))
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return client, nil
}

// Connector owns the process-wide Mongo client. The client is established on
// first use and reused afterwards. Concurrent first callers share a single
// connection attempt, and a failed attempt is not cached.
type Connector struct {
	uri    string
	dbName string
	dial   Dialer

	mu     sync.RWMutex
	client *mongo.Client
	group  singleflight.Group
}

func NewConnector(uri, dbName string) *Connector {
	return &Connector{
		uri:    uri,
		dbName: dbName,
		dial:   dialMongo,
	}
}

// URI returns the configured connection string.
func (c *Connector) URI() string {
	return c.uri
}

func (c *Connector) cached() *mongo.Client {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.client
}

// Client returns the cached client, connecting if needed.
func (c *Connector) Client(ctx context.Context) (*mongo.Client, error) {
	if c.uri == "" {
		return nil, ErrMissingURI
	}
	if client := c.cached(); client != nil {
		return client, nil
	}

	v, err, _ := c.group.Do("connect", func() (interface{}, error) {
		if client := c.cached(); client != nil {
			return client, nil
		}

		logger.Log.Info("connecting to MongoDB")
		client, err := c.dial(ctx, c.uri)
		if err != nil {
			logger.Log.WithError(err).Error("MongoDB connection error")
			return nil, errors.Wrap(err, "connecting to mongodb")
		}

		c.mu.Lock()
		c.client = client
		c.mu.Unlock()
		logger.Log.Info("MongoDB connected successfully")
		return client, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*mongo.Client), nil
}

// Collection resolves a collection of the configured database.
func (c *Connector) Collection(ctx context.Context, name string) (*mongo.Collection, error) {
	client, err := c.Client(ctx)
	if err != nil {
		return nil, err
	}
	return client.Database(c.dbName).Collection(name), nil
}

// Ping connects if needed and round-trips to the primary.
func (c *Connector) Ping(ctx context.Context) error {
	client, err := c.Client(ctx)
	if err != nil {
		return err
	}
	return errors.Wrap(client.Ping(ctx, nil), "pinging mongodb")
}

// Disconnect drops the cached client, if any.
func (c *Connector) Disconnect(ctx context.Context) error {
	c.mu.Lock()
	client := c.client
	c.client = nil
	c.mu.Unlock()

	if client == nil {
		return nil
	}
	if err := client.Disconnect(ctx); err != nil {
		return errors.Wrap(err, "disconnecting from mongodb")
	}
	logger.Log.Info("disconnected from MongoDB")
	return nil
}
