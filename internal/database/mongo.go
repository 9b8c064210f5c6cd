package repository

import (
	"SchoolPick/internal/config"
	"SchoolPick/internal/lib/sl"
	"context"
	"errors"
	"fmt"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"log/slog"
	"sync"
)

const (
	votesCollection   = "votes"
	ballotsCollection = "ballots"
)

// MongoDB stores vote buckets and visitor ballots. The connection is opened
// on first use, so a missing or unreachable server only fails the request
// that needs it.
type MongoDB struct {
	clientOptions *options.ClientOptions
	database      string
	log           *slog.Logger

	mu     sync.Mutex
	client *mongo.Client
}

func NewMongoClient(conf *config.Config, logger *slog.Logger) (*MongoDB, error) {
	if conf.Storage.Backend != config.BackendMongo {
		return nil, nil
	}
	if conf.Mongo.Database == "" {
		return nil, fmt.Errorf("mongo database name is empty")
	}
	connectionUri := fmt.Sprintf("mongodb://%s:%s", conf.Mongo.Host, conf.Mongo.Port)
	clientOptions := options.Client().ApplyURI(connectionUri)
	if conf.Mongo.User != "" {
		clientOptions.SetAuth(options.Credential{
			Username:   conf.Mongo.User,
			Password:   conf.Mongo.Password,
			AuthSource: conf.Mongo.Database,
		})
	}
	client := &MongoDB{
		clientOptions: clientOptions,
		database:      conf.Mongo.Database,
		log:           logger.With(sl.Module("mongodb")),
	}
	return client, nil
}

func (m *MongoDB) connect(ctx context.Context) (*mongo.Client, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.client != nil {
		return m.client, nil
	}
	connection, err := mongo.Connect(ctx, m.clientOptions)
	if err != nil {
		return nil, fmt.Errorf("mongodb connect error: %w", err)
	}
	m.client = connection
	m.log.Debug("connected")
	return connection, nil
}

func (m *MongoDB) collection(ctx context.Context, name string) (*mongo.Collection, error) {
	connection, err := m.connect(ctx)
	if err != nil {
		return nil, err
	}
	return connection.Database(m.database).Collection(name), nil
}

func (m *MongoDB) Close(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.client == nil {
		return nil
	}
	err := m.client.Disconnect(ctx)
	m.client = nil
	return err
}

func (m *MongoDB) findError(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil
	}
	return fmt.Errorf("mongodb find error: %w", err)
}
