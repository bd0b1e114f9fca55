package container

import (
	"context"
	"fmt"
	"log"

	"github.com/saulo-duarte/classroom-lambda/internal/aiquiz"
	"github.com/saulo-duarte/classroom-lambda/internal/auth"
	"github.com/saulo-duarte/classroom-lambda/internal/config"
	"github.com/saulo-duarte/classroom-lambda/internal/dashboard"
	"github.com/saulo-duarte/classroom-lambda/internal/event"
	"github.com/saulo-duarte/classroom-lambda/internal/lock"
	"github.com/saulo-duarte/classroom-lambda/internal/quiz"
	"github.com/saulo-duarte/classroom-lambda/internal/store/memstore"
	"github.com/saulo-duarte/classroom-lambda/internal/store/mongostore"
	"github.com/saulo-duarte/classroom-lambda/internal/store/pgstore"
)

type Container struct {
	Settings           *config.Settings
	QuizContainer      *quiz.QuizContainer
	DashboardContainer *dashboard.DashboardContainer
	AIQuizContainer    *aiquiz.AIQuizContainer
	publisher          *event.Publisher
}

func New() *Container {
	settings := config.Init()
	auth.Init()

	ctx := context.Background()
	store, err := newStore(ctx, settings)
	if err != nil {
		log.Fatalf("failed to set up quiz store: %v", err)
	}

	var opts []quiz.Option
	publisher := newPublisher(ctx, settings)
	if publisher != nil {
		opts = append(opts, quiz.WithPublisher(publisher))
	}
	if settings.RedisAddr != "" {
		client := lock.NewClient(settings.RedisAddr, settings.RedisPassword, settings.RedisDB)
		opts = append(opts, quiz.WithStartGuard(lock.NewStartGuard(client, settings.StartGuardTTL)))
		config.WithContext(ctx).WithField("addr", settings.RedisAddr).Info("Start guard enabled")
	}

	return &Container{
		Settings:           settings,
		QuizContainer:      quiz.NewQuizContainer(store, opts...),
		DashboardContainer: dashboard.NewDashboardContainer(store),
		AIQuizContainer:    aiquiz.NewAIQuizContainer(ctx, settings.GeminiModel),
		publisher:          publisher,
	}
}

func (c *Container) Close() {
	if c.publisher != nil {
		c.publisher.Close()
	}
}

func newStore(ctx context.Context, s *config.Settings) (quiz.Store, error) {
	switch s.StoreBackend {
	case config.StoreMongo:
		if err := config.ConnectMongo(ctx, s.MongoURI); err != nil {
			return nil, err
		}
		store := mongostore.New(config.Mongo.Database(s.MongoDatabase))
		if err := store.EnsureIndexes(ctx); err != nil {
			config.WithContext(ctx).WithError(err).Warn("Failed to create quiz indexes")
		}
		return store, nil
	case config.StorePostgres:
		if err := config.Connect(ctx, s.DatabaseDSN); err != nil {
			return nil, err
		}
		store := pgstore.New(config.DB)
		if err := store.Migrate(); err != nil {
			return nil, fmt.Errorf("failed to migrate quizzes table: %w", err)
		}
		return store, nil
	case config.StoreMemory:
		config.WithContext(ctx).Warn("Using in-memory quiz store")
		return memstore.New(), nil
	default:
		return nil, fmt.Errorf("unknown STORE_BACKEND %q", s.StoreBackend)
	}
}

// newPublisher returns nil when no broker is configured or reachable;
// lifecycle events are then skipped.
func newPublisher(ctx context.Context, s *config.Settings) *event.Publisher {
	if s.RabbitURI == "" {
		return nil
	}
	p, err := event.NewPublisher(s.RabbitURI, s.RabbitExchange)
	if err != nil {
		config.WithContext(ctx).WithError(err).Warn("Event publishing disabled")
		return nil
	}
	return p
}
