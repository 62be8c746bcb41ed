// Package container wires the application together with samber/do. Each
// XPackage function registers one concern's providers on the injector.
package container

import (
	"context"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	_ "github.com/danielgtaylor/huma/v2/formats/cbor" // CBOR format support for huma
	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"go.uber.org/zap"

	"github.com/chotalink/chotalink/internal/analytics"
	"github.com/chotalink/chotalink/internal/handlers"
	"github.com/chotalink/chotalink/internal/health"
	"github.com/chotalink/chotalink/internal/link"
	"github.com/chotalink/chotalink/internal/messaging"
	"github.com/chotalink/chotalink/internal/middleware"
	"github.com/chotalink/chotalink/internal/store"
)

// Options holds the CLI-configurable settings.
type Options struct {
	Port          int    `default:"8888"            help:"Port to listen on"                       short:"p"`
	BaseURL       string `default:"https://cl.in"   help:"Base URL short links are presented under" short:"b"`
	CodeLength    int    `default:"6"               help:"Length of generated alias codes"          short:"c"`
	Storage       string `default:"file"            enum:"file,memory,redis,postgres"               help:"Persistence backend"`
	StoragePath   string `default:"data/links.json" help:"Collection file path for file storage"`
	RedisAddr     string `default:"localhost:6379"  help:"Redis server address"                     short:"r"`
	PostgresDSN   string `default:""                help:"Postgres connection string"`
	LogFormat     string `default:"console"         enum:"console,json"                             help:"Log output format"`
	ActivityLimit int    `default:"50"              help:"Entries retained in the activity feed"`
}

// LoggerPackage provides the zap logger.
func LoggerPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*zap.Logger, error) {
		options := do.MustInvoke[*Options](i)

		if options.LogFormat == "json" {
			return zap.NewProduction()
		}

		return zap.NewDevelopment()
	})
}

// StorePackage provides the persistence adapter selected by Options.Storage,
// plus the matching health checker.
func StorePackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*redis.Client, error) {
		options := do.MustInvoke[*Options](i)

		return redis.NewClient(&redis.Options{Addr: options.RedisAddr}), nil
	})

	do.Provide(injector, func(i *do.Injector) (*pgxpool.Pool, error) {
		options := do.MustInvoke[*Options](i)

		return pgxpool.New(context.Background(), options.PostgresDSN)
	})

	do.Provide(injector, func(i *do.Injector) (link.Store, error) {
		options := do.MustInvoke[*Options](i)

		switch options.Storage {
		case "memory":
			return store.NewMemoryStore(), nil
		case "redis":
			return store.NewRedisStore(do.MustInvoke[*redis.Client](i)), nil
		case "postgres":
			return store.NewPostgresStore(context.Background(), do.MustInvoke[*pgxpool.Pool](i))
		default:
			return store.NewFileStore(options.StoragePath)
		}
	})

	do.Provide(injector, func(i *do.Injector) (health.Checker, error) {
		options := do.MustInvoke[*Options](i)

		switch options.Storage {
		case "redis":
			return health.NewRedisChecker(do.MustInvoke[*redis.Client](i)), nil
		case "postgres":
			return health.NewPoolChecker(do.MustInvoke[*pgxpool.Pool](i)), nil
		default:
			return health.AlwaysHealthy{}, nil
		}
	})
}

// MessagingPackage provides the in-process event stream: a gochannel pubsub,
// typed publish functions, and the consumer group feeding the activity feed.
func MessagingPackage(injector *do.Injector) {
	do.Provide(injector, func(_ *do.Injector) (*gochannel.GoChannel, error) {
		return gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{}), nil
	})

	do.Provide(injector, func(i *do.Injector) (*messaging.PublisherGroup, error) {
		return messaging.NewPublisherGroup(do.MustInvoke[*gochannel.GoChannel](i)), nil
	})

	do.Provide(injector, func(i *do.Injector) (messaging.Publish[analytics.LinkCreatedEvent], error) {
		group := do.MustInvoke[*messaging.PublisherGroup](i)

		return messaging.NewPublishFunc[analytics.LinkCreatedEvent](group.Publisher(), analytics.TopicLinkCreated), nil
	})

	do.Provide(injector, func(i *do.Injector) (messaging.Publish[analytics.LinkClickedEvent], error) {
		group := do.MustInvoke[*messaging.PublisherGroup](i)

		return messaging.NewPublishFunc[analytics.LinkClickedEvent](group.Publisher(), analytics.TopicLinkClicked), nil
	})

	do.Provide(injector, func(i *do.Injector) (messaging.Publish[analytics.LinkDeletedEvent], error) {
		group := do.MustInvoke[*messaging.PublisherGroup](i)

		return messaging.NewPublishFunc[analytics.LinkDeletedEvent](group.Publisher(), analytics.TopicLinkDeleted), nil
	})

	do.Provide(injector, func(i *do.Injector) (*analytics.Feed, error) {
		options := do.MustInvoke[*Options](i)

		return analytics.NewFeed(options.ActivityLimit), nil
	})

	do.Provide(injector, func(i *do.Injector) (*messaging.ConsumerGroup, error) {
		subscriber := do.MustInvoke[*gochannel.GoChannel](i)
		feed := do.MustInvoke[*analytics.Feed](i)
		logger := do.MustInvoke[*zap.Logger](i)

		group := messaging.NewConsumerGroup(subscriber, logger)
		group.Add(analytics.NewCreatedConsumer(subscriber, feed, logger))
		group.Add(analytics.NewClickedConsumer(subscriber, feed, logger))
		group.Add(analytics.NewDeletedConsumer(subscriber, feed, logger))

		return group, nil
	})
}

// RegistryPackage provides the id/code generator and the link registry.
func RegistryPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (link.Generator, error) {
		options := do.MustInvoke[*Options](i)

		return link.NewRandomGenerator(options.CodeLength)
	})

	do.Provide(injector, func(i *do.Injector) (*link.Registry, error) {
		return link.NewRegistry(
			context.Background(),
			do.MustInvoke[link.Store](i),
			do.MustInvoke[link.Generator](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})
}

// HTTPPackage provides the router and the huma API with all routes attached.
func HTTPPackage(injector *do.Injector) {
	do.Provide(injector, func(_ *do.Injector) (*chi.Mux, error) {
		return chi.NewMux(), nil
	})

	do.Provide(injector, func(i *do.Injector) (huma.API, error) {
		options := do.MustInvoke[*Options](i)
		logger := do.MustInvoke[*zap.Logger](i)
		registry := do.MustInvoke[*link.Registry](i)
		feed := do.MustInvoke[*analytics.Feed](i)

		router := do.MustInvoke[*chi.Mux](i)
		api := humachi.New(router, huma.DefaultConfig("ChotaLink", "1.0.0"))
		api.UseMiddleware(middleware.RequestLog(logger))

		linkHandler := handlers.NewLinkHandler(
			registry,
			options.BaseURL,
			do.MustInvoke[messaging.Publish[analytics.LinkCreatedEvent]](i),
			do.MustInvoke[messaging.Publish[analytics.LinkClickedEvent]](i),
			do.MustInvoke[messaging.Publish[analytics.LinkDeletedEvent]](i),
			logger,
		)
		analyticsHandler := handlers.NewAnalyticsHandler(registry, feed)
		qrHandler := handlers.NewQRHandler(registry, options.BaseURL)

		handlers.RegisterRoutes(api, linkHandler, analyticsHandler, qrHandler)
		health.RegisterRoutes(api, health.NewHandler(do.MustInvoke[health.Checker](i)))

		return api, nil
	})
}
