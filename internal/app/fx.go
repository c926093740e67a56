package app

import (
	"context"
	"net/http"

	"github.com/avolkov-dev/order-notifier/internal/config"
	"github.com/avolkov-dev/order-notifier/internal/consumer"
	deliveryHTTP "github.com/avolkov-dev/order-notifier/internal/delivery/http"
	repo "github.com/avolkov-dev/order-notifier/internal/domain/repository"
	"github.com/avolkov-dev/order-notifier/internal/events"
	"github.com/avolkov-dev/order-notifier/internal/logger"
	"github.com/avolkov-dev/order-notifier/internal/notify"
	"github.com/avolkov-dev/order-notifier/internal/service"
	"github.com/avolkov-dev/order-notifier/internal/storage/postgres"
	"github.com/avolkov-dev/order-notifier/internal/storage/rabbitmq"
	"github.com/avolkov-dev/order-notifier/internal/storage/redis"
	"github.com/avolkov-dev/order-notifier/pkg/switchctl"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

// CommonModule provides dependencies that are shared between the API and Worker applications.
var CommonModule = fx.Options(
	fx.Provide(
		// Core components
		config.NewConfig,
		logger.NewLogger,

		// Storage Layer - concrete implementations
		postgres.NewPool,
		redis.NewClient,
		rabbitmq.NewConnection,
		postgres.NewOrderRepository,

		fx.Annotate(rabbitmq.NewOrderQueue, fx.As(new(repo.OrderQueue))),
		fx.Annotate(redis.NewOrderCache, fx.As(new(repo.OrderCache))),

		// The service sees the cached repository behind the domain interface.
		func(pgRepo *postgres.OrderRepository, cache repo.OrderCache, logger *zerolog.Logger) repo.OrderRepository {
			return redis.NewCachedOrderRepository(pgRepo, cache, logger)
		},

		// Delivery channel stack, assembled from config.
		notify.BuildNotifier,

		// Service Layer
		service.NewOrderService,
	),
)

// APIModule defines the Fx module for the HTTP API application.
var APIModule = fx.Options(
	CommonModule, // Include all shared components
	fx.Provide(
		// API-specific components
		deliveryHTTP.NewHandlers,
		deliveryHTTP.NewServer,
	),

	fx.Invoke(func(server *deliveryHTTP.Server, lc fx.Lifecycle) {
		lc.Append(fx.Hook{
			OnStart: func(ctx context.Context) error {
				go func() {
					if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
						panic(err)
					}
				}()
				return nil
			},
			OnStop: func(ctx context.Context) error {
				return server.Shutdown(ctx)
			},
		})
	}),
)

// WorkerModule defines the Fx module for the background worker application.
var WorkerModule = fx.Options(
	CommonModule, // Include all shared components
	fx.Provide(
		// Worker-specific components
		events.NewPublisher,
		func(logger *zerolog.Logger) *switchctl.Switch {
			return switchctl.NewSwitch(switchctl.NewLight(logger))
		},
		consumer.New,
	),
	fx.Invoke(func(consumer *consumer.Consumer, lc fx.Lifecycle) {
		lc.Append(workerPoolHook(consumer.Start))
	}),
)

// workerPoolHook builds the lifecycle hook for a blocking worker-pool loop.
// The pool gets its own context: the OnStart hook's context is fx's start
// context, which is cancelled once startup completes, and a pool running on
// it would shut down right after boot.
func workerPoolHook(start func(context.Context)) fx.Hook {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	return fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				defer close(done)
				start(ctx)
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-done:
				return nil
			case <-stopCtx.Done():
				return stopCtx.Err()
			}
		},
	}
}
