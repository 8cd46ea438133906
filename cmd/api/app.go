package main

import (
	"context"

	"proassignment/internal/adapter/http/handlers"
	"proassignment/internal/adapter/http/middleware"
	"proassignment/internal/adapter/http/routes"
	"proassignment/internal/adapter/persistence/repository"
	"proassignment/internal/config"
	"proassignment/internal/infrastructure/auth"
	"proassignment/internal/infrastructure/database"
	"proassignment/internal/infrastructure/dispatch"
	"proassignment/internal/infrastructure/messaging"
	"proassignment/internal/infrastructure/payments"
	"proassignment/internal/infrastructure/realtime"
	"proassignment/internal/infrastructure/storage"
	"proassignment/internal/usecase"
	"proassignment/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

type app struct {
	router *gin.Engine
	ledger usecase.IPaysheetUseCase

	closers []func()
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

func buildApp(ctx context.Context, cfg *config.Config) (*app, error) {
	a := &app{}

	ddb, err := database.ConnectDynamoDB(ctx, cfg.DynamoDB)
	if err != nil {
		return nil, err
	}
	tables := cfg.DynamoDB.Tables
	assignments := repository.NewAssignmentDynamoRepository(ddb, tables.Assignments)
	paysheets := repository.NewPaysheetDynamoRepository(ddb, tables.Paysheets, tables.Assignments)
	users := repository.NewUserDynamoRepository(ddb, tables.Users)
	notifications := repository.NewNotificationDynamoRepository(ddb, tables.Notifications)
	conversations := repository.NewConversationDynamoRepository(ddb, tables.Conversations)
	messages := repository.NewMessageDynamoRepository(ddb, tables.Messages)

	files, err := storage.New(ctx, cfg.Storage)
	if err != nil {
		return nil, err
	}

	hub := realtime.NewHub(cfg.CORS.AllowedOrigins)
	var events interfaces.IEventSink = hub
	if cfg.Redis.Addr != "" {
		client := realtime.NewRedisClient(cfg.Redis)
		sink := realtime.NewRedisSink(client, cfg.Redis.Channel, hub)
		events = sink
		go func() {
			if err := sink.Run(ctx); err != nil {
				log.Printf("[realtime][redis] subscriber stopped err=%v", err)
			}
		}()
		a.closers = append(a.closers, func() { _ = client.Close() })
	}

	var publisher interfaces.IEmailPublisher
	if cfg.RabbitMQ.URL != "" {
		broker, err := messaging.Connect(cfg.RabbitMQ)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, func() { _ = broker.Close() })
		publisher = messaging.NewEmailPublisher(broker.Channel, cfg.RabbitMQ.Exchange, cfg.RabbitMQ.RoutingKey)
		if cfg.RabbitMQ.Consume {
			consumer := messaging.NewEmailConsumer(broker.Channel, cfg.RabbitMQ.QueueName, nil)
			go func() {
				if err := consumer.Run(ctx); err != nil {
					log.Printf("[email][consumer] stopped err=%v", err)
				}
			}()
		}
	}

	opts := dispatch.OptionsFrom(cfg.Dispatch)
	inline := dispatch.NewInline(opts)
	var effects interfaces.IEffectDispatcher = inline
	if cfg.Dispatch.Async {
		pool := dispatch.NewPool(cfg.Dispatch.Workers, cfg.Dispatch.QueueSize, opts)
		pool.Start()
		a.closers = append(a.closers, pool.Stop)
		effects = pool
	}

	tokens, err := auth.NewJWTManager(cfg.Auth)
	if err != nil {
		return nil, err
	}

	notifier := usecase.NewNotificationUseCase(notifications, users, events, publisher)
	chat := usecase.NewChatUseCase(conversations, messages, assignments, notifier, events, effects)
	ledger := usecase.NewPaysheetUseCase(usecase.PaysheetDeps{
		Repo:          paysheets,
		Assignments:   assignments,
		Users:         users,
		Notifier:      notifier,
		Events:        events,
		Effects:       effects,
		ProfitAdminID: cfg.Billing.ProfitAdminID,
	})
	lifecycle := usecase.NewAssignmentUseCase(usecase.AssignmentDeps{
		Repo:           assignments,
		Users:          users,
		Files:          files,
		Ledger:         ledger,
		Notifier:       notifier,
		Chat:           chat,
		Events:         events,
		Effects:        effects,
		Inline:         inline,
		MaxUploadBytes: cfg.Storage.MaxFileBytes,
	})

	var signer interfaces.ICheckoutSigner
	if s := payments.NewCheckoutSigner(cfg.Gateway); s != nil {
		signer = s
	}
	var gateway interfaces.IPaymentGateway
	if g, err := payments.NewMercadoPagoGateway(cfg.Gateway); err == nil {
		gateway = g
	} else {
		log.Printf("[payment][gateway] card charges disabled err=%v", err)
	}
	paymentsUC := usecase.NewPaymentUseCase(lifecycle, ledger, signer, gateway, usecase.PaymentOptions{
		Mock:            cfg.Gateway.Mock,
		SandboxToken:    payments.IsSandboxToken(cfg.Gateway.MPAccessToken),
		TestPayerEmail:  cfg.Gateway.MPTestPayerEmail,
		TestPayerUserID: cfg.Gateway.MPTestPayerUserID,
	})
	authUC := usecase.NewAuthUseCase(users, tokens)

	a.ledger = ledger
	a.router = routes.NewRouter(cfg, routes.Handlers{
		Auth:          handlers.NewAuthHandler(authUC),
		Assignments:   handlers.NewAssignmentHandler(lifecycle),
		Paysheets:     handlers.NewPaysheetHandler(ledger),
		Payments:      handlers.NewPaymentHandler(paymentsUC, cfg.Gateway.Mock),
		Notifications: handlers.NewNotificationHandler(notifier),
		Chat:          handlers.NewChatHandler(chat),
		WS:            handlers.NewWSHandler(hub),
	}, middleware.NewAuthMiddleware(tokens))
	return a, nil
}
