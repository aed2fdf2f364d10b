package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"quoteflow/internal/adapter/http/handlers"
	"quoteflow/internal/adapter/http/middleware"
	"quoteflow/internal/adapter/http/routes"
	"quoteflow/internal/adapter/persistence/repository"
	"quoteflow/internal/infrastructure/config"
	"quoteflow/internal/infrastructure/logging"
	"quoteflow/internal/infrastructure/notification"
	"quoteflow/internal/infrastructure/payments"
	"quoteflow/internal/infrastructure/statetoken"
	"quoteflow/internal/usecase"
	"quoteflow/internal/usecase/interfaces"

	_ "github.com/joho/godotenv/autoload"
	"github.com/rs/zerolog/log"
)

// @title           Quoteflow API
// @version         1.0
// @description     Quote sharing, view tracking, payments and payment account linking.
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080

// @BasePath  /v1

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

const shutdownTimeout = 15 * time.Second

func main() {
	cfg := config.Load()
	logging.Setup(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, err := repository.Open(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.StorageBackend).Msg("[main] failed opening storage")
	}
	defer func() {
		if err := repos.Close(); err != nil {
			log.Error().Err(err).Msg("[main] failed closing storage")
		}
	}()

	codec, err := statetoken.NewCodec(cfg.StateSecret)
	if err != nil {
		log.Fatal().Err(err).Msg("[main] failed creating state codec")
	}

	dispatcher := notification.NewDispatcher(notification.Config{
		Workers:   cfg.NotificationWorkers,
		QueueSize: cfg.NotificationQueueSize,
	}, pushSender(ctx, cfg), emailSender(cfg))
	dispatcher.Start()
	defer dispatcher.Close()

	quoteViews := usecase.NewQuoteViewUseCase(repos.Quotes, repos.Detailers, dispatcher)
	quotes := usecase.NewQuoteUseCase(repos.Quotes)
	changeOrders := usecase.NewChangeOrderUseCase(repos.ChangeOrders, repos.Quotes)
	billing := usecase.NewBillingPaymentUseCase(repos.Payments, repos.Quotes, paymentGateway(cfg), usecase.SandboxPayer{
		Enabled: cfg.MercadoPago.Sandbox(),
		Email:   cfg.MercadoPago.TestPayerEmail,
		UserID:  cfg.MercadoPago.TestPayerUserID,
	})
	accountLink := usecase.NewAccountLinkUseCase(codec, accountLinkGateway(cfg), repos.Detailers)

	router := routes.NewRouter(routes.Dependencies{
		QuoteViews:    handlers.NewQuoteViewHandler(quoteViews),
		Quotes:        handlers.NewQuoteHandler(quotes),
		ChangeOrders:  handlers.NewChangeOrderHandler(changeOrders),
		Payments:      handlers.NewBillingPaymentHandler(billing, cfg.MercadoPago.Mock),
		AccountLink:   handlers.NewAccountLinkHandler(accountLink, cfg.AppURL),
		AuthSecret:    cfg.AuthJWTSecret,
		PublicLimiter: middleware.NewIPRateLimiter(cfg.PublicRateLimitRPS, cfg.PublicRateLimitBurst),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Info().Str("port", cfg.Port).Str("backend", cfg.StorageBackend).Msg("[main] server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("[main] server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("[main] shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("[main] graceful shutdown failed")
	}
}

func paymentGateway(cfg config.Config) interfaces.IPaymentGateway {
	gw, err := payments.NewMercadoPagoGateway(cfg.MercadoPago)
	if err != nil {
		log.Warn().Err(err).Msg("[main] payments disabled")
		return nil
	}
	return gw
}

func accountLinkGateway(cfg config.Config) interfaces.IAccountLinkGateway {
	gw, err := payments.NewMercadoPagoAccountLink(cfg.MercadoPago)
	if err != nil {
		log.Warn().Err(err).Msg("[main] account linking disabled")
		return nil
	}
	return gw
}

func pushSender(ctx context.Context, cfg config.Config) notification.Sender {
	s, err := notification.NewPushSender(ctx, notification.PushConfig{
		ProjectID:       cfg.Push.ProjectID,
		CredentialsFile: cfg.Push.CredentialsFile,
	})
	if err != nil {
		log.Info().Err(err).Msg("[main] push notifications disabled")
		return nil
	}
	return s
}

func emailSender(cfg config.Config) notification.Sender {
	s, err := notification.NewEmailSender(notification.SMTPConfig{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
		FromName: cfg.SMTP.FromName,
		AppURL:   cfg.AppURL,
	})
	if err != nil {
		log.Info().Err(err).Msg("[main] email notifications disabled")
		return nil
	}
	return s
}
