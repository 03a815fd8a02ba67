package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"google.golang.org/grpc"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/MikeMC777/cafe-demo/internal/auth"
	"github.com/MikeMC777/cafe-demo/internal/catalog"
	"github.com/MikeMC777/cafe-demo/internal/chat"
	"github.com/MikeMC777/cafe-demo/internal/config"
	"github.com/MikeMC777/cafe-demo/internal/content"
	"github.com/MikeMC777/cafe-demo/internal/inquiry"
	"github.com/MikeMC777/cafe-demo/internal/logger"
	"github.com/MikeMC777/cafe-demo/internal/mail"
	"github.com/MikeMC777/cafe-demo/internal/notification"
	"github.com/MikeMC777/cafe-demo/internal/order"
	"github.com/MikeMC777/cafe-demo/internal/outbox"
	"github.com/MikeMC777/cafe-demo/internal/ratelimit"
	"github.com/MikeMC777/cafe-demo/internal/reservation"
	"github.com/MikeMC777/cafe-demo/internal/store"
)

// @title Cafe Demo API
// @version 1.0
// @description Storefront, reservations, orders, chat assistant and admin console.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "cafe-api:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	zl, err := logger.NewZap(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer func() { _ = zl.Sync() }()
	log := logger.New(zl)
	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := store.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		return fmt.Errorf("postgres: %w", err)
	}
	defer pool.Close()

	sender, err := mail.NewSender(ctx, mail.Options{
		Provider:  cfg.Mail.Provider,
		From:      cfg.Mail.From,
		SMTPHost:  cfg.Mail.SMTP.Host,
		SMTPPort:  cfg.Mail.SMTP.Port,
		SMTPUser:  cfg.Mail.SMTP.User,
		SMTPPass:  cfg.Mail.SMTP.Password,
		SESRegion: cfg.Mail.SESRegion,
	}, log)
	if err != nil {
		return fmt.Errorf("mail: %w", err)
	}
	mailbox, err := outbox.New(sender, outbox.Config{
		OperatorInbox: cfg.Mail.OperatorInbox,
		MaxRetries:    cfg.Mail.MaxRetries,
	}, log)
	if err != nil {
		return fmt.Errorf("outbox: %w", err)
	}
	go func() {
		if err := mailbox.Run(ctx); err != nil {
			log.WithError(err).Error("outbox stopped", nil)
		}
	}()
	<-mailbox.Running()

	var announcer notification.Announcer
	if cfg.SNS.TopicARN != "" {
		a, err := notification.NewSNSAnnouncerFromRegion(ctx, cfg.SNS.Region, cfg.SNS.TopicARN)
		if err != nil {
			return fmt.Errorf("sns: %w", err)
		}
		announcer = a
	}

	loc := cfg.Location()
	notifications := notification.NewService(notification.NewPGRepo(pool), announcer, log)
	catalogSvc := catalog.NewService(catalog.NewPGRepo(pool), loc, time.Now, log)

	var gen chat.Generator
	model, err := chat.NewOpenAI(cfg.OpenAI)
	if err != nil {
		log.WithError(err).Warn("generative chat disabled", nil)
	} else if model != nil {
		gen = model
	}

	a := &app{
		log:           log,
		catalog:       catalogSvc,
		notifications: notifications,
		orders: order.NewService(order.Deps{
			Repo:      order.NewPGRepo(pool),
			Products:  catalogSvc,
			Mail:      mailbox,
			Announcer: notifications,
			Business:  cfg.Business,
			Log:       log,
		}),
		reservations: reservation.NewService(reservation.Deps{
			Repo:      reservation.NewPGRepo(pool),
			Mail:      mailbox,
			Announcer: notifications,
			Business:  cfg.Business,
			Location:  loc,
			Log:       log,
		}),
		inquiries: inquiry.NewService(inquiry.Deps{
			Repo:      inquiry.NewPGRepo(pool),
			Mail:      mailbox,
			Announcer: notifications,
			Business:  cfg.Business,
			Log:       log,
		}),
		content: content.NewService(content.NewPGRepo(pool), log),
		chat: chat.NewResolver(cfg.Business, catalogSvc, gen, chat.Options{
			MaxTokens:   cfg.OpenAI.MaxTokens,
			Temperature: cfg.OpenAI.Temperature,
			Timeout:     cfg.OpenAI.Timeout,
		}, log),
		chatModel: cfg.OpenAI.Model,
		auth:      auth.NewService(cfg.Admin, nil),
		origins:   cfg.AllowedOrigins,
		proxies:   cfg.TrustedProxies,
	}

	if cfg.Redis.Address != "" {
		rdb, err := ratelimit.Connect(ctx, cfg.Redis.Address, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.WithError(err).Warn("chat rate limit disabled", map[string]interface{}{"redis": cfg.Redis.Address})
		} else {
			defer rdb.Close()
			a.limiter = ratelimit.New(rdb, "chat", cfg.Chat.RateLimit, cfg.Chat.RateWindow)
		}
	}

	hc := newDBHealth(pool, log)
	go hc.watch(ctx, 10*time.Second)
	lis, err := net.Listen("tcp", cfg.HealthAddr)
	if err != nil {
		return fmt.Errorf("health listen: %w", err)
	}
	gs := grpc.NewServer()
	healthpb.RegisterHealthServer(gs, hc.srv)
	go func() {
		if err := gs.Serve(lis); err != nil {
			log.WithError(err).Error("grpc health server stopped", nil)
		}
	}()

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           newRouter(a),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		log.Info("cafe-api listening", map[string]interface{}{
			"http":       cfg.HTTPAddr,
			"health":     cfg.HealthAddr,
			"mail":       cfg.Mail.Provider,
			"generative": gen != nil,
			"rate_limit": a.limiter != nil,
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-errc:
		return fmt.Errorf("http: %w", err)
	}

	log.Info("shutting down", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Warn("http shutdown", nil)
	}
	gs.GracefulStop()
	if err := mailbox.Close(); err != nil {
		log.WithError(err).Warn("outbox close", nil)
	}
	return nil
}
