package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/vodolaz095/mocksmtpd"
	"github.com/vodolaz095/mocksmtpd/api"
	"github.com/vodolaz095/mocksmtpd/plugins/webhook"
	redisRepository "github.com/vodolaz095/mocksmtpd/storage/redis"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/jaeger"
	"go.opentelemetry.io/otel/sdk/resource"
	tracesdk "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.37.0"
)

// Version is set by linker
var Version = "development"

var configPath = flag.String("config", "", "path to yaml config file, environment variable CONFIG can be used too")

func main() {
	flag.Parse()
	cfg, err := LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("%s : while loading config", err)
	}
	level, err := parseLogLevel(cfg.LogLevel)
	if err != nil {
		log.Fatalf("%s : while configuring logger", err)
	}
	logger := newLogger(level)
	if level < logrus.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	server := mocksmtpd.Server{
		Hostname:       cfg.Hostname,
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		DataTimeout:    cfg.DataTimeout,
		MaxConnections: cfg.MaxConnections,
		MaxMessageSize: cfg.MaxMessageSize,
		MaxRecipients:  cfg.MaxRecipients,
		Behaviors:      &mocksmtpd.Behaviors{},
		Repository:     &mocksmtpd.MemoryRepository{},
		Logger:         logger,
	}

	if cfg.RedisURL != "" {
		opts, pErr := redis.ParseURL(cfg.RedisURL)
		if pErr != nil {
			logger.Logger.Fatalf("%s : while parsing redis url", pErr)
		}
		repo := &redisRepository.Repository{Client: redis.NewClient(opts)}
		pErr = repo.Ping(ctx)
		if pErr != nil {
			logger.Logger.Fatalf("%s : while pinging redis", pErr)
		}
		server.Repository = repo
		logger.Logger.Infof("Mails are stored in redis %s", opts.Addr)
	}
	defer server.Repository.Close()

	if cfg.WebhookURL != "" {
		server.MailHandlers = append(server.MailHandlers, webhook.MailHandler(webhook.Opts{
			URL:        cfg.WebhookURL,
			HTTPClient: &http.Client{Timeout: 10 * time.Second},
		}))
		logger.Logger.Infof("Mails are posted to %s", cfg.WebhookURL)
	}

	if cfg.JaegerHost != "" {
		tp, tErr := setupTracing(cfg)
		if tErr != nil {
			logger.Logger.Fatalf("%s : while dialing jaeger", tErr)
		}
		defer func() {
			sErr := tp.Shutdown(context.Background())
			if sErr != nil {
				logger.Logger.Errorf("%s : while flushing traces", sErr)
			}
		}()
		server.Tracer = tp.Tracer("mocksmtpd")
		logger.Logger.Infof("Traces are sent to jaeger agent on %s:%s", cfg.JaegerHost, cfg.JaegerPort)
	}

	apiServer := http.Server{
		Addr:              cfg.APIListen,
		Handler:           api.New(&server, Version),
		ReadHeaderTimeout: cfg.ReadTimeout,
	}
	go func() {
		logger.Logger.Infof("Starting HTTP API on %s...", cfg.APIListen)
		lErr := apiServer.ListenAndServe()
		if lErr != nil && !errors.Is(lErr, http.ErrServerClosed) {
			logger.Logger.Errorf("%s : while starting HTTP API on %s", lErr, cfg.APIListen)
			cancel()
		}
	}()
	go func() {
		logger.Logger.Infof("Starting SMTP server %s on %s...", Version, cfg.SMTPListen)
		lErr := server.ListenAndServe(cfg.SMTPListen)
		if lErr != nil && !errors.Is(lErr, mocksmtpd.ErrServerClosed) {
			logger.Logger.Errorf("%s : while starting SMTP server on %s", lErr, cfg.SMTPListen)
			cancel()
		}
	}()

	<-ctx.Done()
	logger.Logger.Infof("Stopping...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	err = apiServer.Shutdown(shutdownCtx)
	if err != nil {
		logger.Logger.Errorf("%s : while stopping HTTP API", err)
	}
	err = server.Shutdown(true)
	if err != nil {
		logger.Logger.Errorf("%s : while stopping SMTP server", err)
	}
	logger.Logger.Infof("Mocksmtpd is stopped, %v mails recorded", server.GetMailsRecordedCount())
}

// setupTracing makes OpenTelemetry report traces to jaeger via udp
func setupTracing(cfg Config) (*tracesdk.TracerProvider, error) {
	exp, err := jaeger.New(jaeger.WithAgentEndpoint(
		jaeger.WithAgentHost(cfg.JaegerHost),
		jaeger.WithAgentPort(cfg.JaegerPort),
	))
	if err != nil {
		return nil, err
	}
	hostname, _ := os.Hostname()
	tp := tracesdk.NewTracerProvider(
		tracesdk.WithBatcher(exp),
		tracesdk.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName("mocksmtpd"),
			semconv.ServiceVersion(Version),
			attribute.String("smtp_hostname", cfg.Hostname),
			attribute.String("host", hostname),
		)),
	)
	otel.SetTracerProvider(tp)
	return tp, nil
}
