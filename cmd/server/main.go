// Command server runs the parental consent service: the consent lifecycle
// API, the KBA quiz engine, and the background maintenance sweeps.
package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"golang.org/x/sync/errgroup"

	"guardian/internal/audit"
	consentmetrics "guardian/internal/consent/metrics"
	consentservice "guardian/internal/consent/service"
	consentstore "guardian/internal/consent/store"
	consentworker "guardian/internal/consent/worker"
	"guardian/internal/kba/bank"
	kbametrics "guardian/internal/kba/metrics"
	"guardian/internal/kba/session"
	"guardian/internal/platform/config"
	"guardian/internal/platform/httpserver"
	"guardian/internal/platform/logger"
	platformredis "guardian/internal/platform/redis"
	"guardian/internal/platform/token"
	httptransport "guardian/internal/transport/http"
)

func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	questionBank, err := bank.Default()
	if err != nil {
		return err
	}

	checkers := map[string]httptransport.HealthChecker{}

	redisClient, err := platformredis.New(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	var sessionStore session.Store
	if redisClient != nil {
		defer redisClient.Close()
		sessionStore = session.NewRedisStore(redisClient.Client)
		checkers["redis"] = redisClient
		log.Info("quiz sessions backed by redis")
	} else {
		sessionStore = session.NewInMemoryStore()
		log.Warn("quiz sessions in memory, sessions are lost on restart")
	}

	quiz := session.NewManager(sessionStore, questionBank, session.Config{
		PassThreshold:       cfg.KBA.PassThreshold,
		SessionTTL:          cfg.KBA.SessionTTL,
		MaxAttempts:         cfg.KBA.MaxAttempts,
		QuestionsPerSession: cfg.KBA.QuestionsPerSession,
	}, kbametrics.New())

	var (
		store consentservice.Store
		tx    consentservice.StoreTx
	)
	if cfg.PostgresDSN != "" {
		db, err := sql.Open("pgx", cfg.PostgresDSN)
		if err != nil {
			return err
		}
		defer db.Close()
		if err := db.PingContext(ctx); err != nil {
			return err
		}
		if err := consentstore.EnsureSchema(ctx, db); err != nil {
			return err
		}
		store = consentstore.NewPostgresStore(db)
		tx = newConsentPostgresTx(db)
		checkers["postgres"] = dbHealth{db}
		log.Info("consent records backed by postgres")
	} else {
		memory := consentstore.NewInMemoryStore()
		store = memory
		tx = consentservice.NewShardedMemoryTx(memory)
		log.Warn("consent records in memory, records are lost on restart")
	}

	var auditSink audit.Store
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaStore, err := audit.NewKafkaStore(ctx, cfg.Kafka.Brokers, cfg.Kafka.Topic)
		if err != nil {
			return err
		}
		defer kafkaStore.Close()
		auditSink = kafkaStore
		log.Info("audit trail backed by kafka", "topic", cfg.Kafka.Topic)
	} else {
		auditSink = audit.NewInMemoryStore()
		log.Warn("audit trail in memory, events are lost on restart")
	}

	inbox := make(chan audit.Event, 256)
	auditor := audit.NewChannelPublisher(inbox)
	auditWorker := audit.NewWorker(auditSink, inbox, log)

	svc := consentservice.NewService(store, tx, quiz, auditor,
		consentmetrics.New(), log, consentservice.Config{
			ValidityPeriod:  cfg.Consent.ValidityPeriod,
			RetentionPeriod: cfg.Consent.RetentionPeriod,
			RenewalLeadTime: cfg.Consent.RenewalLeadTime,
			EmailTokenTTL:   cfg.Consent.EmailTokenTTL,
		})

	sweeper := consentworker.New(quiz, svc, svc, consentworker.Config{
		SessionInterval:   cfg.KBA.CleanupInterval,
		RetentionInterval: cfg.Consent.RetentionSweep,
		RenewalInterval:   cfg.Consent.RenewalSweep,
		RenewalLead:       cfg.Consent.RenewalLeadTime,
	}, log)

	jwtService := token.NewService(cfg.JWTSigningKey, "guardian", "guardian-api")

	router := httptransport.NewRouter(httptransport.RouterConfig{
		Logger:   log,
		Consent:  httptransport.NewConsentHandler(svc, log, jwtService),
		KBA:      httptransport.NewKBAHandler(quiz, log, jwtService),
		Admin:    httptransport.NewAdminHandler(svc, quiz, cfg.Consent.RenewalLeadTime, cfg.AdminKeyHash, log),
		Checkers: checkers,
	})

	srv := httpserver.New(cfg.Addr, router)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return auditWorker.Run(ctx) })
	g.Go(func() error { return sweeper.RunSessionSweep(ctx) })
	g.Go(func() error { return sweeper.RunRetentionSweep(ctx) })
	g.Go(func() error { return sweeper.RunRenewalSweep(ctx) })
	g.Go(func() error {
		log.Info("starting guardian", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

type dbHealth struct {
	db *sql.DB
}

func (h dbHealth) Health(ctx context.Context) error {
	return h.db.PingContext(ctx)
}
