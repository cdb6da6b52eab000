// Package config centralizes environment-driven configuration so main stays
// lean. Every tunable the consent and KBA modules expose lives here with its
// default from the compliance runbook.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is the full server configuration.
type Config struct {
	Addr string

	// PostgresDSN selects the durable store. Empty means in-memory stores
	// (dev and tests only; consent records must be durable in production).
	PostgresDSN string

	Redis RedisConfig
	Kafka KafkaConfig

	// JWTSigningKey validates caller tokens on user-facing routes.
	JWTSigningKey string
	// AdminKeyHash is the bcrypt hash of the maintenance key that guards the
	// sweep and revoke endpoints.
	AdminKeyHash string

	KBA     KBAConfig
	Consent ConsentConfig
}

// RedisConfig configures the shared session cache. Empty URL disables Redis
// and falls back to the in-process session store.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// KafkaConfig configures the audit event sink. Empty brokers disables Kafka
// and audit events stay on the in-process sink.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// KBAConfig tunes the quiz engine.
type KBAConfig struct {
	PassThreshold       float64
	SessionTTL          time.Duration
	MaxAttempts         int
	QuestionsPerSession int
	CleanupInterval     time.Duration
}

// ConsentConfig tunes the consent lifecycle.
type ConsentConfig struct {
	ValidityPeriod  time.Duration
	RetentionPeriod time.Duration
	RenewalLeadTime time.Duration
	EmailTokenTTL   time.Duration
	RetentionSweep  time.Duration
	RenewalSweep    time.Duration
}

// FromEnv builds a Config from environment variables with runbook defaults.
func FromEnv() Config {
	return Config{
		Addr:          envStr("GUARDIAN_ADDR", ":8080"),
		PostgresDSN:   os.Getenv("GUARDIAN_POSTGRES_DSN"),
		JWTSigningKey: envStr("GUARDIAN_JWT_SIGNING_KEY", "dev-secret-change-in-production"),
		AdminKeyHash:  os.Getenv("GUARDIAN_ADMIN_KEY_HASH"),
		Redis: RedisConfig{
			URL:          os.Getenv("GUARDIAN_REDIS_URL"),
			PoolSize:     envInt("GUARDIAN_REDIS_POOL_SIZE", 10),
			MinIdleConns: envInt("GUARDIAN_REDIS_MIN_IDLE", 2),
			DialTimeout:  envDuration("GUARDIAN_REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  envDuration("GUARDIAN_REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: envDuration("GUARDIAN_REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Kafka: KafkaConfig{
			Brokers: splitNonEmpty(os.Getenv("GUARDIAN_KAFKA_BROKERS")),
			Topic:   envStr("GUARDIAN_AUDIT_TOPIC", "guardian.consent.audit"),
		},
		KBA: KBAConfig{
			PassThreshold:       envFloat("GUARDIAN_KBA_PASS_THRESHOLD", 0.70),
			SessionTTL:          envDuration("GUARDIAN_KBA_SESSION_TTL", 15*time.Minute),
			MaxAttempts:         envInt("GUARDIAN_KBA_MAX_ATTEMPTS", 3),
			QuestionsPerSession: envInt("GUARDIAN_KBA_QUESTIONS", 5),
			CleanupInterval:     envDuration("GUARDIAN_KBA_CLEANUP_INTERVAL", 5*time.Minute),
		},
		Consent: ConsentConfig{
			ValidityPeriod:  envDuration("GUARDIAN_CONSENT_VALIDITY", 365*24*time.Hour),
			RetentionPeriod: envDuration("GUARDIAN_CONSENT_RETENTION", 3*365*24*time.Hour),
			RenewalLeadTime: envDuration("GUARDIAN_RENEWAL_LEAD", 30*24*time.Hour),
			EmailTokenTTL:   envDuration("GUARDIAN_EMAIL_TOKEN_TTL", 7*24*time.Hour),
			RetentionSweep:  envDuration("GUARDIAN_RETENTION_SWEEP_INTERVAL", 24*time.Hour),
			RenewalSweep:    envDuration("GUARDIAN_RENEWAL_SWEEP_INTERVAL", 24*time.Hour),
		},
	}
}

func envStr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitNonEmpty(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
