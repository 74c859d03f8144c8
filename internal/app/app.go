package app

import (
	"log"
	"os"

	"go-payroll/internal/audit"
	"go-payroll/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BuildApp wires infrastructure, repositories, services and routes, and
// returns the audit sink so the bootstrap layer can log shutdown events
// through the same pipeline.
func BuildApp(router *gin.Engine) (audit.Sink, error) {
	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return nil, err
	}
	log.Println("✅ Database connection established")

	redisClient, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), 5)
	if err != nil {
		return nil, err
	}
	log.Println("✅ Redis connection established")

	auditSink := buildAuditSink()

	if err := registerModules(router, gormDB, redisClient, auditSink); err != nil {
		return nil, err
	}

	return auditSink, nil
}

// buildAuditSink always logs audit events through zap; when a Kafka broker is
// configured, entries additionally go to the audit topic. Broker connection
// failure degrades to log-only, never blocks startup.
func buildAuditSink() audit.Sink {
	zapSink := audit.NewZapSink()

	broker := os.Getenv("KAFKA_BROKER")
	if broker == "" {
		return zapSink
	}

	writer, err := connection.ConnectKafkaWithRetry(broker, 5)
	if err != nil {
		zap.L().Warn("Kafka unavailable, audit events will only be logged", zap.Error(err))
		return zapSink
	}
	log.Println("✅ Kafka connection established")

	return audit.Fanout{zapSink, audit.NewKafkaSink(writer, zap.L())}
}
