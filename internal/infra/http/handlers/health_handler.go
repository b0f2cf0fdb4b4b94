package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/xavierca1/seerah-hajj/internal/infra/http/middleware"
	"github.com/xavierca1/seerah-hajj/internal/logger"
)

// Pinger é o banco (TableInspector) visto pelo health check.
type Pinger interface {
	Ping(ctx context.Context) error
}

// BrokerStatus é o RabbitMQ visto pelo health check.
type BrokerStatus interface {
	Healthy() bool
}

type HealthHandler struct {
	DB        Pinger
	RabbitMQ  BrokerStatus
	Storage   bool
	Airtable  bool
	StartTime time.Time
	Version   string
	Log       logrus.FieldLogger
}

type HealthResponse struct {
	Status       string            `json:"status"`
	Version      string            `json:"version"`
	Uptime       string            `json:"uptime"`
	Dependencies map[string]string `json:"dependencies"`
}

func NewHealthHandler(db Pinger, rabbitMQ BrokerStatus, storage, airtable bool, version string, log logrus.FieldLogger) *HealthHandler {
	return &HealthHandler{
		DB:        db,
		RabbitMQ:  rabbitMQ,
		Storage:   storage,
		Airtable:  airtable,
		StartTime: time.Now(),
		Version:   version,
		Log:       log,
	}
}

func (h *HealthHandler) Handle(w http.ResponseWriter, r *http.Request) {
	deps := make(map[string]string)

	if h.DB != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.DB.Ping(ctx); err != nil {
			// rota pública: o erro do driver pode trazer host e usuário
			logger.WithContext(r.Context(), h.Log).WithError(err).Warn("health: banco fora")
			deps["database"] = "unhealthy"
		} else {
			deps["database"] = "healthy"
		}
	} else {
		deps["database"] = "not configured"
	}

	if h.RabbitMQ != nil {
		if h.RabbitMQ.Healthy() {
			deps["rabbitmq"] = "healthy"
		} else {
			deps["rabbitmq"] = "unhealthy: connection closed"
		}
	} else {
		deps["rabbitmq"] = "not configured"
	}

	deps["storage"] = configured(h.Storage)
	deps["airtable"] = configured(h.Airtable)

	status := "healthy"
	for _, v := range deps {
		if v != "healthy" && v != "configured" && v != "not configured" {
			status = "degraded"
			break
		}
	}

	code := http.StatusOK
	if status == "degraded" {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, HealthResponse{
		Status:       status,
		Version:      h.Version,
		Uptime:       time.Since(h.StartTime).Round(time.Second).String(),
		Dependencies: deps,
	})
}

func configured(ok bool) string {
	if ok {
		return "configured"
	}
	return "not configured"
}

func clientIP(r *http.Request) string {
	return middleware.ClientIP(r)
}
