package logger

import (
	"context"
	"os"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
)

// New devolve o logger da aplicação: JSON em produção, texto no resto.
func New(level string, production bool) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stdout)

	if production {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
		log.WithField("level", level).Warn("nível de log inválido, usando info")
	}
	log.SetLevel(lvl)

	return log
}

// WithContext anexa o request_id gerado pelo chi, quando houver.
func WithContext(ctx context.Context, log logrus.FieldLogger) logrus.FieldLogger {
	if id := middleware.GetReqID(ctx); id != "" {
		return log.WithField("request_id", id)
	}
	return log
}
