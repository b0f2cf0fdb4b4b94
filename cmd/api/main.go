package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/xavierca1/seerah-hajj/internal/config"
	"github.com/xavierca1/seerah-hajj/internal/infra/database"
	"github.com/xavierca1/seerah-hajj/internal/infra/http/handlers"
	"github.com/xavierca1/seerah-hajj/internal/infra/http/middleware"
	"github.com/xavierca1/seerah-hajj/internal/infra/integration/airtable"
	"github.com/xavierca1/seerah-hajj/internal/infra/mail"
	"github.com/xavierca1/seerah-hajj/internal/infra/queue"
	"github.com/xavierca1/seerah-hajj/internal/infra/storage"
	"github.com/xavierca1/seerah-hajj/internal/logger"
	"github.com/xavierca1/seerah-hajj/internal/usecase"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("configuração inválida")
	}
	log := logger.New(cfg.LogLevel, cfg.Production())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1. Banco e migrações
	if cfg.RunMigrations {
		if err := database.Migrate(cfg.DatabaseURL, log); err != nil {
			log.WithError(err).Fatal("falha nas migrações")
		}
	}

	db, err := database.Open(ctx, cfg.DatabaseURL, database.PoolConfig{
		MaxOpenConns:    cfg.DB.MaxOpenConns,
		MaxIdleConns:    cfg.DB.MaxIdleConns,
		ConnMaxLifetime: cfg.DB.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.DB.ConnMaxIdleTime,
	})
	if err != nil {
		log.WithError(err).Fatal("falha ao conectar no banco")
	}
	defer db.Close()

	// 2. Repositórios
	tipRepo := database.NewDailyTipRepository(db)
	webinarRepo := database.NewWebinarRepository(db)
	guideRepo := database.NewPDFGuideRepository(db)
	leadRepo := database.NewLeadRepository(db)
	subRepo := database.NewSubscriberRepository(db)
	inspector := database.NewTableInspector(db)

	// 3. Gateways
	var store usecase.ObjectStore = storage.Unconfigured{}
	if cfg.Storage.Enabled() {
		client, err := storage.NewClient(storage.Config{
			Endpoint:        cfg.Storage.Endpoint,
			Region:          cfg.Storage.Region,
			AccessKeyID:     cfg.Storage.AccessKeyID,
			SecretAccessKey: cfg.Storage.SecretAccessKey,
			PublicBaseURL:   cfg.Storage.PublicBaseURL,
		})
		if err != nil {
			log.WithError(err).Fatal("falha ao criar cliente de storage")
		}
		store = client
	} else {
		log.Warn("storage não configurado: uploads vão falhar")
	}

	tasks := usecase.NewBestEffort(cfg.SideTaskTimeout, log)
	tasks.OnFailure = middleware.RecordSideTaskFailure

	// Espelho no CRM: direto no Airtable ou via RabbitMQ + worker.
	var mirror usecase.LeadMirror
	var broker handlers.BrokerStatus
	if cfg.Airtable.Enabled() {
		crm := airtable.NewClient(cfg.Airtable.BaseURL, cfg.Airtable.Token, cfg.Airtable.BaseID, cfg.Airtable.Table, log)
		mirror = crm

		if cfg.RabbitMQ.URL != "" {
			rabbitMQ, err := queue.NewRabbitMQ(cfg.RabbitMQ.URL)
			if err != nil {
				log.WithError(err).Fatal("falha ao conectar no RabbitMQ")
			}
			defer rabbitMQ.Close()

			mirror = queue.NewProducer(rabbitMQ.Ch)
			broker = rabbitMQ

			worker := queue.NewWorker(rabbitMQ.Ch, crm, log)
			worker.OnFailure = func() { middleware.RecordSideTaskFailure("crm_worker") }
			go func() {
				if err := worker.Start(ctx, queue.QueueName); err != nil {
					log.WithError(err).Error("worker de CRM parou")
				}
			}()
		}
	} else {
		log.Info("Airtable não configurado: espelhamento desligado")
	}

	var notifier usecase.LeadNotifier
	if cfg.SMTP.Enabled() {
		notifier = mail.NewEmailSender(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.User, cfg.SMTP.Password, cfg.SMTP.From, cfg.SMTP.NotifyTo)
	}

	// 4. UseCases
	validator := usecase.NewValidator()
	tipUC := usecase.NewDailyTipUseCase(tipRepo, log)
	webinarUC := usecase.NewWebinarUseCase(webinarRepo, log)
	guideUC := usecase.NewPDFGuideUseCase(guideRepo, log)
	leadUC := usecase.NewLeadUseCase(leadRepo, log)
	intakeUC := usecase.NewSubmitIntakeUseCase(leadRepo, validator, mirror, notifier, tasks, log)
	subscribeUC := usecase.NewSubscribeUseCase(subRepo, validator, cfg.WhatsAppLink, log)
	resourcesUC := usecase.NewResourcesUseCase(tipUC, webinarUC, guideUC, log)
	statsUC := usecase.NewStatsUseCase(subRepo, leadRepo, log)
	uploadUC := usecase.NewUploadFileUseCase(store, cfg.Storage.ImageBucket, cfg.Storage.DocumentBucket, cfg.Storage.MaxUploadMB<<20, log)
	setupUC := usecase.NewSetupUseCase(inspector, uploadUC, log)

	auth := usecase.NewAdminAuth(cfg.Admin.PasswordHash, cfg.Admin.Password, jwtSecret(cfg.Admin.JWTSecret, log), cfg.Admin.TokenTTL)
	if !auth.Enabled() {
		log.Warn("ADMIN_PASSWORD/ADMIN_PASSWORD_HASH ausentes: rotas de admin abertas")
	}

	// 5. Handlers e router
	limiter := middleware.NewRateLimiter(cfg.RateLimitMax, cfg.RateLimitWindow)
	go limiter.Cleanup(ctx.Done())

	router := handlers.NewRouter(handlers.Routes{
		Tips:        handlers.NewDailyTipHandler(tipUC, log),
		Webinars:    handlers.NewWebinarHandler(webinarUC, log),
		Guides:      handlers.NewPDFGuideHandler(guideUC, log),
		Leads:       handlers.NewLeadHandler(leadUC, intakeUC, log),
		Upload:      handlers.NewUploadHandler(uploadUC, log),
		Public:      handlers.NewPublicHandler(subscribeUC, resourcesUC, statsUC, log),
		Admin:       handlers.NewAdminHandler(auth, setupUC, log),
		Health:      handlers.NewHealthHandler(inspector, broker, cfg.Storage.Enabled(), cfg.Airtable.Enabled(), version, log),
		Auth:        auth,
		RateLimiter: limiter,
		CORSOrigins: cfg.Origins(),
		TrustProxy:  cfg.TrustProxy,
		Log:         log,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.WithField("port", cfg.Port).Info("servidor no ar")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("servidor caiu")
		}
	}()

	<-ctx.Done()
	log.Info("desligando")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("shutdown do servidor")
	}
	tasks.Wait()
}

// jwtSecret gera um segredo aleatório quando JWT_SECRET não vem: os tokens
// deixam de valer a cada restart.
func jwtSecret(configured string, log logrus.FieldLogger) string {
	if configured != "" {
		return configured
	}
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		log.WithError(err).Fatal("falha ao gerar segredo JWT")
	}
	log.Warn("JWT_SECRET ausente: usando segredo efêmero")
	return hex.EncodeToString(buf)
}
