package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/xavierca1/seerah-hajj/internal/entity"
	"github.com/xavierca1/seerah-hajj/internal/infra/http/middleware"
	"github.com/xavierca1/seerah-hajj/internal/usecase"
)

type (
	DailyTipHandler = ContentHandler[*entity.DailyTip, usecase.DailyTipInput, usecase.DailyTipUpdateInput]
	WebinarHandler  = ContentHandler[*entity.Webinar, usecase.WebinarInput, usecase.WebinarUpdateInput]
	PDFGuideHandler = ContentHandler[*entity.PDFGuide, usecase.PDFGuideInput, usecase.PDFGuideUpdateInput]
)

func NewDailyTipHandler(uc *usecase.DailyTipUseCase, log logrus.FieldLogger) *DailyTipHandler {
	return &DailyTipHandler{Service: uc, Label: "Daily tip", Log: log}
}

func NewWebinarHandler(uc *usecase.WebinarUseCase, log logrus.FieldLogger) *WebinarHandler {
	return &WebinarHandler{Service: uc, Label: "Webinar", Log: log}
}

func NewPDFGuideHandler(uc *usecase.PDFGuideUseCase, log logrus.FieldLogger) *PDFGuideHandler {
	return &PDFGuideHandler{Service: uc, Label: "PDF guide", Log: log}
}

// Routes junta tudo o que o router precisa.
type Routes struct {
	Tips     *DailyTipHandler
	Webinars *WebinarHandler
	Guides   *PDFGuideHandler
	Leads    *LeadHandler
	Upload   *UploadHandler
	Public   *PublicHandler
	Admin    *AdminHandler
	Health   *HealthHandler

	Auth        middleware.TokenVerifier
	RateLimiter *middleware.RateLimiter
	CORSOrigins []string
	// TrustProxy liga o chimw.RealIP. Só com proxy reverso na frente, senão o
	// cliente escolhe o próprio IP e escapa do rate limit.
	TrustProxy  bool
	Log         logrus.FieldLogger
}

func NewRouter(rt Routes) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	if rt.TrustProxy {
		r.Use(chimw.RealIP)
	}
	r.Use(middleware.RequestLogger(rt.Log))
	r.Use(chimw.Recoverer)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: rt.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		MaxAge:         300,
	}))

	r.Get("/health", rt.Health.Handle)
	r.Handle("/metrics", promhttp.Handler())

	admin := middleware.RequireAdmin(rt.Auth)
	limited := rt.RateLimiter.Handler

	r.Route("/api", func(r chi.Router) {
		contentRoutes(r, "/daily-tips", rt.Tips, admin)
		contentRoutes(r, "/webinars", rt.Webinars, admin)
		contentRoutes(r, "/pdf-guides", rt.Guides, admin)

		r.Get("/resources", rt.Public.HandleResources)
		r.Get("/stats", rt.Public.HandleStats)

		r.Group(func(r chi.Router) {
			r.Use(limited)
			r.Post("/hajj-intake", rt.Leads.SubmitIntake)
			r.Post("/subscribe", rt.Public.HandleSubscribe)
			r.Post("/admin/login", rt.Admin.Login)
		})

		r.Group(func(r chi.Router) {
			r.Use(admin)
			r.Get("/leads", rt.Leads.List)
			r.Put("/leads", rt.Leads.UpdateStatus)
			r.Post("/upload", rt.Upload.Handle)
			r.Post("/setup-storage", rt.Admin.SetupStorage)
			r.Get("/setup-db", rt.Admin.SetupDB)
		})
	})

	return r
}

type contentRoutesHandler interface {
	List(http.ResponseWriter, *http.Request)
	Create(http.ResponseWriter, *http.Request)
	Update(http.ResponseWriter, *http.Request)
	Delete(http.ResponseWriter, *http.Request)
}

// contentRoutes: GET é público, escrita exige admin.
func contentRoutes(r chi.Router, path string, h contentRoutesHandler, admin func(http.Handler) http.Handler) {
	r.Get(path, h.List)
	r.With(admin).Post(path, h.Create)
	r.With(admin).Put(path, h.Update)
	r.With(admin).Delete(path, h.Delete)
}
