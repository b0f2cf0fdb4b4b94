package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xavierca1/seerah-hajj/internal/entity"
	"github.com/xavierca1/seerah-hajj/internal/infra/http/middleware"
	"github.com/xavierca1/seerah-hajj/internal/usecase"
)

type harness struct {
	router http.Handler
	tips   *memContent[*entity.DailyTip, entity.DailyTipPatch]
	leads  *memLeads
	store  *memStore
	tasks  *usecase.BestEffort
}

func newHarness(t *testing.T, adminPassword string, rateLimit int) *harness {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)

	h := &harness{
		tips:  &memContent[*entity.DailyTip, entity.DailyTipPatch]{},
		leads: &memLeads{},
		store: &memStore{},
		tasks: usecase.NewBestEffort(time.Second, log),
	}
	webinars := &memContent[*entity.Webinar, entity.WebinarPatch]{}
	guides := &memContent[*entity.PDFGuide, entity.PDFGuidePatch]{}
	subs := &memSubscribers{}
	inspector := &memInspector{tables: []entity.TableStatus{
		{Name: "daily_tips", Exists: true, Rows: 0},
		{Name: "email_subscribers", Exists: false},
	}}
	t.Cleanup(h.tasks.Wait)

	v := usecase.NewValidator()
	tipsUC := usecase.NewDailyTipUseCase(h.tips, log)
	webinarsUC := usecase.NewWebinarUseCase(webinars, log)
	guidesUC := usecase.NewPDFGuideUseCase(guides, log)
	uploadUC := usecase.NewUploadFileUseCase(h.store, "", "", 0, log)
	auth := usecase.NewAdminAuth("", adminPassword, "test-secret", time.Hour)

	h.router = NewRouter(Routes{
		Tips:     NewDailyTipHandler(tipsUC, log),
		Webinars: NewWebinarHandler(webinarsUC, log),
		Guides:   NewPDFGuideHandler(guidesUC, log),
		Leads: NewLeadHandler(
			usecase.NewLeadUseCase(h.leads, log),
			usecase.NewSubmitIntakeUseCase(h.leads, v, nil, nil, h.tasks, log),
			log,
		),
		Upload: NewUploadHandler(uploadUC, log),
		Public: NewPublicHandler(
			usecase.NewSubscribeUseCase(subs, v, "", log),
			usecase.NewResourcesUseCase(tipsUC, webinarsUC, guidesUC, log),
			usecase.NewStatsUseCase(subs, h.leads, log),
			log,
		),
		Admin:       NewAdminHandler(auth, usecase.NewSetupUseCase(inspector, uploadUC, log), log),
		Health:      NewHealthHandler(inspector, nil, true, false, "test", log),
		Auth:        auth,
		RateLimiter: middleware.NewRateLimiter(rateLimit, time.Minute),
		CORSOrigins: []string{"*"},
		Log:         log,
	})
	return h
}

func (h *harness) do(t *testing.T, method, path, body string, header ...string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	rec := httptest.NewRecorder()
	h.router.ServeHTTP(rec, req)

	var out map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &out)
	return rec, out
}

const intakeBody = `{
	"fullName": "Amina Yusuf",
	"email": "amina@example.com",
	"phone": "+44 7700 900123",
	"cityCountry": "Manchester, UK",
	"previousExperience": "Umrah",
	"hajjStatus": "Seriously considering",
	"travellingWith": "Spouse/Family",
	"travellerCount": 2,
	"callGoals": "Want to understand packages",
	"consent": true
}`

// ============ CONTENT ============

func TestWebinarLifecycle(t *testing.T) {
	h := newHarness(t, "", 10)

	rec, body := h.do(t, http.MethodPost, "/api/webinars",
		`{"title":"Ihram","description":"Rules of ihram","youtubeUrl":"https://www.youtube.com/watch?v=dQw4w9WgXcQ"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, true, body["success"])
	data := body["data"].(map[string]any)
	assert.Equal(t, "dQw4w9WgXcQ", data["youtube_id"])
	assert.Equal(t, "https://img.youtube.com/vi/dQw4w9WgXcQ/maxresdefault.jpg", data["thumbnail_url"])
	id := data["id"].(string)

	rec, body = h.do(t, http.MethodDelete, "/api/webinars?id="+id, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Webinar deleted successfully", body["message"])

	_, body = h.do(t, http.MethodGet, "/api/webinars", "")
	assert.Empty(t, body["data"])

	_, body = h.do(t, http.MethodGet, "/api/webinars?active=false", "")
	assert.Len(t, body["data"], 1)
}

func TestContentErrors(t *testing.T) {
	h := newHarness(t, "", 10)

	rec, body := h.do(t, http.MethodPost, "/api/webinars",
		`{"title":"Ihram","description":"d","youtubeUrl":"https://vimeo.com/1"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Invalid YouTube URL. Please provide a valid YouTube video URL.", body["error"])

	rec, _ = h.do(t, http.MethodPost, "/api/daily-tips", `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, body = h.do(t, http.MethodDelete, "/api/daily-tips", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Missing daily tip ID", body["error"])

	rec, _ = h.do(t, http.MethodPut, "/api/pdf-guides", `{"id":"ghost","title":"x"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// ============ AUTH ============

func TestAdminRoutesRequireToken(t *testing.T) {
	h := newHarness(t, "s3cret", 10)
	tip := `{"title":"Hydrate","description":"Drink water","imageUrl":"https://cdn.test/w.png"}`

	rec, _ := h.do(t, http.MethodPost, "/api/daily-tips", tip)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	rec, _ = h.do(t, http.MethodGet, "/api/leads", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = h.do(t, http.MethodGet, "/api/daily-tips", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = h.do(t, http.MethodPost, "/api/admin/login", `{"password":"nope"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, body := h.do(t, http.MethodPost, "/api/admin/login", `{"password":"s3cret"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	token := body["data"].(map[string]any)["token"].(string)

	rec, body = h.do(t, http.MethodPost, "/api/daily-tips", tip, "Authorization", "Bearer "+token)
	require.Equal(t, http.StatusOK, rec.Code)
	data := body["data"].(map[string]any)
	assert.Equal(t, "General", data["category"])
	assert.Equal(t, true, data["is_active"])
}

// ============ LEADS ============

func TestIntakeAndLeadWorkflow(t *testing.T) {
	h := newHarness(t, "", 10)

	rec, body := h.do(t, http.MethodPost, "/api/hajj-intake", intakeBody)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Form submitted successfully", body["message"])
	assert.Equal(t, "Amina Yusuf", body["data"].(map[string]any)["name"])
	id := body["submissionId"].(string)

	rec, body = h.do(t, http.MethodGet, "/api/leads?status=new", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), body["total"])
	lead := body["data"].([]any)[0].(map[string]any)
	assert.Equal(t, "new", lead["status"])
	assert.Nil(t, lead["notes"])

	rec, body = h.do(t, http.MethodPut, "/api/leads", `{"id":"`+id+`","status":"contacted","notes":"Called"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	updated := body["data"].(map[string]any)
	assert.Equal(t, "contacted", updated["status"])
	assert.Equal(t, "Called", updated["notes"])

	_, body = h.do(t, http.MethodGet, "/api/leads?q=manchester", "")
	assert.Equal(t, float64(1), body["total"])

	rec, _ = h.do(t, http.MethodGet, "/api/leads?status=archived", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestIntakeRejectsMissingConsent(t *testing.T) {
	h := newHarness(t, "", 10)

	rec, body := h.do(t, http.MethodPost, "/api/hajj-intake", strings.Replace(intakeBody, `"consent": true`, `"consent": false`, 1))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, body["error"], "You must agree to be contacted")
	assert.Empty(t, h.leads.leads)
}

func TestIntakeIsRateLimited(t *testing.T) {
	h := newHarness(t, "", 1)

	first, _ := h.do(t, http.MethodPost, "/api/hajj-intake", intakeBody)
	second, _ := h.do(t, http.MethodPost, "/api/hajj-intake", intakeBody)

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
}

func TestLoginRateLimitIgnoresForwardedFor(t *testing.T) {
	h := newHarness(t, "s3cret", 2)

	blocked := 0
	for i := range 50 {
		rec, _ := h.do(t, http.MethodPost, "/api/admin/login", `{"password":"guess"}`,
			"X-Forwarded-For", fmt.Sprintf("203.0.113.%d", i))
		if rec.Code == http.StatusTooManyRequests {
			blocked++
		}
	}

	assert.Equal(t, 48, blocked)
}

// ============ UPLOAD ============

func multipartFile(t *testing.T, name, contentType string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	hdr := textproto.MIMEHeader{}
	hdr.Set("Content-Disposition", `form-data; name="file"; filename="`+name+`"`)
	hdr.Set("Content-Type", contentType)
	part, err := w.CreatePart(hdr)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestUpload(t *testing.T) {
	h := newHarness(t, "", 10)

	post := func(body *bytes.Buffer, ct string) (*httptest.ResponseRecorder, map[string]any) {
		req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
		req.Header.Set("Content-Type", ct)
		rec := httptest.NewRecorder()
		h.router.ServeHTTP(rec, req)
		var out map[string]any
		_ = json.Unmarshal(rec.Body.Bytes(), &out)
		return rec, out
	}

	rec, out := post(multipartFile(t, "packing list.pdf", "application/pdf", []byte("%PDF-1.4")))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, true, out["success"])
	assert.Contains(t, out["fileUrl"], "/object/public/pdf-guides/")
	assert.Contains(t, out["fileName"], "-packing_list.pdf")
	assert.Equal(t, "application/pdf", out["fileType"])

	rec, out = post(multipartFile(t, "data.json", "application/json", []byte("{}")))
	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
	assert.Equal(t, "Invalid file type. Only images and PDFs are allowed.", out["error"])

	empty := &bytes.Buffer{}
	mw := multipart.NewWriter(empty)
	require.NoError(t, mw.Close())
	rec, out = post(empty, mw.FormDataContentType())
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "No file uploaded", out["error"])

	assert.Equal(t, 1, h.store.count())
}

// ============ PUBLIC ============

func TestSubscribeAndStats(t *testing.T) {
	h := newHarness(t, "", 10)

	rec, body := h.do(t, http.MethodPost, "/api/subscribe", `{"email":"yusuf@example.com"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, usecase.DefaultWhatsAppLink, body["whatsappLink"])
	assert.NotEmpty(t, body["subscriberId"])

	rec, body = h.do(t, http.MethodPost, "/api/subscribe", `{"email":"YUSUF@example.com"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "This email is already subscribed", body["error"])

	rec, _ = h.do(t, http.MethodGet, "/api/stats", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"currentMembers":111,"totalGoal":500,"weeklyJoins":1,"cities":0}`, rec.Body.String())
}

func TestResources(t *testing.T) {
	h := newHarness(t, "", 10)
	h.tips.items = []*entity.DailyTip{
		{ContentMeta: entity.ContentMeta{ID: "a", IsActive: true, Tags: []string{"packing"}}, Title: "Packing light"},
		{ContentMeta: entity.ContentMeta{ID: "b", IsActive: true, Tags: []string{"health"}}, Title: "Hydrate"},
		{ContentMeta: entity.ContentMeta{ID: "c", IsActive: false, Tags: []string{"old"}}, Title: "Packing (old)"},
	}

	rec, body := h.do(t, http.MethodGet, "/api/resources?q=packing&tags=packing,visa", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["success"])
	assert.Len(t, body["tips"], 1)
	assert.Equal(t, []any{"health", "packing"}, body["allTags"])
	assert.Empty(t, body["webinars"])
}

// ============ ADMIN / HEALTH ============

func TestSetupRoutes(t *testing.T) {
	h := newHarness(t, "", 10)

	rec, body := h.do(t, http.MethodGet, "/api/setup-db", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, body["success"])
	assert.Len(t, body["tables"], 2)

	rec, body = h.do(t, http.MethodPost, "/api/setup-storage", "")
	require.Equal(t, http.StatusOK, rec.Code)
	buckets := body["buckets"].([]any)
	require.Len(t, buckets, 2)
	assert.Equal(t, "created", buckets[0].(map[string]any)["status"])

	_, body = h.do(t, http.MethodPost, "/api/setup-storage", "")
	assert.Equal(t, "already exists", body["buckets"].([]any)[1].(map[string]any)["status"])
}

func TestHealth(t *testing.T) {
	h := newHarness(t, "", 10)

	rec, body := h.do(t, http.MethodGet, "/health", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "healthy", body["status"])
	deps := body["dependencies"].(map[string]any)
	assert.Equal(t, "healthy", deps["database"])
	assert.Equal(t, "not configured", deps["rabbitmq"])
	assert.Equal(t, "configured", deps["storage"])
}

func TestSplitCSV(t *testing.T) {
	assert.Nil(t, splitCSV(""))
	assert.Equal(t, []string{"a", "b"}, splitCSV(" a, ,b,"))
}

func TestContentListFailureDegradesToEmpty(t *testing.T) {
	h := newHarness(t, "", 0)
	h.tips.listErr = errors.New("connection refused")

	rec, _ := h.do(t, http.MethodGet, "/api/daily-tips", "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"success":false,"data":[],"error":"failed to fetch daily tips"}`, rec.Body.String())
}

func TestErrorResponseHidesTechnicalCause(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)
	err := &usecase.TechnicalError{Code: usecase.CodeInternal, Message: "failed to sign token", Err: errors.New("key is of invalid type")}

	status, body := errorResponse(log, err)

	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "failed to sign token", body.Error)
	assert.False(t, body.Success)
}

func TestHealthHidesDatabaseError(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)
	db := &memInspector{pingErr: errors.New(`dial tcp db.internal.supabase.co:5432: password authentication failed for user "postgres"`)}
	h := NewHealthHandler(db, nil, false, false, "test", log)

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.NotContains(t, rec.Body.String(), "supabase")
	var body HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "degraded", body.Status)
	assert.Equal(t, "unhealthy", body.Dependencies["database"])
}
