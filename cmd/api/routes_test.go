package main

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/textproto"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artium/indicacoes-api/config"
	"github.com/artium/indicacoes-api/internal/middleware"
	"github.com/artium/indicacoes-api/internal/models"
	"github.com/artium/indicacoes-api/internal/services"
	"github.com/artium/indicacoes-api/internal/session"
	"github.com/artium/indicacoes-api/internal/workflow"
	"github.com/artium/indicacoes-api/pkg/jwt"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:           "8080",
			GinMode:        gin.TestMode,
			AppEnv:         "test",
			AllowedOrigins: []string{"https://indicacoes.example.com"},
		},
		Session: config.SessionConfig{Secret: "secret", Issuer: "test", TTLHours: 1, IdleMinutes: 5},
		Submission: config.SubmissionConfig{
			Mode:         config.SubmissionModeSimulated,
			DwellSeconds: 3,
		},
		Site: config.SiteConfig{
			OrganizationName: "Artium Soluções",
			MainSiteURL:      "https://artiumsolucoes.com.br/",
			ContactURL:       "https://artiumsolucoes.com.br/#contato",
		},
	}
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	cfg := testConfig()
	submitter := services.NewSimulatedSubmitter(0)
	sessions := session.NewStore(time.Minute, func(kind models.ReferralKind, n workflow.Notifier) *workflow.Workflow {
		return workflow.New(kind, submitter, n, workflow.Options{Dwell: time.Hour})
	})
	t.Cleanup(sessions.Flush)

	router, err := newRouter(ctx, cfg, routerDeps{
		tokens:   jwt.NewTokenManager(cfg.Session.Secret, cfg.Session.Issuer, cfg.Session.TTLHours),
		sessions: sessions,
	})
	require.NoError(t, err)
	return router
}

func TestRouter_OperationalEndpoints(t *testing.T) {
	router := newTestRouter(t)

	for _, path := range []string{"/api/healthcheck", "/api/metrics", "/static/styles.css"} {
		t.Run(path, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))

			assert.Equal(t, http.StatusOK, w.Code)
			assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
		})
	}
}

func TestRouter_SessionCarriesAcrossPageAndAPI(t *testing.T) {
	router := newTestRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)

	req := httptest.NewRequest(http.MethodPost, "/indicacoes/modo", strings.NewReader("tipo=company"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(cookies[0])
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusSeeOther, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/referrals/form", nil)
	req.AddCookie(cookies[0])
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"kind":"company"`)
}

func TestRouter_SubmitCompanyThroughAPI(t *testing.T) {
	router := newTestRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/referrals/form", nil))
	cookie := w.Result().Cookies()[0]

	post := func(path, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.AddCookie(cookie)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	require.Equal(t, http.StatusOK, post("/api/v1/referrals/mode", `{"kind":"empresa"}`).Code)

	w = post("/api/v1/referrals/company", `{"companyName":"Acme","email":"contato@acme.com","phone":"1133334444"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"state":"succeeded"`)
	assert.Contains(t, w.Body.String(), "Indicação enviada com sucesso!")
}

func TestRouter_OversizedResumeIsAFieldError(t *testing.T) {
	router := newTestRouter(t)

	for _, size := range []int64{15 << 20, resumeBodyLimit + 1} {
		body := &bytes.Buffer{}
		writer := multipart.NewWriter(body)
		require.NoError(t, writer.WriteField("name", "Ana Silva"))
		require.NoError(t, writer.WriteField("email", "ana@exemplo.com"))
		require.NoError(t, writer.WriteField("phone", "(11) 99999-9999"))
		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition", `form-data; name="resume"; filename="scan.pdf"`)
		header.Set("Content-Type", "application/pdf")
		part, err := writer.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write(bytes.Repeat([]byte("x"), int(size)))
		require.NoError(t, err)
		require.NoError(t, writer.Close())

		req := httptest.NewRequest(http.MethodPost, "/api/v1/referrals/talent", body)
		req.Header.Set("Content-Type", writer.FormDataContentType())
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusUnprocessableEntity, w.Code, "size %d", size)
		assert.Contains(t, w.Body.String(), `"resume":"Arquivo muito grande. Máximo: 10MB"`)
	}
}

func TestRouter_UnknownRoute(t *testing.T) {
	router := newTestRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/wp-admin", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}
