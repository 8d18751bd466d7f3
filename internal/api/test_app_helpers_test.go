package api

import (
	"bytes"
	"encoding/json"
	"io"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/auragon/internal/db"
	"github.com/terraincognita07/auragon/internal/i18n"
	"github.com/terraincognita07/auragon/internal/pressure"
	"github.com/terraincognita07/auragon/internal/services"
	"go.uber.org/zap/zaptest"
)

var testNow = time.Date(2026, time.June, 10, 9, 41, 0, 0, time.UTC)

type testApp struct {
	app        *fiber.App
	handler    *Handler
	logs       *services.LogService
	options    *services.OptionService
	onboarding *services.OnboardingService
}

func newTestApp(t *testing.T) testApp {
	t.Helper()

	logger := zaptest.NewLogger(t)
	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "auragon-api-test.db"), logger)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close(database)
	})

	i18nManager, err := i18n.NewDefaultManager(i18n.LangEN)
	if err != nil {
		t.Fatalf("init i18n: %v", err)
	}

	repos := db.NewRepositories(database)
	logs := services.NewLogService(repos.Logs, logger)
	options := services.NewOptionService(repos.Options, logger)
	onboarding := services.NewOnboardingService(repos.State, options, logger)
	t.Cleanup(logs.Close)
	t.Cleanup(options.Close)

	launch, err := onboarding.LoadLaunchState()
	if err != nil {
		t.Fatalf("load launch state: %v", err)
	}

	handler, err := NewHandler(Dependencies{
		Logs:       logs,
		Options:    options,
		Onboarding: onboarding,
		Pressure:   pressure.NewMockProvider(rand.NewPCG(1, 1)),
		Launch:     launch,
		I18n:       i18nManager,
		Logger:     logger,
		Location:   time.UTC,
	})
	if err != nil {
		t.Fatalf("init handler: %v", err)
	}
	handler.now = func() time.Time { return testNow }

	app := fiber.New()
	app.Use(handler.LanguageMiddleware)
	RegisterRoutes(app, handler)
	app.Use(handler.NotFound)

	return testApp{
		app:        app,
		handler:    handler,
		logs:       logs,
		options:    options,
		onboarding: onboarding,
	}
}

func (ta testApp) do(t *testing.T, method string, target string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("encode request body: %v", err)
		}
		reader = bytes.NewReader(payload)
	}

	request := httptest.NewRequest(method, target, reader)
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	response, err := ta.app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, target, err)
	}
	t.Cleanup(func() {
		_ = response.Body.Close()
	})
	return response
}

func assertStatus(t *testing.T, response *http.Response, expected int) {
	t.Helper()
	if response.StatusCode != expected {
		body, _ := io.ReadAll(response.Body)
		t.Fatalf("expected status %d, got %d: %s", expected, response.StatusCode, string(body))
	}
}

func decodeJSON[T any](t *testing.T, response *http.Response) T {
	t.Helper()

	var payload T
	if err := json.NewDecoder(response.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response body: %v", err)
	}
	return payload
}

type apiErrorBody struct {
	Error   string            `json:"error"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields"`
}
