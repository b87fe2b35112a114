//go:build integration

// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pocketledger/backend/config"
	"github.com/pocketledger/backend/internal/infra/dependency"
	"github.com/pocketledger/backend/internal/integration/adapters"
	"github.com/pocketledger/backend/internal/integration/entrypoint/controller"
	"github.com/pocketledger/backend/test/integration/mock"
)

const (
	testJWTSecret = "test-jwt-secret-key-for-testing-purposes"
	// processNowLimit is low so rate limiting can be exercised in a scenario.
	processNowLimit = 3
)

// emailAPI stands in for the Resend HTTP API for the whole suite.
var emailAPI *mock.ApiMock

// testContext holds the state of one scenario.
type testContext struct {
	db       *mock.Db
	injector *dependency.Injector
	server   *httptest.Server
	client   *http.Client

	headers     map[string]string
	accessToken string
	users       map[string]uuid.UUID

	// vars holds values saved from responses, referenced as {name}.
	vars map[string]string

	status int
	body   []byte
}

// InitializeTestSuite sets up resources shared by every scenario.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)
		emailAPI = mock.NewApiServer()
		emailAPI.Start()
	})

	ctx.AfterSuite(func() {
		emailAPI.Close()
	})
}

// InitializeScenario builds a fresh API for the scenario and registers all steps.
func InitializeScenario(ctx *godog.ScenarioContext) {
	tc := &testContext{
		db:     mock.NewDb(),
		client: &http.Client{Timeout: 10 * time.Second},
	}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, tc.before()
	})

	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		if tc.server != nil {
			tc.server.Close()
		}
		return ctx, nil
	})

	registerSteps(ctx, tc)
}

func (t *testContext) before() error {
	t.headers = map[string]string{}
	t.accessToken = ""
	t.users = map[string]uuid.UUID{}
	t.vars = map[string]string{}
	t.status = 0
	t.body = nil

	if err := t.db.ClearDB(); err != nil {
		return err
	}
	redisClient := mock.NewRedis()
	if err := mock.ClearRedis(redisClient); err != nil {
		return err
	}
	emailAPI.Reset()
	emailAPI.SetResponse(-1, http.MethodPost, "/emails", http.StatusOK, map[string]any{"id": "email-test-id"})

	cfg := config.Load()
	cfg.Server.Environment = "test"
	cfg.Server.CORSOrigins = []string{"*"}
	cfg.JWT.Secret = testJWTSecret
	cfg.JWT.AccessTokenExpiry = time.Hour
	cfg.AI.GeminiAPIKey = ""
	cfg.Email.ResendAPIKey = "re_test_key"
	cfg.Email.ResendBaseURL = emailAPI.GetUrl() + "/"
	cfg.Recurring.RetryBackoff = 10 * time.Millisecond
	cfg.Recurring.ProcessNowLimit = processNowLimit
	cfg.Recurring.ProcessNowWindow = time.Minute

	sqlDB, err := t.db.DbConn.DB()
	if err != nil {
		return err
	}

	injector, err := dependency.NewInjector(cfg, t.db.DbConn, dependency.Options{
		Locker: adapters.NewRedisJobLocker(redisClient),
		HealthChecks: map[string]controller.HealthChecker{
			"database": sqlDB.PingContext,
			"redis": func(ctx context.Context) error {
				return redisClient.Ping(ctx).Err()
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to build injector: %w", err)
	}

	t.injector = injector
	t.server = httptest.NewServer(injector.Router.Setup(cfg.Server.Environment))
	return nil
}

// userID returns a stable id for the scenario user with this email.
func (t *testContext) userID(email string) uuid.UUID {
	id, ok := t.users[email]
	if !ok {
		id = uuid.New()
		t.users[email] = id
	}
	return id
}
