package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/night-assist/assist-service/internal/api/http"
	"github.com/night-assist/assist-service/internal/observability"
)

func slowRoute(app *fiber.App, workDuration time.Duration) {
	app.Get("/slow", func(c *fiber.Ctx) error {
		select {
		case <-c.UserContext().Done():
			return c.Status(http.StatusServiceUnavailable).JSON(fiber.Map{"status": "canceled"})
		case <-time.After(workDuration):
			return c.JSON(fiber.Map{"status": "finished"})
		}
	})
}

func TestRequestTimeoutCancelsSlowHandlers(t *testing.T) {
	app := fiber.New()
	httptransport.RegisterMiddlewares(app, zap.NewNop(), observability.NewMetrics(), 50*time.Millisecond)
	slowRoute(app, 300*time.Millisecond)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/slow", nil), -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("a handler running past the request timeout must observe cancellation, got %d", resp.StatusCode)
	}
}

func TestRequestTimeoutLeavesFastHandlersAlone(t *testing.T) {
	app := fiber.New()
	httptransport.RegisterMiddlewares(app, zap.NewNop(), observability.NewMetrics(), 500*time.Millisecond)
	slowRoute(app, 10*time.Millisecond)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/slow", nil), -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200 for a handler finishing inside the timeout, got %d", resp.StatusCode)
	}
}

func TestZeroTimeoutDisablesDeadline(t *testing.T) {
	app := fiber.New()
	httptransport.RegisterMiddlewares(app, zap.NewNop(), observability.NewMetrics(), 0)
	app.Get("/slow", func(c *fiber.Ctx) error {
		if _, ok := c.UserContext().Deadline(); ok {
			return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"status": "unexpected deadline"})
		}
		return c.JSON(fiber.Map{"status": "finished"})
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/slow", nil), -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("a zero timeout must not attach a deadline, got %d", resp.StatusCode)
	}
}
