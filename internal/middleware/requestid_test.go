package middleware_test

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/agenthub/internal/middleware"
)

// TestRequestIDGenerated verifies a fresh id is set when none is supplied
func TestRequestIDGenerated(t *testing.T) {
	app := fiber.New()
	app.Use(middleware.RequestID())
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.Header.Get("X-Request-Id") == "" {
		t.Error("Expected a generated request id header")
	}
}

// TestRequestIDHonored verifies a caller-supplied id is echoed back
func TestRequestIDHonored(t *testing.T) {
	app := fiber.New()
	app.Use(middleware.RequestID())
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-Request-Id", "caller-id-1")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if got := resp.Header.Get("X-Request-Id"); got != "caller-id-1" {
		t.Errorf("Expected caller id echoed, got %q", got)
	}
}
