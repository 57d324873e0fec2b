package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
)

func TestCORS(t *testing.T) {
	tests := []struct {
		name    string
		origins []string
		origin  string
		want    string
	}{
		{"any origin", nil, "http://planner.local", "*"},
		{"allowed origin", []string{"http://planner.local"}, "http://planner.local", "http://planner.local"},
		{"foreign origin", []string{"http://planner.local"}, "http://evil.local", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Use(CORS(tt.origins))
			app.Get("/ping", func(c fiber.Ctx) error { return c.SendString("pong") })

			req := httptest.NewRequest(http.MethodGet, "/ping", nil)
			req.Header.Set("Origin", tt.origin)
			resp, err := app.Test(req)
			if err != nil {
				t.Fatal(err)
			}
			if got := resp.Header.Get("Access-Control-Allow-Origin"); got != tt.want {
				t.Fatalf("Access-Control-Allow-Origin = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLoggerPassesThrough(t *testing.T) {
	app := fiber.New()
	app.Use(Logger())
	app.Get("/health/live", func(c fiber.Ctx) error { return c.SendStatus(http.StatusOK) })
	app.Get("/api", func(c fiber.Ctx) error { return c.SendStatus(http.StatusAccepted) })

	for path, want := range map[string]int{"/health/live": http.StatusOK, "/api": http.StatusAccepted} {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil))
		if err != nil {
			t.Fatal(err)
		}
		if resp.StatusCode != want {
			t.Fatalf("%s: got %d, want %d", path, resp.StatusCode, want)
		}
	}
}
