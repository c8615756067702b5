package routes

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/rollcall/rollcall/internal/config"
	"github.com/rollcall/rollcall/internal/logging"
)

func devConfig() config.Config {
	return config.Config{
		AppName:      "Rollcall",
		AppEnv:       "development",
		Port:         "8080",
		StoreTimeout: time.Second,
		CacheTTL:     time.Minute,
	}
}

func TestSetupRejectsMissingStoreOutsideDev(t *testing.T) {
	cfg := devConfig()
	cfg.AppEnv = "production"

	app := fiber.New()
	if err := Setup(app, Deps{Cfg: cfg, Logger: logging.Discard()}); err == nil {
		t.Fatal("expected setup to fail without a database in production")
	}
}

func TestRegistrationFlowEndToEnd(t *testing.T) {
	app := fiber.New()
	if err := Setup(app, Deps{Cfg: devConfig(), Logger: logging.Discard()}); err != nil {
		t.Fatalf("setup: %v", err)
	}

	do := func(method, path, body string) (int, map[string]any) {
		t.Helper()
		var reader io.Reader
		if body != "" {
			reader = strings.NewReader(body)
		}
		req := httptest.NewRequest(method, path, reader)
		if body != "" {
			req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		}
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("app.Test %s %s: %v", method, path, err)
		}
		defer resp.Body.Close()
		payload, _ := io.ReadAll(resp.Body)
		var decoded map[string]any
		if len(payload) > 0 {
			if err := json.Unmarshal(payload, &decoded); err != nil {
				t.Fatalf("decode %q: %v", payload, err)
			}
		}
		return resp.StatusCode, decoded
	}

	status, _ := do(fiber.MethodGet, "/healthz", "")
	if status != fiber.StatusOK {
		t.Fatalf("healthz: expected 200, got %d", status)
	}

	status, body := do(fiber.MethodPost, "/api/v1/register",
		`{"name":"Ada","age":30,"email":"ada@x.com","phone":"+1234567890","dob":"1990-05-14"}`)
	if status != fiber.StatusCreated {
		t.Fatalf("register: expected 201, got %d (%v)", status, body)
	}

	status, body = do(fiber.MethodGet, "/api/v1/users", "")
	if status != fiber.StatusOK {
		t.Fatalf("list: expected 200, got %d", status)
	}
	users := body["users"].([]any)
	if len(users) != 1 {
		t.Fatalf("expected 1 user, got %d", len(users))
	}

	id := int(users[0].(map[string]any)["id"].(float64))
	status, _ = do(fiber.MethodDelete, "/api/v1/users/"+strconv.Itoa(id), "")
	if status != fiber.StatusOK {
		t.Fatalf("delete: expected 200, got %d", status)
	}

	_, body = do(fiber.MethodGet, "/api/v1/users", "")
	if users := body["users"].([]any); len(users) != 0 {
		t.Fatalf("expected empty listing after delete, got %v", users)
	}
}
