package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"zezim/internal/config"
	"zezim/internal/llm"
	"zezim/internal/middleware"
	"zezim/internal/services"
	"zezim/pkg/auth"
)

type stubProvider struct {
	reply string
	err   error
}

func (p *stubProvider) Complete(_ context.Context, _ string, _ []llm.Message) (string, error) {
	return p.reply, p.err
}

func setupTestApp(t *testing.T, provider llm.Provider) (*fiber.App, *auth.AdminAuth, *services.SettingsService) {
	t.Helper()

	adminAuth, err := auth.NewAdminAuth("test-secret", "chatbot", "@chatbot0123", time.Hour)
	if err != nil {
		t.Fatalf("Failed to create admin auth: %v", err)
	}

	documents := services.NewDocumentStore()
	settings := services.NewSettingsService(documents)
	conversations := services.NewConversationService(settings, time.Hour)
	cfg := &config.Config{Model: "test-model", CompletionTimeout: time.Second, AdminSessionExpiry: time.Hour}
	chatService := services.NewChatService(provider, conversations, cfg)

	app := fiber.New()
	app.Use(middleware.Session())
	app.Use(middleware.AdminContext(adminAuth))

	homeHandler := NewHomeHandler(settings)
	authHandler := NewAuthHandler(adminAuth, conversations, cfg.AdminSessionExpiry)
	adminHandler := NewAdminHandler(settings)
	chatHandler := NewChatHandler(chatService, conversations)

	app.Get("/", homeHandler.GetHome)
	app.Get("/health", Health)
	app.Post("/login", authHandler.Login)
	app.Get("/logout", authHandler.Logout)
	app.Post("/config", middleware.RequireAdmin(), adminHandler.UpdateConfig)
	app.Delete("/api/documents/:id", middleware.RequireAdmin(), adminHandler.RemoveDocument)
	app.Post("/chat", chatHandler.SendMessage)
	app.Post("/reset_chat", chatHandler.ResetChat)

	return app, adminAuth, settings
}

func decodeBody(t *testing.T, body io.Reader) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	if err := json.NewDecoder(body).Decode(&out); err != nil {
		t.Fatalf("Failed to decode response body: %v", err)
	}
	return out
}

func adminCookie(t *testing.T, adminAuth *auth.AdminAuth) string {
	t.Helper()
	token, err := adminAuth.GenerateToken()
	if err != nil {
		t.Fatalf("Failed to generate admin token: %v", err)
	}
	return middleware.AdminCookie + "=" + token
}

func TestChat_ReturnsReply(t *testing.T) {
	app, _, _ := setupTestApp(t, &stubProvider{reply: "Olá!"})

	req := httptest.NewRequest("POST", "/chat", strings.NewReader(`{"message":"Oi"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}

	body := decodeBody(t, resp.Body)
	if body["reply"] != "Olá!" {
		t.Errorf("Unexpected reply: %v", body["reply"])
	}
}

func TestChat_EmptyMessage(t *testing.T) {
	app, _, _ := setupTestApp(t, &stubProvider{reply: "unused"})

	req := httptest.NewRequest("POST", "/chat", strings.NewReader(`{"message":"   "}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", resp.StatusCode)
	}

	body := decodeBody(t, resp.Body)
	if body["error"] != "Mensagem vazia" {
		t.Errorf("Expected error %q, got %v", "Mensagem vazia", body["error"])
	}
}

func TestChat_ProviderFailure(t *testing.T) {
	app, _, _ := setupTestApp(t, &stubProvider{err: errors.New("upstream timeout")})

	req := httptest.NewRequest("POST", "/chat", strings.NewReader(`{"message":"Oi"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadGateway {
		t.Fatalf("Expected 502, got %d", resp.StatusCode)
	}

	body := decodeBody(t, resp.Body)
	if msg, _ := body["error"].(string); !strings.Contains(msg, "Erro ao chamar o modelo") {
		t.Errorf("Unexpected error message: %v", body["error"])
	}
}

func TestResetChat(t *testing.T) {
	app, _, _ := setupTestApp(t, &stubProvider{reply: "ok"})

	resp, err := app.Test(httptest.NewRequest("POST", "/reset_chat", nil), -1)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}

	body := decodeBody(t, resp.Body)
	if body["status"] != "ok" {
		t.Errorf("Expected status ok, got %v", body["status"])
	}
}

func TestHome_Unprivileged(t *testing.T) {
	app, _, settings := setupTestApp(t, &stubProvider{reply: "ok"})

	// Admin configuration must not leak to unprivileged sessions
	settings.Update("Persona secreta do admin.", "context")
	settings.AddDocument("policy.txt", "Refunds within 30 days.")

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil), 5000)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}

	body := decodeBody(t, resp.Body)
	if body["logged_in"] != false {
		t.Error("Expected logged_in=false")
	}
	if persona, _ := body["persona_text"].(string); strings.Contains(persona, "secreta") {
		t.Error("Admin persona leaked to unprivileged home view")
	}
	if body["has_context"] != false {
		t.Error("Expected has_context=false for unprivileged session")
	}
}

func TestHome_Privileged(t *testing.T) {
	app, adminAuth, settings := setupTestApp(t, &stubProvider{reply: "ok"})
	settings.Update("Persona do admin.", "both")

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Cookie", adminCookie(t, adminAuth))

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}

	body := decodeBody(t, resp.Body)
	if body["logged_in"] != true {
		t.Error("Expected logged_in=true")
	}
	if body["persona_text"] != "Persona do admin." {
		t.Errorf("Expected configured persona, got %v", body["persona_text"])
	}
	if body["mode"] != "both" {
		t.Errorf("Expected mode both, got %v", body["mode"])
	}
}

func TestLogin(t *testing.T) {
	app, _, _ := setupTestApp(t, &stubProvider{reply: "ok"})

	// Wrong credentials
	req := httptest.NewRequest("POST", "/login", strings.NewReader(`{"username":"chatbot","password":"nope"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("Expected 401 for bad credentials, got %d", resp.StatusCode)
	}
	body := decodeBody(t, resp.Body)
	if body["error"] != "Credenciais inválidas" {
		t.Errorf("Unexpected error message: %v", body["error"])
	}

	// Correct credentials set the admin cookie
	req = httptest.NewRequest("POST", "/login", strings.NewReader(`{"username":"chatbot","password":"@chatbot0123"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req, -1)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("Expected 200 for valid credentials, got %d", resp.StatusCode)
	}

	foundCookie := false
	for _, c := range resp.Cookies() {
		if c.Name == middleware.AdminCookie && c.Value != "" {
			foundCookie = true
		}
	}
	if !foundCookie {
		t.Error("Expected admin cookie on successful login")
	}
}

func TestConfig_RequiresAdmin(t *testing.T) {
	app, _, _ := setupTestApp(t, &stubProvider{reply: "ok"})

	resp, err := app.Test(httptest.NewRequest("POST", "/config", nil), 5000)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("Expected 401 without admin token, got %d", resp.StatusCode)
	}
}

func TestConfig_UploadWarnsAndContinues(t *testing.T) {
	app, adminAuth, settings := setupTestApp(t, &stubProvider{reply: "ok"})

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	if err := form.WriteField("persona_text", "Você é um atendente."); err != nil {
		t.Fatalf("Failed to write form field: %v", err)
	}
	if err := form.WriteField("mode", "context"); err != nil {
		t.Fatalf("Failed to write form field: %v", err)
	}
	for name, content := range map[string]string{
		"bad.exe":  "binary junk",
		"good.txt": "Refunds within 30 days.",
	} {
		part, err := form.CreateFormFile("context_files", name)
		if err != nil {
			t.Fatalf("Failed to create form file: %v", err)
		}
		if _, err := part.Write([]byte(content)); err != nil {
			t.Fatalf("Failed to write form file: %v", err)
		}
	}
	form.Close()

	req := httptest.NewRequest("POST", "/config", &buf)
	req.Header.Set("Content-Type", form.FormDataContentType())
	req.Header.Set("Cookie", adminCookie(t, adminAuth))

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}

	// The rejected file produces exactly one warning; the batch continues
	body := decodeBody(t, resp.Body)
	warnings, _ := body["warnings"].([]interface{})
	if len(warnings) != 1 {
		t.Fatalf("Expected exactly one warning, got %v", body["warnings"])
	}
	if msg, _ := warnings[0].(string); !strings.Contains(msg, "bad.exe") || !strings.Contains(msg, "Formato inválido") {
		t.Errorf("Unexpected warning message: %v", warnings[0])
	}

	snap := settings.Snapshot()
	if snap.Persona != "Você é um atendente." {
		t.Errorf("Expected persona applied, got %q", snap.Persona)
	}
	if string(snap.Mode) != "context" {
		t.Errorf("Expected mode context, got %s", snap.Mode)
	}
	if len(snap.Documents) != 1 || snap.Documents[0].Name != "good.txt" {
		t.Fatalf("Expected only the valid file stored, got %+v", snap.Documents)
	}
	if snap.Documents[0].Text != "Refunds within 30 days." {
		t.Errorf("Unexpected stored text: %q", snap.Documents[0].Text)
	}
}

func TestRemoveDocument(t *testing.T) {
	app, adminAuth, settings := setupTestApp(t, &stubProvider{reply: "ok"})
	id := settings.AddDocument("policy.txt", "Refunds within 30 days.")

	// Unknown id yields a not-found notice
	req := httptest.NewRequest("DELETE", "/api/documents/no-such-id", nil)
	req.Header.Set("Cookie", adminCookie(t, adminAuth))
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusNotFound {
		t.Errorf("Expected 404 for unknown document, got %d", resp.StatusCode)
	}

	// Existing id is removed
	req = httptest.NewRequest("DELETE", "/api/documents/"+id, nil)
	req.Header.Set("Cookie", adminCookie(t, adminAuth))
	resp, err = app.Test(req, -1)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Errorf("Expected 200 for existing document, got %d", resp.StatusCode)
	}

	if len(settings.Snapshot().Documents) != 0 {
		t.Error("Expected document removed from the store")
	}
}

func TestHealth(t *testing.T) {
	app, _, _ := setupTestApp(t, &stubProvider{reply: "ok"})

	resp, err := app.Test(httptest.NewRequest("GET", "/health", nil), 5000)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}

	body := decodeBody(t, resp.Body)
	if body["status"] != "healthy" {
		t.Errorf("Expected healthy status, got %v", body["status"])
	}
}
