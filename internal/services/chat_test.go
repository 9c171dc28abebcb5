package services_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/agenthub/internal/models"
	"github.com/localnerve/agenthub/internal/services"
	"github.com/localnerve/agenthub/internal/types"
)

func completionServer(t *testing.T, reply string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"model":"m","choices":[{"message":{"role":"assistant","content":"` + reply + `"}}],"usage":{"prompt_tokens":1,"completion_tokens":1,"total_tokens":2}}`))
	}))
}

// TestHandleChatPersistsExchange verifies both messages land in the log in order
func TestHandleChatPersistsExchange(t *testing.T) {
	db := setupTestDB(t)
	project := createTestProject(t, db, "user-1", "test", "be brief")

	server := completionServer(t, "hello back")
	defer server.Close()

	svc := &services.ChatService{
		DB:         db,
		Completion: services.NewCompletionClient(completionConfig(server.URL, 5*time.Second)),
	}

	reply, err := svc.HandleChat(context.Background(), project.ID, "user-1", "hello")
	if err != nil {
		t.Fatalf("Expected chat to succeed, got %v", err)
	}
	if reply != "hello back" {
		t.Errorf("Expected assistant reply, got %q", reply)
	}

	msgs, err := services.AllMessages(db, project.ID)
	if err != nil {
		t.Fatalf("Failed to read log: %v", err)
	}
	if len(msgs) != 2 {
		t.Fatalf("Expected 2 messages, got %d", len(msgs))
	}
	if msgs[0].Role != models.RoleUser || msgs[0].Content != "hello" {
		t.Errorf("Expected user message first, got %+v", msgs[0])
	}
	if msgs[1].Role != models.RoleAssistant || msgs[1].Content != "hello back" {
		t.Errorf("Expected assistant message second, got %+v", msgs[1])
	}
	if len(msgs[1].Meta.String()) == 0 {
		t.Error("Expected usage metadata on the assistant message")
	}
}

// TestHandleChatFailedCompletionPersistsNothing verifies the no-trace rule
func TestHandleChatFailedCompletionPersistsNothing(t *testing.T) {
	db := setupTestDB(t)
	project := createTestProject(t, db, "user-1", "test", "")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	svc := &services.ChatService{
		DB:         db,
		Completion: services.NewCompletionClient(completionConfig(server.URL, 5*time.Second)),
	}

	if _, err := svc.HandleChat(context.Background(), project.ID, "user-1", "hello"); err == nil {
		t.Fatal("Expected chat to fail")
	}

	msgs, err := services.AllMessages(db, project.ID)
	if err != nil {
		t.Fatalf("Failed to read log: %v", err)
	}
	if len(msgs) != 0 {
		t.Errorf("Expected empty log after failed completion, got %d messages", len(msgs))
	}
}

// TestHandleChatForbidden verifies a non-owner cannot chat or mutate the log
func TestHandleChatForbidden(t *testing.T) {
	db := setupTestDB(t)
	project := createTestProject(t, db, "user-1", "test", "")

	server := completionServer(t, "should never be called")
	defer server.Close()

	svc := &services.ChatService{
		DB:         db,
		Completion: services.NewCompletionClient(completionConfig(server.URL, 5*time.Second)),
	}

	_, err := svc.HandleChat(context.Background(), project.ID, "user-2", "hello")
	ce, ok := types.AsCustomError(err)
	if !ok || ce.Code != fiber.StatusForbidden {
		t.Fatalf("Expected 403, got %v", err)
	}

	msgs, _ := services.AllMessages(db, project.ID)
	if len(msgs) != 0 {
		t.Errorf("Expected no messages for forbidden caller, got %d", len(msgs))
	}
}
