package services_test

import (
	"testing"

	"github.com/localnerve/agenthub/internal/models"
	"github.com/localnerve/agenthub/internal/services"
)

// TestBuildContextOrdering verifies system prompt first, tail in order, user text last
func TestBuildContextOrdering(t *testing.T) {
	tail := []models.Message{
		{Role: models.RoleUser, Content: "first question"},
		{Role: models.RoleAssistant, Content: "first answer"},
	}

	turns := services.BuildContext("You are a helpful assistant", tail, "second question")

	if len(turns) != 4 {
		t.Fatalf("Expected 4 turns, got %d", len(turns))
	}
	if turns[0].Role != models.RoleSystem || turns[0].Content != "You are a helpful assistant" {
		t.Errorf("Expected system prompt first, got %+v", turns[0])
	}
	if turns[1].Content != "first question" || turns[2].Content != "first answer" {
		t.Errorf("Expected tail in order, got %+v and %+v", turns[1], turns[2])
	}
	if turns[3].Role != models.RoleUser || turns[3].Content != "second question" {
		t.Errorf("Expected new user text last, got %+v", turns[3])
	}
}

// TestBuildContextEmptySystemPrompt verifies the system turn is kept even when empty
func TestBuildContextEmptySystemPrompt(t *testing.T) {
	turns := services.BuildContext("", nil, "hello")

	if len(turns) != 2 {
		t.Fatalf("Expected 2 turns, got %d", len(turns))
	}
	if turns[0].Role != models.RoleSystem || turns[0].Content != "" {
		t.Errorf("Expected empty system turn, got %+v", turns[0])
	}
	if turns[1].Role != models.RoleUser || turns[1].Content != "hello" {
		t.Errorf("Expected user turn last, got %+v", turns[1])
	}
}
