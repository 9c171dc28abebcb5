package services

import "github.com/localnerve/agenthub/internal/models"

// HistoryLimit is the hard cap on how many logged messages are replayed
// into the completion context. Not token-aware: older messages beyond the
// cap are dropped regardless of content.
const HistoryLimit = 20

// ChatTurn is one role/content pair in the completion context.
type ChatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// BuildContext assembles the ordered message list for one chat turn:
// the project's system prompt first (even when empty), the tail in its
// oldest-first order, and the new user text last.
func BuildContext(systemPrompt string, tail []models.Message, userText string) []ChatTurn {
	turns := make([]ChatTurn, 0, len(tail)+2)
	turns = append(turns, ChatTurn{Role: models.RoleSystem, Content: systemPrompt})
	for _, m := range tail {
		turns = append(turns, ChatTurn{Role: m.Role, Content: m.Content})
	}
	turns = append(turns, ChatTurn{Role: models.RoleUser, Content: userText})
	return turns
}
