// chat.go
//
// Backend for the agenthub multi-tenant chat-agent platform
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of agenthub.
// agenthub is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// agenthub is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with agenthub.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package services

import (
	"context"
	"log"

	"github.com/localnerve/agenthub/internal/models"
	"gorm.io/gorm"
)

// ChatService runs one chat exchange: ownership check, context assembly,
// completion, persistence of both new messages. Strictly sequential; any
// failure aborts the remaining steps.
type ChatService struct {
	DB         *gorm.DB
	Completion *CompletionClient
}

// completionMeta is recorded on assistant messages for usage attribution.
type completionMeta struct {
	Model string           `json:"model,omitempty"`
	Usage *CompletionUsage `json:"usage,omitempty"`
}

// HandleChat performs a full chat turn for an owned project and returns the
// assistant's text.
//
// Nothing is persisted until the completion succeeds: a failed LLM call
// leaves no trace in the log. On success the user message is appended
// before the assistant message, so readers relying on tail ordering see
// the exchange in causal order. The two appends are independent writes,
// not a transaction; a crash between them is a known, accepted gap.
func (s *ChatService) HandleChat(ctx context.Context, projectID, userID, userText string) (string, error) {
	project, err := ProjectOwned(s.DB, projectID, userID)
	if err != nil {
		return "", err
	}

	tail, err := MessageTail(s.DB, projectID, HistoryLimit)
	if err != nil {
		return "", err
	}

	turns := BuildContext(project.SystemPrompt, tail, userText)

	log.Printf("Calling LLM for project %s (%d context turns)", projectID, len(turns))
	result, err := s.Completion.Complete(ctx, turns)
	if err != nil {
		return "", err
	}

	if _, err := AppendMessage(s.DB, projectID, models.RoleUser, userText, models.JSON{}); err != nil {
		return "", err
	}

	meta, metaErr := models.JSONFrom(completionMeta{Model: result.Model, Usage: result.Usage})
	if metaErr != nil {
		meta = models.JSON{}
	}
	if _, err := AppendMessage(s.DB, projectID, models.RoleAssistant, result.Content, meta); err != nil {
		return "", err
	}

	log.Printf("Chat completed for project %s", projectID)
	return result.Content, nil
}
