package agentnode

import (
	"errors"
	"strings"
	"time"

	contractx "github.com/mesra-labs/mesra-agent/agent/contract"
	statex "github.com/mesra-labs/mesra-agent/agent/state"
)

var (
	ErrInvalidMessage = errors.New("message is empty")
	ErrInvalidSession = errors.New("session id is empty")
)

type GraphInput struct {
	SessionID string
	Text      string
}

type GraphOutput struct {
	Response contractx.AgentResponse
}

// GraphState is the value threaded through the handle_message pipeline.
// Each node reads what earlier nodes produced and fills in its own part.
type GraphState struct {
	SessionID string
	Text      string
	Now       time.Time

	Session        *statex.ConversationSession
	Classification contractx.Classification
	Action         contractx.Action
	Response       contractx.AgentResponse
}

func ValidateRequest(in GraphInput, nowFn func() time.Time) (*GraphState, error) {
	sessionID := strings.TrimSpace(in.SessionID)
	if sessionID == "" {
		return nil, ErrInvalidSession
	}

	text := strings.TrimSpace(in.Text)
	if text == "" {
		return nil, ErrInvalidMessage
	}

	return &GraphState{
		SessionID: sessionID,
		Text:      text,
		Now:       nowFn().UTC(),
	}, nil
}
