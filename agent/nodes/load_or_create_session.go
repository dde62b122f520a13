package agentnode

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	contractx "github.com/mesra-labs/mesra-agent/agent/contract"
	statex "github.com/mesra-labs/mesra-agent/agent/state"
)

// LoadOrCreateSession resolves the session record for this turn. A missing
// session starts a fresh one; a corrupted record is discarded and replaced so
// one bad payload cannot wedge the conversation.
func LoadOrCreateSession(ctx context.Context, in *GraphState, store statex.Store) (*GraphState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}

	s, err := store.Load(ctx, in.SessionID)
	switch {
	case err == nil:
		in.Session = s
	case errors.Is(err, statex.ErrSessionNotFound):
		in.Session = statex.NewConversationSession(in.SessionID, in.Now)
	case errors.Is(err, contractx.ErrSessionCorrupted):
		log.Warn().Err(err).Str("session_id", in.SessionID).Msg("corrupted session replaced")
		in.Session = statex.NewConversationSession(in.SessionID, in.Now)
	default:
		return nil, err
	}
	return in, nil
}
