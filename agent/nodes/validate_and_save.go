package agentnode

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	contractx "github.com/mesra-labs/mesra-agent/agent/contract"
	statex "github.com/mesra-labs/mesra-agent/agent/state"
)

// ValidateAndSaveSession persists the updated session. A save failure is
// logged and swallowed: the user still gets the reply, the next turn simply
// starts from the last persisted state.
func ValidateAndSaveSession(ctx context.Context, in *GraphState, store statex.Store) (*GraphState, error) {
	if in == nil || in.Session == nil {
		return nil, fmt.Errorf("%w: graph session is nil", contractx.ErrValidation)
	}

	if err := in.Session.Validate(); err != nil {
		return nil, fmt.Errorf("session validation failed: %w", err)
	}
	if err := store.Save(ctx, in.Session); err != nil {
		log.Warn().Err(err).Str("session_id", in.SessionID).Msg("session save failed")
	}
	return in, nil
}
