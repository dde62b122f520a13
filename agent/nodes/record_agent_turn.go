package agentnode

import (
	"fmt"

	contractx "github.com/mesra-labs/mesra-agent/agent/contract"
	statex "github.com/mesra-labs/mesra-agent/agent/state"
)

// RecordAgentTurn appends the agent's reply to the bounded history so
// follow-up classification can see what was just said.
func RecordAgentTurn(in *GraphState) (*GraphState, error) {
	if in == nil || in.Session == nil {
		return nil, fmt.Errorf("%w: graph session is nil", contractx.ErrValidation)
	}

	in.Session.AppendTurn(statex.Turn{
		Role:      statex.RoleAgent,
		Text:      in.Response.Reply,
		Timestamp: in.Now,
	})
	in.Session.Touch(in.Now)
	return in, nil
}
