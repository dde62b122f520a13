package agentnode

import (
	"fmt"

	contractx "github.com/mesra-labs/mesra-agent/agent/contract"
	plannerx "github.com/mesra-labs/mesra-agent/agent/planner"
)

// PlanResponse resolves the decision table against the merged session slots,
// so that slots carried over from earlier turns count toward requirements.
func PlanResponse(in *GraphState, planner *plannerx.Planner) (*GraphState, error) {
	if in == nil || in.Session == nil {
		return nil, fmt.Errorf("%w: graph session is nil", contractx.ErrValidation)
	}

	in.Action = planner.Decide(in.Classification, in.Session.Slots)
	return in, nil
}
