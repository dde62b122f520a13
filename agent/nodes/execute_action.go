package agentnode

import (
	"context"
	"fmt"

	contractx "github.com/mesra-labs/mesra-agent/agent/contract"
	plannerx "github.com/mesra-labs/mesra-agent/agent/planner"
	toolx "github.com/mesra-labs/mesra-agent/agent/tool"
)

// ExecuteAction runs the decided action through the tool executor and applies
// the resulting status transition. Tool failures surface as degraded replies,
// never as node errors.
func ExecuteAction(
	ctx context.Context,
	in *GraphState,
	planner *plannerx.Planner,
	exec toolx.Executor,
) (*GraphState, error) {
	if in == nil || in.Session == nil {
		return nil, fmt.Errorf("%w: graph session is nil", contractx.ErrValidation)
	}

	in.Response = planner.Respond(ctx, in.Text, in.Action, in.Classification, in.Session.Slots, exec)
	in.Session.LastAction = in.Response.Action

	switch in.Response.Action {
	case contractx.ActionAskClarification:
		in.Session.AwaitClarification(in.Now)
	case contractx.ActionEndConversation:
		in.Session.End(in.Now)
	}
	return in, nil
}
