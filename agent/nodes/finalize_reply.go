package agentnode

import (
	"fmt"
	"strings"

	contractx "github.com/mesra-labs/mesra-agent/agent/contract"
)

func FinalizeReply(in *GraphState) (GraphOutput, error) {
	if in == nil {
		return GraphOutput{}, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}

	if strings.TrimSpace(in.Response.Reply) == "" {
		return GraphOutput{}, fmt.Errorf("%w: planner returned empty reply", contractx.ErrValidation)
	}
	return GraphOutput{Response: in.Response}, nil
}
