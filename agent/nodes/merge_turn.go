package agentnode

import (
	"fmt"

	contractx "github.com/mesra-labs/mesra-agent/agent/contract"
	statex "github.com/mesra-labs/mesra-agent/agent/state"
)

// MergeTurn records the user turn and folds the extracted slots into the
// session under the "new value wins" rule.
func MergeTurn(in *GraphState) (*GraphState, error) {
	if in == nil || in.Session == nil {
		return nil, fmt.Errorf("%w: graph session is nil", contractx.ErrValidation)
	}

	turn := statex.Turn{
		Role:           statex.RoleUser,
		Text:           in.Text,
		Timestamp:      in.Now,
		DetectedIntent: in.Classification.Intent,
		Confidence:     in.Classification.Confidence,
	}
	in.Session = statex.Update(in.Session, turn, in.Classification.Slots)
	return in, nil
}
