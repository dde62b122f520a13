package agentnode

import (
	"fmt"

	contractx "github.com/mesra-labs/mesra-agent/agent/contract"
	intentx "github.com/mesra-labs/mesra-agent/agent/intent"
)

// ClassifyIntent scores the message against the loaded session. The session
// is read-only here; MergeTurn applies the result.
func ClassifyIntent(in *GraphState, classifier *intentx.Classifier) (*GraphState, error) {
	if in == nil || in.Session == nil {
		return nil, fmt.Errorf("%w: graph session is nil", contractx.ErrValidation)
	}

	in.Classification = classifier.Classify(in.Text, in.Session)
	return in, nil
}
