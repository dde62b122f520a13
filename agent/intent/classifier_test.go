package intent

import (
	"testing"
	"time"

	contractx "github.com/mesra-labs/mesra-agent/agent/contract"
	statex "github.com/mesra-labs/mesra-agent/agent/state"
)

func TestClassifyCategories(t *testing.T) {
	t.Parallel()

	cases := []struct {
		message string
		want    contractx.Intent
	}{
		{"calculate 15 * 2 + 5", contractx.IntentCalculation},
		{"show me ceramic mugs", contractx.IntentProductSearch},
		{"which outlets are open 24 hours", contractx.IntentOutletSearch},
		{"hello there", contractx.IntentGreeting},
		{"thanks, bye!", contractx.IntentFarewell},
		{"what can you do", contractx.IntentGeneralChat},
	}

	c := NewClassifier(0)
	for _, tc := range cases {
		got := c.Classify(tc.message, nil)
		if got.Intent != tc.want {
			t.Fatalf("Classify(%q) = %s (%.2f), want %s", tc.message, got.Intent, got.Confidence, tc.want)
		}
		if got.Confidence < DefaultThreshold {
			t.Fatalf("Classify(%q) confidence = %.2f, below threshold", tc.message, got.Confidence)
		}
	}
}

func TestClassifyBelowThresholdIsUnknown(t *testing.T) {
	t.Parallel()

	c := NewClassifier(0)
	got := c.Classify("xyzzy blorp fnord", nil)
	if got.Intent != contractx.IntentUnknown {
		t.Fatalf("Classify() = %s, want unknown", got.Intent)
	}
}

func TestClassifyContextBoostsFollowUp(t *testing.T) {
	t.Parallel()

	session := statex.NewConversationSession("s1", time.Now())
	session.AppendTurn(statex.Turn{
		Role:           statex.RoleUser,
		Text:           "show me ceramic mugs",
		Timestamp:      time.Now(),
		DetectedIntent: contractx.IntentProductSearch,
		Confidence:     0.5,
	})

	c := NewClassifier(0)
	withContext := c.Classify("any cheaper cups", session)
	withoutContext := c.Classify("any cheaper cups", nil)

	if withContext.Intent != contractx.IntentProductSearch {
		t.Fatalf("Classify() = %s, want product_search", withContext.Intent)
	}
	if withContext.Confidence <= withoutContext.Confidence {
		t.Fatalf("context confidence %.2f, want above %.2f", withContext.Confidence, withoutContext.Confidence)
	}
}

func TestClassifyNewDomainKeywordBreaksFollowUp(t *testing.T) {
	t.Parallel()

	session := statex.NewConversationSession("s1", time.Now())
	session.AppendTurn(statex.Turn{
		Role:           statex.RoleUser,
		Text:           "show me ceramic mugs",
		Timestamp:      time.Now(),
		DetectedIntent: contractx.IntentProductSearch,
		Confidence:     0.5,
	})

	c := NewClassifier(0)
	got := c.Classify("nearest outlet", session)
	if got.Intent != contractx.IntentOutletSearch {
		t.Fatalf("Classify() = %s, want outlet_search despite prior product turn", got.Intent)
	}
}

func TestClassifyReturnsSlotsEvenWhenUnknown(t *testing.T) {
	t.Parallel()

	c := NewClassifier(0)
	got := c.Classify("hmm klcc maybe", nil)
	if got.Intent != contractx.IntentUnknown {
		t.Fatalf("Classify() = %s, want unknown", got.Intent)
	}
	if got.Slots.Landmark != "KLCC" {
		t.Fatalf("Landmark = %q, want KLCC even for unknown intent", got.Slots.Landmark)
	}
}

func TestClassifyTieBreaksByPriority(t *testing.T) {
	t.Parallel()

	// Zero evidence everywhere: every category ties at 0 and the highest
	// priority category would win, so the threshold must flip it to unknown.
	c := NewClassifier(0)
	got := c.Classify("qqq", nil)
	if got.Intent != contractx.IntentUnknown {
		t.Fatalf("Classify() = %s, want unknown", got.Intent)
	}
	if got.Confidence != 0 {
		t.Fatalf("Confidence = %v, want 0", got.Confidence)
	}
}
