package planner

import (
	"context"
	"errors"
	"strings"
	"testing"

	contractx "github.com/mesra-labs/mesra-agent/agent/contract"
)

func TestDecideTable(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		cls   contractx.Classification
		slots contractx.Slots
		want  contractx.Action
	}{
		{
			name: "unknown intent asks for clarification",
			cls:  contractx.Classification{Intent: contractx.IntentUnknown, Confidence: 0.1},
			want: contractx.ActionAskClarification,
		},
		{
			name: "low confidence asks for clarification even with a known intent",
			cls:  contractx.Classification{Intent: contractx.IntentProductSearch, Confidence: 0.2},
			want: contractx.ActionAskClarification,
		},
		{
			name: "calculation without expression asks for clarification",
			cls:  contractx.Classification{Intent: contractx.IntentCalculation, Confidence: 0.9},
			want: contractx.ActionAskClarification,
		},
		{
			name:  "calculation with expression invokes the calculator",
			cls:   contractx.Classification{Intent: contractx.IntentCalculation, Confidence: 0.9},
			slots: contractx.Slots{Expression: "2 + 3"},
			want:  contractx.ActionInvokeCalculator,
		},
		{
			name: "farewell ends the conversation",
			cls:  contractx.Classification{Intent: contractx.IntentFarewell, Confidence: 0.6},
			want: contractx.ActionEndConversation,
		},
		{
			name: "greeting answers directly",
			cls:  contractx.Classification{Intent: contractx.IntentGreeting, Confidence: 0.5},
			want: contractx.ActionAnswerDirect,
		},
		{
			name: "product search invokes search without requiring slots",
			cls:  contractx.Classification{Intent: contractx.IntentProductSearch, Confidence: 0.5},
			want: contractx.ActionInvokeSearch,
		},
		{
			name: "outlet search invokes search",
			cls:  contractx.Classification{Intent: contractx.IntentOutletSearch, Confidence: 0.8},
			want: contractx.ActionInvokeSearch,
		},
	}

	p := New()
	for _, tc := range cases {
		if got := p.Decide(tc.cls, tc.slots); got != tc.want {
			t.Fatalf("%s: Decide() = %s, want %s", tc.name, got, tc.want)
		}
	}
}

func stubExec(result contractx.ToolResult, err error) func(context.Context, string, map[string]any) (contractx.ToolResult, error) {
	return func(context.Context, string, map[string]any) (contractx.ToolResult, error) {
		return result, err
	}
}

func TestRespondCalculation(t *testing.T) {
	t.Parallel()

	p := New()
	cls := contractx.Classification{Intent: contractx.IntentCalculation, Confidence: 0.9}
	calc := contractx.CalcResult{Expression: "15 * 2 + 5", Value: 35, Steps: []string{"15 * 2 = 30", "30 + 5 = 35"}}

	resp := p.Respond(context.Background(), "15 * 2 + 5", contractx.ActionInvokeCalculator, cls,
		contractx.Slots{Expression: "15 * 2 + 5"},
		stubExec(contractx.ToolResult{Tool: "math.evaluate", Result: calc}, nil))

	if resp.Calculation == nil || resp.Calculation.Value != 35 {
		t.Fatalf("Calculation = %+v, want value 35", resp.Calculation)
	}
	if !strings.Contains(resp.Reply, "35.00") {
		t.Fatalf("Reply = %q, want formatted value", resp.Reply)
	}
	if !strings.Contains(resp.Reply, "Steps:") {
		t.Fatalf("Reply = %q, want step trace", resp.Reply)
	}
}

func TestRespondCalculationToolErrorBecomesReply(t *testing.T) {
	t.Parallel()

	p := New()
	cls := contractx.Classification{Intent: contractx.IntentCalculation, Confidence: 0.9}

	resp := p.Respond(context.Background(), "banana", contractx.ActionInvokeCalculator, cls,
		contractx.Slots{Expression: "banana"},
		stubExec(contractx.ToolResult{Tool: "math.evaluate", Error: "I can only calculate plain arithmetic."}, nil))

	if resp.Reply != "I can only calculate plain arithmetic." {
		t.Fatalf("Reply = %q, want the tool's user-safe message", resp.Reply)
	}
	if resp.Calculation != nil {
		t.Fatalf("Calculation = %+v, want nil on failure", resp.Calculation)
	}
}

func TestRespondSearchFormatsAndCaps(t *testing.T) {
	t.Parallel()

	results := make([]contractx.ScoredResult, 0, 7)
	for _, name := range []string{"A", "B", "C", "D", "E", "F", "G"} {
		results = append(results, contractx.ScoredResult{
			Entity: contractx.Entity{Kind: contractx.EntityProduct, Name: name, Price: 10},
			Score:  0.5,
		})
	}

	p := New()
	cls := contractx.Classification{Intent: contractx.IntentProductSearch, Confidence: 0.6}
	resp := p.Respond(context.Background(), "show me products", contractx.ActionInvokeSearch, cls,
		contractx.Slots{},
		stubExec(contractx.ToolResult{Tool: "catalog.search", Result: results}, nil))

	if len(resp.Matches) != 7 {
		t.Fatalf("Matches = %d, want all 7 retained on the response", len(resp.Matches))
	}
	if got := strings.Count(resp.Reply, "\n- "); got != maxListedResults {
		t.Fatalf("listed %d bullets, want %d", got, maxListedResults)
	}
	if !strings.Contains(resp.Reply, "...and 2 more.") {
		t.Fatalf("Reply = %q, want overflow note", resp.Reply)
	}
}

func TestRespondSearchEmptyResultsStaysGraceful(t *testing.T) {
	t.Parallel()

	p := New()
	cls := contractx.Classification{Intent: contractx.IntentOutletSearch, Confidence: 0.6}
	resp := p.Respond(context.Background(), "outlets on the moon", contractx.ActionInvokeSearch, cls,
		contractx.Slots{},
		stubExec(contractx.ToolResult{Tool: "catalog.search", Result: []contractx.ScoredResult{}}, nil))

	if strings.TrimSpace(resp.Reply) == "" {
		t.Fatal("Reply is empty, want the no-results text")
	}
	if len(resp.Matches) != 0 {
		t.Fatalf("Matches = %d, want 0", len(resp.Matches))
	}
}

func TestRespondExecutorFailureStaysGraceful(t *testing.T) {
	t.Parallel()

	p := New()
	for _, action := range []contractx.Action{
		contractx.ActionInvokeCalculator,
		contractx.ActionInvokeSearch,
	} {
		resp := p.Respond(context.Background(), "anything", action,
			contractx.Classification{Intent: contractx.IntentProductSearch, Confidence: 0.6},
			contractx.Slots{Expression: "2+2"},
			stubExec(contractx.ToolResult{}, errors.New("backend down")))
		if strings.TrimSpace(resp.Reply) == "" {
			t.Fatalf("action %s: Reply is empty, want graceful degradation", action)
		}
	}
}

func TestRespondNeverReturnsEmptyReply(t *testing.T) {
	t.Parallel()

	p := New()
	actions := []contractx.Action{
		contractx.ActionAnswerDirect,
		contractx.ActionAskClarification,
		contractx.ActionEndConversation,
	}
	for _, action := range actions {
		resp := p.Respond(context.Background(), "hi", action,
			contractx.Classification{Intent: contractx.IntentGreeting, Confidence: 0.5},
			contractx.Slots{}, nil)
		if strings.TrimSpace(resp.Reply) == "" {
			t.Fatalf("action %s produced empty reply", action)
		}
	}
}
