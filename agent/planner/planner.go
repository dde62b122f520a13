package planner

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	contractx "github.com/mesra-labs/mesra-agent/agent/contract"
	replyx "github.com/mesra-labs/mesra-agent/agent/reply"
	toolx "github.com/mesra-labs/mesra-agent/agent/tool"
)

// Confidence buckets for the decision table.
type Bucket string

const (
	BucketLow    Bucket = "low"    // < 0.3
	BucketMedium Bucket = "medium" // 0.3 - 0.7
	BucketHigh   Bucket = "high"   // > 0.7
)

func bucketFor(confidence float64) Bucket {
	switch {
	case confidence < 0.3:
		return BucketLow
	case confidence > 0.7:
		return BucketHigh
	default:
		return BucketMedium
	}
}

const maxListedResults = 5

// decisionRule is one row of the (intent, bucket, missing-slots) table.
// Zero-valued fields match anything; rows are evaluated in order and the
// first match wins.
type decisionRule struct {
	intent      contractx.Intent
	buckets     []Bucket
	needMissing bool
	action      contractx.Action
}

var decisionTable = []decisionRule{
	{intent: contractx.IntentUnknown, action: contractx.ActionAskClarification},
	{buckets: []Bucket{BucketLow}, action: contractx.ActionAskClarification},
	{needMissing: true, action: contractx.ActionAskClarification},
	{intent: contractx.IntentFarewell, action: contractx.ActionEndConversation},
	{intent: contractx.IntentGreeting, action: contractx.ActionAnswerDirect},
	{intent: contractx.IntentGeneralChat, action: contractx.ActionAnswerDirect},
	{intent: contractx.IntentCalculation, action: contractx.ActionInvokeCalculator},
	{intent: contractx.IntentProductSearch, action: contractx.ActionInvokeSearch},
	{intent: contractx.IntentOutletSearch, action: contractx.ActionInvokeSearch},
	{action: contractx.ActionAskClarification},
}

// requiredSlots declares the mandatory slot per intent. Searches require
// none: missing slots just widen the search.
var requiredSlots = map[contractx.Intent][]string{
	contractx.IntentCalculation: {"expression"},
}

// Planner is the state-free decision layer: it picks an action for a
// classified turn and renders handler output into an AgentResponse.
type Planner struct {
	replies replyx.Set
}

func New() *Planner {
	return &Planner{replies: replyx.LoadSet()}
}

// Decide resolves the decision table for one classified turn. slots are the
// session slots after merging the current extraction.
func (p *Planner) Decide(cls contractx.Classification, slots contractx.Slots) contractx.Action {
	bucket := bucketFor(cls.Confidence)
	missing := len(missingSlots(cls.Intent, slots)) > 0

	for _, rule := range decisionTable {
		if rule.intent != "" && rule.intent != cls.Intent {
			continue
		}
		if len(rule.buckets) > 0 && !containsBucket(rule.buckets, bucket) {
			continue
		}
		if rule.needMissing && !missing {
			continue
		}
		return rule.action
	}
	return contractx.ActionAskClarification
}

func missingSlots(intent contractx.Intent, slots contractx.Slots) []string {
	var missing []string
	for _, name := range requiredSlots[intent] {
		if name == "expression" && strings.TrimSpace(slots.Expression) == "" {
			missing = append(missing, name)
		}
	}
	return missing
}

func containsBucket(buckets []Bucket, b Bucket) bool {
	for _, candidate := range buckets {
		if candidate == b {
			return true
		}
	}
	return false
}

// Respond executes the decided action and assembles the reply. It never
// returns an error: every handler failure, including a panicking or failing
// executor, degrades to a coherent user-facing message.
func (p *Planner) Respond(
	ctx context.Context,
	text string,
	action contractx.Action,
	cls contractx.Classification,
	slots contractx.Slots,
	exec toolx.Executor,
) contractx.AgentResponse {
	resp := contractx.AgentResponse{
		Intent:     cls.Intent,
		Confidence: cls.Confidence,
		Action:     action,
	}

	switch action {
	case contractx.ActionAnswerDirect:
		if cls.Intent == contractx.IntentGreeting {
			resp.Reply = p.replies.Greeting
		} else {
			resp.Reply = p.replies.Chat
		}
		resp.Followups = []string{"Show me products", "Outlets near KLCC"}

	case contractx.ActionAskClarification:
		resp.Reply = p.replies.Clarify
		resp.Followups = []string{"Show me products", "Outlets in Kuala Lumpur", "Calculate 6% SST on RM55"}

	case contractx.ActionEndConversation:
		resp.Reply = p.replies.Farewell

	case contractx.ActionInvokeCalculator:
		p.respondCalculation(ctx, slots.Expression, exec, &resp)

	case contractx.ActionInvokeSearch:
		p.respondSearch(ctx, text, cls.Intent, slots, exec, &resp)

	default:
		resp.Action = contractx.ActionAskClarification
		resp.Reply = p.replies.Clarify
	}

	if strings.TrimSpace(resp.Reply) == "" {
		resp.Reply = p.replies.Clarify
	}
	return resp
}

func (p *Planner) respondCalculation(
	ctx context.Context,
	expression string,
	exec toolx.Executor,
	resp *contractx.AgentResponse,
) {
	out, err := exec(ctx, toolx.ToolMathEvaluate, map[string]any{"expression": expression})
	if err != nil {
		log.Warn().Err(err).Msg("math tool failed")
		resp.Reply = "I couldn't finish that calculation. Could you try rephrasing it?"
		return
	}
	if out.Error != "" {
		resp.Reply = out.Error
		return
	}

	result, ok := out.Result.(contractx.CalcResult)
	if !ok {
		log.Warn().Str("tool", out.Tool).Msg("unexpected math tool result type")
		resp.Reply = "I couldn't finish that calculation. Could you try rephrasing it?"
		return
	}

	resp.Calculation = &result
	var b strings.Builder
	fmt.Fprintf(&b, "%s = %.2f", result.Expression, result.Value)
	if len(result.Steps) > 0 {
		b.WriteString("\nSteps: ")
		b.WriteString(strings.Join(result.Steps, "; "))
	}
	resp.Reply = b.String()
	resp.Followups = []string{"Add 6% SST", "Apply a discount"}
}

func (p *Planner) respondSearch(
	ctx context.Context,
	text string,
	intent contractx.Intent,
	slots contractx.Slots,
	exec toolx.Executor,
	resp *contractx.AgentResponse,
) {
	domain := contractx.EntityProduct
	if intent == contractx.IntentOutletSearch {
		domain = contractx.EntityOutlet
	}

	out, err := exec(ctx, toolx.ToolCatalogSearch, map[string]any{
		"query":  text,
		"domain": string(domain),
		"slots":  slots,
	})
	if err != nil {
		log.Warn().Err(err).Msg("catalog search failed")
		resp.Reply = p.replies.NoResults
		return
	}
	if out.Error != "" {
		log.Warn().Str("tool", out.Tool).Str("error", out.Error).Msg("catalog search rejected")
		resp.Reply = p.replies.NoResults
		return
	}

	results, ok := out.Result.([]contractx.ScoredResult)
	if !ok {
		log.Warn().Str("tool", out.Tool).Msg("unexpected search result type")
		resp.Reply = p.replies.NoResults
		return
	}

	resp.Matches = results
	if len(results) == 0 {
		resp.Reply = p.replies.NoResults
		return
	}

	resp.Reply = formatResults(domain, results)
	if domain == contractx.EntityProduct {
		resp.Followups = []string{"Filter by material, e.g. ceramic", "Set a budget, e.g. under RM50"}
	} else {
		resp.Followups = []string{"Try a landmark, e.g. near KLCC", "Filter by service, e.g. open 24 hours"}
	}
}

func formatResults(domain contractx.EntityKind, results []contractx.ScoredResult) string {
	var b strings.Builder
	if len(results) == 1 {
		b.WriteString("I found 1 match:\n")
	} else {
		fmt.Fprintf(&b, "I found %d matches:\n", len(results))
	}

	shown := results
	if len(shown) > maxListedResults {
		shown = shown[:maxListedResults]
	}
	for _, r := range shown {
		if domain == contractx.EntityProduct {
			fmt.Fprintf(&b, "- %s (RM%.2f)\n", r.Entity.Name, r.Entity.Price)
		} else {
			fmt.Fprintf(&b, "- %s, %s", r.Entity.Name, r.Entity.Address)
			if r.Entity.Hours != "" {
				fmt.Fprintf(&b, " (%s)", r.Entity.Hours)
			}
			b.WriteString("\n")
		}
	}
	if len(results) > maxListedResults {
		fmt.Fprintf(&b, "...and %d more.", len(results)-maxListedResults)
	}
	return strings.TrimSpace(b.String())
}
