package intent

import (
	"sort"
	"strings"

	contractx "github.com/mesra-labs/mesra-agent/agent/contract"
	statex "github.com/mesra-labs/mesra-agent/agent/state"
)

// Sub-score weights, fixed by design.
const (
	weightKeyword = 0.40
	weightPattern = 0.35
	weightContext = 0.25

	// DefaultThreshold is the minimum winning confidence below which the
	// message is classified as unknown.
	DefaultThreshold = 0.3
)

// Classifier scores a message against the rule table. It is a pure function
// over the message and the session's last turn; it never mutates the session.
type Classifier struct {
	threshold float64
	rules     []Rule
}

func NewClassifier(threshold float64) *Classifier {
	if threshold <= 0 || threshold >= 1 {
		threshold = DefaultThreshold
	}
	return &Classifier{
		threshold: threshold,
		rules:     defaultRules,
	}
}

type categoryScore struct {
	rule       Rule
	confidence float64
}

// Classify returns the winning intent, its confidence, and the slots
// extracted from the message. A winning confidence below the threshold yields
// IntentUnknown; extracted slots are returned either way.
func (c *Classifier) Classify(message string, session *statex.ConversationSession) contractx.Classification {
	tokens, wordCount := tokenize(message)
	lastIntent := lastUserIntent(session)
	followUp := c.isFollowUp(tokens, wordCount, lastIntent)

	scores := make([]categoryScore, 0, len(c.rules))
	for _, rule := range c.rules {
		kw := keywordScore(rule, tokens)
		pat := patternScore(rule, message)

		ctxScore := 0.0
		if followUp && rule.Intent == lastIntent {
			ctxScore = 1.0
		}

		scores = append(scores, categoryScore{
			rule:       rule,
			confidence: weightKeyword*kw + weightPattern*pat + weightContext*ctxScore,
		})
	}

	sort.SliceStable(scores, func(i, j int) bool {
		if scores[i].confidence != scores[j].confidence {
			return scores[i].confidence > scores[j].confidence
		}
		return scores[i].rule.Priority > scores[j].rule.Priority
	})

	best := scores[0]
	result := contractx.Classification{
		Intent:     best.rule.Intent,
		Confidence: best.confidence,
		Slots:      ExtractSlots(message),
	}
	if best.confidence < c.threshold {
		result.Intent = contractx.IntentUnknown
	}
	return result
}

func keywordScore(rule Rule, tokens map[string]bool) float64 {
	if len(rule.Keywords) == 0 {
		return 0
	}
	matched := 0
	for _, kw := range rule.Keywords {
		if tokens[kw] {
			matched++
		}
	}
	return float64(matched) / float64(len(rule.Keywords))
}

func patternScore(rule Rule, message string) float64 {
	for _, p := range rule.Patterns {
		if p.MatchString(message) {
			return 1.0
		}
	}
	return 0
}

// isFollowUp reports whether the message looks like a short continuation of
// the previous turn: it introduces no keywords from a different category and
// either is very short or carries a pronoun/ellipsis marker.
func (c *Classifier) isFollowUp(tokens map[string]bool, wordCount int, lastIntent contractx.Intent) bool {
	if lastIntent == "" || lastIntent == contractx.IntentUnknown {
		return false
	}
	for _, rule := range c.rules {
		if rule.Intent == lastIntent {
			continue
		}
		for _, kw := range rule.Keywords {
			if tokens[kw] {
				return false
			}
		}
	}
	if wordCount <= 4 {
		return true
	}
	for tok := range tokens {
		if followUpMarkers[tok] {
			return true
		}
	}
	return false
}

func lastUserIntent(session *statex.ConversationSession) contractx.Intent {
	if session == nil {
		return ""
	}
	if t := session.LastUserTurn(); t != nil {
		return t.DetectedIntent
	}
	return session.LastIntent
}

// tokenize lowercases and splits on non-alphanumerics, trimming a plural "s"
// so "outlets" still hits the "outlet" keyword.
func tokenize(message string) (map[string]bool, int) {
	fields := strings.FieldsFunc(strings.ToLower(message), func(r rune) bool {
		return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9')
	})
	tokens := make(map[string]bool, len(fields)*2)
	for _, f := range fields {
		tokens[f] = true
		if trimmed := strings.TrimSuffix(f, "s"); trimmed != "" && trimmed != f {
			tokens[trimmed] = true
		}
	}
	return tokens, len(fields)
}
