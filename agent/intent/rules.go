package intent

import (
	"regexp"

	contractx "github.com/mesra-labs/mesra-agent/agent/contract"
)

// Rule is one intent category: keywords for overlap scoring, regexp templates
// for pattern scoring, and a fixed priority used only to break confidence
// ties (more specific categories outrank generic ones).
type Rule struct {
	Intent   contractx.Intent
	Priority int
	Keywords []string
	Patterns []*regexp.Regexp
}

var defaultRules = []Rule{
	{
		Intent:   contractx.IntentCalculation,
		Priority: 60,
		Keywords: []string{
			"calculate", "total", "cost", "tax", "sst", "gst",
			"discount", "percent", "plus", "minus", "times", "divided",
		},
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`\d+(?:\.\d+)?\s*[-+*/%^]`),
			regexp.MustCompile(`\d+(?:\.\d+)?\s*%`),
			regexp.MustCompile(`(?i)\b(calculate|how much is|what is)\b.*\d`),
		},
	},
	{
		Intent:   contractx.IntentProductSearch,
		Priority: 50,
		Keywords: []string{
			"product", "cup", "mug", "tumbler", "bottle", "flask",
			"drinkware", "ceramic", "glass", "buy", "collection", "price",
		},
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\b(show|find|looking for|do you have|any)\b.*\b(cup|mug|tumbler|bottle|flask|product|drinkware)s?\b`),
			regexp.MustCompile(`(?i)\b(cup|mug|tumbler|bottle|flask)s?\b.*\b(under|below|cheaper|less than)\b`),
		},
	},
	{
		Intent:   contractx.IntentOutletSearch,
		Priority: 45,
		Keywords: []string{
			"outlet", "store", "branch", "shop", "location", "open",
			"hour", "address", "near", "nearest",
		},
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\b(outlet|store|branch|shop)s?\b`),
			regexp.MustCompile(`(?i)\b(where|which|what time)\b.*\b(open|close|located)\b`),
		},
	},
	{
		Intent:   contractx.IntentFarewell,
		Priority: 30,
		Keywords: []string{"bye", "goodbye", "thanks", "thank"},
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\b(bye|goodbye|see you|that's all|thats all)\b`),
		},
	},
	{
		Intent:   contractx.IntentGreeting,
		Priority: 20,
		Keywords: []string{"hello", "hi", "hey", "morning", "afternoon", "evening"},
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)^\s*(hi|hello|hey|good (morning|afternoon|evening))\b`),
		},
	},
	{
		Intent:   contractx.IntentGeneralChat,
		Priority: 10,
		Keywords: []string{"help", "who", "what", "can", "you"},
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\b(help me|what can you do|who are you)\b`),
		},
	},
}

// followUpMarkers are pronoun/ellipsis cues that a short message continues
// the previous topic rather than opening a new one.
var followUpMarkers = map[string]bool{
	"it": true, "that": true, "those": true, "them": true, "this": true,
	"one": true, "ones": true, "more": true, "another": true, "else": true,
	"other": true, "others": true, "about": true,
}
