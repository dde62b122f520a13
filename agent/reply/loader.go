package reply

import (
	_ "embed"
	"strings"
)

var (
	//go:embed template/greeting.txt
	greetingRaw string

	//go:embed template/clarify.txt
	clarifyRaw string

	//go:embed template/farewell.txt
	farewellRaw string

	//go:embed template/chat.txt
	chatRaw string

	//go:embed template/no_results.txt
	noResultsRaw string
)

// Set holds the canned reply texts the planner falls back to when it has no
// handler output to format.
type Set struct {
	Greeting  string
	Clarify   string
	Farewell  string
	Chat      string
	NoResults string
}

// LoadSet returns the embedded reply texts, trimmed. Safe to call
// concurrently; the embed is compile-time.
func LoadSet() Set {
	return Set{
		Greeting:  strings.TrimSpace(greetingRaw),
		Clarify:   strings.TrimSpace(clarifyRaw),
		Farewell:  strings.TrimSpace(farewellRaw),
		Chat:      strings.TrimSpace(chatRaw),
		NoResults: strings.TrimSpace(noResultsRaw),
	}
}
