package intent

import (
	"regexp"
	"strconv"
	"strings"

	contractx "github.com/mesra-labs/mesra-agent/agent/contract"
)

var (
	priceMaxPattern = regexp.MustCompile(`(?i)\b(?:under|below|less than|cheaper than|at most|max(?:imum)?)\s*(?:rm\s*)?(\d+(?:\.\d+)?)`)
	priceMinPattern = regexp.MustCompile(`(?i)\b(?:over|above|more than|at least|min(?:imum)?)\s*(?:rm\s*)?(\d+(?:\.\d+)?)`)

	// "6% SST on RM55" and friends lift into the canonical "N% of M" form the
	// calculator understands.
	percentOfPattern = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*%\s*(?:sst|gst|tax|service charge|discount)?\s*(?:on|of|off)\s*(?:rm\s*)?(\d+(?:\.\d+)?)`)

	// A bare arithmetic run: a number followed by at least one operator and
	// another number, parentheses allowed.
	expressionPattern = regexp.MustCompile(`\(?\s*\d+(?:\.\d+)?(?:\s*[-+*/%^]\s*\(?\s*\d+(?:\.\d+)?\s*\)?)+`)

	collectionPattern = regexp.MustCompile(`(?i)\b(?:the\s+)?([a-z]+)\s+collection\b`)
)

// Canonical values keyed by the lowercase alias found in the message.
// Longer aliases are checked first so "kuala lumpur" wins over "kl".
var locationAliases = []struct{ alias, canonical string }{
	{"kuala lumpur", "Kuala Lumpur"},
	{"petaling jaya", "Petaling Jaya"},
	{"subang jaya", "Subang Jaya"},
	{"johor bahru", "Johor Bahru"},
	{"shah alam", "Shah Alam"},
	{"mont kiara", "Mont Kiara"},
	{"putrajaya", "Putrajaya"},
	{"cyberjaya", "Cyberjaya"},
	{"puchong", "Puchong"},
	{"cheras", "Cheras"},
	{"bangsar", "Bangsar"},
	{"penang", "Penang"},
	{"ipoh", "Ipoh"},
	{"pj", "Petaling Jaya"},
	{"kl", "Kuala Lumpur"},
}

var landmarkAliases = []struct{ alias, canonical string }{
	{"sunway pyramid", "Sunway Pyramid"},
	{"one utama", "One Utama"},
	{"1 utama", "One Utama"},
	{"mid valley", "Mid Valley"},
	{"nu sentral", "NU Sentral"},
	{"the gardens", "The Gardens"},
	{"pavilion", "Pavilion"},
	{"mytown", "MyTOWN"},
	{"klcc", "KLCC"},
}

var materialAliases = []struct{ alias, canonical string }{
	{"stainless steel", "stainless steel"},
	{"porcelain", "porcelain"},
	{"ceramic", "ceramic"},
	{"acrylic", "acrylic"},
	{"silicone", "silicone"},
	{"plastic", "plastic"},
	{"bamboo", "bamboo"},
	{"glass", "glass"},
	{"steel", "stainless steel"},
}

var serviceAliases = []struct{ alias, canonical string }{
	{"round the clock", "24-hours"},
	{"drive through", "drive-thru"},
	{"drive-thru", "drive-thru"},
	{"drive thru", "drive-thru"},
	{"24-hours", "24-hours"},
	{"24 hours", "24-hours"},
	{"24-hour", "24-hours"},
	{"24 hour", "24-hours"},
	{"24hr", "24-hours"},
	{"dine-in", "dine-in"},
	{"dine in", "dine-in"},
	{"delivery", "delivery"},
	{"parking", "parking"},
	{"wi-fi", "wifi"},
	{"wifi", "wifi"},
}

// ExtractSlots pulls every recognized slot value from one message. Extraction
// is independent of the winning intent; the context manager decides what to
// keep.
func ExtractSlots(message string) contractx.Slots {
	lower := strings.ToLower(message)
	var slots contractx.Slots

	if m := priceMaxPattern.FindStringSubmatch(lower); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			slots.PriceMax = &v
		}
	}
	if m := priceMinPattern.FindStringSubmatch(lower); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			slots.PriceMin = &v
		}
	}

	slots.Location = lookupAlias(lower, locationAliases)
	slots.Landmark = lookupAlias(lower, landmarkAliases)
	slots.Material = lookupAlias(lower, materialAliases)
	slots.Service = lookupAlias(lower, serviceAliases)

	if m := collectionPattern.FindStringSubmatch(lower); m != nil {
		slots.Collection = strings.ToUpper(m[1][:1]) + m[1][1:]
	}

	slots.Expression = extractExpression(lower)
	return slots
}

// extractExpression prefers the percentage-of form, then falls back to a bare
// arithmetic run. Price-bound phrases are not expressions, so anything the
// price patterns claimed is skipped.
func extractExpression(lower string) string {
	if m := percentOfPattern.FindStringSubmatch(lower); m != nil {
		return m[1] + "% of " + m[2]
	}
	if priceMaxPattern.MatchString(lower) || priceMinPattern.MatchString(lower) {
		return ""
	}
	if m := expressionPattern.FindString(lower); m != "" {
		return strings.TrimSpace(m)
	}
	return ""
}

// lookupAlias matches aliases on word boundaries so "kl" never fires inside
// "klcc". Punctuation is normalized away on both sides, which also lets
// "drive-thru" and "drive thru" share one alias.
func lookupAlias(lower string, aliases []struct{ alias, canonical string }) string {
	padded := " " + normalizeWords(lower) + " "
	for _, a := range aliases {
		if strings.Contains(padded, " "+normalizeWords(a.alias)+" ") {
			return a.canonical
		}
	}
	return ""
}

func normalizeWords(s string) string {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9')
	})
	return strings.Join(fields, " ")
}
