package intent

import (
	"regexp"
	"strings"

	"github.com/yatrigo/yatrigo/pkg/transit"
	"github.com/yatrigo/yatrigo/pkg/util"
)

// Filler prefixes get stripped before pattern matching so that phrasing like
// "i want to go to majestic from hebbal" parses the same as the bare form.
var fillerPrefixes = []string{
	"i want to go",
	"i need to go",
	"i have to go",
	"how do i get",
	"how can i get",
	"how to get",
	"how to go",
	"take me",
	"get me",
	"plan a trip",
	"plan trip",
	"whats the best way",
	"what is the best way",
	"best way",
}

type pattern struct {
	expression  *regexp.Regexp
	origin      int
	destination int
	confidence  float64
}

// Patterns are tried in order and the first match wins. The explicit
// "from X to Y" form outranks the bare "X to Y" form, and "to X from Y"
// must be matched before the bare forms can misread its prepositions.
var patterns = []pattern{
	{regexp.MustCompile(`^from (.+?) to (.+)$`), 1, 2, 0.9},
	{regexp.MustCompile(`^to (.+?) from (.+)$`), 2, 1, 0.9},
	{regexp.MustCompile(`^(.+?) to (.+)$`), 1, 2, 0.9},
	{regexp.MustCompile(`^(.+?) from (.+)$`), 2, 1, 0.6},
}

// Parse extracts an origin and destination from free text. A single place
// name becomes the destination with the origin left as the caller's current
// location. Parse never resolves names, it only splits the sentence.
func Parse(text string) (*transit.Intent, error) {
	normalised := util.NormaliseName(text)
	normalised = stripFiller(normalised)

	if normalised == "" {
		return nil, transit.ParseError{Text: text}
	}

	for _, candidate := range patterns {
		match := candidate.expression.FindStringSubmatch(normalised)
		if match == nil {
			continue
		}

		origin := strings.TrimSpace(match[candidate.origin])
		destination := strings.TrimSpace(match[candidate.destination])
		if origin == "" || destination == "" {
			continue
		}

		return &transit.Intent{
			Origin:      origin,
			Destination: destination,
			Confidence:  candidate.confidence,
		}, nil
	}

	if !hasLetters(normalised) {
		return nil, transit.ParseError{Text: text}
	}

	return &transit.Intent{
		Origin:      transit.CurrentLocationSentinel,
		Destination: normalised,
		Confidence:  0.6,
	}, nil
}

func stripFiller(text string) string {
	for _, prefix := range fillerPrefixes {
		if strings.HasPrefix(text, prefix+" ") {
			text = strings.TrimSpace(strings.TrimPrefix(text, prefix))
			break
		}
	}

	// A leading "to" after filler ("i want to go to majestic") is part of
	// the filler, not the destination, unless the "to X from Y" form follows.
	if strings.HasPrefix(text, "to ") && !strings.Contains(text, " from ") {
		text = strings.TrimSpace(strings.TrimPrefix(text, "to "))
	}

	return text
}

func hasLetters(text string) bool {
	for _, r := range text {
		if r >= 'a' && r <= 'z' {
			return true
		}
	}
	return false
}
