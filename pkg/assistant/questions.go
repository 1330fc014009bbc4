package assistant

import (
	"github.com/yatrigo/yatrigo/pkg/session"
	"github.com/yatrigo/yatrigo/pkg/transit"
)

// Follow-up questions rotate per session so a user who fails twice in a row
// is not shown the same wording twice.
var parseQuestions = []string{
	"Where would you like to go? Try something like \"Hebbal to Majestic\".",
	"I could not work out the trip. Tell me the start and end, like \"from Indiranagar to Koramangala\".",
	"Please name two places, for example \"Whitefield to MG Road\".",
}

var resolutionQuestions = []string{
	"I do not know that place yet. Could you try a nearby landmark or a bigger area name?",
	"That name is not on my map. Is there another name the area goes by?",
	"I could not place that location. Try the neighbourhood name instead?",
}

var locationQuestions = []string{
	"Where are you starting from?",
	"I need a starting point. Which area are you in right now?",
}

// FollowUpQuestion picks the next clarifying question for the error that
// stopped the query, advancing the session's rotation.
func FollowUpQuestion(state *session.State, err error) string {
	switch err.(type) {
	case transit.ParseError:
		return parseQuestions[state.NextQuestionIndex("parse", len(parseQuestions))]
	case transit.ResolutionError:
		return resolutionQuestions[state.NextQuestionIndex("resolution", len(resolutionQuestions))]
	case MissingLocationError:
		return locationQuestions[state.NextQuestionIndex("location", len(locationQuestions))]
	}

	return parseQuestions[state.NextQuestionIndex("parse", len(parseQuestions))]
}
