package assistant

import (
	"fmt"
	"strings"

	"github.com/yatrigo/yatrigo/pkg/ranker"
	"github.com/yatrigo/yatrigo/pkg/transit"
	"github.com/yatrigo/yatrigo/pkg/util"
)

// Summarise renders a ranked view as a short message leading with what that
// user type cares about most.
func Summarise(view *ranker.View, origin string, destination string) string {
	origin = util.TitleCaseName(origin)
	destination = util.TitleCaseName(destination)

	if view.NoOptions {
		return fmt.Sprintf("I could not find any way from %s to %s right now.", origin, destination)
	}

	switch view.UserType {
	case transit.UserTypeStudent:
		return summariseForStudent(view, origin, destination)
	case transit.UserTypeElderly:
		return summariseForElderly(view, origin, destination)
	case transit.UserTypeTourist:
		return summariseForTourist(view, origin, destination)
	}

	return summariseForStudent(view, origin, destination)
}

func summariseForStudent(view *ranker.View, origin string, destination string) string {
	var builder strings.Builder

	cheapest := view.Cheapest
	fmt.Fprintf(&builder, "Cheapest way from %s to %s: %s at Rs %.0f, about %d min.",
		origin, destination, cheapest.Mode, cheapest.Cost, cheapest.TimeMinutes)

	if view.Fastest != nil && view.Fastest != cheapest {
		fmt.Fprintf(&builder, " Fastest is %s in %d min for Rs %.0f.",
			view.Fastest.Mode, view.Fastest.TimeMinutes, view.Fastest.Cost)
	}

	return builder.String()
}

func summariseForElderly(view *ranker.View, origin string, destination string) string {
	var builder strings.Builder

	comfortable := view.Options[0]
	fmt.Fprintf(&builder, "Most comfortable way from %s to %s: %s, about %d min for Rs %.0f.",
		origin, destination, comfortable.Mode, comfortable.TimeMinutes, comfortable.Cost)

	if comfortable.WalkingMetres > 0 {
		fmt.Fprintf(&builder, " It involves about %.0f m of walking.", comfortable.WalkingMetres)
	} else {
		builder.WriteString(" No walking needed.")
	}

	return builder.String()
}

func summariseForTourist(view *ranker.View, origin string, destination string) string {
	var builder strings.Builder

	simplest := view.Options[0]
	fmt.Fprintf(&builder, "Easiest way from %s to %s: %s, about %d min for Rs %.0f.",
		origin, destination, simplest.Mode, simplest.TimeMinutes, simplest.Cost)

	fmt.Fprintf(&builder, " %d option(s) available in total.", len(view.Options))

	return builder.String()
}
