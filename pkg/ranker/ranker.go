package ranker

import (
	"math"
	"sort"

	"github.com/jinzhu/copier"
	"github.com/yatrigo/yatrigo/pkg/composer"
	"github.com/yatrigo/yatrigo/pkg/transit"
)

// View is a ranked presentation of a composed result for one user type. The
// highlight fields point into Options.
type View struct {
	UserType transit.UserType `groups:"basic"`

	Options []*transit.RouteOption `groups:"basic"`

	Cheapest        *transit.RouteOption `groups:"basic"`
	Fastest         *transit.RouteOption `groups:"basic"`
	MostComfortable *transit.RouteOption `groups:"basic"`
	DoorToDoor      *transit.RouteOption `groups:"basic"`
	Simplest        *transit.RouteOption `groups:"basic"`

	Degraded []composer.DegradedMode `groups:"basic"`

	NoOptions bool `groups:"basic"`
}

// Rank orders a composed result for a user type. The input result is never
// mutated, options are cloned before scoring so two user types can rank the
// same composition concurrently.
func Rank(userType transit.UserType, result *composer.Result, offPeak bool) *View {
	view := &View{
		UserType:  userType,
		Degraded:  result.Degraded,
		NoOptions: result.NoOptions,
	}

	if result.NoOptions {
		return view
	}

	options := make([]*transit.RouteOption, len(result.Options))
	for i, option := range result.Options {
		clone := &transit.RouteOption{}
		// copier only fails on mismatched shapes, which identical types
		// cannot produce.
		_ = copier.Copy(clone, option)
		options[i] = clone
	}

	switch userType {
	case transit.UserTypeElderly:
		rankByComfort(options, offPeak)
	case transit.UserTypeTourist:
		rankForTourist(options)
	default:
		rankByCost(options)
	}

	view.Options = options
	view.Cheapest = pickCheapest(options)
	view.Fastest = pickFastest(options)
	view.MostComfortable = pickMostComfortable(options, offPeak)
	view.DoorToDoor = pickDoorToDoor(options)
	view.Simplest = pickSimplest(options)

	return view
}

func rankByCost(options []*transit.RouteOption) {
	sort.SliceStable(options, func(i, j int) bool {
		if options[i].Cost != options[j].Cost {
			return options[i].Cost < options[j].Cost
		}
		return options[i].TimeMinutes < options[j].TimeMinutes
	})
}

func rankByComfort(options []*transit.RouteOption, offPeak bool) {
	maxTransfers := 0
	for _, option := range options {
		if option.Transfers > maxTransfers {
			maxTransfers = option.Transfers
		}
	}

	for _, option := range options {
		option.ComfortScore = comfortScore(option, maxTransfers, offPeak)
	}

	sort.SliceStable(options, func(i, j int) bool {
		if options[i].ComfortScore != options[j].ComfortScore {
			return options[i].ComfortScore > options[j].ComfortScore
		}
		if options[i].Cost != options[j].Cost {
			return options[i].Cost < options[j].Cost
		}
		if options[i].TimeMinutes != options[j].TimeMinutes {
			return options[i].TimeMinutes < options[j].TimeMinutes
		}
		return options[i].Mode < options[j].Mode
	})
}

func rankForTourist(options []*transit.RouteOption) {
	sort.SliceStable(options, func(i, j int) bool {
		if options[i].DoorToDoor != options[j].DoorToDoor {
			return options[i].DoorToDoor
		}
		if options[i].Transfers != options[j].Transfers {
			return options[i].Transfers < options[j].Transfers
		}
		if options[i].TimeMinutes != options[j].TimeMinutes {
			return options[i].TimeMinutes < options[j].TimeMinutes
		}
		return options[i].Cost < options[j].Cost
	})
}

// comfortScore weighs the physical demands of an option. Less walking, fewer
// transfers and air conditioning all raise the score.
func comfortScore(option *transit.RouteOption, maxTransfers int, offPeak bool) float64 {
	score := 0.0

	if option.AC {
		score += 20
	}
	if option.DoorToDoor {
		score += 25
	}

	walk := math.Min(option.WalkingMetres, 500)
	score += 20 * (1 - walk/500)

	score += 10 * float64(maxTransfers-option.Transfers)

	if offPeak {
		score += 5
	}

	return score
}

func pickCheapest(options []*transit.RouteOption) *transit.RouteOption {
	best := options[0]
	for _, option := range options[1:] {
		if option.Cost < best.Cost {
			best = option
		}
	}
	return best
}

func pickFastest(options []*transit.RouteOption) *transit.RouteOption {
	best := options[0]
	for _, option := range options[1:] {
		if option.TimeMinutes < best.TimeMinutes {
			best = option
		}
	}
	return best
}

func pickMostComfortable(options []*transit.RouteOption, offPeak bool) *transit.RouteOption {
	maxTransfers := 0
	for _, option := range options {
		if option.Transfers > maxTransfers {
			maxTransfers = option.Transfers
		}
	}

	best := options[0]
	bestScore := comfortScore(best, maxTransfers, offPeak)
	for _, option := range options[1:] {
		score := comfortScore(option, maxTransfers, offPeak)
		if score > bestScore || (score == bestScore && option.Cost < best.Cost) {
			best = option
			bestScore = score
		}
	}
	return best
}

// pickDoorToDoor prefers the cheapest hired vehicle. Walking is door to door
// too but is never what the caller means by it.
func pickDoorToDoor(options []*transit.RouteOption) *transit.RouteOption {
	var best *transit.RouteOption
	for _, option := range options {
		if !option.DoorToDoor || option.Mode == transit.TransportTypeWalk {
			continue
		}
		if best == nil || option.Cost < best.Cost {
			best = option
		}
	}
	return best
}

func pickSimplest(options []*transit.RouteOption) *transit.RouteOption {
	best := options[0]
	for _, option := range options[1:] {
		if len(option.Steps) < len(best.Steps) ||
			(len(option.Steps) == len(best.Steps) && option.Transfers < best.Transfers) {
			best = option
		}
	}
	return best
}
