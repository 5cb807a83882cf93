package resolver

import (
	"fmt"

	"streamsift/internal/library"
	"streamsift/internal/services"
)

// Mode selects how cached region data is weighed against re-fetching.
type Mode string

const (
	// ModeAuto refreshes regions with no recorded refresh date and reuses
	// the rest.
	ModeAuto Mode = "auto"
	// ModeRefresh re-fetches every requested region.
	ModeRefresh Mode = "refresh"
	// ModeUseSaved reuses cached data for any region with a recorded date.
	ModeUseSaved Mode = "use_saved"
)

// ParseMode validates a mode string. The empty string maps to ModeAuto.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "":
		return ModeAuto, nil
	case ModeAuto, ModeRefresh, ModeUseSaved:
		return Mode(s), nil
	default:
		return "", services.Wrap(services.ErrValidation, "resolver", "mode", fmt.Sprintf("unknown mode %q", s), nil)
	}
}

// Plan partitions the requested regions into those that will be re-fetched
// and those answered from the cache, preserving request order.
type Plan struct {
	Refresh []string
	Cached  []string
}

// BuildPlan applies the refresh policy: a new upload refreshes everything, a
// region with no recorded refresh date always refreshes, and otherwise the
// mode decides.
func BuildPlan(meta library.Meta, regions []string, mode Mode, newUpload bool) Plan {
	var plan Plan
	for _, region := range regions {
		switch {
		case newUpload:
			plan.Refresh = append(plan.Refresh, region)
		case meta.Regions[region] == "":
			plan.Refresh = append(plan.Refresh, region)
		case mode == ModeRefresh:
			plan.Refresh = append(plan.Refresh, region)
		default:
			plan.Cached = append(plan.Cached, region)
		}
	}
	return plan
}
