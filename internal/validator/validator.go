// Package validator screens stored message definitions against the
// scheduler capacity parameters before compilation. The compiler packs
// whatever it is given; this is the layer that decides what it is given.
package validator

import (
	"fmt"

	"github.com/cfstools/schedtab/internal/catalog"
	"github.com/cfstools/schedtab/internal/params"
	"github.com/cfstools/schedtab/internal/schedule"
)

// Definition is one stored message definition: an ordered list of
// application names, not yet resolved against the catalog.
type Definition struct {
	Name     string
	AppNames []string
}

// Reject records a message definition that failed validation.
type Reject struct {
	Message string
	Reason  string
}

// Result carries the surviving messages plus everything that was dropped
// on the way.
type Result struct {
	Valid    []schedule.Message
	Rejects  []Reject
	Warnings []string
}

// Validate resolves definitions against the catalog and applies the
// capacity caps. Unknown application names are dropped from their message
// with a warning; a message whose resolved length exceeds the slot count,
// the per-slot cap or the per-second message cap is rejected whole;
// messages beyond the per-cycle cap are rejected in definition order,
// keeping the first MaxMsgsPerCycle.
func Validate(cat *catalog.Catalog, defs []Definition, p params.Params) Result {
	var res Result

	for _, def := range defs {
		apps := make([]catalog.Application, 0, len(def.AppNames))
		for _, name := range def.AppNames {
			app, ok := cat.ByName(name)
			if !ok {
				res.Warnings = append(res.Warnings,
					fmt.Sprintf("message %q: unknown application %q removed", def.Name, name))
				continue
			}
			apps = append(apps, app)
		}

		switch {
		case len(apps) > p.SlotCount:
			res.Rejects = append(res.Rejects, Reject{
				Message: def.Name,
				Reason:  fmt.Sprintf("%d applications exceed the %d-slot table", len(apps), p.SlotCount),
			})
		case len(apps) > p.MaxMsgsPerSlot:
			res.Rejects = append(res.Rejects, Reject{
				Message: def.Name,
				Reason:  fmt.Sprintf("%d messages exceed the per-slot cap of %d", len(apps), p.MaxMsgsPerSlot),
			})
		case len(apps) > p.MaxMsgsPerSecond:
			res.Rejects = append(res.Rejects, Reject{
				Message: def.Name,
				Reason:  fmt.Sprintf("%d messages exceed the per-second cap of %d", len(apps), p.MaxMsgsPerSecond),
			})
		case len(res.Valid) >= p.MaxMsgsPerCycle:
			res.Rejects = append(res.Rejects, Reject{
				Message: def.Name,
				Reason:  fmt.Sprintf("per-cycle cap of %d messages reached", p.MaxMsgsPerCycle),
			})
		default:
			res.Valid = append(res.Valid, schedule.Message{Name: def.Name, Apps: apps})
		}
	}

	return res
}
