// Package params holds the four scheduler capacity parameters. The values
// are persisted as a single comma-joined string in the fixed order
// maxPerSlot, maxPerSecond, maxPerCycle, slotCount.
package params

import (
	"fmt"
	"strconv"
	"strings"
)

// Params are the validated scheduler capacity bounds. All four fields are
// strictly positive.
type Params struct {
	MaxMsgsPerSlot   int
	MaxMsgsPerSecond int
	MaxMsgsPerCycle  int
	SlotCount        int
}

// Defaults returns the documented fallback parameter set.
func Defaults() Params {
	return Params{
		MaxMsgsPerSlot:   1,
		MaxMsgsPerSecond: 10,
		MaxMsgsPerCycle:  10,
		SlotCount:        128,
	}
}

// Load parses the four raw parameter strings. If any value fails to parse
// or is not strictly positive, the entire set reverts to Defaults and the
// returned error describes the cause; the Params are still usable. The
// fallback is all-or-nothing, never a partial substitution.
func Load(raw [4]string) (Params, error) {
	var p Params
	fields := []struct {
		name string
		dst  *int
	}{
		{"max messages per slot", &p.MaxMsgsPerSlot},
		{"max messages per second", &p.MaxMsgsPerSecond},
		{"max messages per cycle", &p.MaxMsgsPerCycle},
		{"slot count", &p.SlotCount},
	}

	for i, f := range fields {
		v, err := strconv.Atoi(strings.TrimSpace(raw[i]))
		if err != nil {
			return Defaults(), fmt.Errorf("params: invalid %s %q: using defaults", f.name, raw[i])
		}
		if v <= 0 {
			return Defaults(), fmt.Errorf("params: %s must be positive, got %d: using defaults", f.name, v)
		}
		*f.dst = v
	}

	return p, nil
}

// Validate reports whether all four values are strictly positive. Used on
// the user-commit path, where bad input is rejected instead of defaulted.
func (p Params) Validate() error {
	if p.MaxMsgsPerSlot <= 0 || p.MaxMsgsPerSecond <= 0 || p.MaxMsgsPerCycle <= 0 || p.SlotCount <= 0 {
		return fmt.Errorf("params: all values must be positive, got %s", p)
	}
	return nil
}

// Store serializes the parameters back to the four raw strings in load
// order.
func (p Params) Store() [4]string {
	return [4]string{
		strconv.Itoa(p.MaxMsgsPerSlot),
		strconv.Itoa(p.MaxMsgsPerSecond),
		strconv.Itoa(p.MaxMsgsPerCycle),
		strconv.Itoa(p.SlotCount),
	}
}

// String renders the comma-joined persisted form.
func (p Params) String() string {
	raw := p.Store()
	return strings.Join(raw[:], ",")
}

// ParseJoined splits the comma-joined persisted form and loads it. Short
// or long strings load as malformed and fall back to Defaults.
func ParseJoined(s string) (Params, error) {
	parts := strings.Split(s, ",")
	var raw [4]string
	if len(parts) != 4 {
		return Defaults(), fmt.Errorf("params: expected 4 comma-joined values, got %d: using defaults", len(parts))
	}
	copy(raw[:], parts)
	return Load(raw)
}
