// Package filters maps the sort keys a driver can browse open orders by to the
// strategy that fetches them.
package filters

import (
	"strings"

	"freight/internal/pkg/errs"
)

// Key selects how open orders are ordered.
type Key int

const (
	Fee Key = iota + 1
	Distance
	Time
)

// Keys lists every supported key in display order.
func Keys() []Key {
	return []Key{Fee, Distance, Time}
}

func (k Key) String() string {
	switch k {
	case Fee:
		return "FEE"
	case Distance:
		return "DISTANCE"
	case Time:
		return "TIME"
	default:
		return "UNKNOWN"
	}
}

func (k Key) Validate() error {
	if k < Fee || k > Time {
		return errs.NewUnknownFilterKeyError(int(k))
	}
	return nil
}

// ParseKey accepts "fee", "distance" or "time" in any case.
func ParseKey(s string) (Key, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "FEE":
		return Fee, nil
	case "DISTANCE":
		return Distance, nil
	case "TIME":
		return Time, nil
	default:
		return 0, errs.NewUnknownFilterKeyError(s)
	}
}
