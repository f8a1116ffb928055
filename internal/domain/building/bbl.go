// Package building holds the domain model for a single building resolution:
// the BBL key, the records each waterfall stage contributes, and the
// aggregated record with its provenance trail.
package building

import (
	"strings"

	"github.com/buildingcarbon/backend/internal/domain/shared"
)

// BBL is the canonical 10-digit borough-block-lot identifier:
//   - digit 1: borough (1=Manhattan, 2=Bronx, 3=Brooklyn, 4=Queens, 5=Staten Island)
//   - digits 2-6: block, zero-padded
//   - digits 7-10: lot, zero-padded
//
// A BBL constructed through ParseBBL or ParseDashedBBL is always well-formed;
// no lookup is attempted on a malformed key.
type BBL string

// ParseBBL validates and returns a canonical BBL.
func ParseBBL(s string) (BBL, error) {
	if len(s) != 10 {
		return "", shared.ErrInvalidBBL
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return "", shared.ErrInvalidBBL
		}
	}
	if s[0] < '1' || s[0] > '5' {
		return "", shared.ErrInvalidBBL
	}
	return BBL(s), nil
}

// ParseDashedBBL parses the dashed display form (e.g. "1-01119-0036").
// The dashed form carries no meaning of its own; the same validation applies
// once separators are removed.
func ParseDashedBBL(s string) (BBL, error) {
	return ParseBBL(strings.ReplaceAll(s, "-", ""))
}

// String returns the canonical 10-digit form.
func (b BBL) String() string {
	return string(b)
}

// Dashed returns the display form used by Department of Finance lookups,
// e.g. "1011190036" -> "1-01119-0036". Dashed and canonical forms round-trip
// exactly.
func (b BBL) Dashed() string {
	return string(b[0]) + "-" + string(b[1:6]) + "-" + string(b[6:])
}

// Block returns the 5-digit block segment.
func (b BBL) Block() string {
	return string(b[1:6])
}

// Lot returns the 4-digit lot segment.
func (b BBL) Lot() string {
	return string(b[6:])
}

// BoroughName returns the borough the BBL belongs to.
func (b BBL) BoroughName() string {
	switch b[0] {
	case '1':
		return "Manhattan"
	case '2':
		return "Bronx"
	case '3':
		return "Brooklyn"
	case '4':
		return "Queens"
	case '5':
		return "Staten Island"
	}
	return "Unknown"
}
