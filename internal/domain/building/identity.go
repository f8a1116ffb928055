package building

import "strings"

// PathwayFlag is one of the named compliance pathways a covered building can
// be enrolled in. The flags come from the covered-buildings roll as booleans.
type PathwayFlag string

const (
	PathwayArticle320For2024 PathwayFlag = "CP0 (2024)"
	PathwayArticle320For2026 PathwayFlag = "CP1 (2026)"
	PathwayArticle320For2035 PathwayFlag = "CP2 (2035)"
	PathwayArticle321OneTime PathwayFlag = "CP3 (One-Time)"
	PathwayCityPortfolio     PathwayFlag = "CP4 (City Portfolio)"
)

// PathwayOrder is the fixed order pathway flags render in. The label of a
// record is the concatenation of its active flags in this order.
var PathwayOrder = []PathwayFlag{
	PathwayArticle320For2024,
	PathwayArticle320For2026,
	PathwayArticle320For2035,
	PathwayArticle321OneTime,
	PathwayCityPortfolio,
}

// NoPathwayLabel is rendered when a covered building carries no pathway flag.
// Never an empty string: "no flags" is meaningful data, not missing data.
const NoPathwayLabel = "None assigned"

// PathwayLabel renders the set of active flags as the fixed-order,
// comma-separated compliance pathway label.
func PathwayLabel(flags []PathwayFlag) string {
	active := make(map[PathwayFlag]bool, len(flags))
	for _, f := range flags {
		active[f] = true
	}

	var parts []string
	for _, f := range PathwayOrder {
		if active[f] {
			parts = append(parts, string(f))
		}
	}
	if len(parts) == 0 {
		return NoPathwayLabel
	}
	return strings.Join(parts, ", ")
}

// IdentityRecord is what the identity stage resolves: the building's
// regulatory identity on the covered-buildings roll.
type IdentityRecord struct {
	BBL      BBL
	BIN      string // may hold several semicolon-delimited BINs for campus lots
	Address  string
	ZipCode  string
	Pathways []PathwayFlag
}

// PathwayLabel renders the record's compliance pathway label.
func (r *IdentityRecord) PathwayLabel() string {
	return PathwayLabel(r.Pathways)
}

// Characteristics is what the tax-lot characteristics source supplies: basic
// building facts, never energy quantities.
type Characteristics struct {
	YearBuilt *int
	NumFloors *int
	GFA       *float64
	OwnerName string
	Address   string
	ZipCode   string
}

// Empty reports whether the source supplied no data at all. An empty result
// contributes nothing and earns no provenance token.
func (c *Characteristics) Empty() bool {
	return c == nil ||
		(c.YearBuilt == nil && c.NumFloors == nil && c.GFA == nil &&
			c.OwnerName == "" && c.Address == "" && c.ZipCode == "")
}

// GeocodeResult is a geocoder candidate for an address. Confidence below the
// acceptance threshold means the candidate is discarded, not trusted.
type GeocodeResult struct {
	BBL        string
	BIN        string
	Confidence float64
	Label      string
}

// GeocodeConfidenceThreshold is the minimum confidence at which a geocoder
// match is accepted. Below it the resolver treats the result as a miss rather
// than guess at the wrong building.
const GeocodeConfidenceThreshold = 0.8

// Accepted reports whether the geocoder match clears the confidence gate.
func (g *GeocodeResult) Accepted() bool {
	return g.Confidence >= GeocodeConfidenceThreshold
}
