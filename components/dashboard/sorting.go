package dashboard

import (
	"cmp"
	"slices"
	"strings"

	"github.com/ettle/strcase"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortDirection orders the campaign table.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// Flip returns the opposite direction.
func (d SortDirection) Flip() SortDirection {
	if d == SortAsc {
		return SortDesc
	}
	return SortAsc
}

type fieldKind int

const (
	kindString fieldKind = iota
	kindNumber
)

type sortField struct {
	name   string
	kind   fieldKind
	str    func(Campaign) string
	number func(Campaign) float64
}

// sortFields is keyed by the snake_case field name.
var sortFields = map[string]sortField{
	"id":          {name: "id", kind: kindString, str: func(c Campaign) string { return c.ID }},
	"name":        {name: "name", kind: kindString, str: func(c Campaign) string { return c.Name }},
	"status":      {name: "status", kind: kindString, str: func(c Campaign) string { return string(c.Status) }},
	"source":      {name: "source", kind: kindString, str: func(c Campaign) string { return c.Source }},
	"start_date":  {name: "startDate", kind: kindString, str: func(c Campaign) string { return c.StartDate }},
	"end_date":    {name: "endDate", kind: kindString, str: func(c Campaign) string { return c.EndDate }},
	"budget":      {name: "budget", kind: kindNumber, number: func(c Campaign) float64 { return c.Budget }},
	"spend":       {name: "spend", kind: kindNumber, number: func(c Campaign) float64 { return c.Spend }},
	"impressions": {name: "impressions", kind: kindNumber, number: func(c Campaign) float64 { return float64(c.Impressions) }},
	"clicks":      {name: "clicks", kind: kindNumber, number: func(c Campaign) float64 { return float64(c.Clicks) }},
	"ctr":         {name: "ctr", kind: kindNumber, number: func(c Campaign) float64 { return c.CTR }},
	"cpc":         {name: "cpc", kind: kindNumber, number: func(c Campaign) float64 { return c.CPC }},
	"conversions": {name: "conversions", kind: kindNumber, number: func(c Campaign) float64 { return float64(c.Conversions) }},
	"roas":        {name: "roas", kind: kindNumber, number: func(c Campaign) float64 { return c.ROAS }},
}

// SortFieldNames lists the canonical (JSON) names of sortable campaign fields.
func SortFieldNames() []string {
	names := make([]string, 0, len(sortFields))
	for _, f := range sortFields {
		names = append(names, f.name)
	}
	slices.Sort(names)
	return names
}

// NormalizeSortField maps camelCase, snake_case or PascalCase field names to the
// canonical JSON name. The second result is false for unknown fields.
func NormalizeSortField(name string) (string, bool) {
	f, ok := lookupSortField(name)
	if !ok {
		return "", false
	}
	return f.name, true
}

func lookupSortField(name string) (sortField, bool) {
	key := strcase.ToSnake(strings.TrimSpace(name))
	f, ok := sortFields[key]
	return f, ok
}

// comparatorFor returns a three-way comparison for the field. Unknown fields
// compare every pair as equal, which leaves a stable sort untouched.
func comparatorFor(field string, dir SortDirection) func(a, b Campaign) int {
	f, ok := lookupSortField(field)
	if !ok {
		return func(Campaign, Campaign) int { return 0 }
	}
	var compare func(a, b Campaign) int
	switch f.kind {
	case kindString:
		collator := collate.New(language.English)
		compare = func(a, b Campaign) int {
			return collator.CompareString(f.str(a), f.str(b))
		}
	default:
		compare = func(a, b Campaign) int {
			return cmp.Compare(f.number(a), f.number(b))
		}
	}
	if dir == SortDesc {
		return func(a, b Campaign) int { return compare(b, a) }
	}
	return compare
}
