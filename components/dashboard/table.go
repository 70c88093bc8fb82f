package dashboard

import (
	"slices"
	"strings"
)

// ItemsPerPage is the fixed campaign table page size.
const ItemsPerPage = 10

// TableControls are the user-controlled inputs of the campaign table.
type TableControls struct {
	SearchTerm    string        `json:"searchTerm"`
	StatusFilter  string        `json:"statusFilter"`
	SortField     string        `json:"sortField"`
	SortDirection SortDirection `json:"sortDirection"`
	CurrentPage   int           `json:"currentPage"`
}

// DefaultTableControls sorts by name ascending on the first page with no filters.
func DefaultTableControls() TableControls {
	return TableControls{
		StatusFilter:  StatusAll,
		SortField:     "name",
		SortDirection: SortAsc,
		CurrentPage:   1,
	}
}

// TablePage is the visible slice of the campaign table.
type TablePage struct {
	Rows          []Campaign    `json:"rows"`
	TotalPages    int           `json:"totalPages"`
	TotalFiltered int           `json:"totalFiltered"`
	CurrentPage   int           `json:"currentPage"`
	ItemsPerPage  int           `json:"itemsPerPage"`
	Controls      TableControls `json:"controls"`
}

// ComputeVisible filters, sorts and paginates records. It never mutates
// records and returns identical output for identical input. A page outside
// 1..TotalPages yields no rows; callers decide whether to reset the page.
func ComputeVisible(records []Campaign, controls TableControls) TablePage {
	filtered := filterCampaigns(records, controls.SearchTerm, controls.StatusFilter)
	slices.SortStableFunc(filtered, comparatorFor(controls.SortField, controls.SortDirection))

	rows, totalPages := paginate(filtered, controls.CurrentPage, ItemsPerPage)
	return TablePage{
		Rows:          rows,
		TotalPages:    totalPages,
		TotalFiltered: len(filtered),
		CurrentPage:   controls.CurrentPage,
		ItemsPerPage:  ItemsPerPage,
		Controls:      controls,
	}
}

// ToggleSort applies a click on a column header: the active column flips
// direction, any other column becomes active in ascending order.
func ToggleSort(controls TableControls, field string) TableControls {
	if canonical, ok := NormalizeSortField(field); ok {
		field = canonical
	}
	current, _ := NormalizeSortField(controls.SortField)
	if field == current || field == controls.SortField {
		controls.SortField = field
		controls.SortDirection = controls.SortDirection.Flip()
		return controls
	}
	controls.SortField = field
	controls.SortDirection = SortAsc
	return controls
}

// MatchesSearch reports whether the campaign name or source contains term,
// ignoring case. An empty term matches everything.
func MatchesSearch(c Campaign, term string) bool {
	if term == "" {
		return true
	}
	needle := strings.ToLower(term)
	return strings.Contains(strings.ToLower(c.Name), needle) ||
		strings.Contains(strings.ToLower(c.Source), needle)
}

// MatchesStatus reports whether the campaign passes the status filter.
func MatchesStatus(c Campaign, filter string) bool {
	return filter == "" || filter == StatusAll || string(c.Status) == filter
}

func filterCampaigns(records []Campaign, term, status string) []Campaign {
	out := make([]Campaign, 0, len(records))
	for _, c := range records {
		if MatchesSearch(c, term) && MatchesStatus(c, status) {
			out = append(out, c)
		}
	}
	return out
}

func paginate(rows []Campaign, page, perPage int) ([]Campaign, int) {
	if perPage <= 0 {
		perPage = ItemsPerPage
	}
	totalPages := (len(rows) + perPage - 1) / perPage
	start := (page - 1) * perPage
	if page < 1 || start >= len(rows) {
		return []Campaign{}, totalPages
	}
	end := min(start+perPage, len(rows))
	return rows[start:end], totalPages
}
