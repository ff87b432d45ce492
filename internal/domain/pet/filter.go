package pet

// Filter is an equality predicate over kind and status.
// A zero field matches any value.
type Filter struct {
	Kind   Kind
	Status Status
}

// NewFilter builds a filter from the optional kind and status.
func NewFilter(kind Kind, status Status) Filter {
	return Filter{Kind: kind, Status: status}
}

// Equalities returns the field -> value pairs the filter constrains,
// keyed by persisted field name. Empty means match everything.
func (f Filter) Equalities() map[string]any {
	eq := make(map[string]any, 2)
	switch {
	case f.Kind != "" && f.Status != "":
		eq["kind"] = string(f.Kind)
		eq["status"] = string(f.Status)
	case f.Status != "":
		eq["status"] = string(f.Status)
	case f.Kind != "":
		eq["kind"] = string(f.Kind)
	}
	return eq
}

// Matches reports whether p satisfies the filter.
func (f Filter) Matches(p *Pet) bool {
	if f.Kind != "" && p.Kind() != f.Kind {
		return false
	}
	if f.Status != "" && p.Status() != f.Status {
		return false
	}
	return true
}

// Page bounds a listing. Skip is applied before Limit.
type Page struct {
	Skip  int64
	Limit int64
}

// DefaultLimit is the page size used when a listing asks for none.
const DefaultLimit = 10

// NormalizePage clamps negative skip to 0 and resets non-positive limit to DefaultLimit.
func NormalizePage(skip, limit int64) Page {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	return Page{Skip: skip, Limit: limit}
}
