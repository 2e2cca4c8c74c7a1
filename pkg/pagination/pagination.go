package pagination

import "fmt"

const (
	// DefaultLimit is the dashboard page size when a limit is not provided.
	DefaultLimit = 50
	// MaxLimit caps how many rows any range or page query can request.
	MaxLimit = 200
)

// Params holds offset pagination inputs from controllers or services.
type Params struct {
	Offset int
	Limit  int
}

// Page describes what a load-more caller receives alongside the rows.
type Page struct {
	Offset     int  `json:"offset"`
	Limit      int  `json:"limit"`
	NextOffset int  `json:"nextOffset"`
	HasMore    bool `json:"hasMore"`
}

// NormalizeLimit enforces the configured default and maximum limits.
func NormalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// LimitWithBuffer returns the normalization result plus one to detect the next page.
func LimitWithBuffer(limit int) int {
	return NormalizeLimit(limit) + 1
}

// Normalize clamps offset and limit.
func (p Params) Normalize() Params {
	if p.Offset < 0 {
		p.Offset = 0
	}
	p.Limit = NormalizeLimit(p.Limit)
	return p
}

// NewPage builds page metadata from the number of rows fetched with
// LimitWithBuffer. It returns how many rows the caller should keep.
func NewPage(p Params, fetched int) (Page, int) {
	p = p.Normalize()
	keep := fetched
	hasMore := fetched > p.Limit
	if hasMore {
		keep = p.Limit
	}
	return Page{
		Offset:     p.Offset,
		Limit:      p.Limit,
		NextOffset: p.Offset + keep,
		HasMore:    hasMore,
	}, keep
}

// Range converts a half-open [start, end) slice request, as the dashboard
// issues it, into offset/limit params.
func Range(start, end int) (Params, error) {
	if start < 0 || end <= start {
		return Params{}, fmt.Errorf("invalid range [%d, %d)", start, end)
	}
	count := end - start
	if count > MaxLimit {
		return Params{}, fmt.Errorf("range of %d rows exceeds max %d", count, MaxLimit)
	}
	return Params{Offset: start, Limit: count}, nil
}
