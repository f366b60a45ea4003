package pagination

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// DefaultPage is used when a page number is not provided.
	DefaultPage = 1
	// DefaultLimit is the standard page size when a limit is not provided.
	DefaultLimit = 50
	// MaxLimit caps how many rows any page query can request.
	MaxLimit = 100
)

// Params holds offset pagination inputs from controllers or services.
type Params struct {
	Page  int
	Limit int
}

// Normalize enforces the configured defaults and maximum limits.
func (p Params) Normalize() Params {
	if p.Page <= 0 {
		p.Page = DefaultPage
	}
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return p
}

// Offset returns the row offset implied by the normalized params.
func (p Params) Offset() int {
	n := p.Normalize()
	return (n.Page - 1) * n.Limit
}

// FromQuery parses page/limit query parameters, falling back to defaults on
// absent values and rejecting malformed ones.
func FromQuery(page, limit string) (Params, error) {
	params := Params{Page: DefaultPage, Limit: DefaultLimit}
	if strings.TrimSpace(page) != "" {
		parsed, err := strconv.Atoi(page)
		if err != nil || parsed <= 0 {
			return Params{}, fmt.Errorf("invalid page %q", page)
		}
		params.Page = parsed
	}
	if strings.TrimSpace(limit) != "" {
		parsed, err := strconv.Atoi(limit)
		if err != nil || parsed <= 0 {
			return Params{}, fmt.Errorf("invalid limit %q", limit)
		}
		params.Limit = parsed
	}
	return params.Normalize(), nil
}
