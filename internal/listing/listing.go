// Package listing implements the shared list-narrowing parameters used
// by the menu-item and order collection endpoints: max-price filter,
// substring search, multi-field ordering and pagination.
package listing

import (
	"strconv"
	"strings"

	"gorm.io/gorm"
)

const (
	DefaultPerPage = 2
	DefaultPage    = 1
)

// Params carries the parsed narrowing parameters of a list request.
// Zero values mean "no filter".
type Params struct {
	Category string   // menu items only: exact category title
	ToPrice  *float64 // inclusive upper bound on price / total
	Search   string   // case-insensitive substring match
	Ordering []string // field names, "-" prefix = descending
	Page     int
	PerPage  int
}

// QueryFunc matches the signature of fiber.Ctx.Query so Params can be
// parsed from a request without depending on the framework.
type QueryFunc func(key string, defaultValue ...string) string

// Parse reads the narrowing parameters from a request query. Malformed
// numbers fall back to the defaults rather than failing the request.
func Parse(query QueryFunc) Params {
	p := Params{
		Category: query("category"),
		Search:   query("search"),
		Page:     DefaultPage,
		PerPage:  DefaultPerPage,
	}
	if raw := query("to_price"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			p.ToPrice = &v
		}
	}
	if raw := query("ordering"); raw != "" {
		for _, field := range strings.Split(raw, ",") {
			if field = strings.TrimSpace(field); field != "" {
				p.Ordering = append(p.Ordering, field)
			}
		}
	}
	if v, err := strconv.Atoi(query("page")); err == nil && v > 0 {
		p.Page = v
	}
	if v, err := strconv.Atoi(query("perpage")); err == nil && v > 0 {
		p.PerPage = v
	}
	return p
}

// Offset returns the row offset of the requested page.
func (p Params) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// OrderClauses translates the ordering fields into SQL ORDER BY clauses.
// Fields not present in the allowed set are dropped, so callers control
// exactly which columns a request may sort by.
func (p Params) OrderClauses(allowed map[string]bool) []string {
	clauses := make([]string, 0, len(p.Ordering))
	for _, field := range p.Ordering {
		desc := strings.HasPrefix(field, "-")
		name := strings.TrimPrefix(field, "-")
		if !allowed[name] {
			continue
		}
		if desc {
			clauses = append(clauses, name+" DESC")
		} else {
			clauses = append(clauses, name)
		}
	}
	return clauses
}

// Scope applies ordering and pagination as a GORM scope. A page past the
// end of the result set yields an empty list, not an error.
func (p Params) Scope(allowed map[string]bool) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		for _, clause := range p.OrderClauses(allowed) {
			db = db.Order(clause)
		}
		return db.Offset(p.Offset()).Limit(p.PerPage)
	}
}
