package postgres

import (
	"fmt"
	"strings"

	"github.com/GregMSThompson/econsim-backend/internal/dto"
)

// filterBuilder collects a conjunction of predicates and their bound
// arguments. Values only ever travel through the args slice; the SQL text
// contains nothing but column names and placeholders.
type filterBuilder struct {
	conds []string
	args  []any
}

func (f *filterBuilder) bind(v any) string {
	f.args = append(f.args, v)
	return fmt.Sprintf("$%d", len(f.args))
}

func (f *filterBuilder) Eq(column string, v any) {
	f.conds = append(f.conds, column+" = "+f.bind(v))
}

func (f *filterBuilder) Gte(column string, v any) {
	f.conds = append(f.conds, column+" >= "+f.bind(v))
}

func (f *filterBuilder) Lte(column string, v any) {
	f.conds = append(f.conds, column+" <= "+f.bind(v))
}

// SubstringAny matches term as a case-insensitive substring of any of the
// given columns.
func (f *filterBuilder) SubstringAny(columns []string, term string) {
	ph := f.bind("%" + term + "%")
	parts := make([]string, len(columns))
	for i, col := range columns {
		parts[i] = col + " ILIKE " + ph
	}
	f.conds = append(f.conds, "("+strings.Join(parts, " OR ")+")")
}

// Where renders the collected predicates as a WHERE clause. At least one
// predicate is always present here (is_active = true).
func (f *filterBuilder) Where() string {
	return " WHERE " + strings.Join(f.conds, " AND ")
}

// Args returns the bound values in placeholder order.
func (f *filterBuilder) Args() []any {
	return f.args
}

// catalogFilter translates search criteria into predicates over the banks
// table. Criteria are assumed validated by the service.
func catalogFilter(c dto.SearchCriteria) *filterBuilder {
	f := &filterBuilder{}
	f.Eq("is_active", true)

	if c.Search != "" {
		f.SubstringAny([]string{"bank_name", "fdic_certificate_number", "city", "state"}, c.Search)
	}
	if c.State != "" {
		f.Eq("state", strings.ToUpper(c.State))
	}
	if c.CharterType != "" {
		f.Eq("charter_type", c.CharterType)
	}
	if c.Regulator != "" {
		f.Eq("regulator", c.Regulator)
	}
	if c.MinAssets != nil {
		f.Gte("total_assets", *c.MinAssets)
	}
	if c.MaxAssets != nil {
		f.Lte("total_assets", *c.MaxAssets)
	}

	return f
}
