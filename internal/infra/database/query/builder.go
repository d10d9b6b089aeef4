package query

import (
	"strconv"
	"strings"
)

// Placeholder selects the bind parameter syntax of the target database
type Placeholder int

const (
	// Dollar renders $1, $2, ... (PostgreSQL)
	Dollar Placeholder = iota
	// Question renders ? (SQLite)
	Question
)

// clause is a predicate written with ? markers and its bound values
type clause struct {
	sql  string
	args []any
}

// Select accumulates typed predicates on top of a fixed SELECT ... FROM ... text.
// Values never reach the SQL text, they are always bound.
type Select struct {
	placeholder Placeholder
	base        string
	where       []clause
	orderBy     string
	limit       *int
	offset      *int
}

// NewSelect starts a query from base, which must not contain bind markers
func NewSelect(p Placeholder, base string) *Select {
	return &Select{placeholder: p, base: strings.TrimSpace(base)}
}

// Raw adds a predicate verbatim. Use ? for every bound value.
func (s *Select) Raw(sql string, args ...any) *Select {
	s.where = append(s.where, clause{sql: sql, args: args})
	return s
}

// Eq adds col = value
func (s *Select) Eq(col string, value any) *Select {
	return s.Raw(col+" = ?", value)
}

// Gte adds col >= value
func (s *Select) Gte(col string, value any) *Select {
	return s.Raw(col+" >= ?", value)
}

// Lte adds col <= value
func (s *Select) Lte(col string, value any) *Select {
	return s.Raw(col+" <= ?", value)
}

// Contains adds a case-insensitive substring match on col
func (s *Select) Contains(col, substr string) *Select {
	return s.Raw("LOWER("+col+") LIKE ? ESCAPE '\\'", "%"+strings.ToLower(escapeLike(substr))+"%")
}

// In adds col IN (...). An empty list matches nothing.
func In[T any](s *Select, col string, values []T) *Select {
	if len(values) == 0 {
		return s.Raw("1 = 0")
	}

	args := make([]any, len(values))
	for i, v := range values {
		args[i] = v
	}
	marks := strings.TrimSuffix(strings.Repeat("?, ", len(values)), ", ")
	return s.Raw(col+" IN ("+marks+")", args...)
}

// OrderBy sets the ORDER BY expression
func (s *Select) OrderBy(expr string) *Select {
	s.orderBy = expr
	return s
}

// Page sets LIMIT and OFFSET
func (s *Select) Page(limit, offset int) *Select {
	s.limit, s.offset = &limit, &offset
	return s
}

// ToSQL renders the statement and its arguments in bind order
func (s *Select) ToSQL() (string, []any) {
	var (
		sb   strings.Builder
		args []any
	)
	sb.WriteString(s.base)

	for i, c := range s.where {
		if i == 0 {
			sb.WriteString(" WHERE ")
		} else {
			sb.WriteString(" AND ")
		}
		sb.WriteString(c.sql)
		args = append(args, c.args...)
	}

	if s.orderBy != "" {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(s.orderBy)
	}
	if s.limit != nil {
		sb.WriteString(" LIMIT ?")
		args = append(args, *s.limit)
	}
	if s.offset != nil {
		sb.WriteString(" OFFSET ?")
		args = append(args, *s.offset)
	}

	return s.rebind(sb.String()), args
}

// rebind rewrites ? markers into the target placeholder syntax
func (s *Select) rebind(sql string) string {
	if s.placeholder == Question {
		return sql
	}

	var sb strings.Builder
	n := 0
	for _, r := range sql {
		if r == '?' {
			n++
			sb.WriteByte('$')
			sb.WriteString(strconv.Itoa(n))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
