package catalog

import (
	"fmt"
	"strings"
)

// MatchMode selects the comparison a filter contributes to the WHERE clause.
type MatchMode int

const (
	// MatchSubstring is a case-insensitive substring match: col ILIKE '%v%'.
	MatchSubstring MatchMode = iota
	// MatchExact is a case-insensitive exact match: col ILIKE 'v' with wildcards escaped.
	MatchExact
	// MatchMin is an inclusive lower bound: col >= v.
	MatchMin
	// MatchMax is an inclusive upper bound: col <= v.
	MatchMax
)

// activeCondition is always the first condition and is not user-controlled.
const activeCondition = "p.is_active = TRUE"

// Filter is one optional condition. Column must be a fixed identifier from this package,
// never caller input.
type Filter struct {
	Column  string
	Mode    MatchMode
	value   interface{}
	present bool
}

// StringFilter returns a filter that is absent when v is nil.
// An empty string is still a provided value.
func StringFilter(column string, v *string, mode MatchMode) Filter {
	f := Filter{Column: column, Mode: mode}
	if v != nil {
		f.value, f.present = *v, true
	}
	return f
}

// NumberFilter returns a filter that is absent when v is nil.
func NumberFilter(column string, v *float64, mode MatchMode) Filter {
	f := Filter{Column: column, Mode: mode}
	if v != nil {
		f.value, f.present = *v, true
	}
	return f
}

// Where is a built WHERE clause. The Nth `$n` placeholder in Conditions refers to Params[n-1].
type Where struct {
	Conditions []string
	Params     []interface{}
}

// SQL joins the conditions with AND.
func (w Where) SQL() string {
	return strings.Join(w.Conditions, " AND ")
}

// BuildWhere turns filters into conditions and bind parameters. Absent filters contribute
// neither a condition nor a placeholder, so indices stay contiguous from 1.
func BuildWhere(filters ...Filter) Where {
	w := Where{
		Conditions: []string{activeCondition},
		Params:     make([]interface{}, 0, len(filters)),
	}
	for _, f := range filters {
		if !f.present {
			continue
		}
		argID := len(w.Params) + 1
		switch f.Mode {
		case MatchSubstring:
			w.Conditions = append(w.Conditions, fmt.Sprintf("%s ILIKE $%d", f.Column, argID))
			w.Params = append(w.Params, "%"+escapeLike(fmt.Sprint(f.value))+"%")
		case MatchExact:
			w.Conditions = append(w.Conditions, fmt.Sprintf("%s ILIKE $%d", f.Column, argID))
			w.Params = append(w.Params, escapeLike(fmt.Sprint(f.value)))
		case MatchMin:
			w.Conditions = append(w.Conditions, fmt.Sprintf("%s >= $%d", f.Column, argID))
			w.Params = append(w.Params, f.value)
		case MatchMax:
			w.Conditions = append(w.Conditions, fmt.Sprintf("%s <= $%d", f.Column, argID))
			w.Params = append(w.Params, f.value)
		}
	}
	return w
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes LIKE metacharacters in user input match literally.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
