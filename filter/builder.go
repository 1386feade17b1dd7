// filter/builder.go
package filter

import (
	"encoding/json"
	"reflect"
	"regexp"
	"strings"
	"unicode"
)

// Operator is an Arvados filter operator
type Operator string

const (
	OpEqual          Operator = "="
	OpNotEqual       Operator = "!="
	OpIn             Operator = "in"
	OpNotIn          Operator = "not in"
	OpILike          Operator = "ilike"
	OpIsA            Operator = "is_a"
	OpGreaterOrEqual Operator = ">="
	OpLessOrEqual    Operator = "<="
	OpExists         Operator = "exists"
)

// Group contents resource prefixes. A group contents query unions several
// tables, so predicates and orders name the table they apply to.
const (
	PrefixCollection = "collections"
	PrefixProject    = "groups"
	PrefixProcess    = "container_requests"
	PrefixWorkflow   = "workflows"
)

// Predicate is one filter triple.
type Predicate struct {
	Field    string
	Operator Operator
	Value    any
}

// MarshalJSON encodes the predicate as ["field","op",value].
func (p Predicate) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{p.Field, string(p.Operator), p.Value})
}

// Filters is an ordered, conjunctive list of predicates. An empty list
// matches everything.
type Filters []Predicate

// MarshalJSON always emits an array, never null.
func (f Filters) MarshalJSON() ([]byte, error) {
	if f == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]Predicate(f))
}

// Join concatenates filter lists. Predicates are conjunctive so the result
// means "all of them".
func Join(lists ...Filters) Filters {
	out := Filters{}
	for _, l := range lists {
		out = append(out, l...)
	}
	return out
}

// Builder composes Filters fluently. Every Add method ignores empty values
// (empty string, nil, empty slice) so an unset UI selector never narrows or
// widens the query. AddIsNull and AddNotNull are the explicit way to compare
// against null.
type Builder struct {
	filters Filters
}

func NewBuilder() *Builder {
	return &Builder{filters: Filters{}}
}

func (b *Builder) AddEqual(field string, value any, prefix ...string) *Builder {
	return b.AddCondition(field, OpEqual, value, prefix...)
}

func (b *Builder) AddDistinct(field string, value any, prefix ...string) *Builder {
	return b.AddCondition(field, OpNotEqual, value, prefix...)
}

func (b *Builder) AddIn(field string, values []string, prefix ...string) *Builder {
	return b.AddCondition(field, OpIn, values, prefix...)
}

func (b *Builder) AddNotIn(field string, values []string, prefix ...string) *Builder {
	return b.AddCondition(field, OpNotIn, values, prefix...)
}

// AddILike matches value anywhere in the field, case insensitively.
func (b *Builder) AddILike(field string, value string, prefix ...string) *Builder {
	if value == "" {
		return b
	}
	return b.AddCondition(field, OpILike, "%"+value+"%", prefix...)
}

// AddIsA restricts to resources of the given kinds. One kind is sent as a
// string, several as a list.
func (b *Builder) AddIsA(field string, kinds ...string) *Builder {
	switch len(kinds) {
	case 0:
		return b
	case 1:
		return b.AddCondition(field, OpIsA, kinds[0])
	default:
		return b.AddCondition(field, OpIsA, kinds)
	}
}

func (b *Builder) AddGte(field string, value any, prefix ...string) *Builder {
	return b.AddCondition(field, OpGreaterOrEqual, value, prefix...)
}

func (b *Builder) AddLte(field string, value any, prefix ...string) *Builder {
	return b.AddCondition(field, OpLessOrEqual, value, prefix...)
}

func (b *Builder) AddExists(field string, prefix ...string) *Builder {
	return b.AddCondition(field, OpExists, true, prefix...)
}

func (b *Builder) AddIsNull(field string, prefix ...string) *Builder {
	b.filters = append(b.filters, Predicate{Field: qualify(field, prefix), Operator: OpEqual, Value: nil})
	return b
}

func (b *Builder) AddNotNull(field string, prefix ...string) *Builder {
	b.filters = append(b.filters, Predicate{Field: qualify(field, prefix), Operator: OpNotEqual, Value: nil})
	return b
}

var quotedTerm = regexp.MustCompile(`"[^"]*"`)

// AddFullTextSearch emits one ilike predicate on "any" per search term.
// Quoted phrases are kept as a single term.
func (b *Builder) AddFullTextSearch(value string, prefix ...string) *Builder {
	var terms []string
	for _, m := range quotedTerm.FindAllString(value, -1) {
		if phrase := strings.Trim(m, `"`); strings.TrimSpace(phrase) != "" {
			terms = append(terms, phrase)
		}
	}
	rest := quotedTerm.ReplaceAllString(value, " ")
	terms = append(strings.Fields(rest), terms...)

	for _, term := range terms {
		b.filters = append(b.filters, Predicate{Field: qualify("any", prefix), Operator: OpILike, Value: "%" + term + "%"})
	}
	return b
}

// AddCondition appends field op value unless value is empty.
func (b *Builder) AddCondition(field string, op Operator, value any, prefix ...string) *Builder {
	if isEmpty(value) {
		return b
	}
	b.filters = append(b.filters, Predicate{Field: qualify(field, prefix), Operator: op, Value: value})
	return b
}

// Filters returns a copy of the predicates added so far.
func (b *Builder) Filters() Filters {
	return append(Filters{}, b.filters...)
}

func (b *Builder) Len() int {
	return len(b.filters)
}

func isEmpty(value any) bool {
	if value == nil {
		return true
	}
	switch v := value.(type) {
	case string:
		return v == ""
	case []string:
		return len(v) == 0
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len() == 0
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

func qualify(field string, prefix []string) string {
	name := SnakeCase(field)
	if len(prefix) > 0 && prefix[0] != "" {
		return prefix[0] + "." + name
	}
	return name
}

// SnakeCase converts each dot separated segment from camelCase to
// snake_case: "container.exitCode" becomes "container.exit_code".
func SnakeCase(field string) string {
	segments := strings.Split(field, ".")
	for i, seg := range segments {
		segments[i] = snakeSegment(seg)
	}
	return strings.Join(segments, ".")
}

func snakeSegment(s string) string {
	var sb strings.Builder
	runes := []rune(s)
	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 && runes[i-1] != '_' && (unicode.IsLower(runes[i-1]) || unicode.IsDigit(runes[i-1]) ||
				(i+1 < len(runes) && unicode.IsLower(runes[i+1]))) {
				sb.WriteByte('_')
			}
			sb.WriteRune(unicode.ToLower(r))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
