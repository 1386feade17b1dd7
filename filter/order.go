// filter/order.go
package filter

import (
	"github.com/dev-mohitbeniwal/workbench/model"
)

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// DefaultOrderField breaks ties and orders panels nobody sorted.
const DefaultOrderField = "createdAt"

// OrderBuilder composes an order list such as ["collections.name asc", "created_at desc"].
type OrderBuilder struct {
	order []string
}

func NewOrderBuilder() *OrderBuilder {
	return &OrderBuilder{}
}

func (o *OrderBuilder) AddOrder(direction Direction, field string, prefix ...string) *OrderBuilder {
	if field == "" {
		return o
	}
	clause := qualify(field, prefix) + " " + string(direction)
	for _, existing := range o.order {
		if existing == clause {
			return o
		}
	}
	o.order = append(o.order, clause)
	return o
}

// AddOrderPerPrefix emits the same sort once for every table of a group
// contents union so the server applies it uniformly.
func (o *OrderBuilder) AddOrderPerPrefix(direction Direction, field string, prefixes ...string) *OrderBuilder {
	if len(prefixes) == 0 {
		return o.AddOrder(direction, field)
	}
	for _, p := range prefixes {
		o.AddOrder(direction, field, p)
	}
	return o
}

func (o *OrderBuilder) Order() []string {
	return append([]string{}, o.order...)
}

// DefaultOrder is newest first.
func DefaultOrder() []string {
	return NewOrderBuilder().AddOrder(Desc, DefaultOrderField).Order()
}

// GetOrder turns the active sort column of a panel into an order list. The
// creation time is always appended as a tie-breaker; without a sort column
// the default order is returned, never an empty one.
func GetOrder(de model.DataExplorer, prefixes ...string) []string {
	col, ok := de.SortColumn()
	if !ok {
		return DefaultOrder()
	}
	direction := Desc
	if col.Sort.Direction == model.SortAsc {
		direction = Asc
	}
	return NewOrderBuilder().
		AddOrderPerPrefix(direction, col.Sort.Field, prefixes...).
		AddOrder(Desc, DefaultOrderField).
		Order()
}
