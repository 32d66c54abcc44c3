package orders

import (
	"sort"
	"time"

	"github.com/tapnserve/pos/internal/menu"
)

// UnknownProduct is the display name for order items whose product id has no
// match in the fetched menu.
const UnknownProduct = "Unknown Product"

// EnrichedItem is an order item joined with the product's display name.
type EnrichedItem struct {
	OrderItem
	ProductName string
}

// EnrichedOrder is an order whose items carry resolved product names.
type EnrichedOrder struct {
	ID          string
	TableNumber string
	Status      Status
	CreatedAt   *time.Time
	Items       []EnrichedItem
}

// TableGroup holds every order of one table within a projection.
type TableGroup struct {
	TableNumber string
	Orders      []EnrichedOrder
}

// Enrich joins each order item's product id against the menu. Unresolved ids
// get the UnknownProduct display name.
func Enrich(list []Order, items []menu.MenuItem) []EnrichedOrder {
	names := make(map[string]string, len(items))
	for _, item := range items {
		names[item.ID] = item.Name
	}

	enriched := make([]EnrichedOrder, 0, len(list))
	for _, o := range list {
		eo := EnrichedOrder{
			ID:          o.ID,
			TableNumber: o.TableNumber,
			Status:      o.Status,
			CreatedAt:   o.CreatedAt,
		}
		for _, item := range o.Items {
			name, ok := names[item.ProductID]
			if !ok {
				name = UnknownProduct
			}
			eo.Items = append(eo.Items, EnrichedItem{OrderItem: item, ProductName: name})
		}
		enriched = append(enriched, eo)
	}
	return enriched
}

// ActiveByTable groups the IN_PROGRESS orders by table number, tables sorted
// ascending for a stable view.
func ActiveByTable(list []EnrichedOrder) []TableGroup {
	groups := groupByTable(filterStatus(list, StatusInProgress))
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].TableNumber < groups[j].TableNumber
	})
	return groups
}

// CompletedByTable groups the COMPLETED orders by table number. Orders inside
// a group and the groups themselves are sorted by creation time, most recent
// first; orders without a timestamp keep their fetched order at the end.
func CompletedByTable(list []EnrichedOrder) []TableGroup {
	groups := groupByTable(filterStatus(list, StatusCompleted))

	for i := range groups {
		sortByCreatedAtDesc(groups[i].Orders)
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return newerFirst(latest(groups[i]), latest(groups[j]))
	})
	return groups
}

func filterStatus(list []EnrichedOrder, status Status) []EnrichedOrder {
	var out []EnrichedOrder
	for _, o := range list {
		if o.Status == status {
			out = append(out, o)
		}
	}
	return out
}

func groupByTable(list []EnrichedOrder) []TableGroup {
	index := make(map[string]int)
	var groups []TableGroup
	for _, o := range list {
		i, ok := index[o.TableNumber]
		if !ok {
			i = len(groups)
			index[o.TableNumber] = i
			groups = append(groups, TableGroup{TableNumber: o.TableNumber})
		}
		groups[i].Orders = append(groups[i].Orders, o)
	}
	return groups
}

func sortByCreatedAtDesc(list []EnrichedOrder) {
	sort.SliceStable(list, func(i, j int) bool {
		return newerFirst(list[i].CreatedAt, list[j].CreatedAt)
	})
}

func newerFirst(a, b *time.Time) bool {
	if a == nil || b == nil {
		return b == nil && a != nil
	}
	return a.After(*b)
}

func latest(g TableGroup) *time.Time {
	if len(g.Orders) == 0 {
		return nil
	}
	return g.Orders[0].CreatedAt
}
