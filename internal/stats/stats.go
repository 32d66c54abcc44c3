package stats

import (
	"context"
	"fmt"
	"sort"

	"github.com/tapnserve/pos/internal/api"
)

// ProductStatistic is one row of the sales report as returned by the backend.
type ProductStatistic struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Revenue   float64 `json:"revenue"`
}

// Report is a shaped sales report: rows sorted by revenue descending, ties
// broken by quantity.
type Report struct {
	Rows []ProductStatistic
}

// NewReport sorts a copy of the fetched statistics into report order.
func NewReport(rows []ProductStatistic) *Report {
	sorted := append([]ProductStatistic(nil), rows...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Revenue != sorted[j].Revenue {
			return sorted[i].Revenue > sorted[j].Revenue
		}
		return sorted[i].Quantity > sorted[j].Quantity
	})
	return &Report{Rows: sorted}
}

// TotalRevenue sums the revenue of every row.
func (r *Report) TotalRevenue() float64 {
	var total float64
	for _, row := range r.Rows {
		total += row.Revenue
	}
	return total
}

// TotalQuantity sums the units sold across every row.
func (r *Report) TotalQuantity() int {
	var total int
	for _, row := range r.Rows {
		total += row.Quantity
	}
	return total
}

// DataAccess centralizes statistics calls against the backend.
type DataAccess struct {
	client *api.Client
}

func NewDataAccess(client *api.Client) *DataAccess {
	return &DataAccess{client: client}
}

// List fetches the per-product sales statistics.
func (da *DataAccess) List(ctx context.Context) ([]ProductStatistic, error) {
	if da == nil || da.client == nil {
		return nil, fmt.Errorf("statistics client not configured")
	}

	var rows []ProductStatistic
	if err := da.client.GetJSON(ctx, "/api/statistics", &rows); err != nil {
		return nil, err
	}
	return rows, nil
}
