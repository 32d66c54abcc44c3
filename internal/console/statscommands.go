package console

import (
	"context"
	"fmt"
	"strings"

	"github.com/tapnserve/pos/internal/stats"
)

func (p *Parser) handleStats(ctx context.Context, params []string) (*CommandResponse, error) {
	if resp := p.requireAdmin(); resp != nil {
		return resp, nil
	}

	list, err := p.statsAPI.List(ctx)
	if err != nil {
		if resp := p.sessionExpired(err); resp != nil {
			return resp, nil
		}
		p.notifier.Error("Failed to load statistics")
		return fail(fmt.Sprintf("Failed to load statistics: %v", err)), nil
	}

	report := stats.NewReport(list)
	if len(report.Rows) == 0 {
		return ok("No sales recorded yet.", "Statistics"), nil
	}

	var b strings.Builder
	b.WriteString("Sales by product (best sellers first):\n")
	for i, row := range report.Rows {
		fmt.Fprintf(&b, "%3d. %-24s sold %4d   revenue %10.2f\n", i+1, row.Name, row.Quantity, row.Revenue)
	}
	fmt.Fprintf(&b, "Total: %d items sold, %.2f revenue", report.TotalQuantity(), report.TotalRevenue())
	return ok(b.String(), "Statistics"), nil
}
