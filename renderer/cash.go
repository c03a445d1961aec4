package renderer

import (
	"sort"

	"github.com/cowwoc/capi/interactivebrokers"
)

// CashMarkdown renders the per-currency cash report to a markdown table,
// in currency order.
func CashMarkdown(activities map[string]interactivebrokers.CashActivity) string {
	rows := make([]SummaryCash, 0, len(activities))
	for _, activity := range activities {
		rows = append(rows, SummaryCash{
			Currency: activity.Currency,
			Opening:  activity.Opening,
			Closing:  activity.Closing,
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Currency < rows[j].Currency })
	return renderTemplate("cash.md", rows)
}
