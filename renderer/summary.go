package renderer

import (
	"sort"

	"github.com/cowwoc/capi"
	"github.com/cowwoc/capi/interactivebrokers"
)

// Summary is the view of a whole statement, condensed to one screen.
type Summary struct {
	Number      string
	Owner       string
	StartDate   string
	EndDate     string
	GeneratedAt string
	// Cash lists the per-currency balances in currency order.
	Cash          []SummaryCash
	TradeCount    int
	ForexCount    int
	DepositCount  int
	DividendCount int
}

// SummaryCash is one currency's balances over the period.
type SummaryCash struct {
	Currency string
	Opening  capi.Money
	Closing  capi.Money
}

// NewSummary builds the summary view of a statement.
func NewSummary(s *interactivebrokers.Statement) *Summary {
	summary := &Summary{
		Number:        s.Account.Number,
		Owner:         s.Account.Owner,
		StartDate:     s.Header.StartDate.String(),
		EndDate:       s.Header.EndDate.String(),
		GeneratedAt:   s.Header.GeneratedAt.Format("2006-01-02 15:04:05 MST"),
		TradeCount:    len(s.Trades),
		ForexCount:    len(s.Forex),
		DepositCount:  len(s.Deposits),
		DividendCount: len(s.Dividends),
	}
	for _, activity := range s.CashActivities {
		summary.Cash = append(summary.Cash, SummaryCash{
			Currency: activity.Currency,
			Opening:  activity.Opening,
			Closing:  activity.Closing,
		})
	}
	sort.Slice(summary.Cash, func(i, j int) bool {
		return summary.Cash[i].Currency < summary.Cash[j].Currency
	})
	return summary
}

// SummaryMarkdown renders the statement summary to a markdown string.
func SummaryMarkdown(s *interactivebrokers.Statement) string {
	return renderTemplate("summary.md", NewSummary(s))
}
