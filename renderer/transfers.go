package renderer

import (
	"github.com/cowwoc/capi"
	"github.com/cowwoc/capi/interactivebrokers"
)

// TransferRow is the view of one cash movement, either a deposit or a
// dividend payout.
type TransferRow struct {
	Date        string
	Currency    string
	Amount      capi.Money
	Description string
}

// NewDepositRows builds the deposits and withdrawals table view.
func NewDepositRows(deposits []interactivebrokers.Deposit) []TransferRow {
	rows := make([]TransferRow, 0, len(deposits))
	for _, d := range deposits {
		rows = append(rows, TransferRow{
			Date:        d.Date.String(),
			Currency:    d.Currency(),
			Amount:      d.Amount,
			Description: d.Description,
		})
	}
	return rows
}

// NewDividendRows builds the dividends and withholding tax table view.
func NewDividendRows(dividends []interactivebrokers.Dividend) []TransferRow {
	rows := make([]TransferRow, 0, len(dividends))
	for _, d := range dividends {
		rows = append(rows, TransferRow{
			Date:        d.Date.String(),
			Currency:    d.Currency(),
			Amount:      d.Amount,
			Description: d.Description,
		})
	}
	return rows
}

// TransfersMarkdown renders the deposits and withdrawals to a markdown table.
func TransfersMarkdown(deposits []interactivebrokers.Deposit) string {
	return renderTemplate("transfers.md", NewDepositRows(deposits))
}

// DividendsMarkdown renders the dividends and withholding tax to a markdown table.
func DividendsMarkdown(dividends []interactivebrokers.Dividend) string {
	return renderTemplate("dividends.md", NewDividendRows(dividends))
}
