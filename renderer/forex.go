package renderer

import (
	"github.com/cowwoc/capi"
	"github.com/cowwoc/capi/interactivebrokers"
)

// ForexRow is the view of one currency conversion.
type ForexRow struct {
	DateTime   string
	Pair       string
	Quantity   capi.Quantity
	Price      capi.Quantity
	Proceeds   capi.Money
	Commission capi.Money
}

// NewForexRows builds the conversion table view in statement order.
func NewForexRows(forex []interactivebrokers.Forex) []ForexRow {
	rows := make([]ForexRow, 0, len(forex))
	for _, f := range forex {
		rows = append(rows, ForexRow{
			DateTime:   f.DateTime.Format("2006-01-02 15:04:05"),
			Pair:       f.TargetCurrency + "." + f.SourceCurrency,
			Quantity:   f.Quantity,
			Price:      f.Price,
			Proceeds:   f.Proceeds,
			Commission: f.Commission,
		})
	}
	return rows
}

// ForexMarkdown renders the currency conversions to a markdown table.
func ForexMarkdown(forex []interactivebrokers.Forex) string {
	return renderTemplate("forex.md", NewForexRows(forex))
}
