package renderer

import (
	"github.com/cowwoc/capi"
	"github.com/cowwoc/capi/interactivebrokers"
)

// TradeRow is the view of one trade leg.
type TradeRow struct {
	DateTime   string
	Symbol     string
	AssetID    int
	Quantity   capi.Quantity
	Price      capi.Money
	Proceeds   capi.Money
	Commission capi.Money
	Codes      string
}

// NewTradeRows builds the trade table view, one row per trade leg in
// statement order.
func NewTradeRows(trades []interactivebrokers.Trade) []TradeRow {
	rows := make([]TradeRow, 0, len(trades))
	for _, t := range trades {
		rows = append(rows, TradeRow{
			DateTime:   t.DateTime.Format("2006-01-02 15:04:05"),
			Symbol:     t.Symbol,
			AssetID:    t.AssetID,
			Quantity:   t.Quantity,
			Price:      t.Price,
			Proceeds:   t.Proceeds,
			Commission: t.Commission,
			Codes:      t.Codes.String(),
		})
	}
	return rows
}

// TradesMarkdown renders the trades to a markdown table.
func TradesMarkdown(trades []interactivebrokers.Trade) string {
	return renderTemplate("trades.md", NewTradeRows(trades))
}
