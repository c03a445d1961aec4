package interactivebrokers

import (
	"encoding/json"
	"io"
	"time"

	"github.com/cowwoc/capi"
	"github.com/cowwoc/capi/date"
)

// this file handles the export of a parsed statement for downstream tooling.
// The format is a single human-readable JSON document.

// EncodeStatement writes the statement to w as indented JSON.
func EncodeStatement(w io.Writer, statement *Statement) error {
	type jtrade struct {
		DateTime        time.Time     `json:"dateTime"`
		Symbol          string        `json:"symbol"`
		AssetID         int           `json:"assetId"`
		Quantity        capi.Quantity `json:"quantity"`
		Price           capi.Money    `json:"price"`
		Proceeds        capi.Money    `json:"proceeds"`
		Commission      capi.Money    `json:"commission"`
		Currency        string        `json:"currency"`
		Codes           CodeSet       `json:"codes"`
		UnderlyingAsset string        `json:"underlyingAsset,omitempty"`
		StrikePrice     capi.Quantity `json:"strikePrice"`
	}
	type jforex struct {
		DateTime       time.Time     `json:"dateTime"`
		SourceCurrency string        `json:"sourceCurrency"`
		TargetCurrency string        `json:"targetCurrency"`
		Quantity       capi.Quantity `json:"quantity"`
		Price          capi.Quantity `json:"price"`
		Proceeds       capi.Money    `json:"proceeds"`
		Commission     capi.Money    `json:"commission"`
	}
	type jcash struct {
		Currency string     `json:"currency"`
		Opening  capi.Money `json:"opening"`
		Closing  capi.Money `json:"closing"`
	}
	type jtransfer struct {
		Date        date.Date  `json:"date"`
		Currency    string     `json:"currency"`
		Amount      capi.Money `json:"amount"`
		Description string     `json:"description"`
	}
	type jstatement struct {
		Header struct {
			StartDate   date.Date `json:"startDate"`
			EndDate     date.Date `json:"endDate"`
			GeneratedAt time.Time `json:"generatedAt"`
		} `json:"header"`
		Account struct {
			Number string `json:"number"`
			Owner  string `json:"owner"`
		} `json:"account"`
		CashActivities map[string]jcash `json:"cashActivities"`
		Trades         []jtrade         `json:"trades"`
		Forex          []jforex         `json:"forex"`
		Deposits       []jtransfer      `json:"deposits"`
		Dividends      []jtransfer      `json:"dividends"`
	}

	var out jstatement
	out.Header.StartDate = statement.Header.StartDate
	out.Header.EndDate = statement.Header.EndDate
	out.Header.GeneratedAt = statement.Header.GeneratedAt
	out.Account.Number = statement.Account.Number
	out.Account.Owner = statement.Account.Owner
	out.CashActivities = make(map[string]jcash, len(statement.CashActivities))
	for currency, a := range statement.CashActivities {
		out.CashActivities[currency] = jcash{
			Currency: a.Currency,
			Opening:  a.Opening,
			Closing:  a.Closing,
		}
	}
	out.Trades = make([]jtrade, 0, len(statement.Trades))
	for _, t := range statement.Trades {
		out.Trades = append(out.Trades, jtrade{
			DateTime:        t.DateTime,
			Symbol:          t.Symbol,
			AssetID:         t.AssetID,
			Quantity:        t.Quantity,
			Price:           t.Price,
			Proceeds:        t.Proceeds,
			Commission:      t.Commission,
			Currency:        t.Currency(),
			Codes:           t.Codes,
			UnderlyingAsset: t.UnderlyingAsset,
			StrikePrice:     t.StrikePrice,
		})
	}
	out.Forex = make([]jforex, 0, len(statement.Forex))
	for _, f := range statement.Forex {
		out.Forex = append(out.Forex, jforex{
			DateTime:       f.DateTime,
			SourceCurrency: f.SourceCurrency,
			TargetCurrency: f.TargetCurrency,
			Quantity:       f.Quantity,
			Price:          f.Price,
			Proceeds:       f.Proceeds,
			Commission:     f.Commission,
		})
	}
	out.Deposits = make([]jtransfer, 0, len(statement.Deposits))
	for _, d := range statement.Deposits {
		out.Deposits = append(out.Deposits, jtransfer{
			Date:        d.Date,
			Currency:    d.Currency(),
			Amount:      d.Amount,
			Description: d.Description,
		})
	}
	out.Dividends = make([]jtransfer, 0, len(statement.Dividends))
	for _, d := range statement.Dividends {
		out.Dividends = append(out.Dividends, jtransfer{
			Date:        d.Date,
			Currency:    d.Currency(),
			Amount:      d.Amount,
			Description: d.Description,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
