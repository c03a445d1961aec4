package interactivebrokers

import (
	"fmt"
	"strings"
	"time"

	"github.com/cowwoc/capi"
	"github.com/cowwoc/capi/date"
)

// Forex is a currency-pair conversion. Quantity is expressed in the target
// currency: negative if it is being sold, positive if it is being bought.
type Forex struct {
	DateTime       time.Time
	SourceCurrency string
	TargetCurrency string
	Quantity       capi.Quantity
	// Price is the conversion rate of each unit.
	Price capi.Quantity
	// Proceeds is quoted in the source currency.
	Proceeds capi.Money
	// Commission is always quoted in USD.
	Commission capi.Money
}

// Deposit is a deposit of funds into, or withdrawal of funds out of, the
// account. Transfers settle at the end of the business day.
type Deposit struct {
	Date date.Date
	// Amount is negative if the currency was withdrawn, positive if it was deposited.
	Amount      capi.Money
	Description string
}

// Currency returns the currency that was transferred.
func (d Deposit) Currency() string { return d.Amount.Currency() }

// Dividend is a cash dividend paid out, or tax withheld, for a stock that
// pays out dividends.
type Dividend struct {
	Date date.Date
	// Amount is negative for withheld tax, positive for a payout.
	Amount      capi.Money
	Description string
}

// Currency returns the currency that was transferred.
func (d Dividend) Currency() string { return d.Amount.Currency() }

// parseForex parses the Trades sections whose asset category is Forex.
// The symbol names the currency pair, e.g. "EUR.USD" for euros quoted in
// US dollars. Amounts are kept exactly as the statement wrote them.
func parseForex(sections []section) ([]Forex, error) {
	exchanges := []Forex{}
	for _, sec := range sections {
		rows, err := sec.records()
		if err != nil {
			return nil, err
		}
		for _, row := range rows {
			skip, err := skipAggregate(row)
			if err != nil {
				return nil, err
			}
			if skip {
				continue
			}
			symbol := row.Get("Symbol")
			pair := strings.Split(symbol, ".")
			if len(pair) != 2 || pair[0] == "" || pair[1] == "" {
				return nil, fmt.Errorf("%w: malformed currency pair %q in row %v", ErrSchema, symbol, row)
			}
			target, source := pair[0], pair[1]
			dateTime, err := time.Parse(dateTimeLayout, row.Get("Date/Time"))
			if err != nil {
				return nil, fmt.Errorf("%w: invalid forex date/time in row %v: %v", ErrSchema, row, err)
			}
			quantity, err := capi.ParseQuantity(row.Get("Quantity"))
			if err != nil {
				return nil, fmt.Errorf("%w: invalid quantity in row %v: %v", ErrSchema, row, err)
			}
			price, err := capi.ParseQuantity(row.Get("T. Price"))
			if err != nil {
				return nil, fmt.Errorf("%w: invalid price in row %v: %v", ErrSchema, row, err)
			}
			if price.Sign() < 0 {
				return nil, fmt.Errorf("%w: negative price %s in row %v", ErrSchema, price, row)
			}
			proceeds, err := capi.ParseMoney(row.Get("Proceeds"), source)
			if err != nil {
				return nil, fmt.Errorf("%w: invalid proceeds in row %v: %v", ErrSchema, row, err)
			}
			commission, err := capi.ParseMoney(row.Get("Comm in USD"), "USD")
			if err != nil {
				return nil, fmt.Errorf("%w: invalid commission in row %v: %v", ErrSchema, row, err)
			}
			exchanges = append(exchanges, Forex{
				DateTime:       dateTime,
				SourceCurrency: source,
				TargetCurrency: target,
				Quantity:       quantity,
				Price:          price,
				Proceeds:       proceeds,
				Commission:     commission,
			})
		}
	}
	return exchanges, nil
}

// parseDeposits parses the Deposits & Withdrawals sections. The per-currency
// total rows are marked by a Currency value starting with "Total".
func parseDeposits(sections []section) ([]Deposit, error) {
	deposits := []Deposit{}
	for _, sec := range sections {
		rows, err := sec.records()
		if err != nil {
			return nil, err
		}
		for _, row := range rows {
			if err := requireData(row); err != nil {
				return nil, err
			}
			currency := row.Get("Currency")
			if strings.HasPrefix(currency, "Total") {
				continue
			}
			day, err := date.Parse(row.Get("Settle Date"))
			if err != nil {
				return nil, fmt.Errorf("%w: invalid settle date in row %v: %v", ErrSchema, row, err)
			}
			amount, err := capi.ParseMoney(row.Get("Amount"), currency)
			if err != nil {
				return nil, fmt.Errorf("%w: invalid amount in row %v: %v", ErrSchema, row, err)
			}
			deposits = append(deposits, Deposit{
				Date:        day,
				Amount:      amount,
				Description: row.Get("Description"),
			})
		}
	}
	return deposits, nil
}

// parseDividends parses the Dividends and Withholding Tax sections.
func parseDividends(sections []section) ([]Dividend, error) {
	dividends := []Dividend{}
	for _, sec := range sections {
		rows, err := sec.records()
		if err != nil {
			return nil, err
		}
		for _, row := range rows {
			if err := requireData(row); err != nil {
				return nil, err
			}
			currency := row.Get("Currency")
			if strings.HasPrefix(currency, "Total") {
				continue
			}
			day, err := date.Parse(row.Get("Date"))
			if err != nil {
				return nil, fmt.Errorf("%w: invalid date in row %v: %v", ErrSchema, row, err)
			}
			amount, err := capi.ParseMoney(row.Get("Amount"), currency)
			if err != nil {
				return nil, fmt.Errorf("%w: invalid amount in row %v: %v", ErrSchema, row, err)
			}
			dividends = append(dividends, Dividend{
				Date:        day,
				Amount:      amount,
				Description: row.Get("Description"),
			})
		}
	}
	return dividends, nil
}
