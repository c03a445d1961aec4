package interactivebrokers

import (
	"fmt"

	"github.com/cowwoc/capi"
)

// CashActivity is the per-currency cash summary of the statement period.
// Balances may be negative if the investor owes money.
type CashActivity struct {
	Currency string
	Opening  capi.Money
	Closing  capi.Money
}

// MarkToMarket is the quantity of a position held at the start and end of
// the statement's period, keyed by normalized symbol in the statement.
type MarkToMarket struct {
	StartQuantity capi.Quantity
	EndQuantity   capi.Quantity
}

// parseCashActivities parses the Cash Report sections into a per-currency
// summary. The "Base Currency Summary" rows repeat the data of a named
// currency and are skipped.
func parseCashActivities(sections []section) (map[string]CashActivity, error) {
	currencies := make(map[string]bool)
	opening := make(map[string]capi.Money)
	closing := make(map[string]capi.Money)

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
			if currency == "Base Currency Summary" {
				// The data is repeated with the currency's name explicitly mentioned.
				continue
			}
			currencies[currency] = true

			total := row.Get("Total")
			switch name := row.Get("Currency Summary"); name {
			case "Starting Cash":
				if previous, ok := opening[currency]; ok {
					return nil, fmt.Errorf("%w: %s already had an opening balance of %s", ErrSchema, currency, previous)
				}
				amount, err := capi.ParseMoney(total, currency)
				if err != nil {
					return nil, fmt.Errorf("%w: invalid opening balance in row %v: %v", ErrSchema, row, err)
				}
				opening[currency] = amount
			case "Ending Cash":
				if previous, ok := closing[currency]; ok {
					return nil, fmt.Errorf("%w: %s already had a closing balance of %s", ErrSchema, currency, previous)
				}
				amount, err := capi.ParseMoney(total, currency)
				if err != nil {
					return nil, fmt.Errorf("%w: invalid closing balance in row %v: %v", ErrSchema, row, err)
				}
				closing[currency] = amount
			case "Ending Settled Cash", "Deposits", "Trades (Sales)", "Trades (Purchase)", "Commissions",
				"Dividends", "Payment In Lieu of Dividends", "Withholding Tax", "Account Transfers",
				"Broker Interest Paid and Received":
				// ignore
			default:
				return nil, fmt.Errorf("%w: unsupported currency summary %q in row %v", ErrSchema, name, row)
			}
		}
	}

	activities := make(map[string]CashActivity, len(currencies))
	for currency := range currencies {
		start, ok := opening[currency]
		if !ok {
			return nil, fmt.Errorf("%w: %s has no opening balance", ErrSchema, currency)
		}
		end, ok := closing[currency]
		if !ok {
			return nil, fmt.Errorf("%w: %s has no closing balance", ErrSchema, currency)
		}
		activities[currency] = CashActivity{
			Currency: currency,
			Opening:  start,
			Closing:  end,
		}
	}
	return activities, nil
}

// parseMarkToMarket parses the mark-to-market performance section, which
// compares the portfolio between the beginning and end of the statement's
// period. Only stock and option rows carry positions; the various totals
// and the forex rows are skipped.
func parseMarkToMarket(sections []section) (map[string]MarkToMarket, error) {
	if len(sections) != 1 {
		return nil, fmt.Errorf("%w: want exactly one Mark-to-Market section, got %d", ErrSchema, len(sections))
	}
	carryover := make(map[string]MarkToMarket)
	rows, err := sections[0].records()
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		if err := requireData(row); err != nil {
			return nil, err
		}
		switch category := row.Get("Asset Category"); category {
		case "Stocks", "Equity and Index Options":
		case "Total", "Forex", "Total (All Assets)", "Broker Interest Paid and Received":
			continue
		default:
			return nil, fmt.Errorf("%w: unsupported asset category %q in row %v", ErrSchema, category, row)
		}
		symbol, err := parseSymbol(row.Get("Symbol"))
		if err != nil {
			return nil, err
		}
		start, err := capi.ParseQuantity(row.Get("Prior Quantity"))
		if err != nil {
			return nil, fmt.Errorf("%w: invalid prior quantity in row %v: %v", ErrSchema, row, err)
		}
		end, err := capi.ParseQuantity(row.Get("Current Quantity"))
		if err != nil {
			return nil, fmt.Errorf("%w: invalid current quantity in row %v: %v", ErrSchema, row, err)
		}
		carryover[symbol.value] = MarkToMarket{
			StartQuantity: start.Round(),
			EndQuantity:   end.Round(),
		}
	}
	return carryover, nil
}
