package interactivebrokers

import (
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/cowwoc/capi"
)

// Trade is one economic trade leg. A single statement row can produce two
// Trades when it closes an existing position and opens the opposite one.
type Trade struct {
	DateTime time.Time
	// Symbol is the normalized symbol, see parseSymbol.
	Symbol string
	// AssetID groups the trades belonging to one continuously-held position.
	// Two option contracts on the same underlying get distinct ids, and so
	// does a symbol that is closed and later reopened.
	AssetID int
	// Quantity is negative if securities are being sold, positive if they
	// are being bought. It is never zero.
	Quantity capi.Quantity
	// Price is the price of each unit.
	Price capi.Money
	// Proceeds is the total amount received from the trade, negative if the
	// trade resulted in a cost.
	Proceeds capi.Money
	// Commission is typically negative; it may be positive in the case of
	// liquidity rebates, exchange incentives, or accounting corrections.
	Commission capi.Money
	Codes      CodeSet
	// UnderlyingAsset is the symbol of the underlying asset if this asset is
	// an option; otherwise empty.
	UnderlyingAsset string
	// StrikePrice is the strike price if this asset is an option; otherwise zero.
	StrikePrice capi.Quantity
}

// Currency returns the currency all the trade's amounts are quoted in.
func (t Trade) Currency() string { return t.Proceeds.Currency() }

// positions tracks the signed running total of every continuously-held
// position during one parse, and hands out a fresh asset id each time a
// position opens. It is the only mutable state of the trade reconstruction.
type positions struct {
	symbolToAsset map[string]int
	totals        map[int]capi.Quantity
	nextID        int
}

// newPositions seeds the tracker with the positions that already existed
// before the statement period began, so their first trade continues the
// carried-over position instead of opening a new one.
func newPositions(carryover map[string]MarkToMarket) *positions {
	p := &positions{
		symbolToAsset: make(map[string]int),
		totals:        make(map[int]capi.Quantity),
	}
	for _, symbol := range slices.Sorted(maps.Keys(carryover)) {
		id := p.nextID
		p.nextID++
		p.totals[id] = carryover[symbol].StartQuantity
		p.symbolToAsset[symbol] = id
	}
	return p
}

// lookup returns the asset id of the symbol's open position, if any.
func (p *positions) lookup(symbol string) (int, bool) {
	id, ok := p.symbolToAsset[symbol]
	return id, ok
}

// total returns the running total of the given asset id, zero if unknown.
func (p *positions) total(id int) capi.Quantity { return p.totals[id] }

func (p *positions) setTotal(id int, total capi.Quantity) { p.totals[id] = total }

// open allocates a fresh asset id for the symbol and records its total.
func (p *positions) open(symbol string, total capi.Quantity) int {
	id := p.nextID
	p.nextID++
	p.symbolToAsset[symbol] = id
	p.totals[id] = total
	return id
}

// retire closes the position: the id's running total is dropped and the
// symbol is unmapped, so a later row reopening it gets a fresh id.
func (p *positions) retire(symbol string, id int) {
	delete(p.totals, id)
	delete(p.symbolToAsset, symbol)
}

// forget drops only the symbol-to-id mapping, keeping the running total.
func (p *positions) forget(symbol string) { delete(p.symbolToAsset, symbol) }

// parseTrades reconstructs the trades from the Trades sections (excluding
// Forex), synthesizing split trades where a row crosses through a zero net
// position.
func parseTrades(sections []section, tokenCodes map[string]CodeSet, carryover map[string]MarkToMarket) ([]Trade, error) {
	trades := []Trade{}
	book := newPositions(carryover)

	for _, sec := range sections {
		rows, err := sec.records()
		if err != nil {
			return nil, err
		}
		referenced := make(map[string]bool)
		for _, row := range rows {
			skip, err := skipAggregate(row)
			if err != nil {
				return nil, err
			}
			if skip {
				continue
			}

			codes, err := resolveCodes(row.Get("Code"), tokenCodes)
			if err != nil {
				return nil, fmt.Errorf("%w in row %v", err, row)
			}
			// InternalTrade implies more than FractionalPortionTradedInternally
			// but some trades are annotated with both codes.
			if codes.Has(InternalTrade) {
				codes = codes.Without(FractionalPortionTradedInternally)
			}

			var symbol parsedSymbol
			switch category := row.Get("Asset Category"); category {
			case "Stocks", "Equity and Index Options":
				symbol, err = parseSymbol(row.Get("Symbol"))
				if err != nil {
					return nil, err
				}
			default:
				return nil, fmt.Errorf("%w: unsupported asset category %q in row %v", ErrSchema, category, row)
			}

			dateTime, err := time.Parse(dateTimeLayout, row.Get("Date/Time"))
			if err != nil {
				return nil, fmt.Errorf("%w: invalid trade date/time in row %v: %v", ErrSchema, row, err)
			}
			quantity, err := capi.ParseQuantity(row.Get("Quantity"))
			if err != nil {
				return nil, fmt.Errorf("%w: invalid quantity in row %v: %v", ErrSchema, row, err)
			}
			quantity = quantity.Round()
			if quantity.IsZero() {
				return nil, fmt.Errorf("%w: zero trade quantity in row %v", ErrSchema, row)
			}
			currency := row.Get("Currency")
			price, err := parseAmount(row, "T. Price", currency)
			if err != nil {
				return nil, err
			}
			if price.IsNegative() {
				return nil, fmt.Errorf("%w: negative price %s in row %v", ErrSchema, price, row)
			}
			proceeds, err := parseAmount(row, "Proceeds", currency)
			if err != nil {
				return nil, err
			}
			commission, err := parseAmount(row, "Comm/Fee", currency)
			if err != nil {
				return nil, err
			}

			referenced[symbol.value] = true
			assetID, held := book.lookup(symbol.value)
			var oldTotal capi.Quantity
			if held {
				oldTotal = book.total(assetID)
			}
			newTotal := oldTotal.Add(quantity)

			leg := Trade{
				DateTime:        dateTime,
				Symbol:          symbol.value,
				Quantity:        quantity,
				Price:           price,
				Proceeds:        proceeds,
				Commission:      commission,
				Codes:           codes,
				UnderlyingAsset: symbol.underlyingAsset,
				StrikePrice:     symbol.strikePrice,
			}

			switch {
			case oldTotal.Sign() != 0 && oldTotal.Sign() == -newTotal.Sign():
				// The row is large enough to close the current stance and
				// open the opposite one: either buying to close a short then
				// going long, or selling to close a long then going short.
				// Split it into two trades, allocating proceeds and
				// commission proportionally to the closed quantity.
				proportion := oldTotal.Abs().Div(quantity.Abs())
				closeProceeds := proceeds.Mul(proportion)
				closeCommission := commission.Mul(proportion)

				closing := leg
				closing.AssetID = assetID
				closing.Quantity = oldTotal.Neg()
				closing.Proceeds = closeProceeds
				closing.Commission = closeCommission
				closing.Codes = codes.Without(Open)
				trades = append(trades, closing)
				book.retire(symbol.value, assetID)

				opening := leg
				opening.AssetID = book.open(symbol.value, newTotal)
				opening.Quantity = newTotal
				opening.Proceeds = proceeds.Sub(closeProceeds)
				opening.Commission = commission.Sub(closeCommission)
				opening.Codes = codes.Without(Close)
				trades = append(trades, opening)

			case newTotal.IsZero():
				if !held {
					return nil, fmt.Errorf("%w: closing an unknown position %q in row %v", ErrSchema, symbol.value, row)
				}
				leg.AssetID = assetID
				trades = append(trades, leg)
				book.retire(symbol.value, assetID)

			default:
				if !held {
					// The opening of a new trading position.
					assetID = book.open(symbol.value, newTotal)
				} else {
					book.setTotal(assetID, newTotal)
				}
				leg.AssetID = assetID
				trades = append(trades, leg)
			}
		}
		// Assign a different id per section, but only reset the symbols
		// that were referenced; otherwise a position carried over from the
		// previous statement could be dropped before it is first traded.
		for symbol := range referenced {
			book.forget(symbol)
		}
	}
	return trades, nil
}

// parseAmount parses a monetary column of a trade row, normalized to the
// statement's scale.
func parseAmount(row Record, column, currency string) (capi.Money, error) {
	m, err := capi.ParseMoney(row.Get(column), currency)
	if err != nil {
		return capi.Money{}, fmt.Errorf("%w: invalid %s in row %v: %v", ErrSchema, column, row, err)
	}
	return m.Round(), nil
}
