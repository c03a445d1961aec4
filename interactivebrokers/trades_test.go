package interactivebrokers

import (
	"errors"
	"testing"

	"github.com/cowwoc/capi"
)

// tradesHeader is the column layout trade sections are written with.
const tradesHeader = "Trades,Header,DataDiscriminator,Asset Category,Currency,Symbol,Date/Time,Quantity,T. Price,Proceeds,Comm/Fee,Code"

func tradesSection(rows ...string) section {
	return section{lines: append([]string{tradesHeader}, rows...)}
}

func testTokenCodes() map[string]CodeSet {
	return map[string]CodeSet{
		"O":  NewCodeSet(Open),
		"C":  NewCodeSet(Close),
		"P":  NewCodeSet(PartialExecution),
		"IA": NewCodeSet(InternalTrade),
		"FP": NewCodeSet(FractionalPortionTradedInternally),
	}
}

func TestParseTrades_OpenThenClose(t *testing.T) {
	sections := []section{tradesSection(
		`Trades,Data,Order,Stocks,USD,AAPL,"2022-06-17, 09:30:01",10,100,-1000,-1,O`,
		`Trades,Data,Order,Stocks,USD,AAPL,"2022-06-21, 11:00:00",-10,110,1100,-1,C`,
		`Trades,Data,Order,Stocks,USD,AAPL,"2022-06-22, 10:00:00",5,105,-525,-1,O`,
	)}
	trades, err := parseTrades(sections, testTokenCodes(), nil)
	if err != nil {
		t.Fatalf("parseTrades() error = %v", err)
	}
	if len(trades) != 3 {
		t.Fatalf("parseTrades() returned %d trades, want 3", len(trades))
	}
	if trades[0].AssetID != 0 || trades[1].AssetID != 0 {
		t.Errorf("the opening and closing trades should share asset id 0, got %d and %d",
			trades[0].AssetID, trades[1].AssetID)
	}
	// Reopening a fully closed position starts a new continuously-held position.
	if trades[2].AssetID != 1 {
		t.Errorf("reopened position asset id = %d, want 1", trades[2].AssetID)
	}
	if !trades[0].Quantity.Equal(capi.Q(10)) {
		t.Errorf("quantity = %v, want 10", trades[0].Quantity)
	}
	if !trades[0].Proceeds.Equal(capi.M(-1000, "USD")) {
		t.Errorf("proceeds = %v, want -1000 USD", trades[0].Proceeds)
	}
	if got := trades[0].Currency(); got != "USD" {
		t.Errorf("currency = %q, want USD", got)
	}
	if want := NewCodeSet(Open); trades[0].Codes != want {
		t.Errorf("codes = %v, want %v", trades[0].Codes, want)
	}
}

// A single row that sells through zero is split into a closing trade of the
// held quantity and an opening trade of the remainder, with proceeds and
// commission allocated proportionally.
func TestParseTrades_SignFlipSplit(t *testing.T) {
	carryover := map[string]MarkToMarket{
		"AAPL": {StartQuantity: capi.Q(5).Round(), EndQuantity: capi.Q(-3).Round()},
	}
	sections := []section{tradesSection(
		`Trades,Data,Order,Stocks,USD,AAPL,"2022-06-17, 09:30:01",-8,10,80,-8,O;C`,
	)}
	trades, err := parseTrades(sections, testTokenCodes(), carryover)
	if err != nil {
		t.Fatalf("parseTrades() error = %v", err)
	}
	if len(trades) != 2 {
		t.Fatalf("parseTrades() returned %d trades, want 2", len(trades))
	}

	closing, opening := trades[0], trades[1]
	if !closing.Quantity.Equal(capi.Q(-5)) {
		t.Errorf("closing quantity = %v, want -5", closing.Quantity)
	}
	if !closing.Proceeds.Equal(capi.M(50, "USD")) {
		t.Errorf("closing proceeds = %v, want 50 USD", closing.Proceeds)
	}
	if !closing.Commission.Equal(capi.M(-5, "USD")) {
		t.Errorf("closing commission = %v, want -5 USD", closing.Commission)
	}
	if want := NewCodeSet(Close); closing.Codes != want {
		t.Errorf("closing codes = %v, want %v", closing.Codes, want)
	}

	if !opening.Quantity.Equal(capi.Q(-3)) {
		t.Errorf("opening quantity = %v, want -3", opening.Quantity)
	}
	if !opening.Proceeds.Equal(capi.M(30, "USD")) {
		t.Errorf("opening proceeds = %v, want 30 USD", opening.Proceeds)
	}
	if !opening.Commission.Equal(capi.M(-3, "USD")) {
		t.Errorf("opening commission = %v, want -3 USD", opening.Commission)
	}
	if want := NewCodeSet(Open); opening.Codes != want {
		t.Errorf("opening codes = %v, want %v", opening.Codes, want)
	}
	if closing.AssetID == opening.AssetID {
		t.Errorf("the opening trade must start a new position, both got asset id %d", closing.AssetID)
	}
	// Both legs keep the row's price and timestamp.
	if !closing.Price.Equal(opening.Price) {
		t.Errorf("price differs between legs: %v vs %v", closing.Price, opening.Price)
	}
	if !closing.DateTime.Equal(opening.DateTime) {
		t.Errorf("date/time differs between legs: %v vs %v", closing.DateTime, opening.DateTime)
	}
}

// A position carried over from before the period continues under its seeded
// asset id instead of opening a new one.
func TestParseTrades_CarryoverSeedsPositions(t *testing.T) {
	carryover := map[string]MarkToMarket{
		"AAPL": {StartQuantity: capi.Q(5).Round(), EndQuantity: capi.Q(0).Round()},
	}
	sections := []section{tradesSection(
		`Trades,Data,Order,Stocks,USD,AAPL,"2022-06-17, 09:30:01",-5,10,50,-1,C`,
	)}
	trades, err := parseTrades(sections, testTokenCodes(), carryover)
	if err != nil {
		t.Fatalf("parseTrades() error = %v", err)
	}
	if len(trades) != 1 {
		t.Fatalf("parseTrades() returned %d trades, want 1", len(trades))
	}
	if trades[0].AssetID != 0 {
		t.Errorf("asset id = %d, want the seeded id 0", trades[0].AssetID)
	}
}

// When a section ends, the symbols it referenced start over in the next
// section, while carried-over symbols it never touched keep their seeded
// position.
func TestParseTrades_SectionBoundaryResetsReferencedSymbols(t *testing.T) {
	carryover := map[string]MarkToMarket{
		"AAPL": {StartQuantity: capi.Q(10).Round(), EndQuantity: capi.Q(10).Round()},
		"MSFT": {StartQuantity: capi.Q(3).Round(), EndQuantity: capi.Q(0).Round()},
	}
	sections := []section{
		tradesSection(
			`Trades,Data,Order,Stocks,USD,AAPL,"2022-06-17, 09:30:01",2,10,-20,-1,O`,
		),
		tradesSection(
			`Trades,Data,Order,Stocks,USD,AAPL,"2022-06-21, 09:30:01",1,10,-10,-1,O`,
			`Trades,Data,Order,Stocks,USD,MSFT,"2022-06-21, 11:00:00",-3,10,30,-1,C`,
		),
	}
	trades, err := parseTrades(sections, testTokenCodes(), carryover)
	if err != nil {
		t.Fatalf("parseTrades() error = %v", err)
	}
	if len(trades) != 3 {
		t.Fatalf("parseTrades() returned %d trades, want 3", len(trades))
	}
	// AAPL and MSFT are seeded as ids 0 and 1 in symbol order.
	if trades[0].AssetID != 0 {
		t.Errorf("first AAPL trade asset id = %d, want the seeded id 0", trades[0].AssetID)
	}
	// AAPL was referenced in the first section, so the second section treats
	// it as a fresh position.
	if trades[1].AssetID == trades[0].AssetID {
		t.Errorf("AAPL should get a fresh asset id after the section boundary, got %d again", trades[1].AssetID)
	}
	// MSFT was not referenced in the first section and keeps its seeded id.
	if trades[2].AssetID != 1 {
		t.Errorf("MSFT trade asset id = %d, want the seeded id 1", trades[2].AssetID)
	}
}

// InternalTrade subsumes FractionalPortionTradedInternally when a row is
// annotated with both.
func TestParseTrades_InternalTradeSubsumesFractional(t *testing.T) {
	sections := []section{tradesSection(
		`Trades,Data,Order,Stocks,USD,AAPL,"2022-06-17, 09:30:01",1.5,10,-15,-1,O;IA;FP`,
	)}
	trades, err := parseTrades(sections, testTokenCodes(), nil)
	if err != nil {
		t.Fatalf("parseTrades() error = %v", err)
	}
	if want := NewCodeSet(Open, InternalTrade); trades[0].Codes != want {
		t.Errorf("codes = %v, want %v", trades[0].Codes, want)
	}
}

func TestParseTrades_Options(t *testing.T) {
	sections := []section{tradesSection(
		`Trades,Data,Order,Equity and Index Options,USD,SQQQ 17JUN22 42.0 P,"2022-06-13, 12:20:39",1,2.05,-205,-1.05,O`,
	)}
	trades, err := parseTrades(sections, testTokenCodes(), nil)
	if err != nil {
		t.Fatalf("parseTrades() error = %v", err)
	}
	trade := trades[0]
	if trade.Symbol != "PUT SQQQ 17JUN22@42.0000" {
		t.Errorf("symbol = %q, want the normalized option symbol", trade.Symbol)
	}
	if trade.UnderlyingAsset != "SQQQ" {
		t.Errorf("underlying asset = %q, want SQQQ", trade.UnderlyingAsset)
	}
	if !trade.StrikePrice.Equal(capi.Q(42)) {
		t.Errorf("strike price = %v, want 42", trade.StrikePrice)
	}
}

func TestParseTrades_Errors(t *testing.T) {
	tests := []struct {
		name string
		row  string
	}{
		{"zero quantity", `Trades,Data,Order,Stocks,USD,AAPL,"2022-06-17, 09:30:01",0,10,0,0,O`},
		{"unknown code", `Trades,Data,Order,Stocks,USD,AAPL,"2022-06-17, 09:30:01",1,10,-10,-1,Z`},
		{"empty code", `Trades,Data,Order,Stocks,USD,AAPL,"2022-06-17, 09:30:01",1,10,-10,-1,`},
		{"negative price", `Trades,Data,Order,Stocks,USD,AAPL,"2022-06-17, 09:30:01",1,-10,10,-1,O`},
		{"unsupported category", `Trades,Data,Order,Bonds,USD,AAPL,"2022-06-17, 09:30:01",1,10,-10,-1,O`},
		{"bad date", `Trades,Data,Order,Stocks,USD,AAPL,June 17,1,10,-10,-1,O`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseTrades([]section{tradesSection(tt.row)}, testTokenCodes(), nil)
			if !errors.Is(err, ErrSchema) {
				t.Fatalf("parseTrades() error = %v, want ErrSchema", err)
			}
		})
	}
}

func TestParseTrades_SkipsAggregateRows(t *testing.T) {
	sections := []section{tradesSection(
		`Trades,Data,Order,Stocks,USD,AAPL,"2022-06-17, 09:30:01",10,100,-1000,-1,O`,
		`Trades,SubTotal,,Stocks,USD,AAPL,,10,,-1000,-1,`,
		`Trades,Total,,Stocks,USD,,,,,-1000,-1,`,
	)}
	trades, err := parseTrades(sections, testTokenCodes(), nil)
	if err != nil {
		t.Fatalf("parseTrades() error = %v", err)
	}
	if len(trades) != 1 {
		t.Errorf("parseTrades() returned %d trades, want 1", len(trades))
	}
}
