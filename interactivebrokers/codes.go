package interactivebrokers

import (
	"fmt"
	"strings"
)

// Code annotates a trade with the reason it occurred.
type Code uint16

const (
	// Assignment indicates that the trade resulted from the assignment of an
	// option contract: the holder exercised, and the writer had to fulfill
	// the terms at the strike price.
	Assignment Code = 1 << iota
	// Expired indicates that an option position ended with an expired contract.
	Expired
	// Open indicates the acquisition of an asset. This does not necessarily
	// denote the initial acquisition of that asset.
	Open
	// Close indicates the sale, transfer, or settlement of an asset. This
	// does not necessarily signal the ending ownership of that asset.
	Close
	// PartialExecution indicates that the trade represents a partial
	// fulfillment of a requested order.
	PartialExecution
	// InternalTrade indicates that the entire trade was executed against the
	// broker or one of its affiliates rather than on the market.
	InternalTrade
	// FractionalPortionTradedInternally indicates that only the fractional
	// portion of the trade was executed internally.
	FractionalPortionTradedInternally
	// MarginViolation indicates that an asset was sold by the broker to
	// restore the account's margin balance.
	MarginViolation
)

// allCodes lists every code in display order.
var allCodes = []Code{
	Assignment,
	Expired,
	Open,
	Close,
	PartialExecution,
	InternalTrade,
	FractionalPortionTradedInternally,
	MarginViolation,
}

func (c Code) String() string {
	switch c {
	case Assignment:
		return "ASSIGNMENT"
	case Expired:
		return "EXPIRED"
	case Open:
		return "OPEN"
	case Close:
		return "CLOSE"
	case PartialExecution:
		return "PARTIAL_EXECUTION"
	case InternalTrade:
		return "INTERNAL_TRADE"
	case FractionalPortionTradedInternally:
		return "FRACTIONAL_PORTION_TRADED_INTERNALLY"
	case MarginViolation:
		return "MARGIN_VIOLATION"
	default:
		return "unknown"
	}
}

// CodeSet is the set of codes attached to one trade.
type CodeSet uint16

// NewCodeSet builds a set from the given codes.
func NewCodeSet(codes ...Code) CodeSet {
	var s CodeSet
	for _, c := range codes {
		s = s.With(c)
	}
	return s
}

func (s CodeSet) Has(c Code) bool         { return s&CodeSet(c) != 0 }
func (s CodeSet) With(c Code) CodeSet     { return s | CodeSet(c) }
func (s CodeSet) Without(c Code) CodeSet  { return s &^ CodeSet(c) }
func (s CodeSet) Union(o CodeSet) CodeSet { return s | o }
func (s CodeSet) IsEmpty() bool           { return s == 0 }

// Codes returns the members of the set in display order.
func (s CodeSet) Codes() []Code {
	var codes []Code
	for _, c := range allCodes {
		if s.Has(c) {
			codes = append(codes, c)
		}
	}
	return codes
}

func (s CodeSet) String() string {
	var names []string
	for _, c := range s.Codes() {
		names = append(names, c.String())
	}
	return strings.Join(names, ";")
}

// MarshalJSON encodes the set as an array of code names.
func (s CodeSet) MarshalJSON() ([]byte, error) {
	names := []string{}
	for _, c := range s.Codes() {
		names = append(names, c.String())
	}
	var b strings.Builder
	b.WriteByte('[')
	for i, name := range names {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "%q", name)
	}
	b.WriteByte(']')
	return []byte(b.String()), nil
}

// meaningCodes maps the free-text Meaning column of the Codes table to the
// codes it stands for. Meanings that carry no information for position
// tracking map to the empty set and are ignored.
func meaningCodes(meaning string) CodeSet {
	switch meaning {
	case "Assignment":
		return NewCodeSet(Assignment)
	case "Resulted from an Expired Position":
		return NewCodeSet(Expired)
	case "Opening Trade":
		return NewCodeSet(Open)
	case "Closing Trade":
		return NewCodeSet(Close)
	case "Partial Execution":
		return NewCodeSet(PartialExecution)
	case "The transaction was executed against IB or an affiliate":
		return NewCodeSet(InternalTrade)
	case "A portion of the order was executed against IB or an affiliate; IB acted as agent on a portion.":
		return NewCodeSet(PartialExecution, InternalTrade)
	case "The fractional portion of this trade was executed against IB or an affiliate. IB acted as agent for the whole share portion of this trade.":
		return NewCodeSet(FractionalPortionTradedInternally)
	case "IB acted as agent for both the fractional share portion and the whole share portion of this trade; the fractional share portion was executed by an IB Affiliate as riskless principal.":
		return NewCodeSet(InternalTrade)
	case "Ordered by IB (Margin Violation)":
		return NewCodeSet(MarginViolation)
	default:
		// unknown meanings carry no code
		return 0
	}
}

// parseCodes parses the Codes table into a lookup from each code token to
// the codes its meaning stands for.
func parseCodes(sections []section) (map[string]CodeSet, error) {
	if len(sections) != 1 {
		return nil, fmt.Errorf("%w: want exactly one Codes section, got %d", ErrSchema, len(sections))
	}
	rows, err := sections[0].records()
	if err != nil {
		return nil, err
	}
	tokenCodes := make(map[string]CodeSet)
	for _, row := range rows {
		if err := requireData(row); err != nil {
			return nil, err
		}
		token := row.Get("Code")
		codes := meaningCodes(row.Get("Meaning"))
		if codes.IsEmpty() {
			continue
		}
		if _, ok := tokenCodes[token]; ok {
			return nil, fmt.Errorf("%w: code %q has multiple meanings", ErrSchema, token)
		}
		tokenCodes[token] = codes
	}
	return tokenCodes, nil
}

// resolveCodes resolves a trade row's semicolon-separated code tokens
// through the Codes lookup. A token the statement never declared is fatal.
func resolveCodes(tokens string, tokenCodes map[string]CodeSet) (CodeSet, error) {
	var codes CodeSet
	for _, token := range strings.Split(tokens, ";") {
		entry, ok := tokenCodes[token]
		if !ok {
			return 0, fmt.Errorf("%w: unknown code %q", ErrSchema, token)
		}
		codes = codes.Union(entry)
	}
	return codes, nil
}
