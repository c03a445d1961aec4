package interactivebrokers

import (
	"fmt"
	"strings"

	"github.com/cowwoc/capi"
)

// parsedSymbol is the normalized identity of an instrument. The statement
// writes the same option contract with incidental formatting differences;
// normalizing here lets every later stage treat rows referencing the same
// contract as the same symbol key.
type parsedSymbol struct {
	// value is the normalized display form, e.g. "PUT SQQQ 17JUN22@42.0000"
	// for an option, or the plain token for anything else.
	value           string
	underlyingAsset string        // empty unless the instrument is an option
	strikePrice     capi.Quantity // zero unless the instrument is an option
}

// parseSymbol parses a raw symbol token. A token without internal whitespace
// is a plain instrument. Otherwise it must be an option contract written as
// "UNDERLYING EXPIRY STRIKE C|P", e.g. "SQQQ 17JUN22 42.0 P".
func parseSymbol(symbol string) (parsedSymbol, error) {
	tokens := strings.Split(symbol, " ")
	if len(tokens) == 1 {
		if tokens[0] == "" {
			return parsedSymbol{}, fmt.Errorf("%w: empty symbol", ErrSchema)
		}
		return parsedSymbol{value: tokens[0]}, nil
	}
	if len(tokens) != 4 {
		return parsedSymbol{}, fmt.Errorf("%w: symbol %q is neither a plain instrument nor an option contract", ErrSchema, symbol)
	}
	underlying := tokens[0]
	expiry := tokens[1]
	strike, err := capi.ParseQuantity(tokens[2])
	if err != nil {
		return parsedSymbol{}, fmt.Errorf("%w: symbol %q has an invalid strike: %v", ErrSchema, symbol, err)
	}
	strike = strike.Round()
	if strike.Sign() < 0 {
		return parsedSymbol{}, fmt.Errorf("%w: symbol %q has a negative strike", ErrSchema, symbol)
	}
	var kind string
	switch tokens[3] {
	case "C":
		kind = "CALL"
	case "P":
		kind = "PUT"
	default:
		return parsedSymbol{}, fmt.Errorf("%w: unsupported option type %q in symbol %q", ErrSchema, tokens[3], symbol)
	}
	value := kind + " " + underlying + " " + expiry + "@" + strike.StringFixed()
	return parsedSymbol{value: value, underlyingAsset: underlying, strikePrice: strike}, nil
}
