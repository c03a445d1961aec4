// Package interactivebrokers reconstructs a structured statement from an
// Interactive Brokers activity statement exported as CSV.
//
// The export is a single flat CSV file holding many concatenated tables
// ("sections"), each with its own column layout declared in the data itself.
// Parsing is all-or-nothing: the whole file is read into memory and either a
// complete Statement is produced or the parse fails with an error describing
// the offending row. Nothing is shared between calls, so concurrent parses
// of different files are safe.
package interactivebrokers

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/cowwoc/capi/date"
)

const (
	// dateTimeLayout is the date/time format of trade rows, e.g. "2022-06-17, 09:30:01".
	dateTimeLayout = "2006-01-02, 15:04:05"
	// generatedLayout is the date/time format of the WhenGenerated header field.
	generatedLayout = "2006-01-02, 15:04:05 MST"
)

// Statement is one parsed activity statement. It is constructed by Load or
// Decode and never mutated afterwards.
type Statement struct {
	Header  Header
	Account Account
	// CashActivities maps each currency held to its cash activity.
	CashActivities map[string]CashActivity
	Trades         []Trade
	Forex          []Forex
	Deposits       []Deposit
	Dividends      []Dividend
}

// Header is the statement's period metadata.
type Header struct {
	// StartDate is the first day included in the statement.
	StartDate date.Date
	// EndDate is the last day included in the statement, inclusive.
	EndDate date.Date
	// GeneratedAt is the time the statement was generated.
	GeneratedAt time.Time
}

// Account identifies the account the statement belongs to.
type Account struct {
	Number string
	Owner  string
}

// Load reads and parses the activity statement at the given path.
func Load(path string) (*Statement, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open statement: %w", err)
	}
	defer f.Close()
	statement, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("cannot parse statement %q: %w", path, err)
	}
	return statement, nil
}

// Decode parses an activity statement from r.
func Decode(r io.Reader) (*Statement, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	// Strip the Byte Order Mark some exports prefix to indicate UTF-8.
	lines := splitLines(strings.TrimPrefix(string(data), "\uFEFF"))

	header, err := loadHeader(lines)
	if err != nil {
		return nil, err
	}
	account, err := loadAccount(lines)
	if err != nil {
		return nil, err
	}
	cashSections, err := splitSections(lines, having("Cash Report"))
	if err != nil {
		return nil, err
	}
	cashActivities, err := parseCashActivities(cashSections)
	if err != nil {
		return nil, err
	}
	codeSections, err := splitSections(lines, having("Codes"))
	if err != nil {
		return nil, err
	}
	tokenCodes, err := parseCodes(codeSections)
	if err != nil {
		return nil, err
	}
	carryoverSections, err := splitSections(lines, having("Mark-to-Market Performance Summary"))
	if err != nil {
		return nil, err
	}
	carryover, err := parseMarkToMarket(carryoverSections)
	if err != nil {
		return nil, err
	}
	tradeSections, err := splitSections(lines, func(r Record) bool {
		return r.Has("Trades") && r.Get("Asset Category") != "Forex"
	})
	if err != nil {
		return nil, err
	}
	trades, err := parseTrades(tradeSections, tokenCodes, carryover)
	if err != nil {
		return nil, err
	}
	forexSections, err := splitSections(lines, func(r Record) bool {
		return r.Has("Trades") && r.Get("Asset Category") == "Forex"
	})
	if err != nil {
		return nil, err
	}
	forex, err := parseForex(forexSections)
	if err != nil {
		return nil, err
	}
	depositSections, err := splitSections(lines, having("Deposits & Withdrawals"))
	if err != nil {
		return nil, err
	}
	deposits, err := parseDeposits(depositSections)
	if err != nil {
		return nil, err
	}
	dividendSections, err := splitSections(lines, func(r Record) bool {
		return r.Has("Dividends") || r.Has("Withholding Tax")
	})
	if err != nil {
		return nil, err
	}
	dividends, err := parseDividends(dividendSections)
	if err != nil {
		return nil, err
	}

	return &Statement{
		Header:         header,
		Account:        account,
		CashActivities: cashActivities,
		Trades:         trades,
		Forex:          forex,
		Deposits:       deposits,
		Dividends:      dividends,
	}, nil
}

// splitLines splits the file content into lines, tolerating both LF and
// CRLF endings and ignoring a trailing newline.
func splitLines(content string) []string {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	return lines
}

// loadHeader parses the Statement section into the Header.
func loadHeader(lines []string) (Header, error) {
	sections, err := splitSections(lines, having("Statement"))
	if err != nil {
		return Header{}, err
	}
	if len(sections) != 1 {
		return Header{}, fmt.Errorf("%w: want exactly one Statement section, got %d", ErrSchema, len(sections))
	}
	rows, err := sections[0].records()
	if err != nil {
		return Header{}, err
	}

	var header Header
	for _, row := range rows {
		if err := requireData(row); err != nil {
			return Header{}, err
		}
		value := row.Get("Field Value")
		switch name := row.Get("Field Name"); name {
		case "BrokerName", "BrokerAddress":
			// ignore
		case "Title":
			if value != "Activity Statement" {
				return Header{}, fmt.Errorf("%w: want an Activity Statement, got title %q", ErrSchema, value)
			}
		case "Period":
			if !header.StartDate.IsZero() || !header.EndDate.IsZero() {
				return Header{}, fmt.Errorf("%w: duplicate Period in row %v", ErrSchema, row)
			}
			period := strings.Split(value, "-")
			if len(period) != 2 {
				return Header{}, fmt.Errorf("%w: malformed Period %q", ErrSchema, value)
			}
			header.StartDate, err = date.ParseLong(strings.TrimSpace(period[0]))
			if err != nil {
				return Header{}, fmt.Errorf("%w: %v", ErrSchema, err)
			}
			header.EndDate, err = date.ParseLong(strings.TrimSpace(period[1]))
			if err != nil {
				return Header{}, fmt.Errorf("%w: %v", ErrSchema, err)
			}
		case "WhenGenerated":
			if !header.GeneratedAt.IsZero() {
				return Header{}, fmt.Errorf("%w: duplicate WhenGenerated in row %v", ErrSchema, row)
			}
			header.GeneratedAt, err = time.Parse(generatedLayout, value)
			if err != nil {
				return Header{}, fmt.Errorf("%w: invalid WhenGenerated %q: %v", ErrSchema, value, err)
			}
		default:
			return Header{}, fmt.Errorf("%w: unsupported header field %q in row %v", ErrSchema, name, row)
		}
	}

	if header.StartDate.IsZero() || header.EndDate.IsZero() || header.GeneratedAt.IsZero() {
		return Header{}, fmt.Errorf("%w: statement header is missing Period or WhenGenerated", ErrSchema)
	}
	if header.EndDate.Before(header.StartDate) {
		return Header{}, fmt.Errorf("%w: period start %s is after period end %s", ErrSchema, header.StartDate, header.EndDate)
	}
	if generatedOn := date.New(header.GeneratedAt.Date()); generatedOn.Before(header.EndDate) {
		return Header{}, fmt.Errorf("%w: statement generated on %s, before the period end %s", ErrSchema, generatedOn, header.EndDate)
	}
	return header, nil
}

// loadAccount parses the Account Information section.
func loadAccount(lines []string) (Account, error) {
	sections, err := splitSections(lines, having("Account Information"))
	if err != nil {
		return Account{}, err
	}
	if len(sections) != 1 {
		return Account{}, fmt.Errorf("%w: want exactly one Account Information section, got %d", ErrSchema, len(sections))
	}
	rows, err := sections[0].records()
	if err != nil {
		return Account{}, err
	}

	var account Account
	for _, row := range rows {
		if err := requireData(row); err != nil {
			return Account{}, err
		}
		switch name := row.Get("Field Name"); name {
		case "Name":
			if account.Owner != "" {
				return Account{}, fmt.Errorf("%w: duplicate account owner in row %v", ErrSchema, row)
			}
			account.Owner = row.Get("Field Value")
		case "Account":
			if account.Number != "" {
				return Account{}, fmt.Errorf("%w: duplicate account number in row %v", ErrSchema, row)
			}
			account.Number = row.Get("Field Value")
		case "Account Type", "Customer Type", "Account Capabilities", "Base Currency":
			// ignore
		default:
			return Account{}, fmt.Errorf("%w: unsupported account field %q in row %v", ErrSchema, name, row)
		}
	}
	if err := validateStripped("account number", account.Number); err != nil {
		return Account{}, err
	}
	if err := validateStripped("account owner", account.Owner); err != nil {
		return Account{}, err
	}
	return account, nil
}

// validateStripped fails when the value is empty or has surrounding whitespace.
func validateStripped(what, value string) error {
	if value == "" {
		return fmt.Errorf("%w: missing %s", ErrSchema, what)
	}
	if strings.TrimSpace(value) != value {
		return fmt.Errorf("%w: %s %q has surrounding whitespace", ErrSchema, what, value)
	}
	return nil
}
