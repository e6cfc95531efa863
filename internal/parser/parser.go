package parser

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"mt_tools/internal/models"
)

// Header is the column contract for MT4/MT5 account-history CSV exports.
// Matching is order-sensitive: a reordered export is a different dialect and
// gets rejected rather than guessed at.
var Header = []string{
	"Ticket", "Open Time", "Type", "Volume", "Symbol", "Price", "SL", "TP",
	"Close Time", "Close Price", "Commission", "Swap", "Profit",
}

// Timestamp layouts seen across MT4/MT5 exports, tried in order.
var timeLayouts = []string{
	"2006.01.02 15:04:05",
	"2006.01.02 15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// LoadFile reads and parses a statement export. File access errors come back
// unwrapped so callers can tell a missing file from bad data.
func LoadFile(path string) ([]models.TradeRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads a full statement from r. The returned slice preserves file
// order, which the drawdown computation depends on. Any malformed row aborts
// the parse; there are no partial results.
func Parse(r io.Reader) ([]models.TradeRecord, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read statement: %w", err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	cr := csv.NewReader(bytes.NewReader(data))
	cr.Comma = detectDelimiter(data)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, &HeaderError{Expected: Header, Actual: nil}
	}
	if err != nil {
		// Malformed CSV on the header line is bad data, not a file access
		// problem; report it like any other unreadable row.
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			return nil, &RowError{Row: parseErr.Line, Column: "record", Err: parseErr.Err}
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	if !headerMatches(header) {
		return nil, &HeaderError{Expected: Header, Actual: header}
	}

	var (
		trades []models.TradeRecord
		seen   = map[int64]int{} // ticket -> row it first appeared on
	)
	for {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				return nil, &RowError{Row: parseErr.Line, Column: "record", Err: parseErr.Err}
			}
			return nil, fmt.Errorf("read row: %w", err)
		}
		row, _ := cr.FieldPos(0)
		t, err := parseRow(row, fields)
		if err != nil {
			return nil, err
		}
		if prev, dup := seen[t.Ticket]; dup {
			return nil, &RowError{Row: row, Column: "Ticket",
				Err: fmt.Errorf("ticket %d already used on row %d", t.Ticket, prev)}
		}
		seen[t.Ticket] = row
		trades = append(trades, t)
	}
	return trades, nil
}

// detectDelimiter picks between comma and semicolon from the header line.
// Some brokers export with ';' in locales where ',' is the decimal mark.
func detectDelimiter(data []byte) rune {
	line := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		line = data[:i]
	}
	if bytes.Count(line, []byte{';'}) > bytes.Count(line, []byte{','}) {
		return ';'
	}
	return ','
}

func headerMatches(actual []string) bool {
	if len(actual) != len(Header) {
		return false
	}
	for i, col := range actual {
		if strings.TrimSpace(col) != Header[i] {
			return false
		}
	}
	return true
}

// parseRow converts one data row into a typed record, enforcing the row-level
// invariants (positive volume, known trade type, close not before open).
func parseRow(row int, fields []string) (models.TradeRecord, error) {
	var t models.TradeRecord

	fail := func(column string, err error) (models.TradeRecord, error) {
		return models.TradeRecord{}, &RowError{Row: row, Column: column, Err: err}
	}

	ticket, err := strconv.ParseInt(strings.TrimSpace(fields[0]), 10, 64)
	if err != nil {
		return fail("Ticket", err)
	}
	t.Ticket = ticket

	if t.OpenTime, err = parseTime(fields[1]); err != nil {
		return fail("Open Time", err)
	}

	switch typ := models.TradeType(strings.ToLower(strings.TrimSpace(fields[2]))); typ {
	case models.TradeTypeBuy, models.TradeTypeSell:
		t.Type = typ
	default:
		return fail("Type", fmt.Errorf("unknown trade type %q", strings.TrimSpace(fields[2])))
	}

	if t.Volume, err = parseDecimal(fields[3]); err != nil {
		return fail("Volume", err)
	}
	if !t.Volume.IsPositive() {
		return fail("Volume", fmt.Errorf("volume %s is not positive", t.Volume))
	}

	t.Symbol = strings.TrimSpace(fields[4])

	if t.OpenPrice, err = parseDecimal(fields[5]); err != nil {
		return fail("Price", err)
	}
	if t.StopLoss, err = parseOptionalDecimal(fields[6]); err != nil {
		return fail("SL", err)
	}
	if t.TakeProfit, err = parseOptionalDecimal(fields[7]); err != nil {
		return fail("TP", err)
	}
	if t.CloseTime, err = parseTime(fields[8]); err != nil {
		return fail("Close Time", err)
	}
	if t.CloseTime.Before(t.OpenTime) {
		return fail("Close Time", fmt.Errorf("close time %s precedes open time %s",
			t.CloseTime.Format(time.DateTime), t.OpenTime.Format(time.DateTime)))
	}
	if t.ClosePrice, err = parseDecimal(fields[9]); err != nil {
		return fail("Close Price", err)
	}

	// Statements sometimes leave the money columns blank; blank means zero.
	if t.Commission, err = parseMoney(fields[10]); err != nil {
		return fail("Commission", err)
	}
	if t.Swap, err = parseMoney(fields[11]); err != nil {
		return fail("Swap", err)
	}
	if t.Profit, err = parseMoney(fields[12]); err != nil {
		return fail("Profit", err)
	}

	return t, nil
}

func parseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}

func parseDecimal(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.TrimSpace(s))
}

func parseOptionalDecimal(s string) (decimal.NullDecimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.NullDecimal{}, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}, err
	}
	return decimal.NullDecimal{Decimal: d, Valid: true}, nil
}

func parseMoney(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}
