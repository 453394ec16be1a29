// Package importer parses uploaded CSV files into cash entries. The expected
// column layout matches the CSV export, so a downloaded report round-trips.
package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rupeebook/rupeebook_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RowError describes why one data row was rejected.
type RowError struct {
	Row    int // 1-based data row number, excluding the header
	Reason string
}

// dateLayouts are tried in order when parsing the Date column.
var dateLayouts = []string{"2006-01-02", "02 Jan 2006", "02/01/2006"}

// column indexes in the export-compatible layout.
const (
	colDate = iota
	colRemark
	colCategory
	colSubcategory
	colEntryBy
	colCashIn
	colCashOut
	minColumns = colCashOut + 1
)

// ParseCSV reads an export-compatible CSV stream and returns the valid
// entries plus per-row errors. A bad row never aborts the batch. The Entry By
// and Balance columns are ignored; authorship is assigned by the caller and
// balances are always recomputed.
func ParseCSV(r io.Reader, loc *time.Location) ([]domain.Transaction, []RowError, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil, fmt.Errorf("csv file is empty")
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read csv header: %w", err)
	}
	if len(header) < minColumns || !strings.EqualFold(strings.TrimSpace(header[colDate]), "Date") {
		return nil, nil, fmt.Errorf("unrecognized csv header, expected export-compatible layout")
	}

	var (
		txns    []domain.Transaction
		rowErrs []RowError
		rowNum  int
	)
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		rowNum++
		if err != nil {
			rowErrs = append(rowErrs, RowError{Row: rowNum, Reason: fmt.Sprintf("malformed row: %v", err)})
			continue
		}
		if isTotalsRow(record) {
			continue
		}
		txn, parseErr := parseRow(record, loc)
		if parseErr != "" {
			rowErrs = append(rowErrs, RowError{Row: rowNum, Reason: parseErr})
			continue
		}
		txns = append(txns, txn)
	}
	return txns, rowErrs, nil
}

func parseRow(record []string, loc *time.Location) (domain.Transaction, string) {
	if len(record) < minColumns {
		return domain.Transaction{}, fmt.Sprintf("expected at least %d columns, got %d", minColumns, len(record))
	}

	date, ok := parseDate(strings.TrimSpace(record[colDate]), loc)
	if !ok {
		return domain.Transaction{}, fmt.Sprintf("unparseable date %q", record[colDate])
	}

	cashIn := strings.TrimSpace(record[colCashIn])
	cashOut := strings.TrimSpace(record[colCashOut])
	var (
		entryType domain.EntryType
		rawAmount string
	)
	switch {
	case cashIn != "" && cashOut != "":
		return domain.Transaction{}, "row has both cash in and cash out"
	case cashIn != "":
		entryType, rawAmount = domain.CashIn, cashIn
	case cashOut != "":
		entryType, rawAmount = domain.CashOut, cashOut
	default:
		return domain.Transaction{}, "row has neither cash in nor cash out"
	}

	amount, err := decimal.NewFromString(rawAmount)
	if err != nil {
		return domain.Transaction{}, fmt.Sprintf("unparseable amount %q", rawAmount)
	}
	if !amount.IsPositive() {
		return domain.Transaction{}, fmt.Sprintf("amount must be positive, got %s", amount)
	}

	return domain.Transaction{
		Date:        date,
		Type:        entryType,
		Amount:      amount,
		Category:    strings.TrimSpace(record[colCategory]),
		Subcategory: strings.TrimSpace(record[colSubcategory]),
		Remark:      strings.TrimSpace(record[colRemark]),
	}, ""
}

func parseDate(value string, loc *time.Location) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// isTotalsRow skips the trailing totals row an exported report carries.
func isTotalsRow(record []string) bool {
	return len(record) > 0 && strings.EqualFold(strings.TrimSpace(record[0]), "Total")
}
