package importer_test

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rupeebook/rupeebook_backend/internal/core/domain"
	"github.com/rupeebook/rupeebook_backend/internal/importer"
)

func TestParseCSVRoundTripsExport(t *testing.T) {
	input := strings.Join([]string{
		"Date,Remark,Category,Subcategory,Entry By,Cash In,Cash Out,Balance",
		"2025-03-01,Opening sales,Sales,Retail,Asha,200,,200",
		"2025-03-01,Milk,Supplies,,Ravi,,50,150",
		"Total,,,,,200,50,150",
	}, "\n")

	txns, rowErrs, err := importer.ParseCSV(strings.NewReader(input), time.UTC)

	require.NoError(t, err)
	assert.Empty(t, rowErrs)
	require.Len(t, txns, 2)

	assert.Equal(t, domain.CashIn, txns[0].Type)
	assert.True(t, txns[0].Amount.Equal(decimal.NewFromInt(200)))
	assert.Equal(t, "Sales", txns[0].Category)
	assert.Equal(t, "Retail", txns[0].Subcategory)
	assert.Equal(t, "Opening sales", txns[0].Remark)
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), txns[0].Date)

	assert.Equal(t, domain.CashOut, txns[1].Type)
	assert.True(t, txns[1].Amount.Equal(decimal.NewFromInt(50)))
}

func TestParseCSVAlternateDateLayouts(t *testing.T) {
	input := strings.Join([]string{
		"Date,Remark,Category,Subcategory,Entry By,Cash In,Cash Out,Balance",
		"02 Mar 2025,,,,,10,,",
		"03/03/2025,,,,,,5,",
	}, "\n")

	txns, rowErrs, err := importer.ParseCSV(strings.NewReader(input), time.UTC)

	require.NoError(t, err)
	assert.Empty(t, rowErrs)
	require.Len(t, txns, 2)
	assert.Equal(t, time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC), txns[0].Date)
	assert.Equal(t, time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC), txns[1].Date)
}

func TestParseCSVBadRowsReportedNotFatal(t *testing.T) {
	input := strings.Join([]string{
		"Date,Remark,Category,Subcategory,Entry By,Cash In,Cash Out,Balance",
		"not-a-date,,,,,10,,",
		"2025-03-01,,,,,10,5,",
		"2025-03-01,,,,,,,",
		"2025-03-01,,,,,abc,,",
		"2025-03-01,,,,,-3,,",
		"2025-03-02,,,,,25,,",
	}, "\n")

	txns, rowErrs, err := importer.ParseCSV(strings.NewReader(input), time.UTC)

	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.True(t, txns[0].Amount.Equal(decimal.NewFromInt(25)))

	require.Len(t, rowErrs, 5)
	assert.Equal(t, 1, rowErrs[0].Row)
	assert.Contains(t, rowErrs[0].Reason, "unparseable date")
	assert.Contains(t, rowErrs[1].Reason, "both cash in and cash out")
	assert.Contains(t, rowErrs[2].Reason, "neither cash in nor cash out")
	assert.Contains(t, rowErrs[3].Reason, "unparseable amount")
	assert.Contains(t, rowErrs[4].Reason, "positive")
}

func TestParseCSVRejectsUnknownHeader(t *testing.T) {
	input := "id,amount,currency\n1,10,INR\n"

	_, _, err := importer.ParseCSV(strings.NewReader(input), time.UTC)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unrecognized csv header")
}

func TestParseCSVEmptyFile(t *testing.T) {
	_, _, err := importer.ParseCSV(strings.NewReader(""), time.UTC)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty")
}

func TestParseCSVShortRow(t *testing.T) {
	input := strings.Join([]string{
		"Date,Remark,Category,Subcategory,Entry By,Cash In,Cash Out,Balance",
		"2025-03-01,only-two",
	}, "\n")

	txns, rowErrs, err := importer.ParseCSV(strings.NewReader(input), time.UTC)

	require.NoError(t, err)
	assert.Empty(t, txns)
	require.Len(t, rowErrs, 1)
	assert.Contains(t, rowErrs[0].Reason, "columns")
}
