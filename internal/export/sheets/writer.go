// Package sheets pushes rendered reports to Google Sheets.
package sheets

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"
)

// Writer creates a spreadsheet per exported report.
type Writer struct {
	service *sheetsapi.Service
	logger  *slog.Logger
}

// NewWriter builds a Sheets client from service account credentials JSON.
func NewWriter(ctx context.Context, credentialsJSON []byte, logger *slog.Logger) (*Writer, error) {
	if len(credentialsJSON) == 0 {
		return nil, fmt.Errorf("sheets credentials are empty")
	}
	creds, err := google.CredentialsFromJSON(ctx, credentialsJSON, sheetsapi.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("failed to parse sheets credentials: %w", err)
	}
	service, err := sheetsapi.NewService(ctx, option.WithTokenSource(creds.TokenSource))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}
	return &Writer{service: service, logger: logger}, nil
}

// WriteReport creates a new spreadsheet titled title, writes the rows
// starting at A1 and returns the spreadsheet URL.
func (w *Writer) WriteReport(ctx context.Context, title string, rows [][]string) (string, error) {
	spreadsheet, err := w.service.Spreadsheets.Create(&sheetsapi.Spreadsheet{
		Properties: &sheetsapi.SpreadsheetProperties{Title: title},
	}).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to create spreadsheet: %w", err)
	}

	values := make([][]interface{}, 0, len(rows))
	for _, row := range rows {
		cells := make([]interface{}, 0, len(row))
		for _, cell := range row {
			cells = append(cells, cell)
		}
		values = append(values, cells)
	}

	_, err = w.service.Spreadsheets.Values.Update(spreadsheet.SpreadsheetId, "A1", &sheetsapi.ValueRange{
		Values: values,
	}).ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to write spreadsheet values: %w", err)
	}

	w.logger.Info("report written to spreadsheet",
		slog.String("spreadsheet_id", spreadsheet.SpreadsheetId),
		slog.Int("rows", len(rows)))
	return spreadsheet.SpreadsheetUrl, nil
}
