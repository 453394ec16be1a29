package export

import (
	"encoding/csv"
	"fmt"
	"io"
)

// WriteCSV streams rendered rows to w in RFC 4180 form.
func WriteCSV(w io.Writer, rows [][]string) error {
	cw := csv.NewWriter(w)
	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
