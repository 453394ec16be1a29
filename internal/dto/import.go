package dto

// ImportRowError describes why one CSV row was rejected during import.
type ImportRowError struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

// ImportResultResponse summarizes a CSV import run. Imported plus Skipped
// equals the number of data rows in the file.
type ImportResultResponse struct {
	Imported int              `json:"imported"`
	Skipped  int              `json:"skipped"`
	Errors   []ImportRowError `json:"errors,omitempty"`
}
