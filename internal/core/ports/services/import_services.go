package services

import (
	"context"
	"io"

	"github.com/rupeebook/rupeebook_backend/internal/dto"
)

// ImportSvcFacade bulk-loads cash entries from uploaded CSV files.
type ImportSvcFacade interface {
	// ImportCSV parses the upload, inserts the valid rows and reports
	// per-row failures without aborting the batch.
	ImportCSV(ctx context.Context, memberID, bookID string, r io.Reader) (*dto.ImportResultResponse, error)
}
