package service

import (
	"context"
	"io"
)

// ImportSummary reports one statement upload.
type ImportSummary struct {
	Imported  int      `json:"imported"`
	Skipped   int      `json:"skipped"`
	RowErrors []string `json:"row_errors,omitempty"`
}

// ImportStatement parses an uploaded statement file and bulk-loads the valid
// rows for the authenticated user.
func (s *Service) ImportStatement(ctx context.Context, filename string, r io.Reader) (*ImportSummary, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	result, err := s.parser.Parse(filename, r, userID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.BulkInsertTransactions(result.Transactions); err != nil {
		return nil, err
	}

	s.log.Infof("Imported statement %s for user %s: %d rows, %d skipped",
		filename, userID, len(result.Transactions), result.Skipped)
	return &ImportSummary{
		Imported:  len(result.Transactions),
		Skipped:   result.Skipped,
		RowErrors: result.RowErrors,
	}, nil
}
