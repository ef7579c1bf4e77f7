package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
)

// csvColumns is the expected header, in order.
var csvColumns = []string{"date", "amount", "description", "category", "is_expense", "is_fixed"}

// ParseCSV reads a statement in the canonical CSV layout. The header row is
// required; trailing optional columns may be omitted per row.
func (p *Parser) ParseCSV(r io.Reader, userID uuid.UUID) (*Result, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	for i, want := range csvColumns[:2] {
		if i >= len(header) || !strings.EqualFold(strings.TrimSpace(header[i]), want) {
			return nil, fmt.Errorf("unexpected CSV header: want %v", csvColumns)
		}
	}

	result := &Result{}
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			result.Skipped++
			result.RowErrors = append(result.RowErrors, fmt.Sprintf("line %d: %v", line, err))
			continue
		}

		field := func(i int) string {
			if i < len(record) {
				return record[i]
			}
			return ""
		}
		txn, err := buildTransaction(userID, field(0), field(1), field(2), field(3), field(4), field(5))
		if err != nil {
			result.Skipped++
			result.RowErrors = append(result.RowErrors, fmt.Sprintf("line %d: %v", line, err))
			continue
		}
		result.Transactions = append(result.Transactions, txn)
	}

	p.log.Infof("Parsed CSV statement: %d rows, %d skipped", len(result.Transactions), result.Skipped)
	return result, nil
}
