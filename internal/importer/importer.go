// Package importer turns uploaded bank-statement files into transaction
// records. CSV is the primary interchange format; XML statements are parsed
// element-wise. Rows that fail validation are skipped and reported, never
// aborting the whole upload.
package importer

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/davron17/finflow/internal/models"
)

const dateLayout = "2006-01-02"

// Result reports one parsed upload.
type Result struct {
	Transactions []models.Transaction
	Skipped      int
	RowErrors    []string
}

// Parser parses statement uploads into transactions.
type Parser struct {
	log *logrus.Logger
}

// NewParser initializes a new parser
func NewParser(log *logrus.Logger) *Parser {
	return &Parser{log: log}
}

// Parse dispatches on the uploaded file's extension.
func (p *Parser) Parse(filename string, r io.Reader, userID uuid.UUID) (*Result, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return p.ParseCSV(r, userID)
	case ".xml":
		return p.ParseXML(r, userID)
	default:
		return nil, fmt.Errorf("unsupported statement format: %s", filepath.Ext(filename))
	}
}

// buildTransaction validates one parsed row. A negative amount is read as an
// expense magnitude, the way most bank exports encode debits.
func buildTransaction(userID uuid.UUID, date, amount, description, category, isExpense, isFixed string) (models.Transaction, error) {
	d, err := time.Parse(dateLayout, strings.TrimSpace(date))
	if err != nil {
		return models.Transaction{}, fmt.Errorf("invalid date %q", date)
	}

	value, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err != nil {
		return models.Transaction{}, fmt.Errorf("invalid amount %q", amount)
	}

	expense := false
	if isExpense != "" {
		expense, err = strconv.ParseBool(strings.TrimSpace(isExpense))
		if err != nil {
			return models.Transaction{}, fmt.Errorf("invalid is_expense %q", isExpense)
		}
	}
	if value.IsNegative() {
		expense = true
		value = value.Neg()
	}

	fixed := false
	if isFixed != "" {
		fixed, err = strconv.ParseBool(strings.TrimSpace(isFixed))
		if err != nil {
			return models.Transaction{}, fmt.Errorf("invalid is_fixed %q", isFixed)
		}
	}

	return models.Transaction{
		ID:          uuid.New(),
		UserID:      userID,
		Date:        d,
		Amount:      value,
		Description: strings.TrimSpace(description),
		Category:    strings.TrimSpace(category),
		IsExpense:   expense,
		IsFixed:     fixed,
	}, nil
}
