package importer

import (
	"fmt"
	"io"

	"github.com/beevik/etree"
	"github.com/google/uuid"
)

// ParseXML reads a statement document of the form:
//
//	<statement>
//	  <transaction date="2024-01-02" amount="1500.50" category="Rent"
//	               expense="true" fixed="true">January rent</transaction>
//	</statement>
func (p *Parser) ParseXML(r io.Reader, userID uuid.UUID) (*Result, error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("failed to parse XML: %w", err)
	}

	elements := doc.FindElements("//statement/transaction")
	if len(elements) == 0 {
		return nil, fmt.Errorf("no transaction elements found in statement")
	}

	result := &Result{}
	for i, el := range elements {
		txn, err := buildTransaction(
			userID,
			el.SelectAttrValue("date", ""),
			el.SelectAttrValue("amount", ""),
			el.Text(),
			el.SelectAttrValue("category", ""),
			el.SelectAttrValue("expense", ""),
			el.SelectAttrValue("fixed", ""),
		)
		if err != nil {
			result.Skipped++
			result.RowErrors = append(result.RowErrors, fmt.Sprintf("transaction %d: %v", i+1, err))
			continue
		}
		result.Transactions = append(result.Transactions, txn)
	}

	p.log.Infof("Parsed XML statement: %d rows, %d skipped", len(result.Transactions), result.Skipped)
	return result, nil
}
