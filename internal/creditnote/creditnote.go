// Package creditnote detects credit-note semantics from document text and
// inverts the sign of all monetary fields on the affected lines.
package creditnote

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/nordbooks/lineflow/internal/domain"
)

// Indicator vocabularies, matched case-insensitively as substrings. Danish
// and English cover the document sources currently ingested.
var (
	documentTypeIndicators = []string{
		"credit note", "kreditnota", "credit", "kredit", "credit memo",
		"credit invoice", "refund", "tilbagebetaling", "kreditfaktura",
	}
	invoiceNumberIndicators = []string{"cn", "credit", "kredit", "refund"}
	descriptionIndicators   = []string{"credit", "kredit", "refund", "tilbagebetaling"}
)

// IsCreditNote reports whether the document type, invoice number or product
// description marks this document as a credit note.
func IsCreditNote(documentType, invoiceNumber, description string) bool {
	if documentType == "" {
		return false
	}
	if containsAny(documentType, documentTypeIndicators) {
		return true
	}
	if invoiceNumber != "" && containsAny(invoiceNumber, invoiceNumberIndicators) {
		return true
	}
	if description != "" && containsAny(description, descriptionIndicators) {
		return true
	}
	return false
}

func containsAny(s string, indicators []string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, ind := range indicators {
		if strings.Contains(s, ind) {
			return true
		}
	}
	return false
}

// Normalize negates every monetary field on the line when the document is a
// credit note. Reports whether negation was applied.
func Normalize(f *domain.LineFields) bool {
	docType, invoiceNo, desc := "", "", ""
	if f.DocumentType != nil {
		docType = *f.DocumentType
	}
	if f.InvoiceNumber != nil {
		invoiceNo = *f.InvoiceNumber
	}
	if f.ProductName != nil {
		desc = *f.ProductName
	}
	if !IsCreditNote(docType, invoiceNo, desc) {
		return false
	}

	for _, d := range []**decimal.Decimal{
		&f.UnitPrice,
		&f.UnitPriceAfterDiscount,
		&f.TotalPrice,
		&f.TotalPriceAfterDisc,
		&f.DiscountAmount,
		&f.TotalTax,
	} {
		if *d != nil {
			neg := (*d).Neg()
			*d = &neg
		}
	}
	return true
}
