package flatten

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nordbooks/lineflow/internal/domain"
	"github.com/nordbooks/lineflow/internal/normalize"
)

// DiscountTokens carries the raw discount values found on a row. They stay
// unparsed here; classification as amount vs percentage needs price context
// and belongs to the discount parser.
type DiscountTokens struct {
	Generic    string
	Amount     string
	Percentage string
}

// MappedRow is one table row after field-mapping application.
type MappedRow struct {
	Fields   *domain.LineFields
	Discount DiscountTokens
}

// absent values as the OCR vendor emits them
var absentValues = map[string]struct{}{
	"": {}, "-": {}, "null": {}, "None": {},
}

// ApplyMappings maps one table row onto typed line fields using the data
// source's field mappings. Lookup prefers the table cell and falls back to
// the document's flat fields. A value that fails its transformation is left
// absent; malformed tokens never abort the row.
func ApplyMappings(row Row, flat map[string]string, mappings []domain.FieldMapping, loc normalize.Locale) *MappedRow {
	out := &MappedRow{Fields: &domain.LineFields{}}

	for _, m := range mappings {
		key := strings.ToLower(m.SourceField)
		val, ok := row[key]
		if !ok || isAbsent(val) {
			val = flat[key]
		}
		if isAbsent(val) {
			continue
		}
		setField(out, m, val, loc)
	}
	return out
}

func isAbsent(val string) bool {
	_, ok := absentValues[strings.TrimSpace(val)]
	return ok
}

// setField converts one raw value per the mapping's declared transformation
// and assigns it to the target field. Discount tokens stay raw regardless of
// transformation. A mapping that declares no transformation falls back to
// routing by target name.
func setField(out *MappedRow, m domain.FieldMapping, val string, loc normalize.Locale) {
	target := strings.ToLower(m.TargetField)
	switch target {
	case "discount":
		out.Discount.Generic = val
		return
	case "discount_amount":
		out.Discount.Amount = val
		return
	case "discount_percentage":
		out.Discount.Percentage = val
		return
	}

	f := out.Fields
	switch m.Transformation {
	case domain.TransformToNumber:
		setNumber(f, target, normalize.Number(val, loc))
	case domain.TransformToDate:
		setDate(f, target, normalize.Date(val))
	case domain.TransformNormalizeUnit:
		setString(f, target, strptr(normalize.Unit(val)))
	case domain.TransformTrim:
		setString(f, target, strptr(val))
	default:
		setByName(f, target, val, loc)
	}
}

func setNumber(f *domain.LineFields, target string, d *decimal.Decimal) {
	switch target {
	case "quantity":
		f.Quantity = d
	case "sub_quantity":
		f.SubQuantity = d
	case "unit_price":
		f.UnitPrice = d
	case "unit_price_after_discount":
		f.UnitPriceAfterDiscount = d
	case "total_price":
		f.TotalPrice = d
	case "total_price_after_discount":
		f.TotalPriceAfterDisc = d
	case "total_tax":
		f.TotalTax = d
	}
}

func setDate(f *domain.LineFields, target string, t *time.Time) {
	switch target {
	case "invoice_date":
		f.InvoiceDate = t
	case "delivery_date":
		f.DeliveryDate = t
	case "due_date":
		f.DueDate = t
	}
}

func setString(f *domain.LineFields, target string, s *string) {
	switch target {
	case "invoice_number":
		f.InvoiceNumber = s
	case "product_code":
		f.ProductCode = s
	case "product_name", "description":
		f.ProductName = s
	case "product_category":
		f.ProductCategory = s
	case "unit_type":
		f.UnitType = s
	case "unit_subtype":
		f.UnitSubtype = s
	case "document_type":
		f.DocumentType = s
	case "currency":
		f.Currency = s
	}
}

// setByName routes mappings without a declared transformation: the target
// name implies the conversion.
func setByName(f *domain.LineFields, target, val string, loc normalize.Locale) {
	switch target {
	case "invoice_number":
		f.InvoiceNumber = strptr(val)
	case "invoice_date":
		f.InvoiceDate = normalize.Date(val)
	case "delivery_date":
		f.DeliveryDate = normalize.Date(val)
	case "due_date":
		f.DueDate = normalize.Date(val)
	case "product_code":
		f.ProductCode = strptr(val)
	case "product_name", "description":
		f.ProductName = strptr(val)
	case "product_category":
		f.ProductCategory = strptr(val)
	case "quantity":
		f.Quantity = normalize.Number(val, loc)
	case "sub_quantity":
		f.SubQuantity = normalize.Number(val, loc)
	case "unit_type":
		f.UnitType = strptr(normalize.Unit(val))
	case "unit_subtype":
		f.UnitSubtype = strptr(normalize.Unit(val))
	case "unit_price":
		f.UnitPrice = normalize.Number(val, loc)
	case "unit_price_after_discount":
		f.UnitPriceAfterDiscount = normalize.Number(val, loc)
	case "total_price":
		f.TotalPrice = normalize.Number(val, loc)
	case "total_price_after_discount":
		f.TotalPriceAfterDisc = normalize.Number(val, loc)
	case "total_tax":
		f.TotalTax = normalize.Number(val, loc)
	case "document_type":
		f.DocumentType = strptr(val)
	case "currency":
		f.Currency = strptr(val)
	}
}

func strptr(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
