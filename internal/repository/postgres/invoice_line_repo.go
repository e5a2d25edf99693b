package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nordbooks/lineflow/internal/domain"
)

type invoiceLineRepo struct {
	q querier
}

func (r *invoiceLineRepo) Insert(ctx context.Context, line *domain.InvoiceLine) error {
	if line.ID == uuid.Nil {
		line.ID = uuid.New()
	}
	line.CreatedAt = time.Now().UTC()

	query := `INSERT INTO invoice_lines (
		id, organization_id, business_unit_id, data_source_id, source_document_id,
		invoice_number, invoice_date, delivery_date, due_date,
		supplier_id, location_id, category_mapping_id, category_id,
		product_code, description, product_category,
		quantity, unit_type, unit_subtype, sub_quantity,
		unit_price, unit_price_after_discount, discount_amount, discount_percentage,
		total_price, total_price_after_discount, total_tax, total_amount, subtotal,
		total_price_dkk,
		supplier_pending, location_pending, category_pending,
		document_type, currency,
		variant_supplier_name, variant_address, variant_receiver_name, variant_receiver_address,
		created_at
	) VALUES (
		$1, $2, $3, $4, $5,
		$6, $7, $8, $9,
		$10, $11, $12, $13,
		$14, $15, $16,
		$17, $18, $19, $20,
		$21, $22, $23, $24,
		$25, $26, $27, $28, $29,
		$30,
		$31, $32, $33,
		$34, $35,
		$36, $37, $38, $39,
		$40
	)`

	_, err := r.q.ExecContext(ctx, query,
		line.ID, line.OrganizationID, line.BusinessUnitID, line.DataSourceID, line.SourceDocumentID,
		line.InvoiceNumber, line.InvoiceDate, line.DeliveryDate, line.DueDate,
		line.SupplierID, line.LocationID, line.CategoryMappingID, line.CategoryID,
		line.ProductCode, line.Description, line.ProductCategory,
		line.Quantity, line.UnitType, line.UnitSubtype, line.SubQuantity,
		line.UnitPrice, line.UnitPriceAfterDiscount, line.DiscountAmount, line.DiscountPercentage,
		line.TotalPrice, line.TotalPriceAfterDisc, line.TotalTax, line.TotalAmount, line.Subtotal,
		line.TotalPriceDKK,
		line.SupplierPending, line.LocationPending, line.CategoryPending,
		line.DocumentType, line.Currency,
		line.VariantSupplierName, line.VariantAddress, line.VariantReceiverName, line.VariantReceiverAddress,
		line.CreatedAt)
	if err != nil {
		return fmt.Errorf("invoiceLineRepo.Insert: %w", err)
	}
	return nil
}

func (r *invoiceLineRepo) CountByDocument(ctx context.Context, documentID, orgID uuid.UUID) (int, error) {
	var count int
	err := r.q.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM invoice_lines
		 WHERE source_document_id = $1 AND organization_id = $2`,
		documentID, orgID)
	if err != nil {
		return 0, fmt.Errorf("invoiceLineRepo.CountByDocument: %w", err)
	}
	return count, nil
}
