package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SourceDocument is one OCR-extracted document awaiting normalization.
// Created by the upstream ingestion service; this engine only mutates its
// status and processed_at.
type SourceDocument struct {
	ID             uuid.UUID       `db:"id"`
	ExternalID     string          `db:"external_id"`
	Data           json.RawMessage `db:"data"`
	OrganizationID uuid.UUID       `db:"organization_id"`
	BusinessUnitID *uuid.UUID      `db:"business_unit_id"`
	DataSourceID   uuid.UUID       `db:"data_source_id"`
	Status         DocumentStatus  `db:"status"`
	ProcessedAt    *time.Time      `db:"processed_at"`
	CreatedAt      time.Time       `db:"created_at"`
}

// FieldMapping maps one source field of a data source onto a canonical
// invoice-line field, with an optional transformation.
type FieldMapping struct {
	DataSourceID   uuid.UUID      `db:"data_source_id"`
	SourceField    string         `db:"source_field"`
	TargetField    string         `db:"target_field"`
	Transformation Transformation `db:"transformation"`
}

// Supplier is a canonical supplier registry entry.
type Supplier struct {
	ID             uuid.UUID `db:"supplier_id"`
	OrganizationID uuid.UUID `db:"organization_id"`
	Name           string    `db:"name"`
	Address        string    `db:"address"`
}

// Location is a canonical delivery-location registry entry. Every location
// belongs to a business unit; invoice lines derive their business unit here.
type Location struct {
	ID             uuid.UUID  `db:"location_id"`
	OrganizationID uuid.UUID  `db:"organization_id"`
	BusinessUnitID *uuid.UUID `db:"business_unit_id"`
	Name           string     `db:"name"`
	Address        string     `db:"address"`
}

// ProductCategory is a canonical product-category registry entry.
type ProductCategory struct {
	ID             uuid.UUID `db:"category_id"`
	OrganizationID uuid.UUID `db:"organization_id"`
	Name           string    `db:"category_name"`
}

// CategoryMapping maps a variant product identity to a canonical category.
type CategoryMapping struct {
	MappingID           uuid.UUID `db:"mapping_id"`
	OrganizationID      uuid.UUID `db:"organization_id"`
	CategoryID          uuid.UUID `db:"category_id"`
	VariantProductName  string    `db:"variant_product_name"`
	VariantProductCode  *string   `db:"variant_product_code"`
	VariantSupplierName *string   `db:"variant_supplier_name"`
	IsActive            bool      `db:"is_active"`
}

// PendingSupplierMapping is an unresolved supplier variant awaiting review.
type PendingSupplierMapping struct {
	OrganizationID      uuid.UUID  `db:"organization_id"`
	VariantSupplierName string     `db:"variant_supplier_name"`
	VariantAddress      string     `db:"variant_address"`
	SuggestedSupplierID *uuid.UUID `db:"suggested_supplier_id"`
	SimilarityScore     float64    `db:"similarity_score"`
	Status              MappingStatus
}

// PendingLocationMapping is an unresolved location variant awaiting review.
type PendingLocationMapping struct {
	OrganizationID      uuid.UUID  `db:"organization_id"`
	VariantReceiverName string     `db:"variant_receiver_name"`
	VariantAddress      string     `db:"variant_address"`
	SuggestedLocationID *uuid.UUID `db:"suggested_location_id"`
	SimilarityScore     float64    `db:"similarity_score"`
	Status              MappingStatus
}

// PendingCategoryMapping is an unresolved product variant awaiting review.
type PendingCategoryMapping struct {
	OrganizationID      uuid.UUID `db:"organization_id"`
	VariantProductName  string    `db:"variant_product_name"`
	VariantProductCode  *string   `db:"variant_product_code"`
	VariantSupplierName *string   `db:"variant_supplier_name"`
	Status              MappingStatus
}

// TrackerRecord mirrors the external processing tracker keyed by the source
// document's external identifier (file-extension suffix stripped).
type TrackerRecord struct {
	DocumentID     string        `db:"document_id"`
	OrganizationID uuid.UUID     `db:"organization_id"`
	LocationID     *uuid.UUID    `db:"location_id"`
	Status         TrackerStatus `db:"status"`
	UpdatedAt      time.Time     `db:"updated_at"`
}

// InvoiceLine is one normalized table row of a source document. Lines are
// insert-only; there is no update path.
type InvoiceLine struct {
	ID                uuid.UUID  `db:"id"`
	OrganizationID    uuid.UUID  `db:"organization_id"`
	BusinessUnitID    uuid.UUID  `db:"business_unit_id"`
	DataSourceID      uuid.UUID  `db:"data_source_id"`
	SourceDocumentID  uuid.UUID  `db:"source_document_id"`
	InvoiceNumber     *string    `db:"invoice_number"`
	InvoiceDate       *time.Time `db:"invoice_date"`
	DeliveryDate      *time.Time `db:"delivery_date"`
	DueDate           *time.Time `db:"due_date"`
	SupplierID        *uuid.UUID `db:"supplier_id"`
	LocationID        *uuid.UUID `db:"location_id"`
	CategoryMappingID *uuid.UUID `db:"category_mapping_id"`
	CategoryID        *uuid.UUID `db:"category_id"`

	ProductCode     *string             `db:"product_code"`
	Description     *string             `db:"description"`
	ProductCategory *string             `db:"product_category"`
	Quantity        decimal.NullDecimal `db:"quantity"`
	UnitType        *string             `db:"unit_type"`
	UnitSubtype     *string             `db:"unit_subtype"`
	SubQuantity     decimal.NullDecimal `db:"sub_quantity"`

	UnitPrice              decimal.NullDecimal `db:"unit_price"`
	UnitPriceAfterDiscount decimal.NullDecimal `db:"unit_price_after_discount"`
	DiscountAmount         decimal.NullDecimal `db:"discount_amount"`
	DiscountPercentage     decimal.NullDecimal `db:"discount_percentage"`
	TotalPrice             decimal.NullDecimal `db:"total_price"`
	TotalPriceAfterDisc    decimal.NullDecimal `db:"total_price_after_discount"`
	TotalTax               decimal.NullDecimal `db:"total_tax"`
	TotalAmount            decimal.NullDecimal `db:"total_amount"`
	Subtotal               decimal.NullDecimal `db:"subtotal"`
	// Line total converted at static rates; reporting-only.
	TotalPriceDKK decimal.NullDecimal `db:"total_price_dkk"`

	SupplierPending bool `db:"supplier_pending"`
	LocationPending bool `db:"location_pending"`
	CategoryPending bool `db:"category_pending"`

	DocumentType *string `db:"document_type"`
	Currency     *string `db:"currency"`

	// Raw variant text retained for audit.
	VariantSupplierName    string `db:"variant_supplier_name"`
	VariantAddress         string `db:"variant_address"`
	VariantReceiverName    string `db:"variant_receiver_name"`
	VariantReceiverAddress string `db:"variant_receiver_address"`

	CreatedAt time.Time `db:"created_at"`
}
