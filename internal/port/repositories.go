package port

import (
	"context"

	"github.com/google/uuid"

	"github.com/nordbooks/lineflow/internal/domain"
)

// SourceDocumentRepository reads and transitions source documents. Documents
// are created upstream; this engine only moves their status.
type SourceDocumentRepository interface {
	// ListUnprocessed returns every document in a non-terminal status,
	// across all organizations, oldest first.
	ListUnprocessed(ctx context.Context) ([]domain.SourceDocument, error)
	MarkProcessed(ctx context.Context, id uuid.UUID) error
	MarkFailed(ctx context.Context, id uuid.UUID) error
}

// FieldMappingRepository reads the per-data-source field mapping table.
type FieldMappingRepository interface {
	ListByDataSource(ctx context.Context, dataSourceID uuid.UUID) ([]domain.FieldMapping, error)
}

// RegistryRepository reads the canonical registries used for fuzzy matching
// and business-unit derivation. Callers snapshot these per batch run rather
// than per row.
type RegistryRepository interface {
	ListSuppliers(ctx context.Context, orgID uuid.UUID) ([]domain.Supplier, error)
	ListLocations(ctx context.Context, orgID uuid.UUID) ([]domain.Location, error)
}

// InvoiceLineRepository persists normalized invoice lines. Lines are
// insert-only.
type InvoiceLineRepository interface {
	Insert(ctx context.Context, line *domain.InvoiceLine) error
	CountByDocument(ctx context.Context, documentID, orgID uuid.UUID) (int, error)
}

// SupplierMappingRepository resolves supplier variant identities and records
// unresolved ones for review.
type SupplierMappingRepository interface {
	// FindExact returns the mapped supplier ID for the variant identity,
	// or domain.ErrMappingNotFound. A mapping stored without an address is
	// name-only and matches any address.
	FindExact(ctx context.Context, orgID uuid.UUID, variantName, variantAddress string) (uuid.UUID, error)
	// InsertPending upserts a pending suggestion; a duplicate pending row
	// for the same variant identity is a no-op.
	InsertPending(ctx context.Context, m domain.PendingSupplierMapping) error
}

// LocationMappingRepository resolves location variant identities.
type LocationMappingRepository interface {
	FindExact(ctx context.Context, orgID uuid.UUID, variantName, variantAddress, receiverName string) (uuid.UUID, error)
	InsertPending(ctx context.Context, m domain.PendingLocationMapping) error
}

// CategoryMappingRepository resolves product variant identities to category
// mappings. The lookup ladder runs most-specific first; each miss returns
// domain.ErrMappingNotFound.
type CategoryMappingRepository interface {
	FindExact(ctx context.Context, orgID uuid.UUID, name string, code, supplier *string) (*domain.CategoryMapping, error)
	FindByCodeAndSupplier(ctx context.Context, orgID uuid.UUID, code, supplier string) (*domain.CategoryMapping, error)
	FindByCodeOnly(ctx context.Context, orgID uuid.UUID, code string) (*domain.CategoryMapping, error)
	FindByNameAndCode(ctx context.Context, orgID uuid.UUID, name, code string) (*domain.CategoryMapping, error)
	FindByNameFold(ctx context.Context, orgID uuid.UUID, name string) (*domain.CategoryMapping, error)
	InsertPending(ctx context.Context, m domain.PendingCategoryMapping) error
}

// TrackerRepository updates the external processing-tracker records.
type TrackerRepository interface {
	// MarkProcessed transitions the tracker record for the document out of
	// pending/processing. A nil location leaves the recorded one untouched; a
	// record already terminal keeps its status; a document with no record at
	// all yields domain.ErrTrackerNotFound.
	MarkProcessed(ctx context.Context, documentID string, orgID uuid.UUID, locationID *uuid.UUID) error
	MarkFailed(ctx context.Context, documentID string, orgID uuid.UUID, locationID *uuid.UUID) error
}
