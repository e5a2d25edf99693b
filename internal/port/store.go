package port

import "context"

// Repos bundles access to every repository the engine touches.
type Repos interface {
	SourceDocuments() SourceDocumentRepository
	FieldMappings() FieldMappingRepository
	Registry() RegistryRepository
	InvoiceLines() InvoiceLineRepository
	SupplierMappings() SupplierMappingRepository
	LocationMappings() LocationMappingRepository
	CategoryMappings() CategoryMappingRepository
	Tracker() TrackerRepository
}

// Store is the database entry point. Repositories obtained directly from the
// Store run in auto-commit mode; Begin opens the explicit per-document
// transaction whose boundary the orchestrator owns.
type Store interface {
	Repos
	Begin(ctx context.Context) (DocumentTx, error)
}

// DocumentTx scopes all repositories to one document's transaction.
// Exactly one of Commit or Rollback must be called.
type DocumentTx interface {
	Repos
	Commit() error
	Rollback() error
}
