package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/nordbooks/lineflow/internal/port"
)

// querier is the subset of sqlx shared by *sqlx.DB and *sqlx.Tx. Every
// repository runs against it, so the same repository code serves both
// auto-commit reads and the per-document transaction.
type querier interface {
	sqlx.ExtContext
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
}

type repoSet struct {
	sourceDocuments  port.SourceDocumentRepository
	fieldMappings    port.FieldMappingRepository
	registry         port.RegistryRepository
	invoiceLines     port.InvoiceLineRepository
	supplierMappings port.SupplierMappingRepository
	locationMappings port.LocationMappingRepository
	categoryMappings port.CategoryMappingRepository
	tracker          port.TrackerRepository
}

func newRepoSet(q querier) repoSet {
	return repoSet{
		sourceDocuments:  &sourceDocumentRepo{q: q},
		fieldMappings:    &fieldMappingRepo{q: q},
		registry:         &registryRepo{q: q},
		invoiceLines:     &invoiceLineRepo{q: q},
		supplierMappings: &supplierMappingRepo{q: q},
		locationMappings: &locationMappingRepo{q: q},
		categoryMappings: &categoryMappingRepo{q: q},
		tracker:          &trackerRepo{q: q},
	}
}

func (s repoSet) SourceDocuments() port.SourceDocumentRepository  { return s.sourceDocuments }
func (s repoSet) FieldMappings() port.FieldMappingRepository      { return s.fieldMappings }
func (s repoSet) Registry() port.RegistryRepository               { return s.registry }
func (s repoSet) InvoiceLines() port.InvoiceLineRepository        { return s.invoiceLines }
func (s repoSet) SupplierMappings() port.SupplierMappingRepository { return s.supplierMappings }
func (s repoSet) LocationMappings() port.LocationMappingRepository { return s.locationMappings }
func (s repoSet) CategoryMappings() port.CategoryMappingRepository { return s.categoryMappings }
func (s repoSet) Tracker() port.TrackerRepository                 { return s.tracker }

type store struct {
	repoSet
	db *sqlx.DB
}

// NewStore creates the PostgreSQL-backed Store.
func NewStore(db *sqlx.DB) port.Store {
	return &store{repoSet: newRepoSet(db), db: db}
}

func (s *store) Begin(ctx context.Context) (port.DocumentTx, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("store.Begin: %w", err)
	}
	return &documentTx{repoSet: newRepoSet(tx), tx: tx}, nil
}

type documentTx struct {
	repoSet
	tx *sqlx.Tx
}

func (t *documentTx) Commit() error   { return t.tx.Commit() }
func (t *documentTx) Rollback() error { return t.tx.Rollback() }
