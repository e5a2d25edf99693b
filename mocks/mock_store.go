package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/nordbooks/lineflow/internal/port"
)

// RepoSet bundles mock repositories behind the port.Repos interface. The
// zero value is unusable; use NewRepoSet.
type RepoSet struct {
	SourceDocumentRepo  *MockSourceDocumentRepo
	FieldMappingRepo    *MockFieldMappingRepo
	RegistryRepo        *MockRegistryRepo
	InvoiceLineRepo     *MockInvoiceLineRepo
	SupplierMappingRepo *MockSupplierMappingRepo
	LocationMappingRepo *MockLocationMappingRepo
	CategoryMappingRepo *MockCategoryMappingRepo
	TrackerRepo         *MockTrackerRepo
}

// NewRepoSet creates a RepoSet with every mock initialized.
func NewRepoSet() *RepoSet {
	return &RepoSet{
		SourceDocumentRepo:  &MockSourceDocumentRepo{},
		FieldMappingRepo:    &MockFieldMappingRepo{},
		RegistryRepo:        &MockRegistryRepo{},
		InvoiceLineRepo:     &MockInvoiceLineRepo{},
		SupplierMappingRepo: &MockSupplierMappingRepo{},
		LocationMappingRepo: &MockLocationMappingRepo{},
		CategoryMappingRepo: &MockCategoryMappingRepo{},
		TrackerRepo:         &MockTrackerRepo{},
	}
}

func (s *RepoSet) SourceDocuments() port.SourceDocumentRepository   { return s.SourceDocumentRepo }
func (s *RepoSet) FieldMappings() port.FieldMappingRepository       { return s.FieldMappingRepo }
func (s *RepoSet) Registry() port.RegistryRepository                { return s.RegistryRepo }
func (s *RepoSet) InvoiceLines() port.InvoiceLineRepository         { return s.InvoiceLineRepo }
func (s *RepoSet) SupplierMappings() port.SupplierMappingRepository { return s.SupplierMappingRepo }
func (s *RepoSet) LocationMappings() port.LocationMappingRepository { return s.LocationMappingRepo }
func (s *RepoSet) CategoryMappings() port.CategoryMappingRepository { return s.CategoryMappingRepo }
func (s *RepoSet) Tracker() port.TrackerRepository                  { return s.TrackerRepo }

// MockStore is a mock implementation of port.Store. Repositories resolve to
// the embedded RepoSet; Begin hands out Tx.
type MockStore struct {
	mock.Mock
	*RepoSet
	Tx *MockDocumentTx
}

// NewMockStore creates a MockStore whose transaction shares the same
// RepoSet, mirroring how most tests want reads and writes to land in one
// place.
func NewMockStore() *MockStore {
	repos := NewRepoSet()
	return &MockStore{
		RepoSet: repos,
		Tx:      &MockDocumentTx{RepoSet: repos},
	}
}

func (m *MockStore) Begin(ctx context.Context) (port.DocumentTx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(port.DocumentTx), args.Error(1)
}

// MockDocumentTx is a mock implementation of port.DocumentTx.
type MockDocumentTx struct {
	mock.Mock
	*RepoSet
}

func (m *MockDocumentTx) Commit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockDocumentTx) Rollback() error {
	args := m.Called()
	return args.Error(0)
}
