// Package mocks contains hand-written testify mocks for the port interfaces.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/nordbooks/lineflow/internal/domain"
)

// MockSourceDocumentRepo is a mock implementation of port.SourceDocumentRepository.
type MockSourceDocumentRepo struct {
	mock.Mock
}

func (m *MockSourceDocumentRepo) ListUnprocessed(ctx context.Context) ([]domain.SourceDocument, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SourceDocument), args.Error(1)
}

func (m *MockSourceDocumentRepo) MarkProcessed(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSourceDocumentRepo) MarkFailed(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockFieldMappingRepo is a mock implementation of port.FieldMappingRepository.
type MockFieldMappingRepo struct {
	mock.Mock
}

func (m *MockFieldMappingRepo) ListByDataSource(ctx context.Context, dataSourceID uuid.UUID) ([]domain.FieldMapping, error) {
	args := m.Called(ctx, dataSourceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FieldMapping), args.Error(1)
}

// MockRegistryRepo is a mock implementation of port.RegistryRepository.
type MockRegistryRepo struct {
	mock.Mock
}

func (m *MockRegistryRepo) ListSuppliers(ctx context.Context, orgID uuid.UUID) ([]domain.Supplier, error) {
	args := m.Called(ctx, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Supplier), args.Error(1)
}

func (m *MockRegistryRepo) ListLocations(ctx context.Context, orgID uuid.UUID) ([]domain.Location, error) {
	args := m.Called(ctx, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Location), args.Error(1)
}

// MockInvoiceLineRepo is a mock implementation of port.InvoiceLineRepository.
type MockInvoiceLineRepo struct {
	mock.Mock
}

func (m *MockInvoiceLineRepo) Insert(ctx context.Context, line *domain.InvoiceLine) error {
	args := m.Called(ctx, line)
	return args.Error(0)
}

func (m *MockInvoiceLineRepo) CountByDocument(ctx context.Context, documentID, orgID uuid.UUID) (int, error) {
	args := m.Called(ctx, documentID, orgID)
	return args.Int(0), args.Error(1)
}

// MockSupplierMappingRepo is a mock implementation of port.SupplierMappingRepository.
type MockSupplierMappingRepo struct {
	mock.Mock
}

func (m *MockSupplierMappingRepo) FindExact(ctx context.Context, orgID uuid.UUID, variantName, variantAddress string) (uuid.UUID, error) {
	args := m.Called(ctx, orgID, variantName, variantAddress)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockSupplierMappingRepo) InsertPending(ctx context.Context, pm domain.PendingSupplierMapping) error {
	args := m.Called(ctx, pm)
	return args.Error(0)
}

// MockLocationMappingRepo is a mock implementation of port.LocationMappingRepository.
type MockLocationMappingRepo struct {
	mock.Mock
}

func (m *MockLocationMappingRepo) FindExact(ctx context.Context, orgID uuid.UUID, variantName, variantAddress, receiverName string) (uuid.UUID, error) {
	args := m.Called(ctx, orgID, variantName, variantAddress, receiverName)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockLocationMappingRepo) InsertPending(ctx context.Context, pm domain.PendingLocationMapping) error {
	args := m.Called(ctx, pm)
	return args.Error(0)
}

// MockCategoryMappingRepo is a mock implementation of port.CategoryMappingRepository.
type MockCategoryMappingRepo struct {
	mock.Mock
}

func (m *MockCategoryMappingRepo) FindExact(ctx context.Context, orgID uuid.UUID, name string, code, supplier *string) (*domain.CategoryMapping, error) {
	args := m.Called(ctx, orgID, name, code, supplier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CategoryMapping), args.Error(1)
}

func (m *MockCategoryMappingRepo) FindByCodeAndSupplier(ctx context.Context, orgID uuid.UUID, code, supplier string) (*domain.CategoryMapping, error) {
	args := m.Called(ctx, orgID, code, supplier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CategoryMapping), args.Error(1)
}

func (m *MockCategoryMappingRepo) FindByCodeOnly(ctx context.Context, orgID uuid.UUID, code string) (*domain.CategoryMapping, error) {
	args := m.Called(ctx, orgID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CategoryMapping), args.Error(1)
}

func (m *MockCategoryMappingRepo) FindByNameAndCode(ctx context.Context, orgID uuid.UUID, name, code string) (*domain.CategoryMapping, error) {
	args := m.Called(ctx, orgID, name, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CategoryMapping), args.Error(1)
}

func (m *MockCategoryMappingRepo) FindByNameFold(ctx context.Context, orgID uuid.UUID, name string) (*domain.CategoryMapping, error) {
	args := m.Called(ctx, orgID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CategoryMapping), args.Error(1)
}

func (m *MockCategoryMappingRepo) InsertPending(ctx context.Context, pm domain.PendingCategoryMapping) error {
	args := m.Called(ctx, pm)
	return args.Error(0)
}

// MockTrackerRepo is a mock implementation of port.TrackerRepository.
type MockTrackerRepo struct {
	mock.Mock
}

func (m *MockTrackerRepo) MarkProcessed(ctx context.Context, documentID string, orgID uuid.UUID, locationID *uuid.UUID) error {
	args := m.Called(ctx, documentID, orgID, locationID)
	return args.Error(0)
}

func (m *MockTrackerRepo) MarkFailed(ctx context.Context, documentID string, orgID uuid.UUID, locationID *uuid.UUID) error {
	args := m.Called(ctx, documentID, orgID, locationID)
	return args.Error(0)
}
