package service_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/nordbooks/lineflow/internal/domain"
	"github.com/nordbooks/lineflow/internal/port"
	"github.com/nordbooks/lineflow/internal/service"
	"github.com/nordbooks/lineflow/mocks"
)

func TestRun_EmptySweep(t *testing.T) {
	store := mocks.NewMockStore()
	store.SourceDocumentRepo.On("ListUnprocessed", mock.Anything).
		Return([]domain.SourceDocument{}, nil)

	runner := service.NewBatchRunner(store, newProcessor(store), nil, nil, "",
		service.RunnerConfig{Concurrency: 2}, zap.NewNop())

	summary, err := runner.Run(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 0, summary.Documents)
	assert.Equal(t, 0, summary.Processed)
}

func TestRun_SweepProcessesAndReports(t *testing.T) {
	orgID := uuid.New()
	buID := uuid.New()
	supplierID := uuid.New()
	locationID := uuid.New()
	catMapping := &domain.CategoryMapping{MappingID: uuid.New(), CategoryID: uuid.New()}

	doc := testDocument(orgID, &buID)
	store := mocks.NewMockStore()
	store.SourceDocumentRepo.On("ListUnprocessed", mock.Anything).
		Return([]domain.SourceDocument{*doc}, nil)
	store.RegistryRepo.On("ListSuppliers", mock.Anything, orgID).Return(nil, nil)
	store.RegistryRepo.On("ListLocations", mock.Anything, orgID).Return(nil, nil)
	store.FieldMappingRepo.On("ListByDataSource", mock.Anything, doc.DataSourceID).
		Return(testFieldMappings(doc.DataSourceID), nil)
	store.SupplierMappingRepo.On("FindExact", mock.Anything, orgID, mock.Anything, mock.Anything).
		Return(supplierID, nil)
	store.LocationMappingRepo.On("FindExact", mock.Anything, orgID, mock.Anything, mock.Anything, mock.Anything).
		Return(locationID, nil)
	store.CategoryMappingRepo.On("FindExact", mock.Anything, orgID, mock.Anything, mock.Anything, mock.Anything).
		Return(catMapping, nil)
	store.On("Begin", mock.Anything).Return(store.Tx, nil)
	store.Tx.On("Commit").Return(nil)
	store.Tx.On("Rollback").Return(nil)
	store.InvoiceLineRepo.On("Insert", mock.Anything, mock.Anything).Return(nil)
	store.SourceDocumentRepo.On("MarkProcessed", mock.Anything, doc.ID).Return(nil)
	store.InvoiceLineRepo.On("CountByDocument", mock.Anything, doc.ID, orgID).Return(2, nil)
	store.TrackerRepo.On("MarkProcessed", mock.Anything, "invoice-1001", orgID, mock.Anything).Return(nil)

	email := &mocks.MockEmailSender{}
	email.On("SendRunSummary", mock.Anything, "ops@example.test", mock.MatchedBy(func(s port.RunSummary) bool {
		return s.Documents == 1 && s.Processed == 1 && s.Failed == 0 && s.LinesInserted == 2
	})).Return(nil)

	archive := &mocks.MockObjectStorage{}
	archive.On("Put", mock.Anything,
		"payloads/"+orgID.String()+"/processed/invoice-1001.pdf.json",
		[]byte(json.RawMessage(doc.Data)), "application/json").Return(nil)

	runner := service.NewBatchRunner(store, newProcessor(store), archive, email, "ops@example.test",
		service.RunnerConfig{Concurrency: 2, ArchivePayloads: true}, zap.NewNop())

	summary, err := runner.Run(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 1, summary.Documents)
	assert.Equal(t, 1, summary.Processed)
	assert.Equal(t, 2, summary.LinesInserted)

	email.AssertExpectations(t)
	archive.AssertExpectations(t)
}
