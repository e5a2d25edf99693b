package resolve_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/nordbooks/lineflow/internal/config"
	"github.com/nordbooks/lineflow/internal/domain"
	"github.com/nordbooks/lineflow/internal/resolve"
	"github.com/nordbooks/lineflow/mocks"
)

func matchingDefaults() config.MatchingConfig {
	return config.MatchingConfig{
		AcceptThreshold:        80,
		SupplierScoreThreshold: 85,
		SupplierNameWeight:     0.6,
		SupplierNameOnlyName:   90,
		SupplierNameOnlyAddr:   50,
		LocationNameWeight:     0.7,
		LocationNameOnlyName:   95,
		LocationNameOnlyAddr:   40,
	}
}

func loadTestSnapshot(t *testing.T, orgID uuid.UUID, suppliers []domain.Supplier, locations []domain.Location) *resolve.Snapshot {
	t.Helper()
	reg := &mocks.MockRegistryRepo{}
	reg.On("ListSuppliers", mock.Anything, orgID).Return(suppliers, nil)
	reg.On("ListLocations", mock.Anything, orgID).Return(locations, nil)

	snap, err := resolve.LoadSnapshot(context.Background(), reg, orgID)
	assert.NoError(t, err)
	return snap
}

func TestSupplierResolver_ExactMappingShortCircuits(t *testing.T) {
	orgID := uuid.New()
	mappedID := uuid.New()
	snap := loadTestSnapshot(t, orgID, nil, nil)

	repo := &mocks.MockSupplierMappingRepo{}
	repo.On("FindExact", mock.Anything, orgID, "AB Catering", "Vestergade 12").
		Return(mappedID, nil)

	r := resolve.NewSupplierResolver(resolve.SupplierWeights(matchingDefaults()), 80, zap.NewNop())
	res, err := r.Resolve(context.Background(), repo, snap, "AB Catering", "Vestergade 12")

	assert.NoError(t, err)
	assert.Equal(t, mappedID, *res.ID)
	assert.False(t, res.Pending)
	repo.AssertNotCalled(t, "InsertPending", mock.Anything, mock.Anything)
}

func TestSupplierResolver_FuzzyMatch(t *testing.T) {
	orgID := uuid.New()
	supplierID := uuid.New()
	snap := loadTestSnapshot(t, orgID, []domain.Supplier{
		{ID: supplierID, OrganizationID: orgID, Name: "AB Catering A/S", Address: "Vestergade 12, 8000 Aarhus"},
	}, nil)

	repo := &mocks.MockSupplierMappingRepo{}
	repo.On("FindExact", mock.Anything, orgID, mock.Anything, mock.Anything).
		Return(uuid.Nil, domain.ErrMappingNotFound)

	r := resolve.NewSupplierResolver(resolve.SupplierWeights(matchingDefaults()), 80, zap.NewNop())
	res, err := r.Resolve(context.Background(), repo, snap, "AB CATERING A/S", "Vestergade 12, 8000 Aarhus")

	assert.NoError(t, err)
	assert.Equal(t, supplierID, *res.ID)
	assert.False(t, res.Pending)
	assert.GreaterOrEqual(t, res.Score, 85.0)
}

func TestSupplierResolver_NoMatchRecordsPending(t *testing.T) {
	orgID := uuid.New()
	snap := loadTestSnapshot(t, orgID, []domain.Supplier{
		{ID: uuid.New(), OrganizationID: orgID, Name: "AB Catering A/S", Address: "Vestergade 12"},
	}, nil)

	repo := &mocks.MockSupplierMappingRepo{}
	repo.On("FindExact", mock.Anything, orgID, mock.Anything, mock.Anything).
		Return(uuid.Nil, domain.ErrMappingNotFound)
	repo.On("InsertPending", mock.Anything, mock.MatchedBy(func(m domain.PendingSupplierMapping) bool {
		return m.OrganizationID == orgID && m.VariantSupplierName == "Totally Different Vendor GmbH"
	})).Return(nil)

	r := resolve.NewSupplierResolver(resolve.SupplierWeights(matchingDefaults()), 80, zap.NewNop())
	res, err := r.Resolve(context.Background(), repo, snap, "Totally Different Vendor GmbH", "Hauptstrasse 1, Berlin")

	assert.NoError(t, err)
	assert.Nil(t, res.ID)
	assert.True(t, res.Pending)
	repo.AssertExpectations(t)
}

func TestSupplierResolver_RepeatedMissRecordsSamePendingIdentity(t *testing.T) {
	orgID := uuid.New()
	snap := loadTestSnapshot(t, orgID, []domain.Supplier{
		{ID: uuid.New(), OrganizationID: orgID, Name: "AB Catering A/S", Address: "Vestergade 12"},
	}, nil)

	repo := &mocks.MockSupplierMappingRepo{}
	repo.On("FindExact", mock.Anything, orgID, mock.Anything, mock.Anything).
		Return(uuid.Nil, domain.ErrMappingNotFound)
	var recorded []domain.PendingSupplierMapping
	repo.On("InsertPending", mock.Anything, mock.AnythingOfType("domain.PendingSupplierMapping")).
		Run(func(args mock.Arguments) {
			recorded = append(recorded, args.Get(1).(domain.PendingSupplierMapping))
		}).Return(nil)

	r := resolve.NewSupplierResolver(resolve.SupplierWeights(matchingDefaults()), 80, zap.NewNop())
	for i := 0; i < 2; i++ {
		res, err := r.Resolve(context.Background(), repo, snap, "Ny Leverandør ApS", "Havnegade 4")
		assert.NoError(t, err)
		assert.True(t, res.Pending)
	}

	// The same unresolved variant always produces the same pending identity.
	// The partial unique index on pending rows collapses the second insert
	// into a no-op instead of a duplicate review item.
	assert.Len(t, recorded, 2)
	assert.Equal(t, recorded[0], recorded[1])
}

func TestLocationResolver_FuzzyMatchDerivesBusinessUnit(t *testing.T) {
	orgID := uuid.New()
	locationID := uuid.New()
	buID := uuid.New()
	snap := loadTestSnapshot(t, orgID, nil, []domain.Location{
		{ID: locationID, OrganizationID: orgID, BusinessUnitID: &buID, Name: "Kantine Nord", Address: "Parkvej 3, 9000 Aalborg"},
	})

	repo := &mocks.MockLocationMappingRepo{}
	repo.On("FindExact", mock.Anything, orgID, mock.Anything, mock.Anything, mock.Anything).
		Return(uuid.Nil, domain.ErrMappingNotFound)

	r := resolve.NewLocationResolver(resolve.LocationWeights(matchingDefaults()), 80, zap.NewNop())
	res, err := r.Resolve(context.Background(), repo, snap, "Kantine Nord", "Parkvej 3, 9000 Aalborg", "Kantine Nord")

	assert.NoError(t, err)
	assert.Equal(t, locationID, *res.ID)
	assert.Equal(t, buID, *snap.BusinessUnitFor(*res.ID))
}

func TestCategoryResolver_ExactWins(t *testing.T) {
	orgID := uuid.New()
	mapping := &domain.CategoryMapping{MappingID: uuid.New(), CategoryID: uuid.New()}

	repo := &mocks.MockCategoryMappingRepo{}
	repo.On("FindExact", mock.Anything, orgID, "Rugbrød", mock.Anything, mock.Anything).
		Return(mapping, nil)

	r := resolve.NewCategoryResolver(zap.NewNop())
	res, err := r.Resolve(context.Background(), repo, orgID, "Rugbrød", "RB-100", "AB Catering")

	assert.NoError(t, err)
	assert.Equal(t, mapping.CategoryID, *res.CategoryID)
	assert.Equal(t, mapping.MappingID, *res.MappingID)
	assert.False(t, res.Pending)
	repo.AssertNotCalled(t, "FindByCodeAndSupplier", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCategoryResolver_LadderFallsThrough(t *testing.T) {
	orgID := uuid.New()
	mapping := &domain.CategoryMapping{MappingID: uuid.New(), CategoryID: uuid.New()}

	repo := &mocks.MockCategoryMappingRepo{}
	repo.On("FindExact", mock.Anything, orgID, "Rugbrød", mock.Anything, mock.Anything).
		Return(nil, domain.ErrMappingNotFound)
	repo.On("FindByCodeAndSupplier", mock.Anything, orgID, "RB-100", "AB Catering").
		Return(nil, domain.ErrMappingNotFound)
	repo.On("FindByCodeOnly", mock.Anything, orgID, "RB-100").
		Return(nil, domain.ErrMappingNotFound)
	repo.On("FindByNameAndCode", mock.Anything, orgID, "Rugbrød", "RB-100").
		Return(nil, domain.ErrMappingNotFound)
	repo.On("FindByNameFold", mock.Anything, orgID, "Rugbrød").
		Return(mapping, nil)

	r := resolve.NewCategoryResolver(zap.NewNop())
	res, err := r.Resolve(context.Background(), repo, orgID, "Rugbrød", "RB-100", "AB Catering")

	assert.NoError(t, err)
	assert.Equal(t, mapping.CategoryID, *res.CategoryID)
	repo.AssertExpectations(t)
}

func TestCategoryResolver_ExhaustedLadderRecordsPending(t *testing.T) {
	orgID := uuid.New()

	repo := &mocks.MockCategoryMappingRepo{}
	repo.On("FindExact", mock.Anything, orgID, "Ukendt Vare", mock.Anything, mock.Anything).
		Return(nil, domain.ErrMappingNotFound)
	repo.On("FindByNameFold", mock.Anything, orgID, "Ukendt Vare").
		Return(nil, domain.ErrMappingNotFound)
	repo.On("InsertPending", mock.Anything, mock.MatchedBy(func(m domain.PendingCategoryMapping) bool {
		return m.VariantProductName == "Ukendt Vare" && m.VariantProductCode == nil
	})).Return(nil)

	r := resolve.NewCategoryResolver(zap.NewNop())
	res, err := r.Resolve(context.Background(), repo, orgID, "Ukendt Vare", "", "")

	assert.NoError(t, err)
	assert.Nil(t, res.CategoryID)
	assert.True(t, res.Pending)
	repo.AssertExpectations(t)
}

func TestCategoryResolver_EmptyNameIsPendingWithoutRecord(t *testing.T) {
	repo := &mocks.MockCategoryMappingRepo{}

	r := resolve.NewCategoryResolver(zap.NewNop())
	res, err := r.Resolve(context.Background(), repo, uuid.New(), "   ", "X", "Y")

	assert.NoError(t, err)
	assert.True(t, res.Pending)
	repo.AssertNotCalled(t, "InsertPending", mock.Anything, mock.Anything)
}
