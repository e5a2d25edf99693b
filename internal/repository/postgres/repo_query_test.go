package postgres

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"

	"github.com/nordbooks/lineflow/internal/domain"
)

type fakeResult struct{ rows int64 }

func (r fakeResult) LastInsertId() (int64, error) { return 0, nil }
func (r fakeResult) RowsAffected() (int64, error) { return r.rows, nil }

// fakeQuerier records every statement a repository issues.
type fakeQuerier struct {
	queries  []string
	args     [][]interface{}
	execRows int64
	getErr   error
	onGet    func(dest interface{})
}

func (f *fakeQuerier) record(query string, args []interface{}) {
	f.queries = append(f.queries, query)
	f.args = append(f.args, args)
}

func (f *fakeQuerier) DriverName() string         { return "pgx" }
func (f *fakeQuerier) Rebind(query string) string { return sqlx.Rebind(sqlx.DOLLAR, query) }
func (f *fakeQuerier) BindNamed(query string, arg interface{}) (string, []interface{}, error) {
	return query, nil, nil
}

func (f *fakeQuerier) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	f.record(query, args)
	return nil, sql.ErrNoRows
}

func (f *fakeQuerier) QueryxContext(ctx context.Context, query string, args ...interface{}) (*sqlx.Rows, error) {
	f.record(query, args)
	return nil, sql.ErrNoRows
}

func (f *fakeQuerier) QueryRowxContext(ctx context.Context, query string, args ...interface{}) *sqlx.Row {
	f.record(query, args)
	return nil
}

func (f *fakeQuerier) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	f.record(query, args)
	return fakeResult{rows: f.execRows}, nil
}

func (f *fakeQuerier) GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	f.record(query, args)
	if f.onGet != nil {
		f.onGet(dest)
	}
	return f.getErr
}

func (f *fakeQuerier) SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	f.record(query, args)
	return nil
}

const nameOnlyAddressPredicate = "(variant_address IS NULL OR LOWER(TRIM(variant_address)) = LOWER(TRIM($3)))"

func TestSupplierMappingRepo_FindExactMatchesNameOnlyMappings(t *testing.T) {
	q := &fakeQuerier{getErr: sql.ErrNoRows}
	repo := &supplierMappingRepo{q: q}

	_, err := repo.FindExact(context.Background(), uuid.New(), "AB Catering", "Vestergade 12")

	assert.ErrorIs(t, err, domain.ErrMappingNotFound)
	// A mapping stored without an address must match regardless of the OCR'd
	// address, so the address filter has to admit NULL rows.
	assert.Contains(t, q.queries[0], nameOnlyAddressPredicate)
}

func TestLocationMappingRepo_FindExactMatchesNameOnlyMappings(t *testing.T) {
	q := &fakeQuerier{getErr: sql.ErrNoRows}
	repo := &locationMappingRepo{q: q}

	_, err := repo.FindExact(context.Background(), uuid.New(), "Kantine Nord", "Parkvej 3", "Kantine Nord")

	assert.ErrorIs(t, err, domain.ErrMappingNotFound)
	assert.Len(t, q.queries, 2)
	assert.Contains(t, q.queries[0], nameOnlyAddressPredicate)
	assert.Contains(t, q.queries[1], nameOnlyAddressPredicate)
}

func TestSourceDocumentRepo_ListUnprocessedSweepsNonTerminalStatuses(t *testing.T) {
	q := &fakeQuerier{}
	repo := &sourceDocumentRepo{q: q}

	_, err := repo.ListUnprocessed(context.Background())

	assert.NoError(t, err)
	assert.Len(t, q.args[0], len(domain.NonTerminalStatuses))
	for i, status := range domain.NonTerminalStatuses {
		assert.Equal(t, status, q.args[0][i])
	}
}

func TestTrackerRepo_MarkProcessedAdvancesInFlightRecord(t *testing.T) {
	q := &fakeQuerier{execRows: 1}
	repo := &trackerRepo{q: q}

	err := repo.MarkProcessed(context.Background(), "invoice-1001", uuid.New(), nil)

	assert.NoError(t, err)
	assert.Len(t, q.queries, 1)
}

func TestTrackerRepo_TerminalRecordKeepsStatus(t *testing.T) {
	q := &fakeQuerier{execRows: 0, onGet: func(dest interface{}) {
		*(dest.(*bool)) = true
	}}
	repo := &trackerRepo{q: q}

	err := repo.MarkFailed(context.Background(), "invoice-1001", uuid.New(), nil)

	assert.NoError(t, err)
	// Update guarded by status, then the existence check.
	assert.Len(t, q.queries, 2)
}

func TestTrackerRepo_MissingRecordReturnsNotFound(t *testing.T) {
	q := &fakeQuerier{execRows: 0, onGet: func(dest interface{}) {
		*(dest.(*bool)) = false
	}}
	repo := &trackerRepo{q: q}

	err := repo.MarkProcessed(context.Background(), "invoice-1001", uuid.New(), nil)

	assert.ErrorIs(t, err, domain.ErrTrackerNotFound)
}
