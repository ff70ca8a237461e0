package customers

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/omarsadiq/tailorware-backend/pkg/db/models"
	pkgerrors "github.com/omarsadiq/tailorware-backend/pkg/errors"
)

func setupCustomersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:customers_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	customersTable := `
CREATE TABLE IF NOT EXISTS customers (
  id TEXT PRIMARY KEY,
  full_name TEXT NOT NULL,
  phone TEXT NOT NULL,
  email TEXT,
  address TEXT,
  notes TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(customersTable).Error)

	for _, table := range customerReferences {
		stmt := `
CREATE TABLE IF NOT EXISTS ` + table + ` (
  id TEXT PRIMARY KEY,
  customer_id TEXT NOT NULL
);`
		require.NoError(t, db.Exec(stmt).Error)
	}

	return db
}

func insertCustomer(t *testing.T, db *gorm.DB, name string) uuid.UUID {
	t.Helper()
	row := &models.Customer{ID: uuid.New(), FullName: name, Phone: "03001234567"}
	require.NoError(t, db.Create(row).Error)
	return row.ID
}

func insertReference(t *testing.T, db *gorm.DB, table string, customerID uuid.UUID) {
	t.Helper()
	require.NoError(t, db.Exec(
		"INSERT INTO "+table+" (id, customer_id) VALUES (?, ?)",
		uuid.NewString(), customerID.String(),
	).Error)
}

func TestRepointReferencesTouchesEveryTable(t *testing.T) {
	db := setupCustomersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	target := insertCustomer(t, db, "Anwar Khan")
	source := insertCustomer(t, db, "Anwar K.")

	for _, table := range customerReferences {
		insertReference(t, db, table, source)
	}
	insertReference(t, db, "orders", target)

	moved, err := repo.RepointReferences(ctx, target, []uuid.UUID{source})
	require.NoError(t, err)
	assert.Equal(t, int64(len(customerReferences)), moved)

	for _, table := range customerReferences {
		var count int64
		require.NoError(t, db.Table(table).Where("customer_id = ?", source.String()).Count(&count).Error)
		assert.Zero(t, count, "table %s still references the source", table)
	}

	var orderCount int64
	require.NoError(t, db.Table("orders").Where("customer_id = ?", target.String()).Count(&orderCount).Error)
	assert.Equal(t, int64(2), orderCount)
}

func TestCountByIDsAndDeleteByIDs(t *testing.T) {
	db := setupCustomersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	first := insertCustomer(t, db, "First")
	second := insertCustomer(t, db, "Second")
	missing := uuid.New()

	count, err := repo.CountByIDs(ctx, []uuid.UUID{first, second, missing})
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	require.NoError(t, repo.DeleteByIDs(ctx, []uuid.UUID{first, second}))

	count, err = repo.CountByIDs(ctx, []uuid.UUID{first, second})
	require.NoError(t, err)
	assert.Zero(t, count)
}

// gormTxRunner runs the callback inside a real database transaction, unlike
// the no-op runner the service tests use.
type gormTxRunner struct {
	db *gorm.DB
}

func (g gormTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return g.db.WithContext(ctx).Transaction(fn)
}

// deleteFailRepo delegates everything to the real repository but rejects the
// source deletion, simulating a failure mid-merge.
type deleteFailRepo struct {
	Repository
}

func (r deleteFailRepo) WithTx(tx *gorm.DB) Repository {
	return deleteFailRepo{r.Repository.WithTx(tx)}
}

func (r deleteFailRepo) DeleteByIDs(ctx context.Context, ids []uuid.UUID) error {
	return errors.New("sources are locked")
}

func TestMergeRollsBackRepointWhenDeleteFails(t *testing.T) {
	db := setupCustomersTestDB(t)
	repo := deleteFailRepo{NewRepository(db)}
	svc, err := NewService(repo, gormTxRunner{db: db}, &stubAudit{})
	require.NoError(t, err)

	target := insertCustomer(t, db, "Anwar Khan")
	source := insertCustomer(t, db, "Anwar K.")
	insertReference(t, db, "orders", source)
	insertReference(t, db, "orders", source)
	insertReference(t, db, "jacket_measurements", source)

	_, err = svc.Merge(context.Background(), nil, MergeRequest{
		TargetID:  target,
		SourceIDs: []uuid.UUID{source},
	})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeInternal, typed.Code())

	var sourceRows int64
	require.NoError(t, db.Table("customers").Where("id = ?", source.String()).Count(&sourceRows).Error)
	assert.Equal(t, int64(1), sourceRows, "source customer must survive the failed merge")

	var sourceOrders int64
	require.NoError(t, db.Table("orders").Where("customer_id = ?", source.String()).Count(&sourceOrders).Error)
	assert.Equal(t, int64(2), sourceOrders, "orders must still reference the source")

	var sourceJackets int64
	require.NoError(t, db.Table("jacket_measurements").Where("customer_id = ?", source.String()).Count(&sourceJackets).Error)
	assert.Equal(t, int64(1), sourceJackets)

	var targetRefs int64
	require.NoError(t, db.Table("orders").Where("customer_id = ?", target.String()).Count(&targetRefs).Error)
	assert.Zero(t, targetRefs, "no repointed row may be visible after rollback")
}

func TestMergeCommitsThroughRealTransaction(t *testing.T) {
	db := setupCustomersTestDB(t)
	svc, err := NewService(NewRepository(db), gormTxRunner{db: db}, &stubAudit{})
	require.NoError(t, err)

	target := insertCustomer(t, db, "Kept")
	source := insertCustomer(t, db, "Folded")
	insertReference(t, db, "orders", source)

	result, err := svc.Merge(context.Background(), nil, MergeRequest{
		TargetID:  target,
		SourceIDs: []uuid.UUID{source},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.RepointedRows)

	var sourceRows int64
	require.NoError(t, db.Table("customers").Where("id = ?", source.String()).Count(&sourceRows).Error)
	assert.Zero(t, sourceRows)

	var targetOrders int64
	require.NoError(t, db.Table("orders").Where("customer_id = ?", target.String()).Count(&targetOrders).Error)
	assert.Equal(t, int64(1), targetOrders)
}

func TestUpdateSkipsEmptyValueMap(t *testing.T) {
	db := setupCustomersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	id := insertCustomer(t, db, "Untouched")
	require.NoError(t, repo.Update(ctx, id, nil))

	row, err := repo.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Untouched", row.FullName)
}
