package customers

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/omarsadiq/tailorware-backend/internal/audit"
	"github.com/omarsadiq/tailorware-backend/pkg/db/models"
	pkgerrors "github.com/omarsadiq/tailorware-backend/pkg/errors"
)

type stubRepo struct {
	customers map[uuid.UUID]*CustomerDTO

	repointedRows int64
	repointCalls  int
	deletedIDs    []uuid.UUID
}

func (s *stubRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubRepo) Create(ctx context.Context, customer *models.Customer) (*models.Customer, error) {
	customer.ID = uuid.New()
	return customer, nil
}

func (s *stubRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	dto, ok := s.customers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &models.Customer{FullName: dto.FullName, Phone: dto.Phone}, nil
}

func (s *stubRepo) List(ctx context.Context, limit, offset int) ([]models.Customer, error) {
	return nil, nil
}

func (s *stubRepo) Search(ctx context.Context, query string, limit int) ([]models.Customer, error) {
	return nil, nil
}

func (s *stubRepo) Update(ctx context.Context, id uuid.UUID, values map[string]any) error {
	return nil
}

func (s *stubRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

func (s *stubRepo) CountByIDs(ctx context.Context, ids []uuid.UUID) (int64, error) {
	var count int64
	for _, id := range ids {
		if _, ok := s.customers[id]; ok {
			count++
		}
	}
	return count, nil
}

func (s *stubRepo) RepointReferences(ctx context.Context, targetID uuid.UUID, sourceIDs []uuid.UUID) (int64, error) {
	s.repointCalls++
	return s.repointedRows, nil
}

func (s *stubRepo) DeleteByIDs(ctx context.Context, ids []uuid.UUID) error {
	s.deletedIDs = append(s.deletedIDs, ids...)
	for _, id := range ids {
		delete(s.customers, id)
	}
	return nil
}

type stubTxRunner struct {
	calls int
}

func (s *stubTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	s.calls++
	return fn(nil)
}

type stubAudit struct {
	entries []audit.Entry
}

func (s *stubAudit) RecordTx(ctx context.Context, tx *gorm.DB, entry audit.Entry) error {
	s.entries = append(s.entries, entry)
	return nil
}

func newMergeFixture(t *testing.T, ids ...uuid.UUID) (Service, *stubRepo, *stubTxRunner, *stubAudit) {
	t.Helper()
	repo := &stubRepo{customers: map[uuid.UUID]*CustomerDTO{}}
	for _, id := range ids {
		repo.customers[id] = &CustomerDTO{ID: id, FullName: "Customer", Phone: "555-0100"}
	}
	tx := &stubTxRunner{}
	auditSvc := &stubAudit{}
	svc, err := NewService(repo, tx, auditSvc)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc, repo, tx, auditSvc
}

func TestMergeRepointsAndDeletesSources(t *testing.T) {
	target := uuid.New()
	src1 := uuid.New()
	src2 := uuid.New()
	svc, repo, tx, auditSvc := newMergeFixture(t, target, src1, src2)
	repo.repointedRows = 7
	actor := uuid.New()

	result, err := svc.Merge(context.Background(), &actor, MergeRequest{
		TargetID:  target,
		SourceIDs: []uuid.UUID{src1, src2, src1},
	})
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if result.TargetID != target {
		t.Fatalf("target = %s, want %s", result.TargetID, target)
	}
	if result.MergedCustomers != 2 {
		t.Fatalf("merged = %d, want 2 (duplicate source should collapse)", result.MergedCustomers)
	}
	if result.RepointedRows != 7 {
		t.Fatalf("repointed = %d, want 7", result.RepointedRows)
	}
	if tx.calls != 1 {
		t.Fatalf("tx calls = %d, want 1", tx.calls)
	}
	if len(repo.deletedIDs) != 2 {
		t.Fatalf("deleted = %v, want both sources", repo.deletedIDs)
	}
	if _, ok := repo.customers[target]; !ok {
		t.Fatal("target customer must survive the merge")
	}
	if len(auditSvc.entries) != 1 {
		t.Fatalf("audit entries = %d, want 1", len(auditSvc.entries))
	}
	entry := auditSvc.entries[0]
	if entry.Action != "customer.merge" || entry.EntityType != "customer" {
		t.Fatalf("unexpected audit entry: %+v", entry)
	}
	if entry.ActorID == nil || *entry.ActorID != actor {
		t.Fatal("audit entry must carry the acting user")
	}
}

type failingAudit struct {
	err error
}

func (f *failingAudit) RecordTx(ctx context.Context, tx *gorm.DB, entry audit.Entry) error {
	return f.err
}

func TestMergeKeepsTypedErrorsFromTransaction(t *testing.T) {
	target := uuid.New()
	src := uuid.New()
	repo := &stubRepo{customers: map[uuid.UUID]*CustomerDTO{
		target: {ID: target, FullName: "Customer", Phone: "555-0100"},
		src:    {ID: src, FullName: "Customer", Phone: "555-0100"},
	}}
	auditSvc := &failingAudit{err: pkgerrors.New(pkgerrors.CodeConflict, "audit log is read only")}
	svc, err := NewService(repo, &stubTxRunner{}, auditSvc)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	_, err = svc.Merge(context.Background(), nil, MergeRequest{
		TargetID:  target,
		SourceIDs: []uuid.UUID{src},
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected CONFLICT to pass through unwrapped, got %v", err)
	}
}

func TestMergeMissingSourceIsNotFound(t *testing.T) {
	target := uuid.New()
	src := uuid.New()
	svc, _, tx, _ := newMergeFixture(t, target, src)

	_, err := svc.Merge(context.Background(), nil, MergeRequest{
		TargetID:  target,
		SourceIDs: []uuid.UUID{src, uuid.New()},
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
	if tx.calls != 0 {
		t.Fatal("no transaction should start when a source is missing")
	}
}

func TestMergeMissingTargetIsNotFound(t *testing.T) {
	src := uuid.New()
	svc, _, tx, _ := newMergeFixture(t, src)

	_, err := svc.Merge(context.Background(), nil, MergeRequest{
		TargetID:  uuid.New(),
		SourceIDs: []uuid.UUID{src},
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
	if tx.calls != 0 {
		t.Fatal("no transaction should start when the target is missing")
	}
}

func TestMergeRejectsTargetAmongSources(t *testing.T) {
	target := uuid.New()
	svc, _, _, _ := newMergeFixture(t, target)

	_, err := svc.Merge(context.Background(), nil, MergeRequest{
		TargetID:  target,
		SourceIDs: []uuid.UUID{target},
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected VALIDATION, got %v", err)
	}
}

func TestMergeRejectsEmptySources(t *testing.T) {
	target := uuid.New()
	svc, _, _, _ := newMergeFixture(t, target)

	_, err := svc.Merge(context.Background(), nil, MergeRequest{
		TargetID:  target,
		SourceIDs: []uuid.UUID{uuid.Nil},
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected VALIDATION, got %v", err)
	}
}
