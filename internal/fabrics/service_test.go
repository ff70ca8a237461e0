package fabrics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/omarsadiq/tailorware-backend/pkg/db/models"
	"github.com/omarsadiq/tailorware-backend/pkg/enums"
	pkgerrors "github.com/omarsadiq/tailorware-backend/pkg/errors"
)

type stubFabricRepo struct {
	fabrics map[uuid.UUID]*models.Fabric
	orders  map[uuid.UUID]*models.FabricOrder
}

func newStubFabricRepo() *stubFabricRepo {
	return &stubFabricRepo{
		fabrics: map[uuid.UUID]*models.Fabric{},
		orders:  map[uuid.UUID]*models.FabricOrder{},
	}
}

func (s *stubFabricRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubFabricRepo) Create(ctx context.Context, fabric *models.Fabric) (*models.Fabric, error) {
	fabric.ID = uuid.New()
	s.fabrics[fabric.ID] = fabric
	return fabric, nil
}

func (s *stubFabricRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Fabric, error) {
	fabric, ok := s.fabrics[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *fabric
	return &clone, nil
}

func (s *stubFabricRepo) FindByCode(ctx context.Context, code string) (*models.Fabric, error) {
	for _, fabric := range s.fabrics {
		if fabric.Code == code {
			return fabric, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubFabricRepo) List(ctx context.Context, limit, offset int) ([]models.Fabric, error) {
	var out []models.Fabric
	for _, fabric := range s.fabrics {
		out = append(out, *fabric)
	}
	return out, nil
}

func (s *stubFabricRepo) Update(ctx context.Context, id uuid.UUID, values map[string]any) error {
	fabric, ok := s.fabrics[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for name, value := range values {
		switch name {
		case "image_key":
			switch v := value.(type) {
			case string:
				fabric.ImageKey = &v
			case *string:
				fabric.ImageKey = v
			case nil:
				fabric.ImageKey = nil
			}
		case "image_status":
			if status, ok := value.(enums.ImageStatus); ok {
				fabric.ImageStatus = status
			}
		case "available_length":
			if length, ok := value.(decimal.Decimal); ok {
				fabric.AvailableLength = length
			}
		}
	}
	return nil
}

func (s *stubFabricRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(s.fabrics, id)
	return nil
}

func (s *stubFabricRepo) CreateOrder(ctx context.Context, row *models.FabricOrder) (*models.FabricOrder, error) {
	row.ID = uuid.New()
	s.orders[row.ID] = row
	return row, nil
}

func (s *stubFabricRepo) FindOrderByID(ctx context.Context, id uuid.UUID) (*models.FabricOrder, error) {
	row, ok := s.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *row
	return &clone, nil
}

func (s *stubFabricRepo) ListOrders(ctx context.Context, fabricID *uuid.UUID, limit, offset int) ([]models.FabricOrder, error) {
	var out []models.FabricOrder
	for _, row := range s.orders {
		if fabricID != nil && row.FabricID != *fabricID {
			continue
		}
		out = append(out, *row)
	}
	return out, nil
}

func (s *stubFabricRepo) UpdateOrder(ctx context.Context, id uuid.UUID, values map[string]any) error {
	row, ok := s.orders[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if status, ok := values["status"].(enums.FabricOrderStatus); ok {
		row.Status = status
	}
	if received, ok := values["received_at"].(time.Time); ok {
		row.ReceivedAt = &received
	}
	return nil
}

func (s *stubFabricRepo) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	delete(s.orders, id)
	return nil
}

type stubStore struct {
	signErr    error
	deleteErr  error
	deletedKey string
}

func (s *stubStore) SignedURL(bucket, object, contentType string, expires time.Duration) (string, error) {
	if s.signErr != nil {
		return "", s.signErr
	}
	return "https://storage.example.com/" + bucket + "/" + object + "?sig=put", nil
}

func (s *stubStore) SignedReadURL(bucket, object string, expires time.Duration) (string, error) {
	if s.signErr != nil {
		return "", s.signErr
	}
	return "https://storage.example.com/" + bucket + "/" + object + "?sig=get", nil
}

func (s *stubStore) DeleteObject(ctx context.Context, bucket, object string) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	s.deletedKey = object
	return nil
}

type stubSuppliers struct {
	known map[uuid.UUID]bool
}

func (s *stubSuppliers) FindByID(ctx context.Context, id uuid.UUID) (*models.Supplier, error) {
	if !s.known[id] {
		return nil, gorm.ErrRecordNotFound
	}
	return &models.Supplier{ID: id}, nil
}

type stubFabricTx struct{}

func (s *stubFabricTx) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

type fabricFixture struct {
	svc       Service
	repo      *stubFabricRepo
	store     *stubStore
	suppliers *stubSuppliers
}

func newFabricFixture(t *testing.T) *fabricFixture {
	t.Helper()
	f := &fabricFixture{
		repo:      newStubFabricRepo(),
		store:     &stubStore{},
		suppliers: &stubSuppliers{known: map[uuid.UUID]bool{}},
	}
	svc, err := NewService(ServiceParams{
		Repo:      f.repo,
		Tx:        &stubFabricTx{},
		Store:     f.store,
		Suppliers: f.suppliers,
		Bucket:    "tailorware-media",
	})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	f.svc = svc
	return f
}

func (f *fabricFixture) seedFabric(t *testing.T) uuid.UUID {
	t.Helper()
	id := uuid.New()
	f.repo.fabrics[id] = &models.Fabric{
		ID:          id,
		Name:        "Navy wool",
		Code:        "NW-120",
		ImageStatus: enums.ImageStatusPending,
	}
	return id
}

func TestCreateFabricDuplicateCode(t *testing.T) {
	f := newFabricFixture(t)
	f.seedFabric(t)

	_, err := f.svc.Create(context.Background(), CreateFabricRequest{Name: "Another", Code: "NW-120"})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected CONFLICT, got %v", err)
	}
}

func TestPresignImageStoresPendingKey(t *testing.T) {
	f := newFabricFixture(t)
	fabricID := f.seedFabric(t)

	out, err := f.svc.PresignImage(context.Background(), fabricID, PresignImageRequest{
		FileName:  "navy wool.jpg",
		MimeType:  "image/jpeg",
		SizeBytes: 1024,
	})
	if err != nil {
		t.Fatalf("PresignImage: %v", err)
	}
	if out.SignedPUTURL == "" {
		t.Fatal("expected a signed PUT URL")
	}

	fabric := f.repo.fabrics[fabricID]
	if fabric.ImageKey == nil || *fabric.ImageKey != out.ObjectKey {
		t.Fatalf("image key = %v, want %q", fabric.ImageKey, out.ObjectKey)
	}
	if fabric.ImageStatus != enums.ImageStatusPending {
		t.Fatalf("status = %s, want pending", fabric.ImageStatus)
	}
}

func TestPresignImageRollsBackOnSignFailure(t *testing.T) {
	f := newFabricFixture(t)
	fabricID := f.seedFabric(t)
	f.store.signErr = errors.New("signer unavailable")

	_, err := f.svc.PresignImage(context.Background(), fabricID, PresignImageRequest{
		FileName:  "navy.jpg",
		MimeType:  "image/jpeg",
		SizeBytes: 1024,
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected DEPENDENCY, got %v", err)
	}
	if f.repo.fabrics[fabricID].ImageKey != nil {
		t.Fatal("key write must be rolled back when signing fails")
	}
}

func TestPresignImageRejectsBadMime(t *testing.T) {
	f := newFabricFixture(t)
	fabricID := f.seedFabric(t)

	_, err := f.svc.PresignImage(context.Background(), fabricID, PresignImageRequest{
		FileName:  "swatch.pdf",
		MimeType:  "application/pdf",
		SizeBytes: 1024,
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected VALIDATION, got %v", err)
	}
}

func TestConfirmImageFlipsToReady(t *testing.T) {
	f := newFabricFixture(t)
	fabricID := f.seedFabric(t)
	key := "fabrics/" + fabricID.String() + "/navy.jpg"
	f.repo.fabrics[fabricID].ImageKey = &key

	dto, err := f.svc.ConfirmImage(context.Background(), fabricID)
	if err != nil {
		t.Fatalf("ConfirmImage: %v", err)
	}
	if dto.ImageStatus != enums.ImageStatusReady {
		t.Fatalf("status = %s, want ready", dto.ImageStatus)
	}
}

func TestConfirmImageWithoutUpload(t *testing.T) {
	f := newFabricFixture(t)
	fabricID := f.seedFabric(t)

	_, err := f.svc.ConfirmImage(context.Background(), fabricID)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestImageReadURLRequiresReady(t *testing.T) {
	f := newFabricFixture(t)
	fabricID := f.seedFabric(t)
	key := "fabrics/" + fabricID.String() + "/navy.jpg"
	f.repo.fabrics[fabricID].ImageKey = &key

	if _, err := f.svc.ImageReadURL(context.Background(), fabricID); err == nil {
		t.Fatal("pending image must not be served")
	}

	f.repo.fabrics[fabricID].ImageStatus = enums.ImageStatusReady
	out, err := f.svc.ImageReadURL(context.Background(), fabricID)
	if err != nil {
		t.Fatalf("ImageReadURL: %v", err)
	}
	if out.SignedURL == "" {
		t.Fatal("expected a signed GET URL")
	}
}

func TestDeleteImageAbortsWhenBlobDeleteFails(t *testing.T) {
	f := newFabricFixture(t)
	fabricID := f.seedFabric(t)
	key := "fabrics/" + fabricID.String() + "/navy.jpg"
	f.repo.fabrics[fabricID].ImageKey = &key
	f.repo.fabrics[fabricID].ImageStatus = enums.ImageStatusReady
	f.store.deleteErr = errors.New("bucket unreachable")

	err := f.svc.DeleteImage(context.Background(), fabricID)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected DEPENDENCY, got %v", err)
	}
	if f.repo.fabrics[fabricID].ImageKey == nil {
		t.Fatal("key must survive when the blob delete fails")
	}
}

func TestDeleteImageClearsKey(t *testing.T) {
	f := newFabricFixture(t)
	fabricID := f.seedFabric(t)
	key := "fabrics/" + fabricID.String() + "/navy.jpg"
	f.repo.fabrics[fabricID].ImageKey = &key
	f.repo.fabrics[fabricID].ImageStatus = enums.ImageStatusReady

	if err := f.svc.DeleteImage(context.Background(), fabricID); err != nil {
		t.Fatalf("DeleteImage: %v", err)
	}
	if f.store.deletedKey != key {
		t.Fatalf("deleted key = %q, want %q", f.store.deletedKey, key)
	}
	fabric := f.repo.fabrics[fabricID]
	if fabric.ImageKey != nil || fabric.ImageStatus != enums.ImageStatusPending {
		t.Fatalf("fabric image not cleared: key=%v status=%s", fabric.ImageKey, fabric.ImageStatus)
	}
}

func TestReceiveFabricOrderBooksLength(t *testing.T) {
	f := newFabricFixture(t)
	fabricID := f.seedFabric(t)
	f.repo.fabrics[fabricID].AvailableLength = decimal.NewFromInt(12)
	supplierID := uuid.New()
	f.suppliers.known[supplierID] = true

	created, err := f.svc.CreateOrder(context.Background(), CreateFabricOrderRequest{
		FabricID:   fabricID,
		SupplierID: supplierID,
		Length:     decimal.NewFromInt(30),
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	status := "received"
	updated, err := f.svc.UpdateOrder(context.Background(), created.ID, UpdateFabricOrderRequest{Status: &status})
	if err != nil {
		t.Fatalf("UpdateOrder: %v", err)
	}
	if updated.Status != enums.FabricOrderStatusReceived {
		t.Fatalf("status = %s, want received", updated.Status)
	}
	if updated.ReceivedAt == nil {
		t.Fatal("received_at must be stamped")
	}
	if !f.repo.fabrics[fabricID].AvailableLength.Equal(decimal.NewFromInt(42)) {
		t.Fatalf("available length = %s, want 42", f.repo.fabrics[fabricID].AvailableLength)
	}
}

func TestDeleteReceivedOrderRejected(t *testing.T) {
	f := newFabricFixture(t)
	orderID := uuid.New()
	f.repo.orders[orderID] = &models.FabricOrder{ID: orderID, Status: enums.FabricOrderStatusReceived}

	err := f.svc.DeleteOrder(context.Background(), orderID)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected CONFLICT, got %v", err)
	}
}
