package fabrics

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/omarsadiq/tailorware-backend/pkg/db"
	"github.com/omarsadiq/tailorware-backend/pkg/db/models"
	"github.com/omarsadiq/tailorware-backend/pkg/enums"
	pkgerrors "github.com/omarsadiq/tailorware-backend/pkg/errors"
	"github.com/omarsadiq/tailorware-backend/pkg/pagination"
)

// defaultMaxImageBytes caps fabric photograph uploads when no limit is configured.
const defaultMaxImageBytes = 10 << 20

var allowedImageMimes = []string{"image/png", "image/jpeg", "image/webp"}

// Service exposes fabric stock semantics, the image lifecycle included.
type Service interface {
	Create(ctx context.Context, req CreateFabricRequest) (*FabricDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*FabricDTO, error)
	List(ctx context.Context, limit, offset int) ([]FabricDTO, error)
	Update(ctx context.Context, id uuid.UUID, req UpdateFabricRequest) (*FabricDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error

	PresignImage(ctx context.Context, fabricID uuid.UUID, req PresignImageRequest) (*PresignImageResponse, error)
	ConfirmImage(ctx context.Context, fabricID uuid.UUID) (*FabricDTO, error)
	ImageReadURL(ctx context.Context, fabricID uuid.UUID) (*ImageURLResponse, error)
	DeleteImage(ctx context.Context, fabricID uuid.UUID) error

	CreateOrder(ctx context.Context, req CreateFabricOrderRequest) (*FabricOrderDTO, error)
	GetOrder(ctx context.Context, id uuid.UUID) (*FabricOrderDTO, error)
	ListOrders(ctx context.Context, fabricID *uuid.UUID, limit, offset int) ([]FabricOrderDTO, error)
	UpdateOrder(ctx context.Context, id uuid.UUID, req UpdateFabricOrderRequest) (*FabricOrderDTO, error)
	DeleteOrder(ctx context.Context, id uuid.UUID) error
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type objectStore interface {
	SignedURL(bucket, object, contentType string, expires time.Duration) (string, error)
	SignedReadURL(bucket, object string, expires time.Duration) (string, error)
	DeleteObject(ctx context.Context, bucket, object string) error
}

type supplierDirectory interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Supplier, error)
}

type service struct {
	repo      Repository
	tx        txRunner
	store     objectStore
	suppliers supplierDirectory
	bucket    string
	uploadTTL time.Duration
	readTTL   time.Duration
	maxImage  int64
}

// ServiceParams wires the fabrics service dependencies.
type ServiceParams struct {
	Repo       Repository
	Tx         txRunner
	Store      objectStore
	Suppliers  supplierDirectory
	Bucket     string
	UploadTTL  time.Duration
	ReadTTL    time.Duration
	MaxImageMB int
}

// NewService constructs a fabrics service with the provided dependencies.
func NewService(p ServiceParams) (Service, error) {
	if p.Repo == nil {
		return nil, fmt.Errorf("fabrics repository is required")
	}
	if p.Tx == nil {
		return nil, fmt.Errorf("transaction runner is required")
	}
	if p.Store == nil {
		return nil, fmt.Errorf("object store is required")
	}
	if p.Suppliers == nil {
		return nil, fmt.Errorf("supplier directory is required")
	}
	if p.Bucket == "" {
		return nil, fmt.Errorf("bucket is required")
	}
	if p.UploadTTL <= 0 {
		p.UploadTTL = 15 * time.Minute
	}
	if p.ReadTTL <= 0 {
		p.ReadTTL = time.Hour
	}
	maxImage := int64(p.MaxImageMB) << 20
	if maxImage <= 0 {
		maxImage = defaultMaxImageBytes
	}
	return &service{
		repo:      p.Repo,
		tx:        p.Tx,
		store:     p.Store,
		suppliers: p.Suppliers,
		bucket:    p.Bucket,
		uploadTTL: p.UploadTTL,
		readTTL:   p.ReadTTL,
		maxImage:  maxImage,
	}, nil
}

func (s *service) Create(ctx context.Context, req CreateFabricRequest) (*FabricDTO, error) {
	code := strings.TrimSpace(req.Code)
	if req.AvailableLength.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "available_length cannot be negative")
	}
	if req.SupplierID != nil {
		if err := s.checkSupplier(ctx, *req.SupplierID); err != nil {
			return nil, err
		}
	}

	if _, err := s.repo.FindByCode(ctx, code); err == nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "fabric code already in use")
	} else if !db.IsNotFound(err) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check fabric code")
	}

	fabric, err := s.repo.Create(ctx, &models.Fabric{
		Name:            strings.TrimSpace(req.Name),
		Code:            code,
		Color:           req.Color,
		Composition:     req.Composition,
		AvailableLength: req.AvailableLength,
		PricePerMeter:   req.PricePerMeter,
		SupplierID:      req.SupplierID,
		ImageStatus:     enums.ImageStatusPending,
		Notes:           req.Notes,
	})
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "fabric code already in use")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create fabric")
	}
	return FromModel(fabric), nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*FabricDTO, error) {
	fabric, err := s.loadFabric(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromModel(fabric), nil
}

func (s *service) List(ctx context.Context, limit, offset int) ([]FabricDTO, error) {
	rows, err := s.repo.List(ctx, pagination.NormalizeLimit(limit), pagination.NormalizeOffset(offset))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list fabrics")
	}
	out := make([]FabricDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, req UpdateFabricRequest) (*FabricDTO, error) {
	if _, err := s.loadFabric(ctx, id); err != nil {
		return nil, err
	}
	if req.SupplierID != nil {
		if err := s.checkSupplier(ctx, *req.SupplierID); err != nil {
			return nil, err
		}
	}

	values := map[string]any{}
	if req.Name != nil {
		values["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Color != nil {
		values["color"] = *req.Color
	}
	if req.Composition != nil {
		values["composition"] = *req.Composition
	}
	if req.AvailableLength != nil {
		if req.AvailableLength.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "available_length cannot be negative")
		}
		values["available_length"] = *req.AvailableLength
	}
	if req.PricePerMeter != nil {
		values["price_per_meter"] = *req.PricePerMeter
	}
	if req.SupplierID != nil {
		values["supplier_id"] = *req.SupplierID
	}
	if req.Notes != nil {
		values["notes"] = *req.Notes
	}
	if err := s.repo.Update(ctx, id, values); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update fabric")
	}
	return s.Get(ctx, id)
}

// Delete removes the fabric record. A stored image is deleted from the bucket
// first so the row never outlives its blob silently.
func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	fabric, err := s.loadFabric(ctx, id)
	if err != nil {
		return err
	}
	if fabric.ImageKey != nil {
		if err := s.store.DeleteObject(ctx, s.bucket, *fabric.ImageKey); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete fabric image")
		}
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete fabric")
	}
	return nil
}

// PresignImage stores the object key with pending status and mints the signed
// PUT URL. If signing fails the key write is rolled back so the fabric never
// points at an object that was never uploadable.
func (s *service) PresignImage(ctx context.Context, fabricID uuid.UUID, req PresignImageRequest) (*PresignImageResponse, error) {
	fileName := strings.TrimSpace(req.FileName)
	if fileName == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "file_name is required")
	}
	mimeType := strings.TrimSpace(req.MimeType)
	if !isAllowedImageMime(mimeType) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "mime_type not allowed for fabric images")
	}
	if req.SizeBytes <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "size_bytes must be positive")
	}
	if req.SizeBytes > s.maxImage {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("size_bytes must be at most %d", s.maxImage))
	}

	fabric, err := s.loadFabric(ctx, fabricID)
	if err != nil {
		return nil, err
	}

	objectKey := buildImageKey(fabricID, fileName)
	if err := s.repo.Update(ctx, fabricID, map[string]any{
		"image_key":    objectKey,
		"image_status": enums.ImageStatusPending,
	}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "persist image key")
	}

	expiresAt := time.Now().Add(s.uploadTTL)
	signedURL, err := s.store.SignedURL(s.bucket, objectKey, mimeType, s.uploadTTL)
	if err != nil {
		revert := map[string]any{"image_key": fabric.ImageKey, "image_status": fabric.ImageStatus}
		_ = s.repo.Update(ctx, fabricID, revert)
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sign upload url")
	}

	return &PresignImageResponse{
		FabricID:     fabricID,
		ObjectKey:    objectKey,
		SignedPUTURL: signedURL,
		ContentType:  mimeType,
		ExpiresAt:    expiresAt,
	}, nil
}

// ConfirmImage flips a pending image to ready after the client uploaded it.
func (s *service) ConfirmImage(ctx context.Context, fabricID uuid.UUID) (*FabricDTO, error) {
	fabric, err := s.loadFabric(ctx, fabricID)
	if err != nil {
		return nil, err
	}
	if fabric.ImageKey == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "fabric has no image upload to confirm")
	}
	if fabric.ImageStatus == enums.ImageStatusReady {
		return FromModel(fabric), nil
	}
	if err := s.repo.Update(ctx, fabricID, map[string]any{"image_status": enums.ImageStatusReady}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "confirm image")
	}
	return s.Get(ctx, fabricID)
}

// ImageReadURL mints a signed GET URL for a confirmed image.
func (s *service) ImageReadURL(ctx context.Context, fabricID uuid.UUID) (*ImageURLResponse, error) {
	fabric, err := s.loadFabric(ctx, fabricID)
	if err != nil {
		return nil, err
	}
	if fabric.ImageKey == nil || fabric.ImageStatus != enums.ImageStatusReady {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "fabric has no image")
	}

	expiresAt := time.Now().Add(s.readTTL)
	signedURL, err := s.store.SignedReadURL(s.bucket, *fabric.ImageKey, s.readTTL)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sign read url")
	}
	return &ImageURLResponse{FabricID: fabricID, SignedURL: signedURL, ExpiresAt: expiresAt}, nil
}

// DeleteImage removes the blob first, then clears the key and resets the
// status. A failed blob delete aborts the whole operation.
func (s *service) DeleteImage(ctx context.Context, fabricID uuid.UUID) error {
	fabric, err := s.loadFabric(ctx, fabricID)
	if err != nil {
		return err
	}
	if fabric.ImageKey == nil {
		return pkgerrors.New(pkgerrors.CodeNotFound, "fabric has no image")
	}

	if err := s.store.DeleteObject(ctx, s.bucket, *fabric.ImageKey); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete image object")
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		return s.repo.WithTx(tx).Update(ctx, fabricID, map[string]any{
			"image_key":    nil,
			"image_status": enums.ImageStatusPending,
		})
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "clear image key")
	}
	return nil
}

func (s *service) CreateOrder(ctx context.Context, req CreateFabricOrderRequest) (*FabricOrderDTO, error) {
	if !req.Length.IsPositive() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "length must be positive")
	}
	if _, err := s.loadFabric(ctx, req.FabricID); err != nil {
		return nil, err
	}
	if err := s.checkSupplier(ctx, req.SupplierID); err != nil {
		return nil, err
	}

	row, err := s.repo.CreateOrder(ctx, &models.FabricOrder{
		FabricID:   req.FabricID,
		SupplierID: req.SupplierID,
		Length:     req.Length,
		Status:     enums.FabricOrderStatusRequested,
		ExpectedAt: req.ExpectedAt,
		Notes:      req.Notes,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create fabric order")
	}
	return fabricOrderFromModel(row), nil
}

func (s *service) GetOrder(ctx context.Context, id uuid.UUID) (*FabricOrderDTO, error) {
	row, err := s.loadOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	return fabricOrderFromModel(row), nil
}

func (s *service) ListOrders(ctx context.Context, fabricID *uuid.UUID, limit, offset int) ([]FabricOrderDTO, error) {
	rows, err := s.repo.ListOrders(ctx, fabricID, pagination.NormalizeLimit(limit), pagination.NormalizeOffset(offset))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list fabric orders")
	}
	out := make([]FabricOrderDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *fabricOrderFromModel(&rows[i]))
	}
	return out, nil
}

// UpdateOrder moves a restock request through its lifecycle. Receiving an
// order books the ordered length onto the fabric's available stock in the
// same transaction.
func (s *service) UpdateOrder(ctx context.Context, id uuid.UUID, req UpdateFabricOrderRequest) (*FabricOrderDTO, error) {
	row, err := s.loadOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	values := map[string]any{}
	receiving := false
	if req.Status != nil {
		status, err := enums.ParseFabricOrderStatus(*req.Status)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, err.Error())
		}
		if row.Status == enums.FabricOrderStatusReceived && status != enums.FabricOrderStatusReceived {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "received orders cannot change status")
		}
		receiving = status == enums.FabricOrderStatusReceived && row.Status != enums.FabricOrderStatusReceived
		values["status"] = status
	}
	if req.ExpectedAt != nil {
		values["expected_at"] = *req.ExpectedAt
	}
	if req.Notes != nil {
		values["notes"] = *req.Notes
	}

	if receiving {
		fabric, err := s.loadFabric(ctx, row.FabricID)
		if err != nil {
			return nil, err
		}
		values["received_at"] = time.Now().UTC()
		err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
			repo := s.repo.WithTx(tx)
			if err := repo.UpdateOrder(ctx, id, values); err != nil {
				return fmt.Errorf("update fabric order: %w", err)
			}
			newLength := fabric.AvailableLength.Add(row.Length)
			if err := repo.Update(ctx, row.FabricID, map[string]any{"available_length": newLength}); err != nil {
				return fmt.Errorf("book received length: %w", err)
			}
			return nil
		})
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "receive fabric order")
		}
	} else if err := s.repo.UpdateOrder(ctx, id, values); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update fabric order")
	}

	return s.GetOrder(ctx, id)
}

func (s *service) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	row, err := s.loadOrder(ctx, id)
	if err != nil {
		return err
	}
	if row.Status == enums.FabricOrderStatusReceived {
		return pkgerrors.New(pkgerrors.CodeConflict, "received orders cannot be deleted")
	}
	if err := s.repo.DeleteOrder(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete fabric order")
	}
	return nil
}

func (s *service) loadFabric(ctx context.Context, id uuid.UUID) (*models.Fabric, error) {
	fabric, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "fabric not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load fabric")
	}
	return fabric, nil
}

func (s *service) loadOrder(ctx context.Context, id uuid.UUID) (*models.FabricOrder, error) {
	row, err := s.repo.FindOrderByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "fabric order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load fabric order")
	}
	return row, nil
}

func (s *service) checkSupplier(ctx context.Context, id uuid.UUID) error {
	if _, err := s.suppliers.FindByID(ctx, id); err != nil {
		if db.IsNotFound(err) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "supplier not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load supplier")
	}
	return nil
}

func isAllowedImageMime(mimeType string) bool {
	for _, candidate := range allowedImageMimes {
		if strings.EqualFold(candidate, mimeType) {
			return true
		}
	}
	return false
}

func buildImageKey(fabricID uuid.UUID, fileName string) string {
	clean := sanitizeFileName(fileName)
	if clean == "" {
		clean = fabricID.String()
	}
	return fmt.Sprintf("fabrics/%s/%s", fabricID, clean)
}

// sanitizeFileName keeps the characters safe in an object key and drops the rest.
func sanitizeFileName(name string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('-')
		}
	}
	return strings.Trim(b.String(), ".-_")
}
