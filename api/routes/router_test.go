package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/omarsadiq/tailorware-backend/internal/audit"
	"github.com/omarsadiq/tailorware-backend/internal/auth"
	"github.com/omarsadiq/tailorware-backend/internal/customers"
	"github.com/omarsadiq/tailorware-backend/internal/fabrics"
	"github.com/omarsadiq/tailorware-backend/internal/inventory"
	"github.com/omarsadiq/tailorware-backend/internal/measurements"
	"github.com/omarsadiq/tailorware-backend/internal/orders"
	"github.com/omarsadiq/tailorware-backend/internal/suppliers"
	"github.com/omarsadiq/tailorware-backend/internal/tailors"
	pkgAuth "github.com/omarsadiq/tailorware-backend/pkg/auth"
	"github.com/omarsadiq/tailorware-backend/pkg/auth/session"
	"github.com/omarsadiq/tailorware-backend/pkg/config"
	"github.com/omarsadiq/tailorware-backend/pkg/enums"
	"github.com/omarsadiq/tailorware-backend/pkg/logger"
)

type stubSessionManager struct{}

func (stubSessionManager) HasSession(ctx context.Context, accessID string) (bool, error) {
	return true, nil
}

func (stubSessionManager) Rotate(ctx context.Context, oldAccessID, provided string) (string, string, error) {
	return "", "", nil
}

func (stubSessionManager) Revoke(ctx context.Context, accessID string) error {
	return nil
}

type stubAuthService struct{}

func (stubAuthService) Login(ctx context.Context, req auth.LoginRequest) (*auth.LoginResponse, error) {
	return nil, nil
}

func (stubAuthService) Register(ctx context.Context, req auth.RegisterRequest) (*auth.RegisterResponse, error) {
	return &auth.RegisterResponse{}, nil
}

type stubCustomersService struct{}

func (stubCustomersService) Create(ctx context.Context, req customers.CreateCustomerRequest) (*customers.CustomerDTO, error) {
	panic("unimplemented")
}

func (stubCustomersService) Get(ctx context.Context, id uuid.UUID) (*customers.CustomerDTO, error) {
	panic("unimplemented")
}

func (stubCustomersService) List(ctx context.Context, limit, offset int) ([]customers.CustomerDTO, error) {
	return nil, nil
}

func (stubCustomersService) Search(ctx context.Context, query string, limit int) ([]customers.CustomerDTO, error) {
	return nil, nil
}

func (stubCustomersService) Update(ctx context.Context, id uuid.UUID, req customers.UpdateCustomerRequest) (*customers.CustomerDTO, error) {
	panic("unimplemented")
}

func (stubCustomersService) Delete(ctx context.Context, id uuid.UUID) error {
	panic("unimplemented")
}

func (stubCustomersService) Merge(ctx context.Context, actorID *uuid.UUID, req customers.MergeRequest) (*customers.MergeResult, error) {
	panic("unimplemented")
}

type stubMeasurementsService struct{}

func (stubMeasurementsService) Get(ctx context.Context, customerID uuid.UUID, kind enums.MeasurementKind, orderID *uuid.UUID) (*measurements.MeasurementDTO, error) {
	panic("unimplemented")
}

func (stubMeasurementsService) Create(ctx context.Context, customerID uuid.UUID, kind enums.MeasurementKind, req measurements.UpsertMeasurementRequest) (*measurements.MeasurementDTO, error) {
	panic("unimplemented")
}

func (stubMeasurementsService) Update(ctx context.Context, customerID uuid.UUID, kind enums.MeasurementKind, req measurements.UpsertMeasurementRequest) (*measurements.MeasurementDTO, error) {
	panic("unimplemented")
}

type stubOrdersService struct{}

func (stubOrdersService) Create(ctx context.Context, req orders.CreateOrderRequest) (*orders.OrderDTO, error) {
	panic("unimplemented")
}

func (stubOrdersService) Get(ctx context.Context, id uuid.UUID) (*orders.OrderDTO, error) {
	panic("unimplemented")
}

func (stubOrdersService) List(ctx context.Context, customerID *uuid.UUID, limit, offset int) ([]orders.OrderDTO, error) {
	return nil, nil
}

func (stubOrdersService) Update(ctx context.Context, id uuid.UUID, req orders.UpdateOrderRequest) (*orders.OrderDTO, error) {
	panic("unimplemented")
}

func (stubOrdersService) Delete(ctx context.Context, actorID *uuid.UUID, id uuid.UUID) error {
	panic("unimplemented")
}

func (stubOrdersService) AddItem(ctx context.Context, orderID uuid.UUID, req orders.CreateItemRequest) (*orders.ItemDTO, error) {
	panic("unimplemented")
}

func (stubOrdersService) UpdateItem(ctx context.Context, itemID uuid.UUID, req orders.UpdateItemRequest) (*orders.ItemDTO, error) {
	panic("unimplemented")
}

func (stubOrdersService) DeleteItem(ctx context.Context, itemID uuid.UUID) error {
	panic("unimplemented")
}

func (stubOrdersService) GetProduction(ctx context.Context, orderID uuid.UUID) (*orders.ProductionDTO, error) {
	panic("unimplemented")
}

func (stubOrdersService) UpdateProduction(ctx context.Context, actorID *uuid.UUID, orderID uuid.UUID, req orders.UpdateProductionRequest) (*orders.ProductionDTO, error) {
	panic("unimplemented")
}

func (stubOrdersService) AssignTailor(ctx context.Context, orderID uuid.UUID, req orders.AssignTailorRequest) (*orders.AssignmentDTO, error) {
	panic("unimplemented")
}

func (stubOrdersService) UpdateAssignment(ctx context.Context, orderID, assignmentID uuid.UUID, req orders.UpdateAssignmentRequest) (*orders.AssignmentDTO, error) {
	panic("unimplemented")
}

func (stubOrdersService) Unassign(ctx context.Context, orderID, assignmentID uuid.UUID) error {
	panic("unimplemented")
}

type stubFabricsService struct{}

func (stubFabricsService) Create(ctx context.Context, req fabrics.CreateFabricRequest) (*fabrics.FabricDTO, error) {
	panic("unimplemented")
}

func (stubFabricsService) Get(ctx context.Context, id uuid.UUID) (*fabrics.FabricDTO, error) {
	panic("unimplemented")
}

func (stubFabricsService) List(ctx context.Context, limit, offset int) ([]fabrics.FabricDTO, error) {
	return nil, nil
}

func (stubFabricsService) Update(ctx context.Context, id uuid.UUID, req fabrics.UpdateFabricRequest) (*fabrics.FabricDTO, error) {
	panic("unimplemented")
}

func (stubFabricsService) Delete(ctx context.Context, id uuid.UUID) error {
	panic("unimplemented")
}

func (stubFabricsService) PresignImage(ctx context.Context, fabricID uuid.UUID, req fabrics.PresignImageRequest) (*fabrics.PresignImageResponse, error) {
	return &fabrics.PresignImageResponse{}, nil
}

func (stubFabricsService) ConfirmImage(ctx context.Context, fabricID uuid.UUID) (*fabrics.FabricDTO, error) {
	panic("unimplemented")
}

func (stubFabricsService) ImageReadURL(ctx context.Context, fabricID uuid.UUID) (*fabrics.ImageURLResponse, error) {
	panic("unimplemented")
}

func (stubFabricsService) DeleteImage(ctx context.Context, fabricID uuid.UUID) error {
	panic("unimplemented")
}

func (stubFabricsService) CreateOrder(ctx context.Context, req fabrics.CreateFabricOrderRequest) (*fabrics.FabricOrderDTO, error) {
	panic("unimplemented")
}

func (stubFabricsService) GetOrder(ctx context.Context, id uuid.UUID) (*fabrics.FabricOrderDTO, error) {
	panic("unimplemented")
}

func (stubFabricsService) ListOrders(ctx context.Context, fabricID *uuid.UUID, limit, offset int) ([]fabrics.FabricOrderDTO, error) {
	return nil, nil
}

func (stubFabricsService) UpdateOrder(ctx context.Context, id uuid.UUID, req fabrics.UpdateFabricOrderRequest) (*fabrics.FabricOrderDTO, error) {
	panic("unimplemented")
}

func (stubFabricsService) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	panic("unimplemented")
}

type stubInventoryService struct{}

func (stubInventoryService) CreateLocation(ctx context.Context, req inventory.CreateLocationRequest) (*inventory.LocationDTO, error) {
	panic("unimplemented")
}

func (stubInventoryService) GetLocation(ctx context.Context, id uuid.UUID) (*inventory.LocationDTO, error) {
	panic("unimplemented")
}

func (stubInventoryService) ListLocations(ctx context.Context, limit, offset int) ([]inventory.LocationDTO, error) {
	return nil, nil
}

func (stubInventoryService) UpdateLocation(ctx context.Context, id uuid.UUID, req inventory.UpdateLocationRequest) (*inventory.LocationDTO, error) {
	panic("unimplemented")
}

func (stubInventoryService) DeleteLocation(ctx context.Context, id uuid.UUID) error {
	panic("unimplemented")
}

func (stubInventoryService) CreateRack(ctx context.Context, req inventory.CreateRackRequest) (*inventory.RackDTO, error) {
	panic("unimplemented")
}

func (stubInventoryService) GetRack(ctx context.Context, id uuid.UUID) (*inventory.RackDTO, error) {
	panic("unimplemented")
}

func (stubInventoryService) ListRacks(ctx context.Context, locationID *uuid.UUID, limit, offset int) ([]inventory.RackDTO, error) {
	return nil, nil
}

func (stubInventoryService) UpdateRack(ctx context.Context, id uuid.UUID, req inventory.UpdateRackRequest) (*inventory.RackDTO, error) {
	panic("unimplemented")
}

func (stubInventoryService) DeleteRack(ctx context.Context, id uuid.UUID) error {
	panic("unimplemented")
}

func (stubInventoryService) CreateBunch(ctx context.Context, rackID uuid.UUID, req inventory.CreateBunchRequest) (*inventory.BunchDTO, error) {
	panic("unimplemented")
}

func (stubInventoryService) GetBunch(ctx context.Context, id uuid.UUID) (*inventory.BunchDTO, error) {
	panic("unimplemented")
}

func (stubInventoryService) ListBunches(ctx context.Context, rackID uuid.UUID) ([]inventory.BunchDTO, error) {
	return nil, nil
}

func (stubInventoryService) AddBunchItems(ctx context.Context, bunchID uuid.UUID, req inventory.AddBunchItemsRequest) (*inventory.BunchDTO, error) {
	panic("unimplemented")
}

func (stubInventoryService) UpdateBunchItems(ctx context.Context, bunchID uuid.UUID, req inventory.UpdateBunchItemsRequest) (*inventory.BunchDTO, error) {
	panic("unimplemented")
}

func (stubInventoryService) DeleteBunchItems(ctx context.Context, bunchID uuid.UUID, req inventory.DeleteBunchItemsRequest) (*inventory.BunchDTO, error) {
	panic("unimplemented")
}

func (stubInventoryService) MoveBunch(ctx context.Context, bunchID uuid.UUID, req inventory.MoveBunchRequest) (*inventory.BunchDTO, error) {
	panic("unimplemented")
}

func (stubInventoryService) DeleteBunch(ctx context.Context, actorID *uuid.UUID, bunchID uuid.UUID) error {
	panic("unimplemented")
}

func (stubInventoryService) CreateUnit(ctx context.Context, req inventory.CreateUnitRequest) (*inventory.UnitDTO, error) {
	panic("unimplemented")
}

func (stubInventoryService) ListUnits(ctx context.Context) ([]inventory.UnitDTO, error) {
	return nil, nil
}

func (stubInventoryService) DeleteUnit(ctx context.Context, id uuid.UUID) error {
	panic("unimplemented")
}

type stubSuppliersService struct{}

func (stubSuppliersService) Create(ctx context.Context, req suppliers.CreateSupplierRequest) (*suppliers.SupplierDTO, error) {
	panic("unimplemented")
}

func (stubSuppliersService) Get(ctx context.Context, id uuid.UUID) (*suppliers.SupplierDTO, error) {
	panic("unimplemented")
}

func (stubSuppliersService) List(ctx context.Context, limit, offset int) ([]suppliers.SupplierDTO, error) {
	return nil, nil
}

func (stubSuppliersService) Update(ctx context.Context, id uuid.UUID, req suppliers.UpdateSupplierRequest) (*suppliers.SupplierDTO, error) {
	panic("unimplemented")
}

func (stubSuppliersService) Delete(ctx context.Context, id uuid.UUID) error {
	panic("unimplemented")
}

type stubTailorsService struct{}

func (stubTailorsService) Create(ctx context.Context, req tailors.CreateTailorRequest) (*tailors.TailorDTO, error) {
	panic("unimplemented")
}

func (stubTailorsService) Get(ctx context.Context, id uuid.UUID) (*tailors.TailorDTO, error) {
	panic("unimplemented")
}

func (stubTailorsService) List(ctx context.Context, activeOnly bool, limit, offset int) ([]tailors.TailorDTO, error) {
	return nil, nil
}

func (stubTailorsService) Update(ctx context.Context, id uuid.UUID, req tailors.UpdateTailorRequest) (*tailors.TailorDTO, error) {
	panic("unimplemented")
}

func (stubTailorsService) Delete(ctx context.Context, id uuid.UUID) error {
	panic("unimplemented")
}

type stubAuditService struct{}

func (stubAuditService) Record(ctx context.Context, entry audit.Entry) error {
	return nil
}

func (stubAuditService) RecordTx(ctx context.Context, tx *gorm.DB, entry audit.Entry) error {
	return nil
}

func (stubAuditService) List(ctx context.Context, entityType string, limit, offset int) ([]audit.LogEntryDTO, error) {
	return nil, nil
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "0"},
		JWT: config.JWTConfig{
			Secret:            "secret",
			Issuer:            "issuer",
			ExpirationMinutes: 60,
		},
	}
}

func newTestRouter(cfg *config.Config) http.Handler {
	logg := logger.New(logger.Options{ServiceName: "test-routing", Level: logger.ParseLevel("debug"), Output: io.Discard})
	return NewRouter(Dependencies{
		Config:         cfg,
		Logger:         logg,
		SessionManager: stubSessionManager{},
	}, Services{
		Auth:         stubAuthService{},
		Customers:    stubCustomersService{},
		Measurements: stubMeasurementsService{},
		Orders:       stubOrdersService{},
		Fabrics:      stubFabricsService{},
		Inventory:    stubInventoryService{},
		Suppliers:    stubSuppliersService{},
		Tailors:      stubTailorsService{},
		Audit:        stubAuditService{},
	})
}

func buildToken(t *testing.T, cfg *config.Config, role enums.UserRole) string {
	t.Helper()
	token, err := pkgAuth.MintAccessToken(cfg.JWT, time.Now(), pkgAuth.AccessTokenPayload{
		UserID: uuid.New(),
		Role:   role,
		JTI:    session.NewAccessID(),
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestHealthLiveIsPublic(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for liveness got %d", resp.Code)
	}
}

func TestProtectedRoutesRejectMissingJWT(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/customers", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token got %d", resp.Code)
	}
}

func TestProtectedRoutesAcceptValidJWT(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/units", nil)
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.UserRoleStaff))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for staff list got %d", resp.Code)
	}
}

func TestFabricImageUploadMountedAtImagePath(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)

	body := `{"file_name":"swatch.png","mime_type":"image/png","size_bytes":2048}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/fabrics/"+uuid.NewString()+"/image", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.UserRoleStaff))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 for image upload issuance got %d", resp.Code)
	}
}

func TestAdminGroupRequiresAdminRole(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)

	staff := httptest.NewRequest(http.MethodGet, "/api/v1/audit", nil)
	staff.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.UserRoleStaff))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, staff)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for staff got %d", resp.Code)
	}

	admin := httptest.NewRequest(http.MethodGet, "/api/v1/audit", nil)
	admin.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.UserRoleAdmin))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, admin)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin got %d", resp.Code)
	}
}
