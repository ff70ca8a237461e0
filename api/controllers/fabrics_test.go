package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/omarsadiq/tailorware-backend/internal/fabrics"
	pkgerrors "github.com/omarsadiq/tailorware-backend/pkg/errors"
)

type stubFabricsService struct {
	dto      *fabrics.FabricDTO
	presign  *fabrics.PresignImageResponse
	imageURL *fabrics.ImageURLResponse
	err      error
}

func (s *stubFabricsService) Create(ctx context.Context, req fabrics.CreateFabricRequest) (*fabrics.FabricDTO, error) {
	return s.dto, s.err
}

func (s *stubFabricsService) Get(ctx context.Context, id uuid.UUID) (*fabrics.FabricDTO, error) {
	return s.dto, s.err
}

func (s *stubFabricsService) List(ctx context.Context, limit, offset int) ([]fabrics.FabricDTO, error) {
	return nil, s.err
}

func (s *stubFabricsService) Update(ctx context.Context, id uuid.UUID, req fabrics.UpdateFabricRequest) (*fabrics.FabricDTO, error) {
	return s.dto, s.err
}

func (s *stubFabricsService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.err
}

func (s *stubFabricsService) PresignImage(ctx context.Context, fabricID uuid.UUID, req fabrics.PresignImageRequest) (*fabrics.PresignImageResponse, error) {
	return s.presign, s.err
}

func (s *stubFabricsService) ConfirmImage(ctx context.Context, fabricID uuid.UUID) (*fabrics.FabricDTO, error) {
	return s.dto, s.err
}

func (s *stubFabricsService) ImageReadURL(ctx context.Context, fabricID uuid.UUID) (*fabrics.ImageURLResponse, error) {
	return s.imageURL, s.err
}

func (s *stubFabricsService) DeleteImage(ctx context.Context, fabricID uuid.UUID) error {
	return s.err
}

func (s *stubFabricsService) CreateOrder(ctx context.Context, req fabrics.CreateFabricOrderRequest) (*fabrics.FabricOrderDTO, error) {
	return nil, s.err
}

func (s *stubFabricsService) GetOrder(ctx context.Context, id uuid.UUID) (*fabrics.FabricOrderDTO, error) {
	return nil, s.err
}

func (s *stubFabricsService) ListOrders(ctx context.Context, fabricID *uuid.UUID, limit, offset int) ([]fabrics.FabricOrderDTO, error) {
	return nil, s.err
}

func (s *stubFabricsService) UpdateOrder(ctx context.Context, id uuid.UUID, req fabrics.UpdateFabricOrderRequest) (*fabrics.FabricOrderDTO, error) {
	return nil, s.err
}

func (s *stubFabricsService) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	return s.err
}

func fabricRequest(t *testing.T, method, path string, fabricID uuid.UUID, body string) *http.Request {
	t.Helper()
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("id", fabricID.String())
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
}

func TestFabricImagePresign(t *testing.T) {
	fabricID := uuid.New()
	svc := &stubFabricsService{
		presign: &fabrics.PresignImageResponse{
			FabricID:     fabricID,
			ObjectKey:    "fabrics/" + fabricID.String() + "/swatch.png",
			SignedPUTURL: "https://storage.googleapis.com/bucket/object?signed",
			ContentType:  "image/png",
			ExpiresAt:    time.Now().Add(15 * time.Minute),
		},
	}
	handler := FabricImagePresign(svc, nil)

	body := `{"file_name":"swatch.png","mime_type":"image/png","size_bytes":2048}`
	req := fabricRequest(t, http.MethodPost, "/api/v1/fabrics/"+fabricID.String()+"/image", fabricID, body)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", rec.Code, rec.Body.String())
	}

	var envelope struct {
		Data fabrics.PresignImageResponse `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.SignedPUTURL == "" || envelope.Data.FabricID != fabricID {
		t.Fatalf("unexpected payload: %+v", envelope.Data)
	}
}

func TestFabricImageURLNotReady(t *testing.T) {
	fabricID := uuid.New()
	svc := &stubFabricsService{
		err: pkgerrors.New(pkgerrors.CodeNotFound, "fabric has no image"),
	}
	handler := FabricImageURL(svc, nil)

	req := fabricRequest(t, http.MethodGet, "/api/v1/fabrics/"+fabricID.String()+"/image", fabricID, "")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", rec.Code)
	}
}

func TestFabricImagePresignRejectsMissingFields(t *testing.T) {
	handler := FabricImagePresign(&stubFabricsService{}, nil)

	req := fabricRequest(t, http.MethodPost, "/api/v1/fabrics/x/image", uuid.New(), `{}`)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}
