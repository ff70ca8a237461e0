package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/omarsadiq/tailorware-backend/internal/customers"
)

type stubCustomersService struct {
	dto        *customers.CustomerDTO
	mergeReq   customers.MergeRequest
	mergeRes   *customers.MergeResult
	err        error
	mergeCalls int
}

func (s *stubCustomersService) Create(ctx context.Context, req customers.CreateCustomerRequest) (*customers.CustomerDTO, error) {
	return s.dto, s.err
}

func (s *stubCustomersService) Get(ctx context.Context, id uuid.UUID) (*customers.CustomerDTO, error) {
	return s.dto, s.err
}

func (s *stubCustomersService) List(ctx context.Context, limit, offset int) ([]customers.CustomerDTO, error) {
	return nil, s.err
}

func (s *stubCustomersService) Search(ctx context.Context, query string, limit int) ([]customers.CustomerDTO, error) {
	return nil, s.err
}

func (s *stubCustomersService) Update(ctx context.Context, id uuid.UUID, req customers.UpdateCustomerRequest) (*customers.CustomerDTO, error) {
	return s.dto, s.err
}

func (s *stubCustomersService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.err
}

func (s *stubCustomersService) Merge(ctx context.Context, actorID *uuid.UUID, req customers.MergeRequest) (*customers.MergeResult, error) {
	s.mergeCalls++
	s.mergeReq = req
	return s.mergeRes, s.err
}

func TestCustomerMergeMapsIDOrder(t *testing.T) {
	target := uuid.New()
	source1 := uuid.New()
	source2 := uuid.New()
	svc := &stubCustomersService{
		mergeRes: &customers.MergeResult{TargetID: target, MergedCustomers: 2},
	}
	handler := CustomerMerge(svc, nil)

	payload := fmt.Sprintf(`{"customer_ids":[%q,%q,%q]}`, target, source1, source2)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/customers/merge", bytes.NewBufferString(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.mergeReq.TargetID != target {
		t.Fatalf("target = %s, want first listed id", svc.mergeReq.TargetID)
	}
	if len(svc.mergeReq.SourceIDs) != 2 || svc.mergeReq.SourceIDs[0] != source1 || svc.mergeReq.SourceIDs[1] != source2 {
		t.Fatalf("sources = %v", svc.mergeReq.SourceIDs)
	}

	var envelope struct {
		Data customers.MergeResult `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.TargetID != target {
		t.Fatalf("response target = %s", envelope.Data.TargetID)
	}
}

func TestCustomerMergeRequiresTwoIDs(t *testing.T) {
	svc := &stubCustomersService{}
	handler := CustomerMerge(svc, nil)

	payload := fmt.Sprintf(`{"customer_ids":[%q]}`, uuid.New())
	req := httptest.NewRequest(http.MethodPost, "/api/v1/customers/merge", bytes.NewBufferString(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
	if svc.mergeCalls != 0 {
		t.Fatal("service must not be called on invalid input")
	}
}

func TestCustomerGetInvalidID(t *testing.T) {
	handler := CustomerGet(&stubCustomersService{}, nil)

	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("id", "not-a-uuid")
	req := httptest.NewRequest(http.MethodGet, "/api/v1/customers/not-a-uuid", nil)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}
