package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	domainerror "github.com/pocketledger/backend/internal/domain/error"
	"github.com/pocketledger/backend/internal/integration/entrypoint/dto"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRespondError(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		status    int
		code      string
		kind      string
		available *int64
	}{
		{
			name:   "validation",
			err:    domainerror.NewWalletError(domainerror.ErrCodeInvalidWalletName, "name is required", domainerror.ErrInvalidWalletName),
			status: http.StatusBadRequest,
			code:   "WAL-010002",
			kind:   "validation",
		},
		{
			name:   "not found behind wrapping",
			err:    fmt.Errorf("lookup: %w", domainerror.NewGoalError(domainerror.ErrCodeGoalNotFound, "goal not found", domainerror.ErrGoalNotFound)),
			status: http.StatusNotFound,
			code:   "GOL-020001",
			kind:   "not_found",
		},
		{
			name: "insufficient funds carries the available amount",
			err: domainerror.NewGoalError(domainerror.ErrCodeWalletInsufficientFunds, "insufficient funds in wallet",
				&domainerror.InsufficientFundsError{Available: 1000, Requested: 1500}),
			status:    http.StatusUnprocessableEntity,
			code:      "GOL-040001",
			kind:      "insufficient_funds",
			available: ptr(int64(1000)),
		},
		{
			name:   "external service",
			err:    domainerror.NewGoalError(domainerror.ErrCodeMilestoneGeneration, "generation failed", domainerror.ErrMilestoneGeneration),
			status: http.StatusBadGateway,
			code:   "GOL-050001",
			kind:   "external_service",
		},
		{
			name:   "run in progress",
			err:    domainerror.NewRecurringError(domainerror.ErrCodeRunInProgress, "a run is already in progress", domainerror.ErrRunInProgress),
			status: http.StatusConflict,
			code:   "REC-010001",
			kind:   "validation",
		},
		{
			name:   "uncoded error is hidden",
			err:    errors.New("connection reset"),
			status: http.StatusInternalServerError,
			kind:   "internal",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			ctx, _ := gin.CreateTestContext(rec)
			ctx.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			respondError(ctx, tt.err)

			if rec.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, rec.Code)
			}
			var resp dto.ErrorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("failed to decode body: %v", err)
			}
			if resp.Code != tt.code {
				t.Errorf("expected code %q, got %q", tt.code, resp.Code)
			}
			if resp.Kind != tt.kind {
				t.Errorf("expected kind %q, got %q", tt.kind, resp.Kind)
			}
			switch {
			case tt.available == nil && resp.Available != nil:
				t.Errorf("expected no available amount, got %d", *resp.Available)
			case tt.available != nil && (resp.Available == nil || *resp.Available != *tt.available):
				t.Errorf("expected available %d, got %v", *tt.available, resp.Available)
			}
		})
	}
}

func ptr[T any](v T) *T {
	return &v
}
