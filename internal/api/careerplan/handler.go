package careerplan

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/futig/career-plan-connector/internal/entity"
	"github.com/futig/career-plan-connector/internal/pkg/logger"
	"github.com/futig/career-plan-connector/internal/pkg/response"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

type Handler struct {
	usecase      CareerPlanUsecase
	maxBodyBytes int64
}

func NewHandler(usecase CareerPlanUsecase, maxBodyBytes int64) *Handler {
	return &Handler{
		usecase:      usecase,
		maxBodyBytes: maxBodyBytes,
	}
}

// GenerateCareerPlan handles POST /api/career-plan
func (h *Handler) GenerateCareerPlan(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "GenerateCareerPlan")

	req, err := h.decodeRequest(w, r)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	answer, err := h.usecase.GeneratePlan(ctx, req)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, entity.CareerPlanResponse{
		Status:   response.StatusSuccess,
		Response: answer,
	})
}

func (h *Handler) decodeRequest(w http.ResponseWriter, r *http.Request) (*entity.CareerPlanRequest, error) {
	body := http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	defer body.Close()

	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()

	var req *entity.CareerPlanRequest
	if err := dec.Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, entity.NewBadRequest(entity.MessageBodyRequired, err)
		}
		return nil, entity.NewBadRequest(entity.MessageInvalidJSON, err)
	}

	// a JSON null body decodes into a nil request
	if req == nil {
		return nil, entity.NewBadRequest(entity.MessageBodyRequired, nil)
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, entity.NewBadRequest(entity.MessageInvalidJSON, errors.New("trailing data after JSON body"))
	}

	return req, nil
}

func (h *Handler) respondError(ctx context.Context, w http.ResponseWriter, status int, message string, err error) {
	if status >= http.StatusInternalServerError {
		ctxzap.Error(ctx, message, zap.Int("status", status), zap.Error(err))
	} else {
		ctxzap.Warn(ctx, message, zap.Int("status", status), zap.Error(err))
	}
	response.Error(w, status, message)
}

func (h *Handler) handleUsecaseError(ctx context.Context, w http.ResponseWriter, err error) {
	message := entity.MessageInternal
	var reqErr *entity.RequestError
	if errors.As(err, &reqErr) {
		message = reqErr.Message
	}

	if errors.Is(err, entity.ErrBadRequest) {
		h.respondError(ctx, w, http.StatusBadRequest, message, err)
	} else if errors.Is(err, entity.ErrServiceUnavailable) {
		h.respondError(ctx, w, http.StatusServiceUnavailable, message, err)
	} else {
		h.respondError(ctx, w, http.StatusInternalServerError, entity.MessageInternal, err)
	}
}
