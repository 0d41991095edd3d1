package health

import (
	"net/http"
	"strings"

	"github.com/futig/career-plan-connector/internal/pkg/logger"
	"github.com/futig/career-plan-connector/internal/pkg/response"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

type Handler struct {
	usecase HealthUsecase
}

func NewHandler(usecase HealthUsecase) *Handler {
	return &Handler{usecase: usecase}
}

// Health handles GET /health. It always answers 200; platform probes
// (User-Agent containing "health") get a short reply without dependency checks.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "Health")

	if isInfraProbe(r.UserAgent()) {
		ctxzap.Debug(ctx, "infrastructure health probe", zap.String("user_agent", r.UserAgent()))
		response.Success(w, h.usecase.InfraStatus())
		return
	}

	response.Success(w, h.usecase.Check(ctx))
}

// ServiceInfo handles GET /
func (h *Handler) ServiceInfo(w http.ResponseWriter, r *http.Request) {
	response.Success(w, h.usecase.ServiceInfo())
}

func isInfraProbe(userAgent string) bool {
	return strings.Contains(strings.ToLower(userAgent), "health")
}
