package health

import (
	"context"

	"github.com/futig/career-plan-connector/internal/entity"
)

type HealthUsecase interface {
	Check(ctx context.Context) *entity.HealthResponse
	InfraStatus() *entity.HealthResponse
	ServiceInfo() *entity.ServiceInfoResponse
}
