package careerplan

import (
	"context"

	"github.com/futig/career-plan-connector/internal/entity"
)

type CareerPlanUsecase interface {
	GeneratePlan(ctx context.Context, req *entity.CareerPlanRequest) (string, error)
}
