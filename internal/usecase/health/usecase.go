package health

import (
	"context"
	"fmt"
	"maps"
	"strings"
	"time"

	"github.com/futig/career-plan-connector/internal/entity"
	pkghttp "github.com/futig/career-plan-connector/pkg/http"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	ServiceName          = "Career Plan Connector"
	infraProbeMessage    = "Basic infrastructure health check passed"
	statusRunning        = "running"
	statusRunningWithErr = "running with initialization errors: "
)

// Dependency is one external component reported by /health.
// Prober is nil when the client could not be initialized; Warning says why.
type Dependency struct {
	Name    string
	Prober  Prober
	Warning string
}

type Config struct {
	ProbeEnabled bool
	ProbeTimeout time.Duration
	CacheTTL     time.Duration
	InstanceID   string
}

type probeResult struct {
	status  entity.ComponentStatus
	warning string
}

// HealthUsecase composes dependency status. Safe for concurrent use.
type HealthUsecase struct {
	deps   []Dependency
	env    map[string]string
	cfg    Config
	cache  *cache.Cache
	logger *zap.Logger
}

// NewUsecase creates a new health use case. env holds SET / NOT SET markers
// for the non-secret variables.
func NewUsecase(deps []Dependency, env map[string]string, cfg Config, logger *zap.Logger) *HealthUsecase {
	uc := &HealthUsecase{
		deps:   deps,
		env:    env,
		cfg:    cfg,
		logger: logger,
	}
	if cfg.CacheTTL > 0 {
		uc.cache = cache.New(cfg.CacheTTL, 2*cfg.CacheTTL)
	}
	return uc
}

// InfraStatus answers platform probes without touching dependencies.
func (uc *HealthUsecase) InfraStatus() *entity.HealthResponse {
	return &entity.HealthResponse{
		Status:   entity.StatusHealthy,
		Message:  infraProbeMessage,
		Instance: uc.cfg.InstanceID,
	}
}

// Check reports every component. Probes run concurrently when enabled.
func (uc *HealthUsecase) Check(ctx context.Context) *entity.HealthResponse {
	results := make([]probeResult, len(uc.deps))

	g, gctx := errgroup.WithContext(ctx)
	for i, dep := range uc.deps {
		g.Go(func() error {
			results[i] = uc.checkDependency(gctx, dep)
			return nil
		})
	}
	_ = g.Wait()

	components := map[string]entity.ComponentStatus{
		entity.ComponentWebapp: entity.StatusHealthy,
	}
	overall := entity.StatusHealthy

	var warnings []string
	for i, dep := range uc.deps {
		components[dep.Name] = results[i].status
		if results[i].status != entity.StatusHealthy {
			overall = entity.StatusDegraded
		}
		if results[i].warning != "" {
			warnings = append(warnings, results[i].warning)
		}
	}

	ctxzap.Info(ctx, "health check completed",
		zap.String("status", string(overall)),
		zap.Any("components", components),
	)

	return &entity.HealthResponse{
		Status:               overall,
		Components:           components,
		EnvironmentVariables: maps.Clone(uc.env),
		Warnings:             strings.Join(warnings, "; "),
		Instance:             uc.cfg.InstanceID,
	}
}

// ServiceInfo backs GET /.
func (uc *HealthUsecase) ServiceInfo() *entity.ServiceInfoResponse {
	status := statusRunning
	if w := uc.initWarnings(); w != "" {
		status = statusRunningWithErr + w
	}

	return &entity.ServiceInfoResponse{
		Service:              ServiceName,
		Status:               status,
		EnvironmentVariables: maps.Clone(uc.env),
	}
}

func (uc *HealthUsecase) checkDependency(ctx context.Context, dep Dependency) probeResult {
	if dep.Prober == nil {
		warning := dep.Warning
		if warning == "" {
			warning = fmt.Sprintf("%s client is not initialized", dep.Name)
		}
		return probeResult{status: entity.StatusUnhealthy, warning: warning}
	}

	if !uc.cfg.ProbeEnabled {
		return probeResult{status: entity.StatusHealthy}
	}

	if uc.cache != nil {
		if cached, ok := uc.cache.Get(dep.Name); ok {
			return cached.(probeResult)
		}
	}

	res := uc.probe(ctx, dep)
	if uc.cache != nil {
		uc.cache.SetDefault(dep.Name, res)
	}
	return res
}

// probe outlives the caller's cancellation so a disconnected client cannot
// put a false failure into the cache; ProbeTimeout still bounds it.
func (uc *HealthUsecase) probe(ctx context.Context, dep Dependency) probeResult {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), uc.cfg.ProbeTimeout)
	defer cancel()

	err := dep.Prober.Ping(ctx)
	switch {
	case err == nil:
		return probeResult{status: entity.StatusHealthy}
	case pkghttp.IsTimeout(err):
		ctxzap.Warn(ctx, "dependency probe timed out", zap.String("component", dep.Name))
		return probeResult{
			status:  entity.StatusUnknown,
			warning: fmt.Sprintf("%s probe timed out after %s", dep.Name, uc.cfg.ProbeTimeout),
		}
	default:
		ctxzap.Warn(ctx, "dependency probe failed", zap.String("component", dep.Name), zap.Error(err))
		return probeResult{
			status:  entity.StatusUnhealthy,
			warning: fmt.Sprintf("%s probe failed: %s", dep.Name, probeFailure(err)),
		}
	}
}

// probeFailure names the failure without echoing response bodies.
func probeFailure(err error) string {
	if status, ok := pkghttp.StatusCode(err); ok {
		return fmt.Sprintf("HTTP %d", status)
	}
	return "unreachable"
}

func (uc *HealthUsecase) initWarnings() string {
	var warnings []string
	for _, dep := range uc.deps {
		if dep.Warning != "" {
			warnings = append(warnings, dep.Warning)
		}
	}
	return strings.Join(warnings, "; ")
}
