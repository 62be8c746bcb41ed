package health

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// Checker defines the interface for probing a dependency.
type Checker interface {
	Ping(ctx context.Context) error
}

// RedisChecker adapts redis.Client to Checker.
type RedisChecker struct {
	client *redis.Client
}

// NewRedisChecker creates a Redis health checker.
func NewRedisChecker(client *redis.Client) *RedisChecker {
	return &RedisChecker{client: client}
}

// Ping checks Redis connectivity.
func (r *RedisChecker) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// PoolChecker adapts a pgx pool to Checker.
type PoolChecker struct {
	pool *pgxpool.Pool
}

// NewPoolChecker creates a Postgres health checker.
func NewPoolChecker(pool *pgxpool.Pool) *PoolChecker {
	return &PoolChecker{pool: pool}
}

// Ping checks Postgres connectivity.
func (p *PoolChecker) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

// AlwaysHealthy is the checker for file and memory storage, which have no
// external dependency to probe.
type AlwaysHealthy struct{}

// Ping always succeeds.
func (AlwaysHealthy) Ping(_ context.Context) error {
	return nil
}

// Handler handles health check operations.
type Handler struct {
	storage Checker
}

// NewHandler creates a health handler over the storage checker.
func NewHandler(storage Checker) *Handler {
	return &Handler{storage: storage}
}

// Response is the response for the health check endpoint.
type Response struct {
	Body struct {
		Status  string `json:"status"`
		Storage string `json:"storage"`
	}
}

// Check reports service health. Storage being down degrades but does not
// fail the service: the registry keeps working from memory.
func (h *Handler) Check(ctx context.Context, _ *struct{}) (*Response, error) {
	resp := &Response{}
	resp.Body.Status = "ok"

	if err := h.storage.Ping(ctx); err != nil {
		resp.Body.Storage = "unhealthy"
		resp.Body.Status = "degraded"
	} else {
		resp.Body.Storage = "healthy"
	}

	return resp, nil
}

// RegisterRoutes registers health check routes.
func RegisterRoutes(api huma.API, h *Handler) {
	huma.Get(api, "/health", h.Check)
}
