package controller

import (
	"context"
	"time"

	"equipment-chatbot-be/internal/dto"
	"equipment-chatbot-be/pkg/cache"
	"equipment-chatbot-be/pkg/search/keyword"
	"equipment-chatbot-be/pkg/search/vector"

	"github.com/gofiber/fiber/v2"
)

const healthPingTimeout = 2 * time.Second

type IHealthController interface {
	RegisterRoutes(r fiber.Router)
	Live(ctx *fiber.Ctx) error
	Ready(ctx *fiber.Ctx) error
}

// healthController reports backend reachability. Readiness mirrors the
// runtime degradation policy: the service stays ready while at least one
// retrieval backend answers, and only reports down when both are out.
type healthController struct {
	store        cache.Store
	keywordIndex keyword.Index
	vectorIndex  vector.Index
}

func NewHealthController(store cache.Store, keywordIndex keyword.Index, vectorIndex vector.Index) IHealthController {
	return &healthController{
		store:        store,
		keywordIndex: keywordIndex,
		vectorIndex:  vectorIndex,
	}
}

func (c *healthController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/health/v1")
	h.Get("live", c.Live)
	h.Get("ready", c.Ready)
}

func (c *healthController) Live(ctx *fiber.Ctx) error {
	return ctx.JSON(fiber.Map{"status": "ok"})
}

func (c *healthController) Ready(ctx *fiber.Ctx) error {
	backends := []dto.BackendStatusDTO{
		c.check(ctx.Context(), "cache", c.store.Ping),
		c.check(ctx.Context(), "keyword_index", c.keywordIndex.Ping),
		c.check(ctx.Context(), "vector_index", c.vectorIndex.Ping),
	}

	keywordDown := backends[1].Status == "down"
	vectorDown := backends[2].Status == "down"

	res := dto.ReadinessResponse{Status: "ok", Backends: backends}
	switch {
	case keywordDown && vectorDown:
		res.Status = "down"
		res.Degraded = true
		return ctx.Status(fiber.StatusServiceUnavailable).JSON(res)
	case keywordDown || vectorDown || backends[0].Status == "down":
		res.Status = "degraded"
		res.Degraded = true
	}

	return ctx.JSON(res)
}

func (c *healthController) check(ctx context.Context, name string, ping func(context.Context) error) dto.BackendStatusDTO {
	pctx, cancel := context.WithTimeout(ctx, healthPingTimeout)
	defer cancel()

	if err := ping(pctx); err != nil {
		return dto.BackendStatusDTO{Name: name, Status: "down", Error: err.Error()}
	}
	return dto.BackendStatusDTO{Name: name, Status: "ok"}
}
