// file: internals/features/ai/controller/usage_controller.go
package controller

import (
	"github.com/gofiber/fiber/v2"

	"tjsl_backend/internals/features/ai/dto"
	"tjsl_backend/internals/features/ai/model"
	"tjsl_backend/internals/features/ai/service"
	helper "tjsl_backend/internals/helpers"
)

// GET /api/a/ai/usage-logs?status=&provider=&user_id=&from=&to=&page=&per_page=
func (ctl *AIController) ListUsageLogs(c *fiber.Ctx) error {
	f, err := dto.UsageLogFilterFromQuery(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	p := helper.ResolvePaging(c, 20, 200)

	q := ctl.DB.WithContext(c.UserContext()).Model(&model.UsageLogModel{})
	if f.Status != "" {
		q = q.Where("usage_log_status = ?", f.Status)
	}
	if f.Provider != "" {
		q = q.Where("usage_log_provider = ?", f.Provider)
	}
	if f.UserID != nil {
		q = q.Where("usage_log_user_id = ?", *f.UserID)
	}
	if f.From != nil {
		q = q.Where("usage_log_created_at >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("usage_log_created_at < ?", *f.To)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.FromFiberError(c, err)
	}
	var rows []model.UsageLogModel
	if err := q.Order("usage_log_created_at DESC").Offset(p.Offset).Limit(p.Limit).Find(&rows).Error; err != nil {
		return helper.FromFiberError(c, err)
	}
	pg := helper.BuildPaginationFromOffset(total, p.Offset, p.Limit)
	return helper.JsonList(c, "ok", rows, &pg)
}

// GET /api/a/ai/usage-stats?provider=&from=&to=
func (ctl *AIController) UsageStats(c *fiber.Ctx) error {
	f, err := dto.UsageLogFilterFromQuery(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	stats, err := ctl.Chat.Stats(c.UserContext(), service.UsageFilter{From: f.From, To: f.To, Provider: f.Provider})
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "ok", stats)
}
