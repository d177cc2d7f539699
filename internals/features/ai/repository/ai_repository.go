// file: internals/features/ai/repository/ai_repository.go
package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tjsl_backend/internals/features/ai/model"
	"tjsl_backend/internals/features/ai/service"
	tjslModel "tjsl_backend/internals/features/tjsl/model"
)

type GormStore struct {
	DB *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore { return &GormStore{DB: db} }

var _ service.Store = (*GormStore)(nil)

func (s *GormStore) db(ctx context.Context) *gorm.DB { return s.DB.WithContext(ctx) }

func (s *GormStore) FindActivePrompt(ctx context.Context) (*model.PromptModel, error) {
	var p model.PromptModel
	err := s.db(ctx).
		Where("prompt_is_active = ?", true).
		Order(gorm.Expr("CASE WHEN prompt_category = ? THEN 0 ELSE 1 END", model.PromptCategoryGeneral)).
		Order("prompt_updated_at DESC").
		Take(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *GormStore) FindAPIKey(ctx context.Context, id uuid.UUID) (*model.APIKeyModel, error) {
	var k model.APIKeyModel
	if err := s.db(ctx).Where("api_key_id = ?", id).Take(&k).Error; err != nil {
		return nil, err
	}
	return &k, nil
}

func (s *GormStore) FindNewestActiveKey(ctx context.Context, providerName string) (*model.APIKeyModel, error) {
	var k model.APIKeyModel
	err := s.db(ctx).
		Where("api_key_provider = ? AND api_key_is_active = ?", providerName, true).
		Order("api_key_created_at DESC").
		Take(&k).Error
	if err != nil {
		return nil, err
	}
	return &k, nil
}

func (s *GormStore) CreateUsageLog(ctx context.Context, row *model.UsageLogModel) error {
	return s.db(ctx).Create(row).Error
}

// ProgramSnapshots: semua program + jumlah laporan & waktu laporan terakhir.
func (s *GormStore) ProgramSnapshots(ctx context.Context) ([]service.ProgramSnapshot, error) {
	var programs []tjslModel.ProgramModel
	if err := s.db(ctx).Order("program_created_at DESC").Find(&programs).Error; err != nil {
		return nil, err
	}
	if len(programs) == 0 {
		return []service.ProgramSnapshot{}, nil
	}

	ids := make([]uuid.UUID, 0, len(programs))
	for _, p := range programs {
		ids = append(ids, p.ProgramID)
	}
	var rows []struct {
		ProgramID uuid.UUID
		Total     int64
		LastAt    time.Time
	}
	err := s.db(ctx).Model(&tjslModel.ReportModel{}).
		Select("report_program_id AS program_id, COUNT(*) AS total, MAX(report_created_at) AS last_at").
		Where("report_program_id IN ?", ids).
		Group("report_program_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	type agg struct {
		total  int64
		lastAt time.Time
	}
	byID := make(map[uuid.UUID]agg, len(rows))
	for _, r := range rows {
		byID[r.ProgramID] = agg{total: r.Total, lastAt: r.LastAt}
	}

	out := make([]service.ProgramSnapshot, 0, len(programs))
	for _, p := range programs {
		snap := service.ProgramSnapshot{
			ProgramID:        p.ProgramID,
			Title:            p.ProgramTitle,
			Pillar:           p.ProgramPillar,
			Region:           p.ProgramRegion,
			Status:           p.ProgramStatus,
			FinalBudget:      p.ProgramFinalBudget,
			StartDate:        p.ProgramFinalStartDate,
			EndDate:          p.ProgramFinalEndDate,
			BeneficiaryCount: p.ProgramBeneficiaryCount,
		}
		if a, ok := byID[p.ProgramID]; ok {
			snap.ReportCount = a.total
			last := a.lastAt
			snap.LastReportAt = &last
		}
		out = append(out, snap)
	}
	return out, nil
}

func (s *GormStore) UsageCounts(ctx context.Context, f service.UsageFilter) (int64, int64, float64, error) {
	q := s.db(ctx).Model(&model.UsageLogModel{})
	if f.From != nil {
		q = q.Where("usage_log_created_at >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("usage_log_created_at < ?", *f.To)
	}
	if f.Provider != "" {
		q = q.Where("usage_log_provider = ?", f.Provider)
	}

	var row struct {
		Success    int64
		Failed     int64
		AvgLatency float64
	}
	err := q.Select(
		"COUNT(*) FILTER (WHERE usage_log_status = ?) AS success, "+
			"COUNT(*) FILTER (WHERE usage_log_status = ?) AS failed, "+
			"COALESCE(AVG(usage_log_latency_ms), 0) AS avg_latency",
		model.UsageStatusSuccess, model.UsageStatusError,
	).Scan(&row).Error
	if err != nil {
		return 0, 0, 0, err
	}
	return row.Success, row.Failed, row.AvgLatency, nil
}
