// file: internals/features/tjsl/repository/tjsl_repository.go
package repository

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tjsl_backend/internals/features/tjsl/dto"
	"tjsl_backend/internals/features/tjsl/model"
	"tjsl_backend/internals/features/tjsl/service"
	userModel "tjsl_backend/internals/features/users/user/model"
)

// GormStore mengimplementasikan service.Store di atas PostgreSQL.
type GormStore struct {
	DB *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore { return &GormStore{DB: db} }

var _ service.Store = (*GormStore)(nil)

func (s *GormStore) db(ctx context.Context) *gorm.DB { return s.DB.WithContext(ctx) }

func (s *GormStore) Transaction(ctx context.Context, fn func(tx service.Store) error) error {
	return s.db(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{DB: tx})
	})
}

func (s *GormStore) FindUser(ctx context.Context, id uuid.UUID) (*userModel.UserModel, error) {
	var u userModel.UserModel
	if err := s.db(ctx).Where("id = ?", id).Take(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

/* ============================================
   PROPOSALS
============================================ */

func (s *GormStore) CreateProposal(ctx context.Context, p *model.ProposalModel) error {
	return s.db(ctx).Create(p).Error
}

func (s *GormStore) FindProposal(ctx context.Context, id uuid.UUID) (*model.ProposalModel, error) {
	var p model.ProposalModel
	if err := s.db(ctx).Where("proposal_id = ?", id).Take(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func likeQ(q string) string { return "%" + strings.ToLower(strings.TrimSpace(q)) + "%" }

func (s *GormStore) ListProposals(ctx context.Context, f dto.ProposalFilter) ([]model.ProposalModel, int64, error) {
	q := s.db(ctx).Model(&model.ProposalModel{})
	if f.Status != "" {
		q = q.Where("proposal_status = ?", f.Status)
	}
	if f.Pillar != "" {
		q = q.Where("proposal_pillar = ?", f.Pillar)
	}
	if f.CreatedBy != nil {
		q = q.Where("proposal_created_by = ?", *f.CreatedBy)
	}
	if f.Q != "" {
		like := likeQ(f.Q)
		q = q.Where("(LOWER(proposal_title) LIKE ? OR LOWER(proposal_region) LIKE ?)", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []model.ProposalModel
	q = q.Order("proposal_created_at DESC")
	if f.Limit > 0 {
		q = q.Offset(f.Offset).Limit(f.Limit)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (s *GormStore) UpdateDraftProposal(ctx context.Context, id uuid.UUID, updates map[string]any) (bool, error) {
	updates["proposal_updated_at"] = time.Now()
	res := s.db(ctx).Model(&model.ProposalModel{}).
		Where("proposal_id = ? AND proposal_status = ?", id, model.ProposalStatusDraft).
		UpdateColumns(updates)
	return res.RowsAffected == 1, res.Error
}

func (s *GormStore) DeleteDraftProposal(ctx context.Context, id uuid.UUID) (bool, error) {
	res := s.db(ctx).
		Where("proposal_id = ? AND proposal_status = ?", id, model.ProposalStatusDraft).
		Delete(&model.ProposalModel{})
	return res.RowsAffected == 1, res.Error
}

func (s *GormStore) SwapProposalStatus(ctx context.Context, id uuid.UUID, from, to string) (bool, error) {
	res := s.db(ctx).Model(&model.ProposalModel{}).
		Where("proposal_id = ? AND proposal_status = ?", id, from).
		UpdateColumns(map[string]any{
			"proposal_status":     to,
			"proposal_updated_at": time.Now(),
		})
	return res.RowsAffected == 1, res.Error
}

type statusCount struct {
	Status string
	N      int64
}

func toCountMap(rows []statusCount) map[string]int64 {
	out := make(map[string]int64, len(rows))
	for _, r := range rows {
		out[r.Status] = r.N
	}
	return out
}

func (s *GormStore) CountProposalsByStatus(ctx context.Context, createdBy *uuid.UUID) (map[string]int64, error) {
	q := s.db(ctx).Model(&model.ProposalModel{}).
		Select("proposal_status AS status, COUNT(*) AS n").
		Group("proposal_status")
	if createdBy != nil {
		q = q.Where("proposal_created_by = ?", *createdBy)
	}
	var rows []statusCount
	if err := q.Scan(&rows).Error; err != nil {
		return nil, err
	}
	return toCountMap(rows), nil
}

/* ============================================
   PROGRAMS
============================================ */

func (s *GormStore) CreateProgram(ctx context.Context, p *model.ProgramModel) error {
	return s.db(ctx).Create(p).Error
}

func (s *GormStore) FindProgram(ctx context.Context, id uuid.UUID) (*model.ProgramModel, error) {
	var p model.ProgramModel
	if err := s.db(ctx).Where("program_id = ?", id).Take(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *GormStore) ListPrograms(ctx context.Context, f dto.ProgramFilter) ([]model.ProgramModel, int64, error) {
	q := s.db(ctx).Model(&model.ProgramModel{})
	if f.Status != "" {
		q = q.Where("program_status = ?", f.Status)
	}
	if f.Pillar != "" {
		q = q.Where("program_pillar = ?", f.Pillar)
	}
	if f.ResponsibleUserID != nil {
		q = q.Where("program_responsible_user_id = ?", *f.ResponsibleUserID)
	}
	if f.Q != "" {
		like := likeQ(f.Q)
		q = q.Where("(LOWER(program_title) LIKE ? OR LOWER(program_region) LIKE ?)", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []model.ProgramModel
	q = q.Order("program_created_at DESC")
	if f.Limit > 0 {
		q = q.Offset(f.Offset).Limit(f.Limit)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (s *GormStore) SwapProgramStatus(ctx context.Context, id uuid.UUID, from, to string) (bool, error) {
	res := s.db(ctx).Model(&model.ProgramModel{}).
		Where("program_id = ? AND program_status = ?", id, from).
		UpdateColumns(map[string]any{
			"program_status":     to,
			"program_updated_at": time.Now(),
		})
	return res.RowsAffected == 1, res.Error
}

func (s *GormStore) CountProgramsByStatus(ctx context.Context, responsible *uuid.UUID) (map[string]int64, error) {
	q := s.db(ctx).Model(&model.ProgramModel{}).
		Select("program_status AS status, COUNT(*) AS n").
		Group("program_status")
	if responsible != nil {
		q = q.Where("program_responsible_user_id = ?", *responsible)
	}
	var rows []statusCount
	if err := q.Scan(&rows).Error; err != nil {
		return nil, err
	}
	return toCountMap(rows), nil
}

func (s *GormStore) SumFinalBudget(ctx context.Context, responsible *uuid.UUID) (float64, error) {
	q := s.db(ctx).Model(&model.ProgramModel{}).
		Select("COALESCE(SUM(program_final_budget), 0)")
	if responsible != nil {
		q = q.Where("program_responsible_user_id = ?", *responsible)
	}
	var total float64
	if err := q.Scan(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (s *GormStore) LastReportTimes(ctx context.Context, programIDs []uuid.UUID) (map[uuid.UUID]time.Time, error) {
	out := make(map[uuid.UUID]time.Time, len(programIDs))
	if len(programIDs) == 0 {
		return out, nil
	}
	var rows []struct {
		ProgramID uuid.UUID
		LastAt    time.Time
	}
	err := s.db(ctx).Model(&model.ReportModel{}).
		Select("report_program_id AS program_id, MAX(report_created_at) AS last_at").
		Where("report_program_id IN ?", programIDs).
		Group("report_program_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		out[r.ProgramID] = r.LastAt
	}
	return out, nil
}

/* ============================================
   REPORTS & DOCUMENTS (append-only)
============================================ */

func (s *GormStore) CreateReport(ctx context.Context, r *model.ReportModel) error {
	return s.db(ctx).Create(r).Error
}

func (s *GormStore) ListReports(ctx context.Context, programID uuid.UUID, reportType string) ([]model.ReportModel, error) {
	q := s.db(ctx).Where("report_program_id = ?", programID)
	if reportType != "" {
		q = q.Where("report_type = ?", reportType)
	}
	var rows []model.ReportModel
	if err := q.Order("report_created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *GormStore) CreateDocument(ctx context.Context, d *model.DocumentModel) error {
	return s.db(ctx).Create(d).Error
}

func (s *GormStore) ListDocuments(ctx context.Context, programID uuid.UUID) ([]model.DocumentModel, error) {
	var rows []model.DocumentModel
	err := s.db(ctx).
		Where("document_program_id = ?", programID).
		Order("document_created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
