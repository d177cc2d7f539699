// file: internals/features/tjsl/service/store.go
package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"tjsl_backend/internals/features/tjsl/dto"
	"tjsl_backend/internals/features/tjsl/model"
	userModel "tjsl_backend/internals/features/users/user/model"
)

// Store = persistence yang dibutuhkan lifecycle proposal/program.
// Data tidak ada → gorm.ErrRecordNotFound.
// Swap*Status adalah compare-and-set: false berarti status sudah berubah.
type Store interface {
	Transaction(ctx context.Context, fn func(tx Store) error) error

	FindUser(ctx context.Context, id uuid.UUID) (*userModel.UserModel, error)

	CreateProposal(ctx context.Context, p *model.ProposalModel) error
	FindProposal(ctx context.Context, id uuid.UUID) (*model.ProposalModel, error)
	ListProposals(ctx context.Context, f dto.ProposalFilter) ([]model.ProposalModel, int64, error)
	UpdateDraftProposal(ctx context.Context, id uuid.UUID, updates map[string]any) (bool, error)
	DeleteDraftProposal(ctx context.Context, id uuid.UUID) (bool, error)
	SwapProposalStatus(ctx context.Context, id uuid.UUID, from, to string) (bool, error)
	CountProposalsByStatus(ctx context.Context, createdBy *uuid.UUID) (map[string]int64, error)

	CreateProgram(ctx context.Context, p *model.ProgramModel) error
	FindProgram(ctx context.Context, id uuid.UUID) (*model.ProgramModel, error)
	ListPrograms(ctx context.Context, f dto.ProgramFilter) ([]model.ProgramModel, int64, error)
	SwapProgramStatus(ctx context.Context, id uuid.UUID, from, to string) (bool, error)
	CountProgramsByStatus(ctx context.Context, responsible *uuid.UUID) (map[string]int64, error)
	SumFinalBudget(ctx context.Context, responsible *uuid.UUID) (float64, error)
	LastReportTimes(ctx context.Context, programIDs []uuid.UUID) (map[uuid.UUID]time.Time, error)

	CreateReport(ctx context.Context, r *model.ReportModel) error
	ListReports(ctx context.Context, programID uuid.UUID, reportType string) ([]model.ReportModel, error)

	CreateDocument(ctx context.Context, d *model.DocumentModel) error
	ListDocuments(ctx context.Context, programID uuid.UUID) ([]model.DocumentModel, error)
}
