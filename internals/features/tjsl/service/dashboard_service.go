// file: internals/features/tjsl/service/dashboard_service.go
package service

import (
	"context"

	"github.com/google/uuid"

	"tjsl_backend/internals/features/tjsl/dto"
	"tjsl_backend/internals/features/tjsl/model"
	helperAuth "tjsl_backend/internals/helpers/auth"
)

// Dashboard: admin melihat semuanya, user hanya proposal miliknya & program yang ia pegang.
func (s *Service) Dashboard(ctx context.Context, actor helperAuth.Actor) (*dto.DashboardResponse, error) {
	var scope *uuid.UUID
	if !actor.IsAdmin() {
		uid := actor.UserID
		scope = &uid
	}

	proposals, err := s.store.CountProposalsByStatus(ctx, scope)
	if err != nil {
		return nil, err
	}
	programs, err := s.store.CountProgramsByStatus(ctx, scope)
	if err != nil {
		return nil, err
	}
	budget, err := s.store.SumFinalBudget(ctx, scope)
	if err != nil {
		return nil, err
	}

	running, _, err := s.store.ListPrograms(ctx, dto.ProgramFilter{
		Status:            model.ProgramStatusBerjalan,
		ResponsibleUserID: scope,
	})
	if err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, 0, len(running))
	for _, p := range running {
		ids = append(ids, p.ProgramID)
	}
	last, err := s.store.LastReportTimes(ctx, ids)
	if err != nil {
		return nil, err
	}

	now := s.now()
	return &dto.DashboardResponse{
		ProposalByStatus: fillStatuses(proposals, model.ProposalStatuses),
		ProgramByStatus:  fillStatuses(programs, model.ProgramStatuses),
		TotalFinalBudget: budget,
		AtRisk:           FindAtRisk(now, running, last),
		GeneratedAt:      now,
	}, nil
}

// fillStatuses: status tanpa data tetap muncul dengan nilai 0.
func fillStatuses(counts map[string]int64, all []string) map[string]int64 {
	out := make(map[string]int64, len(all))
	for _, s := range all {
		out[s] = counts[s]
	}
	return out
}
