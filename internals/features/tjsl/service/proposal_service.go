// file: internals/features/tjsl/service/proposal_service.go
package service

import (
	"context"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"tjsl_backend/internals/features/tjsl/dto"
	"tjsl_backend/internals/features/tjsl/model"
	helperAuth "tjsl_backend/internals/helpers/auth"
	"tjsl_backend/internals/helpers/metrics"
	"tjsl_backend/internals/helpers/pdfdoc"
)

/* ============================================
   CREATE / READ
============================================ */

func (s *Service) CreateProposal(ctx context.Context, actor helperAuth.Actor, req dto.CreateProposalRequest) (*model.ProposalModel, error) {
	p, err := req.ToModel(actor.UserID)
	if err != nil {
		return nil, err
	}
	if err := s.store.CreateProposal(ctx, &p); err != nil {
		return nil, err
	}
	metrics.CountTransition("proposal", model.ProposalStatusDraft)
	return &p, nil
}

// loadProposal: user biasa hanya boleh melihat proposal miliknya.
func (s *Service) loadProposal(ctx context.Context, actor helperAuth.Actor, id uuid.UUID) (*model.ProposalModel, error) {
	p, err := s.store.FindProposal(ctx, id)
	if err != nil {
		return nil, notFound(err, "Proposal")
	}
	if !actor.CanActOn(p.ProposalCreatedBy) {
		return nil, fiber.NewError(fiber.StatusForbidden, "Anda tidak memiliki akses ke proposal ini")
	}
	return p, nil
}

func (s *Service) GetProposal(ctx context.Context, actor helperAuth.Actor, id uuid.UUID) (*model.ProposalModel, error) {
	return s.loadProposal(ctx, actor, id)
}

func (s *Service) ListProposals(ctx context.Context, actor helperAuth.Actor, f dto.ProposalFilter) ([]model.ProposalModel, int64, error) {
	if f.Status != "" && !model.IsValidProposalStatus(f.Status) {
		return nil, 0, fiber.NewError(fiber.StatusBadRequest, "status tidak valid")
	}
	if f.Pillar != "" && !model.IsValidPillar(f.Pillar) {
		return nil, 0, fiber.NewError(fiber.StatusBadRequest, "pillar tidak valid")
	}
	if !actor.IsAdmin() {
		uid := actor.UserID
		f.CreatedBy = &uid
	}
	return s.store.ListProposals(ctx, f)
}

/* ============================================
   UPDATE / DELETE (DRAFT saja)
============================================ */

func (s *Service) UpdateProposal(ctx context.Context, actor helperAuth.Actor, id uuid.UUID, req dto.PatchProposalRequest) (*model.ProposalModel, error) {
	p, err := s.loadProposal(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if !p.Editable() {
		return nil, fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("Proposal berstatus %s tidak bisa diubah, hanya DRAFT", p.ProposalStatus))
	}

	updates, err := req.Apply(p)
	if err != nil {
		return nil, err
	}
	if len(updates) == 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Tidak ada field yang diubah")
	}
	ok, err := s.store.UpdateDraftProposal(ctx, id, updates)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errStatusChanged
	}
	return p, nil
}

func (s *Service) DeleteProposal(ctx context.Context, actor helperAuth.Actor, id uuid.UUID) error {
	p, err := s.loadProposal(ctx, actor, id)
	if err != nil {
		return err
	}
	if !p.Editable() {
		return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("Proposal berstatus %s tidak bisa dihapus, hanya DRAFT", p.ProposalStatus))
	}
	ok, err := s.store.DeleteDraftProposal(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return errStatusChanged
	}
	log.Printf("[INFO] proposal %s dihapus oleh %s", id, actor.UserID)
	return nil
}

/* ============================================
   STATUS TRANSITIONS
============================================ */

// transitionProposal: guard status lalu CAS from → to.
func (s *Service) transitionProposal(ctx context.Context, p *model.ProposalModel, from, to, verb string) (*model.ProposalModel, error) {
	if p.ProposalStatus != from {
		return nil, fiber.NewError(fiber.StatusBadRequest,
			fmt.Sprintf("Proposal berstatus %s tidak bisa %s, harus %s", p.ProposalStatus, verb, from))
	}
	ok, err := s.store.SwapProposalStatus(ctx, p.ProposalID, from, to)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errStatusChanged
	}
	p.ProposalStatus = to
	metrics.CountTransition("proposal", to)
	log.Printf("[INFO] proposal %s: %s → %s", p.ProposalID, from, to)
	return p, nil
}

// SubmitProposal: DRAFT → DIAJUKAN (pemilik atau admin).
func (s *Service) SubmitProposal(ctx context.Context, actor helperAuth.Actor, id uuid.UUID) (*model.ProposalModel, error) {
	p, err := s.loadProposal(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	return s.transitionProposal(ctx, p, model.ProposalStatusDraft, model.ProposalStatusDiajukan, "diajukan")
}

// ApproveProposal: DIAJUKAN → DISETUJUI (admin).
func (s *Service) ApproveProposal(ctx context.Context, actor helperAuth.Actor, id uuid.UUID) (*model.ProposalModel, error) {
	return s.review(ctx, actor, id, model.ProposalStatusDisetujui, "disetujui")
}

// RejectProposal: DIAJUKAN → DITOLAK (admin).
func (s *Service) RejectProposal(ctx context.Context, actor helperAuth.Actor, id uuid.UUID) (*model.ProposalModel, error) {
	return s.review(ctx, actor, id, model.ProposalStatusDitolak, "ditolak")
}

func (s *Service) review(ctx context.Context, actor helperAuth.Actor, id uuid.UUID, to, verb string) (*model.ProposalModel, error) {
	if !actor.IsAdmin() {
		return nil, fiber.NewError(fiber.StatusForbidden, "Hanya admin yang bisa mereview proposal")
	}
	p, err := s.store.FindProposal(ctx, id)
	if err != nil {
		return nil, notFound(err, "Proposal")
	}
	return s.transitionProposal(ctx, p, model.ProposalStatusDiajukan, to, verb)
}

/* ============================================
   TOR
============================================ */

// ProposalTOR merender PDF TOR. Hanya untuk proposal DISETUJUI / DIJALANKAN.
func (s *Service) ProposalTOR(ctx context.Context, actor helperAuth.Actor, id uuid.UUID) ([]byte, string, error) {
	p, err := s.loadProposal(ctx, actor, id)
	if err != nil {
		return nil, "", err
	}
	if p.ProposalStatus != model.ProposalStatusDisetujui && p.ProposalStatus != model.ProposalStatusDijalankan {
		return nil, "", fiber.NewError(fiber.StatusBadRequest, "TOR hanya tersedia untuk proposal yang sudah disetujui")
	}

	proposer := ""
	if u, err := s.store.FindUser(ctx, p.ProposalCreatedBy); err == nil {
		proposer = u.DisplayName()
	}

	out, err := pdfdoc.RenderTOR(pdfdoc.TORData{
		Title:               p.ProposalTitle,
		Pillar:              p.ProposalPillar,
		Region:              p.ProposalRegion,
		District:            p.ProposalDistrict,
		Village:             p.ProposalVillage,
		Rationale:           p.ProposalRationale,
		Objectives:          p.ProposalObjectives,
		SuccessIndicators:   p.ProposalSuccessIndicators,
		TargetBeneficiaries: p.ProposalTargetBeneficiaries,
		BeneficiaryCount:    p.ProposalBeneficiaryCount,
		EstimatedBudget:     p.ProposalEstimatedBudget,
		StartDate:           p.ProposalEstimatedStartDate,
		EndDate:             p.ProposalEstimatedEndDate,
		Status:              p.ProposalStatus,
		ProposerName:        proposer,
		GeneratedAt:         s.now(),
	})
	if err != nil {
		return nil, "", err
	}
	return out, "TOR_" + pdfFileName(p.ProposalTitle) + ".pdf", nil
}
