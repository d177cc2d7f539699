// file: internals/features/tjsl/service/program_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"tjsl_backend/internals/features/tjsl/dto"
	"tjsl_backend/internals/features/tjsl/model"
	helper "tjsl_backend/internals/helpers"
	helperAuth "tjsl_backend/internals/helpers/auth"
	"tjsl_backend/internals/helpers/metrics"
	"tjsl_backend/internals/helpers/pdfdoc"
)

/* ============================================
   CONVERT: proposal DISETUJUI → program BERJALAN
============================================ */

// ConvertProposal membuat program dari proposal DISETUJUI dan menandai proposal DIJALANKAN.
// Kedua tulisan berada dalam satu transaksi: gagal salah satu, keduanya batal.
func (s *Service) ConvertProposal(ctx context.Context, actor helperAuth.Actor, proposalID uuid.UUID, req dto.ConvertProposalRequest) (*model.ProgramModel, error) {
	if !actor.IsAdmin() {
		return nil, fiber.NewError(fiber.StatusForbidden, "Hanya admin yang bisa mengonversi proposal")
	}
	if req.ProgramFinalBudget <= 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Anggaran final harus lebih dari 0")
	}
	start, err := dto.ParseDate("program_final_start_date", req.ProgramFinalStartDate)
	if err != nil {
		return nil, err
	}
	end, err := dto.ParseDate("program_final_end_date", req.ProgramFinalEndDate)
	if err != nil {
		return nil, err
	}
	if !end.After(start) {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Tanggal selesai final harus setelah tanggal mulai final")
	}
	responsibleID, err := uuid.Parse(req.ProgramResponsibleUserID)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "program_responsible_user_id tidak valid")
	}

	var prog model.ProgramModel
	err = s.store.Transaction(ctx, func(tx Store) error {
		p, err := tx.FindProposal(ctx, proposalID)
		if err != nil {
			return notFound(err, "Proposal")
		}
		if p.ProposalStatus != model.ProposalStatusDisetujui {
			return fiber.NewError(fiber.StatusBadRequest,
				fmt.Sprintf("Proposal berstatus %s tidak bisa dikonversi, harus DISETUJUI", p.ProposalStatus))
		}

		u, err := tx.FindUser(ctx, responsibleID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusBadRequest, "Penanggung jawab tidak ditemukan")
			}
			return err
		}
		if !u.IsActive {
			return fiber.NewError(fiber.StatusBadRequest, "Penanggung jawab tidak aktif")
		}

		prog = model.NewProgramFromProposal(*p, req.ProgramFinalBudget, start, end, responsibleID)
		if err := tx.CreateProgram(ctx, &prog); err != nil {
			if helper.IsUniqueViolation(err) {
				return fiber.NewError(fiber.StatusConflict, "Proposal ini sudah dikonversi menjadi program")
			}
			return err
		}

		ok, err := tx.SwapProposalStatus(ctx, proposalID, model.ProposalStatusDisetujui, model.ProposalStatusDijalankan)
		if err != nil {
			return err
		}
		if !ok {
			return errStatusChanged
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.CountTransition("proposal", model.ProposalStatusDijalankan)
	metrics.CountTransition("program", model.ProgramStatusBerjalan)
	log.Printf("[INFO] proposal %s dikonversi → program %s (pj=%s)", proposalID, prog.ProgramID, responsibleID)
	return &prog, nil
}

/* ============================================
   READ
============================================ */

// loadProgram: user biasa hanya boleh mengakses program yang ia pegang.
func (s *Service) loadProgram(ctx context.Context, actor helperAuth.Actor, id uuid.UUID) (*model.ProgramModel, error) {
	p, err := s.store.FindProgram(ctx, id)
	if err != nil {
		return nil, notFound(err, "Program")
	}
	if !actor.CanActOn(p.ProgramResponsibleUserID) {
		return nil, fiber.NewError(fiber.StatusForbidden, "Anda bukan penanggung jawab program ini")
	}
	return p, nil
}

func (s *Service) GetProgram(ctx context.Context, actor helperAuth.Actor, id uuid.UUID) (*model.ProgramModel, error) {
	return s.loadProgram(ctx, actor, id)
}

func (s *Service) ListPrograms(ctx context.Context, actor helperAuth.Actor, f dto.ProgramFilter) ([]model.ProgramModel, int64, error) {
	if f.Status != "" && !model.IsValidProgramStatus(f.Status) {
		return nil, 0, fiber.NewError(fiber.StatusBadRequest, "status tidak valid")
	}
	if f.Pillar != "" && !model.IsValidPillar(f.Pillar) {
		return nil, 0, fiber.NewError(fiber.StatusBadRequest, "pillar tidak valid")
	}
	if !actor.IsAdmin() {
		uid := actor.UserID
		f.ResponsibleUserID = &uid
	}
	return s.store.ListPrograms(ctx, f)
}

/* ============================================
   COMPLETE: BERJALAN → SELESAI
============================================ */

func (s *Service) CompleteProgram(ctx context.Context, actor helperAuth.Actor, id uuid.UUID) (*model.ProgramModel, error) {
	if !actor.IsAdmin() {
		return nil, fiber.NewError(fiber.StatusForbidden, "Hanya admin yang bisa menyelesaikan program")
	}
	p, err := s.store.FindProgram(ctx, id)
	if err != nil {
		return nil, notFound(err, "Program")
	}
	if p.ProgramStatus != model.ProgramStatusBerjalan {
		return nil, fiber.NewError(fiber.StatusBadRequest,
			fmt.Sprintf("Program berstatus %s tidak bisa diselesaikan, harus BERJALAN", p.ProgramStatus))
	}
	ok, err := s.store.SwapProgramStatus(ctx, id, model.ProgramStatusBerjalan, model.ProgramStatusSelesai)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errStatusChanged
	}
	p.ProgramStatus = model.ProgramStatusSelesai
	metrics.CountTransition("program", model.ProgramStatusSelesai)
	log.Printf("[INFO] program %s selesai", id)
	return p, nil
}

/* ============================================
   SUMMARY & LPJ
============================================ */

// ProgramSummary: agregasi laporan (keuangan, progres, milestone, insiden, kegiatan).
func (s *Service) ProgramSummary(ctx context.Context, actor helperAuth.Actor, id uuid.UUID) (*model.ProgramModel, Summary, error) {
	p, err := s.loadProgram(ctx, actor, id)
	if err != nil {
		return nil, Summary{}, err
	}
	reports, err := s.store.ListReports(ctx, id, "")
	if err != nil {
		return nil, Summary{}, err
	}
	return p, Aggregate(p.ProgramFinalBudget, reports), nil
}

// ProgramLPJ merender LPJ. Hanya untuk program SELESAI.
func (s *Service) ProgramLPJ(ctx context.Context, actor helperAuth.Actor, id uuid.UUID) ([]byte, string, error) {
	p, err := s.loadProgram(ctx, actor, id)
	if err != nil {
		return nil, "", err
	}
	if p.ProgramStatus != model.ProgramStatusSelesai {
		return nil, "", fiber.NewError(fiber.StatusBadRequest, "LPJ hanya tersedia untuk program yang sudah SELESAI")
	}
	reports, err := s.store.ListReports(ctx, id, "")
	if err != nil {
		return nil, "", err
	}
	sum := Aggregate(p.ProgramFinalBudget, reports)

	responsible := ""
	if u, err := s.store.FindUser(ctx, p.ProgramResponsibleUserID); err == nil {
		responsible = u.DisplayName()
	}

	out, err := pdfdoc.RenderLPJ(pdfdoc.LPJData{
		Title:               p.ProgramTitle,
		Pillar:              p.ProgramPillar,
		Region:              p.ProgramRegion,
		District:            p.ProgramDistrict,
		Village:             p.ProgramVillage,
		Objectives:          p.ProgramObjectives,
		TargetBeneficiaries: p.ProgramTargetBeneficiaries,
		BeneficiaryCount:    p.ProgramBeneficiaryCount,
		ResponsibleName:     responsible,
		FinalBudget:         p.ProgramFinalBudget,
		StartDate:           p.ProgramFinalStartDate,
		EndDate:             p.ProgramFinalEndDate,
		Summary:             sum.toLPJ(),
		Reports:             reportLines(reports),
		GeneratedAt:         s.now(),
	})
	if err != nil {
		return nil, "", err
	}
	return out, "LPJ_" + pdfFileName(p.ProgramTitle) + ".pdf", nil
}
