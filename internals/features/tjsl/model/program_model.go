// file: internals/features/tjsl/model/program_model.go
package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	ProgramStatusBerjalan   = "BERJALAN"
	ProgramStatusSelesai    = "SELESAI"
	ProgramStatusDitunda    = "DITUNDA"
	ProgramStatusDibatalkan = "DIBATALKAN"
)

var ProgramStatuses = []string{
	ProgramStatusBerjalan,
	ProgramStatusSelesai,
	ProgramStatusDitunda,
	ProgramStatusDibatalkan,
}

func IsValidProgramStatus(s string) bool { return contains(ProgramStatuses, s) }

type ProgramModel struct {
	ProgramID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:program_id" json:"program_id"`
	ProgramProposalID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex;column:program_proposal_id" json:"program_proposal_id"`

	// ============ Salinan dari proposal ============
	ProgramTitle               string `gorm:"type:varchar(200);not null;column:program_title" json:"program_title"`
	ProgramPillar              string `gorm:"type:varchar(30);not null;index;column:program_pillar" json:"program_pillar"`
	ProgramRegion              string `gorm:"type:varchar(120);not null;column:program_region" json:"program_region"`
	ProgramDistrict            string `gorm:"type:varchar(120);column:program_district" json:"program_district"`
	ProgramVillage             string `gorm:"type:varchar(120);column:program_village" json:"program_village"`
	ProgramRationale           string `gorm:"type:text;column:program_rationale" json:"program_rationale"`
	ProgramObjectives          string `gorm:"type:text;column:program_objectives" json:"program_objectives"`
	ProgramSuccessIndicators   string `gorm:"type:text;column:program_success_indicators" json:"program_success_indicators"`
	ProgramTargetBeneficiaries string `gorm:"type:text;column:program_target_beneficiaries" json:"program_target_beneficiaries"`
	ProgramBeneficiaryCount    int    `gorm:"type:integer;not null;default:0;column:program_beneficiary_count" json:"program_beneficiary_count"`

	// ============ Nilai final saat konversi ============
	ProgramFinalBudget       float64   `gorm:"type:numeric(18,2);not null;column:program_final_budget" json:"program_final_budget"`
	ProgramFinalStartDate    time.Time `gorm:"type:date;not null;column:program_final_start_date" json:"program_final_start_date"`
	ProgramFinalEndDate      time.Time `gorm:"type:date;not null;column:program_final_end_date" json:"program_final_end_date"`
	ProgramResponsibleUserID uuid.UUID `gorm:"type:uuid;not null;index;column:program_responsible_user_id" json:"program_responsible_user_id"`

	ProgramStatus    string    `gorm:"type:varchar(20);not null;default:'BERJALAN';index;column:program_status" json:"program_status"`
	ProgramCreatedAt time.Time `gorm:"type:timestamptz;not null;autoCreateTime;column:program_created_at" json:"program_created_at"`
	ProgramUpdatedAt time.Time `gorm:"type:timestamptz;not null;autoUpdateTime;column:program_updated_at" json:"program_updated_at"`
}

func (ProgramModel) TableName() string { return "programs" }

// NewProgramFromProposal menyalin field deskriptif proposal ke program baru (status BERJALAN).
func NewProgramFromProposal(p ProposalModel, budget float64, start, end time.Time, responsible uuid.UUID) ProgramModel {
	return ProgramModel{
		ProgramProposalID:          p.ProposalID,
		ProgramTitle:               p.ProposalTitle,
		ProgramPillar:              p.ProposalPillar,
		ProgramRegion:              p.ProposalRegion,
		ProgramDistrict:            p.ProposalDistrict,
		ProgramVillage:             p.ProposalVillage,
		ProgramRationale:           p.ProposalRationale,
		ProgramObjectives:          p.ProposalObjectives,
		ProgramSuccessIndicators:   p.ProposalSuccessIndicators,
		ProgramTargetBeneficiaries: p.ProposalTargetBeneficiaries,
		ProgramBeneficiaryCount:    p.ProposalBeneficiaryCount,
		ProgramFinalBudget:         budget,
		ProgramFinalStartDate:      start,
		ProgramFinalEndDate:        end,
		ProgramResponsibleUserID:   responsible,
		ProgramStatus:              ProgramStatusBerjalan,
	}
}
