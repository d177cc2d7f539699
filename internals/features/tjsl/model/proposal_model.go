// file: internals/features/tjsl/model/proposal_model.go
package model

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* ============================================
   Enum: status & pilar
============================================ */

const (
	ProposalStatusDraft      = "DRAFT"
	ProposalStatusDiajukan   = "DIAJUKAN"
	ProposalStatusDisetujui  = "DISETUJUI"
	ProposalStatusDitolak    = "DITOLAK"
	ProposalStatusDijalankan = "DIJALANKAN"
)

var ProposalStatuses = []string{
	ProposalStatusDraft,
	ProposalStatusDiajukan,
	ProposalStatusDisetujui,
	ProposalStatusDitolak,
	ProposalStatusDijalankan,
}

const (
	PillarPendidikan    = "PENDIDIKAN"
	PillarKesehatan     = "KESEHATAN"
	PillarLingkungan    = "LINGKUNGAN"
	PillarEkonomi       = "EKONOMI"
	PillarSosialBudaya  = "SOSIAL_BUDAYA"
	PillarInfrastruktur = "INFRASTRUKTUR"
)

var Pillars = []string{
	PillarPendidikan,
	PillarKesehatan,
	PillarLingkungan,
	PillarEkonomi,
	PillarSosialBudaya,
	PillarInfrastruktur,
}

func IsValidProposalStatus(s string) bool { return contains(ProposalStatuses, s) }
func IsValidPillar(s string) bool         { return contains(Pillars, s) }

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

/* ============================================
   Model
============================================ */

type ProposalModel struct {
	ProposalID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:proposal_id" json:"proposal_id"`

	// ============ Identitas ============
	ProposalTitle  string `gorm:"type:varchar(200);not null;column:proposal_title" json:"proposal_title"`
	ProposalPillar string `gorm:"type:varchar(30);not null;index;column:proposal_pillar" json:"proposal_pillar"`

	// ============ Lokasi ============
	ProposalRegion   string `gorm:"type:varchar(120);not null;column:proposal_region" json:"proposal_region"`
	ProposalDistrict string `gorm:"type:varchar(120);column:proposal_district" json:"proposal_district"`
	ProposalVillage  string `gorm:"type:varchar(120);column:proposal_village" json:"proposal_village"`

	// ============ Isi ============
	ProposalRationale           string `gorm:"type:text;not null;column:proposal_rationale" json:"proposal_rationale"`
	ProposalObjectives          string `gorm:"type:text;not null;column:proposal_objectives" json:"proposal_objectives"`
	ProposalSuccessIndicators   string `gorm:"type:text;column:proposal_success_indicators" json:"proposal_success_indicators"`
	ProposalTargetBeneficiaries string `gorm:"type:text;column:proposal_target_beneficiaries" json:"proposal_target_beneficiaries"`
	ProposalBeneficiaryCount    int    `gorm:"type:integer;not null;default:0;column:proposal_beneficiary_count" json:"proposal_beneficiary_count"`

	// ============ Anggaran & jadwal ============
	ProposalEstimatedBudget    float64   `gorm:"type:numeric(18,2);not null;default:0;column:proposal_estimated_budget" json:"proposal_estimated_budget"`
	ProposalEstimatedStartDate time.Time `gorm:"type:date;not null;column:proposal_estimated_start_date" json:"proposal_estimated_start_date"`
	ProposalEstimatedEndDate   time.Time `gorm:"type:date;not null;column:proposal_estimated_end_date" json:"proposal_estimated_end_date"`

	// ============ Status & audit ============
	ProposalStatus    string    `gorm:"type:varchar(20);not null;default:'DRAFT';index;column:proposal_status" json:"proposal_status"`
	ProposalCreatedBy uuid.UUID `gorm:"type:uuid;not null;index;column:proposal_created_by" json:"proposal_created_by"`
	ProposalCreatedAt time.Time `gorm:"type:timestamptz;not null;autoCreateTime;column:proposal_created_at" json:"proposal_created_at"`
	ProposalUpdatedAt time.Time `gorm:"type:timestamptz;not null;autoUpdateTime;column:proposal_updated_at" json:"proposal_updated_at"`
}

func (ProposalModel) TableName() string { return "proposals" }

// Editable: hanya DRAFT yang boleh diubah / dihapus.
func (m ProposalModel) Editable() bool { return m.ProposalStatus == ProposalStatusDraft }

// ============ Hooks ============
// Hanya saat insert; update status memakai map kolom.
func (m *ProposalModel) BeforeCreate(tx *gorm.DB) error {
	m.ProposalTitle = strings.TrimSpace(m.ProposalTitle)
	m.ProposalRegion = strings.TrimSpace(m.ProposalRegion)
	m.ProposalDistrict = strings.TrimSpace(m.ProposalDistrict)
	m.ProposalVillage = strings.TrimSpace(m.ProposalVillage)
	if m.ProposalStatus == "" {
		m.ProposalStatus = ProposalStatusDraft
	}

	// Mirror CHECK: end > start
	if !m.ProposalEstimatedEndDate.After(m.ProposalEstimatedStartDate) {
		return errors.New("proposal_estimated_end_date must be > proposal_estimated_start_date")
	}
	return nil
}
