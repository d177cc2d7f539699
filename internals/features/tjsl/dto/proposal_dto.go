// file: internals/features/tjsl/dto/proposal_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"tjsl_backend/internals/features/tjsl/model"
)

const DateLayout = "2006-01-02"

// ParseDate: "YYYY-MM-DD" → time (UTC). Error → 400.
func ParseDate(field, s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fiber.NewError(fiber.StatusBadRequest, field+" harus berformat YYYY-MM-DD")
	}
	return t, nil
}

/* ============================================
   CREATE
============================================ */

type CreateProposalRequest struct {
	ProposalTitle               string  `json:"proposal_title" validate:"required,min=3,max=200"`
	ProposalPillar              string  `json:"proposal_pillar" validate:"required,oneof=PENDIDIKAN KESEHATAN LINGKUNGAN EKONOMI SOSIAL_BUDAYA INFRASTRUKTUR"`
	ProposalRegion              string  `json:"proposal_region" validate:"required,max=120"`
	ProposalDistrict            string  `json:"proposal_district" validate:"omitempty,max=120"`
	ProposalVillage             string  `json:"proposal_village" validate:"omitempty,max=120"`
	ProposalRationale           string  `json:"proposal_rationale" validate:"required"`
	ProposalObjectives          string  `json:"proposal_objectives" validate:"required"`
	ProposalSuccessIndicators   string  `json:"proposal_success_indicators"`
	ProposalTargetBeneficiaries string  `json:"proposal_target_beneficiaries"`
	ProposalBeneficiaryCount    int     `json:"proposal_beneficiary_count" validate:"gte=0"`
	ProposalEstimatedBudget     float64 `json:"proposal_estimated_budget" validate:"gte=0"`
	ProposalEstimatedStartDate  string  `json:"proposal_estimated_start_date" validate:"required,datetime=2006-01-02"`
	ProposalEstimatedEndDate    string  `json:"proposal_estimated_end_date" validate:"required,datetime=2006-01-02"`
}

func (r *CreateProposalRequest) Normalize() {
	r.ProposalTitle = strings.TrimSpace(r.ProposalTitle)
	r.ProposalPillar = strings.ToUpper(strings.TrimSpace(r.ProposalPillar))
	r.ProposalRegion = strings.TrimSpace(r.ProposalRegion)
	r.ProposalDistrict = strings.TrimSpace(r.ProposalDistrict)
	r.ProposalVillage = strings.TrimSpace(r.ProposalVillage)
	r.ProposalRationale = strings.TrimSpace(r.ProposalRationale)
	r.ProposalObjectives = strings.TrimSpace(r.ProposalObjectives)
	r.ProposalSuccessIndicators = strings.TrimSpace(r.ProposalSuccessIndicators)
	r.ProposalTargetBeneficiaries = strings.TrimSpace(r.ProposalTargetBeneficiaries)
}

// ToModel: status selalu DRAFT; tanggal selesai wajib setelah tanggal mulai.
func (r CreateProposalRequest) ToModel(createdBy uuid.UUID) (model.ProposalModel, error) {
	start, err := ParseDate("proposal_estimated_start_date", r.ProposalEstimatedStartDate)
	if err != nil {
		return model.ProposalModel{}, err
	}
	end, err := ParseDate("proposal_estimated_end_date", r.ProposalEstimatedEndDate)
	if err != nil {
		return model.ProposalModel{}, err
	}
	if !end.After(start) {
		return model.ProposalModel{}, fiber.NewError(fiber.StatusBadRequest, "Tanggal selesai harus setelah tanggal mulai")
	}
	return model.ProposalModel{
		ProposalTitle:               r.ProposalTitle,
		ProposalPillar:              r.ProposalPillar,
		ProposalRegion:              r.ProposalRegion,
		ProposalDistrict:            r.ProposalDistrict,
		ProposalVillage:             r.ProposalVillage,
		ProposalRationale:           r.ProposalRationale,
		ProposalObjectives:          r.ProposalObjectives,
		ProposalSuccessIndicators:   r.ProposalSuccessIndicators,
		ProposalTargetBeneficiaries: r.ProposalTargetBeneficiaries,
		ProposalBeneficiaryCount:    r.ProposalBeneficiaryCount,
		ProposalEstimatedBudget:     r.ProposalEstimatedBudget,
		ProposalEstimatedStartDate:  start,
		ProposalEstimatedEndDate:    end,
		ProposalStatus:              model.ProposalStatusDraft,
		ProposalCreatedBy:           createdBy,
	}, nil
}

/* ============================================
   PATCH (hanya DRAFT) : nil = tidak diubah
============================================ */

type PatchProposalRequest struct {
	ProposalTitle               *string  `json:"proposal_title" validate:"omitempty,min=3,max=200"`
	ProposalPillar              *string  `json:"proposal_pillar" validate:"omitempty,oneof=PENDIDIKAN KESEHATAN LINGKUNGAN EKONOMI SOSIAL_BUDAYA INFRASTRUKTUR"`
	ProposalRegion              *string  `json:"proposal_region" validate:"omitempty,min=1,max=120"`
	ProposalDistrict            *string  `json:"proposal_district" validate:"omitempty,max=120"`
	ProposalVillage             *string  `json:"proposal_village" validate:"omitempty,max=120"`
	ProposalRationale           *string  `json:"proposal_rationale" validate:"omitempty,min=1"`
	ProposalObjectives          *string  `json:"proposal_objectives" validate:"omitempty,min=1"`
	ProposalSuccessIndicators   *string  `json:"proposal_success_indicators"`
	ProposalTargetBeneficiaries *string  `json:"proposal_target_beneficiaries"`
	ProposalBeneficiaryCount    *int     `json:"proposal_beneficiary_count" validate:"omitempty,gte=0"`
	ProposalEstimatedBudget     *float64 `json:"proposal_estimated_budget" validate:"omitempty,gte=0"`
	ProposalEstimatedStartDate  *string  `json:"proposal_estimated_start_date" validate:"omitempty,datetime=2006-01-02"`
	ProposalEstimatedEndDate    *string  `json:"proposal_estimated_end_date" validate:"omitempty,datetime=2006-01-02"`
}

func trimPtr(p *string) {
	if p != nil {
		*p = strings.TrimSpace(*p)
	}
}

func (r *PatchProposalRequest) Normalize() {
	trimPtr(r.ProposalTitle)
	trimPtr(r.ProposalRegion)
	trimPtr(r.ProposalDistrict)
	trimPtr(r.ProposalVillage)
	trimPtr(r.ProposalRationale)
	trimPtr(r.ProposalObjectives)
	trimPtr(r.ProposalSuccessIndicators)
	trimPtr(r.ProposalTargetBeneficiaries)
	if r.ProposalPillar != nil {
		v := strings.ToUpper(strings.TrimSpace(*r.ProposalPillar))
		r.ProposalPillar = &v
	}
}

// Apply menerapkan patch ke salinan proposal dan mengembalikan map kolom yang berubah.
// Kolom wajib tidak boleh dikosongkan; tanggal dicek ulang terhadap nilai gabungan (lama + baru).
func (r PatchProposalRequest) Apply(p *model.ProposalModel) (map[string]any, error) {
	for _, f := range []struct {
		v   *string
		col string
	}{
		{r.ProposalTitle, "proposal_title"},
		{r.ProposalPillar, "proposal_pillar"},
		{r.ProposalRegion, "proposal_region"},
		{r.ProposalRationale, "proposal_rationale"},
		{r.ProposalObjectives, "proposal_objectives"},
	} {
		if f.v != nil && strings.TrimSpace(*f.v) == "" {
			return nil, fiber.NewError(fiber.StatusBadRequest, f.col+" tidak boleh kosong")
		}
	}

	upd := map[string]any{}
	setStr := func(src *string, dst *string, col string) {
		if src != nil {
			*dst = *src
			upd[col] = *src
		}
	}
	setStr(r.ProposalTitle, &p.ProposalTitle, "proposal_title")
	setStr(r.ProposalPillar, &p.ProposalPillar, "proposal_pillar")
	setStr(r.ProposalRegion, &p.ProposalRegion, "proposal_region")
	setStr(r.ProposalDistrict, &p.ProposalDistrict, "proposal_district")
	setStr(r.ProposalVillage, &p.ProposalVillage, "proposal_village")
	setStr(r.ProposalRationale, &p.ProposalRationale, "proposal_rationale")
	setStr(r.ProposalObjectives, &p.ProposalObjectives, "proposal_objectives")
	setStr(r.ProposalSuccessIndicators, &p.ProposalSuccessIndicators, "proposal_success_indicators")
	setStr(r.ProposalTargetBeneficiaries, &p.ProposalTargetBeneficiaries, "proposal_target_beneficiaries")

	if r.ProposalBeneficiaryCount != nil {
		p.ProposalBeneficiaryCount = *r.ProposalBeneficiaryCount
		upd["proposal_beneficiary_count"] = *r.ProposalBeneficiaryCount
	}
	if r.ProposalEstimatedBudget != nil {
		p.ProposalEstimatedBudget = *r.ProposalEstimatedBudget
		upd["proposal_estimated_budget"] = *r.ProposalEstimatedBudget
	}
	if r.ProposalEstimatedStartDate != nil {
		t, err := ParseDate("proposal_estimated_start_date", *r.ProposalEstimatedStartDate)
		if err != nil {
			return nil, err
		}
		p.ProposalEstimatedStartDate = t
		upd["proposal_estimated_start_date"] = t
	}
	if r.ProposalEstimatedEndDate != nil {
		t, err := ParseDate("proposal_estimated_end_date", *r.ProposalEstimatedEndDate)
		if err != nil {
			return nil, err
		}
		p.ProposalEstimatedEndDate = t
		upd["proposal_estimated_end_date"] = t
	}
	if !p.ProposalEstimatedEndDate.After(p.ProposalEstimatedStartDate) {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Tanggal selesai harus setelah tanggal mulai")
	}
	return upd, nil
}

/* ============================================
   LIST filter
============================================ */

type ProposalFilter struct {
	Status    string
	Pillar    string
	Q         string
	CreatedBy *uuid.UUID
	Offset    int
	Limit     int
}

func ProposalFilterFromQuery(c *fiber.Ctx) ProposalFilter {
	return ProposalFilter{
		Status: strings.ToUpper(strings.TrimSpace(c.Query("status"))),
		Pillar: strings.ToUpper(strings.TrimSpace(c.Query("pillar"))),
		Q:      strings.TrimSpace(c.Query("q")),
	}
}
