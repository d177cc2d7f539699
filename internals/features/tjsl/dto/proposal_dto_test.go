package dto

import (
	"errors"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tjsl_backend/internals/features/tjsl/model"
)

func strPtr(s string) *string { return &s }

func draftProposal() model.ProposalModel {
	return model.ProposalModel{
		ProposalTitle:              "Bank Sampah Desa",
		ProposalPillar:             model.PillarLingkungan,
		ProposalRegion:             "Jawa Tengah",
		ProposalRationale:          "Sampah rumah tangga belum terkelola",
		ProposalObjectives:         "Mengurangi sampah ke TPA",
		ProposalEstimatedStartDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		ProposalEstimatedEndDate:   time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
		ProposalStatus:             model.ProposalStatusDraft,
	}
}

func TestPatchProposal_BlankRequiredFieldsRejectedByValidator(t *testing.T) {
	v := validator.New()
	cases := map[string]PatchProposalRequest{
		"region":     {ProposalRegion: strPtr("   ")},
		"rationale":  {ProposalRationale: strPtr("   ")},
		"objectives": {ProposalObjectives: strPtr("\t")},
		"title":      {ProposalTitle: strPtr("  ")},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			req.Normalize()
			assert.Error(t, v.Struct(req))
		})
	}

	ok := PatchProposalRequest{ProposalRegion: strPtr(" NTB "), ProposalDistrict: strPtr("")}
	ok.Normalize()
	assert.NoError(t, v.Struct(ok))
}

func TestPatchProposal_ApplyRejectsBlankRequiredFields(t *testing.T) {
	p := draftProposal()
	req := PatchProposalRequest{
		ProposalRegion:     strPtr("   "),
		ProposalRationale:  strPtr("   "),
		ProposalObjectives: strPtr("   "),
	}
	req.Normalize()

	upd, err := req.Apply(&p)
	require.Error(t, err)
	var fe *fiber.Error
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, fiber.StatusBadRequest, fe.Code)
	assert.Nil(t, upd)
	assert.Equal(t, "Jawa Tengah", p.ProposalRegion)
	assert.Equal(t, "Mengurangi sampah ke TPA", p.ProposalObjectives)
}

func TestPatchProposal_ApplyOptionalFieldsMayBeCleared(t *testing.T) {
	p := draftProposal()
	p.ProposalVillage = "Sukamaju"
	req := PatchProposalRequest{ProposalVillage: strPtr("")}

	upd, err := req.Apply(&p)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"proposal_village": ""}, upd)
	assert.Empty(t, p.ProposalVillage)
}

func TestPatchProposal_ApplyChecksMergedDates(t *testing.T) {
	p := draftProposal()
	_, err := PatchProposalRequest{ProposalEstimatedEndDate: strPtr("2023-12-01")}.Apply(&p)
	require.Error(t, err)

	p = draftProposal()
	upd, err := PatchProposalRequest{ProposalEstimatedStartDate: strPtr("2024-02-01")}.Apply(&p)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), upd["proposal_estimated_start_date"])
}
