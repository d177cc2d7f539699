// file: internals/features/tjsl/dto/program_dto.go
package dto

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// ConvertProposalRequest: nilai final saat proposal DISETUJUI dijadikan program.
type ConvertProposalRequest struct {
	ProgramFinalBudget       float64 `json:"program_final_budget" validate:"gt=0"`
	ProgramFinalStartDate    string  `json:"program_final_start_date" validate:"required,datetime=2006-01-02"`
	ProgramFinalEndDate      string  `json:"program_final_end_date" validate:"required,datetime=2006-01-02"`
	ProgramResponsibleUserID string  `json:"program_responsible_user_id" validate:"required,uuid"`
}

type ProgramFilter struct {
	Status            string
	Pillar            string
	Q                 string
	ResponsibleUserID *uuid.UUID
	Offset            int
	Limit             int
}

func ProgramFilterFromQuery(c *fiber.Ctx) ProgramFilter {
	return ProgramFilter{
		Status: strings.ToUpper(strings.TrimSpace(c.Query("status"))),
		Pillar: strings.ToUpper(strings.TrimSpace(c.Query("pillar"))),
		Q:      strings.TrimSpace(c.Query("q")),
	}
}
