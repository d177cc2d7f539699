// file: internals/features/tjsl/dto/dashboard_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
)

type AtRiskProgram struct {
	ProgramID       uuid.UUID  `json:"program_id"`
	ProgramTitle    string     `json:"program_title"`
	ResponsibleID   uuid.UUID  `json:"program_responsible_user_id"`
	LastReportAt    *time.Time `json:"last_report_at"`
	DaysSinceReport int        `json:"days_since_report"`
}

type DashboardResponse struct {
	ProposalByStatus map[string]int64 `json:"proposal_by_status"`
	ProgramByStatus  map[string]int64 `json:"program_by_status"`
	TotalFinalBudget float64          `json:"total_final_budget"`
	AtRisk           []AtRiskProgram  `json:"at_risk"`
	GeneratedAt      time.Time        `json:"generated_at"`
}
