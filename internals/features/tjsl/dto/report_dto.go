// file: internals/features/tjsl/dto/report_dto.go
package dto

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"

	"tjsl_backend/internals/features/tjsl/model"
)

type CreateReportRequest struct {
	ReportType    string          `json:"report_type" validate:"required"`
	ReportPayload json.RawMessage `json:"report_payload"`
}

func (r *CreateReportRequest) Normalize() {
	r.ReportType = strings.ToUpper(strings.TrimSpace(r.ReportType))
}

// ReportResponse: payload dikembalikan apa adanya; PayloadValid=false bila
// isi tersimpan tidak lagi cocok dengan skema tipenya.
type ReportResponse struct {
	ReportID        uuid.UUID       `json:"report_id"`
	ReportProgramID uuid.UUID       `json:"report_program_id"`
	ReportType      string          `json:"report_type"`
	ReportPayload   json.RawMessage `json:"report_payload"`
	PayloadValid    bool            `json:"payload_valid"`
	PayloadError    string          `json:"payload_error,omitempty"`
	ReportCreatedBy uuid.UUID       `json:"report_created_by"`
	ReportCreatedAt time.Time       `json:"report_created_at"`
}

func FromReportModel(m model.ReportModel) ReportResponse {
	out := ReportResponse{
		ReportID:        m.ReportID,
		ReportProgramID: m.ReportProgramID,
		ReportType:      m.ReportType,
		ReportPayload:   json.RawMessage(m.ReportPayload),
		PayloadValid:    true,
		ReportCreatedBy: m.ReportCreatedBy,
		ReportCreatedAt: m.ReportCreatedAt,
	}
	if _, err := model.ParsePayload(m.ReportType, m.ReportPayload); err != nil {
		out.PayloadValid = false
		out.PayloadError = err.Error()
	}
	return out
}

func FromReportModels(rows []model.ReportModel) []ReportResponse {
	out := make([]ReportResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, FromReportModel(r))
	}
	return out
}
