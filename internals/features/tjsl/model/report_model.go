// file: internals/features/tjsl/model/report_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ReportModel = laporan progres (append-only). Payload bebas skema di DB,
// divalidasi per tipe lewat ParsePayload sebelum insert & setelah dibaca.
type ReportModel struct {
	ReportID        uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:report_id" json:"report_id"`
	ReportProgramID uuid.UUID      `gorm:"type:uuid;not null;index:idx_report_program_created,priority:1;column:report_program_id" json:"report_program_id"`
	ReportType      string         `gorm:"type:varchar(30);not null;index;column:report_type" json:"report_type"`
	ReportPayload   datatypes.JSON `gorm:"type:jsonb;not null;column:report_payload" json:"report_payload"`
	ReportCreatedBy uuid.UUID      `gorm:"type:uuid;not null;column:report_created_by" json:"report_created_by"`
	ReportCreatedAt time.Time      `gorm:"type:timestamptz;not null;autoCreateTime;index:idx_report_program_created,priority:2,sort:desc;column:report_created_at" json:"report_created_at"`
}

func (ReportModel) TableName() string { return "laporan_progres" }
