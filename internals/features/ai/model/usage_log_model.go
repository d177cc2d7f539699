// file: internals/features/ai/model/usage_log_model.go
package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	UsageStatusSuccess = "SUCCESS"
	UsageStatusError   = "ERROR"
)

type UsageLogModel struct {
	UsageLogID           uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:usage_log_id" json:"usage_log_id"`
	UsageLogPromptID     *uuid.UUID `gorm:"type:uuid;column:usage_log_prompt_id" json:"usage_log_prompt_id,omitempty"`
	UsageLogAPIKeyID     *uuid.UUID `gorm:"type:uuid;column:usage_log_api_key_id" json:"usage_log_api_key_id,omitempty"`
	UsageLogUserID       uuid.UUID  `gorm:"type:uuid;not null;index;column:usage_log_user_id" json:"usage_log_user_id"`
	UsageLogProvider     string     `gorm:"type:varchar(20);not null;column:usage_log_provider" json:"usage_log_provider"`
	UsageLogModel        string     `gorm:"type:varchar(120);not null;column:usage_log_model" json:"usage_log_model"`
	UsageLogStatus       string     `gorm:"type:varchar(10);not null;index;column:usage_log_status" json:"usage_log_status"`
	UsageLogLatencyMs    int64      `gorm:"not null;default:0;column:usage_log_latency_ms" json:"usage_log_latency_ms"`
	UsageLogInputTokens  int        `gorm:"not null;default:0;column:usage_log_input_tokens" json:"usage_log_input_tokens"`
	UsageLogOutputTokens int        `gorm:"not null;default:0;column:usage_log_output_tokens" json:"usage_log_output_tokens"`
	UsageLogErrorMessage string     `gorm:"type:text;column:usage_log_error_message" json:"usage_log_error_message,omitempty"`
	UsageLogCreatedAt    time.Time  `gorm:"type:timestamptz;not null;autoCreateTime;index;column:usage_log_created_at" json:"usage_log_created_at"`
}

func (UsageLogModel) TableName() string { return "ai_usage_logs" }

// UsageStats = ringkasan untuk dashboard admin AI.
type UsageStats struct {
	Total        int64   `json:"total"`
	Success      int64   `json:"success"`
	Error        int64   `json:"error"`
	SuccessRate  float64 `json:"success_rate"`
	AvgLatencyMs float64 `json:"avg_latency_ms"`
}

// NewUsageStats: success rate = success / total, 0 bila belum ada data.
func NewUsageStats(success, failed int64, avgLatency float64) UsageStats {
	total := success + failed
	s := UsageStats{Total: total, Success: success, Error: failed, AvgLatencyMs: avgLatency}
	if total > 0 {
		s.SuccessRate = float64(success) / float64(total)
	}
	return s
}
