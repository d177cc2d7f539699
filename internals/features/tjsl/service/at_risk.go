// file: internals/features/tjsl/service/at_risk.go
package service

import (
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"tjsl_backend/internals/features/tjsl/dto"
	"tjsl_backend/internals/features/tjsl/model"
)

const (
	AtRiskThresholdDays = 30
	msPerDay            = 86_400_000
)

// DaysSince = ceil(|now - ref| / 1 hari), dihitung dalam milidetik.
func DaysSince(now, ref time.Time) int {
	ms := now.Sub(ref).Milliseconds()
	if ms < 0 {
		ms = -ms
	}
	return int(math.Ceil(float64(ms) / msPerDay))
}

// IsAtRisk: acuan = laporan terakhir, atau tanggal dibuat bila belum ada laporan.
func IsAtRisk(now, createdAt time.Time, lastReport *time.Time) (bool, int) {
	ref := createdAt
	if lastReport != nil {
		ref = *lastReport
	}
	days := DaysSince(now, ref)
	return days > AtRiskThresholdDays, days
}

// FindAtRisk hanya menilai program BERJALAN. Urut dari yang paling lama tanpa laporan.
func FindAtRisk(now time.Time, programs []model.ProgramModel, last map[uuid.UUID]time.Time) []dto.AtRiskProgram {
	out := []dto.AtRiskProgram{}
	for _, p := range programs {
		if p.ProgramStatus != model.ProgramStatusBerjalan {
			continue
		}
		var lastAt *time.Time
		if t, ok := last[p.ProgramID]; ok {
			tt := t
			lastAt = &tt
		}
		risky, days := IsAtRisk(now, p.ProgramCreatedAt, lastAt)
		if !risky {
			continue
		}
		out = append(out, dto.AtRiskProgram{
			ProgramID:       p.ProgramID,
			ProgramTitle:    p.ProgramTitle,
			ResponsibleID:   p.ProgramResponsibleUserID,
			LastReportAt:    lastAt,
			DaysSinceReport: days,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].DaysSinceReport > out[j].DaysSinceReport })
	return out
}
