// file: internals/features/tjsl/service/aggregate.go
package service

import (
	"fmt"
	"sort"
	"time"

	"tjsl_backend/internals/features/tjsl/model"
	"tjsl_backend/internals/helpers/pdfdoc"
)

// Summary = hasil agregasi laporan satu program.
type Summary struct {
	TotalIncome        float64        `json:"total_pemasukan"`
	TotalExpense       float64        `json:"total_pengeluaran"`
	Remaining          float64        `json:"sisa_anggaran"`
	ProgressAverage    float64        `json:"rata_rata_progres"`
	ProgressCount      int            `json:"jumlah_progres_rutin"`
	MilestoneByStatus  map[string]int `json:"milestone_per_status"`
	IncidentBySeverity map[string]int `json:"insiden_per_keparahan"`
	ActivityCount      int            `json:"jumlah_kegiatan_khusus"`
	TotalParticipants  int            `json:"total_peserta"`
	ReportCount        int            `json:"jumlah_laporan"`
	InvalidReports     int            `json:"laporan_tidak_valid"`
	LastReportAt       *time.Time     `json:"laporan_terakhir,omitempty"`
}

// Aggregate menghitung ringkasan dari laporan program.
// Hanya lima tipe baku yang dihitung; payload yang tidak lolos validasi dilewati
// dan dicatat di InvalidReports.
func Aggregate(finalBudget float64, reports []model.ReportModel) Summary {
	out := Summary{
		MilestoneByStatus:  map[string]int{},
		IncidentBySeverity: map[string]int{},
		ReportCount:        len(reports),
	}

	var progressSum float64
	for _, r := range reports {
		if out.LastReportAt == nil || r.ReportCreatedAt.After(*out.LastReportAt) {
			t := r.ReportCreatedAt
			out.LastReportAt = &t
		}

		p, err := model.ParsePayload(r.ReportType, r.ReportPayload)
		if err != nil {
			out.InvalidReports++
			continue
		}
		switch v := p.(type) {
		case *model.KeuanganPayload:
			if v.JenisTransaksi == model.JenisPengeluaran {
				out.TotalExpense += v.Jumlah
			} else {
				out.TotalIncome += v.Jumlah
			}
		case *model.ProgresRutinPayload:
			progressSum += *v.PersentaseProgres
			out.ProgressCount++
		case *model.PencapaianMilestonePayload:
			out.MilestoneByStatus[v.Status]++
		case *model.InsidenKendalaPayload:
			out.IncidentBySeverity[v.TingkatKeparahan]++
		case *model.KegiatanKhususPayload:
			out.ActivityCount++
			out.TotalParticipants += v.JumlahPeserta
		}
	}

	out.Remaining = finalBudget - out.TotalExpense
	if out.ProgressCount > 0 {
		out.ProgressAverage = progressSum / float64(out.ProgressCount)
	}
	return out
}

func (s Summary) toLPJ() pdfdoc.LPJSummary {
	return pdfdoc.LPJSummary{
		TotalIncome:        s.TotalIncome,
		TotalExpense:       s.TotalExpense,
		Remaining:          s.Remaining,
		ProgressAverage:    s.ProgressAverage,
		MilestoneByStatus:  s.MilestoneByStatus,
		IncidentBySeverity: s.IncidentBySeverity,
		ActivityCount:      s.ActivityCount,
		TotalParticipants:  s.TotalParticipants,
		ReportCount:        s.ReportCount,
	}
}

// reportLines: satu baris per laporan valid, urut kronologis.
func reportLines(reports []model.ReportModel) []pdfdoc.LPJReportLine {
	lines := make([]pdfdoc.LPJReportLine, 0, len(reports))
	for _, r := range reports {
		p, err := model.ParsePayload(r.ReportType, r.ReportPayload)
		if err != nil {
			continue
		}
		lines = append(lines, pdfdoc.LPJReportLine{
			Date:        r.ReportCreatedAt,
			Type:        r.ReportType,
			Description: describe(p),
		})
	}
	sort.SliceStable(lines, func(i, j int) bool { return lines[i].Date.Before(lines[j].Date) })
	return lines
}

func describe(p model.Payload) string {
	switch v := p.(type) {
	case *model.ProgresRutinPayload:
		return fmt.Sprintf("%s (%.0f%%)", v.DeskripsiKegiatan, *v.PersentaseProgres)
	case *model.KeuanganPayload:
		return fmt.Sprintf("%s: %s %s", v.JenisTransaksi, pdfdoc.FormatRupiah(v.Jumlah), v.DeskripsiTransaksi)
	case *model.PencapaianMilestonePayload:
		return fmt.Sprintf("%s [%s]", v.NamaMilestone, v.Status)
	case *model.InsidenKendalaPayload:
		return fmt.Sprintf("%s [%s, %s]", v.Judul, v.TingkatKeparahan, v.StatusPenanganan)
	case *model.KegiatanKhususPayload:
		return fmt.Sprintf("%s di %s (%d peserta)", v.NamaKegiatan, v.Lokasi, v.JumlahPeserta)
	}
	return ""
}
