package pdfdoc

import (
	"fmt"
	"time"
)

type LPJSummary struct {
	TotalIncome        float64
	TotalExpense       float64
	Remaining          float64
	ProgressAverage    float64
	MilestoneByStatus  map[string]int
	IncidentBySeverity map[string]int
	ActivityCount      int
	TotalParticipants  int
	ReportCount        int
}

type LPJReportLine struct {
	Date        time.Time
	Type        string
	Description string
}

type LPJData struct {
	Title               string
	Pillar              string
	Region              string
	District            string
	Village             string
	Objectives          string
	TargetBeneficiaries string
	BeneficiaryCount    int
	ResponsibleName     string
	FinalBudget         float64
	StartDate           time.Time
	EndDate             time.Time
	Summary             LPJSummary
	Reports             []LPJReportLine
	GeneratedAt         time.Time
}

// RenderLPJ menghasilkan Laporan Pertanggungjawaban program yang sudah selesai.
func RenderLPJ(in LPJData) ([]byte, error) {
	d := newDoc("LPJ - " + in.Title)
	d.heading("LAPORAN PERTANGGUNGJAWABAN (LPJ)")
	d.heading(in.Title)

	d.section("A. Identitas Program")
	d.field("Pilar", in.Pillar)
	d.field("Wilayah", in.Region)
	d.field("Kecamatan", in.District)
	d.field("Desa/Kelurahan", in.Village)
	d.field("Penanggung Jawab", in.ResponsibleName)
	d.field("Periode", formatDate(in.StartDate)+" s/d "+formatDate(in.EndDate))
	d.field("Penerima Manfaat", fmt.Sprintf("%d orang", in.BeneficiaryCount))

	d.section("B. Tujuan")
	d.paragraph(in.Objectives)

	s := in.Summary
	d.section("C. Realisasi Keuangan")
	d.field("Anggaran Final", FormatRupiah(in.FinalBudget))
	d.field("Total Pemasukan", FormatRupiah(s.TotalIncome))
	d.field("Total Pengeluaran", FormatRupiah(s.TotalExpense))
	d.field("Sisa Anggaran", FormatRupiah(s.Remaining))

	d.section("D. Capaian Program")
	d.field("Rata-rata Progres", fmt.Sprintf("%.1f%%", s.ProgressAverage))
	d.field("Milestone", sortedCounts(s.MilestoneByStatus))
	d.field("Insiden/Kendala", sortedCounts(s.IncidentBySeverity))
	d.field("Kegiatan Khusus", fmt.Sprintf("%d kegiatan, %d peserta", s.ActivityCount, s.TotalParticipants))
	d.field("Jumlah Laporan", fmt.Sprintf("%d", s.ReportCount))

	if len(in.Reports) > 0 {
		d.section("E. Ringkasan Laporan")
		for _, r := range in.Reports {
			d.field(formatDate(r.Date)+" "+r.Type, r.Description)
		}
	}

	d.stamp(in.GeneratedAt)
	return d.bytes()
}
