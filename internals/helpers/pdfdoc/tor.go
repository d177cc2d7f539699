package pdfdoc

import (
	"fmt"
	"time"
)

type TORData struct {
	Title               string
	Pillar              string
	Region              string
	District            string
	Village             string
	Rationale           string
	Objectives          string
	SuccessIndicators   string
	TargetBeneficiaries string
	BeneficiaryCount    int
	EstimatedBudget     float64
	StartDate           time.Time
	EndDate             time.Time
	Status              string
	ProposerName        string
	GeneratedAt         time.Time
}

// RenderTOR menghasilkan PDF Term of Reference dari proposal yang sudah disetujui.
func RenderTOR(in TORData) ([]byte, error) {
	d := newDoc("TOR - " + in.Title)
	d.heading("TERM OF REFERENCE (TOR)")
	d.heading(in.Title)

	d.section("A. Informasi Umum")
	d.field("Pilar", in.Pillar)
	d.field("Wilayah", in.Region)
	d.field("Kecamatan", in.District)
	d.field("Desa/Kelurahan", in.Village)
	d.field("Pengusul", in.ProposerName)
	d.field("Status Proposal", in.Status)

	d.section("B. Latar Belakang")
	d.paragraph(in.Rationale)

	d.section("C. Tujuan")
	d.paragraph(in.Objectives)

	d.section("D. Indikator Keberhasilan")
	d.paragraph(in.SuccessIndicators)

	d.section("E. Penerima Manfaat")
	d.paragraph(in.TargetBeneficiaries)
	d.field("Jumlah Penerima", fmt.Sprintf("%d orang", in.BeneficiaryCount))

	d.section("F. Anggaran & Jadwal")
	d.field("Estimasi Anggaran", FormatRupiah(in.EstimatedBudget))
	d.field("Rencana Mulai", formatDate(in.StartDate))
	d.field("Rencana Selesai", formatDate(in.EndDate))

	d.stamp(in.GeneratedAt)
	return d.bytes()
}
