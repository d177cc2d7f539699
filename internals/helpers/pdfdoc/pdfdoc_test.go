package pdfdoc

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderTOR(t *testing.T) {
	out, err := RenderTOR(TORData{
		Title:            "Sanitasi Air Bersih Desa Sukamaju",
		Pillar:           "KESEHATAN",
		Region:           "Jawa Barat",
		Rationale:        "Akses air bersih masih terbatas, terutama di musim kemarau.",
		BeneficiaryCount: 120,
		EstimatedBudget:  75000000,
		StartDate:        time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
		EndDate:          time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC),
		Status:           "DISETUJUI",
		GeneratedAt:      time.Now(),
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestRenderLPJ(t *testing.T) {
	out, err := RenderLPJ(LPJData{
		Title:       "Pelatihan UMKM",
		FinalBudget: 1000,
		Summary: LPJSummary{
			TotalIncome:        50,
			TotalExpense:       130,
			Remaining:          870,
			ProgressAverage:    40,
			MilestoneByStatus:  map[string]int{"tercapai": 2},
			IncidentBySeverity: map[string]int{"rendah": 1},
			ReportCount:        5,
		},
		Reports: []LPJReportLine{
			{Date: time.Now(), Type: "KEUANGAN", Description: "Pembelian alat"},
		},
		GeneratedAt: time.Now(),
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestFormatRupiah(t *testing.T) {
	assert.Equal(t, "Rp 0", FormatRupiah(0))
	assert.Equal(t, "Rp 870", FormatRupiah(870))
	assert.Equal(t, "Rp 1.500.001", FormatRupiah(1500000.5))
	assert.Equal(t, "-Rp 25.000", FormatRupiah(-25000))
}
