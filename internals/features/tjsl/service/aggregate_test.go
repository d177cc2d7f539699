package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tjsl_backend/internals/features/tjsl/model"
)

func report(t time.Time, typ, payload string) model.ReportModel {
	return model.ReportModel{
		ReportID:        uuid.New(),
		ReportType:      typ,
		ReportPayload:   []byte(payload),
		ReportCreatedAt: t,
	}
}

func TestAggregate_Financial(t *testing.T) {
	now := time.Now()
	reports := []model.ReportModel{
		report(now, model.ReportTypeKeuangan, `{"deskripsi_transaksi":"a","jumlah":100,"jenis_transaksi":"pengeluaran"}`),
		report(now, model.ReportTypeKeuangan, `{"deskripsi_transaksi":"b","jumlah":50,"jenis_transaksi":"pemasukan"}`),
		report(now, model.ReportTypeKeuangan, `{"deskripsi_transaksi":"c","jumlah":30,"jenis_transaksi":"pengeluaran"}`),
	}
	s := Aggregate(1000, reports)
	assert.Equal(t, 130.0, s.TotalExpense)
	assert.Equal(t, 50.0, s.TotalIncome)
	assert.Equal(t, 870.0, s.Remaining)
	assert.Equal(t, 3, s.ReportCount)
}

func TestAggregate_ProgressAverage(t *testing.T) {
	now := time.Now()
	s := Aggregate(0, []model.ReportModel{
		report(now, model.ReportTypeProgresRutin, `{"deskripsi_kegiatan":"a","persentase_progres":20}`),
		report(now, model.ReportTypeProgresRutin, `{"deskripsi_kegiatan":"b","persentase_progres":40}`),
		report(now, model.ReportTypeProgresRutin, `{"deskripsi_kegiatan":"c","persentase_progres":60}`),
	})
	assert.Equal(t, 40.0, s.ProgressAverage)
	assert.Equal(t, 3, s.ProgressCount)

	empty := Aggregate(500, nil)
	assert.Equal(t, 0.0, empty.ProgressAverage)
	assert.Equal(t, 500.0, empty.Remaining)
	assert.Nil(t, empty.LastReportAt)
}

func TestAggregate_CountsAndInvalid(t *testing.T) {
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	s := Aggregate(0, []model.ReportModel{
		report(base, model.ReportTypePencapaianMilestone, `{"nama_milestone":"m1","deskripsi":"d","tanggal_target":"2024-04-01","persentase_penyelesaian":100,"status":"tercapai"}`),
		report(base, model.ReportTypePencapaianMilestone, `{"nama_milestone":"m2","deskripsi":"d","tanggal_target":"2024-04-01","persentase_penyelesaian":60,"status":"terlambat"}`),
		report(base, model.ReportTypeInsidenKendala, `{"judul":"banjir","deskripsi":"d","tingkat_keparahan":"tinggi","dampak":"x","status_penanganan":"selesai","tanggal_kejadian":"2024-03-03"}`),
		report(base.Add(48*time.Hour), model.ReportTypeKegiatanKhusus, `{"nama_kegiatan":"n","deskripsi":"d","jenis_kegiatan":"pelatihan","lokasi":"balai","jumlah_peserta":25,"tanggal_mulai":"2024-01-01","tanggal_selesai":"2024-01-02","hasil":"ok"}`),
		report(base, "MASALAH_KENDALA", `{"judul":"legacy"}`),
	})
	assert.Equal(t, map[string]int{"tercapai": 1, "terlambat": 1}, s.MilestoneByStatus)
	assert.Equal(t, map[string]int{"tinggi": 1}, s.IncidentBySeverity)
	assert.Equal(t, 1, s.ActivityCount)
	assert.Equal(t, 25, s.TotalParticipants)
	assert.Equal(t, 1, s.InvalidReports)
	require.NotNil(t, s.LastReportAt)
	assert.Equal(t, base.Add(48*time.Hour), *s.LastReportAt)

	lines := reportLines([]model.ReportModel{
		report(base.Add(time.Hour), model.ReportTypeKeuangan, `{"deskripsi_transaksi":"semen","jumlah":1500,"jenis_transaksi":"pengeluaran"}`),
		report(base, model.ReportTypeProgresRutin, `{"deskripsi_kegiatan":"survei","persentase_progres":10}`),
	})
	require.Len(t, lines, 2)
	assert.Equal(t, "survei (10%)", lines[0].Description)
	assert.Equal(t, "pengeluaran: Rp 1.500 semen", lines[1].Description)
}
