package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePayload_Keuangan(t *testing.T) {
	p, err := ParsePayload(ReportTypeKeuangan, []byte(`{"deskripsi_transaksi":"Beli semen","jumlah":250000,"jenis_transaksi":"pengeluaran"}`))
	require.NoError(t, err)
	k, ok := p.(*KeuanganPayload)
	require.True(t, ok)
	assert.Equal(t, 250000.0, k.Jumlah)
	assert.Equal(t, JenisPengeluaran, k.JenisTransaksi)
}

func TestParsePayload_Rejections(t *testing.T) {
	cases := []struct {
		name  string
		typ   string
		raw   string
		field string
	}{
		{"zero amount", ReportTypeKeuangan, `{"deskripsi_transaksi":"x","jumlah":0,"jenis_transaksi":"pemasukan"}`, "jumlah"},
		{"bad direction", ReportTypeKeuangan, `{"deskripsi_transaksi":"x","jumlah":5,"jenis_transaksi":"hibah"}`, "jenis_transaksi"},
		{"bad evidence url", ReportTypeKeuangan, `{"deskripsi_transaksi":"x","jumlah":5,"jenis_transaksi":"pemasukan","bukti_url":"bukan url"}`, "bukti_url"},
		{"progress over 100", ReportTypeProgresRutin, `{"deskripsi_kegiatan":"x","persentase_progres":120}`, "persentase_progres"},
		{"progress missing", ReportTypeProgresRutin, `{"deskripsi_kegiatan":"x"}`, "persentase_progres"},
		{"milestone bad status", ReportTypePencapaianMilestone, `{"nama_milestone":"m","deskripsi":"d","tanggal_target":"2024-05-01","persentase_penyelesaian":50,"status":"batal"}`, "status"},
		{"milestone bad date", ReportTypePencapaianMilestone, `{"nama_milestone":"m","deskripsi":"d","tanggal_target":"01-05-2024","persentase_penyelesaian":50,"status":"tercapai"}`, "tanggal_target"},
		{"incident severity", ReportTypeInsidenKendala, `{"judul":"j","deskripsi":"d","tingkat_keparahan":"parah","dampak":"x","status_penanganan":"selesai","tanggal_kejadian":"2024-02-02"}`, "tingkat_keparahan"},
		{"activity no participants", ReportTypeKegiatanKhusus, `{"nama_kegiatan":"n","deskripsi":"d","jenis_kegiatan":"pelatihan","lokasi":"balai","jumlah_peserta":0,"tanggal_mulai":"2024-01-01","tanggal_selesai":"2024-01-02","hasil":"ok"}`, "jumlah_peserta"},
		{"activity ends before start", ReportTypeKegiatanKhusus, `{"nama_kegiatan":"n","deskripsi":"d","jenis_kegiatan":"pelatihan","lokasi":"balai","jumlah_peserta":3,"tanggal_mulai":"2024-01-05","tanggal_selesai":"2024-01-02","hasil":"ok"}`, "tanggal_selesai"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParsePayload(tc.typ, []byte(tc.raw))
			var pe *PayloadError
			require.ErrorAs(t, err, &pe)
			assert.Contains(t, pe.Fields, tc.field)
		})
	}
}

func TestParsePayload_UnknownFieldAndType(t *testing.T) {
	_, err := ParsePayload(ReportTypeProgresRutin, []byte(`{"deskripsi_kegiatan":"x","persentase_progres":10,"extra":1}`))
	var pe *PayloadError
	require.ErrorAs(t, err, &pe)
	assert.Contains(t, pe.Msg, "extra")

	_, err = ParsePayload("DOKUMENTASI", []byte(`{}`))
	assert.ErrorIs(t, err, ErrUnknownReportType)

	_, err = ParsePayload(ReportTypeKeuangan, nil)
	require.ErrorAs(t, err, &pe)
}

func TestNormalizePayload_ZeroProgressIsValid(t *testing.T) {
	_, out, err := NormalizePayload(ReportTypeProgresRutin, []byte(`{"deskripsi_kegiatan":"  mulai  ","persentase_progres":0}`))
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(out, &m))
	assert.Equal(t, 0.0, m["persentase_progres"])
	assert.NotContains(t, m, "kendala")
}
