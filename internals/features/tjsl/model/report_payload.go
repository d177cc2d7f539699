// file: internals/features/tjsl/model/report_payload.go
package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

/* ============================================
   Tipe laporan (diskriminator)
============================================ */

const (
	ReportTypeProgresRutin        = "PROGRES_RUTIN"
	ReportTypeKeuangan            = "KEUANGAN"
	ReportTypePencapaianMilestone = "PENCAPAIAN_MILESTONE"
	ReportTypeInsidenKendala      = "INSIDEN_KENDALA"
	ReportTypeKegiatanKhusus      = "KEGIATAN_KHUSUS"
)

var ReportTypes = []string{
	ReportTypeProgresRutin,
	ReportTypeKeuangan,
	ReportTypePencapaianMilestone,
	ReportTypeInsidenKendala,
	ReportTypeKegiatanKhusus,
}

func IsValidReportType(s string) bool { return contains(ReportTypes, s) }

const (
	JenisPemasukan   = "pemasukan"
	JenisPengeluaran = "pengeluaran"
)

const payloadDateLayout = "2006-01-02"

/* ============================================
   Payload per tipe
============================================ */

// Payload = satu varian laporan yang sudah lolos validasi.
type Payload interface {
	ReportType() string
	crossCheck() map[string][]string
}

type ProgresRutinPayload struct {
	DeskripsiKegiatan  string   `json:"deskripsi_kegiatan" validate:"required,max=5000"`
	PersentaseProgres  *float64 `json:"persentase_progres" validate:"required,gte=0,lte=100"`
	Kendala            string   `json:"kendala,omitempty" validate:"omitempty,max=5000"`
	RencanaSelanjutnya string   `json:"rencana_selanjutnya,omitempty" validate:"omitempty,max=5000"`
}

type KeuanganPayload struct {
	DeskripsiTransaksi string  `json:"deskripsi_transaksi" validate:"required,max=2000"`
	Jumlah             float64 `json:"jumlah" validate:"gt=0"`
	JenisTransaksi     string  `json:"jenis_transaksi" validate:"required,oneof=pemasukan pengeluaran"`
	BuktiURL           string  `json:"bukti_url,omitempty" validate:"omitempty,url"`
	TanggalTransaksi   string  `json:"tanggal_transaksi,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

type PencapaianMilestonePayload struct {
	NamaMilestone          string   `json:"nama_milestone" validate:"required,max=200"`
	Deskripsi              string   `json:"deskripsi" validate:"required,max=5000"`
	TanggalTarget          string   `json:"tanggal_target" validate:"required,datetime=2006-01-02"`
	PersentasePenyelesaian *float64 `json:"persentase_penyelesaian" validate:"required,gte=0,lte=100"`
	Status                 string   `json:"status" validate:"required,oneof=tercapai terlambat dalam_progres"`
}

type InsidenKendalaPayload struct {
	Judul            string `json:"judul" validate:"required,max=200"`
	Deskripsi        string `json:"deskripsi" validate:"required,max=5000"`
	TingkatKeparahan string `json:"tingkat_keparahan" validate:"required,oneof=rendah sedang tinggi kritis"`
	Dampak           string `json:"dampak" validate:"required,max=5000"`
	StatusPenanganan string `json:"status_penanganan" validate:"required,oneof=belum_ditangani dalam_penanganan selesai"`
	TanggalKejadian  string `json:"tanggal_kejadian" validate:"required,datetime=2006-01-02"`
}

type KegiatanKhususPayload struct {
	NamaKegiatan   string `json:"nama_kegiatan" validate:"required,max=200"`
	Deskripsi      string `json:"deskripsi" validate:"required,max=5000"`
	JenisKegiatan  string `json:"jenis_kegiatan" validate:"required,max=100"`
	Lokasi         string `json:"lokasi" validate:"required,max=200"`
	JumlahPeserta  int    `json:"jumlah_peserta" validate:"gte=1"`
	TanggalMulai   string `json:"tanggal_mulai" validate:"required,datetime=2006-01-02"`
	TanggalSelesai string `json:"tanggal_selesai" validate:"required,datetime=2006-01-02"`
	Hasil          string `json:"hasil" validate:"required,max=5000"`
}

func (ProgresRutinPayload) ReportType() string        { return ReportTypeProgresRutin }
func (KeuanganPayload) ReportType() string            { return ReportTypeKeuangan }
func (PencapaianMilestonePayload) ReportType() string { return ReportTypePencapaianMilestone }
func (InsidenKendalaPayload) ReportType() string      { return ReportTypeInsidenKendala }
func (KegiatanKhususPayload) ReportType() string      { return ReportTypeKegiatanKhusus }

func (ProgresRutinPayload) crossCheck() map[string][]string        { return nil }
func (KeuanganPayload) crossCheck() map[string][]string            { return nil }
func (PencapaianMilestonePayload) crossCheck() map[string][]string { return nil }
func (InsidenKendalaPayload) crossCheck() map[string][]string      { return nil }

func (p KegiatanKhususPayload) crossCheck() map[string][]string {
	mulai, err1 := time.Parse(payloadDateLayout, p.TanggalMulai)
	selesai, err2 := time.Parse(payloadDateLayout, p.TanggalSelesai)
	if err1 == nil && err2 == nil && selesai.Before(mulai) {
		return map[string][]string{"tanggal_selesai": {"gtefield=tanggal_mulai"}}
	}
	return nil
}

/* ============================================
   Decode + validate
============================================ */

var ErrUnknownReportType = errors.New("tipe laporan tidak dikenal")

// PayloadError: payload tidak sesuai skema tipe laporannya.
type PayloadError struct {
	Msg    string
	Fields map[string][]string
}

func (e *PayloadError) Error() string {
	if len(e.Fields) == 0 {
		return e.Msg
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return fmt.Sprintf("%s (%s)", e.Msg, strings.Join(keys, ", "))
}

var payloadValidator = newPayloadValidator()

func newPayloadValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func newPayload(reportType string) (Payload, error) {
	switch reportType {
	case ReportTypeProgresRutin:
		return &ProgresRutinPayload{}, nil
	case ReportTypeKeuangan:
		return &KeuanganPayload{}, nil
	case ReportTypePencapaianMilestone:
		return &PencapaianMilestonePayload{}, nil
	case ReportTypeInsidenKendala:
		return &InsidenKendalaPayload{}, nil
	case ReportTypeKegiatanKhusus:
		return &KegiatanKhususPayload{}, nil
	}
	return nil, ErrUnknownReportType
}

// ParsePayload men-decode raw JSON sesuai tipe laporan (field asing ditolak) lalu memvalidasinya.
// Hasilnya pointer ke struct payload, mis. *KeuanganPayload.
func ParsePayload(reportType string, raw []byte) (Payload, error) {
	p, err := newPayload(reportType)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, &PayloadError{Msg: "payload wajib diisi"}
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(p); err != nil {
		return nil, &PayloadError{Msg: "payload tidak valid: " + err.Error()}
	}
	if dec.More() {
		return nil, &PayloadError{Msg: "payload tidak valid: data berlebih setelah objek JSON"}
	}

	if err := payloadValidator.Struct(p); err != nil {
		var ve validator.ValidationErrors
		if !errors.As(err, &ve) {
			return nil, &PayloadError{Msg: err.Error()}
		}
		fields := make(map[string][]string, len(ve))
		for _, fe := range ve {
			tag := fe.Tag()
			if fe.Param() != "" {
				tag += "=" + fe.Param()
			}
			fields[fe.Field()] = append(fields[fe.Field()], tag)
		}
		return nil, &PayloadError{Msg: "payload " + reportType + " tidak valid", Fields: fields}
	}
	if fields := p.crossCheck(); len(fields) > 0 {
		return nil, &PayloadError{Msg: "payload " + reportType + " tidak valid", Fields: fields}
	}
	return p, nil
}

// NormalizePayload memvalidasi lalu menulis ulang payload dalam bentuk kanonik untuk disimpan.
func NormalizePayload(reportType string, raw []byte) (Payload, []byte, error) {
	p, err := ParsePayload(reportType, raw)
	if err != nil {
		return nil, nil, err
	}
	out, err := json.Marshal(p)
	if err != nil {
		return nil, nil, err
	}
	return p, out, nil
}
