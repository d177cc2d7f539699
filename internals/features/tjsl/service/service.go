// file: internals/features/tjsl/service/service.go
package service

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	helper "tjsl_backend/internals/helpers"
	helperOSS "tjsl_backend/internals/helpers/oss"
)

// Service memegang aturan lifecycle proposal → program → laporan.
// Semua error yang ditujukan ke client berupa *fiber.Error.
type Service struct {
	store Store
	blob  helperOSS.BlobService
	now   func() time.Time
}

type Option func(*Service)

// WithBlob memasang penyimpanan dokumen (OSS). Tanpa ini upload dokumen ditolak 503.
func WithBlob(b helperOSS.BlobService) Option { return func(s *Service) { s.blob = b } }

// WithClock dipakai test untuk mengunci waktu.
func WithClock(now func() time.Time) Option { return func(s *Service) { s.now = now } }

func New(store Store, opts ...Option) *Service {
	s := &Service{store: store, now: time.Now}
	for _, o := range opts {
		o(s)
	}
	return s
}

func notFound(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fiber.NewError(fiber.StatusNotFound, what+" tidak ditemukan")
	}
	return err
}

var errStatusChanged = fiber.NewError(fiber.StatusConflict, "Status sudah berubah oleh proses lain, muat ulang data")

func pdfFileName(title string) string {
	return helper.Slugify(title, 60)
}
