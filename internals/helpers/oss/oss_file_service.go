package helper

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
)

/*
BlobService adalah facade upload/hapus yang seragam untuk controller dokumen program.
  - UploadImage: foto kegiatan → re-encode WebP
  - UploadRaw: pdf/scan/office apa adanya
  - DeleteObject: rollback kalau insert metadata ke DB gagal
*/

var ErrFileTooLarge = errors.New("file terlalu besar")

type StoredObject struct {
	URL         string
	ObjectKey   string
	ContentType string
	Size        int64
}

type BlobService interface {
	UploadImage(ctx context.Context, dir string, fh *multipart.FileHeader) (StoredObject, error)
	UploadRaw(ctx context.Context, dir string, fh *multipart.FileHeader) (StoredObject, error)
	DeleteObject(ctx context.Context, key string) error
}

// --------------------------------------------------
// Implementasi berbasis Aliyun OSS (OSSService)
// --------------------------------------------------

type OSSBlobService struct {
	svc  *OSSService
	webp WebPOptions
}

// Buat instance dari ENV. prefix opsional (contoh: "tjsl/")
func NewOSSBlobServiceFromEnv(prefix string) (*OSSBlobService, error) {
	s, err := NewOSSServiceFromEnv(prefix)
	if err != nil {
		return nil, err
	}
	return &OSSBlobService{svc: s, webp: defaultWebPOptionsFromEnv()}, nil
}

func (b *OSSBlobService) UploadImage(ctx context.Context, dir string, fh *multipart.FileHeader) (StoredObject, error) {
	data, err := readFormFile(fh)
	if err != nil {
		return StoredObject{}, mapUploadErr(err)
	}
	webpData, err := ConvertToWebP(bytes.NewReader(data), fh.Filename, b.webp)
	if err != nil {
		if errors.Is(err, errUnsupportedImage) {
			return StoredObject{}, fiber.NewError(fiber.StatusUnsupportedMediaType, "Format gambar tidak didukung (pakai jpg/png/webp)")
		}
		return StoredObject{}, err
	}

	base := strings.TrimSuffix(fh.Filename, filepath.Ext(fh.Filename))
	key := BuildObjectKey(b.svc.Prefix, dir, base+".webp", time.Now())
	if err := b.svc.PutBytes(ctx, key, webpData, "image/webp"); err != nil {
		return StoredObject{}, fmt.Errorf("oss put: %w", err)
	}
	return StoredObject{
		URL:         b.svc.PublicURL(key),
		ObjectKey:   key,
		ContentType: "image/webp",
		Size:        int64(len(webpData)),
	}, nil
}

func (b *OSSBlobService) UploadRaw(ctx context.Context, dir string, fh *multipart.FileHeader) (StoredObject, error) {
	data, err := readFormFile(fh)
	if err != nil {
		return StoredObject{}, mapUploadErr(err)
	}
	ct := detectContentType(data, fh.Filename)
	key := BuildObjectKey(b.svc.Prefix, dir, fh.Filename, time.Now())
	if err := b.svc.PutBytes(ctx, key, data, ct); err != nil {
		return StoredObject{}, fmt.Errorf("oss put: %w", err)
	}
	return StoredObject{
		URL:         b.svc.PublicURL(key),
		ObjectKey:   key,
		ContentType: ct,
		Size:        int64(len(data)),
	}, nil
}

func (b *OSSBlobService) DeleteObject(ctx context.Context, key string) error {
	return b.svc.DeleteObject(ctx, key)
}

func mapUploadErr(err error) error {
	if errors.Is(err, ErrFileTooLarge) {
		return fiber.NewError(fiber.StatusRequestEntityTooLarge, err.Error())
	}
	return fiber.NewError(fiber.StatusBadRequest, err.Error())
}

// GetFormFile ambil file multipart dari salah satu nama field.
func GetFormFile(c *fiber.Ctx, fieldNames ...string) (*multipart.FileHeader, error) {
	if len(fieldNames) == 0 {
		fieldNames = []string{"file"}
	}
	for _, n := range fieldNames {
		if fh, err := c.FormFile(n); err == nil && fh != nil {
			return fh, nil
		}
	}
	return nil, fiber.NewError(fiber.StatusBadRequest, "File tidak ditemukan (field: "+strings.Join(fieldNames, "/")+")")
}

// --------------------------------------------------
// Mock untuk test (tanpa jaringan)
// --------------------------------------------------

type MockBlobService struct {
	mu      sync.Mutex
	BaseURL string
	Uploads []StoredObject
	Deleted []string
	FailPut error
}

func (m *MockBlobService) put(dir, filename, ct string, size int64) (StoredObject, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailPut != nil {
		return StoredObject{}, m.FailPut
	}
	key := BuildObjectKey("mock", dir, filename, time.Now())
	obj := StoredObject{URL: strings.TrimRight(m.BaseURL, "/") + "/" + key, ObjectKey: key, ContentType: ct, Size: size}
	m.Uploads = append(m.Uploads, obj)
	return obj, nil
}

func (m *MockBlobService) UploadImage(ctx context.Context, dir string, fh *multipart.FileHeader) (StoredObject, error) {
	base := strings.TrimSuffix(fh.Filename, filepath.Ext(fh.Filename))
	return m.put(dir, base+".webp", "image/webp", fh.Size)
}

func (m *MockBlobService) UploadRaw(ctx context.Context, dir string, fh *multipart.FileHeader) (StoredObject, error) {
	ct := fh.Header.Get("Content-Type")
	if ct == "" {
		ct = "application/octet-stream"
	}
	return m.put(dir, fh.Filename, ct, fh.Size)
}

func (m *MockBlobService) DeleteObject(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Deleted = append(m.Deleted, key)
	return nil
}
