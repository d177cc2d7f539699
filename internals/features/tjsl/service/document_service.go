// file: internals/features/tjsl/service/document_service.go
package service

import (
	"context"
	"log"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"tjsl_backend/internals/constants"
	"tjsl_backend/internals/features/tjsl/model"
	helperAuth "tjsl_backend/internals/helpers/auth"
	helperOSS "tjsl_backend/internals/helpers/oss"
)

// UploadDocument menyimpan file ke OSS lalu mencatat metadata-nya.
// FOTO_KEGIATAN wajib gambar dan di-encode ulang ke WebP; tipe lain disimpan apa adanya.
// Bila insert DB gagal, objek yang sudah terunggah dihapus lagi.
func (s *Service) UploadDocument(ctx context.Context, actor helperAuth.Actor, programID uuid.UUID, name, docType string, fh *multipart.FileHeader) (*model.DocumentModel, error) {
	if s.blob == nil {
		return nil, fiber.NewError(fiber.StatusServiceUnavailable, "Penyimpanan dokumen belum dikonfigurasi")
	}
	docType = strings.ToUpper(strings.TrimSpace(docType))
	if !model.IsValidDocumentType(docType) {
		return nil, fiber.NewError(fiber.StatusBadRequest, "document_type tidak valid")
	}
	if fh == nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "File wajib diunggah")
	}
	if _, err := s.loadProgram(ctx, actor, programID); err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = strings.TrimSuffix(fh.Filename, filepath.Ext(fh.Filename))
	}

	dir := "programs/" + programID.String()
	var (
		obj helperOSS.StoredObject
		err error
	)
	if docType == model.DocumentTypeFotoKegiatan {
		if constants.DetectFileKindFromExt(fh.Filename) != constants.FileKindImage {
			return nil, fiber.NewError(fiber.StatusBadRequest, "FOTO_KEGIATAN harus berupa gambar")
		}
		obj, err = s.blob.UploadImage(ctx, dir, fh)
	} else {
		obj, err = s.blob.UploadRaw(ctx, dir, fh)
	}
	if err != nil {
		return nil, err
	}

	d := model.DocumentModel{
		DocumentProgramID:   programID,
		DocumentName:        name,
		DocumentType:        docType,
		DocumentURL:         obj.URL,
		DocumentObjectKey:   obj.ObjectKey,
		DocumentContentType: obj.ContentType,
		DocumentSizeBytes:   obj.Size,
		DocumentUploadedBy:  actor.UserID,
	}
	if err := s.store.CreateDocument(ctx, &d); err != nil {
		if derr := s.blob.DeleteObject(ctx, obj.ObjectKey); derr != nil {
			log.Printf("[WARN] rollback objek %s gagal: %v", obj.ObjectKey, derr)
		}
		return nil, err
	}
	return &d, nil
}

func (s *Service) ListDocuments(ctx context.Context, actor helperAuth.Actor, programID uuid.UUID) ([]model.DocumentModel, error) {
	if _, err := s.loadProgram(ctx, actor, programID); err != nil {
		return nil, err
	}
	return s.store.ListDocuments(ctx, programID)
}
