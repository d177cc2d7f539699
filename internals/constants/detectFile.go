package constants

import (
	"path/filepath"
	"strings"
)

const (
	FileKindImage  = "image"
	FileKindPDF    = "pdf"
	FileKindOffice = "office"
	FileKindOther  = "other"
)

// DetectFileKindFromExt dipakai upload dokumen program untuk memilih jalur simpan.
func DetectFileKindFromExt(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))

	switch ext {
	case ".png", ".jpg", ".jpeg", ".webp":
		return FileKindImage
	case ".pdf":
		return FileKindPDF
	case ".doc", ".docx", ".xls", ".xlsx", ".ppt", ".pptx":
		return FileKindOffice
	default:
		return FileKindOther
	}
}
