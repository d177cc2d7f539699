// file: internals/features/tjsl/model/document_model.go
package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	DocumentTypeProposal      = "PROPOSAL"
	DocumentTypeTOR           = "TOR"
	DocumentTypeLPJ           = "LPJ"
	DocumentTypeFotoKegiatan  = "FOTO_KEGIATAN"
	DocumentTypeBuktiKeuangan = "BUKTI_KEUANGAN"
	DocumentTypeLainnya       = "LAINNYA"
)

var DocumentTypes = []string{
	DocumentTypeProposal,
	DocumentTypeTOR,
	DocumentTypeLPJ,
	DocumentTypeFotoKegiatan,
	DocumentTypeBuktiKeuangan,
	DocumentTypeLainnya,
}

func IsValidDocumentType(s string) bool { return contains(DocumentTypes, s) }

type DocumentModel struct {
	DocumentID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:document_id" json:"document_id"`
	DocumentProgramID   uuid.UUID `gorm:"type:uuid;not null;index;column:document_program_id" json:"document_program_id"`
	DocumentName        string    `gorm:"type:varchar(200);not null;column:document_name" json:"document_name"`
	DocumentType        string    `gorm:"type:varchar(30);not null;column:document_type" json:"document_type"`
	DocumentURL         string    `gorm:"type:text;not null;column:document_url" json:"document_url"`
	DocumentObjectKey   string    `gorm:"type:text;column:document_object_key" json:"document_object_key"`
	DocumentContentType string    `gorm:"type:varchar(120);column:document_content_type" json:"document_content_type"`
	DocumentSizeBytes   int64     `gorm:"not null;default:0;column:document_size_bytes" json:"document_size_bytes"`
	DocumentUploadedBy  uuid.UUID `gorm:"type:uuid;not null;column:document_uploaded_by" json:"document_uploaded_by"`
	DocumentCreatedAt   time.Time `gorm:"type:timestamptz;not null;autoCreateTime;column:document_created_at" json:"document_created_at"`
}

func (DocumentModel) TableName() string { return "dokumen_program" }
