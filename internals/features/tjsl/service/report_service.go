// file: internals/features/tjsl/service/report_service.go
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"

	"tjsl_backend/internals/features/tjsl/model"
	helperAuth "tjsl_backend/internals/helpers/auth"
	"tjsl_backend/internals/helpers/metrics"
)

// CreateReport menambah laporan ke program BERJALAN. Payload divalidasi sesuai tipe
// dan disimpan dalam bentuk kanonik. Tidak ada jalur update / delete.
func (s *Service) CreateReport(ctx context.Context, actor helperAuth.Actor, programID uuid.UUID, reportType string, raw json.RawMessage) (*model.ReportModel, error) {
	if !model.IsValidReportType(reportType) {
		return nil, fiber.NewError(fiber.StatusBadRequest, "report_type tidak valid")
	}
	p, err := s.loadProgram(ctx, actor, programID)
	if err != nil {
		return nil, err
	}
	if p.ProgramStatus != model.ProgramStatusBerjalan {
		return nil, fiber.NewError(fiber.StatusBadRequest,
			fmt.Sprintf("Program berstatus %s tidak menerima laporan baru", p.ProgramStatus))
	}

	_, normalized, err := model.NormalizePayload(reportType, raw)
	if err != nil {
		return nil, err
	}

	r := model.ReportModel{
		ReportProgramID: programID,
		ReportType:      reportType,
		ReportPayload:   datatypes.JSON(normalized),
		ReportCreatedBy: actor.UserID,
	}
	if err := s.store.CreateReport(ctx, &r); err != nil {
		return nil, err
	}
	metrics.CountReport(reportType)
	return &r, nil
}

// ListReports: terbaru dulu, opsional filter tipe.
func (s *Service) ListReports(ctx context.Context, actor helperAuth.Actor, programID uuid.UUID, reportType string) ([]model.ReportModel, error) {
	if reportType != "" && !model.IsValidReportType(reportType) {
		return nil, fiber.NewError(fiber.StatusBadRequest, "type tidak valid")
	}
	if _, err := s.loadProgram(ctx, actor, programID); err != nil {
		return nil, err
	}
	return s.store.ListReports(ctx, programID, reportType)
}

// IsPayloadError dipakai controller untuk membalas 400 dengan peta field.
func IsPayloadError(err error) (*model.PayloadError, bool) {
	var pe *model.PayloadError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}
