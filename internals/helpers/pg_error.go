package helper

import (
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

// --- PG error mapping (pgx/libpq) ---
// ok=false artinya bukan error constraint yang dikenal.
func MapPGError(err error) (int, string, bool) {
	if err == nil {
		return 0, "", false
	}
	// pgx
	var pgxErr *pgconn.PgError
	if errors.As(err, &pgxErr) {
		return mapPGCode(pgxErr.Code)
	}
	// lib/pq
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return mapPGCode(string(pqErr.Code))
	}
	return 0, "", false
}

func mapPGCode(code string) (int, string, bool) {
	switch code {
	case "23505":
		return http.StatusConflict, "Data duplikat (unique violation).", true
	case "23503":
		return http.StatusBadRequest, "Referensi tidak ditemukan (FK violation).", true
	case "23514":
		return http.StatusBadRequest, "Data melanggar constraint (check violation).", true
	case "22P02":
		return http.StatusBadRequest, "Format data tidak valid.", true
	default:
		return 0, "", false
	}
}

func IsUniqueViolation(err error) bool {
	status, _, ok := MapPGError(err)
	return ok && status == http.StatusConflict
}
