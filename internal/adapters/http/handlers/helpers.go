package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/jsamuelsen11/portfolio-service/internal/adapters/http/dto"
	"github.com/jsamuelsen11/portfolio-service/internal/domain"
	"github.com/jsamuelsen11/portfolio-service/internal/domain/project"
	"github.com/jsamuelsen11/portfolio-service/internal/platform/logging"
)

// DefaultMaxBodyBytes is the request body cap used when none is configured (1 MB).
const DefaultMaxBodyBytes int64 = 1 << 20

// parseID extracts an int64 path parameter from the chi URL params.
func parseID(r *http.Request, param string) (int64, error) {
	raw := chi.URLParam(r, param)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, &domain.ValidationError{
			Fields: map[string]string{dto.PathParam(param): "must be a valid integer"},
		}
	}
	return id, nil
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.FromContext(r.Context()).ErrorContext(r.Context(), "failed to encode response",
			slog.Any("error", err),
		)
	}
}

// decodeRecord decodes the request body as a raw project record. Numbers are
// kept as json.Number so that integer checks see the literal. The body is
// limited to maxBytes and must hold exactly one JSON document. On failure it
// writes a 400 error response and returns false.
func decodeRecord(w http.ResponseWriter, r *http.Request, maxBytes int64) (project.Record, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	dec := json.NewDecoder(r.Body)
	dec.UseNumber()

	var rec project.Record
	err := dec.Decode(&rec)
	if err == nil {
		err = expectEOF(dec)
	}
	if err != nil {
		dto.WriteErrorResponse(w, r, &domain.ValidationError{
			Fields: map[string]string{"body": bodyErrorMessage(err)},
		})
		return nil, false
	}
	return rec, true
}

var errTrailingData = errors.New("trailing data after JSON document")

// expectEOF fails unless only whitespace follows the decoded document.
func expectEOF(dec *json.Decoder) error {
	err := dec.Decode(&struct{}{})
	switch {
	case errors.Is(err, io.EOF):
		return nil
	case err == nil:
		return errTrailingData
	default:
		return err
	}
}

func bodyErrorMessage(err error) string {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return fmt.Sprintf("exceeds %d bytes", maxErr.Limit)
	}
	return "invalid JSON"
}
