package dto

import (
	"cmp"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"github.com/jsamuelsen11/portfolio-service/internal/domain"
)

// problemJSON is the RFC 9457 media type.
const problemJSON = "application/problem+json"

// ErrorResponse represents an RFC 9457 Problem Details response.
type ErrorResponse struct {
	Type     string        `json:"type"`
	Title    string        `json:"title"`
	Status   int           `json:"status"`
	Detail   string        `json:"detail,omitempty"`
	Instance string        `json:"instance,omitempty"`
	Errors   []ErrorDetail `json:"errors,omitempty"`
}

// ErrorDetail is one rejected field. Location is "body.<field>",
// "path.<param>" or "body" for a malformed document.
type ErrorDetail struct {
	Location string `json:"location"`
	Message  string `json:"message"`
	Value    any    `json:"value,omitempty"`
}

// problemKind maps a domain sentinel to its status and the detail clients
// see. An empty detail means the wrapped error text is shown.
type problemKind struct {
	target error
	status int
	detail string
}

// problemKinds is checked in order; anything unmatched is a 500 with no
// detail.
var problemKinds = []problemKind{
	{target: domain.ErrValidation, status: http.StatusBadRequest},
	{target: domain.ErrNotFound, status: http.StatusNotFound, detail: "project not found"},
	{target: domain.ErrForbidden, status: http.StatusForbidden, detail: "admin access required"},
}

const detailInvalidProject = "invalid project data"

// NewErrorResponse builds the problem document for err. Field errors from a
// *domain.ValidationError are listed sorted by location.
func NewErrorResponse(r *http.Request, err error) ErrorResponse {
	resp := newProblem(r, http.StatusInternalServerError, "")

	for _, kind := range problemKinds {
		if !errors.Is(err, kind.target) {
			continue
		}
		resp = newProblem(r, kind.status, cmp.Or(kind.detail, err.Error()))
		break
	}

	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		resp.Detail = detailInvalidProject
		resp.Errors = fieldDetails(verr.Fields)
	}

	return resp
}

// WriteErrorResponse writes the problem document for a domain error.
func WriteErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	writeProblem(w, r, NewErrorResponse(r, err))
}

// WriteProblem writes a problem document for a status with no domain error
// behind it, such as 429 from the rate limiter.
func WriteProblem(w http.ResponseWriter, r *http.Request, status int, detail string) {
	writeProblem(w, r, newProblem(r, status, detail))
}

func newProblem(r *http.Request, status int, detail string) ErrorResponse {
	return ErrorResponse{
		Type:     "about:blank",
		Title:    http.StatusText(status),
		Status:   status,
		Detail:   detail,
		Instance: r.RequestURI,
	}
}

func writeProblem(w http.ResponseWriter, r *http.Request, resp ErrorResponse) {
	w.Header().Set("Content-Type", problemJSON)
	w.WriteHeader(resp.Status)

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.ErrorContext(r.Context(), "failed to encode problem response",
			slog.Int("status", resp.Status),
			slog.Any("error", err),
		)
	}
}

const (
	pathPrefix = "path."
	bodyField  = "body"
)

// PathParam returns the validation field key for a malformed path parameter.
func PathParam(name string) string {
	return pathPrefix + name
}

func fieldDetails(fields map[string]string) []ErrorDetail {
	details := make([]ErrorDetail, 0, len(fields))
	for field, msg := range fields {
		details = append(details, ErrorDetail{Location: fieldLocation(field), Message: msg})
	}
	slices.SortFunc(details, func(a, b ErrorDetail) int {
		return strings.Compare(a.Location, b.Location)
	})
	return details
}

// fieldLocation leaves path parameters and the whole-body key alone and
// prefixes everything else with "body.".
func fieldLocation(field string) string {
	if field == bodyField || strings.HasPrefix(field, pathPrefix) {
		return field
	}
	return bodyField + "." + field
}
