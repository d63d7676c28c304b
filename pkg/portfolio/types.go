package portfolio

import (
	"errors"
	"fmt"
	"net/http"
)

// Status values accepted by the API.
const (
	StatusCompleted  = "Completed"
	StatusInProgress = "In progress"
	StatusOngoing    = "Ongoing"
	StatusPrototype  = "Prototype"
)

// ProjectInput is the writable part of a project. Optional fields left nil
// are omitted from the request; on update they are cleared.
type ProjectInput struct {
	Slug         string   `json:"slug"`
	Name         string   `json:"name"`
	Summary      string   `json:"summary"`
	Tech         []string `json:"tech"`
	Status       string   `json:"status"`
	Featured     *bool    `json:"featured,omitempty"`
	Description  *string  `json:"description,omitempty"`
	DemoURL      *string  `json:"demo_url,omitempty"`
	RepoURL      *string  `json:"repo_url,omitempty"`
	HeroImageURL *string  `json:"hero_image_url,omitempty"`
}

// Project is a stored project.
type Project struct {
	ID int64 `json:"id"`
	ProjectInput
}

// StatusError reports a non-2xx response.
type StatusError struct {
	Op         string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("failed to %s: %d", e.Op, e.StatusCode)
}

// IsNotFound reports whether err is a 404 StatusError.
func IsNotFound(err error) bool {
	return hasStatus(err, http.StatusNotFound)
}

// IsForbidden reports whether err is a 403 StatusError.
func IsForbidden(err error) bool {
	return hasStatus(err, http.StatusForbidden)
}

func hasStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == code
}
