// Package dto provides HTTP response data transfer objects and RFC 9457
// Problem Details error responses for the inbound HTTP adapter layer.
// Request bodies are not mapped to DTOs; they are decoded into raw records
// and validated by the domain.
package dto

import (
	"github.com/jsamuelsen11/portfolio-service/internal/domain/project"
)

// ProjectResponse represents a single project in HTTP responses. Optional
// fields are omitted when unset.
type ProjectResponse struct {
	ID           int64    `json:"id"`
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

// ToProjectResponse converts a domain Project entity to an HTTP response DTO.
func ToProjectResponse(p *project.Project) ProjectResponse {
	tech := p.Tech
	if tech == nil {
		tech = []string{}
	}
	return ProjectResponse{
		ID:           p.ID,
		Slug:         p.Slug,
		Name:         p.Name,
		Summary:      p.Summary,
		Tech:         tech,
		Status:       p.Status.String(),
		Featured:     p.Featured,
		Description:  p.Description,
		DemoURL:      p.DemoURL,
		RepoURL:      p.RepoURL,
		HeroImageURL: p.HeroImageURL,
	}
}

// ToProjectListResponse converts a slice of domain Project entities to the
// bare JSON array the list endpoint returns. An empty input yields an empty
// array, never null.
func ToProjectListResponse(projects []project.Project) []ProjectResponse {
	items := make([]ProjectResponse, len(projects))
	for i := range projects {
		items[i] = ToProjectResponse(&projects[i])
	}
	return items
}
