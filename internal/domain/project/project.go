// Package project defines the Project entity and the schema checks applied to
// every untrusted candidate before it becomes one: decoded request bodies and
// rows read back from the store alike.
package project

import "slices"

// Column names shared by every store backend. The order is the select order.
const (
	ColID           = "id"
	ColSlug         = "slug"
	ColName         = "name"
	ColSummary      = "summary"
	ColTech         = "tech"
	ColStatus       = "status"
	ColFeatured     = "featured"
	ColDescription  = "description"
	ColDemoURL      = "demo_url"
	ColRepoURL      = "repo_url"
	ColHeroImageURL = "hero_image_url"
)

// Columns lists every persisted column, id first.
var Columns = []string{
	ColID, ColSlug, ColName, ColSummary, ColTech, ColStatus,
	ColFeatured, ColDescription, ColDemoURL, ColRepoURL, ColHeroImageURL,
}

// Record is a raw, unvalidated project candidate keyed by column name. It is
// what crosses the store and request boundaries before validation.
type Record map[string]any

// Input holds every caller-supplied project field. It is the validated shape
// of create and update bodies.
type Input struct {
	Slug         string
	Name         string
	Summary      string
	Tech         []string
	Status       Status
	Featured     *bool
	Description  *string
	DemoURL      *string
	RepoURL      *string
	HeroImageURL *string
}

// Project is a stored portfolio item. ID is assigned by the store on
// creation and never changes.
type Project struct {
	ID int64
	Input
}

// Record returns the canonical candidate form of the input. Nil optionals
// are omitted.
func (in *Input) Record() Record {
	rec := Record{
		ColSlug:    in.Slug,
		ColName:    in.Name,
		ColSummary: in.Summary,
		ColTech:    slices.Clone(in.Tech),
		ColStatus:  string(in.Status),
	}
	if in.Featured != nil {
		rec[ColFeatured] = *in.Featured
	}
	setIfPresent(rec, ColDescription, in.Description)
	setIfPresent(rec, ColDemoURL, in.DemoURL)
	setIfPresent(rec, ColRepoURL, in.RepoURL)
	setIfPresent(rec, ColHeroImageURL, in.HeroImageURL)
	return rec
}

// ReplacementRow returns every writable column for a full-replace write.
// Nil optionals are written as null and an unset Featured as false.
func (in *Input) ReplacementRow() Record {
	featured := false
	if in.Featured != nil {
		featured = *in.Featured
	}
	tech := in.Tech
	if tech == nil {
		tech = []string{}
	}
	return Record{
		ColSlug:         in.Slug,
		ColName:         in.Name,
		ColSummary:      in.Summary,
		ColTech:         slices.Clone(tech),
		ColStatus:       string(in.Status),
		ColFeatured:     featured,
		ColDescription:  nullable(in.Description),
		ColDemoURL:      nullable(in.DemoURL),
		ColRepoURL:      nullable(in.RepoURL),
		ColHeroImageURL: nullable(in.HeroImageURL),
	}
}

// ToRecord returns the canonical candidate form of a stored project.
// Feeding it back through ValidateRecord yields an equal Project.
func ToRecord(p *Project) Record {
	rec := p.Input.Record()
	rec[ColID] = p.ID
	return rec
}

func setIfPresent(rec Record, key string, v *string) {
	if v != nil {
		rec[key] = *v
	}
}

func nullable(v *string) any {
	if v == nil {
		return nil
	}
	return *v
}
