package project

import (
	"encoding/json"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/jsamuelsen11/portfolio-service/internal/domain"
)

const (
	msgRequired     = "is required"
	msgForbidden    = "must not be provided"
	msgInvalidURL   = "invalid URL format"
	msgNotInteger   = "must be an integer"
	msgOutOfRange   = "integer out of range"
	typeString      = "string"
	typeBoolean     = "boolean"
	typeStringArray = "array of strings"
)

// ValidateRecord checks a raw candidate against the stored Project shape and
// returns the typed Project. It fails with a *domain.ValidationError when a
// required field is missing or mistyped, status is not one of the accepted
// literals, or a URL field is neither null nor an absolute URL. Unknown keys
// are ignored.
func ValidateRecord(candidate Record) (Project, error) {
	c := newChecker(candidate, "", nil)
	p := c.project()
	if err := c.err(); err != nil {
		return Project{}, err
	}
	return p, nil
}

// ValidateRecordList applies ValidateRecord to every element. Failures from
// all elements are reported together, keyed as "[index].field"; on failure
// no list is returned. An empty input yields an empty, non-nil list.
func ValidateRecordList(candidates []Record) ([]Project, error) {
	fields := make(map[string]string)
	projects := make([]Project, 0, len(candidates))

	for i, candidate := range candidates {
		c := newChecker(candidate, fmt.Sprintf("[%d].", i), fields)
		projects = append(projects, c.project())
	}

	if len(fields) > 0 {
		return nil, &domain.ValidationError{Fields: fields}
	}
	return projects, nil
}

// ValidateCreateInput checks a create or update body. It applies the same
// rules as ValidateRecord except that the id key must be absent.
func ValidateCreateInput(candidate Record) (Input, error) {
	c := newChecker(candidate, "", nil)
	if _, ok := candidate[ColID]; ok {
		c.fail(ColID, msgForbidden)
	}
	in := c.input()
	if err := c.err(); err != nil {
		return Input{}, err
	}
	return in, nil
}

// checker accumulates field failures for one candidate. Several checkers may
// share a fields map so that list validation reports every element.
type checker struct {
	rec    Record
	prefix string
	fields map[string]string
}

func newChecker(rec Record, prefix string, fields map[string]string) *checker {
	if fields == nil {
		fields = make(map[string]string)
	}
	return &checker{rec: rec, prefix: prefix, fields: fields}
}

func (c *checker) fail(key, msg string) {
	c.fields[c.prefix+key] = msg
}

func (c *checker) err() error {
	if len(c.fields) > 0 {
		return &domain.ValidationError{Fields: c.fields}
	}
	return nil
}

func (c *checker) project() Project {
	if c.rec == nil {
		c.fail("record", "must be an object")
		return Project{}
	}
	return Project{
		ID:    c.integer(ColID),
		Input: c.input(),
	}
}

func (c *checker) input() Input {
	if c.rec == nil {
		c.fail("record", "must be an object")
		return Input{}
	}
	return Input{
		Slug:         c.requiredString(ColSlug),
		Name:         c.requiredString(ColName),
		Summary:      c.requiredString(ColSummary),
		Tech:         c.stringArray(ColTech),
		Status:       c.status(ColStatus),
		Featured:     c.optionalBool(ColFeatured),
		Description:  c.optionalString(ColDescription),
		DemoURL:      c.optionalURL(ColDemoURL),
		RepoURL:      c.optionalURL(ColRepoURL),
		HeroImageURL: c.optionalURL(ColHeroImageURL),
	}
}

func (c *checker) requiredString(key string) string {
	raw, ok := c.rec[key]
	if !ok {
		c.fail(key, msgRequired)
		return ""
	}
	s, ok := raw.(string)
	if !ok {
		c.fail(key, mistyped(typeString, raw))
		return ""
	}
	return s
}

// optionalString treats an explicit null the same as an absent key; nullable
// text columns read back as nil.
func (c *checker) optionalString(key string) *string {
	raw, ok := c.rec[key]
	if !ok || raw == nil {
		return nil
	}
	s, ok := raw.(string)
	if !ok {
		c.fail(key, mistyped(typeString, raw))
		return nil
	}
	return &s
}

func (c *checker) optionalBool(key string) *bool {
	raw, ok := c.rec[key]
	if !ok || raw == nil {
		return nil
	}
	b, ok := raw.(bool)
	if !ok {
		c.fail(key, mistyped(typeBoolean, raw))
		return nil
	}
	return &b
}

func (c *checker) optionalURL(key string) *string {
	s := c.optionalString(key)
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if !isAbsoluteURL(trimmed) {
		c.fail(key, msgInvalidURL)
		return nil
	}
	return &trimmed
}

func (c *checker) status(key string) Status {
	s := Status(c.requiredString(key))
	if _, present := c.fields[c.prefix+key]; present {
		return ""
	}
	if !s.IsValid() {
		c.fail(key, fmt.Sprintf("invalid: %q, want one of %q", string(s), Statuses))
		return ""
	}
	return s
}

func (c *checker) stringArray(key string) []string {
	raw, ok := c.rec[key]
	if !ok {
		c.fail(key, msgRequired)
		return nil
	}

	switch v := raw.(type) {
	case []string:
		out := make([]string, len(v))
		copy(out, v)
		return out
	case []any:
		out := make([]string, 0, len(v))
		for i, elem := range v {
			s, ok := elem.(string)
			if !ok {
				c.fail(fmt.Sprintf("%s[%d]", key, i), mistyped(typeString, elem))
				continue
			}
			out = append(out, s)
		}
		return out
	default:
		c.fail(key, mistyped(typeStringArray, raw))
		return nil
	}
}

func (c *checker) integer(key string) int64 {
	raw, ok := c.rec[key]
	if !ok {
		c.fail(key, msgRequired)
		return 0
	}

	n, msg := toInt64(raw)
	if msg != "" {
		c.fail(key, msg)
		return 0
	}
	return n
}

// toInt64 accepts the integer encodings produced by encoding/json (with and
// without UseNumber) and by database drivers.
func toInt64(raw any) (int64, string) {
	switch v := raw.(type) {
	case int64:
		return v, ""
	case int:
		return int64(v), ""
	case int32:
		return int64(v), ""
	case int16:
		return int64(v), ""
	case int8:
		return int64(v), ""
	case uint32:
		return int64(v), ""
	case uint16:
		return int64(v), ""
	case uint8:
		return int64(v), ""
	case uint:
		if uint64(v) > math.MaxInt64 {
			return 0, msgOutOfRange
		}
		return int64(v), ""
	case uint64:
		if v > math.MaxInt64 {
			return 0, msgOutOfRange
		}
		return int64(v), ""
	case float64:
		return floatToInt64(v)
	case float32:
		return floatToInt64(float64(v))
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return n, ""
		}
		f, err := v.Float64()
		if err != nil {
			return 0, msgNotInteger
		}
		return floatToInt64(f)
	default:
		return 0, mistyped("integer", raw)
	}
}

// maxExactFloat is the largest float64 that still represents every integer
// below it exactly.
const maxExactFloat = 1 << 53

func floatToInt64(f float64) (int64, string) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, msgNotInteger
	}
	if math.Abs(f) > maxExactFloat {
		return 0, msgOutOfRange
	}
	return int64(f), ""
}

// isAbsoluteURL reports whether s parses as an absolute URL: a scheme plus
// an authority, an opaque part ("mailto:me@example.com") or a path
// ("file:///tmp/x.png", "myapp:/path"). Ports above 65535 are rejected.
func isAbsoluteURL(s string) bool {
	if s == "" {
		return false
	}
	u, err := url.Parse(s)
	if err != nil || u.Scheme == "" {
		return false
	}
	if port := u.Port(); port != "" {
		if _, err := strconv.ParseUint(port, 10, 16); err != nil {
			return false
		}
	}
	return u.Host != "" || u.Opaque != "" || u.Path != ""
}

func mistyped(want string, got any) string {
	return fmt.Sprintf("expected %s, got %s", want, describe(got))
}

func describe(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return typeString
	case bool:
		return typeBoolean
	case json.Number, float64, float32, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return "number"
	case []any, []string:
		return "array"
	case map[string]any, Record:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
