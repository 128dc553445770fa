// Package content holds the static data the portfolio renders.
//
// The default content is embedded from content.yaml. A file on disk with the
// same shape replaces it when configured.
package content

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"slices"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid content")

//go:embed content.yaml
var defaultYAML []byte

//go:embed content.schema.json
var schemaJSON []byte

const schemaURL = "schema://content.json"

var compiledSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaJSON))
	if err != nil {
		return nil, fmt.Errorf("parse content schema: %w", err)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource(schemaURL, doc); err != nil {
		return nil, fmt.Errorf("add content schema: %w", err)
	}
	return c.Compile(schemaURL)
})

type Skill struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

type Education struct {
	YearRange   string `yaml:"year_range"`
	Title       string `yaml:"title"`
	Institution string `yaml:"institution"`
}

type Certificate struct {
	Year  string `yaml:"year"`
	Title string `yaml:"title"`
	// Note names the issuing institution, or is empty.
	Note string `yaml:"note"`
}

type Service struct {
	Icon        string `yaml:"icon"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

type Project struct {
	Title string `yaml:"title"`
	Tag   string `yaml:"tag"`
	Video string `yaml:"video"`
}

type Social struct {
	Network string `yaml:"network"`
	URL     string `yaml:"url"`
}

// NavItem is one entry of the navigation bar; ID doubles as the section id.
type NavItem struct {
	ID    string `yaml:"id"`
	Label string `yaml:"label"`
}

type Profile struct {
	Name       string   `yaml:"name"`
	Role       string   `yaml:"role"`
	Tagline    string   `yaml:"tagline"`
	About      string   `yaml:"about"`
	Resume     string   `yaml:"resume"`
	Logo       string   `yaml:"logo"`
	Portrait   string   `yaml:"portrait"`
	Email      string   `yaml:"email"`
	Phone      string   `yaml:"phone"`
	GitHub     string   `yaml:"github"`
	Socials    []Social `yaml:"socials"`
	IconScript string   `yaml:"icon_script"`
	Footer     string   `yaml:"footer"`
}

// Content is everything the page shows. Values are never mutated after
// loading.
type Content struct {
	Profile      Profile       `yaml:"profile"`
	Nav          []NavItem     `yaml:"nav"`
	Skills       []Skill       `yaml:"skills"`
	Education    []Education   `yaml:"education"`
	Certificates []Certificate `yaml:"certificates"`
	Services     []Service     `yaml:"services"`
	Projects     []Project     `yaml:"projects"`
}

// Default returns the embedded content.
func Default() (*Content, error) {
	return Parse(defaultYAML)
}

// MustDefault is Default for callers that cannot recover from a broken
// binary.
func MustDefault() *Content {
	c, err := Default()
	if err != nil {
		panic(err)
	}
	return c
}

// Load reads content from path, or the embedded default when path is empty.
func Load(path string) (*Content, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading content: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse decodes YAML content, checks its shape against the embedded JSON
// schema and then validates it.
func Parse(data []byte) (*Content, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing content: %w", err)
	}
	if err := checkSchema(raw); err != nil {
		return nil, err
	}
	var c Content
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing content: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// checkSchema validates a decoded YAML document. The schema library works on
// JSON values, so the document goes through encoding/json first.
func checkSchema(raw any) error {
	sch, err := compiledSchema()
	if err != nil {
		return err
	}
	b, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(b))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if err := sch.Validate(inst); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// Validate checks the invariants the page relies on.
func (c *Content) Validate() error {
	if c.Profile.Name == "" {
		return fmt.Errorf("%w: profile name is empty", ErrInvalid)
	}
	if len(c.Nav) == 0 {
		return fmt.Errorf("%w: no navigation entries", ErrInvalid)
	}
	seen := make(map[string]bool, len(c.Nav))
	for _, n := range c.Nav {
		if n.ID == "" {
			return fmt.Errorf("%w: navigation entry %q has no id", ErrInvalid, n.Label)
		}
		if seen[n.ID] {
			return fmt.Errorf("%w: duplicate navigation id %q", ErrInvalid, n.ID)
		}
		seen[n.ID] = true
	}
	reveal := c.RevealIDs()
	for _, n := range c.Nav {
		if slices.Contains(reveal, n.ID) {
			return fmt.Errorf("%w: navigation id %q is also the id of an animated element", ErrInvalid, n.ID)
		}
	}
	for i, p := range c.Projects {
		if p.Title == "" || p.Video == "" {
			return fmt.Errorf("%w: project %d needs a title and a video", ErrInvalid, i+1)
		}
	}
	return nil
}

// Project returns the project at index i.
func (c *Content) Project(i int) (Project, bool) {
	if i < 0 || i >= len(c.Projects) {
		return Project{}, false
	}
	return c.Projects[i], true
}

// SectionIDs returns the navigation ids in order.
func (c *Content) SectionIDs() []string {
	ids := make([]string, len(c.Nav))
	for i, n := range c.Nav {
		ids[i] = n.ID
	}
	return ids
}

// RevealIDs lists the ids of elements that fade in on scroll.
func (c *Content) RevealIDs() []string {
	ids := []string{"hero", "about-portrait", "about-body", "services-heading", "portfolio-heading", "contact-info", "contact-form"}
	for i := range c.Services {
		ids = append(ids, fmt.Sprintf("service-%d", i))
	}
	for i := range c.Projects {
		ids = append(ids, fmt.Sprintf("project-%d", i))
	}
	return ids
}
