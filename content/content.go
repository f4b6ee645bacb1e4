// Package content holds the portfolio configuration: the single read-only
// document every page section is built from.
package content

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"

	"github.com/phanxgames/folio/canvas"
	"gopkg.in/yaml.v3"
)

//go:embed portfolio.yaml
var defaultDocument []byte

// Portfolio is the whole site configuration. It is decoded once and never
// mutated afterwards; pass it by pointer and treat it as immutable.
type Portfolio struct {
	Name     string `yaml:"name" json:"name"`
	Title    string `yaml:"title" json:"title"`
	Bio      string `yaml:"bio" json:"bio"`
	Email    string `yaml:"email" json:"email"`
	Location string `yaml:"location,omitempty" json:"location,omitempty"`
	Phone    string `yaml:"phone,omitempty" json:"phone,omitempty"`

	Socials        []Social        `yaml:"socials,omitempty" json:"socials,omitempty"`
	Skills         []SkillCategory `yaml:"skills,omitempty" json:"skills,omitempty"`
	Experience     []Experience    `yaml:"experience,omitempty" json:"experience,omitempty"`
	Projects       []Project       `yaml:"projects,omitempty" json:"projects,omitempty"`
	Education      []Education     `yaml:"education,omitempty" json:"education,omitempty"`
	Certifications []Certification `yaml:"certifications,omitempty" json:"certifications,omitempty"`
	Volunteering   []Volunteering  `yaml:"volunteering,omitempty" json:"volunteering,omitempty"`
}

// Social is one profile link, shown in the hero and footer in list order.
type Social struct {
	Name string `yaml:"name" json:"name"`
	URL  string `yaml:"url" json:"url"`
}

type SkillCategory struct {
	Category string   `yaml:"category" json:"category"`
	Items    []string `yaml:"items" json:"items"`
}

// Stat is a labeled number rendered by a counter as Prefix+Value+Suffix.
type Stat struct {
	Label  string `yaml:"label" json:"label"`
	Value  int    `yaml:"value" json:"value"`
	Prefix string `yaml:"prefix,omitempty" json:"prefix,omitempty"`
	Suffix string `yaml:"suffix,omitempty" json:"suffix,omitempty"`
}

// Decrease reports whether the stat describes a reduction ("-" prefix).
func (s Stat) Decrease() bool { return s.Prefix == "-" }

type Experience struct {
	ID          int      `yaml:"id" json:"id"`
	Role        string   `yaml:"role" json:"role"`
	Company     string   `yaml:"company" json:"company"`
	Period      string   `yaml:"period" json:"period"`
	Description string   `yaml:"description" json:"description"`
	Details     []string `yaml:"details,omitempty" json:"details,omitempty"`
	Stats       []Stat   `yaml:"stats,omitempty" json:"stats,omitempty"`
}

// Project is one project card. Visual names the canvas animation explicitly;
// when empty the title keyword table decides.
type Project struct {
	ID          int         `yaml:"id" json:"id"`
	Title       string      `yaml:"title" json:"title"`
	Description string      `yaml:"description" json:"description"`
	Tech        []string    `yaml:"tech,omitempty" json:"tech,omitempty"`
	Image       string      `yaml:"image,omitempty" json:"image,omitempty"`
	Video       string      `yaml:"video,omitempty" json:"video,omitempty"`
	Poster      string      `yaml:"poster,omitempty" json:"poster,omitempty"`
	LiveURL     string      `yaml:"live_url,omitempty" json:"liveUrl,omitempty"`
	RepoURL     string      `yaml:"repo_url,omitempty" json:"repoUrl,omitempty"`
	Visual      canvas.Kind `yaml:"visual,omitempty" json:"visual,omitempty"`
	Stats       []Stat      `yaml:"stats,omitempty" json:"stats,omitempty"`
}

// Variant returns the animation mounted on the project's card. KindNone means
// the card shows its static image.
func (p Project) Variant() canvas.Kind {
	if p.Visual != canvas.KindNone {
		return p.Visual
	}
	return canvas.KindForTitle(p.Title)
}

// StillImage returns the image shown when no animation is mounted, preferring
// the video poster.
func (p Project) StillImage() string {
	if p.Poster != "" {
		return p.Poster
	}
	return p.Image
}

type Education struct {
	ID          int    `yaml:"id" json:"id"`
	Degree      string `yaml:"degree" json:"degree"`
	Institution string `yaml:"institution" json:"institution"`
	Period      string `yaml:"period" json:"period"`
	Score       string `yaml:"score,omitempty" json:"score,omitempty"`
}

type Certification struct {
	Name string `yaml:"name" json:"name"`
	URL  string `yaml:"url" json:"url"`
}

type Volunteering struct {
	ID           int    `yaml:"id" json:"id"`
	Role         string `yaml:"role" json:"role"`
	Organization string `yaml:"organization" json:"organization"`
	Period       string `yaml:"period" json:"period"`
	Description  string `yaml:"description" json:"description"`
	Category     string `yaml:"category,omitempty" json:"category,omitempty"`
}

// MailTo returns the contact link for the configured address.
func (p *Portfolio) MailTo() string {
	return "mailto:" + p.Email
}

// Default decodes the portfolio bundled with the binary.
func Default() (*Portfolio, error) {
	return Load(bytes.NewReader(defaultDocument))
}

// DefaultDocument returns a copy of the bundled YAML source.
func DefaultDocument() []byte {
	return bytes.Clone(defaultDocument)
}

// Load decodes and validates a portfolio document. Unknown keys are rejected
// so typos surface instead of silently dropping content.
func Load(r io.Reader) (*Portfolio, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var p Portfolio
	if err := dec.Decode(&p); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("%w: empty document", ErrInvalid)
		}
		return nil, fmt.Errorf("content: decode: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// LoadFile reads a portfolio from path.
func LoadFile(path string) (*Portfolio, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("content: %w", err)
	}
	defer f.Close()
	p, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Encode writes p as YAML with two-space indentation.
func (p *Portfolio) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(p); err != nil {
		return fmt.Errorf("content: encode: %w", err)
	}
	return enc.Close()
}
