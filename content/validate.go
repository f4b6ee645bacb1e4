package content

import (
	"errors"
	"fmt"
	"net/mail"
	"net/url"
	"strings"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("content: invalid portfolio")

// Validate checks the fields the page cannot render without and the syntax of
// every outbound link. All problems are reported together.
func (p *Portfolio) Validate() error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	if strings.TrimSpace(p.Name) == "" {
		fail("name is required")
	}
	if strings.TrimSpace(p.Title) == "" {
		fail("title is required")
	}
	if _, err := mail.ParseAddress(p.Email); err != nil {
		fail("email %q: %v", p.Email, err)
	}
	for i, s := range p.Socials {
		if s.Name == "" {
			fail("socials[%d]: name is required", i)
		}
		if err := checkLink(s.URL, false); err != nil {
			fail("socials[%d] %s: %v", i, s.Name, err)
		}
	}
	for i, e := range p.Experience {
		checkStats(fail, fmt.Sprintf("experience[%d]", i), e.Stats)
	}
	for i, pr := range p.Projects {
		where := fmt.Sprintf("projects[%d]", i)
		if pr.Title == "" {
			fail("%s: title is required", where)
		}
		if _, err := pr.Visual.MarshalText(); err != nil {
			fail("%s: visual: %v", where, err)
		}
		for _, link := range []struct{ name, url string }{{"live_url", pr.LiveURL}, {"repo_url", pr.RepoURL}} {
			if err := checkLink(link.url, true); err != nil {
				fail("%s %s: %v", where, link.name, err)
			}
		}
		checkStats(fail, where, pr.Stats)
	}
	for i, c := range p.Certifications {
		if c.Name == "" {
			fail("certifications[%d]: name is required", i)
		}
		if err := checkLink(c.URL, false); err != nil {
			fail("certifications[%d] %s: %v", i, c.Name, err)
		}
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("%w:\n%w", ErrInvalid, err)
	}
	return nil
}

func checkStats(fail func(string, ...any), where string, stats []Stat) {
	for j, s := range stats {
		if s.Value < 0 {
			fail("%s.stats[%d] %s: value %d is negative", where, j, s.Label, s.Value)
		}
	}
}

// checkLink accepts absolute http(s) URLs. Optional links may be empty or the
// "#" placeholder.
func checkLink(raw string, optional bool) error {
	if optional && (raw == "" || raw == "#") {
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%q is not an http(s) URL", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("%q has no host", raw)
	}
	return nil
}

// Placeholder reports whether a link is absent or the "#" stand-in, in which
// case no anchor is rendered.
func Placeholder(link string) bool {
	return link == "" || link == "#"
}
