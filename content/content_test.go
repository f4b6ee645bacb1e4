package content

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/phanxgames/folio/canvas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	p, err := Default()
	require.NoError(t, err)

	assert.Equal(t, "Gaurav Sharma", p.Name)
	assert.Equal(t, "mailto:myspacegaurav7@gmail.com", p.MailTo())
	require.Len(t, p.Socials, 3)
	assert.Equal(t, []string{"linkedin", "github", "kaggle"}, []string{p.Socials[0].Name, p.Socials[1].Name, p.Socials[2].Name})
	assert.Len(t, p.Skills, 3)
	assert.Len(t, p.Experience, 3)
	assert.Len(t, p.Projects, 9)
	assert.Len(t, p.Education, 1)
	assert.Len(t, p.Certifications, 2)
	assert.Len(t, p.Volunteering, 1)

	// insertion order, not id order
	assert.Equal(t, 9, p.Projects[7].ID)
	assert.Equal(t, 8, p.Projects[8].ID)

	first := p.Experience[0].Stats
	require.Len(t, first, 3)
	assert.Equal(t, Stat{Label: "Data Entry Reduced", Value: 70, Prefix: "-", Suffix: "%"}, first[1])
	assert.True(t, first[1].Decrease())
	assert.False(t, first[0].Decrease())
}

func TestDefaultVariants(t *testing.T) {
	p, err := Default()
	require.NoError(t, err)
	want := []canvas.Kind{
		canvas.KindScan, canvas.KindFunnel, canvas.KindDashboard, canvas.KindVoyage,
		canvas.KindTicker, canvas.KindSpectrum, canvas.KindPulse, canvas.KindDocument,
		canvas.KindViews,
	}
	var got []canvas.Kind
	for _, pr := range p.Projects {
		got = append(got, pr.Variant())
	}
	assert.Equal(t, want, got)
}

func TestVariantExplicitTag(t *testing.T) {
	pr := Project{Title: "Titanic Survival", Visual: canvas.KindOrchard}
	assert.Equal(t, canvas.KindOrchard, pr.Variant())
	pr = Project{Title: "Plain"}
	assert.Equal(t, canvas.KindNone, pr.Variant())
}

func TestStillImage(t *testing.T) {
	assert.Equal(t, "p.png", Project{Image: "i.png", Poster: "p.png"}.StillImage())
	assert.Equal(t, "i.png", Project{Image: "i.png"}.StillImage())
}

const minimal = `
name: Ada
title: Engineer
bio: Builds engines.
email: ada@example.com
projects:
  - id: 1
    title: Orchard sim
    description: Trees.
    visual: orchard
`

func TestLoad(t *testing.T) {
	p, err := Load(strings.NewReader(minimal))
	require.NoError(t, err)
	assert.Equal(t, canvas.KindOrchard, p.Projects[0].Visual)
	assert.Empty(t, p.Socials)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"empty", "", "empty document"},
		{"unknown key", minimal + "hobbies: [chess]\n", "hobbies"},
		{"unknown visual", strings.Replace(minimal, "orchard", "hologram", 1), "hologram"},
		{"missing name", strings.Replace(minimal, "name: Ada", "name: ''", 1), "name is required"},
		{"bad email", strings.Replace(minimal, "ada@example.com", "nope", 1), "email"},
		{"negative stat", minimal + "    stats:\n      - {label: Loss, value: -3}\n", "negative"},
		{"bad repo", minimal + "    repo_url: ftp://example.com/x\n", "repo_url"},
		{"bad cert", minimal + "certifications:\n  - {name: X, url: /relative}\n", "certifications[0]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidateJoinsErrors(t *testing.T) {
	p := &Portfolio{Email: "x"}
	err := p.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalid))
	msg := err.Error()
	assert.Contains(t, msg, "name is required")
	assert.Contains(t, msg, "title is required")
	assert.Contains(t, msg, "email")
}

func TestPlaceholderLinks(t *testing.T) {
	assert.True(t, Placeholder(""))
	assert.True(t, Placeholder("#"))
	assert.False(t, Placeholder("https://example.com"))
	assert.NoError(t, checkLink("#", true))
	assert.Error(t, checkLink("#", false))
	assert.Error(t, checkLink("https://", false))
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "site.yaml")
	require.NoError(t, os.WriteFile(path, []byte(minimal), 0o644))
	p, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Ada", p.Name)

	_, err = LoadFile(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestEncodeRoundTrip(t *testing.T) {
	p, err := Default()
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, p.Encode(&buf))
	q, err := Load(&buf)
	require.NoError(t, err)
	assert.Equal(t, p, q)
}

func TestDefaultDocumentIsCopy(t *testing.T) {
	a := DefaultDocument()
	a[0] = '!'
	assert.NotEqual(t, a[0], DefaultDocument()[0])
}
