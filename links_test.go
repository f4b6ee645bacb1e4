package folio

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckOutbound(t *testing.T) {
	tests := []struct {
		link string
		ok   bool
	}{
		{"https://github.com/example", true},
		{"http://example.com", true},
		{"mailto:someone@example.com", true},
		{"#", false},
		{"", false},
		{"javascript:alert(1)", false},
		{"file:///etc/passwd", false},
		{"://bad", false},
	}
	for _, tt := range tests {
		err := checkOutbound(tt.link)
		assert.Equal(t, tt.ok, err == nil, "%q: %v", tt.link, err)
	}
}

func TestSystemOpenerRejectsBeforeSpawning(t *testing.T) {
	assert.Error(t, SystemOpener{}.Open(context.Background(), "#"))
	assert.Error(t, SystemOpener{}.Open(context.Background(), "ftp://example.com"))
}

func TestOpenerFunc(t *testing.T) {
	var got string
	var o Opener = OpenerFunc(func(_ context.Context, link string) error {
		got = link
		return nil
	})
	assert.NoError(t, o.Open(context.Background(), "https://example.com"))
	assert.Equal(t, "https://example.com", got)
}
