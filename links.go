package folio

import (
	"context"
	"fmt"
	"net/url"
	"os/exec"
	"runtime"

	"github.com/phanxgames/folio/content"
)

// Opener opens an outbound link in a new browsing context, away from the
// running page.
type Opener interface {
	Open(ctx context.Context, link string) error
}

// OpenerFunc adapts a function to Opener.
type OpenerFunc func(ctx context.Context, link string) error

func (f OpenerFunc) Open(ctx context.Context, link string) error { return f(ctx, link) }

// SystemOpener hands links to the desktop's default handler. Only http,
// https and mailto links are passed on.
type SystemOpener struct{}

func (SystemOpener) Open(ctx context.Context, link string) error {
	if err := checkOutbound(link); err != nil {
		return err
	}
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.CommandContext(ctx, "rundll32", "url.dll,FileProtocolHandler", link)
	case "darwin":
		cmd = exec.CommandContext(ctx, "open", link)
	default:
		cmd = exec.CommandContext(ctx, "xdg-open", link)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("folio: open %s: %w", link, err)
	}
	go cmd.Wait() //nolint:errcheck
	return nil
}

// checkOutbound rejects placeholders and schemes other than http, https and
// mailto.
func checkOutbound(link string) error {
	if content.Placeholder(link) {
		return fmt.Errorf("folio: %q is a placeholder link", link)
	}
	u, err := url.Parse(link)
	if err != nil {
		return fmt.Errorf("folio: open %q: %w", link, err)
	}
	switch u.Scheme {
	case "http", "https", "mailto":
		return nil
	}
	return fmt.Errorf("folio: open %q: unsupported scheme %q", link, u.Scheme)
}
