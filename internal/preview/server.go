// Package preview serves the portfolio as a plain HTML page plus PNG renders
// of every canvas animation, for checking content without opening a window.
package preview

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/phanxgames/folio/canvas"
	"github.com/phanxgames/folio/content"
	"github.com/phanxgames/folio/internal/config"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

//go:embed templates/*.html
var templateFS embed.FS

// Render defaults for /canvas/:kind.
const (
	defaultFrameWidth  = 400
	defaultFrameHeight = 200
	defaultFrame       = 60
	frameDT            = 1.0 / 60

	requestIDHeader      = "X-Request-ID"
	shutdownTimeout      = 5 * time.Second
	defaultRenderTimeout = 5 * time.Second
)

// Options configures a Server.
type Options struct {
	Serve  config.ServeConfig
	Seed   uint64
	Year   int
	Logger *zap.Logger
}

// Server renders one portfolio. Requests share only the read-only portfolio
// and the rate limiter; every canvas render gets its own raster.
type Server struct {
	portfolio *content.Portfolio
	opts      Options
	limiter   *rate.Limiter
	engine    *gin.Engine
	log       *zap.Logger
}

// link is the template view of an outbound anchor.
type link struct {
	Label       string
	URL         string
	Placeholder bool
}

// New builds the gin engine for p.
func New(p *content.Portfolio, opts Options) (*Server, error) {
	if p == nil {
		return nil, errors.New("preview: nil portfolio")
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Year == 0 {
		opts.Year = time.Now().Year()
	}
	if opts.Serve.MaxSize <= 0 {
		opts.Serve.MaxSize = 1920
	}
	if opts.Serve.MaxFrame < 0 {
		opts.Serve.MaxFrame = 0
	}
	if opts.Serve.RenderTimeout <= 0 {
		opts.Serve.RenderTimeout = defaultRenderTimeout
	}

	s := &Server{portfolio: p, opts: opts, log: opts.Logger}
	if opts.Serve.RateLimit > 0 {
		s.limiter = rate.NewLimiter(rate.Limit(opts.Serve.RateLimit), max(opts.Serve.Burst, 1))
	}

	tmpl, err := template.New("").Funcs(s.funcs()).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("preview: parse templates: %w", err)
	}

	r := gin.New()
	r.Use(requestID(), s.accessLog(), gin.Recovery())
	r.SetHTMLTemplate(tmpl)

	r.GET("/", s.index)
	r.GET("/content.json", s.contentJSON)
	r.GET("/canvas/:kind", s.limit(), s.canvasFrame)
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	s.engine = r
	return s, nil
}

// Handler exposes the engine, mostly for httptest.
func (s *Server) Handler() http.Handler { return s.engine }

// ListenAndServe listens on the configured address until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.opts.Serve.Addr)
	if err != nil {
		return fmt.Errorf("preview: listen %s: %w", s.opts.Serve.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve answers requests on ln until ctx is done, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	s.log.Info("preview server listening", zap.String("addr", ln.Addr().String()))

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("preview: serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("preview: shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("preview: serve: %w", err)
	}
	s.log.Info("preview server stopped")
	return nil
}

func (s *Server) index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{
		"P":    s.portfolio,
		"Year": s.opts.Year,
	})
}

func (s *Server) contentJSON(c *gin.Context) {
	c.JSON(http.StatusOK, s.portfolio)
}

// canvasFrame renders kind headlessly and answers with a PNG of the given
// frame. Query parameters: w, h (pixels) and frame (ticks at 60 fps). The
// render stops between ticks once the client goes away or the render
// timeout passes.
func (s *Server) canvasFrame(c *gin.Context) {
	kind, err := canvas.ParseKind(strings.TrimSuffix(c.Param("kind"), ".png"))
	if err != nil || kind == canvas.KindNone {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("unknown animation %q", c.Param("kind"))})
		return
	}
	w, errW := intQuery(c, "w", defaultFrameWidth, 1, s.opts.Serve.MaxSize)
	h, errH := intQuery(c, "h", defaultFrameHeight, 1, s.opts.Serve.MaxSize)
	frame, errF := intQuery(c, "frame", defaultFrame, 0, s.opts.Serve.MaxFrame)
	if err := errors.Join(errW, errH, errF); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), s.opts.Serve.RenderTimeout)
	defer cancel()
	r := canvas.NewRaster(w, h)
	err = canvas.RenderFrames(kind, r, s.opts.Seed, frame+1, frameDT, func(int) error {
		return ctx.Err()
	})
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		s.log.Warn("canvas render timed out", zap.Stringer("kind", kind), zap.Int("frame", frame))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "render timed out"})
		return
	case errors.Is(err, context.Canceled):
		s.log.Debug("canvas render canceled", zap.Stringer("kind", kind), zap.Int("frame", frame))
		c.AbortWithStatus(http.StatusServiceUnavailable)
		return
	case err != nil:
		s.log.Error("canvas render failed", zap.Stringer("kind", kind), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "render failed"})
		return
	}
	var buf bytes.Buffer
	if err := r.EncodePNG(&buf); err != nil {
		s.log.Error("canvas encode failed", zap.Stringer("kind", kind), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "encode failed"})
		return
	}
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

func intQuery(c *gin.Context, key string, def, lo, hi int) (int, error) {
	raw, ok := c.GetQuery(key)
	if !ok || raw == "" {
		return min(def, max(hi, lo)), nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not an integer", key, raw)
	}
	if v < lo || v > hi {
		return 0, fmt.Errorf("%s: %d outside [%d, %d]", key, v, lo, hi)
	}
	return v, nil
}

// limit rejects renders over the configured rate with 429.
func (s *Server) limit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.limiter != nil && !s.limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		c.Next()
	}
}

// requestID tags every request with an ID, keeping a valid incoming one.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func (s *Server) accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Debug("request",
			zap.String("request_id", c.GetString("request_id")),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

func (s *Server) funcs() template.FuncMap {
	return template.FuncMap{
		"join":   strings.Join,
		"mailto": func() string { return s.portfolio.MailTo() },
		"link": func(label, url string) link {
			return link{Label: label, URL: url, Placeholder: content.Placeholder(url)}
		},
		"stat": func(st content.Stat) string {
			return st.Prefix + strconv.Itoa(st.Value) + st.Suffix
		},
		"barWidth": func(st content.Stat) int {
			return min(max(st.Value, 0), 100)
		},
		"visual": func(p content.Project) string {
			if k := p.Variant(); k != canvas.KindNone {
				return "/canvas/" + k.String() + "?w=" + strconv.Itoa(defaultFrameWidth*2) + "&h=" + strconv.Itoa(defaultFrameHeight)
			}
			return p.StillImage()
		},
	}
}
