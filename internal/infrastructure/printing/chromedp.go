package printing

import (
	"context"
	"errors"
	"fmt"
	"html"
	"net/url"
	"strings"
	"time"

	"github.com/assetops/backend/internal/application/report"
	"github.com/assetops/backend/internal/infrastructure/telemetry"
	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/fetch"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

const defaultChromeTimeout = 30 * time.Second

// pageFooter prints "page / total" centred at the bottom
const pageFooter = `<div style="font-size:8px;width:100%;text-align:center;">` +
	`<span class="pageNumber"></span> / <span class="totalPages"></span></div>`

// ChromedpConfig contains configuration for the chromedp renderer
type ChromedpConfig struct {
	// ExecPath is the Chrome binary; empty lets chromedp find one
	ExecPath string
	// RemoteURL is the DevTools URL of a running browser; it takes
	// precedence over ExecPath
	RemoteURL string
	// NoSandbox runs Chrome without sandbox (required for Docker/root)
	NoSandbox      bool
	DefaultTimeout time.Duration
	Logger         *zap.Logger
}

// ChromedpRenderer renders HTML to PDF using Chrome DevTools Protocol
type ChromedpRenderer struct {
	config      ChromedpConfig
	logger      *zap.Logger
	allocCtx    context.Context
	allocCancel context.CancelFunc
}

// NewChromedpRenderer creates a renderer. The browser starts lazily on the
// first render.
func NewChromedpRenderer(config ChromedpConfig) *ChromedpRenderer {
	if config.DefaultTimeout <= 0 {
		config.DefaultTimeout = defaultChromeTimeout
	}
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := &ChromedpRenderer{config: config, logger: logger}
	if config.RemoteURL != "" {
		r.allocCtx, r.allocCancel = chromedp.NewRemoteAllocator(context.Background(), config.RemoteURL)
	} else {
		r.allocCtx, r.allocCancel = chromedp.NewExecAllocator(context.Background(), r.allocatorOptions()...)
	}
	return r
}

func (r *ChromedpRenderer) allocatorOptions() []chromedp.ExecAllocatorOption {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-first-run", true),
		chromedp.Flag("disable-default-apps", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-background-networking", true),
		chromedp.Flag("disable-sync", true),
		chromedp.Flag("font-render-hinting", "none"),
	)
	if r.config.NoSandbox {
		opts = append(opts, chromedp.Flag("no-sandbox", true))
	}
	if r.config.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(r.config.ExecPath))
	}
	return opts
}

// PrintPDF prints a report document on landscape A4 with page numbers
func (r *ChromedpRenderer) PrintPDF(ctx context.Context, title, htmlDoc string) ([]byte, error) {
	result, err := r.Render(ctx, &RenderRequest{
		HTML:        htmlDoc,
		Title:       title,
		PaperSize:   PaperA4,
		Orientation: OrientationLandscape,
		Margins:     DefaultMargins(),
		FooterHTML:  pageFooter,
	})
	if err != nil {
		return nil, err
	}
	return result.PDFData, nil
}

// Render converts HTML content to PDF
func (r *ChromedpRenderer) Render(ctx context.Context, req *RenderRequest) (result *RenderResult, err error) {
	ctx, span := telemetry.StartSpan(ctx, "printing.render_pdf")
	defer func() { telemetry.End(span, err) }()
	return r.render(ctx, req)
}

func (r *ChromedpRenderer) render(ctx context.Context, req *RenderRequest) (*RenderResult, error) {
	if req == nil || strings.TrimSpace(req.HTML) == "" {
		return nil, NewRenderError(ErrCodeInvalidHTML, "HTML content is empty", nil)
	}
	if req.PaperSize == (PaperSize{}) {
		req.PaperSize = PaperA4
	}

	start := time.Now()
	timeout := req.Timeout
	if timeout <= 0 {
		timeout = r.config.DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	browserCtx, browserCancel := chromedp.NewContext(r.allocCtx,
		chromedp.WithLogf(func(format string, args ...interface{}) {
			r.logger.Debug(fmt.Sprintf(format, args...))
		}),
	)
	defer browserCancel()
	// Stop the tab when the caller's context ends
	stop := context.AfterFunc(ctx, browserCancel)
	defer stop()

	doc := buildCompleteHTML(req)
	params := buildPrintParams(req)
	r.blockNetwork(browserCtx)

	var pdfData []byte
	err := chromedp.Run(browserCtx,
		fetch.Enable(),
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, doc).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			data, _, err := params.Do(ctx)
			if err != nil {
				return err
			}
			pdfData = data
			return nil
		}),
	)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, NewRenderError(ErrCodeRenderTimeout, fmt.Sprintf("PDF rendering timed out after %v", timeout), err)
		}
		r.logger.Error("chromedp rendering failed", zap.Error(err))
		return nil, NewRenderError(ErrCodeRenderFailed, "chromedp execution failed", err)
	}
	if len(pdfData) == 0 {
		return nil, NewRenderError(ErrCodeRenderFailed, "generated PDF is empty", nil)
	}

	result := &RenderResult{
		PDFData:        pdfData,
		PageCount:      estimatePageCount(pdfData),
		RenderDuration: time.Since(start),
	}
	r.logger.Info("PDF rendered",
		zap.Int("bytes", len(pdfData)),
		zap.Int("pages", result.PageCount),
		zap.Duration("duration", result.RenderDuration))
	return result, nil
}

// blockNetwork fails every request the document makes except inline data,
// so tenant-authored templates cannot reach hosts from the server's network.
func (r *ChromedpRenderer) blockNetwork(browserCtx context.Context) {
	chromedp.ListenTarget(browserCtx, func(ev interface{}) {
		paused, ok := ev.(*fetch.EventRequestPaused)
		if !ok {
			return
		}
		// CDP calls cannot be made from inside the listener
		go func() {
			execCtx := cdp.WithExecutor(browserCtx, chromedp.FromContext(browserCtx).Target)
			if allowedRenderURL(paused.Request.URL) {
				_ = fetch.ContinueRequest(paused.RequestID).Do(execCtx)
				return
			}
			r.logger.Warn("blocked request from report document", zap.String("url", paused.Request.URL))
			_ = fetch.FailRequest(paused.RequestID, network.ErrorReasonBlockedByClient).Do(execCtx)
		}()
	})
}

// allowedRenderURL reports whether a rendered document may load rawURL
func allowedRenderURL(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	switch strings.ToLower(u.Scheme) {
	case "data", "blob":
		return true
	case "about":
		return u.Opaque == "blank"
	}
	return false
}

// buildPrintParams converts the request to Chrome print parameters (inches)
func buildPrintParams(req *RenderRequest) *page.PrintToPDFParams {
	width, height := mmToInches(req.PaperSize.WidthMM), mmToInches(req.PaperSize.HeightMM)
	params := page.PrintToPDF().
		WithPrintBackground(true).
		WithPaperWidth(width).
		WithPaperHeight(height).
		WithLandscape(req.Orientation == OrientationLandscape).
		WithMarginTop(mmToInches(req.Margins.Top)).
		WithMarginRight(mmToInches(req.Margins.Right)).
		WithMarginBottom(mmToInches(req.Margins.Bottom)).
		WithMarginLeft(mmToInches(req.Margins.Left))

	if req.FooterHTML != "" {
		bottom := max(req.Margins.Bottom, 10)
		params = params.
			WithDisplayHeaderFooter(true).
			WithHeaderTemplate("<span></span>").
			WithFooterTemplate(req.FooterHTML).
			WithMarginBottom(mmToInches(bottom))
	}
	return params
}

// buildCompleteHTML wraps a fragment in a document; full documents pass through
func buildCompleteHTML(req *RenderRequest) string {
	lower := strings.ToLower(req.HTML)
	if strings.Contains(lower, "<!doctype") || strings.Contains(lower, "<html") {
		return req.HTML
	}

	var b strings.Builder
	b.WriteString(`<!DOCTYPE html><html><head><meta charset="UTF-8">`)
	if req.Title != "" {
		b.WriteString("<title>")
		b.WriteString(html.EscapeString(req.Title))
		b.WriteString("</title>")
	}
	b.WriteString("</head><body>")
	b.WriteString(req.HTML)
	b.WriteString("</body></html>")
	return b.String()
}

// Close releases the browser allocator
func (r *ChromedpRenderer) Close() error {
	if r.allocCancel != nil {
		r.allocCancel()
	}
	return nil
}

func mmToInches(mm float64) float64 {
	return mm / 25.4
}

var (
	_ PDFRenderer       = (*ChromedpRenderer)(nil)
	_ report.PDFPrinter = (*ChromedpRenderer)(nil)
)
