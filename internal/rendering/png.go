package rendering

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
)

// PNGRenderer rasterizes SVG diagrams in headless Chrome.
// Requires Chrome/Chromium to be installed on the system.
type PNGRenderer struct {
	Timeout time.Duration
}

// NewPNGRenderer creates a renderer with a default timeout.
func NewPNGRenderer() *PNGRenderer {
	return &PNGRenderer{Timeout: 30 * time.Second}
}

var errEmptyScreenshot = errors.New("empty screenshot")

// Render loads svg in a headless browser sized width x height and returns a PNG screenshot.
func (r *PNGRenderer) Render(ctx context.Context, svg []byte, width, height int) ([]byte, error) {
	allocCtx, cancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
		)...,
	)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, r.Timeout)
	defer cancel()

	url := "data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString(svg)

	var png []byte
	err := chromedp.Run(browserCtx,
		chromedp.EmulateViewport(int64(width), int64(height)),
		chromedp.Navigate(url),
		chromedp.WaitReady("svg"),
		chromedp.FullScreenshot(&png, 100),
	)
	size := fmt.Sprintf("%dx%d diagram", width, height)
	if err != nil {
		return nil, &Error{Stage: StageRasterize, Diagram: size, Cause: err}
	}
	if len(png) == 0 {
		return nil, &Error{Stage: StageRasterize, Diagram: size, Cause: errEmptyScreenshot}
	}
	return png, nil
}

// Size returns the pixel dimensions RenderSVG uses for a roadmap with the
// given layout.
func Size(nodes []Node) (int, int) {
	maxDepth := 0
	for _, n := range nodes {
		maxDepth = max(maxDepth, n.Depth)
	}
	return max(minWidth, len(nodes)*cellWidth+2*marginX),
		max(minHeight, titleHeight+(maxDepth+1)*cellHeight+legendH)
}
