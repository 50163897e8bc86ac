// Package debug provides viewer debugging utilities.
package debug

import (
	"fmt"
	"image"
	"path/filepath"
	"time"

	"github.com/Faultbox/toonrig/internal/config"
	"github.com/Faultbox/toonrig/internal/engine/texture"
)

// ScreenshotCapture writes frames to timestamped files.
type ScreenshotCapture struct {
	outputDir string
	prefix    string
	format    texture.Format

	now func() time.Time
}

// NewScreenshotCapture creates a capture writing PNG files to outputDir.
func NewScreenshotCapture(outputDir, prefix string) *ScreenshotCapture {
	return &ScreenshotCapture{
		outputDir: outputDir,
		prefix:    prefix,
		now:       time.Now,
	}
}

// NewScreenshotCaptureFromConfig creates a capture for the configured
// directory and format.
func NewScreenshotCaptureFromConfig(cfg config.ScreenshotConfig, prefix string) *ScreenshotCapture {
	sc := NewScreenshotCapture("", prefix)
	sc.SetOutputDir(cfg.Dir)
	sc.SetFormat(texture.FormatFromPath("capture." + cfg.Format))
	return sc
}

// SetOutputDir sets the output directory for screenshots.
func (sc *ScreenshotCapture) SetOutputDir(dir string) {
	sc.outputDir = dir
}

// SetFormat selects the file encoding.
func (sc *ScreenshotCapture) SetFormat(f texture.Format) {
	sc.format = f
}

// CaptureFromPixels saves bottom-up RGBA pixels as read back from GL.
func (sc *ScreenshotCapture) CaptureFromPixels(pixels []byte, width, height int) (string, error) {
	img, err := texture.FlipRows(pixels, width, height)
	if err != nil {
		return "", err
	}
	return sc.CaptureFromImage(img)
}

// CaptureFromImage saves img and returns the file name.
func (sc *ScreenshotCapture) CaptureFromImage(img image.Image) (string, error) {
	filename := sc.GenerateFilename()
	if err := texture.Save(filename, img); err != nil {
		return "", fmt.Errorf("screenshot: %w", err)
	}
	return filename, nil
}

// GenerateFilename returns the file name the next capture would use.
func (sc *ScreenshotCapture) GenerateFilename() string {
	timestamp := sc.now().Format("2006-01-02_15-04-05")
	filename := fmt.Sprintf("%s_%s%s", sc.prefix, timestamp, sc.format.Ext())
	if sc.outputDir != "" {
		filename = filepath.Join(sc.outputDir, filename)
	}
	return filename
}
