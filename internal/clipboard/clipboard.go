package clipboard

import (
	"fmt"
	"os"

	"golang.design/x/clipboard"

	"github.com/zhubert/cardtray/internal/logger"
)

// initialized tracks whether the clipboard has been initialized
var initialized bool

// Init initializes the clipboard. Must be called before other functions.
// This is safe to call multiple times.
func Init() error {
	if initialized {
		return nil
	}

	if err := clipboard.Init(); err != nil {
		logger.WithComponent("clipboard").Warn("failed to initialize", "error", err)
		return fmt.Errorf("failed to initialize clipboard: %w", err)
	}

	initialized = true
	logger.WithComponent("clipboard").Debug("initialized")
	return nil
}

// WriteText places text on the clipboard.
func WriteText(text string) error {
	if err := Init(); err != nil {
		return err
	}

	clipboard.Write(clipboard.FmtText, []byte(text))
	logger.WithComponent("clipboard").Debug("wrote text", "bytes", len(text))
	return nil
}

// WriteImageFile copies the image at path to the clipboard as PNG.
func WriteImageFile(path string) (*ImageData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read image %s: %w", path, err)
	}

	img, err := EncodePNG(raw)
	if err != nil {
		return nil, err
	}

	if err := Init(); err != nil {
		return nil, err
	}
	clipboard.Write(clipboard.FmtImage, img.Data)
	logger.WithComponent("clipboard").Debug("wrote image", "width", img.Width, "height", img.Height, "kb", img.SizeKB())
	return img, nil
}
