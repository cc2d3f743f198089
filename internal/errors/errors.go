// Package errors provides structured error types for cardtray.
// These errors provide context about what operation failed and where.
package errors

import (
	"errors"
	"fmt"
)

// Op describes an operation, usually as "package.function".
type Op string

// Kind categorizes the type of error.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindInvalid
	KindIO
	KindNetwork
	KindParse
	KindConfig
	KindTimeout
	KindCanceled
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindInvalid:
		return "invalid"
	case KindIO:
		return "I/O error"
	case KindNetwork:
		return "network error"
	case KindParse:
		return "parse error"
	case KindConfig:
		return "configuration error"
	case KindTimeout:
		return "timeout"
	case KindCanceled:
		return "canceled"
	default:
		return "unknown error"
	}
}

// Error is the structured error type for cardtray.
type Error struct {
	Op      Op     // Operation that failed
	Kind    Kind   // Category of error
	Err     error  // Underlying error
	Context string // Additional context
}

// Error returns the error message.
func (e *Error) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s: %s: %s", e.Op, e.Context, e.Err)
	}
	if e.Op != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// E creates a new Error. Arguments can be:
// - Op: the operation name
// - Kind: the error kind
// - string: context message
// - error: the underlying error
func E(args ...interface{}) error {
	e := &Error{}
	for _, arg := range args {
		switch a := arg.(type) {
		case Op:
			e.Op = a
		case Kind:
			e.Kind = a
		case string:
			e.Context = a
		case error:
			e.Err = a
		}
	}
	if e.Err == nil {
		e.Err = errors.New(e.Context)
		e.Context = ""
	}
	return e
}

// Is reports whether err is of the given Kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// GetKind returns the Kind of an error.
func GetKind(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Catalog errors
func CatalogFetchFailed(source string, err error) error {
	return E(Op("catalog.Load"), KindNetwork, fmt.Sprintf("failed to fetch catalog from %s", source), err)
}

func CatalogStatus(source string, status int) error {
	return E(Op("catalog.Load"), KindNetwork, fmt.Sprintf("catalog %s returned HTTP %d", source, status))
}

func CatalogParseFailed(source string, err error) error {
	return E(Op("catalog.Parse"), KindParse, fmt.Sprintf("malformed catalog %s", source), err)
}

func CatalogCanceled(source string, err error) error {
	return E(Op("catalog.Load"), KindCanceled, fmt.Sprintf("load of %s abandoned", source), err)
}

// Tray errors
func TrayNotFound(id string) error {
	return E(Op("tray.AddToTray"), KindInvalid, fmt.Sprintf("tray %q does not exist", id))
}

func NotSourceTile(id string) error {
	return E(Op("tray.AddToTray"), KindInvalid, fmt.Sprintf("tile %s is not a gallery source", id))
}

// Frame errors
func FrameNotFound(id string) error {
	return E(Op("frame.Show"), KindNotFound, fmt.Sprintf("frame %q not found", id))
}

// Config errors
func ConfigLoadFailed(path string, err error) error {
	return E(Op("config.Load"), KindConfig, fmt.Sprintf("failed to load config from %s", path), err)
}

func ConfigSaveFailed(path string, err error) error {
	return E(Op("config.Save"), KindConfig, fmt.Sprintf("failed to save config to %s", path), err)
}

func ConfigInvalid(reason string) error {
	return E(Op("config.Validate"), KindInvalid, reason)
}

// Updater errors
func ScrapeFailed(url string, err error) error {
	return E(Op("scrape.Fetch"), KindNetwork, fmt.Sprintf("failed to scrape %s", url), err)
}

func ImageDownloadFailed(url string, err error) error {
	return E(Op("images.Download"), KindNetwork, fmt.Sprintf("failed to download %s", url), err)
}
