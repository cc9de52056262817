// Package clipboard writes article content to the system clipboard with a
// rich (HTML) attempt and a plain-text fallback.
package clipboard

import (
	"errors"

	"github.com/atotto/clipboard"
)

// ErrRichUnsupported is returned when the platform clipboard cannot take an
// HTML flavor alongside plain text.
var ErrRichUnsupported = errors.New("rich clipboard write not supported")

// WriteRich tries to place both an HTML and a plain-text representation on
// the clipboard. When the rich write is rejected it falls back to plain text
// only, which is still a success for the caller.
func WriteRich(html, plain string) error {
	if err := writeHTML(html, plain); err != nil {
		if errors.Is(err, ErrRichUnsupported) {
			return clipboard.WriteAll(plain)
		}
		return err
	}
	return nil
}

// writeHTML is the rich-flavor write. The system clipboard bridge in use is
// text-only, so this always reports ErrRichUnsupported; the indirection
// keeps the fallback path honest and testable.
func writeHTML(html, plain string) error {
	return ErrRichUnsupported
}

// WritePlain puts the plain-text representation on the clipboard.
func WritePlain(plain string) error {
	return clipboard.WriteAll(plain)
}
