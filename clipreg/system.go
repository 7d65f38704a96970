package clipreg

import (
	"fmt"

	"github.com/atotto/clipboard"
)

// System realizes the engine's Clipboard capability against the real OS
// clipboard via atotto/clipboard.
//
// Get/Set satisfy engine.Clipboard's signature, which has no error return.
// System is the one place in this module that can fail, and it reports
// that failure as a plain Go error, via the Err-returning variants.
type System struct{}

// Get implements engine.Clipboard. On a read failure it returns ("", false)
// rather than propagating an error; see GetErr for the fallible form. It
// also returns ok=false when the OS clipboard is empty, so unlike Memory it
// does not distinguish an empty register from one never set.
func (System) Get() (string, bool) {
	text, err := GetErr()
	if err != nil {
		return "", false
	}
	return text, text != ""
}

// Set implements engine.Clipboard. A write failure is silently dropped;
// see SetErr for the fallible form hosts should prefer when they care.
func (System) Set(text string) {
	_ = SetErr(text)
}

// GetErr reads the OS clipboard, wrapping any failure with context the way
// the rest of this module's I/O-performing code does.
func GetErr() (string, error) {
	text, err := clipboard.ReadAll()
	if err != nil {
		return "", fmt.Errorf("clipreg: read system clipboard: %w", err)
	}
	return text, nil
}

// SetErr writes text to the OS clipboard, wrapping any failure with
// context.
func SetErr(text string) error {
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("clipreg: write system clipboard: %w", err)
	}
	return nil
}
