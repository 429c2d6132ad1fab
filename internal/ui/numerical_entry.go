package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/widget"
)

// NumericalEntry is an Entry that only accepts typed or pasted digits.
// MaxDigits, when positive, caps the length of typed input.
type NumericalEntry struct {
	widget.Entry

	MaxDigits int
}

// NewNumericalEntry creates a digit-only entry with no length cap.
func NewNumericalEntry() *NumericalEntry {
	entry := &NumericalEntry{}
	entry.ExtendBaseWidget(entry)
	return entry
}

// TypedRune drops anything that is not a digit, and digits past MaxDigits.
func (e *NumericalEntry) TypedRune(r rune) {
	if r < '0' || r > '9' {
		return
	}
	if e.MaxDigits > 0 && len([]rune(e.Text)) >= e.MaxDigits && e.SelectedText() == "" {
		return
	}
	e.Entry.TypedRune(r)
}

// TypedShortcut pastes only the digits of the clipboard content.
// SetText is not filtered: the controller validates whatever ends up in the field.
func (e *NumericalEntry) TypedShortcut(s fyne.Shortcut) {
	paste, ok := s.(*fyne.ShortcutPaste)
	if !ok || paste.Clipboard == nil {
		e.Entry.TypedShortcut(s)
		return
	}
	for _, r := range paste.Clipboard.Content() {
		e.TypedRune(r)
	}
}

// Keyboard requests the numeric keypad on mobile devices.
func (e *NumericalEntry) Keyboard() mobile.KeyboardType {
	return mobile.NumberKeyboard
}
