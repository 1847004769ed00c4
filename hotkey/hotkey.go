// Package hotkey exposes the global monitor toggle (Ctrl+Shift+B).
package hotkey

type Hotkey interface {
	Register() error
	Unregister()
	// Toggled fires once per full press (keydown then keyup).
	Toggled() <-chan struct{}
}
