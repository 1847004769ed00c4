// Package notify delivers best-effort desktop notifications. Absence
// of a notification service is tolerated silently: the monitor keeps
// running, only the desktop popup is lost.
package notify

import "sync"

// Permission mirrors the desktop notification permission state. The
// core only reads it; it changes via an explicit Request.
type Permission int

const (
	PermissionUnset Permission = iota
	PermissionGranted
	PermissionDenied
)

func (p Permission) String() string {
	switch p {
	case PermissionGranted:
		return "granted"
	case PermissionDenied:
		return "denied"
	}
	return "unset"
}

type Notifier interface {
	Permission() Permission
	// Request probes the notification service and resolves the
	// permission state.
	Request() Permission
	// Notify shows a short text notification. Best-effort; returns an
	// error only for diagnostics, never to stop the session.
	Notify(title, body string) error
}

// Fake records notifications for tests.
type Fake struct {
	mu     sync.Mutex
	perm   Permission
	bodies []string
}

func NewFake(perm Permission) *Fake {
	return &Fake{perm: perm}
}

func (f *Fake) Permission() Permission {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.perm
}

func (f *Fake) Request() Permission {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.perm == PermissionUnset {
		f.perm = PermissionGranted
	}
	return f.perm
}

func (f *Fake) Notify(title, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bodies = append(f.bodies, title+": "+body)
	return nil
}

// Sent returns the notifications recorded so far.
func (f *Fake) Sent() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.bodies))
	copy(out, f.bodies)
	return out
}
