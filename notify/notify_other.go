//go:build !linux

package notify

import "fmt"

// Desktop notifications are only wired up for Linux so far. Other
// platforms resolve to denied and the monitor degrades to beep-only.
type noopNotifier struct {
	perm Permission
}

func New() Notifier {
	return &noopNotifier{}
}

func (n *noopNotifier) Permission() Permission {
	return n.perm
}

func (n *noopNotifier) Request() Permission {
	n.perm = PermissionDenied
	return n.perm
}

func (n *noopNotifier) Notify(title, body string) error {
	return fmt.Errorf("notifications not supported on this platform")
}
