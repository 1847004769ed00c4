//go:build linux

package notify

import (
	"fmt"
	"sync"

	"github.com/godbus/dbus/v5"
)

const (
	notifyDest   = "org.freedesktop.Notifications"
	notifyPath   = "/org/freedesktop/Notifications"
	notifyMethod = "org.freedesktop.Notifications.Notify"

	expireMs = 4000
)

type dbusNotifier struct {
	mu   sync.Mutex
	perm Permission
	conn *dbus.Conn
}

func New() Notifier {
	return &dbusNotifier{}
}

func (n *dbusNotifier) Permission() Permission {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.perm
}

func (n *dbusNotifier) Request() Permission {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.perm != PermissionUnset {
		return n.perm
	}
	conn, err := dbus.SessionBus()
	if err != nil {
		n.perm = PermissionDenied
		return n.perm
	}
	n.conn = conn
	n.perm = PermissionGranted
	return n.perm
}

func (n *dbusNotifier) Notify(title, body string) error {
	n.mu.Lock()
	conn := n.conn
	perm := n.perm
	n.mu.Unlock()

	if perm != PermissionGranted || conn == nil {
		return fmt.Errorf("notifications not available")
	}

	obj := conn.Object(notifyDest, notifyPath)
	call := obj.Call(notifyMethod, 0,
		"wink",          // app name
		uint32(0),       // replaces id
		"",              // icon
		title,           // summary
		body,            // body
		[]string{},      // actions
		map[string]dbus.Variant{}, // hints
		int32(expireMs), // expire timeout
	)
	if call.Err != nil {
		return fmt.Errorf("dbus notify: %w", call.Err)
	}
	return nil
}
