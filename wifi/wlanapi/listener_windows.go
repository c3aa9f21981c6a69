//go:build windows

package wlanapi

import (
	"runtime/cgo"
	"sync"
	"syscall"
	"unsafe"

	"github.com/wifui/wifui/wifi"
)

// Listener holds a notification registration against a dedicated session
// handle. Closing it unregisters the callback before the session and the
// context token are released, so the OS can never invoke the callback with
// a dangling context.
type Listener struct {
	handle *Handle
	token  cgo.Handle
	once   sync.Once
}

// notificationCallback is the single trampoline registered with the OS. The
// queue travels as an opaque token in the context argument; the token stays
// valid for exactly the registration's lifetime.
var notificationCallback = syscall.NewCallback(onNotification)

func onNotification(data *l2NotificationData, context uintptr) uintptr {
	if data == nil || context == 0 {
		return 0
	}
	if data.NotificationSource != notificationSourceACM {
		return 0
	}
	switch data.NotificationCode {
	case acmConnectionComplete, acmConnectionAttemptFail, acmDisconnected:
	default:
		return 0
	}
	// The payload for these three codes is a connection record. Reject
	// anything too small to be one before touching it.
	if data.Data == nil || data.DataSize < uint32(unsafe.Sizeof(wlanConnectionNotificationData{})) {
		return 0
	}

	queue, ok := cgo.Handle(context).Value().(*wifi.EventQueue)
	if !ok {
		return 0
	}
	record := (*wlanConnectionNotificationData)(data.Data)
	ssid := record.Dot11SSID.String()

	// Push only. The callback runs on an OS thread inside the WLAN service's
	// dispatcher; calling back into the API from here deadlocks it.
	switch data.NotificationCode {
	case acmConnectionComplete:
		if record.WlanReasonCode == 0 {
			queue.Push(wifi.Connected(ssid))
		} else {
			queue.Push(wifi.Failed(ssid, record.WlanReasonCode))
		}
	case acmConnectionAttemptFail:
		queue.Push(wifi.Failed(ssid, record.WlanReasonCode))
	case acmDisconnected:
		queue.Push(wifi.Disconnected(ssid))
	}
	return 0
}

// listen opens a dedicated session and registers for connection-lifecycle
// notifications, pushing events into q until Close.
func listen(q *wifi.EventQueue) (*Listener, error) {
	h, err := Open()
	if err != nil {
		return nil, err
	}
	token := cgo.NewHandle(q)
	r, _, _ := procWlanRegisterNotification.Call(
		h.h,
		notificationSourceACM,
		0, // deliver duplicates; the state machine dedupes by SSID
		notificationCallback,
		uintptr(token),
		0,
		0,
	)
	if r != errSuccess {
		token.Delete()
		h.Close()
		return nil, wifi.NewError(wifi.KindNotificationRegistration, uint32(r))
	}
	return &Listener{handle: h, token: token}, nil
}

// Close unregisters the callback and releases the session. Idempotent.
func (l *Listener) Close() error {
	l.once.Do(func() {
		// Unregister first: WlanRegisterNotification with source none blocks
		// until any in-flight callback returns, after which the token can be
		// deleted without racing a delivery.
		procWlanRegisterNotification.Call(l.handle.h, notificationSourceNone, 1, 0, 0, 0, 0)
		l.token.Delete()
		l.handle.Close()
	})
	return nil
}
