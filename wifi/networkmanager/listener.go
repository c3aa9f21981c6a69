//go:build linux

package networkmanager

import (
	"log/slog"
	"sync"

	"github.com/godbus/dbus/v5"

	"github.com/wifui/wifui/wifi"
)

// NM_DEVICE_STATE values carried by the Device.StateChanged signal.
const (
	deviceStateDisconnected = 30
	deviceStateActivated    = 100
	deviceStateFailed       = 120
)

// NM_DEVICE_STATE_REASON_NO_SECRETS. NetworkManager reports a rejected or
// missing passphrase as this reason on the failed transition.
const reasonNoSecrets = 7

// listener translates NetworkManager device state signals into connection
// events. It owns a private bus connection so closing it cannot disturb the
// shared one gonetworkmanager uses.
type listener struct {
	backend *Backend
	queue   *wifi.EventQueue
	logger  *slog.Logger
	conn    *dbus.Conn
	signals chan *dbus.Signal
	once    sync.Once
	done    chan struct{}
}

func newListener(b *Backend, q *wifi.EventQueue, logger *slog.Logger) (*listener, error) {
	conn, err := dbus.SystemBusPrivate()
	if err != nil {
		return nil, wifi.NewError(wifi.KindNotificationRegistration, 0)
	}
	if err := conn.Auth(nil); err != nil {
		conn.Close()
		return nil, wifi.NewError(wifi.KindNotificationRegistration, 0)
	}
	if err := conn.Hello(); err != nil {
		conn.Close()
		return nil, wifi.NewError(wifi.KindNotificationRegistration, 0)
	}

	err = conn.AddMatchSignal(
		dbus.WithMatchSender("org.freedesktop.NetworkManager"),
		dbus.WithMatchInterface("org.freedesktop.NetworkManager.Device"),
		dbus.WithMatchMember("StateChanged"),
	)
	if err != nil {
		conn.Close()
		return nil, wifi.NewError(wifi.KindNotificationRegistration, 0)
	}

	l := &listener{
		backend: b,
		queue:   q,
		logger:  logger,
		conn:    conn,
		signals: make(chan *dbus.Signal, 16),
		done:    make(chan struct{}),
	}
	conn.Signal(l.signals)
	go l.run()
	return l, nil
}

func (l *listener) run() {
	for {
		select {
		case sig, ok := <-l.signals:
			if !ok {
				return
			}
			l.handle(sig)
		case <-l.done:
			return
		}
	}
}

func (l *listener) handle(sig *dbus.Signal) {
	if sig == nil || len(sig.Body) < 3 {
		return
	}
	newState, ok := sig.Body[0].(uint32)
	if !ok {
		return
	}
	reason, _ := sig.Body[2].(uint32)

	switch newState {
	case deviceStateActivated:
		// The signal carries no SSID; ask the device. This runs on the
		// listener goroutine, not inside the bus dispatcher.
		ssid, err := l.backend.ConnectedSSID()
		if err != nil || ssid == "" {
			return
		}
		l.queue.Push(wifi.Connected(ssid))
	case deviceStateDisconnected:
		l.queue.Push(wifi.Disconnected(""))
	case deviceStateFailed:
		code := reason
		if reason == reasonNoSecrets {
			code = 0x00050004 // surfaces as "Incorrect Password"
		}
		ssid := l.lastAttemptSSID()
		l.queue.Push(wifi.Failed(ssid, code))
	}
}

// lastAttemptSSID names the SSID of the failing activation, best effort. The
// orchestrator falls back to its poll-and-timeout path when this comes back
// empty.
func (l *listener) lastAttemptSSID() string {
	dev, err := l.backend.wirelessDevice()
	if err != nil {
		return ""
	}
	return l.backend.activeSSID(dev)
}

func (l *listener) Close() error {
	l.once.Do(func() {
		close(l.done)
		l.conn.RemoveSignal(l.signals)
		l.conn.Close()
	})
	return nil
}
