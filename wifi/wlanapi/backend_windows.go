//go:build windows

package wlanapi

import (
	"io"
	"log/slog"
	"time"

	"golang.org/x/sys/windows"

	"github.com/wifui/wifui/wifi"
)

// Settle delays after installing a profile. The store registers writes
// asynchronously; connecting before registration completes fails with a
// spurious "profile not found". Secured profiles take longer to register
// because the key is encrypted at rest.
const (
	securedProfileSettle = 1500 * time.Millisecond
	openProfileSettle    = 1000 * time.Millisecond
)

// Backend implements wifi.Backend on top of the native WLAN service. Each
// operation opens its own short-lived session, so a Backend carries no OS
// state and never needs closing.
type Backend struct {
	logger *slog.Logger
}

// New probes the WLAN service and the wireless adapter, returning a backend
// bound to the first interface.
func New(logger *slog.Logger) (*Backend, error) {
	h, err := Open()
	if err != nil {
		return nil, err
	}
	defer h.Close()
	if _, err := h.FirstInterface(); err != nil {
		return nil, err
	}
	return &Backend{logger: logger}, nil
}

// withSession opens a session, resolves the interface and runs fn.
func (b *Backend) withSession(fn func(h *Handle, guid windows.GUID) error) error {
	h, err := Open()
	if err != nil {
		return err
	}
	defer h.Close()

	guid, err := h.FirstInterface()
	if err != nil {
		return err
	}
	return fn(h, guid)
}

func (b *Backend) RequestScan() error {
	return b.withSession(requestScan)
}

func (b *Backend) ListNetworks() ([]wifi.Network, error) {
	var networks []wifi.Network
	err := b.withSession(func(h *Handle, guid windows.GUID) error {
		var err error
		networks, err = listNetworks(h, guid)
		return err
	})
	return networks, err
}

func (b *Backend) ConnectedSSID() (string, error) {
	var ssid string
	err := b.withSession(func(h *Handle, guid windows.GUID) error {
		ssid, _ = currentConnection(h, guid)
		return nil
	})
	return ssid, err
}

func (b *Backend) ConnectSaved(ssid string) error {
	b.logger.Debug("connecting with saved profile", "ssid", ssid)
	return b.withSession(func(h *Handle, guid windows.GUID) error {
		return connectProfile(h, guid, ssid)
	})
}

func (b *Backend) ConnectWithCredential(ssid string, security wifi.Security, cipher string, password wifi.Secret, hidden bool) error {
	b.logger.Debug("installing credential profile", "ssid", ssid, "security", security.String(), "hidden", hidden)
	return b.withSession(func(h *Handle, guid windows.GUID) error {
		doc := BuildProfileXML(ssid, security, cipher, password, hidden)
		if err := setProfileXML(h, guid, doc, wifi.KindProfileAdd); err != nil {
			return err
		}
		time.Sleep(securedProfileSettle)
		return connectProfile(h, guid, ssid)
	})
}

func (b *Backend) ConnectOpen(ssid string, hidden bool) error {
	b.logger.Debug("installing open profile", "ssid", ssid, "hidden", hidden)
	return b.withSession(func(h *Handle, guid windows.GUID) error {
		doc := BuildProfileXML(ssid, wifi.SecurityOpen, "", wifi.Secret{}, hidden)
		if err := setProfileXML(h, guid, doc, wifi.KindProfileAdd); err != nil {
			return err
		}
		time.Sleep(openProfileSettle)
		return connectProfile(h, guid, ssid)
	})
}

func (b *Backend) Disconnect() error {
	return b.withSession(disconnect)
}

func (b *Backend) Forget(ssid string) error {
	b.logger.Debug("deleting profile", "ssid", ssid)
	return b.withSession(func(h *Handle, guid windows.GUID) error {
		return deleteProfile(h, guid, ssid)
	})
}

// SetAutoConnect rewrites the stored profile in place. The read asks for the
// plaintext key so the write does not re-encrypt an already-protected blob.
func (b *Backend) SetAutoConnect(ssid string, enabled bool) error {
	return b.withSession(func(h *Handle, guid windows.GUID) error {
		doc, err := getProfileXML(h, guid, ssid, profileGetPlaintextKey)
		if err != nil {
			return err
		}
		updated, err := SetAutoConnect(doc, enabled)
		if err != nil {
			return err
		}
		if updated == doc {
			return nil
		}
		return setProfileXML(h, guid, updated, wifi.KindProfileSet)
	})
}

func (b *Backend) Password(ssid string) (wifi.Secret, error) {
	var secret wifi.Secret
	err := b.withSession(func(h *Handle, guid windows.GUID) error {
		doc, err := getProfileXML(h, guid, ssid, profileGetPlaintextKey)
		if err != nil {
			return err
		}
		secret, _ = ExtractKeyMaterial(doc)
		return nil
	})
	return secret, err
}

func (b *Backend) Listen(q *wifi.EventQueue) (io.Closer, error) {
	return listen(q)
}

// SavedProfiles reads every stored profile, including ones for networks that
// are out of range.
func (b *Backend) SavedProfiles() ([]wifi.StoredProfile, error) {
	var profiles []wifi.StoredProfile
	err := b.withSession(func(h *Handle, guid windows.GUID) error {
		names, err := profileNames(h, guid)
		if err != nil {
			return err
		}
		for _, name := range names {
			doc, err := getProfileXML(h, guid, name, profileGetPlaintextKey)
			if err != nil {
				b.logger.Warn("skipping unreadable profile", "name", name, "error", err)
				continue
			}
			p := wifi.StoredProfile{
				Name:        name,
				AutoConnect: ReadAutoConnect(doc),
				Security:    ReadAuthentication(doc),
			}
			if key, ok := ExtractKeyMaterial(doc); ok {
				p.KeyMaterial = key
			}
			profiles = append(profiles, p)
		}
		return nil
	})
	return profiles, err
}
