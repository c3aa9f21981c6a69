//go:build linux

// Package networkmanager implements the wireless backend over NetworkManager's
// D-Bus API.
package networkmanager

import (
	"io"
	"log/slog"

	gonetworkmanager "github.com/Wifx/gonetworkmanager/v3"
	"github.com/google/uuid"

	"github.com/wifui/wifui/wifi"
)

// Backend implements wifi.Backend using D-Bus to communicate with
// NetworkManager.
type Backend struct {
	NM       gonetworkmanager.NetworkManager
	Settings gonetworkmanager.Settings
	logger   *slog.Logger
}

// New connects to NetworkManager over the system bus.
func New(logger *slog.Logger) (*Backend, error) {
	nm, err := gonetworkmanager.NewNetworkManager()
	if err != nil {
		return nil, wifi.Internal("failed to create NetworkManager client")
	}
	settings, err := gonetworkmanager.NewSettings()
	if err != nil {
		return nil, wifi.Internal("failed to get NetworkManager settings")
	}
	return &Backend{NM: nm, Settings: settings, logger: logger}, nil
}

func (b *Backend) wirelessDevice() (gonetworkmanager.DeviceWireless, error) {
	devices, err := b.NM.GetDevices()
	if err != nil {
		return nil, err
	}
	for _, device := range devices {
		if dev, ok := device.(gonetworkmanager.DeviceWireless); ok {
			return dev, nil
		}
	}
	return nil, wifi.ErrNoInterface
}

// savedConnection finds the stored wireless connection for an SSID, or nil.
func (b *Backend) savedConnection(ssid string) (gonetworkmanager.Connection, map[string]map[string]interface{}, error) {
	known, err := b.Settings.ListConnections()
	if err != nil {
		return nil, nil, err
	}
	for _, kc := range known {
		s, err := kc.GetSettings()
		if err != nil {
			continue
		}
		wireless, ok := s["802-11-wireless"]
		if !ok {
			continue
		}
		if ssidBytes, ok := wireless["ssid"].([]byte); ok && string(ssidBytes) == ssid {
			return kc, s, nil
		}
	}
	return nil, nil, nil
}

func (b *Backend) accessPoint(dev gonetworkmanager.DeviceWireless, ssid string) (gonetworkmanager.AccessPoint, error) {
	aps, err := dev.GetAccessPoints()
	if err != nil {
		return nil, err
	}
	var best gonetworkmanager.AccessPoint
	var bestStrength uint8
	for _, ap := range aps {
		name, err := ap.GetPropertySSID()
		if err != nil || name != ssid {
			continue
		}
		strength, _ := ap.GetPropertyStrength()
		if best == nil || strength > bestStrength {
			best, bestStrength = ap, strength
		}
	}
	return best, nil
}

func securityFromFlags(privacy bool, wpaFlags, rsnFlags uint32) wifi.Security {
	const keyMgmtSAE = 0x400 // NM_802_11_AP_SEC_KEY_MGMT_SAE
	const keyMgmt8021X = 0x200
	switch {
	case rsnFlags&keyMgmtSAE != 0:
		return wifi.SecurityWPA3Personal
	case rsnFlags&keyMgmt8021X != 0:
		return wifi.SecurityWPA2Enterprise
	case rsnFlags != 0:
		return wifi.SecurityWPA2Personal
	case wpaFlags&keyMgmt8021X != 0:
		return wifi.SecurityWPAEnterprise
	case wpaFlags != 0:
		return wifi.SecurityWPAPersonal
	case privacy:
		return wifi.SecurityWEP
	default:
		return wifi.SecurityOpen
	}
}

func (b *Backend) RequestScan() error {
	dev, err := b.wirelessDevice()
	if err != nil {
		return err
	}
	if err := dev.RequestScan(); err != nil {
		return wifi.NewError(wifi.KindScan, 0)
	}
	return nil
}

func (b *Backend) ListNetworks() ([]wifi.Network, error) {
	enabled, err := b.NM.GetPropertyWirelessEnabled()
	if err != nil {
		return nil, err
	}
	if !enabled {
		return nil, wifi.Internal("wireless radio is disabled")
	}

	dev, err := b.wirelessDevice()
	if err != nil {
		return nil, err
	}
	aps, err := dev.GetAccessPoints()
	if err != nil {
		return nil, wifi.NewError(wifi.KindNetworkList, 0)
	}
	known, err := b.Settings.ListConnections()
	if err != nil {
		return nil, err
	}

	connectedSSID := b.activeSSID(dev)

	type savedInfo struct {
		autoConnect bool
	}
	saved := make(map[string]savedInfo)
	for _, kc := range known {
		s, err := kc.GetSettings()
		if err != nil {
			continue
		}
		wireless, ok := s["802-11-wireless"]
		if !ok {
			continue
		}
		ssidBytes, ok := wireless["ssid"].([]byte)
		if !ok {
			continue
		}
		info := savedInfo{autoConnect: true}
		if c, ok := s["connection"]; ok {
			if ac, ok := c["autoconnect"].(bool); ok {
				info.autoConnect = ac
			}
		}
		saved[string(ssidBytes)] = info
	}

	var networks []wifi.Network
	for _, ap := range aps {
		ssid, err := ap.GetPropertySSID()
		if err != nil || ssid == "" {
			continue
		}
		strength, _ := ap.GetPropertyStrength()
		flags, _ := ap.GetPropertyFlags()
		wpaFlags, _ := ap.GetPropertyWPAFlags()
		rsnFlags, _ := ap.GetPropertyRSNFlags()
		frequency, _ := ap.GetPropertyFrequency() // MHz
		bitrate, _ := ap.GetPropertyMaxBitrate()  // kbit/s

		privacy := uint32(flags)&uint32(gonetworkmanager.Nm80211APFlagsPrivacy) != 0
		n := wifi.Network{
			SSID:         ssid,
			Security:     securityFromFlags(privacy, uint32(wpaFlags), uint32(rsnFlags)),
			Signal:       strength,
			FrequencyKHz: frequency * 1000,
			Channel:      wifi.ChannelForFrequency(frequency * 1000),
			IsConnected:  ssid == connectedSSID && ssid != "",
		}
		if info, ok := saved[ssid]; ok {
			n.IsSaved = true
			n.AutoConnect = info.autoConnect
		}
		if n.IsConnected {
			n.LinkSpeedMbps = bitrate / 1000
		}
		networks = append(networks, n)
	}

	// Saved networks that are out of range still belong in the list so they
	// can be forgotten or toggled.
	seen := make(map[string]bool, len(networks))
	for _, n := range networks {
		seen[n.SSID] = true
	}
	for ssid, info := range saved {
		if !seen[ssid] {
			networks = append(networks, wifi.Network{
				SSID:        ssid,
				IsSaved:     true,
				AutoConnect: info.autoConnect,
			})
		}
	}

	networks = wifi.MergeNetworks(networks)
	wifi.SortNetworks(networks)
	return networks, nil
}

func (b *Backend) activeSSID(dev gonetworkmanager.DeviceWireless) string {
	ap, err := dev.GetPropertyActiveAccessPoint()
	if err != nil || ap == nil {
		return ""
	}
	ssid, err := ap.GetPropertySSID()
	if err != nil {
		return ""
	}
	return ssid
}

func (b *Backend) ConnectedSSID() (string, error) {
	dev, err := b.wirelessDevice()
	if err != nil {
		return "", err
	}
	return b.activeSSID(dev), nil
}

func (b *Backend) ConnectSaved(ssid string) error {
	conn, _, err := b.savedConnection(ssid)
	if err != nil {
		return err
	}
	if conn == nil {
		return wifi.NewError(wifi.KindConnection, 0)
	}
	dev, err := b.wirelessDevice()
	if err != nil {
		return err
	}
	ap, err := b.accessPoint(dev, ssid)
	if err != nil {
		return err
	}
	if ap == nil {
		return wifi.NewError(wifi.KindConnection, 0)
	}
	// Activation is asynchronous; the outcome arrives as a device signal.
	_, err = b.NM.ActivateWirelessConnection(conn, dev, ap)
	if err != nil {
		return wifi.NewError(wifi.KindConnection, 0)
	}
	return nil
}

func (b *Backend) connect(ssid string, settings map[string]map[string]interface{}, hidden bool) error {
	dev, err := b.wirelessDevice()
	if err != nil {
		return err
	}
	if hidden {
		_, err = b.NM.AddAndActivateConnection(settings, dev)
	} else {
		ap, apErr := b.accessPoint(dev, ssid)
		if apErr != nil {
			return apErr
		}
		if ap == nil {
			return wifi.NewError(wifi.KindConnection, 0)
		}
		_, err = b.NM.AddAndActivateWirelessConnection(settings, dev, ap)
	}
	if err != nil {
		return wifi.NewError(wifi.KindProfileAdd, 0)
	}
	return nil
}

func (b *Backend) ConnectWithCredential(ssid string, security wifi.Security, cipher string, password wifi.Secret, hidden bool) error {
	b.logger.Debug("adding connection", "ssid", ssid, "security", security.String(), "hidden", hidden)
	settings := baseSettings(ssid, hidden)
	switch security {
	case wifi.SecurityWEP:
		settings["802-11-wireless"]["security"] = "802-11-wireless-security"
		settings["802-11-wireless-security"] = map[string]interface{}{
			"key-mgmt": "none",
			"wep-key0": password.Expose(),
		}
	case wifi.SecurityWPA3Personal:
		settings["802-11-wireless"]["security"] = "802-11-wireless-security"
		settings["802-11-wireless-security"] = map[string]interface{}{
			"key-mgmt": "sae",
			"psk":      password.Expose(),
		}
	default:
		settings["802-11-wireless"]["security"] = "802-11-wireless-security"
		settings["802-11-wireless-security"] = map[string]interface{}{
			"key-mgmt": "wpa-psk",
			"psk":      password.Expose(),
		}
	}
	return b.connect(ssid, settings, hidden)
}

func (b *Backend) ConnectOpen(ssid string, hidden bool) error {
	b.logger.Debug("adding open connection", "ssid", ssid, "hidden", hidden)
	settings := baseSettings(ssid, hidden)
	// A hand-added open network should not rejoin on its own.
	settings["connection"]["autoconnect"] = false
	return b.connect(ssid, settings, hidden)
}

func baseSettings(ssid string, hidden bool) map[string]map[string]interface{} {
	settings := map[string]map[string]interface{}{
		"connection": {
			"id":          ssid,
			"uuid":        uuid.New().String(),
			"type":        "802-11-wireless",
			"autoconnect": true,
		},
		"802-11-wireless": {
			"mode": "infrastructure",
			"ssid": []byte(ssid),
		},
		"ipv4": {"method": "auto"},
		"ipv6": {"method": "auto"},
	}
	if hidden {
		settings["802-11-wireless"]["hidden"] = true
	}
	return settings
}

func (b *Backend) Disconnect() error {
	dev, err := b.wirelessDevice()
	if err != nil {
		return err
	}
	if err := dev.Disconnect(); err != nil {
		return wifi.NewError(wifi.KindDisconnect, 0)
	}
	return nil
}

// Forget deletes the stored connection. Missing is not an error.
func (b *Backend) Forget(ssid string) error {
	conn, _, err := b.savedConnection(ssid)
	if err != nil {
		return err
	}
	if conn == nil {
		return nil
	}
	if err := conn.Delete(); err != nil {
		return wifi.NewError(wifi.KindProfileDelete, 0)
	}
	return nil
}

func (b *Backend) SetAutoConnect(ssid string, enabled bool) error {
	conn, settings, err := b.savedConnection(ssid)
	if err != nil {
		return err
	}
	if conn == nil {
		return wifi.NewError(wifi.KindProfileSet, 0)
	}
	if _, ok := settings["connection"]; !ok {
		settings["connection"] = make(map[string]interface{})
	}
	settings["connection"]["autoconnect"] = enabled

	applyUpdateWorkaround(settings)
	if err := conn.Update(settings); err != nil {
		return wifi.NewError(wifi.KindProfileSet, 0)
	}
	return nil
}

func (b *Backend) Password(ssid string) (wifi.Secret, error) {
	conn, settings, err := b.savedConnection(ssid)
	if err != nil {
		return wifi.Secret{}, err
	}
	if conn == nil {
		return wifi.Secret{}, wifi.NewError(wifi.KindProfileGet, 0)
	}
	if _, ok := settings["802-11-wireless-security"]; !ok {
		return wifi.Secret{}, nil
	}
	secrets, err := conn.GetSecrets("802-11-wireless-security")
	if err != nil {
		return wifi.Secret{}, wifi.NewError(wifi.KindProfileGet, 0)
	}
	if s, ok := secrets["802-11-wireless-security"]; ok {
		if psk, ok := s["psk"].(string); ok {
			return wifi.NewSecret(psk), nil
		}
	}
	return wifi.Secret{}, nil
}

// SavedProfiles enumerates every stored wireless connection. Secrets are read
// best effort; a profile whose key cannot be fetched is still listed.
func (b *Backend) SavedProfiles() ([]wifi.StoredProfile, error) {
	known, err := b.Settings.ListConnections()
	if err != nil {
		return nil, err
	}
	var profiles []wifi.StoredProfile
	for _, kc := range known {
		s, err := kc.GetSettings()
		if err != nil {
			continue
		}
		wireless, ok := s["802-11-wireless"]
		if !ok {
			continue
		}
		ssidBytes, ok := wireless["ssid"].([]byte)
		if !ok {
			continue
		}
		p := wifi.StoredProfile{
			Name:        string(ssidBytes),
			AutoConnect: true,
			Security:    securityFromKeyMgmt(s),
		}
		if c, ok := s["connection"]; ok {
			if ac, ok := c["autoconnect"].(bool); ok {
				p.AutoConnect = ac
			}
		}
		if !p.Security.IsOpen() {
			if secrets, err := kc.GetSecrets("802-11-wireless-security"); err == nil {
				if sec, ok := secrets["802-11-wireless-security"]; ok {
					if psk, ok := sec["psk"].(string); ok {
						p.KeyMaterial = wifi.NewSecret(psk)
					}
				}
			}
		}
		profiles = append(profiles, p)
	}
	return profiles, nil
}

func securityFromKeyMgmt(settings map[string]map[string]interface{}) wifi.Security {
	sec, ok := settings["802-11-wireless-security"]
	if !ok {
		return wifi.SecurityOpen
	}
	switch keyMgmt, _ := sec["key-mgmt"].(string); keyMgmt {
	case "sae":
		return wifi.SecurityWPA3Personal
	case "wpa-psk":
		return wifi.SecurityWPA2Personal
	case "wpa-eap":
		return wifi.SecurityWPA2Enterprise
	case "none":
		return wifi.SecurityWEP
	}
	return wifi.SecurityUnknown
}

func (b *Backend) Listen(q *wifi.EventQueue) (io.Closer, error) {
	return newListener(b, q, b.logger)
}

// applyUpdateWorkaround modifies the settings map to work around D-Bus type
// errors.
//
// NetworkManager's D-Bus API can return ipv6.addresses and ipv6.routes as an
// array of array of variants ('aav'), but expects them as an array of structs
// on update ('a(ayuay)' for addresses and 'a(ayuayu)' for routes). This causes
// a type mismatch error when calling the Update method with settings that
// were previously fetched from the API.
//
// To avoid this, we remove these properties from the settings map before
// updating the connection. This is safe because the operations that use this
// workaround are only intended to modify other properties of the connection.
//
// See: https://github.com/Wifx/gonetworkmanager/issues/13 and https://github.com/godbus/dbus/issues/400
func applyUpdateWorkaround(settings map[string]map[string]interface{}) {
	if ipv6Settings, ok := settings["ipv6"]; ok {
		delete(ipv6Settings, "addresses")
		delete(ipv6Settings, "routes")
	}
}

var _ wifi.Backend = (*Backend)(nil)
