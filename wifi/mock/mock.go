// Package mock provides an in-memory backend for development and tests. It
// records every operation in order, so tests can assert on sequencing, and
// can be scripted to fail specific operations.
package mock

import (
	"fmt"
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/wifui/wifui/wifi"
)

var DefaultActionSleep = 500 * time.Millisecond

// Backend is a scriptable wifi.Backend. The zero value works; New seeds a
// more entertaining network list for driving the UI by hand.
type Backend struct {
	mu sync.Mutex

	Networks  []wifi.Network
	Secrets   map[string]wifi.Secret
	Connected string

	// Ops records every mutating call in order, e.g. "Disconnect" or
	// "ConnectSaved(Cafe)".
	Ops []string

	// Errs maps an operation name ("ConnectSaved", "Forget", ...) to the
	// error that operation should return.
	Errs map[string]error

	// ActionSleep delays every call to emulate a slow native subsystem.
	// Zero during tests.
	ActionSleep time.Duration

	// PushEvents makes connect/disconnect operations emit lifecycle events
	// into an attached queue, like a real notification source would.
	PushEvents bool

	queue *wifi.EventQueue
}

// New seeds a backend with a list of fun wifi networks.
func New() *Backend {
	networks := []wifi.Network{
		{SSID: "HideYoKidsHideYoWiFi", Security: wifi.SecurityWPA2Personal, Signal: 82, IsSaved: true, AutoConnect: true, Channel: 6, FrequencyKHz: 2437000},
		{SSID: "GET off my LAN", Security: wifi.SecurityWPA2Personal, Signal: 45, IsSaved: true},
		{SSID: "NeverGonnaGiveYouIP", Security: wifi.SecurityWEP, Signal: 31},
		{SSID: "Unencrypted_Honeypot", Security: wifi.SecurityOpen, Signal: 74},
		{SSID: "I See Dead Packets", Security: wifi.SecurityWEP, Signal: 12},
		{SSID: "Dunder MiffLAN", Security: wifi.SecurityWPA2Personal, Signal: 58, Channel: 36, FrequencyKHz: 5180000},
		{SSID: "Police Surveillance 2", Security: wifi.SecurityWPA2Personal, Signal: 48},
		{SSID: "I Believe Wi Can Fi", Security: wifi.SecurityWEP, Signal: 66},
		{SSID: "Hot singles in your area", Security: wifi.SecurityWPA2Personal, Signal: 39},
		{SSID: "Password is password", Security: wifi.SecurityWPA2Personal, Signal: 87, IsSaved: true, AutoConnect: true},
		{SSID: "TacoBoutAGoodSignal", Security: wifi.SecurityWPA3Personal, Signal: 99, Channel: 149, FrequencyKHz: 5745000},
		{SSID: "xX_D4rkR0ut3r_Xx", Security: wifi.SecurityWPA2Personal, Signal: 23},
		{SSID: "Luke I am your WiFi", Security: wifi.SecurityWEP, Signal: 51},
		{SSID: "FreeHugsAndWiFi", Security: wifi.SecurityOpen, Signal: 60},
	}
	return &Backend{
		Networks:    networks,
		Secrets:     map[string]wifi.Secret{"Password is password": wifi.NewSecret("password"), "HideYoKidsHideYoWiFi": wifi.NewSecret("hidden")},
		ActionSleep: DefaultActionSleep,
		PushEvents:  true,
	}
}

func (m *Backend) record(op string, err error) error {
	m.Ops = append(m.Ops, op)
	return err
}

func (m *Backend) sleep() {
	if m.ActionSleep > 0 {
		time.Sleep(m.ActionSleep)
	}
}

func (m *Backend) push(ev wifi.ConnectionEvent) {
	if m.PushEvents && m.queue != nil {
		m.queue.Push(ev)
	}
}

func (m *Backend) find(ssid string) int {
	for i := range m.Networks {
		if m.Networks[i].SSID == ssid {
			return i
		}
	}
	return -1
}

func (m *Backend) setConnected(ssid string) {
	m.Connected = ssid
	for i := range m.Networks {
		m.Networks[i].IsConnected = m.Networks[i].SSID == ssid && ssid != ""
	}
}

func (m *Backend) RequestScan() error {
	m.sleep()
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.Errs["RequestScan"]; err != nil {
		return m.record("RequestScan", err)
	}
	// Fresh survey, fresh signal readings.
	r := rand.New(rand.NewSource(time.Now().Unix()))
	for i := range m.Networks {
		m.Networks[i].Signal = uint8(r.Intn(70) + 30)
	}
	return m.record("RequestScan", nil)
}

func (m *Backend) ListNetworks() ([]wifi.Network, error) {
	m.sleep()
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.Errs["ListNetworks"]; err != nil {
		return nil, err
	}
	out := make([]wifi.Network, len(m.Networks))
	copy(out, m.Networks)
	out = wifi.MergeNetworks(out)
	wifi.SortNetworks(out)
	return out, nil
}

func (m *Backend) ConnectedSSID() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.Errs["ConnectedSSID"]; err != nil {
		return "", err
	}
	return m.Connected, nil
}

func (m *Backend) ConnectSaved(ssid string) error {
	m.sleep()
	m.mu.Lock()
	defer m.mu.Unlock()
	op := fmt.Sprintf("ConnectSaved(%s)", ssid)
	if err := m.Errs["ConnectSaved"]; err != nil {
		return m.record(op, err)
	}
	i := m.find(ssid)
	if i < 0 || !m.Networks[i].IsSaved {
		return m.record(op, wifi.NewError(wifi.KindConnection, 2))
	}
	m.setConnected(ssid)
	m.push(wifi.Connected(ssid))
	return m.record(op, nil)
}

func (m *Backend) ConnectWithCredential(ssid string, security wifi.Security, cipher string, password wifi.Secret, hidden bool) error {
	m.sleep()
	m.mu.Lock()
	defer m.mu.Unlock()
	op := fmt.Sprintf("ConnectWithCredential(%s)", ssid)
	if err := m.Errs["ConnectWithCredential"]; err != nil {
		return m.record(op, err)
	}
	if i := m.find(ssid); i >= 0 {
		m.Networks[i].IsSaved = true
		m.Networks[i].AutoConnect = true
	} else {
		m.Networks = append(m.Networks, wifi.Network{
			SSID: ssid, Security: security, Cipher: cipher,
			IsSaved: true, AutoConnect: true, Signal: 50,
		})
	}
	if m.Secrets == nil {
		m.Secrets = make(map[string]wifi.Secret)
	}
	m.Secrets[ssid] = password
	m.setConnected(ssid)
	m.push(wifi.Connected(ssid))
	return m.record(op, nil)
}

func (m *Backend) ConnectOpen(ssid string, hidden bool) error {
	m.sleep()
	m.mu.Lock()
	defer m.mu.Unlock()
	op := fmt.Sprintf("ConnectOpen(%s)", ssid)
	if err := m.Errs["ConnectOpen"]; err != nil {
		return m.record(op, err)
	}
	if i := m.find(ssid); i >= 0 {
		m.Networks[i].IsSaved = true
	} else {
		m.Networks = append(m.Networks, wifi.Network{SSID: ssid, Security: wifi.SecurityOpen, IsSaved: true, Signal: 50})
	}
	m.setConnected(ssid)
	m.push(wifi.Connected(ssid))
	return m.record(op, nil)
}

func (m *Backend) Disconnect() error {
	m.sleep()
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.Errs["Disconnect"]; err != nil {
		return m.record("Disconnect", err)
	}
	was := m.Connected
	m.setConnected("")
	if was != "" {
		m.push(wifi.Disconnected(was))
	}
	return m.record("Disconnect", nil)
}

func (m *Backend) Forget(ssid string) error {
	m.sleep()
	m.mu.Lock()
	defer m.mu.Unlock()
	op := fmt.Sprintf("Forget(%s)", ssid)
	if err := m.Errs["Forget"]; err != nil {
		return m.record(op, err)
	}
	if i := m.find(ssid); i >= 0 {
		m.Networks[i].IsSaved = false
		m.Networks[i].AutoConnect = false
	}
	delete(m.Secrets, ssid)
	if m.Connected == ssid {
		m.setConnected("")
	}
	return m.record(op, nil)
}

func (m *Backend) SetAutoConnect(ssid string, enabled bool) error {
	m.sleep()
	m.mu.Lock()
	defer m.mu.Unlock()
	op := fmt.Sprintf("SetAutoConnect(%s,%t)", ssid, enabled)
	if err := m.Errs["SetAutoConnect"]; err != nil {
		return m.record(op, err)
	}
	i := m.find(ssid)
	if i < 0 || !m.Networks[i].IsSaved {
		return m.record(op, wifi.NewError(wifi.KindProfileSet, 2))
	}
	m.Networks[i].AutoConnect = enabled
	return m.record(op, nil)
}

// SavedProfiles lists saved networks, plus remembered networks that are no
// longer in the scan results.
func (m *Backend) SavedProfiles() ([]wifi.StoredProfile, error) {
	m.sleep()
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.Errs["SavedProfiles"]; err != nil {
		return nil, err
	}
	var profiles []wifi.StoredProfile
	seen := make(map[string]bool)
	for _, n := range m.Networks {
		if !n.IsSaved {
			continue
		}
		seen[n.SSID] = true
		profiles = append(profiles, wifi.StoredProfile{
			Name:        n.SSID,
			AutoConnect: n.AutoConnect,
			Security:    n.Security,
			KeyMaterial: m.Secrets[n.SSID],
		})
	}
	for ssid, secret := range m.Secrets {
		if !seen[ssid] {
			profiles = append(profiles, wifi.StoredProfile{
				Name:        ssid,
				AutoConnect: true,
				Security:    wifi.SecurityWPA2Personal,
				KeyMaterial: secret,
			})
		}
	}
	return profiles, nil
}

func (m *Backend) Password(ssid string) (wifi.Secret, error) {
	m.sleep()
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.Errs["Password"]; err != nil {
		return wifi.Secret{}, err
	}
	return m.Secrets[ssid], nil
}

// Listen attaches q until the returned closer is closed. Only one listener
// at a time, same as the native subsystems.
func (m *Backend) Listen(q *wifi.EventQueue) (io.Closer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.Errs["Listen"]; err != nil {
		return nil, err
	}
	m.queue = q
	return &mockListener{backend: m}, nil
}

// PushEvent injects an event as if the OS had sent a notification.
func (m *Backend) PushEvent(ev wifi.ConnectionEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.queue != nil {
		m.queue.Push(ev)
	}
}

type mockListener struct {
	backend *Backend
	once    sync.Once
}

func (l *mockListener) Close() error {
	l.once.Do(func() {
		l.backend.mu.Lock()
		l.backend.queue = nil
		l.backend.mu.Unlock()
	})
	return nil
}

var _ wifi.Backend = (*Backend)(nil)
