package mock

import (
	"errors"
	"testing"

	"github.com/wifui/wifui/wifi"
)

func newQuiet() *Backend {
	m := New()
	m.ActionSleep = 0
	return m
}

func TestConnectSavedRecordsAndConnects(t *testing.T) {
	m := newQuiet()
	if err := m.ConnectSaved("Password is password"); err != nil {
		t.Fatalf("ConnectSaved: %v", err)
	}
	ssid, err := m.ConnectedSSID()
	if err != nil {
		t.Fatalf("ConnectedSSID: %v", err)
	}
	if ssid != "Password is password" {
		t.Errorf("connected to %q", ssid)
	}
	if len(m.Ops) != 1 || m.Ops[0] != "ConnectSaved(Password is password)" {
		t.Errorf("ops = %v", m.Ops)
	}
}

func TestConnectSavedUnknown(t *testing.T) {
	m := newQuiet()
	err := m.ConnectSaved("Unencrypted_Honeypot") // visible but not saved
	if !wifi.IsKind(err, wifi.KindConnection) {
		t.Errorf("expected connection error, got %v", err)
	}
}

func TestScriptedError(t *testing.T) {
	m := newQuiet()
	boom := errors.New("boom")
	m.Errs = map[string]error{"Disconnect": boom}
	if err := m.Disconnect(); !errors.Is(err, boom) {
		t.Errorf("expected scripted error, got %v", err)
	}
	// Failed operations still land in the log.
	if len(m.Ops) != 1 || m.Ops[0] != "Disconnect" {
		t.Errorf("ops = %v", m.Ops)
	}
}

func TestForgetClearsStateAndSecret(t *testing.T) {
	m := newQuiet()
	if err := m.ConnectSaved("Password is password"); err != nil {
		t.Fatal(err)
	}
	if err := m.Forget("Password is password"); err != nil {
		t.Fatal(err)
	}
	if ssid, _ := m.ConnectedSSID(); ssid != "" {
		t.Errorf("still connected to %q after forget", ssid)
	}
	secret, err := m.Password("Password is password")
	if err != nil {
		t.Fatal(err)
	}
	if !secret.IsZero() {
		t.Error("secret survived forget")
	}
}

func TestListenerDeliversEvents(t *testing.T) {
	m := newQuiet()
	q := wifi.NewEventQueue()
	closer, err := m.Listen(q)
	if err != nil {
		t.Fatal(err)
	}

	if err := m.ConnectSaved("HideYoKidsHideYoWiFi"); err != nil {
		t.Fatal(err)
	}
	events := q.Drain()
	if len(events) != 1 || events[0].Kind != wifi.EventConnected || events[0].SSID != "HideYoKidsHideYoWiFi" {
		t.Errorf("events = %+v", events)
	}

	closer.Close()
	if err := m.Disconnect(); err != nil {
		t.Fatal(err)
	}
	if events := q.Drain(); events != nil {
		t.Errorf("events delivered after close: %+v", events)
	}
}

func TestSavedProfilesIncludesOutOfRange(t *testing.T) {
	m := newQuiet()
	m.Secrets["Old Apartment"] = wifi.NewSecret("movedout")

	profiles, err := m.SavedProfiles()
	if err != nil {
		t.Fatal(err)
	}
	byName := make(map[string]wifi.StoredProfile, len(profiles))
	for _, p := range profiles {
		byName[p.Name] = p
	}
	if len(byName) != 4 {
		t.Errorf("profiles = %v", profiles)
	}
	if p, ok := byName["Password is password"]; !ok || p.KeyMaterial.Expose() != "password" {
		t.Errorf("stored key missing: %+v", p)
	}
	if p, ok := byName["Old Apartment"]; !ok || p.KeyMaterial.Expose() != "movedout" {
		t.Errorf("out-of-range profile missing: %+v", p)
	}
}

func TestListNetworksSorted(t *testing.T) {
	m := newQuiet()
	if err := m.ConnectSaved("GET off my LAN"); err != nil {
		t.Fatal(err)
	}
	networks, err := m.ListNetworks()
	if err != nil {
		t.Fatal(err)
	}
	if len(networks) == 0 || networks[0].SSID != "GET off my LAN" {
		t.Errorf("connected network not first: %+v", networks[0])
	}
}
