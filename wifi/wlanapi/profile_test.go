package wlanapi

import (
	"errors"
	"strings"
	"testing"

	"github.com/wifui/wifui/wifi"
)

func TestBuildProfileXMLSecured(t *testing.T) {
	doc := BuildProfileXML("Home", wifi.SecurityWPA2Personal, "AES", wifi.NewSecret("hunter2"), false)

	for _, want := range []string{
		`<?xml version="1.0"?>`,
		`<WLANProfile xmlns="http://www.microsoft.com/networking/WLAN/profile/v1">`,
		"<name>Home</name>",
		"<connectionType>ESS</connectionType>",
		"<connectionMode>auto</connectionMode>",
		"<authentication>WPA2PSK</authentication>",
		"<encryption>AES</encryption>",
		"<useOneX>false</useOneX>",
		"<keyType>passPhrase</keyType>",
		"<protected>false</protected>",
		"<keyMaterial>hunter2</keyMaterial>",
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("profile missing %q:\n%s", want, doc)
		}
	}
	if strings.Contains(doc, "nonBroadcast") {
		t.Errorf("visible network should not carry nonBroadcast:\n%s", doc)
	}
}

func TestBuildProfileXMLOpen(t *testing.T) {
	doc := BuildProfileXML("Cafe Guest", wifi.SecurityOpen, "", wifi.Secret{}, true)

	for _, want := range []string{
		"<connectionMode>manual</connectionMode>",
		"<authentication>open</authentication>",
		"<encryption>none</encryption>",
		"<nonBroadcast>true</nonBroadcast>",
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("profile missing %q:\n%s", want, doc)
		}
	}
	if strings.Contains(doc, "sharedKey") {
		t.Errorf("open profile must not carry a sharedKey element:\n%s", doc)
	}
}

func TestAuthEncryptionTokens(t *testing.T) {
	tests := []struct {
		security wifi.Security
		cipher   string
		auth     string
		enc      string
	}{
		{wifi.SecurityOpen, "", "open", "none"},
		{wifi.SecurityWEP, "", "shared", "WEP"},
		{wifi.SecurityWPAPersonal, "TKIP", "WPAPSK", "TKIP"},
		{wifi.SecurityWPAPersonal, "AES", "WPAPSK", "AES"},
		{wifi.SecurityWPA2Personal, "AES", "WPA2PSK", "AES"},
		{wifi.SecurityWPA2Personal, "GCMP", "WPA2PSK", "GCMP"},
		{wifi.SecurityWPA3Personal, "AES", "WPA3SAE", "AES"},
		{wifi.SecurityWPAEnterprise, "AES", "WPA", "AES"},
		{wifi.SecurityWPA2Enterprise, "AES", "WPA2", "AES"},
		{wifi.SecurityWPA3Enterprise, "AES", "WPA3ENT192", "AES"},
		{wifi.SecurityUnknown, "", "WPA2PSK", "AES"},
	}
	for _, tt := range tests {
		auth, enc := authEncryptionTokens(tt.security, tt.cipher)
		if auth != tt.auth || enc != tt.enc {
			t.Errorf("authEncryptionTokens(%v, %q) = (%q, %q), want (%q, %q)",
				tt.security, tt.cipher, auth, enc, tt.auth, tt.enc)
		}
	}
}

func TestProfileKeyMaterialRoundTrip(t *testing.T) {
	passwords := []string{
		"plain",
		`has & ampersand`,
		`angle <brackets> everywhere`,
		`"quoted" and 'apostrophes'`,
		`all of & < > " ' at once`,
	}
	for _, pw := range passwords {
		doc := BuildProfileXML("Net", wifi.SecurityWPA2Personal, "AES", wifi.NewSecret(pw), false)
		got, ok := ExtractKeyMaterial(doc)
		if !ok {
			t.Errorf("key %q: no key material extracted:\n%s", pw, doc)
			continue
		}
		if got.Expose() != pw {
			t.Errorf("key round trip: got %q, want %q", got.Expose(), pw)
		}
	}
}

func TestProfileSSIDEscaping(t *testing.T) {
	ssid := `Bar & <Grill> "Wifi"`
	doc := BuildProfileXML(ssid, wifi.SecurityWPA2Personal, "AES", wifi.NewSecret("pw"), false)
	if strings.Contains(doc, "<Grill>") {
		t.Errorf("SSID was not escaped:\n%s", doc)
	}
	if !strings.Contains(doc, "Bar &amp; &lt;Grill&gt;") {
		t.Errorf("escaped SSID not found:\n%s", doc)
	}
}

func TestExtractKeyMaterialAbsent(t *testing.T) {
	open := BuildProfileXML("Cafe", wifi.SecurityOpen, "", wifi.Secret{}, false)
	if _, ok := ExtractKeyMaterial(open); ok {
		t.Error("open profile should yield no key material")
	}
	if _, ok := ExtractKeyMaterial("not xml at all"); ok {
		t.Error("garbage should yield no key material")
	}
	if _, ok := ExtractKeyMaterial("<keyMaterial></keyMaterial>"); ok {
		t.Error("empty key should yield no key material")
	}
}

func TestReadAuthentication(t *testing.T) {
	tests := []struct {
		security wifi.Security
		cipher   string
	}{
		{wifi.SecurityOpen, ""},
		{wifi.SecurityWEP, ""},
		{wifi.SecurityWPAPersonal, "TKIP"},
		{wifi.SecurityWPA2Personal, "AES"},
		{wifi.SecurityWPA3Personal, "AES"},
		{wifi.SecurityWPAEnterprise, "AES"},
		{wifi.SecurityWPA2Enterprise, "AES"},
		{wifi.SecurityWPA3Enterprise, "AES"},
	}
	for _, tt := range tests {
		doc := BuildProfileXML("Net", tt.security, tt.cipher, wifi.Secret{}, false)
		if got := ReadAuthentication(doc); got != tt.security {
			t.Errorf("ReadAuthentication(%v profile) = %v", tt.security, got)
		}
	}
	if got := ReadAuthentication("not xml"); got != wifi.SecurityUnknown {
		t.Errorf("ReadAuthentication(garbage) = %v, want unknown", got)
	}
}

func TestSetAutoConnect(t *testing.T) {
	// The document the OS returns carries elements the codec does not model.
	// They have to survive the rewrite untouched.
	stored := `<?xml version="1.0"?>
<WLANProfile xmlns="http://www.microsoft.com/networking/WLAN/profile/v1">
	<name>Home</name>
	<connectionMode>manual</connectionMode>
	<MacRandomization xmlns="http://www.microsoft.com/networking/WLAN/profile/v3">
		<enableRandomization>false</enableRandomization>
	</MacRandomization>
</WLANProfile>`

	enabled, err := SetAutoConnect(stored, true)
	if err != nil {
		t.Fatalf("SetAutoConnect: %v", err)
	}
	if !ReadAutoConnect(enabled) {
		t.Error("auto-connect not enabled after rewrite")
	}
	if !strings.Contains(enabled, "MacRandomization") {
		t.Error("unmodeled element lost in rewrite")
	}

	// Idempotent: rewriting to the current mode changes nothing.
	again, err := SetAutoConnect(enabled, true)
	if err != nil {
		t.Fatalf("SetAutoConnect (idempotent): %v", err)
	}
	if again != enabled {
		t.Error("rewriting to the same mode changed the document")
	}

	disabled, err := SetAutoConnect(enabled, false)
	if err != nil {
		t.Fatalf("SetAutoConnect (disable): %v", err)
	}
	if ReadAutoConnect(disabled) {
		t.Error("auto-connect still enabled after disabling")
	}
}

func TestSetAutoConnectInvalid(t *testing.T) {
	_, err := SetAutoConnect("<WLANProfile></WLANProfile>", true)
	if !errors.Is(err, wifi.ErrProfileInvalid) {
		t.Errorf("expected ErrProfileInvalid, got %v", err)
	}
}
