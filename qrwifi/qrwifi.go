// Package qrwifi renders join-this-network QR codes in the WIFI: URI scheme
// understood by phone cameras.
package qrwifi

import (
	"strings"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/wifui/wifui/wifi"
)

// Escape handles the special character escaping for SSID and password fields
// of the WIFI: scheme.
func Escape(s string) string {
	r := strings.NewReplacer(
		`\`, `\\`,
		`;`, `\;`,
		`,`, `\,`,
		`:`, `\:`,
		`"`, `\"`,
	)
	return r.Replace(s)
}

// JoinString builds the WIFI: payload for a network.
func JoinString(ssid string, password wifi.Secret, security wifi.Security, hidden bool) string {
	var b strings.Builder

	b.WriteString("WIFI:S:")
	b.WriteString(Escape(ssid))
	b.WriteString(";")

	switch {
	case security == wifi.SecurityWEP:
		b.WriteString("T:WEP;P:")
		b.WriteString(Escape(password.Expose()))
		b.WriteString(";")
	case security.IsOpen():
		b.WriteString("T:nopass;")
	case security != wifi.SecurityUnknown:
		// Every WPA generation uses the same tag.
		b.WriteString("T:WPA;P:")
		b.WriteString(Escape(password.Expose()))
		b.WriteString(";")
	default:
		// Don't set T if security is unknown, most readers will assume WPA.
	}

	if hidden {
		b.WriteString("H:true;")
	}

	b.WriteString(";;")
	return b.String()
}

// Render returns the TUI-friendly QR code string for joining a network.
func Render(ssid string, password wifi.Secret, security wifi.Security, hidden bool) (string, error) {
	q, err := qrcode.New(JoinString(ssid, password, security, hidden), qrcode.Medium)
	if err != nil {
		return "", err
	}
	return q.ToSmallString(false), nil
}
