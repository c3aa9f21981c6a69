// Package wlanapi drives the Windows WLAN subsystem (wlanapi.dll). The
// profile codec in this file is pure and portable; everything that touches
// the DLL lives in the _windows files.
package wlanapi

import (
	"encoding/xml"
	"strings"

	"github.com/wifui/wifui/wifi"
)

// profileNamespace is the fixed schema namespace the OS profile store
// expects on the root element.
const profileNamespace = "http://www.microsoft.com/networking/WLAN/profile/v1"

// xmlDecl matches the declaration the store emits on profiles it returns.
const xmlDecl = `<?xml version="1.0"?>` + "\n"

type profileDoc struct {
	XMLName        xml.Name          `xml:"WLANProfile"`
	Xmlns          string            `xml:"xmlns,attr"`
	Name           string            `xml:"name"`
	SSIDConfig     profileSSIDConfig `xml:"SSIDConfig"`
	ConnectionType string            `xml:"connectionType"`
	ConnectionMode string            `xml:"connectionMode"`
	MSM            profileMSM        `xml:"MSM"`
}

type profileSSIDConfig struct {
	SSID         profileSSID `xml:"SSID"`
	NonBroadcast bool        `xml:"nonBroadcast,omitempty"`
}

type profileSSID struct {
	Name string `xml:"name"`
}

type profileMSM struct {
	Security profileSecurity `xml:"security"`
}

type profileSecurity struct {
	AuthEncryption profileAuthEncryption `xml:"authEncryption"`
	SharedKey      *profileSharedKey     `xml:"sharedKey,omitempty"`
}

type profileAuthEncryption struct {
	Authentication string `xml:"authentication"`
	Encryption     string `xml:"encryption"`
	UseOneX        bool   `xml:"useOneX"`
}

type profileSharedKey struct {
	KeyType     string `xml:"keyType"`
	Protected   bool   `xml:"protected"`
	KeyMaterial string `xml:"keyMaterial"`
}

// authEncryptionTokens maps a security descriptor and cipher to the tokens
// the profile schema wants inside authEncryption.
func authEncryptionTokens(security wifi.Security, cipher string) (auth, enc string) {
	switch security {
	case wifi.SecurityOpen:
		auth, enc = "open", "none"
	case wifi.SecurityWEP:
		auth, enc = "shared", "WEP"
	case wifi.SecurityWPAPersonal:
		auth, enc = "WPAPSK", "TKIP"
		if cipher == "AES" {
			enc = "AES"
		}
	case wifi.SecurityWPAEnterprise:
		auth, enc = "WPA", "TKIP"
		if cipher == "AES" {
			enc = "AES"
		}
	case wifi.SecurityWPA2Enterprise:
		auth, enc = "WPA2", "AES"
	case wifi.SecurityWPA3Personal:
		auth, enc = "WPA3SAE", "AES"
	case wifi.SecurityWPA3Enterprise:
		auth, enc = "WPA3ENT192", "AES"
	default:
		auth, enc = "WPA2PSK", "AES"
	}
	if cipher == "GCMP" {
		enc = "GCMP"
	}
	return auth, enc
}

// BuildProfileXML produces the credential-profile document for a network.
//
// connectionMode is "auto" when a password is supplied and "manual"
// otherwise: a secured network added by hand should be remembered and
// rejoined, an open one should not. This mirrors what the OS itself does for
// networks joined through its own UI, so it is kept as-is rather than
// unified.
func BuildProfileXML(ssid string, security wifi.Security, cipher string, password wifi.Secret, hidden bool) string {
	mode := "manual"
	if !password.IsZero() {
		mode = "auto"
	}

	auth, enc := authEncryptionTokens(security, cipher)
	doc := profileDoc{
		Xmlns:          profileNamespace,
		Name:           ssid,
		SSIDConfig:     profileSSIDConfig{SSID: profileSSID{Name: ssid}, NonBroadcast: hidden},
		ConnectionType: "ESS",
		ConnectionMode: mode,
		MSM: profileMSM{Security: profileSecurity{
			AuthEncryption: profileAuthEncryption{Authentication: auth, Encryption: enc},
		}},
	}
	if !password.IsZero() {
		doc.MSM.Security.SharedKey = &profileSharedKey{
			KeyType:     "passPhrase",
			KeyMaterial: password.Expose(),
		}
	}

	out, err := xml.Marshal(doc)
	if err != nil {
		// Marshaling a fixed struct over strings cannot fail in practice.
		return ""
	}
	return xmlDecl + string(out)
}

// ReadAutoConnect reports whether a stored profile document has auto-connect
// enabled, i.e. its mode element literally equals auto.
func ReadAutoConnect(doc string) bool {
	return strings.Contains(doc, "<connectionMode>auto</connectionMode>")
}

// SetAutoConnect rewrites the connection mode of a stored profile document.
// The rewrite is a literal element replacement rather than a parse/rebuild:
// profiles returned by the OS carry elements this codec does not model, and
// they must survive the round trip byte for byte.
func SetAutoConnect(doc string, enable bool) (string, error) {
	mode := "manual"
	if enable {
		mode = "auto"
	}
	replacement := "<connectionMode>" + mode + "</connectionMode>"

	switch {
	case strings.Contains(doc, "<connectionMode>auto</connectionMode>"):
		return strings.ReplaceAll(doc, "<connectionMode>auto</connectionMode>", replacement), nil
	case strings.Contains(doc, "<connectionMode>manual</connectionMode>"):
		return strings.ReplaceAll(doc, "<connectionMode>manual</connectionMode>", replacement), nil
	}
	return "", wifi.ErrProfileInvalid
}

// ReadAuthentication returns the security descriptor a stored profile
// declares in its authentication element.
func ReadAuthentication(doc string) wifi.Security {
	dec := xml.NewDecoder(strings.NewReader(doc))
	for {
		tok, err := dec.Token()
		if err != nil {
			return wifi.SecurityUnknown
		}
		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "authentication" {
			continue
		}
		var auth string
		if err := dec.DecodeElement(&auth, &start); err != nil {
			return wifi.SecurityUnknown
		}
		return securityFromAuthToken(auth)
	}
}

func securityFromAuthToken(auth string) wifi.Security {
	switch auth {
	case "open":
		return wifi.SecurityOpen
	case "shared":
		return wifi.SecurityWEP
	case "WPAPSK":
		return wifi.SecurityWPAPersonal
	case "WPA2PSK":
		return wifi.SecurityWPA2Personal
	case "WPA3SAE":
		return wifi.SecurityWPA3Personal
	case "WPA":
		return wifi.SecurityWPAEnterprise
	case "WPA2":
		return wifi.SecurityWPA2Enterprise
	case "WPA3ENT192", "WPA3ENT":
		return wifi.SecurityWPA3Enterprise
	}
	return wifi.SecurityUnknown
}

// ExtractKeyMaterial pulls the stored key out of a profile document. The
// second return is false for open networks and for profiles where the OS
// withheld the plaintext key.
func ExtractKeyMaterial(doc string) (wifi.Secret, bool) {
	dec := xml.NewDecoder(strings.NewReader(doc))
	for {
		tok, err := dec.Token()
		if err != nil {
			return wifi.Secret{}, false
		}
		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "keyMaterial" {
			continue
		}
		var key string
		if err := dec.DecodeElement(&key, &start); err != nil || key == "" {
			return wifi.Secret{}, false
		}
		return wifi.NewSecret(key), true
	}
}
