package wifi

// Security is the closed set of security descriptors a network can carry.
// It replaces the string-typed auth values the OS hands back; the two
// conversion functions below are total in both directions.
type Security int

const (
	SecurityUnknown Security = iota
	SecurityOpen
	SecurityWEP
	SecurityWPAPersonal
	SecurityWPA2Personal
	SecurityWPA3Personal
	SecurityWPAEnterprise
	SecurityWPA2Enterprise
	SecurityWPA3Enterprise
)

// wireTokens maps each descriptor to its canonical wire token, the
// authentication string used by the OS network list.
var wireTokens = map[Security]string{
	SecurityUnknown:        "Unknown",
	SecurityOpen:           "Open",
	SecurityWEP:            "Shared",
	SecurityWPAPersonal:    "WPA-PSK",
	SecurityWPA2Personal:   "WPA2-PSK",
	SecurityWPA3Personal:   "WPA3-SAE",
	SecurityWPAEnterprise:  "WPA",
	SecurityWPA2Enterprise: "WPA2",
	SecurityWPA3Enterprise: "WPA3",
}

// WireToken returns the authentication token for the descriptor.
func (s Security) WireToken() string {
	if t, ok := wireTokens[s]; ok {
		return t
	}
	return "Unknown"
}

// SecurityFromToken parses an authentication token as reported by the OS.
// Unrecognized tokens map to SecurityUnknown rather than failing: the list
// view still has to render networks with exotic auth schemes.
func SecurityFromToken(token string) Security {
	switch token {
	case "Open", "open":
		return SecurityOpen
	case "Shared", "WEP":
		return SecurityWEP
	case "WPA-PSK", "WPA-None":
		return SecurityWPAPersonal
	case "WPA2-PSK":
		return SecurityWPA2Personal
	case "WPA3-SAE":
		return SecurityWPA3Personal
	case "WPA":
		return SecurityWPAEnterprise
	case "WPA2":
		return SecurityWPA2Enterprise
	case "WPA3", "WPA3ENT", "WPA3ENT192":
		return SecurityWPA3Enterprise
	}
	return SecurityUnknown
}

// String implements fmt.Stringer with the user-facing label.
func (s Security) String() string {
	switch s {
	case SecurityOpen:
		return "Open"
	case SecurityWEP:
		return "WEP"
	case SecurityWPAPersonal:
		return "WPA-Personal"
	case SecurityWPA2Personal:
		return "WPA2-Personal"
	case SecurityWPA3Personal:
		return "WPA3-Personal"
	case SecurityWPAEnterprise:
		return "WPA-Enterprise"
	case SecurityWPA2Enterprise:
		return "WPA2-Enterprise"
	case SecurityWPA3Enterprise:
		return "WPA3-Enterprise"
	}
	return "Unknown"
}

// IsOpen reports whether connecting needs no credential.
func (s Security) IsOpen() bool {
	return s == SecurityOpen
}
