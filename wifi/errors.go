package wifi

import (
	"errors"
	"fmt"
)

// Kind classifies a failed wireless operation.
type Kind int

const (
	KindInternal Kind = iota
	KindHandleOpen
	KindInterfaceEnum
	KindNetworkList
	KindScan
	KindNotificationRegistration
	KindConnection
	KindProfileAdd
	KindProfileGet
	KindProfileSet
	KindProfileDelete
	KindDisconnect
)

var (
	// ErrNoInterface is returned when the adapter enumeration succeeds but
	// finds nothing.
	ErrNoInterface = errors.New("no wifi interface found")
	// ErrProfileInvalid is returned when a stored profile document has no
	// connectionMode element to rewrite.
	ErrProfileInvalid = errors.New("could not find connectionMode in profile XML")
)

// Error is a failed wireless operation carrying the raw OS status and, where
// the OS supplies one, a secondary reason code.
type Error struct {
	Kind   Kind
	Code   uint32
	Reason uint32
	Msg    string // only for KindInternal
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindHandleOpen:
		return fmt.Sprintf("failed to open WLAN handle (code: %d)", e.Code)
	case KindInterfaceEnum:
		return fmt.Sprintf("failed to enumerate interfaces (code: %d)", e.Code)
	case KindNetworkList:
		return fmt.Sprintf("failed to get available networks (code: %d)", e.Code)
	case KindScan:
		return fmt.Sprintf("failed to scan networks (code: %d)", e.Code)
	case KindNotificationRegistration:
		return fmt.Sprintf("failed to register notification (code: %d)", e.Code)
	case KindConnection:
		return fmt.Sprintf("failed to connect (code: %d)", e.Code)
	case KindProfileAdd:
		return fmt.Sprintf("failed to add profile (code: %d, reason: %s)", e.Code, ReasonString(e.Reason))
	case KindProfileGet:
		return fmt.Sprintf("failed to get profile (code: %d)", e.Code)
	case KindProfileSet:
		return fmt.Sprintf("failed to set profile (code: %d, reason: %s)", e.Code, ReasonString(e.Reason))
	case KindProfileDelete:
		return fmt.Sprintf("failed to delete profile (code: %d)", e.Code)
	case KindDisconnect:
		return fmt.Sprintf("failed to disconnect (code: %d)", e.Code)
	}
	return fmt.Sprintf("internal error: %s", e.Msg)
}

// NewError builds an operation error from an OS status code.
func NewError(kind Kind, code uint32) *Error {
	return &Error{Kind: kind, Code: code}
}

// NewReasonError builds an operation error carrying a secondary reason code.
func NewReasonError(kind Kind, code, reason uint32) *Error {
	return &Error{Kind: kind, Code: code, Reason: reason}
}

// Internal wraps an unclassifiable failure.
func Internal(msg string) *Error {
	return &Error{Kind: KindInternal, Msg: msg}
}

// IsKind reports whether err is a wireless operation error of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

// reasonStrings decodes the vendor reason codes attached to failed
// connection attempts. The set mirrors what drivers are actually seen to
// emit; anything else falls through to the formatted default.
var reasonStrings = map[uint32]string{
	0:          "Success",
	1:          "Unknown Failure",
	0x00010001: "Network Not Compatible",
	0x00010002: "Profile Not Compatible",
	0x00028002: "Association Failed",
	0x00028003: "Association Timeout",
	0x00028004: "Pre-Security Failure",
	0x00028005: "Start Security Failure",
	0x00028006: "Security Failure",
	0x00028007: "Security Timeout",
	0x00028008: "Roaming Failure",
	0x00028009: "Roaming Security Failure",
	0x0002800A: "Ad-hoc Security Failure",
	0x0002800B: "Driver Disconnected (Possible Wrong Password)",
	0x0002800C: "Driver Operation Failure",
	0x0002800D: "IHV Not Available",
	0x0002800E: "IHV Not Responding",
	0x00038001: "ACM Base",
	0x00038002: "Connection Failed (Network Not Available or Wrong Password)",
	0x00038003: "Profile Not Found",
	0x00038004: "Profile Already Exists",
	0x00038005: "Profile Name Too Long",
	0x00038006: "Profile Invalid",
	0x00038014: "Connection Failed (Profile Issue)",
	0x00050004: "Incorrect Password",
	0x00048005: "Incorrect Password (Key Exchange Timeout)",
	0x00048014: "Authentication Timeout (Possible Wrong Password)",
	0x00080006: "MSM Security Missing",
}

// ReasonString decodes a connection-failure reason code to a human-readable
// string. Unknown codes keep both the decimal and hex form so they can be
// reported upstream.
func ReasonString(code uint32) string {
	if s, ok := reasonStrings[code]; ok {
		return s
	}
	return fmt.Sprintf("Unknown Error (Code: %d, 0x%X)", code, code)
}
