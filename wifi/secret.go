package wifi

import "log/slog"

// redacted is what a Secret prints as through every incidental channel.
const redacted = "[redacted]"

// Secret holds a credential so that it does not leak through fmt verbs,
// JSON encoding, or structured logs. The value only comes out of Expose.
type Secret struct {
	value string
}

// NewSecret wraps a credential string.
func NewSecret(value string) Secret {
	return Secret{value: value}
}

// Expose returns the wrapped value.
func (s Secret) Expose() string {
	return s.value
}

// IsZero reports whether no credential is present.
func (s Secret) IsZero() bool {
	return s.value == ""
}

func (s Secret) String() string {
	return redacted
}

// GoString guards %#v.
func (s Secret) GoString() string {
	return "wifi.Secret(" + redacted + ")"
}

func (s Secret) MarshalText() ([]byte, error) {
	return []byte(redacted), nil
}

// LogValue guards slog attributes.
func (s Secret) LogValue() slog.Value {
	return slog.StringValue(redacted)
}
