package wifi

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestReasonString(t *testing.T) {
	tests := []struct {
		code     uint32
		expected string
	}{
		{0, "Success"},
		{1, "Unknown Failure"},
		{0x00050004, "Incorrect Password"},
		{0x00038002, "Connection Failed (Network Not Available or Wrong Password)"},
		{0x0002800B, "Driver Disconnected (Possible Wrong Password)"},
	}
	for _, tt := range tests {
		if got := ReasonString(tt.code); got != tt.expected {
			t.Errorf("ReasonString(%#x) = %q, want %q", tt.code, got, tt.expected)
		}
	}
}

func TestReasonStringUnknown(t *testing.T) {
	// Unknown codes must keep both the decimal and hex form.
	codes := []uint32{0xDEADBEEF, 42, 0x00099999}
	for _, code := range codes {
		got := ReasonString(code)
		if !strings.Contains(got, fmt.Sprintf("%d", code)) {
			t.Errorf("ReasonString(%#x) = %q, missing decimal form", code, got)
		}
		if !strings.Contains(got, fmt.Sprintf("0x%X", code)) {
			t.Errorf("ReasonString(%#x) = %q, missing hex form", code, got)
		}
	}
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		err      error
		expected string
	}{
		{NewError(KindHandleOpen, 5), "failed to open WLAN handle (code: 5)"},
		{NewError(KindConnection, 1168), "failed to connect (code: 1168)"},
		{NewReasonError(KindProfileAdd, 87, 0x00038006), "failed to add profile (code: 87, reason: Profile Invalid)"},
		{Internal("boom"), "internal error: boom"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.expected {
			t.Errorf("Error() = %q, want %q", got, tt.expected)
		}
	}
}

func TestIsKind(t *testing.T) {
	err := fmt.Errorf("connecting: %w", NewError(KindConnection, 5))
	if !IsKind(err, KindConnection) {
		t.Error("IsKind should see through wrapping")
	}
	if IsKind(err, KindScan) {
		t.Error("IsKind matched the wrong kind")
	}
	if IsKind(errors.New("plain"), KindConnection) {
		t.Error("IsKind matched a non-operation error")
	}
}
