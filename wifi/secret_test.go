package wifi

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"
)

func TestSecretDoesNotLeak(t *testing.T) {
	s := NewSecret("hunter2")

	for _, rendered := range []string{
		fmt.Sprint(s),
		fmt.Sprintf("%v", s),
		fmt.Sprintf("%+v", s),
		fmt.Sprintf("%#v", s),
		fmt.Sprintf("%s", s),
	} {
		if strings.Contains(rendered, "hunter2") {
			t.Errorf("secret leaked through formatting: %q", rendered)
		}
	}

	data, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(data), "hunter2") {
		t.Errorf("secret leaked through JSON: %s", data)
	}
}

func TestSecretExpose(t *testing.T) {
	s := NewSecret("hunter2")
	if s.Expose() != "hunter2" {
		t.Errorf("Expose() = %q", s.Expose())
	}
	if s.IsZero() {
		t.Error("non-empty secret reported zero")
	}
	if !NewSecret("").IsZero() {
		t.Error("empty secret not reported zero")
	}
}

func TestSecurityTokenRoundTrip(t *testing.T) {
	all := []Security{
		SecurityOpen, SecurityWEP,
		SecurityWPAPersonal, SecurityWPA2Personal, SecurityWPA3Personal,
		SecurityWPAEnterprise, SecurityWPA2Enterprise, SecurityWPA3Enterprise,
	}
	for _, s := range all {
		if got := SecurityFromToken(s.WireToken()); got != s {
			t.Errorf("round trip %v -> %q -> %v", s, s.WireToken(), got)
		}
	}
	if SecurityFromToken("Frobnicate-9") != SecurityUnknown {
		t.Error("unrecognized token should map to SecurityUnknown")
	}
}
