package wifi

import (
	"reflect"
	"testing"
)

func TestMergeNetworks(t *testing.T) {
	tests := []struct {
		name         string
		observations []Network
		expected     []Network
	}{
		{
			name: "Two measurements keep the strongest signal",
			observations: []Network{
				{SSID: "Cafe", Security: SecurityWPA2Personal, Signal: 40},
				{SSID: "Cafe", Security: SecurityWPA2Personal, Signal: 70},
			},
			expected: []Network{
				{SSID: "Cafe", Security: SecurityWPA2Personal, Signal: 70},
			},
		},
		{
			name: "Saved and connected flags are sticky",
			observations: []Network{
				{SSID: "Cafe", Security: SecurityWPA2Personal, Signal: 70, IsConnected: true},
				{SSID: "Cafe", Security: SecurityWPA2Personal, Signal: 40, IsSaved: true, AutoConnect: true},
			},
			expected: []Network{
				{SSID: "Cafe", Security: SecurityWPA2Personal, Signal: 70, IsSaved: true, IsConnected: true, AutoConnect: true},
			},
		},
		{
			name: "Same SSID with different security stays separate",
			observations: []Network{
				{SSID: "Cafe", Security: SecurityWPA2Personal, Signal: 40},
				{SSID: "Cafe", Security: SecurityOpen, Signal: 70},
			},
			expected: []Network{
				{SSID: "Cafe", Security: SecurityWPA2Personal, Signal: 40},
				{SSID: "Cafe", Security: SecurityOpen, Signal: 70},
			},
		},
		{
			name: "Channel fills in from a later observation",
			observations: []Network{
				{SSID: "Attic", Security: SecurityWPA3Personal, Signal: 20},
				{SSID: "Attic", Security: SecurityWPA3Personal, Signal: 10, Channel: 36, FrequencyKHz: 5180000},
			},
			expected: []Network{
				{SSID: "Attic", Security: SecurityWPA3Personal, Signal: 20, Channel: 36, FrequencyKHz: 5180000},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MergeNetworks(tt.observations)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("MergeNetworks() = %+v, want %+v", got, tt.expected)
			}
		})
	}
}

func TestSortNetworks(t *testing.T) {
	networks := []Network{
		{SSID: "Weak", Signal: 10},
		{SSID: "SavedWeak", Signal: 5, IsSaved: true},
		{SSID: "Strong", Signal: 90},
		{SSID: "Home", Signal: 50, IsSaved: true, IsConnected: true},
		{SSID: "SavedStrong", Signal: 80, IsSaved: true},
	}
	SortNetworks(networks)

	want := []string{"Home", "SavedStrong", "SavedWeak", "Strong", "Weak"}
	for i, ssid := range want {
		if networks[i].SSID != ssid {
			t.Errorf("position %d: got %q, want %q (full order: %+v)", i, networks[i].SSID, ssid, networks)
		}
	}
}

func TestSortNetworksTiebreak(t *testing.T) {
	networks := []Network{
		{SSID: "beta", Signal: 40},
		{SSID: "alpha", Signal: 40},
	}
	SortNetworks(networks)
	if networks[0].SSID != "alpha" {
		t.Errorf("expected alphabetical tiebreak, got %q first", networks[0].SSID)
	}
}

func TestChannelForFrequency(t *testing.T) {
	tests := []struct {
		khz     uint32
		channel uint32
	}{
		{2412000, 1},
		{2437000, 6},
		{2462000, 11},
		{2484000, 14},
		{5180000, 36},
		{5745000, 149},
		{5955000, 1},
		{6115000, 33},
		{900000, 0},
		{0, 0},
	}
	for _, tt := range tests {
		if got := ChannelForFrequency(tt.khz); got != tt.channel {
			t.Errorf("ChannelForFrequency(%d) = %d, want %d", tt.khz, got, tt.channel)
		}
	}
}

func TestBand(t *testing.T) {
	tests := []struct {
		khz  uint32
		band string
	}{
		{2412000, "2.4 GHz"},
		{5180000, "5 GHz"},
		{6115000, "6 GHz"},
		{100, ""},
	}
	for _, tt := range tests {
		if got := Band(tt.khz); got != tt.band {
			t.Errorf("Band(%d) = %q, want %q", tt.khz, got, tt.band)
		}
	}
}
