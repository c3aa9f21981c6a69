//go:build windows

package wlanapi

import (
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/wifui/wifui/wifi"
)

// requestScan asks the adapter for a fresh survey. The call returns as soon
// as the scan is queued; results land in the network list a couple of
// seconds later.
func requestScan(h *Handle, guid windows.GUID) error {
	r, _, _ := procWlanScan.Call(h.h, uintptr(unsafe.Pointer(&guid)), 0, 0, 0)
	if r != errSuccess {
		return wifi.NewError(wifi.KindScan, uint32(r))
	}
	return nil
}

func securityFromAlgorithms(auth, cipher uint32) (wifi.Security, string) {
	var sec wifi.Security
	switch auth {
	case dot11AuthOpen, dot11AuthOWE:
		sec = wifi.SecurityOpen
	case dot11AuthSharedKey:
		sec = wifi.SecurityWEP
	case dot11AuthWPAPSK, dot11AuthWPANone:
		sec = wifi.SecurityWPAPersonal
	case dot11AuthWPA:
		sec = wifi.SecurityWPAEnterprise
	case dot11AuthRSNAPSK:
		sec = wifi.SecurityWPA2Personal
	case dot11AuthRSNA:
		sec = wifi.SecurityWPA2Enterprise
	case dot11AuthWPA3SAE:
		sec = wifi.SecurityWPA3Personal
	case dot11AuthWPA3Ent, dot11AuthWPA3Ent11:
		sec = wifi.SecurityWPA3Enterprise
	default:
		sec = wifi.SecurityUnknown
	}

	var name string
	switch cipher {
	case dot11CipherNone:
		name = ""
	case dot11CipherWEP40, dot11CipherWEP104, dot11CipherWEP:
		name = "WEP"
	case dot11CipherTKIP:
		name = "TKIP"
	case dot11CipherCCMP:
		name = "AES"
	case dot11CipherGCMP, dot11CipherGCMP256:
		name = "GCMP"
	}
	return sec, name
}

func phyTypeName(phy uint32) string {
	switch phy {
	case dot11PhyFHSS, dot11PhyDSSS:
		return "802.11b"
	case dot11PhyOFDM:
		return "802.11a"
	case dot11PhyERP:
		return "802.11g"
	case dot11PhyHT:
		return "802.11n"
	case dot11PhyVHT:
		return "802.11ac"
	case dot11PhyHE:
		return "802.11ax"
	case dot11PhyEHT:
		return "802.11be"
	}
	return ""
}

// bssObservation is the per-BSS radio detail folded into a network entry.
type bssObservation struct {
	frequencyKHz uint32
	linkQuality  uint32
	phyType      uint32
}

// bssDetails collects the strongest BSS per SSID so the list can show the
// channel and band the client would most likely associate with.
func bssDetails(h *Handle, guid windows.GUID) map[string]bssObservation {
	var list *wlanBSSList
	r, _, _ := procWlanGetNetworkBssList.Call(
		h.h,
		uintptr(unsafe.Pointer(&guid)),
		0, // all SSIDs
		dot11BSSTypeAny,
		0, // security not relevant without an SSID filter
		0,
		uintptr(unsafe.Pointer(&list)),
	)
	if r != errSuccess {
		// Radio detail is cosmetic. The network list stands on its own.
		return nil
	}
	defer freeMemory(unsafe.Pointer(list))

	out := make(map[string]bssObservation, list.NumberOfItems)
	entries := unsafe.Slice(&list.BSSEntries[0], list.NumberOfItems)
	for i := range entries {
		e := &entries[i]
		ssid := e.Dot11SSID.String()
		if ssid == "" {
			continue
		}
		if prev, ok := out[ssid]; ok && prev.linkQuality >= e.LinkQuality {
			continue
		}
		out[ssid] = bssObservation{
			frequencyKHz: e.ChCenterFrequency,
			linkQuality:  e.LinkQuality,
			phyType:      e.PhyType,
		}
	}
	return out
}

// listNetworks builds the visible-network snapshot: available networks
// joined with per-BSS radio detail and the live connection attributes,
// deduplicated and sorted for display.
func listNetworks(h *Handle, guid windows.GUID) ([]wifi.Network, error) {
	var list *wlanAvailableNetworkList
	r, _, _ := procWlanGetAvailableNetworkList.Call(
		h.h,
		uintptr(unsafe.Pointer(&guid)),
		includeAllManualProfiles,
		0,
		uintptr(unsafe.Pointer(&list)),
	)
	if r != errSuccess {
		return nil, wifi.NewError(wifi.KindNetworkList, uint32(r))
	}
	defer freeMemory(unsafe.Pointer(list))

	details := bssDetails(h, guid)
	currentSSID, linkSpeed := currentConnection(h, guid)

	networks := make([]wifi.Network, 0, list.NumberOfItems)
	entries := unsafe.Slice(&list.Network[0], list.NumberOfItems)
	for i := range entries {
		e := &entries[i]
		ssid := e.Dot11SSID.String()
		if ssid == "" || e.BSSType != dot11BSSTypeInfrastructure {
			continue
		}

		sec, cipher := securityFromAlgorithms(e.Dot11DefaultAuthAlgorithm, e.Dot11DefaultCipherAlgorithm)
		n := wifi.Network{
			SSID:        ssid,
			Security:    sec,
			Cipher:      cipher,
			Signal:      uint8(e.SignalQuality),
			IsSaved:     e.Flags&availableNetworkHasProfile != 0,
			IsConnected: e.Flags&availableNetworkConnected != 0,
		}
		if n.IsSaved {
			n.AutoConnect = profileAutoConnect(h, guid, utf16ToString(e.ProfileName[:]))
		}
		if d, ok := details[ssid]; ok {
			n.FrequencyKHz = d.frequencyKHz
			n.Channel = wifi.ChannelForFrequency(d.frequencyKHz)
			n.PhyType = phyTypeName(d.phyType)
		}
		if n.IsConnected || ssid == currentSSID {
			n.IsConnected = true
			n.LinkSpeedMbps = linkSpeed
		}
		networks = append(networks, n)
	}

	networks = wifi.MergeNetworks(networks)
	wifi.SortNetworks(networks)
	return networks, nil
}

// currentConnection queries the live connection attributes. It returns the
// connected SSID and the receive rate in Mbit/s, or zero values when the
// interface is not associated.
func currentConnection(h *Handle, guid windows.GUID) (string, uint32) {
	var (
		size uint32
		attr *wlanConnectionAttributes
	)
	r, _, _ := procWlanQueryInterface.Call(
		h.h,
		uintptr(unsafe.Pointer(&guid)),
		opcodeCurrentConnection,
		0,
		uintptr(unsafe.Pointer(&size)),
		uintptr(unsafe.Pointer(&attr)),
		0,
	)
	if r != errSuccess || attr == nil {
		// Not associated is the common case, not a failure.
		return "", 0
	}
	defer freeMemory(unsafe.Pointer(attr))

	if attr.IsState != wlanInterfaceStateConnected {
		return "", 0
	}
	return attr.AssociationAttributes.Dot11SSID.String(), attr.AssociationAttributes.RxRate / 1000
}
