//go:build windows

package wlanapi

import (
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/wifui/wifui/wifi"
)

// connectProfile starts a connection attempt using a saved profile. The call
// returns once the attempt is queued; the outcome arrives as a notification.
func connectProfile(h *Handle, guid windows.GUID, profileName string) error {
	name, err := windows.UTF16PtrFromString(profileName)
	if err != nil {
		return wifi.Internal("profile name contains a NUL byte")
	}
	params := wlanConnectionParameters{
		ConnectionMode: wlanConnectionModeProfile,
		Profile:        name,
		BSSType:        dot11BSSTypeInfrastructure,
	}
	r, _, _ := procWlanConnect.Call(
		h.h,
		uintptr(unsafe.Pointer(&guid)),
		uintptr(unsafe.Pointer(&params)),
		0,
	)
	if r != errSuccess {
		return wifi.NewError(wifi.KindConnection, uint32(r))
	}
	return nil
}

func disconnect(h *Handle, guid windows.GUID) error {
	r, _, _ := procWlanDisconnect.Call(h.h, uintptr(unsafe.Pointer(&guid)), 0)
	if r != errSuccess {
		return wifi.NewError(wifi.KindDisconnect, uint32(r))
	}
	return nil
}
