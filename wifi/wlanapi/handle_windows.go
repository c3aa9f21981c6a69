//go:build windows

package wlanapi

import (
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/wifui/wifui/wifi"
)

// Handle is an open client session against the WLAN service. Sessions are
// cheap, so callers open one per operation and close it when done; every
// server-side resource tied to the session is released on close.
type Handle struct {
	h uintptr
}

// Open negotiates a client session with the WLAN service.
func Open() (*Handle, error) {
	var (
		negotiated uint32
		h          uintptr
	)
	r, _, _ := procWlanOpenHandle.Call(
		clientVersion,
		0,
		uintptr(unsafe.Pointer(&negotiated)),
		uintptr(unsafe.Pointer(&h)),
	)
	if r != errSuccess {
		return nil, wifi.NewError(wifi.KindHandleOpen, uint32(r))
	}
	return &Handle{h: h}, nil
}

// Close releases the session. Safe to call more than once.
func (h *Handle) Close() error {
	if h.h != 0 {
		procWlanCloseHandle.Call(h.h, 0)
		h.h = 0
	}
	return nil
}

// FirstInterface returns the GUID of the first wireless interface on the
// machine. Multi-adapter selection is not supported; the OS lists the
// primary adapter first.
func (h *Handle) FirstInterface() (windows.GUID, error) {
	var list *wlanInterfaceInfoList
	r, _, _ := procWlanEnumInterfaces.Call(h.h, 0, uintptr(unsafe.Pointer(&list)))
	if r != errSuccess {
		return windows.GUID{}, wifi.NewError(wifi.KindInterfaceEnum, uint32(r))
	}
	defer freeMemory(unsafe.Pointer(list))

	if list.NumberOfItems == 0 {
		return windows.GUID{}, wifi.ErrNoInterface
	}
	return list.InterfaceInfo[0].InterfaceGUID, nil
}
