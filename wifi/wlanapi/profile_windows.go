//go:build windows

package wlanapi

import (
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/wifui/wifui/wifi"
)

// getProfileXML reads a stored profile document. Pass profileGetPlaintextKey
// in flags when the document will be rewritten or the key extracted.
func getProfileXML(h *Handle, guid windows.GUID, name string, flags uint32) (string, error) {
	namePtr, err := windows.UTF16PtrFromString(name)
	if err != nil {
		return "", wifi.Internal("profile name contains a NUL byte")
	}
	var xmlPtr *uint16
	r, _, _ := procWlanGetProfile.Call(
		h.h,
		uintptr(unsafe.Pointer(&guid)),
		uintptr(unsafe.Pointer(namePtr)),
		0,
		uintptr(unsafe.Pointer(&xmlPtr)),
		uintptr(unsafe.Pointer(&flags)),
		0,
	)
	if r != errSuccess {
		return "", wifi.NewError(wifi.KindProfileGet, uint32(r))
	}
	defer freeMemory(unsafe.Pointer(xmlPtr))

	// The document is NUL-terminated; scan for the terminator.
	var n int
	for p := xmlPtr; *p != 0; p = (*uint16)(unsafe.Add(unsafe.Pointer(p), 2)) {
		n++
	}
	return utf16ToString(unsafe.Slice(xmlPtr, n)), nil
}

// setProfileXML writes a profile document into the store, overwriting any
// profile of the same name. On failure the store supplies a reason code that
// usually pinpoints the offending element.
func setProfileXML(h *Handle, guid windows.GUID, doc string, kind wifi.Kind) error {
	docPtr, err := windows.UTF16PtrFromString(doc)
	if err != nil {
		return wifi.Internal("profile document contains a NUL byte")
	}
	var reason uint32
	r, _, _ := procWlanSetProfile.Call(
		h.h,
		uintptr(unsafe.Pointer(&guid)),
		0, // all-user profile
		uintptr(unsafe.Pointer(docPtr)),
		0,
		1, // overwrite
		0,
		uintptr(unsafe.Pointer(&reason)),
	)
	if r != errSuccess {
		return wifi.NewReasonError(kind, uint32(r), reason)
	}
	return nil
}

// deleteProfile removes a stored profile. Deleting a name that is already
// gone succeeds, so forget is idempotent.
func deleteProfile(h *Handle, guid windows.GUID, name string) error {
	namePtr, err := windows.UTF16PtrFromString(name)
	if err != nil {
		return wifi.Internal("profile name contains a NUL byte")
	}
	r, _, _ := procWlanDeleteProfile.Call(
		h.h,
		uintptr(unsafe.Pointer(&guid)),
		uintptr(unsafe.Pointer(namePtr)),
		0,
	)
	if r != errSuccess && r != errNotFound {
		return wifi.NewError(wifi.KindProfileDelete, uint32(r))
	}
	return nil
}

// profileNames lists the stored profile names for the interface.
func profileNames(h *Handle, guid windows.GUID) ([]string, error) {
	var list *wlanProfileInfoList
	r, _, _ := procWlanGetProfileList.Call(
		h.h,
		uintptr(unsafe.Pointer(&guid)),
		0,
		uintptr(unsafe.Pointer(&list)),
	)
	if r != errSuccess {
		return nil, wifi.NewError(wifi.KindProfileGet, uint32(r))
	}
	defer freeMemory(unsafe.Pointer(list))

	names := make([]string, 0, list.NumberOfItems)
	infos := unsafe.Slice(&list.ProfileInfo[0], list.NumberOfItems)
	for i := range infos {
		names = append(names, utf16ToString(infos[i].ProfileName[:]))
	}
	return names, nil
}

// profileAutoConnect reports whether a stored profile rejoins automatically.
// Errors read as false; the flag is display-only on the list path.
func profileAutoConnect(h *Handle, guid windows.GUID, name string) bool {
	doc, err := getProfileXML(h, guid, name, 0)
	if err != nil {
		return false
	}
	return ReadAutoConnect(doc)
}
