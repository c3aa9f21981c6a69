//go:build windows

package wlanapi

import (
	"unicode/utf16"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	modwlanapi = windows.NewLazySystemDLL("wlanapi.dll")

	procWlanOpenHandle              = modwlanapi.NewProc("WlanOpenHandle")
	procWlanCloseHandle             = modwlanapi.NewProc("WlanCloseHandle")
	procWlanFreeMemory              = modwlanapi.NewProc("WlanFreeMemory")
	procWlanEnumInterfaces          = modwlanapi.NewProc("WlanEnumInterfaces")
	procWlanScan                    = modwlanapi.NewProc("WlanScan")
	procWlanGetAvailableNetworkList = modwlanapi.NewProc("WlanGetAvailableNetworkList")
	procWlanGetNetworkBssList       = modwlanapi.NewProc("WlanGetNetworkBssList")
	procWlanQueryInterface          = modwlanapi.NewProc("WlanQueryInterface")
	procWlanConnect                 = modwlanapi.NewProc("WlanConnect")
	procWlanDisconnect              = modwlanapi.NewProc("WlanDisconnect")
	procWlanGetProfileList          = modwlanapi.NewProc("WlanGetProfileList")
	procWlanGetProfile              = modwlanapi.NewProc("WlanGetProfile")
	procWlanSetProfile              = modwlanapi.NewProc("WlanSetProfile")
	procWlanDeleteProfile           = modwlanapi.NewProc("WlanDeleteProfile")
	procWlanRegisterNotification    = modwlanapi.NewProc("WlanRegisterNotification")
)

const (
	clientVersion = 2 // Vista+ API surface

	errSuccess       = 0
	errFileNotFound  = 2
	errNotFound      = 1168 // profile delete on a name that is already gone
	errAccessDenied  = 5
	errNotSupported  = 50
	errInvalidParam  = 87
	errServiceNotUp  = 1062
	errAlreadyExists = 183
)

// dot11 auth algorithms (DOT11_AUTH_ALGORITHM)
const (
	dot11AuthOpen      = 1
	dot11AuthSharedKey = 2
	dot11AuthWPA       = 3
	dot11AuthWPAPSK    = 4
	dot11AuthWPANone   = 5
	dot11AuthRSNA      = 6  // WPA2 enterprise
	dot11AuthRSNAPSK   = 7  // WPA2 personal
	dot11AuthWPA3Ent   = 8  // WPA3 enterprise 192-bit
	dot11AuthWPA3SAE   = 9  // WPA3 personal
	dot11AuthOWE       = 10 // opportunistic wireless encryption
	dot11AuthWPA3Ent11 = 11
)

// dot11 cipher algorithms (DOT11_CIPHER_ALGORITHM)
const (
	dot11CipherNone    = 0x00
	dot11CipherWEP40   = 0x01
	dot11CipherTKIP    = 0x02
	dot11CipherCCMP    = 0x04
	dot11CipherWEP104  = 0x05
	dot11CipherGCMP    = 0x08
	dot11CipherGCMP256 = 0x09
	dot11CipherWEP     = 0x101
)

// dot11 PHY types (DOT11_PHY_TYPE)
const (
	dot11PhyFHSS = 1
	dot11PhyDSSS = 2
	dot11PhyOFDM = 4
	dot11PhyERP  = 6
	dot11PhyHT   = 7
	dot11PhyVHT  = 8
	dot11PhyHE   = 10
	dot11PhyEHT  = 11
)

const (
	dot11BSSTypeInfrastructure = 1
	dot11BSSTypeIndependent    = 2
	dot11BSSTypeAny            = 3
)

const (
	// flags on an available network entry
	availableNetworkConnected  = 0x01
	availableNetworkHasProfile = 0x02

	// flags to WlanGetAvailableNetworkList
	includeAllAdhocProfiles  = 0x01
	includeAllManualProfiles = 0x02
)

const (
	wlanInterfaceStateConnected = 1
	wlanConnectionModeProfile   = 0
	opcodeCurrentConnection     = 7 // wlan_intf_opcode_current_connection

	// WlanGetProfile flags. PlaintextKey asks the store to decrypt the
	// keyMaterial element; without it the key comes back protected and a
	// read-modify-write would corrupt it.
	profileGetPlaintextKey = 0x04
)

const (
	notificationSourceNone = 0x0000
	notificationSourceACM  = 0x0008
	notificationSourceAll  = 0xFFFF

	acmScanComplete          = 7
	acmScanFail              = 8
	acmConnectionStart       = 9
	acmConnectionComplete    = 10
	acmConnectionAttemptFail = 11
	acmDisconnecting         = 20
	acmDisconnected          = 21
)

type dot11SSID struct {
	Length uint32
	SSID   [32]byte
}

func (s dot11SSID) String() string {
	n := s.Length
	if n > uint32(len(s.SSID)) {
		n = uint32(len(s.SSID))
	}
	return string(s.SSID[:n])
}

type wlanInterfaceInfo struct {
	InterfaceGUID windows.GUID
	Description   [256]uint16
	State         uint32
}

type wlanInterfaceInfoList struct {
	NumberOfItems uint32
	Index         uint32
	InterfaceInfo [1]wlanInterfaceInfo
}

type wlanAvailableNetwork struct {
	ProfileName                 [256]uint16
	Dot11SSID                   dot11SSID
	BSSType                     uint32
	NumberOfBSSIDs              uint32
	NetworkConnectable          int32
	NotConnectableReason        uint32
	NumberOfPhyTypes            uint32
	Dot11PhyTypes               [8]uint32
	MorePhyTypes                int32
	SignalQuality               uint32
	SecurityEnabled             int32
	Dot11DefaultAuthAlgorithm   uint32
	Dot11DefaultCipherAlgorithm uint32
	Flags                       uint32
	Reserved                    uint32
}

type wlanAvailableNetworkList struct {
	NumberOfItems uint32
	Index         uint32
	Network       [1]wlanAvailableNetwork
}

type wlanRateSet struct {
	RateSetLength uint32
	RateSet       [126]uint16
}

type wlanBSSEntry struct {
	Dot11SSID             dot11SSID
	PhyID                 uint32
	Dot11BSSID            [6]byte
	PhyType               uint32
	RSSI                  int32
	LinkQuality           uint32
	InRegDomain           uint8
	BeaconPeriod          uint16
	Timestamp             uint64
	HostTimestamp         uint64
	CapabilityInformation uint16
	ChCenterFrequency     uint32 // kHz
	RateSet               wlanRateSet
	IEOffset              uint32
	IESize                uint32
}

type wlanBSSList struct {
	TotalSize     uint32
	NumberOfItems uint32
	BSSEntries    [1]wlanBSSEntry
}

type wlanConnectionParameters struct {
	ConnectionMode   uint32
	Profile          *uint16
	Dot11SSID        *dot11SSID
	DesiredBSSIDList uintptr
	BSSType          uint32
	Flags            uint32
}

type wlanAssociationAttributes struct {
	Dot11SSID         dot11SSID
	Dot11BSSType      uint32
	Dot11BSSID        [6]byte
	Dot11PhyType      uint32
	Dot11PhyIndex     uint32
	WlanSignalQuality uint32
	RxRate            uint32 // kbit/s
	TxRate            uint32 // kbit/s
}

type wlanSecurityAttributes struct {
	SecurityEnabled      int32
	OneXEnabled          int32
	Dot11AuthAlgorithm   uint32
	Dot11CipherAlgorithm uint32
}

type wlanConnectionAttributes struct {
	IsState               uint32
	WlanConnectionMode    uint32
	ProfileName           [256]uint16
	AssociationAttributes wlanAssociationAttributes
	SecurityAttributes    wlanSecurityAttributes
}

type wlanProfileInfo struct {
	ProfileName [256]uint16
	Flags       uint32
}

type wlanProfileInfoList struct {
	NumberOfItems uint32
	Index         uint32
	ProfileInfo   [1]wlanProfileInfo
}

// l2NotificationData matches WLAN_NOTIFICATION_DATA.
type l2NotificationData struct {
	NotificationSource uint32
	NotificationCode   uint32
	InterfaceGUID      windows.GUID
	DataSize           uint32
	Data               unsafe.Pointer
}

// wlanConnectionNotificationData matches WLAN_CONNECTION_NOTIFICATION_DATA
// up to the variable-length trailing profile XML, which is not consumed.
type wlanConnectionNotificationData struct {
	ConnectionMode  uint32
	ProfileName     [256]uint16
	Dot11SSID       dot11SSID
	BSSType         uint32
	SecurityEnabled int32
	WlanReasonCode  uint32
	Flags           uint32
	ProfileXML      [1]uint16
}

func freeMemory(p unsafe.Pointer) {
	if p != nil {
		procWlanFreeMemory.Call(uintptr(p))
	}
}

func utf16ToString(buf []uint16) string {
	for i, c := range buf {
		if c == 0 {
			buf = buf[:i]
			break
		}
	}
	return string(utf16.Decode(buf))
}
