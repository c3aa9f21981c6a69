package wifi

import "io"

// Network is a single wireless network as seen by a backend: the merged view
// of every access point advertising the same SSID with the same security.
// Identity is (SSID, Security); see Key.
type Network struct {
	SSID          string
	Security      Security
	Cipher        string
	Signal        uint8 // 0-100
	IsSaved       bool
	IsConnected   bool
	AutoConnect   bool
	PhyType       string
	Channel       uint32
	FrequencyKHz  uint32
	LinkSpeedMbps uint32 // 0 when not connected
}

// NetworkKey identifies a network for merging purposes.
type NetworkKey struct {
	SSID     string
	Security Security
}

// Key returns the merge identity of the network.
func (n Network) Key() NetworkKey {
	return NetworkKey{SSID: n.SSID, Security: n.Security}
}

// Merge folds another observation of the same network into this one.
// Signal keeps the strongest measurement; saved/connected flags are sticky.
func (n *Network) Merge(other Network) {
	if other.Signal > n.Signal {
		n.Signal = other.Signal
	}
	if other.IsSaved {
		n.IsSaved = true
		n.AutoConnect = n.AutoConnect || other.AutoConnect
	}
	if other.IsConnected {
		n.IsConnected = true
	}
	if n.LinkSpeedMbps == 0 {
		n.LinkSpeedMbps = other.LinkSpeedMbps
	}
	if n.FrequencyKHz == 0 {
		n.FrequencyKHz = other.FrequencyKHz
		n.Channel = other.Channel
	}
}

// StoredProfile is an OS-persisted credential record for a remembered
// network. KeyMaterial is zero for open networks or when the OS withholds
// the plaintext key.
type StoredProfile struct {
	Name        string
	AutoConnect bool
	Security    Security
	KeyMaterial Secret
}

// Backend is the blocking interface to a wireless subsystem. Every method
// may stall on OS latency; callers are expected to run them off the UI loop.
type Backend interface {
	// RequestScan triggers a scan. Completion is not observable; callers
	// should wait a settle delay before calling ListNetworks.
	RequestScan() error
	// ListNetworks returns the merged, sorted view of advertised and saved
	// networks.
	ListNetworks() ([]Network, error)
	// ConnectedSSID returns the SSID of the current connection, or "".
	ConnectedSSID() (string, error)
	// ConnectSaved connects using an existing saved profile of that name.
	ConnectSaved(ssid string) error
	// ConnectWithCredential installs a credential profile and connects.
	ConnectWithCredential(ssid string, security Security, cipher string, password Secret, hidden bool) error
	// ConnectOpen installs an open profile and connects.
	ConnectOpen(ssid string, hidden bool) error
	// Disconnect drops the current connection.
	Disconnect() error
	// Forget deletes the saved profile. A missing profile is not an error.
	Forget(ssid string) error
	// SetAutoConnect rewrites the saved profile's connection mode.
	SetAutoConnect(ssid string, enabled bool) error
	// Password returns the stored key for a saved network, or a zero Secret
	// for open networks.
	Password(ssid string) (Secret, error)
	// SavedProfiles enumerates every persisted profile, including ones for
	// networks currently out of range.
	SavedProfiles() ([]StoredProfile, error)
	// Listen registers for connection-lifecycle notifications, pushing them
	// into q until the returned closer is closed.
	Listen(q *EventQueue) (io.Closer, error)
}
