package state

// ConnectionStatus is the tri-state connectivity of the messaging
// transport, tracked independently from device reachability.
type ConnectionStatus int

const (
	NotConnected ConnectionStatus = iota
	Connecting
	Connected
)

func (s ConnectionStatus) String() string {
	switch s {
	case Connecting:
		return "connecting"
	case Connected:
		return "connected"
	default:
		return "notConnected"
	}
}

type NetworkStatusChanged struct {
	networkAction
	Status ConnectionStatus
}

type ReachabilityChanged struct {
	networkAction
	IsConnected bool
}

type MonitoringStarted struct{ networkAction }

type MonitoringCancelled struct{ networkAction }

// NetworkState combines the messaging-transport status with device-level
// reachability. The two signals are tracked separately; consumers combine
// them.
type NetworkState struct {
	Status          ConnectionStatus
	DeviceConnected bool
	Monitoring      bool
}

func reduceNetwork(action NetworkAction, s *NetworkState) {
	switch a := action.(type) {
	case NetworkStatusChanged:
		s.Status = a.Status
	case ReachabilityChanged:
		s.DeviceConnected = a.IsConnected
	case MonitoringStarted:
		s.Monitoring = true
	case MonitoringCancelled:
		s.Monitoring = false
	default:
	}
}
