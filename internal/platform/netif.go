package platform

import (
	"bytes"
	"net"
)

// NullMacAddress is returned when no suitable interface exists
const NullMacAddress = "00:00:00:00:00:00"

// MacAddress returns the hardware address of the first interface that is up,
// running and not a loopback
func MacAddress() string {
	ifaces, err := net.Interfaces()
	if err != nil {
		return NullMacAddress
	}
	return firstMacAddress(ifaces)
}

func firstMacAddress(ifaces []net.Interface) string {
	zero := make(net.HardwareAddr, 6)
	for _, iface := range ifaces {
		if len(iface.HardwareAddr) == 0 || bytes.Equal(iface.HardwareAddr, zero) {
			continue
		}
		if iface.Flags&net.FlagLoopback != 0 ||
			iface.Flags&net.FlagUp == 0 ||
			iface.Flags&net.FlagRunning == 0 {
			continue
		}
		return iface.HardwareAddr.String()
	}
	return NullMacAddress
}
