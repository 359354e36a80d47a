package network

import (
	"net"
	"os"
)

var localhostIP = net.IPv4(127, 0, 0, 1)

// HostIP returns the first non-loopback IPv4 address of this host, falling
// back to 127.0.0.1. Used to print a reachable address for QR pairing.
func HostIP() net.IP {
	hostname, err := os.Hostname()
	if err != nil {
		return localhostIP
	}
	addrs, err := net.LookupIP(hostname)
	if err != nil {
		return localhostIP
	}

	for _, ip := range addrs {
		if ip.IsLoopback() {
			continue
		}
		if ip4 := ip.To4(); ip4 != nil {
			return ip4
		}
	}

	return localhostIP
}
