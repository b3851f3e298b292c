package system

import (
	"fmt"
	"net"
	"strings"
)

// addrLister is satisfied by net.Interface; it lets tests supply addresses.
type addrLister interface {
	Addrs() ([]net.Addr, error)
}

type namedInterface struct {
	name  string
	flags net.Flags
	addrs addrLister
}

// LocalIPv4 returns the first non-loopback IPv4 address of an interface that
// is up, preferring wired (eth*/en*) over wireless ones.
func LocalIPv4() (string, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return "", fmt.Errorf("list interfaces: %w", err)
	}
	named := make([]namedInterface, 0, len(ifaces))
	for i := range ifaces {
		named = append(named, namedInterface{name: ifaces[i].Name, flags: ifaces[i].Flags, addrs: &ifaces[i]})
	}
	return pickIPv4(named)
}

func pickIPv4(ifaces []namedInterface) (string, error) {
	var fallback string
	for _, iface := range ifaces {
		if iface.flags&net.FlagUp == 0 || iface.flags&net.FlagLoopback != 0 {
			continue
		}
		addrs, err := iface.addrs.Addrs()
		if err != nil {
			continue
		}
		for _, addr := range addrs {
			ipNet, ok := addr.(*net.IPNet)
			if !ok {
				continue
			}
			ip := ipNet.IP.To4()
			if ip == nil || ip.IsLoopback() || ip.IsLinkLocalUnicast() {
				continue
			}
			if strings.HasPrefix(iface.name, "eth") || strings.HasPrefix(iface.name, "en") {
				return ip.String(), nil
			}
			if fallback == "" {
				fallback = ip.String()
			}
		}
	}
	if fallback == "" {
		return "", fmt.Errorf("no IPv4 address found")
	}
	return fallback, nil
}

// EditorURL builds the URL a phone should open to reach the editor served on
// listenAddr (":80", "0.0.0.0:8080", ...).
func EditorURL(listenAddr string) (string, error) {
	host, port, err := net.SplitHostPort(listenAddr)
	if err != nil {
		return "", fmt.Errorf("parse listen address %q: %w", listenAddr, err)
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		host, err = LocalIPv4()
		if err != nil {
			return "", err
		}
	}
	if port == "80" {
		return "http://" + host + "/", nil
	}
	return "http://" + net.JoinHostPort(host, port) + "/", nil
}
