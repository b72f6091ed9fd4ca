package uri

import (
	"net/netip"

	"github.com/ghettovoice/gouri/internal/grammar"
)

// HostKind classifies the host of a URI.
type HostKind uint8

const (
	HostNone       HostKind = iota // no host
	HostIPv4                       // dotted-quad IPv4 address
	HostIPv6                       // bracketed IPv6 address
	HostIPvFuture                  // bracketed "v" version literal
	HostDomainName                 // reg-name that is a valid DNS name
	HostRegName                    // any other reg-name
)

var hostKindNames = [...]string{
	HostNone:       "none",
	HostIPv4:       "ipv4",
	HostIPv6:       "ipv6",
	HostIPvFuture:  "ipvfuture",
	HostDomainName: "domain",
	HostRegName:    "regname",
}

func (k HostKind) String() string {
	if int(k) < len(hostKindNames) {
		return hostKindNames[k]
	}
	return "unknown"
}

// HostKind returns the kind of the URI host.
func (u URI) HostKind() HostKind {
	h := u.host
	switch {
	case h == "":
		return HostNone
	case h[0] == '[':
		if grammar.IsIPv6(h[1 : len(h)-1]) {
			return HostIPv6
		}
		return HostIPvFuture
	case grammar.IsIPv4(h):
		return HostIPv4
	case grammar.IsDomainName(h):
		return HostDomainName
	default:
		return HostRegName
	}
}

// IP returns the host IP address if the host is an IPv4 or IPv6 address.
func (u URI) IP() (netip.Addr, bool) {
	h := u.host
	switch u.HostKind() {
	case HostIPv4:
	case HostIPv6:
		h = h[1 : len(h)-1]
	default:
		return netip.Addr{}, false
	}
	addr, err := netip.ParseAddr(h)
	if err != nil {
		return netip.Addr{}, false
	}
	return addr, true
}
