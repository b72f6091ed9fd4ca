package uri

import (
	"maps"
	"slices"
	"strings"

	"github.com/ghettovoice/gouri/internal/grammar"
	"github.com/ghettovoice/gouri/internal/util"
)

//go:generate go tool mockgen -typed -package portmock -destination ../internal/testutil/portmock/port_registry.go github.com/ghettovoice/gouri/uri PortRegistry

// PortRegistry resolves well-known default ports of URI schemes.
// The scheme passed to DefaultPort is always lowercased.
type PortRegistry interface {
	DefaultPort(scheme string) (uint16, bool)
}

// PortTable is an immutable [PortRegistry] backed by a static scheme to port mapping.
// A nil table knows no schemes.
type PortTable struct {
	ports map[string]uint16
}

// NewPortTable returns a [PortTable] with a copy of the given mapping.
// Scheme names are lowercased.
func NewPortTable(ports map[string]uint16) *PortTable {
	m := make(map[string]uint16, len(ports))
	for k, v := range ports {
		m[util.LCase(k)] = v
	}
	return &PortTable{ports: m}
}

// DefaultPort implements [PortRegistry].
func (t *PortTable) DefaultPort(scheme string) (uint16, bool) {
	if t == nil {
		return 0, false
	}
	p, ok := t.ports[scheme]
	return p, ok
}

// With returns a copy of the table extended with the scheme default port.
// Port 0 removes the scheme from the copy.
func (t *PortTable) With(scheme string, port uint16) *PortTable {
	var m map[string]uint16
	if t != nil {
		m = maps.Clone(t.ports)
	}
	if m == nil {
		m = make(map[string]uint16, 1)
	}
	if port == 0 {
		delete(m, util.LCase(scheme))
	} else {
		m[util.LCase(scheme)] = port
	}
	return &PortTable{ports: m}
}

// Len returns the number of schemes in the table.
func (t *PortTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.ports)
}

// Schemes returns the sorted list of schemes in the table.
func (t *PortTable) Schemes() []string {
	if t == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(t.ports))
}

// DefaultPorts is the table of well-known ports used when no other registry is configured.
var DefaultPorts = NewPortTable(map[string]uint16{
	"http":   80,
	"https":  443,
	"ws":     80,
	"wss":    443,
	"ftp":    21,
	"gopher": 70,
	"nntp":   119,
	"news":   119,
	"telnet": 23,
	"tn3270": 23,
	"imap":   143,
	"pop":    110,
	"ldap":   389,
	"sip":    5060,
	"sips":   5061,
})

func portsOrDefault(r PortRegistry) PortRegistry {
	if r == nil {
		return DefaultPorts
	}
	return r
}

// suppressDefaultPort clears the port if it equals the scheme's default one.
// Unknown schemes and URIs without a scheme keep their port.
func (u *URI) suppressDefaultPort() {
	if !u.hasPort || u.scheme == "" {
		return
	}
	if p, ok := portsOrDefault(u.ports).DefaultPort(u.scheme); ok && p == u.port {
		u.port, u.hasPort = 0, false
	}
}

func normalizeScheme(s string) string { return util.LCase(s) }

// normalizeHost lowercases the host keeping pct-encoded triplets in the canonical form.
// The host must be already validated.
func normalizeHost(h string) string {
	if h == "" {
		return h
	}
	if h[0] == '[' {
		return util.LCase(h)
	}
	// decode unreserved triplets first, so they get lowercased too
	h = util.LCase(grammar.Normalize(h, grammar.ShouldEscapeRegName))
	return grammar.Normalize(h, grammar.ShouldEscapeRegName)
}

func normalizeUserInfo(ui string) string { return grammar.Normalize(ui, grammar.ShouldEscapeUserInfo) }

func normalizeUser(usr string) string { return grammar.Normalize(usr, grammar.ShouldEscapeUser) }

func normalizePath(p string) string { return grammar.Normalize(p, grammar.ShouldEscapePath) }

func normalizeQuery(q string) string { return grammar.Normalize(q, grammar.ShouldEscapeQuery) }

func normalizeFragment(f string) string { return grammar.Normalize(f, grammar.ShouldEscapeFragment) }

// bracketHost wraps a bare IPv6 address into brackets.
func bracketHost(h string) string {
	if h != "" && h[0] != '[' && strings.IndexByte(h, ':') >= 0 && grammar.IsIPv6(h) {
		return "[" + h + "]"
	}
	return h
}
