// Package grammar implements RFC 3986 character classes, percent-encoding and component validators.
package grammar

//go:generate go tool errtrace -w .

import (
	"net/netip"
	"strings"

	"github.com/ghettovoice/abnf"
	"github.com/miekg/dns"

	"github.com/ghettovoice/gouri/internal/constraints"
)

func init() {
	abnf.EnableNodeCache(10 * 1024)
}

type Error string

func (e Error) Error() string { return string(e) }

func (Error) Grammar() bool { return true }

const (
	ErrEmptyInput     Error = "empty input"
	ErrMalformedInput Error = "malformed input"
)

// match reports whether op consumes the whole input s.
func match[T constraints.Byteseq](op abnf.Operator, s T) bool {
	ns := abnf.NewNodes()
	defer ns.Free()

	if err := op([]byte(s), 0, ns); err != nil {
		return false
	}
	return ns.Best().Len() == len(s)
}

// IsScheme checks scheme rule. Empty input is not a scheme.
func IsScheme[T constraints.Byteseq](s T) bool {
	if len(s) == 0 || !IsAlpha(s[0]) {
		return false
	}
	return match(ruleScheme, s)
}

// IsIPv4 checks IPv4address rule.
func IsIPv4[T constraints.Byteseq](s T) bool {
	if len(s) < 7 || len(s) > 15 {
		return false
	}
	return match(ruleIPv4address, s)
}

// IsIPv6 checks IPv6address rule, s must be without brackets.
// Zoned addresses (RFC 6874) are not supported.
func IsIPv6[T constraints.Byteseq](s T) bool {
	if len(s) < 2 || strings.IndexByte(string(s), ':') < 0 {
		return false
	}
	addr, err := netip.ParseAddr(string(s))
	return err == nil && addr.Is6() && addr.Zone() == ""
}

// IsIPvFuture checks IPvFuture rule, s must be without brackets.
func IsIPvFuture[T constraints.Byteseq](s T) bool {
	if len(s) < 4 || (s[0] != 'v' && s[0] != 'V') {
		return false
	}
	return match(ruleIPvFuture, s)
}

// IsIPLiteral checks IP-literal rule: "[" ( IPv6address / IPvFuture  ) "]".
func IsIPLiteral[T constraints.Byteseq](s T) bool {
	if len(s) < 3 || s[0] != '[' || s[len(s)-1] != ']' {
		return false
	}
	inner := s[1 : len(s)-1]
	return IsIPv6(inner) || IsIPvFuture(inner)
}

// IsRegName checks reg-name rule. Empty input is a valid reg-name.
func IsRegName[T constraints.Byteseq](s T) bool {
	if len(s) == 0 {
		return true
	}
	return match(ruleRegName, s)
}

// IsHost checks host rule: IP-literal / IPv4address / reg-name.
// Empty input is a valid host.
func IsHost[T constraints.Byteseq](s T) bool {
	if len(s) > 0 && s[0] == '[' {
		return IsIPLiteral(s)
	}
	return IsRegName(s)
}

// IsPort checks port rule. Empty input is a valid port.
func IsPort[T constraints.Byteseq](s T) bool {
	if len(s) == 0 {
		return true
	}
	return match(rulePort, s)
}

// IsDomainName reports whether the decoded reg-name s is a syntactically valid DNS name,
// i.e. fits the label and total length limits of RFC 1035.
// No resolution is performed.
func IsDomainName[T constraints.Byteseq](s T) bool {
	if len(s) == 0 || IsIPv4(s) {
		return false
	}
	name := Unescape(string(s))
	for i := range len(name) {
		if IsCTL(name[i]) || name[i] == ' ' || name[i] == '\\' {
			return false
		}
	}
	_, ok := dns.IsDomainName(name)
	return ok
}

// HasCTL reports whether s contains ASCII control chars.
func HasCTL[T constraints.Byteseq](s T) bool {
	return IndexCTL(s) >= 0
}

// IndexCTL returns the index of the first ASCII control char in s or -1.
func IndexCTL[T constraints.Byteseq](s T) int {
	for i := range len(s) {
		if IsCTL(s[i]) {
			return i
		}
	}
	return -1
}
