package uri

//go:generate go tool errtrace -w .

import (
	"fmt"
	"strconv"
	"strings"

	"braces.dev/errtrace"

	"github.com/ghettovoice/gouri/internal/grammar"
)

// URI is an immutable URI reference (RFC 3986).
//
// All components are stored in the canonical form: scheme and host are lowercased,
// userinfo, path, query and fragment are percent-encoded exactly once.
// The zero value is an empty relative reference.
//
// Methods With* never modify the receiver, they return a modified copy.
type URI struct {
	scheme   string
	userInfo string
	host     string
	port     uint16
	hasPort  bool
	path     string
	query    string
	fragment string

	ports PortRegistry
}

// Scheme returns the lowercased scheme without the trailing ":".
func (u URI) Scheme() string { return u.scheme }

// UserInfo returns the percent-encoded "user[:password]" part of the authority without the trailing "@".
func (u URI) UserInfo() string { return u.userInfo }

// Username returns the decoded user name.
func (u URI) Username() string {
	usr, _, _ := strings.Cut(u.userInfo, ":")
	return grammar.Unescape(usr)
}

// Password returns the decoded password, in case it is set, and a bool flag indicating whether it is set.
func (u URI) Password() (string, bool) {
	_, pwd, ok := strings.Cut(u.userInfo, ":")
	return grammar.Unescape(pwd), ok
}

// Host returns the lowercased host. IPv6 and IPvFuture hosts are enclosed in brackets.
func (u URI) Host() string { return u.host }

// Port returns the port, in case it is set, and bool flag indicating whether it is set.
// The default port of the scheme is never reported.
func (u URI) Port() (uint16, bool) { return u.port, u.hasPort }

// Path returns the percent-encoded path.
func (u URI) Path() string { return u.path }

// Query returns the percent-encoded query without the leading "?".
func (u URI) Query() string { return u.query }

// Fragment returns the percent-encoded fragment without the leading "#".
func (u URI) Fragment() string { return u.fragment }

// HasAuthority reports whether any of userinfo, host or port is present.
func (u URI) HasAuthority() bool { return u.host != "" || u.userInfo != "" || u.hasPort }

// IsAbsolute reports whether the URI has a scheme.
func (u URI) IsAbsolute() bool { return u.scheme != "" }

// IsRelative reports whether the URI is a relative reference.
func (u URI) IsRelative() bool { return u.scheme == "" }

// IsZero reports whether all components are empty.
func (u URI) IsZero() bool {
	return u.scheme == "" && !u.HasAuthority() && u.path == "" && u.query == "" && u.fragment == ""
}

// WithScheme returns a copy of the URI with the given scheme.
// Empty scheme removes the scheme.
func (u URI) WithScheme(scheme string) (URI, error) {
	if scheme != "" && !grammar.IsScheme(scheme) {
		return URI{}, errtrace.Wrap(newComponentErr(ComponentScheme, scheme, "must match ALPHA *( ALPHA / DIGIT / \"+\" / \"-\" / \".\" )"))
	}
	u.scheme = normalizeScheme(scheme)
	u.suppressDefaultPort()
	return u, nil
}

// WithUserInfo returns a copy of the URI with the given user name and no password.
// Empty user removes the userinfo. Chars not allowed in userinfo are percent-encoded.
func (u URI) WithUserInfo(user string) URI {
	if user == "" {
		u.userInfo = ""
		return u
	}
	u.userInfo = normalizeUser(user)
	return u
}

// WithUserPassword returns a copy of the URI with the given user name and password.
// Empty user removes the userinfo regardless of the password.
func (u URI) WithUserPassword(user, password string) URI {
	if user == "" {
		u.userInfo = ""
		return u
	}
	u.userInfo = normalizeUser(user) + ":" + normalizeUserInfo(password)
	return u
}

// WithHost returns a copy of the URI with the given host.
// Host can be IP-literal in brackets, IPv4 address or reg-name, bare IPv6 addresses are accepted too.
// Empty host removes the host.
func (u URI) WithHost(host string) (URI, error) {
	host = bracketHost(host)
	if !grammar.IsHost(host) {
		return URI{}, errtrace.Wrap(newComponentErr(ComponentHost, host, "must be IP-literal, IPv4address or reg-name"))
	}
	u.host = normalizeHost(host)
	u.suppressDefaultPort()
	return u, nil
}

// WithPort returns a copy of the URI with the given port.
// Port must be in range 1-65535, the scheme's default port is dropped.
func (u URI) WithPort(port int) (URI, error) {
	if port < minPort || port > maxPort {
		return URI{}, errtrace.Wrap(&PortError{Value: port})
	}
	u.port, u.hasPort = uint16(port), true
	u.suppressDefaultPort()
	return u, nil
}

// WithoutPort returns a copy of the URI without the port.
func (u URI) WithoutPort() URI {
	u.port, u.hasPort = 0, false
	return u
}

// WithPath returns a copy of the URI with the given path.
// The path is taken as is: empty, absolute and rootless paths are all kept as given,
// chars not allowed in path are percent-encoded.
func (u URI) WithPath(path string) (URI, error) {
	if grammar.HasCTL(path) {
		return URI{}, errtrace.Wrap(newCTLErr(ComponentPath, path))
	}
	u.path = normalizePath(path)
	return u, nil
}

// WithQuery returns a copy of the URI with the given query.
// Empty query removes the query.
func (u URI) WithQuery(query string) (URI, error) {
	if grammar.HasCTL(query) {
		return URI{}, errtrace.Wrap(newCTLErr(ComponentQuery, query))
	}
	u.query = normalizeQuery(query)
	return u, nil
}

// WithFragment returns a copy of the URI with the given fragment.
// Empty fragment removes the fragment.
func (u URI) WithFragment(fragment string) (URI, error) {
	if fragment == "" {
		u.fragment = ""
		return u, nil
	}
	if grammar.HasCTL(fragment) {
		return URI{}, errtrace.Wrap(newCTLErr(ComponentFragment, fragment))
	}
	u.fragment = normalizeFragment(fragment)
	return u, nil
}

// Equal compares this URI with another for equality.
// URIs are equal if all their canonical components are equal.
func (u URI) Equal(val any) bool {
	var other URI
	switch v := val.(type) {
	case URI:
		other = v
	case *URI:
		if v == nil {
			return false
		}
		other = *v
	default:
		return false
	}

	return u.scheme == other.scheme &&
		u.userInfo == other.userInfo &&
		u.host == other.host &&
		u.port == other.port &&
		u.hasPort == other.hasPort &&
		u.path == other.path &&
		u.query == other.query &&
		u.fragment == other.fragment
}

// Format implements fmt.Formatter for custom formatting of the URI.
//
//   - %s, %v: URI string
//   - %q: quoted URI string
//   - %+v: components
func (u URI) Format(f fmt.State, verb rune) {
	switch verb {
	case 's':
		fmt.Fprint(f, u.String())
		return
	case 'q':
		fmt.Fprint(f, strconv.Quote(u.String()))
		return
	case 'v':
		if f.Flag('+') {
			port := "<none>"
			if u.hasPort {
				port = strconv.Itoa(int(u.port))
			}
			fmt.Fprintf(f, "{Scheme:%s UserInfo:%s Host:%s Port:%s Path:%s Query:%s Fragment:%s}",
				u.scheme, u.userInfo, u.host, port, u.path, u.query, u.fragment)
			return
		}
		fmt.Fprint(f, u.String())
		return
	default:
		fmt.Fprintf(f, "%%!%c(uri.URI=%s)", verb, u.String())
		return
	}
}

// MarshalText implements [encoding.TextMarshaler].
func (u URI) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (u *URI) UnmarshalText(text []byte) error {
	u1, err := Parse(text)
	if err != nil {
		*u = URI{}
		return errtrace.Wrap(err)
	}
	*u = u1
	return nil
}
