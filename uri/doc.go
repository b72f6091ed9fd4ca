// Package uri implements parsing, validation, normalization and rendering
// of URI references according to RFC 3986.
//
// # Overview
//
// A parsed URI reference is represented by the [URI] value type. It holds
// the scheme, userinfo, host, port, path, query and fragment components in the canonical form:
//
//   - scheme and host are lowercased;
//   - userinfo, path, query and fragment are percent-encoded exactly once,
//     already escaped triplets are never escaped again;
//   - the port equal to the default port of the scheme is dropped.
//
// # Parsing
//
//	u, err := uri.Parse("HTTP://User@Example.COM:80/a%2fb?q#f")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(u) // http://User@example.com/a%2Fb?q#f
//
// [Parse] uses the [DefaultPorts] table. Use [NewParser] with [ParserOptions]
// to set a custom [PortRegistry] or a debug logger.
//
// Empty input is a valid empty relative reference.
// Any grammar violation fails with [*ParseError] which matches [ErrMalformedURI]
// and wraps the component error.
//
// # Modification
//
// [URI] is immutable, methods With* return a modified copy and validate only the new component value:
//
//	u2, err := u.WithPort(8080)
//	u3 := u2.WithUserPassword("alice", "secret")
//	u4, err := u3.WithFragment("") // removes fragment
//
// Invalid component values fail with [*ComponentError] or [*PortError].
//
// # Rendering
//
// [URI.String] and [URI.RenderTo] always produce a syntactically valid URI reference.
// Without authority, leading slashes of the path are collapsed into one,
// with authority, a rootless path gets the leading slash.
// A relative path with ":" in the first segment is prefixed with "./".
//
// # Thread Safety
//
// [URI] values are immutable and safe for concurrent use, as well as [Parser] and [PortTable].
package uri
