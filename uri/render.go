package uri

import (
	"io"
	"strings"

	"braces.dev/errtrace"

	"github.com/ghettovoice/gouri/internal/ioutil"
	"github.com/ghettovoice/gouri/internal/util"
)

// RenderTo writes the URI reference to w.
//
// The output is always a syntactically valid URI reference, whatever the combination of components:
//   - with authority, a rootless path is prefixed with "/";
//   - without authority, leading slashes of the path are collapsed into one;
//   - without scheme and authority, a path with ":" in the first segment is prefixed with "./".
//
// Stored components are never changed by these rewrites.
func (u URI) RenderTo(w io.Writer) (num int, err error) {
	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)

	if u.scheme != "" {
		cw.Print(u.scheme, ":")
	}
	if u.HasAuthority() {
		cw.Print("//").Call(u.renderAuthority)
	}
	cw.Print(u.renderPath()).
		PrintIf("?", u.query).
		PrintIf("#", u.fragment)
	return errtrace.Wrap2(cw.Result())
}

func (u URI) renderAuthority(w io.Writer) (num int, err error) {
	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)

	if u.userInfo != "" {
		cw.Print(u.userInfo, "@")
	}
	cw.Print(u.host)
	if u.hasPort {
		cw.PrintUint(":", uint64(u.port))
	}
	return errtrace.Wrap2(cw.Result())
}

func (u URI) renderPath() string {
	p := u.path
	if p == "" {
		return p
	}

	if u.HasAuthority() {
		if p[0] != '/' {
			return "/" + p
		}
		return p
	}

	if strings.HasPrefix(p, "//") {
		return "/" + strings.TrimLeft(p, "/")
	}

	if u.scheme == "" && p[0] != '/' && firstSegmentHasColon(p) {
		return "./" + p
	}
	return p
}

func firstSegmentHasColon(p string) bool {
	seg, _, _ := strings.Cut(p, "/")
	return strings.IndexByte(seg, ':') >= 0
}

// String returns the URI reference string.
func (u URI) String() string {
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	u.RenderTo(sb) //nolint:errcheck
	return sb.String()
}

// Authority returns the "[userinfo@]host[:port]" part of the URI.
// Returns empty string if the URI has no authority.
func (u URI) Authority() string {
	if !u.HasAuthority() {
		return ""
	}
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	u.renderAuthority(sb) //nolint:errcheck
	return sb.String()
}

// Redacted returns the URI reference string with the password replaced by "xxxxx".
func (u URI) Redacted() string {
	if _, ok := u.Password(); !ok {
		return u.String()
	}
	u.userInfo = util.Redact(u.userInfo)
	return u.String()
}
