package uri

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"braces.dev/errtrace"
	"github.com/qmuntal/stateless"

	"github.com/ghettovoice/gouri/internal/constraints"
	"github.com/ghettovoice/gouri/internal/grammar"
	"github.com/ghettovoice/gouri/internal/log"
)

// ParserOptions configures a [Parser].
type ParserOptions struct {
	// Ports is used to drop default ports of known schemes.
	// If nil, [DefaultPorts] is used.
	Ports PortRegistry
	// Logger traces the parsing steps at debug level.
	// If nil, nothing is logged.
	Logger *slog.Logger
}

func (o *ParserOptions) ports() PortRegistry {
	if o == nil {
		return nil
	}
	return o.Ports
}

func (o *ParserOptions) log() *slog.Logger {
	if o == nil || o.Logger == nil {
		return log.Noop
	}
	return o.Logger
}

// Parser parses URI references.
// It is safe for concurrent use.
type Parser struct {
	ports PortRegistry
	log   *slog.Logger
}

// NewParser creates a new parser with the given options.
// Options can be nil, then defaults are used.
func NewParser(opts *ParserOptions) *Parser {
	return &Parser{
		ports: opts.ports(),
		log:   opts.log(),
	}
}

var defParser = NewParser(nil)

// Parse parses a URI reference from the given input s (string or []byte) with default options.
// Empty input is a valid empty relative reference.
//
// On failure the returned error is a [*ParseError].
func Parse[T constraints.Byteseq](s T) (URI, error) {
	return errtrace.Wrap2(defParser.Parse(string(s)))
}

// MustParse is like [Parse] but panics on error.
func MustParse[T constraints.Byteseq](s T) URI {
	u, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return u
}

// Parse parses a URI reference.
// Empty input is a valid empty relative reference.
//
// On failure the returned error is a [*ParseError].
func (p *Parser) Parse(s string) (URI, error) {
	if s == "" {
		return URI{ports: p.ports}, nil
	}

	ctx := context.Background()
	sc := &scanner{
		in:  s,
		log: p.log,
		u:   URI{ports: p.ports},
	}
	sc.initFSM()
	if err := sc.actScheme(ctx); err != nil {
		return URI{}, errtrace.Wrap(err)
	}
	for sc.fsm.MustState() != stateDone {
		if err := sc.fsm.FireCtx(ctx, sc.next); err != nil {
			return URI{}, errtrace.Wrap(err)
		}
	}

	p.log.LogAttrs(ctx, slog.LevelDebug, "URI parsed", slog.Any("uri", log.StringValue(sc.u.Redacted())))

	return sc.u, nil
}

type scanState uint8

const (
	stateScheme scanState = iota
	stateAuthority
	statePath
	stateQuery
	stateFragment
	stateDone
)

var scanStateNames = [...]string{
	stateScheme:    "scheme",
	stateAuthority: "authority",
	statePath:      "path",
	stateQuery:     "query",
	stateFragment:  "fragment",
	stateDone:      "done",
}

func (s scanState) String() string { return scanStateNames[s] }

const (
	evtAuthority = "authority"
	evtPath      = "path"
	evtQuery     = "query"
	evtFragment  = "fragment"
	evtEnd       = "end"
)

// scanner splits the input into components in a single left-to-right pass.
// Each state consumes its component and picks the event leading to the next one,
// delimiters of the components are disjoint, so no backtracking is needed.
type scanner struct {
	in   string
	pos  int
	next string
	auth bool // input has "//" authority marker
	u    URI

	fsm *stateless.StateMachine
	log *slog.Logger
}

func (sc *scanner) initFSM() {
	sc.fsm = stateless.NewStateMachine(stateScheme)

	sc.fsm.Configure(stateScheme).
		Permit(evtAuthority, stateAuthority).
		Permit(evtPath, statePath)

	sc.fsm.Configure(stateAuthority).
		OnEntry(sc.actAuthority).
		Permit(evtPath, statePath)

	sc.fsm.Configure(statePath).
		OnEntry(sc.actPath).
		Permit(evtQuery, stateQuery).
		Permit(evtFragment, stateFragment).
		Permit(evtEnd, stateDone)

	sc.fsm.Configure(stateQuery).
		OnEntry(sc.actQuery).
		Permit(evtFragment, stateFragment).
		Permit(evtEnd, stateDone)

	sc.fsm.Configure(stateFragment).
		OnEntry(sc.actFragment).
		Permit(evtEnd, stateDone)

	sc.fsm.Configure(stateDone).
		OnEntry(sc.actDone)
}

func (sc *scanner) actScheme(ctx context.Context, _ ...any) error {
	// scheme is present only if ":" goes before any other delimiter
	if i := strings.IndexAny(sc.in, ":/?#"); i > 0 && sc.in[i] == ':' && grammar.IsScheme(sc.in[:i]) {
		sc.u.scheme = normalizeScheme(sc.in[:i])
		sc.pos = i + 1
		sc.trace(ctx, ComponentScheme, sc.u.scheme)
	}

	if strings.HasPrefix(sc.in[sc.pos:], "//") {
		sc.next = evtAuthority
	} else {
		sc.next = evtPath
	}
	return nil
}

func (sc *scanner) actAuthority(ctx context.Context, _ ...any) error {
	sc.auth = true
	sc.pos += 2
	start := sc.pos
	end := len(sc.in)
	if i := strings.IndexAny(sc.in[start:], "/?#"); i >= 0 {
		end = start + i
	}
	sc.pos = end
	sc.next = evtPath

	hostport := sc.in[start:end]
	hostPos := start
	if i := strings.LastIndexByte(hostport, '@'); i >= 0 {
		ui := hostport[:i]
		if grammar.HasCTL(ui) {
			return errtrace.Wrap(sc.fail(ctx, ComponentUserInfo, start, newCTLErr(ComponentUserInfo, ui)))
		}
		sc.u.userInfo = normalizeUserInfo(ui)
		hostport = hostport[i+1:]
		hostPos += i + 1
		if sc.u.userInfo != "" {
			sc.log.LogAttrs(ctx, slog.LevelDebug, "URI component scanned",
				slog.String("component", ComponentUserInfo.String()),
				slog.String("userinfo", sc.u.userInfo),
			)
		}
	}

	var host, port string
	if strings.HasPrefix(hostport, "[") {
		i := strings.IndexByte(hostport, ']')
		if i < 0 {
			return errtrace.Wrap(sc.fail(ctx, ComponentHost, hostPos,
				newComponentErr(ComponentHost, hostport, "missing closing bracket of IP-literal")))
		}
		host = hostport[:i+1]
		if rest := hostport[i+1:]; rest != "" {
			if rest[0] != ':' {
				return errtrace.Wrap(sc.fail(ctx, ComponentHost, hostPos,
					newComponentErr(ComponentHost, hostport, "unexpected chars after IP-literal")))
			}
			port = rest[1:]
		}
	} else if i := strings.LastIndexByte(hostport, ':'); i >= 0 {
		host, port = hostport[:i], hostport[i+1:]
	} else {
		host = hostport
	}

	if !grammar.IsHost(host) {
		return errtrace.Wrap(sc.fail(ctx, ComponentHost, hostPos,
			newComponentErr(ComponentHost, host, "must be IP-literal, IPv4address or reg-name")))
	}
	sc.u.host = normalizeHost(host)
	sc.trace(ctx, ComponentHost, sc.u.host)

	// "host:" with empty port is allowed and means no port
	if port == "" {
		return nil
	}
	portPos := hostPos + len(host) + 1
	if !grammar.IsPort(port) {
		return errtrace.Wrap(sc.fail(ctx, ComponentPort, portPos,
			newComponentErr(ComponentPort, port, "must be a decimal number")))
	}
	n, err := strconv.Atoi(port)
	if err != nil || n < minPort || n > maxPort {
		return errtrace.Wrap(sc.fail(ctx, ComponentPort, portPos, &PortError{Value: n}))
	}
	sc.u.port, sc.u.hasPort = uint16(n), true
	sc.trace(ctx, ComponentPort, port)
	return nil
}

func (sc *scanner) actPath(ctx context.Context, _ ...any) error {
	start := sc.pos
	end := len(sc.in)
	if i := strings.IndexAny(sc.in[start:], "?#"); i >= 0 {
		end = start + i
	}
	path := sc.in[start:end]

	if grammar.HasCTL(path) {
		return errtrace.Wrap(sc.fail(ctx, ComponentPath, start, newCTLErr(ComponentPath, path)))
	}
	if sc.u.scheme == "" && !sc.auth && path != "" && path[0] != '/' && firstSegmentHasColon(path) {
		return errtrace.Wrap(sc.fail(ctx, ComponentPath, start,
			newComponentErr(ComponentPath, path, "first segment of relative-path reference must not contain \":\"")))
	}

	sc.u.path = normalizePath(path)
	if sc.u.path != "" {
		sc.trace(ctx, ComponentPath, sc.u.path)
	}
	sc.pos = end
	sc.next = sc.nextEvt()
	return nil
}

func (sc *scanner) actQuery(ctx context.Context, _ ...any) error {
	start := sc.pos + 1 // skip "?"
	end := len(sc.in)
	if i := strings.IndexByte(sc.in[start:], '#'); i >= 0 {
		end = start + i
	}
	query := sc.in[start:end]

	if grammar.HasCTL(query) {
		return errtrace.Wrap(sc.fail(ctx, ComponentQuery, start, newCTLErr(ComponentQuery, query)))
	}

	sc.u.query = normalizeQuery(query)
	sc.trace(ctx, ComponentQuery, sc.u.query)
	sc.pos = end
	sc.next = sc.nextEvt()
	return nil
}

func (sc *scanner) actFragment(ctx context.Context, _ ...any) error {
	start := sc.pos + 1 // skip "#"
	frag := sc.in[start:]

	if grammar.HasCTL(frag) {
		return errtrace.Wrap(sc.fail(ctx, ComponentFragment, start, newCTLErr(ComponentFragment, frag)))
	}

	sc.u.fragment = normalizeFragment(frag)
	sc.trace(ctx, ComponentFragment, sc.u.fragment)
	sc.pos = len(sc.in)
	sc.next = evtEnd
	return nil
}

func (sc *scanner) actDone(context.Context, ...any) error {
	sc.u.suppressDefaultPort()
	return nil
}

func (sc *scanner) nextEvt() string {
	if sc.pos >= len(sc.in) {
		return evtEnd
	}
	switch sc.in[sc.pos] {
	case '?':
		return evtQuery
	case '#':
		return evtFragment
	default:
		return evtEnd
	}
}

func (sc *scanner) trace(ctx context.Context, c Component, v string) {
	sc.log.LogAttrs(ctx, slog.LevelDebug, "URI component scanned",
		slog.String("component", c.String()),
		slog.String("value", v),
	)
}

func (sc *scanner) fail(ctx context.Context, c Component, pos int, err error) error {
	sc.log.LogAttrs(ctx, slog.LevelDebug, "URI parse failed",
		slog.String("component", c.String()),
		slog.Int("offset", pos),
		slog.Any("error", err),
	)
	return &ParseError{Component: c, Input: sc.in, Pos: pos, Err: err} //errtrace:skip
}
