package main

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"braces.dev/errtrace"
	"github.com/carlmjohnson/versioninfo"
	"github.com/goccy/go-json"
	"github.com/urfave/cli/v2"

	"github.com/ghettovoice/gouri/internal/errorutil"
	"github.com/ghettovoice/gouri/internal/log"
	"github.com/ghettovoice/gouri/uri"
)

const errInvalidURIs errorutil.Error = "some URIs are invalid"

type env struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	log    *slog.Logger
	parser *uri.Parser
}

func newApp(stdin io.Reader, stdout, stderr io.Writer) *cli.App {
	rt := &env{
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
		log:    log.Noop,
		parser: uri.NewParser(nil),
	}

	return &cli.App{
		Name:      "urictl",
		Usage:     "parse, validate, normalize and edit URI references (RFC 3986)",
		Version:   versioninfo.Short(),
		Reader:    stdin,
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "log level: debug, info, warn, error",
				Value:   "warn",
				EnvVars: []string{"URICTL_LOG_LEVEL"},
			},
			&cli.StringFlag{
				Name:    "log-format",
				Usage:   "log format: console, dev, none",
				Value:   log.FormatConsole,
				EnvVars: []string{"URICTL_LOG_FORMAT"},
			},
			&cli.StringSliceFlag{
				Name:    "default-port",
				Usage:   "extra scheme default port as scheme=port, port 0 removes the scheme",
				EnvVars: []string{"URICTL_DEFAULT_PORTS"},
			},
			&cli.BoolFlag{
				Name:  "no-std-ports",
				Usage: "do not use the standard default ports table",
			},
		},
		Before: rt.setup,
		Commands: []*cli.Command{
			{
				Name:      "parse",
				Usage:     "print components of URI references",
				ArgsUsage: "<uri>...",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "print JSON objects, one per line",
					},
				},
				Action: rt.runParse,
			},
			{
				Name:      "check",
				Usage:     "validate URI references, exit with error if any is invalid",
				ArgsUsage: "<uri>...",
				Action:    rt.runCheck,
			},
			{
				Name:      "normalize",
				Usage:     "print canonical form of URI references, reads stdin lines if no args given",
				ArgsUsage: "[<uri>...]",
				Action:    rt.runNormalize,
			},
			{
				Name:      "edit",
				Usage:     "replace components of URI reference",
				ArgsUsage: "<uri>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "scheme", Usage: "new scheme, empty removes"},
					&cli.StringFlag{Name: "host", Usage: "new host, empty removes"},
					&cli.IntFlag{Name: "port", Usage: "new port"},
					&cli.BoolFlag{Name: "no-port", Usage: "remove port"},
					&cli.StringFlag{Name: "path", Usage: "new path"},
					&cli.StringFlag{Name: "query", Usage: "new query, empty removes"},
					&cli.StringFlag{Name: "fragment", Usage: "new fragment, empty removes"},
					&cli.StringFlag{Name: "user", Usage: "new user name, empty removes userinfo"},
					&cli.StringFlag{Name: "password", Usage: "new password, used with --user"},
				},
				Action: rt.runEdit,
			},
		},
	}
}

func (rt *env) setup(cctx *cli.Context) error {
	lvl, err := log.ParseLevel(cctx.String("log-level"))
	if err != nil {
		return errtrace.Wrap(errorutil.NewInvalidArgumentError(err))
	}
	logger, err := log.New(rt.stderr, cctx.String("log-format"), lvl)
	if err != nil {
		return errtrace.Wrap(err)
	}

	ports, err := buildPorts(cctx.Bool("no-std-ports"), cctx.StringSlice("default-port"))
	if err != nil {
		return errtrace.Wrap(err)
	}

	rt.log = logger
	rt.parser = uri.NewParser(&uri.ParserOptions{Ports: ports, Logger: logger})

	rt.log.LogAttrs(cctx.Context, slog.LevelDebug, "urictl configured",
		slog.String("version", versioninfo.Short()),
		slog.Any("default_ports", ports.Schemes()),
	)
	return nil
}

func buildPorts(noStd bool, entries []string) (*uri.PortTable, error) {
	tbl := uri.DefaultPorts
	if noStd {
		tbl = uri.NewPortTable(nil)
	}
	for _, e := range entries {
		scheme, port, ok := strings.Cut(strings.TrimSpace(e), "=")
		if !ok || scheme == "" {
			return nil, errtrace.Wrap(errorutil.NewInvalidArgumentError("invalid default port %q: want scheme=port", e))
		}
		p, err := strconv.ParseUint(port, 10, 16)
		if err != nil {
			return nil, errtrace.Wrap(errorutil.NewInvalidArgumentError("invalid default port %q: %v", e, err))
		}
		tbl = tbl.With(scheme, uint16(p))
	}
	return tbl, nil
}

func (rt *env) args(cctx *cli.Context, n int) ([]string, error) {
	args := cctx.Args().Slice()
	if len(args) < n {
		return nil, errtrace.Wrap(errorutil.NewInvalidArgumentError("need at least %d URI argument(s)", n))
	}
	return args, nil
}

type uriView struct {
	URI       string  `json:"uri"`
	Scheme    string  `json:"scheme,omitempty"`
	Authority string  `json:"authority,omitempty"`
	UserInfo  string  `json:"userinfo,omitempty"`
	Host      string  `json:"host,omitempty"`
	HostKind  string  `json:"host_kind,omitempty"`
	Port      *uint16 `json:"port,omitempty"`
	Path      string  `json:"path,omitempty"`
	Query     string  `json:"query,omitempty"`
	Fragment  string  `json:"fragment,omitempty"`
}

func newURIView(u uri.URI) uriView {
	v := uriView{
		URI:       u.String(),
		Scheme:    u.Scheme(),
		Authority: u.Authority(),
		UserInfo:  u.UserInfo(),
		Host:      u.Host(),
		Path:      u.Path(),
		Query:     u.Query(),
		Fragment:  u.Fragment(),
	}
	if k := u.HostKind(); k != uri.HostNone {
		v.HostKind = k.String()
	}
	if p, ok := u.Port(); ok {
		v.Port = &p
	}
	return v
}

func (rt *env) runParse(cctx *cli.Context) error {
	args, err := rt.args(cctx, 1)
	if err != nil {
		return errtrace.Wrap(err)
	}

	asJSON := cctx.Bool("json")
	for i, s := range args {
		u, err := rt.parser.Parse(s)
		if err != nil {
			return errtrace.Wrap(err)
		}

		v := newURIView(u)
		if asJSON {
			data, err := json.Marshal(v)
			if err != nil {
				return errtrace.Wrap(err)
			}
			fmt.Fprintf(rt.stdout, "%s\n", data)
			continue
		}

		if i > 0 {
			fmt.Fprintln(rt.stdout)
		}
		port := ""
		if v.Port != nil {
			port = strconv.Itoa(int(*v.Port))
		}
		for _, kv := range [][2]string{
			{"uri", v.URI},
			{"scheme", v.Scheme},
			{"authority", v.Authority},
			{"userinfo", v.UserInfo},
			{"host", v.Host},
			{"host_kind", v.HostKind},
			{"port", port},
			{"path", v.Path},
			{"query", v.Query},
			{"fragment", v.Fragment},
		} {
			if kv[1] != "" {
				fmt.Fprintf(rt.stdout, "%-10s %s\n", kv[0]+":", kv[1])
			}
		}
	}
	return nil
}

func (rt *env) runCheck(cctx *cli.Context) error {
	args, err := rt.args(cctx, 1)
	if err != nil {
		return errtrace.Wrap(err)
	}

	var invalid int
	for _, s := range args {
		if _, err := rt.parser.Parse(s); err != nil {
			invalid++
			fmt.Fprintf(rt.stdout, "invalid\t%s\t%v\n", s, err)
			continue
		}
		fmt.Fprintf(rt.stdout, "ok\t%s\n", s)
	}
	if invalid > 0 {
		return errtrace.Wrap(errorutil.NewWrapperError(errInvalidURIs, "%d of %d", invalid, len(args)))
	}
	return nil
}

func (rt *env) runNormalize(cctx *cli.Context) error {
	args := cctx.Args().Slice()
	if len(args) == 0 {
		sc := bufio.NewScanner(rt.stdin)
		for sc.Scan() {
			if line := strings.TrimSpace(sc.Text()); line != "" {
				args = append(args, line)
			}
		}
		if err := sc.Err(); err != nil {
			return errtrace.Wrap(err)
		}
	}

	for _, s := range args {
		u, err := rt.parser.Parse(s)
		if err != nil {
			return errtrace.Wrap(err)
		}
		fmt.Fprintln(rt.stdout, u.String())
	}
	return nil
}

func (rt *env) runEdit(cctx *cli.Context) error {
	args, err := rt.args(cctx, 1)
	if err != nil {
		return errtrace.Wrap(err)
	}

	u, err := rt.parser.Parse(args[0])
	if err != nil {
		return errtrace.Wrap(err)
	}

	type edit struct {
		flag  string
		apply func(uri.URI, string) (uri.URI, error)
	}
	for _, e := range []edit{
		{"scheme", uri.URI.WithScheme},
		{"host", uri.URI.WithHost},
		{"path", uri.URI.WithPath},
		{"query", uri.URI.WithQuery},
		{"fragment", uri.URI.WithFragment},
	} {
		if !cctx.IsSet(e.flag) {
			continue
		}
		if u, err = e.apply(u, cctx.String(e.flag)); err != nil {
			return errtrace.Wrap(err)
		}
	}

	switch {
	case cctx.Bool("no-port"):
		u = u.WithoutPort()
	case cctx.IsSet("port"):
		if u, err = u.WithPort(cctx.Int("port")); err != nil {
			return errtrace.Wrap(err)
		}
	}

	if cctx.IsSet("user") {
		if cctx.IsSet("password") {
			u = u.WithUserPassword(cctx.String("user"), cctx.String("password"))
		} else {
			u = u.WithUserInfo(cctx.String("user"))
		}
	}

	rt.log.LogAttrs(cctx.Context, slog.LevelDebug, "URI edited",
		slog.Any("uri", log.StringValue(u.Redacted())),
	)

	fmt.Fprintln(rt.stdout, u.String())
	return nil
}
