package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/peterbourgon/ff/v3"
	"github.com/peterbourgon/ff/v3/ffcli"

	wlog "github.com/wifui/wifui/internal/log"
	"github.com/wifui/wifui/internal/tui"
	"github.com/wifui/wifui/wifi"
)

var (
	// Version is the version of the application. It is set at build time.
	Version string = "dev"
)

func main() {
	var (
		rootFlagSet = flag.NewFlagSet("wifui", flag.ExitOnError)
		theme       = rootFlagSet.String("theme", "", "path to theme toml file (env: WIFUI_THEME)")
		ascii       = rootFlagSet.Bool("ascii", false, "use plain ASCII icons (env: WIFUI_ASCII)")
		logPath     = rootFlagSet.String("log", "", "path to debug log file (env: WIFUI_LOG)")
		version     = rootFlagSet.Bool("version", false, "display version")
	)

	var b wifi.Backend

	listFlagSet := flag.NewFlagSet("list", flag.ExitOnError)
	listJSON := listFlagSet.Bool("json", false, "output in JSON format")
	listCmd := &ffcli.Command{
		Name:      "list",
		ShortHelp: "List wifi networks",
		FlagSet:   listFlagSet,
		Exec: func(ctx context.Context, args []string) error {
			return runList(os.Stdout, *listJSON, b)
		},
	}

	showFlagSet := flag.NewFlagSet("show", flag.ExitOnError)
	showJSON := showFlagSet.Bool("json", false, "output in JSON format")
	showCmd := &ffcli.Command{
		Name:      "show",
		ShortHelp: "Show a wifi network, including its stored passphrase",
		FlagSet:   showFlagSet,
		Exec: func(ctx context.Context, args []string) error {
			if len(args) == 0 {
				return fmt.Errorf("show requires an ssid")
			}
			return runShow(os.Stdout, *showJSON, args[0], b)
		},
	}

	connectFlagSet := flag.NewFlagSet("connect", flag.ExitOnError)
	connectPassphrase := connectFlagSet.String("passphrase", "", "passphrase for the network")
	connectSecurity := connectFlagSet.String("security", "wpa2", "security type (open, wep, wpa, wpa2, wpa3)")
	connectHidden := connectFlagSet.Bool("hidden", false, "network is hidden")
	connectCmd := &ffcli.Command{
		Name:      "connect",
		ShortHelp: "Connect to a wifi network",
		FlagSet:   connectFlagSet,
		Exec: func(ctx context.Context, args []string) error {
			if len(args) == 0 {
				return fmt.Errorf("connect requires an ssid")
			}
			security, err := parseSecurity(*connectSecurity)
			if err != nil {
				return err
			}
			return runConnect(os.Stdout, args[0], *connectPassphrase, security, *connectHidden, b)
		},
	}

	root := &ffcli.Command{
		ShortUsage:  "wifui [flags] <subcommand> [args...]",
		FlagSet:     rootFlagSet,
		Options:     []ff.Option{ff.WithEnvVarPrefix("WIFUI")},
		Subcommands: []*ffcli.Command{listCmd, showCmd, connectCmd},
		Exec: func(ctx context.Context, args []string) error {
			return runTUI(b)
		},
	}

	// Parse root flags first so the theme and logger are ready before the
	// backend comes up. ParseAndRun parses them again, which is harmless.
	err := ff.Parse(rootFlagSet, os.Args[1:],
		ff.WithEnvVarPrefix("WIFUI"),
		ff.WithIgnoreUndefined(true),
	)
	if err != nil {
		if err == flag.ErrHelp {
			root.FlagSet.Usage()
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "error parsing flags: %v\n", err)
		os.Exit(1)
	}

	if *version {
		fmt.Println(Version)
		os.Exit(0)
	}

	if err := tui.LoadTheme(*theme); err != nil {
		fmt.Fprintf(os.Stderr, "error loading theme: %v\n", err)
		os.Exit(1)
	}
	if *ascii {
		tui.UseASCIIIcons()
	}

	logger, closeLog, err := wlog.New(*logPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error opening log: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	b, err = GetBackend(logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	tuiLogger = logger

	if err := root.ParseAndRun(context.Background(), os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func parseSecurity(s string) (wifi.Security, error) {
	switch s {
	case "open":
		return wifi.SecurityOpen, nil
	case "wep":
		return wifi.SecurityWEP, nil
	case "wpa":
		return wifi.SecurityWPAPersonal, nil
	case "wpa2":
		return wifi.SecurityWPA2Personal, nil
	case "wpa3":
		return wifi.SecurityWPA3Personal, nil
	}
	return wifi.SecurityUnknown, fmt.Errorf("invalid security type: %s", s)
}
