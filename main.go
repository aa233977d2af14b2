package main

import (
	"fmt"
	"os"
	"runtime/debug"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	log "github.com/sirupsen/logrus"

	"github.com/CrestNiraj12/socialfeed/app"
	"github.com/CrestNiraj12/socialfeed/infra/api"
	"github.com/CrestNiraj12/socialfeed/infra/config"
	"github.com/CrestNiraj12/socialfeed/infra/editor"
	"github.com/CrestNiraj12/socialfeed/infra/logging"
	"github.com/CrestNiraj12/socialfeed/infra/session"
	"github.com/CrestNiraj12/socialfeed/tui"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

type cliMode int

const (
	cliRun cliMode = iota
	cliVersion
	cliHelp
	cliLogout
	cliInvalid
)

func parseCLIArgs(args []string) (cliMode, string) {
	if len(args) == 0 {
		return cliRun, ""
	}

	switch args[0] {
	case "--version", "-version", "-v":
		return cliVersion, ""
	case "--help", "-h", "help":
		return cliHelp, ""
	case "logout":
		return cliLogout, ""
	default:
		return cliInvalid, fmt.Sprintf("unexpected argument: %s", strings.Join(args, " "))
	}
}

func usage() string {
	return "Usage: socialfeed [--version|-version|-v] [--help|-h] [logout]"
}

func resolveVersionInfo(v, c, d, moduleVersion string, settings map[string]string) (string, string, string) {
	if v == "dev" {
		mv := strings.TrimSpace(moduleVersion)
		if mv != "" && mv != "(devel)" {
			v = mv
		}
	}
	if c == "none" {
		rev := strings.TrimSpace(settings["vcs.revision"])
		if rev != "" {
			if len(rev) > 12 {
				rev = rev[:12]
			}
			c = rev
		}
	}
	if d == "unknown" {
		t := strings.TrimSpace(settings["vcs.time"])
		if t != "" {
			d = t
		}
	}
	return v, c, d
}

func buildSettingsMap(in []debug.BuildSetting) map[string]string {
	out := make(map[string]string, len(in))
	for _, s := range in {
		out[s.Key] = s.Value
	}
	return out
}

func resolvedRuntimeVersionInfo(v, c, d string) (string, string, string) {
	info, ok := debug.ReadBuildInfo()
	if !ok || info == nil {
		return v, c, d
	}
	return resolveVersionInfo(v, c, d, info.Main.Version, buildSettingsMap(info.Settings))
}

func main() {
	mode, msg := parseCLIArgs(os.Args[1:])
	switch mode {
	case cliVersion:
		v, c, d := resolvedRuntimeVersionInfo(version, commit, date)
		fmt.Printf("socialfeed %s\ncommit: %s\nbuilt: %s\n", v, c, d)
		return
	case cliHelp:
		fmt.Println(usage())
		return
	case cliInvalid:
		fmt.Fprintf(os.Stderr, "%s\n%s\n", msg, usage())
		os.Exit(2)
	}

	// 1. Load config from environment and the optional TOML file.
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logFile, err := logging.Setup(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()

	// 2. Load the stored session.
	store := session.NewStore(cfg.SessionPath)
	if err := store.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "session: %v\n", err)
		os.Exit(1)
	}

	if mode == cliLogout {
		if err := store.Clear(); err != nil {
			fmt.Fprintf(os.Stderr, "logout: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Logged out.")
		return
	}

	// 3. Build services (concrete types satisfy app.* interfaces).
	client := api.NewClient(cfg.APIURL, store)
	feedSvc := api.NewFeedService(client)
	postSvc := api.NewPostService(client)

	uiState, err := config.LoadUIState(cfg.UIStatePath)
	if err != nil {
		log.Warnf("[main] ignoring ui state: %v", err)
	}

	log.Infof("[main] starting against %s", cfg.APIURL)

	// 4. Wire root TUI model.
	rootModel := tui.NewApp(tui.Deps{
		Auth:         api.NewAuthService(client),
		Feed:         feedSvc,
		Interactions: feedSvc,
		Posts:        postSvc,
		Profile:      api.NewProfileService(client),
		Publisher:    app.NewPublisher(postSvc, api.NewUploadService(client)),
		Session:      store,
		Editor:       editor.NewEnvEditor(),
		PageSize:     cfg.PageSize,
		StatePath:    cfg.UIStatePath,
		InitialView:  uiState.View,
	})

	// 5. Run.
	p := tea.NewProgram(rootModel, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Errorf("[main] %v", err)
		fmt.Fprintf(os.Stderr, "socialfeed: %v\n", err)
		os.Exit(1)
	}
}
