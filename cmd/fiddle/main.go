package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/ArtekArtek/fiddle/internal/binaries"
	"github.com/ArtekArtek/fiddle/internal/catalog"
	"github.com/ArtekArtek/fiddle/internal/config"
	"github.com/ArtekArtek/fiddle/internal/ipc"
	"github.com/ArtekArtek/fiddle/internal/model"
	"github.com/ArtekArtek/fiddle/internal/runner"
	"github.com/ArtekArtek/fiddle/internal/storage"
	"github.com/ArtekArtek/fiddle/internal/store"
	"github.com/ArtekArtek/fiddle/internal/typedefs"
	"github.com/ArtekArtek/fiddle/internal/version"
	"github.com/ArtekArtek/fiddle/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func run() error {
	args := os.Args[1:]
	if len(args) == 0 {
		printUsage()
		return nil
	}

	switch args[0] {
	case "help", "--help", "-h":
		printUsage()
		return nil
	case "version", "--version", "-v":
		fmt.Println("fiddle v1.0.0")
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logger.SetLevel(level)

	app, err := newApp(cfg)
	if err != nil {
		return err
	}
	defer app.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.start(ctx); err != nil {
		return err
	}

	switch args[0] {
	case "versions":
		return app.listVersions(ctx)
	case "use":
		if len(args) < 2 {
			return errors.New("usage: fiddle use <version>")
		}
		return app.useVersion(ctx, args[1])
	case "install":
		if len(args) < 2 {
			return errors.New("usage: fiddle install <version>")
		}
		return app.installVersion(ctx, args[1])
	case "remove":
		if len(args) < 2 {
			return errors.New("usage: fiddle remove <version>")
		}
		return app.removeVersion(ctx, args[1])
	case "run":
		if len(args) < 2 {
			return errors.New("usage: fiddle run <dir> [version]")
		}
		return app.runFiddle(ctx, args[1], args[2:])
	case "signin":
		return app.signIn(ctx, args[1:])
	case "signout":
		return app.signOut(ctx)
	case "whoami":
		return app.whoAmI()
	case "settings":
		app.openSettings()
		return nil
	case "clear":
		app.clearConsole()
		return nil
	case "tour":
		return app.tour(ctx)
	default:
		printUsage()
		return fmt.Errorf("unknown command: %s", args[0])
	}
}

// app wires the application-state store to its collaborators.
type app struct {
	cfg      *config.Config
	settings storage.Store
	store    *store.Store
	runner   *runner.Runner
	bus      *ipc.Bus
	catalog  *catalog.Catalog
}

func newApp(cfg *config.Config) (*app, error) {
	settings, err := storage.OpenBolt(cfg.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("open settings store: %w", err)
	}

	manager := binaries.NewDiskManager(cfg.BinariesDir, binaries.NewCopyFetcher(cfg.DistDir))
	st := store.New(settings, manager, cfg.LineBuffered)
	st.SetTypedefsRefresher(typedefs.NewDiskCache(cfg.TypedefsDir, cfg.TypedefsURL))

	cat := catalog.New(cfg.ReleasesURL)
	st.SetReleaseLister(cat)

	bus := ipc.NewBus()
	bus.Subscribe(ipc.SignalOpenSettings, st.ToggleSettings)
	bus.Subscribe(ipc.SignalClearConsole, st.ClearConsole)

	return &app{
		cfg:      cfg,
		settings: settings,
		store:    st,
		runner:   runner.New(st, manager),
		bus:      bus,
		catalog:  cat,
	}, nil
}

func (a *app) Close() error {
	return a.settings.Close()
}

// start hydrates persisted state, seeds the version registry from the
// embedded release list, and recomputes which versions are on disk.
func (a *app) start(ctx context.Context) error {
	if err := a.store.Hydrate(ctx); err != nil {
		return err
	}

	seed, err := a.catalog.Seed()
	if err != nil {
		return fmt.Errorf("load seed releases: %w", err)
	}
	a.store.SetVersions(seed)

	return a.store.UpdateDownloadedVersionState(ctx)
}

func (a *app) listVersions(ctx context.Context) error {
	// Pull fresh releases; the embedded seed plus disk state works offline.
	if err := a.store.RefreshVersions(ctx); err != nil {
		logger.Warnf("release feed refresh failed: %v", err)
	}

	versions := a.store.Versions()
	tags := make([]string, 0, len(versions))
	for tag := range versions {
		tags = append(tags, tag)
	}
	version.SortDescending(tags)

	current := a.store.Version()
	for _, tag := range tags {
		marker := " "
		if tag == current {
			marker = "*"
		}
		fmt.Printf("%s %s\n", marker, versions[tag].Label())
	}
	return nil
}

func (a *app) useVersion(ctx context.Context, input string) error {
	err := a.store.SetVersion(ctx, input)
	a.printConsole()
	if err != nil {
		return err
	}
	fmt.Printf("Now using runtime v%s\n", a.store.Version())
	return nil
}

func (a *app) installVersion(ctx context.Context, input string) error {
	err := a.store.DownloadVersion(ctx, input)
	a.printConsole()
	if err != nil {
		return err
	}
	entry, _ := a.store.VersionEntry(version.Normalize(input))
	fmt.Printf("Installed %s\n", entry.Label())
	return nil
}

func (a *app) removeVersion(ctx context.Context, input string) error {
	ver := version.Normalize(input)
	entry, exists := a.store.VersionEntry(ver)
	if !exists || !entry.State.IsReady() {
		fmt.Printf("Runtime v%s is not downloaded\n", ver)
		return nil
	}

	if err := a.store.RemoveVersion(ctx, ver); err != nil {
		return err
	}
	fmt.Printf("Removed runtime v%s\n", ver)
	return nil
}

func (a *app) runFiddle(ctx context.Context, dir string, rest []string) error {
	ver := ""
	if len(rest) > 0 {
		ver = rest[0]
	}
	if ver == "" {
		ver = a.newestReady()
		if ver == "" {
			return errors.New("no runtime downloaded, install one first")
		}
	}
	if err := a.store.SetVersion(ctx, ver); err != nil {
		return err
	}

	a.streamConsole(os.Stdout)
	return a.runner.Run(ctx, dir)
}

func (a *app) signIn(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("signin", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	login := fs.String("login", "", "GitHub login")
	name := fs.String("name", "", "Display name")
	avatar := fs.String("avatar", "", "Avatar URL")
	token := fs.String("token", "", "Access token")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *login == "" || *token == "" {
		return errors.New("usage: fiddle signin --login <login> --token <token> [--name <name>] [--avatar <url>]")
	}

	user := model.GitHubUser{
		Login:     *login,
		Name:      *name,
		AvatarURL: *avatar,
		Token:     *token,
	}
	if err := a.store.SignInGitHub(ctx, user); err != nil {
		return err
	}
	fmt.Printf("Signed in as %s\n", user.DisplayName())
	return nil
}

func (a *app) signOut(ctx context.Context) error {
	if err := a.store.SignOutGitHub(ctx); err != nil {
		return err
	}
	fmt.Println("Signed out")
	return nil
}

func (a *app) whoAmI() error {
	user := a.store.User()
	if !user.IsSignedIn() {
		fmt.Println("Not signed in")
		return nil
	}
	fmt.Printf("%s (%s)\n", user.DisplayName(), user.Login)
	return nil
}

func (a *app) openSettings() {
	a.bus.Publish(ipc.SignalOpenSettings)
	fmt.Printf("Settings showing: %v\n", a.store.SettingsShowing())
}

func (a *app) clearConsole() {
	a.bus.Publish(ipc.SignalClearConsole)
	fmt.Println("Console cleared")
}

func (a *app) tour(ctx context.Context) error {
	if !a.store.TourShowing() {
		a.store.ShowTour()
	}
	fmt.Println("Welcome to Fiddle! Pick a runtime with 'use', then 'run' a fiddle directory.")
	return a.store.DisableTour(ctx)
}

// newestReady returns the newest downloaded version tag, if any.
func (a *app) newestReady() string {
	versions := a.store.Versions()
	tags := make([]string, 0, len(versions))
	for tag, entry := range versions {
		if entry.State.IsReady() {
			tags = append(tags, tag)
		}
	}
	if len(tags) == 0 {
		return ""
	}
	version.SortDescending(tags)
	return tags[0]
}

// printConsole renders the console output log to stdout.
func (a *app) printConsole() {
	for _, entry := range a.store.Output() {
		fmt.Println(entry.Format())
	}
}

// streamConsole prints console entries to w as they are appended. Clearing
// the console shrinks the log, so the print position restarts at zero and
// every surviving entry counts as new.
func (a *app) streamConsole(w io.Writer) {
	var mu sync.Mutex
	printed := 0
	a.store.SetChangeCallback(func() {
		mu.Lock()
		defer mu.Unlock()
		out := a.store.Output()
		if printed > len(out) {
			printed = 0
		}
		for _, entry := range out[printed:] {
			fmt.Fprintln(w, entry.Format())
		}
		printed = len(out)
	})
}

const usageText = `fiddle - run small Electron code snippets against any runtime version

Usage:
  fiddle versions              List known runtime versions, newest first
  fiddle use <version>         Select a runtime, downloading it if needed
  fiddle install <version>     Download a runtime
  fiddle remove <version>      Delete a downloaded runtime
  fiddle run <dir> [version]   Run the fiddle in <dir>
  fiddle signin [flags]        Store GitHub credentials
  fiddle signout               Forget GitHub credentials
  fiddle whoami                Show the signed-in user
  fiddle settings              Toggle the settings panel over the signal bus
  fiddle clear                 Clear the console over the signal bus
  fiddle tour                  Show the welcome tour once
  fiddle version               Show version information
  fiddle help                  Show this help message

Environment Variables:
  FIDDLE_HOME_DIR       State directory (default: ~/.fiddle)
  FIDDLE_RELEASES_URL   Runtime release feed URL
  FIDDLE_TYPEDEFS_URL   Type definition URL template with one %s placeholder
  FIDDLE_DIST_DIR       Local runtime payload tree installs copy from
  FIDDLE_LINE_BUFFERED  Line-buffer console output (default: true on Windows)
  FIDDLE_LOG_LEVEL      trace|debug|info|warn|error (default: info)

Examples:
  # List versions, newest first
  fiddle versions

  # Download and select a runtime
  fiddle use v35.0.0

  # Run a fiddle against the newest downloaded runtime
  fiddle run ./my-fiddle`

func printUsage() {
	fmt.Printf("%s\n", usageText)
}
