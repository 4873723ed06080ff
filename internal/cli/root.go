package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	"golang.org/x/text/language"

	"github.com/tryp/album-table/internal/cache"
	"github.com/tryp/album-table/internal/config"
	"github.com/tryp/album-table/internal/http"
	"github.com/tryp/album-table/internal/itunes"
	"github.com/tryp/album-table/internal/logging"
	"github.com/tryp/album-table/internal/present"
)

const (
	cmdName = "album-table"
	cmdDesc = `Browse, sort, filter and export iTunes albums from the terminal.`

	// annotationLogToFile marks commands that own the terminal and must
	// not log to stderr.
	annotationLogToFile = "album-table/log-to-file"
)

const cmdExamples = `  # Open the interactive album table
  album-table

  # Start with another artist
  album-table tui --artist "stevie wonder"

  # Print the second page of albums sorted by track count
  album-table list --sort tracks:desc --page 2

  # Filter by album name and export the matches as JSON
  album-table list --filter thriller --format json

  # Remove expired search responses from the cache
  album-table cache prune`

// RootArgs holds the flags shared by every command, and the settings and
// logger resolved from them before a command runs.
type RootArgs struct {
	ConfigPath string
	LogLevel   string
	LogFile    string
	Locale     string
	NoCache    bool

	// APIURL overrides the iTunes search endpoint.
	APIURL string

	lookupEnv func(string) (string, bool)

	settings *config.Settings
	logger   *log.Logger
	closer   io.Closer
}

func NewRootArgs(lookupEnv func(string) (string, bool)) *RootArgs {
	if lookupEnv == nil {
		lookupEnv = os.LookupEnv
	}
	return &RootArgs{lookupEnv: lookupEnv}
}

func (ra *RootArgs) AddFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().
		StringVar(&ra.ConfigPath, "config", config.DefaultPath(), "Path to the YAML settings file")
	cmd.PersistentFlags().
		StringVar(&ra.LogLevel, "log-level", "", fmt.Sprintf("Log level, one of: %s", logging.AllLevels))
	cmd.PersistentFlags().
		StringVar(&ra.LogFile, "log-file", "", "Log file used while the TUI is running")
	cmd.PersistentFlags().
		StringVar(&ra.Locale, "locale", "", "Locale for sorting and dates, e.g. en-US or de-DE")
	cmd.PersistentFlags().
		BoolVar(&ra.NoCache, "no-cache", false, "Do not read or write cached search responses")
	cmd.PersistentFlags().
		StringVar(&ra.APIURL, "api-url", itunes.DefaultBaseURL, "iTunes search endpoint")

	if err := cmd.PersistentFlags().MarkHidden("api-url"); err != nil {
		panic(err)
	}

	err := cmd.RegisterFlagCompletionFunc("log-level",
		cobra.FixedCompletions(logging.AllLevels, cobra.ShellCompDirectiveNoFileComp),
	)
	if err != nil {
		panic(err)
	}
}

// NewRootCmd creates the album-table command. Without a subcommand it
// opens the TUI.
func NewRootCmd() *cobra.Command {
	return NewRootCmdWithEnv(os.LookupEnv)
}

// NewRootCmdWithEnv creates the root command with an explicit environment
// lookup, for tests.
func NewRootCmdWithEnv(lookupEnv func(string) (string, bool)) *cobra.Command {
	args := NewRootArgs(lookupEnv)
	tuiArgs := NewTUIArgs(args)

	tuiCmd := NewTUICmd(tuiArgs)
	cmd := &cobra.Command{
		Use:                cmdName,
		Short:              cmdDesc,
		Example:            cmdExamples,
		SilenceUsage:       true,
		PersistentPreRunE:  setup(args),
		PersistentPostRunE: cleanup(args),
		Args:               tuiCmd.Args,
		RunE:               tuiCmd.RunE,
		Annotations:        tuiCmd.Annotations,
	}

	args.AddFlags(cmd)
	tuiArgs.AddFlags(cmd)
	cmd.AddCommand(tuiCmd, NewListCmd(args), NewCacheCmd(args))

	return cmd
}

// setup resolves the settings and the logger before any command runs.
func setup(ra *RootArgs) func(cmd *cobra.Command, _ []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		settings, err := ra.loadSettings(cmd)
		if err != nil {
			return err
		}
		ra.settings = settings

		if cmd.Annotations[annotationLogToFile] == "true" {
			logger, closer, err := logging.NewFile(settings.Log.File, settings.Log.Level)
			if err != nil {
				return fmt.Errorf("open log file: %w", err)
			}
			ra.logger, ra.closer = logger, closer
			return nil
		}

		logger, err := logging.New(cmd.ErrOrStderr(), settings.Log.Level)
		if err != nil {
			return fmt.Errorf("create logger: %w", err)
		}
		ra.logger = logger

		return nil
	}
}

func cleanup(ra *RootArgs) func(*cobra.Command, []string) error {
	return func(*cobra.Command, []string) error {
		if ra.closer == nil {
			return nil
		}
		err := ra.closer.Close()
		ra.closer = nil
		return err
	}
}

// loadSettings layers the settings file, ALBUM_TABLE_* variables and the
// flags, in that order.
func (ra *RootArgs) loadSettings(cmd *cobra.Command) (*config.Settings, error) {
	settings, err := config.Load(ra.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	if err := settings.ApplyEnv(ra.lookupEnv); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		settings.Log.Level = ra.LogLevel
	}
	if flags.Changed("log-file") {
		settings.Log.File = ra.LogFile
	}
	if flags.Changed("locale") {
		settings.Locale = ra.Locale
	}
	if ra.NoCache {
		settings.Cache.Enabled = false
	}

	if _, err := logging.GetLevel(settings.Log.Level); err != nil {
		return nil, err
	}
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}

	return settings, nil
}

// locale returns the configured locale, falling back to the environment.
func (ra *RootArgs) locale() language.Tag {
	if ra.settings != nil && ra.settings.Locale != "" {
		return present.ParseLocale(ra.settings.Locale)
	}
	return present.LocaleFrom(ra.lookupEnv)
}

func (ra *RootArgs) httpClient() *http.Client {
	return http.NewClient(ra.settings.HTTPTimeout(), ra.settings.UserAgent)
}

func (ra *RootArgs) cacheStore() (*cache.FileStore, error) {
	store, err := cache.NewFileStore(ra.settings.Cache.Directory, ra.settings.Cache.Enabled, ra.settings.CacheTTL())
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}
	return store, nil
}

func (ra *RootArgs) searchClient(client *http.Client) (*itunes.Client, error) {
	store, err := ra.cacheStore()
	if err != nil {
		return nil, err
	}
	return itunes.NewClient(client, store, ra.logger, itunes.WithBaseURL(ra.APIURL)), nil
}

// isTerminal checks if the given writer is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// terminalWidth returns the width of w, or 0 when w is not a terminal.
func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}
