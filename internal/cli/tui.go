package cli

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tryp/album-table/internal/artwork"
	"github.com/tryp/album-table/internal/tui"
)

// ErrNotTerminal is returned when the TUI is started without a terminal.
var ErrNotTerminal = errors.New("the interactive table needs a terminal; use the list command instead")

type TUIArgs struct {
	*RootArgs

	Artist    string
	PageSize  int
	Paginate  bool
	Fuzzy     bool
	NoArtwork bool
}

func NewTUIArgs(ra *RootArgs) *TUIArgs {
	return &TUIArgs{RootArgs: ra}
}

func (ta *TUIArgs) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&ta.Artist, "artist", "a", "", "Artist to search for")
	cmd.Flags().IntVarP(&ta.PageSize, "page-size", "n", 0, "Rows per page")
	cmd.Flags().BoolVar(&ta.Paginate, "paginate", true, "Split the table into pages")
	cmd.Flags().BoolVar(&ta.Fuzzy, "fuzzy", false, "Match the search text as a subsequence")
	cmd.Flags().BoolVar(&ta.NoArtwork, "no-artwork", false, "Do not download album artwork")
}

func NewTUICmd(ta *TUIArgs) *cobra.Command {
	cmd := &cobra.Command{
		Use:         "tui",
		Short:       "Open the interactive album table",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationLogToFile: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !isTerminal(cmd.OutOrStdout()) {
				return ErrNotTerminal
			}
			return ta.run(cmd)
		},
	}

	ta.AddFlags(cmd)

	return cmd
}

func (ta *TUIArgs) run(cmd *cobra.Command) error {
	settings := ta.settings

	flags := cmd.Flags()
	if strings.TrimSpace(ta.Artist) != "" {
		settings.Term = ta.Artist
	}
	if flags.Changed("page-size") {
		settings.PageSize = ta.PageSize
	}
	if flags.Changed("paginate") {
		settings.Paginated = ta.Paginate
	}
	if flags.Changed("fuzzy") {
		settings.FuzzyFilter = ta.Fuzzy
	}
	if ta.NoArtwork {
		settings.Artwork.Enabled = false
	}
	if err := settings.Validate(); err != nil {
		return err
	}

	client := ta.httpClient()
	searcher, err := ta.searchClient(client)
	if err != nil {
		return err
	}

	var art *artwork.Service
	if settings.Artwork.Enabled {
		art = artwork.NewService(client, ta.logger, artwork.Options{
			Attempts: settings.Artwork.MaxRetries,
			Delay:    settings.Artwork.RetryDelay(),
			Size:     settings.Artwork.Size,
			Columns:  settings.Artwork.Columns,
		})
	}

	ta.logger.Info("starting tui", "term", settings.Term, "page_size", settings.PageSize)

	return tui.Run(tui.Options{
		Settings: settings,
		Searcher: searcher,
		Artwork:  art,
		Logger:   ta.logger,
		Locale:   ta.locale(),
	})
}
