package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"qsearch/internal/domain"
	"qsearch/internal/search"
	"qsearch/internal/searchclient"
	"qsearch/internal/ui/views"
)

type queryOptions struct {
	page     int
	jsonOut  bool
	pageSize int
}

func newQueryCmd(opts *options) *cobra.Command {
	qopts := &queryOptions{}

	cmd := &cobra.Command{
		Use:   "query <text>",
		Short: "Run one search and print a page of results",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd, opts, qopts, strings.Join(args, " "))
		},
	}
	cmd.Flags().IntVarP(&qopts.page, "page", "p", 1, "page to fetch")
	cmd.Flags().IntVar(&qopts.pageSize, "page-size", 0, "results per page (default from config)")
	cmd.Flags().BoolVar(&qopts.jsonOut, "json", false, "print the page as JSON")

	return cmd
}

func runQuery(cmd *cobra.Command, opts *options, qopts *queryOptions, query string) error {
	if domain.IsBlank(query) {
		return searchclient.ErrEmptyQuery
	}
	if qopts.page < 1 {
		return fmt.Errorf("%w: page=%d", searchclient.ErrInvalidPage, qopts.page)
	}

	a, err := newApp(opts)
	if err != nil {
		return err
	}
	defer a.Close()

	if qopts.pageSize > 0 {
		a.cfg.Search.PageSize = qopts.pageSize
	}

	state, err := searchOnce(cmd.Context(), a, query, qopts.page)
	if err != nil {
		return err
	}
	if state.Err != nil {
		return state.Err
	}

	if qopts.jsonOut {
		return writeJSON(cmd.OutOrStdout(), state)
	}
	writePage(cmd.OutOrStdout(), state, a.cfg.Search.WindowSize)
	return nil
}

// searchOnce drives a controller on a serial loop until the requested
// page has settled
func searchOnce(ctx context.Context, a *app, query string, page int) (search.State, error) {
	loop := search.NewLoop()
	ctrl, err := a.newController(loop)
	if err != nil {
		return search.State{}, err
	}
	defer ctrl.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		final   search.State
		settled bool
	)
	finish := func(s search.State) {
		final, settled = s, true
		cancel()
	}

	ctrl.SetQuery(query)
	ctrl.SetPage(page)
	if s := ctrl.State(); !s.Loading {
		finish(s)
	} else {
		ctrl.Subscribe(func(s search.State) {
			if !s.Loading {
				finish(s)
			}
		})
	}

	if err := loop.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return search.State{}, err
	}
	if !settled {
		return search.State{}, fmt.Errorf("search interrupted: %w", context.Cause(ctx))
	}
	return final, nil
}

func writePage(w io.Writer, s search.State, windowSize int) {
	styles := views.NewStyles()

	fmt.Fprintf(w, "%d results for %q\n\n", s.TotalResults, s.Query)
	fmt.Fprintln(w, views.NewResultRenderer(styles).RenderResults(s, -1, false))
	if bar := views.NewPaginationRenderer(styles).Render(s, windowSize); bar != "" {
		fmt.Fprintf(w, "\n%s\n", bar)
	}
}

func writeJSON(w io.Writer, s search.State) error {
	items := s.Items
	if items == nil {
		items = []domain.Question{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(domain.ResultPage{
		Items:        items,
		TotalResults: s.TotalResults,
		TotalPages:   s.TotalPages,
	})
}
