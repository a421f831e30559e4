package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/atomicstack/eventdesk/internal/dashboard"
	"github.com/atomicstack/eventdesk/internal/fragment"
)

const detailsConcurrency = 4

type detailResult struct {
	fragment dashboard.Fragment
	err      error
}

func newDetailsCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "details ID...",
		Short: "Print the detail fragment of one or more events",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, ids []string) error {
			results := fetchDetails(cmd.Context(), s.client, ids)
			out := cmd.OutOrStdout()
			failed := 0
			for i, id := range ids {
				if i > 0 {
					fmt.Fprintln(out)
				}
				fmt.Fprintf(out, "== %s ==\n", id)
				res := results[i]
				if res.err != nil {
					failed++
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", id, dashboard.ErrorMessage(res.err))
					continue
				}
				fmt.Fprintln(out, fragment.PlainText(res.fragment.HTML))
			}
			if failed > 0 {
				return &ExitError{Code: 1, Err: fmt.Errorf("%d of %d detail requests failed", failed, len(ids))}
			}
			return nil
		},
	}
}

// fetchDetails requests every id with bounded concurrency. Results keep
// the order of ids and a failure does not stop the other requests.
func fetchDetails(ctx context.Context, client *dashboard.Client, ids []string) []detailResult {
	results := make([]detailResult, len(ids))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(detailsConcurrency)
	for i, id := range ids {
		g.Go(func() error {
			frag, err := client.FetchDetails(ctx, id)
			results[i] = detailResult{fragment: frag, err: err}
			return nil
		})
	}
	_ = g.Wait()
	return results
}
