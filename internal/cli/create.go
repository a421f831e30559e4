package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/atomicstack/eventdesk/internal/form"
	"github.com/atomicstack/eventdesk/internal/notify"
)

func newCreateCmd(s *session) *cobra.Command {
	var fields []string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Schedule an event through the create form",
		Example: `  eventdesk create \
    --field title="Spring Fair" --field description="Stalls and music" \
    --field date=2025-04-12 --field location="Main Hall" --field start_time=10:00`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f := form.New(s.client.CreateAction())
			for _, raw := range fields {
				name, value, ok := strings.Cut(raw, "=")
				if !ok {
					return fmt.Errorf("field %q: expected name=value", raw)
				}
				if !f.SetValue(strings.TrimSpace(name), value) {
					return fmt.Errorf("unknown field %q", name)
				}
			}
			if errs := f.Validate(); len(errs) > 0 {
				names := make([]string, 0, len(errs))
				for name := range errs {
					names = append(names, name)
				}
				sort.Strings(names)
				for _, name := range names {
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", name, errs[name])
				}
				return &ExitError{Code: 2, Err: fmt.Errorf("invalid form: %s", f.FirstError())}
			}

			res, err := s.client.CreateEvent(cmd.Context(), f.Action(), f.Payload())
			kind, msg := form.Outcome(res, err)
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", kind, msg)
			if kind != notify.Success {
				return &ExitError{Code: 1}
			}
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&fields, "field", nil, "form field as name=value (repeatable)")
	return cmd
}
