package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	confreg "github.com/MKhiriev/go-conf-registry"
)

// newShowCommand creates the show command: print the effective configuration
// with per-key provenance, even when validation fails.
func newShowCommand(flags *appFlags) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration and where each value came from",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, opts, err := buildConf(cmd, flags)
			if err != nil {
				return err
			}

			if err := c.Load(opts...); err != nil {
				var verr *confreg.ValidationError
				if !errors.As(err, &verr) {
					return err
				}

				// show what loaded anyway; the store is fully merged
				// before validation runs
				fmt.Fprintln(cmd.ErrOrStderr(), verr.Error())
			}

			ctx := cmd.Context()

			if asJSON {
				snapshot, err := c.Snapshot(ctx)
				if err != nil {
					return err
				}

				out, err := json.MarshalIndent(snapshot, "", "  ")
				if err != nil {
					return fmt.Errorf("error rendering snapshot: %w", err)
				}

				fmt.Fprintln(cmd.OutOrStdout(), string(out))
				return nil
			}

			for _, key := range c.Keys() {
				value, ok := c.Value(ctx, key)
				if !ok {
					fmt.Fprintf(cmd.OutOrStdout(), "%s = <unset>\n", key)
					continue
				}

				source, _ := c.SourceOf(ctx, key)
				fmt.Fprintf(cmd.OutOrStdout(), "%s = %v (%s)\n", key, value, source)
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the snapshot as JSON")

	return cmd
}
