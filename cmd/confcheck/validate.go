package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	confreg "github.com/MKhiriev/go-conf-registry"
)

// newValidateCommand creates the validate command: run the fixed-order load
// and report the aggregate validation result.
func newValidateCommand(flags *appFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Load all sources and validate every declared key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, opts, err := buildConf(cmd, flags)
			if err != nil {
				return err
			}

			if err := c.Load(opts...); err != nil {
				var verr *confreg.ValidationError
				if errors.As(err, &verr) {
					fmt.Fprintln(cmd.ErrOrStderr(), verr.Error())
					return fmt.Errorf("%d configuration keys failed validation", len(verr.Issues))
				}

				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "configuration valid (%d keys)\n", len(c.Keys()))
			return nil
		},
	}
}
