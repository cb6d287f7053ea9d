package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLatestFolderCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "latest-folder",
		Short: "Print the month folder an extraction would read by default",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, ctx, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			folder, err := a.extraction.LatestMonthFolder(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), folder)
			return nil
		},
	}
}
