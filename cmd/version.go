/*
Copyright © 2023 Kovalev Pavel kovalev5690@gmail.com
*/package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Pavel7004/goRspParser/pkg/version"
)

func cmdVersion() *cobra.Command {
	showBuildInfo := false

	var cmd = &cobra.Command{
		Use:   "version",
		Short: "display the application's version number",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if showBuildInfo {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), version.Version().String())
				return err
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), version.Version().Core())
			return err
		},
	}

	cmd.Flags().BoolVar(&showBuildInfo, "build-info", showBuildInfo, "show build information")
	return cmd
}
