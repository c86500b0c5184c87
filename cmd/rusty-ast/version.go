package main

import (
	"encoding/json"
	"fmt"
	"runtime"
	"strings"

	"github.com/hokaccha/go-prettyjson"
	"github.com/spf13/cobra"
)

func (a *app) versionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, _ := cmd.Flags().GetString("output")
			switch strings.ToLower(format) {
			case "", "text":
				fmt.Fprintln(cmd.OutOrStdout(), version)
				return nil
			case "json":
			default:
				return fmt.Errorf("unknown output format: %s", format)
			}
			info := map[string]any{
				"version": version,
				"commit":  commit,
				"date":    date,
				"go":      runtime.Version(),
			}
			var data []byte
			var err error
			if a.colorStdout(cmd) {
				data, err = prettyjson.Marshal(info)
			} else {
				data, err = json.MarshalIndent(info, "", "  ")
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
	cmd.Flags().StringP("output", "o", "text", "output format (text or json)")
	return cmd
}
