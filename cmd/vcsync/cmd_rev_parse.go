package main

import (
	"fmt"

	"github.com/odvcencio/vcsync/pkg/object"
	"github.com/odvcencio/vcsync/pkg/repo"
	"github.com/spf13/cobra"
)

func newRevParseCmd() *cobra.Command {
	var typeName string

	cmd := &cobra.Command{
		Use:   "rev-parse [--type type] <name>",
		Short: "Parse revision or object identifiers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var want object.ObjectType
			if typeName != "" {
				t, err := parseObjectType(typeName)
				if err != nil {
					return err
				}
				want = t
			}

			r, err := repo.Open(".")
			if err != nil {
				return err
			}
			h, err := r.Find(args[0], want, true)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), h)
			return nil
		},
	}

	cmd.Flags().StringVar(&typeName, "type", "", "expected object type")
	return cmd
}
