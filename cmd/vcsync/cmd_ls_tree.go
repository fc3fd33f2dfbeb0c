package main

import (
	"fmt"

	"github.com/odvcencio/vcsync/pkg/object"
	"github.com/odvcencio/vcsync/pkg/repo"
	"github.com/spf13/cobra"
)

func newLsTreeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ls-tree <object>",
		Short: "Pretty-print a tree object",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := repo.Open(".")
			if err != nil {
				return err
			}

			h, err := r.Find(args[0], object.TypeTree, true)
			if err != nil {
				return err
			}
			tree, err := r.Store.ReadTree(h)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, entry := range tree.Entries {
				typ, _, err := r.Store.ReadRaw(entry.Hash)
				if err != nil {
					return err
				}
				mode := entry.Mode
				for len(mode) < 6 {
					mode = "0" + mode
				}
				fmt.Fprintf(out, "%s %s %s\t%s\n", mode, typ, entry.Hash, entry.Path)
			}
			return nil
		},
	}
}
