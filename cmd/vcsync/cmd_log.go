package main

import (
	"fmt"
	"io"

	"github.com/odvcencio/vcsync/pkg/object"
	"github.com/odvcencio/vcsync/pkg/repo"
	"github.com/spf13/cobra"
)

func newLogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "log [commit]",
		Short: "Display history of a given commit as a graphviz digraph",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := "HEAD"
			if len(args) > 0 {
				name = args[0]
			}

			r, err := repo.Open(".")
			if err != nil {
				return err
			}
			h, err := r.Find(name, object.TypeCommit, true)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "digraph vcsynclog{")
			if err := logGraphviz(out, r, h, make(map[object.Hash]bool)); err != nil {
				return err
			}
			fmt.Fprintln(out, "}")
			return nil
		},
	}
}

func logGraphviz(out io.Writer, r *repo.Repo, h object.Hash, seen map[object.Hash]bool) error {
	if seen[h] {
		return nil
	}
	seen[h] = true

	commit, err := r.Store.ReadCommit(h)
	if err != nil {
		return err
	}

	for _, parent := range commit.Parents() {
		fmt.Fprintf(out, "c_%s -> c_%s;\n", h, parent)
		if err := logGraphviz(out, r, parent, seen); err != nil {
			return err
		}
	}
	return nil
}
