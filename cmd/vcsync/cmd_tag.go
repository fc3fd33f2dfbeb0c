package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/odvcencio/vcsync/pkg/repo"
	"github.com/spf13/cobra"
)

func newTagCmd() *cobra.Command {
	var annotate bool
	var message string

	cmd := &cobra.Command{
		Use:   "tag [-a] [-m message] [name [object]]",
		Short: "List and create tags",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := repo.Open(".")
			if err != nil {
				return err
			}

			// No name: list tags.
			if len(args) == 0 {
				tags, err := r.ListRefs("tags")
				if err != nil {
					return err
				}
				names := make([]string, 0, len(tags))
				for name := range tags {
					names = append(names, strings.TrimPrefix(name, "tags/"))
				}
				sort.Strings(names)
				for _, name := range names {
					fmt.Fprintln(cmd.OutOrStdout(), name)
				}
				return nil
			}

			name := args[0]
			target := "HEAD"
			if len(args) > 1 {
				target = args[1]
			}

			if annotate {
				if strings.TrimSpace(message) == "" {
					message = fmt.Sprintf("tag %s\n", name)
				}
				_, err = r.CreateAnnotatedTag(name, target, "", message)
				return err
			}
			_, err = r.CreateTag(name, target)
			return err
		},
	}

	cmd.Flags().BoolVarP(&annotate, "annotate", "a", false, "create a tag object")
	cmd.Flags().StringVarP(&message, "message", "m", "", "tag message")
	return cmd
}
