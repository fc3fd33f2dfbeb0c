package main

import (
	"fmt"

	"github.com/odvcencio/vcsync/pkg/object"
	"github.com/odvcencio/vcsync/pkg/repo"
	"github.com/spf13/cobra"
)

func newCatFileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cat-file <type> <object>",
		Short: "Provide content of repository objects",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			typ, err := parseObjectType(args[0])
			if err != nil {
				return err
			}

			r, err := repo.Open(".")
			if err != nil {
				return err
			}

			h, err := r.Find(args[1], typ, true)
			if err != nil {
				return err
			}
			obj, err := r.Store.Read(h)
			if err != nil {
				return err
			}
			payload, err := obj.Marshal()
			if err != nil {
				return err
			}

			_, err = cmd.OutOrStdout().Write(payload)
			return err
		},
	}
}

func parseObjectType(s string) (object.ObjectType, error) {
	switch t := object.ObjectType(s); t {
	case object.TypeBlob, object.TypeTree, object.TypeCommit, object.TypeTag:
		return t, nil
	default:
		return "", fmt.Errorf("unknown object type %q", s)
	}
}
