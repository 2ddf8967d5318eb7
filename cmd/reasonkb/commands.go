package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func newRunCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "run [SCRIPT...]",
		Short: "Execute command scripts (stdin when none are given)",
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := buildReasoner(cmd, g)
			if err != nil {
				return err
			}
			if len(args) == 0 {
				return r.Run(cmd.InOrStdin(), cmd.OutOrStdout())
			}
			for _, path := range args {
				f, err := os.Open(path)
				if err != nil {
					return err
				}
				err = r.Run(f, cmd.OutOrStdout())
				f.Close()
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
			}
			return nil
		},
	}
}

func newAskCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "ask STATEMENT",
		Short: "Match a statement against the loaded facts",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := buildReasoner(cmd, g)
			if err != nil {
				return err
			}
			return r.Exec(cmd.OutOrStdout(), "ask "+strings.Join(args, " "))
		},
	}
}

func newExplainCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "explain STATEMENT",
		Short: "Print the derivation tree of a stored fact or rule",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := buildReasoner(cmd, g)
			if err != nil {
				return err
			}
			return r.Exec(cmd.OutOrStdout(), "explain "+strings.Join(args, " "))
		},
	}
}
