package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newReplCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Interactive session (Ctrl+D or 'quit' to exit)",
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := buildReasoner(cmd, g)
			if err != nil {
				return err
			}

			in, out := cmd.InOrStdin(), cmd.OutOrStdout()
			interactive := isTerminal(in)
			if interactive {
				fmt.Fprintln(out, "reasonkb: assert | retract | ask | explain | list | quit")
			}

			scanner := bufio.NewScanner(in)
			for {
				if interactive {
					fmt.Fprint(out, "> ")
				}
				if !scanner.Scan() {
					break
				}

				line := strings.TrimSpace(scanner.Text())
				if line == "quit" || line == "exit" {
					break
				}
				if err := r.Exec(out, line); err != nil {
					fmt.Fprintln(out, "error:", err)
				}
			}
			return scanner.Err()
		},
	}
}
