package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/cognicore/reasonkb/pkg/reasonkb"
	"github.com/cognicore/reasonkb/pkg/reasonkb/config"
)

type globalFlags struct {
	configPath     string
	logLevel       string
	retraction     string
	ruleRetraction string
	programs       []string
}

func main() {
	if err := newRootCmd(os.Stdin, os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(in io.Reader, out, errOut io.Writer) *cobra.Command {
	g := &globalFlags{}

	root := &cobra.Command{
		Use:   "reasonkb",
		Short: "Forward-chaining knowledge base with truth maintenance",
		Long: `reasonkb keeps the deductive closure of a set of facts and rules.

Programs hold one clause per line:

  on(block1, table).
  covered(?y) :- on(?x, ?y).

Scripts hold one command per line: assert, retract, ask, explain, list.`,
		SilenceUsage: true,
	}
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)
	bindGlobalFlags(root.PersistentFlags(), g)

	root.AddCommand(
		newRunCmd(g),
		newAskCmd(g),
		newExplainCmd(g),
		newReplCmd(g),
	)
	return root
}

func bindGlobalFlags(fs *pflag.FlagSet, g *globalFlags) {
	fs.StringVarP(&g.configPath, "config", "c", "", "YAML configuration file")
	fs.StringVar(&g.logLevel, "log-level", "", "Override log_level (debug, info, warn, error)")
	fs.StringVar(&g.retraction, "retraction", "", "Override retraction policy (cascade, supported)")
	fs.StringVar(&g.ruleRetraction, "rule-retraction", "", "Override rule retraction (reject, cascade)")
	fs.StringSliceVarP(&g.programs, "program", "p", nil, "Program file to load (repeatable)")
}

// resolveConfig applies flag overrides on top of the config file.
func resolveConfig(g *globalFlags) (*config.Config, error) {
	cfg := config.Default()
	if g.configPath != "" {
		loaded, err := config.Load(g.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if g.logLevel != "" {
		cfg.LogLevel = g.logLevel
	}
	if g.retraction != "" {
		cfg.Retraction = g.retraction
	}
	if g.ruleRetraction != "" {
		cfg.RuleRetraction = g.ruleRetraction
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func buildReasoner(cmd *cobra.Command, g *globalFlags) (*reasonkb.Reasoner, error) {
	cfg, err := resolveConfig(g)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	lvl, err := cfg.Level()
	if err != nil {
		return nil, err
	}
	logger := newLogger(cmd.ErrOrStderr(), lvl)

	loader := config.Loader{
		Config:       cfg,
		ProgramPaths: g.programs,
	}
	components, err := loader.Load()
	if err != nil {
		return nil, err
	}
	return reasonkb.FromComponents(components, logger)
}

// newLogger writes text to a terminal and JSON anywhere else.
func newLogger(w io.Writer, lvl slog.Level) *slog.Logger {
	opts := &slog.HandlerOptions{Level: lvl}
	if isTerminal(w) {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
