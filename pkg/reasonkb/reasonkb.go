package reasonkb

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/cognicore/reasonkb/pkg/reasonkb/config"
	"github.com/cognicore/reasonkb/pkg/reasonkb/inference"
	"github.com/cognicore/reasonkb/pkg/reasonkb/internalerr"
	"github.com/cognicore/reasonkb/pkg/reasonkb/kb"
	"github.com/cognicore/reasonkb/pkg/reasonkb/logic"
)

// Reasoner is the main knowledge engine facade. It executes textual
// commands against a knowledge base and renders their results.
type Reasoner struct {
	kb     *kb.KnowledgeBase
	logger *slog.Logger
}

// Options configures a Reasoner
type Options struct {
	KB     *kb.KnowledgeBase // defaults to an empty knowledge base with default options
	Logger *slog.Logger
}

// New creates a Reasoner with the given dependencies
func New(opts Options) *Reasoner {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.KB == nil {
		opts.KB = kb.New(kb.Options{Logger: opts.Logger})
	}
	return &Reasoner{kb: opts.KB, logger: opts.Logger}
}

// FromComponents builds a knowledge base from loaded configuration and
// asserts every loaded program into it.
func FromComponents(c *config.Components, logger *slog.Logger) (*Reasoner, error) {
	if logger == nil {
		logger = slog.Default()
	}
	r := New(Options{
		KB:     kb.New(c.Config.KBOptions(logger)),
		Logger: logger,
	})
	for _, p := range c.Programs {
		if err := r.Load(p); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// KB exposes the underlying knowledge base.
func (r *Reasoner) KB() *kb.KnowledgeBase {
	return r.kb
}

// Load asserts every entity of a program in order.
func (r *Reasoner) Load(p *config.Program) error {
	for _, e := range p.Entities {
		if err := r.kb.Assert(e); err != nil {
			return fmt.Errorf("%s: %w", p.Path, err)
		}
	}
	r.logger.Info("program loaded",
		slog.String("path", p.Path),
		slog.Int("clauses", len(p.Entities)),
		slog.Int("stored", r.kb.Len()),
	)
	return nil
}

// Run executes a command script line by line and stops at the first error.
func (r *Reasoner) Run(in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		if err := r.Exec(out, scanner.Text()); err != nil {
			return fmt.Errorf("line %d: %w", lineNum, err)
		}
	}
	return scanner.Err()
}

// Exec runs one command and writes its result to out:
//
//	assert on(a, b).
//	assert covered(?y) :- on(?x, ?y).
//	retract on(a, b).
//	ask on(?x, b)
//	explain covered(b)
//	list
//
// Blank lines and comments produce no output.
func (r *Reasoner) Exec(out io.Writer, line string) error {
	line = strings.TrimSpace(line)
	if logic.IsComment(line) {
		return nil
	}

	cmd, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	switch strings.ToLower(cmd) {
	case "assert":
		e, err := inference.Parse(arg)
		if err != nil {
			return err
		}
		if err := r.kb.Assert(e); err != nil {
			return err
		}
		fmt.Fprintf(out, "asserted %s\n", e)

	case "retract":
		e, err := inference.Parse(arg)
		if err != nil {
			return err
		}
		removed, err := r.kb.RetractReport(e)
		if err != nil {
			return err
		}
		if len(removed) == 0 {
			fmt.Fprintf(out, "retracted %s (still derivable)\n", e)
			return nil
		}
		fmt.Fprintf(out, "retracted %s\n", e)
		for _, rec := range removed {
			fmt.Fprintf(out, "  removed %s %s\n", rec.Kind(), rec.Entity)
		}

	case "ask":
		e, err := inference.Parse(arg)
		if err != nil {
			return err
		}
		r.writeAnswers(out, r.kb.Ask(e))

	case "explain":
		e, err := inference.Parse(arg)
		if err != nil {
			return err
		}
		d, err := r.kb.Explain(e)
		if err != nil {
			return err
		}
		fmt.Fprint(out, d)

	case "list":
		fmt.Fprint(out, r.kb)

	default:
		return fmt.Errorf("unknown command %q: %w", cmd, internalerr.ErrInvalidInput)
	}
	return nil
}

func (r *Reasoner) writeAnswers(out io.Writer, answers []kb.Answer) {
	if len(answers) == 0 {
		fmt.Fprintln(out, "no")
		return
	}
	for _, a := range answers {
		var grounds []string
		for _, h := range a.Facts {
			if rec, ok := r.kb.Get(h); ok {
				grounds = append(grounds, rec.Entity.String())
			}
		}
		bindings := a.Bindings.String()
		if bindings == "" {
			bindings = "yes"
		}
		fmt.Fprintf(out, "%s  <- %s\n", bindings, strings.Join(grounds, ", "))
	}
}
