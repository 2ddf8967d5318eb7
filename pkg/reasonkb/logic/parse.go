package logic

import (
	"bufio"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/cognicore/reasonkb/pkg/reasonkb/internalerr"
)

// Clause is one parsed line of a program: a head with an optional body.
// A clause without a body is a fact; with a body it is a rule whose
// antecedents are the body statements in written order.
type Clause struct {
	Head Statement
	Body []Statement
}

// IsRule reports whether the clause has a body.
func (c Clause) IsRule() bool {
	return len(c.Body) > 0
}

func (c Clause) String() string {
	if len(c.Body) == 0 {
		return c.Head.String() + "."
	}
	body := make([]string, len(c.Body))
	for i, s := range c.Body {
		body[i] = s.String()
	}
	return c.Head.String() + " :- " + strings.Join(body, ", ") + "."
}

// ParseStatement parses a single statement such as "on(?x, table)".
// A bare predicate name is read as a statement with no arguments.
func ParseStatement(text string) (Statement, error) {
	p := &parser{src: text}
	s, err := p.statement()
	if err != nil {
		return Statement{}, err
	}
	p.skipSpace()
	p.accept('.')
	if err := p.end(); err != nil {
		return Statement{}, err
	}
	return s, nil
}

// ParseClause parses "head." or "head :- body1, body2." The trailing
// period is optional.
func ParseClause(text string) (Clause, error) {
	p := &parser{src: text}
	head, err := p.statement()
	if err != nil {
		return Clause{}, err
	}

	c := Clause{Head: head}
	p.skipSpace()
	if strings.HasPrefix(p.src[p.pos:], ":-") {
		p.pos += 2
		for {
			s, err := p.statement()
			if err != nil {
				return Clause{}, err
			}
			c.Body = append(c.Body, s)
			p.skipSpace()
			if !p.accept(',') {
				break
			}
		}
		if len(c.Body) == 0 {
			return Clause{}, p.errorf("empty rule body")
		}
	}

	p.skipSpace()
	p.accept('.')
	if err := p.end(); err != nil {
		return Clause{}, err
	}
	return c, nil
}

// ParseProgram reads one clause per line. Blank lines and lines starting
// with '#' or '%' are skipped.
func ParseProgram(text string) ([]Clause, error) {
	scanner := bufio.NewScanner(strings.NewReader(text))
	lineNum := 0

	var clauses []Clause
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if IsComment(line) {
			continue
		}

		c, err := ParseClause(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}
		clauses = append(clauses, c)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return clauses, nil
}

// IsComment reports whether a trimmed line carries no clause.
func IsComment(line string) bool {
	return line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "%")
}

type parser struct {
	src string
	pos int
}

func (p *parser) statement() (Statement, error) {
	p.skipSpace()
	pred := p.ident()
	if pred == "" {
		return Statement{}, p.errorf("expected predicate name")
	}

	s := Statement{Predicate: pred}
	p.skipSpace()
	if !p.accept('(') {
		return s, nil
	}

	p.skipSpace()
	if p.accept(')') {
		return s, nil
	}
	for {
		t, err := p.term()
		if err != nil {
			return Statement{}, err
		}
		s.Args = append(s.Args, t)

		p.skipSpace()
		if p.accept(')') {
			return s, nil
		}
		if !p.accept(',') {
			return Statement{}, p.errorf("expected ',' or ')'")
		}
	}
}

func (p *parser) term() (Term, error) {
	p.skipSpace()
	variable := p.accept('?')
	name := p.ident()
	if name == "" {
		if variable {
			return Term{}, p.errorf("expected variable name after '?'")
		}
		return Term{}, p.errorf("expected term")
	}
	return Term{Name: name, Variable: variable}, nil
}

func (p *parser) ident() string {
	start := p.pos
	for p.pos < len(p.src) {
		r, size := utf8.DecodeRuneInString(p.src[p.pos:])
		if r != '_' && r != '-' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			break
		}
		p.pos += size
	}
	return p.src[start:p.pos]
}

func (p *parser) skipSpace() {
	for p.pos < len(p.src) && strings.IndexByte(" \t\r\n", p.src[p.pos]) >= 0 {
		p.pos++
	}
}

func (p *parser) accept(c byte) bool {
	if p.pos < len(p.src) && p.src[p.pos] == c {
		p.pos++
		return true
	}
	return false
}

func (p *parser) end() error {
	p.skipSpace()
	if p.pos != len(p.src) {
		return p.errorf("unexpected %q", p.src[p.pos:])
	}
	return nil
}

func (p *parser) errorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s at offset %d", internalerr.ErrInvalidInput, fmt.Sprintf(format, args...), p.pos)
}
