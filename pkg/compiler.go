package framing

import (
	"io"
	"os"

	"github.com/pkg/errors"
)

// Snapshot is one successfully analysed state of a program text. It is never
// modified after construction.
type Snapshot struct {
	Source string
	Tokens []Token
	Tree   *BlockNode
}

// EmptySnapshot is the state of an empty buffer.
func EmptySnapshot() *Snapshot {
	return &Snapshot{
		Tree: &BlockNode{},
	}
}

// Statements returns the top-level statements of the snapshot.
func (s *Snapshot) Statements() []ExecNode {
	if s == nil || s.Tree == nil {
		return nil
	}

	return s.Tree.Statements
}

// Locate converts a token span to the byte range [start, end) of the source.
func (s *Snapshot) Locate(span Span) (int, int) {
	if span.Start < 0 || span.Start >= len(s.Tokens) {
		end := len(s.Source)
		return end, end
	}

	start := s.Tokens[span.Start].Offset
	if span.End <= span.Start {
		return start, start
	}

	last := span.End - 1
	if last >= len(s.Tokens) {
		last = len(s.Tokens) - 1
	}

	return start, s.Tokens[last].End()
}

// Compiler runs the full pipeline: tokenize, parse, lower.
type Compiler struct {
	analyzer *StaticAnalyzer
}

func NewCompiler() *Compiler {
	return &Compiler{
		analyzer: NewStaticAnalyzer(),
	}
}

func (c *Compiler) Compile(filename string) (*Snapshot, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", filename)
	}

	return c.CompileString(string(data))
}

func (c *Compiler) CompileFromReader(reader io.Reader) (*Snapshot, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, errors.Wrap(err, "read program")
	}

	return c.CompileString(string(data))
}

// CompileString analyses src. Any error is a CompileError and no snapshot is
// returned with it.
func (c *Compiler) CompileString(src string) (*Snapshot, error) {
	tokens, err := Tokenize(src)
	if err != nil {
		return nil, err
	}

	ast, err := Parse(tokens)
	if err != nil {
		return nil, err
	}

	tree, err := c.analyzer.Do(ast)
	if err != nil {
		return nil, err
	}

	return &Snapshot{
		Source: src,
		Tokens: tokens,
		Tree:   tree,
	}, nil
}
