// Package golden checks recorded edit scenarios against the framing-if
// finder. A scenario is a txtar archive with the sections "previous",
// "current" and "want", where want is "true" or "false".
package golden

import (
	"context"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"go.framing.dev/pkg"
	"golang.org/x/sync/errgroup"
	"golang.org/x/tools/txtar"
)

type Case struct {
	Name     string
	Comment  string
	Previous string
	Current  string
	Want     bool
}

type Result struct {
	Case  *Case
	Found bool
	Match *framing.Match
	// PreviousErr and CurrentErr hold analysis failures. A failed current
	// version is reported as "not found", the same as in an editor session.
	PreviousErr error
	CurrentErr  error
	Current     *framing.Snapshot
}

func (r *Result) Passed() bool {
	return r.PreviousErr == nil && r.Found == r.Case.Want
}

func Load(path string) (*Case, error) {
	archive, err := txtar.ParseFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read scenario %s", path)
	}

	return fromArchive(path, archive)
}

func Parse(name string, data []byte) (*Case, error) {
	return fromArchive(name, txtar.Parse(data))
}

func fromArchive(name string, archive *txtar.Archive) (*Case, error) {
	sections := make(map[string]string, len(archive.Files))
	for _, f := range archive.Files {
		sections[f.Name] = string(f.Data)
	}

	for _, required := range []string{"previous", "current", "want"} {
		if _, ok := sections[required]; !ok {
			return nil, errors.Errorf("%s: missing section %q", name, required)
		}
	}

	want, err := strconv.ParseBool(strings.TrimSpace(sections["want"]))
	if err != nil {
		return nil, errors.Wrapf(err, "%s: bad want section", name)
	}

	return &Case{
		Name:     name,
		Comment:  strings.TrimSpace(string(archive.Comment)),
		Previous: sections["previous"],
		Current:  sections["current"],
		Want:     want,
	}, nil
}

// Evaluate runs the finder on one scenario.
func Evaluate(c *Case) *Result {
	compiler := framing.NewCompiler()
	result := &Result{Case: c}

	previous, err := compiler.CompileString(c.Previous)
	if err != nil {
		result.PreviousErr = err
		return result
	}

	current, err := compiler.CompileString(c.Current)
	if err != nil {
		result.CurrentErr = err
	}

	result.Current = current
	result.Match, result.Found = framing.FindFramingIf(previous, current)

	return result
}

// Check loads and evaluates the archives at paths with at most workers
// scenarios in flight. Results are in the order of paths. An unreadable or
// malformed archive aborts the whole check.
func Check(ctx context.Context, paths []string, workers int) ([]*Result, error) {
	results := make([]*Result, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			c, err := Load(path)
			if err != nil {
				return err
			}

			results[i] = Evaluate(c)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}
