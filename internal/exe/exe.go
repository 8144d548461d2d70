// Package exe wraps the external collaborators the optimizer blocks on each
// round: the per-column score evaluator and the tree builder, plus the
// support arithmetic over the builder's output. Both tools are treated as
// opaque, possibly slow processes whose failure is fatal to the run.
package exe

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
)

var ErrToolFailed = errors.New("external tool failed")

// Evaluator invokes the column-scoring program. It is run as
// "cmd args... <alignment>" and must print one numeric score per column, one
// per line, on stdout.
type Evaluator struct {
	Cmd     string
	Args    []string
	Workdir string
}

// Run scores the alignment at alnPath and returns the path of the captured
// score file.
func (e Evaluator) Run(ctx context.Context, alnPath string) (string, error) {
	out := filepath.Join(e.Workdir, "columns.scores")
	if err := runToFile(ctx, out, e.Cmd, append(slices.Clone(e.Args), alnPath)...); err != nil {
		return "", err
	}
	return out, nil
}

// Builder invokes the tree-building program. It is run as
// "cmd args... <model> <alignment>" and must print a single newick tree with
// branch supports on stdout.
type Builder struct {
	Cmd   string
	Args  []string
	Model string
}

// Build infers a tree from the alignment at alnPath and returns the path of
// the captured tree artifact.
func (b Builder) Build(ctx context.Context, alnPath, workdir string, round int) (string, error) {
	out := filepath.Join(workdir, fmt.Sprintf("round%d.nwk", round))
	args := slices.Clone(b.Args)
	if b.Model != "" {
		args = append(args, b.Model)
	}
	args = append(args, alnPath)
	if err := runToFile(ctx, out, b.Cmd, args...); err != nil {
		return "", err
	}
	return out, nil
}

// runToFile runs the command with stdout captured to out, folding stderr
// into the error on failure.
func runToFile(ctx context.Context, out, name string, args ...string) error {
	file, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("error creating %s, %w", out, err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			panic(fmt.Sprintf("could not close file %s, %s", out, err))
		}
	}()
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = file
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%w, %s %v: %s (%s)",
			ErrToolFailed, name, args, err.Error(), bytes.TrimSpace(stderr.Bytes()))
	}
	return nil
}
