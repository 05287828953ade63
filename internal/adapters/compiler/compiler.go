package compiler

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/audc-labs/audc-deploy/internal/domain/config"
	"github.com/audc-labs/audc-deploy/internal/usecase"
	"github.com/creack/pty"
)

// Compiler runs the project's own build tool so artifacts are fresh before deploying
type Compiler struct {
	log         *slog.Logger
	projectRoot string
	kind        config.ProjectKind
	debug       bool
	out         io.Writer
}

// NewCompiler creates a compiler for the configured project
func NewCompiler(cfg *config.RuntimeConfig, log *slog.Logger) *Compiler {
	return &Compiler{
		log:         log.With("component", "Compiler"),
		projectRoot: cfg.ProjectRoot,
		kind:        cfg.ProjectKind,
		debug:       cfg.Debug,
		out:         os.Stderr,
	}
}

// Command returns the build command for the project kind
func (c *Compiler) Command() (string, []string, error) {
	switch c.kind {
	case config.ProjectFoundry:
		return "forge", []string{"build"}, nil
	case config.ProjectHardhat:
		return "npx", []string{"hardhat", "compile"}, nil
	default:
		return "", nil, fmt.Errorf("cannot compile: no foundry.toml or hardhat config found in %s", c.projectRoot)
	}
}

// Compile runs the build and returns its output in the error when it fails
func (c *Compiler) Compile(ctx context.Context) error {
	name, args, err := c.Command()
	if err != nil {
		return err
	}
	if _, err := exec.LookPath(name); err != nil {
		return fmt.Errorf("%s not found in PATH: %w", name, err)
	}

	start := time.Now()
	c.log.Debug("running build", "cmd", name, "args", args, "dir", c.projectRoot)

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = c.projectRoot

	output, err := c.runPTY(cmd)
	if err != nil {
		c.log.Error("build failed", "cmd", name, "error", err, "duration", time.Since(start))
		return fmt.Errorf("%s %s failed: %w\nOutput: %s", name, strings.Join(args, " "), err, strings.TrimSpace(output))
	}

	c.log.Debug("build completed", "duration", time.Since(start))
	return nil
}

// runPTY runs the build attached to a pseudo terminal so the tool keeps its colors.
// Output is captured, and echoed to stderr in debug mode.
func (c *Compiler) runPTY(cmd *exec.Cmd) (string, error) {
	ptyFile, err := pty.Start(cmd)
	if err != nil {
		return "", fmt.Errorf("failed to start pty: %w", err)
	}
	defer func() {
		_ = ptyFile.Close()
	}()

	var buf bytes.Buffer
	var w io.Writer = &buf
	if c.debug {
		w = io.MultiWriter(&buf, c.out)
	}

	// Reading the pty returns EIO on linux once the child exits
	_, _ = io.Copy(w, ptyFile)

	return buf.String(), cmd.Wait()
}

var _ usecase.Compiler = (*Compiler)(nil)
