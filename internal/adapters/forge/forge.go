package forge

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"syscall"
	"time"

	"github.com/creack/pty"
	"github.com/trebuchet-org/counter-harness/internal/domain/config"
	"github.com/trebuchet-org/counter-harness/internal/usecase"
)

// ForgeAdapter runs forge commands in the project root
type ForgeAdapter struct {
	log         *slog.Logger
	projectRoot string
	binary      string
}

// NewForgeAdapter creates a new forge executor
func NewForgeAdapter(cfg *config.RuntimeConfig, log *slog.Logger) *ForgeAdapter {
	return &ForgeAdapter{
		log:         log.With("component", "ForgeAdapter"),
		projectRoot: cfg.ProjectRoot,
		binary:      "forge",
	}
}

// Build runs forge build. With opts.Stream set the output is streamed through a
// pty so forge keeps its colours; otherwise it is only returned on failure.
func (f *ForgeAdapter) Build(ctx context.Context, opts usecase.BuildOptions) error {
	start := time.Now()
	args := buildArgs()
	f.log.Debug("running forge build", "dir", f.projectRoot, "args", args)

	cmd := exec.CommandContext(ctx, f.binary, args...)
	cmd.Dir = f.projectRoot
	cmd.Env = os.Environ()

	var err error
	if opts.Stream != nil {
		err = f.stream(cmd, opts.Stream)
	} else {
		var output []byte
		output, err = cmd.CombinedOutput()
		if err != nil {
			err = fmt.Errorf("%w\nOutput: %s", err, string(output))
		}
	}

	duration := time.Since(start)
	if err != nil {
		f.log.Error("forge build failed", "error", err, "duration", duration)
		return fmt.Errorf("forge build failed: %w", err)
	}

	f.log.Debug("forge build completed successfully", "duration", duration)
	return nil
}

func (f *ForgeAdapter) stream(cmd *exec.Cmd, out io.Writer) error {
	// Start with PTY for proper color handling
	ptyFile, err := pty.Start(cmd)
	if err != nil {
		return fmt.Errorf("failed to start pty: %w", err)
	}
	defer func() {
		_ = ptyFile.Close()
	}()

	// Reading a pty after the child exits yields EIO on linux
	if _, err := io.Copy(out, ptyFile); err != nil && !errors.Is(err, syscall.EIO) {
		f.log.Debug("pty copy ended", "error", err)
	}

	return cmd.Wait()
}

func buildArgs() []string {
	return []string{"build"}
}

var _ usecase.ContractBuilder = (*ForgeAdapter)(nil)
