package anvil

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/trebuchet-org/counter-harness/internal/domain"
	"github.com/trebuchet-org/counter-harness/internal/usecase"
)

const (
	DefaultAnvilName = "anvil"
	DefaultAnvilPort = "8545"

	defaultPidFile = "/tmp/counter-anvil-pid"
	defaultLogFile = "/tmp/counter-anvil.log"

	healthTimeout = 2 * time.Second
	stopTimeout   = 5 * time.Second
)

// Manager starts and stops local anvil processes tracked by pid files
type Manager struct {
	binary  string
	tmpDir  string
	log     *slog.Logger
	startup time.Duration
}

// NewManager creates a new anvil manager
func NewManager(log *slog.Logger) *Manager {
	return &Manager{
		binary:  "anvil",
		tmpDir:  "/tmp",
		log:     log.With("component", "AnvilManager"),
		startup: 5 * time.Second,
	}
}

// Start launches anvil in the background and waits for its RPC to answer
func (m *Manager) Start(ctx context.Context, instance *domain.AnvilInstance) error {
	m.setFilePaths(instance)

	if pid, running := m.running(instance); running {
		return fmt.Errorf("anvil '%s' is already running (PID %d)", instance.Name, pid)
	}

	logFile, err := os.Create(instance.LogFile)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}
	defer logFile.Close()

	args := buildAnvilArgs(instance)
	m.log.Debug("starting anvil", "args", args, "log", instance.LogFile)

	cmd := exec.Command(m.binary, args...)
	cmd.Stdout = logFile
	cmd.Stderr = logFile
	// Detach from our process group so ctrl-c on the CLI doesn't kill the node
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start anvil: %w", err)
	}

	if err := os.WriteFile(instance.PidFile, []byte(strconv.Itoa(cmd.Process.Pid)), 0644); err != nil {
		_ = cmd.Process.Kill()
		return fmt.Errorf("failed to write PID file: %w", err)
	}
	// Reap the child when it exits; the pid file is what tracks it
	go func() { _ = cmd.Wait() }()

	if err := m.waitHealthy(ctx, instance); err != nil {
		return fmt.Errorf("anvil did not become ready: %w", err)
	}
	return nil
}

// Stop terminates a running instance and removes its pid file
func (m *Manager) Stop(ctx context.Context, instance *domain.AnvilInstance) error {
	m.setFilePaths(instance)

	pid, running := m.running(instance)
	if !running {
		_ = os.Remove(instance.PidFile)
		return nil
	}

	process, err := os.FindProcess(pid)
	if err != nil {
		return fmt.Errorf("failed to find process: %w", err)
	}

	if err := process.Signal(syscall.SIGTERM); err != nil {
		if err := process.Kill(); err != nil {
			return fmt.Errorf("failed to kill process: %w", err)
		}
	}

	// Wait for the process to exit, force kill on timeout
	deadline := time.Now().Add(stopTimeout)
	for processAlive(pid) {
		if time.Now().After(deadline) {
			_ = process.Kill()
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(100 * time.Millisecond):
		}
	}

	if err := os.Remove(instance.PidFile); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove PID file: %w", err)
	}
	return nil
}

// GetStatus reports whether the instance runs and whether its RPC answers
func (m *Manager) GetStatus(ctx context.Context, instance *domain.AnvilInstance) (*domain.AnvilStatus, error) {
	m.setFilePaths(instance)

	status := &domain.AnvilStatus{
		RPCURL:  rpcURL(instance),
		LogFile: instance.LogFile,
	}

	pid, running := m.running(instance)
	if !running {
		return status, nil
	}
	status.Running = true
	status.PID = pid

	chainID, block, err := probe(ctx, status.RPCURL)
	if err != nil {
		status.Error = err.Error()
		return status, nil
	}
	status.RPCHealthy = true
	status.ChainID = chainID
	status.BlockNumber = block

	return status, nil
}

// StreamLogs copies the log file to writer and follows it until ctx is done
func (m *Manager) StreamLogs(ctx context.Context, instance *domain.AnvilInstance, writer io.Writer) error {
	m.setFilePaths(instance)

	file, err := os.Open(instance.LogFile)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("log file does not exist: %s", instance.LogFile)
		}
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer file.Close()

	buf := make([]byte, 32*1024)
	for {
		n, err := file.Read(buf)
		if n > 0 {
			if _, werr := writer.Write(buf[:n]); werr != nil {
				return werr
			}
		}
		if err == nil {
			continue
		}
		if err != io.EOF {
			return fmt.Errorf("failed to read log file: %w", err)
		}
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(250 * time.Millisecond):
		}
	}
}

// setFilePaths fills in defaults for name, port, pid and log files
func (m *Manager) setFilePaths(instance *domain.AnvilInstance) {
	if strings.TrimSpace(instance.Name) == "" {
		instance.Name = DefaultAnvilName
	}
	if strings.TrimSpace(instance.Port) == "" {
		instance.Port = DefaultAnvilPort
	}
	if instance.PidFile != "" && instance.LogFile != "" {
		return
	}

	pidFile := defaultPidFile
	logFile := defaultLogFile
	if instance.Name != DefaultAnvilName || instance.Port != DefaultAnvilPort {
		pidFile = filepath.Join(m.tmpDir, fmt.Sprintf("counter-%s.pid", instance.Name))
		logFile = filepath.Join(m.tmpDir, fmt.Sprintf("counter-%s.log", instance.Name))
	}
	if instance.PidFile == "" {
		instance.PidFile = pidFile
	}
	if instance.LogFile == "" {
		instance.LogFile = logFile
	}
}

// running reads the pid file and checks the process is alive
func (m *Manager) running(instance *domain.AnvilInstance) (int, bool) {
	data, err := os.ReadFile(instance.PidFile)
	if err != nil {
		return 0, false
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || pid <= 0 {
		m.log.Warn("invalid PID file", "path", instance.PidFile)
		return 0, false
	}
	return pid, processAlive(pid)
}

func (m *Manager) waitHealthy(ctx context.Context, instance *domain.AnvilInstance) error {
	ctx, cancel := context.WithTimeout(ctx, m.startup)
	defer cancel()

	url := rpcURL(instance)
	for {
		_, _, err := probe(ctx, url)
		if err == nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("%s: %w", url, err)
		case <-time.After(100 * time.Millisecond):
		}
	}
}

func buildAnvilArgs(instance *domain.AnvilInstance) []string {
	args := []string{"--port", instance.Port, "--host", "0.0.0.0"}
	if instance.ChainID != "" {
		args = append(args, "--chain-id", instance.ChainID)
	}
	return args
}

func rpcURL(instance *domain.AnvilInstance) string {
	return fmt.Sprintf("http://localhost:%s", instance.Port)
}

func processAlive(pid int) bool {
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	return process.Signal(syscall.Signal(0)) == nil
}

// probe fetches chain id and head block over JSON-RPC
func probe(ctx context.Context, url string) (uint64, uint64, error) {
	ctx, cancel := context.WithTimeout(ctx, healthTimeout)
	defer cancel()

	client, err := ethclient.DialContext(ctx, url)
	if err != nil {
		return 0, 0, err
	}
	defer client.Close()

	chainID, err := client.ChainID(ctx)
	if err != nil {
		return 0, 0, err
	}
	block, err := client.BlockNumber(ctx)
	if err != nil {
		return 0, 0, err
	}
	return chainID.Uint64(), block, nil
}

var _ usecase.AnvilManager = (*Manager)(nil)
