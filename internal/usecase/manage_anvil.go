package usecase

import (
	"context"
	"fmt"
	"io"

	"github.com/trebuchet-org/counter-harness/internal/domain"
)

// AnvilOperation is one of the anvil lifecycle commands
type AnvilOperation string

const (
	AnvilStart   AnvilOperation = "start"
	AnvilStop    AnvilOperation = "stop"
	AnvilRestart AnvilOperation = "restart"
	AnvilStatus  AnvilOperation = "status"
	AnvilLogs    AnvilOperation = "logs"
)

// ManageAnvil drives the local anvil node used as a persistent network
type ManageAnvil struct {
	anvilManager AnvilManager
	progress     ProgressSink
}

func NewManageAnvil(anvilManager AnvilManager, progress ProgressSink) *ManageAnvil {
	return &ManageAnvil{anvilManager: anvilManager, progress: progress}
}

// ManageAnvilParams selects the operation and the instance it targets
type ManageAnvilParams struct {
	Operation AnvilOperation
	Name      string
	Port      string
	ChainID   string
	Logs      io.Writer // destination for the logs operation
}

// ManageAnvilResult is what the dev commands render
type ManageAnvilResult struct {
	Operation AnvilOperation
	Instance  *domain.AnvilInstance
	Status    *domain.AnvilStatus
	Success   bool
	Message   string
}

// Execute runs one lifecycle operation against the named instance
func (m *ManageAnvil) Execute(ctx context.Context, params ManageAnvilParams) (*ManageAnvilResult, error) {
	node := &domain.AnvilInstance{Name: params.Name, Port: params.Port, ChainID: params.ChainID}

	switch params.Operation {
	case AnvilStart, AnvilRestart:
		return m.boot(ctx, node, params.Operation)
	case AnvilStop:
		return m.halt(ctx, node)
	case AnvilStatus:
		status, err := m.anvilManager.GetStatus(ctx, node)
		if err != nil {
			return nil, fmt.Errorf("failed to get status: %w", err)
		}
		return done(AnvilStatus, node, status, ""), nil
	case AnvilLogs:
		return m.follow(ctx, node, params.Logs)
	}
	return nil, fmt.Errorf("unknown operation: %s", params.Operation)
}

// boot starts the node. A restart first stops a running node.
func (m *ManageAnvil) boot(ctx context.Context, node *domain.AnvilInstance, op AnvilOperation) (*ManageAnvilResult, error) {
	verb, past := "Starting local anvil node", "started"
	if op == AnvilRestart {
		verb, past = "Restarting anvil", "restarted"
		if current, err := m.anvilManager.GetStatus(ctx, node); err == nil && current.Running {
			if err := m.anvilManager.Stop(ctx, node); err != nil {
				return nil, fmt.Errorf("failed to stop anvil: %w", err)
			}
		}
	}
	m.progress.Info(fmt.Sprintf("%s '%s'...", verb, displayName(node)))

	if err := m.anvilManager.Start(ctx, node); err != nil {
		return nil, fmt.Errorf("failed to start anvil: %w", err)
	}
	status, err := m.anvilManager.GetStatus(ctx, node)
	if err != nil {
		return nil, fmt.Errorf("failed to get status after %s: %w", op, err)
	}
	return done(op, node, status, fmt.Sprintf("Anvil '%s' %s with PID %d", node.Name, past, status.PID)), nil
}

func (m *ManageAnvil) halt(ctx context.Context, node *domain.AnvilInstance) (*ManageAnvilResult, error) {
	m.progress.Info(fmt.Sprintf("Stopping anvil '%s'...", displayName(node)))

	// An unreadable status is treated as not running
	if status, err := m.anvilManager.GetStatus(ctx, node); err != nil || !status.Running {
		return done(AnvilStop, node, nil, fmt.Sprintf("Anvil '%s' is not running", node.Name)), nil
	}
	if err := m.anvilManager.Stop(ctx, node); err != nil {
		return nil, fmt.Errorf("failed to stop anvil: %w", err)
	}
	return done(AnvilStop, node, nil, fmt.Sprintf("Anvil '%s' stopped", node.Name)), nil
}

// follow streams the node's log file into w until ctx is cancelled
func (m *ManageAnvil) follow(ctx context.Context, node *domain.AnvilInstance, w io.Writer) (*ManageAnvilResult, error) {
	if w == nil {
		return nil, fmt.Errorf("no log destination")
	}
	status, err := m.anvilManager.GetStatus(ctx, node)
	if err != nil {
		return nil, fmt.Errorf("failed to get status: %w", err)
	}
	if !status.Running {
		m.progress.Info(fmt.Sprintf("Anvil '%s' is not running, showing its last log", node.Name))
	}
	if err := m.anvilManager.StreamLogs(ctx, node, w); err != nil {
		return nil, err
	}
	return done(AnvilLogs, node, status, ""), nil
}

func done(op AnvilOperation, node *domain.AnvilInstance, status *domain.AnvilStatus, msg string) *ManageAnvilResult {
	return &ManageAnvilResult{Operation: op, Instance: node, Status: status, Success: true, Message: msg}
}

func displayName(node *domain.AnvilInstance) string {
	if node.Name == "" {
		return "anvil"
	}
	return node.Name
}
