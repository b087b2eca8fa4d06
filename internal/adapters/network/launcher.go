package network

import (
	"context"
	"log/slog"

	internalconfig "github.com/trebuchet-org/counter-harness/internal/config"
	"github.com/trebuchet-org/counter-harness/internal/domain"
	"github.com/trebuchet-org/counter-harness/internal/domain/config"
	"github.com/trebuchet-org/counter-harness/internal/usecase"
)

// Launcher picks the simulated or RPC launcher for a network name
type Launcher struct {
	cfg       *config.RuntimeConfig
	simulated *SimulatedLauncher
	rpc       *RPCLauncher
	log       *slog.Logger
}

// NewLauncher creates a new network launcher
func NewLauncher(cfg *config.RuntimeConfig, simulated *SimulatedLauncher, rpc *RPCLauncher, log *slog.Logger) *Launcher {
	return &Launcher{
		cfg:       cfg,
		simulated: simulated,
		rpc:       rpc,
		log:       log.With("component", "Launcher"),
	}
}

// Launch starts a session. An empty network or "simulated" runs in process.
func (l *Launcher) Launch(ctx context.Context, opts domain.LaunchOptions) (usecase.NetworkSession, error) {
	if opts.Network == "" || opts.Network == internalconfig.SimulatedNetwork {
		session, err := l.simulated.Launch(ctx, opts)
		if err != nil {
			return nil, err
		}
		return session, nil
	}

	network := l.cfg.Network
	if network == nil || network.Name != opts.Network {
		var err error
		network, err = internalconfig.ResolveNetwork(l.cfg, opts.Network)
		if err != nil {
			return nil, err
		}
	}
	l.log.Debug("launching rpc session", "network", network.Name, "url", network.RPCURL)
	session, err := l.rpc.Launch(ctx, network, opts)
	if err != nil {
		return nil, err
	}
	return session, nil
}

var _ usecase.NetworkLauncher = (*Launcher)(nil)
