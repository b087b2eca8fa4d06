package network

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi/bind/v2"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/trebuchet-org/counter-harness/internal/adapters/abi/bindings"
	"github.com/trebuchet-org/counter-harness/internal/domain"
	"github.com/trebuchet-org/counter-harness/internal/usecase"
)

// chainClient is what a session needs from the node; both ethclient.Client and
// the simulated backend's client provide it.
type chainClient interface {
	bind.ContractBackend
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
	BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error)
}

// settleFunc waits until tx is included and returns its receipt
type settleFunc func(ctx context.Context, tx *types.Transaction) (*types.Receipt, error)

// Session drives counter contracts on one network. Calls are serialised.
type Session struct {
	mu      sync.Mutex
	info    domain.NetworkInfo
	client  chainClient
	chainID *big.Int
	signers []signer
	wallets []domain.Wallet
	counter *bindings.Counter
	settle  settleFunc
	closeFn func() error
	closed  bool
	log     *slog.Logger
}

func newSession(ctx context.Context, info domain.NetworkInfo, client chainClient, signers []signer, settle settleFunc, closeFn func() error, log *slog.Logger) (*Session, error) {
	if len(signers) == 0 {
		return nil, fmt.Errorf("no wallets available on %s", info.Name)
	}

	s := &Session{
		info:    info,
		client:  client,
		chainID: new(big.Int).SetUint64(info.ChainID),
		signers: signers,
		counter: bindings.NewCounter(),
		settle:  settle,
		closeFn: closeFn,
		log:     log.With("component", "Session", "network", info.Name),
	}

	for _, sg := range signers {
		balance, err := client.BalanceAt(ctx, sg.address, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to read balance of %s: %w", sg.address.Hex(), err)
		}
		if balance.Sign() == 0 {
			s.log.Warn("wallet has no funds", "address", sg.address.Hex())
		}
		s.wallets = append(s.wallets, domain.Wallet{Address: sg.address, Balance: balance})
	}

	return s, nil
}

// Info describes the network
func (s *Session) Info() domain.NetworkInfo {
	return s.info
}

// Wallets returns the funded wallets, deployer first
func (s *Session) Wallets() []domain.Wallet {
	out := make([]domain.Wallet, len(s.wallets))
	copy(out, s.wallets)
	return out
}

// Deploy sends the artifact's creation code from the first wallet and waits for it to be mined
func (s *Session) Deploy(ctx context.Context, artifact *domain.Artifact) (*domain.ContractHandle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, domain.ErrNotConnected
	}
	if artifact == nil || len(artifact.Bytecode) == 0 {
		return nil, fmt.Errorf("%w: nothing to deploy", domain.ErrInvalidArtifact)
	}

	deployer := s.signers[0]
	address, tx, err := bind.DeployContract(deployer.transactOpts(ctx, s.chainID), artifact.Bytecode, s.client, nil)
	if err != nil {
		return nil, classifyError("deploy "+artifact.Name, err)
	}

	receipt, err := s.settle(ctx, tx)
	if err != nil {
		return nil, fmt.Errorf("deploy %s: %w: %v", artifact.Name, domain.ErrCallFailed, err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return nil, fmt.Errorf("deploy %s: %w: transaction %s reverted", artifact.Name, domain.ErrCallFailed, tx.Hash().Hex())
	}
	if receipt.ContractAddress != (common.Address{}) {
		address = receipt.ContractAddress
	}

	handle := &domain.ContractHandle{
		Name:        artifact.Name,
		Address:     address,
		ChainID:     s.info.ChainID,
		Deployer:    deployer.address,
		TxHash:      tx.Hash(),
		BlockNumber: receipt.BlockNumber.Uint64(),
		GasUsed:     receipt.GasUsed,
	}
	s.log.Debug("deployed contract", "name", artifact.Name, "address", address.Hex(), "block", handle.BlockNumber)

	return handle, nil
}

// Call invokes op on the deployed counter. Mutations are sent as transactions and
// the new value is taken from the CountChanged event, or read back when absent.
func (s *Session) Call(ctx context.Context, handle *domain.ContractHandle, op domain.Operation) (*domain.CallResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, domain.ErrNotConnected
	}
	if handle == nil {
		return nil, fmt.Errorf("%s: no contract handle", op)
	}

	start := time.Now()
	instance := s.counter.Instance(s.client, handle.Address)

	if !op.Mutates() {
		value, err := s.readCount(ctx, instance, nil)
		if err != nil {
			return nil, classifyError(string(op), err)
		}
		return &domain.CallResult{Operation: op, Value: value, Duration: time.Since(start)}, nil
	}

	data, err := s.pack(op)
	if err != nil {
		return nil, err
	}

	tx, err := bind.Transact(instance, s.signers[0].transactOpts(ctx, s.chainID), data)
	if err != nil {
		return nil, classifyError(string(op), err)
	}

	receipt, err := s.settle(ctx, tx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", op, domain.ErrCallFailed, err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return nil, fmt.Errorf("%s: %w: transaction %s reverted", op, domain.ErrCallFailed, tx.Hash().Hex())
	}

	value, err := s.valueAfter(ctx, instance, handle.Address, receipt)
	if err != nil {
		return nil, classifyError(string(op), err)
	}

	result := &domain.CallResult{
		Operation:   op,
		Value:       value,
		TxHash:      tx.Hash(),
		BlockNumber: receipt.BlockNumber.Uint64(),
		GasUsed:     receipt.GasUsed,
		Duration:    time.Since(start),
	}
	s.log.Debug("counter call", "op", op, "value", value, "tx", result.TxHash.Hex(), "gas", result.GasUsed)

	return result, nil
}

// Close releases the network connection; later calls fail with ErrNotConnected
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	if s.closeFn != nil {
		return s.closeFn()
	}
	return nil
}

func (s *Session) pack(op domain.Operation) ([]byte, error) {
	switch op {
	case domain.OpIncrement:
		return s.counter.TryPackIncrement()
	case domain.OpDecrement:
		return s.counter.TryPackDecrement()
	case domain.OpReset:
		return s.counter.TryPackReset()
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownOperation, op)
	}
}

func (s *Session) readCount(ctx context.Context, instance *bind.BoundContract, block *big.Int) (*big.Int, error) {
	opts := &bind.CallOpts{Context: ctx, From: s.signers[0].address, BlockNumber: block}
	return bind.Call(instance, opts, s.counter.PackCount(), s.counter.UnpackCount)
}

// valueAfter extracts the last CountChanged value the contract emitted in receipt
func (s *Session) valueAfter(ctx context.Context, instance *bind.BoundContract, address common.Address, receipt *types.Receipt) (*big.Int, error) {
	var value *big.Int
	for _, log := range receipt.Logs {
		if log.Address != address {
			continue
		}
		ev, err := s.counter.UnpackCountChangedEvent(log)
		if err != nil {
			continue
		}
		value = ev.Count
	}
	if value != nil {
		return value, nil
	}
	return s.readCount(ctx, instance, receipt.BlockNumber)
}

var _ usecase.NetworkSession = (*Session)(nil)
