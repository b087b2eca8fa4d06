package usecase_test

import (
	"context"
	"io"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/mock"
	"github.com/trebuchet-org/counter-harness/internal/domain"
	"github.com/trebuchet-org/counter-harness/internal/domain/config"
	"github.com/trebuchet-org/counter-harness/internal/usecase"
)

// MockLauncher is a mock implementation of NetworkLauncher
type MockLauncher struct {
	mock.Mock
}

func (m *MockLauncher) Launch(ctx context.Context, opts domain.LaunchOptions) (usecase.NetworkSession, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(usecase.NetworkSession), args.Error(1)
}

// MockSession is a mock implementation of NetworkSession
type MockSession struct {
	mock.Mock
}

func (m *MockSession) Info() domain.NetworkInfo {
	return m.Called().Get(0).(domain.NetworkInfo)
}

func (m *MockSession) Wallets() []domain.Wallet {
	return m.Called().Get(0).([]domain.Wallet)
}

func (m *MockSession) Deploy(ctx context.Context, artifact *domain.Artifact) (*domain.ContractHandle, error) {
	args := m.Called(ctx, artifact)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ContractHandle), args.Error(1)
}

func (m *MockSession) Call(ctx context.Context, handle *domain.ContractHandle, op domain.Operation) (*domain.CallResult, error) {
	args := m.Called(ctx, handle, op)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CallResult), args.Error(1)
}

func (m *MockSession) Close() error {
	return m.Called().Error(0)
}

// MockArtifactLoader is a mock implementation of ArtifactLoader
type MockArtifactLoader struct {
	mock.Mock
}

func (m *MockArtifactLoader) Load(ctx context.Context, path string) (*domain.Artifact, error) {
	args := m.Called(ctx, path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Artifact), args.Error(1)
}

// MockScenarioSource is a mock implementation of ScenarioSource
type MockScenarioSource struct {
	mock.Mock
}

func (m *MockScenarioSource) Load(ctx context.Context, path string) ([]domain.Scenario, error) {
	args := m.Called(ctx, path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Scenario), args.Error(1)
}

// MockDeploymentRepository is a mock implementation of DeploymentRepository
type MockDeploymentRepository struct {
	mock.Mock
}

func (m *MockDeploymentRepository) Save(ctx context.Context, deployment *domain.Deployment) error {
	return m.Called(ctx, deployment).Error(0)
}

func (m *MockDeploymentRepository) Get(ctx context.Context, id string) (*domain.Deployment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Deployment), args.Error(1)
}

func (m *MockDeploymentRepository) FindByAddress(ctx context.Context, address string) ([]*domain.Deployment, error) {
	args := m.Called(ctx, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Deployment), args.Error(1)
}

func (m *MockDeploymentRepository) List(ctx context.Context, filter domain.DeploymentFilter) ([]*domain.Deployment, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Deployment), args.Error(1)
}

func (m *MockDeploymentRepository) Remove(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

// MockSelector is a mock implementation of DeploymentSelector
type MockSelector struct {
	mock.Mock
}

func (m *MockSelector) SelectDeployment(ctx context.Context, deployments []*domain.Deployment, prompt string) (*domain.Deployment, error) {
	args := m.Called(ctx, deployments, prompt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Deployment), args.Error(1)
}

// MockResolver is a mock implementation of NetworkResolver
type MockResolver struct {
	mock.Mock
}

func (m *MockResolver) GetNetworks(ctx context.Context) []string {
	return m.Called(ctx).Get(0).([]string)
}

func (m *MockResolver) ResolveNetwork(ctx context.Context, name string) (*config.Network, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*config.Network), args.Error(1)
}

// MockChecker is a mock implementation of BlockchainChecker
type MockChecker struct {
	mock.Mock
}

func (m *MockChecker) Connect(ctx context.Context, rpcURL string, chainID uint64) error {
	return m.Called(ctx, rpcURL, chainID).Error(0)
}

func (m *MockChecker) ChainID() uint64 {
	return m.Called().Get(0).(uint64)
}

func (m *MockChecker) CheckCounter(ctx context.Context, address string) (*big.Int, string, error) {
	args := m.Called(ctx, address)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).(*big.Int), args.String(1), args.Error(2)
}

func (m *MockChecker) Close() {
	m.Called()
}

// MockAnvilManager is a mock implementation of AnvilManager
type MockAnvilManager struct {
	mock.Mock
}

func (m *MockAnvilManager) Start(ctx context.Context, instance *domain.AnvilInstance) error {
	return m.Called(ctx, instance).Error(0)
}

func (m *MockAnvilManager) Stop(ctx context.Context, instance *domain.AnvilInstance) error {
	return m.Called(ctx, instance).Error(0)
}

func (m *MockAnvilManager) GetStatus(ctx context.Context, instance *domain.AnvilInstance) (*domain.AnvilStatus, error) {
	args := m.Called(ctx, instance)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AnvilStatus), args.Error(1)
}

func (m *MockAnvilManager) StreamLogs(ctx context.Context, instance *domain.AnvilInstance, writer io.Writer) error {
	return m.Called(ctx, instance, writer).Error(0)
}

// MockBuilder is a mock implementation of ContractBuilder
type MockBuilder struct {
	mock.Mock
}

func (m *MockBuilder) Build(ctx context.Context, opts usecase.BuildOptions) error {
	return m.Called(ctx, opts).Error(0)
}

// MockProgressSink records progress events
type MockProgressSink struct {
	events []usecase.ProgressEvent
	infos  []string
	errors []string
}

func (m *MockProgressSink) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	m.events = append(m.events, event)
}

func (m *MockProgressSink) Info(message string)  { m.infos = append(m.infos, message) }
func (m *MockProgressSink) Error(message string) { m.errors = append(m.errors, message) }

// fakeSession drives an in-memory counter. Faults can be injected per call number.
type fakeSession struct {
	info    domain.NetworkInfo
	counter *domain.Counter
	calls   int
	closed  bool
	deploy  *domain.ContractHandle
	// skew is added to the value reported on the given call number
	skew map[int]int64
	// fail returns the error on the given call number
	fail map[int]error
}

func newFakeSession() *fakeSession {
	return &fakeSession{
		info:    domain.NetworkInfo{Name: "simulated", Kind: domain.NetworkKindSimulated, ChainID: 1337},
		counter: domain.NewCounter(),
		deploy:  &domain.ContractHandle{Name: "Counter", Address: common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3"), ChainID: 1337},
		skew:    map[int]int64{},
		fail:    map[int]error{},
	}
}

func (f *fakeSession) Info() domain.NetworkInfo { return f.info }
func (f *fakeSession) Wallets() []domain.Wallet { return nil }

func (f *fakeSession) Deploy(ctx context.Context, artifact *domain.Artifact) (*domain.ContractHandle, error) {
	return f.deploy, nil
}

func (f *fakeSession) Call(ctx context.Context, handle *domain.ContractHandle, op domain.Operation) (*domain.CallResult, error) {
	f.calls++
	if err, ok := f.fail[f.calls]; ok {
		return nil, err
	}
	value, err := f.counter.Apply(op)
	if err != nil {
		return nil, err
	}
	if d, ok := f.skew[f.calls]; ok {
		value = new(big.Int).Add(value, big.NewInt(d))
	}
	res := &domain.CallResult{Operation: op, Value: value}
	if op.Mutates() {
		res.TxHash = common.BytesToHash([]byte{byte(f.calls)})
		res.GasUsed = 26000
	}
	return res, nil
}

func (f *fakeSession) Close() error {
	f.closed = true
	return nil
}
