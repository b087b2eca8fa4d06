package render

import (
	"fmt"
	"io"

	"github.com/trebuchet-org/counter-harness/internal/usecase"
)

// CounterRenderer renders single deployments and counter calls
type CounterRenderer struct {
	out io.Writer
}

// NewCounterRenderer creates a new counter renderer
func NewCounterRenderer(out io.Writer) *CounterRenderer {
	return &CounterRenderer{out: out}
}

// RenderDeploy prints where the counter was deployed
func (r *CounterRenderer) RenderDeploy(result *usecase.DeployCounterResult) error {
	dep := result.Deployment
	fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("Deployed %s to %s", dep.Contract, dep.Network)))
	fmt.Fprintf(r.out, "  Address:  %s\n", addressStyle.Sprint(dep.Address))
	fmt.Fprintf(r.out, "  Chain ID: %d\n", dep.ChainID)
	fmt.Fprintf(r.out, "  Deployer: %s\n", dep.Deployer)
	fmt.Fprintf(r.out, "  Tx:       %s\n", faintStyle.Sprint(dep.TxHash))
	fmt.Fprintf(r.out, "  Block:    %d (gas %d)\n", dep.BlockNumber, result.Handle.GasUsed)
	return nil
}

// RenderInvoke prints the counter value after the call
func (r *CounterRenderer) RenderInvoke(result *usecase.InvokeCounterResult) error {
	call := result.Result
	value := "-"
	if call.Value != nil {
		value = call.Value.String()
	}

	if !call.Operation.Mutates() {
		fmt.Fprintf(r.out, "%s = %s\n", nameStyle.Sprintf("%s.count()", result.Deployment.Address), passStyle.Sprint(value))
		return nil
	}

	fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("%s → count is now %s", call.Operation, value)))
	fmt.Fprintf(r.out, "  Contract: %s on %s\n", addressStyle.Sprint(result.Deployment.Address), result.Network.Name)
	fmt.Fprintf(r.out, "  Tx:       %s\n", faintStyle.Sprint(call.TxHash.Hex()))
	fmt.Fprintf(r.out, "  Block:    %d (gas %d)\n", call.BlockNumber, call.GasUsed)
	return nil
}

// RenderBuild prints the build outcome
func (r *CounterRenderer) RenderBuild(result *usecase.BuildContractsResult) error {
	fmt.Fprintln(r.out, FormatSuccess("Build complete"))
	if result.Artifact != nil {
		fmt.Fprintf(r.out, "  Artifact: %s (%d bytes)\n", result.Artifact.Source, len(result.Artifact.Bytecode))
	}
	return nil
}
