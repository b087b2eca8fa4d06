package domain

import (
	"fmt"
	"strings"
	"time"
)

// Deployment is a registry record of a counter deployed to a persistent network
type Deployment struct {
	ID          string    `json:"id"` // "<chainId>/<address>"
	Network     string    `json:"network"`
	ChainID     uint64    `json:"chainId"`
	Contract    string    `json:"contract"`
	Address     string    `json:"address"`
	Deployer    string    `json:"deployer"`
	TxHash      string    `json:"txHash"`
	BlockNumber uint64    `json:"blockNumber"`
	Artifact    string    `json:"artifact"`
	CreatedAt   time.Time `json:"createdAt"`
}

// DeploymentID builds the registry key for a deployment
func DeploymentID(chainID uint64, address string) string {
	return fmt.Sprintf("%d/%s", chainID, strings.ToLower(address))
}

// DeploymentFilter narrows a registry listing
type DeploymentFilter struct {
	Network string
	ChainID uint64
}

// Matches reports whether d passes the filter
func (f DeploymentFilter) Matches(d *Deployment) bool {
	if f.Network != "" && d.Network != f.Network {
		return false
	}
	if f.ChainID != 0 && d.ChainID != f.ChainID {
		return false
	}
	return true
}
