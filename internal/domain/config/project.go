package config

// ProjectFile represents the raw counter.toml structure
type ProjectFile struct {
	Networks map[string]string `toml:"networks"`
	Wallet   WalletSection     `toml:"wallet"`
	Harness  HarnessSection    `toml:"harness"`
}

// WalletSection is the [wallet] table
type WalletSection struct {
	PrivateKey string `toml:"private_key"`
}

// HarnessSection is the [harness] table
type HarnessSection struct {
	Wallets   int    `toml:"wallets"`
	Balance   string `toml:"balance"` // "100ether", "5gwei" or plain wei
	Artifact  string `toml:"artifact"`
	Scenarios string `toml:"scenarios"`
	Timeout   string `toml:"timeout"`
}
