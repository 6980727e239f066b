package devnode

import (
	"os"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"github.com/blockberries/sapi/scale"
	"github.com/blockberries/sapi/signer"
	"github.com/blockberries/sapi/types"
)

// Key schemes of genesis accounts.
const (
	SchemeEd25519 = "ed25519"
	SchemeEcdsa   = "ecdsa"
)

// Account is an endowed genesis account. Its key is the development key
// derived from Name.
type Account struct {
	Name    string `yaml:"name"`
	Scheme  string `yaml:"scheme"`
	Balance string `yaml:"balance"`
}

// AccountID returns the account id of the development key.
func (a Account) AccountID() (types.AccountID32, error) {
	switch a.Scheme {
	case "", SchemeEd25519:
		return signer.Dev(a.Name).AccountID(), nil
	case SchemeEcdsa:
		return signer.DevEcdsa(a.Name).AccountID(), nil
	default:
		return types.AccountID32{}, errors.Errorf("account %s: unknown scheme %q", a.Name, a.Scheme)
	}
}

// Config configures a dev node.
type Config struct {
	SpecName           string `yaml:"spec_name"`
	SpecVersion        uint32 `yaml:"spec_version"`
	TransactionVersion uint32 `yaml:"transaction_version"`

	Accounts []Account `yaml:"accounts"`
	// Validators and Nominators name genesis accounts. Each nominator
	// backs every validator with a tenth of its balance.
	Validators []string `yaml:"validators"`
	Nominators []string `yaml:"nominators"`

	ExistentialDeposit string `yaml:"existential_deposit"`
	// BaseFee is charged on top of the tip of every signed extrinsic.
	BaseFee string `yaml:"base_fee"`
	// PoolLimit bounds the number of queued extrinsics.
	PoolLimit int `yaml:"pool_limit"`
	// StateHistory is the number of recent blocks whose state stays
	// readable. Older block states are released.
	StateHistory int `yaml:"state_history"`

	// InstantSeal authors a block on every submission. Otherwise blocks
	// are sealed every BlockTime by Run.
	InstantSeal bool          `yaml:"instant_seal"`
	BlockTime   time.Duration `yaml:"block_time"`
}

// DefaultConfig returns the development chain: six ed25519 accounts and
// one ecdsa account, each holding 10^18 units.
func DefaultConfig() Config {
	const balance = "1000000000000000000"
	cfg := Config{
		SpecName:           "sapi-dev",
		SpecVersion:        100,
		TransactionVersion: 1,
		Validators:         []string{"Alice", "Bob"},
		Nominators:         []string{"Charlie", "Dave"},
		ExistentialDeposit: "500",
		BaseFee:            "0",
		PoolLimit:          64,
		StateHistory:       256,
		InstantSeal:        true,
		BlockTime:          6 * time.Second,
	}
	for _, name := range []string{"Alice", "Bob", "Charlie", "Dave", "Eve", "Ferdie"} {
		cfg.Accounts = append(cfg.Accounts, Account{Name: name, Scheme: SchemeEd25519, Balance: balance})
	}
	cfg.Accounts = append(cfg.Accounts, Account{Name: "Alice", Scheme: SchemeEcdsa, Balance: balance})
	return cfg
}

// LoadConfig reads a YAML config file. Fields it leaves out keep their
// DefaultConfig values.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(err, "read config")
	}
	cfg := DefaultConfig()
	if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
		return Config{}, errors.Wrapf(err, "parse config %s", path)
	}
	return cfg, nil
}

// chainParams are the parsed amounts of a Config.
type chainParams struct {
	ed      scale.U128
	baseFee scale.U128
}

func (c Config) parse() (chainParams, error) {
	var p chainParams
	var err error
	if p.ed, err = parseAmount(c.ExistentialDeposit); err != nil {
		return p, errors.Wrap(err, "existential_deposit")
	}
	if p.baseFee, err = parseAmount(c.BaseFee); err != nil {
		return p, errors.Wrap(err, "base_fee")
	}
	if c.PoolLimit <= 0 {
		return p, errors.Errorf("pool_limit must be positive, got %d", c.PoolLimit)
	}
	if c.StateHistory <= 0 {
		return p, errors.Errorf("state_history must be positive, got %d", c.StateHistory)
	}
	if !c.InstantSeal && c.BlockTime <= 0 {
		return p, errors.New("block_time must be positive without instant_seal")
	}
	return p, nil
}

func parseAmount(s string) (scale.U128, error) {
	if s == "" {
		return scale.U128{}, nil
	}
	v, err := scale.U128FromDecimal(s)
	return v, errors.Wrapf(err, "amount %q", s)
}
