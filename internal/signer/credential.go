// Package signer resolves the secp256k1 key that signs a transaction from
// mutually exclusive credential sources: a named account from configuration,
// a raw BIP39 mnemonic, or a base64 encoded private key.
package signer

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables consulted by ArgsFromEnv.
const (
	EnvSignerAccount    = "PROTOSTAR_SIGNER_ACCOUNT"
	EnvSignerMnemonic   = "PROTOSTAR_SIGNER_MNEMONIC"
	EnvSignerPrivateKey = "PROTOSTAR_SIGNER_PRIVATE_KEY"
)

// Credential is one of AccountRef, Mnemonic or PrivateKey.
type Credential interface {
	source() string
}

// AccountRef names an entry of the account registry.
type AccountRef struct{ Name string }

// Mnemonic is a raw BIP39 phrase.
type Mnemonic struct{ Phrase string }

// PrivateKey is base64 encoded raw secp256k1 key bytes.
type PrivateKey struct{ Base64 string }

func (AccountRef) source() string { return "account" }
func (Mnemonic) source() string { return "mnemonic" }
func (PrivateKey) source() string { return "private_key" }

// Source labels the credential kind for logs and metrics. It never exposes the secret.
func Source(c Credential) string {
	if c == nil {
		return "none"
	}
	return c.source()
}

// Args mirrors the --signer-account, --signer-mnemonic and --signer-private-key flags.
type Args struct {
	Account    string
	Mnemonic   string
	PrivateKey string
}

// Validate reports ErrConflictingCredentials when more than one source is set.
func (a Args) Validate() error {
	set := 0
	for _, v := range []string{a.Account, a.Mnemonic, a.PrivateKey} {
		if v != "" {
			set++
		}
	}
	if set > 1 {
		return ErrConflictingCredentials
	}
	return nil
}

// Credential picks the first populated source in the order account, mnemonic,
// private key. Later fields are ignored even when populated.
func (a Args) Credential() (Credential, error) {
	switch {
	case a.Account != "":
		return AccountRef{Name: a.Account}, nil
	case a.Mnemonic != "":
		return Mnemonic{Phrase: a.Mnemonic}, nil
	case a.PrivateKey != "":
		return PrivateKey{Base64: a.PrivateKey}, nil
	default:
		return nil, ErrNoCredentialSupplied
	}
}

// ArgsFromEnv fills the unset fields of a from PROTOSTAR_SIGNER_* variables.
// A .env file in the working directory is loaded best-effort first. Fields
// already set are kept so flags win over the environment, and nothing is
// taken from the environment once any flag was given.
func ArgsFromEnv(a Args) Args {
	_ = godotenv.Load() // best-effort
	if a.Account != "" || a.Mnemonic != "" || a.PrivateKey != "" {
		return a
	}
	return Args{
		Account:    strings.TrimSpace(os.Getenv(EnvSignerAccount)),
		Mnemonic:   strings.TrimSpace(os.Getenv(EnvSignerMnemonic)),
		PrivateKey: strings.TrimSpace(os.Getenv(EnvSignerPrivateKey)),
	}
}

// Account is a pre-configured credential source. Exactly one field is set.
type Account struct {
	Mnemonic   string `yaml:"mnemonic,omitempty"`
	PrivateKey string `yaml:"private_key,omitempty"`
}

// Validate checks that exactly one credential source is configured.
func (a Account) Validate() error {
	switch {
	case a.Mnemonic != "" && a.PrivateKey != "":
		return ErrConflictingCredentials
	case a.Mnemonic == "" && a.PrivateKey == "":
		return ErrNoCredentialSupplied
	}
	return nil
}

func (a Account) credential(name string) (Credential, error) {
	switch {
	case a.Mnemonic != "":
		return Mnemonic{Phrase: a.Mnemonic}, nil
	case a.PrivateKey != "":
		return PrivateKey{Base64: a.PrivateKey}, nil
	default:
		return nil, fmt.Errorf("account `%s`: %w", name, ErrNoCredentialSupplied)
	}
}

// Registry looks up named accounts.
type Registry interface {
	Lookup(name string) (Account, bool)
}

// Accounts is a map backed Registry.
type Accounts map[string]Account

// Lookup implements Registry.
func (m Accounts) Lookup(name string) (Account, bool) {
	acc, ok := m[name]
	return acc, ok
}
