package signer

import (
	"fmt"

	"github.com/rs/zerolog"
)

// Resolver turns a Credential into a SigningKey using the account registry
// and derivation path from configuration. It keeps no state between calls.
type Resolver struct {
	Accounts       Registry
	DerivationPath string
	log            zerolog.Logger
}

// NewResolver builds a Resolver. An empty derivationPath selects DefaultDerivationPath.
func NewResolver(accounts Registry, derivationPath string, log zerolog.Logger) *Resolver {
	if derivationPath == "" {
		derivationPath = DefaultDerivationPath
	}
	return &Resolver{Accounts: accounts, DerivationPath: derivationPath, log: log}
}

// Resolve produces the signing key for c.
func (r *Resolver) Resolve(c Credential) (*SigningKey, error) {
	var (
		key *SigningKey
		err error
	)
	switch cred := c.(type) {
	case AccountRef:
		key, err = r.resolveAccount(cred.Name)
	case Mnemonic:
		key, err = KeyFromMnemonic(cred.Phrase, r.DerivationPath)
	case PrivateKey:
		key, err = KeyFromBase64(cred.Base64)
	default:
		err = ErrNoCredentialSupplied
	}
	if err != nil {
		r.log.Debug().Str("source", Source(c)).Err(err).Msg("signer resolution failed")
		return nil, err
	}
	r.log.Debug().Str("source", Source(c)).Str("pubkey", fmt.Sprintf("%X", key.PubKey().Bytes())).Msg("signer resolved")
	return key, nil
}

// ResolveArgs applies the account, mnemonic, private key priority chain to a and resolves the winner.
func (r *Resolver) ResolveArgs(a Args) (*SigningKey, error) {
	c, err := a.Credential()
	if err != nil {
		return nil, err
	}
	return r.Resolve(c)
}

func (r *Resolver) resolveAccount(name string) (*SigningKey, error) {
	if r.Accounts == nil {
		return nil, fmt.Errorf("%w: `%s`", ErrUnknownAccount, name)
	}
	acc, ok := r.Accounts.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: `%s`", ErrUnknownAccount, name)
	}
	c, err := acc.credential(name)
	if err != nil {
		return nil, err
	}
	switch cred := c.(type) {
	case Mnemonic:
		key, err := KeyFromMnemonic(cred.Phrase, r.DerivationPath)
		if err != nil {
			return nil, fmt.Errorf("account `%s`: %w", name, err)
		}
		return key, nil
	case PrivateKey:
		key, err := KeyFromBase64(cred.Base64)
		if err != nil {
			return nil, fmt.Errorf("account `%s`: %w", name, err)
		}
		return key, nil
	}
	return nil, fmt.Errorf("account `%s`: %w", name, ErrNoCredentialSupplied)
}

// Resolve is the one-shot form of Resolver.ResolveArgs.
func Resolve(a Args, accounts Registry, derivationPath string) (*SigningKey, error) {
	return NewResolver(accounts, derivationPath, zerolog.Nop()).ResolveArgs(a)
}
