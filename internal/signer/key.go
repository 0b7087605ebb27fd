package signer

import (
	"encoding/base64"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/cosmos/cosmos-sdk/crypto/keys/secp256k1"
	cryptotypes "github.com/cosmos/cosmos-sdk/crypto/types"
	"github.com/cosmos/cosmos-sdk/types/bech32"
	bip39 "github.com/cosmos/go-bip39"
)

// PrivateKeySize is the length of a raw secp256k1 secret scalar.
const PrivateKeySize = 32

// SigningKey holds the secret that signs a transaction. The caller owns it
// and should Zero it once signing is done.
type SigningKey struct {
	priv *secp256k1.PrivKey
}

func newSigningKey(raw []byte) *SigningKey {
	key := make([]byte, PrivateKeySize)
	copy(key, raw)
	return &SigningKey{priv: &secp256k1.PrivKey{Key: key}}
}

// Bytes returns a copy of the raw 32 byte secret.
func (k *SigningKey) Bytes() []byte {
	out := make([]byte, len(k.priv.Key))
	copy(out, k.priv.Key)
	return out
}

// PubKey returns the compressed public key.
func (k *SigningKey) PubKey() cryptotypes.PubKey { return k.priv.PubKey() }

// Sign signs msg with the Cosmos secp256k1 scheme.
func (k *SigningKey) Sign(msg []byte) ([]byte, error) { return k.priv.Sign(msg) }

// PrivKey exposes the underlying SDK key for transaction builders.
func (k *SigningKey) PrivKey() cryptotypes.PrivKey { return k.priv }

// Address renders the account address with the given bech32 prefix.
func (k *SigningKey) Address(prefix string) (string, error) {
	addr, err := bech32.ConvertAndEncode(prefix, k.priv.PubKey().Address().Bytes())
	if err != nil {
		return "", fmt.Errorf("encode address: %w", err)
	}
	return addr, nil
}

// Zero wipes the secret. The key is unusable afterwards.
func (k *SigningKey) Zero() {
	if k == nil || k.priv == nil {
		return
	}
	wipe(k.priv.Key)
}

// KeyFromMnemonic derives the key at path from an English BIP39 phrase with an empty passphrase.
// The path is checked before the phrase.
func KeyFromMnemonic(phrase, derivationPath string) (*SigningKey, error) {
	path, err := ParsePath(derivationPath)
	if err != nil {
		return nil, err
	}
	if !bip39.IsMnemonicValid(phrase) {
		return nil, ErrInvalidMnemonic
	}
	seed, err := bip39.NewSeedWithErrorChecking(phrase, "")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMnemonic, err)
	}
	defer wipe(seed)

	return deriveKey(seed, path)
}

func deriveKey(seed []byte, path Path) (*SigningKey, error) {
	// The network only selects the xprv version bytes, which never leave this function.
	xprv, err := hdkeychain.NewMaster(seed, &chaincfg.MainNetParams)
	if err != nil {
		return nil, fmt.Errorf("%w: master key: %v", ErrDerivationFailed, err)
	}
	for _, idx := range path {
		child, err := xprv.Derive(idx)
		xprv.Zero()
		if err != nil {
			return nil, fmt.Errorf("%w: child %d: %v", ErrDerivationFailed, idx, err)
		}
		xprv = child
	}
	defer xprv.Zero()

	ecPriv, err := xprv.ECPrivKey()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDerivationFailed, err)
	}
	defer ecPriv.Zero()

	raw := ecPriv.Serialize()
	defer wipe(raw)
	return newSigningKey(raw), nil
}

// KeyFromBase64 decodes a standard base64 raw private key.
func KeyFromBase64(encoded string) (*SigningKey, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPrivateKeyEncoding, err)
	}
	defer wipe(raw)
	return KeyFromBytes(raw)
}

// KeyFromBytes accepts exactly 32 bytes encoding a scalar in [1, n-1].
func KeyFromBytes(raw []byte) (*SigningKey, error) {
	if len(raw) != PrivateKeySize {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidPrivateKeyBytes, len(raw), PrivateKeySize)
	}
	var scalar btcec.ModNScalar
	overflow := scalar.SetByteSlice(raw)
	defer scalar.Zero()
	if overflow || scalar.IsZero() {
		return nil, fmt.Errorf("%w: scalar out of range", ErrInvalidPrivateKeyBytes)
	}
	return newSigningKey(raw), nil
}

func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
