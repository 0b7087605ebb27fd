package signer

import "errors"

var (
	ErrUnknownAccount            = errors.New("signer account is not defined")
	ErrInvalidMnemonic           = errors.New("invalid bip39 mnemonic")
	ErrInvalidDerivationPath     = errors.New("invalid bip32 derivation path")
	ErrDerivationFailed          = errors.New("key derivation failed")
	ErrInvalidPrivateKeyEncoding = errors.New("private key is not valid base64")
	ErrInvalidPrivateKeyBytes    = errors.New("private key bytes are not a valid secp256k1 key")
	ErrNoCredentialSupplied      = errors.New("unable to retrieve signer private key")
	ErrConflictingCredentials    = errors.New("signer account, mnemonic and private key are mutually exclusive")
)
