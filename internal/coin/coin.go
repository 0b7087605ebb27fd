// Package coin parses amount/denomination strings such as "1000uosmo" into structured on-chain coin values.
package coin

import (
	"errors"
	"fmt"
	"math/big"
	"regexp"

	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

var (
	// ErrNoMatch reports input that does not start with a digit run.
	ErrNoMatch = errors.New("no match")
	// ErrMissingAmount reports input whose digit group is empty.
	ErrMissingAmount = errors.New("missing amount")
	// ErrMissingDenom reports input with nothing after the digits.
	ErrMissingDenom = errors.New("missing denom")
	// ErrAmountOverflow reports an amount wider than the on-chain integer width.
	ErrAmountOverflow = errors.New("amount overflow")
)

// Amount and denom sit next to each other with no delimiter, so the digit
// run is consumed greedily and a denom starting with digits is unsupported.
var coinPattern = regexp.MustCompile(`^([0-9]+)(.*)$`)

// Coin is an immutable (amount, denom) pair. Use Parse to build one.
type Coin struct {
	amount sdkmath.Int
	denom  string
}

// ParseError describes why a string could not be turned into a Coin.
type ParseError struct {
	Input string
	Err   error
}

func (e *ParseError) Error() string {
	switch {
	case errors.Is(e.Err, ErrNoMatch):
		return fmt.Sprintf("unable to parse `%s` as coin", e.Input)
	case errors.Is(e.Err, ErrMissingAmount):
		return fmt.Sprintf("`%s` does not contain valid amount", e.Input)
	case errors.Is(e.Err, ErrMissingDenom):
		return fmt.Sprintf("`%s` does not contain valid denom", e.Input)
	case errors.Is(e.Err, ErrAmountOverflow):
		return fmt.Sprintf("amount in `%s` exceeds %d bits", e.Input, sdkmath.MaxBitLen)
	default:
		return fmt.Sprintf("parse coin `%s`: %v", e.Input, e.Err)
	}
}

func (e *ParseError) Unwrap() error { return e.Err }

// Parse splits s into its leading decimal amount and the verbatim remainder as denom.
func Parse(s string) (Coin, error) {
	caps := coinPattern.FindStringSubmatch(s)
	if caps == nil {
		return Coin{}, &ParseError{Input: s, Err: ErrNoMatch}
	}
	digits, denom := caps[1], caps[2]
	if digits == "" {
		return Coin{}, &ParseError{Input: s, Err: ErrMissingAmount}
	}
	if denom == "" {
		return Coin{}, &ParseError{Input: s, Err: ErrMissingDenom}
	}

	// Base 10 explicitly: a leading zero is padding, not an octal prefix.
	n, ok := new(big.Int).SetString(digits, 10)
	if !ok {
		return Coin{}, &ParseError{Input: s, Err: ErrMissingAmount}
	}
	if n.BitLen() > sdkmath.MaxBitLen {
		return Coin{}, &ParseError{Input: s, Err: ErrAmountOverflow}
	}
	return Coin{amount: sdkmath.NewIntFromBigInt(n), denom: denom}, nil
}

// MustParse is Parse for test literals. It panics on invalid input.
func MustParse(s string) Coin {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Amount returns the coin amount.
func (c Coin) Amount() sdkmath.Int { return c.amount }

// Denom returns the denomination token.
func (c Coin) Denom() string { return c.denom }

// IsZero reports whether c is the zero Coin (never produced by Parse).
func (c Coin) IsZero() bool { return c.amount.IsNil() && c.denom == "" }

// Equal compares amount and denom.
func (c Coin) Equal(other Coin) bool {
	if c.denom != other.denom {
		return false
	}
	if c.amount.IsNil() || other.amount.IsNil() {
		return c.amount.IsNil() == other.amount.IsNil()
	}
	return c.amount.Equal(other.amount)
}

// String renders the canonical form accepted by Parse.
func (c Coin) String() string {
	if c.amount.IsNil() {
		return c.denom
	}
	return c.amount.String() + c.denom
}

// ToSDK converts to a Cosmos SDK coin. Unlike Parse, it enforces the SDK denom rules.
func (c Coin) ToSDK() (sdk.Coin, error) {
	if c.IsZero() {
		return sdk.Coin{}, errors.New("empty coin")
	}
	if err := sdk.ValidateDenom(c.denom); err != nil {
		return sdk.Coin{}, fmt.Errorf("sdk coin %s: %w", c, err)
	}
	return sdk.NewCoin(c.denom, c.amount), nil
}
