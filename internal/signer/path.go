package signer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
)

// DefaultDerivationPath is the Cosmos BIP44 path for the first account.
const DefaultDerivationPath = "m/44'/118'/0'/0/0"

// Path is a parsed BIP32 path; hardened indexes carry hdkeychain.HardenedKeyStart.
type Path []uint32

// ParsePath parses paths like m/44'/118'/0'/0/0. A bare "m" selects the master key.
func ParsePath(s string) (Path, error) {
	parts := strings.Split(s, "/")
	if parts[0] != "m" {
		return nil, fmt.Errorf("%w: `%s` must start with m", ErrInvalidDerivationPath, s)
	}

	path := make(Path, 0, len(parts)-1)
	for _, part := range parts[1:] {
		hardened := strings.HasSuffix(part, "'")
		digits := strings.TrimSuffix(part, "'")
		idx, err := strconv.ParseUint(digits, 10, 32)
		if err != nil || idx >= hdkeychain.HardenedKeyStart {
			return nil, fmt.Errorf("%w: `%s` segment `%s` is not a valid child index", ErrInvalidDerivationPath, s, part)
		}
		if hardened {
			idx += hdkeychain.HardenedKeyStart
		}
		path = append(path, uint32(idx))
	}
	return path, nil
}

func (p Path) String() string {
	var b strings.Builder
	b.WriteString("m")
	for _, idx := range p {
		b.WriteByte('/')
		if idx >= hdkeychain.HardenedKeyStart {
			b.WriteString(strconv.FormatUint(uint64(idx-hdkeychain.HardenedKeyStart), 10))
			b.WriteByte('\'')
			continue
		}
		b.WriteString(strconv.FormatUint(uint64(idx), 10))
	}
	return b.String()
}
