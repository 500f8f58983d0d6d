package address

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
)

var ErrInvalidAddress = errors.New("no valid contract address provided")

// Normalize validates a contract address and returns its EIP-55 checksummed form.
// Input may omit the 0x prefix. Mixed-case input must carry a correct checksum.
func Normalize(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", ErrInvalidAddress
	}
	if !common.IsHexAddress(s) {
		return "", errors.Wrapf(ErrInvalidAddress, "%q", s)
	}

	checksummed := common.HexToAddress(s).Hex()

	hexPart := strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if isMixedCase(hexPart) && "0x"+hexPart != checksummed {
		return "", errors.Wrapf(ErrInvalidAddress, "bad address checksum %q", s)
	}

	return checksummed, nil
}

func isMixedCase(s string) bool {
	return strings.ToLower(s) != s && strings.ToUpper(s) != s
}
