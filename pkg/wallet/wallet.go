package wallet

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

var (
	ErrInvalidAddress   = errors.New("invalid wallet address")
	ErrInvalidSignature = errors.New("invalid signature")
)

// NonceMessage is the text a wallet owner signs to prove control of address
func NonceMessage(address string, nonce int64) string {
	return fmt.Sprintf("Please sign this message for address %s:\n\n%d", address, nonce)
}

// NormalizeAddress validates a hex address and returns its checksummed form
func NormalizeAddress(address string) (string, error) {
	if !common.IsHexAddress(address) {
		return "", ErrInvalidAddress
	}
	return common.HexToAddress(address).Hex(), nil
}

// RecoverSigner returns the address that produced an EIP-191 personal_sign signature over message
func RecoverSigner(message, signatureHex string) (string, error) {
	sig, err := hexutil.Decode(signatureHex)
	if err != nil || len(sig) != crypto.SignatureLength {
		return "", ErrInvalidSignature
	}
	if sig[crypto.RecoveryIDOffset] >= 27 {
		sig[crypto.RecoveryIDOffset] -= 27
	}

	pub, err := crypto.SigToPub(accounts.TextHash([]byte(message)), sig)
	if err != nil {
		return "", ErrInvalidSignature
	}
	return crypto.PubkeyToAddress(*pub).Hex(), nil
}

// VerifySignature reports whether signatureHex over message was produced by address
func VerifySignature(address, message, signatureHex string) (bool, error) {
	signer, err := RecoverSigner(message, signatureHex)
	if err != nil {
		return false, err
	}
	return strings.EqualFold(signer, address), nil
}
