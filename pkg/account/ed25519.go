package account

import (
	"fmt"

	hedera "github.com/hashgraph/hedera-sdk-go/v2"

	"github.com/cvn1-standard/cvn1-sdk-go/pkg/ledger"
	"github.com/cvn1-standard/cvn1-sdk-go/pkg/shared"
)

const ed25519SignatureType = "ed25519_signature"

type Ed25519Account struct {
	key     hedera.PrivateKey
	address string
}

// NewEd25519Account parses a hex ed25519 private key.
func NewEd25519Account(raw string) (*Ed25519Account, error) {
	key, err := shared.ParsePrivateKey(raw)
	if err != nil {
		return nil, err
	}
	return newEd25519Account(key), nil
}

// GenerateEd25519Account creates an account with a fresh random key.
func GenerateEd25519Account() (*Ed25519Account, error) {
	key, err := hedera.PrivateKeyGenerateEd25519()
	if err != nil {
		return nil, fmt.Errorf("failed to generate ed25519 key: %w", err)
	}
	return newEd25519Account(key), nil
}

func newEd25519Account(key hedera.PrivateKey) *Ed25519Account {
	return &Ed25519Account{
		key:     key,
		address: deriveAddress(key.PublicKey().BytesRaw(), ed25519SchemeByte),
	}
}

// Address returns the requested value.
func (a *Ed25519Account) Address() string {
	return a.address
}

// PublicKeyHex returns the requested value.
func (a *Ed25519Account) PublicKeyHex() string {
	return hexWithPrefix(a.key.PublicKey().BytesRaw())
}

// PrivateKeyHex returns the raw private key with an AIP-80 prefix.
func (a *Ed25519Account) PrivateKeyHex() string {
	return "ed25519-priv-0x" + a.key.StringRaw()
}

func (a *Ed25519Account) Sign(message []byte) (ledger.TransactionSignature, error) {
	if len(message) == 0 {
		return ledger.TransactionSignature{}, fmt.Errorf("signing message cannot be empty")
	}
	signature := a.key.Sign(message)
	return ledger.TransactionSignature{
		Type:      ed25519SignatureType,
		PublicKey: a.PublicKeyHex(),
		Signature: hexWithPrefix(signature),
	}, nil
}
