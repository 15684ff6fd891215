package services

import (
	"crypto/rand"
	"encoding/base64"
	"math/big"

	"orderdesk/internal/core/domain/model/order"
)

// secretCodeBytes gives a 22 character token with 128 bits of entropy.
const secretCodeBytes = 16

// CodeGenerator produces candidate order codes. Candidates are not guaranteed
// to be unique; OrderCodeIssuer retries until they are.
type CodeGenerator interface {
	PublicCode() (order.PublicCode, error)
	SecretCode() (order.SecretCode, error)
}

// RandomCodeGenerator draws codes from crypto/rand.
type RandomCodeGenerator struct{}

func NewRandomCodeGenerator() RandomCodeGenerator {
	return RandomCodeGenerator{}
}

func (RandomCodeGenerator) PublicCode() (order.PublicCode, error) {
	alphabetSize := big.NewInt(int64(len(order.PublicCodeAlphabet)))

	buf := make([]byte, 0, order.PublicCodeLength+1)
	buf = append(buf, '#')
	for range order.PublicCodeLength {
		n, err := rand.Int(rand.Reader, alphabetSize)
		if err != nil {
			return "", err
		}
		buf = append(buf, order.PublicCodeAlphabet[n.Int64()])
	}

	return order.NewPublicCode(string(buf))
}

func (RandomCodeGenerator) SecretCode() (order.SecretCode, error) {
	raw := make([]byte, secretCodeBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}

	return order.NewSecretCode(base64.RawURLEncoding.EncodeToString(raw))
}
