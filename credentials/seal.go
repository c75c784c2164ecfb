package credentials

import (
	"crypto/rand"

	"github.com/pkg/errors"
	"golang.org/x/crypto/nacl/secretbox"
	"golang.org/x/crypto/scrypt"

	clienterrors "github.com/wedvenue/wedvenue-client/internal/errors"
)

// Sealed file layout: magic || salt || nonce || secretbox ciphertext.
var sealMagic = []byte("WVC1")

const (
	saltLength  = 16
	nonceLength = 24
	keyLength   = 32

	// scrypt parameters; interactive-strength since the passphrase guards a
	// local file, not a server-side credential database.
	scryptN = 1 << 15
	scryptR = 8
	scryptP = 1
)

func deriveKey(passphrase string, salt []byte) (*[keyLength]byte, error) {
	raw, err := scrypt.Key([]byte(passphrase), salt, scryptN, scryptR, scryptP, keyLength)
	if err != nil {
		return nil, errors.Wrap(err, "derive storage key")
	}
	var key [keyLength]byte
	copy(key[:], raw)
	return &key, nil
}

func seal(plaintext []byte, passphrase string) ([]byte, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return nil, errors.Wrap(err, "seal credentials")
	}
	var nonce [nonceLength]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return nil, errors.Wrap(err, "seal credentials")
	}

	key, err := deriveKey(passphrase, salt)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, len(sealMagic)+saltLength+nonceLength+len(plaintext)+secretbox.Overhead)
	out = append(out, sealMagic...)
	out = append(out, salt...)
	out = append(out, nonce[:]...)
	return secretbox.Seal(out, plaintext, &nonce, key), nil
}

func unseal(data []byte, passphrase string) ([]byte, error) {
	headerLen := len(sealMagic) + saltLength + nonceLength
	if len(data) < headerLen+secretbox.Overhead || string(data[:len(sealMagic)]) != string(sealMagic) {
		return nil, clienterrors.ErrDecryptionFailed
	}

	salt := data[len(sealMagic) : len(sealMagic)+saltLength]
	var nonce [nonceLength]byte
	copy(nonce[:], data[len(sealMagic)+saltLength:headerLen])

	key, err := deriveKey(passphrase, salt)
	if err != nil {
		return nil, err
	}

	plaintext, ok := secretbox.Open(nil, data[headerLen:], &nonce, key)
	if !ok {
		return nil, clienterrors.ErrDecryptionFailed
	}
	return plaintext, nil
}
