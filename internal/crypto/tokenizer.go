package crypto

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/scrypt"
)

// scrypt cost parameters, fixed so existing tokens keep decrypting.
const (
	scryptN      = 16384
	scryptR      = 8
	scryptP      = 1
	keyLen       = 32
	maskVisible  = 4
)

var errMalformedToken = errors.New("malformed token")

// Tokenizer reversibly encrypts sensitive strings (bank account numbers,
// Plaid access tokens) for at-rest storage. Tokens are formatted as
// iv_hex:ciphertext_hex using AES-256-CBC with a fresh IV per call.
//
// The key is derived from a configured passphrase and salt. Optional
// previous passphrases are tried on decrypt failure so the passphrase can
// be rotated without invalidating stored tokens.
type Tokenizer struct {
	keys [][]byte
}

func NewTokenizer(passphrase, salt string, previous ...string) (*Tokenizer, error) {
	if passphrase == "" || salt == "" {
		return nil, errors.New("tokenizer passphrase and salt are required")
	}

	keys := make([][]byte, 0, 1+len(previous))
	key, err := scrypt.Key([]byte(passphrase), []byte(salt), scryptN, scryptR, scryptP, keyLen)
	if err != nil {
		return nil, fmt.Errorf("derive key: %w", err)
	}
	keys = append(keys, key)

	for _, p := range previous {
		if p == "" {
			continue
		}
		key, err := scrypt.Key([]byte(p), []byte(salt), scryptN, scryptR, scryptP, keyLen)
		if err != nil {
			return nil, fmt.Errorf("derive previous key: %w", err)
		}
		keys = append(keys, key)
	}

	return &Tokenizer{keys: keys}, nil
}

// Tokenize encrypts plaintext and returns iv_hex:ciphertext_hex. Empty
// input returns empty output, not an error.
func (t *Tokenizer) Tokenize(plaintext string) (string, error) {
	if plaintext == "" {
		return "", nil
	}

	block, err := aes.NewCipher(t.keys[0])
	if err != nil {
		return "", err
	}

	iv := make([]byte, aes.BlockSize)
	if _, err := rand.Read(iv); err != nil {
		return "", fmt.Errorf("generate iv: %w", err)
	}

	padded := pkcs7Pad([]byte(plaintext), aes.BlockSize)
	encrypted := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(encrypted, padded)

	return hex.EncodeToString(iv) + ":" + hex.EncodeToString(encrypted), nil
}

// Detokenize reverses Tokenize. It tries the active key first and falls
// back to any previous keys. Malformed tokens and failed decryptions
// return an error; callers decide whether to degrade or abort.
func (t *Tokenizer) Detokenize(token string) (string, error) {
	if token == "" {
		return "", nil
	}

	parts := strings.Split(token, ":")
	if len(parts) != 2 {
		return "", errMalformedToken
	}

	iv, err := hex.DecodeString(parts[0])
	if err != nil || len(iv) != aes.BlockSize {
		return "", errMalformedToken
	}
	encrypted, err := hex.DecodeString(parts[1])
	if err != nil || len(encrypted) == 0 || len(encrypted)%aes.BlockSize != 0 {
		return "", errMalformedToken
	}

	var lastErr error
	for _, key := range t.keys {
		plaintext, err := decrypt(key, iv, encrypted)
		if err == nil {
			return plaintext, nil
		}
		lastErr = err
	}
	return "", lastErr
}

func decrypt(key, iv, encrypted []byte) (string, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return "", err
	}

	decrypted := make([]byte, len(encrypted))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(decrypted, encrypted)

	unpadded, err := pkcs7Unpad(decrypted, aes.BlockSize)
	if err != nil {
		return "", err
	}
	return string(unpadded), nil
}

// Mask redacts all but the last four characters for display. Inputs
// shorter than four characters mask to the empty string.
func Mask(data string) string {
	if len(data) < maskVisible {
		return ""
	}
	return strings.Repeat("*", len(data)-maskVisible) + data[len(data)-maskVisible:]
}

func pkcs7Pad(data []byte, blockSize int) []byte {
	padding := blockSize - len(data)%blockSize
	return append(data, bytes.Repeat([]byte{byte(padding)}, padding)...)
}

func pkcs7Unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, errors.New("invalid padded length")
	}
	padding := int(data[len(data)-1])
	if padding == 0 || padding > blockSize {
		return nil, errors.New("invalid padding")
	}
	for _, b := range data[len(data)-padding:] {
		if int(b) != padding {
			return nil, errors.New("invalid padding")
		}
	}
	return data[:len(data)-padding], nil
}
