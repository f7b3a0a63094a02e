package crypto

import "errors"

var (
	ErrInvalidKeyLength   = errors.New("DATA_ENCRYPTION_KEY must be 32 bytes after decoding")
	ErrCiphertextTooShort = errors.New("ciphertext too short")
)
