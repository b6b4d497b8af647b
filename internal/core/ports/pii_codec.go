package ports

// PIICodec encrypts and decrypts recipient contact fields. Plaintext exists
// only transiently in request handling; aggregates and storage see ciphertext
// exclusively.
type PIICodec interface {
	// Encrypt seals the plaintext. Every call produces a distinct
	// ciphertext even for identical input.
	Encrypt(plaintext string) ([]byte, error)

	// Decrypt opens a ciphertext produced by Encrypt.
	Decrypt(ciphertext []byte) (string, error)
}
