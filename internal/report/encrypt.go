package report

import (
	"fmt"
	"io"
	"os"
	"strings"

	"filippo.io/age"
)

// ValidateAgePublicKey validates that a string is a valid age public key.
func ValidateAgePublicKey(key string) error {
	if !strings.HasPrefix(key, "age1") {
		return fmt.Errorf("age public key must start with 'age1'")
	}

	if _, err := age.ParseX25519Recipient(key); err != nil {
		return fmt.Errorf("invalid age public key: %w", err)
	}
	return nil
}

// EncryptFile encrypts path to path+".age" for recipient and removes the
// plaintext. It returns the encrypted file's path.
func EncryptFile(path, recipient string) (string, error) {
	r, err := age.ParseX25519Recipient(recipient)
	if err != nil {
		return "", fmt.Errorf("failed to parse age public key: %w", err)
	}

	in, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer in.Close()

	encPath := path + ".age"
	out, err := os.Create(encPath)
	if err != nil {
		return "", fmt.Errorf("failed to create output file %s: %w", encPath, err)
	}

	if err := encryptTo(out, in, r); err != nil {
		out.Close()
		os.Remove(encPath)
		return "", err
	}
	if err := out.Close(); err != nil {
		os.Remove(encPath)
		return "", err
	}

	in.Close()
	if err := os.Remove(path); err != nil {
		return "", fmt.Errorf("failed to remove plaintext %s: %w", path, err)
	}
	return encPath, nil
}

func encryptTo(dst io.Writer, src io.Reader, r age.Recipient) error {
	encWriter, err := age.Encrypt(dst, r)
	if err != nil {
		return fmt.Errorf("failed to create age encryption writer: %w", err)
	}
	if _, err := io.Copy(encWriter, src); err != nil {
		return fmt.Errorf("failed to encrypt: %w", err)
	}
	// Close flushes the final chunk
	if err := encWriter.Close(); err != nil {
		return fmt.Errorf("failed to finalize encryption: %w", err)
	}
	return nil
}
