package commands

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"io"
	"os"
)

// RunGenerateKeys generates an RSA key pair and writes both keys as PEM files.
// The private key file is written with 0600 permissions since it signs every
// issued token.
func RunGenerateKeys(writer io.Writer, privateKeyPath, publicKeyPath string, bits int) error {
	if bits < 2048 {
		return fmt.Errorf("key size must be at least 2048 bits, got %d", bits)
	}

	privateKey, err := rsa.GenerateKey(rand.Reader, bits)
	if err != nil {
		return fmt.Errorf("failed to generate RSA key pair: %w", err)
	}

	privatePEM := pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(privateKey),
	})

	publicDER, err := x509.MarshalPKIXPublicKey(&privateKey.PublicKey)
	if err != nil {
		return fmt.Errorf("failed to marshal public key: %w", err)
	}
	publicPEM := pem.EncodeToMemory(&pem.Block{
		Type:  "PUBLIC KEY",
		Bytes: publicDER,
	})

	if err := os.WriteFile(privateKeyPath, privatePEM, 0o600); err != nil {
		return fmt.Errorf("failed to write private key to %s: %w", privateKeyPath, err)
	}

	if err := os.WriteFile(publicKeyPath, publicPEM, 0o644); err != nil {
		return fmt.Errorf("failed to write public key to %s: %w", publicKeyPath, err)
	}

	_, _ = fmt.Fprintf(writer, "Private key written to %s\n", privateKeyPath)
	_, _ = fmt.Fprintf(writer, "Public key written to %s\n", publicKeyPath)
	_, _ = fmt.Fprintln(writer)
	_, _ = fmt.Fprintln(writer, "# Add to your .env file:")
	_, _ = fmt.Fprintf(writer, "JWT_PRIVATE_KEY_PATH=\"%s\"\n", privateKeyPath)
	_, _ = fmt.Fprintf(writer, "JWT_PUBLIC_KEY_PATH=\"%s\"\n", publicKeyPath)

	return nil
}
