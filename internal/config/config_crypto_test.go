package config_test

import (
	"os"
	"testing"

	"github.com/saulo-duarte/medprep-api/internal/config"
)

const testKey = "01234567890123456789012345678901"

func TestInitCrypto(t *testing.T) {
	os.Setenv("CRYPTO_KEY", "chave_curta")

	defer func() {
		if r := recover(); r == nil {
			t.Errorf("InitCrypto deveria ter entrado em pânico com chave curta, mas não entrou.")
		}
	}()

	config.InitCrypto()
}

func TestEncryptDecrypt(t *testing.T) {
	os.Setenv("CRYPTO_KEY", testKey)
	config.InitCrypto()

	t.Run("RoundTrip", func(t *testing.T) {
		plaintext := "cus_a1b2c3d4e5"

		ciphertext, err := config.Encrypt(plaintext)
		if err != nil {
			t.Fatalf("Encrypt falhou com erro: %v", err)
		}

		decryptedtext, err := config.Decrypt(ciphertext)
		if err != nil {
			t.Fatalf("Decrypt falhou com erro: %v", err)
		}

		if decryptedtext != plaintext {
			t.Errorf("O texto descriptografado ('%s') não corresponde ao original ('%s')",
				decryptedtext, plaintext)
		}

		ciphertext2, _ := config.Encrypt(plaintext)
		if ciphertext == ciphertext2 {
			t.Errorf("A criptografia não está sendo aleatória (nonce). As cifras deveriam ser diferentes.")
		}
	})

	t.Run("TamperedCiphertext", func(t *testing.T) {
		ciphertext, err := config.Encrypt("dados sensíveis")
		if err != nil {
			t.Fatalf("Encrypt falhou com erro: %v", err)
		}

		if _, err := config.Decrypt("AAAA" + ciphertext[4:]); err == nil {
			t.Error("Decrypt deveria ter falhado com ciphertext adulterado, mas passou.")
		}
	})
}
