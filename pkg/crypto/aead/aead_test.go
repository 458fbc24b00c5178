package aead

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

var key32 = make([]byte, 32)

func init() {
	for i := range key32 {
		key32[i] = byte(i)
	}
}

func allCiphers(t *testing.T) []Cipher {
	t.Helper()
	var out []Cipher
	for _, typ := range []CipherType{CipherChaCha20, CipherAESGCM} {
		c, err := NewWithType(key32, typ)
		if err != nil {
			t.Fatalf("NewWithType(%s) error = %v", typ, err)
		}
		out = append(out, c)
	}
	return out
}

func TestNew_DefaultIsChaCha20(t *testing.T) {
	c, err := New(key32)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if c.Type() != CipherChaCha20 {
		t.Errorf("New() type = %s, want %s", c.Type(), CipherChaCha20)
	}
}

func TestNewWithType_Unknown(t *testing.T) {
	if _, err := NewWithType(key32, "rot13"); err == nil {
		t.Error("NewWithType(unknown) should return error")
	}
}

func TestNew_InvalidKeySize(t *testing.T) {
	for _, size := range []int{0, 16, 24, 31, 33} {
		if _, err := NewChaCha20(make([]byte, size)); err == nil {
			t.Errorf("NewChaCha20(%d bytes) should fail", size)
		}
		if _, err := NewAESGCM(make([]byte, size)); err == nil {
			t.Errorf("NewAESGCM(%d bytes) should fail", size)
		}
	}
}

func TestEncryptDecrypt(t *testing.T) {
	tests := []struct {
		name      string
		plaintext []byte
		aad       []byte
	}{
		{"Empty", []byte{}, nil},
		{"Simple", []byte("hello world"), nil},
		{"With AAD", []byte("secret data"), []byte("authenticated")},
		{"Large", bytes.Repeat([]byte("A"), 64*1024), nil},
		{"Binary", []byte{0x00, 0xFF, 0x7F, 0x80}, nil},
	}

	for _, c := range allCiphers(t) {
		for _, tt := range tests {
			t.Run(string(c.Type())+"/"+tt.name, func(t *testing.T) {
				sealed, err := c.Encrypt(tt.plaintext, tt.aad)
				if err != nil {
					t.Fatalf("Encrypt() error = %v", err)
				}
				if want := len(tt.plaintext) + c.NonceSize() + c.Overhead(); len(sealed) != want {
					t.Errorf("Encrypt() length = %d, want %d", len(sealed), want)
				}

				plaintext, err := c.Decrypt(sealed, tt.aad)
				if err != nil {
					t.Fatalf("Decrypt() error = %v", err)
				}
				if !bytes.Equal(plaintext, tt.plaintext) {
					t.Errorf("Decrypt() = %v, want %v", plaintext, tt.plaintext)
				}
			})
		}
	}
}

func TestNonceAndOverheadSizes(t *testing.T) {
	for _, c := range allCiphers(t) {
		if c.NonceSize() != 12 {
			t.Errorf("%s NonceSize() = %d, want 12", c.Type(), c.NonceSize())
		}
		if c.Overhead() != 16 {
			t.Errorf("%s Overhead() = %d, want 16", c.Type(), c.Overhead())
		}
	}
}

func TestDecrypt_Tampered(t *testing.T) {
	for _, c := range allCiphers(t) {
		sealed, err := c.Encrypt([]byte("secret message"), nil)
		if err != nil {
			t.Fatalf("Encrypt() error = %v", err)
		}

		for _, idx := range []int{0, c.NonceSize(), len(sealed) - 1} {
			tampered := bytes.Clone(sealed)
			tampered[idx] ^= 0xFF
			if _, err := c.Decrypt(tampered, nil); !errors.Is(err, ErrDecrypt) {
				t.Errorf("%s Decrypt(tampered at %d) error = %v, want ErrDecrypt", c.Type(), idx, err)
			}
		}
	}
}

func TestDecrypt_WrongKey(t *testing.T) {
	other := bytes.Repeat([]byte{0x42}, 32)
	for _, typ := range []CipherType{CipherChaCha20, CipherAESGCM} {
		a, _ := NewWithType(key32, typ)
		b, _ := NewWithType(other, typ)

		sealed, err := a.Encrypt([]byte("for a only"), nil)
		if err != nil {
			t.Fatalf("Encrypt() error = %v", err)
		}
		if _, err := b.Decrypt(sealed, nil); !errors.Is(err, ErrDecrypt) {
			t.Errorf("%s Decrypt(wrong key) error = %v, want ErrDecrypt", typ, err)
		}
	}
}

func TestDecrypt_CrossAlgorithmFails(t *testing.T) {
	chacha, _ := NewChaCha20(key32)
	gcm, _ := NewAESGCM(key32)

	sealed, _ := chacha.Encrypt([]byte("payload"), nil)
	if _, err := gcm.Decrypt(sealed, nil); err == nil {
		t.Error("AES-GCM should not open a ChaCha20-Poly1305 message")
	}
}

func TestDecrypt_TooShort(t *testing.T) {
	for _, c := range allCiphers(t) {
		short := make([]byte, c.NonceSize()+c.Overhead()-1)
		if _, err := c.Decrypt(short, nil); !errors.Is(err, ErrCiphertextTooShort) {
			t.Errorf("%s Decrypt(short) error = %v, want ErrCiphertextTooShort", c.Type(), err)
		}
	}
}

func TestEncrypt_Uniqueness(t *testing.T) {
	c, _ := New(key32)
	seen := make(map[string]bool)
	for i := 0; i < 10; i++ {
		sealed, err := c.Encrypt([]byte("same plaintext"), nil)
		if err != nil {
			t.Fatalf("Encrypt() error = %v", err)
		}
		if seen[string(sealed)] {
			t.Fatal("Encrypt() produced duplicate output (nonce reuse)")
		}
		seen[string(sealed)] = true
	}
}

func TestParseKey(t *testing.T) {
	valid := strings.Repeat("0123456789abcdef", 4)

	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid", valid, false},
		{"valid uppercase", strings.ToUpper(valid), false},
		{"surrounding whitespace", "  " + valid + "\n", false},
		{"too short", valid[:62], true},
		{"16 bytes", valid[:32], true},
		{"too long", valid + "00", true},
		{"not hex", strings.Repeat("zz", 32), true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, err := ParseKey(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidKey) {
					t.Errorf("ParseKey() error = %v, want ErrInvalidKey", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseKey() error = %v", err)
			}
			if len(key) != KeySize {
				t.Errorf("ParseKey() length = %d, want %d", len(key), KeySize)
			}
		})
	}
}

func TestGenerateKey(t *testing.T) {
	a, err := GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey() error = %v", err)
	}
	b, _ := GenerateKey()
	if a == b {
		t.Error("GenerateKey() returned the same key twice")
	}
	if _, err := ParseKey(a); err != nil {
		t.Errorf("ParseKey(GenerateKey()) error = %v", err)
	}
}

func TestParseType(t *testing.T) {
	tests := []struct {
		input   string
		want    CipherType
		wantErr bool
	}{
		{"", CipherChaCha20, false},
		{"chacha20-poly1305", CipherChaCha20, false},
		{"aes-256-gcm", CipherAESGCM, false},
		{"aes-gcm", "", true},
	}
	for _, tt := range tests {
		got, err := ParseType(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseType(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseType(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func BenchmarkChaCha20_Encrypt_1KB(b *testing.B) {
	c, _ := NewChaCha20(key32)
	plaintext := bytes.Repeat([]byte("A"), 1024)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = c.Encrypt(plaintext, nil)
	}
}
