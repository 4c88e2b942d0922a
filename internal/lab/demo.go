package lab

import (
	"crypto/cipher"
	"crypto/des"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/hmac"
	"crypto/md5"
	"crypto/rand"
	"crypto/sha1"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/BolnidiManikanta/Virtual-Lab/internal/util"
)

// DemoInput carries the demo form fields. Not every module uses every field.
type DemoInput struct {
	Text  string `json:"text"`
	Key   string `json:"key"`
	Shift int    `json:"shift"`
	Mode  string `json:"mode"` // encrypt (default) or decrypt
	Tag   string `json:"tag"`  // expected MAC for verification
}

// ErrUnknownModule is returned for demo requests against slugs that are not
// in the catalog.
var ErrUnknownModule = fmt.Errorf("lab: unknown module")

const maxDemoText = 4096

// RunDemo executes the interactive demo for a module and returns the fields
// the page displays. Demos are pedagogical simulations, stateless and pure
// apart from randomness.
func RunDemo(slug string, in DemoInput) (map[string]string, error) {
	if !ValidSlug(slug) {
		return nil, ErrUnknownModule
	}
	if strings.TrimSpace(in.Text) == "" {
		return nil, fmt.Errorf("text is required")
	}
	if len(in.Text) > maxDemoText {
		return nil, fmt.Errorf("text too long (max %d characters)", maxDemoText)
	}

	switch slug {
	case "shift_cipher":
		return demoShift(in)
	case "mono_alphabetic":
		return demoMonoAlphabetic(in)
	case "one_time_pad":
		return demoOneTimePad(in)
	case "hash_function":
		return demoHashes(in)
	case "des_algorithm":
		return demoDES(in)
	case "aes_algorithm":
		return demoAES(in)
	case "message_auth":
		return demoHMAC(in)
	case "dsa_algorithm":
		return demoSignature(in)
	}
	return nil, ErrUnknownModule
}

// ---------------- classical ciphers ----------------

// ShiftCipher rotates letters by shift, preserving case and leaving other
// characters untouched.
func ShiftCipher(text string, shift int) string {
	shift = ((shift % 26) + 26) % 26
	var b strings.Builder
	b.Grow(len(text))
	for _, ch := range text {
		switch {
		case ch >= 'a' && ch <= 'z':
			b.WriteRune('a' + (ch-'a'+rune(shift))%26)
		case ch >= 'A' && ch <= 'Z':
			b.WriteRune('A' + (ch-'A'+rune(shift))%26)
		default:
			b.WriteRune(ch)
		}
	}
	return b.String()
}

func demoShift(in DemoInput) (map[string]string, error) {
	if in.Shift == 0 {
		in.Shift = 3
	}
	shift := in.Shift
	if in.Mode == "decrypt" {
		shift = -shift
	}
	return map[string]string{
		"output": ShiftCipher(in.Text, shift),
		"shift":  fmt.Sprintf("%d", in.Shift),
	}, nil
}

// KeywordAlphabet builds a 26-letter substitution alphabet from a keyword:
// the keyword's distinct letters first, then the rest of the alphabet.
func KeywordAlphabet(keyword string) (string, error) {
	var seen [26]bool
	var b strings.Builder
	for _, ch := range strings.ToUpper(keyword) {
		if ch < 'A' || ch > 'Z' || seen[ch-'A'] {
			continue
		}
		seen[ch-'A'] = true
		b.WriteRune(ch)
	}
	if b.Len() == 0 {
		return "", fmt.Errorf("key must contain at least one letter")
	}
	for ch := 'A'; ch <= 'Z'; ch++ {
		if !seen[ch-'A'] {
			b.WriteRune(ch)
		}
	}
	return b.String(), nil
}

func substitute(text, alphabet string, decrypt bool) string {
	var enc, dec [26]rune
	for i, ch := range alphabet {
		enc[i] = ch
		dec[ch-'A'] = rune('A' + i)
	}
	table := enc
	if decrypt {
		table = dec
	}
	var b strings.Builder
	b.Grow(len(text))
	for _, ch := range text {
		switch {
		case ch >= 'A' && ch <= 'Z':
			b.WriteRune(table[ch-'A'])
		case ch >= 'a' && ch <= 'z':
			b.WriteRune(table[ch-'a'] - 'A' + 'a')
		default:
			b.WriteRune(ch)
		}
	}
	return b.String()
}

func demoMonoAlphabetic(in DemoInput) (map[string]string, error) {
	if in.Key == "" {
		return nil, fmt.Errorf("key is required")
	}
	alphabet, err := KeywordAlphabet(in.Key)
	if err != nil {
		return nil, err
	}
	return map[string]string{
		"output":   substitute(in.Text, alphabet, in.Mode == "decrypt"),
		"alphabet": alphabet,
	}, nil
}

// OneTimePad combines message and pad letters modulo 26. Non-letters in the
// message are rejected so pad alignment stays unambiguous.
func OneTimePad(text, pad string, decrypt bool) (string, error) {
	msg := strings.ToUpper(strings.ReplaceAll(text, " ", ""))
	key := strings.ToUpper(strings.ReplaceAll(pad, " ", ""))
	for _, ch := range msg {
		if ch < 'A' || ch > 'Z' {
			return "", fmt.Errorf("message must contain letters only")
		}
	}
	for _, ch := range key {
		if ch < 'A' || ch > 'Z' {
			return "", fmt.Errorf("pad must contain letters only")
		}
	}
	if len(key) < len(msg) {
		return "", fmt.Errorf("pad must be at least as long as the message")
	}

	out := make([]byte, len(msg))
	for i := 0; i < len(msg); i++ {
		m := int(msg[i] - 'A')
		k := int(key[i] - 'A')
		if decrypt {
			out[i] = byte('A' + ((m-k)%26+26)%26)
		} else {
			out[i] = byte('A' + (m+k)%26)
		}
	}
	return string(out), nil
}

func demoOneTimePad(in DemoInput) (map[string]string, error) {
	if in.Key == "" {
		// generate a pad so students see why the key must match the length
		pad := make([]byte, len(strings.ReplaceAll(in.Text, " ", "")))
		buf := make([]byte, len(pad))
		if _, err := rand.Read(buf); err != nil {
			return nil, fmt.Errorf("generate pad: %w", err)
		}
		for i := range pad {
			pad[i] = 'A' + buf[i]%26
		}
		in.Key = string(pad)
	}
	out, err := OneTimePad(in.Text, in.Key, in.Mode == "decrypt")
	if err != nil {
		return nil, err
	}
	return map[string]string{"output": out, "pad": strings.ToUpper(strings.ReplaceAll(in.Key, " ", ""))}, nil
}

// ---------------- modern primitives ----------------

func demoHashes(in DemoInput) (map[string]string, error) {
	data := []byte(in.Text)
	md5sum := md5.Sum(data)
	sha1sum := sha1.Sum(data)
	sha256sum := sha256.Sum256(data)
	return map[string]string{
		"md5":    hex.EncodeToString(md5sum[:]),
		"sha1":   hex.EncodeToString(sha1sum[:]),
		"sha256": hex.EncodeToString(sha256sum[:]),
	}, nil
}

func pkcs7Pad(data []byte, blockSize int) []byte {
	n := blockSize - len(data)%blockSize
	return append(data, strings.Repeat(string(rune(n)), n)...)
}

func pkcs7Unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, fmt.Errorf("invalid padded length")
	}
	n := int(data[len(data)-1])
	if n == 0 || n > blockSize || n > len(data) {
		return nil, fmt.Errorf("invalid padding")
	}
	return data[:len(data)-n], nil
}

func demoDES(in DemoInput) (map[string]string, error) {
	if len(in.Key) != 8 {
		return nil, fmt.Errorf("DES key must be exactly 8 characters")
	}
	block, err := des.NewCipher([]byte(in.Key))
	if err != nil {
		return nil, fmt.Errorf("des: %w", err)
	}

	if in.Mode == "decrypt" {
		raw, err := base64.StdEncoding.DecodeString(in.Text)
		if err != nil {
			return nil, fmt.Errorf("ciphertext must be base64")
		}
		if len(raw) < des.BlockSize || len(raw)%des.BlockSize != 0 {
			return nil, fmt.Errorf("ciphertext length invalid")
		}
		iv, body := raw[:des.BlockSize], raw[des.BlockSize:]
		cipher.NewCBCDecrypter(block, iv).CryptBlocks(body, body)
		plain, err := pkcs7Unpad(body, des.BlockSize)
		if err != nil {
			return nil, err
		}
		return map[string]string{"output": string(plain)}, nil
	}

	padded := pkcs7Pad([]byte(in.Text), des.BlockSize)
	out := make([]byte, des.BlockSize+len(padded))
	iv := out[:des.BlockSize]
	if _, err := rand.Read(iv); err != nil {
		return nil, fmt.Errorf("iv: %w", err)
	}
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(out[des.BlockSize:], padded)
	return map[string]string{"output": base64.StdEncoding.EncodeToString(out)}, nil
}

func demoAES(in DemoInput) (map[string]string, error) {
	if in.Key == "" {
		return nil, fmt.Errorf("key is required")
	}
	if in.Mode == "decrypt" {
		raw, err := base64.StdEncoding.DecodeString(in.Text)
		if err != nil {
			return nil, fmt.Errorf("ciphertext must be base64")
		}
		plain, err := util.DecryptAES(in.Key, raw)
		if err != nil {
			return nil, fmt.Errorf("decryption failed (wrong key or corrupted data)")
		}
		return map[string]string{"output": string(plain)}, nil
	}

	ct, err := util.EncryptAES(in.Key, []byte(in.Text))
	if err != nil {
		return nil, err
	}
	return map[string]string{"output": base64.StdEncoding.EncodeToString(ct)}, nil
}

// ComputeHMAC returns the hex HMAC-SHA256 tag of text under key.
func ComputeHMAC(key, text string) string {
	mac := hmac.New(sha256.New, []byte(key))
	mac.Write([]byte(text))
	return hex.EncodeToString(mac.Sum(nil))
}

func demoHMAC(in DemoInput) (map[string]string, error) {
	if in.Key == "" {
		return nil, fmt.Errorf("key is required")
	}
	tag := ComputeHMAC(in.Key, in.Text)
	out := map[string]string{"tag": tag}
	if in.Tag != "" {
		expected, err := hex.DecodeString(strings.TrimSpace(in.Tag))
		if err != nil {
			return nil, fmt.Errorf("expected tag must be hex")
		}
		actual, _ := hex.DecodeString(tag)
		if hmac.Equal(actual, expected) {
			out["verified"] = "true"
		} else {
			out["verified"] = "false"
		}
	}
	return out, nil
}

func demoSignature(in DemoInput) (map[string]string, error) {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generate key: %w", err)
	}

	digest := sha256.Sum256([]byte(in.Text))
	sig, err := ecdsa.SignASN1(rand.Reader, key, digest[:])
	if err != nil {
		return nil, fmt.Errorf("sign: %w", err)
	}

	// show that tampering with the message breaks verification
	tampered := sha256.Sum256([]byte(in.Text + "."))

	return map[string]string{
		"digest":            hex.EncodeToString(digest[:]),
		"signature":         base64.StdEncoding.EncodeToString(sig),
		"verified":          fmt.Sprintf("%t", ecdsa.VerifyASN1(&key.PublicKey, digest[:], sig)),
		"tampered_verified": fmt.Sprintf("%t", ecdsa.VerifyASN1(&key.PublicKey, tampered[:], sig)),
	}, nil
}
