package lab

import (
	"strings"
	"testing"
)

func TestShiftCipher(t *testing.T) {
	testCases := []struct {
		text  string
		shift int
		want  string
	}{
		{"HELLO", 3, "KHOOR"},
		{"hello", 3, "khoor"},
		{"Hello, World!", 3, "Khoor, Zruog!"},
		{"xyz", 3, "abc"},
		{"HELLO", 26, "HELLO"},
		{"HELLO", -3, "EBIIL"},
		{"KHOOR", -3, "HELLO"},
	}

	for _, tc := range testCases {
		if got := ShiftCipher(tc.text, tc.shift); got != tc.want {
			t.Errorf("ShiftCipher(%q, %d) = %q, want %q", tc.text, tc.shift, got, tc.want)
		}
	}
}

func TestShiftCipher_Roundtrip(t *testing.T) {
	text := "The Quick Brown Fox Jumps Over The Lazy Dog 123"
	for shift := 1; shift <= 25; shift++ {
		enc := ShiftCipher(text, shift)
		if dec := ShiftCipher(enc, -shift); dec != text {
			t.Fatalf("roundtrip failed at shift %d: %q", shift, dec)
		}
	}
}

func TestKeywordAlphabet(t *testing.T) {
	alphabet, err := KeywordAlphabet("SECRET")
	if err != nil {
		t.Fatalf("KeywordAlphabet() error = %v", err)
	}
	// distinct keyword letters first, then the rest in order
	if !strings.HasPrefix(alphabet, "SECRT") {
		t.Errorf("alphabet = %q, want prefix SECRT", alphabet)
	}
	if len(alphabet) != 26 {
		t.Fatalf("alphabet length = %d, want 26", len(alphabet))
	}
	// a permutation: every letter exactly once
	for ch := 'A'; ch <= 'Z'; ch++ {
		if strings.Count(alphabet, string(ch)) != 1 {
			t.Errorf("letter %c appears %d times", ch, strings.Count(alphabet, string(ch)))
		}
	}

	if _, err := KeywordAlphabet("123"); err == nil {
		t.Error("keyword without letters should be rejected")
	}
}

func TestMonoAlphabetic_Roundtrip(t *testing.T) {
	enc, err := RunDemo("mono_alphabetic", DemoInput{Text: "Attack at Dawn", Key: "zebra"})
	if err != nil {
		t.Fatalf("encrypt error = %v", err)
	}
	dec, err := RunDemo("mono_alphabetic", DemoInput{Text: enc["output"], Key: "zebra", Mode: "decrypt"})
	if err != nil {
		t.Fatalf("decrypt error = %v", err)
	}
	if dec["output"] != "Attack at Dawn" {
		t.Errorf("roundtrip = %q, want original text", dec["output"])
	}
}

func TestOneTimePad(t *testing.T) {
	// classic worked example: HELLO + XMCKL = EQNVZ
	out, err := OneTimePad("HELLO", "XMCKL", false)
	if err != nil {
		t.Fatalf("OneTimePad() error = %v", err)
	}
	if out != "EQNVZ" {
		t.Errorf("ciphertext = %q, want EQNVZ", out)
	}

	plain, err := OneTimePad("EQNVZ", "XMCKL", true)
	if err != nil {
		t.Fatalf("decrypt error = %v", err)
	}
	if plain != "HELLO" {
		t.Errorf("plaintext = %q, want HELLO", plain)
	}
}

func TestOneTimePad_Validation(t *testing.T) {
	if _, err := OneTimePad("HELLO", "XM", false); err == nil {
		t.Error("short pad should be rejected")
	}
	if _, err := OneTimePad("HELLO1", "XMCKLX", false); err == nil {
		t.Error("digits in the message should be rejected")
	}
	if _, err := OneTimePad("HELLO", "XMCK1", false); err == nil {
		t.Error("digits in the pad should be rejected")
	}
	// spaces are stripped, not rejected
	if _, err := OneTimePad("HE LLO", "XMCKL", false); err != nil {
		t.Errorf("spaced message error = %v, want nil", err)
	}
}

func TestRunDemo_OneTimePadGeneratesPad(t *testing.T) {
	out, err := RunDemo("one_time_pad", DemoInput{Text: "SECRET"})
	if err != nil {
		t.Fatalf("RunDemo() error = %v", err)
	}
	if len(out["pad"]) != len("SECRET") {
		t.Errorf("generated pad length = %d, want %d", len(out["pad"]), len("SECRET"))
	}
	// the generated pad decrypts its own ciphertext
	plain, err := OneTimePad(out["output"], out["pad"], true)
	if err != nil {
		t.Fatalf("decrypt error = %v", err)
	}
	if plain != "SECRET" {
		t.Errorf("roundtrip = %q, want SECRET", plain)
	}
}

func TestRunDemo_Hashes(t *testing.T) {
	out, err := RunDemo("hash_function", DemoInput{Text: "abc"})
	if err != nil {
		t.Fatalf("RunDemo() error = %v", err)
	}

	// well-known digests of "abc"
	if out["md5"] != "900150983cd24fb0d6963f7d28e17f72" {
		t.Errorf("md5 = %q", out["md5"])
	}
	if out["sha1"] != "a9993e364706816aba3e25717850c26c9cd0d89d" {
		t.Errorf("sha1 = %q", out["sha1"])
	}
	if out["sha256"] != "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad" {
		t.Errorf("sha256 = %q", out["sha256"])
	}
}

func TestRunDemo_DESRoundtrip(t *testing.T) {
	enc, err := RunDemo("des_algorithm", DemoInput{Text: "block cipher demo", Key: "8charkey"})
	if err != nil {
		t.Fatalf("encrypt error = %v", err)
	}
	dec, err := RunDemo("des_algorithm", DemoInput{Text: enc["output"], Key: "8charkey", Mode: "decrypt"})
	if err != nil {
		t.Fatalf("decrypt error = %v", err)
	}
	if dec["output"] != "block cipher demo" {
		t.Errorf("roundtrip = %q", dec["output"])
	}
}

func TestRunDemo_DESValidation(t *testing.T) {
	if _, err := RunDemo("des_algorithm", DemoInput{Text: "hi", Key: "short"}); err == nil {
		t.Error("non-8-character key should be rejected")
	}
	if _, err := RunDemo("des_algorithm", DemoInput{Text: "not base64!!!", Key: "8charkey", Mode: "decrypt"}); err == nil {
		t.Error("non-base64 ciphertext should be rejected")
	}
}

func TestRunDemo_AESRoundtrip(t *testing.T) {
	enc, err := RunDemo("aes_algorithm", DemoInput{Text: "modern cipher demo", Key: "classroom-key"})
	if err != nil {
		t.Fatalf("encrypt error = %v", err)
	}
	dec, err := RunDemo("aes_algorithm", DemoInput{Text: enc["output"], Key: "classroom-key", Mode: "decrypt"})
	if err != nil {
		t.Fatalf("decrypt error = %v", err)
	}
	if dec["output"] != "modern cipher demo" {
		t.Errorf("roundtrip = %q", dec["output"])
	}

	// wrong key fails authenticated decryption
	if _, err := RunDemo("aes_algorithm", DemoInput{Text: enc["output"], Key: "wrong-key", Mode: "decrypt"}); err == nil {
		t.Error("wrong key should fail to decrypt")
	}
}

func TestRunDemo_HMAC(t *testing.T) {
	out, err := RunDemo("message_auth", DemoInput{Text: "message", Key: "shared"})
	if err != nil {
		t.Fatalf("RunDemo() error = %v", err)
	}
	tag := out["tag"]
	if tag != ComputeHMAC("shared", "message") {
		t.Errorf("tag = %q, want deterministic HMAC", tag)
	}

	// verification against the correct tag
	verified, err := RunDemo("message_auth", DemoInput{Text: "message", Key: "shared", Tag: tag})
	if err != nil {
		t.Fatalf("verify error = %v", err)
	}
	if verified["verified"] != "true" {
		t.Errorf("verified = %q, want true", verified["verified"])
	}

	// a tampered message fails verification
	tampered, err := RunDemo("message_auth", DemoInput{Text: "message.", Key: "shared", Tag: tag})
	if err != nil {
		t.Fatalf("verify error = %v", err)
	}
	if tampered["verified"] != "false" {
		t.Errorf("tampered verified = %q, want false", tampered["verified"])
	}
}

func TestRunDemo_Signature(t *testing.T) {
	out, err := RunDemo("dsa_algorithm", DemoInput{Text: "sign me"})
	if err != nil {
		t.Fatalf("RunDemo() error = %v", err)
	}
	if out["verified"] != "true" {
		t.Errorf("verified = %q, want true", out["verified"])
	}
	if out["tampered_verified"] != "false" {
		t.Errorf("tampered_verified = %q, want false", out["tampered_verified"])
	}
	if out["signature"] == "" || out["digest"] == "" {
		t.Error("signature and digest should be present")
	}
}

func TestRunDemo_InputValidation(t *testing.T) {
	if _, err := RunDemo("no_such_module", DemoInput{Text: "x"}); err != ErrUnknownModule {
		t.Errorf("unknown slug error = %v, want ErrUnknownModule", err)
	}
	if _, err := RunDemo("shift_cipher", DemoInput{Text: "   "}); err == nil {
		t.Error("blank text should be rejected")
	}
	if _, err := RunDemo("shift_cipher", DemoInput{Text: strings.Repeat("a", 5000)}); err == nil {
		t.Error("oversized text should be rejected")
	}
}

func TestCatalog(t *testing.T) {
	if Count() != 8 {
		t.Fatalf("Count() = %d, want 8", Count())
	}

	slugs := []string{
		"mono_alphabetic", "shift_cipher", "one_time_pad", "hash_function",
		"des_algorithm", "aes_algorithm", "message_auth", "dsa_algorithm",
	}
	for _, slug := range slugs {
		m, ok := Find(slug)
		if !ok {
			t.Errorf("Find(%q) not found", slug)
			continue
		}
		if m.Name == "" || m.Description == "" || len(m.Sections) == 0 {
			t.Errorf("module %q is missing content", slug)
		}
	}

	if _, ok := Find("rsa_algorithm"); ok {
		t.Error("Find should reject slugs outside the catalog")
	}
	if ValidSlug("") {
		t.Error("empty slug should be invalid")
	}
}
