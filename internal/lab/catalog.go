// Package lab holds the fixed catalog of educational modules and the small
// interactive demos attached to them. The catalog is immutable; the content
// router is a pure lookup over it.
package lab

// Section is one block of educational content on a module page.
type Section struct {
	Heading string
	Body    string
}

// Module describes one lab module.
type Module struct {
	Slug        string
	Name        string
	Description string
	Icon        string
	Color       string
	Sections    []Section
	DemoFields  []string // input fields the demo form renders
}

var modules = []Module{
	{
		Slug:        "mono_alphabetic",
		Name:        "Mono Alphabetic Cipher",
		Description: "Substitution Cipher",
		Icon:        "fas fa-key",
		Color:       "blue",
		DemoFields:  []string{"text", "key"},
		Sections: []Section{
			{
				Heading: "Overview",
				Body: "A mono-alphabetic substitution cipher replaces each letter of the " +
					"plaintext with a fixed different letter. The key is a permutation of the " +
					"alphabet, commonly derived from a keyword followed by the remaining letters.",
			},
			{
				Heading: "Security",
				Body: "Although there are 26! possible keys, letter-frequency analysis breaks " +
					"the cipher easily: the most common ciphertext letters line up with " +
					"E, T and A in English text.",
			},
		},
	},
	{
		Slug:        "shift_cipher",
		Name:        "Shift Cipher",
		Description: "Caesar Cipher",
		Icon:        "fas fa-exchange-alt",
		Color:       "green",
		DemoFields:  []string{"text", "shift"},
		Sections: []Section{
			{
				Heading: "Overview",
				Body: "The shift (Caesar) cipher rotates every letter a fixed number of " +
					"positions through the alphabet. With a shift of 3, A becomes D and " +
					"Z wraps around to C.",
			},
			{
				Heading: "Security",
				Body: "Only 25 useful keys exist, so exhaustive search is immediate. The " +
					"cipher survives as the canonical first example of symmetric encryption.",
			},
		},
	},
	{
		Slug:        "one_time_pad",
		Name:        "One Time Pad",
		Description: "Perfect Secrecy",
		Icon:        "fas fa-shield-alt",
		Color:       "purple",
		DemoFields:  []string{"text", "key"},
		Sections: []Section{
			{
				Heading: "Overview",
				Body: "The one-time pad adds a truly random key of the same length as the " +
					"message, letter by letter modulo 26. Used once, it achieves perfect " +
					"secrecy: the ciphertext reveals nothing about the plaintext.",
			},
			{
				Heading: "Caveats",
				Body: "Perfect secrecy depends on the pad being random, as long as the " +
					"message, and never reused. Key reuse collapses the scheme, which is why " +
					"practical systems use stream ciphers seeded from short keys instead.",
			},
		},
	},
	{
		Slug:        "hash_function",
		Name:        "Hash Functions",
		Description: "Cryptographic Hashing",
		Icon:        "fas fa-fingerprint",
		Color:       "red",
		DemoFields:  []string{"text"},
		Sections: []Section{
			{
				Heading: "Overview",
				Body: "A cryptographic hash maps arbitrary input to a fixed-size digest. " +
					"Preimage resistance, second-preimage resistance and collision resistance " +
					"are the three defining properties.",
			},
			{
				Heading: "In practice",
				Body: "MD5 and SHA-1 are broken for collision resistance and shown here only " +
					"for comparison; SHA-256 remains the workhorse for integrity checks and " +
					"password-hash constructions such as PBKDF2.",
			},
		},
	},
	{
		Slug:        "des_algorithm",
		Name:        "DES Algorithm",
		Description: "Data Encryption Standard",
		Icon:        "fas fa-lock",
		Color:       "yellow",
		DemoFields:  []string{"text", "key"},
		Sections: []Section{
			{
				Heading: "Overview",
				Body: "DES is a 16-round Feistel block cipher with a 64-bit block and an " +
					"effective 56-bit key. Each round mixes half the block through expansion, " +
					"key addition, S-boxes and a permutation.",
			},
			{
				Heading: "Status",
				Body: "The 56-bit keyspace fell to brute force in the late 1990s. DES is " +
					"retained here as the clearest teaching example of Feistel structure; " +
					"AES replaced it for real use.",
			},
		},
	},
	{
		Slug:        "aes_algorithm",
		Name:        "AES Algorithm",
		Description: "Advanced Encryption Standard",
		Icon:        "fas fa-shield-virus",
		Color:       "indigo",
		DemoFields:  []string{"text", "key", "mode"},
		Sections: []Section{
			{
				Heading: "Overview",
				Body: "AES is a substitution-permutation network over a 4x4 byte state: " +
					"SubBytes, ShiftRows, MixColumns and AddRoundKey repeated for 10, 12 or 14 " +
					"rounds depending on key size.",
			},
			{
				Heading: "Modes",
				Body: "The demo uses AES-256-GCM, an authenticated mode that encrypts and " +
					"integrity-protects in one pass. The random nonce is prepended to the " +
					"ciphertext, which is why encrypting the same text twice differs.",
			},
		},
	},
	{
		Slug:        "message_auth",
		Name:        "Message Authentication",
		Description: "MACs and HMAC",
		Icon:        "fas fa-stamp",
		Color:       "pink",
		DemoFields:  []string{"text", "key", "tag"},
		Sections: []Section{
			{
				Heading: "Overview",
				Body: "A message authentication code binds a message to a shared secret key. " +
					"HMAC wraps a hash function with two keyed passes, defeating the " +
					"length-extension attacks that break naive hash(key||message) schemes.",
			},
			{
				Heading: "Verification",
				Body: "Tags must be compared in constant time. The demo computes " +
					"HMAC-SHA256 and, given an expected tag, verifies it the safe way.",
			},
		},
	},
	{
		Slug:        "dsa_algorithm",
		Name:        "DSA Algorithm",
		Description: "Digital Signatures",
		Icon:        "fas fa-signature",
		Color:       "teal",
		DemoFields:  []string{"text"},
		Sections: []Section{
			{
				Heading: "Overview",
				Body: "Digital signatures give authenticity without a shared secret: the " +
					"signer uses a private key, anyone verifies with the public key. DSA and " +
					"its elliptic-curve successor ECDSA sign a hash of the message.",
			},
			{
				Heading: "Demo",
				Body: "The demo generates an ephemeral P-256 key pair, signs the SHA-256 " +
					"digest of your message and verifies the signature, showing that a single " +
					"flipped bit invalidates it.",
			},
		},
	},
}

var bySlug = func() map[string]*Module {
	m := make(map[string]*Module, len(modules))
	for i := range modules {
		m[modules[i].Slug] = &modules[i]
	}
	return m
}()

// Modules returns the catalog in display order.
func Modules() []Module {
	return modules
}

// Count returns the number of lab modules.
func Count() int {
	return len(modules)
}

// Find looks a module up by slug.
func Find(slug string) (*Module, bool) {
	m, ok := bySlug[slug]
	return m, ok
}

// ValidSlug reports whether slug names a catalog module.
func ValidSlug(slug string) bool {
	_, ok := bySlug[slug]
	return ok
}
