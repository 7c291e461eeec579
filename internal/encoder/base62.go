package encoder

import (
	"crypto/rand"
	"math/big"
)

const (
	// Base62Alphabet is the character set for generated codes
	Base62Alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"
	// DefaultLength is the length of a generated code
	DefaultLength = 6
	// MinLength is the minimum code length
	MinLength = 3
	// MaxLength is the maximum code length
	MaxLength = 50
)

// Base62Encoder generates random base62 codes
type Base62Encoder struct{}

// NewBase62Encoder creates a new Base62Encoder
func NewBase62Encoder() *Base62Encoder {
	return &Base62Encoder{}
}

// Random returns a uniformly random code of the given length
func (e *Base62Encoder) Random(length int) (string, error) {
	if length < MinLength || length > MaxLength {
		length = DefaultLength
	}

	result := make([]byte, length)
	alphabetLen := big.NewInt(int64(len(Base62Alphabet)))

	for i := range result {
		n, err := rand.Int(rand.Reader, alphabetLen)
		if err != nil {
			return "", err
		}
		result[i] = Base62Alphabet[n.Int64()]
	}

	return string(result), nil
}

// IsValid checks if s is an acceptable link code: 3-50 chars of [A-Za-z0-9-]
func (e *Base62Encoder) IsValid(s string) bool {
	if len(s) < MinLength || len(s) > MaxLength {
		return false
	}

	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
		case c >= 'A' && c <= 'Z':
		case c >= 'a' && c <= 'z':
		case c == '-':
		default:
			return false
		}
	}

	return true
}

// MaxCapacity returns the number of distinct codes of a given length
func (e *Base62Encoder) MaxCapacity(length int) uint64 {
	alphabetLen := uint64(len(Base62Alphabet))
	capacity := uint64(1)
	for i := 0; i < length; i++ {
		capacity *= alphabetLen
	}
	return capacity
}
