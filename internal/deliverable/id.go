package deliverable

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// NewID generates a time-ordered UUIDv7 string.
func NewID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("generate uuidv7: %w", err)
	}

	return id.String(), nil
}

const (
	shortIDLength = 12
	crockfordBase = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"
)

// ShortID derives a stable 12-char Crockford base32 code from the random bits
// of a UUIDv7, so records created in the same millisecond still get distinct
// codes. Ids that are not UUIDv7 (imported or hand-edited records) fall back to
// their first 12 characters, upper-cased.
func ShortID(id string) string {
	parsed, err := uuid.Parse(id)
	if err != nil || parsed.Version() != 7 {
		if len(id) > shortIDLength {
			id = id[:shortIDLength]
		}

		return strings.ToUpper(id)
	}

	return shortIDFromUUIDBits(parsed)
}

func shortIDFromUUIDBits(id uuid.UUID) string {
	// UUIDv7 layout (RFC 9562): 48-bit time, 4-bit version, 12-bit rand_a,
	// 2-bit variant, 62-bit rand_b. We use the high 60 random bits.
	randA := (uint16(id[6]&0x0f) << 8) | uint16(id[7])
	randB := (uint64(id[8]&0x3f) << 56) |
		(uint64(id[9]) << 48) |
		(uint64(id[10]) << 40) |
		(uint64(id[11]) << 32) |
		(uint64(id[12]) << 24) |
		(uint64(id[13]) << 16) |
		(uint64(id[14]) << 8) |
		uint64(id[15])

	top60 := (uint64(randA) << 48) | (randB >> 14)

	return encodeCrockfordBase32(top60)
}

func encodeCrockfordBase32(value uint64) string {
	var buf [shortIDLength]byte
	for i := shortIDLength - 1; i >= 0; i-- {
		buf[i] = crockfordBase[value&0x1f]
		value >>= 5
	}

	return string(buf[:])
}
