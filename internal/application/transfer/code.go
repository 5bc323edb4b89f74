package transfer

import (
	"crypto/rand"
	"fmt"
	"time"
)

// codeAlphabet leaves out I, L, O and U so codes survive being read over the
// phone between outlets.
const codeAlphabet = "ABCDEFGHJKMNPQRSTVWXYZ0123456789"

const codeSuffixLen = 5

// GenerateCode derives a transfer code from the clock plus a random suffix,
// e.g. TR-240815143022-K7Q2M. Collisions are negligible but not assumed:
// the storage layer enforces uniqueness and the caller regenerates on a
// duplicate.
func GenerateCode(now time.Time) string {
	buf := make([]byte, codeSuffixLen)
	_, _ = rand.Read(buf)
	for i := range buf {
		buf[i] = codeAlphabet[int(buf[i])%len(codeAlphabet)]
	}
	return fmt.Sprintf("TR-%s-%s", now.Format("060102150405"), string(buf))
}
