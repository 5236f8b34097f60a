package id

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

const reversalPrefix = "reversal-of:"

// NewRef returns a fresh posting reference. UUIDv7 keeps references
// unique and time-sortable across processes.
func NewRef() string {
	return uuid.Must(uuid.NewV7()).String()
}

// ReversalRef returns the reference recorded on journal rows that
// reverse transaction txID, e.g. "reversal-of:42".
func ReversalRef(txID int64) string {
	return fmt.Sprintf("%s%d", reversalPrefix, txID)
}

// ParseReversalRef extracts the reversed transaction id from a
// reversal reference. ok is false when ref is not a reversal
// reference.
func ParseReversalRef(ref string) (txID int64, ok bool) {
	rest, found := strings.CutPrefix(ref, reversalPrefix)
	if !found {
		return 0, false
	}
	n, err := strconv.ParseInt(rest, 10, 64)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
