// Package txnid assigns transaction IDs like "TXN000042". The ID space is
// global across all customers, so the next ID is always derived by scanning
// every existing ID, not just the current customer's.
package txnid

import (
	"fmt"
	"strconv"
	"strings"
)

const prefix = "TXN"

// Format returns a transaction ID like "TXN000001". Sequences beyond six
// digits keep growing rather than wrapping.
func Format(seq int) string {
	return fmt.Sprintf("%s%06d", prefix, seq)
}

// Parse extracts the numeric sequence from a "TXN"+digits ID.
func Parse(id string) (int, error) {
	tail, ok := strings.CutPrefix(id, prefix)
	if !ok || tail == "" {
		return 0, fmt.Errorf("invalid transaction ID format: %q", id)
	}
	seq, err := strconv.Atoi(tail)
	if err != nil || seq < 0 {
		return 0, fmt.Errorf("invalid sequence in transaction ID %q", id)
	}
	return seq, nil
}

// Next returns the ID following the highest sequence among ids, ignoring
// anything that does not match the TXN+digits pattern. With no matching IDs
// it returns "TXN000001".
func Next(ids []string) string {
	maxSeq := 0
	for _, id := range ids {
		seq, err := Parse(id)
		if err != nil {
			continue
		}
		if seq > maxSeq {
			maxSeq = seq
		}
	}
	return Format(maxSeq + 1)
}
