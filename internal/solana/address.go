package solana

import (
	"regexp"
	"strings"
)

// LamportsPerSOL is the number of base units in one SOL.
const LamportsPerSOL = 1_000_000_000

// Base58 alphabet without 0, O, I, l; mint addresses are 32-44 chars.
var addrRegex = regexp.MustCompile(`^[1-9A-HJ-NP-Za-km-z]{32,44}$`)

// IsAddress reports whether s is syntactically a Solana address.
func IsAddress(s string) bool {
	return addrRegex.MatchString(s)
}

// LamportsToSOL converts lamports to SOL.
func LamportsToSOL(lamports int64) float64 {
	return float64(lamports) / LamportsPerSOL
}

// ExtractTxID pulls a transaction signature out of user input. Users often
// paste explorer links (solscan.io/tx/<sig>), so the last path segment wins;
// bare signatures pass through unchanged.
func ExtractTxID(text string) string {
	s := strings.TrimSpace(text)
	if i := strings.IndexAny(s, "?#"); i >= 0 {
		s = s[:i]
	}
	s = strings.TrimSuffix(s, "/")
	if i := strings.LastIndex(s, "/"); i >= 0 {
		s = s[i+1:]
	}
	return s
}
