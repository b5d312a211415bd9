package promo

import "sync"

// TxSet is the global, append-only set of transaction ids already accepted
// as payment. A txid is never removed and never accepted twice, by any user.
type TxSet struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

// NewTxSet creates an empty TxSet.
func NewTxSet() *TxSet {
	return &TxSet{
		seen: make(map[string]struct{}),
	}
}

// Contains reports whether txid was already accepted.
func (t *TxSet) Contains(txid string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.seen[txid]
	return ok
}

// CheckAndInsert records txid, reporting false if it was already present.
// The check and the insert are one atomic step: of two concurrent callers
// with the same txid, exactly one gets true.
func (t *TxSet) CheckAndInsert(txid string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.seen[txid]; ok {
		return false
	}
	t.seen[txid] = struct{}{}
	return true
}
