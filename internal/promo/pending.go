package promo

import (
	"strconv"
	"sync"
	"time"

	"github.com/edenalpha687/pumpfun-trending-bot/internal/dexscreener"
)

// Ref keys a verified payment awaiting admin approval. It is derived from
// the paying user's id and the tail of the txid, so the same construction
// always yields the same key while refs of different users never collide.
type Ref string

const refTxSuffixLen = 6

// NewRef derives the approval reference for a user's payment.
func NewRef(userID int64, txid string) Ref {
	suffix := txid
	if len(suffix) > refTxSuffixLen {
		suffix = suffix[len(suffix)-refTxSuffixLen:]
	}
	return Ref(strconv.FormatInt(userID, 10) + "_" + suffix)
}

// PendingActivation is a verified payment waiting for admin approval.
type PendingActivation struct {
	Ref       Ref
	UserID    int64
	Mint      string
	Token     *dexscreener.TokenInfo
	PackageID string
	PaidSOL   float64
	TxID      string
	CreatedAt time.Time
}

// ActivationRegistry hands each verified payment to the configured admin
// exactly once.
type ActivationRegistry struct {
	mu      sync.Mutex
	adminID int64
	pending map[Ref]PendingActivation
}

// NewActivationRegistry creates a registry whose records only adminID may
// consume.
func NewActivationRegistry(adminID int64) *ActivationRegistry {
	return &ActivationRegistry{
		adminID: adminID,
		pending: make(map[Ref]PendingActivation),
	}
}

// Register stores a pending activation, overwriting any record under the
// same ref.
func (r *ActivationRegistry) Register(p PendingActivation) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pending[p.Ref] = p
}

// Consume removes and returns the record for ref. The remove and the return
// are one atomic step, so of two concurrent consumers exactly one gets the
// record and the other ErrNotFound. Actors other than the configured admin
// get ErrUnauthorized and learn nothing about the ref.
func (r *ActivationRegistry) Consume(ref Ref, actorID int64) (PendingActivation, error) {
	if actorID != r.adminID {
		return PendingActivation{}, ErrUnauthorized
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.pending[ref]
	if !ok {
		return PendingActivation{}, ErrNotFound
	}
	delete(r.pending, ref)
	return p, nil
}
