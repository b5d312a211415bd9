package promo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/edenalpha687/pumpfun-trending-bot/internal/dexscreener"
	"github.com/edenalpha687/pumpfun-trending-bot/internal/payment"
	"github.com/edenalpha687/pumpfun-trending-bot/internal/solana"
)

// MetadataLookup resolves display metadata for a token.
type MetadataLookup interface {
	Lookup(ctx context.Context, mint string) (*dexscreener.TokenInfo, error)
}

// PaymentVerifier classifies a submitted txid.
type PaymentVerifier interface {
	Verify(ctx context.Context, txid string, expectedSOL float64) payment.Result
}

// Invoice tells the user where to pay and how much.
type Invoice struct {
	Wallet    string
	AmountSOL float64
	Package   Package
}

// Flow drives the paid-trending onboarding: collect a token, sell a package,
// verify the payment, and hand the result to the admin for approval. The
// chat layer translates its return values and sentinel errors into messages.
type Flow struct {
	sessions *SessionStore
	txids    *TxSet
	pending  *ActivationRegistry
	promos   *PromotionRegistry
	meta     MetadataLookup
	verifier PaymentVerifier

	payWallet string
	channelID string
	log       *slog.Logger
}

// NewFlow wires the onboarding flow.
func NewFlow(
	sessions *SessionStore,
	txids *TxSet,
	pending *ActivationRegistry,
	promos *PromotionRegistry,
	meta MetadataLookup,
	verifier PaymentVerifier,
	payWallet, channelID string,
	log *slog.Logger,
) *Flow {
	return &Flow{
		sessions:  sessions,
		txids:     txids,
		pending:   pending,
		promos:    promos,
		meta:      meta,
		verifier:  verifier,
		payWallet: payWallet,
		channelID: channelID,
		log:       log,
	}
}

// Begin starts (or restarts) the user's onboarding session.
func (f *Flow) Begin(userID int64) *Session {
	return f.sessions.Begin(userID)
}

// Session returns the user's current session, or nil.
func (f *Flow) Session(userID int64) *Session {
	return f.sessions.Get(userID)
}

// SubmitAddress handles free-text input while the session awaits a token
// address. The syntax check runs before any external call; only a
// syntactically valid address reaches the metadata lookup.
func (f *Flow) SubmitAddress(ctx context.Context, userID int64, text string) (*Session, error) {
	sess := f.sessions.Get(userID)
	if sess == nil || sess.State != StateAwaitAddress {
		return nil, ErrNoSession
	}

	if !solana.IsAddress(text) {
		return nil, ErrInvalidAddress
	}

	token, err := f.meta.Lookup(ctx, text)
	if err != nil {
		if errors.Is(err, dexscreener.ErrTokenNotFound) {
			return nil, ErrTokenNotFound
		}
		f.log.Warn("token lookup failed", "mint", text, "error", err)
		return nil, ErrLookupFailed
	}

	sess.Mint = text
	sess.Token = token
	sess.State = StateAwaitPackage
	f.sessions.Set(sess)

	f.log.Info("token accepted", "user_id", userID, "mint", text, "symbol", token.Symbol)
	return sess, nil
}

// SelectPackage fixes the price for the session and moves it to the payment
// step. Reselecting while already awaiting payment is allowed; the expected
// amount just moves with the choice.
func (f *Flow) SelectPackage(userID int64, packageID string) (*Invoice, error) {
	sess := f.sessions.Get(userID)
	if sess == nil || (sess.State != StateAwaitPackage && sess.State != StateAwaitPayment) {
		return nil, ErrNoSession
	}

	pkg, ok := PackageByID(packageID)
	if !ok {
		return nil, ErrUnknownPackage
	}

	sess.PackageID = pkg.ID
	sess.ExpectedSOL = pkg.PriceSOL
	sess.State = StateAwaitPayment
	f.sessions.Set(sess)

	return &Invoice{
		Wallet:    f.payWallet,
		AmountSOL: pkg.PriceSOL,
		Package:   pkg,
	}, nil
}

// SubmitPayment handles free-text input while the session awaits a txid.
// On success the txid is burned globally, a pending activation is registered
// under its ref, and the session is destroyed.
func (f *Flow) SubmitPayment(ctx context.Context, userID int64, text string) (*PendingActivation, error) {
	sess := f.sessions.Get(userID)
	if sess == nil || sess.State != StateAwaitPayment {
		return nil, ErrNoSession
	}

	txid := solana.ExtractTxID(text)
	if txid == "" {
		return nil, ErrPaymentRejected
	}

	if f.txids.Contains(txid) {
		return nil, ErrDuplicateTx
	}

	switch f.verifier.Verify(ctx, txid, sess.ExpectedSOL) {
	case payment.NotYetIndexed:
		return nil, ErrPaymentPending
	case payment.Rejected:
		return nil, ErrPaymentRejected
	}

	// The verifier runs lock-free, so two users can race the same txid past
	// the Contains pre-check. The insert is the authoritative gate.
	if !f.txids.CheckAndInsert(txid) {
		return nil, ErrDuplicateTx
	}

	p := PendingActivation{
		Ref:       NewRef(userID, txid),
		UserID:    userID,
		Mint:      sess.Mint,
		Token:     sess.Token,
		PackageID: sess.PackageID,
		PaidSOL:   sess.ExpectedSOL,
		TxID:      txid,
		CreatedAt: time.Now(),
	}
	f.pending.Register(p)
	f.sessions.Clear(userID)

	f.log.Info("payment accepted",
		"user_id", userID,
		"mint", p.Mint,
		"package", p.PackageID,
		"ref", string(p.Ref),
	)
	return &p, nil
}

// Approve consumes a pending activation and starts the promotion. Only the
// configured admin may approve; anyone else gets ErrUnauthorized. A ref
// already consumed (or never registered) yields ErrNotFound.
func (f *Flow) Approve(actorID int64, ref Ref) (*Promotion, error) {
	p, err := f.pending.Consume(ref, actorID)
	if err != nil {
		return nil, fmt.Errorf("consume %s: %w", ref, err)
	}

	promo := f.promos.Activate(p, f.channelID, time.Now())

	f.log.Info("promotion activated",
		"mint", promo.Mint,
		"package", promo.PackageID,
		"expires_at", promo.ExpiresAt,
	)
	return &promo, nil
}

// ActivePromotions lists the currently running promotions.
func (f *Flow) ActivePromotions() []Promotion {
	return f.promos.Active(time.Now())
}
