package promo

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edenalpha687/pumpfun-trending-bot/internal/dexscreener"
	"github.com/edenalpha687/pumpfun-trending-bot/internal/payment"
)

const (
	validMint = "7xKXtg2CW87d97TXJSDpbD5jBkheTqA83TZRuJosgAsU"
	payWallet = "PayWallet11111111111111111111111111111111111"
)

type fakeLookup struct {
	calls int
	info  *dexscreener.TokenInfo
	err   error
}

func (f *fakeLookup) Lookup(ctx context.Context, mint string) (*dexscreener.TokenInfo, error) {
	f.calls++
	return f.info, f.err
}

type fakeVerifier struct {
	calls  int
	result payment.Result
}

func (f *fakeVerifier) Verify(ctx context.Context, txid string, expectedSOL float64) payment.Result {
	f.calls++
	return f.result
}

type flowDeps struct {
	flow     *Flow
	lookup   *fakeLookup
	verifier *fakeVerifier
	pending  *ActivationRegistry
	promos   *PromotionRegistry
	txids    *TxSet
	sessions *SessionStore
}

func newFlowDeps() *flowDeps {
	d := &flowDeps{
		lookup: &fakeLookup{
			info: &dexscreener.TokenInfo{Name: "Pump Token", Symbol: "PUMP"},
		},
		verifier: &fakeVerifier{result: payment.Confirmed},
		sessions: NewSessionStore(),
		txids:    NewTxSet(),
		pending:  NewActivationRegistry(adminID),
		promos:   NewPromotionRegistry(0),
	}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	d.flow = NewFlow(d.sessions, d.txids, d.pending, d.promos,
		d.lookup, d.verifier, payWallet, "@channel", log)
	return d
}

// Walks a user up to the payment step.
func (d *flowDeps) toPaymentStep(t *testing.T, userID int64) {
	t.Helper()
	ctx := context.Background()

	d.flow.Begin(userID)
	_, err := d.flow.SubmitAddress(ctx, userID, validMint)
	require.NoError(t, err)
	inv, err := d.flow.SelectPackage(userID, "6h")
	require.NoError(t, err)
	require.Equal(t, 3.10, inv.AmountSOL)
	require.Equal(t, payWallet, inv.Wallet)
}

func TestFlowEndToEnd(t *testing.T) {
	d := newFlowDeps()
	ctx := context.Background()

	d.toPaymentStep(t, 42)

	p, err := d.flow.SubmitPayment(ctx, 42, "abc123")
	require.NoError(t, err)
	assert.Equal(t, Ref("42_abc123"), p.Ref)
	assert.Equal(t, validMint, p.Mint)
	assert.Equal(t, "6h", p.PackageID)
	assert.Equal(t, 3.10, p.PaidSOL)

	// Session is gone; further input is a no-op.
	assert.Nil(t, d.flow.Session(42))
	_, err = d.flow.SubmitPayment(ctx, 42, "def456")
	assert.ErrorIs(t, err, ErrNoSession)

	// Any user replaying the consumed txid is rejected as duplicate.
	d.toPaymentStep(t, 77)
	_, err = d.flow.SubmitPayment(ctx, 77, "abc123")
	assert.ErrorIs(t, err, ErrDuplicateTx)

	// Admin approves exactly once.
	pr, err := d.flow.Approve(adminID, p.Ref)
	require.NoError(t, err)
	assert.Equal(t, validMint, pr.Mint)
	assert.Equal(t, "@channel", pr.ChannelID)

	_, err = d.flow.Approve(adminID, p.Ref)
	assert.ErrorIs(t, err, ErrNotFound)

	require.Len(t, d.flow.ActivePromotions(), 1)
}

func TestSubmitAddressRejectsBeforeLookup(t *testing.T) {
	d := newFlowDeps()
	ctx := context.Background()
	d.flow.Begin(42)

	for _, bad := range []string{
		validMint[:31],                // 31 chars
		validMint + "U",               // 45 chars
		"0" + validMint[1:],           // contains 0
		"not an address",
	} {
		_, err := d.flow.SubmitAddress(ctx, 42, bad)
		assert.ErrorIs(t, err, ErrInvalidAddress, bad)
	}

	// None of the rejects reached the external lookup.
	assert.Equal(t, 0, d.lookup.calls)
}

func TestSubmitAddressTokenNotFound(t *testing.T) {
	d := newFlowDeps()
	d.lookup.info = nil
	d.lookup.err = dexscreener.ErrTokenNotFound
	ctx := context.Background()
	d.flow.Begin(42)

	_, err := d.flow.SubmitAddress(ctx, 42, validMint)
	assert.ErrorIs(t, err, ErrTokenNotFound)

	// Still awaiting an address.
	assert.Equal(t, StateAwaitAddress, d.flow.Session(42).State)
}

func TestSubmitAddressLookupTransportFailure(t *testing.T) {
	d := newFlowDeps()
	d.lookup.info = nil
	d.lookup.err = errors.New("connection reset")
	ctx := context.Background()
	d.flow.Begin(42)

	_, err := d.flow.SubmitAddress(ctx, 42, validMint)
	assert.ErrorIs(t, err, ErrLookupFailed)
	assert.Equal(t, StateAwaitAddress, d.flow.Session(42).State)
}

func TestSelectPackageUnknown(t *testing.T) {
	d := newFlowDeps()
	ctx := context.Background()
	d.flow.Begin(42)
	_, err := d.flow.SubmitAddress(ctx, 42, validMint)
	require.NoError(t, err)

	_, err = d.flow.SelectPackage(42, "48h")
	assert.ErrorIs(t, err, ErrUnknownPackage)
	assert.Equal(t, StateAwaitPackage, d.flow.Session(42).State)
}

func TestSubmitPaymentNotYetIndexed(t *testing.T) {
	d := newFlowDeps()
	d.verifier.result = payment.NotYetIndexed
	ctx := context.Background()
	d.toPaymentStep(t, 42)

	_, err := d.flow.SubmitPayment(ctx, 42, "abc123")
	assert.ErrorIs(t, err, ErrPaymentPending)

	// Nothing consumed: the same txid can be resubmitted once indexed.
	d.verifier.result = payment.Confirmed
	_, err = d.flow.SubmitPayment(ctx, 42, "abc123")
	assert.NoError(t, err)
}

func TestSubmitPaymentRejected(t *testing.T) {
	d := newFlowDeps()
	d.verifier.result = payment.Rejected
	ctx := context.Background()
	d.toPaymentStep(t, 42)

	_, err := d.flow.SubmitPayment(ctx, 42, "abc123")
	assert.ErrorIs(t, err, ErrPaymentRejected)

	// A different txid still goes through.
	d.verifier.result = payment.Confirmed
	_, err = d.flow.SubmitPayment(ctx, 42, "def456")
	assert.NoError(t, err)
}

func TestSubmitPaymentDuplicateSkipsVerifier(t *testing.T) {
	d := newFlowDeps()
	ctx := context.Background()
	d.toPaymentStep(t, 42)

	_, err := d.flow.SubmitPayment(ctx, 42, "abc123")
	require.NoError(t, err)
	verifierCalls := d.verifier.calls

	d.toPaymentStep(t, 77)
	_, err = d.flow.SubmitPayment(ctx, 77, "abc123")
	assert.ErrorIs(t, err, ErrDuplicateTx)
	assert.Equal(t, verifierCalls, d.verifier.calls)
}

func TestSubmitPaymentUnwrapsExplorerLink(t *testing.T) {
	d := newFlowDeps()
	ctx := context.Background()
	d.toPaymentStep(t, 42)

	p, err := d.flow.SubmitPayment(ctx, 42, "https://solscan.io/tx/abc123?cluster=mainnet")
	require.NoError(t, err)
	assert.Equal(t, "abc123", p.TxID)
}

func TestApproveUnauthorized(t *testing.T) {
	d := newFlowDeps()
	ctx := context.Background()
	d.toPaymentStep(t, 42)
	p, err := d.flow.SubmitPayment(ctx, 42, "abc123")
	require.NoError(t, err)

	_, err = d.flow.Approve(42, p.Ref)
	assert.ErrorIs(t, err, ErrUnauthorized)

	// The record survived for the real admin.
	_, err = d.flow.Approve(adminID, p.Ref)
	assert.NoError(t, err)
}

func TestOutOfStateInputIsNoOp(t *testing.T) {
	d := newFlowDeps()
	ctx := context.Background()

	// No session at all.
	_, err := d.flow.SubmitAddress(ctx, 42, validMint)
	assert.ErrorIs(t, err, ErrNoSession)
	_, err = d.flow.SubmitPayment(ctx, 42, "abc123")
	assert.ErrorIs(t, err, ErrNoSession)
	_, err = d.flow.SelectPackage(42, "6h")
	assert.ErrorIs(t, err, ErrNoSession)

	// Wrong state: txid sent while awaiting an address.
	d.flow.Begin(42)
	_, err = d.flow.SubmitPayment(ctx, 42, "abc123")
	assert.ErrorIs(t, err, ErrNoSession)
}
