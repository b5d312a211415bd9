package payment

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/edenalpha687/pumpfun-trending-bot/internal/helius"
)

const payWallet = "PayWallet11111111111111111111111111111111111"

type fakeIndexer struct {
	txs []helius.Transaction
	err error
}

func (f *fakeIndexer) Transactions(ctx context.Context, signatures ...string) ([]helius.Transaction, error) {
	return f.txs, f.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func transferTx(to string, lamports int64) helius.Transaction {
	return helius.Transaction{
		Signature: "sig1",
		NativeTransfers: []helius.NativeTransfer{
			{FromUserAccount: "Payer", ToUserAccount: to, Amount: lamports},
		},
	}
}

func TestVerify(t *testing.T) {
	tests := []struct {
		name     string
		indexer  *fakeIndexer
		expected float64
		want     Result
	}{
		{
			name:     "no record yet",
			indexer:  &fakeIndexer{},
			expected: 3.10,
			want:     NotYetIndexed,
		},
		{
			name:     "transport failure",
			indexer:  &fakeIndexer{err: errors.New("connection refused")},
			expected: 3.10,
			want:     NotYetIndexed,
		},
		{
			name:     "exact amount",
			indexer:  &fakeIndexer{txs: []helius.Transaction{transferTx(payWallet, 3_100_000_000)}},
			expected: 3.10,
			want:     Confirmed,
		},
		{
			name:     "overpaid",
			indexer:  &fakeIndexer{txs: []helius.Transaction{transferTx(payWallet, 3_200_000_000)}},
			expected: 3.10,
			want:     Confirmed,
		},
		{
			name:     "short by a cent",
			indexer:  &fakeIndexer{txs: []helius.Transaction{transferTx(payWallet, 3_090_000_000)}},
			expected: 3.10,
			want:     Rejected,
		},
		{
			name:     "wrong destination",
			indexer:  &fakeIndexer{txs: []helius.Transaction{transferTx("SomeoneElse", 3_100_000_000)}},
			expected: 3.10,
			want:     Rejected,
		},
		{
			name: "no native transfers at all",
			indexer: &fakeIndexer{txs: []helius.Transaction{
				{Signature: "sig1"},
			}},
			expected: 3.10,
			want:     Rejected,
		},
		{
			name: "qualifying transfer among noise",
			indexer: &fakeIndexer{txs: []helius.Transaction{
				{
					Signature: "sig1",
					NativeTransfers: []helius.NativeTransfer{
						{ToUserAccount: "Fee", Amount: 5000},
						{ToUserAccount: payWallet, Amount: 2_100_000_000},
					},
				},
			}},
			expected: 2.10,
			want:     Confirmed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewVerifier(tt.indexer, payWallet, testLogger())
			got := v.Verify(context.Background(), "sig1", tt.expected)
			assert.Equal(t, tt.want, got)
		})
	}
}
