package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"

	errs "github.com/nmehta6/wallet-ledger/internal/domain/error"
)

func TestParseWallet(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Wallet
		wantErr  bool
	}{
		{name: "primary wallet", input: "balance", expected: WalletPrimary},
		{name: "ai avatar wallet", input: "ai_avatar_balance", expected: WalletAIAvatar},
		{name: "meta ad wallet", input: "meta_ad_balance", expected: WalletMetaAd},
		{name: "data scrap wallet", input: "data_scrap_balance", expected: WalletDataScrap},
		{name: "broadcast bot wallet", input: "broadcast_bot_balance", expected: WalletBroadcastBot},
		{name: "unknown wallet", input: "savings", wantErr: true},
		{name: "empty name", input: "", wantErr: true},
		{name: "case sensitive", input: "Balance", wantErr: true},
		{name: "whitespace not trimmed", input: " balance", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := ParseWallet(tt.input)

			if tt.wantErr {
				assert.Error(t, err)
				assert.ErrorIs(t, err, errs.ErrInvalidWallet)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, w)
			assert.True(t, w.IsValid())
		})
	}
}

func TestWallets(t *testing.T) {
	wallets := Wallets()

	assert.Len(t, wallets, 5)
	assert.Equal(t, WalletPrimary, wallets[0])
	for _, w := range wallets {
		assert.True(t, w.IsValid())
	}
}
