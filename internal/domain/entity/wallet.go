package entity

import (
	"fmt"

	errs "github.com/nmehta6/wallet-ledger/internal/domain/error"
)

// Wallet identifies one of the fixed sub-wallets carried by every user.
// The string value is the wire-level name used in API requests and as the
// database column name.
type Wallet string

// Sub-wallet kinds. WalletPrimary is the only wallet credited by funding;
// the others receive value exclusively through transfers.
const (
	WalletPrimary      Wallet = "balance"
	WalletAIAvatar     Wallet = "ai_avatar_balance"
	WalletMetaAd       Wallet = "meta_ad_balance"
	WalletDataScrap    Wallet = "data_scrap_balance"
	WalletBroadcastBot Wallet = "broadcast_bot_balance"
)

// allWallets is the closed whitelist; map keys double as the wire names.
var allWallets = map[Wallet]struct{}{
	WalletPrimary:      {},
	WalletAIAvatar:     {},
	WalletMetaAd:       {},
	WalletDataScrap:    {},
	WalletBroadcastBot: {},
}

// Wallets returns every valid sub-wallet in a stable order.
func Wallets() []Wallet {
	return []Wallet{
		WalletPrimary,
		WalletAIAvatar,
		WalletMetaAd,
		WalletDataScrap,
		WalletBroadcastBot,
	}
}

// ParseWallet maps a wire-level wallet name to its enum value.
// Unknown names are rejected before any store access.
func ParseWallet(name string) (Wallet, error) {
	w := Wallet(name)
	if _, ok := allWallets[w]; !ok {
		return "", fmt.Errorf("%w: %s", errs.ErrInvalidWallet, name)
	}
	return w, nil
}

// IsValid reports whether the wallet is one of the whitelisted kinds.
func (w Wallet) IsValid() bool {
	_, ok := allWallets[w]
	return ok
}

// String returns the wire-level name of the wallet.
func (w Wallet) String() string {
	return string(w)
}
