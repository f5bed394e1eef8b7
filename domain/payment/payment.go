package payment

import (
	"math/big"
	"time"

	"github.com/openxmarket/goapi/base/ctx"
	"github.com/openxmarket/goapi/domain"
)

// Balance is an account entry of the value transfer ledger. Amounts are
// base-10 integer strings in the smallest payment unit.
type Balance struct {
	Address   domain.Address `json:"address" bson:"address"`
	Amount    string         `json:"amount" bson:"amount"`
	UpdatedAt time.Time      `json:"updatedAt" bson:"updatedAt"`
}

type BalanceRepo interface {
	Get(c ctx.Ctx, address domain.Address) (*Balance, error)
	Credit(c ctx.Ctx, address domain.Address, amount *big.Int) error
	// Debit subtracts amount from the account, failing with
	// domain.ErrInsufficientFunds when the balance cannot cover it.
	Debit(c ctx.Ctx, address domain.Address, amount *big.Int) error
}

// ValueTransfer moves payment between accounts. Amounts are non-negative
// integers in the smallest payment unit.
type ValueTransfer interface {
	Send(c ctx.Ctx, from, to domain.Address, amount *big.Int) error
	Deposit(c ctx.Ctx, to domain.Address, amount *big.Int) error
	BalanceOf(c ctx.Ctx, address domain.Address) (*big.Int, error)
}
