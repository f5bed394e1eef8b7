package usecase

import (
	"math/big"

	"github.com/openxmarket/goapi/base/ctx"
	"github.com/openxmarket/goapi/base/log"
	"github.com/openxmarket/goapi/domain"
	"github.com/openxmarket/goapi/domain/payment"
)

type PaymentUseCaseCfg struct {
	BalanceRepo payment.BalanceRepo
}

type impl struct {
	balance payment.BalanceRepo
}

func New(cfg *PaymentUseCaseCfg) payment.ValueTransfer {
	return &impl{
		balance: cfg.BalanceRepo,
	}
}

func (im *impl) Send(c ctx.Ctx, from, to domain.Address, amount *big.Int) error {
	if amount.Sign() < 0 {
		return domain.ErrBadParamInput
	}
	if amount.Sign() == 0 {
		return nil
	}

	if err := im.balance.Debit(c, from, amount); err != nil {
		return err
	}

	if err := im.balance.Credit(c, to, amount); err != nil {
		// callers run sends inside a transaction, the debit rolls back with it
		c.WithFields(log.Fields{
			"from":   from,
			"to":     to,
			"amount": amount.String(),
			"err":    err,
		}).Error("balance.Credit failed after debit")
		return err
	}
	return nil
}

func (im *impl) Deposit(c ctx.Ctx, to domain.Address, amount *big.Int) error {
	if amount.Sign() <= 0 {
		return domain.ErrBadParamInput
	}
	return im.balance.Credit(c, to, amount)
}

func (im *impl) BalanceOf(c ctx.Ctx, address domain.Address) (*big.Int, error) {
	b, err := im.balance.Get(c, address)
	if err == domain.ErrNotFound {
		return big.NewInt(0), nil
	} else if err != nil {
		return nil, err
	}
	return domain.ParseAmount(b.Amount)
}
