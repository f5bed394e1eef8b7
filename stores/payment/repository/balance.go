package repository

import (
	"math/big"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/xerrors"

	bCtx "github.com/openxmarket/goapi/base/ctx"
	"github.com/openxmarket/goapi/base/log"
	"github.com/openxmarket/goapi/domain"
	"github.com/openxmarket/goapi/domain/payment"
	"github.com/openxmarket/goapi/service/query"
)

// casRetries bounds the optimistic update loop under write contention
const casRetries = 5

var errCasExhausted = xerrors.New("balance update retries exhausted")

type balanceImpl struct {
	q query.Mongo
}

func NewBalance(q query.Mongo) payment.BalanceRepo {
	return &balanceImpl{q: q}
}

func (im *balanceImpl) Get(ctx bCtx.Ctx, address domain.Address) (*payment.Balance, error) {
	res := &payment.Balance{}
	if err := im.q.FindOne(ctx, domain.TableBalances, bson.M{"address": address.ToLower()}, res); err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		ctx.WithFields(log.Fields{"address": address, "err": err}).Error("q.FindOne failed")
		return nil, err
	}
	return res, nil
}

func (im *balanceImpl) Credit(ctx bCtx.Ctx, address domain.Address, amount *big.Int) error {
	if amount.Sign() < 0 {
		return domain.ErrBadParamInput
	}
	if amount.Sign() == 0 {
		return nil
	}

	address = address.ToLower()
	for i := 0; i < casRetries; i++ {
		cur, err := im.Get(ctx, address)
		if err == domain.ErrNotFound {
			b := &payment.Balance{
				Address:   address,
				Amount:    amount.String(),
				UpdatedAt: time.Now(),
			}
			if err := im.q.Insert(ctx, domain.TableBalances, b); err == query.ErrDuplicateKey {
				// concurrent insert won, retry the cas path
				continue
			} else if err != nil {
				ctx.WithFields(log.Fields{"balance": b, "err": err}).Error("q.Insert failed")
				return err
			}
			return nil
		} else if err != nil {
			return err
		}

		old, err := domain.ParseAmount(cur.Amount)
		if err != nil {
			ctx.WithFields(log.Fields{"balance": cur, "err": err}).Error("stored amount corrupt")
			return err
		}

		if err := im.swapAmount(ctx, address, cur.Amount, new(big.Int).Add(old, amount).String()); err == query.ErrNotFound {
			// amount changed underneath, retry
			continue
		} else if err != nil {
			return err
		}
		return nil
	}
	return errCasExhausted
}

func (im *balanceImpl) Debit(ctx bCtx.Ctx, address domain.Address, amount *big.Int) error {
	if amount.Sign() < 0 {
		return domain.ErrBadParamInput
	}
	if amount.Sign() == 0 {
		return nil
	}

	address = address.ToLower()
	for i := 0; i < casRetries; i++ {
		cur, err := im.Get(ctx, address)
		if err == domain.ErrNotFound {
			return domain.ErrInsufficientFunds
		} else if err != nil {
			return err
		}

		old, err := domain.ParseAmount(cur.Amount)
		if err != nil {
			ctx.WithFields(log.Fields{"balance": cur, "err": err}).Error("stored amount corrupt")
			return err
		}

		if old.Cmp(amount) < 0 {
			return domain.ErrInsufficientFunds
		}

		if err := im.swapAmount(ctx, address, cur.Amount, new(big.Int).Sub(old, amount).String()); err == query.ErrNotFound {
			continue
		} else if err != nil {
			return err
		}
		return nil
	}
	return errCasExhausted
}

// swapAmount replaces the stored amount only when it still equals old
func (im *balanceImpl) swapAmount(ctx bCtx.Ctx, address domain.Address, old, new string) error {
	selector := bson.M{"address": address, "amount": old}
	update := bson.M{"amount": new, "updatedAt": time.Now()}
	return im.q.Patch(ctx, domain.TableBalances, selector, update)
}
