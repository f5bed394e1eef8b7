package repository

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"

	bCtx "github.com/openxmarket/goapi/base/ctx"
	"github.com/openxmarket/goapi/base/log"
	"github.com/openxmarket/goapi/domain"
	"github.com/openxmarket/goapi/domain/marketplace"
	"github.com/openxmarket/goapi/service/query"
)

type impl struct {
	q query.Mongo
}

func New(q query.Mongo) marketplace.ConfigRepo {
	return &impl{q: q}
}

func (im *impl) Get(ctx bCtx.Ctx) (*marketplace.Config, error) {
	res := &marketplace.Config{}
	if err := im.q.FindOne(ctx, domain.TableMarketplaceConfigs, bson.M{"id": marketplace.DefaultConfigId}, res); err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		ctx.WithField("err", err).Error("q.FindOne failed")
		return nil, err
	}
	return res, nil
}

func (im *impl) Init(ctx bCtx.Ctx, cfg *marketplace.Config) error {
	if cfg.FeePercentage < 0 || cfg.FeePercentage > 100 {
		return domain.ErrInvalidFee
	}

	if _, err := im.Get(ctx); err == nil {
		// already initialized, the stored owner and fee win
		return nil
	} else if err != domain.ErrNotFound {
		return err
	}

	cfg.Id = marketplace.DefaultConfigId
	cfg.Owner = cfg.Owner.ToLower()
	cfg.UpdatedAt = time.Now()
	if err := im.q.Insert(ctx, domain.TableMarketplaceConfigs, cfg); err == query.ErrDuplicateKey {
		// concurrent init won the race
		return nil
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"config": cfg,
			"err":    err,
		}).Error("q.Insert failed")
		return err
	}
	return nil
}

func (im *impl) SetFeePercentage(ctx bCtx.Ctx, pct int32) error {
	selector := bson.M{"id": marketplace.DefaultConfigId}
	update := bson.M{"feePercentage": pct, "updatedAt": time.Now()}
	if err := im.q.Patch(ctx, domain.TableMarketplaceConfigs, selector, update); err == query.ErrNotFound {
		return domain.ErrNotFound
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"feePercentage": pct,
			"err":           err,
		}).Error("q.Patch failed")
		return err
	}
	return nil
}
