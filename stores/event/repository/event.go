package repository

import (
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"

	bCtx "github.com/openxmarket/goapi/base/ctx"
	"github.com/openxmarket/goapi/base/log"
	"github.com/openxmarket/goapi/domain"
	"github.com/openxmarket/goapi/domain/event"
	"github.com/openxmarket/goapi/service/query"
)

type impl struct {
	q query.Mongo
}

func New(q query.Mongo) event.Repo {
	return &impl{q: q}
}

func (im *impl) Insert(ctx bCtx.Ctx, ev *event.MarketplaceEvent) error {
	if ev.Id == "" {
		ev.Id = uuid.New().String()
	}
	if ev.CreatedAt.IsZero() {
		ev.CreatedAt = time.Now()
	}
	ev.Seller = ev.Seller.ToLower()
	ev.Buyer = ev.Buyer.ToLower()
	if err := im.q.Insert(ctx, domain.TableMarketplaceEvents, ev); err != nil {
		ctx.WithFields(log.Fields{
			"event": ev,
			"err":   err,
		}).Error("q.Insert failed")
		return err
	}
	return nil
}

func (im *impl) FindAll(ctx bCtx.Ctx, optFns ...event.FindAllOptionsFunc) ([]*event.MarketplaceEvent, error) {
	opts, err := event.GetFindAllOptions(optFns...)
	if err != nil {
		ctx.WithField("err", err).Error("event.GetFindAllOptions failed")
		return nil, err
	}

	offset := 0
	limit := 0
	if opts.Offset != nil {
		offset = int(*opts.Offset)
	}
	if opts.Limit != nil {
		limit = int(*opts.Limit)
	}

	selector := bson.M{}
	if opts.Type != nil {
		selector["type"] = *opts.Type
	}
	if opts.ListingId != nil {
		selector["listingId"] = *opts.ListingId
	}

	res := []*event.MarketplaceEvent{}
	if err := im.q.Search(ctx, domain.TableMarketplaceEvents, offset, limit, "-createdAt", selector, &res); err != nil {
		ctx.WithFields(log.Fields{
			"selector": selector,
			"err":      err,
		}).Error("q.Search failed")
		return nil, err
	}
	return res, nil
}
