package repository

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"

	bCtx "github.com/openxmarket/goapi/base/ctx"
	"github.com/openxmarket/goapi/base/database/mongoclient"
	"github.com/openxmarket/goapi/base/log"
	"github.com/openxmarket/goapi/domain"
	"github.com/openxmarket/goapi/domain/nft"
	"github.com/openxmarket/goapi/service/query"
)

type holdingImpl struct {
	q query.Mongo
}

func NewHolding(q query.Mongo) nft.HoldingRepo {
	return &holdingImpl{q: q}
}

func idSelector(id nft.Id) bson.M {
	id = id.ToLower()
	return bson.M{
		"chainId":    id.ChainId,
		"collection": id.Collection,
		"tokenId":    id.TokenId,
	}
}

func (im *holdingImpl) FindOne(ctx bCtx.Ctx, id nft.Id) (*nft.Holding, error) {
	res := &nft.Holding{}
	if err := im.q.FindOne(ctx, domain.TableNftHoldings, idSelector(id), res); err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		ctx.WithFields(log.Fields{"id": id, "err": err}).Error("q.FindOne failed")
		return nil, err
	}
	return res, nil
}

func (im *holdingImpl) FindAll(ctx bCtx.Ctx, optFns ...nft.FindAllOptionsFunc) ([]*nft.Holding, error) {
	opts, err := nft.GetFindAllOptions(optFns...)
	if err != nil {
		ctx.WithField("err", err).Error("nft.GetFindAllOptions failed")
		return nil, err
	}

	var (
		offset = 0
		limit  = 0
	)
	if opts.Offset != nil {
		offset = int(*opts.Offset)
	}
	if opts.Limit != nil {
		limit = int(*opts.Limit)
	}

	selector := bson.M{}
	if opts.Owner != nil {
		selector["owner"] = *opts.Owner
	}

	res := []*nft.Holding{}
	if err := im.q.Search(ctx, domain.TableNftHoldings, offset, limit, "_id", selector, &res); err != nil {
		ctx.WithFields(log.Fields{"selector": selector, "err": err}).Error("q.Search failed")
		return nil, err
	}
	return res, nil
}

func (im *holdingImpl) Upsert(ctx bCtx.Ctx, h *nft.Holding) error {
	h.Id = h.Id.ToLower()
	h.Owner = h.Owner.ToLower()
	h.Approved = h.Approved.ToLower()
	h.UpdatedAt = time.Now()
	if err := im.q.Upsert(ctx, domain.TableNftHoldings, idSelector(h.Id), h); err != nil {
		ctx.WithFields(log.Fields{"holding": h, "err": err}).Error("q.Upsert failed")
		return err
	}
	return nil
}

func (im *holdingImpl) Patch(ctx bCtx.Ctx, id nft.Id, p nft.HoldingPatchable) error {
	now := time.Now()
	p.UpdatedAt = &now
	update, err := mongoclient.MakeBsonM(&p)
	if err != nil {
		ctx.WithFields(log.Fields{"patchable": p, "err": err}).Error("mongoclient.MakeBsonM failed")
		return err
	}
	if err := im.q.Patch(ctx, domain.TableNftHoldings, idSelector(id), update); err == query.ErrNotFound {
		return domain.ErrNotFound
	} else if err != nil {
		ctx.WithFields(log.Fields{"id": id, "err": err}).Error("q.Patch failed")
		return err
	}
	return nil
}

func (im *holdingImpl) TransferOwner(ctx bCtx.Ctx, id nft.Id, from, to domain.Address) error {
	selector := idSelector(id)
	selector["owner"] = from.ToLower()

	update := bson.M{
		"owner":     to.ToLower(),
		"approved":  domain.Address(""),
		"updatedAt": time.Now(),
	}

	// the conditional selector makes the owner swap atomic, a concurrent
	// transfer that got there first leaves no matching document
	if err := im.q.Patch(ctx, domain.TableNftHoldings, selector, update); err == query.ErrNotFound {
		return domain.ErrNotOwner
	} else if err != nil {
		ctx.WithFields(log.Fields{"id": id, "from": from, "to": to, "err": err}).Error("q.Patch failed")
		return err
	}
	return nil
}
