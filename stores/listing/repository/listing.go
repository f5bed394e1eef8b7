package repository

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"

	bCtx "github.com/openxmarket/goapi/base/ctx"
	"github.com/openxmarket/goapi/base/database/mongoclient"
	"github.com/openxmarket/goapi/base/log"
	"github.com/openxmarket/goapi/domain"
	"github.com/openxmarket/goapi/domain/listing"
	"github.com/openxmarket/goapi/service/query"
)

// listingCounterId keys the id allocation document in the counters table
const listingCounterId = "listings"

type counter struct {
	Id  string `bson:"id"`
	Seq uint64 `bson:"seq"`
}

type impl struct {
	q query.Mongo
}

func New(q query.Mongo) listing.Repo {
	return &impl{q: q}
}

func (im *impl) NextId(ctx bCtx.Ctx) (domain.ListingId, error) {
	res := &counter{}
	if err := im.q.Increment(ctx, domain.TableCounters, bson.M{"id": listingCounterId}, res, "seq", 1); err != nil {
		ctx.WithField("err", err).Error("q.Increment failed")
		return 0, err
	}
	return domain.ListingId(res.Seq), nil
}

func (im *impl) TotalAllocated(ctx bCtx.Ctx) (uint64, error) {
	res := &counter{}
	if err := im.q.FindOne(ctx, domain.TableCounters, bson.M{"id": listingCounterId}, res); err == query.ErrNotFound {
		return 0, nil
	} else if err != nil {
		ctx.WithField("err", err).Error("q.FindOne failed")
		return 0, err
	}
	return res.Seq, nil
}

func (im *impl) Insert(ctx bCtx.Ctx, l *listing.Listing) error {
	l.LowerCase()
	if err := im.q.Insert(ctx, domain.TableListings, l); err != nil {
		ctx.WithFields(log.Fields{
			"listing": l,
			"err":     err,
		}).Error("q.Insert failed")
		return err
	}
	return nil
}

func (im *impl) FindOne(ctx bCtx.Ctx, id domain.ListingId) (*listing.Listing, error) {
	res := &listing.Listing{}
	if err := im.q.FindOne(ctx, domain.TableListings, bson.M{"id": id}, res); err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"id":  id,
			"err": err,
		}).Error("q.FindOne failed")
		return nil, err
	}
	return res, nil
}

func (im *impl) FindAll(ctx bCtx.Ctx, optFns ...listing.FindAllOptionsFunc) ([]*listing.Listing, error) {
	opts, err := listing.GetFindAllOptions(optFns...)
	if err != nil {
		ctx.WithField("err", err).Error("listing.GetFindAllOptions failed")
		return nil, err
	}

	offset := 0
	limit := 0
	sort := "id"
	if opts.Offset != nil {
		offset = int(*opts.Offset)
	}
	if opts.Limit != nil {
		limit = int(*opts.Limit)
	}
	if opts.Sort != nil {
		sort = *opts.Sort
	}

	selector := bson.M{}
	if opts.Seller != nil {
		selector["seller"] = *opts.Seller
	}
	if opts.Active != nil {
		selector["active"] = *opts.Active
	}

	res := []*listing.Listing{}
	if err := im.q.Search(ctx, domain.TableListings, offset, limit, sort, selector, &res); err != nil {
		ctx.WithFields(log.Fields{
			"selector": selector,
			"err":      err,
		}).Error("q.Search failed")
		return nil, err
	}
	return res, nil
}

func (im *impl) Patch(ctx bCtx.Ctx, id domain.ListingId, p listing.Patchable) error {
	update, err := mongoclient.MakeBsonM(p)
	if err != nil {
		ctx.WithFields(log.Fields{
			"patchable": p,
			"err":       err,
		}).Error("mongoclient.MakeBsonM failed")
		return err
	}
	if err := im.q.Patch(ctx, domain.TableListings, bson.M{"id": id}, update); err == query.ErrNotFound {
		return domain.ErrNotFound
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"id":  id,
			"err": err,
		}).Error("q.Patch failed")
		return err
	}
	return nil
}

func (im *impl) Deactivate(ctx bCtx.Ctx, id domain.ListingId) error {
	// the active flag in the selector makes the first writer win
	selector := bson.M{"id": id, "active": true}
	update := bson.M{"active": false, "updatedAt": time.Now()}
	if err := im.q.Patch(ctx, domain.TableListings, selector, update); err == query.ErrNotFound {
		return domain.ErrNotActive
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"id":  id,
			"err": err,
		}).Error("q.Patch failed")
		return err
	}
	return nil
}
