package usecase

import (
	"math/big"
	"strconv"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	bCtx "github.com/openxmarket/goapi/base/ctx"
	"github.com/openxmarket/goapi/base/log"
	"github.com/openxmarket/goapi/base/ptr"
	"github.com/openxmarket/goapi/domain"
	"github.com/openxmarket/goapi/domain/event"
	"github.com/openxmarket/goapi/domain/keys"
	"github.com/openxmarket/goapi/domain/listing"
	"github.com/openxmarket/goapi/domain/marketplace"
	"github.com/openxmarket/goapi/domain/nft"
	"github.com/openxmarket/goapi/domain/payment"
	"github.com/openxmarket/goapi/service/cache"
	"github.com/openxmarket/goapi/service/cache/provider"
	"github.com/openxmarket/goapi/service/query"
)

const listingCacheTtl = 10 * time.Second

type ListingUseCaseCfg struct {
	ListingRepo listing.Repo
	EventRepo   event.Repo
	ConfigRepo  marketplace.ConfigRepo
	Authority   nft.Authority
	Payment     payment.ValueTransfer
	TxRunner    query.TxRunner
	// MarketplaceAddress is the operator sellers must approve before listing
	MarketplaceAddress domain.Address
	// CacheProvider backs the read through cache on single listing reads,
	// nil disables caching
	CacheProvider provider.Provider
}

type impl struct {
	listing     listing.Repo
	event       event.Repo
	config      marketplace.ConfigRepo
	authority   nft.Authority
	payment     payment.ValueTransfer
	txRunner    query.TxRunner
	marketplace domain.Address
	cache       cache.Service

	// buyLocks serializes settlement per listing id within the process,
	// the conditional deactivate keeps cross process buys exclusive
	buyLocks sync.Map
}

func New(cfg *ListingUseCaseCfg) listing.Usecase {
	im := &impl{
		listing:     cfg.ListingRepo,
		event:       cfg.EventRepo,
		config:      cfg.ConfigRepo,
		authority:   cfg.Authority,
		payment:     cfg.Payment,
		txRunner:    cfg.TxRunner,
		marketplace: cfg.MarketplaceAddress.ToLower(),
	}
	if cfg.CacheProvider != nil {
		im.cache = cache.New(cache.ServiceConfig{
			Ttl:   listingCacheTtl,
			Pfx:   keys.PfxListing,
			Cache: cfg.CacheProvider,
		})
	}
	return im
}

func cacheKey(id domain.ListingId) string {
	return strconv.FormatUint(uint64(id), 10)
}

func (im *impl) invalidate(c bCtx.Ctx, id domain.ListingId) {
	if im.cache == nil {
		return
	}
	if err := im.cache.Del(c, cacheKey(id)); err != nil {
		c.WithFields(log.Fields{
			"id":  id,
			"err": err,
		}).Error("cache.Del failed")
	}
}

func (im *impl) lockListing(id domain.ListingId) func() {
	v, _ := im.buyLocks.LoadOrStore(id, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

func (im *impl) CreateListing(c bCtx.Ctx, seller domain.Address, id nft.Id, price string) (*listing.Listing, error) {
	amount, err := parsePrice(price)
	if err != nil {
		return nil, err
	}

	owner, err := im.authority.OwnerOf(c, id)
	if err == domain.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		return nil, err
	}
	if !owner.Equals(seller) {
		return nil, domain.ErrNotOwner
	}

	approved, err := im.authority.IsApproved(c, id, seller, im.marketplace)
	if err != nil {
		return nil, err
	}
	if !approved {
		return nil, domain.ErrNotApproved
	}

	listingId, err := im.listing.NextId(c)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	l := &listing.Listing{
		Id:           listingId,
		Nft:          id.ToLower(),
		Seller:       seller.ToLower(),
		Price:        amount.String(),
		DisplayPrice: displayPrice(amount),
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	err = im.txRunner.RunWithTransaction(c, func(c bCtx.Ctx) error {
		if err := im.listing.Insert(c, l); err != nil {
			return err
		}
		return im.event.Insert(c, &event.MarketplaceEvent{
			Type:         event.TypeListingCreated,
			ListingId:    l.Id,
			Nft:          &l.Nft,
			Seller:       l.Seller,
			Price:        l.Price,
			DisplayPrice: l.DisplayPrice,
		})
	})
	if err != nil {
		c.WithFields(log.Fields{
			"listing": l,
			"err":     err,
		}).Error("create listing failed")
		return nil, err
	}
	return l, nil
}

func (im *impl) UpdateListingPrice(c bCtx.Ctx, caller domain.Address, id domain.ListingId, price string) (*listing.Listing, error) {
	l, err := im.listing.FindOne(c, id)
	if err != nil {
		return nil, err
	}
	if !l.Active {
		return nil, domain.ErrNotActive
	}
	if !l.Seller.Equals(caller) {
		return nil, domain.ErrNotSeller
	}

	amount, err := parsePrice(price)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	p := listing.Patchable{
		Price:        ptr.String(amount.String()),
		DisplayPrice: ptr.Float64(displayPrice(amount)),
		UpdatedAt:    &now,
	}
	l.Price = *p.Price
	l.DisplayPrice = *p.DisplayPrice
	l.UpdatedAt = now

	err = im.txRunner.RunWithTransaction(c, func(c bCtx.Ctx) error {
		if err := im.listing.Patch(c, id, p); err != nil {
			return err
		}
		return im.event.Insert(c, &event.MarketplaceEvent{
			Type:         event.TypeListingUpdated,
			ListingId:    l.Id,
			Nft:          &l.Nft,
			Seller:       l.Seller,
			Price:        l.Price,
			DisplayPrice: l.DisplayPrice,
		})
	})
	if err != nil {
		return nil, err
	}
	im.invalidate(c, id)
	return l, nil
}

func (im *impl) RemoveListing(c bCtx.Ctx, caller domain.Address, id domain.ListingId) error {
	l, err := im.listing.FindOne(c, id)
	if err != nil {
		return err
	}
	if !l.Seller.Equals(caller) {
		return domain.ErrNotSeller
	}

	err = im.txRunner.RunWithTransaction(c, func(c bCtx.Ctx) error {
		if err := im.listing.Deactivate(c, id); err != nil {
			return err
		}
		return im.event.Insert(c, &event.MarketplaceEvent{
			Type:      event.TypeListingRemoved,
			ListingId: l.Id,
			Nft:       &l.Nft,
			Seller:    l.Seller,
		})
	})
	if err != nil {
		return err
	}
	im.invalidate(c, id)
	return nil
}

func (im *impl) BuyListing(c bCtx.Ctx, buyer domain.Address, id domain.ListingId, pay string) (*listing.Sale, error) {
	offered, err := domain.ParseAmount(pay)
	if err != nil {
		return nil, domain.ErrInsufficientPayment
	}

	unlock := im.lockListing(id)
	defer unlock()

	l, err := im.listing.FindOne(c, id)
	if err != nil {
		return nil, err
	}
	if !l.Active {
		return nil, domain.ErrNotActive
	}

	price, err := domain.ParseAmount(l.Price)
	if err != nil {
		c.WithFields(log.Fields{
			"listing": l,
			"err":     err,
		}).Error("stored price corrupt")
		return nil, err
	}
	// the buyer is charged the listed price, any excess offer stays untouched
	if offered.Cmp(price) < 0 {
		return nil, domain.ErrInsufficientPayment
	}

	cfg, err := im.config.Get(c)
	if err != nil {
		return nil, err
	}
	feeAmount := feeOf(price, cfg.FeePercentage)
	sellerAmount := new(big.Int).Sub(price, feeAmount)

	sale := &listing.Sale{
		ListingId:    l.Id,
		Nft:          l.Nft,
		Seller:       l.Seller,
		Buyer:        buyer.ToLower(),
		Price:        price.String(),
		FeeAmount:    feeAmount.String(),
		SellerAmount: sellerAmount.String(),
	}

	// the sold record joins the transaction, settlement and its notification
	// commit or roll back together
	err = im.txRunner.RunWithTransaction(c, func(c bCtx.Ctx) error {
		if err := im.listing.Deactivate(c, id); err != nil {
			return err
		}
		if err := im.authority.Transfer(c, l.Nft, im.marketplace, l.Seller, buyer); err != nil {
			return err
		}
		if err := im.payment.Send(c, buyer, cfg.Owner, feeAmount); err != nil {
			return err
		}
		if err := im.payment.Send(c, buyer, l.Seller, sellerAmount); err != nil {
			return err
		}
		return im.event.Insert(c, &event.MarketplaceEvent{
			Type:         event.TypeSold,
			ListingId:    sale.ListingId,
			Nft:          &sale.Nft,
			Seller:       sale.Seller,
			Buyer:        sale.Buyer,
			Price:        sale.Price,
			DisplayPrice: l.DisplayPrice,
		})
	})
	if err != nil {
		c.WithFields(log.Fields{
			"id":    id,
			"buyer": buyer,
			"err":   err,
		}).Error("settlement failed")
		return nil, err
	}
	im.invalidate(c, id)

	return sale, nil
}

func (im *impl) SetFeePercentage(c bCtx.Ctx, caller domain.Address, pct int32) error {
	cfg, err := im.config.Get(c)
	if err != nil {
		return err
	}
	if !cfg.Owner.Equals(caller) {
		return domain.ErrUnauthorized
	}
	if pct < 0 || pct > 100 {
		return domain.ErrInvalidFee
	}

	return im.txRunner.RunWithTransaction(c, func(c bCtx.Ctx) error {
		if err := im.config.SetFeePercentage(c, pct); err != nil {
			return err
		}
		return im.event.Insert(c, &event.MarketplaceEvent{
			Type:          event.TypeFeeUpdated,
			FeePercentage: pct,
		})
	})
}

func (im *impl) GetListing(c bCtx.Ctx, id domain.ListingId) (*listing.Listing, error) {
	if im.cache == nil {
		return im.listing.FindOne(c, id)
	}

	res := &listing.Listing{}
	err := im.cache.GetByFunc(c, cacheKey(id), res, func() (interface{}, error) {
		return im.listing.FindOne(c, id)
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (im *impl) GetSellerListings(c bCtx.Ctx, seller domain.Address) ([]*listing.Listing, error) {
	return im.listing.FindAll(c, listing.WithSeller(seller), listing.WithActive(true))
}

func (im *impl) GetTotalListings(c bCtx.Ctx) (uint64, error) {
	return im.listing.TotalAllocated(c)
}

func (im *impl) GetConfig(c bCtx.Ctx) (*marketplace.Config, error) {
	return im.config.Get(c)
}

func (im *impl) OnNftReceived(c bCtx.Ctx, operator, from domain.Address, id nft.Id) (string, error) {
	c.WithFields(log.Fields{
		"operator": operator,
		"from":     from,
		"nft":      id,
	}).Info("nft received")
	return listing.NftReceivedAck, nil
}

func parsePrice(price string) (*big.Int, error) {
	amount, err := domain.ParseAmount(price)
	if err != nil {
		return nil, domain.ErrInvalidPrice
	}
	if amount.Sign() == 0 {
		return nil, domain.ErrInvalidPrice
	}
	return amount, nil
}

// feeOf is floor(price * pct / 100)
func feeOf(price *big.Int, pct int32) *big.Int {
	fee := new(big.Int).Mul(price, big.NewInt(int64(pct)))
	return fee.Div(fee, big.NewInt(100))
}

func displayPrice(amount *big.Int) float64 {
	d, err := decimal.NewFromString(amount.String())
	if err != nil {
		return 0
	}
	f, _ := d.Float64()
	return f
}

