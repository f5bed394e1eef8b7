package listing

import (
	"time"

	"github.com/openxmarket/goapi/base/ctx"
	"github.com/openxmarket/goapi/domain"
	"github.com/openxmarket/goapi/domain/marketplace"
	"github.com/openxmarket/goapi/domain/nft"
)

// Listing is an offer to sell one asset unit at a fixed price. Prices are
// base-10 integer strings in the smallest payment unit. Deactivated listings
// keep their record with Active=false; callers must check Active.
type Listing struct {
	Id           domain.ListingId `json:"id" bson:"id"`
	Nft          nft.Id           `json:"nft" bson:"nft"`
	Seller       domain.Address   `json:"seller" bson:"seller"`
	Price        string           `json:"price" bson:"price"`
	DisplayPrice float64          `json:"displayPrice" bson:"displayPrice"`
	Active       bool             `json:"active" bson:"active"`
	CreatedAt    time.Time        `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time        `json:"updatedAt" bson:"updatedAt"`
}

func (l *Listing) LowerCase() {
	l.Seller = l.Seller.ToLower()
	l.Nft = l.Nft.ToLower()
}

type Patchable struct {
	Price        *string    `bson:"price,omitempty"`
	DisplayPrice *float64   `bson:"displayPrice,omitempty"`
	UpdatedAt    *time.Time `bson:"updatedAt,omitempty"`
}

// Sale is the settlement result of a successful buy.
type Sale struct {
	ListingId    domain.ListingId `json:"listingId"`
	Nft          nft.Id           `json:"nft"`
	Seller       domain.Address   `json:"seller"`
	Buyer        domain.Address   `json:"buyer"`
	Price        string           `json:"price"`
	FeeAmount    string           `json:"feeAmount"`
	SellerAmount string           `json:"sellerAmount"`
}

type findAllOptions struct {
	Seller *domain.Address
	Active *bool
	Offset *int32
	Limit  *int32
	Sort   *string
}

type FindAllOptionsFunc func(*findAllOptions) error

func GetFindAllOptions(opts ...FindAllOptionsFunc) (findAllOptions, error) {
	res := findAllOptions{}
	for _, opt := range opts {
		if err := opt(&res); err != nil {
			return res, err
		}
	}
	return res, nil
}

func WithSeller(seller domain.Address) FindAllOptionsFunc {
	return func(options *findAllOptions) error {
		seller = seller.ToLower()
		options.Seller = &seller
		return nil
	}
}

func WithActive(active bool) FindAllOptionsFunc {
	return func(options *findAllOptions) error {
		options.Active = &active
		return nil
	}
}

func WithPagination(offset, limit int32) FindAllOptionsFunc {
	return func(options *findAllOptions) error {
		options.Offset = &offset
		options.Limit = &limit
		return nil
	}
}

func WithSort(sort string) FindAllOptionsFunc {
	return func(options *findAllOptions) error {
		options.Sort = &sort
		return nil
	}
}

type Repo interface {
	// NextId allocates the next listing identifier. Identifiers start at 1,
	// only increase and are never reused, even across removals.
	NextId(c ctx.Ctx) (domain.ListingId, error)
	// TotalAllocated returns the number of identifiers ever allocated.
	TotalAllocated(c ctx.Ctx) (uint64, error)
	Insert(c ctx.Ctx, l *Listing) error
	FindOne(c ctx.Ctx, id domain.ListingId) (*Listing, error)
	FindAll(c ctx.Ctx, opts ...FindAllOptionsFunc) ([]*Listing, error)
	Patch(c ctx.Ctx, id domain.ListingId, p Patchable) error
	// Deactivate flips Active to false only when the listing is still
	// active. Returns domain.ErrNotActive when it is not.
	Deactivate(c ctx.Ctx, id domain.ListingId) error
}

// NftReceivedAck is returned by the receiver acknowledgment entry point,
// mirroring the onERC721Received selector.
const NftReceivedAck = "0x150b7a02"

type Usecase interface {
	CreateListing(c ctx.Ctx, seller domain.Address, id nft.Id, price string) (*Listing, error)
	UpdateListingPrice(c ctx.Ctx, caller domain.Address, id domain.ListingId, price string) (*Listing, error)
	RemoveListing(c ctx.Ctx, caller domain.Address, id domain.ListingId) error
	BuyListing(c ctx.Ctx, buyer domain.Address, id domain.ListingId, payment string) (*Sale, error)
	SetFeePercentage(c ctx.Ctx, caller domain.Address, pct int32) error
	GetListing(c ctx.Ctx, id domain.ListingId) (*Listing, error)
	GetSellerListings(c ctx.Ctx, seller domain.Address) ([]*Listing, error)
	GetTotalListings(c ctx.Ctx) (uint64, error)
	GetConfig(c ctx.Ctx) (*marketplace.Config, error)
	// OnNftReceived is a no-op acknowledgment so the registry is a valid
	// recipient for authority-initiated transfers. No operation above
	// relies on it; sales transfer directly from seller to buyer.
	OnNftReceived(c ctx.Ctx, operator, from domain.Address, id nft.Id) (string, error)
}
