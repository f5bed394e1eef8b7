package event

import (
	"time"

	"github.com/openxmarket/goapi/base/ctx"
	"github.com/openxmarket/goapi/domain"
	"github.com/openxmarket/goapi/domain/nft"
)

type Type string

const (
	TypeListingCreated Type = "listing_created"
	TypeListingUpdated Type = "listing_updated"
	TypeListingRemoved Type = "listing_removed"
	TypeSold           Type = "sold"
	TypeFeeUpdated     Type = "fee_updated"
)

// MarketplaceEvent is an append-only notification record for external
// observers and indexers. Emitted only when the operation succeeded.
type MarketplaceEvent struct {
	Id            string           `json:"id" bson:"id"`
	Type          Type             `json:"type" bson:"type"`
	ListingId     domain.ListingId `json:"listingId,omitempty" bson:"listingId,omitempty"`
	Nft           *nft.Id          `json:"nft,omitempty" bson:"nft,omitempty"`
	Seller        domain.Address   `json:"seller,omitempty" bson:"seller,omitempty"`
	Buyer         domain.Address   `json:"buyer,omitempty" bson:"buyer,omitempty"`
	Price         string           `json:"price,omitempty" bson:"price,omitempty"`
	DisplayPrice  float64          `json:"displayPrice,omitempty" bson:"displayPrice,omitempty"`
	FeePercentage int32            `json:"feePercentage,omitempty" bson:"feePercentage,omitempty"`
	CreatedAt     time.Time        `json:"createdAt" bson:"createdAt"`
}

type findAllOptions struct {
	Type      *Type
	ListingId *domain.ListingId
	Offset    *int32
	Limit     *int32
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

func WithType(t Type) FindAllOptionsFunc {
	return func(options *findAllOptions) error {
		options.Type = &t
		return nil
	}
}

func WithListingId(id domain.ListingId) FindAllOptionsFunc {
	return func(options *findAllOptions) error {
		options.ListingId = &id
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

type Repo interface {
	Insert(c ctx.Ctx, ev *MarketplaceEvent) error
	FindAll(c ctx.Ctx, opts ...FindAllOptionsFunc) ([]*MarketplaceEvent, error)
}
