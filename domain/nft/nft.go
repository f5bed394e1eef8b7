package nft

import (
	"time"

	"github.com/openxmarket/goapi/base/ctx"
	"github.com/openxmarket/goapi/domain"
)

// Id identifies exactly one transferable asset unit.
type Id struct {
	ChainId    domain.ChainId `json:"chainId" bson:"chainId"`
	Collection domain.Address `json:"collection" bson:"collection"`
	TokenId    domain.TokenId `json:"tokenId" bson:"tokenId"`
}

func (i Id) ToLower() Id {
	i.Collection = i.Collection.ToLower()
	return i
}

// Holding is the registry record of who owns and who may transfer an asset.
type Holding struct {
	Id        `bson:"inline"`
	Owner     domain.Address `json:"owner" bson:"owner"`
	Approved  domain.Address `json:"approved" bson:"approved"`
	UpdatedAt time.Time      `json:"updatedAt" bson:"updatedAt"`
}

type HoldingPatchable struct {
	Owner     *domain.Address `bson:"owner,omitempty"`
	Approved  *domain.Address `bson:"approved,omitempty"`
	UpdatedAt *time.Time      `bson:"updatedAt,omitempty"`
}

type findAllOptions struct {
	Owner  *domain.Address
	Offset *int32
	Limit  *int32
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

func WithOwner(owner domain.Address) FindAllOptionsFunc {
	return func(options *findAllOptions) error {
		owner = owner.ToLower()
		options.Owner = &owner
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

type HoldingRepo interface {
	FindOne(c ctx.Ctx, id Id) (*Holding, error)
	FindAll(c ctx.Ctx, opts ...FindAllOptionsFunc) ([]*Holding, error)
	Upsert(c ctx.Ctx, h *Holding) error
	Patch(c ctx.Ctx, id Id, p HoldingPatchable) error
	// TransferOwner swaps the owner only when the stored owner still equals
	// `from`, clearing the per-asset approval. Returns domain.ErrNotOwner
	// when the condition does not hold.
	TransferOwner(c ctx.Ctx, id Id, from, to domain.Address) error
}

// Authority is the system of record for asset ownership and transfer
// authorization. The registry consumes it and never bypasses it.
type Authority interface {
	OwnerOf(c ctx.Ctx, id Id) (domain.Address, error)
	IsApproved(c ctx.Ctx, id Id, owner, operator domain.Address) (bool, error)
	// Transfer moves ownership on behalf of operator. Fails ErrNotApproved
	// when operator is neither the owner nor the approved operator, and
	// ErrNotOwner when from no longer owns the asset.
	Transfer(c ctx.Ctx, id Id, operator, from, to domain.Address) error
	Mint(c ctx.Ctx, id Id, owner domain.Address) error
	Approve(c ctx.Ctx, id Id, caller, operator domain.Address) error
}
