package usecase

import (
	"math/big"

	"github.com/openxmarket/goapi/base/ctx"
	"github.com/openxmarket/goapi/base/log"
	"github.com/openxmarket/goapi/domain"
	"github.com/openxmarket/goapi/domain/nft"
	"github.com/openxmarket/goapi/service/chain/contract"
)

type TokenUseCaseCfg struct {
	HoldingRepo nft.HoldingRepo
	// Erc721 is optional. When set, ownership reads fall back to the chain
	// for assets the ledger has not seen yet.
	Erc721 contract.Erc721Contract
}

type impl struct {
	holding nft.HoldingRepo
	erc721  contract.Erc721Contract
}

func New(cfg *TokenUseCaseCfg) nft.Authority {
	return &impl{
		holding: cfg.HoldingRepo,
		erc721:  cfg.Erc721,
	}
}

func (im *impl) OwnerOf(c ctx.Ctx, id nft.Id) (domain.Address, error) {
	h, err := im.holding.FindOne(c, id)
	if err == domain.ErrNotFound && im.erc721 != nil {
		return im.chainOwnerOf(c, id)
	} else if err != nil {
		return domain.EmptyAddress, err
	}
	return h.Owner, nil
}

func (im *impl) IsApproved(c ctx.Ctx, id nft.Id, owner, operator domain.Address) (bool, error) {
	if owner.Equals(operator) {
		return true, nil
	}

	h, err := im.holding.FindOne(c, id)
	if err == domain.ErrNotFound && im.erc721 != nil {
		return im.chainIsApproved(c, id, owner, operator)
	} else if err != nil {
		return false, err
	}

	return !h.Approved.IsEmpty() && h.Approved.Equals(operator), nil
}

func (im *impl) Transfer(c ctx.Ctx, id nft.Id, operator, from, to domain.Address) error {
	ok, err := im.IsApproved(c, id, from, operator)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotApproved
	}

	if err := im.holding.TransferOwner(c, id, from, to); err != nil {
		c.WithFields(log.Fields{
			"id":   id,
			"from": from,
			"to":   to,
			"err":  err,
		}).Warn("holding.TransferOwner failed")
		return err
	}
	return nil
}

func (im *impl) Mint(c ctx.Ctx, id nft.Id, owner domain.Address) error {
	if _, err := im.holding.FindOne(c, id); err == nil {
		return domain.ErrConflict
	} else if err != domain.ErrNotFound {
		return err
	}

	h := &nft.Holding{
		Id:    id.ToLower(),
		Owner: owner.ToLower(),
	}
	if err := im.holding.Upsert(c, h); err != nil {
		c.WithFields(log.Fields{"holding": h, "err": err}).Error("holding.Upsert failed")
		return err
	}
	return nil
}

func (im *impl) Approve(c ctx.Ctx, id nft.Id, caller, operator domain.Address) error {
	h, err := im.holding.FindOne(c, id)
	if err != nil {
		return err
	}

	if !h.Owner.Equals(caller) {
		return domain.ErrNotOwner
	}

	operator = operator.ToLower()
	if err := im.holding.Patch(c, id, nft.HoldingPatchable{Approved: &operator}); err != nil {
		c.WithFields(log.Fields{"id": id, "operator": operator, "err": err}).Error("holding.Patch failed")
		return err
	}
	return nil
}

func (im *impl) chainOwnerOf(c ctx.Ctx, id nft.Id) (domain.Address, error) {
	tokenId, ok := new(big.Int).SetString(id.TokenId.String(), 10)
	if !ok {
		return domain.EmptyAddress, domain.ErrInvalidNumberFormat
	}
	owner, err := im.erc721.OwnerOf(c, int32(id.ChainId), string(id.Collection), tokenId)
	if err != nil {
		c.WithFields(log.Fields{"id": id, "err": err}).Error("erc721.OwnerOf failed")
		return domain.EmptyAddress, err
	}
	return domain.Address(owner).ToLower(), nil
}

func (im *impl) chainIsApproved(c ctx.Ctx, id nft.Id, owner, operator domain.Address) (bool, error) {
	tokenId, ok := new(big.Int).SetString(id.TokenId.String(), 10)
	if !ok {
		return false, domain.ErrInvalidNumberFormat
	}
	approved, err := im.erc721.GetApproved(c, int32(id.ChainId), string(id.Collection), tokenId)
	if err != nil {
		c.WithFields(log.Fields{"id": id, "err": err}).Error("erc721.GetApproved failed")
		return false, err
	}
	if operator.Equals(domain.Address(approved)) {
		return true, nil
	}
	return im.erc721.IsApprovedForAll(c, int32(id.ChainId), string(id.Collection), owner.ToLowerStr(), operator.ToLowerStr())
}
