package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/openxmarket/goapi/base/ctx"
	"github.com/openxmarket/goapi/base/delivery"
	"github.com/openxmarket/goapi/domain"
	"github.com/openxmarket/goapi/domain/nft"
	authMiddleware "github.com/openxmarket/goapi/stores/auth/delivery/http/middleware"
)

type handler struct {
	authority nft.Authority
}

func New(e *echo.Echo, authority nft.Authority, authMw *authMiddleware.AuthMiddleware) {
	h := &handler{
		authority: authority,
	}

	g := e.Group("/nfts")
	g.POST("/mint", h.mint, authMw.Auth())
	g.POST("/approve", h.approve, authMw.Auth())
	g.GET("/:chainId/:collection/:tokenId/owner", h.ownerOf)
}

type assetParams struct {
	ChainId    domain.ChainId `json:"chainId" param:"chainId"`
	Collection domain.Address `json:"collection" param:"collection"`
	TokenId    domain.TokenId `json:"tokenId" param:"tokenId"`
}

func (p *assetParams) toId() nft.Id {
	return nft.Id{ChainId: p.ChainId, Collection: p.Collection, TokenId: p.TokenId}
}

// mint
//
//	@Summary		Mint asset
//	@Description	Record the caller as owner of a new asset (test/ops surface)
//	@Tags			nft
//	@Accept			json
//	@Produce		json
//	@Security		ApiKeyAuth
//	@Param			params	body	http.assetParams	true	"params"
//	@Success		201
//	@Failure		409
//	@Failure		500
//	@Router			/nfts/mint [post]
func (h *handler) mint(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	caller := c.Get("address").(domain.Address)

	p := &assetParams{}
	if err := c.Bind(p); err != nil {
		ctx.WithField("err", err).Error("bind failed")
		return c.JSON(http.StatusUnprocessableEntity, err)
	}

	if err := h.authority.Mint(ctx, p.toId(), caller); err == domain.ErrConflict {
		return delivery.MakeJsonResp(c, http.StatusConflict, err)
	} else if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusCreated, "ok")
}

// approve
//
//	@Summary		Approve operator
//	@Description	Approve an operator to transfer the caller's asset
//	@Tags			nft
//	@Accept			json
//	@Produce		json
//	@Security		ApiKeyAuth
//	@Param			params	body	http.approve.params	true	"params"
//	@Success		200
//	@Failure		403
//	@Failure		404
//	@Failure		500
//	@Router			/nfts/approve [post]
func (h *handler) approve(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	caller := c.Get("address").(domain.Address)

	type params struct {
		assetParams
		Operator domain.Address `json:"operator"`
	}

	p := &params{}
	if err := c.Bind(p); err != nil {
		ctx.WithField("err", err).Error("bind failed")
		return c.JSON(http.StatusUnprocessableEntity, err)
	}

	if err := h.authority.Approve(ctx, p.toId(), caller, p.Operator); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}

// ownerOf
//
//	@Summary		Get asset owner
//	@Description	Current owner of an asset, ledger first with chain fallback
//	@Tags			nft
//	@Produce		json
//	@Param			chainId		path		int		true	"chain id"
//	@Param			collection	path		string	true	"collection address"
//	@Param			tokenId		path		string	true	"token id"
//	@Success		200			{object}	object{owner=string}
//	@Failure		404
//	@Failure		500
//	@Router			/nfts/{chainId}/{collection}/{tokenId}/owner [get]
func (h *handler) ownerOf(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := &assetParams{}
	if err := c.Bind(p); err != nil {
		ctx.WithField("err", err).Error("bind failed")
		return c.JSON(http.StatusUnprocessableEntity, err)
	}

	owner, err := h.authority.OwnerOf(ctx, p.toId())
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	res := struct {
		Owner domain.Address `json:"owner"`
	}{
		Owner: owner,
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}
