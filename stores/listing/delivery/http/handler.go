package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/openxmarket/goapi/base/ctx"
	"github.com/openxmarket/goapi/base/delivery"
	"github.com/openxmarket/goapi/domain"
	"github.com/openxmarket/goapi/domain/event"
	"github.com/openxmarket/goapi/domain/listing"
	"github.com/openxmarket/goapi/domain/nft"
	"github.com/openxmarket/goapi/middleware"
	authMiddleware "github.com/openxmarket/goapi/stores/auth/delivery/http/middleware"
)

type handler struct {
	listing listing.Usecase
	event   event.Repo
}

func New(e *echo.Echo, us listing.Usecase, eventRepo event.Repo, authMw *authMiddleware.AuthMiddleware) {
	h := &handler{
		listing: us,
		event:   eventRepo,
	}

	g := e.Group("/listings")
	g.POST("", h.createListing, authMw.Auth())
	g.GET("/count", h.getTotalListings)
	g.GET("/:id", h.getListing)
	g.PATCH("/:id/price", h.updateListingPrice, authMw.Auth())
	g.DELETE("/:id", h.removeListing, authMw.Auth())
	g.POST("/:id/buy", h.buyListing, authMw.Auth())

	e.GET("/accounts/:seller/listings", h.getSellerListings, middleware.IsValidAddress("seller"))

	m := e.Group("/marketplace")
	m.GET("/config", h.getConfig)
	m.POST("/fee", h.setFeePercentage, authMw.Auth())
	m.POST("/nftReceived", h.onNftReceived)

	e.GET("/events", h.getEvents)
}

func parseListingId(c echo.Context) (domain.ListingId, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, domain.ErrBadParamInput
	}
	return domain.ListingId(id), nil
}

// createListing
//
//	@Summary		Create listing
//	@Description	List one owned and approved asset at a fixed price
//	@Tags			listing
//	@Accept			json
//	@Produce		json
//	@Security		ApiKeyAuth
//	@Param			params	body		http.createListing.params	true	"params"
//	@Success		201		{object}	listing.Listing
//	@Failure		400
//	@Failure		403
//	@Failure		404
//	@Failure		500
//	@Router			/listings [post]
func (h *handler) createListing(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	seller := c.Get("address").(domain.Address)

	type params struct {
		ChainId    domain.ChainId `json:"chainId"`
		Collection domain.Address `json:"collection"`
		TokenId    domain.TokenId `json:"tokenId"`
		Price      string         `json:"price" description:"base-10 integer in the smallest payment unit"`
	}

	p := &params{}
	if err := c.Bind(p); err != nil {
		ctx.WithField("err", err).Error("bind failed")
		return c.JSON(http.StatusUnprocessableEntity, err)
	}

	id := nft.Id{ChainId: p.ChainId, Collection: p.Collection, TokenId: p.TokenId}
	if l, err := h.listing.CreateListing(ctx, seller, id, p.Price); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusCreated, l)
	}
}

// updateListingPrice
//
//	@Summary		Update listing price
//	@Description	Change the asking price of an active listing, seller only
//	@Tags			listing
//	@Accept			json
//	@Produce		json
//	@Security		ApiKeyAuth
//	@Param			id		path		int								true	"listing id"
//	@Param			params	body		http.updateListingPrice.params	true	"params"
//	@Success		200		{object}	listing.Listing
//	@Failure		400
//	@Failure		403
//	@Failure		404
//	@Failure		409
//	@Failure		500
//	@Router			/listings/{id}/price [patch]
func (h *handler) updateListingPrice(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	caller := c.Get("address").(domain.Address)

	id, err := parseListingId(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	type params struct {
		Price string `json:"price"`
	}

	p := &params{}
	if err := c.Bind(p); err != nil {
		ctx.WithField("err", err).Error("bind failed")
		return c.JSON(http.StatusUnprocessableEntity, err)
	}

	if l, err := h.listing.UpdateListingPrice(ctx, caller, id, p.Price); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusOK, l)
	}
}

// removeListing
//
//	@Summary		Remove listing
//	@Description	Deactivate an active listing, seller only
//	@Tags			listing
//	@Produce		json
//	@Security		ApiKeyAuth
//	@Param			id	path	int	true	"listing id"
//	@Success		200
//	@Failure		400
//	@Failure		403
//	@Failure		404
//	@Failure		409
//	@Failure		500
//	@Router			/listings/{id} [delete]
func (h *handler) removeListing(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	caller := c.Get("address").(domain.Address)

	id, err := parseListingId(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if err := h.listing.RemoveListing(ctx, caller, id); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}

// buyListing
//
//	@Summary		Buy listing
//	@Description	Settle an active listing, charging the buyer the listed price
//	@Tags			listing
//	@Accept			json
//	@Produce		json
//	@Security		ApiKeyAuth
//	@Param			id		path		int						true	"listing id"
//	@Param			params	body		http.buyListing.params	true	"params"
//	@Success		200		{object}	listing.Sale
//	@Failure		400
//	@Failure		404
//	@Failure		409
//	@Failure		500
//	@Router			/listings/{id}/buy [post]
func (h *handler) buyListing(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	buyer := c.Get("address").(domain.Address)

	id, err := parseListingId(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	type params struct {
		Payment string `json:"payment" description:"offered payment, must cover the listed price"`
	}

	p := &params{}
	if err := c.Bind(p); err != nil {
		ctx.WithField("err", err).Error("bind failed")
		return c.JSON(http.StatusUnprocessableEntity, err)
	}

	if sale, err := h.listing.BuyListing(ctx, buyer, id, p.Payment); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusOK, sale)
	}
}

// getListing
//
//	@Summary		Get listing
//	@Description	Fetch one listing by id, active or not
//	@Tags			listing
//	@Produce		json
//	@Param			id	path		int	true	"listing id"
//	@Success		200	{object}	listing.Listing
//	@Failure		400
//	@Failure		404
//	@Failure		500
//	@Router			/listings/{id} [get]
func (h *handler) getListing(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	id, err := parseListingId(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if l, err := h.listing.GetListing(ctx, id); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusOK, l)
	}
}

// getTotalListings
//
//	@Summary		Get total listings
//	@Description	Number of listing ids ever allocated, removals included
//	@Tags			listing
//	@Produce		json
//	@Success		200	{object}	object{total=int}
//	@Failure		500
//	@Router			/listings/count [get]
func (h *handler) getTotalListings(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	total, err := h.listing.GetTotalListings(ctx)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	res := struct {
		Total uint64 `json:"total"`
	}{
		Total: total,
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

// getSellerListings
//
//	@Summary		Get seller listings
//	@Description	Active listings of one seller
//	@Tags			listing
//	@Produce		json
//	@Param			seller	path		string	true	"seller address"
//	@Success		200		{array}		listing.Listing
//	@Failure		400
//	@Failure		500
//	@Router			/accounts/{seller}/listings [get]
func (h *handler) getSellerListings(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	seller := domain.Address(c.Param("seller"))

	if ls, err := h.listing.GetSellerListings(ctx, seller); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusOK, ls)
	}
}

// getConfig
//
//	@Summary		Get marketplace config
//	@Description	Marketplace owner and fee percentage
//	@Tags			marketplace
//	@Produce		json
//	@Success		200	{object}	marketplace.Config
//	@Failure		500
//	@Router			/marketplace/config [get]
func (h *handler) getConfig(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	if cfg, err := h.listing.GetConfig(ctx); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusOK, cfg)
	}
}

// setFeePercentage
//
//	@Summary		Set fee percentage
//	@Description	Update the marketplace fee, owner only
//	@Tags			marketplace
//	@Accept			json
//	@Produce		json
//	@Security		ApiKeyAuth
//	@Param			params	body	http.setFeePercentage.params	true	"params"
//	@Success		200
//	@Failure		400
//	@Failure		403
//	@Failure		500
//	@Router			/marketplace/fee [post]
func (h *handler) setFeePercentage(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	caller := c.Get("address").(domain.Address)

	type params struct {
		FeePercentage int32 `json:"feePercentage" description:"whole percent, 0 to 100"`
	}

	p := &params{}
	if err := c.Bind(p); err != nil {
		ctx.WithField("err", err).Error("bind failed")
		return c.JSON(http.StatusUnprocessableEntity, err)
	}

	if err := h.listing.SetFeePercentage(ctx, caller, p.FeePercentage); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}

// onNftReceived
//
//	@Summary		Acknowledge asset receipt
//	@Description	Receiver hook acknowledgment, returns the selector constant
//	@Tags			marketplace
//	@Accept			json
//	@Produce		json
//	@Param			params	body		http.onNftReceived.params	true	"params"
//	@Success		200		{object}	object{ack=string}
//	@Failure		500
//	@Router			/marketplace/nftReceived [post]
func (h *handler) onNftReceived(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		Operator   domain.Address `json:"operator"`
		From       domain.Address `json:"from"`
		ChainId    domain.ChainId `json:"chainId"`
		Collection domain.Address `json:"collection"`
		TokenId    domain.TokenId `json:"tokenId"`
	}

	p := &params{}
	if err := c.Bind(p); err != nil {
		ctx.WithField("err", err).Error("bind failed")
		return c.JSON(http.StatusUnprocessableEntity, err)
	}

	id := nft.Id{ChainId: p.ChainId, Collection: p.Collection, TokenId: p.TokenId}
	ack, err := h.listing.OnNftReceived(ctx, p.Operator, p.From, id)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	res := struct {
		Ack string `json:"ack"`
	}{
		Ack: ack,
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

// getEvents
//
//	@Summary		Get events
//	@Description	Marketplace notification records, newest first
//	@Tags			marketplace
//	@Produce		json
//	@Param			type		query		string	false	"event type"
//	@Param			listingId	query		int		false	"listing id"
//	@Param			offset		query		int		false	"paging offset"
//	@Param			limit		query		int		false	"paging size"
//	@Success		200			{array}		event.MarketplaceEvent
//	@Failure		400
//	@Failure		500
//	@Router			/events [get]
func (h *handler) getEvents(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		Type      *event.Type       `query:"type"`
		ListingId *domain.ListingId `query:"listingId"`
		Offset    int32             `query:"offset"`
		Limit     int32             `query:"limit"`
	}

	p := &params{Limit: 32}
	if err := c.Bind(p); err != nil {
		ctx.WithField("err", err).Error("bind failed")
		return c.JSON(http.StatusUnprocessableEntity, err)
	}

	opts := []event.FindAllOptionsFunc{
		event.WithPagination(p.Offset, p.Limit),
	}
	if p.Type != nil {
		opts = append(opts, event.WithType(*p.Type))
	}
	if p.ListingId != nil {
		opts = append(opts, event.WithListingId(*p.ListingId))
	}

	if evs, err := h.event.FindAll(ctx, opts...); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusOK, evs)
	}
}
