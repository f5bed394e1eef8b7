package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/openxmarket/goapi/base/ctx"
	"github.com/openxmarket/goapi/base/delivery"
	"github.com/openxmarket/goapi/domain"
	"github.com/openxmarket/goapi/domain/payment"
	"github.com/openxmarket/goapi/middleware"
	authMiddleware "github.com/openxmarket/goapi/stores/auth/delivery/http/middleware"
)

type handler struct {
	payment payment.ValueTransfer
}

func New(e *echo.Echo, vt payment.ValueTransfer, authMw *authMiddleware.AuthMiddleware) {
	h := &handler{
		payment: vt,
	}

	g := e.Group("/accounts")
	g.POST("/deposit", h.deposit, authMw.Auth())
	g.GET("/:address/balance", h.getBalance, middleware.IsValidAddress("address"))
}

// deposit
//
//	@Summary		Deposit
//	@Description	Credit the caller's payment balance
//	@Tags			account
//	@Accept			json
//	@Produce		json
//	@Security		ApiKeyAuth
//	@Param			params	body	http.deposit.params	true	"params"
//	@Success		200
//	@Failure		400
//	@Failure		500
//	@Router			/accounts/deposit [post]
func (h *handler) deposit(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	caller := c.Get("address").(domain.Address)

	type params struct {
		Amount string `json:"amount" description:"base-10 integer in the smallest payment unit"`
	}

	p := &params{}
	if err := c.Bind(p); err != nil {
		ctx.WithField("err", err).Error("bind failed")
		return c.JSON(http.StatusUnprocessableEntity, err)
	}

	amount, err := domain.ParseAmount(p.Amount)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrBadParamInput)
	}

	if err := h.payment.Deposit(ctx, caller, amount); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}

// getBalance
//
//	@Summary		Get balance
//	@Description	Payment balance of an account, zero when never funded
//	@Tags			account
//	@Produce		json
//	@Param			address	path		string	true	"account address"
//	@Success		200		{object}	object{address=string,amount=string}
//	@Failure		400
//	@Failure		500
//	@Router			/accounts/{address}/balance [get]
func (h *handler) getBalance(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	address := domain.Address(c.Param("address"))

	b, err := h.payment.BalanceOf(ctx, address)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	res := struct {
		Address domain.Address `json:"address"`
		Amount  string         `json:"amount"`
	}{
		Address: address.ToLower(),
		Amount:  b.String(),
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}
