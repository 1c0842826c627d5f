package main

import (
	"net/http"

	"github.com/kerickkkkk/love-in-no-words-back-end-sub000/internal/service"
)

type OrderLineRequest struct {
	ProductNo string `json:"productNo" validate:"required"`
	Qty       int    `json:"qty" validate:"required,gt=0"`
	Note      string `json:"note"`
}

type CreateOrderRequest struct {
	TableName  string             `json:"tableName" validate:"required"`
	Products   []OrderLineRequest `json:"products" validate:"required,min=1,dive"`
	CouponCode string             `json:"couponCode"`
}

func (req CreateOrderRequest) toInput() service.PlaceOrderInput {
	lines := make([]service.OrderLineInput, 0, len(req.Products))
	for _, p := range req.Products {
		lines = append(lines, service.OrderLineInput{
			ProductNo: p.ProductNo,
			Qty:       p.Qty,
			Note:      p.Note,
		})
	}

	return service.PlaceOrderInput{
		TableName:  req.TableName,
		Lines:      lines,
		CouponCode: req.CouponCode,
	}
}

// previewOrderHandler godoc
//
//	@Summary		Preview an order
//	@Description	Prices a cart without persisting anything
//	@Tags			orders
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateOrderRequest	true	"Cart"
//	@Success		200		{object}	domain.OrderProjection
//	@Failure		400		{object}	map[string]string
//	@Failure		404		{object}	map[string]string
//	@Router			/orders/preview [post]
func (app *application) previewOrderHandler(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, validationMessage(err))
		return
	}

	result, err := app.orderService.PlaceOrder(r.Context(), req.toInput(), service.ModePreview)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, result.Projection); err != nil {
		app.internalServerError(w, r, err)
	}
}

// createOrderHandler godoc
//
//	@Summary		Place an order
//	@Description	Persists a priced, stock-validated order and notifies the kitchen
//	@Tags			orders
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateOrderRequest	true	"Cart"
//	@Success		200		{object}	domain.ComposedOrder
//	@Failure		400		{object}	map[string]string
//	@Failure		404		{object}	map[string]string
//	@Failure		409		{object}	map[string]string
//	@Router			/orders [post]
func (app *application) createOrderHandler(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, validationMessage(err))
		return
	}

	result, err := app.orderService.PlaceOrder(r.Context(), req.toInput(), service.ModeCommit)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, result.Order); err != nil {
		app.internalServerError(w, r, err)
	}
}
