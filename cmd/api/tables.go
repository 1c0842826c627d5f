package main

import (
	"net/http"

	"github.com/kerickkkkk/love-in-no-words-back-end-sub000/internal/service"
)

type CreateTableRequest struct {
	TableName    string `json:"tableName" validate:"required"`
	SeatCount    int    `json:"seatCount" validate:"required,gt=0"`
	IsWindowSeat bool   `json:"isWindowSeat"`
}

// createTableHandler godoc
//
//	@Summary		Create a table
//	@Description	Adds a table to the roster with an allocated table number
//	@Tags			tables
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateTableRequest	true	"Table"
//	@Success		200		{object}	domain.Table
//	@Failure		400		{object}	map[string]string
//	@Failure		409		{object}	map[string]string
//	@Router			/tables [post]
func (app *application) createTableHandler(w http.ResponseWriter, r *http.Request) {
	var req CreateTableRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, validationMessage(err))
		return
	}

	table, err := app.tableService.CreateTable(r.Context(), service.CreateTableInput{
		TableName:    req.TableName,
		SeatCount:    req.SeatCount,
		IsWindowSeat: req.IsWindowSeat,
	})
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, table); err != nil {
		app.internalServerError(w, r, err)
	}
}

// listTablesHandler godoc
//
//	@Summary		List tables
//	@Description	Every enabled, non-deleted table in the roster
//	@Tags			tables
//	@Produce		json
//	@Success		200	{array}		domain.Table
//	@Failure		500	{object}	map[string]string
//	@Router			/tables [get]
func (app *application) listTablesHandler(w http.ResponseWriter, r *http.Request) {
	tables, err := app.tableService.ListTables(r.Context())
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, tables); err != nil {
		app.internalServerError(w, r, err)
	}
}
