package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/kerickkkkk/love-in-no-words-back-end-sub000/internal/domain"
	"github.com/kerickkkkk/love-in-no-words-back-end-sub000/internal/service"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type SeatTableRequest struct {
	TableNo         string `json:"tableNo" validate:"required"`
	ReservationDate string `json:"reservationDate" validate:"required"`
	ReservationTime string `json:"reservationTime" validate:"required"`
}

type CreateBookingRequest struct {
	TableNo         string `json:"tableNo" validate:"required"`
	ReservationDate string `json:"reservationDate" validate:"required"`
	ReservationTime string `json:"reservationTime" validate:"required"`
	Name            string `json:"name" validate:"required"`
	Phone           string `json:"phone" validate:"required"`
}

type UpdateBookingRequest struct {
	ReservationDate *string `json:"reservationDate"`
	ReservationTime *string `json:"reservationTime"`
	Name            *string `json:"name"`
	Phone           *string `json:"phone"`
}

func parseDateAndSlot(date, slot string) (time.Time, domain.TimeSlot, error) {
	day, err := domain.ParseDate(date)
	if err != nil {
		return time.Time{}, "", domain.NewValidationError(err.Error())
	}

	timeSlot, err := domain.ParseTimeSlot(slot)
	if err != nil {
		return time.Time{}, "", domain.NewValidationError(err.Error())
	}

	return day, timeSlot, nil
}

// seatTableHandler godoc
//
//	@Summary		Seat a walk-in guest
//	@Description	Creates an immediate seating for a table, date and time slot
//	@Tags			reservations
//	@Accept			json
//	@Produce		json
//	@Param			request	body		SeatTableRequest	true	"Seating"
//	@Success		200		{object}	domain.Reservation
//	@Failure		400		{object}	map[string]string
//	@Failure		404		{object}	map[string]string
//	@Failure		409		{object}	map[string]string
//	@Router			/reservations/seat [post]
func (app *application) seatTableHandler(w http.ResponseWriter, r *http.Request) {
	var req SeatTableRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, validationMessage(err))
		return
	}

	date, slot, err := parseDateAndSlot(req.ReservationDate, req.ReservationTime)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	reservation, err := app.reservationService.Seat(r.Context(), service.SeatInput{
		TableNo: req.TableNo,
		Date:    date,
		Slot:    slot,
	})
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, reservation); err != nil {
		app.internalServerError(w, r, err)
	}
}

// createBookingHandler godoc
//
//	@Summary		Book a table
//	@Description	Creates an advance booking with guest contact details
//	@Tags			reservations
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateBookingRequest	true	"Booking"
//	@Success		200		{object}	domain.Reservation
//	@Failure		400		{object}	map[string]string
//	@Failure		404		{object}	map[string]string
//	@Failure		409		{object}	map[string]string
//	@Router			/reservations [post]
func (app *application) createBookingHandler(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, validationMessage(err))
		return
	}

	date, slot, err := parseDateAndSlot(req.ReservationDate, req.ReservationTime)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	reservation, err := app.reservationService.Book(r.Context(), service.BookInput{
		TableNo: req.TableNo,
		Date:    date,
		Slot:    slot,
		Name:    req.Name,
		Phone:   req.Phone,
	})
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, reservation); err != nil {
		app.internalServerError(w, r, err)
	}
}

// listReservationsHandler godoc
//
//	@Summary		Per-table availability
//	@Description	Occupancy state of every table for a date and time slot
//	@Tags			reservations
//	@Produce		json
//	@Param			reservationDate	query		string	true	"Date, YYYY-MM-DD"
//	@Param			reservationTime	query		string	false	"morning or afternoon"
//	@Param			status			query		string	false	"seated, booked or unused"
//	@Success		200				{array}		domain.TableAvailability
//	@Failure		400				{object}	map[string]string
//	@Router			/reservations [get]
func (app *application) listReservationsHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	date, err := domain.ParseDate(query.Get("reservationDate"))
	if err != nil {
		app.badRequestResponse(w, r, domain.NewValidationError(err.Error()))
		return
	}

	var slot domain.TimeSlot
	if raw := query.Get("reservationTime"); raw != "" {
		slot, err = domain.ParseTimeSlot(raw)
		if err != nil {
			app.badRequestResponse(w, r, domain.NewValidationError(err.Error()))
			return
		}
	}

	var status domain.ReservationStatus
	if raw := query.Get("status"); raw != "" {
		parsed, ok := domain.ParseReservationStatus(raw)
		if !ok {
			app.badRequestResponse(w, r, domain.NewValidationError("invalid status "+raw))
			return
		}
		status = parsed
	}

	rows, err := app.reservationService.Availability(r.Context(), service.AvailabilityQuery{
		Date:   date,
		Slot:   slot,
		Status: status,
	})
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, rows); err != nil {
		app.internalServerError(w, r, err)
	}
}

func reservationIDFromURL(r *http.Request) (primitive.ObjectID, error) {
	raw := chi.URLParam(r, "reservation_id")
	if raw == "" {
		return primitive.NilObjectID, ErrInvalidID
	}

	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, ErrInvalidID
	}

	return id, nil
}

// editReservationHandler godoc
//
//	@Summary		Edit a booking
//	@Tags			reservations
//	@Accept			json
//	@Produce		json
//	@Param			reservation_id	path		string					true	"Reservation ID"
//	@Param			request			body		UpdateBookingRequest	true	"Changes"
//	@Success		200				{object}	domain.Reservation
//	@Failure		400				{object}	map[string]string
//	@Failure		404				{object}	map[string]string
//	@Failure		409				{object}	map[string]string
//	@Router			/reservations/{reservation_id} [patch]
func (app *application) editReservationHandler(w http.ResponseWriter, r *http.Request) {
	id, err := reservationIDFromURL(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var req UpdateBookingRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var in service.EditInput
	if req.ReservationDate != nil {
		date, err := domain.ParseDate(*req.ReservationDate)
		if err != nil {
			app.badRequestResponse(w, r, domain.NewValidationError(err.Error()))
			return
		}
		in.Date = &date
	}
	if req.ReservationTime != nil {
		slot, err := domain.ParseTimeSlot(*req.ReservationTime)
		if err != nil {
			app.badRequestResponse(w, r, domain.NewValidationError(err.Error()))
			return
		}
		in.Slot = &slot
	}
	in.Name = req.Name
	in.Phone = req.Phone

	reservation, err := app.reservationService.Edit(r.Context(), id, in)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, reservation); err != nil {
		app.internalServerError(w, r, err)
	}
}

// cancelReservationHandler godoc
//
//	@Summary		Cancel a reservation
//	@Description	Marks the reservation canceled, returning the table to unused
//	@Tags			reservations
//	@Produce		json
//	@Param			reservation_id	path		string	true	"Reservation ID"
//	@Success		200				{object}	map[string]string
//	@Failure		400				{object}	map[string]string
//	@Failure		404				{object}	map[string]string
//	@Router			/reservations/{reservation_id} [delete]
func (app *application) cancelReservationHandler(w http.ResponseWriter, r *http.Request) {
	id, err := reservationIDFromURL(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := app.reservationService.Cancel(r.Context(), id); err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, map[string]string{"reservation_id": id.Hex()}); err != nil {
		app.internalServerError(w, r, err)
	}
}
