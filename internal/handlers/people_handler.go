package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/harentsoaR/people-api/internal/models"
	"github.com/harentsoaR/people-api/internal/services"
)

const (
	msgNoDate          = "no date included"
	msgNoDateParam     = "no date param included"
	msgNoCancelParams  = "no date or reservationID included"
	msgInvalidDate     = "invalid date, use DD-MM-YYYY"
	msgReservationGone = "reservation not found"
)

// respondNoDate answers a valid date that has no reservations.
func respondNoDate(c *gin.Context, err error) {
	if errors.Is(err, services.ErrFutureDate) {
		c.String(http.StatusAccepted, "")
		return
	}
	c.JSON(http.StatusAccepted, msgNoDate)
}

func isNoDate(err error) bool {
	return errors.Is(err, services.ErrNoDate) || errors.Is(err, services.ErrFutureDate)
}

func isBadDate(err error) bool {
	return errors.Is(err, services.ErrInvalidDate) || errors.Is(err, services.ErrMissingParam)
}

func internalError(c *gin.Context, op string, err error) {
	log.Printf("%s %s: %s failed: %v", c.Request.Method, c.Request.URL.Path, op, err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + op})
}

// --- GET /people/all ---
func (h *Handler) GetAllPeople(c *gin.Context) {
	ctx, cancel := h.ctx(c)
	defer cancel()

	days, err := h.People.All(ctx)
	if err != nil {
		internalError(c, "retrieve people", err)
		return
	}
	c.JSON(http.StatusOK, days)
}

// --- GET /people/by_date/:date ---
func (h *Handler) GetPeopleByDate(c *gin.Context) {
	ctx, cancel := h.ctx(c)
	defer cancel()

	day, err := h.People.ByDate(ctx, c.Param("date"))
	switch {
	case isBadDate(err):
		c.JSON(http.StatusNotFound, gin.H{"msg": msgInvalidDate})
	case isNoDate(err):
		respondNoDate(c, err)
	case err != nil:
		internalError(c, "retrieve people", err)
	default:
		c.JSON(http.StatusOK, day)
	}
}

// --- DELETE /people/by_date/:date ---
func (h *Handler) DeletePeopleByDate(c *gin.Context) {
	ctx, cancel := h.ctx(c)
	defer cancel()

	day, err := h.People.DeleteByDate(ctx, c.Param("date"))
	switch {
	case isBadDate(err):
		c.JSON(http.StatusNotFound, gin.H{"msg": msgInvalidDate})
	case isNoDate(err):
		c.JSON(http.StatusAccepted, msgNoDate)
	case err != nil:
		internalError(c, "delete people", err)
	default:
		c.JSON(http.StatusOK, day)
	}
}

// MissingDateParam answers the count routes called without a date segment.
func (h *Handler) MissingDateParam(c *gin.Context) {
	c.JSON(http.StatusNotAcceptable, gin.H{"msg": msgNoDateParam})
}

// --- GET /people/count/total/:date ---
func (h *Handler) CountTotal(c *gin.Context) {
	ctx, cancel := h.ctx(c)
	defer cancel()

	count, err := h.People.CountTotal(ctx, c.Param("date"))
	switch {
	case errors.Is(err, services.ErrMissingParam):
		h.MissingDateParam(c)
	case errors.Is(err, services.ErrInvalidDate):
		c.JSON(http.StatusNotFound, gin.H{"msg": msgInvalidDate})
	case err != nil:
		internalError(c, "count people", err)
	default:
		c.JSON(http.StatusOK, count)
	}
}

// --- GET /people/count/walkin/:date ---
func (h *Handler) CountWalkin(c *gin.Context) {
	ctx, cancel := h.ctx(c)
	defer cancel()

	count, err := h.People.CountWalkin(ctx, c.Param("date"))
	switch {
	case errors.Is(err, services.ErrMissingParam):
		h.MissingDateParam(c)
	case errors.Is(err, services.ErrInvalidDate):
		c.JSON(http.StatusNotFound, gin.H{"msg": msgInvalidDate})
	case err != nil:
		internalError(c, "count walk-ins", err)
	default:
		c.JSON(http.StatusOK, count)
	}
}

// --- GET /people/cancel?date=DD-MM-YYYY&reservationID=N ---
func (h *Handler) CancelReservation(c *gin.Context) {
	ctx, cancel := h.ctx(c)
	defer cancel()

	id := c.Query("reservationID")
	if id == "" {
		id = c.Query("reservation_id")
	}

	day, err := h.People.Cancel(ctx, c.Query("date"), id)
	switch {
	case errors.Is(err, services.ErrMissingParam):
		c.JSON(http.StatusNotAcceptable, gin.H{"msg": msgNoCancelParams})
	case errors.Is(err, services.ErrInvalidDate):
		c.JSON(http.StatusNotFound, gin.H{"msg": msgInvalidDate})
	case errors.Is(err, services.ErrReservationNotFound):
		c.JSON(http.StatusNotFound, gin.H{"msg": msgReservationGone})
	case isNoDate(err):
		c.JSON(http.StatusAccepted, msgNoDate)
	case err != nil:
		internalError(c, "cancel reservation", err)
	default:
		c.JSON(http.StatusOK, day)
	}
}

type ReserveRequest struct {
	Date       string `json:"date" binding:"required"`
	Name       string `json:"name" binding:"required"`
	Surname    string `json:"surname" binding:"required"`
	BirthDate  string `json:"birth_date"`
	CitizenID  string `json:"citizen_id" binding:"required,len=13,numeric"`
	Occupation string `json:"occupation"`
	Address    string `json:"address"`
	Priority   string `json:"priority"`
	VacTime    int    `json:"vac_time" binding:"gte=0"`
	WalkIn     bool   `json:"walk_in"`
}

// --- POST /people/reserve (staff only) ---
func (h *Handler) Reserve(c *gin.Context) {
	var req ReserveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := h.ctx(c)
	defer cancel()

	created, err := h.People.Register(ctx, req.Date, models.Reservation{
		Name:       req.Name,
		Surname:    req.Surname,
		BirthDate:  req.BirthDate,
		CitizenID:  req.CitizenID,
		Occupation: req.Occupation,
		Address:    req.Address,
		Priority:   req.Priority,
		VacTime:    req.VacTime,
		WalkIn:     req.WalkIn,
	})
	switch {
	case isBadDate(err):
		c.JSON(http.StatusNotFound, gin.H{"msg": msgInvalidDate})
	case errors.Is(err, services.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "Day is being updated, retry"})
	case err != nil:
		internalError(c, "register reservation", err)
	default:
		log.Printf("Reserve: %s registered reservation %d on %s", c.GetString("userID"), created.ReservationID, req.Date)
		c.JSON(http.StatusCreated, created)
	}
}
