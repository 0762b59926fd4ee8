package app

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"interview-scheduler/internal/domain"
)

type errorResponse struct {
	Timestamp time.Time `json:"timestamp"`
	Status    int       `json:"status"`
	Code      string    `json:"code"`
	Message   string    `json:"message"`
	Path      string    `json:"path"`
}

// respondError maps the domain taxonomy onto HTTP: missing entities are
// 404, conflicts (capacity, quota, double booking) are 409, bad input is
// 400, everything else is a 500.
func (a *App) respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	code := "INTERNAL_ERROR"

	var (
		fullyBooked *domain.SlotFullyBookedError
		weeklyLimit *domain.WeeklyLimitExceededError
		alreadyBook *domain.AlreadyBookedError
	)

	switch {
	case errors.Is(err, domain.ErrNotFound):
		status, code = http.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrInvalidInput):
		status, code = http.StatusBadRequest, "BAD_REQUEST"
	case errors.As(err, &fullyBooked):
		status, code = http.StatusConflict, "SLOT_FULLY_BOOKED"
	case errors.As(err, &weeklyLimit):
		status, code = http.StatusConflict, "WEEKLY_LIMIT_EXCEEDED"
	case errors.As(err, &alreadyBook):
		status, code = http.StatusConflict, "ALREADY_BOOKED"
	default:
		a.log.Errorw("request failed", "path", c.Request.URL.Path, "error", err)
	}

	c.JSON(status, errorResponse{
		Timestamp: time.Now().UTC(),
		Status:    status,
		Code:      code,
		Message:   err.Error(),
		Path:      c.Request.URL.Path,
	})
}

func (a *App) respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, errorResponse{
		Timestamp: time.Now().UTC(),
		Status:    http.StatusBadRequest,
		Code:      "BAD_REQUEST",
		Message:   message,
		Path:      c.Request.URL.Path,
	})
}
