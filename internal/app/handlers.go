package app

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"interview-scheduler/internal/domain"
	"interview-scheduler/internal/repository"
)

const defaultGenerationDays = 14

type createInterviewerReq struct {
	Name                string `json:"name" binding:"required"`
	Email               string `json:"email" binding:"required,email"`
	MaxWeeklyInterviews int    `json:"max_weekly_interviews" binding:"required,min=1"`
}

// POST /api/v1/interviewers
func (a *App) CreateInterviewerHandler(c *gin.Context) {
	var req createInterviewerReq
	if err := c.BindJSON(&req); err != nil {
		a.respondBadRequest(c, err.Error())
		return
	}

	interviewer, err := a.Interviewers.Create(c.Request.Context(), req.Name, req.Email, req.MaxWeeklyInterviews)
	if err != nil {
		a.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, interviewer)
}

// GET /api/v1/interviewers/:id
func (a *App) GetInterviewerHandler(c *gin.Context) {
	id, ok := a.pathID(c, "id")
	if !ok {
		return
	}

	interviewer, err := a.Interviewers.Get(c.Request.Context(), id)
	if err != nil {
		a.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, interviewer)
}

// PATCH /api/v1/interviewers/:id/max-weekly-interviews?max_weekly_interviews=N
func (a *App) UpdateMaxWeeklyHandler(c *gin.Context) {
	id, ok := a.pathID(c, "id")
	if !ok {
		return
	}
	maxWeekly, err := strconv.Atoi(c.Query("max_weekly_interviews"))
	if err != nil {
		a.respondBadRequest(c, "max_weekly_interviews must be an integer")
		return
	}

	interviewer, err := a.Interviewers.UpdateMaxWeekly(c.Request.Context(), id, maxWeekly)
	if err != nil {
		a.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, interviewer)
}

// GET /api/v1/interviewers/:id/weekly-availability
func (a *App) ListAvailabilityHandler(c *gin.Context) {
	id, ok := a.pathID(c, "id")
	if !ok {
		return
	}

	windows, err := a.Availability.ListWindows(c.Request.Context(), id)
	if err != nil {
		a.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, windows)
}

// PUT /api/v1/interviewers/:id/weekly-availability
// Replaces the whole window set; windows carry no identity across calls.
func (a *App) ReplaceAvailabilityHandler(c *gin.Context) {
	id, ok := a.pathID(c, "id")
	if !ok {
		return
	}
	var payload []domain.AvailabilityWindow
	if err := c.BindJSON(&payload); err != nil {
		a.respondBadRequest(c, err.Error())
		return
	}

	saved, err := a.Availability.ReplaceWindows(c.Request.Context(), id, payload)
	if err != nil {
		a.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

// POST /api/v1/interviewers/:id/generate-slots?from=2006-01-02&to=2006-01-02
func (a *App) GenerateSlotsHandler(c *gin.Context) {
	id, ok := a.pathID(c, "id")
	if !ok {
		return
	}

	from := time.Now().UTC().Truncate(24 * time.Hour)
	if fromStr := c.Query("from"); fromStr != "" {
		parsed, err := time.Parse("2006-01-02", fromStr)
		if err != nil {
			a.respondBadRequest(c, "invalid from, want YYYY-MM-DD")
			return
		}
		from = parsed
	}

	to := from.AddDate(0, 0, defaultGenerationDays)
	if toStr := c.Query("to"); toStr != "" {
		parsed, err := time.Parse("2006-01-02", toStr)
		if err != nil {
			a.respondBadRequest(c, "invalid to, want YYYY-MM-DD")
			return
		}
		to = parsed
	}
	if to.Before(from) {
		a.respondBadRequest(c, "to must not be before from")
		return
	}

	created, err := a.Slots.GenerateForInterviewer(c.Request.Context(), id, from, to)
	if err != nil {
		a.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"created": created})
}

// GET /api/v1/slots?interviewer_id&from&to&cursor&limit&hide_full
func (a *App) ListSlotsHandler(c *gin.Context) {
	now := time.Now().UTC()
	filter := repository.SlotPageFilter{
		From:  now,
		To:    now.AddDate(0, 0, defaultGenerationDays),
		Limit: 20,
	}

	if idStr := c.Query("interviewer_id"); idStr != "" {
		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			a.respondBadRequest(c, "invalid interviewer_id")
			return
		}
		filter.InterviewerID = id
	}
	if fromStr := c.Query("from"); fromStr != "" {
		parsed, err := time.Parse(time.RFC3339, fromStr)
		if err != nil {
			a.respondBadRequest(c, "invalid from, want RFC3339")
			return
		}
		filter.From = parsed
	}
	if toStr := c.Query("to"); toStr != "" {
		parsed, err := time.Parse(time.RFC3339, toStr)
		if err != nil {
			a.respondBadRequest(c, "invalid to, want RFC3339")
			return
		}
		filter.To = parsed
	}
	if cursorStr := c.Query("cursor"); cursorStr != "" {
		cursor, err := strconv.ParseInt(cursorStr, 10, 64)
		if err != nil {
			a.respondBadRequest(c, "invalid cursor")
			return
		}
		if cursor > 0 {
			filter.Cursor = cursor
		}
	}
	if limitStr := c.Query("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 1 || limit > 100 {
			a.respondBadRequest(c, "limit must be in [1, 100]")
			return
		}
		filter.Limit = limit
	}
	hideFull := c.Query("hide_full") == "true"

	page, err := a.Slots.ListPage(c.Request.Context(), filter, hideFull)
	if err != nil {
		a.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// GET /api/v1/slots/:id
func (a *App) GetSlotHandler(c *gin.Context) {
	id, ok := a.pathID(c, "id")
	if !ok {
		return
	}

	slot, err := a.Slots.GetSlot(c.Request.Context(), id)
	if err != nil {
		a.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, slot)
}

type createBookingReq struct {
	SlotID         int64  `json:"slot_id" binding:"required"`
	CandidateName  string `json:"candidate_name" binding:"required"`
	CandidateEmail string `json:"candidate_email" binding:"required,email"`
}

// POST /api/v1/bookings
func (a *App) CreateBookingHandler(c *gin.Context) {
	var req createBookingReq
	if err := c.BindJSON(&req); err != nil {
		a.respondBadRequest(c, err.Error())
		return
	}

	booking, err := a.Bookings.CreateBooking(c.Request.Context(), req.SlotID, req.CandidateName, req.CandidateEmail)
	if err != nil {
		a.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, booking)
}

type updateBookingReq struct {
	NewSlotID int64 `json:"new_slot_id" binding:"required"`
}

// PUT /api/v1/bookings/:id
func (a *App) UpdateBookingHandler(c *gin.Context) {
	var req updateBookingReq
	if err := c.BindJSON(&req); err != nil {
		a.respondBadRequest(c, err.Error())
		return
	}

	booking, err := a.Bookings.UpdateBookingSlot(c.Request.Context(), c.Param("id"), req.NewSlotID)
	if err != nil {
		a.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// DELETE /api/v1/bookings/:id
func (a *App) CancelBookingHandler(c *gin.Context) {
	if err := a.Bookings.CancelBooking(c.Request.Context(), c.Param("id")); err != nil {
		a.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GET /api/v1/bookings/by-candidate?candidate_email=
func (a *App) BookingsByCandidateHandler(c *gin.Context) {
	email := c.Query("candidate_email")
	if email == "" {
		a.respondBadRequest(c, "candidate_email required")
		return
	}

	bookings, err := a.Bookings.ListByCandidate(c.Request.Context(), email)
	if err != nil {
		a.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// GET /api/v1/bookings/by-interviewer/:id
func (a *App) BookingsByInterviewerHandler(c *gin.Context) {
	id, ok := a.pathID(c, "id")
	if !ok {
		return
	}

	bookings, err := a.Bookings.ListByInterviewer(c.Request.Context(), id)
	if err != nil {
		a.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

func (a *App) pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		a.respondBadRequest(c, name+" must be an integer")
		return 0, false
	}
	return id, true
}
