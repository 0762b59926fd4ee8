package app

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"interview-scheduler/internal/domain"
	"interview-scheduler/internal/repository"
)

type interviewerAPI interface {
	Create(ctx context.Context, name, email string, maxWeekly int) (*domain.Interviewer, error)
	Get(ctx context.Context, id int64) (*domain.Interviewer, error)
	UpdateMaxWeekly(ctx context.Context, id int64, maxWeekly int) (*domain.Interviewer, error)
}

type availabilityAPI interface {
	ListWindows(ctx context.Context, interviewerID int64) ([]domain.AvailabilityWindow, error)
	ReplaceWindows(ctx context.Context, interviewerID int64, windows []domain.AvailabilityWindow) ([]domain.AvailabilityWindow, error)
}

type slotAPI interface {
	GenerateForInterviewer(ctx context.Context, interviewerID int64, from, to time.Time) (int, error)
	ListPage(ctx context.Context, filter repository.SlotPageFilter, hideFull bool) (domain.SlotPage, error)
	GetSlot(ctx context.Context, slotID int64) (domain.SlotView, error)
}

type bookingAPI interface {
	CreateBooking(ctx context.Context, slotID int64, candidateName, candidateEmail string) (*domain.Booking, error)
	UpdateBookingSlot(ctx context.Context, bookingID string, newSlotID int64) (*domain.Booking, error)
	CancelBooking(ctx context.Context, bookingID string) error
	ListByCandidate(ctx context.Context, candidateEmail string) ([]domain.Booking, error)
	ListByInterviewer(ctx context.Context, interviewerID int64) ([]domain.Booking, error)
}

// App is the thin API layer: every handler maps one-to-one onto a
// service call, no business logic lives here.
type App struct {
	Interviewers interviewerAPI
	Availability availabilityAPI
	Slots        slotAPI
	Bookings     bookingAPI

	log *zap.SugaredLogger
}

func New(interviewers interviewerAPI, availability availabilityAPI, slots slotAPI, bookings bookingAPI, log *zap.SugaredLogger) *App {
	return &App{
		Interviewers: interviewers,
		Availability: availability,
		Slots:        slots,
		Bookings:     bookings,
		log:          log.Named("api"),
	}
}

func (a *App) RegisterRoutes(router *gin.Engine, authMiddleware gin.HandlerFunc) {
	// OAuth2 callback must stay outside the auth middleware.
	router.GET("/oauth2callback", a.GoogleOAuth2CallbackHandler)

	api := router.Group("/api/v1")
	if authMiddleware != nil {
		api.Use(authMiddleware)
	}

	interviewers := api.Group("/interviewers")
	{
		interviewers.POST("", a.CreateInterviewerHandler)
		interviewers.GET("/:id", a.GetInterviewerHandler)
		interviewers.PATCH("/:id/max-weekly-interviews", a.UpdateMaxWeeklyHandler)
		interviewers.GET("/:id/weekly-availability", a.ListAvailabilityHandler)
		interviewers.PUT("/:id/weekly-availability", a.ReplaceAvailabilityHandler)
		interviewers.POST("/:id/generate-slots", a.GenerateSlotsHandler)
	}

	api.GET("/slots", a.ListSlotsHandler)
	api.GET("/slots/:id", a.GetSlotHandler)

	bookings := api.Group("/bookings")
	{
		bookings.POST("", a.CreateBookingHandler)
		bookings.PUT("/:id", a.UpdateBookingHandler)
		bookings.DELETE("/:id", a.CancelBookingHandler)
		bookings.GET("/by-candidate", a.BookingsByCandidateHandler)
		bookings.GET("/by-interviewer/:id", a.BookingsByInterviewerHandler)
	}

	calendar := api.Group("/calendar")
	{
		calendar.GET("/auth", a.GoogleAuthHandler)
		calendar.GET("/events", a.GetGoogleCalendarEvents)
		calendar.GET("/calendars", a.GetGoogleCalendarList)
	}
}
