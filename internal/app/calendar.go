package app

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// External calendar lookup lets schedulers eyeball an interviewer's
// commitments outside this system before generating slots. Read-only:
// bookings here are never pushed upstream.

type ExternalEvent struct {
	ID        string    `json:"id"`
	Summary   string    `json:"summary"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Status    string    `json:"status"`
	Creator   string    `json:"creator,omitempty"`
}

type ExternalCalendar struct {
	ID         string `json:"id"`
	Summary    string `json:"summary"`
	Primary    bool   `json:"primary"`
	AccessRole string `json:"access_role"`
}

func googleOAuthConfig() *oauth2.Config {
	clientID := os.Getenv("GOOGLE_CLIENT_ID")
	clientSecret := os.Getenv("GOOGLE_CLIENT_SECRET")
	redirectURL := os.Getenv("GOOGLE_REDIRECT_URL")
	if clientID == "" || clientSecret == "" || redirectURL == "" {
		return nil
	}

	return &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURL,
		Scopes:       []string{calendar.CalendarReadonlyScope},
		Endpoint:     google.Endpoint,
	}
}

// GET /api/v1/calendar/auth
func (a *App) GoogleAuthHandler(c *gin.Context) {
	conf := googleOAuthConfig()
	if conf == nil {
		a.respondError(c, fmt.Errorf("google calendar is not configured"))
		return
	}

	state := fmt.Sprintf("interviewer_%s_%d", c.Query("interviewer_id"), time.Now().Unix())
	c.JSON(http.StatusOK, gin.H{
		"auth_url": conf.AuthCodeURL(state, oauth2.AccessTypeOffline),
		"state":    state,
	})
}

// GET /oauth2callback
func (a *App) GoogleOAuth2CallbackHandler(c *gin.Context) {
	conf := googleOAuthConfig()
	if conf == nil {
		a.respondError(c, fmt.Errorf("google calendar is not configured"))
		return
	}

	code := c.Query("code")
	if code == "" {
		a.respondBadRequest(c, "authorization code required")
		return
	}

	token, err := conf.Exchange(c.Request.Context(), code)
	if err != nil {
		a.respondBadRequest(c, "failed to exchange code for token")
		return
	}

	tokenJSON, _ := json.Marshal(token)
	c.JSON(http.StatusOK, gin.H{
		"state": c.Query("state"),
		"token": string(tokenJSON),
	})
}

// GET /api/v1/calendar/events?calendar_id&time_min&time_max
func (a *App) GetGoogleCalendarEvents(c *gin.Context) {
	srv, ok := a.calendarService(c)
	if !ok {
		return
	}

	call := srv.Events.List(c.DefaultQuery("calendar_id", "primary")).
		SingleEvents(true).
		OrderBy("startTime").
		MaxResults(250)
	if timeMin := c.Query("time_min"); timeMin != "" {
		call = call.TimeMin(timeMin)
	}
	if timeMax := c.Query("time_max"); timeMax != "" {
		call = call.TimeMax(timeMax)
	}

	events, err := call.Do()
	if err != nil {
		a.respondError(c, fmt.Errorf("retrieve calendar events: %w", err))
		return
	}

	items := make([]ExternalEvent, 0, len(events.Items))
	for _, item := range events.Items {
		event := ExternalEvent{
			ID:      item.Id,
			Summary: item.Summary,
			Status:  item.Status,
		}
		if item.Creator != nil {
			event.Creator = item.Creator.Email
		}
		event.StartTime = parseEventTime(item.Start)
		event.EndTime = parseEventTime(item.End)
		items = append(items, event)
	}

	c.JSON(http.StatusOK, gin.H{"events": items, "count": len(items)})
}

// GET /api/v1/calendar/calendars
func (a *App) GetGoogleCalendarList(c *gin.Context) {
	srv, ok := a.calendarService(c)
	if !ok {
		return
	}

	list, err := srv.CalendarList.List().Do()
	if err != nil {
		a.respondError(c, fmt.Errorf("retrieve calendar list: %w", err))
		return
	}

	calendars := make([]ExternalCalendar, 0, len(list.Items))
	for _, item := range list.Items {
		calendars = append(calendars, ExternalCalendar{
			ID:         item.Id,
			Summary:    item.Summary,
			Primary:    item.Primary,
			AccessRole: item.AccessRole,
		})
	}

	c.JSON(http.StatusOK, gin.H{"calendars": calendars, "count": len(calendars)})
}

// calendarService builds a calendar client from the caller-provided
// OAuth token. Tokens live client-side; this service stores none.
func (a *App) calendarService(c *gin.Context) (*calendar.Service, bool) {
	tokenStr := c.GetHeader("X-Google-Token")
	if tokenStr == "" {
		a.respondBadRequest(c, "google token required in X-Google-Token header")
		return nil, false
	}

	var token oauth2.Token
	if err := json.Unmarshal([]byte(tokenStr), &token); err != nil {
		a.respondBadRequest(c, "invalid token format")
		return nil, false
	}

	conf := googleOAuthConfig()
	if conf == nil {
		a.respondError(c, fmt.Errorf("google calendar is not configured"))
		return nil, false
	}

	ctx := c.Request.Context()
	srv, err := calendar.NewService(ctx, option.WithHTTPClient(conf.Client(ctx, &token)))
	if err != nil {
		a.respondError(c, fmt.Errorf("create calendar service: %w", err))
		return nil, false
	}
	return srv, true
}

func parseEventTime(edt *calendar.EventDateTime) time.Time {
	if edt == nil {
		return time.Time{}
	}
	if edt.DateTime != "" {
		if t, err := time.Parse(time.RFC3339, edt.DateTime); err == nil {
			return t
		}
	}
	if edt.Date != "" {
		if t, err := time.Parse("2006-01-02", edt.Date); err == nil {
			return t
		}
	}
	return time.Time{}
}
