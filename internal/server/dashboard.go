package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	visitdomain "github.com/omarwahbi/VetSync-sub002/internal/visit/domain"
)

const defaultUpcomingDays = 7

// ListDueToday returns every visit falling inside the clinic-local
// calendar day, independent of reminder state.
func (s *Server) ListDueToday(c *gin.Context) {
	pageSize, err := parseIntDefault(c.Query("page_size"), 0)
	if err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.visitSvc.DueToday(c.Request.Context(), visitdomain.DueTodayRequest{
		PageToken: c.Query("page_token"),
		PageSize:  pageSize,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) ListUpcoming(c *gin.Context) {
	daysAhead, err := parseIntDefault(c.Query("days_ahead"), defaultUpcomingDays)
	if err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	if daysAhead < 0 {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	pageSize, err := parseIntDefault(c.Query("page_size"), 0)
	if err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	reminderEnabled, err := parseOptionalBool(c.Query("reminder_enabled"))
	if err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.visitSvc.Upcoming(c.Request.Context(), visitdomain.UpcomingRequest{
		DaysAhead:       daysAhead,
		VisitType:       parseOptionalString(c.Query("visit_type")),
		ReminderEnabled: reminderEnabled,
		PageToken:       c.Query("page_token"),
		PageSize:        pageSize,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
