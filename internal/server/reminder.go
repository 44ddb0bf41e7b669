package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// PreviewReminderEligibility evaluates one visit without dispatching
// anything; deny reasons come back as structured results, not errors.
func (s *Server) PreviewReminderEligibility(c *gin.Context) {
	evaluation, err := s.reminderSvc.Preview(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, evaluation)
}

// RunReminderCycle triggers an immediate dispatch cycle. The scheduler
// runs the same cycle on its interval; this endpoint exists for
// operational runs.
func (s *Server) RunReminderCycle(c *gin.Context) {
	stats, err := s.reminderSvc.RunCycle(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
