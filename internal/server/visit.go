package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	visitdomain "github.com/omarwahbi/VetSync-sub002/internal/visit/domain"
)

type CreateVisitRequest struct {
	PetID             string     `json:"pet_id"`
	VisitDate         time.Time  `json:"visit_date"`
	VisitType         string     `json:"visit_type"`
	Notes             string     `json:"notes"`
	NextReminderDate  *time.Time `json:"next_reminder_date"`
	IsReminderEnabled bool       `json:"is_reminder_enabled"`
}

func (s *Server) CreateVisit(c *gin.Context) {
	var req CreateVisitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	visit, err := s.visitSvc.Create(c.Request.Context(), visitdomain.CreateVisitRequest{
		PetID:             req.PetID,
		VisitDate:         req.VisitDate,
		VisitType:         req.VisitType,
		Notes:             req.Notes,
		NextReminderDate:  req.NextReminderDate,
		IsReminderEnabled: req.IsReminderEnabled,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, visit)
}

func (s *Server) ListVisits(c *gin.Context) {
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

	resp, err := s.visitSvc.List(c.Request.Context(), visitdomain.ListVisitRequest{
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

func (s *Server) GetVisitByID(c *gin.Context) {
	visit, err := s.visitSvc.GetByID(c.Request.Context(), visitdomain.GetVisitRequest{
		ID: c.Param("id"),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, visit)
}
