package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	clinicdomain "github.com/omarwahbi/VetSync-sub002/internal/clinic/domain"
)

type UpdateClinicRequest struct {
	Name                 *string    `json:"name"`
	Timezone             *string    `json:"timezone"`
	CanSendReminders     *bool      `json:"can_send_reminders"`
	SubscriptionEndDate  *time.Time `json:"subscription_end_date"`
	ReminderMonthlyLimit *int       `json:"reminder_monthly_limit"`
}

func (s *Server) GetClinic(c *gin.Context) {
	clinic, err := s.clinicSvc.Current(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, clinic)
}

func (s *Server) UpdateClinic(c *gin.Context) {
	var req UpdateClinicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	current, err := s.clinicSvc.Current(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	clinic, err := s.clinicSvc.Update(c.Request.Context(), clinicdomain.UpdateClinicRequest{
		ID:                   current.ID.String(),
		Name:                 req.Name,
		Timezone:             req.Timezone,
		CanSendReminders:     req.CanSendReminders,
		SubscriptionEndDate:  req.SubscriptionEndDate,
		ReminderMonthlyLimit: req.ReminderMonthlyLimit,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, clinic)
}
