package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	petdomain "github.com/omarwahbi/VetSync-sub002/internal/pet/domain"
)

type CreatePetRequest struct {
	OwnerID   string     `json:"owner_id"`
	Name      string     `json:"name"`
	Species   string     `json:"species"`
	Breed     string     `json:"breed"`
	BirthDate *time.Time `json:"birth_date"`
}

func (s *Server) CreatePet(c *gin.Context) {
	var req CreatePetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	pet, err := s.petSvc.Create(c.Request.Context(), petdomain.CreatePetRequest{
		OwnerID:   req.OwnerID,
		Name:      req.Name,
		Species:   req.Species,
		Breed:     req.Breed,
		BirthDate: req.BirthDate,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, pet)
}

func (s *Server) GetPetByID(c *gin.Context) {
	pet, err := s.petSvc.GetByID(c.Request.Context(), petdomain.GetPetRequest{
		ID: c.Param("id"),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, pet)
}
