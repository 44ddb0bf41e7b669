package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	ownerdomain "github.com/omarwahbi/VetSync-sub002/internal/owner/domain"
	petdomain "github.com/omarwahbi/VetSync-sub002/internal/pet/domain"
)

type CreateOwnerRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

func (s *Server) CreateOwner(c *gin.Context) {
	var req CreateOwnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	owner, err := s.ownerSvc.Create(c.Request.Context(), ownerdomain.CreateOwnerRequest{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, owner)
}

func (s *Server) GetOwnerByID(c *gin.Context) {
	owner, err := s.ownerSvc.GetByID(c.Request.Context(), ownerdomain.GetOwnerRequest{
		ID: c.Param("id"),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, owner)
}

func (s *Server) ListOwners(c *gin.Context) {
	pageSize, err := parseIntDefault(c.Query("page_size"), 0)
	if err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.ownerSvc.List(c.Request.Context(), ownerdomain.ListOwnerRequest{
		PageToken: c.Query("page_token"),
		PageSize:  pageSize,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) ListOwnerPets(c *gin.Context) {
	pageSize, err := parseIntDefault(c.Query("page_size"), 0)
	if err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.petSvc.ListByOwner(c.Request.Context(), petdomain.ListPetRequest{
		OwnerID:   c.Param("id"),
		PageToken: c.Query("page_token"),
		PageSize:  pageSize,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
