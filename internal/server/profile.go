package server

import (
	"net/http"

	profiledomain "github.com/bluedrop/aquarate/internal/profile/domain"
	"github.com/gin-gonic/gin"
)

type UpdateProfileRequest struct {
	FullName string `json:"fullname"`
	Address1 string `json:"address1"`
	Address2 string `json:"address2"`
	City     string `json:"city"`
	ZipCode  string `json:"zipcode"`
	State    string `json:"state"`
}

type ProfileResponse struct {
	Username    string `json:"username"`
	FullName    string `json:"fullname"`
	Address1    string `json:"address1"`
	Address2    string `json:"address2,omitempty"`
	City        string `json:"city"`
	ZipCode     string `json:"zipcode"`
	State       string `json:"state"`
	FullAddress string `json:"full_address"`
}

func profileResponse(p profiledomain.Profile) ProfileResponse {
	return ProfileResponse{
		Username:    p.Username,
		FullName:    p.FullName,
		Address1:    p.Address1,
		Address2:    p.Address2,
		City:        p.City,
		ZipCode:     p.ZipCode,
		State:       p.State,
		FullAddress: p.FullAddress(),
	}
}

func (s *Server) GetProfile(c *gin.Context) {
	username, ok := usernameFromContext(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	p, err := s.profileSvc.Get(c.Request.Context(), username)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, profileResponse(p))
}

func (s *Server) UpdateProfile(c *gin.Context) {
	username, ok := usernameFromContext(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	p, err := s.profileSvc.Update(c.Request.Context(), username, profiledomain.UpdateProfileRequest{
		FullName: req.FullName,
		Address1: req.Address1,
		Address2: req.Address2,
		City:     req.City,
		ZipCode:  req.ZipCode,
		State:    req.State,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, profileResponse(p))
}
