package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) GetRate(c *gin.Context) {
	price, err := s.rateSvc.Current(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"price_per_gallon": price.StringFixed(2),
	})
}
