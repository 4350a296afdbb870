package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) GetPaymentsOverview(c *gin.Context) {
	overview, err := s.paymentsSvc.Overview(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, overview)
}

func (s *Server) GetPaymentsInsights(c *gin.Context) {
	insights, err := s.paymentsSvc.Insights(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, insights)
}

func (s *Server) ListPaymentTransactions(c *gin.Context) {
	transactions, err := s.paymentsSvc.ListTransactions(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"transactions": transactions})
}
