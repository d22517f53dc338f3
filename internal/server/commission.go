package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// The commission endpoints never return error statuses from the pipeline
// itself: degraded results come back as roster-complete payloads with flagged
// entries, which the dashboard renders as an empty state.

func (s *Server) GetDailyCommission(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	results := s.commissionSvc.GetDaily(c.Request.Context(), date)
	c.JSON(http.StatusOK, gin.H{"date": date, "results": results})
}

func (s *Server) GetMonthlyCommission(c *gin.Context) {
	month := c.Query("month")
	if month == "" {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	summaries := s.commissionSvc.GetMonthly(c.Request.Context(), month)
	c.JSON(http.StatusOK, gin.H{"month": month, "summaries": summaries})
}

func (s *Server) GetRankings(c *gin.Context) {
	month := c.Query("month")
	if month == "" {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	rankings := s.commissionSvc.GetRankings(c.Request.Context(), month)
	c.JSON(http.StatusOK, gin.H{"month": month, "rankings": rankings})
}

func (s *Server) GetAvailableDates(c *gin.Context) {
	month := c.Query("month")
	if month == "" {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	dates := s.commissionSvc.AvailableDates(c.Request.Context(), month)
	c.JSON(http.StatusOK, gin.H{"month": month, "dates": dates})
}

type refreshRequest struct {
	Date  string `json:"date"`
	Month string `json:"month"`
}

func (s *Server) RefreshCommission(c *gin.Context) {
	// An empty body clears every cache.
	var req refreshRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			AbortWithError(c, ErrInvalidRequest)
			return
		}
	}

	s.commissionSvc.ForceRefresh(req.Date, req.Month)
	c.JSON(http.StatusOK, gin.H{"status": "refreshed"})
}
