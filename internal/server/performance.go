package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	perfdomain "github.com/teamops/adboard/internal/performance/domain"
)

func (s *Server) ListRecords(c *gin.Context) {
	var req perfdomain.ListRecordsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	records, err := s.performance.List(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"records": records})
}

func (s *Server) CreateRecord(c *gin.Context) {
	var req perfdomain.CreateRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	record, err := s.performance.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, record)
}

func (s *Server) GetRecord(c *gin.Context) {
	record, err := s.performance.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, record)
}

func (s *Server) UpdateRecord(c *gin.Context) {
	var req perfdomain.UpdateRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	req.ID = c.Param("id")

	record, err := s.performance.Update(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, record)
}

func (s *Server) DeleteRecord(c *gin.Context) {
	if err := s.performance.Delete(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
