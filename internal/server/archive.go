package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) ListArchive(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"invoices": s.archive.List()})
}

// SaveToArchive freezes the current draft into a new archive entry.
func (s *Server) SaveToArchive(c *gin.Context) {
	state := s.form.State()
	id := s.archive.Save(c.Request.Context(), state)
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// UpdateArchiveEntry overwrites a stored entry with the current draft.
func (s *Server) UpdateArchiveEntry(c *gin.Context) {
	id := c.Param("id")
	if _, found := s.archive.Load(id); !found {
		AbortWithError(c, ErrNotFound)
		return
	}
	s.archive.Update(c.Request.Context(), id, s.form.State())
	c.JSON(http.StatusOK, gin.H{"id": id})
}

// DuplicateArchiveEntry saves a fresh copy of a stored entry under a
// new id, leaving the original untouched.
func (s *Server) DuplicateArchiveEntry(c *gin.Context) {
	stored, found := s.archive.Load(c.Param("id"))
	if !found {
		AbortWithError(c, ErrNotFound)
		return
	}
	id := s.archive.Duplicate(c.Request.Context(), stored.FormState)
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// LoadArchiveEntry installs a stored snapshot as the live draft.
func (s *Server) LoadArchiveEntry(c *gin.Context) {
	stored, found := s.archive.Load(c.Param("id"))
	if !found {
		AbortWithError(c, ErrNotFound)
		return
	}
	s.form.Install(stored.FormState)
	c.JSON(http.StatusOK, gin.H{"state": s.form.State()})
}

func (s *Server) RemoveArchiveEntry(c *gin.Context) {
	s.archive.Remove(c.Request.Context(), c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"status": "removed"})
}
