package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"sozluk/internal/service"
)

type EntryHandler struct {
	svc *service.EntryService
}

type CreateEntryReq struct {
	Content string `json:"content" binding:"required"`
	TopicID uint64 `json:"topicId" binding:"required"`
}

type UpdateEntryReq struct {
	Content string `json:"content" binding:"required"`
}

func NewEntryHandler(db *gorm.DB) *EntryHandler {
	return &EntryHandler{svc: service.NewEntryService(db)}
}

func (h *EntryHandler) Create(c *gin.Context) {
	var req CreateEntryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid params"})
		return
	}

	entry, err := h.svc.Create(currentUserID(c), req.TopicID, req.Content)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, entry)
}

func (h *EntryHandler) List(c *gin.Context) {
	page, limit := pageParams(c)
	topicID, _ := strconv.ParseUint(c.Query("topicId"), 10, 64)

	entries, pagination, err := h.svc.List(topicID, page, limit)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, listResponse(entries, pagination))
}

func (h *EntryHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid entry id"})
		return
	}

	entry, err := h.svc.Get(id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

func (h *EntryHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid entry id"})
		return
	}

	var req UpdateEntryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid params"})
		return
	}

	entry, err := h.svc.Update(id, currentUserID(c), req.Content)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

func (h *EntryHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid entry id"})
		return
	}

	if err := h.svc.SoftDelete(id, currentUserID(c)); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Entry deleted"})
}

// ForceDelete bypasses the soft-delete flag. Route is gated on
// moderator/admin role.
func (h *EntryHandler) ForceDelete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid entry id"})
		return
	}

	if err := h.svc.ForceDelete(currentUserID(c), id); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Entry permanently deleted"})
}
