package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"sozluk/internal/service"
)

type TopicHandler struct {
	svc *service.TopicService
}

type CreateTopicReq struct {
	Title string `json:"title" binding:"required,min=2,max=200"`
}

func NewTopicHandler(db *gorm.DB) *TopicHandler {
	return &TopicHandler{svc: service.NewTopicService(db)}
}

func (h *TopicHandler) Create(c *gin.Context) {
	var req CreateTopicReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid params"})
		return
	}

	topic, err := h.svc.Create(currentUserID(c), req.Title)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, topic)
}

func (h *TopicHandler) List(c *gin.Context) {
	page, limit := pageParams(c)

	topics, pagination, err := h.svc.List(page, limit)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, listResponse(topics, pagination))
}

func (h *TopicHandler) Search(c *gin.Context) {
	topics, err := h.svc.Search(c.Query("q"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, topics)
}

func (h *TopicHandler) GetBySlug(c *gin.Context) {
	topic, err := h.svc.GetBySlug(c.Param("slug"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, topic)
}

func (h *TopicHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid topic id"})
		return
	}

	if err := h.svc.Delete(currentUserID(c), id); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Topic deleted successfully"})
}
