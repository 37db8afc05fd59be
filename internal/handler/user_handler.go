package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"sozluk/internal/service"
)

type UserHandler struct {
	svc *service.UserService
}

type UpdateProfileReq struct {
	Email    string `json:"email" binding:"omitempty,email"`
	Password string `json:"password"`
}

func NewUserHandler(db *gorm.DB) *UserHandler {
	return &UserHandler{svc: service.NewUserService(db)}
}

func (h *UserHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid user id"})
		return
	}

	user, err := h.svc.GetByID(id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) GetByUsername(c *gin.Context) {
	user, err := h.svc.GetByUsername(c.Param("username"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) Entries(c *gin.Context) {
	page, limit := pageParams(c)

	entries, pagination, err := h.svc.Entries(c.Param("username"), page, limit)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, listResponse(entries, pagination))
}

func (h *UserHandler) TopEntries(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))

	entries, err := h.svc.TopEntries(c.Param("username"), limit)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req UpdateProfileReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid params"})
		return
	}

	user, err := h.svc.UpdateProfile(currentUserID(c), req.Email, req.Password)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
