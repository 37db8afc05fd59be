package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"sozluk/internal/service"
)

type VoteHandler struct {
	svc *service.VoteService
}

type CreateVoteReq struct {
	EntryID uint64 `json:"entryId" binding:"required"`
	Value   int    `json:"value" binding:"required,oneof=1 -1"`
}

func NewVoteHandler(db *gorm.DB) *VoteHandler {
	return &VoteHandler{svc: service.NewVoteService(db)}
}

// Create toggles the caller's vote on an entry: first vote creates,
// repeating the same value removes, the opposite value flips.
func (h *VoteHandler) Create(c *gin.Context) {
	var req CreateVoteReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid params"})
		return
	}

	result, err := h.svc.Toggle(c.Request.Context(), req.EntryID, currentUserID(c), req.Value)
	if err != nil {
		fail(c, err)
		return
	}

	if result.Vote == nil {
		c.JSON(http.StatusOK, gin.H{"message": "Vote removed", "vote": nil, "total": result.Total})
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetEntryVotes is readable anonymously; a logged-in caller also gets
// their own current vote value.
func (h *VoteHandler) GetEntryVotes(c *gin.Context) {
	entryID, err := strconv.ParseUint(c.Param("entryId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid entry id"})
		return
	}

	state, err := h.svc.State(entryID, currentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}
