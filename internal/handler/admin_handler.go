package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"sozluk/internal/pkg"
	"sozluk/internal/service"
)

type AdminHandler struct {
	svc *service.AdminService
}

type UpdateRoleReq struct {
	Role string `json:"role" binding:"required"`
}

type MoveTopicReq struct {
	NewTitle string `json:"newTitle" binding:"required,min=2,max=200"`
}

type MoveEntryReq struct {
	NewTopicID uint64 `json:"newTopicId" binding:"required"`
}

type BanUserReq struct {
	Reason string `json:"reason" binding:"required"`
	// RFC3339; omit for a permanent ban.
	Until string `json:"until" binding:"omitempty"`
}

type UpdatePermissionsReq struct {
	CanDeleteEntry *bool `json:"canDeleteEntry"`
	CanDeleteTopic *bool `json:"canDeleteTopic"`
	CanBanUser     *bool `json:"canBanUser"`
	CanEditEntry   *bool `json:"canEditEntry"`
	CanMoveEntry   *bool `json:"canMoveEntry"`
	CanMergeTopic  *bool `json:"canMergeTopic"`
}

func NewAdminHandler(db *gorm.DB, smtp pkg.SMTPConfig, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{svc: service.NewAdminService(db, smtp, logger)}
}

func paramID(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid " + name})
		return 0, false
	}
	return id, true
}

// --- users ---

func (h *AdminHandler) ListUsers(c *gin.Context) {
	page, limit := pageParams(c)

	users, pagination, err := h.svc.ListUsers(page, limit, c.Query("search"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, listResponse(users, pagination))
}

func (h *AdminHandler) GetUser(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	user, err := h.svc.GetUser(id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *AdminHandler) UpdateUserRole(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req UpdateRoleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid params"})
		return
	}

	user, err := h.svc.UpdateUserRole(currentUserID(c), id, req.Role)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *AdminHandler) DeleteUser(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.svc.DeleteUser(currentUserID(c), id); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}

// --- topics ---

func (h *AdminHandler) MoveTopic(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req MoveTopicReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid params"})
		return
	}

	topic, err := h.svc.MoveTopic(currentUserID(c), id, req.NewTitle)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, topic)
}

func (h *AdminHandler) MergeTopics(c *gin.Context) {
	sourceID, ok := paramID(c, "sourceId")
	if !ok {
		return
	}
	targetID, ok := paramID(c, "targetId")
	if !ok {
		return
	}

	result, err := h.svc.MergeTopics(currentUserID(c), sourceID, targetID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *AdminHandler) DeleteTopic(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.svc.DeleteTopic(currentUserID(c), id); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Topic deleted successfully"})
}

// --- entries ---

func (h *AdminHandler) MoveEntry(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req MoveEntryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid params"})
		return
	}

	entry, err := h.svc.MoveEntry(currentUserID(c), id, req.NewTopicID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

func (h *AdminHandler) ForceDeleteEntry(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.svc.ForceDeleteEntry(currentUserID(c), id); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Entry permanently deleted"})
}

// --- statistics / activity ---

func (h *AdminHandler) Statistics(c *gin.Context) {
	stats, err := h.svc.Statistics()
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *AdminHandler) ActivityFeed(c *gin.Context) {
	page, limit := pageParams(c)

	activities, pagination, err := h.svc.ActivityFeed(page, limit)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, listResponse(activities, pagination))
}

// --- moderator permissions ---

func (h *AdminHandler) GetPermissions(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	perm, err := h.svc.GetPermissions(id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, perm)
}

func (h *AdminHandler) UpdatePermissions(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req UpdatePermissionsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid params"})
		return
	}

	perm, err := h.svc.UpdatePermissions(id, service.PermissionPatch{
		CanDeleteEntry: req.CanDeleteEntry,
		CanDeleteTopic: req.CanDeleteTopic,
		CanBanUser:     req.CanBanUser,
		CanEditEntry:   req.CanEditEntry,
		CanMoveEntry:   req.CanMoveEntry,
		CanMergeTopic:  req.CanMergeTopic,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, perm)
}

// --- bans ---

func (h *AdminHandler) BanUser(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req BanUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid params"})
		return
	}

	var until *time.Time
	if req.Until != "" {
		t, err := time.Parse(time.RFC3339, req.Until)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid until timestamp"})
			return
		}
		until = &t
	}

	user, err := h.svc.BanUser(currentUserID(c), id, req.Reason, until)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *AdminHandler) UnbanUser(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.svc.UnbanUser(currentUserID(c), id); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User unbanned successfully"})
}

func (h *AdminHandler) BannedUsers(c *gin.Context) {
	users, err := h.svc.BannedUsers()
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}
