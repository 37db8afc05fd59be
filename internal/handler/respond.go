package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"sozluk/internal/middleware"
	"sozluk/internal/pkg"
	"sozluk/internal/service"
)

func fail(c *gin.Context, err error) {
	c.JSON(pkg.HTTPStatus(err), gin.H{"message": err.Error()})
}

func listResponse(items any, p service.Pagination) gin.H {
	return gin.H{"items": items, "pagination": p}
}

func pageParams(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.Query("page"))
	limit, _ = strconv.Atoi(c.Query("limit"))
	return page, limit
}

func currentUserID(c *gin.Context) uint64 {
	return middleware.UserID(c)
}
