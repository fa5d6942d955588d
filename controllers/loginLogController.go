package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const defaultLoginLogLimit = 100

type LoginLogController struct {
	logins LoginLogStore
	log    *zap.Logger
}

func NewLoginLogController(logins LoginLogStore, log *zap.Logger) *LoginLogController {
	return &LoginLogController{logins: logins, log: log}
}

// GetLoginLogs returns the latest attempts, optionally for one artist.
func (lc *LoginLogController) GetLoginLogs() gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, err := strconv.ParseInt(c.Query("limit"), 10, 64)
		if err != nil || limit < 1 || limit > defaultLoginLogLimit {
			limit = defaultLoginLogLimit
		}
		ctx, cancel := requestContext(c)
		defer cancel()

		logs, err := lc.logins.List(ctx, c.Query("artistid"), limit)
		if err != nil {
			storeFailure(c, lc.log, "[GetLoginLogs]", err, "")
			return
		}
		c.JSON(http.StatusOK, gin.H{"count": len(logs), "logs": logs})
	}
}

func (lc *LoginLogController) ClearLoginLogs() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		removed, err := lc.logins.Clear(ctx)
		if err != nil {
			storeFailure(c, lc.log, "[ClearLoginLogs]", err, "")
			return
		}
		c.JSON(http.StatusOK, gin.H{"msg": "login history cleared", "deleted": removed})
	}
}
