package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ishanbagra18/artfolio-server/models"
	"go.uber.org/zap"
)

type ServiceController struct {
	services ServiceStore
	log      *zap.Logger
	now      func() time.Time
}

func NewServiceController(services ServiceStore, log *zap.Logger) *ServiceController {
	return &ServiceController{services: services, log: log, now: time.Now}
}

func (sc *ServiceController) PublicServices() gin.HandlerFunc {
	return sc.list(true)
}

func (sc *ServiceController) ListServices() gin.HandlerFunc {
	return sc.list(false)
}

func (sc *ServiceController) list(activeOnly bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		items, err := sc.services.List(ctx, activeOnly)
		if err != nil {
			storeFailure(c, sc.log, "[ListServices]", err, "")
			return
		}
		c.JSON(http.StatusOK, gin.H{"count": len(items), "services": items})
	}
}

func (sc *ServiceController) CreateService() gin.HandlerFunc {
	return func(c *gin.Context) {
		var svc models.Service
		if !bindJSON(c, &svc) {
			return
		}
		ctx, cancel := requestContext(c)
		defer cancel()

		now := sc.now()
		svc.CreatedAt = now
		svc.UpdatedAt = now
		if err := sc.services.Insert(ctx, &svc); err != nil {
			storeFailure(c, sc.log, "[CreateService]", err, "")
			return
		}
		c.JSON(http.StatusCreated, gin.H{"msg": "service created", "service": svc})
	}
}

func (sc *ServiceController) UpdateService() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := objectIDParam(c, "id")
		if !ok {
			return
		}
		var svc models.Service
		if !bindJSON(c, &svc) {
			return
		}
		ctx, cancel := requestContext(c)
		defer cancel()

		svc.UpdatedAt = sc.now()
		updated, err := sc.services.Update(ctx, id, svc)
		if err != nil {
			storeFailure(c, sc.log, "[UpdateService]", err, "Service not found")
			return
		}
		c.JSON(http.StatusOK, gin.H{"msg": "service updated", "service": updated})
	}
}

func (sc *ServiceController) DeleteService() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := objectIDParam(c, "id")
		if !ok {
			return
		}
		ctx, cancel := requestContext(c)
		defer cancel()

		if err := sc.services.Delete(ctx, id); err != nil {
			storeFailure(c, sc.log, "[DeleteService]", err, "Service not found")
			return
		}
		c.JSON(http.StatusOK, gin.H{"msg": "service deleted"})
	}
}
