package controllers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/ishanbagra18/artfolio-server/database"
	"github.com/ishanbagra18/artfolio-server/middleware"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

var validate = validator.New()

const requestTimeout = 10 * time.Second

func requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), requestTimeout)
}

// bindJSON decodes and validates the body, answering 400 on failure.
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	if n, ok := dst.(interface{ Normalize() }); ok {
		n.Normalize()
	}
	if err := validate.Struct(dst); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}

func objectIDParam(c *gin.Context, name string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return primitive.NilObjectID, false
	}
	return id, true
}

// storeFailure answers 404 for missing documents and 500 for anything else.
func storeFailure(c *gin.Context, log *zap.Logger, tag string, err error, notFound string) {
	if errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": notFound})
		return
	}
	log.Error(tag+" store error", zap.Error(err), zap.String("request_id", c.GetString(middleware.CtxRequestID)))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}

func currentArtistID(c *gin.Context) string {
	return c.GetString(middleware.CtxArtistID)
}

func currentRole(c *gin.Context) string {
	return c.GetString(middleware.CtxRole)
}
