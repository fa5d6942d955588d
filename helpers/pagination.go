package helpers

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// Pagination reads ?page and ?recordPerPage with sane bounds.
func Pagination(c *gin.Context) (page, perPage int) {
	perPage, err := strconv.Atoi(c.Query("recordPerPage"))
	if err != nil || perPage < 1 {
		perPage = 20
	}
	if perPage > 100 {
		perPage = 100
	}
	page, err = strconv.Atoi(c.Query("page"))
	if err != nil || page < 1 {
		page = 1
	}
	return page, perPage
}
