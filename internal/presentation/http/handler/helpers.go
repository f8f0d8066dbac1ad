package handler

import (
	"strconv"

	"github.com/chaatgpt/till/pkg/pagination"
	"github.com/gin-gonic/gin"
)

// isConfirmed reads the confirm=true query flag used by destructive actions
func isConfirmed(c *gin.Context) bool {
	ok, _ := strconv.ParseBool(c.Query("confirm"))
	return ok
}

// pageParams reads page and per_page from the query string
func pageParams(c *gin.Context) pagination.PaginationParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))
	return pagination.PaginationParams{Page: page, PerPage: perPage}
}
