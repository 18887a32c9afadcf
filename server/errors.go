package server

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"train-search-server/models"
	"train-search-server/search"
)

func abortWithError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, models.ErrorResponse{Error: models.ApiError{Message: message}})
}

// handleErrors is the boundary for errors attached with c.Error. Details are
// logged; the client only sees a generic message.
func handleErrors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		var invalid *search.InvalidDataError
		switch {
		case errors.As(err, &invalid):
			log.Printf("ERROR: stored data rejected: %v", err)
		case errors.Is(err, search.ErrUpstream):
			log.Printf("ERROR: schedule store failed: %v", err)
		default:
			log.Printf("ERROR: %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		}
		abortWithError(c, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
	}
}

func handleNotFound(c *gin.Context) {
	abortWithError(c, http.StatusNotFound, "Not Found")
}

func handlePanic(c *gin.Context, recovered any) {
	log.Printf("ERROR: panic serving %s %s: %v", c.Request.Method, c.Request.URL.Path, recovered)
	abortWithError(c, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
}
