package server

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"train-search-server/models"
	"train-search-server/search"
	"train-search-server/store"
)

type TrainHandler struct {
	store          store.Store
	search         *search.Service
	requestTimeout time.Duration
}

func NewTrainHandler(s store.Store, requestTimeout time.Duration) *TrainHandler {
	return &TrainHandler{
		store:          s,
		search:         search.NewService(s),
		requestTimeout: requestTimeout,
	}
}

func (h *TrainHandler) RegisterRoutes(r gin.IRouter) {
	r.POST("/trains", h.CreateTrain)
	r.GET("/trains", h.ListTrains)
	r.GET("/trains/search", h.SearchTrains)
}

func (h *TrainHandler) context(c *gin.Context) (context.Context, context.CancelFunc) {
	if h.requestTimeout <= 0 {
		return context.WithCancel(c.Request.Context())
	}
	return context.WithTimeout(c.Request.Context(), h.requestTimeout)
}

func (h *TrainHandler) CreateTrain(c *gin.Context) {
	var req models.CreateTrainRequest
	err := c.ShouldBindJSON(&req)
	if errors.Is(err, io.EOF) {
		// an empty body validates like {}
		err = binding.Validator.ValidateStruct(&req)
	}
	if err != nil {
		if errs, ok := fieldErrors(err); ok {
			c.JSON(http.StatusUnprocessableEntity, models.ValidationErrorResponse{Errors: errs})
			return
		}
		log.Printf("ERROR: Failed to parse request: %v", err)
		abortWithError(c, http.StatusBadRequest, "Malformed JSON body")
		return
	}

	ctx, cancel := h.context(c)
	defer cancel()

	train, err := h.store.CreateTrain(ctx, req.ToTrain())
	if err != nil {
		_ = c.Error(err)
		return
	}

	log.Printf("Created train %q (%s) with %d stops", train.Name, train.ID, len(train.Stops))
	c.JSON(http.StatusOK, train)
}

func (h *TrainHandler) ListTrains(c *gin.Context) {
	ctx, cancel := h.context(c)
	defer cancel()

	trains, err := h.store.FetchAllTrains(ctx)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, trains)
}

func (h *TrainHandler) SearchTrains(c *gin.Context) {
	log.Println("=== Received train search request ===")

	var q models.SearchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		if errs, ok := fieldErrors(err); ok {
			c.JSON(http.StatusUnprocessableEntity, models.ValidationErrorResponse{Errors: errs})
			return
		}
		_ = c.Error(err)
		return
	}

	ctx, cancel := h.context(c)
	defer cancel()

	itineraries, err := h.search.Search(ctx, q.Source, q.Destination)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, itineraries)
	log.Println("=== Train search request completed ===")
}
