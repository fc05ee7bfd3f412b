package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"nclx/gymnotetaker/internal/domain"
	"nclx/gymnotetaker/internal/metrics"
	"nclx/gymnotetaker/internal/service"
)

type SetHandler struct {
	sets    service.SetService
	metrics *metrics.Manager
}

func NewSetHandler(sets service.SetService, m *metrics.Manager) *SetHandler {
	return &SetHandler{sets: sets, metrics: m}
}

// CreateSetRequest uses pointers so that a zero weight still counts as present.
type CreateSetRequest struct {
	Weight *float64 `json:"weight" binding:"required"`
	Reps   *int     `json:"reps" binding:"required"`
	Week   *int     `json:"week" binding:"required"`
}

// CreateSet godoc
// @Summary Log a set for an exercise
// @Tags Sets
// @Accept json
// @Produce json
// @Param exerciseId path string true "Exercise ID"
// @Param set body CreateSetRequest true "Set"
// @Success 201 {object} domain.Set
// @Failure 400 {object} gin.H "Week is not a positive integer"
// @Router /exercises/{exerciseId}/sets [post]
func (h *SetHandler) CreateSet(c *gin.Context) {
	accountID, err := getAccountIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	var req CreateSetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	set, err := h.sets.CreateExerciseSet(c.Request.Context(), accountID, c.Param("exerciseId"), *req.Weight, *req.Reps, *req.Week)
	if err != nil {
		respondWithServiceError(c, err)
		return
	}
	h.metrics.CounterSetsLogged.Inc()
	c.JSON(http.StatusCreated, set)
}

// ListSets godoc
// @Summary Sets of an exercise in one week, oldest first
// @Tags Sets
// @Produce json
// @Param exerciseId path string true "Exercise ID"
// @Param week query int true "Week number"
// @Success 200 {array} domain.Set
// @Failure 400 {object} gin.H "Week is not a positive integer"
// @Router /exercises/{exerciseId}/sets [get]
func (h *SetHandler) ListSets(c *gin.Context) {
	accountID, err := getAccountIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	week, err := domain.ParseWeek(c.Query("week"))
	if err != nil {
		respondWithServiceError(c, err)
		return
	}

	sets, err := h.sets.FetchWeek(c.Request.Context(), accountID, c.Param("exerciseId"), week)
	if err != nil {
		respondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, sets)
}
