package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"nclx/gymnotetaker/internal/metrics"
	"nclx/gymnotetaker/internal/service"
)

type WorkoutHandler struct {
	workouts service.WorkoutService
	metrics  *metrics.Manager
}

func NewWorkoutHandler(workouts service.WorkoutService, m *metrics.Manager) *WorkoutHandler {
	return &WorkoutHandler{workouts: workouts, metrics: m}
}

type CreateWorkoutRequest struct {
	Name string `json:"name" binding:"required"`
	// Users optionally names the owner; it must be the caller.
	Users string `json:"users"`
}

type AddExerciseRequest struct {
	Name string `json:"name" binding:"required"`
}

// CreateWorkout godoc
// @Summary Create a workout split owned by the caller
// @Tags Workouts
// @Accept json
// @Produce json
// @Param workout body CreateWorkoutRequest true "Workout"
// @Success 201 {object} domain.Workout
// @Failure 403 {object} gin.H "Owner is not the caller"
// @Router /workouts [post]
func (h *WorkoutHandler) CreateWorkout(c *gin.Context) {
	accountID, err := getAccountIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	var req CreateWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	if req.Users != "" && req.Users != accountID {
		respondWithServiceError(c, service.ErrAccessDenied)
		return
	}

	workout, err := h.workouts.CreateWorkout(c.Request.Context(), accountID, req.Name)
	if err != nil {
		respondWithServiceError(c, err)
		return
	}
	h.metrics.CounterWorkoutsCreated.Inc()
	c.JSON(http.StatusCreated, workout)
}

// AddExercise godoc
// @Summary Append an exercise to a workout
// @Tags Workouts
// @Accept json
// @Produce json
// @Param workoutId path string true "Workout ID"
// @Param exercise body AddExerciseRequest true "Exercise"
// @Success 201 {object} domain.Exercise
// @Failure 404 {object} gin.H "Workout not found"
// @Router /workouts/{workoutId}/exercises [post]
func (h *WorkoutHandler) AddExercise(c *gin.Context) {
	accountID, err := getAccountIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	var req AddExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	exercise, err := h.workouts.AddExercise(c.Request.Context(), accountID, c.Param("workoutId"), req.Name)
	if err != nil {
		respondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, exercise)
}

// ListUserWorkouts godoc
// @Summary List the workouts of a user
// @Tags Workouts
// @Produce json
// @Param userId path string true "User (account) ID"
// @Success 200 {array} domain.Workout
// @Failure 403 {object} gin.H "Not the caller's workouts"
// @Router /users/{userId}/workouts [get]
func (h *WorkoutHandler) ListUserWorkouts(c *gin.Context) {
	accountID, err := getAccountIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	workouts, err := h.workouts.ListUserWorkouts(c.Request.Context(), accountID, c.Param("userId"))
	if err != nil {
		respondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, workouts)
}

// GetWorkout godoc
// @Summary A workout with its exercises
// @Tags Workouts
// @Produce json
// @Param workoutId path string true "Workout ID"
// @Success 200 {object} domain.WorkoutDetails
// @Failure 404 {object} gin.H "Workout not found"
// @Failure 422 {object} gin.H "Workout has no exercises"
// @Router /workouts/{workoutId} [get]
func (h *WorkoutHandler) GetWorkout(c *gin.Context) {
	accountID, err := getAccountIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	details, err := h.workouts.FetchWorkout(c.Request.Context(), accountID, c.Param("workoutId"))
	if err != nil {
		respondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, details)
}
