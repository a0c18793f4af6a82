package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"stevensfit/fitness-api/internal/domain"
	"stevensfit/fitness-api/internal/service"
)

// WorkoutHandler serves workout templates.
type WorkoutHandler struct {
	workoutService service.WorkoutService
}

// NewWorkoutHandler creates a new WorkoutHandler.
func NewWorkoutHandler(workoutService service.WorkoutService) *WorkoutHandler {
	return &WorkoutHandler{workoutService: workoutService}
}

// --- DTOs ---

// CreateWorkoutRequest is decoded straight into the whitelisted entry shape;
// unknown entry fields are dropped.
type CreateWorkoutRequest struct {
	Name      string                        `json:"name"`
	Creator   string                        `json:"creator"`
	Exercises []domain.WorkoutExerciseInput `json:"exercises"`
}

type WorkoutExerciseResponse struct {
	ExerciseID        string `json:"exerciseId"`
	Sets              int    `json:"sets"`
	Reps              int    `json:"reps"`
	AdditionalDetails string `json:"additionalDetails,omitempty"`
}

type WorkoutResponse struct {
	ID        string                    `json:"id"`
	Name      string                    `json:"name"`
	Creator   string                    `json:"creator"`
	Exercises []WorkoutExerciseResponse `json:"exercises"`
	CreatedAt time.Time                 `json:"createdAt"`
}

func MapWorkoutToResponse(w *domain.Workout) WorkoutResponse {
	if w == nil {
		return WorkoutResponse{}
	}
	exercises := make([]WorkoutExerciseResponse, len(w.Exercises))
	for i, e := range w.Exercises {
		exercises[i] = WorkoutExerciseResponse{
			ExerciseID:        e.ExerciseID.Hex(),
			Sets:              e.Sets,
			Reps:              e.Reps,
			AdditionalDetails: e.AdditionalDetails,
		}
	}
	return WorkoutResponse{
		ID:        w.ID.Hex(),
		Name:      w.Name,
		Creator:   w.Creator,
		Exercises: exercises,
		CreatedAt: w.CreatedAt,
	}
}

func MapWorkoutsToResponse(workouts []domain.Workout) []WorkoutResponse {
	responses := make([]WorkoutResponse, len(workouts))
	for i := range workouts {
		responses[i] = MapWorkoutToResponse(&workouts[i])
	}
	return responses
}

// --- Handler Methods ---

// CreateWorkout godoc
// @Summary Create a workout
// @Tags Workouts
// @Accept json
// @Produce json
// @Param workout body CreateWorkoutRequest true "Workout details"
// @Success 201 {object} CreatedResponse "Workout created successfully"
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Router /workouts [post]
func (h *WorkoutHandler) CreateWorkout(c *gin.Context) {
	var req CreateWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	id, err := h.workoutService.Create(c.Request.Context(), req.Name, req.Creator, req.Exercises)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, CreatedResponse{ID: id})
}

// ListWorkouts godoc
// @Summary List workouts
// @Description With exercises=a,b returns workouts containing all listed exercises; with name returns exact matches; otherwise all workouts.
// @Tags Workouts
// @Produce json
// @Param name query string false "Exact workout name"
// @Param exercises query string false "Comma separated exercise ids"
// @Success 200 {array} WorkoutResponse
// @Failure 400 {object} ErrorResponse "Invalid exercise id"
// @Router /workouts [get]
func (h *WorkoutHandler) ListWorkouts(c *gin.Context) {
	var (
		workouts []domain.Workout
		err      error
	)
	if raw, ok := c.GetQuery("exercises"); ok {
		workouts, err = h.workoutService.FilterByContainedExercises(c.Request.Context(), splitList(raw))
	} else {
		workouts, err = h.workoutService.GetByName(c.Request.Context(), c.Query("name"))
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapWorkoutsToResponse(workouts))
}

// splitList parses "a, b,,c" into ["a" "b" "c"]; an empty string yields an empty list.
func splitList(raw string) []string {
	out := []string{}
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// GetWorkout godoc
// @Summary Get a workout by ID
// @Tags Workouts
// @Produce json
// @Param id path string true "Workout's ObjectID Hex"
// @Success 200 {object} WorkoutResponse
// @Failure 400 {object} ErrorResponse "Invalid workout ID format"
// @Failure 404 {object} ErrorResponse "Workout not found"
// @Router /workouts/{id} [get]
func (h *WorkoutHandler) GetWorkout(c *gin.Context) {
	workout, err := h.workoutService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapWorkoutToResponse(workout))
}

// GetWorkoutsByCreator godoc
// @Summary List workouts a user created
// @Tags Workouts
// @Produce json
// @Param userId path string true "Creator's ObjectID Hex"
// @Success 200 {array} WorkoutResponse
// @Failure 400 {object} ErrorResponse "Invalid user ID format"
// @Router /workouts/creator/{userId} [get]
func (h *WorkoutHandler) GetWorkoutsByCreator(c *gin.Context) {
	workouts, err := h.workoutService.GetByCreator(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapWorkoutsToResponse(workouts))
}
