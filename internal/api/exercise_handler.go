package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"stevensfit/fitness-api/internal/domain"
	"stevensfit/fitness-api/internal/service"
)

// ExerciseHandler holds the exercise service dependency.
type ExerciseHandler struct {
	exerciseService service.ExerciseService
}

// NewExerciseHandler creates a new ExerciseHandler.
func NewExerciseHandler(exerciseService service.ExerciseService) *ExerciseHandler {
	return &ExerciseHandler{exerciseService: exerciseService}
}

// --- DTOs for API (Data Transfer Objects) ---

// CreateExerciseRequest defines the expected JSON for creating an exercise.
// Field rules are enforced by the service.
type CreateExerciseRequest struct {
	Name      string `json:"name"`
	Target    string `json:"target"`    // e.g. "glutes"
	BodyPart  string `json:"bodyPart"`  // e.g. "upper legs"
	Equipment string `json:"equipment"` // e.g. "barbell"
	GifURL    string `json:"gifUrl"`
}

// CreatedResponse returns the identifier of a newly created document.
type CreatedResponse struct {
	ID string `json:"id"`
}

// ExerciseResponse is the DTO for returning exercise details.
type ExerciseResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Target    string    `json:"target"`
	BodyPart  string    `json:"bodyPart"`
	Equipment string    `json:"equipment"`
	GifURL    string    `json:"gifUrl"`
	CreatedAt time.Time `json:"createdAt"`
}

// MapExerciseToResponse converts a domain.Exercise to ExerciseResponse DTO.
func MapExerciseToResponse(ex *domain.Exercise) ExerciseResponse {
	if ex == nil {
		return ExerciseResponse{}
	}
	return ExerciseResponse{
		ID:        ex.ID.Hex(),
		Name:      ex.Name,
		Target:    ex.Target,
		BodyPart:  ex.BodyPart,
		Equipment: ex.Equipment,
		GifURL:    ex.GifURL,
		CreatedAt: ex.CreatedAt,
	}
}

// MapExercisesToResponse converts a slice of domain.Exercise to a slice of ExerciseResponse DTO.
func MapExercisesToResponse(exercises []domain.Exercise) []ExerciseResponse {
	responses := make([]ExerciseResponse, len(exercises))
	for i := range exercises {
		responses[i] = MapExerciseToResponse(&exercises[i])
	}
	return responses
}

// --- Handler Methods ---

// CreateExercise godoc
// @Summary Create a new exercise
// @Description Adds an exercise to the shared library.
// @Tags Exercises
// @Accept json
// @Produce json
// @Param exercise body CreateExerciseRequest true "Exercise details"
// @Success 201 {object} CreatedResponse "Exercise created successfully"
// @Failure 400 {object} ErrorResponse "Invalid input (validation error)"
// @Failure 500 {object} ErrorResponse "Internal Server Error"
// @Router /exercises [post]
func (h *ExerciseHandler) CreateExercise(c *gin.Context) {
	var req CreateExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	id, err := h.exerciseService.Create(c.Request.Context(), req.Name, req.Target, req.BodyPart, req.Equipment, req.GifURL)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, CreatedResponse{ID: id})
}

// ListExercises godoc
// @Summary List or filter exercises
// @Description Returns exercises matching every supplied query parameter; with none, returns all exercises.
// @Tags Exercises
// @Produce json
// @Param name query string false "Exact name"
// @Param bodyPart query string false "Body part"
// @Param equipment query string false "Equipment"
// @Param target query string false "Target muscle"
// @Success 200 {array} ExerciseResponse "List of exercises"
// @Failure 500 {object} ErrorResponse "Internal Server Error"
// @Router /exercises [get]
func (h *ExerciseHandler) ListExercises(c *gin.Context) {
	filter := domain.ExerciseFilter{
		Name:      c.Query("name"),
		BodyPart:  c.Query("bodyPart"),
		Equipment: c.Query("equipment"),
		Target:    c.Query("target"),
	}

	exercises, err := h.exerciseService.FilterBy(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapExercisesToResponse(exercises))
}

// GetExercise godoc
// @Summary Get an exercise by ID
// @Tags Exercises
// @Produce json
// @Param id path string true "Exercise's ObjectID Hex"
// @Success 200 {object} ExerciseResponse
// @Failure 400 {object} ErrorResponse "Invalid exercise ID format"
// @Failure 404 {object} ErrorResponse "Exercise not found"
// @Router /exercises/{id} [get]
func (h *ExerciseHandler) GetExercise(c *gin.Context) {
	exercise, err := h.exerciseService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapExerciseToResponse(exercise))
}

// GetExerciseByName godoc
// @Summary Get an exercise by exact name
// @Tags Exercises
// @Produce json
// @Param name path string true "Exercise name"
// @Success 200 {object} ExerciseResponse
// @Failure 404 {object} ErrorResponse "Exercise not found"
// @Router /exercises/name/{name} [get]
func (h *ExerciseHandler) GetExerciseByName(c *gin.Context) {
	exercise, err := h.exerciseService.GetByName(c.Request.Context(), c.Param("name"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapExerciseToResponse(exercise))
}

// GetExercisesByBodyPart godoc
// @Summary List exercises for a body part
// @Tags Exercises
// @Produce json
// @Param bodyPart path string true "Body part"
// @Success 200 {array} ExerciseResponse
// @Router /exercises/body-part/{bodyPart} [get]
func (h *ExerciseHandler) GetExercisesByBodyPart(c *gin.Context) {
	h.list(c, h.exerciseService.GetByBodyPart, c.Param("bodyPart"))
}

// GetExercisesByEquipment godoc
// @Summary List exercises using a piece of equipment
// @Tags Exercises
// @Produce json
// @Param equipment path string true "Equipment"
// @Success 200 {array} ExerciseResponse
// @Router /exercises/equipment/{equipment} [get]
func (h *ExerciseHandler) GetExercisesByEquipment(c *gin.Context) {
	h.list(c, h.exerciseService.GetByEquipment, c.Param("equipment"))
}

// GetExercisesByTarget godoc
// @Summary List exercises for a target muscle
// @Tags Exercises
// @Produce json
// @Param target path string true "Target muscle"
// @Success 200 {array} ExerciseResponse
// @Router /exercises/target/{target} [get]
func (h *ExerciseHandler) GetExercisesByTarget(c *gin.Context) {
	h.list(c, h.exerciseService.GetByTarget, c.Param("target"))
}

func (h *ExerciseHandler) list(c *gin.Context, query func(ctx context.Context, key string) ([]domain.Exercise, error), key string) {
	exercises, err := query(c.Request.Context(), key)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapExercisesToResponse(exercises))
}
