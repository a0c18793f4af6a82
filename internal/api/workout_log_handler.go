package api

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"stevensfit/fitness-api/internal/domain"
	"stevensfit/fitness-api/internal/service"
)

// WorkoutLogHandler serves completed-workout logs.
type WorkoutLogHandler struct {
	logService service.WorkoutLogService
}

// NewWorkoutLogHandler creates a new WorkoutLogHandler.
func NewWorkoutLogHandler(logService service.WorkoutLogService) *WorkoutLogHandler {
	return &WorkoutLogHandler{logService: logService}
}

// --- DTOs ---

type ExerciseLogResponse struct {
	ExerciseID string `json:"exerciseId"`
	Name       string `json:"name"`
	Sets       int    `json:"sets"`
	Reps       int    `json:"reps"`
	Notes      string `json:"notes"`
}

type WorkoutLogResponse struct {
	ID           string                `json:"id"`
	UserID       string                `json:"userId"`
	WorkoutID    string                `json:"workoutId"`
	Date         string                `json:"date"` // YYYY-MM-DD
	ExerciseLogs []ExerciseLogResponse `json:"exerciseLogs"`
	CreatedAt    time.Time             `json:"createdAt"`
	UpdatedAt    time.Time             `json:"updatedAt"`
}

func MapWorkoutLogToResponse(l *domain.WorkoutLog) WorkoutLogResponse {
	if l == nil {
		return WorkoutLogResponse{}
	}
	entries := make([]ExerciseLogResponse, len(l.ExerciseLogs))
	for i, e := range l.ExerciseLogs {
		entries[i] = ExerciseLogResponse{
			ExerciseID: e.ExerciseID.Hex(),
			Name:       e.Name,
			Sets:       e.Sets,
			Reps:       e.Reps,
			Notes:      e.Notes,
		}
	}
	return WorkoutLogResponse{
		ID:           l.ID.Hex(),
		UserID:       l.UserID.Hex(),
		WorkoutID:    l.WorkoutID.Hex(),
		Date:         l.Date.UTC().Format(time.DateOnly),
		ExerciseLogs: entries,
		CreatedAt:    l.CreatedAt,
		UpdatedAt:    l.UpdatedAt,
	}
}

func MapWorkoutLogsToResponse(logs []domain.WorkoutLog) []WorkoutLogResponse {
	responses := make([]WorkoutLogResponse, len(logs))
	for i := range logs {
		responses[i] = MapWorkoutLogToResponse(&logs[i])
	}
	return responses
}

// --- Handler Methods ---

// CreateWorkoutLog godoc
// @Summary Log a completed workout
// @Tags WorkoutLogs
// @Accept json
// @Produce json
// @Param log body domain.WorkoutLogInput true "Log details"
// @Success 201 {object} WorkoutLogResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Router /workoutLogs [post]
func (h *WorkoutLogHandler) CreateWorkoutLog(c *gin.Context) {
	var req domain.WorkoutLogInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	log, err := h.logService.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, MapWorkoutLogToResponse(log))
}

// ListWorkoutLogs godoc
// @Summary List or filter workout logs
// @Description Filters on whichever of userId, workoutId and date are given; with none, returns every log.
// @Tags WorkoutLogs
// @Produce json
// @Param userId query string false "User's ObjectID Hex"
// @Param workoutId query string false "Workout's ObjectID Hex"
// @Param date query string false "Date performed, e.g. 2024-03-15"
// @Success 200 {array} WorkoutLogResponse
// @Failure 400 {object} ErrorResponse "Invalid filter value"
// @Router /workoutLogs [get]
func (h *WorkoutLogHandler) ListWorkoutLogs(c *gin.Context) {
	logs, err := h.logService.FilterLogs(c.Request.Context(), c.Query("userId"), c.Query("workoutId"), c.Query("date"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapWorkoutLogsToResponse(logs))
}

// GetWorkoutLog godoc
// @Summary Get a workout log by ID
// @Tags WorkoutLogs
// @Produce json
// @Param id path string true "Log's ObjectID Hex"
// @Success 200 {object} WorkoutLogResponse
// @Failure 404 {object} ErrorResponse "Log not found"
// @Router /workoutLogs/{id} [get]
func (h *WorkoutLogHandler) GetWorkoutLog(c *gin.Context) {
	log, err := h.logService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapWorkoutLogToResponse(log))
}

// GetWorkoutLogsByUser godoc
// @Summary List a user's workout logs
// @Tags WorkoutLogs
// @Produce json
// @Param id path string true "User's ObjectID Hex"
// @Success 200 {array} WorkoutLogResponse
// @Router /workoutLogs/user/{id} [get]
func (h *WorkoutLogHandler) GetWorkoutLogsByUser(c *gin.Context) {
	logs, err := h.logService.GetByUser(c.Request.Context(), c.Param("id"))
	h.list(c, logs, err)
}

// GetWorkoutLogsByWorkout godoc
// @Summary List logs of a workout
// @Tags WorkoutLogs
// @Produce json
// @Param id path string true "Workout's ObjectID Hex"
// @Success 200 {array} WorkoutLogResponse
// @Router /workoutLogs/workout/{id} [get]
func (h *WorkoutLogHandler) GetWorkoutLogsByWorkout(c *gin.Context) {
	logs, err := h.logService.GetByWorkout(c.Request.Context(), c.Param("id"))
	h.list(c, logs, err)
}

// GetWorkoutLogsByDate godoc
// @Summary List logs performed on a date
// @Tags WorkoutLogs
// @Produce json
// @Param date path string true "Date, e.g. 2024-03-15"
// @Success 200 {array} WorkoutLogResponse
// @Router /workoutLogs/date/{date} [get]
func (h *WorkoutLogHandler) GetWorkoutLogsByDate(c *gin.Context) {
	logs, err := h.logService.GetByDate(c.Request.Context(), c.Param("date"))
	h.list(c, logs, err)
}

func (h *WorkoutLogHandler) list(c *gin.Context, logs []domain.WorkoutLog, err error) {
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapWorkoutLogsToResponse(logs))
}

// UpdateWorkoutLog godoc
// @Summary Replace a workout log
// @Tags WorkoutLogs
// @Accept json
// @Produce json
// @Param id path string true "Log's ObjectID Hex"
// @Param log body domain.WorkoutLogInput true "New log contents"
// @Success 200 {object} WorkoutLogResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 404 {object} ErrorResponse "Log not found"
// @Router /workoutLogs/{id} [put]
func (h *WorkoutLogHandler) UpdateWorkoutLog(c *gin.Context) {
	var req domain.WorkoutLogInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	log, err := h.logService.UpdateLog(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapWorkoutLogToResponse(log))
}

// DeleteWorkoutLog godoc
// @Summary Delete a workout log
// @Tags WorkoutLogs
// @Produce json
// @Param id path string true "Log's ObjectID Hex"
// @Success 200 {object} WorkoutLogResponse "The deleted log"
// @Failure 404 {object} ErrorResponse "Log not found"
// @Router /workoutLogs/{id} [delete]
func (h *WorkoutLogHandler) DeleteWorkoutLog(c *gin.Context) {
	log, err := h.logService.DeleteLog(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapWorkoutLogToResponse(log))
}

// AddExercise godoc
// @Summary Append an exercise entry to a log
// @Description The body must be a single entry object, not an array.
// @Tags WorkoutLogs
// @Accept json
// @Produce json
// @Param id path string true "Log's ObjectID Hex"
// @Param entry body domain.ExerciseLogInput true "Exercise entry"
// @Success 200 {object} WorkoutLogResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 404 {object} ErrorResponse "Log not found"
// @Router /workoutLogs/{id}/exercises [post]
func (h *WorkoutLogHandler) AddExercise(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		badRequest(c, err)
		return
	}
	if trimmed := bytes.TrimSpace(body); len(trimmed) > 0 && trimmed[0] == '[' {
		abortWithError(c, http.StatusBadRequest, "invalid_argument", "workoutLogs.addExercise: must provide exerciseLog, not array")
		return
	}

	var entry domain.ExerciseLogInput
	if err := binding.JSON.BindBody(body, &entry); err != nil {
		badRequest(c, err)
		return
	}

	log, err := h.logService.AddExercise(c.Request.Context(), c.Param("id"), entry)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapWorkoutLogToResponse(log))
}

// RemoveExercise godoc
// @Summary Remove every entry for an exercise from a log
// @Tags WorkoutLogs
// @Produce json
// @Param id path string true "Log's ObjectID Hex"
// @Param exerciseId path string true "Exercise's ObjectID Hex"
// @Success 200 {object} WorkoutLogResponse
// @Failure 404 {object} ErrorResponse "Log not found"
// @Router /workoutLogs/{id}/exercises/{exerciseId} [delete]
func (h *WorkoutLogHandler) RemoveExercise(c *gin.Context) {
	log, err := h.logService.RemoveExercise(c.Request.Context(), c.Param("id"), c.Param("exerciseId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapWorkoutLogToResponse(log))
}
