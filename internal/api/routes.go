package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stevensfit/fitness-api/internal/service"
)

// Services bundles the dependencies of every handler.
type Services struct {
	Exercises   service.ExerciseService
	Users       service.UserService
	Workouts    service.WorkoutService
	WorkoutLogs service.WorkoutLogService
}

// SetupRoutes registers /ping and the /api/v1 routes. checkLimiter throttles
// the credential-check endpoints; nil disables throttling.
func SetupRoutes(router *gin.Engine, checkLimiter RateLimiter, services Services) {
	exerciseHandler := NewExerciseHandler(services.Exercises)
	userHandler := NewUserHandler(services.Users)
	workoutHandler := NewWorkoutHandler(services.Workouts)
	logHandler := NewWorkoutLogHandler(services.WorkoutLogs)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")

	// --- Exercise Routes ---
	exerciseGroup := apiV1.Group("/exercises")
	{
		exerciseGroup.POST("", exerciseHandler.CreateExercise)
		exerciseGroup.GET("", exerciseHandler.ListExercises)
		exerciseGroup.GET("/:id", exerciseHandler.GetExercise)
		exerciseGroup.GET("/name/:name", exerciseHandler.GetExerciseByName)
		exerciseGroup.GET("/body-part/:bodyPart", exerciseHandler.GetExercisesByBodyPart)
		exerciseGroup.GET("/equipment/:equipment", exerciseHandler.GetExercisesByEquipment)
		exerciseGroup.GET("/target/:target", exerciseHandler.GetExercisesByTarget)
	}

	// --- User Routes ---
	userGroup := apiV1.Group("/users")
	{
		userGroup.POST("", userHandler.CreateUser)
		userGroup.GET("", userHandler.ListUsers)
		userGroup.GET("/:id", userHandler.GetUser)
		userGroup.GET("/username/:username", userHandler.GetUserByUsername)
		userGroup.PUT("/:id", userHandler.UpdateUser)
		userGroup.DELETE("/:id", userHandler.DeleteUser)

		// Credential checks are the brute-force surface; throttle per client IP.
		checkGroup := userGroup.Group("/check")
		checkGroup.Use(RateLimit(checkLimiter))
		{
			checkGroup.POST("/username", userHandler.CheckUsername)
			checkGroup.POST("/email", userHandler.CheckEmail)
		}

		userGroup.GET("/:id/friends", userHandler.GetFriends)
		userGroup.POST("/:id/friends", userHandler.AddFriend)
		userGroup.DELETE("/:id/friends/:friendId", userHandler.RemoveFriend)
	}

	// --- Workout Routes ---
	workoutGroup := apiV1.Group("/workouts")
	{
		workoutGroup.POST("", workoutHandler.CreateWorkout)
		workoutGroup.GET("", workoutHandler.ListWorkouts)
		workoutGroup.GET("/:id", workoutHandler.GetWorkout)
		workoutGroup.GET("/creator/:userId", workoutHandler.GetWorkoutsByCreator)
	}

	// --- Workout Log Routes ---
	logGroup := apiV1.Group("/workoutLogs")
	{
		logGroup.POST("", logHandler.CreateWorkoutLog)
		logGroup.GET("", logHandler.ListWorkoutLogs)
		logGroup.GET("/:id", logHandler.GetWorkoutLog)
		logGroup.GET("/user/:id", logHandler.GetWorkoutLogsByUser)
		logGroup.GET("/workout/:id", logHandler.GetWorkoutLogsByWorkout)
		logGroup.GET("/date/:date", logHandler.GetWorkoutLogsByDate)
		logGroup.PUT("/:id", logHandler.UpdateWorkoutLog)
		logGroup.DELETE("/:id", logHandler.DeleteWorkoutLog)
		logGroup.POST("/:id/exercises", logHandler.AddExercise)
		logGroup.DELETE("/:id/exercises/:exerciseId", logHandler.RemoveExercise)
	}
}
