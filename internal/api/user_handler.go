package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"stevensfit/fitness-api/internal/domain"
	"stevensfit/fitness-api/internal/service"
)

// UserHandler serves accounts, credential checks and friends.
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// --- Request/Response Structs ---

type CreateUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

type CheckUsernameRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type CheckEmailRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AddFriendRequest struct {
	FriendID string `json:"friendId"`
}

// UserProfileResponse is the read projection: no password, no friends.
type UserProfileResponse struct {
	ID          string   `json:"id"`
	Username    string   `json:"username"`
	Email       string   `json:"email"`
	Workouts    []string `json:"workouts"`
	WorkoutLogs []string `json:"workoutLogs"`
}

// UserResponse excludes sensitive info like password hash
type UserResponse struct {
	ID          string    `json:"id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	Workouts    []string  `json:"workouts"`
	WorkoutLogs []string  `json:"workoutLogs"`
	Friends     []string  `json:"friends"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// FriendsResponse lists a user's friend ids.
type FriendsResponse struct {
	Friends []string `json:"friends"`
}

func hexIDs(ids []primitive.ObjectID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.Hex()
	}
	return out
}

func MapProfileToResponse(p *domain.UserProfile) UserProfileResponse {
	if p == nil {
		return UserProfileResponse{}
	}
	return UserProfileResponse{
		ID:          p.ID.Hex(),
		Username:    p.Username,
		Email:       p.Email,
		Workouts:    hexIDs(p.Workouts),
		WorkoutLogs: hexIDs(p.WorkoutLogs),
	}
}

func MapUserToResponse(u *domain.User) UserResponse {
	if u == nil {
		return UserResponse{}
	}
	return UserResponse{
		ID:          u.ID.Hex(),
		Username:    u.Username,
		Email:       u.Email,
		Workouts:    hexIDs(u.Workouts),
		WorkoutLogs: hexIDs(u.WorkoutLogs),
		Friends:     hexIDs(u.Friends),
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

func MapUsersToResponse(users []domain.User) []UserResponse {
	responses := make([]UserResponse, len(users))
	for i := range users {
		responses[i] = MapUserToResponse(&users[i])
	}
	return responses
}

// --- Handler Methods ---

// CreateUser godoc
// @Summary Register a new user
// @Tags Users
// @Accept json
// @Produce json
// @Param user body CreateUserRequest true "Signup details"
// @Success 201 {object} CreatedResponse "User created successfully"
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 409 {object} ErrorResponse "Username already taken"
// @Router /users [post]
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	id, err := h.userService.CreateUser(c.Request.Context(), req.Username, req.Password, req.Email)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, CreatedResponse{ID: id})
}

// CheckUsername godoc
// @Summary Check credentials by username
// @Description Verifies a username/password pair and returns the user on success.
// @Tags Users
// @Accept json
// @Produce json
// @Param credentials body CheckUsernameRequest true "Credentials"
// @Success 200 {object} UserResponse
// @Failure 401 {object} ErrorResponse "Wrong password"
// @Failure 404 {object} ErrorResponse "No such user"
// @Failure 429 {object} ErrorResponse "Too many attempts"
// @Router /users/check/username [post]
func (h *UserHandler) CheckUsername(c *gin.Context) {
	var req CheckUsernameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	user, err := h.userService.CheckUserByUsername(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapUserToResponse(user))
}

// CheckEmail godoc
// @Summary Check credentials by email
// @Tags Users
// @Accept json
// @Produce json
// @Param credentials body CheckEmailRequest true "Credentials"
// @Success 200 {object} UserResponse
// @Failure 401 {object} ErrorResponse "Wrong password"
// @Failure 404 {object} ErrorResponse "No such user"
// @Failure 429 {object} ErrorResponse "Too many attempts"
// @Router /users/check/email [post]
func (h *UserHandler) CheckEmail(c *gin.Context) {
	var req CheckEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	user, err := h.userService.CheckUserByEmail(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapUserToResponse(user))
}

// ListUsers godoc
// @Summary List every user with their friends
// @Tags Users
// @Produce json
// @Success 200 {array} UserResponse
// @Router /users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.GetAllUsers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapUsersToResponse(users))
}

// GetUser godoc
// @Summary Get a user profile by ID
// @Tags Users
// @Produce json
// @Param id path string true "User's ObjectID Hex"
// @Success 200 {object} UserProfileResponse
// @Failure 400 {object} ErrorResponse "Invalid user ID format"
// @Failure 404 {object} ErrorResponse "User not found"
// @Router /users/{id} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	profile, err := h.userService.GetUserByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapProfileToResponse(profile))
}

// GetUserByUsername godoc
// @Summary Get a user profile by username
// @Tags Users
// @Produce json
// @Param username path string true "Username"
// @Success 200 {object} UserProfileResponse
// @Failure 404 {object} ErrorResponse "User not found"
// @Router /users/username/{username} [get]
func (h *UserHandler) GetUserByUsername(c *gin.Context) {
	profile, err := h.userService.GetUserByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapProfileToResponse(profile))
}

// UpdateUser godoc
// @Summary Partially update a user
// @Description Only the supplied fields change. A supplied friends list replaces the user's friends.
// @Tags Users
// @Accept json
// @Produce json
// @Param id path string true "User's ObjectID Hex"
// @Param patch body domain.UserPatch true "Fields to change"
// @Success 200 {object} UserProfileResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 404 {object} ErrorResponse "User not found"
// @Failure 409 {object} ErrorResponse "Username already taken"
// @Router /users/{id} [put]
func (h *UserHandler) UpdateUser(c *gin.Context) {
	var patch domain.UserPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		badRequest(c, err)
		return
	}

	profile, err := h.userService.UpdateUser(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapProfileToResponse(profile))
}

// DeleteUser godoc
// @Summary Delete a user
// @Tags Users
// @Param id path string true "User's ObjectID Hex"
// @Success 200 {object} gin.H "Deletion confirmation"
// @Failure 404 {object} ErrorResponse "User not found"
// @Router /users/{id} [delete]
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id := c.Param("id")
	if err := h.userService.DeleteUser(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "deleted": true})
}

// GetFriends godoc
// @Summary List a user's friends
// @Tags Users
// @Produce json
// @Param id path string true "User's ObjectID Hex"
// @Success 200 {object} FriendsResponse
// @Failure 404 {object} ErrorResponse "User not found"
// @Router /users/{id}/friends [get]
func (h *UserHandler) GetFriends(c *gin.Context) {
	friends, err := h.userService.GetFriends(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, FriendsResponse{Friends: hexIDs(friends)})
}

// AddFriend godoc
// @Summary Befriend another user
// @Description Friendship is mutual: both users list each other afterwards.
// @Tags Users
// @Accept json
// @Produce json
// @Param id path string true "User's ObjectID Hex"
// @Param friend body AddFriendRequest true "Friend to add"
// @Success 200 {object} FriendsResponse
// @Failure 400 {object} ErrorResponse "Invalid ID or self-friendship"
// @Failure 404 {object} ErrorResponse "User not found"
// @Router /users/{id}/friends [post]
func (h *UserHandler) AddFriend(c *gin.Context) {
	var req AddFriendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	friends, err := h.userService.AddFriend(c.Request.Context(), c.Param("id"), req.FriendID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, FriendsResponse{Friends: hexIDs(friends)})
}

// RemoveFriend godoc
// @Summary End a friendship
// @Tags Users
// @Produce json
// @Param id path string true "User's ObjectID Hex"
// @Param friendId path string true "Friend's ObjectID Hex"
// @Success 200 {object} FriendsResponse
// @Failure 404 {object} ErrorResponse "User not found"
// @Router /users/{id}/friends/{friendId} [delete]
func (h *UserHandler) RemoveFriend(c *gin.Context) {
	friends, err := h.userService.RemoveFriend(c.Request.Context(), c.Param("id"), c.Param("friendId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, FriendsResponse{Friends: hexIDs(friends)})
}
