package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"microblog/backend/internal/cache"
	"microblog/backend/internal/database"
	"microblog/backend/internal/models"
	"microblog/backend/pkg/jwt"
	"microblog/backend/pkg/logging"
)

// region --- DTOs ---

// SignupInput defines the structure for user registration.
type SignupInput struct {
	Username        string `json:"username" binding:"required" example:"alice"`
	Password        string `json:"password" binding:"required,min=8" example:"password123"`
	ConfirmPassword string `json:"confirm_password" binding:"required" example:"password123"`
}

// LoginInput defines the structure for user login.
type LoginInput struct {
	Username string `json:"username" binding:"required" example:"alice"`
	Password string `json:"password" binding:"required" example:"password123"`
}

// ProfileUpdateInput defines the structure for a full profile update.
type ProfileUpdateInput struct {
	Username  string `json:"username" binding:"required" example:"alice"`
	FirstName string `json:"first_name" example:"Alice"`
	LastName  string `json:"last_name" example:"Smith"`
	Email     string `json:"email" binding:"omitempty,email" example:"alice@example.com"`
}

// ProfilePatchInput defines the structure for a partial profile update.
type ProfilePatchInput struct {
	Username  *string `json:"username"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Email     *string `json:"email" binding:"omitempty,email"`
}

// ChangePasswordInput defines the structure for a password change.
type ChangePasswordInput struct {
	OldPassword     string `json:"old_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

// ProfileResponse defines the structure for a user profile projection.
// The is_* fields are always false for anonymous viewers.
type ProfileResponse struct {
	Username    string `json:"username" example:"alice"`
	FirstName   string `json:"first_name" example:"Alice"`
	LastName    string `json:"last_name" example:"Smith"`
	Email       string `json:"email" example:"alice@example.com"`
	IsFollowing bool   `json:"is_following"`
	IsFollower  bool   `json:"is_follower"`
	IsMe        bool   `json:"is_me"`
}

// endregion

// region --- Auth Handlers ---

// Signup godoc
// @Summary      Register a new user
// @Description  Creates a new account. Only available to unauthenticated callers.
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Param        input body SignupInput true "Registration Info"
// @Success      201  {object}  map[string]string "{"username": "alice"}"
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Already authenticated"
// @Failure      500  {object}  ErrorResponse
// @Router       /signup [post]
func Signup(c *gin.Context) {
	var input SignupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Password != input.ConfirmPassword {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Passwords do not match"})
		return
	}

	var existingUser models.User
	if err := database.DB.Where("username = ?", input.Username).First(&existingUser).Error; err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username already exists"})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	user := models.User{
		Username:     input.Username,
		PasswordHash: string(hashedPassword),
	}
	if err := database.DB.Create(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	logging.GetLogger().Info("User registered", zap.String("username", user.Username))
	c.JSON(http.StatusCreated, gin.H{"username": user.Username})
}

// Login godoc
// @Summary      Log in a user
// @Description  Authenticates a user with username and password, and returns a token.
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Param        input body LoginInput true "Login Info"
// @Success      200  {object}  map[string]string "{"token": "..."}"
// @Failure      400  {object}  ErrorResponse "Invalid input"
// @Failure      401  {object}  ErrorResponse "Invalid credentials"
// @Failure      404  {object}  ErrorResponse "User not found"
// @Failure      500  {object}  ErrorResponse
// @Router       /login [post]
func Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := database.DB.Where("username = ?", input.Username).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := jwt.GenerateToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

// Logout godoc
// @Summary      Log out
// @Description  Revokes the presented token. When Redis is not configured the token simply expires on its own.
// @Tags         accounts
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  DetailResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /logout [post]
func Logout(c *gin.Context) {
	tokenString := c.GetString("token")
	expiresAt, _ := c.Get("tokenExpiresAt")

	if exp, ok := expiresAt.(time.Time); ok && tokenString != "" {
		err := cache.Store.RevokeToken(c.Request.Context(), tokenString, time.Until(exp))
		if err != nil && err != cache.ErrCacheDisabled {
			logging.GetLogger().Warn("Failed to revoke token", zap.Error(err))
		}
	}

	c.JSON(http.StatusOK, gin.H{"detail": "Logged out successfully."})
}

// endregion

// region --- Profile Handlers ---

// GetProfile godoc
// @Summary      Get own profile
// @Description  Retrieves the profile of the currently authenticated user.
// @Tags         profile
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ProfileResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /profile [get]
func GetProfile(c *gin.Context) {
	viewerID, _ := currentUserID(c)

	var user models.User
	if err := database.DB.First(&user, viewerID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, buildProfileResponse(user, viewerID, true))
}

// UpdateProfile godoc
// @Summary      Update own profile
// @Description  Replaces the profile of the authenticated user. All fields are needed.
// @Tags         profile
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body ProfileUpdateInput true "Profile Info"
// @Success      200  {object}  ProfileResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /profile [put]
func UpdateProfile(c *gin.Context) {
	viewerID, _ := currentUserID(c)

	var input ProfileUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := database.DB.First(&user, viewerID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if input.Username != user.Username && usernameTaken(input.Username) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username already exists"})
		return
	}

	user.Username = input.Username
	user.FirstName = input.FirstName
	user.LastName = input.LastName
	user.Email = input.Email

	if err := database.DB.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, buildProfileResponse(user, viewerID, true))
}

// PatchProfile godoc
// @Summary      Partially update own profile
// @Description  Updates only the supplied profile fields of the authenticated user.
// @Tags         profile
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body ProfilePatchInput true "Changed fields"
// @Success      200  {object}  ProfileResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /profile [patch]
func PatchProfile(c *gin.Context) {
	viewerID, _ := currentUserID(c)

	var input ProfilePatchInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := database.DB.First(&user, viewerID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if input.Username != nil {
		if *input.Username != user.Username && usernameTaken(*input.Username) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Username already exists"})
			return
		}
		user.Username = *input.Username
	}
	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.Email != nil {
		user.Email = *input.Email
	}

	if err := database.DB.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, buildProfileResponse(user, viewerID, true))
}

// DeleteProfile godoc
// @Summary      Delete own account
// @Description  Deletes the authenticated user. Cascades to their posts, comments, likes and follow edges.
// @Tags         profile
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  DetailResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /profile/delete [delete]
func DeleteProfile(c *gin.Context) {
	viewerID, _ := currentUserID(c)

	result := database.DB.Delete(&models.User{}, viewerID)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	logging.GetLogger().Info("User deleted", zap.Uint("user_id", viewerID))
	c.JSON(http.StatusOK, gin.H{"detail": "User deleted."})
}

// ChangePassword godoc
// @Summary      Change password
// @Description  Changes the authenticated user's password after verifying the old one.
// @Tags         profile
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body ChangePasswordInput true "Password change"
// @Success      200  {object}  DetailResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /change-password [patch]
func ChangePassword(c *gin.Context) {
	viewerID, _ := currentUserID(c)

	var input ChangePasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := database.DB.First(&user, viewerID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.OldPassword)); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Old password is incorrect"})
		return
	}

	if input.NewPassword != input.ConfirmPassword {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Passwords do not match"})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	if err := database.DB.Model(&user).Update("password_hash", string(hashedPassword)).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to change password"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"detail": "Password changed."})
}

// GetProfileByUsername godoc
// @Summary      Get a user's profile
// @Description  Retrieves the public profile of a user, including follow state relative to the viewer.
// @Tags         profile
// @Produce      json
// @Param        username  path  string  true  "Username"
// @Success      200  {object}  ProfileResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /profile/{username} [get]
func GetProfileByUsername(c *gin.Context) {
	var user models.User
	if err := database.DB.Where("username = ?", c.Param("username")).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	viewerID, authenticated := currentUserID(c)
	c.JSON(http.StatusOK, buildProfileResponse(user, viewerID, authenticated))
}

// endregion

// region --- Helpers ---

func usernameTaken(username string) bool {
	var count int64
	database.DB.Model(&models.User{}).Where("username = ?", username).Count(&count)
	return count > 0
}

func buildProfileResponse(user models.User, viewerID uint, authenticated bool) ProfileResponse {
	response := ProfileResponse{
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
	}

	if !authenticated {
		return response
	}
	if viewerID == user.ID {
		response.IsMe = true
		return response
	}

	response.IsFollowing = followEdgeExists(viewerID, user.ID)
	response.IsFollower = followEdgeExists(user.ID, viewerID)
	return response
}

func followEdgeExists(followerID, followingID uint) bool {
	var count int64
	database.DB.Model(&models.Follow{}).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Count(&count)
	return count > 0
}

// endregion
