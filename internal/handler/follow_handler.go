package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm/clause"

	"microblog/backend/internal/database"
	"microblog/backend/internal/models"
)

// region --- DTOs ---

// FollowerItem wraps a single follower username.
type FollowerItem struct {
	Follower string `json:"follower" example:"bob"`
}

// FollowingItem wraps a single followed username.
type FollowingItem struct {
	Following string `json:"following" example:"alice"`
}

// FollowersResponse is the count-plus-items projection of a user's followers.
type FollowersResponse struct {
	FollowersCount int64          `json:"followers_count" example:"2"`
	Followers      []FollowerItem `json:"followers"`
}

// FollowingResponse is the count-plus-items projection of who a user follows.
type FollowingResponse struct {
	FollowingCount int64           `json:"following_count" example:"2"`
	Following      []FollowingItem `json:"following"`
}

// endregion

// FollowUser godoc
// @Summary      Follow a user
// @Description  Creates a follow edge to the target user. Re-following is a no-op success.
// @Tags         follow
// @Produce      json
// @Security     BearerAuth
// @Param        username  path  string  true  "Target username"
// @Success      200  {object}  DetailResponse "Already following"
// @Success      202  {object}  DetailResponse "Followed"
// @Failure      400  {object}  ErrorResponse "Self follow"
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Target user not found"
// @Router       /profile/{username}/follow [post]
func FollowUser(c *gin.Context) {
	viewerID, _ := currentUserID(c)

	var target models.User
	if err := database.DB.Where("username = ?", c.Param("username")).First(&target).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if target.ID == viewerID {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "You can't follow yourself!"})
		return
	}

	// The unique constraint decides races between concurrent duplicate
	// follows: exactly one edge survives and the loser sees RowsAffected == 0.
	edge := models.Follow{FollowerID: viewerID, FollowingID: target.ID}
	result := database.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&edge)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to follow user"})
		return
	}

	if result.RowsAffected == 0 {
		c.JSON(http.StatusOK, gin.H{"detail": fmt.Sprintf("%s is already in following.", target.Username)})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"detail": fmt.Sprintf("%s followed!", target.Username)})
}

// UnfollowUser godoc
// @Summary      Unfollow a user
// @Description  Removes the follow edge to the target user.
// @Tags         follow
// @Produce      json
// @Security     BearerAuth
// @Param        username  path  string  true  "Target username"
// @Success      200  {object}  DetailResponse "Unfollowed"
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Target user or edge not found"
// @Router       /profile/{username}/follow [delete]
func UnfollowUser(c *gin.Context) {
	viewerID, _ := currentUserID(c)

	var target models.User
	if err := database.DB.Where("username = ?", c.Param("username")).First(&target).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	result := database.DB.
		Where("follower_id = ? AND following_id = ?", viewerID, target.ID).
		Delete(&models.Follow{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to unfollow user"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"detail": fmt.Sprintf("You were not following %s!", target.Username)})
		return
	}

	c.JSON(http.StatusOK, gin.H{"detail": fmt.Sprintf("%s unfollowed!", target.Username)})
}

// ListFollowers godoc
// @Summary      List a user's followers
// @Description  Returns the usernames following the given user, with a count.
// @Tags         follow
// @Produce      json
// @Param        username  path  string  true  "Username"
// @Success      200  {object}  FollowersResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /profile/{username}/followers [get]
func ListFollowers(c *gin.Context) {
	var user models.User
	if err := database.DB.Where("username = ?", c.Param("username")).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var edges []models.Follow
	if err := database.DB.Preload("Follower").
		Where("following_id = ?", user.ID).
		Find(&edges).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch followers"})
		return
	}

	followers := make([]FollowerItem, 0, len(edges))
	for _, edge := range edges {
		followers = append(followers, FollowerItem{Follower: edge.Follower.Username})
	}

	c.JSON(http.StatusOK, FollowersResponse{
		FollowersCount: int64(len(followers)),
		Followers:      followers,
	})
}

// ListFollowing godoc
// @Summary      List who a user follows
// @Description  Returns the usernames the given user follows, with a count.
// @Tags         follow
// @Produce      json
// @Param        username  path  string  true  "Username"
// @Success      200  {object}  FollowingResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /profile/{username}/following [get]
func ListFollowing(c *gin.Context) {
	var user models.User
	if err := database.DB.Where("username = ?", c.Param("username")).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var edges []models.Follow
	if err := database.DB.Preload("Following").
		Where("follower_id = ?", user.ID).
		Find(&edges).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch following"})
		return
	}

	following := make([]FollowingItem, 0, len(edges))
	for _, edge := range edges {
		following = append(following, FollowingItem{Following: edge.Following.Username})
	}

	c.JSON(http.StatusOK, FollowingResponse{
		FollowingCount: int64(len(following)),
		Following:      following,
	})
}
