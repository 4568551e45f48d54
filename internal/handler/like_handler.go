package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm/clause"

	"microblog/backend/internal/database"
	"microblog/backend/internal/models"
)

// LikeResponse carries the outcome message and the post's current like count.
type LikeResponse struct {
	Detail     string `json:"detail" example:"Post liked!"`
	LikesCount int64  `json:"likes_count" example:"5"`
}

// LikePost godoc
// @Summary      Like a post
// @Description  Likes a post. Liking an already-liked post is a no-op success; both outcomes report the current like count.
// @Tags         likes
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "Post ID"
// @Success      200  {object}  LikeResponse "Already liked"
// @Success      201  {object}  LikeResponse "Liked"
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /posts/{id}/like [post]
func LikePost(c *gin.Context) {
	viewerID, _ := currentUserID(c)

	post, ok := findPost(c)
	if !ok {
		return
	}

	// A concurrent duplicate like loses the conflict and is reported as
	// already liked, never as a constraint error.
	like := models.Like{UserID: viewerID, PostID: post.ID}
	result := database.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&like)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to like post"})
		return
	}

	if result.RowsAffected == 0 {
		c.JSON(http.StatusOK, LikeResponse{Detail: "You already liked this post.", LikesCount: likeCount(post.ID)})
		return
	}

	c.JSON(http.StatusCreated, LikeResponse{Detail: "Post liked!", LikesCount: likeCount(post.ID)})
}

// UnlikePost godoc
// @Summary      Unlike a post
// @Description  Removes the viewer's like from a post. Both outcomes report the current like count.
// @Tags         likes
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "Post ID"
// @Success      200  {object}  LikeResponse "Unliked"
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  LikeResponse "Was not liked"
// @Router       /posts/{id}/like [delete]
func UnlikePost(c *gin.Context) {
	viewerID, _ := currentUserID(c)

	post, ok := findPost(c)
	if !ok {
		return
	}

	result := database.DB.
		Where("user_id = ? AND post_id = ?", viewerID, post.ID).
		Delete(&models.Like{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to unlike post"})
		return
	}

	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, LikeResponse{Detail: "Not Liked", LikesCount: likeCount(post.ID)})
		return
	}

	c.JSON(http.StatusOK, LikeResponse{Detail: "Post unliked!", LikesCount: likeCount(post.ID)})
}

func likeCount(postID uint) int64 {
	var count int64
	database.DB.Model(&models.Like{}).Where("post_id = ?", postID).Count(&count)
	return count
}
