package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm/clause"

	"microblog/backend/internal/database"
	"microblog/backend/internal/models"
)

// region --- DTOs ---

// CommentInput defines the structure for creating or fully updating a comment.
// Parent, when set, must reference a comment on the same post.
type CommentInput struct {
	Content string `json:"content" binding:"required" example:"My comment"`
	Parent  *uint  `json:"parent" example:"5"`
}

// CommentPatchInput defines the structure for a partial comment update.
type CommentPatchInput struct {
	Content *string `json:"content"`
	Parent  *uint   `json:"parent"`
}

// CommentResponse is the flat projection of a comment.
type CommentResponse struct {
	ID      uint      `json:"id" example:"1"`
	Content string    `json:"content" example:"My comment"`
	User    string    `json:"user" example:"bob"`
	Created time.Time `json:"created"`
	Post    uint      `json:"post" example:"1"`
	Parent  *uint     `json:"parent"`
}

// CommentDetailResponse adds the comment's direct replies.
type CommentDetailResponse struct {
	CommentResponse
	Children []CommentResponse `json:"children"`
}

// endregion

// region --- Comment Handlers ---

// ListComments godoc
// @Summary      List a post's comments
// @Description  Returns all comments on a post ordered by creation time, ascending.
// @Tags         comments
// @Produce      json
// @Param        id  path  int  true  "Post ID"
// @Success      200  {array}  CommentResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /posts/{id}/comments [get]
func ListComments(c *gin.Context) {
	post, ok := findPost(c)
	if !ok {
		return
	}

	var comments []models.Comment
	if err := database.DB.Preload("User").
		Where("post_id = ?", post.ID).
		Order("created_at ASC").
		Find(&comments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve comments"})
		return
	}

	c.JSON(http.StatusOK, buildCommentList(comments))
}

// CreateComment godoc
// @Summary      Comment on a post
// @Description  Creates a comment on a post, optionally replying to another comment on the same post.
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id     path  int           true  "Post ID"
// @Param        input  body  CommentInput  true  "Comment Info"
// @Success      201  {object}  CommentResponse
// @Failure      400  {object}  ErrorResponse "Cross-post parent"
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /posts/{id}/comments [post]
func CreateComment(c *gin.Context) {
	viewerID, _ := currentUserID(c)

	post, ok := findPost(c)
	if !ok {
		return
	}

	var input CommentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Parent != nil && !validParent(c, *input.Parent, post.ID) {
		return
	}

	comment := models.Comment{
		PostID:   post.ID,
		UserID:   viewerID,
		Content:  input.Content,
		ParentID: input.Parent,
	}
	if err := database.DB.Create(&comment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create comment"})
		return
	}

	database.DB.Preload("User").First(&comment, comment.ID)
	c.JSON(http.StatusCreated, buildCommentResponse(comment))
}

// GetComment godoc
// @Summary      Retrieve a comment
// @Description  Retrieves a comment with its direct replies nested as children.
// @Tags         comments
// @Produce      json
// @Param        id   path  int  true  "Post ID"
// @Param        cid  path  int  true  "Comment ID"
// @Success      200  {object}  CommentDetailResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /posts/{id}/comments/{cid} [get]
func GetComment(c *gin.Context) {
	comment, ok := findComment(c)
	if !ok {
		return
	}

	var children []models.Comment
	database.DB.Preload("User").
		Where("parent_id = ?", comment.ID).
		Order("created_at ASC").
		Find(&children)

	c.JSON(http.StatusOK, CommentDetailResponse{
		CommentResponse: buildCommentResponse(comment),
		Children:        buildCommentList(children),
	})
}

// UpdateComment godoc
// @Summary      Update a comment
// @Description  Replaces a comment's content and parent. Owner only.
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id     path  int           true  "Post ID"
// @Param        cid    path  int           true  "Comment ID"
// @Param        input  body  CommentInput  true  "Comment Info"
// @Success      200  {object}  CommentResponse
// @Failure      400  {object}  ErrorResponse "Cross-post parent"
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Not the owner"
// @Failure      404  {object}  ErrorResponse
// @Router       /posts/{id}/comments/{cid} [put]
func UpdateComment(c *gin.Context) {
	comment, ok := findComment(c)
	if !ok {
		return
	}
	if !requireOwner(c, comment.UserID) {
		return
	}

	var input CommentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Parent != nil && !validParent(c, *input.Parent, comment.PostID) {
		return
	}

	comment.Content = input.Content
	comment.ParentID = input.Parent
	if err := database.DB.Omit(clause.Associations).Save(&comment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update comment"})
		return
	}

	c.JSON(http.StatusOK, buildCommentResponse(comment))
}

// PatchComment godoc
// @Summary      Partially update a comment
// @Description  Updates only the supplied fields of a comment. Owner only.
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id     path  int                true  "Post ID"
// @Param        cid    path  int                true  "Comment ID"
// @Param        input  body  CommentPatchInput  true  "Changed fields"
// @Success      200  {object}  CommentResponse
// @Failure      400  {object}  ErrorResponse "Cross-post parent"
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Not the owner"
// @Failure      404  {object}  ErrorResponse
// @Router       /posts/{id}/comments/{cid} [patch]
func PatchComment(c *gin.Context) {
	comment, ok := findComment(c)
	if !ok {
		return
	}
	if !requireOwner(c, comment.UserID) {
		return
	}

	var input CommentPatchInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Content != nil {
		comment.Content = *input.Content
	}
	if input.Parent != nil {
		if !validParent(c, *input.Parent, comment.PostID) {
			return
		}
		comment.ParentID = input.Parent
	}

	if err := database.DB.Omit(clause.Associations).Save(&comment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update comment"})
		return
	}

	c.JSON(http.StatusOK, buildCommentResponse(comment))
}

// DeleteComment godoc
// @Summary      Delete a comment
// @Description  Deletes a comment, cascading to its replies. Owner only.
// @Tags         comments
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  int  true  "Post ID"
// @Param        cid  path  int  true  "Comment ID"
// @Success      204  "No Content"
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Not the owner"
// @Failure      404  {object}  ErrorResponse
// @Router       /posts/{id}/comments/{cid} [delete]
func DeleteComment(c *gin.Context) {
	comment, ok := findComment(c)
	if !ok {
		return
	}
	if !requireOwner(c, comment.UserID) {
		return
	}

	if err := database.DB.Delete(&comment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete comment"})
		return
	}

	c.Status(http.StatusNoContent)
}

// endregion

// region --- Helpers ---

// findComment loads the comment addressed by the :id/:cid path params.
// A comment id that exists but belongs to a different post is a not-found.
func findComment(c *gin.Context) (models.Comment, bool) {
	postID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return models.Comment{}, false
	}
	commentID, err := strconv.ParseUint(c.Param("cid"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid comment ID"})
		return models.Comment{}, false
	}

	var comment models.Comment
	if err := database.DB.Preload("User").
		Where("id = ? AND post_id = ?", uint(commentID), uint(postID)).
		First(&comment).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
		return models.Comment{}, false
	}
	return comment, true
}

// validParent ensures the parent comment exists and belongs to the given
// post. It writes the 400 response itself when the rule is violated.
func validParent(c *gin.Context, parentID, postID uint) bool {
	var parent models.Comment
	if err := database.DB.First(&parent, parentID).Error; err != nil || parent.PostID != postID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Parent comment does not belong to this post."})
		return false
	}
	return true
}

func buildCommentResponse(comment models.Comment) CommentResponse {
	return CommentResponse{
		ID:      comment.ID,
		Content: comment.Content,
		User:    comment.User.Username,
		Created: comment.CreatedAt,
		Post:    comment.PostID,
		Parent:  comment.ParentID,
	}
}

func buildCommentList(comments []models.Comment) []CommentResponse {
	responses := make([]CommentResponse, 0, len(comments))
	for _, comment := range comments {
		responses = append(responses, buildCommentResponse(comment))
	}
	return responses
}

// endregion
