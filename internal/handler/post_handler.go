package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm/clause"

	"microblog/backend/internal/database"
	"microblog/backend/internal/models"
)

// region --- DTOs ---

// PostInput defines the structure for creating or fully updating a post.
type PostInput struct {
	Title   string `json:"title" binding:"required,max=200" example:"My post title"`
	Content string `json:"content" binding:"required" example:"My post content"`
}

// PostPatchInput defines the structure for a partial post update.
type PostPatchInput struct {
	Title   *string `json:"title" binding:"omitempty,max=200"`
	Content *string `json:"content"`
}

// PostResponse is the list projection of a post.
type PostResponse struct {
	ID        uint   `json:"id" example:"1"`
	Title     string `json:"title" example:"My post title"`
	User      string `json:"user" example:"alice"`
	DetailURL string `json:"detail_url" example:"http://localhost:8080/api/v1/posts/1"`
}

// PostDetailResponse is the detail projection of a post, including its
// comments and like state relative to the viewer.
type PostDetailResponse struct {
	ID           uint              `json:"id" example:"1"`
	Title        string            `json:"title" example:"My post title"`
	Content      string            `json:"content" example:"My post content"`
	User         string            `json:"user" example:"alice"`
	Created      time.Time         `json:"created"`
	Comments     []CommentResponse `json:"comments"`
	CommentCount int64             `json:"comment_count" example:"3"`
	LikeCount    int64             `json:"like_count" example:"5"`
	IsLiked      bool              `json:"is_liked"`
}

// endregion

// region --- Post Handlers ---

// ListPosts godoc
// @Summary      List posts
// @Description  Lists all posts, optionally filtered by free-text search over title and content and ordered by created time or title. Default is newest-first.
// @Tags         posts
// @Produce      json
// @Param        search    query  string  false  "Search over title and content"
// @Param        ordering  query  string  false  "created | -created | title | -title"
// @Success      200  {array}  PostResponse
// @Router       /posts [get]
func ListPosts(c *gin.Context) {
	query := database.DB.Model(&models.Post{}).Preload("User")

	if search := c.Query("search"); search != "" {
		pattern := "%" + search + "%"
		query = query.Where("title ILIKE ? OR content ILIKE ?", pattern, pattern)
	}

	var posts []models.Post
	if err := query.Order(orderClause(c.Query("ordering"))).Find(&posts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve posts"})
		return
	}

	c.JSON(http.StatusOK, buildPostList(c, posts))
}

// CreatePost godoc
// @Summary      Create a post
// @Description  Creates a new post owned by the authenticated user.
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body PostInput true "Post Info"
// @Success      201  {object}  PostDetailResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /posts [post]
func CreatePost(c *gin.Context) {
	viewerID, _ := currentUserID(c)

	var input PostInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post := models.Post{
		Title:   input.Title,
		Content: input.Content,
		UserID:  viewerID,
	}
	if err := database.DB.Create(&post).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
		return
	}

	database.DB.Preload("User").First(&post, post.ID)
	c.JSON(http.StatusCreated, buildPostDetailResponse(post, viewerID, true))
}

// GetPost godoc
// @Summary      Retrieve a post
// @Description  Retrieves a post with its comments, comment count, like count and whether the viewer liked it.
// @Tags         posts
// @Produce      json
// @Param        id  path  int  true  "Post ID"
// @Success      200  {object}  PostDetailResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /posts/{id} [get]
func GetPost(c *gin.Context) {
	post, ok := findPost(c)
	if !ok {
		return
	}

	viewerID, authenticated := currentUserID(c)
	c.JSON(http.StatusOK, buildPostDetailResponse(post, viewerID, authenticated))
}

// UpdatePost godoc
// @Summary      Update a post
// @Description  Replaces a post's title and content. Owner only.
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id     path  int        true  "Post ID"
// @Param        input  body  PostInput  true  "Post Info"
// @Success      200  {object}  PostDetailResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Not the owner"
// @Failure      404  {object}  ErrorResponse
// @Router       /posts/{id} [put]
func UpdatePost(c *gin.Context) {
	post, ok := findPost(c)
	if !ok {
		return
	}
	if !requireOwner(c, post.UserID) {
		return
	}

	var input PostInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post.Title = input.Title
	post.Content = input.Content
	if err := database.DB.Omit(clause.Associations).Save(&post).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update post"})
		return
	}

	viewerID, _ := currentUserID(c)
	c.JSON(http.StatusOK, buildPostDetailResponse(post, viewerID, true))
}

// PatchPost godoc
// @Summary      Partially update a post
// @Description  Updates only the supplied fields of a post. Owner only.
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id     path  int             true  "Post ID"
// @Param        input  body  PostPatchInput  true  "Changed fields"
// @Success      200  {object}  PostDetailResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Not the owner"
// @Failure      404  {object}  ErrorResponse
// @Router       /posts/{id} [patch]
func PatchPost(c *gin.Context) {
	post, ok := findPost(c)
	if !ok {
		return
	}
	if !requireOwner(c, post.UserID) {
		return
	}

	var input PostPatchInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Title != nil {
		post.Title = *input.Title
	}
	if input.Content != nil {
		post.Content = *input.Content
	}
	if err := database.DB.Omit(clause.Associations).Save(&post).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update post"})
		return
	}

	viewerID, _ := currentUserID(c)
	c.JSON(http.StatusOK, buildPostDetailResponse(post, viewerID, true))
}

// DeletePost godoc
// @Summary      Delete a post
// @Description  Deletes a post, cascading to its comments and likes. Owner only.
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "Post ID"
// @Success      204  "No Content"
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Not the owner"
// @Failure      404  {object}  ErrorResponse
// @Router       /posts/{id} [delete]
func DeletePost(c *gin.Context) {
	post, ok := findPost(c)
	if !ok {
		return
	}
	if !requireOwner(c, post.UserID) {
		return
	}

	if err := database.DB.Delete(&post).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete post"})
		return
	}

	c.Status(http.StatusNoContent)
}

// Feed godoc
// @Summary      Get the viewer's feed
// @Description  Lists posts authored by the users the viewer follows, newest-first. Following nobody yields an empty list.
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  PostResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /posts/feed [get]
func Feed(c *gin.Context) {
	viewerID, _ := currentUserID(c)

	followingIDs := database.DB.Model(&models.Follow{}).
		Select("following_id").
		Where("follower_id = ?", viewerID)

	var posts []models.Post
	if err := database.DB.Preload("User").
		Where("user_id IN (?)", followingIDs).
		Order("created_at DESC").
		Find(&posts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve feed"})
		return
	}

	c.JSON(http.StatusOK, buildPostList(c, posts))
}

// ListMyPosts godoc
// @Summary      List own posts
// @Description  Lists all posts authored by the authenticated user.
// @Tags         profile
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  PostResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /profile/post [get]
func ListMyPosts(c *gin.Context) {
	viewerID, _ := currentUserID(c)

	var posts []models.Post
	if err := database.DB.Preload("User").
		Where("user_id = ?", viewerID).
		Order("created_at DESC").
		Find(&posts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve posts"})
		return
	}

	c.JSON(http.StatusOK, buildPostList(c, posts))
}

// ListUserPosts godoc
// @Summary      List a user's posts
// @Description  Lists all posts authored by the given user.
// @Tags         profile
// @Produce      json
// @Param        username  path  string  true  "Username"
// @Success      200  {array}  PostResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /profile/{username}/post [get]
func ListUserPosts(c *gin.Context) {
	var user models.User
	if err := database.DB.Where("username = ?", c.Param("username")).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var posts []models.Post
	if err := database.DB.Preload("User").
		Where("user_id = ?", user.ID).
		Order("created_at DESC").
		Find(&posts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve posts"})
		return
	}

	c.JSON(http.StatusOK, buildPostList(c, posts))
}

// endregion

// region --- Helpers ---

// findPost loads the post addressed by the :id path param, preloading its
// owner. It writes the error response itself when the post is missing.
func findPost(c *gin.Context) (models.Post, bool) {
	postID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return models.Post{}, false
	}

	var post models.Post
	if err := database.DB.Preload("User").First(&post, uint(postID)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return models.Post{}, false
	}
	return post, true
}

// orderClause maps the ordering query parameter onto a SQL order expression.
// Unknown values fall back to newest-first, like an ignored filter would.
func orderClause(ordering string) string {
	switch ordering {
	case "created":
		return "created_at ASC"
	case "title":
		return "title ASC"
	case "-title":
		return "title DESC"
	default:
		return "created_at DESC"
	}
}

func postDetailURL(c *gin.Context, postID uint) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/api/v1/posts/%d", scheme, c.Request.Host, postID)
}

func buildPostList(c *gin.Context, posts []models.Post) []PostResponse {
	responses := make([]PostResponse, 0, len(posts))
	for _, post := range posts {
		responses = append(responses, PostResponse{
			ID:        post.ID,
			Title:     post.Title,
			User:      post.User.Username,
			DetailURL: postDetailURL(c, post.ID),
		})
	}
	return responses
}

func buildPostDetailResponse(post models.Post, viewerID uint, authenticated bool) PostDetailResponse {
	var comments []models.Comment
	database.DB.Preload("User").
		Where("post_id = ?", post.ID).
		Order("created_at ASC").
		Find(&comments)

	var likeCount int64
	database.DB.Model(&models.Like{}).Where("post_id = ?", post.ID).Count(&likeCount)

	isLiked := false
	if authenticated {
		var count int64
		database.DB.Model(&models.Like{}).
			Where("post_id = ? AND user_id = ?", post.ID, viewerID).
			Count(&count)
		isLiked = count > 0
	}

	return PostDetailResponse{
		ID:           post.ID,
		Title:        post.Title,
		Content:      post.Content,
		User:         post.User.Username,
		Created:      post.CreatedAt,
		Comments:     buildCommentList(comments),
		CommentCount: int64(len(comments)),
		LikeCount:    likeCount,
		IsLiked:      isLiked,
	}
}

// endregion
