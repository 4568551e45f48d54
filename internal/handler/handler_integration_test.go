package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"microblog/backend/internal/auth"
	"microblog/backend/internal/config"
	"microblog/backend/internal/database"
	"microblog/backend/internal/models"
	"microblog/backend/pkg/jwt"
)

// setupIntegration connects to the database named by TEST_DATABASE_URL and
// wipes all tables. Tests are skipped when the variable is unset.
func setupIntegration(t *testing.T) *gin.Engine {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping integration test")
	}

	gin.SetMode(gin.TestMode)
	config.AppConfig = &config.Config{DatabaseURL: dsn, JWTSecret: "integration-test-secret"}

	if database.DB == nil {
		database.Connect(dsn)
	}
	if err := database.DB.Exec("TRUNCATE users, follows, posts, comments, likes RESTART IDENTITY CASCADE").Error; err != nil {
		t.Fatalf("failed to reset tables: %v", err)
	}

	router := gin.New()
	api := router.Group("/api/v1")
	api.POST("/signup", auth.GuestMiddleware(), Signup)
	api.POST("/login", Login)
	api.GET("/profile/:username", auth.OptionalAuthMiddleware(), GetProfileByUsername)
	api.GET("/profile/:username/followers", ListFollowers)
	api.GET("/profile/:username/following", ListFollowing)
	api.POST("/profile/:username/follow", auth.AuthMiddleware(), FollowUser)
	api.DELETE("/profile/:username/follow", auth.AuthMiddleware(), UnfollowUser)
	api.GET("/posts", auth.OptionalAuthMiddleware(), ListPosts)
	api.POST("/posts", auth.AuthMiddleware(), CreatePost)
	api.GET("/posts/feed", auth.AuthMiddleware(), Feed)
	api.GET("/posts/:id", auth.OptionalAuthMiddleware(), GetPost)
	api.PUT("/posts/:id", auth.AuthMiddleware(), UpdatePost)
	api.DELETE("/posts/:id", auth.AuthMiddleware(), DeletePost)
	api.GET("/posts/:id/comments", ListComments)
	api.POST("/posts/:id/comments", auth.AuthMiddleware(), CreateComment)
	api.DELETE("/posts/:id/comments/:cid", auth.AuthMiddleware(), DeleteComment)
	api.POST("/posts/:id/like", auth.AuthMiddleware(), LikePost)
	api.DELETE("/posts/:id/like", auth.AuthMiddleware(), UnlikePost)
	return router
}

// createTestUser inserts a user directly and returns their bearer token.
func createTestUser(t *testing.T, username string) (models.User, string) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt error: %v", err)
	}
	user := models.User{Username: username, PasswordHash: string(hash)}
	if err := database.DB.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user %s: %v", username, err)
	}

	token, err := jwt.GenerateToken(user.ID)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	return user, token
}

func doJSON(router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func countRows(t *testing.T, model interface{}, query string, args ...interface{}) int64 {
	t.Helper()
	var count int64
	if err := database.DB.Model(model).Where(query, args...).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	return count
}

func TestFollowIsIdempotent(t *testing.T) {
	router := setupIntegration(t)
	_, bobToken := createTestUser(t, "bob")
	createTestUser(t, "alice")

	first := doJSON(router, http.MethodPost, "/api/v1/profile/alice/follow", bobToken, nil)
	if first.Code != http.StatusAccepted {
		t.Fatalf("first follow status = %d, want %d", first.Code, http.StatusAccepted)
	}

	second := doJSON(router, http.MethodPost, "/api/v1/profile/alice/follow", bobToken, nil)
	if second.Code != http.StatusOK {
		t.Fatalf("second follow status = %d, want %d", second.Code, http.StatusOK)
	}

	if n := countRows(t, &models.Follow{}, "1 = 1"); n != 1 {
		t.Errorf("follow edges = %d, want exactly 1", n)
	}
}

func TestSelfFollowRejected(t *testing.T) {
	router := setupIntegration(t)
	_, aliceToken := createTestUser(t, "alice")

	w := doJSON(router, http.MethodPost, "/api/v1/profile/alice/follow", aliceToken, nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("self follow status = %d, want %d", w.Code, http.StatusBadRequest)
	}
	if n := countRows(t, &models.Follow{}, "1 = 1"); n != 0 {
		t.Errorf("follow edges = %d, want 0", n)
	}
}

func TestUnfollowWithoutEdge(t *testing.T) {
	router := setupIntegration(t)
	_, bobToken := createTestUser(t, "bob")
	createTestUser(t, "alice")

	w := doJSON(router, http.MethodDelete, "/api/v1/profile/alice/follow", bobToken, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("unfollow status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestLikeUnlikeRoundTrip(t *testing.T) {
	router := setupIntegration(t)
	alice, _ := createTestUser(t, "alice")
	_, bobToken := createTestUser(t, "bob")

	post := models.Post{Title: "Hello", Content: "World", UserID: alice.ID}
	database.DB.Create(&post)

	like := doJSON(router, http.MethodPost, fmt.Sprintf("/api/v1/posts/%d/like", post.ID), bobToken, nil)
	if like.Code != http.StatusCreated {
		t.Fatalf("like status = %d, want %d", like.Code, http.StatusCreated)
	}

	var likeResp LikeResponse
	if err := json.Unmarshal(like.Body.Bytes(), &likeResp); err != nil {
		t.Fatalf("failed to decode like response: %v", err)
	}
	if likeResp.LikesCount != 1 {
		t.Errorf("likes_count after like = %d, want 1", likeResp.LikesCount)
	}

	again := doJSON(router, http.MethodPost, fmt.Sprintf("/api/v1/posts/%d/like", post.ID), bobToken, nil)
	if again.Code != http.StatusOK {
		t.Errorf("duplicate like status = %d, want %d", again.Code, http.StatusOK)
	}

	unlike := doJSON(router, http.MethodDelete, fmt.Sprintf("/api/v1/posts/%d/like", post.ID), bobToken, nil)
	if unlike.Code != http.StatusOK {
		t.Fatalf("unlike status = %d, want %d", unlike.Code, http.StatusOK)
	}
	if err := json.Unmarshal(unlike.Body.Bytes(), &likeResp); err != nil {
		t.Fatalf("failed to decode unlike response: %v", err)
	}
	if likeResp.LikesCount != 0 {
		t.Errorf("likes_count after unlike = %d, want 0", likeResp.LikesCount)
	}

	notLiked := doJSON(router, http.MethodDelete, fmt.Sprintf("/api/v1/posts/%d/like", post.ID), bobToken, nil)
	if notLiked.Code != http.StatusNotFound {
		t.Errorf("unlike without like status = %d, want %d", notLiked.Code, http.StatusNotFound)
	}
}

func TestDeletePostCascades(t *testing.T) {
	router := setupIntegration(t)
	alice, aliceToken := createTestUser(t, "alice")
	bob, _ := createTestUser(t, "bob")

	post := models.Post{Title: "Hello", Content: "World", UserID: alice.ID}
	database.DB.Create(&post)
	database.DB.Create(&models.Comment{PostID: post.ID, UserID: bob.ID, Content: "First!"})
	database.DB.Create(&models.Like{UserID: bob.ID, PostID: post.ID})

	w := doJSON(router, http.MethodDelete, fmt.Sprintf("/api/v1/posts/%d", post.ID), aliceToken, nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d, want %d", w.Code, http.StatusNoContent)
	}

	if n := countRows(t, &models.Comment{}, "post_id = ?", post.ID); n != 0 {
		t.Errorf("orphaned comments = %d, want 0", n)
	}
	if n := countRows(t, &models.Like{}, "post_id = ?", post.ID); n != 0 {
		t.Errorf("orphaned likes = %d, want 0", n)
	}
}

func TestDeleteParentCommentCascades(t *testing.T) {
	router := setupIntegration(t)
	alice, aliceToken := createTestUser(t, "alice")

	post := models.Post{Title: "Hello", Content: "World", UserID: alice.ID}
	database.DB.Create(&post)

	parent := models.Comment{PostID: post.ID, UserID: alice.ID, Content: "parent"}
	database.DB.Create(&parent)
	database.DB.Create(&models.Comment{PostID: post.ID, UserID: alice.ID, Content: "reply", ParentID: &parent.ID})

	w := doJSON(router, http.MethodDelete, fmt.Sprintf("/api/v1/posts/%d/comments/%d", post.ID, parent.ID), aliceToken, nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d, want %d", w.Code, http.StatusNoContent)
	}

	if n := countRows(t, &models.Comment{}, "post_id = ?", post.ID); n != 0 {
		t.Errorf("remaining comments = %d, want 0 (reply should cascade)", n)
	}
}

func TestCrossPostParentRejected(t *testing.T) {
	router := setupIntegration(t)
	alice, aliceToken := createTestUser(t, "alice")

	postA := models.Post{Title: "A", Content: "a", UserID: alice.ID}
	postB := models.Post{Title: "B", Content: "b", UserID: alice.ID}
	database.DB.Create(&postA)
	database.DB.Create(&postB)

	parentOnB := models.Comment{PostID: postB.ID, UserID: alice.ID, Content: "on B"}
	database.DB.Create(&parentOnB)

	w := doJSON(router, http.MethodPost, fmt.Sprintf("/api/v1/posts/%d/comments", postA.ID), aliceToken,
		CommentInput{Content: "reply", Parent: &parentOnB.ID})
	if w.Code != http.StatusBadRequest {
		t.Errorf("cross-post parent status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestOnlyOwnerMayMutate(t *testing.T) {
	router := setupIntegration(t)
	alice, _ := createTestUser(t, "alice")
	_, bobToken := createTestUser(t, "bob")

	post := models.Post{Title: "Hello", Content: "World", UserID: alice.ID}
	database.DB.Create(&post)

	update := doJSON(router, http.MethodPut, fmt.Sprintf("/api/v1/posts/%d", post.ID), bobToken,
		PostInput{Title: "Hijacked", Content: "nope"})
	if update.Code != http.StatusForbidden {
		t.Errorf("non-owner update status = %d, want %d", update.Code, http.StatusForbidden)
	}

	del := doJSON(router, http.MethodDelete, fmt.Sprintf("/api/v1/posts/%d", post.ID), bobToken, nil)
	if del.Code != http.StatusForbidden {
		t.Errorf("non-owner delete status = %d, want %d", del.Code, http.StatusForbidden)
	}

	// Anonymous reads stay open.
	read := doJSON(router, http.MethodGet, fmt.Sprintf("/api/v1/posts/%d", post.ID), "", nil)
	if read.Code != http.StatusOK {
		t.Errorf("anonymous read status = %d, want %d", read.Code, http.StatusOK)
	}

	var detail PostDetailResponse
	if err := json.Unmarshal(read.Body.Bytes(), &detail); err != nil {
		t.Fatalf("failed to decode post detail: %v", err)
	}
	if detail.IsLiked {
		t.Error("is_liked should be false for anonymous viewers")
	}
	if detail.Title != "Hello" {
		t.Errorf("title = %q, want %q", detail.Title, "Hello")
	}
}

func TestFeedFollowsAuthorship(t *testing.T) {
	router := setupIntegration(t)
	alice, _ := createTestUser(t, "alice")
	bob, bobToken := createTestUser(t, "bob")
	_, carolToken := createTestUser(t, "carol")

	database.DB.Create(&models.Follow{FollowerID: bob.ID, FollowingID: alice.ID})
	database.DB.Create(&models.Post{Title: "X", Content: "from alice", UserID: alice.ID})

	bobFeed := doJSON(router, http.MethodGet, "/api/v1/posts/feed", bobToken, nil)
	if bobFeed.Code != http.StatusOK {
		t.Fatalf("feed status = %d, want %d", bobFeed.Code, http.StatusOK)
	}
	var bobPosts []PostResponse
	if err := json.Unmarshal(bobFeed.Body.Bytes(), &bobPosts); err != nil {
		t.Fatalf("failed to decode feed: %v", err)
	}
	if len(bobPosts) != 1 || bobPosts[0].Title != "X" {
		t.Errorf("bob's feed = %+v, want alice's post X", bobPosts)
	}

	carolFeed := doJSON(router, http.MethodGet, "/api/v1/posts/feed", carolToken, nil)
	var carolPosts []PostResponse
	if err := json.Unmarshal(carolFeed.Body.Bytes(), &carolPosts); err != nil {
		t.Fatalf("failed to decode feed: %v", err)
	}
	if len(carolPosts) != 0 {
		t.Errorf("carol follows nobody, feed should be empty, got %+v", carolPosts)
	}
}

func TestDeleteUserCascades(t *testing.T) {
	setupIntegration(t)
	alice, _ := createTestUser(t, "alice")
	bob, _ := createTestUser(t, "bob")

	post := models.Post{Title: "Hello", Content: "World", UserID: alice.ID}
	database.DB.Create(&post)
	database.DB.Create(&models.Comment{PostID: post.ID, UserID: alice.ID, Content: "mine"})
	database.DB.Create(&models.Like{UserID: bob.ID, PostID: post.ID})
	database.DB.Create(&models.Follow{FollowerID: bob.ID, FollowingID: alice.ID})

	if err := database.DB.Delete(&models.User{}, alice.ID).Error; err != nil {
		t.Fatalf("failed to delete user: %v", err)
	}

	if n := countRows(t, &models.Post{}, "user_id = ?", alice.ID); n != 0 {
		t.Errorf("orphaned posts = %d, want 0", n)
	}
	if n := countRows(t, &models.Comment{}, "user_id = ?", alice.ID); n != 0 {
		t.Errorf("orphaned comments = %d, want 0", n)
	}
	if n := countRows(t, &models.Like{}, "post_id = ?", post.ID); n != 0 {
		t.Errorf("orphaned likes = %d, want 0", n)
	}
	if n := countRows(t, &models.Follow{}, "following_id = ?", alice.ID); n != 0 {
		t.Errorf("orphaned follow edges = %d, want 0", n)
	}
}

func TestSignupValidation(t *testing.T) {
	router := setupIntegration(t)

	ok := doJSON(router, http.MethodPost, "/api/v1/signup", "",
		SignupInput{Username: "alice", Password: "password123", ConfirmPassword: "password123"})
	if ok.Code != http.StatusCreated {
		t.Fatalf("signup status = %d, want %d: %s", ok.Code, http.StatusCreated, ok.Body.String())
	}

	dup := doJSON(router, http.MethodPost, "/api/v1/signup", "",
		SignupInput{Username: "alice", Password: "password123", ConfirmPassword: "password123"})
	if dup.Code != http.StatusBadRequest {
		t.Errorf("duplicate username status = %d, want %d", dup.Code, http.StatusBadRequest)
	}

	mismatch := doJSON(router, http.MethodPost, "/api/v1/signup", "",
		SignupInput{Username: "bob", Password: "password123", ConfirmPassword: "different123"})
	if mismatch.Code != http.StatusBadRequest {
		t.Errorf("password mismatch status = %d, want %d", mismatch.Code, http.StatusBadRequest)
	}
}

func TestFollowerListingsWrapCounts(t *testing.T) {
	router := setupIntegration(t)
	alice, _ := createTestUser(t, "alice")
	bob, _ := createTestUser(t, "bob")
	carol, _ := createTestUser(t, "carol")

	database.DB.Create(&models.Follow{FollowerID: bob.ID, FollowingID: alice.ID})
	database.DB.Create(&models.Follow{FollowerID: carol.ID, FollowingID: alice.ID})

	w := doJSON(router, http.MethodGet, "/api/v1/profile/alice/followers", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("followers status = %d, want %d", w.Code, http.StatusOK)
	}

	var resp FollowersResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode followers: %v", err)
	}
	if resp.FollowersCount != 2 || len(resp.Followers) != 2 {
		t.Errorf("followers = %+v, want count 2 with 2 items", resp)
	}
}
