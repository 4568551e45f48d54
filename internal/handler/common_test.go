package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestOrderClause(t *testing.T) {
	tests := []struct {
		name     string
		ordering string
		expected string
	}{
		{"default newest-first", "", "created_at DESC"},
		{"oldest-first", "created", "created_at ASC"},
		{"explicit newest-first", "-created", "created_at DESC"},
		{"title ascending", "title", "title ASC"},
		{"title descending", "-title", "title DESC"},
		{"unknown falls back", "likes", "created_at DESC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := orderClause(tt.ordering); got != tt.expected {
				t.Errorf("orderClause(%q) = %q, want %q", tt.ordering, got, tt.expected)
			}
		})
	}
}

func TestCurrentUserID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("anonymous", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		if _, ok := currentUserID(c); ok {
			t.Error("currentUserID() should report false without a userID")
		}
	})

	t.Run("authenticated", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Set("userID", uint(9))
		userID, ok := currentUserID(c)
		if !ok || userID != 9 {
			t.Errorf("currentUserID() = (%d, %v), want (9, true)", userID, ok)
		}
	})
}

func TestRequireOwner(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		actorID    *uint
		ownerID    uint
		want       bool
		wantStatus int
	}{
		{"owner allowed", uintPtr(1), 1, true, http.StatusOK},
		{"non-owner forbidden", uintPtr(2), 1, false, http.StatusForbidden},
		{"anonymous unauthorized", nil, 1, false, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodDelete, "/", nil)
			if tt.actorID != nil {
				c.Set("userID", *tt.actorID)
			}

			if got := requireOwner(c, tt.ownerID); got != tt.want {
				t.Errorf("requireOwner() = %v, want %v", got, tt.want)
			}
			if !tt.want && w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
		})
	}
}

func uintPtr(v uint) *uint { return &v }
