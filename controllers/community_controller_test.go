package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"backend/entity"
	"backend/middlewares"
	"backend/repository"
	"backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newCommunityRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}
	if err := db.AutoMigrate(&entity.User{}, &entity.CommunityPost{}); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}

	gin.SetMode(gin.TestMode)
	r := gin.New()
	ctrl := NewCommunityController(repository.NewCommunityRepository(db))
	r.DELETE("/community/:id", middlewares.AuthMiddleware(testJWTSecret), ctrl.Delete)
	return r, db
}

func deletePost(t *testing.T, r *gin.Engine, postID string, userID uint, role string) *httptest.ResponseRecorder {
	t.Helper()

	token, err := utils.GenerateToken(userID, role, testJWTSecret, time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodDelete, "/community/"+postID, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestDeletePost_OwnerCanDelete(t *testing.T) {
	r, db := newCommunityRouter(t)
	require.NoError(t, db.Create(&entity.CommunityPost{UserID: 7, Content: "first tiffin!"}).Error)

	rec := deletePost(t, r, "1", 7, entity.RoleUser)
	require.Equal(t, http.StatusOK, rec.Code)

	var count int64
	require.NoError(t, db.Model(&entity.CommunityPost{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestDeletePost_StrangerForbidden(t *testing.T) {
	r, db := newCommunityRouter(t)
	require.NoError(t, db.Create(&entity.CommunityPost{UserID: 7, Content: "first tiffin!"}).Error)

	rec := deletePost(t, r, "1", 8, entity.RoleUser)
	require.Equal(t, http.StatusForbidden, rec.Code)

	var count int64
	require.NoError(t, db.Model(&entity.CommunityPost{}).Count(&count).Error)
	require.Equal(t, int64(1), count)
}

func TestDeletePost_StaffCanModerate(t *testing.T) {
	r, db := newCommunityRouter(t)
	require.NoError(t, db.Create(&entity.CommunityPost{UserID: 7, Content: "first tiffin!"}).Error)

	rec := deletePost(t, r, "1", 99, entity.RoleStaff)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestDeletePost_MissingPost(t *testing.T) {
	r, _ := newCommunityRouter(t)

	rec := deletePost(t, r, "42", 7, entity.RoleUser)
	require.Equal(t, http.StatusNotFound, rec.Code)
}
