// controller/access_controller_test.go
package controller_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/smartnest/sentinel/controller"
	sentinel_errors "github.com/smartnest/sentinel/errors"
	logger "github.com/smartnest/sentinel/logging"
	"github.com/smartnest/sentinel/middleware"
	"github.com/smartnest/sentinel/model"
	mock_service "github.com/smartnest/sentinel/test/service_mock"
)

func TestMain(m *testing.M) {
	logger.InitLogger("../logging")
	defer logger.Sync()
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func setupRouter() *gin.Engine {
	r := gin.New()
	r.Use(middleware.LocalIdentity("admin-1"))
	return r
}

type fixedClock struct {
	now time.Time
}

func (f fixedClock) Now() time.Time {
	return f.now
}

func TestAccessController(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAccessService := mock_service.NewMockIAccessService(ctrl)
	clock := fixedClock{now: time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)}
	accessController := controller.NewAccessController(mockAccessService, clock)
	router := setupRouter()
	api := router.Group("/")
	accessController.RegisterRoutes(api)

	t.Run("Grant_Success", func(t *testing.T) {
		granted := &model.User{ID: "u1", Name: "Test User", RoleID: model.RoleMember}
		mockAccessService.EXPECT().
			GrantTemporaryAccess(gomock.Any(), "u1", 4, "babysitter", "admin-1").
			Return(granted, nil)

		body := strings.NewReader(`{"duration_hours":4,"template":"babysitter"}`)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/access/grants/u1", body)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response model.User
		assert.NoError(t, json.NewDecoder(w.Body).Decode(&response))
		assert.Equal(t, "u1", response.ID)
	})

	t.Run("Grant_Failure_InvalidDuration", func(t *testing.T) {
		mockAccessService.EXPECT().
			GrantTemporaryAccess(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, sentinel_errors.ErrInvalidDuration)

		body := strings.NewReader(`{"duration_hours":5}`)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/access/grants/u1", body)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Grant_Failure_UserNotFound", func(t *testing.T) {
		mockAccessService.EXPECT().
			GrantTemporaryAccess(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, sentinel_errors.ErrUserNotFound)

		body := strings.NewReader(`{"duration_hours":4}`)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/access/grants/ghost", body)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Grant_Failure_UnknownTemplate", func(t *testing.T) {
		mockAccessService.EXPECT().
			GrantTemporaryAccess(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, sentinel_errors.ErrTemplateNotFound)

		body := strings.NewReader(`{"duration_hours":4,"template":"ghost"}`)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/access/grants/u1", body)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Grant_Failure_MissingDuration", func(t *testing.T) {
		body := strings.NewReader(`{"template":"babysitter"}`)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/access/grants/u1", body)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Grant_Failure_MissingActor", func(t *testing.T) {
		// No identity middleware: the request carries no actor and must be
		// rejected before it reaches the service.
		bare := gin.New()
		accessController.RegisterRoutes(bare.Group("/"))

		body := strings.NewReader(`{"duration_hours":4}`)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/access/grants/u1", body)
		bare.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Revoke_Success", func(t *testing.T) {
		mockAccessService.EXPECT().
			RevokeTemporaryAccess(gomock.Any(), "u1", gomock.Any()).
			Return(nil)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("DELETE", "/access/grants/u1", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("Revoke_Failure_NoGrant", func(t *testing.T) {
		mockAccessService.EXPECT().
			RevokeTemporaryAccess(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(sentinel_errors.ErrNoTemporaryAccess)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("DELETE", "/access/grants/u1", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("Sweep_Success", func(t *testing.T) {
		// The handler must sweep at the injected clock's instant, not the
		// wall clock's.
		mockAccessService.EXPECT().
			SweepExpired(gomock.Any(), clock.Now()).
			Return([]string{"u1", "u2"}, nil)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/access/sweep", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response map[string][]string
		assert.NoError(t, json.NewDecoder(w.Body).Decode(&response))
		assert.Equal(t, []string{"u1", "u2"}, response["demoted_user_ids"])
	})

	t.Run("Effective_Success", func(t *testing.T) {
		mockAccessService.EXPECT().
			EffectivePermissions(gomock.Any(), "u1").
			Return(model.Permissions(model.CapabilityView, model.CapabilityControl), nil)
		mockAccessService.EXPECT().
			EffectiveDeviceGroups(gomock.Any(), "u1").
			Return([]string{"living-room"}, nil)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/access/effective/u1", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response struct {
			Permissions  model.PermissionSet `json:"permissions"`
			DeviceGroups []string            `json:"device_groups"`
		}
		assert.NoError(t, json.NewDecoder(w.Body).Decode(&response))
		assert.True(t, response.Permissions.Has(model.CapabilityControl))
		assert.Equal(t, []string{"living-room"}, response.DeviceGroups)
	})

	t.Run("Effective_Failure_NotFound", func(t *testing.T) {
		mockAccessService.EXPECT().
			EffectivePermissions(gomock.Any(), gomock.Any()).
			Return(model.PermissionSet{}, sentinel_errors.ErrUserNotFound)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/access/effective/ghost", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("CreateTemplate_Success", func(t *testing.T) {
		mockAccessService.EXPECT().
			CreateTemplate(gomock.Any(), gomock.Any()).
			Return(&model.AccessTemplate{Name: "babysitter"}, nil)

		body := strings.NewReader(`{"name":"babysitter","permissions":["view","control"]}`)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/access/templates", body)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("CreateTemplate_Failure_Conflict", func(t *testing.T) {
		mockAccessService.EXPECT().
			CreateTemplate(gomock.Any(), gomock.Any()).
			Return(nil, sentinel_errors.ErrTemplateConflict)

		body := strings.NewReader(`{"name":"babysitter","permissions":["view"]}`)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/access/templates", body)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("ListTemplates_Success", func(t *testing.T) {
		templates := []*model.AccessTemplate{
			{Name: "babysitter"},
			{Name: "cleaner"},
		}
		mockAccessService.EXPECT().
			ListTemplates(gomock.Any()).
			Return(templates, nil)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/access/templates", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("DeleteTemplate_Success", func(t *testing.T) {
		mockAccessService.EXPECT().
			DeleteTemplate(gomock.Any(), "babysitter").
			Return(nil)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("DELETE", "/access/templates/babysitter", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("DeleteTemplate_Failure_NotFound", func(t *testing.T) {
		mockAccessService.EXPECT().
			DeleteTemplate(gomock.Any(), gomock.Any()).
			Return(sentinel_errors.ErrTemplateNotFound)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("DELETE", "/access/templates/ghost", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
