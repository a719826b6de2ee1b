package admin

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/linkcard-next/internal/constants"
	"github.com/linkcard-next/internal/models"
	"github.com/linkcard-next/internal/provider"
	"github.com/linkcard-next/internal/repository"
	"github.com/linkcard-next/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupAdminProfileHandlerTest(t *testing.T) (*gin.Engine, *service.ProfileService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:admin_profile_handler_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Profile{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}

	profileRepo := repository.NewProfileRepository(db)
	profileService := service.NewProfileService(profileRepo)
	dashboardRepo := repository.NewDashboardRepository(db)

	h := New(&provider.Container{
		ProfileRepo:      profileRepo,
		ProfileService:   profileService,
		DashboardRepo:    dashboardRepo,
		DashboardService: service.NewDashboardService(dashboardRepo),
	})

	r := gin.New()
	r.GET("/admin/profiles", h.GetAdminProfiles)
	r.POST("/admin/profiles", h.CreateProfile)
	r.GET("/admin/profiles/:code", h.GetAdminProfile)
	r.PUT("/admin/profiles/:code", h.UpdateProfile)
	r.DELETE("/admin/profiles/:code", h.DeleteProfile)
	r.PUT("/admin/profiles/:code/ban", h.BanProfile)
	r.PUT("/admin/profiles/:code/unban", h.UnbanProfile)
	r.POST("/admin/profiles/bulk", h.BulkProfiles)
	r.GET("/admin/dashboard/stats", h.GetDashboardStats)
	return r, profileService
}

type adminEnvelope struct {
	StatusCode int                    `json:"status_code"`
	Msg        string                 `json:"msg"`
	Data       map[string]interface{} `json:"data"`
	Pagination map[string]interface{} `json:"pagination"`
}

func doAdminJSON(t *testing.T, r *gin.Engine, method, path, body string) adminEnvelope {
	t.Helper()
	w := httptest.NewRecorder()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("%s %s http status want 200 got %d", method, path, w.Code)
	}
	var resp adminEnvelope
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal envelope failed: %v (%s)", err, w.Body.String())
	}
	return resp
}

func TestCreateProfileValidation(t *testing.T) {
	r, _ := setupAdminProfileHandlerTest(t)

	resp := doAdminJSON(t, r, http.MethodPost, "/admin/profiles", `{"tag_no":"LC-0001","pin":"12345","owner_name":"张伟"}`)
	if resp.StatusCode != 0 {
		t.Fatalf("create status_code want 0 got %d (%s)", resp.StatusCode, resp.Msg)
	}
	if resp.Data["public_code"] == "" || resp.Data["public_code"] == nil {
		t.Fatalf("public_code should be generated: %v", resp.Data)
	}

	resp = doAdminJSON(t, r, http.MethodPost, "/admin/profiles", `{"tag_no":"LC-0002","pin":"123"}`)
	if resp.StatusCode != 400 {
		t.Fatalf("bad pin status_code want 400 got %d", resp.StatusCode)
	}

	// 重复标签号触发唯一索引冲突
	resp = doAdminJSON(t, r, http.MethodPost, "/admin/profiles", `{"tag_no":"LC-0001","pin":"54321"}`)
	if resp.StatusCode != 400 {
		t.Fatalf("duplicate tag status_code want 400 got %d", resp.StatusCode)
	}
}

func TestGetAdminProfilesPagination(t *testing.T) {
	r, svc := setupAdminProfileHandlerTest(t)
	for i := 1; i <= 5; i++ {
		if _, err := svc.Create(service.CreateProfileInput{
			TagNo: fmt.Sprintf("LC-%04d", i),
			PIN:   "12345",
		}); err != nil {
			t.Fatalf("seed profile %d failed: %v", i, err)
		}
	}

	resp := doAdminJSON(t, r, http.MethodGet, "/admin/profiles?page=1&page_size=2", "")
	if resp.StatusCode != 0 {
		t.Fatalf("list status_code want 0 got %d", resp.StatusCode)
	}
	if resp.Pagination["total"] != float64(5) {
		t.Fatalf("total want 5 got %v", resp.Pagination["total"])
	}
	if resp.Pagination["total_page"] != float64(3) {
		t.Fatalf("total_page want 3 got %v", resp.Pagination["total_page"])
	}

	resp = doAdminJSON(t, r, http.MethodGet, "/admin/profiles?keyword=LC-0003", "")
	if resp.Pagination["total"] != float64(1) {
		t.Fatalf("keyword total want 1 got %v", resp.Pagination["total"])
	}

	resp = doAdminJSON(t, r, http.MethodGet, "/admin/profiles?status=unknown", "")
	if resp.StatusCode != 400 {
		t.Fatalf("invalid status filter want 400 got %d", resp.StatusCode)
	}
}

func TestBanUnbanEndpoints(t *testing.T) {
	r, svc := setupAdminProfileHandlerTest(t)
	profile, err := svc.Create(service.CreateProfileInput{TagNo: "LC-0001", PIN: "12345"})
	if err != nil {
		t.Fatalf("create profile failed: %v", err)
	}
	base := "/admin/profiles/" + profile.PublicCode

	resp := doAdminJSON(t, r, http.MethodPut, base+"/ban", "")
	if resp.StatusCode != 0 || resp.Data["status"] != constants.ProfileStatusBanned {
		t.Fatalf("ban response mismatch: %+v", resp)
	}

	// 重复封禁仍返回成功
	resp = doAdminJSON(t, r, http.MethodPut, base+"/ban", "")
	if resp.StatusCode != 0 {
		t.Fatalf("repeated ban status_code want 0 got %d", resp.StatusCode)
	}

	resp = doAdminJSON(t, r, http.MethodPut, base+"/unban", "")
	if resp.StatusCode != 0 || resp.Data["status"] != constants.ProfileStatusActive {
		t.Fatalf("unban response mismatch: %+v", resp)
	}

	resp = doAdminJSON(t, r, http.MethodPut, "/admin/profiles/missing/ban", "")
	if resp.StatusCode != 404 {
		t.Fatalf("missing code ban want 404 got %d", resp.StatusCode)
	}
}

func TestBulkProfilesReportsRequestedCount(t *testing.T) {
	r, svc := setupAdminProfileHandlerTest(t)
	a, err := svc.Create(service.CreateProfileInput{TagNo: "LC-A", PIN: "12345"})
	if err != nil {
		t.Fatalf("create A failed: %v", err)
	}
	b, err := svc.Create(service.CreateProfileInput{TagNo: "LC-B", PIN: "12345"})
	if err != nil {
		t.Fatalf("create B failed: %v", err)
	}

	// 含一个不存在的访问码，仍按请求条目数返回
	body := fmt.Sprintf(`{"action":"ban","codes":[%q,%q,"missing"]}`, a.PublicCode, b.PublicCode)
	resp := doAdminJSON(t, r, http.MethodPost, "/admin/profiles/bulk", body)
	if resp.StatusCode != 0 {
		t.Fatalf("bulk ban status_code want 0 got %d", resp.StatusCode)
	}
	if resp.Data["count"] != float64(3) {
		t.Fatalf("count want 3 got %v", resp.Data["count"])
	}

	banned, err := svc.GetByPublicCode(a.PublicCode)
	if err != nil || banned.Status != constants.ProfileStatusBanned {
		t.Fatalf("profile A should be banned: %+v err=%v", banned, err)
	}

	resp = doAdminJSON(t, r, http.MethodPost, "/admin/profiles/bulk", `{"action":"ban","codes":[]}`)
	if resp.StatusCode != 400 {
		t.Fatalf("empty codes want 400 got %d", resp.StatusCode)
	}

	resp = doAdminJSON(t, r, http.MethodPost, "/admin/profiles/bulk", `{"action":"archive","codes":["x"]}`)
	if resp.StatusCode != 400 {
		t.Fatalf("unknown action want 400 got %d", resp.StatusCode)
	}

	body = fmt.Sprintf(`{"action":"delete","codes":[%q]}`, b.PublicCode)
	resp = doAdminJSON(t, r, http.MethodPost, "/admin/profiles/bulk", body)
	if resp.StatusCode != 0 || resp.Data["count"] != float64(1) {
		t.Fatalf("bulk delete mismatch: %+v", resp)
	}
	if _, err := svc.GetByPublicCode(b.PublicCode); err != service.ErrNotFound {
		t.Fatalf("profile B should be deleted, err=%v", err)
	}
}

func TestGetDashboardStats(t *testing.T) {
	r, svc := setupAdminProfileHandlerTest(t)
	if _, err := svc.Create(service.CreateProfileInput{TagNo: "LC-A", PIN: "12345"}); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	banned, err := svc.Create(service.CreateProfileInput{TagNo: "LC-B", PIN: "12345"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := svc.SetStatus(banned.PublicCode, constants.ProfileStatusBanned); err != nil {
		t.Fatalf("ban failed: %v", err)
	}

	resp := doAdminJSON(t, r, http.MethodGet, "/admin/dashboard/stats?force_refresh=true", "")
	if resp.StatusCode != 0 {
		t.Fatalf("stats status_code want 0 got %d (%s)", resp.StatusCode, resp.Msg)
	}
	if resp.Data["total"] != float64(2) {
		t.Fatalf("total want 2 got %v", resp.Data["total"])
	}
	if resp.Data["active"] != float64(1) || resp.Data["banned"] != float64(1) {
		t.Fatalf("active/banned mismatch: %v", resp.Data)
	}
	if resp.Data["created_today"] != float64(2) {
		t.Fatalf("created_today want 2 got %v", resp.Data["created_today"])
	}
}
