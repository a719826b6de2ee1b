package repository

import (
	"fmt"
	"strings"
	"testing"

	"github.com/linkcard-next/internal/constants"
	"github.com/linkcard-next/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupProfileRepositoryTest(t *testing.T) (*GormProfileRepository, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Profile{}); err != nil {
		t.Fatalf("migrate profile model failed: %v", err)
	}
	return NewProfileRepository(db), db
}

func createTestProfile(t *testing.T, repo *GormProfileRepository, tagNo, pin, code, status string) *models.Profile {
	t.Helper()
	profile := &models.Profile{
		TagNo:      tagNo,
		PIN:        pin,
		PublicCode: code,
		Status:     status,
		OwnerName:  "测试联系人",
	}
	if err := repo.Create(profile); err != nil {
		t.Fatalf("create profile %s failed: %v", tagNo, err)
	}
	return profile
}

func TestGetByCredentialsRequiresAllThree(t *testing.T) {
	repo, _ := setupProfileRepositoryTest(t)
	createTestProfile(t, repo, "LC-0001", "12345", "code0001", constants.ProfileStatusActive)

	got, err := repo.GetByCredentials("code0001", "LC-0001", "12345")
	if err != nil {
		t.Fatalf("get by credentials failed: %v", err)
	}
	if got == nil {
		t.Fatalf("expected profile, got nil")
	}

	cases := [][3]string{
		{"code0001", "LC-0001", "54321"},
		{"code0001", "LC-9999", "12345"},
		{"wrongcode", "LC-0001", "12345"},
	}
	for _, tc := range cases {
		got, err := repo.GetByCredentials(tc[0], tc[1], tc[2])
		if err != nil {
			t.Fatalf("get by credentials %v failed: %v", tc, err)
		}
		if got != nil {
			t.Fatalf("credentials %v should not match", tc)
		}
	}
}

func TestGetByPublicCodeNotFoundReturnsNil(t *testing.T) {
	repo, _ := setupProfileRepositoryTest(t)

	got, err := repo.GetByPublicCode("missing")
	if err != nil {
		t.Fatalf("get by public code failed: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil for missing code, got %+v", got)
	}
}

func TestListFiltersAndPagination(t *testing.T) {
	repo, _ := setupProfileRepositoryTest(t)
	createTestProfile(t, repo, "LC-1001", "11111", "code1001", constants.ProfileStatusActive)
	createTestProfile(t, repo, "LC-1002", "22222", "code1002", constants.ProfileStatusActive)
	banned := createTestProfile(t, repo, "LC-1003", "33333", "code1003", constants.ProfileStatusBanned)

	profiles, total, err := repo.List(ProfileListFilter{Page: 1, PageSize: 2})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 3 {
		t.Fatalf("total want 3 got %d", total)
	}
	if len(profiles) != 2 {
		t.Fatalf("page size want 2 got %d", len(profiles))
	}
	// 按 id 倒序，最新创建的排最前
	if profiles[0].ID != banned.ID {
		t.Fatalf("expected newest first, got id %d", profiles[0].ID)
	}

	profiles, total, err = repo.List(ProfileListFilter{Page: 1, PageSize: 10, Status: constants.ProfileStatusBanned})
	if err != nil {
		t.Fatalf("list by status failed: %v", err)
	}
	if total != 1 || len(profiles) != 1 || profiles[0].TagNo != "LC-1003" {
		t.Fatalf("status filter mismatch: total=%d profiles=%+v", total, profiles)
	}

	profiles, total, err = repo.List(ProfileListFilter{Page: 1, PageSize: 10, Keyword: "1002"})
	if err != nil {
		t.Fatalf("list by keyword failed: %v", err)
	}
	if total != 1 || profiles[0].TagNo != "LC-1002" {
		t.Fatalf("keyword filter mismatch: total=%d", total)
	}
}

func TestBatchUpdateStatusSkipsUnknownCodes(t *testing.T) {
	repo, _ := setupProfileRepositoryTest(t)
	createTestProfile(t, repo, "LC-2001", "11111", "code2001", constants.ProfileStatusActive)
	createTestProfile(t, repo, "LC-2002", "22222", "code2002", constants.ProfileStatusActive)

	err := repo.BatchUpdateStatus([]string{"code2001", "code2002", "missing"}, constants.ProfileStatusBanned)
	if err != nil {
		t.Fatalf("batch update failed: %v", err)
	}

	for _, code := range []string{"code2001", "code2002"} {
		profile, err := repo.GetByPublicCode(code)
		if err != nil {
			t.Fatalf("get %s failed: %v", code, err)
		}
		if profile.Status != constants.ProfileStatusBanned {
			t.Fatalf("profile %s status want banned got %s", code, profile.Status)
		}
	}
}

func TestBatchDelete(t *testing.T) {
	repo, _ := setupProfileRepositoryTest(t)
	createTestProfile(t, repo, "LC-3001", "11111", "code3001", constants.ProfileStatusActive)
	createTestProfile(t, repo, "LC-3002", "22222", "code3002", constants.ProfileStatusActive)

	if err := repo.BatchDelete([]string{"code3001", "missing"}); err != nil {
		t.Fatalf("batch delete failed: %v", err)
	}

	gone, err := repo.GetByPublicCode("code3001")
	if err != nil {
		t.Fatalf("get deleted failed: %v", err)
	}
	if gone != nil {
		t.Fatalf("profile code3001 should be deleted")
	}
	kept, err := repo.GetByPublicCode("code3002")
	if err != nil {
		t.Fatalf("get kept failed: %v", err)
	}
	if kept == nil {
		t.Fatalf("profile code3002 should survive")
	}
}
