package tools

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestRegistryCatalog(t *testing.T) {
	r := NewRegistry()

	if got := len(r.Specs()); got != 9 {
		t.Fatalf("expected 9 tools, got %d", got)
	}

	names := r.Names()
	for _, name := range []string{
		"tinh_thoi_gian_thu_viec",
		"tra_cuu_luong_toi_thieu",
		"kiem_tra_gio_lam_them",
		"tinh_luong_thuc_nhan",
		"tinh_ngay_phep_nam",
		"tinh_luong_lam_them",
		"kiem_tra_dieu_kien_nghi_viec_hop_phap",
		"tinh_luong_ngay_nghi_le_tet",
		"kiem_tra_dieu_kien_nghi_om_huong_bhxh",
	} {
		found := false
		for _, n := range names {
			if n == name {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("catalog missing %s", name)
		}
	}
}

func TestCatalogJSON(t *testing.T) {
	r := NewRegistry()
	catalog := r.CatalogJSON()

	// Vietnamese text must land in the prompt verbatim, not as \u escapes.
	if !strings.Contains(catalog, "Tính thời gian thử việc tối đa theo loại công việc") {
		t.Fatalf("catalog JSON escaped or dropped Vietnamese text:\n%s", catalog)
	}

	var specs []Spec
	if err := json.Unmarshal([]byte(catalog), &specs); err != nil {
		t.Fatalf("catalog JSON not parseable: %v", err)
	}
	if len(specs) != 9 {
		t.Fatalf("expected 9 specs in JSON, got %d", len(specs))
	}
}

func TestLexicon(t *testing.T) {
	if got := ParamLabel("gross_salary"); got != "mức lương tổng (gross)" {
		t.Fatalf("got %q", got)
	}
	if got := ParamLabel("unknown_param"); got != "unknown_param" {
		t.Fatalf("unknown params should pass through, got %q", got)
	}
	if got := PurposePhrase("tinh_luong_thuc_nhan"); got != "để tính lương thực nhận" {
		t.Fatalf("got %q", got)
	}
	if got := PurposePhrase("unknown_tool"); got != "để trả lời chính xác" {
		t.Fatalf("got %q", got)
	}
}
