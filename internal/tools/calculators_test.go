package tools

import (
	"errors"
	"testing"
)

func TestNetSalary(t *testing.T) {
	r := NewRegistry()

	out, err := r.Execute("tinh_luong_thuc_nhan", map[string]any{"gross_salary": 20000000.0})
	if err != nil {
		t.Fatalf("execute error: %v", err)
	}
	want := "Lương thực nhận: 17,555,000 VNĐ (đã trừ bảo hiểm và thuế TNCN bậc 1 nếu có)"
	if out != want {
		t.Fatalf("got %q, want %q", out, want)
	}

	// One dependent leaves 2,500,000 taxable, taxed at the 5% bracket.
	out, err = r.Execute("tinh_luong_thuc_nhan", map[string]any{
		"gross_salary":   20000000.0,
		"num_dependents": 1.0,
	})
	if err != nil {
		t.Fatalf("execute error: %v", err)
	}
	want = "Lương thực nhận: 17,775,000 VNĐ (đã trừ bảo hiểm và thuế TNCN bậc 1 nếu có)"
	if out != want {
		t.Fatalf("got %q, want %q", out, want)
	}

	// Two dependents push taxable income to zero, so no tax is withheld.
	out, err = r.Execute("tinh_luong_thuc_nhan", map[string]any{
		"gross_salary":   20000000.0,
		"num_dependents": 2.0,
	})
	if err != nil {
		t.Fatalf("execute error: %v", err)
	}
	want = "Lương thực nhận: 17,900,000 VNĐ (đã trừ bảo hiểm và thuế TNCN bậc 1 nếu có)"
	if out != want {
		t.Fatalf("got %q, want %q", out, want)
	}
}

func TestOvertimePay(t *testing.T) {
	r := NewRegistry()
	cases := []struct {
		overtimeType string
		want         string
	}{
		{"ngay_thuong", "Tiền lương làm thêm giờ: 300,000 VNĐ (hệ số 1.5x)"},
		{"ngay_nghi", "Tiền lương làm thêm giờ: 400,000 VNĐ (hệ số 2.0x)"},
		{"ngay_le", "Tiền lương làm thêm giờ: 600,000 VNĐ (hệ số 3.0x)"},
		{"ngay_khac", "Loại ngày làm thêm không hợp lệ."},
	}
	for _, tc := range cases {
		out, err := r.Execute("tinh_luong_lam_them", map[string]any{
			"base_salary":   100000.0,
			"hours":         2.0,
			"overtime_type": tc.overtimeType,
		})
		if err != nil {
			t.Fatalf("%s: execute error: %v", tc.overtimeType, err)
		}
		if out != tc.want {
			t.Fatalf("%s: got %q, want %q", tc.overtimeType, out, tc.want)
		}
	}
}

func TestAnnualLeaveDays(t *testing.T) {
	r := NewRegistry()

	out, err := r.Execute("tinh_ngay_phep_nam", map[string]any{"working_years": 7.0})
	if err != nil {
		t.Fatalf("execute error: %v", err)
	}
	if out != "Số ngày phép năm: 13 ngày " {
		t.Fatalf("got %q", out)
	}

	out, err = r.Execute("tinh_ngay_phep_nam", map[string]any{
		"working_years":     10.0,
		"special_condition": true,
	})
	if err != nil {
		t.Fatalf("execute error: %v", err)
	}
	if out != "Số ngày phép năm: 16 ngày " {
		t.Fatalf("got %q", out)
	}
}

func TestProbationPeriod(t *testing.T) {
	r := NewRegistry()
	cases := map[string]string{
		"ky_thuat_cao": "60 ngày",
		"quan_ly":      "60 ngày",
		"thuc_tap":     "3 đến 6 tháng ",
		"pho_thong":    "30 ngày",
	}
	for jobType, want := range cases {
		out, err := r.Execute("tinh_thoi_gian_thu_viec", map[string]any{"job_type": jobType})
		if err != nil {
			t.Fatalf("%s: execute error: %v", jobType, err)
		}
		if out != want {
			t.Fatalf("%s: got %q, want %q", jobType, out, want)
		}
	}
}

func TestMinimumWage(t *testing.T) {
	r := NewRegistry()

	out, err := r.Execute("tra_cuu_luong_toi_thieu", map[string]any{"region": "vung_I"})
	if err != nil {
		t.Fatalf("execute error: %v", err)
	}
	if out != "4.680.000 đồng/tháng" {
		t.Fatalf("got %q", out)
	}

	out, err = r.Execute("tra_cuu_luong_toi_thieu", map[string]any{"region": "vung_V"})
	if err != nil {
		t.Fatalf("execute error: %v", err)
	}
	if out != "Không tìm thấy thông tin vùng" {
		t.Fatalf("got %q", out)
	}
}

func TestOvertimeLimit(t *testing.T) {
	r := NewRegistry()
	out, err := r.Execute("kiem_tra_gio_lam_them", map[string]any{"period": "nam"})
	if err != nil {
		t.Fatalf("execute error: %v", err)
	}
	if out != "Không quá 200 giờ trong 1 năm, trường hợp đặc biệt không quá 300 giờ" {
		t.Fatalf("got %q", out)
	}
}

func TestResignationCheck(t *testing.T) {
	r := NewRegistry()

	out, err := r.Execute("kiem_tra_dieu_kien_nghi_viec_hop_phap", map[string]any{
		"notice_days": 45.0,
		"reason":      "muốn đổi việc",
	})
	if err != nil {
		t.Fatalf("execute error: %v", err)
	}
	if out != "Đủ điều kiện nghỉ việc hợp pháp theo BLLĐ." {
		t.Fatalf("got %q", out)
	}

	out, err = r.Execute("kiem_tra_dieu_kien_nghi_viec_hop_phap", map[string]any{
		"notice_days": 5.0,
		"reason":      "Không được trả lương",
	})
	if err != nil {
		t.Fatalf("execute error: %v", err)
	}
	if out != "Đủ điều kiện nghỉ việc hợp pháp theo BLLĐ." {
		t.Fatalf("just cause should qualify regardless of notice, got %q", out)
	}

	out, err = r.Execute("kiem_tra_dieu_kien_nghi_viec_hop_phap", map[string]any{
		"notice_days": 5.0,
		"reason":      "muốn đổi việc",
	})
	if err != nil {
		t.Fatalf("execute error: %v", err)
	}
	if out != "Chưa đủ điều kiện nghỉ việc hợp pháp (cần báo trước đủ số ngày hoặc có lý do chính đáng)." {
		t.Fatalf("got %q", out)
	}
}

func TestHolidayPay(t *testing.T) {
	r := NewRegistry()

	out, err := r.Execute("tinh_luong_ngay_nghi_le_tet", map[string]any{
		"base_salary": 500000.0,
		"days":        3.0,
	})
	if err != nil {
		t.Fatalf("execute error: %v", err)
	}
	want := "Tiền lương ngày nghỉ lễ, tết: 4,500,000 VNĐ (300% của 500,000 VNĐ × 3 ngày)"
	if out != want {
		t.Fatalf("got %q, want %q", out, want)
	}

	out, err = r.Execute("tinh_luong_ngay_nghi_le_tet", map[string]any{
		"base_salary": -1.0,
		"days":        3.0,
	})
	if err != nil {
		t.Fatalf("execute error: %v", err)
	}
	if out != "Lỗi: Mức lương không hợp lệ" {
		t.Fatalf("got %q", out)
	}
}

func TestSickLeaveCheck(t *testing.T) {
	r := NewRegistry()

	out, err := r.Execute("kiem_tra_dieu_kien_nghi_om_huong_bhxh", map[string]any{
		"bhxh_months":             8.0,
		"has_medical_certificate": true,
	})
	if err != nil {
		t.Fatalf("execute error: %v", err)
	}
	if out != "Đủ điều kiện nghỉ ốm hưởng BHXH." {
		t.Fatalf("got %q", out)
	}

	out, err = r.Execute("kiem_tra_dieu_kien_nghi_om_huong_bhxh", map[string]any{
		"bhxh_months":             8.0,
		"has_medical_certificate": false,
	})
	if err != nil {
		t.Fatalf("execute error: %v", err)
	}
	if out != "Chưa đủ điều kiện nghỉ ốm hưởng BHXH (cần đủ số tháng đóng và giấy tờ hợp lệ)." {
		t.Fatalf("got %q", out)
	}
}

func TestExecuteErrors(t *testing.T) {
	r := NewRegistry()

	if _, err := r.Execute("khong_ton_tai", nil); !errors.Is(err, ErrUnknownTool) {
		t.Fatalf("want ErrUnknownTool, got %v", err)
	}
	if _, err := r.Execute("tinh_luong_thuc_nhan", map[string]any{}); !errors.Is(err, ErrBadArguments) {
		t.Fatalf("want ErrBadArguments, got %v", err)
	}
	if _, err := r.Execute("tinh_luong_thuc_nhan", map[string]any{"gross_salary": "nhiều"}); !errors.Is(err, ErrBadArguments) {
		t.Fatalf("want ErrBadArguments, got %v", err)
	}
}

func TestFormatVND(t *testing.T) {
	cases := map[float64]string{
		0:          "0",
		999:        "999",
		1000:       "1,000",
		17555000:   "17,555,000",
		1234567890: "1,234,567,890",
	}
	for amount, want := range cases {
		if got := formatVND(amount); got != want {
			t.Fatalf("formatVND(%v) = %q, want %q", amount, got, want)
		}
	}
}
