package tools

// ParamLabel returns the Vietnamese description of a parameter name, used
// when asking the user for missing information. Unknown names pass through.
func ParamLabel(param string) string {
	if label, ok := paramLabels[param]; ok {
		return label
	}
	return param
}

var paramLabels = map[string]string{
	"job_type":                "loại công việc",
	"base_salary":             "mức lương cơ bản",
	"hours":                   "số giờ làm thêm",
	"overtime_type":           "loại ngày làm thêm (ngày thường/ngày nghỉ/ngày lễ)",
	"working_years":           "số năm làm việc",
	"average_salary":          "mức lương bình quân",
	"num_dependents":          "số người phụ thuộc",
	"gross_salary":            "mức lương tổng (gross)",
	"days":                    "số ngày",
	"notice_days":             "số ngày báo trước",
	"reason":                  "lý do",
	"contract_count":          "số lần đã ký hợp đồng xác định thời hạn",
	"region":                  "vùng/khu vực",
	"period":                  "khoảng thời gian",
	"special_condition":       "điều kiện đặc biệt",
	"has_medical_certificate": "có giấy chứng nhận y tế",
	"bhxh_months":             "số tháng đóng BHXH",
}

// PurposePhrase returns the "để ..." clause naming what a tool computes,
// used to phrase clarification questions.
func PurposePhrase(tool string) string {
	if phrase, ok := purposePhrases[tool]; ok {
		return phrase
	}
	return "để trả lời chính xác"
}

var purposePhrases = map[string]string{
	"tinh_luong_thuc_nhan":                  "để tính lương thực nhận",
	"tinh_ngay_phep_nam":                    "để tính số ngày phép năm",
	"tinh_luong_lam_them":                   "để tính lương làm thêm giờ",
	"kiem_tra_dieu_kien_nghi_viec_hop_phap": "để kiểm tra điều kiện nghỉ việc",
	"tinh_luong_ngay_nghi_le_tet":           "để tính lương ngày lễ tết",
	"kiem_tra_dieu_kien_nghi_om_huong_bhxh": "để kiểm tra điều kiện nghỉ ốm hưởng BHXH",
	"tinh_thoi_gian_thu_viec":               "để tính thời gian thử việc",
	"tra_cuu_luong_toi_thieu":               "để tra cứu lương tối thiểu",
	"kiem_tra_gio_lam_them":                 "để kiểm tra giới hạn giờ làm thêm",
}

// KeywordMappings lists the colloquial phrase to enum value hints embedded
// in the routing prompt.
var KeywordMappings = []string{
	"'kỹ thuật cao', 'kỹ sư' -> 'ky_thuat_cao'",
	"'vùng 1', 'vùng miền bắc' -> 'vung_I'",
	"'ngày chủ nhật','cuối tuần' -> 'ngay_nghi'",
	"'Tết', 'Quốc Khánh' -> 'ngay_le'",
}
