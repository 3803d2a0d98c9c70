package tools

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

func catalog() []Spec {
	return []Spec{
		{
			Name:        "tinh_thoi_gian_thu_viec",
			Description: "Tính thời gian thử việc tối đa theo loại công việc",
			Parameters: Parameters{
				Type: "object",
				Properties: map[string]Property{
					"job_type": {
						Type:        "string",
						Enum:        []string{"ky_thuat_cao", "quan_ly", "thuc_tap"},
						Description: "Loại công việc: ky_thuat_cao (công việc có chuyên môn kỹ thuật cao), quan_ly (quản lý), thuc_tap (thực tập)",
					},
				},
				Required: []string{"job_type"},
			},
			ContextRequirements: []string{"thử việc", "thời gian thử việc"},
			handler:             probationPeriod,
		},
		{
			Name:        "tra_cuu_luong_toi_thieu",
			Description: "Tra cứu mức lương tối thiểu vùng hiện hành tại Việt Nam",
			Parameters: Parameters{
				Type: "object",
				Properties: map[string]Property{
					"region": {
						Type:        "string",
						Enum:        []string{"vung_I", "vung_II", "vung_III", "vung_IV"},
						Description: "Vùng cần tra cứu: vung_I, vung_II, vung_III, vung_IV",
					},
				},
				Required: []string{"region"},
			},
			ContextRequirements: []string{"lương tối thiểu", "lương cơ bản vùng"},
			handler:             minimumWage,
		},
		{
			Name:        "kiem_tra_gio_lam_them",
			Description: "Kiểm tra giới hạn làm thêm giờ theo quy định của Bộ luật lao động",
			Parameters: Parameters{
				Type: "object",
				Properties: map[string]Property{
					"period": {
						Type:        "string",
						Enum:        []string{"ngay", "thang", "nam"},
						Description: "Khoảng thời gian cần kiểm tra: ngay, thang, nam",
					},
				},
				Required: []string{"period"},
			},
			ContextRequirements: []string{"làm thêm giờ", "tăng ca", "overtime"},
			handler:             overtimeLimit,
		},
		{
			Name:        "tinh_luong_thuc_nhan",
			Description: "Tính tiền lương thực nhận sau khi trừ các khoản bảo hiểm bắt buộc (BHXH, BHYT, BHTN) và thuế TNCN",
			Parameters: Parameters{
				Type: "object",
				Properties: map[string]Property{
					"gross_salary":   {Type: "number", Description: "Lương gross (VNĐ)"},
					"num_dependents": {Type: "integer", Description: "Số người phụ thuộc", Default: 0},
				},
				Required: []string{"gross_salary"},
			},
			ContextRequirements: []string{"lương thực nhận", "lương net", "lương sau thuế"},
			handler:             netSalary,
		},
		{
			Name:        "tinh_ngay_phep_nam",
			Description: "Tính số ngày nghỉ phép năm theo thâm niên làm việc (không bao gồm nghỉ việc riêng như cưới, ma chay)",
			Parameters: Parameters{
				Type: "object",
				Properties: map[string]Property{
					"working_years":     {Type: "number", Description: "Số năm làm việc"},
					"special_condition": {Type: "boolean", Description: "Làm việc nặng nhọc, độc hại, nơi có điều kiện đặc biệt?", Default: false},
				},
				Required: []string{"working_years"},
			},
			ContextRequirements: []string{"nghỉ phép năm", "phép năm", "annual leave"},
			handler:             annualLeaveDays,
		},
		{
			Name:        "tinh_luong_lam_them",
			Description: "Tính tiền lương làm thêm giờ theo quy định",
			Parameters: Parameters{
				Type: "object",
				Properties: map[string]Property{
					"base_salary":   {Type: "number", Description: "Lương cơ bản (VNĐ)"},
					"hours":         {Type: "number", Description: "Số giờ làm thêm"},
					"overtime_type": {Type: "string", Enum: []string{"ngay_thuong", "ngay_nghi", "ngay_le"}, Description: "Loại ngày làm thêm: ngày thường, ngày nghỉ, ngày lễ"},
				},
				Required: []string{"base_salary", "hours", "overtime_type"},
			},
			ContextRequirements: []string{"lương làm thêm", "tiền làm thêm giờ", "tiền tăng ca"},
			handler:             overtimePay,
		},
		{
			Name:        "kiem_tra_dieu_kien_nghi_viec_hop_phap",
			Description: "Kiểm tra điều kiện nghỉ việc (chấm dứt HĐLĐ) hợp pháp theo Bộ luật lao động",
			Parameters: Parameters{
				Type: "object",
				Properties: map[string]Property{
					"notice_days": {Type: "integer", Description: "Số ngày báo trước"},
					"reason":      {Type: "string", Description: "Lý do nghỉ việc"},
				},
				Required: []string{"notice_days", "reason"},
			},
			ContextRequirements: []string{"nghỉ việc", "thôi việc", "chấm dứt hợp đồng"},
			handler:             resignationCheck,
		},
		{
			Name:        "tinh_luong_ngay_nghi_le_tet",
			Description: "Tính tiền lương ngày nghỉ lễ, tết theo quy định",
			Parameters: Parameters{
				Type: "object",
				Properties: map[string]Property{
					"base_salary": {Type: "number", Description: "Lương cơ bản (VNĐ)"},
					"days":        {Type: "number", Description: "Số ngày làm việc trong dịp lễ, tết"},
				},
				Required: []string{"base_salary", "days"},
			},
			ContextRequirements: []string{"lương ngày lễ", "lương ngày tết", "nghỉ lễ tết"},
			handler:             holidayPay,
		},
		{
			Name:        "kiem_tra_dieu_kien_nghi_om_huong_bhxh",
			Description: "Kiểm tra điều kiện nghỉ ốm hưởng BHXH theo quy định",
			Parameters: Parameters{
				Type: "object",
				Properties: map[string]Property{
					"bhxh_months":             {Type: "integer", Description: "Số tháng đã đóng BHXH"},
					"has_medical_certificate": {Type: "boolean", Description: "Có giấy chứng nhận nghỉ ốm hợp lệ không?"},
				},
				Required: []string{"bhxh_months", "has_medical_certificate"},
			},
			ContextRequirements: []string{"nghỉ ốm", "hưởng bảo hiểm xã hội", "nghỉ bệnh"},
			handler:             sickLeaveCheck,
		},
	}
}

// Mandatory insurance rates: social, health and unemployment insurance.
const (
	rateBHXH = 0.08
	rateBHYT = 0.015
	rateBHTN = 0.01

	personalDeduction  = 11_000_000
	dependentDeduction = 4_400_000
	taxRateBracketOne  = 0.05
)

func probationPeriod(args map[string]any) (string, error) {
	jobType, err := stringArg(args, "job_type")
	if err != nil {
		return "", err
	}
	periods := map[string]string{
		"ky_thuat_cao": "60 ngày",
		"quan_ly":      "60 ngày",
		"thuc_tap":     "3 đến 6 tháng ",
	}
	if p, ok := periods[jobType]; ok {
		return p, nil
	}
	return "30 ngày", nil
}

func minimumWage(args map[string]any) (string, error) {
	region, err := stringArg(args, "region")
	if err != nil {
		return "", err
	}
	wages := map[string]string{
		"vung_I":   "4.680.000 đồng/tháng",
		"vung_II":  "4.160.000 đồng/tháng",
		"vung_III": "3.640.000 đồng/tháng",
		"vung_IV":  "3.250.000 đồng/tháng",
	}
	if w, ok := wages[region]; ok {
		return w, nil
	}
	return "Không tìm thấy thông tin vùng", nil
}

func overtimeLimit(args map[string]any) (string, error) {
	period, err := stringArg(args, "period")
	if err != nil {
		return "", err
	}
	limits := map[string]string{
		"ngay":  "Không quá 12 giờ trong 1 ngày",
		"thang": "Không quá 40 giờ trong 1 tháng",
		"nam":   "Không quá 200 giờ trong 1 năm, trường hợp đặc biệt không quá 300 giờ",
	}
	if l, ok := limits[period]; ok {
		return l, nil
	}
	return "Không có thông tin về giới hạn thời gian này", nil
}

func netSalary(args map[string]any) (string, error) {
	gross, err := numberArg(args, "gross_salary")
	if err != nil {
		return "", err
	}
	dependents := intArgDefault(args, "num_dependents", 0)

	insurance := gross * (rateBHXH + rateBHYT + rateBHTN)
	afterInsurance := gross - insurance
	taxable := afterInsurance - personalDeduction - float64(dependents)*dependentDeduction
	if taxable < 0 {
		taxable = 0
	}
	tax := taxable * taxRateBracketOne
	net := afterInsurance - tax
	return fmt.Sprintf("Lương thực nhận: %s VNĐ (đã trừ bảo hiểm và thuế TNCN bậc 1 nếu có)", formatVND(net)), nil
}

func annualLeaveDays(args map[string]any) (string, error) {
	years, err := numberArg(args, "working_years")
	if err != nil {
		return "", err
	}
	baseDays := 12
	if boolArgDefault(args, "special_condition", false) {
		baseDays = 14
	}
	// One extra day for every five full years of service.
	total := baseDays + int(years/5)
	return fmt.Sprintf("Số ngày phép năm: %d ngày ", total), nil
}

func overtimePay(args map[string]any) (string, error) {
	base, err := numberArg(args, "base_salary")
	if err != nil {
		return "", err
	}
	hours, err := numberArg(args, "hours")
	if err != nil {
		return "", err
	}
	overtimeType, err := stringArg(args, "overtime_type")
	if err != nil {
		return "", err
	}

	var rate float64
	switch overtimeType {
	case "ngay_thuong":
		rate = 1.5
	case "ngay_nghi":
		rate = 2.0
	case "ngay_le":
		rate = 3.0
	default:
		return "Loại ngày làm thêm không hợp lệ.", nil
	}
	pay := base * rate * hours
	return fmt.Sprintf("Tiền lương làm thêm giờ: %s VNĐ (hệ số %sx)",
		formatVND(pay), strconv.FormatFloat(rate, 'f', 1, 64)), nil
}

func resignationCheck(args map[string]any) (string, error) {
	noticeDays, err := intArg(args, "notice_days")
	if err != nil {
		return "", err
	}
	reason, err := stringArg(args, "reason")
	if err != nil {
		return "", err
	}

	justCauses := []string{"bị ngược đãi", "không được trả lương", "bị quấy rối"}
	legal := noticeDays >= 30
	if !legal {
		lowered := strings.ToLower(reason)
		for _, cause := range justCauses {
			if lowered == cause {
				legal = true
				break
			}
		}
	}
	if legal {
		return "Đủ điều kiện nghỉ việc hợp pháp theo BLLĐ.", nil
	}
	return "Chưa đủ điều kiện nghỉ việc hợp pháp (cần báo trước đủ số ngày hoặc có lý do chính đáng).", nil
}

func holidayPay(args map[string]any) (string, error) {
	base, err := numberArg(args, "base_salary")
	if err != nil {
		return "", err
	}
	days, err := numberArg(args, "days")
	if err != nil {
		return "", err
	}
	if base < 0 {
		return "Lỗi: Mức lương không hợp lệ", nil
	}
	if days < 0 {
		return "Lỗi: Số ngày không hợp lệ", nil
	}

	// Holiday work pays 300% of the base daily wage.
	pay := base * 3 * days
	return fmt.Sprintf("Tiền lương ngày nghỉ lễ, tết: %s VNĐ (300%% của %s VNĐ × %g ngày)",
		formatVND(pay), formatVND(base), days), nil
}

func sickLeaveCheck(args map[string]any) (string, error) {
	months, err := intArg(args, "bhxh_months")
	if err != nil {
		return "", err
	}
	certified := boolArgDefault(args, "has_medical_certificate", false)
	if _, ok := args["has_medical_certificate"]; !ok {
		return "", fmt.Errorf("%w: missing has_medical_certificate", ErrBadArguments)
	}

	if months >= 6 && certified {
		return "Đủ điều kiện nghỉ ốm hưởng BHXH.", nil
	}
	return "Chưa đủ điều kiện nghỉ ốm hưởng BHXH (cần đủ số tháng đóng và giấy tờ hợp lệ).", nil
}

// formatVND renders an amount with comma thousands separators and no
// decimals.
func formatVND(amount float64) string {
	n := int64(math.Round(amount))
	s := strconv.FormatInt(n, 10)
	negative := strings.HasPrefix(s, "-")
	if negative {
		s = s[1:]
	}
	var b strings.Builder
	pre := len(s) % 3
	if pre > 0 {
		b.WriteString(s[:pre])
	}
	for i := pre; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	if negative {
		return "-" + b.String()
	}
	return b.String()
}

func stringArg(args map[string]any, key string) (string, error) {
	v, ok := args[key]
	if !ok {
		return "", fmt.Errorf("%w: missing %s", ErrBadArguments, key)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: %s must be a string", ErrBadArguments, key)
	}
	return s, nil
}

func numberArg(args map[string]any, key string) (float64, error) {
	v, ok := args[key]
	if !ok {
		return 0, fmt.Errorf("%w: missing %s", ErrBadArguments, key)
	}
	switch n := v.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, fmt.Errorf("%w: %s must be a number", ErrBadArguments, key)
		}
		return f, nil
	}
	return 0, fmt.Errorf("%w: %s must be a number", ErrBadArguments, key)
}

func intArg(args map[string]any, key string) (int, error) {
	f, err := numberArg(args, key)
	if err != nil {
		return 0, err
	}
	return int(f), nil
}

func intArgDefault(args map[string]any, key string, def int) int {
	n, err := intArg(args, key)
	if err != nil {
		return def
	}
	return n
}

func boolArgDefault(args map[string]any, key string, def bool) bool {
	v, ok := args[key]
	if !ok {
		return def
	}
	b, ok := v.(bool)
	if !ok {
		return def
	}
	return b
}
