// Package main provides localization for the timemark CLI.
package main

import (
	"github.com/ideamans/go-l10n"
)

func init() {
	// Register Vietnamese translations for CLI messages.
	l10n.Register("vi", l10n.LexiconMap{
		// Root command
		"Stamp photos with a styled time, date and address overlay": "Đóng dấu ảnh với lớp phủ giờ, ngày và địa chỉ cách điệu",

		// Stamp command
		"Stamp a photo with the time, date and address overlay": "Đóng dấu giờ, ngày và địa chỉ lên một tấm ảnh",

		// Weekdays command
		"List the weekday labels the overlay accepts": "Liệt kê các nhãn thứ mà lớp phủ chấp nhận",

		// Version command
		"Show version information": "Hiển thị thông tin phiên bản",
		"timemark version %s":      "timemark phiên bản %s",

		// Input/Output flags
		"Input photo path (JPEG or PNG)":                       "Đường dẫn ảnh đầu vào (JPEG hoặc PNG)",
		"Output photo path":                                    "Đường dẫn ảnh đầu ra",
		"YAML config file path":                                "Đường dẫn tệp cấu hình YAML",
		"Output format (jpeg, png or auto)":                    "Định dạng đầu ra (jpeg, png hoặc auto)",
		"JPEG quality (1-100)":                                 "Chất lượng JPEG (1-100)",
		"Longest side cap in pixels (0 = keep photos as shot)": "Giới hạn cạnh dài nhất theo pixel (0 = giữ nguyên cỡ chụp)",

		// Overlay field flags
		"Clock text shown large, usually HH:MM":    "Chữ giờ hiển thị cỡ lớn, thường là HH:MM",
		"ISO date YYYY-MM-DD (default: today)":     "Ngày ISO YYYY-MM-DD (mặc định: hôm nay)",
		"Weekday label (see the weekdays command)": "Nhãn thứ trong tuần (xem lệnh weekdays)",
		"Upper address line":                       "Dòng địa chỉ trên",
		"Lower address line":                       "Dòng địa chỉ dưới",

		// Redaction flags
		"Redaction stroke as x,y or x,y,r (repeatable)":    "Nét che dạng x,y hoặc x,y,r (lặp lại được)",
		"Stroke radius in pixels when a stroke gives none": "Bán kính nét che theo pixel khi nét không chỉ định",

		// Branding flags
		"Accent half of the brand word":    "Nửa chữ thương hiệu mang màu nhấn",
		"Plain half of the brand word":     "Nửa chữ thương hiệu màu thường",
		"Tagline centered under the brand": "Dòng khẩu hiệu căn giữa dưới thương hiệu",

		// Style flags
		"Accent color (hex, e.g., #f2b644)":      "Màu nhấn (hex, ví dụ: #f2b644)",
		"Text color (hex)":                       "Màu chữ (hex)",
		"Subtitle color (hex)":                   "Màu phụ đề (hex)",
		"Font file overriding the bundled faces": "Tệp phông chữ thay cho phông đi kèm",

		// Debug flags
		"Enable debug output":        "Bật đầu ra gỡ lỗi",
		"Directory for debug output": "Thư mục chứa đầu ra gỡ lỗi",

		// Logging flags
		"Log level (debug, info, warn, error)": "Mức ghi log (debug, info, warn, error)",
		"Suppress all log output":              "Tắt toàn bộ log",

		// Runtime messages
		"Stamping %s...":                "Đang đóng dấu %s...",
		"Interrupted, shutting down...": "Đã bị ngắt, đang dừng lại...",

		// Error messages
		"Unknown weekday %q, valid labels: %s":                  "Thứ %q không hợp lệ, các nhãn hợp lệ: %s",
		"Input photo path is required (-i or the config file)":  "Cần đường dẫn ảnh đầu vào (-i hoặc tệp cấu hình)",
		"Output photo path is required (-o or the config file)": "Cần đường dẫn ảnh đầu ra (-o hoặc tệp cấu hình)",
		"Invalid redact stroke %q, expected x,y or x,y,r":       "Nét che %q không hợp lệ, cần dạng x,y hoặc x,y,r",
	})
}
