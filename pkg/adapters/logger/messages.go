package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("vi", l10n.LexiconMap{
		// Composer level messages (info)
		"Composing overlay onto %dx%d photo": "Đang ghép overlay lên ảnh %dx%d",
		"Overlay composed successfully":      "Đã ghép overlay thành công",
		"Output saved to %s":                 "Đã lưu ảnh vào %s",

		// Session component
		"Photo loaded: %dx%d px":             "Đã tải ảnh: %dx%d px",
		"Photo downscaled to %dx%d px":       "Đã thu nhỏ ảnh còn %dx%d px",
		"Restored original photo":            "Đã khôi phục ảnh gốc",
		"Mask cleared":                       "Đã xóa vùng che",
		"Painted mask at (%d, %d) radius %d": "Đã tô vùng che tại (%d, %d) bán kính %d",

		// Redact stage
		"Deriving blur layer at %d%% scale": "Đang tạo lớp mờ ở tỉ lệ %d%%",
		"Redaction applied":                 "Đã che vùng đã tô",
		"Mask empty, skipping redaction":    "Vùng che trống, bỏ qua bước làm mờ",

		// Watermark stage
		"Watermark drawn, reserving %d px on the right": "Đã vẽ watermark, giữ %d px bên phải",

		// Info cluster stage
		"Info cluster drawn, time %d px, meta %d px": "Đã vẽ cụm thông tin, giờ %d px, phụ %d px",

		// Warnings
		"No photo loaded":        "Bạn chưa chọn ảnh",
		"Camera unavailable: %s": "Không thể mở camera: %s",

		// Errors
		"Failed to read input: %s":        "Không đọc được ảnh đầu vào: %s",
		"Failed to decode photo: %s":      "Không giải mã được ảnh: %s",
		"Failed to apply redaction: %s":   "Che vùng đã tô thất bại: %s",
		"Failed to draw watermark: %s":    "Vẽ watermark thất bại: %s",
		"Failed to draw info cluster: %s": "Vẽ cụm thông tin thất bại: %s",
		"Failed to encode output: %s":     "Không mã hóa được ảnh xuất: %s",
		"Failed to write output: %s":      "Ghi ảnh xuất thất bại: %s",
	})
}
