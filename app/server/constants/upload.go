package constants

const (
	UploadMaxSize   = 5 << 20 // 5 MiB
	UploadFormField = "file"
	UploadURLPrefix = "/api/v1/uploads/"
)

// 允许上传的文件类型（以 http.DetectContentType 的结果为准）
var UploadAllowedTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}
