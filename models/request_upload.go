package models

// FileHandle describes one uploaded file that was streamed to temporary
// storage while the request was being read. Handlers receive handles
// instead of in-memory buffers.
type FileHandle struct {
	// FieldName is the multipart form field the file was sent under.
	FieldName string `json:"fieldName"`

	// Filename is the original file name reported by the client.
	Filename string `json:"filename"`

	// ContentType is the content type declared on the multipart part.
	// It is not sniffed or verified.
	ContentType string `json:"contentType"`

	// Size is the number of bytes written to TempPath.
	Size int64 `json:"size"`

	// TempPath is the location of the on-disk copy. The file is removed
	// when the request finishes unless the handler claims it.
	TempPath string `json:"tempPath"`
}
