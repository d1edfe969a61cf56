package payload

type UploadResult struct {
	Data      []map[string]string `json:"data"`
	Columns   []string            `json:"columns"`
	TotalRows int                 `json:"totalRows"`
	FilePath  string              `json:"filePath"`
}
