package internal

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
)

// SupportedExtensions are the file types the API accepts for upload.
var SupportedExtensions = []string{
	"csv", "tsv", "md", "mdx", "json", "txt", "pdf", "pptx", "docx", "xls", "xlsx",
}

// DefaultChunkSize is the part size the server typically hands out when
// splitting an upload (~5 MB).
const DefaultChunkSize = 5 << 20

// multipartInit is the data field of an init-multipart-upload response.
type multipartInit struct {
	UploadID      string     `json:"upload_id"`
	FileObjectKey string     `json:"file_object_key"`
	PartItems     []partItem `json:"part_items"`
}

// partItem is one presigned byte range to upload.
type partItem struct {
	Number    int    `json:"number"`
	Size      int64  `json:"size"`
	UploadURL string `json:"upload_url"`
}

// partETag is the receipt for one uploaded part.
type partETag struct {
	Number int    `json:"number"`
	ETag   string `json:"etag"`
}

func supportedExtension(ext string) bool {
	for _, e := range SupportedExtensions {
		if e == ext {
			return true
		}
	}
	return false
}

// UploadFile uploads a local file via multipart upload and returns the
// file_object_key to pass to CreateDataSource. The server decides the part
// layout; parts are transferred sequentially and any part failure aborts
// the upload. No durable local state is produced.
func (c *Client) UploadFile(ctx context.Context, path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%s is a directory, not a file", path)
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if !supportedExtension(ext) {
		return "", &UnsupportedFileError{Path: path, Ext: ext}
	}

	fileName := filepath.Base(path)
	LogInfo("Uploading %s (%s)", fileName, humanize.Bytes(uint64(info.Size())))

	init, err := c.initMultipartUpload(ctx, fileName, info.Size())
	if err != nil {
		return "", err
	}

	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	etags := make([]partETag, 0, len(init.PartItems))
	for _, part := range init.PartItems {
		etag, err := c.uploadPart(ctx, f, part)
		if err != nil {
			return "", &UploadError{Path: path, Part: part.Number, Err: err}
		}
		LogDebug("Uploaded part %d/%d (%s)", part.Number, len(init.PartItems), humanize.Bytes(uint64(part.Size)))
		etags = append(etags, partETag{Number: part.Number, ETag: etag})
	}

	if err := c.completeMultipartUpload(ctx, init.FileObjectKey, init.UploadID, etags); err != nil {
		return "", err
	}
	return init.FileObjectKey, nil
}

// UploadAndCreateDataSource uploads a local file then registers it as a
// data source in the given dataset, named after the file.
func (c *Client) UploadAndCreateDataSource(ctx context.Context, datasetID, path string) (*DataSource, error) {
	key, err := c.UploadFile(ctx, path)
	if err != nil {
		return nil, err
	}
	return c.CreateDataSource(ctx, datasetID, filepath.Base(path), DataSourceOrigin{FileObjectKey: key})
}

func (c *Client) initMultipartUpload(ctx context.Context, fileName string, fileSize int64) (*multipartInit, error) {
	payload := map[string]any{
		"file_name": fileName,
		"file_size": fileSize,
		"user_id":   c.cfg.UserID,
	}

	var init multipartInit
	if err := c.doJSON(ctx, http.MethodPost, "/v2/team/file/init-multipart-upload", nil, payload, &init); err != nil {
		return nil, err
	}
	if init.UploadID == "" || init.FileObjectKey == "" || len(init.PartItems) == 0 {
		return nil, fmt.Errorf("init-multipart-upload returned an incomplete part layout")
	}
	return &init, nil
}

// uploadPart reads the part's byte range from r and PUTs it to the
// presigned URL. The returned ETag (quotes stripped) is required to
// finalize the upload.
func (c *Client) uploadPart(ctx context.Context, r io.Reader, part partItem) (string, error) {
	chunk := make([]byte, part.Size)
	if _, err := io.ReadFull(r, chunk); err != nil {
		return "", fmt.Errorf("read chunk: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, part.UploadURL, bytes.NewReader(chunk))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/octet-stream")
	req.ContentLength = part.Size

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("put chunk: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &APIError{StatusCode: resp.StatusCode, Message: "chunk rejected"}
	}
	return strings.Trim(resp.Header.Get("ETag"), `"`), nil
}

func (c *Client) completeMultipartUpload(ctx context.Context, fileObjectKey, uploadID string, etags []partETag) error {
	payload := map[string]any{
		"file_object_key": fileObjectKey,
		"upload_id":       uploadID,
		"part_etags":      etags,
		"user_id":         c.cfg.UserID,
	}
	return c.doJSON(ctx, http.MethodPost, "/v2/team/file/complete-multipart-upload", nil, payload, nil)
}
