package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func makeFileHeader(t *testing.T, filename, contentType, content string) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, filename))
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	assert.NoError(t, err)
	_, err = part.Write([]byte(content))
	assert.NoError(t, err)
	assert.NoError(t, writer.Close())

	form, err := multipart.NewReader(&buf, writer.Boundary()).ReadForm(1 << 20)
	assert.NoError(t, err)
	t.Cleanup(func() { form.RemoveAll() })

	return form.File["file"][0]
}

func TestLocalStorage(t *testing.T) {
	tempDir := t.TempDir()
	storage := NewLocalStorage(tempDir)
	ctx := context.Background()
	content := "hello storage"
	key := "1724800000000-abcd1234.txt"

	t.Run("Upload creates the file", func(t *testing.T) {
		file := makeFileHeader(t, "notes.txt", "text/plain", content)
		result, err := storage.Upload(ctx, file, key)
		assert.NoError(t, err)
		assert.Equal(t, key, result.Key)
		assert.Equal(t, int64(len(content)), result.FileSize)
		assert.Equal(t, "text/plain", result.MimeType)
		assert.Equal(t, "/files/"+key, result.URL)

		_, err = os.Stat(filepath.Join(tempDir, key))
		assert.NoError(t, err)
	})

	t.Run("Get streams the content back", func(t *testing.T) {
		reader, contentType, err := storage.Get(ctx, key)
		assert.NoError(t, err)
		defer reader.Close()

		got, err := io.ReadAll(reader)
		assert.NoError(t, err)
		assert.Equal(t, content, string(got))
		assert.Equal(t, "application/octet-stream", contentType)
	})

	t.Run("Delete removes the file", func(t *testing.T) {
		assert.NoError(t, storage.Delete(ctx, key))

		_, err := os.Stat(filepath.Join(tempDir, key))
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("Delete tolerates missing keys", func(t *testing.T) {
		assert.NoError(t, storage.Delete(ctx, "never-uploaded.pdf"))
	})

	t.Run("Get fails on missing keys", func(t *testing.T) {
		_, _, err := storage.Get(ctx, "never-uploaded.pdf")
		assert.Error(t, err)
	})
}

func TestGenerateFileKey(t *testing.T) {
	key := GenerateFileKey("Contract FINAL.PDF")
	assert.True(t, strings.HasSuffix(key, ".pdf"))
	assert.NotEqual(t, key, GenerateFileKey("Contract FINAL.PDF"))
}

func TestIsConfigured(t *testing.T) {
	assert.True(t, NewLocalStorage(t.TempDir()).IsConfigured())

	r2 := &R2Storage{bucket: "case-files", client: nil}
	assert.False(t, r2.IsConfigured())
}
