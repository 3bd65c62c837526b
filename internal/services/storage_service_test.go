// internal/services/storage_service_test.go
package services

import (
	"bytes"
	"mime/multipart"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/damaiputra/living-backend/internal/config"
	"github.com/damaiputra/living-backend/internal/utils"
)

func newLocalStorage(t *testing.T) *StorageService {
	t.Helper()
	cfg := &config.Config{
		Server: config.ServerConfig{Host: "localhost", Port: "8080"},
		Upload: config.UploadConfig{LocalDir: t.TempDir()},
	}
	s, err := NewStorageService(cfg)
	require.NoError(t, err)
	return s
}

func multipartFixture(t *testing.T, name string, content []byte) (multipart.File, *multipart.FileHeader) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(int64(buf.Len()))
	require.NoError(t, err)
	t.Cleanup(func() { form.RemoveAll() })

	header := form.File["file"][0]
	f, err := header.Open()
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })
	return f, header
}

func TestUploadFileWritesLocallyAndReportsChecksum(t *testing.T) {
	s := newLocalStorage(t)
	content := []byte("surat pernyataan kontraktor")
	file, header := multipartFixture(t, "agreement.pdf", content)

	result, err := s.UploadFile(file, header, s.GetDefaultUploadOptions("permit_documents"))
	require.NoError(t, err)

	assert.Equal(t, int64(len(content)), result.Size)
	assert.Equal(t, utils.HashString(string(content)), result.Checksum)
	assert.Contains(t, result.URL, "/uploads/")

	written, err := os.ReadFile(filepath.Join(s.config.Upload.LocalDir, result.Key))
	require.NoError(t, err)
	assert.Equal(t, content, written)
}

func TestUploadFileVerifiesClientChecksum(t *testing.T) {
	s := newLocalStorage(t)
	content := []byte("foto ktp")

	options := s.GetDefaultUploadOptions("permit_documents")
	options.ExpectedChecksum = utils.HashString(string(content))

	file, header := multipartFixture(t, "ktp.jpg", content)
	_, err := s.UploadFile(file, header, options)
	assert.NoError(t, err)

	options.ExpectedChecksum = utils.HashString("sesuatu yang lain")
	file, header = multipartFixture(t, "ktp.jpg", content)
	_, err = s.UploadFile(file, header, options)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "checksum mismatch")
}

func TestUploadFileRejectsDisallowedExtension(t *testing.T) {
	s := newLocalStorage(t)
	file, header := multipartFixture(t, "malware.exe", []byte("MZ"))

	_, err := s.UploadFile(file, header, s.GetDefaultUploadOptions("permit_documents"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not allowed")
}

func TestUploadFileRejectsOversize(t *testing.T) {
	s := newLocalStorage(t)
	file, header := multipartFixture(t, "big.pdf", bytes.Repeat([]byte("a"), 64))

	options := s.GetDefaultUploadOptions("permit_documents")
	options.MaxSize = 16

	_, err := s.UploadFile(file, header, options)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds maximum")
}
