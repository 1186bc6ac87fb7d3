package utils

import (
	"io"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// Upload policy for course PDFs, enforced at the boundary.
const (
	MaxPDFCount    = 5
	MaxPDFSize     = 50 * 1024 * 1024 // 50MB per file
	PDFContentType = "application/pdf"
)

var unsafeNameChars = regexp.MustCompile(`[^\w.-]`)

// SanitizeFilename replaces spaces with underscores and strips unsafe
// characters from an uploaded filename.
func SanitizeFilename(name string) string {
	safe := strings.ReplaceAll(name, " ", "_")
	return unsafeNameChars.ReplaceAllString(safe, "")
}

// IsPDFUpload checks the declared content type of an uploaded file.
func IsPDFUpload(file *multipart.FileHeader) bool {
	return file.Header.Get("Content-Type") == PDFContentType
}

// SaveUploadedFile stores an uploaded file under destDir with a
// timestamped, sanitized filename and returns the stored path.
func SaveUploadedFile(file *multipart.FileHeader, destDir string) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	// Create destination directory if it doesn't exist
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", err
	}

	// Timestamp prefix avoids collisions between same-named uploads
	newFilename := time.Now().Format("20060102150405") + "_" + SanitizeFilename(file.Filename)
	filePath := filepath.Join(destDir, newFilename)

	dst, err := os.Create(filePath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}

	return filepath.ToSlash(filePath), nil
}

// DeleteFileQuiet removes a stored file best-effort. Failures are
// logged and swallowed; file cleanup is advisory, not transactional.
func DeleteFileQuiet(filePath string) {
	if filePath == "" {
		return
	}
	if err := os.Remove(filePath); err != nil && !os.IsNotExist(err) {
		log.Printf("Failed to delete file %s: %v", filePath, err)
	}
}
