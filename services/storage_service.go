package services

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MaxVideoFileSize is the hard cap enforced before any disk or network
// operation (2 GB).
const MaxVideoFileSize = int64(2) << 30

// File kinds used in stored file names.
const (
	FileKindVideo = "video"
	FileKindClean = "clean"
)

// UploadRoot returns the base directory for stored files.
func UploadRoot() string {
	root := os.Getenv("UPLOAD_PATH")
	if root == "" {
		root = "./uploads"
	}
	return root
}

// PublicBaseURL returns the URL prefix files are served under.
func PublicBaseURL() string {
	base := os.Getenv("PUBLIC_BASE_URL")
	if base == "" {
		base = "/files"
	}
	return strings.TrimRight(base, "/")
}

// BuildStoragePath builds the relative storage path for an uploaded file:
// {userId}/{campaignId}/{submissionId}/{timestamp}_v{n}_{kind}{ext}
func BuildStoragePath(userID, campaignID, submissionID, version int, kind, originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	name := fmt.Sprintf("%d_v%d_%s%s", time.Now().Unix(), version, kind, ext)
	if ext == "" {
		name = fmt.Sprintf("%d_v%d_%s_%s", time.Now().Unix(), version, kind, uuid.NewString())
	}
	return filepath.Join(
		fmt.Sprintf("%d", userID),
		fmt.Sprintf("%d", campaignID),
		fmt.Sprintf("%d", submissionID),
		name,
	)
}

// AbsoluteStoragePath joins the relative storage path with the upload root.
func AbsoluteStoragePath(relPath string) string {
	return filepath.Join(UploadRoot(), relPath)
}

// PublicURL returns the URL the stored file is reachable at.
func PublicURL(relPath string) string {
	return PublicBaseURL() + "/" + filepath.ToSlash(relPath)
}
