package document

import (
	"encoding/base64"
	"io/fs"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// FileSystem is the read-only filesystem capability the image resolver
// probes. Injected so tests can substitute a fake.
type FileSystem interface {
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
}

type osFileSystem struct{}

func (osFileSystem) Stat(name string) (fs.FileInfo, error) { return os.Stat(name) }
func (osFileSystem) ReadFile(name string) ([]byte, error)  { return os.ReadFile(name) }

func OSFileSystem() FileSystem { return osFileSystem{} }

// ImageResolver turns heterogeneous image references (data URIs, URLs,
// filesystem paths, site-relative paths) into something the PDF engine can
// embed. Inlined bytes are preferred; an absolute URL is the fallback so the
// engine can fetch remotely. Read-only and idempotent.
type ImageResolver struct {
	FS            FileSystem
	SiteURL       string
	UploadBaseURL string
	UploadBaseDir string
	RootDir       string
}

func NewImageResolver(fsys FileSystem, siteURL, uploadBaseURL, uploadBaseDir, rootDir string) *ImageResolver {
	if fsys == nil {
		fsys = OSFileSystem()
	}
	return &ImageResolver{
		FS:            fsys,
		SiteURL:       strings.TrimRight(siteURL, "/"),
		UploadBaseURL: strings.TrimRight(uploadBaseURL, "/"),
		UploadBaseDir: uploadBaseDir,
		RootDir:       rootDir,
	}
}

// Resolve maps a single image reference to an embeddable form, or "" for
// empty input. Resolution preference: passthrough for data URIs, inline the
// bytes when a local file can be found, otherwise fall back to an absolute
// URL.
func (r *ImageResolver) Resolve(ref string) string {
	if ref == "" {
		return ""
	}
	if strings.HasPrefix(ref, "data:") {
		return ref
	}

	if inlined := r.inline(r.candidatePath(ref)); inlined != "" {
		return inlined
	}

	if isHTTPURL(ref) {
		return ref
	}
	if strings.HasPrefix(ref, "/") {
		return r.SiteURL + ref
	}
	return r.SiteURL + "/" + strings.TrimLeft(ref, "/")
}

// candidatePath applies the URL→path heuristics in documented preference
// order and returns the first plausible local path, or "".
func (r *ImageResolver) candidatePath(ref string) string {
	if info, err := r.FS.Stat(ref); err == nil && info.Mode().IsRegular() {
		return ref
	}

	if isHTTPURL(ref) {
		if r.UploadBaseURL != "" && strings.Contains(ref, r.UploadBaseURL) {
			return strings.Replace(ref, r.UploadBaseURL, r.UploadBaseDir, 1)
		}
		parsed, err := url.Parse(ref)
		if err != nil || parsed.Path == "" {
			return ""
		}
		return filepath.Join(r.RootDir, strings.TrimLeft(parsed.Path, "/"))
	}

	if r.UploadBaseURL != "" && strings.Contains(ref, r.UploadBaseURL) {
		return strings.Replace(ref, r.UploadBaseURL, r.UploadBaseDir, 1)
	}
	if strings.HasPrefix(ref, "/") {
		return filepath.Join(r.RootDir, strings.TrimLeft(ref, "/"))
	}
	if strings.Contains(ref, "uploads/") {
		return filepath.Join(r.RootDir, ref)
	}
	return ""
}

// inline reads path and returns it as a data URI with a content-sniffed MIME
// type. Unreadable files and non-image content log and return "" so the
// caller can fall through to a URL.
func (r *ImageResolver) inline(path string) string {
	if path == "" {
		return ""
	}
	info, err := r.FS.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return ""
	}
	data, err := r.FS.ReadFile(path)
	if err != nil {
		slog.Warn("image file read failed", "path", path, "err", err)
		return ""
	}
	mimeType := http.DetectContentType(data)
	if !strings.HasPrefix(mimeType, "image/") {
		slog.Warn("image type detection failed", "path", path, "detected", mimeType)
		return ""
	}
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

func isHTTPURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
