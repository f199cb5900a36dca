package registry

import (
	"encoding/base64"
	"io/fs"
	"path"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// MaxIconFileSize bounds icon files inlined from manifests
const MaxIconFileSize = 256 * 1024

// ResolveIcon inlines an icon given as a file path relative to dir as a
// data URI. Emoji, URLs, data URIs and paths that do not name a readable
// image are returned unchanged.
func ResolveIcon(fsys fs.FS, dir, icon string) string {
	if icon == "" || strings.Contains(icon, "://") || strings.HasPrefix(icon, "data:") || strings.HasPrefix(icon, "/") {
		return icon
	}

	name := path.Clean(path.Join(dir, icon))
	if !fs.ValidPath(name) {
		return icon
	}

	info, err := fs.Stat(fsys, name)
	if err != nil || info.IsDir() || info.Size() > MaxIconFileSize {
		return icon
	}

	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return icon
	}

	mtype := mimetype.Detect(data)
	if !strings.HasPrefix(mtype.String(), "image/") {
		return icon
	}

	// Drop parameters such as "; charset=utf-8"
	mime := strings.TrimSpace(strings.SplitN(mtype.String(), ";", 2)[0])
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}
