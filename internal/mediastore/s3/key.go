package s3

import (
	"fmt"
	"path"
	"strings"

	"github.com/mentora-io/assetgc/internal/mediastore"
)

// Object keys are laid out as <access>/<kind>/<publicID>.<format>, where the
// public ID itself carries the folder path ("avatars/u123/profile"). The
// listing prefix for one (kind, access) combination is therefore a fixed
// two-segment directory.

// listPrefix returns the key prefix covering one (kind, access) combination.
func listPrefix(kind mediastore.Kind, access mediastore.AccessMode) string {
	return fmt.Sprintf("%s/%s/", access, kind)
}

// buildKeyPrefix returns the key prefix for one asset's public ID, up to and
// including the extension dot.
func buildKeyPrefix(publicID string, kind mediastore.Kind, access mediastore.AccessMode) string {
	return listPrefix(kind, access) + publicID + "."
}

// parseKey splits a bucket key back into its asset identity.
// Reports ok=false for keys outside the <access>/<kind>/ layout.
func parseKey(key string) (publicID string, kind mediastore.Kind, access mediastore.AccessMode, format string, ok bool) {
	parts := strings.SplitN(key, "/", 3)
	if len(parts) != 3 || parts[2] == "" {
		return "", "", "", "", false
	}

	switch mediastore.AccessMode(parts[0]) {
	case mediastore.AccessPublic, mediastore.AccessPrivate:
		access = mediastore.AccessMode(parts[0])
	default:
		return "", "", "", "", false
	}

	var kindOK bool
	kind, kindOK = mediastore.ParseKind(parts[1])
	if !kindOK {
		return "", "", "", "", false
	}

	rest := parts[2]
	if ext := path.Ext(rest); ext != "" {
		format = strings.TrimPrefix(ext, ".")
		publicID = strings.TrimSuffix(rest, ext)
	} else {
		publicID = rest
	}
	return publicID, kind, access, format, true
}

// folderOf returns the directory portion of a public ID, "" for root assets.
func folderOf(publicID string) string {
	dir := path.Dir(publicID)
	if dir == "." {
		return ""
	}
	return dir
}
