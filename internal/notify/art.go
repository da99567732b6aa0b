package notify

import (
	"context"
	"fmt"
	"hash/fnv"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/llehouerou/ripple/internal/catalog"
)

const maxArtBytes = 4 << 20

// ArtCache downloads cover images into a directory so notification
// servers, which only read local files, can show them.
type ArtCache struct {
	dir    string
	client *http.Client
}

// NewArtCache stores images under dir.
func NewArtCache(dir string, client *http.Client) *ArtCache {
	if client == nil {
		client = http.DefaultClient
	}
	return &ArtCache{dir: dir, client: client}
}

// Path returns the local file for the song's cover, downloading it on first
// use. It returns "" when the song has no image or the download fails.
func (c *ArtCache) Path(ctx context.Context, song catalog.Song) string {
	if song.ImageURL == "" {
		return ""
	}
	dst := filepath.Join(c.dir, artFileName(song.ImageURL))
	if _, err := os.Stat(dst); err == nil {
		return dst
	}
	if err := c.fetch(ctx, song.ImageURL, dst); err != nil {
		return ""
	}
	return dst
}

func (c *ArtCache) fetch(ctx context.Context, rawURL, dst string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch art: %s", resp.Status)
	}

	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(c.dir, "art-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, io.LimitReader(resp.Body, maxArtBytes)); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), dst)
}

// artFileName maps an image URL to a stable file name, keeping its
// extension.
func artFileName(rawURL string) string {
	h := fnv.New64a()
	h.Write([]byte(rawURL))
	ext := strings.ToLower(path.Ext(strings.SplitN(rawURL, "?", 2)[0]))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp":
	default:
		ext = ".jpg"
	}
	return fmt.Sprintf("%x%s", h.Sum64(), ext)
}
