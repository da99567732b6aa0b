package player

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
)

type memoryFile struct {
	*bytes.Reader
}

func (memoryFile) Close() error { return nil }

// openSource fetches an http(s) URL fully into memory, or opens a local path
// or file:// URL. The format comes from the extension, falling back to the
// response Content-Type.
func openSource(ctx context.Context, client *http.Client, rawURL string) (io.ReadSeekCloser, Format, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, FormatUnknown, fmt.Errorf("parse media url: %w", err)
	}

	switch u.Scheme {
	case "http", "https":
		return fetch(ctx, client, u)
	case "file":
		f, err := os.Open(u.Path)
		if err != nil {
			return nil, FormatUnknown, err
		}
		return f, FormatFromPath(u.Path), nil
	case "":
		f, err := os.Open(rawURL)
		if err != nil {
			return nil, FormatUnknown, err
		}
		return f, FormatFromPath(rawURL), nil
	default:
		return nil, FormatUnknown, fmt.Errorf("unsupported media scheme %q", u.Scheme)
	}
}

func fetch(ctx context.Context, client *http.Client, u *url.URL) (io.ReadSeekCloser, Format, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), http.NoBody)
	if err != nil {
		return nil, FormatUnknown, fmt.Errorf("create request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, FormatUnknown, fmt.Errorf("fetch media: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, FormatUnknown, fmt.Errorf("fetch media: %s", resp.Status)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, FormatUnknown, fmt.Errorf("read media: %w", err)
	}

	f := FormatFromPath(u.Path)
	if f == FormatUnknown {
		f = FormatFromContentType(resp.Header.Get("Content-Type"))
	}
	return memoryFile{bytes.NewReader(data)}, f, nil
}
