package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/url"
	"os"
	"strings"
)

// MaxSize caps how many bytes ReadAll accepts from a single source.
const MaxSize int64 = 40 << 20

// Opener resolves an attachment location to its content.
type Opener interface {
	// Open returns a reader for path. The caller closes it.
	Open(ctx context.Context, path string) (io.ReadCloser, error)
}

// OpenerFunc adapts a function to the Opener interface.
type OpenerFunc func(ctx context.Context, path string) (io.ReadCloser, error)

// Open implements Opener.
func (f OpenerFunc) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	return f(ctx, path)
}

// FileOpener reads attachments from the local filesystem.
type FileOpener struct{}

// Open implements Opener.
func (FileOpener) Open(_ context.Context, path string) (io.ReadCloser, error) {
	if path == "" {
		return nil, ErrInvalidPath
	}
	path = strings.TrimPrefix(path, "file://")

	f, err := os.Open(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	case errors.Is(err, fs.ErrPermission):
		return nil, fmt.Errorf("%w: %s", ErrAccessDenied, path)
	case err != nil:
		return nil, errors.Join(ErrReadFailed, err)
	}
	return f, nil
}

// MuxRoute binds a URL scheme to an opener.
type MuxRoute struct {
	scheme string
	opener Opener
}

// Route creates a route for NewMux.
func Route(scheme string, o Opener) MuxRoute {
	return MuxRoute{scheme: strings.ToLower(scheme), opener: o}
}

// Mux dispatches to an opener by the scheme of the path.
// Paths without a registered scheme go to the fallback.
type Mux struct {
	fallback Opener
	routes   map[string]Opener
}

// NewMux creates a scheme router.
func NewMux(fallback Opener, routes ...MuxRoute) *Mux {
	m := &Mux{fallback: fallback, routes: make(map[string]Opener, len(routes))}
	for _, r := range routes {
		if r.opener != nil {
			m.routes[r.scheme] = r.opener
		}
	}
	return m
}

// Open implements Opener.
func (m *Mux) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	if u, err := url.Parse(path); err == nil && u.Scheme != "" {
		if o, ok := m.routes[strings.ToLower(u.Scheme)]; ok {
			return o.Open(ctx, path)
		}
	}
	if m.fallback == nil {
		return nil, fmt.Errorf("%w: no opener for %q", ErrInvalidPath, path)
	}
	return m.fallback.Open(ctx, path)
}

// ReadAll opens path and reads it fully, up to MaxSize bytes.
func ReadAll(ctx context.Context, o Opener, path string) ([]byte, error) {
	rc, err := o.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	data, err := io.ReadAll(io.LimitReader(rc, MaxSize+1))
	if err != nil {
		return nil, errors.Join(ErrReadFailed, err)
	}
	if int64(len(data)) > MaxSize {
		return nil, fmt.Errorf("%w: %s", ErrTooLarge, path)
	}
	return data, nil
}
