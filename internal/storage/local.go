package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	appErr "github.com/ashokvas/flowspace/pkg/errors"
)

const metaSuffix = ".meta"

// LocalStore keeps blobs as files under a base directory: one data file per
// ref plus a sidecar recording the content type.
type LocalStore struct {
	dir     string
	baseURL string
}

var _ BlobStore = (*LocalStore)(nil)

// NewLocalStore creates the base directory if needed. baseURL is the public
// prefix under which blobs are served, e.g. "http://host/api/v1/files".
func NewLocalStore(dir, baseURL string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "create blob dir failed")
	}
	return &LocalStore{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// path validates the ref before touching the filesystem. Refs are uuids, so
// anything else (path separators included) is rejected outright.
func (s *LocalStore) path(ref string) (string, error) {
	if _, err := uuid.Parse(ref); err != nil {
		return "", appErr.New(appErr.CodeInvalid, "malformed blob ref")
	}
	return filepath.Join(s.dir, ref), nil
}

func (s *LocalStore) Put(ctx context.Context, ref, contentType string, r io.Reader) (int64, error) {
	p, err := s.path(ref)
	if err != nil {
		return 0, err
	}
	f, err := os.Create(p)
	if err != nil {
		return 0, appErr.Wrap(err, appErr.CodeInternal, "create blob failed")
	}
	n, err := io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(p)
		return 0, appErr.Wrap(err, appErr.CodeInternal, "write blob failed")
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	if err := os.WriteFile(p+metaSuffix, []byte(contentType), 0o644); err != nil {
		_ = os.Remove(p)
		return 0, appErr.Wrap(err, appErr.CodeInternal, "write blob meta failed")
	}
	return n, nil
}

func (s *LocalStore) Open(ctx context.Context, ref string) (io.ReadCloser, string, error) {
	p, err := s.path(ref)
	if err != nil {
		return nil, "", err
	}
	f, err := os.Open(p)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, "", appErr.New(appErr.CodeNotFound, "blob not found")
		}
		return nil, "", appErr.Wrap(err, appErr.CodeInternal, "open blob failed")
	}
	contentType := "application/octet-stream"
	if meta, err := os.ReadFile(p + metaSuffix); err == nil && len(meta) > 0 {
		contentType = string(meta)
	}
	return f, contentType, nil
}

func (s *LocalStore) Delete(ctx context.Context, ref string) error {
	p, err := s.path(ref)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil {
		if os.IsNotExist(err) {
			return appErr.New(appErr.CodeNotFound, "blob not found")
		}
		return appErr.Wrap(err, appErr.CodeInternal, "delete blob failed")
	}
	_ = os.Remove(p + metaSuffix)
	return nil
}

func (s *LocalStore) URL(ctx context.Context, ref string) (string, error) {
	p, err := s.path(ref)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(p); err != nil {
		if os.IsNotExist(err) {
			return "", appErr.New(appErr.CodeNotFound, "blob not found")
		}
		return "", appErr.Wrap(err, appErr.CodeInternal, "stat blob failed")
	}
	return s.baseURL + "/" + ref, nil
}

func (s *LocalStore) List(ctx context.Context) ([]BlobInfo, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "list blobs failed")
	}
	var out []BlobInfo
	for _, e := range entries {
		if e.IsDir() || strings.HasSuffix(e.Name(), metaSuffix) {
			continue
		}
		if _, err := uuid.Parse(e.Name()); err != nil {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		out = append(out, BlobInfo{Ref: e.Name(), Size: info.Size(), ModTime: info.ModTime()})
	}
	return out, nil
}
