package sticker

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/sant0-9/companion/internal/logger"
)

// Source is an image waiting to be read. Size may be -1 when unknown.
type Source struct {
	Filename string
	Size     int64
	Open     func() (io.ReadCloser, error)
}

func FileSource(path string) (Source, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Source{}, err
	}
	if info.IsDir() {
		return Source{}, fmt.Errorf("%s is a directory", path)
	}
	return Source{
		Filename: filepath.Base(path),
		Size:     info.Size(),
		Open:     func() (io.ReadCloser, error) { return os.Open(path) },
	}, nil
}

var allowedExt = map[string]bool{".png": true, ".gif": true}

var allowedType = map[string]bool{"image/png": true, "image/gif": true}

// Validate checks what can be known before reading the file.
func Validate(name string, src Source) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}
	if src.Size > MaxSize {
		return fmt.Errorf("%w: %d bytes", ErrTooLarge, src.Size)
	}
	if ext := strings.ToLower(filepath.Ext(src.Filename)); !allowedExt[ext] {
		return fmt.Errorf("%w: %q", ErrUnsupportedType, src.Filename)
	}
	if src.Open == nil {
		return fmt.Errorf("sticker source %q cannot be opened", src.Filename)
	}
	return nil
}

type readResult struct {
	url string
	err error
}

// readAsync reads src in the background and delivers exactly one result
// on a channel with room for it.
func readAsync(src Source) <-chan readResult {
	ch := make(chan readResult, 1)
	go func() {
		url, err := readDataURL(src)
		ch <- readResult{url: url, err: err}
	}()
	return ch
}

func readDataURL(src Source) (string, error) {
	rc, err := src.Open()
	if err != nil {
		return "", fmt.Errorf("open %s: %w", src.Filename, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(io.LimitReader(rc, MaxSize+1))
	if err != nil {
		return "", fmt.Errorf("read %s: %w", src.Filename, err)
	}
	if len(data) > MaxSize {
		return "", ErrTooLarge
	}
	mime := http.DetectContentType(data)
	if !allowedType[mime] {
		return "", fmt.Errorf("%w: content is %s", ErrUnsupportedType, mime)
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// Upload validates src, reads it and adds it to the custom pack. Nothing
// changes unless every check passes.
func (p *Picker) Upload(ctx context.Context, name string, src Source) (Sticker, error) {
	if err := Validate(name, src); err != nil {
		return Sticker{}, err
	}

	var res readResult
	select {
	case res = <-readAsync(src):
	case <-ctx.Done():
		return Sticker{}, ctx.Err()
	}
	if res.err != nil {
		return Sticker{}, res.err
	}

	s := Sticker{
		ID:   "custom-" + uuid.NewString(),
		Name: strings.TrimSpace(name),
		URL:  res.url,
	}
	p.addCustom(ctx, s)
	logger.With("sticker").Info("uploaded", "id", s.ID, "name", s.Name)
	return s, nil
}
