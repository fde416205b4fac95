package body

import (
	"io"
	"os"
	"path/filepath"

	"golang.org/x/text/encoding/htmlindex"

	"github.com/go-httpcore/httpcore/pkg/buffer"
	"github.com/go-httpcore/httpcore/pkg/constants"
	"github.com/go-httpcore/httpcore/pkg/errors"
	"github.com/go-httpcore/httpcore/pkg/header"
	"github.com/go-httpcore/httpcore/pkg/uri"
)

// ToBytes drains r into a growing buffer, raising EntityTooLarge if more
// than maxLength bytes are produced.
func ToBytes(r io.Reader, maxLength int64) ([]byte, error) {
	limited := io.LimitReader(r, maxLength+1)
	buf, err := io.ReadAll(limited)
	if err != nil {
		return nil, errors.IO("read", err)
	}
	if int64(len(buf)) > maxLength {
		return nil, errors.EntityTooLarge(maxLength)
	}
	return buf, nil
}

// ToString drains r into a string, decoding bytes using the charset named
// by contentType's "charset" parameter (default UTF-8).
func ToString(r io.Reader, maxLength int64, contentType header.MediaType) (string, error) {
	buf, err := ToBytes(r, maxLength)
	if err != nil {
		return "", err
	}
	charset := contentType.Charset()
	if charset == "" || charset == "UTF-8" || charset == "utf-8" {
		return string(buf), nil
	}
	enc, err := htmlindex.Get(charset)
	if err != nil {
		return "", errors.UnsupportedEncoding("charset:" + charset)
	}
	decoded, err := enc.NewDecoder().Bytes(buf)
	if err != nil {
		return "", errors.Wrap(errors.KindInvalidSyntax, "decode", "charset decode failed", err)
	}
	return string(decoded), nil
}

// ToQuery drains r as a string (per contentType's charset) and parses it
// as a application/x-www-form-urlencoded query string.
func ToQuery(r io.Reader, maxLength int64, contentType header.MediaType) (uri.QueryString, error) {
	s, err := ToString(r, maxLength, contentType)
	if err != nil {
		return nil, err
	}
	return uri.ParseQuery(s)
}

// ToReader returns r unchanged; present for symmetry with the other
// materializers and to let callers compose it into a stream pipeline
// without pulling the whole body into memory.
func ToReader(r io.Reader) io.Reader { return r }

// ToFile drains r through a spill-to-disk Buffer, bounding total size to
// constants.MaxRawBufferSize, then copies the buffered payload to destPath.
// If destPath names an existing directory, a uniquely-named file is
// created inside it and its path returned; otherwise destPath is created
// or overwritten.
func ToFile(r io.Reader, destPath string) (string, error) {
	buf := buffer.New(constants.DefaultBodyMemLimit)
	defer buf.Close()

	limited := io.LimitReader(r, constants.MaxRawBufferSize+1)
	n, err := io.Copy(buf, limited)
	if err != nil {
		return "", errors.IO("buffer body", err)
	}
	if n > constants.MaxRawBufferSize {
		return "", errors.EntityTooLarge(constants.MaxRawBufferSize)
	}

	src, err := buf.Reader()
	if err != nil {
		return "", err
	}
	defer src.Close()

	if info, err := os.Stat(destPath); err == nil && info.IsDir() {
		f, err := os.CreateTemp(destPath, "httpcore-body-*")
		if err != nil {
			return "", errors.IO("create file", err)
		}
		defer f.Close()
		if _, err := io.Copy(f, src); err != nil {
			return "", errors.IO("write file", err)
		}
		return f.Name(), nil
	}
	if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
		return "", errors.IO("create directory", err)
	}
	f, err := os.Create(destPath)
	if err != nil {
		return "", errors.IO("create file", err)
	}
	defer f.Close()
	if _, err := io.Copy(f, src); err != nil {
		return "", errors.IO("write file", err)
	}
	return destPath, nil
}
