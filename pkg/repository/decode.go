package repository

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/nvidia-holoscan/holoscan-artifacts/pkg/utilio"
	"github.com/pingcap/errors"
	"github.com/ulikunitz/xz"
	"sigs.k8s.io/yaml"
)

// decompress returns the plain contents of an xz or gzip compressed file,
// or data itself if it is neither.
func decompress(ctx context.Context, data []byte) ([]byte, error) {
	var r io.Reader
	xr, err := xz.NewReader(bytes.NewReader(data))
	if err == nil {
		r = xr
	} else {
		slog.Debug("not xz compressed, trying gzip", "error", err)
		gr, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			slog.Debug("not gzip compressed, using raw file", "error", err)
			return data, nil
		}
		defer gr.Close() //nolint:errcheck
		r = gr
	}
	plain, err := utilio.ReadAllLimit(ctx, r, MaxManifestSize)
	if err != nil {
		return nil, errors.Wrap(err, "decompressing manifest")
	}
	return plain, nil
}

// isYAML reports whether name (ignoring a compression suffix) has a YAML extension.
func isYAML(name string) bool {
	name = strings.TrimSuffix(strings.TrimSuffix(name, ".xz"), ".gz")
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// decodeBody parses a manifest body into generic JSON values. Only syntax is
// checked here; shape problems are reported by validated.
func decodeBody(data []byte, fromYAML bool) (any, error) {
	if fromYAML {
		var err error
		data, err = yaml.YAMLToJSON(data)
		if err != nil {
			return nil, errors.Wrap(err, "yaml.YAMLToJSON()")
		}
	}
	var raw any
	err := json.Unmarshal(data, &raw)
	if err != nil {
		return nil, errors.Wrap(err, "json.Unmarshal()")
	}
	return raw, nil
}
