/*
Copyright © 2024 the RasterLab authors.
This file is part of RasterLab.

RasterLab is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

RasterLab is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with RasterLab.  If not, see <http://www.gnu.org/licenses/>.
*/

package rasterutil

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/cenkalti/backoff"
	"github.com/sirupsen/logrus"
)

// maybeDownload checks if the input is an existing file locally. If not,
// and the input is an http or https URL, it downloads the file to a
// temporary directory and returns the path to the downloaded file.
func maybeDownload(ctx context.Context, path string) (string, error) {
	// Check if local file exists. If it does, return the given path.
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		return path, nil
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return downloadHTTP(ctx, path)
	}
	return path, nil
}

// downloadHTTP downloads a file from the specified URL, retrying
// transient failures, and returns the path to the downloaded file.
func downloadHTTP(ctx context.Context, url string) (string, error) {
	dir, err := os.MkdirTemp("", "rasterlab")
	if err != nil {
		return "", fmt.Errorf("rasterutil: creating temporary download directory: %v", err)
	}
	dst := filepath.Join(dir, filepath.Base(url))

	get := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			err := fmt.Errorf("status %s", resp.Status)
			if resp.StatusCode >= 400 && resp.StatusCode < 500 {
				return backoff.Permanent(err)
			}
			return err
		}
		w, err := os.Create(dst)
		if err != nil {
			return backoff.Permanent(err)
		}
		if _, err := io.Copy(w, resp.Body); err != nil {
			w.Close()
			return err
		}
		return w.Close()
	}

	log.WithFields(logrus.Fields{"url": url}).Info("downloading")
	b := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 5), ctx)
	if err := backoff.Retry(get, b); err != nil {
		return "", fmt.Errorf("rasterutil: downloading %s: %v", url, err)
	}
	return dst, nil
}

// Unzip extracts the zip archive at src into the directory dir,
// creating it if necessary.
func Unzip(src, dir string) error {
	r, err := zip.OpenReader(src)
	if err != nil {
		return fmt.Errorf("rasterutil: opening archive %s: %v", src, err)
	}
	defer r.Close()

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("rasterutil: %v", err)
	}
	for _, f := range r.File {
		dst := filepath.Join(dir, f.Name)
		// Reject entries that would escape the destination directory.
		if !strings.HasPrefix(dst, filepath.Clean(dir)+string(os.PathSeparator)) {
			return fmt.Errorf("rasterutil: archive %s: illegal path %s", src, f.Name)
		}
		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(dst, 0755); err != nil {
				return fmt.Errorf("rasterutil: %v", err)
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
			return fmt.Errorf("rasterutil: %v", err)
		}
		if err := extractFile(f, dst); err != nil {
			return fmt.Errorf("rasterutil: archive %s: %v", src, err)
		}
	}
	return nil
}

func extractFile(f *zip.File, dst string) error {
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()
	w, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(w, rc); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}
