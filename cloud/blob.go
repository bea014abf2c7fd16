/*
Copyright © 2019 the ncstructure authors.
This file is part of ncstructure.

ncstructure is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

ncstructure is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with ncstructure.  If not, see <http://www.gnu.org/licenses/>.
*/


package cloud

import (
	"bytes"
	"context"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/cenkalti/backoff"
	"github.com/google/go-cloud/blob"
	"github.com/pkg/errors"
)

// MaxRetries is the number of times a failed blob operation is retried.
var MaxRetries uint64 = 3

// Notify, if not nil, is called before each retry of a failed blob
// operation.
var Notify backoff.Notify

func retry(ctx context.Context, f func() error) error {
	b := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), MaxRetries), ctx)
	return backoff.RetryNotify(f, b, Notify)
}

// ReadFile returns the contents of the local file or blob at path.
func ReadFile(ctx context.Context, path string) ([]byte, error) {
	if !IsBlob(path) {
		b, err := ioutil.ReadFile(path)
		return b, errors.Wrap(err, "cloud")
	}
	bucketName, key, err := splitBlob(path)
	if err != nil {
		return nil, err
	}
	var data []byte
	err = retry(ctx, func() error {
		bucket, err := OpenBucket(ctx, bucketName)
		if err != nil {
			return err
		}
		data, err = readBlob(ctx, bucket, key)
		return err
	})
	return data, errors.Wrapf(err, "cloud: reading %s", path)
}

// WriteFile writes data to the local file or blob at path.
func WriteFile(ctx context.Context, path string, data []byte) error {
	if !IsBlob(path) {
		return errors.Wrap(ioutil.WriteFile(path, data, 0644), "cloud")
	}
	bucketName, key, err := splitBlob(path)
	if err != nil {
		return err
	}
	err = retry(ctx, func() error {
		bucket, err := OpenBucket(ctx, bucketName)
		if err != nil {
			return err
		}
		return writeBlob(ctx, bucket, key, data)
	})
	return errors.Wrapf(err, "cloud: writing %s", path)
}

// Fetch returns the path of a local copy of the file at path. Blobs are
// downloaded to a temporary directory, which is removed by calling
// cleanup; for local files cleanup does nothing.
func Fetch(ctx context.Context, path string) (local string, cleanup func(), err error) {
	if !IsBlob(path) {
		return path, func() {}, nil
	}
	data, err := ReadFile(ctx, path)
	if err != nil {
		return "", nil, err
	}
	dir, err := ioutil.TempDir("", "ncstructure")
	if err != nil {
		return "", nil, errors.Wrap(err, "cloud: creating temporary download directory")
	}
	cleanup = func() { os.RemoveAll(dir) }
	local = filepath.Join(dir, filepath.Base(path))
	if err := ioutil.WriteFile(local, data, 0644); err != nil {
		cleanup()
		return "", nil, errors.Wrap(err, "cloud: saving download")
	}
	return local, cleanup, nil
}

// readBlob reads the given blob from the given bucket.
func readBlob(ctx context.Context, bucket *blob.Bucket, key string) ([]byte, error) {
	var b bytes.Buffer
	r, err := bucket.NewReader(ctx, key)
	if err != nil {
		return nil, errors.Wrapf(err, "reading blob key %s", key)
	}
	defer r.Close()
	if _, err = io.Copy(&b, r); err != nil {
		return nil, errors.Wrapf(err, "reading blob key %s", key)
	}
	return b.Bytes(), nil
}

// writeBlob writes the given data to the given bucket.
func writeBlob(ctx context.Context, bucket *blob.Bucket, key string, data []byte) error {
	w, err := bucket.NewWriter(ctx, key, &blob.WriterOptions{})
	if err != nil {
		return errors.Wrapf(err, "creating writer for blob %s", key)
	}
	if _, err = io.Copy(w, bytes.NewReader(data)); err != nil {
		w.Close()
		return errors.Wrapf(err, "copying blob %s", key)
	}
	return errors.Wrapf(w.Close(), "writing blob %s", key)
}
