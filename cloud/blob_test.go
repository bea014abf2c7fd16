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
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestIsBlob(t *testing.T) {
	for path, want := range map[string]bool{
		"gs://bucket/a.cdl": true,
		"s3://bucket/a.cdl": true,
		"file://dir/a.cdl":  true,
		"/tmp/a.cdl":        false,
		"a.cdl":             false,
		"http://host/a.cdl": false,
	} {
		if have := IsBlob(path); have != want {
			t.Errorf("%s: have %v, want %v", path, have, want)
		}
	}
}

func TestSplitBlob(t *testing.T) {
	bucket, key, err := splitBlob("gs://bucket/dir/a.cdl")
	if err != nil {
		t.Fatal(err)
	}
	if bucket != "gs://bucket" || key != "dir/a.cdl" {
		t.Errorf("have %s, %s", bucket, key)
	}
	if _, _, err := splitBlob("gs://bucket"); err == nil {
		t.Error("expected an error for a path with no key")
	}
}

func TestOpenBucketInvalid(t *testing.T) {
	if _, err := OpenBucket(context.Background(), "ftp://bucket"); err == nil {
		t.Error("expected an error")
	}
}

const sample = "netcdf sample {\n}\n"

func TestReadFile(t *testing.T) {
	ctx := context.Background()
	for _, path := range []string{"testdata/sample.cdl", "file://testdata/sample.cdl"} {
		t.Run(path, func(t *testing.T) {
			b, err := ReadFile(ctx, path)
			if err != nil {
				t.Fatal(err)
			}
			if string(b) != sample {
				t.Errorf("have %q, want %q", b, sample)
			}
		})
	}
}

func TestReadFileMissing(t *testing.T) {
	if _, err := ReadFile(context.Background(), "testdata/missing.cdl"); err == nil {
		t.Error("expected an error")
	}
}

func TestWriteFile(t *testing.T) {
	ctx := context.Background()
	defer func() {
		matches, _ := filepath.Glob("testdata/written*")
		for _, m := range matches {
			os.Remove(m)
		}
	}()
	for _, path := range []string{"testdata/written_local.cdl", "file://testdata/written_blob.cdl"} {
		t.Run(path, func(t *testing.T) {
			if err := WriteFile(ctx, path, []byte(sample)); err != nil {
				t.Fatal(err)
			}
			b, err := ReadFile(ctx, path)
			if err != nil {
				t.Fatal(err)
			}
			if string(b) != sample {
				t.Errorf("have %q, want %q", b, sample)
			}
		})
	}
}

func TestFetch(t *testing.T) {
	ctx := context.Background()
	local, cleanup, err := Fetch(ctx, "testdata/sample.cdl")
	if err != nil {
		t.Fatal(err)
	}
	cleanup()
	if local != "testdata/sample.cdl" {
		t.Errorf("local file moved to %s", local)
	}

	local, cleanup, err = Fetch(ctx, "file://testdata/sample.cdl")
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(local) != "sample.cdl" {
		t.Errorf("have %s", local)
	}
	if _, err := os.Stat(local); err != nil {
		t.Error(err)
	}
	cleanup()
	if _, err := os.Stat(local); !os.IsNotExist(err) {
		t.Errorf("%s not removed", local)
	}
}
