// Package bundle reads and writes asset bundles: zstd-compressed tar archives
// holding a manifest, prefab documents and the images they reference.
package bundle

import (
	"archive/tar"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/milk9111/hudcompass/prefabs"
	"gopkg.in/yaml.v3"
)

const ManifestName = "manifest.yaml"

var (
	ErrNoManifest     = errors.New("bundle: manifest.yaml missing")
	ErrPrefabNotFound = errors.New("bundle: prefab not found")
	ErrUnloaded       = errors.New("bundle: already unloaded")
)

type Manifest struct {
	Name    string          `yaml:"name"`
	Prefabs []ManifestEntry `yaml:"prefabs"`
}

type ManifestEntry struct {
	Name string `yaml:"name"`
	File string `yaml:"file"`
}

// Bundle is an opened asset bundle held fully in memory.
type Bundle struct {
	source   string
	manifest Manifest
	files    map[string][]byte
}

// Open reads a .bundle file from disk.
func Open(filename string) (*Bundle, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("bundle: open %s: %w", filename, err)
	}
	defer f.Close()

	b, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("bundle: read %s: %w", filename, err)
	}
	b.source = filename
	return b, nil
}

// Read decodes a bundle stream.
func Read(r io.Reader) (*Bundle, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	files := map[string][]byte{}
	tr := tar.NewReader(dec)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("tar: %w", err)
		}
		if hdr.Typeflag != tar.TypeReg {
			continue
		}
		data, err := io.ReadAll(tr)
		if err != nil {
			return nil, fmt.Errorf("tar entry %q: %w", hdr.Name, err)
		}
		files[cleanName(hdr.Name)] = data
	}
	return newBundle(files)
}

// FromFS builds a bundle from an unpacked directory tree.
func FromFS(fsys fs.FS) (*Bundle, error) {
	files, err := collect(fsys)
	if err != nil {
		return nil, err
	}
	b, err := newBundle(files)
	if err != nil {
		return nil, err
	}
	b.source = "(unpacked)"
	return b, nil
}

func newBundle(files map[string][]byte) (*Bundle, error) {
	raw, ok := files[ManifestName]
	if !ok {
		return nil, ErrNoManifest
	}
	var m Manifest
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("bundle: unmarshal %s: %w", ManifestName, err)
	}
	return &Bundle{manifest: m, files: files}, nil
}

// Source names where the bundle was loaded from.
func (b *Bundle) Source() string {
	if b == nil {
		return ""
	}
	return b.source
}

func (b *Bundle) Manifest() Manifest {
	if b == nil {
		return Manifest{}
	}
	return b.manifest
}

// ReadFile returns a file stored in the bundle.
func (b *Bundle) ReadFile(name string) ([]byte, error) {
	if b == nil || b.files == nil {
		return nil, ErrUnloaded
	}
	data, ok := b.files[cleanName(name)]
	if !ok {
		return nil, fmt.Errorf("bundle: %q: %w", name, fs.ErrNotExist)
	}
	return data, nil
}

// LoadPrefab decodes and validates the named prefab. The returned prefab reads
// its assets from b, so it must be instantiated before b is unloaded.
func (b *Bundle) LoadPrefab(name string) (prefabs.Prefab, error) {
	if b == nil || b.files == nil {
		return prefabs.Prefab{}, ErrUnloaded
	}
	var entry *ManifestEntry
	for i := range b.manifest.Prefabs {
		if b.manifest.Prefabs[i].Name == name {
			entry = &b.manifest.Prefabs[i]
			break
		}
	}
	if entry == nil {
		return prefabs.Prefab{}, fmt.Errorf("%w: %q", ErrPrefabNotFound, name)
	}

	data, err := b.ReadFile(entry.File)
	if err != nil {
		return prefabs.Prefab{}, err
	}
	if err := ValidatePrefab(data); err != nil {
		return prefabs.Prefab{}, fmt.Errorf("bundle: prefab %q: %w", name, err)
	}
	var root prefabs.NodeSpec
	if err := yaml.Unmarshal(data, &root); err != nil {
		return prefabs.Prefab{}, fmt.Errorf("bundle: unmarshal prefab %q: %w", name, err)
	}
	return prefabs.Prefab{Root: root, Assets: b}, nil
}

// Unload drops the bundle contents. Nodes already built from its prefabs are
// unaffected.
func (b *Bundle) Unload() {
	if b == nil {
		return
	}
	b.files = nil
}

// Pack writes every regular file of fsys into a bundle stream. The tree must
// contain manifest.yaml at its root.
func Pack(w io.Writer, fsys fs.FS) error {
	files, err := collect(fsys)
	if err != nil {
		return err
	}
	if _, ok := files[ManifestName]; !ok {
		return ErrNoManifest
	}

	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return err
	}
	tw := tar.NewWriter(enc)
	for _, name := range names {
		data := files[name]
		hdr := &tar.Header{
			Name:     name,
			Mode:     0o644,
			Size:     int64(len(data)),
			Typeflag: tar.TypeReg,
		}
		if err := tw.WriteHeader(hdr); err != nil {
			_ = enc.Close()
			return fmt.Errorf("bundle: tar header %q: %w", name, err)
		}
		if _, err := tw.Write(data); err != nil {
			_ = enc.Close()
			return fmt.Errorf("bundle: tar write %q: %w", name, err)
		}
	}
	if err := tw.Close(); err != nil {
		_ = enc.Close()
		return fmt.Errorf("bundle: tar close: %w", err)
	}
	return enc.Close()
}

func collect(fsys fs.FS) (map[string][]byte, error) {
	files := map[string][]byte{}
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return err
		}
		files[cleanName(p)] = data
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("bundle: collect files: %w", err)
	}
	return files, nil
}

func cleanName(name string) string {
	return strings.TrimPrefix(path.Clean(strings.ReplaceAll(name, "\\", "/")), "./")
}
