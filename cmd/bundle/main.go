// Command bundle packs a compass bundle source directory (manifest.yaml,
// prefab YAML and images) into a .bundle file.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/milk9111/hudcompass/bundle"
)

func main() {
	src := flag.String("src", "prefabs/compass", "bundle source directory")
	out := flag.String("out", "compass.bundle", "output bundle file")
	check := flag.Bool("check", true, "open the written bundle and load every prefab")
	flag.Parse()

	if err := pack(*src, *out); err != nil {
		log.Fatal(err)
	}
	if *check {
		if err := verify(*out); err != nil {
			log.Fatal(err)
		}
	}
}

func pack(src, out string) error {
	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("bundle: create %s: %w", out, err)
	}
	if err := bundle.Pack(f, os.DirFS(src)); err != nil {
		_ = f.Close()
		_ = os.Remove(out)
		return fmt.Errorf("bundle: pack %s: %w", src, err)
	}
	return f.Close()
}

func verify(path string) error {
	b, err := bundle.Open(path)
	if err != nil {
		return err
	}
	defer b.Unload()

	for _, entry := range b.Manifest().Prefabs {
		if _, err := b.LoadPrefab(entry.Name); err != nil {
			return err
		}
		log.Printf("%s: prefab %q ok", path, entry.Name)
	}
	return nil
}
