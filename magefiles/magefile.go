//go:build mage

// Package main contains Mage build targets for skyquery developer tooling.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binDir  = "bin"
	binName = "skyquery"
	cmdPkg  = "./cmd/skyquery"
)

// Build compiles the CLI binary into bin/ after vetting the tree.
func Build() error {
	mg.Deps(Lint)
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	out := filepath.Join(binDir, binName)
	if err := sh.RunV("go", "build", "-o", out, cmdPkg); err != nil {
		return err
	}
	fmt.Printf("Built %s\n", out)
	return nil
}

// Test runs the unit tests with the race detector.
func Test() error {
	return sh.RunV("go", "test", "-race", "-count=1", "./...")
}

// Lint runs go vet over every package.
func Lint() error {
	return sh.RunV("go", "vet", "./...")
}

// Clean removes build output.
func Clean() error {
	return sh.Rm(binDir)
}

// statAreas groups packages for Stats. Packages not listed count as
// "platform".
var statAreas = []struct {
	name string
	dirs []string
}{
	{"parsers", []string{"internal/normalize", "internal/coords", "internal/minor", "internal/catalog", "internal/query"}},
	{"search", []string{"internal/search", "internal/httputil"}},
	{"compute", []string{"internal/compute", "internal/astro"}},
	{"catalog store", []string{"internal/catalogdb"}},
	{"cli", []string{"cmd/skyquery"}},
}

// Stats prints non-blank Go lines per area, production and tests apart.
func Stats() error {
	prod := map[string]int{}
	tests := map[string]int{}
	err := filepath.WalkDir(".", func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != "." && (strings.HasPrefix(d.Name(), "_") || strings.HasPrefix(d.Name(), ".")) {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".go" {
			return nil
		}
		n, err := nonBlankLines(path)
		if err != nil {
			return err
		}
		area := areaOf(filepath.ToSlash(filepath.Dir(path)))
		if strings.HasSuffix(path, "_test.go") {
			tests[area] += n
		} else {
			prod[area] += n
		}
		return nil
	})
	if err != nil {
		return err
	}

	var prodTotal, testTotal int
	fmt.Printf("%-14s %8s %8s\n", "area", "prod", "tests")
	for _, a := range append(areaNames(), "platform") {
		fmt.Printf("%-14s %8d %8d\n", a, prod[a], tests[a])
		prodTotal += prod[a]
		testTotal += tests[a]
	}
	fmt.Printf("%-14s %8d %8d\n", "total", prodTotal, testTotal)
	return nil
}

func areaNames() []string {
	names := make([]string, 0, len(statAreas))
	for _, a := range statAreas {
		names = append(names, a.name)
	}
	return names
}

func areaOf(dir string) string {
	for _, a := range statAreas {
		for _, d := range a.dirs {
			if dir == d || strings.HasPrefix(dir, d+"/") {
				return a.name
			}
		}
	}
	return "platform"
}

func nonBlankLines(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", path, err)
	}
	n := 0
	for _, line := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(line) != "" {
			n++
		}
	}
	return n, nil
}
