package main

import (
	"fmt"
	"math/big"
	"os"

	"github.com/hwfuzz/stimgen/pkg/category"
	"github.com/hwfuzz/stimgen/pkg/gen"
	"github.com/hwfuzz/stimgen/pkg/width"
	"gopkg.in/yaml.v3"
)

// constraintsFile is the YAML shape of a --constraints file. All sections are
// optional; lists stay ordered so the same file always builds the same
// constraint sequence.
type constraintsFile struct {
	WhiteList  []string     `yaml:"whitelist"`
	BlackList  []string     `yaml:"blacklist"`
	Categories []weightSpec `yaml:"categories"`
	Memory     []bucketSpec `yaml:"memory"`
	IO         []bucketSpec `yaml:"io"`
}

type weightSpec struct {
	Category string `yaml:"category"`
	Weight   int64  `yaml:"weight"`
}

type bucketSpec struct {
	Min    int64 `yaml:"min"`
	Max    int64 `yaml:"max"`
	Weight int64 `yaml:"weight"`
}

func loadConstraints(path string) ([]gen.Constraint, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parseConstraints(data)
}

func parseConstraints(data []byte) ([]gen.Constraint, error) {
	var file constraintsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("constraints: %w", err)
	}

	var out []gen.Constraint
	if len(file.WhiteList) > 0 {
		out = append(out, gen.CategoryWhiteList{Categories: toCategories(file.WhiteList)})
	}
	if len(file.BlackList) > 0 {
		out = append(out, gen.CategoryBlackList{Categories: toCategories(file.BlackList)})
	}
	if len(file.Categories) > 0 {
		weights := make([]gen.CategoryWeight, len(file.Categories))
		for i, w := range file.Categories {
			if w.Weight < 0 {
				return nil, fmt.Errorf("constraints: category %q has negative weight %d", w.Category, w.Weight)
			}
			weights[i] = gen.CategoryWeight{Category: category.Category(w.Category), Weight: w.Weight}
		}
		out = append(out, gen.CategoryDistribution{Weights: weights})
	}
	if len(file.Memory) > 0 {
		buckets, err := toBuckets("memory", file.Memory)
		if err != nil {
			return nil, err
		}
		out = append(out, gen.MemoryDistribution{Buckets: buckets})
	}
	if len(file.IO) > 0 {
		buckets, err := toBuckets("io", file.IO)
		if err != nil {
			return nil, err
		}
		out = append(out, gen.IODistribution{Buckets: buckets})
	}
	return out, nil
}

func toCategories(names []string) []category.Category {
	out := make([]category.Category, len(names))
	for i, n := range names {
		out[i] = category.Category(n)
	}
	return out
}

func toBuckets(section string, specs []bucketSpec) ([]gen.RangeWeight, error) {
	out := make([]gen.RangeWeight, len(specs))
	for i, s := range specs {
		if s.Min >= s.Max {
			return nil, fmt.Errorf("constraints: %s bucket %d: empty range [%d, %d)", section, i, s.Min, s.Max)
		}
		if s.Weight < 0 {
			return nil, fmt.Errorf("constraints: %s bucket %d: negative weight %d", section, i, s.Weight)
		}
		out[i] = gen.RangeWeight{
			Range:  width.Range{Min: big.NewInt(s.Min), Max: big.NewInt(s.Max)},
			Weight: s.Weight,
		}
	}
	return out, nil
}
