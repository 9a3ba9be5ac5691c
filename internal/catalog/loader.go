package catalog

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// fileCatalog mirrors the on-disk YAML layout.
type fileCatalog struct {
	Categories []fileCategory `yaml:"categories"`
}

type fileCategory struct {
	Name   string      `yaml:"name"`
	Topics []fileTopic `yaml:"topics"`
}

type fileTopic struct {
	Topic   string       `yaml:"topic"`
	Degrees []fileDegree `yaml:"degrees"`
}

type fileDegree struct {
	Degree    int            `yaml:"degree"`
	Questions []fileQuestion `yaml:"questions"`
}

type fileQuestion struct {
	Kind    string   `yaml:"kind"`
	Prompt  string   `yaml:"prompt"`
	Answers []string `yaml:"answers"`
	Choices []string `yaml:"choices"`
}

// ParseYAML validates and decodes a YAML catalog document.
func ParseYAML(data []byte) (*Memory, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	if err := ValidateDocument(doc); err != nil {
		return nil, err
	}

	var fc fileCatalog
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	m := NewMemory()
	for _, c := range fc.Categories {
		for _, ft := range c.Topics {
			t := Topic{
				Name:     ft.Topic,
				Category: Category(c.Name),
				Degrees:  make(map[int][]Question),
			}
			for _, d := range ft.Degrees {
				for _, fq := range d.Questions {
					q := Question{
						Kind:    Kind(fq.Kind),
						Prompt:  fq.Prompt,
						Answers: fq.Answers,
						Choices: fq.Choices,
					}
					if err := q.Validate(); err != nil {
						return nil, fmt.Errorf("%s / %s degree %d: %w", c.Name, ft.Topic, d.Degree, err)
					}
					t.Degrees[d.Degree] = append(t.Degrees[d.Degree], q)
				}
			}
			m.add(t)
		}
	}
	return m, nil
}

// LoadFile loads a single catalog file. The format is chosen by extension:
// .xlsx is read as a spreadsheet, anything else as YAML.
func LoadFile(path string) (*Memory, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return LoadXLSX(path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	m, err := ParseYAML(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Load reads a catalog from a file or a directory. A directory merges every
// .yaml, .yml and .xlsx file below it; invalid files are skipped with a warning.
func Load(path string) (*Memory, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}
	if !info.IsDir() {
		m, err := LoadFile(path)
		if err != nil {
			return nil, fmt.Errorf("loading catalog: %w", err)
		}
		slog.Info("catalog loaded", "path", path, "categories", len(m.Categories()))
		return m, nil
	}

	merged := NewMemory()
	files := 0
	err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		switch strings.ToLower(filepath.Ext(p)) {
		case ".yaml", ".yml", ".xlsx":
		default:
			return nil
		}
		m, err := LoadFile(p)
		if err != nil {
			slog.Warn("skipping invalid catalog file", "path", p, "error", err)
			return nil
		}
		merged.merge(m)
		files++
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}
	if files == 0 {
		return nil, fmt.Errorf("loading catalog: no catalog files under %s", path)
	}

	slog.Info("catalog loaded", "path", path, "files", files, "categories", len(merged.Categories()))
	return merged, nil
}
