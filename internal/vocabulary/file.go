package vocabulary

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

func ReadYamlFile[T any](path string) (T, error) {
	var result T

	file, err := os.Open(path)
	if err != nil {
		return result, fmt.Errorf("os.Open(%s)> %w", path, err)
	}
	defer func() {
		_ = file.Close()
	}()

	if err := yaml.NewDecoder(file).Decode(&result); err != nil {
		return result, fmt.Errorf("yaml.NewDecoder().Decode()> %w", err)
	}
	return result, nil
}

// WriteYamlFile writes data to path, creating the parent directory when it doesn't exist.
func WriteYamlFile[T any](path string, data T) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("os.MkdirAll(%s)> %w", filepath.Dir(path), err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("os.Create(%s)> %w", path, err)
	}
	defer func() {
		_ = file.Close()
	}()

	encoder := yaml.NewEncoder(file)
	encoder.SetIndent(2)
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("yaml.NewEncoder().Encode()> %w", err)
	}
	return encoder.Close()
}

type yamlFile[T any] struct {
	path     string
	contents T
}

func isYamlFile(path string, info os.FileInfo) bool {
	if info.IsDir() {
		return false
	}
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yml" || ext == ".yaml"
}

// loadYamlFiles loads every YAML file under dir. A missing directory yields no files.
func loadYamlFiles[T any](dir string) ([]yamlFile[T], error) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil, nil
	}

	var files []yamlFile[T]
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !isYamlFile(path, info) {
			return nil
		}

		contents, err := ReadYamlFile[T](path)
		if err != nil {
			return fmt.Errorf("ReadYamlFile(%s) > %w", path, err)
		}
		files = append(files, yamlFile[T]{
			path:     path,
			contents: contents,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("filepath.Walk(%s) > %w", dir, err)
	}
	return files, nil
}
