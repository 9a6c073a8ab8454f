package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
)

// jobConfig is the YAML job file: a list of scripts plus shared settings.
// Relative script paths are resolved against the job file's directory.
type jobConfig struct {
	Scripts []string `yaml:"scripts"`
	Timeout string   `yaml:"timeout"`
}

func loadJob(path string) (*jobConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read job file: %w", err)
	}
	var job jobConfig
	if err := yaml.UnmarshalWithOptions(data, &job, yaml.Strict()); err != nil {
		return nil, fmt.Errorf("cannot parse job file %s: %w", path, err)
	}
	dir := filepath.Dir(path)
	for i, s := range job.Scripts {
		if !filepath.IsAbs(s) {
			job.Scripts[i] = filepath.Join(dir, s)
		}
	}
	return &job, nil
}
