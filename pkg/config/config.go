// Copyright 2026 symfuzz project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

// Package config implements loading/saving of JSON config files.
// Lines starting with # are treated as comments and stripped
// before parsing, unknown fields are rejected.
package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"regexp"

	"github.com/symfuzz/symfuzz/pkg/osutil"
)

var commentRe = regexp.MustCompile(`(^|\n)\s*#[^\n]*`)

func LoadFile(filename string, cfg interface{}) error {
	if filename == "" {
		return fmt.Errorf("no config file specified")
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := LoadData(data, cfg); err != nil {
		return fmt.Errorf("%v: %w", filename, err)
	}
	return nil
}

func LoadData(data []byte, cfg interface{}) error {
	data = commentRe.ReplaceAll(data, nil)
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	return nil
}

func SaveFile(filename string, cfg interface{}) error {
	data, err := json.MarshalIndent(cfg, "", "\t")
	if err != nil {
		return err
	}
	return osutil.WriteFile(filename, data)
}
