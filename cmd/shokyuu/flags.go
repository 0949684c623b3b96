package main

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/spf13/pflag"

	"github.com/at-ishikawa/shokyuu/internal/config"
)

var partFlagPattern = regexp.MustCompile(`^(all|optional-only|part-[1-9][0-9]*)$`)

// PartFlag is the --part flag: all, part-N or optional-only.
// Whether part-N exists is checked against the lesson later.
type PartFlag struct {
	value string
}

var _ pflag.Value = (*PartFlag)(nil)

func (f *PartFlag) String() string {
	if f.value == "" {
		return "all"
	}
	return f.value
}

func (f *PartFlag) Set(value string) error {
	value = strings.ToLower(strings.TrimSpace(value))
	if !partFlagPattern.MatchString(value) {
		return fmt.Errorf("must be all, part-N or optional-only")
	}
	f.value = value
	return nil
}

func (f *PartFlag) Type() string {
	return "part"
}

// BackendFlag is a review backend name.
type BackendFlag struct {
	value string
}

var _ pflag.Value = (*BackendFlag)(nil)

func (f *BackendFlag) String() string {
	return f.value
}

func (f *BackendFlag) Set(value string) error {
	switch value {
	case config.ReviewBackendFile, config.ReviewBackendSQLite, config.ReviewBackendRemote:
		f.value = value
		return nil
	}
	return fmt.Errorf("must be one of %s, %s or %s", config.ReviewBackendFile, config.ReviewBackendSQLite, config.ReviewBackendRemote)
}

func (f *BackendFlag) Type() string {
	return "backend"
}
