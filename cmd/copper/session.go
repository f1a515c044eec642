package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"copper/internal/config"
	"copper/internal/cop"
	"copper/internal/cop/all"
)

// session is the configuration and the cops of one command run.
type session struct {
	registry *cop.Registry
	config   *config.Resolved
	cops     []cop.Cop
	// problems are cop build failures; the run continues without those cops.
	problems []error
}

// loadSession discovers or loads the configuration and builds the enabled
// cops. Warnings are written to errOut.
func loadSession(errOut io.Writer, configPath string, paths, only []string) (*session, error) {
	reg := all.Registry()

	var (
		file *config.File
		err  error
	)
	if configPath != "" {
		file, err = config.Load(configPath)
	} else {
		file, err = config.Discover(startDir(paths))
	}
	if err != nil {
		return nil, err
	}

	resolved, err := file.Resolve(reg, only)
	if err != nil {
		return nil, err
	}
	for _, w := range resolved.Warnings {
		fmt.Fprintf(errOut, "warning: %s\n", w)
	}

	cops, problems := reg.Build(resolved.Cops)
	for _, p := range problems {
		fmt.Fprintf(errOut, "error: %v\n", p)
	}
	return &session{registry: reg, config: resolved, cops: cops, problems: problems}, nil
}

// startDir is where configuration discovery begins: the directory of the
// first path argument, or the working directory.
func startDir(paths []string) string {
	if len(paths) == 0 {
		return "."
	}
	first := paths[0]
	if info, err := os.Stat(first); err == nil && info.IsDir() {
		return first
	}
	return filepath.Dir(first)
}

// splitList разбирает "A,B, C" в список без пустых элементов.
func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
