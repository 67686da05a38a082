package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/term"

	"github.com/astpanel/isosel/internal/projectconfig"
	"github.com/astpanel/isosel/internal/susceptibility"
	"github.com/astpanel/isosel/internal/tables"
)

// Default lookup table file names, resolved next to the configuration file.
const (
	defaultRangesFile         = "ranges.json"
	defaultAbbreviationsFile  = "abx_abbr.json"
	defaultMarketPriorityFile = "market_prio.json"
)

// resolveConfigPath returns path, or the nearest isosel.yaml above the
// working directory when path is empty.
func resolveConfigPath(path string) (string, error) {
	if path != "" {
		return path, nil
	}
	found, err := projectconfig.Find(".")
	if errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("no %s found; pass --config", projectconfig.DefaultConfigFile)
	}
	return found, err
}

// besideConfig resolves a table path. An empty path falls back to name in
// the configuration directory.
func besideConfig(configPath, path, name string) string {
	if path != "" {
		return path
	}
	return filepath.Join(filepath.Dir(configPath), name)
}

func loadClassifier(kit, rangesPath, abbreviationsPath string) (*susceptibility.Classifier, error) {
	ranges, err := tables.LoadRanges(rangesPath)
	if err != nil {
		return nil, err
	}
	abbreviations, err := tables.LoadAbbreviations(abbreviationsPath)
	if err != nil {
		return nil, err
	}
	return &susceptibility.Classifier{Kit: kit, Ranges: ranges, Abbreviations: abbreviations}, nil
}

// terminalWidth returns the width of stdout, or 0 when it is not a terminal.
func terminalWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return 0
	}
	w, _, err := term.GetSize(fd)
	if err != nil {
		return 0
	}
	return w
}

func stderrIsTerminal() bool {
	return term.IsTerminal(int(os.Stderr.Fd()))
}
