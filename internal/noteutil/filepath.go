package noteutil

import (
	"os"
	"path/filepath"
	"strings"
)

// FindWDFile attempts to find a named file relative to the current working
// directory, checking every parent directory until one is found.
// It returns stat info and an absolute path, or a nil info and empty path if
// no such file exists.
func FindWDFile(name string) (os.FileInfo, string, error) {
	info, err := os.Stat(name)
	if err == nil {
		path, err := filepath.Abs(name)
		return info, path, err
	}

	wd, err := os.Getwd()
	if err != nil {
		return nil, "", err
	}

	for {
		path := filepath.Join(wd, name)
		if info, err = os.Stat(path); err == nil {
			return info, path, nil
		}
		parent := filepath.Dir(wd)
		if parent == wd {
			break
		}
		wd = parent
	}

	return nil, "", nil
}

// ExpandHome replaces a leading "~" path element with the user's home
// directory.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~"+string(filepath.Separator)) {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, path[1:]), nil
}
