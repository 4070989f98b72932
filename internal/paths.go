package internal

import (
	"os"
	"path/filepath"
)

// ExpandPath 展开 ~ 和环境变量
func ExpandPath(path string) (string, error) {
	path = os.ExpandEnv(path)
	if path == "~" || (len(path) >= 2 && path[0] == '~' && (path[1] == '/' || path[1] == '\\')) {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		if path == "~" {
			return home, nil
		}
		return filepath.Join(home, path[2:]), nil
	}
	return path, nil
}

// MustExpandPath 展开失败时原样返回
func MustExpandPath(path string) string {
	expanded, err := ExpandPath(path)
	if err != nil {
		return path
	}
	return expanded
}
