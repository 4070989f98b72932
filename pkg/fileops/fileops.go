package fileops

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/stargirl99/Cable/pkg/logger"
)

// Move 使用 rename 移动文件或目录；rename 失败（例如跨设备）时复制后删除
func Move(fs afero.Fs, src, dst string) error {
	renameErr := fs.Rename(src, dst)
	if renameErr == nil {
		return nil
	}

	// 源不存在或权限问题不属于跨设备，直接返回
	if os.IsNotExist(renameErr) || os.IsPermission(renameErr) {
		return renameErr
	}

	logger.Get().Debug().
		Err(renameErr).
		Str("source", src).
		Str("destination", dst).
		Msg("直接重命名失败，尝试复制后删除")

	if err := Copy(fs, src, dst); err != nil {
		return fmt.Errorf("复制失败: %w", err)
	}
	if err := fs.RemoveAll(src); err != nil {
		return fmt.Errorf("删除原文件失败: %w", err)
	}
	return nil
}

// Copy 复制文件或目录，保留权限和修改时间
func Copy(fs afero.Fs, src, dst string) error {
	info, err := fs.Stat(src)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return copyFile(fs, src, dst, info)
	}

	return afero.Walk(fs, src, func(path string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if fi.IsDir() {
			if err := fs.MkdirAll(target, fi.Mode().Perm()); err != nil {
				return err
			}
			return fs.Chtimes(target, fi.ModTime(), fi.ModTime())
		}
		return copyFile(fs, path, target, fi)
	})
}

func copyFile(fs afero.Fs, src, dst string, info os.FileInfo) error {
	sourceFile, err := fs.Open(src)
	if err != nil {
		return fmt.Errorf("打开源文件失败: %w", err)
	}
	defer sourceFile.Close()

	destFile, err := fs.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_EXCL, info.Mode().Perm())
	if err != nil {
		return fmt.Errorf("创建目标文件失败: %w", err)
	}

	if _, err := io.Copy(destFile, sourceFile); err != nil {
		destFile.Close()
		fs.Remove(dst)
		return fmt.Errorf("复制文件内容失败: %w", err)
	}
	if err := destFile.Close(); err != nil {
		fs.Remove(dst)
		return err
	}

	if err := fs.Chmod(dst, info.Mode().Perm()); err != nil {
		return err
	}
	return fs.Chtimes(dst, info.ModTime(), info.ModTime())
}
