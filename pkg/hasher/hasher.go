package hasher

import (
	"encoding/hex"
	"io"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/spf13/afero"
	"golang.org/x/crypto/blake2b"

	"github.com/stargirl99/Cable/pkg/logger"
)

// CalculateHash 计算文件的 xxHash 哈希值（用于历史记录，不用于判重）
func CalculateHash(fs afero.Fs, filePath string) (uint64, error) {
	file, err := fs.Open(filePath)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	hash := xxhash.New()
	if _, err := io.Copy(hash, file); err != nil {
		return 0, err
	}

	result := hash.Sum64()
	logger.Get().Trace().Msgf("文件哈希计算完成: %s -> %x", filePath, result)
	return result, nil
}

// HashString 返回 xxHash 的十六进制字符串，失败时返回空串
func HashString(fs afero.Fs, filePath string) string {
	h, err := CalculateHash(fs, filePath)
	if err != nil {
		return ""
	}
	return strconv.FormatUint(h, 16)
}

// Fingerprint 计算整个文件的 BLAKE2b-256 内容指纹
func Fingerprint(fs afero.Fs, filePath string) (string, error) {
	file, err := fs.Open(filePath)
	if err != nil {
		return "", err
	}
	defer file.Close()

	h, err := blake2b.New256(nil)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(h, file); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
