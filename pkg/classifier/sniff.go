package classifier

import (
	"io"

	"github.com/h2non/filetype"
	"github.com/spf13/afero"

	"github.com/stargirl99/Cable/internal"
	"github.com/stargirl99/Cable/pkg/logger"
	"github.com/stargirl99/Cable/pkg/scanner"
)

// FileHeaderSize 文件类型检测所需的文件头部大小（字节）
const FileHeaderSize = 261

// Sniffer 对扩展名无法识别的文件读取文件头再分类一次
type Sniffer struct {
	Fs       afero.Fs
	Registry *Registry
}

func NewSniffer(fs afero.Fs, registry *Registry) *Sniffer {
	return &Sniffer{Fs: fs, Registry: registry}
}

// Refine 只在分类为 misc 的普通文件上生效，检测失败时保持原分类
func (s *Sniffer) Refine(e scanner.Entry, categoryID string) string {
	if categoryID != internal.MiscCategory || e.IsDir {
		return categoryID
	}

	head, err := s.readFileHeader(e.Path)
	if err != nil {
		logger.Get().Debug().Err(err).Msgf("读取文件头部失败: %s", e.Path)
		return categoryID
	}

	kind, err := filetype.Match(head)
	if err != nil || kind == filetype.Unknown {
		return categoryID
	}

	refined := s.Registry.ClassifyExt("." + kind.Extension)
	if refined != categoryID {
		logger.Get().Debug().Msgf("按内容识别: %s -> %s (%s)", e.Name, refined, kind.MIME.Value)
	}
	return refined
}

func (s *Sniffer) readFileHeader(path string) ([]byte, error) {
	file, err := s.Fs.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	head := make([]byte, FileHeaderSize)
	n, err := io.ReadFull(file, head)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return nil, err
	}
	return head[:n], nil
}
