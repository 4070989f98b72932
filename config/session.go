package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/stargirl99/Cable/internal"
	"github.com/stargirl99/Cable/pkg/logger"
)

// Provider 读写 TOML 会话文件，文件中的值覆盖 Base
type Provider struct {
	Path string
	Base internal.Session
}

func NewProvider(path string, base internal.Session) *Provider {
	return &Provider{Path: internal.MustExpandPath(path), Base: base}
}

// LoadSession 每次调用都重新读取文件。文件不存在时返回 Base；
// 解析失败时返回 Base 和错误
func (p *Provider) LoadSession() (internal.Session, error) {
	s := p.base()
	if p.Path == "" {
		return s, nil
	}

	data, err := os.ReadFile(p.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return s, fmt.Errorf("读取会话文件失败: %w", err)
	}

	if err := toml.Unmarshal(data, &s); err != nil {
		return p.base(), fmt.Errorf("解析会话文件失败: %w", err)
	}
	return s.Normalize(), nil
}

// SaveSession 写入会话文件
func (p *Provider) SaveSession(s internal.Session) error {
	if p.Path == "" {
		return errors.New("未配置会话文件路径")
	}
	if err := os.MkdirAll(filepath.Dir(p.Path), 0755); err != nil {
		return fmt.Errorf("创建会话目录失败: %w", err)
	}

	data, err := toml.Marshal(s.Normalize())
	if err != nil {
		return fmt.Errorf("序列化会话失败: %w", err)
	}
	if err := os.WriteFile(p.Path, data, 0644); err != nil {
		return fmt.Errorf("写入会话文件失败: %w", err)
	}
	logger.Get().Debug().Msgf("会话已保存: %s", p.Path)
	return nil
}

func (p *Provider) base() internal.Session {
	s := p.Base
	s.ExcludePatterns = append([]string(nil), p.Base.ExcludePatterns...)
	return s.Normalize()
}
