package font

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Cache 是字体程序的磁盘缓存。键由 (family, weight, charset) 决定，
// 内容对给定键是确定的，因此不做失效处理；并发写同键时后写者胜出。
type Cache struct {
	dir string
}

// NewCache 在 dir 下建立缓存目录。dir 为空时使用系统缓存目录。
func NewCache(dir string) (*Cache, error) {
	if dir == "" {
		base, err := os.UserCacheDir()
		if err != nil {
			return nil, fmt.Errorf("无法确定缓存目录: %w", err)
		}
		dir = filepath.Join(base, "vitae", "fonts")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("创建字体缓存目录 %s 失败: %w", dir, err)
	}
	return &Cache{dir: dir}, nil
}

// Dir 返回缓存所在目录。
func (c *Cache) Dir() string { return c.dir }

// CacheKey 由 family、weight 与字符子集推导缓存键。
// subset 为空时记为 "full"，否则取字符集合 SHA-256 的前 16 个十六进制位。
func CacheKey(family string, weight Weight, subset string) string {
	charset := "full"
	if subset != "" {
		sum := sha256.Sum256([]byte(subset))
		charset = hex.EncodeToString(sum[:])[:16]
	}
	return fmt.Sprintf("%s_%s_%s", sanitize(family), weight, charset)
}

func sanitize(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-':
			out = append(out, r)
		default:
			out = append(out, '_')
		}
	}
	if len(out) == 0 {
		return "font"
	}
	return string(out)
}

// Get 返回键对应的字体字节；未命中时第二返回值为 false。
func (c *Cache) Get(key string) ([]byte, bool) {
	data, err := os.ReadFile(c.path(key))
	if err != nil || len(data) == 0 {
		return nil, false
	}
	return data, true
}

// Put 把字体字节写入缓存。先写入带唯一后缀的临时文件再重命名，
// 保证并发写同键不会互相读到半截内容。
func (c *Cache) Put(key string, data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("拒绝缓存空字体数据（键 %s）", key)
	}
	tmp := c.path(key) + "." + uuid.NewString() + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("写入字体缓存临时文件失败: %w", err)
	}
	if err := os.Rename(tmp, c.path(key)); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("落盘字体缓存 %s 失败: %w", key, err)
	}
	return nil
}

// Clear 清空整个缓存目录。
func (c *Cache) Clear() error {
	if err := os.RemoveAll(c.dir); err != nil {
		return fmt.Errorf("清空字体缓存失败: %w", err)
	}
	return os.MkdirAll(c.dir, 0o755)
}

func (c *Cache) path(key string) string {
	return filepath.Join(c.dir, key+".font")
}
