package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"mdrank/internal/platform/slug"
)

// Pool describes one comparison pool: which vault folder it scans and
// which frontmatter property seeds an item's rating.
type Pool struct {
	Name     string `koanf:"name"`
	Folder   string `koanf:"folder"`
	Property string `koanf:"property"`
}

// ID is the slugged pool name used as the suffix of the persisted
// events/ratings documents.
func (p Pool) ID() string {
	return slug.Make(p.Name)
}

type Config struct {
	VaultPath   string
	LogMode     string `koanf:"log_mode"`
	DefaultPool string `koanf:"default_pool"`
	Pools       []Pool `koanf:"pools"`

	DataDir       string
	HistoryDir    string
	JournalDir    string
	DBPath        string
	ExportersPath string
	LogPath       string
}

// New builds the configuration for a vault by layering defaults, the
// optional <vault>/.mdrank/config.yml, and MDRANK_-prefixed
// environment variables, in that order of precedence.
func New(vaultPath string) (Config, error) {
	if vaultPath == "" {
		return Config{}, fmt.Errorf("vault path is required")
	}

	cfg := Config{
		VaultPath:   vaultPath,
		LogMode:     "dev",
		DefaultPool: "default",
		Pools:       []Pool{{Name: "default", Folder: "", Property: "rating"}},
	}

	k := koanf.New(".")
	cfgPath := filepath.Join(vaultPath, ".mdrank", "config.yml")
	if _, err := os.Stat(cfgPath); err == nil {
		if err := k.Load(file.Provider(cfgPath), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("load config file: %w", err)
		}
	}
	envProvider := env.Provider("MDRANK_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "mdrank_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return Config{}, fmt.Errorf("load env config: %w", err)
	}
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if len(cfg.Pools) == 0 {
		cfg.Pools = []Pool{{Name: "default", Folder: "", Property: "rating"}}
	}
	seen := map[string]struct{}{}
	for i, pool := range cfg.Pools {
		if strings.TrimSpace(pool.Property) == "" {
			cfg.Pools[i].Property = "rating"
		}
		poolID := pool.ID()
		if _, dup := seen[poolID]; dup {
			return Config{}, fmt.Errorf("duplicate pool %q", poolID)
		}
		seen[poolID] = struct{}{}
	}
	if _, ok := seen[slug.Make(cfg.DefaultPool)]; !ok {
		return Config{}, fmt.Errorf("default pool %q is not configured", cfg.DefaultPool)
	}
	cfg.DefaultPool = slug.Make(cfg.DefaultPool)

	cfg.DataDir = filepath.Join(vaultPath, ".mdrank")
	cfg.HistoryDir = filepath.Join(cfg.DataDir, "history")
	cfg.JournalDir = filepath.Join(cfg.DataDir, "journal")
	cfg.DBPath = filepath.Join(cfg.DataDir, "mdrank.db")
	cfg.ExportersPath = filepath.Join(cfg.DataDir, "exporters.json")
	cfg.LogPath = filepath.Join(cfg.DataDir, "mdrank.log")
	return cfg, nil
}

// PoolByID returns the configured pool whose slugged name matches id.
func (c Config) PoolByID(id string) (Pool, bool) {
	for _, pool := range c.Pools {
		if pool.ID() == id {
			return pool, true
		}
	}
	return Pool{}, false
}
