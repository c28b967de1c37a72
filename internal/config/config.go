package config

import (
	"bytes"
	"fmt"

	"github.com/klauspost/compress/zlib"
	"gopkg.in/ini.v1"

	"github.com/KostasZigo/gitlet/internal/constants"
	"github.com/KostasZigo/gitlet/utils"
)

const (
	coreSection      = "core"
	hashAlgorithmKey = "hashAlgorithm"
	compressionKey   = "compression"
)

// Config holds the repository settings stored in .gitlet/config.
type Config struct {
	// HashAlgorithm is a multihash function name used for object ids.
	HashAlgorithm string

	// Compression is the zlib level used when writing objects.
	Compression int
}

// Default returns the settings written by init when nothing is overridden.
func Default() Config {
	return Config{
		HashAlgorithm: constants.DefaultHashAlgorithm,
		Compression:   constants.DefaultCompression,
	}
}

// Validate reports settings the object store cannot honour.
func (c Config) Validate() error {
	if _, err := utils.NewHasher(c.HashAlgorithm); err != nil {
		return err
	}
	if c.Compression < zlib.HuffmanOnly || c.Compression > zlib.BestCompression {
		return fmt.Errorf("invalid compression level %d: must be between %d and %d",
			c.Compression, zlib.HuffmanOnly, zlib.BestCompression)
	}
	return nil
}

// Hasher returns the object id function named by HashAlgorithm.
func (c Config) Hasher() (utils.Hasher, error) {
	return utils.NewHasher(c.HashAlgorithm)
}

// Load reads and validates an ini config file.
// Keys missing from the file fall back to Default.
func Load(path string) (Config, error) {
	file, err := ini.Load(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to load config %s: %w", path, err)
	}

	defaults := Default()
	core := file.Section(coreSection)

	cfg := Config{
		HashAlgorithm: core.Key(hashAlgorithmKey).MustString(defaults.HashAlgorithm),
		Compression:   defaults.Compression,
	}
	if core.HasKey(compressionKey) {
		level, err := core.Key(compressionKey).Int()
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s.%s in %s: %w", coreSection, compressionKey, path, err)
		}
		cfg.Compression = level
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config atomically in ini format.
func (c Config) Save(path string) error {
	file := ini.Empty()
	core, err := file.NewSection(coreSection)
	if err != nil {
		return fmt.Errorf("failed to create %s section: %w", coreSection, err)
	}
	if _, err := core.NewKey(hashAlgorithmKey, c.HashAlgorithm); err != nil {
		return fmt.Errorf("failed to set %s: %w", hashAlgorithmKey, err)
	}
	if _, err := core.NewKey(compressionKey, fmt.Sprint(c.Compression)); err != nil {
		return fmt.Errorf("failed to set %s: %w", compressionKey, err)
	}

	var buf bytes.Buffer
	if _, err := file.WriteTo(&buf); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return utils.SafeWrite(path, buf.Bytes(), constants.FilePerms)
}
