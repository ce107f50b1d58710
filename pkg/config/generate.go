package config

import (
	"bytes"

	"github.com/arthur-debert/mclaunch/pkg/errors"
	toml "github.com/pelletier/go-toml/v2"
)

const generatedHeader = `# mclaunch configuration
# Values omitted here fall back to the built-in defaults.
# Environment variables override this file: MCLAUNCH_<SECTION>__<KEY>.

`

// GenerateTOML renders cfg as a config.toml document
func GenerateTOML(cfg *Config) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(generatedHeader)

	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to encode configuration")
	}
	return buf.Bytes(), nil
}
