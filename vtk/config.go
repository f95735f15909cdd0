package vtk

import (
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"

	"github.com/robert-malhotra/go-gridformat/field"
	"github.com/robert-malhotra/go-gridformat/internal/compression"
	"github.com/robert-malhotra/go-gridformat/internal/encoding"
)

// Config holds writer settings as read from a TOML file. Empty values and
// "automatic" leave a setting to resolution.
type Config struct {
	Encoder             string      `toml:"encoder"`
	Compressor          string      `toml:"compressor"`
	DataFormat          string      `toml:"data_format"`
	HeaderPrecision     string      `toml:"header_precision"`
	CoordinatePrecision string      `toml:"coordinate_precision"`
	BlockSize           int         `toml:"block_size"`
	CompressionLevel    *int        `toml:"compression_level"`
	BufferedBase64      bool        `toml:"buffered_base64"`
	ASCII               ASCIIConfig `toml:"ascii"`
}

// ASCIIConfig is the layout of ascii output.
type ASCIIConfig struct {
	Delimiter      string `toml:"delimiter"`
	EntriesPerLine int    `toml:"entries_per_line"`
}

// LoadConfig reads a TOML configuration file.
func LoadConfig(path string) (Config, error) {
	var c Config
	md, err := toml.DecodeFile(path, &c)
	if err != nil {
		return Config{}, errors.Wrapf(err, "reading config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, field.Errorf(field.ErrValue, "%s: unknown keys %v", path, undecoded)
	}
	return c, nil
}

func automatic(s string) bool {
	return s == "" || strings.EqualFold(s, "automatic")
}

// Options converts the configuration into writer options.
func (c Config) Options() ([]WriterOption, error) {
	var opts []WriterOption

	switch name := strings.ToLower(c.Encoder); {
	case automatic(name):
	case name == encoding.NameASCII:
		a := encoding.DefaultASCII()
		if c.ASCII.Delimiter != "" {
			a.Delimiter = c.ASCII.Delimiter
		}
		if c.ASCII.EntriesPerLine != 0 {
			a.EntriesPerLine = c.ASCII.EntriesPerLine
		}
		opts = append(opts, WithEncoder(a))
	case name == encoding.NameBase64:
		opts = append(opts, WithEncoder(encoding.Base64{Buffered: c.BufferedBase64}))
	default:
		e, err := encoding.ByName(name)
		if err != nil {
			return nil, err
		}
		opts = append(opts, WithEncoder(e))
	}

	if !automatic(c.Compressor) {
		k, err := compression.ParseKind(strings.ToLower(c.Compressor))
		if err != nil {
			return nil, err
		}
		opts = append(opts, WithCompressor(k))
	}

	switch strings.ToLower(c.DataFormat) {
	case "", "automatic":
	case "inlined":
		opts = append(opts, WithDataFormat(Inlined))
	case "appended":
		opts = append(opts, WithDataFormat(Appended))
	default:
		return nil, field.Errorf(field.ErrValue, "unknown data format %q", c.DataFormat)
	}

	if !automatic(c.HeaderPrecision) {
		p, err := parsePrecision(c.HeaderPrecision)
		if err != nil {
			return nil, err
		}
		opts = append(opts, WithHeaderPrecision(p))
	}
	if !automatic(c.CoordinatePrecision) {
		p, err := parsePrecision(c.CoordinatePrecision)
		if err != nil {
			return nil, err
		}
		opts = append(opts, WithCoordinatePrecision(p))
	}
	if c.BlockSize != 0 {
		opts = append(opts, WithBlockSize(c.BlockSize))
	}
	if c.CompressionLevel != nil {
		opts = append(opts, WithCompressionLevel(*c.CompressionLevel))
	}
	return opts, nil
}

func parsePrecision(name string) (field.Precision, error) {
	for _, p := range field.Numeric {
		if strings.EqualFold(p.String(), name) {
			return p, nil
		}
	}
	return field.Invalid, field.Errorf(field.ErrValue, "unknown precision %q", name)
}
