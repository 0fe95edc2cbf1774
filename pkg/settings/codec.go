package settings

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	pgerrors "github.com/matzehuels/pixelgrid/pkg/errors"
)

// Format names a serialization of GridSettings.
type Format string

// Supported formats.
const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// Formats lists every supported format.
var Formats = []Format{FormatJSON, FormatTOML, FormatYAML}

// ParseFormat resolves a format name or file extension ("yml", ".toml").
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "json", "":
		return FormatJSON, nil
	case "toml":
		return FormatTOML, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", pgerrors.New(pgerrors.ErrCodeInvalidFormat, "unsupported settings format %q (json, toml, yaml)", s)
}

// Decode parses data and lays it over the defaults, so missing fields keep
// their default values.
func Decode(format Format, data []byte) (GridSettings, error) {
	return DecodeOnto(Default(), format, data)
}

// DecodeOnto parses data over base.
func DecodeOnto(base GridSettings, format Format, data []byte) (GridSettings, error) {
	s := base
	var err error
	switch format {
	case FormatJSON:
		err = json.Unmarshal(data, &s)
	case FormatTOML:
		_, err = toml.Decode(string(data), &s)
	case FormatYAML:
		err = yaml.Unmarshal(data, &s)
	default:
		return base, pgerrors.New(pgerrors.ErrCodeInvalidFormat, "unsupported settings format %q", format)
	}
	if err != nil {
		return base, pgerrors.Wrap(pgerrors.ErrCodeInvalidFormat, err, "decode %s settings", format)
	}
	s.Alpha = ClampAlpha(s.Alpha)
	return s, nil
}

// Encode serializes s.
func Encode(s GridSettings, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return json.MarshalIndent(s, "", "  ")
	case FormatTOML:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(s); err != nil {
			return nil, pgerrors.Wrap(pgerrors.ErrCodeInternal, err, "encode toml settings")
		}
		return buf.Bytes(), nil
	case FormatYAML:
		return yaml.Marshal(s)
	}
	return nil, pgerrors.New(pgerrors.ErrCodeInvalidFormat, "unsupported settings format %q", format)
}
