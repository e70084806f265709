package manifest

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	"github.com/wippyai/structbind/errors"
)

type Format string

const (
	FormatJSON    Format = "json"
	FormatYAML    Format = "yaml"
	FormatMsgpack Format = "msgpack"
)

func Formats() []Format {
	return []Format{FormatJSON, FormatYAML, FormatMsgpack}
}

// ParseFormat accepts a format name in any case; "yml" is an alias of yaml.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "msgpack":
		return FormatMsgpack, nil
	}
	return "", errors.InvalidInput(errors.PhaseEmit, "unknown manifest format "+s)
}

func Write(w io.Writer, m *Manifest, format Format) error {
	var err error
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		err = enc.Encode(m)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err = enc.Encode(m); err == nil {
			err = enc.Close()
		}
	case FormatMsgpack:
		err = msgpack.NewEncoder(w).Encode(m)
	default:
		return errors.InvalidInput(errors.PhaseEmit, "unknown manifest format "+string(format))
	}
	if err != nil {
		return errors.Wrap(errors.PhaseEmit, errors.KindInvalidInput, err, "write "+string(format)+" manifest")
	}
	return nil
}

func Read(r io.Reader, format Format) (*Manifest, error) {
	m := &Manifest{}
	var err error
	switch format {
	case FormatJSON:
		err = json.NewDecoder(r).Decode(m)
	case FormatYAML:
		err = yaml.NewDecoder(r).Decode(m)
	case FormatMsgpack:
		err = msgpack.NewDecoder(r).Decode(m)
	default:
		return nil, errors.InvalidInput(errors.PhaseLoad, "unknown manifest format "+string(format))
	}
	if err != nil {
		return nil, errors.Load("read "+string(format)+" manifest", err)
	}
	if m.Version != Version {
		return nil, errors.InvalidInput(errors.PhaseLoad, "unsupported manifest version")
	}
	return m, nil
}
