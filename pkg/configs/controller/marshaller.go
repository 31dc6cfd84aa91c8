package controller

import (
	"os"

	"gopkg.in/yaml.v3"
)

// load controller config from a file.
//
// args:
//   - filepath: filepath refers a config file.
//
// returns *ControllerConfig, error:
//
//	When loading success, returns `(*ControllerConfig, nil)`.
//	Otherwise, returns `(nil, error)`.
func LoadControllerConfig(filepath string) (*ControllerConfig, error) {
	content, err := os.ReadFile(filepath)
	if err != nil {
		return nil, err
	}
	return Unmarshal(content)
}

func Unmarshal(conf []byte) (out *ControllerConfig, err error) {
	var _out *ControllerConfigMarshall
	err = yaml.Unmarshal(conf, &_out)
	if err != nil {
		return nil, err
	}
	out = TrySeal(_out)
	return out, nil
}
