package main

import (
	"encoding/json"

	"gopkg.in/yaml.v3"
)

func decodeManifest(data []byte, out any) error {
	if err := json.Unmarshal(data, out); err == nil {
		return nil
	}
	return yaml.Unmarshal(data, out)
}
