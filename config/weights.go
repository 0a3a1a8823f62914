package config

import (
	"encoding/json"
	"os"
	"strconv"
	"strings"

	"cephalopod/engine"

	"github.com/pkg/errors"
)

// ParseWeights reads a comma separated list of name=value pairs, e.g.
// "piece=1,six=8,center_bonus=0.5".
func ParseWeights(s string) (engine.Weights, error) {
	w := engine.Weights{}
	for _, pair := range strings.Split(s, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		name, value, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, errors.Errorf("weight %q is not name=value", pair)
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return nil, errors.Wrapf(err, "weight %q", name)
		}
		w[strings.TrimSpace(name)] = f
	}
	return w, nil
}

// SaveWeights writes w as a JSON object, replacing path atomically.
func SaveWeights(path string, w engine.Weights) error {
	b, err := json.MarshalIndent(w, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encoding weights")
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return errors.Wrapf(err, "writing %s", tmp)
	}
	return errors.Wrapf(os.Rename(tmp, path), "replacing %s", path)
}

// LoadWeights reads a JSON object of named floats.
func LoadWeights(path string) (engine.Weights, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading weights %s", path)
	}
	var w engine.Weights
	if err := json.Unmarshal(b, &w); err != nil {
		return nil, errors.Wrapf(err, "decoding weights %s", path)
	}
	return w, nil
}
