// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: BUSL-1.1

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/mitchellh/mapstructure"
)

type wrapper struct {
	Config RawConfig `mapstructure:"omni"`
}

const EnvPrefix = "OMNI"

func loadFromEnv() (RawConfig, error) {
	// load relayer config
	c := &wrapper{}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           c,
	})
	if err != nil {
		return RawConfig{}, err
	}
	err = decoder.Decode(loadENVToStructure())
	if err != nil {
		return RawConfig{}, err
	}
	rawConfig := c.Config

	// load foreign contract configs
	index := 1
	for {
		rawContractConfig := os.Getenv(fmt.Sprintf("%s_FC_%d", EnvPrefix, index))
		if rawContractConfig == "" {
			break
		}
		var fc map[string]interface{}
		err = json.Unmarshal([]byte(rawContractConfig), &fc)
		if err != nil {
			return RawConfig{}, err
		}
		rawConfig.ForeignContracts = append(rawConfig.ForeignContracts, fc)
		index++
	}

	if rawGenesis := os.Getenv(EnvPrefix + "_GENESIS"); rawGenesis != "" {
		if err := json.Unmarshal([]byte(rawGenesis), &rawConfig.Genesis); err != nil {
			return RawConfig{}, err
		}
	}

	return rawConfig, nil
}

func loadENVToStructure() map[string]interface{} {
	structure := map[string]interface{}{}
	for _, e := range os.Environ() {
		if !strings.HasPrefix(e, EnvPrefix+"_") {
			continue
		}
		pair := strings.SplitN(e, "=", 2)
		indexes := strings.Split(pair[0], "_")
		if len(indexes) > 1 && (indexes[1] == "FC" || indexes[1] == "GENESIS") {
			continue
		}
		mountMap(structure, indexes, pair[1])
	}
	return structure
}

func mountMap(m map[string]interface{}, i []string, v interface{}) {
	if len(i) > 1 {
		if _, ok := m[i[0]]; !ok {
			m[i[0]] = map[string]interface{}{}
		}
		asMap, ok := m[i[0]].(map[string]interface{})
		if !ok {
			return
		}
		mountMap(asMap, i[1:], v)
		v = asMap
	}
	m[i[0]] = v
}
