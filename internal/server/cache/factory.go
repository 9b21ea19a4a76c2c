package cache

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// New builds the backend named by kind, decoding its options from the free
// form map found in configuration. Durations may be given as strings ("1m").
func New(kind string, options map[string]any) (Cache, error) {
	switch kind {
	case "badger":
		var opts BadgerOptions
		if err := decode(options, &opts); err != nil {
			return nil, fmt.Errorf("failed to decode badger cache options: %w", err)
		}
		return NewBadgerCache(opts)
	case "memory":
		var opts MemoryOptions
		if err := decode(options, &opts); err != nil {
			return nil, fmt.Errorf("failed to decode memory cache options: %w", err)
		}
		return NewMemoryCache(opts), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", kind)
	}
}

func decode(input map[string]any, out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		ErrorUnused:      true,
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(input)
}
