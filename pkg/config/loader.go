package config

import (
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/v2"
)

// mergeMaps folds src into dest: nested maps merge recursively, slices
// append without repeating strings, anything else is overwritten.
func mergeMaps(dest, src map[string]interface{}) {
	for key, srcVal := range src {
		destVal, destOk := dest[key]
		if !destOk {
			dest[key] = srcVal
			continue
		}

		if srcMap, srcOk := srcVal.(map[string]interface{}); srcOk {
			if destMap, destOk := destVal.(map[string]interface{}); destOk {
				mergeMaps(destMap, srcMap)
				continue
			}
		}

		if isSlice(srcVal) && isSlice(destVal) {
			dest[key] = appendSlices(destVal, srcVal)
			continue
		}

		dest[key] = srcVal
	}
}

func isSlice(v interface{}) bool {
	switch v.(type) {
	case []interface{}, []string:
		return true
	default:
		return false
	}
}

func appendSlices(dest, src interface{}) interface{} {
	destSlice := toInterfaceSlice(dest)
	srcSlice := toInterfaceSlice(src)
	out := make([]interface{}, 0, len(destSlice)+len(srcSlice))
	seen := make(map[string]bool)
	for _, slice := range [][]interface{}{destSlice, srcSlice} {
		for _, v := range slice {
			if s, ok := v.(string); ok {
				if seen[s] {
					continue
				}
				seen[s] = true
			}
			out = append(out, v)
		}
	}
	return out
}

func toInterfaceSlice(v interface{}) []interface{} {
	switch s := v.(type) {
	case []interface{}:
		return s
	case []string:
		result := make([]interface{}, len(s))
		for i, v := range s {
			result[i] = v
		}
		return result
	default:
		return []interface{}{}
	}
}

// unmarshal decodes a koanf instance into out. Enum fields decode through
// encoding.TextUnmarshaler; comma separated strings become slices so env
// values work for list keys.
func unmarshal(k *koanf.Koanf, out interface{}) error {
	conf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           out,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.TextUnmarshallerHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	return k.UnmarshalWithConf("", out, conf)
}
