package carrier

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"reflect"
	"sort"
	"strings"

	"coach-booking-engine/internal/pkg/errs"
)

// Payload is the request body before encoding. Values may be scalars,
// slices or maps nested to any depth.
type Payload map[string]any

func (p Payload) clone() Payload {
	out := make(Payload, len(p)+2)
	for k, v := range p {
		out[k] = v
	}
	return out
}

func encode(enc Encoding, p Payload) (io.Reader, string, error) {
	switch enc {
	case EncodingJSON:
		b, err := json.Marshal(p)
		if err != nil {
			return nil, "", errs.Wrap(err, "marshal json payload")
		}
		return bytes.NewReader(b), "application/json", nil
	default:
		values := url.Values{}
		keys := make([]string, 0, len(p))
		for k := range p {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			flattenForm(k, reflect.ValueOf(p[k]), values)
		}
		return strings.NewReader(values.Encode()), "application/x-www-form-urlencoded", nil
	}
}

// flattenForm writes nested values with bracketed keys: seat[0][1]=12.
func flattenForm(key string, v reflect.Value, out url.Values) {
	for v.IsValid() && (v.Kind() == reflect.Interface || v.Kind() == reflect.Pointer) {
		if v.IsNil() {
			return
		}
		v = v.Elem()
	}
	if !v.IsValid() {
		return
	}

	switch v.Kind() {
	case reflect.Map:
		keys := v.MapKeys()
		sort.Slice(keys, func(i, j int) bool {
			return fmt.Sprint(keys[i].Interface()) < fmt.Sprint(keys[j].Interface())
		})
		for _, mk := range keys {
			flattenForm(fmt.Sprintf("%s[%v]", key, mk.Interface()), v.MapIndex(mk), out)
		}
	case reflect.Slice, reflect.Array:
		if v.Kind() == reflect.Slice && v.Type().Elem().Kind() == reflect.Uint8 {
			out.Add(key, string(v.Bytes()))
			return
		}
		for i := 0; i < v.Len(); i++ {
			flattenForm(fmt.Sprintf("%s[%d]", key, i), v.Index(i), out)
		}
	default:
		out.Add(key, fmt.Sprint(v.Interface()))
	}
}
