package model

import (
	"net/url"
	"strconv"
)

// params accumulates non-zero form parameters.
type params url.Values

func (p params) str(key, value string) {
	if value != "" {
		url.Values(p).Set(key, value)
	}
}

func (p params) list(key string, values []string) {
	for _, v := range values {
		url.Values(p).Add(key+"[]", v)
	}
}

func (p params) boolean(key string, value *bool) {
	if value != nil {
		url.Values(p).Set(key, strconv.FormatBool(*value))
	}
}

func (p params) integer(key string, value int) {
	if value != 0 {
		url.Values(p).Set(key, strconv.Itoa(value))
	}
}
