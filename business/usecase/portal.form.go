package usecase

import (
	"fmt"
	"net/url"

	"github.com/mitchellh/mapstructure"
)

// encodeForm converts a form struct to url values using its mapstructure tags
func encodeForm(form interface{}) (url.Values, error) {
	fields := make(map[string]interface{})
	if err := mapstructure.Decode(form, &fields); err != nil {
		return nil, err
	}

	values := make(url.Values, len(fields))
	for k, v := range fields {
		values.Set(k, fmt.Sprint(v))
	}

	return values, nil
}
