package setting

import (
	"fmt"
	"strconv"
)

// UpdateSettingsInput carries new values for one group. Values may be
// strings, booleans or numbers.
type UpdateSettingsInput struct {
	Values map[string]any `json:"values" binding:"required"`
}

// GroupResponse is one settings group with defaults applied
type GroupResponse struct {
	Group  string            `json:"group"`
	Values map[string]string `json:"values"`
}

func (in UpdateSettingsInput) stringValues() map[string]string {
	out := make(map[string]string, len(in.Values))
	for k, v := range in.Values {
		switch val := v.(type) {
		case string:
			out[k] = val
		case bool:
			out[k] = strconv.FormatBool(val)
		case float64:
			out[k] = strconv.FormatFloat(val, 'f', -1, 64)
		case nil:
			out[k] = ""
		default:
			out[k] = fmt.Sprint(val)
		}
	}
	return out
}
