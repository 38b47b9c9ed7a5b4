package util

import "encoding/json"

func Serialize[T any](value T) ([]byte, error) {
	return json.Marshal(value)
}

func Deserialize[T any](data []byte) (T, error) {
	var value T

	err := json.Unmarshal(data, &value)

	return value, err
}
