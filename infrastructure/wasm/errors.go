package wasm

import "errors"

var (
	errEmptyHostResponse = errors.New("host returned an empty http response")
	errNoHost            = errors.New("wasm host adapter is only available under wasip1")
)
