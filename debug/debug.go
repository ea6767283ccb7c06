package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Load     bool
	Infer    bool
	Reorg    bool
	Validate bool
	Fetch    bool
}

var d *debug

func init() {
	d = &debug{}
	d.Load = boolEnv("PARTCAT_DEBUG_LOAD")
	d.Infer = boolEnv("PARTCAT_DEBUG_INFER")
	d.Reorg = boolEnv("PARTCAT_DEBUG_REORG")
	d.Validate = boolEnv("PARTCAT_DEBUG_VALIDATE")
	d.Fetch = boolEnv("PARTCAT_DEBUG_FETCH")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Load() bool {
	return d.Load
}
func Infer() bool {
	return d.Infer
}
func Reorg() bool {
	return d.Reorg
}
func Validate() bool {
	return d.Validate
}
func Fetch() bool {
	return d.Fetch
}

// SetValidate overrides PARTCAT_DEBUG_VALIDATE and returns the previous
// value.
func SetValidate(v bool) bool {
	old := d.Validate
	d.Validate = v
	return old
}
