//go:build !profile

package profiler

import "errors"

// No-op versions when the "profile" build tag is not set.

const FileName = "atlas.profile.speedscope.json"

const Enabled = false

var ErrNoEvents = errors.New("profiler: no events recorded")

var errDisabled = errors.New("profiler: built without the profile tag")

func Init(capacity int)               {}
func Start(name string) func()        { return func() {} }
func Dump(dir string) (string, error) { return "", errDisabled }
func Open(path string) error          { return errDisabled }
