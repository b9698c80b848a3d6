//go:build profile

package profiler

import (
	"encoding/json"
	"os"
)

type ssFile struct {
	Schema             string      `json:"$schema"`
	Shared             ssShared    `json:"shared"`
	Profiles           []ssProfile `json:"profiles"`
	ActiveProfileIndex int         `json:"activeProfileIndex"`
	Exporter           string      `json:"exporter,omitempty"`
	Name               string      `json:"name,omitempty"`
}

type ssShared struct {
	Frames []ssFrame `json:"frames"`
}

type ssFrame struct {
	Name string `json:"name"`
}

type ssProfile struct {
	Type       string    `json:"type"` // "evented"
	Name       string    `json:"name"`
	Unit       string    `json:"unit"`
	StartValue int64     `json:"startValue"`
	EndValue   int64     `json:"endValue"`
	Events     []ssEvent `json:"events"`
}

type ssEvent struct {
	Type  string `json:"type"` // "O" or "C"
	At    int64  `json:"at"`   // µs since the first event
	Frame int    `json:"frame"`
}

// toSpeedscope balances evs into speedscope events. The ring may have
// overwritten the opening half of a scope: such closes are dropped, and
// scopes still open at the end are closed at the last timestamp.
func toSpeedscope(evs []event) (out []ssEvent, end int64) {
	if len(evs) == 0 {
		return nil, 0
	}
	base := evs[0].at
	stack := make([]int, 0, 32)
	last := int64(0)
	for _, e := range evs {
		at := (e.at - base) / 1000
		if at < last {
			at = last
		}
		if e.open {
			stack = append(stack, e.name)
			out = append(out, ssEvent{Type: "O", At: at, Frame: e.name})
		} else {
			if len(stack) == 0 || stack[len(stack)-1] != e.name {
				continue
			}
			stack = stack[:len(stack)-1]
			out = append(out, ssEvent{Type: "C", At: at, Frame: e.name})
		}
		last = at
	}
	for i := len(stack) - 1; i >= 0; i-- {
		out = append(out, ssEvent{Type: "C", At: last, Frame: stack[i]})
	}
	return out, last
}

func writeSpeedscope(path string, evs []event, names []string) error {
	out, end := toSpeedscope(evs)
	if len(out) == 0 {
		return ErrNoEvents
	}
	frames := make([]ssFrame, len(names))
	for i, n := range names {
		frames[i] = ssFrame{Name: n}
	}
	doc := ssFile{
		Schema: "https://www.speedscope.app/file-format-schema.json",
		Shared: ssShared{Frames: frames},
		Profiles: []ssProfile{{
			Type:     "evented",
			Name:     "atlas frames",
			Unit:     "microseconds",
			EndValue: end,
			Events:   out,
		}},
		Exporter: "atlas",
		Name:     "atlas capture",
	}

	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(&doc); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
