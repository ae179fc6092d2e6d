package inspect

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/vango-dev/modalhost/pkg/modal"
)

// ModalView is the JSON form of one record.
type ModalView struct {
	ID      string         `json:"id"`
	RootID  string         `json:"rootId"`
	IsOpen  bool           `json:"isOpen"`
	Options modal.Options  `json:"options"`
	Props   map[string]any `json:"props"`
}

// Snapshot is the JSON form of a registry state.
type Snapshot struct {
	Modals []ModalView `json:"modals"`
}

// NewSnapshot converts state into its JSON form, ordered by id.
func NewSnapshot(state modal.State) Snapshot {
	snap := Snapshot{Modals: make([]ModalView, 0, len(state))}
	for _, id := range state.IDs() {
		rec := state[id]
		snap.Modals = append(snap.Modals, ModalView{
			ID:      rec.ID,
			RootID:  rec.RootID(),
			IsOpen:  rec.IsOpen(),
			Options: rec.Options,
			Props:   printable(rec.Props),
		})
	}
	return snap
}

func printable(props modal.Props) map[string]any {
	out := make(map[string]any, len(props))
	for k, v := range props {
		if k == modal.PropIsOpen || v == nil {
			continue
		}
		switch reflect.TypeOf(v).Kind() {
		case reflect.Func, reflect.Chan, reflect.UnsafePointer:
			continue
		}
		if _, err := json.Marshal(v); err != nil {
			out[k] = fmt.Sprintf("%v", v)
			continue
		}
		out[k] = v
	}
	return out
}
