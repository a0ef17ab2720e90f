package event

import (
	"strings"
	"testing"

	"github.com/gogpu/girih/tiling"
)

func TestTypeString(t *testing.T) {
	tests := []struct {
		typ  Type
		want string
	}{
		{LoadEmpty, "LOAD_EMPTY"},
		{ReloadMulti, "RELOAD_MULTI"},
		{TileEdgesChanged, "TILE_EDGES_CHANGED"},
		{Render, "RENDER"},
		{Type(42), "Type(42)"},
	}
	for _, tt := range tests {
		if got := tt.typ.String(); got != tt.want {
			t.Errorf("%d: got %q, want %q", int(tt.typ), got, tt.want)
		}
	}
}

func TestEventString(t *testing.T) {
	e := Event{Type: LoadSingle, Tiling: tiling.New("hex"), Choice: ChoiceCreatePrototype}
	s := e.String()
	for _, want := range []string{"LOAD_SINGLE", `"hex"`, "create-prototype"} {
		if !strings.Contains(s, want) {
			t.Errorf("%q does not contain %q", s, want)
		}
	}
}
