package t2048

import (
	"encoding/json"
	"testing"
)

func TestParseDirection(t *testing.T) {
	tests := []struct {
		in      string
		want    Direction
		wantErr bool
	}{
		{"up", DirUp, false},
		{"RIGHT", DirRight, false},
		{" down ", DirDown, false},
		{"left", DirLeft, false},
		{"0", DirUp, false},
		{"3", DirLeft, false},
		{"4", 0, true},
		{"north", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseDirection(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseDirection(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseDirection(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestDirectionVectors(t *testing.T) {
	want := map[Direction]Vector{
		DirUp:    {0, -1},
		DirRight: {1, 0},
		DirDown:  {0, 1},
		DirLeft:  {-1, 0},
	}
	for d, v := range want {
		if d.Vector() != v {
			t.Errorf("%v.Vector() = %v, want %v", d, d.Vector(), v)
		}
	}
	if Direction(9).Vector() != (Vector{}) {
		t.Error("unknown direction should map to the zero vector")
	}
}

func TestSnapshotString(t *testing.T) {
	s, _ := newBoardSession([][]int{
		{2, 0},
		{0, 16},
	}, DefaultWinValue, &scriptedRand{})

	want := " 2  .\n . 16"
	if got := s.Snapshot().String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestSnapshotHelpers(t *testing.T) {
	s, _ := newBoardSession([][]int{
		{2, 0, 0},
		{0, 8, 0},
		{0, 0, 4},
	}, DefaultWinValue, &scriptedRand{})
	snap := s.Snapshot()

	if snap.MaxTile() != 8 {
		t.Errorf("MaxTile() = %d, want 8", snap.MaxTile())
	}
	if tile, ok := snap.TileAt(2, 2); !ok || tile.Value != 4 {
		t.Errorf("TileAt(2,2) = %+v, %v", tile, ok)
	}
	if _, ok := snap.TileAt(1, 0); ok {
		t.Error("TileAt on an empty cell should report false")
	}
	if snap.Values()[1][1] != 8 {
		t.Error("Values() should be indexed [y][x]")
	}
	if snap.Terminal() {
		t.Error("fresh snapshot should not be terminal")
	}
}

func TestSnapshotJSON(t *testing.T) {
	s, _ := newBoardSession([][]int{
		{2, 2},
		{0, 0},
	}, DefaultWinValue, &scriptedRand{})
	s.Move(DirLeft)

	data, err := json.Marshal(s.Snapshot())
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var decoded struct {
		Score int `json:"score"`
		Tiles []struct {
			Value      int               `json:"value"`
			MergedFrom []json.RawMessage `json:"merged_from"`
		} `json:"tiles"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if decoded.Score != 4 || len(decoded.Tiles) != 2 {
		t.Fatalf("decoded = %+v", decoded)
	}
	if len(decoded.Tiles[0].MergedFrom) != 2 {
		t.Error("merged tile should carry its two sources")
	}
}

func TestMultiRenderer(t *testing.T) {
	var got []int
	a := &recorder{}
	m := MultiRenderer{
		a,
		RendererFunc(func(snap Snapshot) { got = append(got, snap.Score) }),
	}

	m.Actuate(Snapshot{Score: 12})
	m.Restart()

	if len(a.snaps) != 1 || len(got) != 1 || got[0] != 12 {
		t.Error("Actuate should reach every renderer")
	}
	if a.restarts != 1 {
		t.Error("Restart should reach Restarter renderers")
	}
}
