package squeak

import "testing"

func newSprite(set map[int]Value) *Sprite {
	return &Sprite{scriptable{Record{ID: ClassSprite, Fields: fields(21, set)}}}
}

func costumeWithCenter(x, y float64) *ImageMedia {
	return &ImageMedia{Record: Record{ID: ClassImageMedia, Fields: fields(6, map[int]Value{
		imageMediaCostumeName:    str("costume1"),
		imageMediaRotationCenter: point(x, y),
	})}}
}

func TestSpriteStageCoordinates(t *testing.T) {
	s := newSprite(map[int]Value{
		spriteBox:                rect(10, 20, 50, 60),
		scriptableCurrentCostume: costumeWithCenter(5, 7),
	})
	if got := s.ScratchX(); got != -225 {
		t.Errorf("ScratchX: got %v, want -225", got)
	}
	if got := s.ScratchY(); got != 153 {
		t.Errorf("ScratchY: got %v, want 153", got)
	}

	bare := newSprite(map[int]Value{spriteBox: rect(10, 20, 50, 60)})
	if bare.ScratchX() != -230 || bare.ScratchY() != 160 {
		t.Errorf("no costume: got %v, %v", bare.ScratchX(), bare.ScratchY())
	}
}

func TestSpriteVisible(t *testing.T) {
	tests := []struct {
		flags Value
		want  bool
	}{
		{integer(0), true},
		{integer(1), false},
		{integer(2), true},
		{integer(3), false},
		{null(), true},
	}
	for _, tt := range tests {
		s := newSprite(map[int]Value{spriteVisible: tt.flags})
		if got := s.Visible(); got != tt.want {
			t.Errorf("flags %v: got %v, want %v", tt.flags, got, tt.want)
		}
	}
}

func TestSpriteFields(t *testing.T) {
	s := newSprite(map[int]Value{
		scriptableObjName:     str("Sprite1"),
		scriptableIsClone:     &Scalar{ID: ClassTrue, V: true},
		spriteRotationStyle:   str("normal"),
		spriteRotationDegrees: num(90),
		spriteScalePoint:      point(1, 1),
	})
	if s.ObjName() != "Sprite1" || !s.IsClone() || s.RotationStyle() != "normal" || s.RotationDegrees() != 90 {
		t.Errorf("got %q clone=%v style=%q deg=%v", s.ObjName(), s.IsClone(), s.RotationStyle(), s.RotationDegrees())
	}
	if p := s.ScalePoint(); p == nil || p.X() != 1 {
		t.Errorf("scale point: got %v", p)
	}
	if s.CurrentCostume() != nil || s.Media() != nil {
		t.Error("absent fields should read as nil")
	}
}

func TestStageLists(t *testing.T) {
	st := &Stage{scriptable{Record{ID: ClassStage, Fields: fields(21, nil)}}}
	if l := st.Lists(); l == nil || len(l) != 0 {
		t.Errorf("absent lists: got %#v, want empty", l)
	}

	short := &Stage{scriptable{Record{ID: ClassStage, Fields: fields(17, nil)}}}
	if l := short.Lists(); l == nil || len(l) != 0 {
		t.Errorf("old version: got %#v, want empty", l)
	}

	lists := &Array{ID: ClassDictionary, Items: []Value{str("l"), null()}}
	st.Fields[stageLists] = lists
	st.Fields[stageTempoBPM] = integer(60)
	if len(st.Lists()) != 2 || st.TempoBPM() != 60 {
		t.Errorf("got lists %v tempo %v", st.Lists(), st.TempoBPM())
	}
}

func newWatcher(set map[int]Value) *Watcher {
	return &Watcher{Record{ID: ClassWatcher, Fields: fields(22, set)}}
}

func readoutFrame(height float64) *WatcherReadoutFrame {
	return &WatcherReadoutFrame{Record{ID: ClassWatcherReadoutFrame, Fields: []Value{rect(0, 0, 40, height)}}}
}

func readout(v Value) *UpdatingString {
	return &UpdatingString{Record{ID: ClassUpdatingString, Fields: fields(14, map[int]Value{updatingStringValue: v})}}
}

func TestWatcherMode(t *testing.T) {
	tests := []struct {
		name string
		set  map[int]Value
		want WatcherMode
	}{
		{"default", nil, WatcherNormal},
		{"short frame", map[int]Value{watcherReadoutFrame: readoutFrame(14)}, WatcherNormal},
		{"tall frame", map[int]Value{watcherReadoutFrame: readoutFrame(21)}, WatcherLarge},
		{"slider", map[int]Value{watcherReadoutFrame: readoutFrame(21), watcherSlider: &Record{ID: ClassWatcherSlider}}, WatcherSlider},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := newWatcher(tt.set).Mode(); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWatcherIsDiscrete(t *testing.T) {
	tests := []struct {
		name string
		set  map[int]Value
		want bool
	}{
		{"integers", map[int]Value{watcherReadout: readout(integer(5)), watcherSliderMin: integer(0), watcherSliderMax: integer(100)}, true},
		{"whole floats", map[int]Value{watcherReadout: readout(num(5)), watcherSliderMin: num(0), watcherSliderMax: num(10)}, true},
		{"fractional value", map[int]Value{watcherReadout: readout(num(2.5)), watcherSliderMin: integer(0), watcherSliderMax: integer(100)}, false},
		{"fractional bound", map[int]Value{watcherReadout: readout(integer(1)), watcherSliderMin: integer(0), watcherSliderMax: num(0.5)}, false},
		{"string value", map[int]Value{watcherReadout: readout(str("5")), watcherSliderMin: integer(0), watcherSliderMax: integer(100)}, false},
		{"no readout", map[int]Value{watcherSliderMin: integer(0), watcherSliderMax: integer(100)}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := newWatcher(tt.set).IsDiscrete(); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWatcherPosition(t *testing.T) {
	w := newWatcher(map[int]Value{watcherBox: rect(12, 34, 100, 60)})
	if w.X() != 12 || w.Y() != 34 {
		t.Errorf("got %v, %v", w.X(), w.Y())
	}
	if newWatcher(nil).X() != 0 {
		t.Error("missing box should place the watcher at the origin")
	}
}

func TestListWatcherGeometry(t *testing.T) {
	box := rect(10, 20, 110, 220)
	hidden := &ListWatcher{Record{ID: ClassListWatcher, Fields: fields(11, map[int]Value{listWatcherBox: box})}}
	if hidden.X() != hiddenListPosition || hidden.Y() != hiddenListPosition {
		t.Errorf("hidden: got %v, %v", hidden.X(), hidden.Y())
	}

	shown := &ListWatcher{Record{ID: ClassListWatcher, Fields: fields(11, map[int]Value{
		listWatcherBox:            box,
		listWatcherHiddenWhenNull: &Record{ID: ClassStage},
		listWatcherListName:       str("items"),
		listWatcherContents:       &Array{ID: ClassArray, Items: []Value{str("a"), str("b")}},
	})}}
	if shown.X() != 11 || shown.Y() != 21 {
		t.Errorf("shown: got %v, %v", shown.X(), shown.Y())
	}
	if shown.Width() != 98 || shown.Height() != 198 {
		t.Errorf("size: got %v x %v", shown.Width(), shown.Height())
	}
	if shown.Name() != "items" || len(shown.Contents()) != 2 {
		t.Errorf("got %q with %d items", shown.Name(), len(shown.Contents()))
	}
}

func TestWatcherModeString(t *testing.T) {
	if WatcherSlider.String() != "slider" || WatcherMode(9).String() != "unknown" {
		t.Errorf("got %q, %q", WatcherSlider, WatcherMode(9))
	}
}
