package squeak

// Point is a 2D coordinate.
type Point struct{ Record }

const (
	pointX = 0
	pointY = 1
)

// X and Y return the coordinates as numbers; a missing field reads as 0.
func (p *Point) X() float64 { return Float(p.Field(pointX)) }
func (p *Point) Y() float64 { return Float(p.Field(pointY)) }

// Rectangle is an axis-aligned box given by its two corners.
type Rectangle struct{ Record }

const (
	rectX  = 0
	rectY  = 1
	rectX2 = 2
	rectY2 = 3
)

// X and Y are the top-left corner, X2 and Y2 the bottom-right.
func (r *Rectangle) X() float64  { return Float(r.Field(rectX)) }
func (r *Rectangle) Y() float64  { return Float(r.Field(rectY)) }
func (r *Rectangle) X2() float64 { return Float(r.Field(rectX2)) }
func (r *Rectangle) Y2() float64 { return Float(r.Field(rectY2)) }

// Width is X2 - X and Height is Y2 - Y.
func (r *Rectangle) Width() float64  { return r.X2() - r.X() }
func (r *Rectangle) Height() float64 { return r.Y2() - r.Y() }

// Morph is the base scene-graph node.
type Morph struct{ Record }

const (
	morphBox    = 0
	morphParent = 1
	morphColor  = 3
)

// Box returns the morph's bounds, or nil when the field is not a rectangle.
func (m *Morph) Box() *Rectangle { return asRectangle(m.Field(morphBox)) }
func (m *Morph) Parent() Value   { return m.Field(morphParent) }
func (m *Morph) Color() Value    { return m.Field(morphColor) }

// Alignment lays out child frames in a row or column.
type Alignment struct{ Record }

const (
	alignmentBox       = 0
	alignmentParent    = 1
	alignmentFrames    = 2
	alignmentColor     = 3
	alignmentDirection = 8
	alignmentAlignment = 9
)

// Box returns the bounds of the row or column.
func (a *Alignment) Box() *Rectangle { return asRectangle(a.Field(alignmentBox)) }
func (a *Alignment) Parent() Value   { return a.Field(alignmentParent) }

// Frames returns the laid out children.
func (a *Alignment) Frames() []Value { return Items(a.Field(alignmentFrames)) }
func (a *Alignment) Color() Value    { return a.Field(alignmentColor) }

// Direction is the symbol naming the layout axis.
func (a *Alignment) Direction() string { return Str(a.Field(alignmentDirection)) }
func (a *Alignment) Alignment() string { return Str(a.Field(alignmentAlignment)) }

// StaticString is a fixed text label.
type StaticString struct{ Record }

const (
	staticStringBox   = 0
	staticStringColor = 3
	staticStringValue = 8
)

// Box returns the label bounds.
func (s *StaticString) Box() *Rectangle { return asRectangle(s.Field(staticStringBox)) }
func (s *StaticString) Color() Value    { return s.Field(staticStringColor) }

// Value returns the label text.
func (s *StaticString) Value() string { return Str(s.Field(staticStringValue)) }

// UpdatingString is a label bound to a target's getter.
type UpdatingString struct{ Record }

const (
	updatingStringBox          = 0
	updatingStringReadoutFrame = 1
	updatingStringColor        = 3
	updatingStringFont         = 6
	updatingStringValue        = 8
	updatingStringTarget       = 10
	updatingStringCmd          = 11
	updatingStringParam        = 13
)

// Box returns the label bounds.
func (u *UpdatingString) Box() *Rectangle     { return asRectangle(u.Field(updatingStringBox)) }
func (u *UpdatingString) ReadoutFrame() Value { return u.Field(updatingStringReadoutFrame) }
func (u *UpdatingString) Color() Value        { return u.Field(updatingStringColor) }
func (u *UpdatingString) Font() Value         { return u.Field(updatingStringFont) }

// Value returns the last displayed value.
func (u *UpdatingString) Value() Value { return u.Field(updatingStringValue) }

// Target is the object whose getter feeds the label.
func (u *UpdatingString) Target() Value { return u.Field(updatingStringTarget) }

// Cmd names the getter selector.
func (u *UpdatingString) Cmd() string  { return Str(u.Field(updatingStringCmd)) }
func (u *UpdatingString) Param() Value { return u.Field(updatingStringParam) }

// WatcherReadoutFrame is the box drawn around a watcher's value.
type WatcherReadoutFrame struct{ Record }

const watcherReadoutFrameBox = 0

// Box returns the frame bounds.
func (w *WatcherReadoutFrame) Box() *Rectangle { return asRectangle(w.Field(watcherReadoutFrameBox)) }

// WatcherMode is the display style of a variable watcher.
type WatcherMode int

const (
	WatcherNormal WatcherMode = 1
	WatcherLarge  WatcherMode = 2
	WatcherSlider WatcherMode = 3
	WatcherText   WatcherMode = 4
)

// String returns the lowercase mode name.
func (m WatcherMode) String() string {
	switch m {
	case WatcherNormal:
		return "normal"
	case WatcherLarge:
		return "large"
	case WatcherSlider:
		return "slider"
	case WatcherText:
		return "text"
	default:
		return "unknown"
	}
}

// normalReadoutHeight is the tallest readout frame of a normal watcher.
const normalReadoutHeight = 14

// Watcher shows a variable or reporter value on the stage.
type Watcher struct{ Record }

const (
	watcherBox          = 0
	watcherTarget       = 1
	watcherShape        = 2
	watcherReadout      = 14
	watcherReadoutFrame = 15
	watcherSlider       = 16
	watcherAlignment    = 17
	watcherSliderMin    = 20
	watcherSliderMax    = 21
)

// Box returns the watcher bounds in editor coordinates.
func (w *Watcher) Box() *Rectangle { return asRectangle(w.Field(watcherBox)) }

// Target is the sprite or stage that owns the watched variable.
func (w *Watcher) Target() Value { return w.Field(watcherTarget) }
func (w *Watcher) Shape() Value  { return w.Field(watcherShape) }

// Slider is the slider morph, nil unless the watcher is in slider mode.
func (w *Watcher) Slider() Value    { return w.Field(watcherSlider) }
func (w *Watcher) Alignment() Value { return w.Field(watcherAlignment) }

// SliderMin and SliderMax bound the slider range.
func (w *Watcher) SliderMin() float64 { return Float(w.Field(watcherSliderMin)) }
func (w *Watcher) SliderMax() float64 { return Float(w.Field(watcherSliderMax)) }

// Readout returns the label showing the value, or nil.
func (w *Watcher) Readout() *UpdatingString {
	u, _ := w.Field(watcherReadout).(*UpdatingString)
	return u
}

// ReadoutFrame returns the box around the readout, or nil.
func (w *Watcher) ReadoutFrame() *WatcherReadoutFrame {
	f, _ := w.Field(watcherReadoutFrame).(*WatcherReadoutFrame)
	return f
}

// X and Y are the top-left corner of the watcher box.
func (w *Watcher) X() float64 { return boxX(w.Box()) }
func (w *Watcher) Y() float64 { return boxY(w.Box()) }

// Mode derives the display style from the slider and readout frame.
func (w *Watcher) Mode() WatcherMode {
	if !IsNull(w.Slider()) {
		return WatcherSlider
	}
	var height float64
	if f := w.ReadoutFrame(); f != nil {
		if box := f.Box(); box != nil {
			height = box.Height()
		}
	}
	if height <= normalReadoutHeight {
		return WatcherNormal
	}
	return WatcherLarge
}

// IsDiscrete reports whether the slider bounds and current readout are
// all whole numbers.
func (w *Watcher) IsDiscrete() bool {
	r := w.Readout()
	return r != nil &&
		IsIntegral(w.Field(watcherSliderMin)) &&
		IsIntegral(w.Field(watcherSliderMax)) &&
		IsIntegral(r.Value())
}

// ListWatcher shows the contents of a list on the stage.
type ListWatcher struct{ Record }

const (
	listWatcherBox            = 0
	listWatcherHiddenWhenNull = 1
	listWatcherListName       = 8
	listWatcherContents       = 9
	listWatcherTarget         = 10
)

// hiddenListPosition is where lists without a live owner are placed.
const hiddenListPosition = 5

// Box returns the list watcher bounds in editor coordinates.
func (l *ListWatcher) Box() *Rectangle       { return asRectangle(l.Field(listWatcherBox)) }
func (l *ListWatcher) HiddenWhenNull() Value { return l.Field(listWatcherHiddenWhenNull) }

// Name is the list variable name.
func (l *ListWatcher) Name() string { return Str(l.Field(listWatcherListName)) }

// Contents returns the list items.
func (l *ListWatcher) Contents() []Value { return Items(l.Field(listWatcherContents)) }
func (l *ListWatcher) Target() Value     { return l.Field(listWatcherTarget) }

// X is one pixel inside the box, or a fixed corner offset for hidden lists.
func (l *ListWatcher) X() float64 {
	if IsNull(l.HiddenWhenNull()) {
		return hiddenListPosition
	}
	return boxX(l.Box()) + 1
}

// Y follows the same placement as X.
func (l *ListWatcher) Y() float64 {
	if IsNull(l.HiddenWhenNull()) {
		return hiddenListPosition
	}
	return boxY(l.Box()) + 1
}

// Width and Height exclude the one-pixel border on each side.
func (l *ListWatcher) Width() float64 {
	if b := l.Box(); b != nil {
		return b.Width() - 2
	}
	return -2
}

func (l *ListWatcher) Height() float64 {
	if b := l.Box(); b != nil {
		return b.Height() - 2
	}
	return -2
}

// TextDetails describes the text layer of a costume. It has no class id
// of its own; use ImageMedia.TextDetails to view the embedded record.
type TextDetails struct{ Record }

const (
	textDetailsRectangle = 0
	textDetailsFont      = 8
	textDetailsColor     = 9
	textDetailsLines     = 11
)

// Rectangle returns the text box within the costume.
func (t *TextDetails) Rectangle() *Rectangle { return asRectangle(t.Field(textDetailsRectangle)) }
func (t *TextDetails) Font() Value           { return t.Field(textDetailsFont) }
func (t *TextDetails) Color() Value          { return t.Field(textDetailsColor) }

// Lines returns the text, one string per line.
func (t *TextDetails) Lines() []Value { return Items(t.Field(textDetailsLines)) }

// scriptable holds the fields shared by sprites and the stage.
type scriptable struct{ Record }

const (
	scriptableObjName        = 6
	scriptableVars           = 7
	scriptableBlocksBin      = 8
	scriptableIsClone        = 9
	scriptableMedia          = 10
	scriptableCurrentCostume = 11
)

// ObjName is the name shown in the editor.
func (s *scriptable) ObjName() string { return Str(s.Field(scriptableObjName)) }

// Vars is the dictionary of variable names to values.
func (s *scriptable) Vars() Value { return s.Field(scriptableVars) }

// BlocksBin holds the scripts as nested arrays.
func (s *scriptable) BlocksBin() Value { return s.Field(scriptableBlocksBin) }
func (s *scriptable) IsClone() bool    { return Bool(s.Field(scriptableIsClone)) }

// Media returns costumes and sounds in library order.
func (s *scriptable) Media() []Value { return Items(s.Field(scriptableMedia)) }

// CurrentCostume returns the selected costume, or nil.
func (s *scriptable) CurrentCostume() *ImageMedia {
	m, _ := s.Field(scriptableCurrentCostume).(*ImageMedia)
	return m
}

// Stage is the root scriptable object of a project.
type Stage struct{ scriptable }

const (
	stageContents             = 2
	stageZoom                 = 12
	stageHPan                 = 13
	stageVPan                 = 14
	stageObsoleteSavedState   = 15
	stageSpriteOrderInLibrary = 16
	stageVolume               = 17
	stageTempoBPM             = 18
	stageSceneStates          = 19
	stageLists                = 20
)

// Contents returns the morphs placed on the stage, sprites and watchers.
func (s *Stage) Contents() []Value { return Items(s.Field(stageContents)) }

// Zoom, HPan and VPan describe the editor's stage view.
func (s *Stage) Zoom() float64             { return Float(s.Field(stageZoom)) }
func (s *Stage) HPan() float64             { return Float(s.Field(stageHPan)) }
func (s *Stage) VPan() float64             { return Float(s.Field(stageVPan)) }
func (s *Stage) ObsoleteSavedState() Value { return s.Field(stageObsoleteSavedState) }

// Volume is the project volume, 0 to 100.
func (s *Stage) Volume() float64 { return Float(s.Field(stageVolume)) }

// TempoBPM is the tempo used by the music blocks.
func (s *Stage) TempoBPM() float64  { return Float(s.Field(stageTempoBPM)) }
func (s *Stage) SceneStates() Value { return s.Field(stageSceneStates) }

// SpriteOrderInLibrary returns the sprite library order, or nil.
func (s *Stage) SpriteOrderInLibrary() []Value {
	return Items(s.Field(stageSpriteOrderInLibrary))
}

// Lists returns the stage's list variables; an absent field is empty.
func (s *Stage) Lists() []Value { return listsOf(s.Field(stageLists)) }

// Sprite is a scriptable object drawn on the stage.
type Sprite struct{ scriptable }

const (
	spriteBox             = 0
	spriteParent          = 1
	spriteColor           = 3
	spriteVisible         = 4
	spriteVisibility      = 12
	spriteScalePoint      = 13
	spriteRotationDegrees = 14
	spriteRotationStyle   = 15
	spriteVolume          = 16
	spriteTempoBPM        = 17
	spriteDraggable       = 18
	spriteSceneStates     = 19
	spriteLists           = 20
)

// Stage coordinates are centered; the editor's are top-left based.
const (
	stageHalfWidth  = 240
	stageHalfHeight = 180
)

// Box returns the sprite bounds in editor coordinates.
func (s *Sprite) Box() *Rectangle { return asRectangle(s.Field(spriteBox)) }
func (s *Sprite) Parent() Value   { return s.Field(spriteParent) }
func (s *Sprite) Color() Value    { return s.Field(spriteColor) }

// Visibility is the ghost effect complement, 100 for fully opaque.
func (s *Sprite) Visibility() float64 { return Float(s.Field(spriteVisibility)) }

// ScalePoint holds the horizontal and vertical scale factors.
func (s *Sprite) ScalePoint() *Point { return asPoint(s.Field(spriteScalePoint)) }

// RotationDegrees is the heading offset in degrees.
func (s *Sprite) RotationDegrees() float64 { return Float(s.Field(spriteRotationDegrees)) }

// RotationStyle is normal, leftRight or none.
func (s *Sprite) RotationStyle() string { return Str(s.Field(spriteRotationStyle)) }
func (s *Sprite) Volume() float64       { return Float(s.Field(spriteVolume)) }
func (s *Sprite) TempoBPM() float64     { return Float(s.Field(spriteTempoBPM)) }

// Draggable reports whether the sprite can be dragged in the player.
func (s *Sprite) Draggable() bool    { return Bool(s.Field(spriteDraggable)) }
func (s *Sprite) SceneStates() Value { return s.Field(spriteSceneStates) }

// Lists returns the sprite's list variables; an absent field is empty.
func (s *Sprite) Lists() []Value { return listsOf(s.Field(spriteLists)) }

// Visible reads the hidden flag: bit 0 of the flags field set means hidden.
func (s *Sprite) Visible() bool {
	return Int(s.Field(spriteVisible))&1 == 0
}

// ScratchX is the horizontal stage coordinate of the costume's rotation center.
func (s *Sprite) ScratchX() float64 {
	return boxX(s.Box()) + rotationCenter(s.CurrentCostume()).X() - stageHalfWidth
}

// ScratchY is the vertical stage coordinate, growing upward.
func (s *Sprite) ScratchY() float64 {
	return stageHalfHeight - (boxY(s.Box()) + rotationCenter(s.CurrentCostume()).Y())
}

func asRectangle(v Value) *Rectangle {
	r, _ := v.(*Rectangle)
	return r
}

func asPoint(v Value) *Point {
	p, _ := v.(*Point)
	return p
}

func boxX(r *Rectangle) float64 {
	if r == nil {
		return 0
	}
	return r.X()
}

func boxY(r *Rectangle) float64 {
	if r == nil {
		return 0
	}
	return r.Y()
}

func rotationCenter(m *ImageMedia) *Point {
	if m != nil {
		if p := m.RotationCenter(); p != nil {
			return p
		}
	}
	return &Point{}
}

func listsOf(v Value) []Value {
	if items := Items(v); items != nil {
		return items
	}
	return []Value{}
}
