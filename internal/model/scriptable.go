package model

// Variable is a mutable cell, scoped either to a Scriptable (private) or
// to the Project (global) — spec.md §3.
type Variable struct {
	NameStr     string
	Value       any // holds a value.Value once interpreter-assigned; any avoids an import cycle
	WatcherShown bool
}

func (v *Variable) Name() string { return v.NameStr }

// List is a mutable ordered sequence, scoped like Variable.
type List struct {
	NameStr string
	Items   []any
}

func (l *List) Name() string { return l.NameStr }

// Costume is a named, sized image with a rotation centre, consumed by
// the Rect Geometry component (spec.md §4.5).
type Costume struct {
	NameStr                          string
	ImageWidth, ImageHeight          float64
	RotationCenterX, RotationCenterY float64
}

func (c *Costume) Name() string { return c.NameStr }

// Sound is a named audio asset, delegated to the screen backend
// (spec.md §4.4 Sound, §6.3).
type Sound struct {
	NameStr string
}

func (s *Sound) Name() string { return s.NameStr }

// GraphicEffects is the fixed seven-key set the source's GRAPHIC_EFFECTS
// tuple names (recovered from original_source/elda — see SPEC_FULL.md).
// Each value is an accumulator; clamping is the renderer's job, not the
// interpreter's.
type GraphicEffects struct {
	Color      float64
	Fisheye    float64
	Whirl      float64
	Pixelate   float64
	Mosaic     float64
	Brightness float64
	Ghost      float64
}

// Clear zeroes every effect (the `clear graphic effects` block).
func (g *GraphicEffects) Clear() { *g = GraphicEffects{} }

// Base holds the fields common to Stage and Sprite (spec.md §3).
type Base struct {
	NameStr      string
	ScriptsList  []*Script
	VariablesMap map[string]*Variable
	ListsMap     map[string]*List
	CostumesList []*Costume
	SoundsList   []*Sound
	CostumeIdx   int
	SizePercent  float64
	VolumePct    float64
	Visible      bool
	Draggable    bool

	// Augmented fields, populated once by internal/augment at
	// Interpreter construction (spec.md §3 Lifecycle invariants).
	Effects    GraphicEffects
	Instrument int
	augmented  bool
}

func (b *Base) Name() string                     { return b.NameStr }
func (b *Base) Scripts() []*Script                { return b.ScriptsList }
func (b *Base) Variables() map[string]*Variable   { return b.VariablesMap }
func (b *Base) Lists() map[string]*List           { return b.ListsMap }
func (b *Base) Costumes() []*Costume              { return b.CostumesList }
func (b *Base) Sounds() []*Sound                  { return b.SoundsList }
func (b *Base) CostumeIndex() int                 { return b.CostumeIdx }
func (b *Base) SetCostumeIndex(i int)             { b.CostumeIdx = i }
func (b *Base) Size() float64                     { return b.SizePercent }
func (b *Base) SetSize(s float64)                 { b.SizePercent = s }
func (b *Base) Volume() float64                   { return b.VolumePct }
func (b *Base) SetVolume(v float64)               { b.VolumePct = v }
func (b *Base) IsVisible() bool                   { return b.Visible }
func (b *Base) SetVisible(v bool)                 { b.Visible = v }
func (b *Base) IsDraggable() bool                 { return b.Draggable }
func (b *Base) IsAugmented() bool                 { return b.augmented }
func (b *Base) MarkAugmented()                    { b.augmented = true }

// CurrentCostume returns the active costume, or nil if none.
func (b *Base) CurrentCostume() *Costume {
	if len(b.CostumesList) == 0 {
		return nil
	}
	idx := ((b.CostumeIdx % len(b.CostumesList)) + len(b.CostumesList)) % len(b.CostumesList)
	return b.CostumesList[idx]
}

// RotationStyle values (spec.md supplemented features, recovered from
// original_source/elda).
const (
	RotationNormal    = "normal"
	RotationLeftRight = "leftRight"
	RotationNone      = "none"
)

// Sprite is a Scriptable with position/heading/pen state (spec.md §3).
type Sprite struct {
	Base
	X, Y           float64
	DirectionDeg   float64
	RotationStyle  string
	PenDown        bool
	PenSize        float64
	PenColor       float64
	PenHue         float64
	PenShade       float64
}

func (s *Sprite) IsStage() bool { return false }

// Position returns the sprite's (x, y).
func (s *Sprite) Position() (float64, float64) { return s.X, s.Y }

// SetPosition sets the sprite's (x, y).
func (s *Sprite) SetPosition(x, y float64) { s.X, s.Y = x, y }

// Stage is the project's single Stage, fixed 480x360 at origin.
type Stage struct {
	Base
	BackdropIndex int
}

func (s *Stage) IsStage() bool { return true }

// StageWidth, StageHeight are the fixed Stage dimensions (spec.md §6.1).
const (
	StageWidth  = 480
	StageHeight = 360
)

// Scriptable is the common interface Stage and Sprite satisfy.
type Scriptable interface {
	Name() string
	IsStage() bool
	Scripts() []*Script
	Variables() map[string]*Variable
	Lists() map[string]*List
	Costumes() []*Costume
	Sounds() []*Sound
	CostumeIndex() int
	SetCostumeIndex(int)
	CurrentCostume() *Costume
	Size() float64
	SetSize(float64)
	Volume() float64
	SetVolume(float64)
	IsVisible() bool
	SetVisible(bool)
	IsDraggable() bool
}

// Project is the top-level consumed structure (spec.md §6.1).
type Project struct {
	Stage         *Stage
	SpritesList   []*Sprite
	Actors        []Scriptable // draw/actor order; mutated by go-to-front / go-back-layers
	VariablesMap  map[string]*Variable
	ListsMap      map[string]*List
	Tempo         float64
	NameStr       string
}

// GetSprite looks up a sprite by name, or nil if none matches.
func (p *Project) GetSprite(name string) *Sprite {
	for _, s := range p.SpritesList {
		if s.NameStr == name {
			return s
		}
	}
	return nil
}

// AllScriptables returns the Stage followed by every Sprite, the
// iteration order the Interpreter augments and triggers hats over.
func (p *Project) AllScriptables() []Scriptable {
	out := make([]Scriptable, 0, len(p.SpritesList)+1)
	out = append(out, p.Stage)
	for _, s := range p.SpritesList {
		out = append(out, s)
	}
	return out
}

// BringToFront moves s to the end of Actors (drawn last == on top).
func (p *Project) BringToFront(s Scriptable) {
	p.removeActor(s)
	p.Actors = append(p.Actors, s)
}

// SendBackLayers moves s back by n layers (toward the start of Actors).
func (p *Project) SendBackLayers(s Scriptable, n int) {
	idx := p.actorIndex(s)
	if idx < 0 {
		return
	}
	p.removeActor(s)
	newIdx := idx - n
	if newIdx < 0 {
		newIdx = 0
	}
	if newIdx > len(p.Actors) {
		newIdx = len(p.Actors)
	}
	p.Actors = append(p.Actors[:newIdx], append([]Scriptable{s}, p.Actors[newIdx:]...)...)
}

func (p *Project) actorIndex(s Scriptable) int {
	for i, a := range p.Actors {
		if a == s {
			return i
		}
	}
	return -1
}

func (p *Project) removeActor(s Scriptable) {
	idx := p.actorIndex(s)
	if idx < 0 {
		return
	}
	p.Actors = append(p.Actors[:idx], p.Actors[idx+1:]...)
}
