// Package augment implements Scriptable Augmentation (spec.md §3, §4.4
// Looks): the per-run fields (graphic effects, instrument, pen state)
// the Interpreter stamps onto every Scriptable once at construction.
// Augmentation must be idempotent — constructing an Interpreter twice on
// the same Project yields the same scriptable state (spec.md §8).
package augment

import "skipvm/internal/model"

// Run augments every Scriptable in the project exactly once. Calling it
// again on an already-augmented project is a no-op per Scriptable,
// satisfying the idempotence invariant.
func Run(p *model.Project) {
	for _, s := range p.AllScriptables() {
		augmentOne(s)
	}
	if p.Actors == nil {
		p.Actors = p.AllScriptables()
	}
}

func augmentOne(s model.Scriptable) {
	switch v := s.(type) {
	case *model.Sprite:
		if v.IsAugmented() {
			return
		}
		v.Effects = model.GraphicEffects{}
		v.Instrument = 1
		if v.VariablesMap == nil {
			v.VariablesMap = map[string]*model.Variable{}
		}
		if v.ListsMap == nil {
			v.ListsMap = map[string]*model.List{}
		}
		if v.RotationStyle == "" {
			v.RotationStyle = model.RotationNormal
		}
		v.PenSize = defaultFloat(v.PenSize, 1)
		v.SizePercent = defaultFloat(v.SizePercent, 100)
		v.VolumePct = defaultFloat(v.VolumePct, 100)
		v.Visible = true
		v.MarkAugmented()
	case *model.Stage:
		if v.IsAugmented() {
			return
		}
		v.Effects = model.GraphicEffects{}
		v.Instrument = 1
		if v.VariablesMap == nil {
			v.VariablesMap = map[string]*model.Variable{}
		}
		if v.ListsMap == nil {
			v.ListsMap = map[string]*model.List{}
		}
		v.SizePercent = defaultFloat(v.SizePercent, 100)
		v.VolumePct = defaultFloat(v.VolumePct, 100)
		v.Visible = true
		v.MarkAugmented()
	}
}

func defaultFloat(v, fallback float64) float64 {
	if v == 0 {
		return fallback
	}
	return v
}
