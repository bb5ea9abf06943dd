// Package sound implements the Sound handlers of spec.md §4.4, all of
// which delegate actual audio playback to the Screen backend (spec.md
// §6.3) and only own the Scriptable's volume/instrument state here.
package sound

import (
	"skipvm/internal/blocks/support"
	"skipvm/internal/dispatch"
	"skipvm/internal/eval"
	"skipvm/internal/model"
	"skipvm/internal/value"
)

// Register binds every sound command into table.
func Register(table *dispatch.Table) {
	table.Register(model.PlaySound.Command, playSound)
	table.Register(model.PlaySoundUntilDone.Command, playSoundUntilDone)
	table.Register(model.StopAllSounds.Command, stopAllSounds)
	table.Register(model.PlayDrumForBeats.Command, playDrumForBeats)
	table.Register(model.RestForBeats.Command, restForBeats)
	table.Register(model.PlayNoteForBeats.Command, playNoteForBeats)
	table.Register(model.SetInstrumentTo.Command, setInstrumentTo)
	table.Register(model.ChangeVolumeBy.Command, changeVolumeBy)
	table.Register(model.SetVolumeTo.Command, setVolumeTo)
	table.Register(model.VolumeReporter.Command, volumeReporter)
}

func resolveSound(ctx dispatch.Context, s model.Scriptable, b *model.Block, i int) *model.Sound {
	name := support.Str(ctx, s, b, i)
	return eval.RebindSoundFor(s, name)
}

func playSound(ctx dispatch.Context, s model.Scriptable, b *model.Block) value.Value {
	if snd := resolveSound(ctx, s, b, 0); snd != nil {
		ctx.Screen().PlaySound(snd)
	}
	return value.None()
}

// playSoundUntilDone blocks the Thread one frame at a time until the
// screen backend reports the sound finished (spec.md §6.3
// PlaySoundUntilDone: "done bool" lets the handler poll across
// Context.Yield calls rather than blocking the goroutine outright).
func playSoundUntilDone(ctx dispatch.Context, s model.Scriptable, b *model.Block) value.Value {
	snd := resolveSound(ctx, s, b, 0)
	if snd == nil {
		return value.None()
	}
	for {
		if ctx.Screen().PlaySoundUntilDone(snd) {
			return value.None()
		}
		ctx.Yield()
	}
}

func stopAllSounds(ctx dispatch.Context, s model.Scriptable, b *model.Block) value.Value {
	ctx.Screen().StopSounds()
	return value.None()
}

func playDrumForBeats(ctx dispatch.Context, s model.Scriptable, b *model.Block) value.Value {
	drum := int(support.Num(ctx, s, b, 0))
	secs := beatsToSecs(ctx, support.Num(ctx, s, b, 1))
	ctx.Screen().PlayDrum(drum, secs)
	return value.None()
}

func restForBeats(ctx dispatch.Context, s model.Scriptable, b *model.Block) value.Value {
	_ = beatsToSecs(ctx, support.Num(ctx, s, b, 0))
	return value.None()
}

func playNoteForBeats(ctx dispatch.Context, s model.Scriptable, b *model.Block) value.Value {
	note := int(support.Num(ctx, s, b, 0))
	secs := beatsToSecs(ctx, support.Num(ctx, s, b, 1))
	ctx.Screen().PlayNote(note, secs)
	return value.None()
}

func setInstrumentTo(ctx dispatch.Context, s model.Scriptable, b *model.Block) value.Value {
	if base, ok := instrumentOf(s); ok {
		*base = int(support.Num(ctx, s, b, 0))
	}
	return value.None()
}

func changeVolumeBy(ctx dispatch.Context, s model.Scriptable, b *model.Block) value.Value {
	s.SetVolume(s.Volume() + support.Num(ctx, s, b, 0))
	return value.None()
}

func setVolumeTo(ctx dispatch.Context, s model.Scriptable, b *model.Block) value.Value {
	s.SetVolume(support.Num(ctx, s, b, 0))
	return value.None()
}

func volumeReporter(ctx dispatch.Context, s model.Scriptable, b *model.Block) value.Value {
	return value.Number(s.Volume())
}

// beatsToSecs converts a beats duration to seconds via the Project's
// tempo (spec.md §6.1 Project.Tempo: beats-per-minute).
func beatsToSecs(ctx dispatch.Context, beats float64) float64 {
	tempo := ctx.Project().Tempo
	if tempo <= 0 {
		return 0
	}
	return beats * 60 / tempo
}

func instrumentOf(s model.Scriptable) (*int, bool) {
	switch t := s.(type) {
	case *model.Sprite:
		return &t.Instrument, true
	case *model.Stage:
		return &t.Instrument, true
	default:
		return nil, false
	}
}
