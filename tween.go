package main

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"github.com/zucenko/pathgrid/model"
)

const fadeSeconds = 0.3

type Action struct {
	onChange func(float32)
	onFinish []func()
}

func (a *Action) addOnFinish(f func()) {
	if a.onFinish == nil {
		a.onFinish = make([]func(), 0)
	}
	a.onFinish = append(a.onFinish, f)
}

// fade brightens a freshly classified cell from pale to full colour.
func (g *Game) fade(pos model.Position) {
	if old, ok := g.fadeTweens[pos]; ok {
		delete(g.Tweens, old)
	}
	t := gween.New(0.2, 1, fadeSeconds, ease.OutQuad)
	action := Action{onChange: func(v float32) { g.fades[pos] = v }}
	action.addOnFinish(func() {
		delete(g.fades, pos)
		delete(g.fadeTweens, pos)
	})
	g.fades[pos] = 0.2
	g.fadeTweens[pos] = t
	g.Tweens[t] = action
}

func (g *Game) updateTweens(dt float32) {
	for t, a := range g.Tweens {
		curr, finished := t.Update(dt)
		if a.onChange != nil {
			a.onChange(curr)
		}
		if finished {
			for _, onFinish := range a.onFinish {
				onFinish()
			}
			delete(g.Tweens, t)
		}
	}
}
