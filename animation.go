package stagelayout

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// pulse oscillates a value between lo and hi forever. The selection outline
// uses it for its alpha.
type pulse struct {
	lo, hi float32
	period float32
	tween  *gween.Tween
	rising bool
	value  float32
}

func newPulse(lo, hi, period float32) *pulse {
	p := &pulse{lo: lo, hi: hi, period: period, value: hi}
	p.restart()
	return p
}

// restart begins the next half cycle from the current value.
func (p *pulse) restart() {
	to := p.lo
	if p.rising {
		to = p.hi
	}
	p.tween = gween.New(p.value, to, p.period/2, ease.InOutSine)
}

// update advances the pulse by dt seconds.
func (p *pulse) update(dt float32) {
	val, finished := p.tween.Update(dt)
	p.value = val
	if finished {
		p.rising = !p.rising
		p.restart()
	}
}

// Status line timing, in seconds.
const (
	statusHold = 2.5
	statusFade = 0.8
)

// statusLine is a transient message under the stage. It stays fully opaque
// for statusHold seconds and then fades out.
type statusLine struct {
	text  string
	alpha float32
	hold  float32
	fade  *gween.Tween
}

// show replaces the current message.
func (s *statusLine) show(msg string) {
	s.text = msg
	s.alpha = 1
	s.hold = statusHold
	s.fade = nil
}

// update advances the hold and fade timers by dt seconds.
func (s *statusLine) update(dt float32) {
	if s.text == "" {
		return
	}
	if s.hold > 0 {
		s.hold -= dt
		return
	}
	if s.fade == nil {
		s.fade = gween.New(1, 0, statusFade, ease.OutQuad)
	}
	val, finished := s.fade.Update(dt)
	s.alpha = val
	if finished {
		s.text = ""
		s.alpha = 0
		s.fade = nil
	}
}
