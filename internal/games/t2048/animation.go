package t2048

// Animation lengths in ticks.
const (
	slideAnimationDuration = 8  // ~133ms at 60fps
	popAnimationDuration   = 6  // ~100ms at 60fps
	scoreFlashDuration     = 45 // how long "+N" stays next to the score
)

// AnimationPhase is the current stage of the turn animation.
type AnimationPhase int

const (
	PhaseNone AnimationPhase = iota
	PhaseSlide
	PhasePop
)

// TileAnimation is a tile travelling between two cells.
type TileAnimation struct {
	Value    int
	FromX    int
	FromY    int
	ToX      int
	ToY      int
	Progress float64 // 0.0 → 1.0
}

// easeOutQuad provides smooth deceleration.
func easeOutQuad(t float64) float64 {
	return t * (2 - t)
}

// interpolatePosition returns the tile's current position in cells.
func (a TileAnimation) interpolatePosition() (x, y float64) {
	t := easeOutQuad(a.Progress)
	x = float64(a.FromX) + float64(a.ToX-a.FromX)*t
	y = float64(a.FromY) + float64(a.ToY-a.FromY)*t
	return x, y
}

// boardView is the terminal rendering collaborator. It receives snapshots
// from the session and turns each one into a slide phase (tiles travelling
// from their previous cell) followed by a pop phase (merged and new tiles).
type boardView struct {
	snap    Snapshot
	animate bool

	phase  AnimationPhase
	ticks  int
	slides []TileAnimation

	message    string
	scoreDelta int
	deltaTicks int
}

func newBoardView(animate bool) *boardView {
	return &boardView{animate: animate}
}

// Actuate implements Renderer.
func (v *boardView) Actuate(snap Snapshot) {
	v.snap = snap

	switch {
	case snap.Won:
		v.message = "You win!"
	case snap.Over:
		v.message = "Game over!"
	default:
		v.message = ""
	}

	if snap.ScoreDelta > 0 && snap.Turn > 0 {
		v.scoreDelta = snap.ScoreDelta
		v.deltaTicks = scoreFlashDuration
	}

	v.startAnimation()
}

// Restart implements Restarter.
func (v *boardView) Restart() {
	v.message = ""
	v.scoreDelta = 0
	v.deltaTicks = 0
	v.finish()
}

func (v *boardView) startAnimation() {
	v.slides = v.slides[:0]
	v.ticks = 0

	if !v.animate {
		v.phase = PhaseNone
		return
	}

	for _, t := range v.snap.Tiles {
		switch {
		case t.MergedFrom != nil:
			for _, src := range t.MergedFrom {
				v.slides = append(v.slides, slideFor(src))
			}
		case t.Previous != nil && (t.Previous.X != t.X || t.Previous.Y != t.Y):
			v.slides = append(v.slides, slideFor(t))
		}
	}

	switch {
	case len(v.slides) > 0:
		v.phase = PhaseSlide
	case v.hasPops():
		v.phase = PhasePop
	default:
		v.phase = PhaseNone
	}
}

func slideFor(t TileSnapshot) TileAnimation {
	from := Position{X: t.X, Y: t.Y}
	if t.Previous != nil {
		from = *t.Previous
	}
	return TileAnimation{
		Value: t.Value,
		FromX: from.X,
		FromY: from.Y,
		ToX:   t.X,
		ToY:   t.Y,
	}
}

func (v *boardView) hasPops() bool {
	for _, t := range v.snap.Tiles {
		if t.IsNew || t.MergedFrom != nil {
			return true
		}
	}
	return false
}

// advance moves the animation forward one tick.
// Returns true while an animation is still running.
func (v *boardView) advance() bool {
	if v.deltaTicks > 0 {
		v.deltaTicks--
	}

	var duration int
	switch v.phase {
	case PhaseSlide:
		duration = slideAnimationDuration
	case PhasePop:
		duration = popAnimationDuration
	default:
		return false
	}

	v.ticks++
	progress := min(float64(v.ticks)/float64(duration), 1.0)
	for i := range v.slides {
		v.slides[i].Progress = progress
	}

	if v.ticks < duration {
		return true
	}

	if v.phase == PhaseSlide && v.hasPops() {
		v.phase = PhasePop
		v.ticks = 0
		v.slides = v.slides[:0]
		return true
	}

	v.finish()
	return false
}

// finish jumps to the end of any running animation.
func (v *boardView) finish() {
	v.phase = PhaseNone
	v.ticks = 0
	v.slides = v.slides[:0]
}

// Animating reports whether a slide or pop is in progress.
func (v *boardView) Animating() bool {
	return v.phase != PhaseNone
}

// staticTile reports whether t is drawn at its final cell during the slide phase.
func staticTile(t TileSnapshot) bool {
	if t.IsNew || t.MergedFrom != nil {
		return false
	}
	return t.Previous == nil || (t.Previous.X == t.X && t.Previous.Y == t.Y)
}
