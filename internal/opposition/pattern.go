package opposition

import "github.com/roach88/minopp/internal/feature"

// VoiceOppIn restricts inventory to the given manners and searches it for
// voice oppositions with other features held. The boolean is false when no
// pair was found; the Result is then empty and must not be used as a
// finding.
func (e *Engine) VoiceOppIn(inventory []string, manners ...string) (Result, bool, error) {
	segs := e.Manners(inventory, manners...)
	res, err := e.Oppositions(segs, feature.Voice, HoldOthers)
	if err != nil {
		return Result{}, false, err
	}
	if res.Empty() {
		return Result{}, false, nil
	}
	return res, true, nil
}
