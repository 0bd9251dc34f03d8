package opposition

import (
	"slices"

	"github.com/roach88/minopp/internal/feature"
)

// Report lists, for one inventory, the voiced affricates that have a
// voiceless counterpart with a paired fricative but no paired fricative of
// their own.
type Report struct {
	Fricatives []string `json:"fricatives"`
	Affricates []string `json:"affricates"`

	// Anomalous are the flagged voiced affricates.
	Anomalous []string `json:"result"`

	// Remainder are the voiced affricates not flagged.
	Remainder []string `json:"remainder"`
}

// Flagged reports whether any voiced affricate was flagged.
func (r Report) Flagged() bool { return len(r.Anomalous) > 0 }

// Detect runs AffricateGaps on inventories that have a voice opposition
// among stops and one among affricates. The boolean is false for
// inventories failing either gate.
func (e *Engine) Detect(inventory []string) (Report, bool, error) {
	if _, ok, err := e.VoiceOppIn(inventory, MannerStop); err != nil || !ok {
		return Report{}, false, err
	}
	if _, ok, err := e.VoiceOppIn(inventory, MannerAffricate); err != nil || !ok {
		return Report{}, false, err
	}
	rep, err := e.AffricateGaps(inventory)
	if err != nil {
		return Report{}, false, err
	}
	return rep, true, nil
}

// AffricateGaps builds the Report for inventory. For each voiced
// affricate it
//
//  1. skips it if it opposes some fricative in manner,
//  2. finds its voiceless affricate counterparts by voice,
//  3. flags it if one of those counterparts opposes a fricative in manner.
func (e *Engine) AffricateGaps(inventory []string) (Report, error) {
	rep := Report{
		Fricatives: e.Manners(inventory, MannerFricative),
		Affricates: e.Manners(inventory, MannerAffricate),
	}
	voiced := e.Voices(rep.Affricates, Voiced)
	voiceless := e.Voices(rep.Affricates, Voiceless)

	for _, vcd := range voiced {
		paired, err := e.HasMannerPartner(vcd, rep.Fricatives)
		if err != nil {
			return Report{}, err
		}
		if paired {
			continue
		}
		counterparts, err := e.VoicelessCounterparts(vcd, voiceless)
		if err != nil {
			return Report{}, err
		}
		for _, vcl := range counterparts {
			paired, err := e.HasMannerPartner(vcl, rep.Fricatives)
			if err != nil {
				return Report{}, err
			}
			if paired {
				rep.Anomalous = append(rep.Anomalous, vcd)
				break
			}
		}
	}

	for _, vcd := range voiced {
		if !slices.Contains(rep.Anomalous, vcd) {
			rep.Remainder = append(rep.Remainder, vcd)
		}
	}
	return rep, nil
}

// HasMannerPartner reports whether seg opposes any of fricatives in
// manner with other features held.
func (e *Engine) HasMannerPartner(seg string, fricatives []string) (bool, error) {
	res, err := e.Oppositions(append([]string{seg}, fricatives...), feature.Manner, HoldOthers)
	if err != nil {
		return false, err
	}
	return !res.Empty(), nil
}

// VoicelessCounterparts returns the members of voiceless that oppose
// voiced in voice with other features held, in input order.
func (e *Engine) VoicelessCounterparts(voiced string, voiceless []string) ([]string, error) {
	res, err := e.Oppositions(append([]string{voiced}, voiceless...), feature.Voice, HoldOthers)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, p := range res.Pairs() {
		if p.First == voiced {
			out = append(out, p.Second)
		}
	}
	return out, nil
}
