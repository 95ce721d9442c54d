package scoreboard

import (
	"github.com/danmuck/sbcontrol/internal/chat"
	"github.com/danmuck/sbcontrol/internal/protocol"
)

// Score is an entity's value under one objective. Once destroyed, directly
// or with its objective, it stays invalid; asking the objective for the same
// entity again yields a new Score.
type Score struct {
	objective *Objective
	entity    string

	value        int32
	displayName  *string
	numberFormat chat.NumberFormat
}

func (s *Score) board() *Board { return s.objective.board }

func (s *Score) checkState() error {
	if s.objective.checkState() != nil || s.board().scores[s.objective.name][s.entity] != s {
		return destroyed("score", s.entity)
	}
	return nil
}

// apply encodes the update that change produces on a copy of the score and
// commits change only once the packet is built.
func (s *Score) apply(change func(*Score)) error {
	next := *s
	change(&next)
	m, err := s.board().scoreUpdateMessage(&next)
	if err != nil {
		return err
	}
	packets, err := s.board().encode(m)
	if err != nil {
		return err
	}
	change(s)
	s.board().send(packets)
	return nil
}

func (s *Score) EntityName() (string, error) {
	s.board().mu.Lock()
	defer s.board().mu.Unlock()
	if err := s.checkState(); err != nil {
		return "", err
	}
	return s.entity, nil
}

func (s *Score) Objective() (*Objective, error) {
	s.board().mu.Lock()
	defer s.board().mu.Unlock()
	if err := s.checkState(); err != nil {
		return nil, err
	}
	return s.objective, nil
}

func (s *Score) Value() (int32, error) {
	s.board().mu.Lock()
	defer s.board().mu.Unlock()
	if err := s.checkState(); err != nil {
		return 0, err
	}
	return s.value, nil
}

func (s *Score) SetValue(v int32) error {
	s.board().mu.Lock()
	defer s.board().mu.Unlock()
	if err := s.checkState(); err != nil {
		return err
	}
	return s.apply(func(s *Score) { s.value = v })
}

func (s *Score) DisplayName() (*string, error) {
	s.board().mu.Lock()
	defer s.board().mu.Unlock()
	if err := s.checkState(); err != nil {
		return nil, err
	}
	if err := s.board().ctrl.version.Require(protocol.FeatureScoreDisplayName, "score display name"); err != nil {
		return nil, err
	}
	if s.displayName == nil {
		return nil, nil
	}
	name := *s.displayName
	return &name, nil
}

// SetDisplayName overrides the entity name shown next to the value; nil
// removes the override. '&' markup is resolved.
func (s *Score) SetDisplayName(text *string) error {
	s.board().mu.Lock()
	defer s.board().mu.Unlock()
	if err := s.checkState(); err != nil {
		return err
	}
	if err := s.board().ctrl.version.Require(protocol.FeatureScoreDisplayName, "score display name"); err != nil {
		return err
	}
	var resolved *string
	if text != nil {
		if err := s.board().ctrl.checkText("score display name", *text, maxDisplayLen); err != nil {
			return err
		}
		markup := s.board().ctrl.markup(*text)
		resolved = &markup
	}
	return s.apply(func(s *Score) { s.displayName = resolved })
}

func (s *Score) NumberFormat() (chat.NumberFormat, error) {
	s.board().mu.Lock()
	defer s.board().mu.Unlock()
	if err := s.checkState(); err != nil {
		return nil, err
	}
	if err := s.board().ctrl.version.Require(protocol.FeatureNumberFormat, "score number format"); err != nil {
		return nil, err
	}
	return s.numberFormat, nil
}

// SetNumberFormat overrides the objective's number format for this score;
// nil falls back to the objective's.
func (s *Score) SetNumberFormat(nf chat.NumberFormat) error {
	s.board().mu.Lock()
	defer s.board().mu.Unlock()
	if err := s.checkState(); err != nil {
		return err
	}
	if err := s.board().ctrl.version.Require(protocol.FeatureNumberFormat, "score number format"); err != nil {
		return err
	}
	return s.apply(func(s *Score) { s.numberFormat = nf })
}

func (s *Score) Destroy() error {
	b := s.board()
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := s.checkState(); err != nil {
		return err
	}
	m, err := b.scoreRemoveMessage(s.entity, s.objective.name)
	if err != nil {
		return err
	}
	packets, err := b.encode(m)
	if err != nil {
		return err
	}
	delete(b.scores[s.objective.name], s.entity)
	b.send(packets)
	return nil
}
