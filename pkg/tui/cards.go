package tui

import (
	"github.com/yangyang3917/minecraft-seed-site/pkg/card"
	"github.com/yangyang3917/minecraft-seed-site/pkg/imagecache"
	"github.com/yangyang3917/minecraft-seed-site/pkg/seeds"
)

type imageState int

const (
	imageLoading imageState = iota
	imageReady
	imagePlaceholder
)

type cardSlot struct {
	card  card.Card
	image imageState
	file  string
}

// cardList is the session's render sink. Every Reset starts a new
// generation; image results carry the generation they were requested for so
// results for a superseded list are dropped.
type cardList struct {
	generation int
	total      int
	hasMore    bool
	slots      []cardSlot
	pending    []int
}

func (l *cardList) Reset(total int) {
	l.generation++
	l.total = total
	l.hasMore = false
	l.slots = nil
	l.pending = nil
}

func (l *cardList) Append(batch []seeds.Record, hasMore bool) {
	for _, r := range batch {
		l.pending = append(l.pending, len(l.slots))
		l.slots = append(l.slots, cardSlot{card: card.FromRecord(r)})
	}
	l.hasMore = hasMore
}

// takePending returns the slots appended since the last call.
func (l *cardList) takePending() []int {
	p := l.pending
	l.pending = nil
	return p
}

// setImage stores an image result. It reports false when the result is stale.
func (l *cardList) setImage(generation, index int, img imagecache.Image) bool {
	if generation != l.generation || index < 0 || index >= len(l.slots) {
		return false
	}
	slot := &l.slots[index]
	if img.Placeholder {
		slot.image = imagePlaceholder
		slot.file = ""
		return true
	}
	slot.image = imageReady
	slot.file = img.File
	return true
}

func (l *cardList) len() int {
	return len(l.slots)
}
