package state

import (
	"fmt"
	"sync"

	"github.com/rook-computer/adcanvas/internal/assets"
	"github.com/rook-computer/adcanvas/internal/render"
	"github.com/rook-computer/adcanvas/internal/template"
)

// DefaultBackgroundColor is used until a color is chosen.
const DefaultBackgroundColor = "#000000"

type Field int

const (
	FieldCaption Field = iota
	FieldCTA
	FieldBackgroundColor
	FieldCorrections
	FieldPhoto
)

func (f Field) String() string {
	switch f {
	case FieldCaption:
		return "caption"
	case FieldCTA:
		return "cta"
	case FieldBackgroundColor:
		return "color"
	case FieldCorrections:
		return "corrections"
	case FieldPhoto:
		return "photo"
	default:
		return fmt.Sprintf("field(%d)", int(f))
	}
}

// Change tells subscribers which field was written and carries the
// parameters as they were right after that write.
type Change struct {
	Field  Field
	Params RenderParameters
}

type subscription struct {
	ch   chan Change
	done chan struct{}
}

// Store holds the render parameters. Every write notifies all subscribers
// once.
type Store struct {
	tpl template.Spec

	mu     sync.RWMutex
	params RenderParameters

	notifyMu sync.Mutex
	subMu    sync.Mutex
	subs     map[int]*subscription
	nextID   int
}

func NewStore(tpl template.Spec) *Store {
	return &Store{
		tpl: tpl,
		params: RenderParameters{
			CaptionText:     tpl.Caption.Text,
			CTAText:         tpl.CTA.Text,
			BackgroundColor: DefaultBackgroundColor,
			Corrections:     DefaultCorrections(),
		},
		subs: make(map[int]*subscription),
	}
}

func (store *Store) Snapshot() RenderParameters {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return store.params
}

// SetCaption stores text, substituting the template caption when it is blank.
func (store *Store) SetCaption(text string) RenderParameters {
	return store.update(FieldCaption, func(p *RenderParameters) {
		p.CaptionText = store.tpl.CaptionText(text)
	})
}

// SetCTA stores text, substituting the template label when it is blank.
func (store *Store) SetCTA(text string) RenderParameters {
	return store.update(FieldCTA, func(p *RenderParameters) {
		p.CTAText = store.tpl.CTAText(text)
	})
}

// SetBackgroundColor validates and stores a "#RRGGBB" color.
func (store *Store) SetBackgroundColor(hex string) (RenderParameters, error) {
	normalized, err := render.NormalizeHexColor(hex)
	if err != nil {
		return store.Snapshot(), err
	}
	return store.update(FieldBackgroundColor, func(p *RenderParameters) {
		p.BackgroundColor = normalized
	}), nil
}

func (store *Store) SetCorrections(c CorrectionFactors) RenderParameters {
	return store.update(FieldCorrections, func(p *RenderParameters) {
		p.Corrections = c.Clamp()
	})
}

func (store *Store) PatchCorrections(patch CorrectionsPatch) RenderParameters {
	return store.update(FieldCorrections, func(p *RenderParameters) {
		p.Corrections = patch.Apply(p.Corrections)
	})
}

// ResetCorrections restores DefaultCorrections.
func (store *Store) ResetCorrections() RenderParameters {
	return store.SetCorrections(DefaultCorrections())
}

// SetPhoto stores a decoded photo together with the request token it came from.
func (store *Store) SetPhoto(token uint64, photo *assets.Bitmap) RenderParameters {
	return store.update(FieldPhoto, func(p *RenderParameters) {
		p.Photo = photo
		p.PhotoToken = token
	})
}

func (store *Store) ClearPhoto() RenderParameters {
	return store.SetPhoto(0, nil)
}

// Subscribe registers a listener. Notifications are never dropped or merged:
// when the buffer is full the writer waits. The returned func unsubscribes.
func (store *Store) Subscribe(buffer int) (<-chan Change, func()) {
	if buffer < 1 {
		buffer = 1
	}
	sub := &subscription{ch: make(chan Change, buffer), done: make(chan struct{})}

	store.subMu.Lock()
	id := store.nextID
	store.nextID++
	store.subs[id] = sub
	store.subMu.Unlock()

	var once sync.Once
	return sub.ch, func() {
		once.Do(func() {
			close(sub.done)
			store.subMu.Lock()
			delete(store.subs, id)
			store.subMu.Unlock()
		})
	}
}

// update applies mutate and notifies subscribers. Holding notifyMu across
// both steps keeps notifications in write order.
func (store *Store) update(field Field, mutate func(p *RenderParameters)) RenderParameters {
	store.notifyMu.Lock()
	defer store.notifyMu.Unlock()

	store.mu.Lock()
	mutate(&store.params)
	snap := store.params
	store.mu.Unlock()

	store.notify(Change{Field: field, Params: snap})
	return snap
}

// notify must be called with notifyMu held.
func (store *Store) notify(change Change) {
	store.subMu.Lock()
	subs := make([]*subscription, 0, len(store.subs))
	for _, sub := range store.subs {
		subs = append(subs, sub)
	}
	store.subMu.Unlock()

	for _, sub := range subs {
		select {
		case sub.ch <- change:
		case <-sub.done:
		}
	}
}
