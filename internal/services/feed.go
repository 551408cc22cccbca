package services

import (
	"log"
	"sync"
)

// ArtworkFeed is an explicit change stream for artworks: mutating handlers
// call Notify and view-layer sessions subscribe per artwork. Delivery runs
// on a single background worker fed by a buffered queue so notifiers never
// block on slow subscribers.
type ArtworkFeed struct {
	queue chan uint
	mu    sync.Mutex
	subs  map[uint]map[int]func(uint)
	next  int
}

var (
	artworkFeed *ArtworkFeed
	feedOnce    sync.Once
)

// GetArtworkFeed returns the singleton feed, starting its worker on first use.
func GetArtworkFeed() *ArtworkFeed {
	feedOnce.Do(func() {
		artworkFeed = &ArtworkFeed{
			queue: make(chan uint, 1000),
			subs:  make(map[uint]map[int]func(uint)),
		}
		go artworkFeed.worker()
	})
	return artworkFeed
}

// Notify enqueues a change notification for the artwork. Non-blocking: if
// the queue is full the notification is dropped, since subscribers refetch
// authoritative state anyway.
func (f *ArtworkFeed) Notify(artworkID uint) {
	select {
	case f.queue <- artworkID:
	default:
		log.Printf("artwork feed queue full, dropping notification for %d", artworkID)
	}
}

// Subscribe registers fn for changes to one artwork and returns the
// unsubscribe function. fn runs on the feed worker goroutine.
func (f *ArtworkFeed) Subscribe(artworkID uint, fn func(uint)) (unsubscribe func()) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.subs[artworkID] == nil {
		f.subs[artworkID] = make(map[int]func(uint))
	}
	token := f.next
	f.next++
	f.subs[artworkID][token] = fn

	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		delete(f.subs[artworkID], token)
		if len(f.subs[artworkID]) == 0 {
			delete(f.subs, artworkID)
		}
	}
}

func (f *ArtworkFeed) worker() {
	for artworkID := range f.queue {
		f.dispatch(artworkID)
	}
}

func (f *ArtworkFeed) dispatch(artworkID uint) {
	f.mu.Lock()
	callbacks := make([]func(uint), 0, len(f.subs[artworkID]))
	for _, fn := range f.subs[artworkID] {
		callbacks = append(callbacks, fn)
	}
	f.mu.Unlock()

	// Callbacks run outside the lock so a subscriber can unsubscribe itself.
	for _, fn := range callbacks {
		fn(artworkID)
	}
}
