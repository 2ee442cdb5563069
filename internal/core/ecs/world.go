package ecs

// World owns the handle pool, the component registry, and a deferred
// destruction queue flushed by the cleanup system at the end of each tick.
type World struct {
	pool         *Pool
	registry     *Registry
	destroyQueue []Handle
	queued       map[Handle]struct{}
}

func NewWorld() *World {
	return &World{
		pool:         NewPool(),
		registry:     NewRegistry(),
		destroyQueue: make([]Handle, 0, 64),
		queued:       make(map[Handle]struct{}, 64),
	}
}

func (w *World) Registry() *Registry { return w.registry }

func (w *World) CreateEntity() Handle {
	return w.pool.Create()
}

func (w *World) Alive(h Handle) bool {
	return w.pool.Alive(h)
}

// Live returns the number of live entities, including ones queued for removal.
func (w *World) Live() int {
	return w.pool.Live()
}

// MarkForDestruction queues an entity for end-of-tick cleanup. Marking the
// same entity twice, or a stale handle, is harmless.
func (w *World) MarkForDestruction(h Handle) {
	if !w.pool.Alive(h) {
		return
	}
	if _, ok := w.queued[h]; ok {
		return
	}
	w.queued[h] = struct{}{}
	w.destroyQueue = append(w.destroyQueue, h)
}

// PendingDestruction reports whether h is queued for removal this tick.
func (w *World) PendingDestruction(h Handle) bool {
	_, ok := w.queued[h]
	return ok
}

// DestroyNow removes an entity immediately, bypassing the queue.
func (w *World) DestroyNow(h Handle) {
	if !w.pool.Destroy(h) {
		return
	}
	w.registry.RemoveAll(h)
}

// FlushDestroyQueue destroys all queued entities and clears their components.
// Returns the number of entities removed.
func (w *World) FlushDestroyQueue() int {
	n := 0
	for _, h := range w.destroyQueue {
		if w.pool.Destroy(h) {
			w.registry.RemoveAll(h)
			n++
		}
	}
	w.destroyQueue = w.destroyQueue[:0]
	clear(w.queued)
	return n
}
