package ecs

// Handle identifies an entity. The lower 32 bits hold the slot index and the
// upper 32 bits the slot generation. Destroying an entity bumps the slot
// generation, so any copy of the old Handle stops resolving.
type Handle uint64

// None is never returned by Create.
const None Handle = 0

func makeHandle(index, generation uint32) Handle {
	return Handle(uint64(generation)<<32 | uint64(index))
}

func (h Handle) Index() uint32      { return uint32(h) }
func (h Handle) Generation() uint32 { return uint32(h >> 32) }
func (h Handle) IsNone() bool       { return h == None }

// Pool hands out handles with generational indices and recycles freed slots.
// Generations start at 1 so that None can never be a live handle.
type Pool struct {
	generations []uint32
	freeList    []uint32
	live        int
}

func NewPool() *Pool {
	return &Pool{
		generations: make([]uint32, 0, 1024),
		freeList:    make([]uint32, 0, 256),
	}
}

func (p *Pool) Create() Handle {
	p.live++
	if n := len(p.freeList); n > 0 {
		idx := p.freeList[n-1]
		p.freeList = p.freeList[:n-1]
		return makeHandle(idx, p.generations[idx])
	}
	idx := uint32(len(p.generations))
	p.generations = append(p.generations, 1)
	return makeHandle(idx, 1)
}

// Alive reports whether h still refers to the entity it was issued for.
func (p *Pool) Alive(h Handle) bool {
	idx := h.Index()
	if h.IsNone() || int(idx) >= len(p.generations) {
		return false
	}
	return p.generations[idx] == h.Generation()
}

// Destroy invalidates h. Stale or unknown handles are ignored.
func (p *Pool) Destroy(h Handle) bool {
	if !p.Alive(h) {
		return false
	}
	idx := h.Index()
	p.generations[idx]++
	if p.generations[idx] == 0 {
		p.generations[idx] = 1
	}
	p.freeList = append(p.freeList, idx)
	p.live--
	return true
}

// Live returns the number of entities currently alive.
func (p *Pool) Live() int { return p.live }
