// Copyright 2022 Tomas Machalek <tomas.machalek@gmail.com>
// Copyright 2022 Charles University, Faculty of Arts,
//                Institute of the Czech National Corpus
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package dat

type buildItem struct {
	key   []rune
	pos   int
	value int32
}

// builder maintains the slot array under construction. Free slots
// form a circular doubly linked list whose head is always the last
// slot of the array (the sentinel).
type builder struct {
	dat []entry
}

func newBuilder() *builder {
	return &builder{
		dat: []entry{
			{base: 0, check: 0},   // root
			{base: -1, check: -1}, // sentinel: prev = next = 1
		},
	}
}

func (b *builder) sentinel() int32 {
	return int32(len(b.dat) - 1)
}

func (b *builder) setPrev(index, prev int32) {
	b.dat[index].base = -prev
}

func (b *builder) setNext(index, next int32) {
	b.dat[index].check = -next
}

// use unlinks a free slot and marks it occupied. The placeholder
// check = index never names another slot as parent.
func (b *builder) use(index int32) {
	prev := b.dat[index].prev()
	next := b.dat[index].next()
	b.setNext(prev, next)
	b.setPrev(next, prev)
	b.dat[index] = entry{base: 0, check: index}
}

func (b *builder) set(index int32, e entry) {
	b.dat[index] = e
}

// extend doubles the slot array and splices the new slots into the
// free list. The previous sentinel becomes an ordinary free slot and
// the new last slot takes over as sentinel.
func (b *builder) extend() {
	oldSize := int32(len(b.dat))
	oldSentinel := b.sentinel()
	for i := oldSize; i < 2*oldSize; i++ {
		b.dat = append(b.dat, entry{base: -(i - 1), check: -(i + 1)})
	}
	newSentinel := b.sentinel()
	oldHead := b.dat[oldSentinel].next()
	b.setNext(oldSentinel, oldSize)
	b.setPrev(oldHead, newSentinel)
	b.setNext(newSentinel, oldHead)
}

// alloc finds the first base in free-list order such that base+offset
// is free for every offset, extending the array when the candidates
// run out or the span reaches the sentinel, which is never handed
// out. The chosen slots are marked used. Offsets must be ascending
// with offsets[0] == 0.
func (b *builder) alloc(offsets []int32) int32 {
	sentinel := b.sentinel()
	base := b.dat[sentinel].next()
outer:
	for base != sentinel {
		for _, offset := range offsets {
			pos := base + offset
			if pos >= sentinel {
				break outer
			}
			if b.dat[pos].used() {
				base = b.dat[base].next()
				continue outer
			}
		}
		break
	}
	if base == b.sentinel() {
		b.extend()
		base = b.dat[b.sentinel()].next()
	}
	for base+offsets[len(offsets)-1] >= b.sentinel() {
		b.extend()
	}
	for _, offset := range offsets {
		b.use(base + offset)
	}
	return base
}

// process builds the subtree for items, which all continue with the
// same prefix consumed so far. It returns the base to store in the
// parent entry; for an exhausted key that is the terminal payload.
func (b *builder) process(items []buildItem, check int32) int32 {
	first := &items[0]
	if first.pos == len(first.key) {
		// the no-prefix invariant guarantees len(items) == 1 here
		return first.value
	}
	baseOffset := int32(first.key[first.pos])
	lastOffset := baseOffset
	lastStart := 0
	var offsets []int32
	var groups [][2]int
	for i := range items {
		ch := int32(items[i].key[items[i].pos])
		items[i].pos++
		if ch != lastOffset {
			offsets = append(offsets, lastOffset-baseOffset)
			groups = append(groups, [2]int{lastStart, i})
			lastOffset = ch
			lastStart = i
		}
	}
	offsets = append(offsets, lastOffset-baseOffset)
	groups = append(groups, [2]int{lastStart, len(items)})
	base := b.alloc(offsets)
	for k, offset := range offsets {
		index := base + offset
		childBase := b.process(items[groups[k][0]:groups[k][1]], index)
		b.set(index, entry{base: childBase, check: check})
	}
	return base - baseOffset
}

// cleanup truncates trailing free slots (their prev chain descends
// by one) and rewrites interior holes to the inert (0, self) form
// that no traversal can enter.
func (b *builder) cleanup() *Dat {
	end := b.sentinel()
	for b.dat[end].prev() == end-1 {
		end--
	}
	hole := b.dat[end].prev()
	for hole != b.sentinel() {
		prev := b.dat[hole].prev()
		b.dat[hole] = entry{base: 0, check: hole}
		hole = prev
	}
	entries := make([]entry, end)
	copy(entries, b.dat[:end])
	return &Dat{entries: entries}
}
