package handler

import (
	"bytes"
	"sync"
)

// jsonBuffers recycles encode buffers across responses. Storefront
// payloads run a few hundred bytes; buffers grown by larger card-list
// responses stay in the pool for reuse.
var jsonBuffers = sync.Pool{
	New: func() interface{} {
		return bytes.NewBuffer(make([]byte, 0, 512))
	},
}

func getBuffer() *bytes.Buffer {
	return jsonBuffers.Get().(*bytes.Buffer)
}

func putBuffer(buf *bytes.Buffer) {
	buf.Reset()
	jsonBuffers.Put(buf)
}
