// png.go - PNG encoder.
package export

import (
	"bufio"
	"fmt"
	"image"
	"image/png"
	"io"
	"sync"
)

// encoder is shared so repeated exports reuse compression buffers.
var encoder = &png.Encoder{
	CompressionLevel: png.BestSpeed,
	BufferPool:       &bufferPool{},
}

// encodePNG encodes img as PNG through a buffered writer.
func encodePNG(w io.Writer, img image.Image) error {
	bw := bufio.NewWriter(w)
	if err := encoder.Encode(bw, img); err != nil {
		return fmt.Errorf("encode PNG: %w", err)
	}
	return bw.Flush()
}

// bufferPool implements png.EncoderBufferPool on a sync.Pool.
type bufferPool struct {
	pool sync.Pool
}

func (p *bufferPool) Get() *png.EncoderBuffer {
	b, _ := p.pool.Get().(*png.EncoderBuffer)
	return b
}

func (p *bufferPool) Put(b *png.EncoderBuffer) {
	p.pool.Put(b)
}
