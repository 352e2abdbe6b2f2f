// bmp.go - 24-bit uncompressed bitmap encoder.
// Writes BITMAPFILEHEADER + BITMAPINFOHEADER followed by bottom-up BGR rows
// padded to 4 bytes. Alpha is dropped; wallpapers are opaque.
package export

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"image"
	"image/color"
	"io"
)

const bmpHeaderSize = 14 + 40

func encodeBMP(w io.Writer, img image.Image) error {
	b := img.Bounds()
	width, height := b.Dx(), b.Dy()

	rowSize := ((width*3 + 3) / 4) * 4
	pixelDataSize := rowSize * height
	fileSize := bmpHeaderSize + pixelDataSize

	// BMP File Header (14 bytes)
	header := make([]byte, bmpHeaderSize)
	header[0] = 'B'
	header[1] = 'M'
	binary.LittleEndian.PutUint32(header[2:6], uint32(fileSize))
	binary.LittleEndian.PutUint32(header[10:14], bmpHeaderSize)

	// DIB Header (40 bytes) - BITMAPINFOHEADER
	dib := header[14:]
	binary.LittleEndian.PutUint32(dib[0:4], 40)
	binary.LittleEndian.PutUint32(dib[4:8], uint32(width))
	binary.LittleEndian.PutUint32(dib[8:12], uint32(height))
	binary.LittleEndian.PutUint16(dib[12:14], 1)  // color planes
	binary.LittleEndian.PutUint16(dib[14:16], 24) // bits per pixel
	binary.LittleEndian.PutUint32(dib[20:24], uint32(pixelDataSize))

	bw := bufio.NewWriter(w)
	if _, err := bw.Write(header); err != nil {
		return fmt.Errorf("write BMP header: %w", err)
	}

	row := make([]byte, rowSize)
	for y := b.Max.Y - 1; y >= b.Min.Y; y-- {
		for x := 0; x < width; x++ {
			c := color.NRGBAModel.Convert(img.At(b.Min.X+x, y)).(color.NRGBA)
			row[x*3] = c.B
			row[x*3+1] = c.G
			row[x*3+2] = c.R
		}
		if _, err := bw.Write(row); err != nil {
			return fmt.Errorf("write BMP row: %w", err)
		}
	}

	return bw.Flush()
}
