package reader

import (
	"io"
	"os"

	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"
)

// lazDriver reads a zstd-wrapped LAS stream. Real LAZ is its own
// entropy-coded format; this driver models entwine's own notion of a
// "compressed" chunk format (PCDCompressed in the teacher's PCDType) by
// wrapping a plain LAS payload in zstd, the compressor
// janelia-flyem-dvid's go.mod also depends on for its own chunked
// storage.
type lazDriver struct{}

// NewLAZDriver returns the compressed-LAS driver.
func NewLAZDriver() Driver { return lazDriver{} }

func (lazDriver) Extensions() []string { return []string{".laz"} }

// InferSRS decompresses just enough to delegate to the LAS driver's own
// (currently always-empty) inference, rather than reporting "" without
// even trying.
func (d lazDriver) InferSRS(path string) (string, error) {
	tmp, err := d.decompressToTemp(path)
	if err != nil {
		return "", err
	}
	defer os.Remove(tmp) //nolint:errcheck

	return NewLASDriver().InferSRS(tmp)
}

func (d lazDriver) Preview(path string, srs string) (Preview, error) {
	tmp, err := d.decompressToTemp(path)
	if err != nil {
		return Preview{}, err
	}
	defer os.Remove(tmp) //nolint:errcheck

	return NewLASDriver().Preview(tmp, srs)
}

func (d lazDriver) Run(table Table, path string, srs string) error {
	tmp, err := d.decompressToTemp(path)
	if err != nil {
		return err
	}
	defer os.Remove(tmp) //nolint:errcheck

	return NewLASDriver().Run(table, tmp, srs)
}

// decompressToTemp streams the zstd-compressed source to a temp file
// lidario can open directly; lidario requires a seekable file path rather
// than a reader, so this driver cannot decompress in-memory.
func (lazDriver) decompressToTemp(path string) (string, error) {
	in, err := os.Open(path)
	if err != nil {
		return "", errors.Wrap(err, "reader: opening LAZ source")
	}
	defer in.Close() //nolint:errcheck

	dec, err := zstd.NewReader(in)
	if err != nil {
		return "", errors.Wrap(err, "reader: initializing zstd decoder")
	}
	defer dec.Close()

	out, err := os.CreateTemp("", "entwine-laz-*.las")
	if err != nil {
		return "", errors.Wrap(err, "reader: creating scratch file")
	}
	defer out.Close() //nolint:errcheck

	if _, err := io.Copy(out, dec); err != nil {
		return "", errors.Wrap(err, "reader: decompressing LAZ source")
	}
	return out.Name(), nil
}
