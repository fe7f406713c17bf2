package pipeline

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"

	"github.com/ChrisMcGann/TAGKey/pkg/calculation"
	"github.com/ChrisMcGann/TAGKey/pkg/core"
	"github.com/ChrisMcGann/TAGKey/pkg/settings"
)

// Domain tags keep sample and TAG table fingerprints apart
const (
	domainSamples byte = 's'
	domainTAG     byte = 't'
)

type hasher struct {
	d   *xxhash.Digest
	buf [8]byte
}

func newHasher(domain byte) *hasher {
	h := &hasher{d: xxhash.New()}
	h.d.Write([]byte{domain})
	return h
}

func (h *hasher) putUint(v uint64) {
	binary.LittleEndian.PutUint64(h.buf[:], v)
	h.d.Write(h.buf[:])
}

func (h *hasher) putFloat(v float64) {
	h.putUint(math.Float64bits(v))
}

// putString is length-prefixed so adjacent fields cannot run together
func (h *hasher) putString(s string) {
	h.putUint(uint64(len(s)))
	h.d.WriteString(s)
}

func (h *hasher) putOptional(v *float64) {
	if v == nil {
		h.putUint(0)
		return
	}
	h.putUint(1)
	h.putFloat(*v)
}

func (h *hasher) putMetadata(m core.Metadata) {
	h.putString(m.Name)
	h.putString(m.Description)
	h.putString(m.Date)
	h.putString(m.SourceFile)
}

// Fingerprint identifies a pipeline run: the sample identities and contents,
// the selected index or all samples, and the configuration.
func Fingerprint(samples []*core.Sample, index *int, cfg *settings.Config) uint64 {
	h := newHasher(domainSamples)

	h.putUint(uint64(len(samples)))
	for _, s := range samples {
		if s == nil {
			h.putUint(0)
			continue
		}
		h.putUint(1)
		h.putMetadata(s.Metadata)
		h.putUint(uint64(len(s.Rows)))
		for _, r := range s.Rows {
			h.putString(r.Label)
			h.putString(r.FattyAcid.String())
			h.putFloat(r.TAG)
			h.putFloat(r.DAG1223)
			h.putFloat(r.MAG2)
		}
	}

	if index == nil {
		h.putString("all")
	} else {
		h.putString("index")
		h.putUint(uint64(*index))
	}

	cfg.HashInto(h.d)
	return h.d.Sum64()
}

// TAGFingerprint identifies a pipeline run over a TAG table
func TAGFingerprint(tags *calculation.TAGTable, cfg *settings.Config) uint64 {
	h := newHasher(domainTAG)

	h.putUint(uint64(len(tags.Samples)))
	for _, m := range tags.Samples {
		h.putMetadata(m)
	}
	h.putUint(uint64(len(tags.Rows)))
	for _, row := range tags.Rows {
		for _, a := range row.TAG {
			h.putString(a.Label)
			h.putString(a.FattyAcid.String())
		}
		h.putUint(uint64(len(row.Values)))
		for _, v := range row.Values {
			h.putOptional(v)
		}
	}

	cfg.HashInto(h.d)
	return h.d.Sum64()
}
